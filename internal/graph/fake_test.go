package graph

import (
	"context"
	"sync"

	"github.com/microsoftgraph/msgraph-sdk-go/models"

	"github.com/alnah/go-profilestamp/internal/logger"
)

// newTestClient builds a client over a fake api.
func newTestClient(a api, l *logger.Logger, opts ...Option) *Client {
	return newClient(a, append([]Option{WithLogger(l)}, opts...)...)
}

// fakeAPI records calls and serves canned Graph responses.
type fakeAPI struct {
	GetUserFunc   func(calls int) (models.Userable, error)
	Message       models.Messageable
	GetMessageErr error
	CreateErr     error
	UpdateErr     error
	CreatedID     string

	mu         sync.Mutex
	userCalls  int
	userSelect []string
	created    []models.Messageable
	updated    map[string]models.Messageable
}

func (f *fakeAPI) getUser(_ context.Context, sel []string) (models.Userable, error) {
	f.mu.Lock()
	f.userCalls++
	calls := f.userCalls
	f.userSelect = sel
	f.mu.Unlock()

	if f.GetUserFunc != nil {
		return f.GetUserFunc(calls)
	}
	return models.NewUser(), nil
}

func (f *fakeAPI) createMessage(_ context.Context, msg models.Messageable) (models.Messageable, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.CreateErr != nil {
		return nil, f.CreateErr
	}
	f.created = append(f.created, msg)
	out := models.NewMessage()
	id := f.CreatedID
	out.SetId(&id)
	return out, nil
}

func (f *fakeAPI) getMessage(_ context.Context, _ string, _ []string) (models.Messageable, error) {
	if f.GetMessageErr != nil {
		return nil, f.GetMessageErr
	}
	return f.Message, nil
}

func (f *fakeAPI) updateMessage(_ context.Context, id string, msg models.Messageable) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.UpdateErr != nil {
		return f.UpdateErr
	}
	if f.updated == nil {
		f.updated = make(map[string]models.Messageable)
	}
	f.updated[id] = msg
	return nil
}
