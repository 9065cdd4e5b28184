package dispatch_test

import (
	"context"
	"sync"

	"github.com/alnah/go-profilestamp/internal/profile"
)

// ---------------------------------------------------------------------------
// Mock SpreadsheetHost
// ---------------------------------------------------------------------------

type setValuesCall struct {
	Address string
	Values  [][]string
}

type mockSpreadsheet struct {
	SetValuesErr error
	AutofitErr   error
	SyncErr      error

	mu        sync.Mutex
	setValues []setValuesCall
	autofits  []string
	syncs     int
}

func (m *mockSpreadsheet) SetValues(_ context.Context, address string, values [][]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setValues = append(m.setValues, setValuesCall{Address: address, Values: values})
	return m.SetValuesErr
}

func (m *mockSpreadsheet) AutofitColumns(_ context.Context, address string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.autofits = append(m.autofits, address)
	return m.AutofitErr
}

func (m *mockSpreadsheet) Sync(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.syncs++
	return m.SyncErr
}

// ---------------------------------------------------------------------------
// Mock MailHost
// ---------------------------------------------------------------------------

type mockMail struct {
	InsertErr error

	mu      sync.Mutex
	inserts []string
}

func (m *mockMail) InsertHTML(_ context.Context, html string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inserts = append(m.inserts, html)
	return m.InsertErr
}

// ---------------------------------------------------------------------------
// Mock PresentationHost
// ---------------------------------------------------------------------------

type mockPresentation struct {
	ReplaceErr error

	mu       sync.Mutex
	replaced []string
}

func (m *mockPresentation) ReplaceSelection(_ context.Context, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.replaced = append(m.replaced, text)
	return m.ReplaceErr
}

// ---------------------------------------------------------------------------
// Mock DocumentHost
// ---------------------------------------------------------------------------

type mockDocument struct {
	AppendErr error
	SyncErr   error

	mu         sync.Mutex
	paragraphs []string
	syncs      int
}

func (m *mockDocument) AppendParagraph(_ context.Context, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.AppendErr != nil {
		return m.AppendErr
	}
	m.paragraphs = append(m.paragraphs, text)
	return nil
}

func (m *mockDocument) Sync(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.syncs++
	return m.SyncErr
}

// ---------------------------------------------------------------------------
// Mock SignatureRenderer
// ---------------------------------------------------------------------------

type mockRenderer struct {
	RenderFunc func(rec profile.Record) (string, error)
}

func (m *mockRenderer) Render(rec profile.Record) (string, error) {
	if m.RenderFunc != nil {
		return m.RenderFunc(rec)
	}
	return "<p>sig</p>", nil
}
