package cli

import (
	"context"
	"io"
	"sync"

	"github.com/alnah/go-profilestamp/internal/config"
	"github.com/alnah/go-profilestamp/internal/graph"
	"github.com/alnah/go-profilestamp/internal/host"
	"github.com/alnah/go-profilestamp/internal/logger"
	"github.com/alnah/go-profilestamp/internal/profile"
)

// ---------------------------------------------------------------------------
// Mock ConfigLoader
// ---------------------------------------------------------------------------

type mockConfigLoader struct {
	LoadFunc func() (config.Config, error)

	mu        sync.Mutex
	loadCalls int
}

func (m *mockConfigLoader) Load() (config.Config, error) {
	m.mu.Lock()
	m.loadCalls++
	m.mu.Unlock()

	if m.LoadFunc != nil {
		return m.LoadFunc()
	}
	return config.Config{}, nil
}

func (m *mockConfigLoader) LoadCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loadCalls
}

// ---------------------------------------------------------------------------
// Mock LoggerFactory
// ---------------------------------------------------------------------------

type mockLoggerFactory struct {
	Out io.Writer
	Err error

	mu    sync.Mutex
	calls []loggerCall
}

type loggerCall struct {
	Mode    string
	Verbose bool
}

func (m *mockLoggerFactory) NewLogger(mode string, verbose bool) (*logger.Logger, error) {
	m.mu.Lock()
	m.calls = append(m.calls, loggerCall{Mode: mode, Verbose: verbose})
	m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	if m.Out != nil {
		return logger.NewWriter(m.Out), nil
	}
	return logger.NewNop(), nil
}

func (m *mockLoggerFactory) Calls() []loggerCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]loggerCall(nil), m.calls...)
}

// ---------------------------------------------------------------------------
// Mock GraphFactory + GraphClient + DraftHost
// ---------------------------------------------------------------------------

type mockGraphFactory struct {
	Client *mockGraphClient
	Err    error

	mu    sync.Mutex
	calls []graph.Config
}

func (m *mockGraphFactory) NewClient(cfg graph.Config, _ *logger.Logger) (GraphClient, error) {
	m.mu.Lock()
	m.calls = append(m.calls, cfg)
	m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	if m.Client == nil {
		m.Client = &mockGraphClient{}
	}
	return m.Client, nil
}

func (m *mockGraphFactory) Calls() []graph.Config {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]graph.Config(nil), m.calls...)
}

type mockGraphClient struct {
	FetchProfileFunc func(ctx context.Context) (profile.Record, error)
	DraftErr         error
	NewDraftID       string

	mu         sync.Mutex
	fetchCalls int
	drafts     []*mockDraft
}

func (m *mockGraphClient) FetchProfile(ctx context.Context) (profile.Record, error) {
	m.mu.Lock()
	m.fetchCalls++
	m.mu.Unlock()

	if m.FetchProfileFunc != nil {
		return m.FetchProfileFunc(ctx)
	}
	return profile.Record{profile.KeyDisplayName: "Graph User"}, nil
}

func (m *mockGraphClient) Draft(id, marker string) DraftHost {
	m.mu.Lock()
	defer m.mu.Unlock()

	d := &mockDraft{id: id, Marker: marker, Err: m.DraftErr, newID: m.NewDraftID}
	m.drafts = append(m.drafts, d)
	return d
}

func (m *mockGraphClient) FetchCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fetchCalls
}

func (m *mockGraphClient) Drafts() []*mockDraft {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*mockDraft(nil), m.drafts...)
}

type mockDraft struct {
	Marker string
	Err    error

	mu       sync.Mutex
	id       string
	newID    string
	inserted []string
}

func (m *mockDraft) InsertHTML(_ context.Context, html string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.inserted = append(m.inserted, html)
	if m.Err != nil {
		return m.Err
	}
	if m.id == "" {
		m.id = m.newID
	}
	return nil
}

func (m *mockDraft) ID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.id
}

func (m *mockDraft) Inserted() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.inserted...)
}

// ---------------------------------------------------------------------------
// Mock HostOpener + document host
// ---------------------------------------------------------------------------

type mockHostOpener struct {
	OpenFunc func(kind host.Kind, path, marker string) (host.Target, io.Closer, error)

	mu       sync.Mutex
	calls    []openCall
	document *mockDocument
	closer   *mockCloser
}

type openCall struct {
	Kind   host.Kind
	Path   string
	Marker string
}

func (m *mockHostOpener) Open(kind host.Kind, path, marker string) (host.Target, io.Closer, error) {
	m.mu.Lock()
	m.calls = append(m.calls, openCall{Kind: kind, Path: path, Marker: marker})
	if m.document == nil {
		m.document = &mockDocument{}
	}
	if m.closer == nil {
		m.closer = &mockCloser{}
	}
	doc, closer := m.document, m.closer
	m.mu.Unlock()

	if m.OpenFunc != nil {
		return m.OpenFunc(kind, path, marker)
	}
	return host.Target{Kind: kind, Document: doc}, closer, nil
}

// Closer returns the closer handed out by Open.
func (m *mockHostOpener) Closer() *mockCloser {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closer
}

func (m *mockHostOpener) Calls() []openCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]openCall(nil), m.calls...)
}

type mockDocument struct {
	mu         sync.Mutex
	paragraphs []string
	syncs      int
}

func (m *mockDocument) AppendParagraph(_ context.Context, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.paragraphs = append(m.paragraphs, text)
	return nil
}

func (m *mockDocument) Sync(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.syncs++
	return nil
}

func (m *mockDocument) Paragraphs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.paragraphs...)
}

type mockCloser struct {
	Err error

	mu     sync.Mutex
	closed int
}

func (m *mockCloser) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed++
	return m.Err
}

func (m *mockCloser) Closed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Compile-time interface verification.
var (
	_ ConfigLoader      = (*mockConfigLoader)(nil)
	_ LoggerFactory     = (*mockLoggerFactory)(nil)
	_ GraphFactory      = (*mockGraphFactory)(nil)
	_ GraphClient       = (*mockGraphClient)(nil)
	_ DraftHost         = (*mockDraft)(nil)
	_ HostOpener        = (*mockHostOpener)(nil)
	_ host.DocumentHost = (*mockDocument)(nil)
)
