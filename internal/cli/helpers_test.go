package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// ---------------------------------------------------------------------------
// syncBuffer - thread-safe bytes.Buffer for concurrent test output
// ---------------------------------------------------------------------------

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (n int, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// Compile-time check that syncBuffer implements io.Writer.
var _ io.Writer = (*syncBuffer)(nil)

// ---------------------------------------------------------------------------
// testMocks - convenience struct for grouping all mocks
// ---------------------------------------------------------------------------

type testMocks struct {
	configLoader *mockConfigLoader
	logger       *mockLoggerFactory
	graph        *mockGraphFactory
	opener       *mockHostOpener
}

func newTestMocks() *testMocks {
	return &testMocks{
		configLoader: &mockConfigLoader{},
		logger:       &mockLoggerFactory{},
		graph:        &mockGraphFactory{},
		opener:       &mockHostOpener{},
	}
}

// ---------------------------------------------------------------------------
// testEnv - creates a fully mocked Env for testing
// ---------------------------------------------------------------------------

type testEnvOptions struct {
	stdin  io.Reader
	getenv func(string) string
	mocks  *testMocks
}

type testEnvOption func(*testEnvOptions)

func withStdin(s string) testEnvOption {
	return func(o *testEnvOptions) { o.stdin = strings.NewReader(s) }
}

func withEnvVars(vars map[string]string) testEnvOption {
	return func(o *testEnvOptions) {
		o.getenv = func(k string) string { return vars[k] }
	}
}

func withMocks(m *testMocks) testEnvOption {
	return func(o *testEnvOptions) { o.mocks = m }
}

// testEnv creates a test Env with all dependencies mocked.
// Returns the Env, its stdout and stderr buffers, and the mocks.
func testEnv(opts ...testEnvOption) (*Env, *syncBuffer, *syncBuffer, *testMocks) {
	options := &testEnvOptions{
		stdin:  strings.NewReader(""),
		getenv: func(string) string { return "" },
		mocks:  newTestMocks(),
	}
	for _, opt := range opts {
		opt(options)
	}

	stdout, stderr := &syncBuffer{}, &syncBuffer{}
	env := &Env{
		Stdin:         options.stdin,
		Stdout:        stdout,
		Stderr:        stderr,
		Getenv:        options.getenv,
		ConfigLoader:  options.mocks.configLoader,
		LoggerFactory: options.mocks.logger,
		GraphFactory:  options.mocks.graph,
		HostOpener:    options.mocks.opener,
	}
	return env, stdout, stderr, options.mocks
}

// ---------------------------------------------------------------------------
// Test helpers
// ---------------------------------------------------------------------------

const annProfile = `{
  "displayName": "Ann Lee",
  "givenName": "Ann",
  "surname": "Lee",
  "jobTitle": null,
  "mail": "ann@contoso.com",
  "mobilePhone": "undefined",
  "officeLocation": "HQ",
  "businessPhones": ["555-1111"]
}`

// writeProfile writes content to a profile file in a temp dir.
func writeProfile(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "me.json")
	if err := os.WriteFile(p, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write profile: %v", err)
	}
	return p
}
