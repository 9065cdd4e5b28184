package cli

import (
	"context"
	"io"
	"os"

	"github.com/alnah/go-profilestamp/internal/config"
	"github.com/alnah/go-profilestamp/internal/graph"
	"github.com/alnah/go-profilestamp/internal/host"
	"github.com/alnah/go-profilestamp/internal/logger"
	"github.com/alnah/go-profilestamp/internal/mailfile"
	"github.com/alnah/go-profilestamp/internal/ooxml"
	"github.com/alnah/go-profilestamp/internal/profile"
	"github.com/alnah/go-profilestamp/internal/xlsx"
)

// Env holds injectable dependencies for CLI commands.
// This is the central injection point for testing CLI commands in isolation.
//
// All fields have production defaults via DefaultEnv(). Tests can override
// specific fields using the With* options or by creating a custom Env.
type Env struct {
	// I/O and environment
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Getenv func(string) string

	// Factories for domain objects
	ConfigLoader  ConfigLoader
	LoggerFactory LoggerFactory
	GraphFactory  GraphFactory
	HostOpener    HostOpener
}

// ConfigLoader loads configuration.
type ConfigLoader interface {
	Load() (config.Config, error)
}

// LoggerFactory builds the command logger.
type LoggerFactory interface {
	NewLogger(mode string, verbose bool) (*logger.Logger, error)
}

// DraftHost is a mail host backed by a Graph draft.
type DraftHost interface {
	host.MailHost
	ID() string
}

// GraphClient is the Microsoft Graph surface used by commands.
type GraphClient interface {
	FetchProfile(ctx context.Context) (profile.Record, error)
	Draft(id, marker string) DraftHost
}

// GraphFactory creates authenticated Graph clients.
type GraphFactory interface {
	NewClient(cfg graph.Config, log *logger.Logger) (GraphClient, error)
}

// HostOpener opens a file-backed host document. The returned closer
// releases it after the write.
type HostOpener interface {
	Open(kind host.Kind, path, marker string) (host.Target, io.Closer, error)
}

// EnvOption configures an Env.
type EnvOption func(*Env)

// WithStdin sets the stdin reader.
func WithStdin(r io.Reader) EnvOption {
	return func(e *Env) {
		e.Stdin = r
	}
}

// WithStdout sets the stdout writer.
func WithStdout(w io.Writer) EnvOption {
	return func(e *Env) {
		e.Stdout = w
	}
}

// WithStderr sets the stderr writer.
func WithStderr(w io.Writer) EnvOption {
	return func(e *Env) {
		e.Stderr = w
	}
}

// WithGetenv sets the environment variable getter.
func WithGetenv(fn func(string) string) EnvOption {
	return func(e *Env) {
		e.Getenv = fn
	}
}

// WithConfigLoader sets the config loader.
func WithConfigLoader(l ConfigLoader) EnvOption {
	return func(e *Env) {
		e.ConfigLoader = l
	}
}

// WithLoggerFactory sets the logger factory.
func WithLoggerFactory(f LoggerFactory) EnvOption {
	return func(e *Env) {
		e.LoggerFactory = f
	}
}

// WithGraphFactory sets the Graph client factory.
func WithGraphFactory(f GraphFactory) EnvOption {
	return func(e *Env) {
		e.GraphFactory = f
	}
}

// WithHostOpener sets the host opener.
func WithHostOpener(o HostOpener) EnvOption {
	return func(e *Env) {
		e.HostOpener = o
	}
}

// DefaultEnv returns an Env with production defaults.
func DefaultEnv() *Env {
	return &Env{
		Stdin:         os.Stdin,
		Stdout:        os.Stdout,
		Stderr:        os.Stderr,
		Getenv:        os.Getenv,
		ConfigLoader:  &defaultConfigLoader{},
		LoggerFactory: &defaultLoggerFactory{},
		GraphFactory:  &defaultGraphFactory{},
		HostOpener:    &defaultHostOpener{},
	}
}

// NewEnv creates an Env with the given options applied to defaults.
func NewEnv(opts ...EnvOption) *Env {
	env := DefaultEnv()
	for _, opt := range opts {
		opt(env)
	}
	return env
}

// ---------------------------------------------------------------------------
// Default implementations - delegate to real packages
// ---------------------------------------------------------------------------

// defaultConfigLoader implements ConfigLoader using the config package.
type defaultConfigLoader struct{}

func (defaultConfigLoader) Load() (config.Config, error) {
	return config.Load()
}

// defaultLoggerFactory implements LoggerFactory with zap on stderr.
type defaultLoggerFactory struct{}

func (defaultLoggerFactory) NewLogger(mode string, verbose bool) (*logger.Logger, error) {
	return logger.New(mode, verbose)
}

// defaultGraphFactory implements GraphFactory using msgraph-sdk-go.
type defaultGraphFactory struct{}

func (defaultGraphFactory) NewClient(cfg graph.Config, log *logger.Logger) (GraphClient, error) {
	c, err := graph.New(cfg, graph.WithLogger(log))
	if err != nil {
		return nil, err
	}
	return graphClient{c}, nil
}

// graphClient adapts *graph.Client to GraphClient.
type graphClient struct {
	*graph.Client
}

func (g graphClient) Draft(id, marker string) DraftHost {
	return g.Client.Draft(id, marker)
}

// defaultHostOpener implements HostOpener with the file backends.
type defaultHostOpener struct{}

func (defaultHostOpener) Open(kind host.Kind, path, marker string) (host.Target, io.Closer, error) {
	target := host.Target{Kind: kind}

	switch kind {
	case host.Spreadsheet:
		wb, err := xlsx.Open(path)
		if err != nil {
			return target, nil, err
		}
		target.Spreadsheet = wb
		return target, wb, nil
	case host.Mail:
		target.Mail = mailfile.Open(path, marker)
	case host.Presentation:
		pres, err := ooxml.OpenPresentation(path, marker)
		if err != nil {
			return target, nil, err
		}
		target.Presentation = pres
	case host.DocumentEditor:
		doc, err := ooxml.OpenDocument(path)
		if err != nil {
			return target, nil, err
		}
		target.Document = doc
	}

	// Unknown kinds open nothing; the dispatcher rejects them.
	return target, nopCloser{}, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Compile-time interface verification.
var (
	_ ConfigLoader  = (*defaultConfigLoader)(nil)
	_ LoggerFactory = (*defaultLoggerFactory)(nil)
	_ GraphFactory  = (*defaultGraphFactory)(nil)
	_ HostOpener    = (*defaultHostOpener)(nil)
	_ GraphClient   = graphClient{}
)
