package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alnah/go-profilestamp/internal/config"
	"github.com/alnah/go-profilestamp/internal/graph"
	"github.com/alnah/go-profilestamp/internal/logger"
	"github.com/alnah/go-profilestamp/internal/profile"
)

// sourceFlags are the profile-source flags shared by write, signature and fields.
type sourceFlags struct {
	profilePath string
	useGraph    bool
	user        string
	verbose     bool
}

func (f *sourceFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.profilePath, "profile", "p", "", "Profile JSON file, or - for stdin")
	cmd.Flags().BoolVar(&f.useGraph, "graph", false, "Fetch the profile from Microsoft Graph")
	cmd.Flags().StringVar(&f.user, "user", "", "Graph user id or UPN (default: signed-in user, or config user)")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "Log debug output to stderr")
	cmd.MarkFlagsMutuallyExclusive("profile", "graph")
}

// session is the per-command state resolved from config and flags.
type session struct {
	env   *Env
	cfg   config.Config
	log   *logger.Logger
	flags sourceFlags

	client GraphClient
}

// newSession loads config and builds the logger. A config read failure
// is reported but not fatal.
func newSession(env *Env, flags sourceFlags) (*session, error) {
	cfg, err := env.ConfigLoader.Load()
	if err != nil {
		fmt.Fprintf(env.Stderr, "Warning: failed to load config: %v\n", err)
	}

	log, err := env.LoggerFactory.NewLogger(cfg.LogMode, flags.verbose)
	if err != nil {
		return nil, fmt.Errorf("logger setup: %w", err)
	}

	return &session{env: env, cfg: cfg, log: log, flags: flags}, nil
}

// checkSource fails fast when no profile source was given.
func (s *session) checkSource() error {
	if s.flags.profilePath == "" && !s.flags.useGraph {
		return ErrNoProfileSource
	}
	return nil
}

// graphClient returns the Graph client, creating it on first use.
func (s *session) graphClient() (GraphClient, error) {
	if s.client != nil {
		return s.client, nil
	}

	user := s.flags.user
	if user == "" {
		user = s.cfg.User
	}

	c, err := s.env.GraphFactory.NewClient(graph.Config{
		TenantID:     s.cfg.TenantID,
		ClientID:     s.cfg.ClientID,
		ClientSecret: s.env.Getenv(config.EnvClientSecret),
		User:         user,
		Prompt:       s.env.Stderr,
	}, s.log)
	if err != nil {
		return nil, err
	}
	s.client = c
	return c, nil
}

// loadProfile reads the record from the selected source.
func (s *session) loadProfile(ctx context.Context) (profile.Record, error) {
	if s.flags.useGraph {
		c, err := s.graphClient()
		if err != nil {
			return nil, err
		}
		return c.FetchProfile(ctx)
	}
	return profile.Load(s.flags.profilePath, s.env.Stdin)
}

func (s *session) close() {
	s.log.Sync()
}
