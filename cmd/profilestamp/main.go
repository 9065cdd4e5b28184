package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/alnah/go-profilestamp/internal/apierr"
	"github.com/alnah/go-profilestamp/internal/cli"
	"github.com/alnah/go-profilestamp/internal/config"
	"github.com/alnah/go-profilestamp/internal/dispatch"
	"github.com/alnah/go-profilestamp/internal/graph"
	"github.com/alnah/go-profilestamp/internal/host"
	"github.com/alnah/go-profilestamp/internal/profile"
	"github.com/alnah/go-profilestamp/internal/signature"
)

// Injected at build time via ldflags.
var (
	version = "dev"
	commit  = "unknown"
)

// Exit codes.
const (
	ExitOK         = 0
	ExitGeneral    = 1
	ExitUsage      = 2
	ExitSetup      = 3
	ExitValidation = 4
	ExitHostWrite  = 5
	ExitInterrupt  = 130
)

func main() {
	// Load .env file if present (ignore error if missing).
	_ = godotenv.Load()

	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	env := cli.DefaultEnv()

	rootCmd := &cobra.Command{
		Use:     "profilestamp",
		Short:   "Write your user profile into spreadsheets, mails, slides and documents",
		Version: fmt.Sprintf("%s (commit: %s)", version, commit),
		// Silence Cobra's default error/usage printing; we handle it ourselves.
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	rootCmd.AddCommand(cli.WriteCmd(env))
	rootCmd.AddCommand(cli.SignatureCmd(env))
	rootCmd.AddCommand(cli.FieldsCmd(env))
	rootCmd.AddCommand(cli.ConfigCmd(env))

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps errors to exit codes.
func exitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	if errors.Is(err, context.Canceled) {
		return ExitInterrupt
	}

	if isCobraUsageError(err) || errors.Is(err, cli.ErrNoProfileSource) {
		return ExitUsage
	}

	// Setup: credentials and Graph access.
	if errors.Is(err, graph.ErrClientIDMissing) || errors.Is(err, graph.ErrUserRequired) ||
		errors.Is(err, apierr.ErrAuthFailed) {
		return ExitSetup
	}

	// Validation: inputs that can never be written.
	if errors.Is(err, profile.ErrInvalidRecord) || errors.Is(err, profile.ErrNotFound) ||
		errors.Is(err, host.ErrUnknownKind) || errors.Is(err, dispatch.ErrUnsupportedHost) ||
		errors.Is(err, signature.ErrTemplate) || errors.Is(err, cli.ErrOutputExists) ||
		errors.Is(err, config.ErrUnknownKey) || errors.Is(err, config.ErrInvalidKey) ||
		errors.Is(err, config.ErrInvalidValue) {
		return ExitValidation
	}

	// Host write: the document host rejected or failed the write.
	var writeErr *dispatch.WriteError
	if errors.As(err, &writeErr) {
		return ExitHostWrite
	}

	return ExitGeneral
}

// cobraUsageErrorPatterns contains error message substrings that indicate Cobra usage errors.
// Cobra doesn't expose typed errors, so string matching is the only reliable approach.
var cobraUsageErrorPatterns = []string{
	"required flag",
	"unknown flag",
	"unknown shorthand",
	"unknown command",
	"flag needs an argument",
	"invalid argument",
	"if any flags in the group",
	"accepts ",
	"requires at least",
	"requires at most",
}

// isCobraUsageError checks if an error is a Cobra usage/parsing error.
func isCobraUsageError(err error) bool {
	if err == nil {
		return false
	}
	errMsg := err.Error()
	for _, pattern := range cobraUsageErrorPatterns {
		if strings.Contains(errMsg, pattern) {
			return true
		}
	}
	return false
}
