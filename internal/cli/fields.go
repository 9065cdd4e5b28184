package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alnah/go-profilestamp/internal/profile"
)

// FieldsCmd creates the fields command: print the fields a write would use.
func FieldsCmd(env *Env) *cobra.Command {
	var source sourceFlags

	cmd := &cobra.Command{
		Use:   "fields",
		Short: "Print the selected profile fields",
		Long: `Print the profile fields that write would place in a document, one per line.

Fields are taken in order (display name, job title, mail, mobile phone,
office location); missing, null and "undefined" values are skipped.`,
		Example: `  profilestamp fields -p me.json
  profilestamp fields --graph --user ann@contoso.com`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFields(cmd.Context(), env, source)
		},
	}

	source.bind(cmd)
	return cmd
}

func runFields(ctx context.Context, env *Env, source sourceFlags) error {
	s, err := newSession(env, source)
	if err != nil {
		return err
	}
	defer s.close()

	if err := s.checkSource(); err != nil {
		return err
	}

	rec, err := s.loadProfile(ctx)
	if err != nil {
		return fmt.Errorf("load profile: %w", err)
	}

	for _, f := range profile.Select(rec) {
		if _, err := fmt.Fprintln(env.Stdout, f); err != nil {
			return err
		}
	}
	return nil
}
