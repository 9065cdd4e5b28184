package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alnah/go-profilestamp/internal/config"
	"github.com/alnah/go-profilestamp/internal/signature"
)

// SignatureCmd creates the signature command (render without writing to a host).
func SignatureCmd(env *Env) *cobra.Command {
	var (
		source   sourceFlags
		template string
		output   string
	)

	cmd := &cobra.Command{
		Use:   "signature",
		Short: "Render the HTML mail signature",
		Long: `Render the HTML mail signature for a profile.

The built-in template is used unless --template or the signature-template
setting names another html/template file. Values are HTML-escaped.`,
		Example: `  profilestamp signature -p me.json
  profilestamp signature --graph -o signature.html
  profilestamp signature -p me.json --template ~/sig.html.tmpl`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSignature(cmd.Context(), env, source, template, output)
		},
	}

	source.bind(cmd)
	cmd.Flags().StringVar(&template, "template", "", "Signature template file (default: config signature-template or built-in)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to file instead of stdout (must not exist)")

	return cmd
}

func runSignature(ctx context.Context, env *Env, source sourceFlags, template, output string) error {
	s, err := newSession(env, source)
	if err != nil {
		return err
	}
	defer s.close()

	if err := s.checkSource(); err != nil {
		return err
	}

	if template == "" {
		template = s.cfg.SignatureTemplate
	}
	renderer, err := signature.NewRenderer(signature.WithTemplateFile(config.ExpandPath(template)))
	if err != nil {
		return err
	}

	rec, err := s.loadProfile(ctx)
	if err != nil {
		return fmt.Errorf("load profile: %w", err)
	}

	html, err := renderer.Render(rec)
	if err != nil {
		return err
	}

	if output == "" {
		_, err := fmt.Fprintln(env.Stdout, html)
		return err
	}
	if err := writeFileAtomic(output, html+"\n"); err != nil {
		return err
	}
	fmt.Fprintf(env.Stderr, "Done: %s\n", output)
	return nil
}
