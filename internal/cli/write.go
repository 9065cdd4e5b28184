package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/alnah/go-profilestamp/internal/config"
	"github.com/alnah/go-profilestamp/internal/dispatch"
	"github.com/alnah/go-profilestamp/internal/host"
	"github.com/alnah/go-profilestamp/internal/profile"
	"github.com/alnah/go-profilestamp/internal/signature"
)

// writeOptions holds validated options for the write command.
type writeOptions struct {
	target string
	kind   host.Kind
	marker string
	source sourceFlags
}

// WriteCmd creates the write command.
// The env parameter provides injectable dependencies for testing.
func WriteCmd(env *Env) *cobra.Command {
	var (
		source   sourceFlags
		hostFlag string
		marker   string
	)

	cmd := &cobra.Command{
		Use:   "write <target>",
		Short: "Write profile fields into a document",
		Long: `Write the selected profile fields into a host document.

The host is detected from the target:
  .xlsx, .xlsm        spreadsheet: fields in B5 downward, column autofit
  .docx               document: one paragraph per field at the end
  .pptx               presentation: fields replace the selection marker
  .html, .htm         mail body: HTML signature at the selection marker
  graph:draft[/<id>]  Outlook draft via Microsoft Graph (new draft without id)

Use --host to override detection.`,
		Example: `  profilestamp write contacts.xlsx -p me.json
  profilestamp write report.docx --graph
  profilestamp write graph:draft --graph
  cat me.json | profilestamp write slides.pptx -p - --marker "[[me]]"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := parseWriteOptions(args[0], hostFlag, marker, source)
			if err != nil {
				return err
			}
			return runWrite(cmd.Context(), env, opts)
		},
	}

	source.bind(cmd)
	cmd.Flags().StringVar(&hostFlag, "host", "", "Host kind: spreadsheet, mail, presentation, document")
	cmd.Flags().StringVar(&marker, "marker", "", "Selection marker (default: config selection-marker or {{selection}})")

	return cmd
}

// parseWriteOptions validates CLI inputs at the boundary.
func parseWriteOptions(target, hostFlag, marker string, source sourceFlags) (writeOptions, error) {
	kind := host.Detect(target)
	if hostFlag != "" {
		parsed, err := host.ParseKind(hostFlag)
		if err != nil {
			return writeOptions{}, err
		}
		kind = parsed
	}

	return writeOptions{
		target: target,
		kind:   kind,
		marker: marker,
		source: source,
	}, nil
}

// runWrite loads the profile and opens the host concurrently, then
// dispatches one write.
func runWrite(ctx context.Context, env *Env, opts writeOptions) (err error) {
	s, err := newSession(env, opts.source)
	if err != nil {
		return err
	}
	defer s.close()

	if err := s.checkSource(); err != nil {
		return err
	}

	marker := opts.marker
	if marker == "" {
		marker = s.cfg.SelectionMarker
	}

	renderer, err := signature.NewRenderer(signature.WithTemplateFile(config.ExpandPath(s.cfg.SignatureTemplate)))
	if err != nil {
		return err
	}

	draft := host.IsGraphDraft(opts.target)
	if opts.source.useGraph || draft {
		// Created before the fan-out so both goroutines share one client.
		if _, err := s.graphClient(); err != nil {
			return err
		}
	}

	var (
		rec    profile.Record
		target host.Target
		closer io.Closer
		mail   DraftHost
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		r, err := s.loadProfile(gctx)
		if err != nil {
			return fmt.Errorf("load profile: %w", err)
		}
		rec = r
		return nil
	})
	g.Go(func() error {
		if draft {
			mail = s.client.Draft(host.GraphDraftID(opts.target), marker)
			target = host.Target{Kind: opts.kind, Mail: mail}
			return nil
		}
		t, c, err := env.HostOpener.Open(opts.kind, opts.target, marker)
		if err != nil {
			return fmt.Errorf("open %s: %w", opts.target, err)
		}
		target, closer = t, c
		return nil
	})
	// The host may be open even when loading the profile failed.
	defer func() {
		if closer == nil {
			return
		}
		if cerr := closer.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", opts.target, cerr)
		}
	}()
	if err := g.Wait(); err != nil {
		return err
	}

	s.log.Debug("writing profile", "target", opts.target, "host", opts.kind.String())

	reported := false
	done := func(error) { reported = true }

	writer := dispatch.NewWriter(renderer, dispatch.WithLogger(s.log))
	if err := writer.Write(ctx, target, rec, done); err != nil {
		return err
	}

	if target.Kind == host.Mail {
		if !reported {
			return ErrIncomplete
		}
		fmt.Fprintf(env.Stderr, "Inserted signature into %s (%s)\n", describeTarget(opts.target, mail), target.Kind)
		return nil
	}

	fmt.Fprintf(env.Stderr, "Wrote %d fields to %s (%s)\n", len(profile.Select(rec)), opts.target, target.Kind)
	return nil
}

// describeTarget names the written target, resolving new drafts to their id.
func describeTarget(target string, mail DraftHost) string {
	if mail == nil || mail.ID() == "" {
		return target
	}
	return host.GraphDraftScheme + "/" + mail.ID()
}
