// Package cli implements draftctl, the operator tool for stored job drafts.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"jobeditor/internal/domain"
	"jobeditor/internal/draft"
	"jobeditor/internal/posting"
)

// Env is what the commands operate on. Jobs is only opened by commands that
// compare against the persisted posting.
type Env struct {
	Store    *draft.Store
	Jobs     func(ctx context.Context) (domain.JobReader, error)
	Defaults func() posting.Defaults
}

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Format string
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the draftctl root command. env is resolved on first
// use so --help works without any backend configured.
func NewRootCommand(env func() (*Env, error)) *cobra.Command {
	opts := &RootOptions{}
	var resolved *Env
	load := func() (*Env, error) {
		if resolved != nil {
			return resolved, nil
		}
		e, err := env()
		if err != nil {
			return nil, err
		}
		if e.Defaults == nil {
			e.Defaults = posting.StandardDefaults
		}
		resolved = e
		return e, nil
	}

	cmd := &cobra.Command{
		Use:           "draftctl",
		Short:         "Inspect and manage stored job posting drafts",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(
		newListCommand(opts, load),
		newShowCommand(load),
		newDiffCommand(opts, load),
		newClearCommand(load),
		newExportCommand(load),
	)
	return cmd
}

// keyArg maps a job id argument to its draft key. "new" names the slot of
// the posting owner has not created yet.
func keyArg(arg, owner string) string {
	if arg == "new" {
		return draft.NewKeyFor(owner)
	}
	return draft.KeyFor(arg)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
