package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

type listEntry struct {
	Key   string `json:"key"`
	JobID string `json:"jobId"`
	Title string `json:"title"`
	Bytes int    `json:"bytes"`
}

func newListCommand(opts *RootOptions, load func() (*Env, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored drafts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := load()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			keys, err := env.Store.Keys(ctx)
			if err != nil {
				return err
			}
			entries := make([]listEntry, 0, len(keys))
			for _, key := range keys {
				raw, ok := env.Store.Raw(ctx, key)
				if !ok {
					continue
				}
				e := listEntry{Key: key, Bytes: len(raw)}
				if id, ok := draftJobID(key); ok {
					e.JobID = id
				}
				if d := env.Store.Load(ctx, key); d != nil {
					e.Title = d.Title
				}
				entries = append(entries, e)
			}

			out := cmd.OutOrStdout()
			if opts.Format == "json" {
				return writeJSON(out, entries)
			}
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "KEY\tJOB\tTITLE\tBYTES")
			for _, e := range entries {
				job := e.JobID
				if job == "" {
					job = "(new)"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", e.Key, job, e.Title, e.Bytes)
			}
			return tw.Flush()
		},
	}
}
