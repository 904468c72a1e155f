package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"jobeditor/internal/changes"
	"jobeditor/internal/draft"
	"jobeditor/internal/posting"
)

type diffResult struct {
	JobID   string   `json:"jobId"`
	Changes []string `json:"changes"`
}

func newDiffCommand(opts *RootOptions, load func() (*Env, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "diff <jobID>",
		Short: "Show what the stored draft would change on the saved posting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := load()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			jobID := args[0]
			key := draft.KeyFor(jobID)
			current := env.Store.Load(ctx, key)
			if current == nil {
				return fmt.Errorf("no draft stored under %s", key)
			}
			if env.Jobs == nil {
				return fmt.Errorf("diff needs access to saved postings")
			}
			jobs, err := env.Jobs(ctx)
			if err != nil {
				return err
			}
			job, err := jobs.GetJob(ctx, jobID)
			if err != nil {
				return fmt.Errorf("load job %s: %w", jobID, err)
			}

			baseline := posting.Seed(job, env.Defaults()).Snapshot()
			res := diffResult{JobID: jobID, Changes: changes.Detect(baseline, *current)}

			out := cmd.OutOrStdout()
			if opts.Format == "json" {
				return writeJSON(out, res)
			}
			if len(res.Changes) == 0 {
				fmt.Fprintln(out, "no changes")
				return nil
			}
			for _, c := range res.Changes {
				fmt.Fprintf(out, "- %s\n", c)
			}
			return nil
		},
	}
}
