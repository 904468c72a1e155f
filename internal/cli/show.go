package cli

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"jobeditor/internal/draft"
)

func newShowCommand(load func() (*Env, error)) *cobra.Command {
	var owner string
	cmd := &cobra.Command{
		Use:   "show <jobID|new>",
		Short: "Print the stored draft of a posting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := load()
			if err != nil {
				return err
			}
			key := keyArg(args[0], owner)
			raw, ok := env.Store.Raw(cmd.Context(), key)
			if !ok {
				return fmt.Errorf("no draft stored under %s", key)
			}
			var out bytes.Buffer
			if err := json.Indent(&out, raw, "", "  "); err != nil {
				// Unparsable drafts are shown as stored; the editor ignores them.
				out.Reset()
				out.Write(raw)
			}
			out.WriteByte('\n')
			_, err = cmd.OutOrStdout().Write(out.Bytes())
			return err
		},
	}
	cmd.Flags().StringVar(&owner, "owner", "", "employer id of a new-posting draft")
	return cmd
}

func newClearCommand(load func() (*Env, error)) *cobra.Command {
	var owner string
	cmd := &cobra.Command{
		Use:   "clear <jobID|new>",
		Short: "Delete the stored draft of a posting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := load()
			if err != nil {
				return err
			}
			key := keyArg(args[0], owner)
			if err := env.Store.Clear(cmd.Context(), key); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "cleared %s\n", key)
			return nil
		},
	}
	cmd.Flags().StringVar(&owner, "owner", "", "employer id of a new-posting draft")
	return cmd
}

func draftJobID(key string) (string, bool) {
	id, ok := draft.JobIDFromKey(key)
	return id, ok && id != ""
}
