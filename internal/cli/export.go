package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"jobeditor/pkg/zip"
)

func newExportCommand(load func() (*Env, error)) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every stored draft into a zip archive",
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
			now := time.Now()
			entries := make([]zip.Entry, 0, len(keys))
			for _, key := range keys {
				raw, ok := env.Store.Raw(ctx, key)
				if !ok {
					continue
				}
				entries = append(entries, zip.Entry{Name: key + ".json", Data: raw, Modified: now})
			}

			if dir := filepath.Dir(out); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return err
				}
			}
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			if err := zip.Write(f, entries); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported %d drafts to %s\n", len(entries), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "drafts.zip", "archive path")
	return cmd
}
