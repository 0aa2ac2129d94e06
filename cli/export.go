package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/optrack/optrack/journal"
)

func newExportCmd(app *App) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the closed-trade log as CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Store == nil {
				return fmt.Errorf("export requires a sqlite journal")
			}

			recs, err := app.Store.ListClosed()
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}

			return journal.WriteClosedCSV(w, recs)
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "output file (stdout if empty)")

	return cmd
}
