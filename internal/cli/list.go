package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/teoward/zinc/internal/ui"
	"github.com/teoward/zinc/internal/zotero"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the library items that sync would export",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireDB(); err != nil {
			return err
		}

		lib, err := zotero.Open(resolvedDB)
		if err != nil {
			return handleError(ErrSourceUnavailable, err, "")
		}
		defer lib.Close()

		warn := func(format string, args ...any) {
			fmt.Fprintln(os.Stderr, ui.Warningf(format, args...))
		}
		records, _, err := lib.Records(cmd.Context(), warn)
		if err != nil {
			return handleError(ErrSourceUnavailable, err, "")
		}

		for _, rec := range records {
			year := "    "
			if rec.Year > 0 {
				year = fmt.Sprintf("%d", rec.Year)
			}
			title := rec.Title
			if title == "" {
				title = ui.Hint("(untitled)")
			}
			fmt.Printf("%s  %s  %s\n", ui.Key(rec.Key), ui.Muted.Render(year), title)
		}
		fmt.Fprintln(os.Stderr, ui.Hint(fmt.Sprintf("%d items", len(records))))
		return nil
	},
}
