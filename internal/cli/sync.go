package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/teoward/zinc/internal/syncer"
	"github.com/teoward/zinc/internal/ui"
	"github.com/teoward/zinc/internal/zotero"
)

var syncDryRun bool

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync the Zotero library into the vault",
	Long: `Read every eligible item from the Zotero library and create or update its
markdown note in the vault.

Existing notes are merged, not overwritten: header metadata is refreshed from
Zotero, tags you added in the frontmatter are kept, and the "## Notes"
section is preserved exactly as you wrote it. The "## Abstract" and
"## References" sections are regenerated from Zotero on every run.

Per-item failures are reported and counted but do not stop the run; the exit
status is nonzero only when the library itself cannot be read.`,
	Args: cobra.NoArgs,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().BoolVar(&syncDryRun, "dry-run", false, "report planned changes without writing")
}

func runSync(cmd *cobra.Command, args []string) error {
	if err := requireDB(); err != nil {
		return err
	}
	if err := requireVault(); err != nil {
		return err
	}

	lib, err := zotero.Open(resolvedDB)
	if err != nil {
		return handleError(ErrSourceUnavailable, err, "Check the --db path; Zotero does not need to be closed")
	}
	defer lib.Close()

	warn := func(format string, args ...any) {
		fmt.Fprintln(os.Stderr, ui.Warningf(format, args...))
	}

	records, skipped, err := lib.Records(cmd.Context(), warn)
	if err != nil {
		return handleError(ErrSourceUnavailable, err, "")
	}

	summary, results, err := syncer.Run(cmd.Context(), records, syncer.Options{
		Folder: resolvedFolder,
		DryRun: syncDryRun,
	})
	if err != nil {
		return handleError(ErrSyncFailed, err, "")
	}
	summary.Skipped = skipped

	for _, res := range results {
		switch {
		case res.Err != nil:
			fmt.Fprintln(os.Stderr, ui.Errorf("%s: %v", res.Key, res.Err))
		case syncDryRun && res.Action != syncer.ActionUnchanged:
			fmt.Fprintf(os.Stderr, "would be %s: %s\n", res.Action, ui.FilePath(res.Path))
		}
	}

	prefix := ""
	if syncDryRun {
		prefix = "dry run: "
	}
	fmt.Fprintln(os.Stderr, ui.Successf(
		"%s%d notes synced: %d created, %d updated, %d renamed, %d unchanged, %d failed, %d skipped",
		prefix, summary.Total(), summary.Created, summary.Updated, summary.Renamed,
		summary.Unchanged, summary.Failed, summary.Skipped))

	// Per-item failures are reported above but do not force a nonzero exit.
	return nil
}
