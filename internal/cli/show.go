package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/teoward/zinc/internal/ui"
	"github.com/teoward/zinc/internal/vault"
)

var showCmd = &cobra.Command{
	Use:   "show <key>",
	Short: "Display the synced note for a Zotero key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireVault(); err != nil {
			return err
		}

		key := args[0]
		path, err := vault.FindByKey(resolvedFolder, key)
		if err != nil {
			return handleError(ErrNoteNotFound, err, "")
		}
		if path == "" {
			return handleErrorMsg(ErrNoteNotFound,
				fmt.Sprintf("no note for key %s", key),
				"Run 'zinc sync' first, or check the key with 'zinc list'")
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return handleError(ErrNoteNotFound, err, "")
		}

		if !ui.IsTTY() {
			fmt.Print(string(data))
			return nil
		}

		rendered, err := ui.RenderMarkdown(string(data), ui.TermWidth())
		if err != nil {
			// Fall back to the raw note rather than failing the command.
			fmt.Print(string(data))
			return nil
		}
		fmt.Print(rendered)
		return nil
	},
}
