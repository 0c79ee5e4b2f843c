// Package cli implements the command-line interface.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/teoward/zinc/internal/config"
)

var (
	// Global flags
	dbFlag     string
	vaultFlag  string
	folderFlag string
	configFlag string

	// Resolved values (flags > environment > config file)
	resolvedDB     string
	resolvedVault  string
	resolvedFolder string
	cfg            *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "zinc",
	Short: "Zinc - sync a Zotero library into an Obsidian vault",
	Long: `Zinc materializes each item of a Zotero library as a markdown note in an
Obsidian vault and keeps the notes up to date across runs.

The library stays the source of truth for metadata; your edits to the
"## Notes" section and any tags you add in the frontmatter are preserved.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Commands that don't touch the library or the vault skip resolution.
		switch cmd.Name() {
		case "init", "version", "completion", "help":
			return nil
		}
		if cmd.Parent() != nil && cmd.Parent().Name() == "completion" {
			return nil
		}

		configPath := configFlag
		if configPath == "" {
			var err error
			configPath, err = config.DefaultPath()
			if err != nil {
				return fmt.Errorf("failed to resolve config path: %w", err)
			}
		}

		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		resolvedDB = firstOf(dbFlag, os.Getenv("ZINC_ZOTERO_DB"), cfg.ZoteroDB)
		resolvedVault = firstOf(vaultFlag, os.Getenv("ZINC_VAULT"), cfg.Vault)
		folder := firstOf(folderFlag, os.Getenv("ZINC_PAPERS_FOLDER"), cfg.PapersFolder, config.DefaultPapersFolder)

		resolvedDB = config.ExpandHome(resolvedDB)
		resolvedVault = config.ExpandHome(resolvedVault)
		if resolvedVault != "" {
			resolvedFolder = filepath.Join(resolvedVault, folder)
		}

		return nil
	},
}

// firstOf returns the first non-empty value.
func firstOf(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// requireDB validates that a Zotero database path was configured.
func requireDB() error {
	if resolvedDB == "" {
		return handleErrorMsg(ErrSourceNotConfigured,
			"no Zotero database configured",
			"Use --db, set ZINC_ZOTERO_DB, or run 'zinc init'")
	}
	return nil
}

// requireVault validates the vault path and that it exists.
func requireVault() error {
	if resolvedVault == "" {
		return handleErrorMsg(ErrVaultNotConfigured,
			"no vault configured",
			"Use --vault, set ZINC_VAULT, or run 'zinc init'")
	}
	if _, err := os.Stat(resolvedVault); os.IsNotExist(err) {
		return handleErrorMsg(ErrVaultNotFound,
			fmt.Sprintf("vault not found: %s", resolvedVault), "")
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbFlag, "db", "", "path to zotero.sqlite")
	rootCmd.PersistentFlags().StringVar(&vaultFlag, "vault", "", "path to the Obsidian vault")
	rootCmd.PersistentFlags().StringVar(&folderFlag, "folder", "", "vault subfolder for synced notes")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "path to config file")

	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the CLI.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !isHandled(err) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}
