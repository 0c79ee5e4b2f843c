package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/teoward/zinc/internal/config"
	"github.com/teoward/zinc/internal/ui"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter config file",
	Long: `Write a config file with the Zotero database and vault paths, so sync can
run without flags.

Paths given via --db and --vault are recorded as-is; missing values are left
for you to fill in.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configFlag
		if path == "" {
			var err error
			path, err = config.DefaultPath()
			if err != nil {
				return handleError(ErrConfigInvalid, err, "")
			}
		}

		if _, err := os.Stat(path); err == nil && !initForce {
			return handleErrorMsg(ErrConfigInvalid,
				fmt.Sprintf("config already exists: %s", path),
				"Use --force to overwrite")
		}

		cfg := &config.Config{
			ZoteroDB:     dbFlag,
			Vault:        vaultFlag,
			PapersFolder: firstOf(folderFlag, config.DefaultPapersFolder),
		}
		if err := config.Save(path, cfg); err != nil {
			return handleError(ErrConfigInvalid, err, "")
		}

		fmt.Fprintln(os.Stderr, ui.Successf("wrote %s", ui.FilePath(path)))
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing config file")
}
