package cli

import (
	"path/filepath"
	"testing"

	"github.com/teoward/zinc/internal/testutil"
)

// execZinc runs the root command with fresh resolution state.
func execZinc(t *testing.T, args ...string) error {
	t.Helper()
	dbFlag, vaultFlag, folderFlag, configFlag = "", "", "", ""
	resolvedDB, resolvedVault, resolvedFolder = "", "", ""
	syncDryRun = false
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func TestSyncEndToEnd(t *testing.T) {
	fixture := testutil.NewZoteroDB(t)
	item := fixture.AddItem("AB12CD34", "journalArticle", map[string]string{
		"title": "A Synced Paper",
		"date":  "2021",
	})
	fixture.Tag(item, "ml")

	v := testutil.NewVault(t)
	missingConfig := filepath.Join(t.TempDir(), "config.toml")

	err := execZinc(t,
		"--config", missingConfig,
		"--db", fixture.Path,
		"--vault", v.Path,
		"--folder", "papers",
		"sync")
	if err != nil {
		t.Fatalf("sync: %v", err)
	}

	v.AssertFileExists("papers/a-synced-paper-AB12CD34.md")
	v.AssertFileContains("papers/a-synced-paper-AB12CD34.md", "title: A Synced Paper")
	v.AssertFileContains("papers/a-synced-paper-AB12CD34.md", "year: 2021")
	v.AssertFileContains("papers/a-synced-paper-AB12CD34.md", "- ml")
}

func TestSyncExportsRecordWithBadDate(t *testing.T) {
	fixture := testutil.NewZoteroDB(t)
	fixture.AddItem("BADDATE1", "report", map[string]string{
		"title": "Undatable",
		"date":  "circa the nineties",
	})

	v := testutil.NewVault(t)
	err := execZinc(t,
		"--config", filepath.Join(t.TempDir(), "config.toml"),
		"--db", fixture.Path,
		"--vault", v.Path,
		"--folder", "papers",
		"sync")
	if err != nil {
		t.Fatalf("sync: %v", err)
	}

	// An unparsable date is a warning, not a skip: the note is still
	// written, just without a year field.
	v.AssertFileExists("papers/undatable-BADDATE1.md")
}

func TestSyncDryRun(t *testing.T) {
	fixture := testutil.NewZoteroDB(t)
	fixture.AddItem("DRY00001", "book", map[string]string{"title": "Untouched"})

	v := testutil.NewVault(t)
	err := execZinc(t,
		"--config", filepath.Join(t.TempDir(), "config.toml"),
		"--db", fixture.Path,
		"--vault", v.Path,
		"--folder", "papers",
		"sync", "--dry-run")
	if err != nil {
		t.Fatalf("sync --dry-run: %v", err)
	}
	v.AssertFileNotExists("papers/untouched-DRY00001.md")
}

func TestSyncMissingDatabaseFails(t *testing.T) {
	v := testutil.NewVault(t)
	err := execZinc(t,
		"--config", filepath.Join(t.TempDir(), "config.toml"),
		"--db", filepath.Join(t.TempDir(), "nope.sqlite"),
		"--vault", v.Path,
		"sync")
	if err == nil {
		t.Fatal("sync against a missing database should fail")
	}
}

func TestSyncRequiresConfiguration(t *testing.T) {
	t.Setenv("ZINC_ZOTERO_DB", "")
	t.Setenv("ZINC_VAULT", "")
	err := execZinc(t, "--config", filepath.Join(t.TempDir(), "config.toml"), "sync")
	if err == nil {
		t.Fatal("sync without a configured database should fail")
	}
}
