// Package vault handles destination-side note locations: deriving the
// canonical path for a record and finding notes that moved when a title
// changed.
package vault

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/teoward/zinc/internal/note"
	"github.com/teoward/zinc/internal/slugs"
)

// NotePath returns the canonical path for a record inside dir. The filename
// embeds both a slug of the title (for discoverability in the vault) and the
// item key (for uniqueness and as the join key when the title changes).
func NotePath(dir, title, key string) string {
	return filepath.Join(dir, fmt.Sprintf("%s-%s.md", slugs.Title(title), key))
}

// FindByKey locates an existing note for key anywhere in dir, for the case
// where the canonical path moved because the source title changed.
//
// It first matches the "-KEY.md" filename suffix this tool writes, then
// falls back to scanning frontmatter zotero-key fields so notes created by
// other tools are still adopted. Returns "" when no note matches.
func FindByKey(dir, key string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("read vault folder: %w", err)
	}

	suffix := "-" + key + ".md"
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), suffix) {
			return filepath.Join(dir, entry.Name()), nil
		}
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		parsed := note.Parse(string(data))
		for _, f := range parsed.Fields {
			if f.Key == "zotero-key" && f.Value == key {
				return path, nil
			}
		}
	}
	return "", nil
}
