// Package slugs provides the canonical slugification helper used for note filenames.
package slugs

import (
	goslug "github.com/gosimple/slug"
)

// Title converts a record title to a filename-safe slug. A title with no
// sluggable characters (empty, or all punctuation) becomes "untitled".
func Title(s string) string {
	slugged := goslug.Make(s)
	if slugged == "" {
		return "untitled"
	}
	return slugged
}
