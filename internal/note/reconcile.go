package note

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/teoward/zinc/internal/zotero"
)

// Reconcile merges a fresh library record with an existing parsed note.
//
// It is a pure function: no I/O, deterministic for any given inputs. The
// library is the source of truth for everything except the two user-owned
// regions, which survive any metadata change:
//
//   - tags: exact-string, case-sensitive union of source and existing tags
//     ("ML" and "ml" are two tags); source tags come first in source order,
//     then existing-only tags in their on-disk order
//   - notes: carried over byte-for-byte, never inspected
//
// The abstract and references sections are regenerated from the record every
// run; manual edits there are deliberately overwritten.
func Reconcile(rec zotero.Record, existing Parsed) Note {
	n := Note{
		Fields:     headerFields(rec),
		Tags:       mergeTags(rec.Tags, existing),
		Abstract:   rec.Abstract,
		References: referencesBody(rec),
	}
	if existing.Exists {
		n.Notes = existing.Notes
	}
	return n
}

// headerFields builds the full frontmatter from the record. The order here
// is the canonical serialization order; optional fields are omitted when the
// record has no value for them.
func headerFields(rec zotero.Record) []Field {
	fields := []Field{
		{Key: "title", Value: rec.Title},
		{Key: "type", Value: rec.ItemType},
	}
	if rec.Authors != "" {
		fields = append(fields, Field{Key: "authors", Value: rec.Authors})
	}
	if rec.Year > 0 {
		fields = append(fields, Field{Key: "year", Value: strconv.Itoa(rec.Year)})
	}
	fields = append(fields, Field{Key: "zotero-key", Value: rec.Key})
	if rec.DOI != "" {
		fields = append(fields, Field{Key: "doi", Value: rec.DOI})
	}
	if rec.URL != "" {
		fields = append(fields, Field{Key: "url", Value: rec.URL})
	}
	return fields
}

// mergeTags unions source and existing tags. Output order is stable across
// runs when the sets do not change, which the idempotence property depends
// on: source tags first in source order, then existing-only tags in
// first-seen order.
func mergeTags(source []string, existing Parsed) []string {
	var merged []string
	seen := make(map[string]struct{}, len(source))
	for _, t := range source {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		merged = append(merged, t)
	}
	if !existing.Exists {
		return merged
	}
	for _, t := range existing.Tags {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		merged = append(merged, t)
	}
	return merged
}

// referencesBody regenerates the references section from the record.
func referencesBody(rec zotero.Record) string {
	lines := []string{
		fmt.Sprintf("- Zotero Key: %s", rec.Key),
	}
	if rec.DOI != "" {
		lines = append(lines, fmt.Sprintf("- DOI: %s", rec.DOI))
	}
	if rec.URL != "" {
		lines = append(lines, fmt.Sprintf("- URL: %s", rec.URL))
	}
	if rec.Attachment != "" {
		lines = append(lines, fmt.Sprintf("- Attachment: [Open in Zotero](%s)", rec.Attachment))
	}
	return strings.Join(lines, "\n")
}
