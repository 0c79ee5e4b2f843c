// Package note implements the reconciliation core: parsing an existing vault
// note, merging it with a fresh library record, and rendering the canonical
// note layout back out.
//
// Parse, Reconcile, and Render are three independent pure functions. The
// driver composes them; none of them touch the filesystem, which keeps the
// idempotence and round-trip properties testable without I/O.
package note

// Field is one frontmatter key/value pair. Values are kept as rendered
// scalar strings; the tags list is carried separately because it is the only
// header field the reconciler merges instead of replacing.
type Field struct {
	Key   string
	Value string
}

// Parsed is what an existing note on disk contributes to reconciliation.
type Parsed struct {
	// Exists is false when no note exists yet for the record's key.
	Exists bool

	// Fields are the frontmatter fields as found on disk, in document order,
	// excluding tags. Unknown fields are retained here but not interpreted.
	Fields []Field

	// Tags are the entries of the frontmatter tags list, in document order.
	Tags []string

	// Notes is the verbatim body of the "## Notes" section. Empty when the
	// section is absent or blank; callers must not distinguish the two.
	Notes string
}

// Note is the reconciler's output: a fully resolved note ready to render.
type Note struct {
	// Fields is the complete frontmatter in render order, excluding tags.
	Fields []Field

	// Tags is the merged tag list: source tags first in source order, then
	// any existing-only tags in their on-disk order.
	Tags []string

	// Abstract is regenerated from the source record on every run.
	Abstract string

	// Notes is user-owned text carried over verbatim from the parsed note.
	Notes string

	// References is regenerated from the source record on every run.
	References string
}

// Section headings in canonical order. The parser treats these as the fixed
// heading vocabulary; the renderer always emits all three.
const (
	HeadingAbstract   = "Abstract"
	HeadingNotes      = "Notes"
	HeadingReferences = "References"
)
