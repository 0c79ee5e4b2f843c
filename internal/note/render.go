package note

import (
	"strconv"
	"strings"
)

// Render serializes a note into the canonical text layout: frontmatter
// block, then the Abstract, Notes, and References sections in fixed order.
//
// The layout is the inverse of Parse for the fields the two functions share:
// parsing a rendered note recovers its fields, tags, and notes exactly, and
// re-rendering the result is byte-identical. Header order comes from the
// Fields slice, never from map iteration, so repeated runs cannot produce
// spurious diffs.
func Render(n Note) string {
	var b strings.Builder

	b.WriteString("---\n")
	for _, f := range n.Fields {
		b.WriteString(f.Key)
		b.WriteString(": ")
		b.WriteString(yamlScalar(f.Value))
		b.WriteString("\n")
	}
	if len(n.Tags) > 0 {
		b.WriteString("tags:\n")
		for _, t := range n.Tags {
			b.WriteString("  - ")
			b.WriteString(yamlScalar(t))
			b.WriteString("\n")
		}
	}
	b.WriteString("---\n")

	writeSection(&b, HeadingAbstract, n.Abstract)
	writeSection(&b, HeadingNotes, n.Notes)
	writeSection(&b, HeadingReferences, n.References)

	return b.String()
}

// writeSection emits a level-2 heading and its body. The renderer owns the
// blank separator lines; an empty body is just the heading.
func writeSection(b *strings.Builder, heading, body string) {
	b.WriteString("\n## ")
	b.WriteString(heading)
	b.WriteString("\n")
	if body != "" {
		b.WriteString("\n")
		b.WriteString(body)
		b.WriteString("\n")
	}
}

// yamlScalar renders a value as a YAML scalar, double-quoting whenever the
// bare form could be reinterpreted. Overquoting is harmless; the quoting
// decision depends only on the value, so rendering stays deterministic.
func yamlScalar(s string) string {
	if needsQuoting(s) {
		return strconv.Quote(s)
	}
	return s
}

func needsQuoting(s string) bool {
	if s == "" {
		return true
	}
	if s != strings.TrimSpace(s) {
		return true
	}
	if strings.ContainsAny(s, ":#\"'`{}[]&*!|>\n\t\\") {
		return true
	}
	switch s[0] {
	case '-', '?', ',', '%', '@':
		return true
	}
	return false
}
