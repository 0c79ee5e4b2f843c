package note

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// Parse parses the raw text of an existing note.
//
// Parsing is tolerant by design: a missing, unclosed, or malformed
// frontmatter block yields empty fields with Exists still true, so body
// sections can still be recovered from a damaged note instead of failing
// the item.
func Parse(content string) Parsed {
	p := Parsed{Exists: true}

	lines := strings.Split(content, "\n")
	bodyStart := 0

	if end, ok := frontmatterBounds(lines); ok {
		raw := strings.Join(lines[1:end], "\n")
		p.Fields, p.Tags = parseFields(raw)
		bodyStart = end + 1
	}

	body := strings.Join(lines[bodyStart:], "\n")
	p.Notes = sectionBody(body, HeadingNotes)
	return p
}

// frontmatterBounds returns the closing delimiter line index of a leading
// frontmatter block. It only detects frontmatter when the first line is
// '---'; an unclosed block is treated as no frontmatter at all.
func frontmatterBounds(lines []string) (endLine int, ok bool) {
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "---" {
		return -1, false
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			return i, true
		}
	}
	return -1, false
}

// parseFields decodes frontmatter YAML into ordered fields plus the tag list.
// Malformed YAML yields nothing; order on disk is preserved because the
// renderer keeps header serialization independent of map iteration.
func parseFields(raw string) ([]Field, []string) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, nil
	}
	if len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, nil
	}

	var fields []Field
	var tags []string

	mapping := doc.Content[0]
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		key := mapping.Content[i]
		value := mapping.Content[i+1]
		if key.Kind != yaml.ScalarNode {
			continue
		}

		if key.Value == "tags" {
			tags = tagList(value)
			continue
		}
		fields = append(fields, Field{Key: key.Value, Value: scalarValue(value)})
	}
	return fields, tags
}

// tagList reads the tags field as an ordered list. Obsidian also allows a
// bare scalar for a single tag.
func tagList(value *yaml.Node) []string {
	switch value.Kind {
	case yaml.SequenceNode:
		var tags []string
		for _, item := range value.Content {
			if item.Kind == yaml.ScalarNode && item.Value != "" {
				tags = append(tags, item.Value)
			}
		}
		return tags
	case yaml.ScalarNode:
		if value.Value != "" && value.Tag != "!!null" {
			return []string{value.Value}
		}
	}
	return nil
}

// scalarValue renders a frontmatter value node as a plain string. Non-scalar
// values in unknown fields are flattened; they are retained, not interpreted.
func scalarValue(value *yaml.Node) string {
	if value.Kind == yaml.ScalarNode {
		if value.Tag == "!!null" {
			return ""
		}
		return value.Value
	}
	out, err := yaml.Marshal(value)
	if err != nil {
		return ""
	}
	return strings.Join(strings.Fields(string(out)), " ")
}

// sectionBody extracts the body of the level-2 section with the given
// heading text. The body runs from the heading to the next heading of equal
// or higher level, or end of input.
//
// The renderer owns the blank separator lines around each section body, so
// leading and trailing blank lines are stripped here; interior content is
// untouched. A present-but-empty section and an absent section both yield "".
func sectionBody(body, heading string) string {
	lines := strings.Split(body, "\n")
	headings := extractHeadings(body)

	start := -1 // line index after the heading
	end := len(lines)
	for _, h := range headings {
		if start == -1 {
			if h.Level == 2 && h.Text == heading {
				start = h.Line // Line is 1-indexed, so this is the next 0-indexed line
			}
			continue
		}
		if h.Level <= 2 {
			end = h.Line - 1
			break
		}
	}
	if start == -1 {
		return ""
	}
	if end > len(lines) {
		end = len(lines)
	}
	return trimBlankEdges(lines[start:end])
}

// trimBlankEdges joins lines after dropping leading and trailing
// whitespace-only lines.
func trimBlankEdges(lines []string) string {
	lo, hi := 0, len(lines)
	for lo < hi && strings.TrimSpace(lines[lo]) == "" {
		lo++
	}
	for hi > lo && strings.TrimSpace(lines[hi-1]) == "" {
		hi--
	}
	return strings.Join(lines[lo:hi], "\n")
}
