package note

import (
	"reflect"
	"testing"
)

func TestParseFrontmatter(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		wantFields []Field
		wantTags   []string
	}{
		{
			name: "basic frontmatter",
			content: `---
title: Attention Is All You Need
type: conferencePaper
year: 2017
zotero-key: AB12CD34
---

## Notes
`,
			wantFields: []Field{
				{Key: "title", Value: "Attention Is All You Need"},
				{Key: "type", Value: "conferencePaper"},
				{Key: "year", Value: "2017"},
				{Key: "zotero-key", Value: "AB12CD34"},
			},
		},
		{
			name:    "no frontmatter",
			content: "# Just a heading\n\nSome content",
		},
		{
			name: "unclosed frontmatter treated as body",
			content: `---
title: Dangling
`,
		},
		{
			name: "malformed yaml degrades to empty fields",
			content: `---
title: [unbalanced
---

body`,
		},
		{
			name: "quoted values",
			content: `---
title: "Attention: A Survey"
---
`,
			wantFields: []Field{
				{Key: "title", Value: "Attention: A Survey"},
			},
		},
		{
			name: "tags list in order",
			content: `---
title: T
tags:
  - ml
  - to-read
  - ML
---
`,
			wantFields: []Field{{Key: "title", Value: "T"}},
			wantTags:   []string{"ml", "to-read", "ML"},
		},
		{
			name: "bare scalar tag",
			content: `---
tags: ml
---
`,
			wantTags: []string{"ml"},
		},
		{
			name: "unknown fields retained in document order",
			content: `---
aliases: vaswani2017
title: T
rating: 5
---
`,
			wantFields: []Field{
				{Key: "aliases", Value: "vaswani2017"},
				{Key: "title", Value: "T"},
				{Key: "rating", Value: "5"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Parse(tt.content)
			if !p.Exists {
				t.Fatal("parsed document should report Exists")
			}
			if !reflect.DeepEqual(p.Fields, tt.wantFields) {
				t.Errorf("Fields = %+v, want %+v", p.Fields, tt.wantFields)
			}
			if !reflect.DeepEqual(p.Tags, tt.wantTags) {
				t.Errorf("Tags = %v, want %v", p.Tags, tt.wantTags)
			}
		})
	}
}

func TestParseNotesSection(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name: "notes with content",
			content: `## Abstract

Something.

## Notes

check §3

## References

- Zotero Key: AB12
`,
			want: "check §3",
		},
		{
			name: "heading present but empty",
			content: `## Notes

## References
`,
			want: "",
		},
		{
			name:    "heading absent",
			content: "## Abstract\n\nOnly an abstract.\n",
			want:    "",
		},
		{
			name: "interior blank lines and formatting kept verbatim",
			content: `## Notes

first thought

- a list
  - nested

second thought

## References
`,
			want: "first thought\n\n- a list\n  - nested\n\nsecond thought",
		},
		{
			name: "subheadings belong to the notes body",
			content: `## Notes

### Reading pass 1

interesting

## References
`,
			want: "### Reading pass 1\n\ninteresting",
		},
		{
			name: "notes runs to end of file",
			content: `## References

- Zotero Key: AB12

## Notes

last section
`,
			want: "last section",
		},
		{
			name: "headings inside code fences do not end the section",
			content: "## Notes\n\n```md\n## References\n```\nafter the fence\n\n## References\n",
			want:    "```md\n## References\n```\nafter the fence",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Parse(tt.content)
			if p.Notes != tt.want {
				t.Errorf("Notes = %q, want %q", p.Notes, tt.want)
			}
		})
	}
}

func TestParseNotesAfterFrontmatter(t *testing.T) {
	content := `---
title: T
tags:
  - ml
---

## Abstract

## Notes

my note

## References
`
	p := Parse(content)
	if p.Notes != "my note" {
		t.Errorf("Notes = %q, want %q", p.Notes, "my note")
	}
	if len(p.Fields) != 1 || p.Fields[0].Key != "title" {
		t.Errorf("Fields = %+v", p.Fields)
	}
}
