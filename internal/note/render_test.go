package note

import (
	"reflect"
	"strings"
	"testing"

	"github.com/teoward/zinc/internal/zotero"
)

func TestRenderLayout(t *testing.T) {
	n := Note{
		Fields: []Field{
			{Key: "title", Value: "New Title"},
			{Key: "type", Value: "journalArticle"},
			{Key: "year", Value: "2021"},
			{Key: "zotero-key", Value: "AB12"},
			{Key: "doi", Value: "10.1000/xyz"},
		},
		Tags:       []string{"ml", "to-read"},
		Abstract:   "An abstract.",
		Notes:      "check §3",
		References: "- Zotero Key: AB12\n- DOI: 10.1000/xyz",
	}

	want := `---
title: New Title
type: journalArticle
year: 2021
zotero-key: AB12
doi: 10.1000/xyz
tags:
  - ml
  - to-read
---

## Abstract

An abstract.

## Notes

check §3

## References

- Zotero Key: AB12
- DOI: 10.1000/xyz
`
	if got := Render(n); got != want {
		t.Errorf("Render mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderQuotesAwkwardValues(t *testing.T) {
	n := Note{Fields: []Field{{Key: "title", Value: "Attention: A Survey"}}}
	out := Render(n)
	if !strings.Contains(out, `title: "Attention: A Survey"`) {
		t.Errorf("colon value should be quoted, got:\n%s", out)
	}

	p := Parse(out)
	if got := fieldValue(p.Fields, "title"); got != "Attention: A Survey" {
		t.Errorf("round-tripped title = %q", got)
	}
}

func TestRenderOmitsEmptyTags(t *testing.T) {
	out := Render(Note{Fields: []Field{{Key: "title", Value: "T"}}})
	if strings.Contains(out, "tags:") {
		t.Errorf("empty tag list should be omitted:\n%s", out)
	}
}

func TestRoundTrip(t *testing.T) {
	notes := []string{
		"",
		"check §3",
		"multi\n\nparagraph\n\n- with\n- lists",
		"### sub-structure\n\ntext under a subheading",
	}

	for _, noteBody := range notes {
		n := Note{
			Fields: []Field{
				{Key: "title", Value: "Some: Title"},
				{Key: "type", Value: "book"},
				{Key: "year", Value: "1984"},
				{Key: "zotero-key", Value: "KEY1"},
			},
			Tags:       []string{"one", "Two"},
			Abstract:   "abstract text",
			Notes:      noteBody,
			References: "- Zotero Key: KEY1",
		}

		p := Parse(Render(n))
		if !reflect.DeepEqual(p.Fields, n.Fields) {
			t.Errorf("fields did not round-trip: %+v vs %+v", p.Fields, n.Fields)
		}
		if !reflect.DeepEqual(p.Tags, n.Tags) {
			t.Errorf("tags did not round-trip: %v vs %v", p.Tags, n.Tags)
		}
		if p.Notes != n.Notes {
			t.Errorf("notes did not round-trip: %q vs %q", p.Notes, n.Notes)
		}
	}
}

func TestIdempotence(t *testing.T) {
	recs := []zotero.Record{
		{Key: "ZZ99", Title: "Plain"},
		{
			Key: "AB12", Title: "Full: Record", ItemType: "journalArticle",
			Year: 2021, Authors: "Ada Lovelace, Alan Turing",
			Abstract: "Long abstract.\nWith a second line.",
			Tags:     []string{"ml", "nlp"},
			DOI:      "10.1000/xyz", URL: "https://example.org",
			Attachment: "zotero://open-pdf/library/items/ATT1",
		},
	}

	for _, rec := range recs {
		first := Render(Reconcile(rec, Parsed{}))
		second := Render(Reconcile(rec, Parse(first)))
		if first != second {
			t.Errorf("second pass differs for %s:\nfirst:\n%s\nsecond:\n%s", rec.Key, first, second)
		}
	}
}

func TestIdempotenceWithUserEdits(t *testing.T) {
	rec := zotero.Record{
		Key: "AB12", Title: "Paper", ItemType: "journalArticle",
		Tags: []string{"ml"},
	}

	first := Render(Reconcile(rec, Parsed{}))

	// Simulate user edits: notes written, a tag added.
	edited := Parse(first)
	edited.Notes = "my thoughts\n\n- idea"
	edited.Tags = append(edited.Tags, "to-read")

	second := Render(Reconcile(rec, edited))
	third := Render(Reconcile(rec, Parse(second)))
	if second != third {
		t.Errorf("edits not stable across runs:\n%s\nvs:\n%s", second, third)
	}

	p := Parse(third)
	if p.Notes != "my thoughts\n\n- idea" {
		t.Errorf("notes lost: %q", p.Notes)
	}
	if !reflect.DeepEqual(p.Tags, []string{"ml", "to-read"}) {
		t.Errorf("tags lost: %v", p.Tags)
	}
}
