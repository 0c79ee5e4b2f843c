package note

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// heading is a markdown heading located within a body.
type heading struct {
	Level int
	Text  string
	Line  int // 1-indexed
}

// extractHeadings extracts headings from markdown content using goldmark.
// Parsing with a real markdown parser (rather than scanning for "## ")
// means headings inside fenced code blocks are correctly ignored, so user
// notes containing example markdown never terminate a section early.
func extractHeadings(content string) []heading {
	var headings []heading

	md := goldmark.New()
	reader := text.NewReader([]byte(content))
	doc := md.Parser().Parse(reader)

	// Pre-compute line numbers for byte offsets
	lineStarts := computeLineStarts(content)

	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}

		var textBuilder strings.Builder
		for child := h.FirstChild(); child != nil; child = child.NextSibling() {
			if textNode, ok := child.(*ast.Text); ok {
				textBuilder.Write(textNode.Segment.Value([]byte(content)))
			}
		}

		headingText := strings.TrimSpace(textBuilder.String())
		if headingText == "" {
			return ast.WalkContinue, nil
		}

		line := 1
		if h.Lines().Len() > 0 {
			offset := h.Lines().At(0).Start
			line = 1 + offsetToLine(lineStarts, offset)
		}

		headings = append(headings, heading{
			Level: h.Level,
			Text:  headingText,
			Line:  line,
		})
		return ast.WalkContinue, nil
	})

	return headings
}

// computeLineStarts computes the byte offset of each line start.
func computeLineStarts(content string) []int {
	starts := []int{0}
	for i, c := range content {
		if c == '\n' && i+1 < len(content) {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// offsetToLine converts a byte offset to a 0-indexed line number.
func offsetToLine(lineStarts []int, offset int) int {
	for i := len(lineStarts) - 1; i >= 0; i-- {
		if lineStarts[i] <= offset {
			return i
		}
	}
	return 0
}
