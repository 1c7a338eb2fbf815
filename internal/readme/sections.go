package readme

import (
	"bytes"
	"strconv"
	"strings"
	"unicode"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/readmegen/cli/internal/output"
)

// Section is a heading in a rendered README.
type Section struct {
	Level  int    `json:"level"`
	Title  string `json:"title"`
	Anchor string `json:"anchor"`
}

// Sections parses content as Markdown and returns its headings in document
// order. Anchors follow the GitHub heading-id convention, with repeated
// anchors suffixed -1, -2 and so on.
func Sections(content string) []Section {
	source := []byte(content)
	root := goldmark.New().Parser().Parse(text.NewReader(source))

	var sections []Section
	seen := make(map[string]int)
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		h, ok := n.(*gmast.Heading)
		if !ok {
			return gmast.WalkContinue, nil
		}

		title := strings.TrimSpace(nodeText(h, source))
		anchor := Anchor(title)
		if count, dup := seen[anchor]; dup {
			seen[anchor] = count + 1
			anchor = anchor + "-" + strconv.Itoa(count+1)
		} else {
			seen[anchor] = 0
		}

		sections = append(sections, Section{Level: h.Level, Title: title, Anchor: anchor})
		return gmast.WalkSkipChildren, nil
	})
	return sections
}

func nodeText(n gmast.Node, source []byte) string {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *gmast.Text:
			buf.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				buf.WriteByte(' ')
			}
		case *gmast.String:
			buf.Write(t.Value)
		default:
			buf.WriteString(nodeText(c, source))
		}
	}
	return buf.String()
}

// Anchor converts a heading title to its GitHub fragment identifier:
// lowercased, punctuation and symbols dropped, spaces turned into hyphens.
func Anchor(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteByte('-')
		}
	}
	return b.String()
}

// Outline renders sections as an indented tree rooted at name.
func Outline(name string, sections []Section, styles *output.Styles) string {
	items := make([]output.TreeItem, 0, len(sections))
	minLevel := 0
	for _, s := range sections {
		if minLevel == 0 || s.Level < minLevel {
			minLevel = s.Level
		}
	}
	for _, s := range sections {
		items = append(items, output.TreeItem{Depth: s.Level - minLevel, Name: s.Title})
	}
	return output.RenderTree(output.BuildTree(name, items), styles)
}
