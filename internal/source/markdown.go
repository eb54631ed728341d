package source

import (
	"bytes"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownExtractor strips Markdown syntax with goldmark and keeps the prose.
// Code blocks are skipped.
type MarkdownExtractor struct{}

func (e *MarkdownExtractor) Extract(r io.Reader) (string, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	var blocks []string
	var walk func(ast.Node)
	walk = func(n ast.Node) {
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			switch c.Kind() {
			case ast.KindFencedCodeBlock, ast.KindCodeBlock, ast.KindHTMLBlock, ast.KindThematicBreak:
				continue
			case ast.KindParagraph, ast.KindHeading, ast.KindTextBlock:
				if t := inlineText(c, src); t != "" {
					blocks = append(blocks, t)
				}
			default:
				walk(c)
			}
		}
	}
	walk(doc)
	return strings.Join(blocks, "\n\n"), nil
}

func inlineText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(src))
			if t.HardLineBreak() || t.SoftLineBreak() {
				buf.WriteByte('\n')
			}
		case *ast.String:
			buf.Write(t.Value)
		case *ast.CodeSpan:
			buf.WriteString(inlineText(c, src))
		case *ast.AutoLink:
			buf.Write(t.Label(src))
		case *ast.RawHTML:
		default:
			buf.WriteString(inlineText(c, src))
		}
	}
	return strings.TrimSpace(buf.String())
}
