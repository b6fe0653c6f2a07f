package render

import (
	"bytes"
	"fmt"

	"github.com/fumiama/go-docx"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"legal-docgen/internal/domain"
)

// docxRenderer converts drafted markup directly to a word-processor binary;
// no browser is involved on this path.
type docxRenderer struct{}

func newDocxRenderer() *docxRenderer { return &docxRenderer{} }

func (r *docxRenderer) render(markup string) ([]byte, error) {
	src := []byte(markup)
	root := markdown.Parser().Parse(text.NewReader(src))

	doc := docx.New().WithDefaultTheme()
	err := ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Heading:
			p := doc.AddParagraph()
			run := p.AddText(textOf(node, src))
			run.Bold()
			switch node.Level {
			case 1:
				run.Size("32")
				p.Justification("center")
			case 2:
				run.Size("26")
			default:
				run.Size("24")
			}
			return ast.WalkSkipChildren, nil
		case *ast.Paragraph:
			if _, ok := node.Parent().(*ast.ListItem); ok {
				doc.AddParagraph().AddText("• " + textOf(node, src))
			} else {
				doc.AddParagraph().AddText(textOf(node, src))
			}
			return ast.WalkSkipChildren, nil
		case *ast.TextBlock:
			doc.AddParagraph().AddText(textOf(node, src))
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: markup walk: %v", domain.ErrRendering, err)
	}

	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("%w: docx write: %v", domain.ErrRendering, err)
	}
	return buf.Bytes(), nil
}

// textOf flattens the text content of a block node.
func textOf(n ast.Node, src []byte) string {
	var b bytes.Buffer
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if t, ok := c.(*ast.Text); ok {
			b.Write(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteByte(' ')
			}
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}
