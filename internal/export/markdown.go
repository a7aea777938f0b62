package export

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Block is one renderable unit of note text.
type Block struct {
	Text    string
	Heading bool
	Code    bool
}

// Blocks parses note text as markdown and flattens it into a sequence of
// paragraph, heading, and code blocks. Inline markup is dropped; only the
// plain text of each block is kept.
func Blocks(source string) []Block {
	src := []byte(source)
	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	var blocks []Block
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.Kind() {
		case ast.KindHeading:
			blocks = append(blocks, Block{Text: nodeText(n, src), Heading: true})
			return ast.WalkSkipChildren, nil
		case ast.KindParagraph:
			blocks = append(blocks, Block{Text: nodeText(n, src)})
			return ast.WalkSkipChildren, nil
		case ast.KindCodeBlock, ast.KindFencedCodeBlock:
			blocks = append(blocks, Block{Text: rawLines(n, src), Code: true})
			return ast.WalkSkipChildren, nil
		case ast.KindListItem:
			blocks = append(blocks, Block{Text: "• " + nodeText(n, src)})
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	if len(blocks) == 0 {
		trimmed := strings.TrimSpace(source)
		if trimmed != "" {
			blocks = append(blocks, Block{Text: trimmed})
		}
	}
	return blocks
}

func nodeText(n ast.Node, src []byte) string {
	var sb strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if t, ok := c.(*ast.Text); ok {
			sb.Write(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				sb.WriteByte(' ')
			}
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(sb.String())
}

func rawLines(n ast.Node, src []byte) string {
	var sb strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(src))
	}
	return strings.TrimRight(sb.String(), "\n")
}
