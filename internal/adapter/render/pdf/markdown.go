package pdf

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

type blockKind int

const (
	blockParagraph blockKind = iota
	blockHeading
	blockCode
	blockListItem
)

// block is one renderable chunk of a markdown document.
type block struct {
	kind  blockKind
	level int // heading level, 1-6
	text  string
}

// parseMarkdown flattens a markdown document into a sequence of blocks the
// renderer can lay out with basic styles. Inline formatting is dropped; only
// block structure survives.
func parseMarkdown(source []byte) []block {
	var blocks []block
	parser := goldmark.DefaultParser()
	root := parser.Parse(text.NewReader(source))

	walker := func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch n := node.(type) {
		case *ast.Heading:
			blocks = append(blocks, block{
				kind:  blockHeading,
				level: n.Level,
				text:  string(n.Text(source)),
			})
			return ast.WalkSkipChildren, nil

		case *ast.FencedCodeBlock:
			blocks = append(blocks, block{kind: blockCode, text: codeLines(n, source)})
			return ast.WalkSkipChildren, nil

		case *ast.CodeBlock:
			blocks = append(blocks, block{kind: blockCode, text: codeLines(n, source)})
			return ast.WalkSkipChildren, nil

		case *ast.ListItem:
			blocks = append(blocks, block{
				kind: blockListItem,
				text: strings.TrimSpace(string(n.Text(source))),
			})
			return ast.WalkSkipChildren, nil

		case *ast.Paragraph:
			blocks = append(blocks, block{
				kind: blockParagraph,
				text: strings.TrimSpace(string(n.Text(source))),
			})
			return ast.WalkSkipChildren, nil
		}

		return ast.WalkContinue, nil
	}

	// The walker never returns an error.
	_ = ast.Walk(root, walker)

	return blocks
}

func codeLines(node ast.Node, source []byte) string {
	var content bytes.Buffer
	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		content.Write(line.Value(source))
	}
	return strings.TrimRight(content.String(), "\n")
}
