// Package syntax wraps the external tree-sitter parser for TypeScript example
// files. The engine treats *sitter.Node as an opaque, read-only handle; this
// package owns parsing and the traversal helpers around it.
package syntax

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"glot/internal/diag"
	"glot/internal/source"
)

// NewParser creates a fresh TypeScript parser. Parsers are not safe for
// concurrent use; each worker needs its own.
func NewParser() *sitter.Parser {
	p := sitter.NewParser()
	p.SetLanguage(typescript.GetLanguage())
	return p
}

// Parse parses content and returns the syntax tree. The caller owns the tree
// and must Close it when the conversion pass is done.
func Parse(ctx context.Context, p *sitter.Parser, content []byte) (*sitter.Tree, error) {
	tree, err := p.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	return tree, nil
}

// CollectSyntaxErrors walks the whole tree and reports every ERROR and
// MISSING node into the bag. The conversion still proceeds for well-formed
// siblings.
func CollectSyntaxErrors(root *sitter.Node, fid source.FileID, content []byte, bag *diag.Bag) {
	if root == nil {
		return
	}
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		switch {
		case n.IsMissing():
			d := diag.NewError(diag.SynMissingNode, NodeSpan(fid, n),
				fmt.Sprintf("missing %q", n.Type()))
			if p := n.Parent(); p != nil {
				d = d.WithNote(NodeSpan(fid, p),
					fmt.Sprintf("while parsing %q", p.Type()))
			}
			bag.Add(d)
		case n.Type() == KindError:
			snippet := Text(n, content)
			if len(snippet) > 40 {
				snippet = snippet[:40] + "..."
			}
			bag.Add(diag.NewError(diag.SynParseError, NodeSpan(fid, n),
				fmt.Sprintf("unparsable syntax near %q", snippet)))
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			walk(n.Child(i))
		}
	}
	walk(root)
}
