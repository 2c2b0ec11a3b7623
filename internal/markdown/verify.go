package markdown

import (
	"fmt"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// Shape is the structure of one parsed table.
type Shape struct {
	Columns int
	Rows    int // body rows, header excluded
}

// ParseBody parses a Markdown document with the GFM table extension enabled.
func ParseBody(body []byte) gmast.Node {
	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	return md.Parser().Parse(text.NewReader(body))
}

// TableShapes returns the shape of every table in body, in document order.
func TableShapes(body []byte) []Shape {
	root := ParseBody(body)

	var shapes []Shape
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		tbl, ok := n.(*extast.Table)
		if !ok {
			return gmast.WalkContinue, nil
		}
		s := Shape{Columns: len(tbl.Alignments)}
		for c := tbl.FirstChild(); c != nil; c = c.NextSibling() {
			if _, isRow := c.(*extast.TableRow); isRow {
				s.Rows++
			}
		}
		shapes = append(shapes, s)
		return gmast.WalkSkipChildren, nil
	})
	return shapes
}

// VerifyTable checks that body contains exactly one table with the given shape.
func VerifyTable(body []byte, want Shape) error {
	shapes := TableShapes(body)
	if len(shapes) != 1 {
		return fmt.Errorf("expected exactly one table, found %d", len(shapes))
	}
	if shapes[0] != want {
		return fmt.Errorf("table shape mismatch: got %d columns x %d rows, want %d x %d",
			shapes[0].Columns, shapes[0].Rows, want.Columns, want.Rows)
	}
	return nil
}

