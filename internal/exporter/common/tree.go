package common

import (
	"strings"

	"libwebdoc/internal/model"
)

// FlattenedParam represents a parameter with its display label
type FlattenedParam struct {
	Record model.ParamRecord
	Indent int
	Label  string // leaf name prefixed with two spaces per nesting level
}

// FlattenParams prepares parameter records for tabular output.
// Order is preserved; parents already precede their children.
func FlattenParams(records []model.ParamRecord) []FlattenedParam {
	rows := make([]FlattenedParam, 0, len(records))
	for _, rec := range records {
		indent := rec.Offset
		if indent < 0 {
			indent = 0
		}
		rows = append(rows, FlattenedParam{
			Record: rec,
			Indent: indent,
			Label:  strings.Repeat("  ", indent) + rec.Leaf(),
		})
	}
	return rows
}

// ParamNode is a parameter with its nested children
type ParamNode struct {
	Record   model.ParamRecord
	Children []*ParamNode
}

// IsArray reports whether the node's children describe collection items
func (n *ParamNode) IsArray() bool {
	return len(n.Children) == 1 && n.Children[0].Record.IsItem()
}

// BuildParamTree nests records under their parent keys. Records whose
// parent was never declared are attached at the top level.
func BuildParamTree(records []model.ParamRecord) []*ParamNode {
	var roots []*ParamNode
	index := make(map[string]*ParamNode, len(records))

	for _, rec := range records {
		node := &ParamNode{Record: rec}
		index[rec.Key] = node

		parent, ok := index[rec.Parent()]
		if rec.Parent() == "" || !ok {
			roots = append(roots, node)
			continue
		}
		parent.Children = append(parent.Children, node)
	}
	return roots
}
