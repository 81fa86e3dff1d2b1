package phpparser

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// converter turns tree-sitter nodes into Expr values
type converter struct {
	src      []byte
	lineBase int // lines occupied by a synthetic header
}

func (c *converter) line(n *sitter.Node) int {
	return int(n.StartPoint().Row) + 1 - c.lineBase
}

func (c *converter) text(n *sitter.Node) string {
	return n.Content(c.src)
}

// namedChildren returns the named children of n without comments
func namedChildren(n *sitter.Node) []*sitter.Node {
	count := int(n.NamedChildCount())
	children := make([]*sitter.Node, 0, count)
	for i := 0; i < count; i++ {
		child := n.NamedChild(i)
		if child == nil || child.Type() == "comment" {
			continue
		}
		children = append(children, child)
	}
	return children
}

// statements converts a statement list, unwrapping expression statements
func (c *converter) statements(n *sitter.Node) []Expr {
	var out []Expr
	for _, child := range namedChildren(n) {
		switch child.Type() {
		case "php_tag", "text", "text_interpolation":
			continue
		}
		out = append(out, c.convert(child))
	}
	return out
}

func (c *converter) convert(n *sitter.Node) Expr {
	line := c.line(n)

	switch n.Type() {
	case "expression_statement", "parenthesized_expression":
		children := namedChildren(n)
		if len(children) == 1 {
			return c.convert(children[0])
		}

	case "function_call_expression":
		call := &Call{Line: line, Args: c.arguments(n.ChildByFieldName("arguments"))}
		fn := n.ChildByFieldName("function")
		switch {
		case fn == nil:
		case fn.Type() == "name" || fn.Type() == "qualified_name":
			call.Name = strings.TrimPrefix(c.text(fn), `\`)
		default:
			call.Receiver = c.convert(fn)
		}
		return call

	case "member_call_expression", "nullsafe_member_call_expression":
		call := &Call{Line: line, Args: c.arguments(n.ChildByFieldName("arguments"))}
		if obj := n.ChildByFieldName("object"); obj != nil {
			call.Receiver = c.convert(obj)
		}
		if name := n.ChildByFieldName("name"); name != nil && name.Type() == "name" {
			call.Name = c.text(name)
		}
		return call

	case "scoped_call_expression":
		call := &Call{Line: line, Args: c.arguments(n.ChildByFieldName("arguments"))}
		if scope := n.ChildByFieldName("scope"); scope != nil {
			call.Scope = strings.TrimPrefix(c.text(scope), `\`)
		}
		if name := n.ChildByFieldName("name"); name != nil && name.Type() == "name" {
			call.Name = c.text(name)
		}
		return call

	case "array_creation_expression":
		arr := &ArrayLit{Line: line}
		for _, child := range namedChildren(n) {
			if child.Type() != "array_element_initializer" {
				continue
			}
			arr.Entries = append(arr.Entries, c.arrayEntry(child))
		}
		return arr

	case "string":
		return &Literal{Kind: LitString, Value: unquote(c.text(n)), Raw: c.text(n), Line: line}

	case "encapsed_string":
		if !interpolated(n) {
			return &Literal{Kind: LitString, Value: unquote(c.text(n)), Raw: c.text(n), Line: line}
		}

	case "integer":
		return &Literal{Kind: LitInt, Value: c.text(n), Raw: c.text(n), Line: line}
	case "float":
		return &Literal{Kind: LitFloat, Value: c.text(n), Raw: c.text(n), Line: line}
	case "boolean":
		return &Literal{Kind: LitBool, Value: strings.ToLower(c.text(n)), Raw: c.text(n), Line: line}
	case "null":
		return &Literal{Kind: LitNull, Value: "null", Raw: c.text(n), Line: line}

	case "name", "qualified_name", "variable_name", "relative_scope":
		return &Ident{Name: c.text(n), Line: line}
	}

	other := &Other{Kind: n.Type(), Line: line}
	for _, child := range namedChildren(n) {
		other.Children = append(other.Children, c.convert(child))
	}
	return other
}

func (c *converter) arguments(n *sitter.Node) []Expr {
	if n == nil {
		return nil
	}
	var args []Expr
	for _, arg := range namedChildren(n) {
		if arg.Type() != "argument" {
			args = append(args, c.convert(arg))
			continue
		}
		// named arguments carry the name as the first child
		children := namedChildren(arg)
		if len(children) == 0 {
			continue
		}
		args = append(args, c.convert(children[len(children)-1]))
	}
	return args
}

func (c *converter) arrayEntry(n *sitter.Node) ArrayEntry {
	entry := ArrayEntry{Line: c.line(n)}
	children := namedChildren(n)
	switch len(children) {
	case 0:
		entry.Value = &Other{Kind: n.Type(), Line: entry.Line}
	case 1:
		entry.Value = c.convert(children[0])
	default:
		entry.Key = c.convert(children[0])
		entry.Value = c.convert(children[len(children)-1])
	}
	return entry
}

// interpolated reports whether a double-quoted string embeds variables
func interpolated(n *sitter.Node) bool {
	for _, child := range namedChildren(n) {
		switch child.Type() {
		case "string_value", "string_content", "escape_sequence":
		default:
			return true
		}
	}
	return false
}

// unquote decodes a PHP single- or double-quoted string literal
func unquote(raw string) string {
	if len(raw) > 0 && (raw[0] == 'b' || raw[0] == 'B') {
		raw = raw[1:]
	}
	if len(raw) < 2 {
		return raw
	}
	quote := raw[0]
	if (quote != '\'' && quote != '"') || raw[len(raw)-1] != quote {
		return raw
	}
	body := raw[1 : len(raw)-1]

	var b strings.Builder
	b.Grow(len(body))
	for i := 0; i < len(body); i++ {
		ch := body[i]
		if ch != '\\' || i+1 == len(body) {
			b.WriteByte(ch)
			continue
		}
		next := body[i+1]
		if quote == '\'' {
			if next == '\\' || next == '\'' {
				b.WriteByte(next)
				i++
			} else {
				b.WriteByte(ch)
			}
			continue
		}
		if r, ok := doubleQuoteEscapes[next]; ok {
			b.WriteByte(r)
			i++
			continue
		}
		b.WriteByte(ch)
	}
	return b.String()
}

var doubleQuoteEscapes = map[byte]byte{
	'n':  '\n',
	't':  '\t',
	'r':  '\r',
	'v':  '\v',
	'f':  '\f',
	'e':  0x1b,
	'\\': '\\',
	'$':  '$',
	'"':  '"',
}
