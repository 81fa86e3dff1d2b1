package phpparser

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/php"
)

// snippetHeader makes a bare statement list parseable
const snippetHeader = "<?php\n"

// ClassKind distinguishes classes from traits
type ClassKind string

const (
	KindClass ClassKind = "class"
	KindTrait ClassKind = "trait"
)

// Method represents a PHP method declaration
type Method struct {
	Name       string // e.g., "GET_userInfo"
	DocComment string // raw /** ... */ text, empty when absent
	StartLine  int    // line of the signature
	BodyLine   int    // line of the opening brace, StartLine for abstract methods
	EndLine    int    // line of the closing brace
	Visibility string // "public", "protected", "private"
	Static     bool
	Abstract   bool
}

// Class represents a parsed PHP class or trait
type Class struct {
	Kind      ClassKind
	Name      string   // e.g., "UserAPI"
	FQN       string   // e.g., "App\Api\UserAPI"
	Namespace string   // e.g., "App\Api"
	Extends   string   // resolved parent FQN, empty when none
	Traits    []string // resolved FQNs of used traits
	Abstract  bool
	Methods   []Method
}

// File is the structural model of one PHP source file
type File struct {
	Namespace string            // first namespace declared in the file
	Uses      map[string]string // lower-cased alias -> FQN, of the first namespace
	Classes   []Class
}

// ParseSnippet parses a bare list of PHP statements and returns them as
// expressions. Lines are relative to the snippet: line 1 is its first line.
func ParseSnippet(ctx context.Context, code string) ([]Expr, error) {
	src := []byte(snippetHeader + code)
	tree, err := parse(ctx, src)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	conv := &converter{src: src, lineBase: 1}
	root := tree.RootNode()
	if err := syntaxError(root, src, conv.lineBase); err != nil {
		return nil, err
	}
	return conv.statements(root), nil
}

// ParseFile parses a PHP source file into its classes and methods
func ParseFile(ctx context.Context, src []byte) (*File, error) {
	tree, err := parse(ctx, src)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	root := tree.RootNode()
	if err := syntaxError(root, src, 0); err != nil {
		return nil, err
	}

	fp := &fileParser{src: src, file: &File{Uses: map[string]string{}}}
	fp.scope(root, "", map[string]string{})
	return fp.file, nil
}

func parse(ctx context.Context, src []byte) (*sitter.Tree, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(php.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("tree-sitter parse failed: %w", err)
	}
	return tree, nil
}

// syntaxError locates the first error node below root
func syntaxError(root *sitter.Node, src []byte, lineBase int) error {
	if root == nil || !root.HasError() {
		return nil
	}
	bad := firstError(root)
	if bad == nil {
		bad = root
	}
	msg := "unexpected input"
	if bad.IsMissing() {
		msg = fmt.Sprintf("missing %s", bad.Type())
	} else if text := strings.TrimSpace(bad.Content(src)); text != "" {
		if len(text) > 40 {
			text = text[:40] + "..."
		}
		msg = fmt.Sprintf("unexpected %q", text)
	}
	pt := bad.StartPoint()
	return &ParseError{Line: int(pt.Row) + 1 - lineBase, Column: int(pt.Column) + 1, Message: msg}
}

func firstError(n *sitter.Node) *sitter.Node {
	if n.Type() == "ERROR" || n.IsMissing() {
		return n
	}
	if !n.HasError() {
		return nil
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if found := firstError(n.Child(i)); found != nil {
			return found
		}
	}
	return nil
}

// ResolveName resolves a class reference the way PHP does: fully qualified
// names are kept, imported aliases are expanded, anything else is relative
// to the current namespace. Uses keys are lower-cased aliases.
func ResolveName(name, namespace string, uses map[string]string) string {
	if name == "" {
		return ""
	}
	if strings.HasPrefix(name, `\`) {
		return strings.TrimPrefix(name, `\`)
	}
	switch strings.ToLower(name) {
	case "self", "static", "parent":
		return name
	}
	if strings.HasPrefix(strings.ToLower(name), `namespace\`) {
		return joinName(namespace, name[len(`namespace\`):])
	}

	first, rest, qualified := strings.Cut(name, `\`)
	if target, ok := uses[strings.ToLower(first)]; ok {
		if qualified {
			return target + `\` + rest
		}
		return target
	}
	return joinName(namespace, name)
}

func joinName(namespace, name string) string {
	if namespace == "" {
		return name
	}
	return namespace + `\` + name
}

// fileParser walks declarations, tracking namespace and imports
type fileParser struct {
	src  []byte
	file *File
	seen bool // a namespace was recorded on the file
}

func (fp *fileParser) text(n *sitter.Node) string {
	return n.Content(fp.src)
}

func (fp *fileParser) scope(n *sitter.Node, namespace string, uses map[string]string) {
	for _, child := range namedChildren(n) {
		switch child.Type() {
		case "namespace_definition":
			ns := ""
			if name := child.ChildByFieldName("name"); name != nil {
				ns = strings.Trim(fp.text(name), `\`)
			}
			fresh := map[string]string{}
			fp.recordNamespace(ns, fresh)
			if body := child.ChildByFieldName("body"); body != nil {
				fp.scope(body, ns, fresh)
				continue
			}
			namespace, uses = ns, fresh

		case "namespace_use_declaration":
			fp.uses(child, uses)

		case "class_declaration", "trait_declaration":
			fp.file.Classes = append(fp.file.Classes, fp.class(child, namespace, uses))

		case "compound_statement", "declare_statement":
			fp.scope(child, namespace, uses)
		}
	}
}

func (fp *fileParser) recordNamespace(ns string, uses map[string]string) {
	if fp.seen {
		return
	}
	fp.seen = true
	fp.file.Namespace = ns
	fp.file.Uses = uses
}

// uses records the aliases of a use statement. Function and const imports
// are ignored.
func (fp *fileParser) uses(n *sitter.Node, uses map[string]string) {
	prefix := ""
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		switch child.Type() {
		case "function", "const":
			return
		case "namespace_name", "qualified_name", "name":
			prefix = strings.Trim(fp.text(child), `\`)
		case "namespace_use_clause":
			fp.useClause(child, "", uses)
		case "namespace_use_group":
			for _, clause := range namedChildren(child) {
				fp.useClause(clause, prefix, uses)
			}
		}
	}
}

func (fp *fileParser) useClause(n *sitter.Node, prefix string, uses map[string]string) {
	var path, alias string
	for _, child := range namedChildren(n) {
		switch child.Type() {
		case "qualified_name", "name", "namespace_name":
			if path == "" {
				path = strings.Trim(fp.text(child), `\`)
			} else {
				alias = fp.text(child)
			}
		case "namespace_aliasing_clause":
			for _, a := range namedChildren(child) {
				alias = fp.text(a)
			}
		}
	}
	if path == "" {
		return
	}
	if prefix != "" {
		path = prefix + `\` + path
	}
	if alias == "" {
		alias = path[strings.LastIndex(path, `\`)+1:]
	}
	uses[strings.ToLower(alias)] = path
}

func (fp *fileParser) class(n *sitter.Node, namespace string, uses map[string]string) Class {
	cls := Class{Kind: KindClass, Namespace: namespace}
	if n.Type() == "trait_declaration" {
		cls.Kind = KindTrait
	}
	if name := n.ChildByFieldName("name"); name != nil {
		cls.Name = fp.text(name)
	}
	cls.FQN = joinName(namespace, cls.Name)

	for _, child := range namedChildren(n) {
		switch child.Type() {
		case "abstract_modifier":
			cls.Abstract = true
		case "base_clause":
			if bases := namedChildren(child); len(bases) > 0 {
				cls.Extends = ResolveName(fp.text(bases[0]), namespace, uses)
			}
		}
	}

	body := n.ChildByFieldName("body")
	if body == nil {
		return cls
	}
	for _, member := range namedChildren(body) {
		switch member.Type() {
		case "method_declaration":
			cls.Methods = append(cls.Methods, fp.method(member))
		case "use_declaration":
			for _, trait := range namedChildren(member) {
				if trait.Type() == "name" || trait.Type() == "qualified_name" {
					cls.Traits = append(cls.Traits, ResolveName(fp.text(trait), namespace, uses))
				}
			}
		}
	}
	return cls
}

func (fp *fileParser) method(n *sitter.Node) Method {
	m := Method{
		Visibility: "public",
		StartLine:  int(n.StartPoint().Row) + 1,
		EndLine:    int(n.EndPoint().Row) + 1,
	}
	if name := n.ChildByFieldName("name"); name != nil {
		m.Name = fp.text(name)
	}

	signatureFound := false
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		switch child.Type() {
		case "attribute_list", "comment":
			continue
		case "visibility_modifier":
			m.Visibility = strings.ToLower(fp.text(child))
		case "static_modifier":
			m.Static = true
		case "abstract_modifier":
			m.Abstract = true
		}
		if !signatureFound {
			m.StartLine = int(child.StartPoint().Row) + 1
			signatureFound = true
		}
	}

	m.BodyLine = m.StartLine
	if body := n.ChildByFieldName("body"); body != nil {
		m.BodyLine = int(body.StartPoint().Row) + 1
	}

	if prev := n.PrevSibling(); prev != nil && prev.Type() == "comment" {
		if text := fp.text(prev); strings.HasPrefix(text, "/**") {
			m.DocComment = text
		}
	}
	return m
}
