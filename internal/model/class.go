package model

import (
	"strings"

	"libwebdoc/internal/tree"
)

// ClassDecl represents a PHP class found by discovery
type ClassDecl struct {
	// Fully qualified name without leading backslash: "App\API\Users\UserAPI"
	Name string

	// Declaring file (absolute path)
	File string

	// Fully qualified parent class name, empty when the class extends nothing
	Extends string

	Abstract bool

	// Methods declared directly in this class, in source order
	Methods []MethodDecl
}

// ShortName returns the class name without its namespace
func (c *ClassDecl) ShortName() string {
	if idx := strings.LastIndex(c.Name, `\`); idx != -1 {
		return c.Name[idx+1:]
	}
	return c.Name
}

// Namespace returns the namespace part of the class name
func (c *ClassDecl) Namespace() string {
	if idx := strings.LastIndex(c.Name, `\`); idx != -1 {
		return c.Name[:idx]
	}
	return ""
}

// MethodDecl carries the structural metadata of one method: its name, raw doc
// comment and the source lines of its body (1-based, opening brace line to
// closing brace line; the body is everything strictly between them).
type MethodDecl struct {
	Name       string
	DocComment string
	File       string
	StartLine  int
	EndLine    int

	// Class that declares the method (differs from the documented class for
	// inherited methods)
	DeclaringClass string
}

// ClassDoc is a documented class placed in the page tree
type ClassDoc struct {
	Class   *ClassDecl
	Dirs    []string // directory path under the API root
	Page    string   // page basename
	Methods []MethodRecord
}

// PagePath returns the slash-separated page location under the API root
func (d *ClassDoc) PagePath() string {
	parts := append(append([]string{}, d.Dirs...), d.Page)
	return strings.Join(parts, "/")
}

// Summary represents run-level statistics for the report overviews
type Summary struct {
	AnalysisDate string
	Namespace    string

	TotalClasses    int
	DocumentedPages int
	TotalMethods    int
	TotalGET        int
	TotalPOST       int
	TotalParams     int
}

// NewSummary creates a new Summary instance
func NewSummary() *Summary {
	return &Summary{}
}

// AddMethod folds a method record into the counters
func (s *Summary) AddMethod(m MethodRecord) {
	s.TotalMethods++
	switch m.Verb {
	case VerbGET:
		s.TotalGET++
	case VerbPOST:
		s.TotalPOST++
	}
	s.TotalParams += len(m.Parameters)
}

// Site is the complete result of one generation run
type Site struct {
	Summary *Summary
	Root    *tree.Directory
	Classes []ClassDoc
}
