// Package tree holds the documentation page tree: directories mirror the
// namespace path of a class and every documented class owns one page.
package tree

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Entry is either a *Directory or a *Page
type Entry interface {
	EntryName() string
}

// Directory is an ordered container of pages and sub-directories
type Directory struct {
	Name     string
	Parent   *Directory
	children []Entry
	index    map[string]Entry
}

// Page is a leaf of the tree holding rendered content
type Page struct {
	Name    string
	Parent  *Directory
	content string
}

// NewRoot creates an empty root directory
func NewRoot() *Directory {
	return &Directory{index: make(map[string]Entry)}
}

func (d *Directory) EntryName() string { return d.Name }
func (p *Page) EntryName() string      { return p.Name }

// Children returns the entries of the directory in insertion order
func (d *Directory) Children() []Entry {
	return d.children
}

// Path returns the directory names from the root (root excluded)
func (d *Directory) Path() []string {
	var parts []string
	for cur := d; cur != nil && cur.Parent != nil; cur = cur.Parent {
		parts = append([]string{cur.Name}, parts...)
	}
	return parts
}

// GetOrCreateDir returns the child directory called name, creating it if needed.
// A page with the same name shadows nothing: directories and pages live in
// separate name spaces.
func GetOrCreateDir(parent *Directory, name string) *Directory {
	key := "d:" + name
	if e, ok := parent.index[key]; ok {
		return e.(*Directory)
	}
	dir := &Directory{Name: name, Parent: parent, index: make(map[string]Entry)}
	parent.children = append(parent.children, dir)
	parent.index[key] = dir
	return dir
}

// GetOrCreatePage returns the child page called name, creating it if needed
func GetOrCreatePage(parent *Directory, name string) *Page {
	key := "p:" + name
	if e, ok := parent.index[key]; ok {
		return e.(*Page)
	}
	page := &Page{Name: name, Parent: parent}
	parent.children = append(parent.children, page)
	parent.index[key] = page
	return page
}

// SetContent replaces the page content
func (p *Page) SetContent(content string) {
	p.content = content
}

// Content returns the page content
func (p *Page) Content() string {
	return p.content
}

// Path returns the page location from the root, page name last
func (p *Page) Path() []string {
	return append(p.Parent.Path(), p.Name)
}

// Walk visits every page below d in depth-first insertion order
func Walk(d *Directory, fn func(p *Page) error) error {
	for _, child := range d.children {
		switch e := child.(type) {
		case *Directory:
			if err := Walk(e, fn); err != nil {
				return err
			}
		case *Page:
			if err := fn(e); err != nil {
				return err
			}
		}
	}
	return nil
}

// CountPages returns the number of pages below d
func CountPages(d *Directory) int {
	n := 0
	_ = Walk(d, func(*Page) error {
		n++
		return nil
	})
	return n
}

// WriteMarkdown emits every page as "<dir>/<path...>/<page>.md"
func WriteMarkdown(root *Directory, dir string) ([]string, error) {
	var written []string
	err := Walk(root, func(p *Page) error {
		parts := p.Path()
		rel := filepath.Join(parts...) + ".md"
		target := filepath.Join(dir, rel)

		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return fmt.Errorf("failed to create page directory: %w", err)
		}
		if err := os.WriteFile(target, []byte(p.content), 0644); err != nil {
			return fmt.Errorf("failed to write page %s: %w", strings.Join(parts, "/"), err)
		}
		written = append(written, target)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return written, nil
}
