package linker

import (
	"fmt"
	"strings"

	"libwebdoc/internal/logger"
	"libwebdoc/internal/model"
)

// Linker resolves the effective method list of pooled classes the way
// reflection enumerates them: own methods, then methods of used traits,
// then inherited methods not overridden along the parent chain.
type Linker struct {
	pool     *ClassPool
	selected []*model.ClassDecl
}

// NewLinker creates a new linker over pool
func NewLinker(pool *ClassPool) *Linker {
	return &Linker{pool: pool}
}

// Pool returns the underlying class pool
func (l *Linker) Pool() *ClassPool {
	return l.pool
}

// Select marks classes as API classes. Repeats are kept: the catalog
// decides which ones were already processed.
func (l *Linker) Select(classes ...*model.ClassDecl) {
	l.selected = append(l.selected, classes...)
}

// Classes returns the selected classes in selection order
func (l *Linker) Classes() []*model.ClassDecl {
	return l.selected
}

// Methods returns the callable methods of a class
func (l *Linker) Methods(fqn string) ([]model.MethodDecl, error) {
	decl, ok := l.pool.Get(fqn)
	if !ok {
		return nil, fmt.Errorf("class not found in pool: %s", fqn)
	}

	var methods []model.MethodDecl
	seen := make(map[string]bool)
	visited := make(map[string]bool)

	add := func(list []model.MethodDecl) {
		for _, m := range list {
			name := strings.ToLower(m.Name)
			if seen[name] {
				continue
			}
			seen[name] = true
			methods = append(methods, m)
		}
	}

	for cur := decl; cur != nil; {
		k := key(cur.Name)
		if visited[k] {
			logger.Warn("Inheritance cycle detected at %s while linking %s", cur.Name, fqn)
			break
		}
		visited[k] = true

		add(cur.Methods)
		add(l.traitMethods(cur.Name, map[string]bool{}))

		if cur.Extends == "" {
			break
		}
		parent, ok := l.pool.Get(cur.Extends)
		if !ok {
			logger.Debug("Parent class %s of %s is not in the pool", cur.Extends, cur.Name)
			break
		}
		cur = parent
	}

	return methods, nil
}

// traitMethods returns the methods of the traits used by fqn, including
// traits used by those traits
func (l *Linker) traitMethods(fqn string, visited map[string]bool) []model.MethodDecl {
	var methods []model.MethodDecl
	for _, traitName := range l.pool.UsedTraits[key(fqn)] {
		k := key(traitName)
		if visited[k] {
			continue
		}
		visited[k] = true

		trait, ok := l.pool.Trait(traitName)
		if !ok {
			logger.Debug("Trait %s used by %s is not in the pool", traitName, fqn)
			continue
		}
		methods = append(methods, trait.Methods...)
		methods = append(methods, l.traitMethods(trait.Name, visited)...)
	}
	return methods
}
