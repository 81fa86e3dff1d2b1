package linker

import (
	"sort"
	"strings"

	"libwebdoc/internal/model"
	"libwebdoc/internal/phpparser"
)

// ClassPool stores all parsed classes for quick lookup.
// Keys are lower-cased fully qualified names: PHP class names are case-insensitive.
type ClassPool struct {
	// ClassMap: fqn -> class
	ClassMap map[string]*model.ClassDecl

	// TraitMap: fqn -> trait (traits never get a page)
	TraitMap map[string]*model.ClassDecl

	// UsedTraits: class fqn -> resolved trait fqns
	UsedTraits map[string][]string

	// FileMap: fqn -> classes declared in the same file
	FileMap map[string][]string
}

// NewClassPool creates a new empty class pool
func NewClassPool() *ClassPool {
	return &ClassPool{
		ClassMap:   make(map[string]*model.ClassDecl),
		TraitMap:   make(map[string]*model.ClassDecl),
		UsedTraits: make(map[string][]string),
		FileMap:    make(map[string][]string),
	}
}

func key(fqn string) string {
	return strings.ToLower(strings.TrimPrefix(fqn, `\`))
}

// AddFile adds every class and trait of a parsed file to the pool and
// returns the added classes (traits excluded)
func (pool *ClassPool) AddFile(path string, file *phpparser.File) []*model.ClassDecl {
	var added []*model.ClassDecl
	for _, cls := range file.Classes {
		decl := &model.ClassDecl{
			Name:     cls.FQN,
			File:     path,
			Extends:  cls.Extends,
			Abstract: cls.Abstract,
		}
		for _, m := range cls.Methods {
			decl.Methods = append(decl.Methods, model.MethodDecl{
				Name:           m.Name,
				DocComment:     m.DocComment,
				File:           path,
				StartLine:      m.BodyLine,
				EndLine:        m.EndLine,
				DeclaringClass: cls.FQN,
			})
		}

		k := key(cls.FQN)
		pool.FileMap[path] = append(pool.FileMap[path], cls.FQN)
		if len(cls.Traits) > 0 {
			pool.UsedTraits[k] = cls.Traits
		}
		if cls.Kind == phpparser.KindTrait {
			pool.TraitMap[k] = decl
			continue
		}
		pool.ClassMap[k] = decl
		added = append(added, decl)
	}
	return added
}

// Get returns the class with the given fully qualified name
func (pool *ClassPool) Get(fqn string) (*model.ClassDecl, bool) {
	decl, ok := pool.ClassMap[key(fqn)]
	return decl, ok
}

// Trait returns the trait with the given fully qualified name
func (pool *ClassPool) Trait(fqn string) (*model.ClassDecl, bool) {
	decl, ok := pool.TraitMap[key(fqn)]
	return decl, ok
}

// Len returns the number of classes in the pool
func (pool *ClassPool) Len() int {
	return len(pool.ClassMap)
}

// InNamespace returns the classes whose name starts with namespace, sorted by name
func (pool *ClassPool) InNamespace(namespace string) []*model.ClassDecl {
	prefix := key(strings.Trim(namespace, `\`))
	if prefix != "" {
		prefix += `\`
	}
	var classes []*model.ClassDecl
	for k, decl := range pool.ClassMap {
		if strings.HasPrefix(k, prefix) {
			classes = append(classes, decl)
		}
	}
	sort.Slice(classes, func(i, j int) bool {
		return classes[i].Name < classes[j].Name
	})
	return classes
}
