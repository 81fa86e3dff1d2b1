package analyzer

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"

	"libwebdoc/internal/logger"
	"libwebdoc/internal/model"
	"libwebdoc/internal/params"
	"libwebdoc/internal/phpparser"
)

var (
	apiMethodPattern = regexp.MustCompile(`^(GET|POST)_(\w+)$`)
	caseBoundary     = regexp.MustCompile(`([a-z])([A-Z])`)
)

// ParseMethodName splits an API method name into its verb and kebab-case name.
// "GET_userInfo" -> (GET, "user-info", true)
func ParseMethodName(name string) (model.Verb, string, bool) {
	matches := apiMethodPattern.FindStringSubmatch(name)
	if matches == nil {
		return "", "", false
	}
	kebab := caseBoundary.ReplaceAllString(matches[2], "$1-$2")
	return model.Verb(matches[1]), strings.ToLower(kebab), true
}

// MethodError locates a failure inside one API method
type MethodError struct {
	Class  string
	Method string
	File   string
	Line   int
	Err    error
}

func (e *MethodError) Error() string {
	return fmt.Sprintf("%s::%s (%s:%d): %v", e.Class, e.Method, e.File, e.Line, e.Err)
}

func (e *MethodError) Unwrap() error {
	return e.Err
}

// Catalog builds the method records of API classes. A class is processed
// at most once per Catalog.
type Catalog struct {
	walker  *params.Walker
	sources *SourceCache

	mu        sync.Mutex
	processed map[string]bool
}

// NewCatalog creates a Catalog resolving parameters with walker
func NewCatalog(walker *params.Walker, sources *SourceCache) *Catalog {
	return &Catalog{
		walker:    walker,
		sources:   sources,
		processed: make(map[string]bool),
	}
}

// claim marks a class as processed and reports whether it was new
func (c *Catalog) claim(fqn string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.processed[fqn] {
		return false
	}
	c.processed[fqn] = true
	return true
}

// BuildClass returns the sorted method records of a class. ok is false when
// the class was already processed by this Catalog.
func (c *Catalog) BuildClass(ctx context.Context, class *model.ClassDecl, methods []model.MethodDecl) (records []model.MethodRecord, ok bool, err error) {
	if !c.claim(class.Name) {
		logger.Debug("Skipping already processed class %s", class.Name)
		return nil, false, nil
	}

	for _, m := range methods {
		verb, name, match := ParseMethodName(m.Name)
		if !match {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, true, err
		}
		record, err := c.BuildMethod(ctx, class, m, verb, name)
		if err != nil {
			return nil, true, err
		}
		records = append(records, record)
	}

	SortMethods(records)
	return records, true, nil
}

// BuildMethod assembles the record of one API method
func (c *Catalog) BuildMethod(ctx context.Context, class *model.ClassDecl, m model.MethodDecl, verb model.Verb, name string) (model.MethodRecord, error) {
	fail := func(line int, err error) (model.MethodRecord, error) {
		return model.MethodRecord{}, &MethodError{Class: class.Name, Method: m.Name, File: m.File, Line: line, Err: err}
	}

	lines, err := c.sources.Lines(m.File)
	if err != nil {
		return fail(m.StartLine, err)
	}
	code := ExtractSnippet(lines, m.StartLine, m.EndLine)

	exprs, err := phpparser.ParseSnippet(ctx, code)
	if err != nil {
		var perr *phpparser.ParseError
		if errors.As(err, &perr) {
			return fail(m.StartLine+perr.Line, err)
		}
		return fail(m.StartLine, err)
	}

	walker := *c.walker
	walker.OnDuplicate = func(key string, line int) {
		logger.Warn("%s::%s declares parameter %q more than once (%s:%d)", class.Name, m.Name, key, m.File, m.StartLine+line)
	}

	set, err := walker.Walk(exprs, SplitLines(code))
	if err != nil {
		var derr *params.DeclarationError
		var dup *params.DuplicateKeyError
		switch {
		case errors.As(err, &derr):
			return fail(m.StartLine+derr.Line, err)
		case errors.As(err, &dup):
			return fail(m.StartLine+dup.Line, err)
		}
		return fail(m.StartLine, err)
	}

	return model.MethodRecord{
		Name:        name,
		Verb:        verb,
		Description: NormalizeDocComment(m.DocComment),
		Code:        code,
		Parameters:  set.Records(),
		Class:       class.Name,
		Method:      m.Name,
		File:        m.File,
		Line:        m.StartLine,
	}, nil
}

// SortMethods orders records by verb, then by name
func SortMethods(records []model.MethodRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Verb != records[j].Verb {
			return records[i].Verb < records[j].Verb
		}
		return records[i].Name < records[j].Name
	})
}
