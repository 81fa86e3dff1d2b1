package analyzer

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// PagePath places a class in the page tree. It returns the directories
// below the API root (the namespace segments after the API namespace) and
// the page name: the short class name without its last suffixLen
// characters, lower-cased. ok is false for classes outside the namespace
// and for skipped classes.
func PagePath(class, namespace string, skip func(relative string) bool, suffixLen int) (dirs []string, page string, ok bool) {
	prefix := strings.Trim(namespace, `\`)
	if prefix != "" {
		prefix += `\`
	}
	if !strings.HasPrefix(class, prefix) {
		return nil, "", false
	}

	relative := strings.TrimPrefix(class, prefix)
	if relative == "" || (skip != nil && skip(relative)) {
		return nil, "", false
	}

	segments := strings.Split(relative, `\`)
	name := []rune(segments[len(segments)-1])
	if suffixLen > 0 && len(name) > suffixLen {
		name = name[:len(name)-suffixLen]
	}

	page = cases.Lower(language.Und).String(string(name))
	return segments[:len(segments)-1], page, true
}
