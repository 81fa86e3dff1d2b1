package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// IncludeFiles returns the files under root matched by the include
// patterns. A pattern starting with "!" excludes what it matches; for each
// file the last matching pattern decides.
func IncludeFiles(root string, patterns []string) ([]string, error) {
	fsys := os.DirFS(root)
	candidates := make(map[string]bool)

	for _, pattern := range patterns {
		if strings.HasPrefix(pattern, "!") || pattern == "" {
			continue
		}
		pattern = filepath.ToSlash(pattern)
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid include pattern %q", pattern)
		}
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("include pattern %q: %w", pattern, err)
		}
		for _, m := range matches {
			candidates[m] = true
		}
	}

	var files []string
	for rel := range candidates {
		if Included(rel, patterns) {
			files = append(files, filepath.Join(root, filepath.FromSlash(rel)))
		}
	}
	sort.Strings(files)
	return files, nil
}

// Included evaluates patterns in reverse declaration order: the first
// match found decides, negated patterns exclude.
func Included(rel string, patterns []string) bool {
	rel = filepath.ToSlash(rel)
	for i := len(patterns) - 1; i >= 0; i-- {
		pattern := patterns[i]
		negate := strings.HasPrefix(pattern, "!")
		pattern = filepath.ToSlash(strings.TrimPrefix(pattern, "!"))
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return !negate
		}
	}
	return false
}
