package analyzer

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"unicode/utf8"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"

	"libwebdoc/internal/logger"
)

// SourceCache reads source files once per run and serves them as lines.
// Each line keeps its line separator. Safe for concurrent use.
type SourceCache struct {
	hints []string

	mu    sync.Mutex
	files map[string][]string
}

// NewSourceCache creates a cache decoding non UTF-8 files with the given
// encoding hints, tried in order (e.g. "euc-kr", "windows-1252")
func NewSourceCache(hints []string) *SourceCache {
	return &SourceCache{
		hints: hints,
		files: make(map[string][]string),
	}
}

// Lines returns the lines of a file
func (c *SourceCache) Lines(path string) ([]string, error) {
	c.mu.Lock()
	lines, ok := c.files[path]
	c.mu.Unlock()
	if ok {
		return lines, nil
	}

	content, err := ReadFile(path, c.hints)
	if err != nil {
		return nil, err
	}
	lines = SplitLines(content)

	c.mu.Lock()
	c.files[path] = lines
	c.mu.Unlock()
	return lines, nil
}

// Len returns the number of cached files
func (c *SourceCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.files)
}

// ReadFile reads a file and returns its content as UTF-8.
// Files that are not valid UTF-8 are decoded with the first hint that
// yields valid text.
func ReadFile(path string, hints []string) (string, error) {
	rawBytes, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	return Decode(rawBytes, hints), nil
}

// Decode converts raw bytes to UTF-8 using the encoding hints
func Decode(data []byte, hints []string) string {
	if utf8.Valid(data) {
		return string(data)
	}

	for _, hint := range hints {
		if strings.EqualFold(hint, "utf-8") || strings.EqualFold(hint, "utf8") {
			continue
		}
		enc, err := htmlindex.Get(hint)
		if err != nil {
			logger.Debug("Unknown encoding hint %q: %v", hint, err)
			continue
		}
		decoded, _, err := transform.Bytes(enc.NewDecoder(), data)
		if err != nil || !utf8.Valid(decoded) {
			continue
		}
		return string(decoded)
	}

	// Fall back to original (might be corrupted)
	return string(data)
}

// SplitLines splits text after every "\n", keeping the separators.
// A trailing newline does not produce an empty last line.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.SplitAfter(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
