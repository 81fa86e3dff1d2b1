package analyzer

import "strings"

const tabWidth = 4

// ExtractSnippet returns the body of a method spanning startLine..endLine
// (1-based, signature line to closing brace line). The margin of the first
// non-blank line is stripped from every line that starts with it and tabs
// are expanded. Line separators are preserved.
func ExtractSnippet(lines []string, startLine, endLine int) string {
	from, to := startLine, endLine-1
	if from < 0 {
		from = 0
	}
	if to > len(lines) {
		to = len(lines)
	}
	if from >= to {
		return ""
	}
	body := lines[from:to]

	margin := ""
	for _, line := range body {
		if strings.TrimSpace(line) != "" {
			margin = leadingWhitespace(line)
			break
		}
	}

	tab := strings.Repeat(" ", tabWidth)
	var b strings.Builder
	for _, line := range body {
		if margin != "" {
			line = strings.TrimPrefix(line, margin)
		}
		b.WriteString(strings.ReplaceAll(line, "\t", tab))
	}
	return b.String()
}

func leadingWhitespace(line string) string {
	end := 0
	for end < len(line) && (line[end] == ' ' || line[end] == '\t') {
		end++
	}
	return line[:end]
}
