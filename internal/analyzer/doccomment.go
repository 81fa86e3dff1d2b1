package analyzer

import "strings"

// NormalizeDocComment strips the /** and */ delimiters and the leading "*"
// marker of every line. An absent comment yields "".
func NormalizeDocComment(raw string) string {
	if len(raw) < 5 {
		return ""
	}
	body := raw[3 : len(raw)-2]

	lines := strings.Split(body, "\n")
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "*") {
			line = line[1:]
			line = strings.TrimPrefix(line, " ")
		}
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}
