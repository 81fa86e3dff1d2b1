package params

import "strings"

// lexState is what is still open at a line break: a string literal
// (quote holds its delimiter) or a block comment
type lexState struct {
	quote byte
	block bool
}

// TrailingComment returns the text of the comment ending a source line.
// A line comment ("//" or "#") wins; otherwise a block comment closing the
// line is used. Comment markers inside string literals are ignored. The
// line is read on its own; use Comments for lines of one snippet, where a
// string may span several lines.
func TrailingComment(line string) string {
	comment, _ := scanLine(line, lexState{})
	return comment
}

// Comments returns the trailing comment of every line, carrying open
// strings and block comments over line breaks. Heredoc and nowdoc bodies
// are not tracked.
func Comments(lines []string) []string {
	comments := make([]string, len(lines))
	var state lexState
	for i, line := range lines {
		comments[i], state = scanLine(line, state)
	}
	return comments
}

// scanLine reads line starting in state and returns its trailing comment
// and the state left open at its end
func scanLine(line string, state lexState) (string, lexState) {
	line = strings.TrimSpace(line)

	quote := state.quote
	blockStart, blockEnd := -1, -1
	i := 0

	if state.block {
		end := strings.Index(line, "*/")
		if end == -1 {
			return "", state
		}
		i = end + 2
	}

	for ; i < len(line); i++ {
		ch := line[i]

		if quote != 0 {
			switch ch {
			case '\\':
				i++
			case quote:
				quote = 0
			}
			continue
		}

		switch {
		case ch == '\'' || ch == '"' || ch == '`':
			quote = ch
		case ch == '#' && !strings.HasPrefix(line[i:], "#["):
			return strings.TrimSpace(line[i+1:]), lexState{}
		case strings.HasPrefix(line[i:], "//"):
			return strings.TrimSpace(line[i+2:]), lexState{}
		case strings.HasPrefix(line[i:], "/*"):
			end := strings.Index(line[i+2:], "*/")
			if end == -1 {
				return "", lexState{block: true}
			}
			blockStart, blockEnd = i+2, i+2+end
			i = blockEnd + 1
		}
	}

	if blockStart != -1 && blockEnd+2 == len(line) {
		text := strings.TrimPrefix(line[blockStart:blockEnd], "*")
		return strings.TrimSpace(text), lexState{quote: quote}
	}
	return "", lexState{quote: quote}
}
