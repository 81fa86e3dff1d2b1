// Package render turns method records into the Markdown content of a page.
package render

import (
	"strings"

	"libwebdoc/internal/model"
)

// Placeholder replaces an empty description so that a block never collapses
const Placeholder = "&nbsp;"

// indent is the bullet indentation per nesting level
const indent = "    "

// Description returns desc, or Placeholder when desc holds nothing but
// whitespace
func Description(desc string) string {
	if strings.TrimSpace(desc) == "" {
		return Placeholder
	}
	return desc
}

// Page renders the blocks of all methods separated by a blank line
func Page(methods []model.MethodRecord) string {
	blocks := make([]string, 0, len(methods))
	for _, m := range methods {
		blocks = append(blocks, Method(m))
	}
	return strings.Join(blocks, "\n\n")
}

// Method renders one method:
//
//	### **VERB** name
//
//	**Params**
//
//	* *key*: description
//	    * *child*: description
//
//	description
//
//	```
//	code
//	```
func Method(m model.MethodRecord) string {
	var b strings.Builder

	b.WriteString("### **")
	b.WriteString(string(m.Verb))
	b.WriteString("** ")
	b.WriteString(m.Name)
	b.WriteString("\n\n")

	if len(m.Parameters) > 0 {
		b.WriteString("**Params**\n\n")
		b.WriteString(Params(m.Parameters))
		b.WriteString("\n\n")
	}

	b.WriteString(Description(m.Description))
	b.WriteString("\n\n")

	code := strings.TrimRight(m.Code, "\r\n")
	fence := Fence(code)
	b.WriteString(fence)
	b.WriteString("\n")
	if code != "" {
		b.WriteString(code)
		b.WriteString("\n")
	}
	b.WriteString(fence)

	return b.String()
}

// Params renders parameters as nested bullets, one level per offset
func Params(records []model.ParamRecord) string {
	lines := make([]string, 0, len(records))
	for _, p := range records {
		line := strings.Repeat(indent, p.Offset) + "* *" + p.Leaf() + "*"
		if p.Description != "" {
			line += ": " + p.Description
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// Fence returns a backtick fence longer than any backtick run in code
func Fence(code string) string {
	longest, run := 0, 0
	for i := 0; i < len(code); i++ {
		if code[i] == '`' {
			run++
			if run > longest {
				longest = run
			}
			continue
		}
		run = 0
	}
	if longest < 3 {
		return "```"
	}
	return strings.Repeat("`", longest+1)
}
