package model

import "strings"

// Verb represents the HTTP-like prefix encoded in an API method name
type Verb string

const (
	VerbGET  Verb = "GET"
	VerbPOST Verb = "POST"
)

// ItemMarker is appended to a parameter key when its validator wraps the
// inner structure as "array of". It stands for any index.
const ItemMarker = "[n]"

// MethodRecord represents one documented API method of a class
type MethodRecord struct {
	// Logical name derived from the method name (kebab-case, lower-cased)
	Name string

	// GET or POST, taken from the method name prefix
	Verb Verb

	// Normalized doc comment text (may be empty)
	Description string

	// Method body with the common margin stripped and tabs expanded
	Code string

	// Declared parameters, parents before children, siblings in declaration order
	Parameters []ParamRecord

	// Class whose page documents this method
	Class string

	// Original method identifier (e.g. "GET_UserList")
	Method string

	// Declaring file and signature line
	File string
	Line int
}

// ParamRecord represents a parameter discovered in a method body
type ParamRecord struct {
	// Dotted/bracketed path (e.g. "address.city", "items[n].id")
	Key string

	// Trailing comment found on the declaring line
	Description string

	// Nesting depth used for indentation only (0 = top level)
	Offset int

	// Snippet line (1-based) the description was taken from
	Line int
}

// Leaf returns the last segment of the key path.
// "address.city" -> "city", "items[n]" -> "[n]", "age" -> "age"
func (p ParamRecord) Leaf() string {
	dot := strings.LastIndex(p.Key, ".")
	if strings.HasSuffix(p.Key, ItemMarker) {
		if idx := len(p.Key) - len(ItemMarker); idx > dot && idx > 0 {
			return ItemMarker
		}
	}
	if dot == -1 {
		return p.Key
	}
	return p.Key[dot+1:]
}

// IsItem reports whether the record describes the elements of a wrapped collection
func (p ParamRecord) IsItem() bool {
	return strings.HasSuffix(p.Key, ItemMarker)
}

// Parent returns the key of the enclosing parameter, or "" for top-level keys
func (p ParamRecord) Parent() string {
	leaf := p.Leaf()
	if leaf == p.Key {
		return ""
	}
	parent := strings.TrimSuffix(p.Key, leaf)
	return strings.TrimSuffix(parent, ".")
}
