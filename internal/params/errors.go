package params

import "fmt"

// DeclarationError reports a param/params call that cannot be resolved,
// e.g. a missing or non-literal key.
type DeclarationError struct {
	Line    int    // snippet line of the offending call
	Call    string // "param" or "params"
	Message string
}

func (e *DeclarationError) Error() string {
	return fmt.Sprintf("line %d: malformed %s() declaration: %s", e.Line, e.Call, e.Message)
}

// DuplicateKeyError reports a parameter key declared twice in one method
type DuplicateKeyError struct {
	Key  string
	Line int
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("line %d: parameter %q declared more than once", e.Line, e.Key)
}
