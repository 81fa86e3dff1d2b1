package phpparser

// Expr is a node of the expression tree handed to the parameter walker.
// The set of variants is closed: *Call, *ArrayLit, *Literal, *Ident, *Other.
type Expr interface {
	// Pos returns the 1-based line the expression starts on
	Pos() int
	expr()
}

// LiteralKind distinguishes scalar literals
type LiteralKind int

const (
	LitString LiteralKind = iota
	LitInt
	LitFloat
	LitBool
	LitNull
)

// Call is a function, method or static call
type Call struct {
	Name     string // called name, e.g. "param", "arrayOf"
	Scope    string // static scope for Foo::bar(), e.g. "v", "self"
	Receiver Expr   // object for $obj->bar(), nil otherwise
	Args     []Expr // positional arguments
	Line     int
}

// ArrayEntry is one element of an array literal. Key is nil for list items.
type ArrayEntry struct {
	Key   Expr
	Value Expr
	Line  int
}

// ArrayLit is an array literal, either [..] or array(..)
type ArrayLit struct {
	Entries []ArrayEntry
	Line    int
}

// Literal is a scalar literal. Value holds the decoded text for strings.
type Literal struct {
	Kind  LiteralKind
	Value string
	Raw   string
	Line  int
}

// Ident is a bare name, qualified name, variable or constant reference
type Ident struct {
	Name string
	Line int
}

// Other is any construct the walker does not interpret. Children keeps the
// interpretable sub-expressions so that nested calls are still reachable.
type Other struct {
	Kind     string
	Children []Expr
	Line     int
}

func (c *Call) Pos() int     { return c.Line }
func (a *ArrayLit) Pos() int { return a.Line }
func (l *Literal) Pos() int  { return l.Line }
func (i *Ident) Pos() int    { return i.Line }
func (o *Other) Pos() int    { return o.Line }

func (*Call) expr()     {}
func (*ArrayLit) expr() {}
func (*Literal) expr()  {}
func (*Ident) expr()    {}
func (*Other) expr()    {}

// IsString reports whether e is a string literal and returns its value
func IsString(e Expr) (string, bool) {
	lit, ok := e.(*Literal)
	if !ok || lit.Kind != LitString {
		return "", false
	}
	return lit.Value, true
}
