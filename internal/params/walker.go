package params

import (
	"strings"

	"libwebdoc/internal/model"
	"libwebdoc/internal/phpparser"
)

const (
	callParam  = "param"
	callParams = "params"
)

// Walker finds param()/params() declarations anywhere in a method body
// and resolves them into parameter records.
type Walker struct {
	// Static scope of wrap calls, e.g. "v" for v::arrayOf(...)
	ValidatorNamespace string

	// Validator calls meaning "array of <inner>"
	WrapCalls []string

	// Strict turns duplicate keys into a DuplicateKeyError
	Strict bool

	// OnDuplicate is notified when a key is overwritten in non-strict mode
	OnDuplicate func(key string, line int)
}

// NewWalker creates a Walker recognizing v::arrayOf as the wrap call
func NewWalker() *Walker {
	return &Walker{ValidatorNamespace: "v", WrapCalls: []string{"arrayOf"}}
}

// Walk visits every expression of a parsed snippet. lines are the snippet's
// source lines, used to look up trailing-comment descriptions.
func (w *Walker) Walk(exprs []phpparser.Expr, lines []string) (*ParamSet, error) {
	comments := Comments(lines)
	set := NewParamSet()
	for _, e := range exprs {
		if err := w.walk(e, comments, set); err != nil {
			return nil, err
		}
	}
	return set, nil
}

func (w *Walker) walk(e phpparser.Expr, comments []string, set *ParamSet) error {
	switch n := e.(type) {
	case *phpparser.Call:
		if n.Receiver != nil {
			if err := w.walk(n.Receiver, comments, set); err != nil {
				return err
			}
		}
		switch n.Name {
		case callParam:
			return w.declare(n, set, func() ([]model.ParamRecord, error) {
				return w.resolveParamCall(n, comments)
			})
		case callParams:
			return w.declare(n, set, func() ([]model.ParamRecord, error) {
				return w.resolveParamsCall(n, comments)
			})
		}
		for _, arg := range n.Args {
			if err := w.walk(arg, comments, set); err != nil {
				return err
			}
		}

	case *phpparser.ArrayLit:
		for _, entry := range n.Entries {
			if entry.Key != nil {
				if err := w.walk(entry.Key, comments, set); err != nil {
					return err
				}
			}
			if err := w.walk(entry.Value, comments, set); err != nil {
				return err
			}
		}

	case *phpparser.Other:
		for _, child := range n.Children {
			if err := w.walk(child, comments, set); err != nil {
				return err
			}
		}
	}
	return nil
}

// declare resolves one call and merges its records into set
func (w *Walker) declare(call *phpparser.Call, set *ParamSet, resolve func() ([]model.ParamRecord, error)) error {
	records, err := resolve()
	if err != nil {
		return err
	}
	for _, r := range records {
		if !set.Add(r) {
			continue
		}
		if w.Strict {
			return &DuplicateKeyError{Key: r.Key, Line: call.Line}
		}
		if w.OnDuplicate != nil {
			w.OnDuplicate(r.Key, call.Line)
		}
	}
	return nil
}

// resolveParamCall handles param(key), param(key, validator) and
// param(key, flag, validator)
func (w *Walker) resolveParamCall(call *phpparser.Call, comments []string) ([]model.ParamRecord, error) {
	if len(call.Args) == 0 {
		return nil, &DeclarationError{Line: call.Line, Call: callParam, Message: "missing key argument"}
	}
	key, err := literalKey(call.Args[0], callParam)
	if err != nil {
		return nil, err
	}

	var validator phpparser.Expr
	switch {
	case len(call.Args) == 2:
		validator = call.Args[1]
	case len(call.Args) >= 3:
		validator = call.Args[2]
	}
	return w.Resolve(key, validator, call.Args[0].Pos(), comments, 0)
}

// resolveParamsCall handles params([key => validator, ...])
func (w *Walker) resolveParamsCall(call *phpparser.Call, comments []string) ([]model.ParamRecord, error) {
	if len(call.Args) == 0 {
		return nil, &DeclarationError{Line: call.Line, Call: callParams, Message: "missing mapping argument"}
	}
	mapping, ok := call.Args[0].(*phpparser.ArrayLit)
	if !ok {
		return nil, &DeclarationError{Line: call.Line, Call: callParams, Message: "argument is not an array literal"}
	}

	var records []model.ParamRecord
	for _, entry := range mapping.Entries {
		if entry.Key == nil {
			return nil, &DeclarationError{Line: entry.Line, Call: callParams, Message: "entry without key"}
		}
		key, err := literalKey(entry.Key, callParams)
		if err != nil {
			return nil, err
		}
		resolved, err := w.Resolve(key, entry.Value, entry.Line, comments, 0)
		if err != nil {
			return nil, err
		}
		records = append(records, resolved...)
	}
	return records, nil
}

// isWrap reports whether e is a recognized wrap call such as v::arrayOf(x)
func (w *Walker) isWrap(e phpparser.Expr) (*phpparser.Call, bool) {
	call, ok := e.(*phpparser.Call)
	if !ok || call.Receiver != nil || !strings.EqualFold(call.Scope, w.ValidatorNamespace) {
		return nil, false
	}
	for _, name := range w.WrapCalls {
		if call.Name == name {
			return call, true
		}
	}
	return nil, false
}

// literalKey extracts a parameter key from a string or integer literal
func literalKey(e phpparser.Expr, callName string) (string, error) {
	lit, ok := e.(*phpparser.Literal)
	if !ok || (lit.Kind != phpparser.LitString && lit.Kind != phpparser.LitInt) {
		return "", &DeclarationError{Line: e.Pos(), Call: callName, Message: "key is not a literal"}
	}
	return lit.Value, nil
}
