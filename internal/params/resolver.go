package params

import (
	"libwebdoc/internal/model"
	"libwebdoc/internal/phpparser"
)

// Resolve builds the record for key and, when the validator describes a
// structure, the records of its children. line is the 1-based snippet line
// holding the description in comments, the per-line trailing comments
// returned by Comments; 0 means no description. Records come back
// parents first, siblings in declaration order.
func (w *Walker) Resolve(key string, validator phpparser.Expr, line int, comments []string, offset int) ([]model.ParamRecord, error) {
	records := []model.ParamRecord{{
		Key:         key,
		Description: describe(comments, line),
		Offset:      offset,
		Line:        line,
	}}

	switch v := validator.(type) {
	case *phpparser.ArrayLit:
		for _, entry := range v.Entries {
			if entry.Key == nil {
				return nil, &DeclarationError{Line: entry.Line, Call: callParam, Message: "nested entry of " + key + " has no key"}
			}
			childKey, err := literalKey(entry.Key, callParam)
			if err != nil {
				return nil, err
			}
			children, err := w.Resolve(key+"."+childKey, entry.Value, entry.Line, comments, offset+1)
			if err != nil {
				return nil, err
			}
			records = append(records, children...)
		}

	case *phpparser.Call:
		wrap, ok := w.isWrap(v)
		if !ok {
			break
		}
		var inner phpparser.Expr
		innerLine := 0
		if len(wrap.Args) > 0 {
			inner = wrap.Args[0]
			// an item declared on the parent's line has no description of its own
			if inner.Pos() != line {
				innerLine = inner.Pos()
			}
		}
		items, err := w.Resolve(key+model.ItemMarker, inner, innerLine, comments, offset+1)
		if err != nil {
			return nil, err
		}
		records = append(records, items...)
	}

	return records, nil
}

func describe(comments []string, line int) string {
	if line < 1 || line > len(comments) {
		return ""
	}
	return comments[line-1]
}
