package common

import (
	"sort"

	"libwebdoc/internal/model"
)

// SortClasses returns the documented classes ordered by page path.
// The input slice is left untouched.
func SortClasses(classes []model.ClassDoc) []model.ClassDoc {
	sorted := append([]model.ClassDoc(nil), classes...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PagePath() < sorted[j].PagePath()
	})
	return sorted
}

// SortByComplexity orders classes by method count, largest first.
// Ties keep page order.
func SortByComplexity(classes []model.ClassDoc) []model.ClassDoc {
	sorted := SortClasses(classes)
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i].Methods) > len(sorted[j].Methods)
	})
	return sorted
}

// CountVerbs splits a class's methods by verb
func CountVerbs(doc model.ClassDoc) (get, post int) {
	for _, m := range doc.Methods {
		switch m.Verb {
		case model.VerbGET:
			get++
		case model.VerbPOST:
			post++
		}
	}
	return get, post
}
