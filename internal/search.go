package internal

import (
	"strings"

	"golang.org/x/text/cases"
)

// nameMatcher checks names for containing a search term, ignoring case. The term is used as typed. Casers are stateful, so every search
// gets its own matcher.
type nameMatcher struct {
	fold cases.Caser
	term string
}

func newNameMatcher(term string) *nameMatcher {
	fold := cases.Fold()
	return &nameMatcher{
		fold: fold,
		term: fold.String(term),
	}
}

// Matches checks if the term appears anywhere inside the given name
func (m *nameMatcher) Matches(name string) bool {
	return strings.Contains(m.fold.String(name), m.term)
}
