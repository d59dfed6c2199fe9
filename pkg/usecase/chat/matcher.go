package chat

import (
	"strings"
	"unicode/utf8"
)

// CustomerMatcher finds customer names mentioned in a question. Pluggable so
// the substring heuristic can later be replaced by a proper entity-linking
// algorithm without touching the retrieval flow.
type CustomerMatcher interface {
	Match(question string, names []string) []string
}

// SubstringMatcher matches a customer name when the full name appears in the
// question, or when any name word longer than minWordLen does. Matching is
// case-insensitive.
type SubstringMatcher struct {
	minWordLen int
}

var _ CustomerMatcher = (*SubstringMatcher)(nil)

// NewSubstringMatcher creates the default matcher: words must be longer than
// 3 characters to match on their own.
func NewSubstringMatcher() *SubstringMatcher {
	return &SubstringMatcher{minWordLen: 3}
}

func (m *SubstringMatcher) Match(question string, names []string) []string {
	q := strings.ToLower(question)

	var matched []string
	for _, name := range names {
		if m.mentions(q, name) {
			matched = append(matched, name)
		}
	}
	return matched
}

func (m *SubstringMatcher) mentions(q, name string) bool {
	lowered := strings.ToLower(name)

	// the full name matches regardless of its length
	if strings.Contains(q, lowered) {
		return true
	}

	for _, word := range strings.Fields(lowered) {
		word = strings.Trim(word, ".,;:!?\"'()")
		if utf8.RuneCountInString(word) <= m.minWordLen {
			continue
		}
		if strings.Contains(q, word) {
			return true
		}
	}
	return false
}
