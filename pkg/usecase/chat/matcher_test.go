package chat_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/agente-ai/agente/pkg/usecase/chat"
)

func TestSubstringMatcher(t *testing.T) {
	matcher := chat.NewSubstringMatcher()
	names := []string{"Alpha Systems", "ABC Inc", "Beta Corp"}

	t.Run("FullNameSubstring", func(t *testing.T) {
		got := matcher.Match("how much did alpha systems spend last month?", names)
		gt.A(t, got).Length(1)
		gt.Equal(t, got[0], "Alpha Systems")
	})

	t.Run("SingleWordOverMinLength", func(t *testing.T) {
		got := matcher.Match("tell me about alpha purchases", names)
		gt.A(t, got).Length(1)
		gt.Equal(t, got[0], "Alpha Systems")
	})

	t.Run("ShortWordIgnored", func(t *testing.T) {
		// "abc" alone is too short to count as a mention
		got := matcher.Match("what does abc sell?", names)
		gt.A(t, got).Length(0)
	})

	t.Run("ShortWordFullNameStillMatches", func(t *testing.T) {
		got := matcher.Match("show orders from abc inc", names)
		gt.A(t, got).Length(1)
		gt.Equal(t, got[0], "ABC Inc")
	})

	t.Run("PunctuationStripped", func(t *testing.T) {
		got := matcher.Match("any news on Alpha?", names)
		gt.A(t, got).Length(1)
		gt.Equal(t, got[0], "Alpha Systems")
	})

	t.Run("MultipleCustomers", func(t *testing.T) {
		got := matcher.Match("compare alpha systems and beta corp", names)
		gt.A(t, got).Length(2)
	})

	t.Run("NoMention", func(t *testing.T) {
		got := matcher.Match("what is the cheapest product?", names)
		gt.A(t, got).Length(0)
	})
}
