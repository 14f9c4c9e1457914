package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	s := NewSanitizer(nil)

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"dashes", "Prep – 10 min — Cook", "Prep - 10 min - Cook"},
		{"double quotes", "“Creamy”", "\"Creamy\""},
		{"single quotes", "Mom’s ‘secret’", "Mom's 'secret'"},
		{"rupee", "Cost ₹250", "Cost Rs.250"},
		{"bullet", "• Salt", "- Salt"},
		{"empty", "", ""},
		{"untouched", "Plain ASCII & café", "Plain ASCII & café"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Sanitize(tt.in))
		})
	}
}

func TestSanitizeRemovesAllTableSources(t *testing.T) {
	s := NewSanitizer(nil)

	var all strings.Builder
	for _, sub := range s.Table() {
		all.WriteString("x" + sub.From + "y")
	}
	out := s.Sanitize(all.String())

	for _, sub := range s.Table() {
		assert.NotContains(t, out, sub.From)
	}
}

func TestSanitizerTableIsCopied(t *testing.T) {
	table := []Substitution{{From: "ß", To: "ss"}, {From: "", To: "ignored"}}
	s := NewSanitizer(table)
	table[0].To = "changed"

	assert.Equal(t, "Strasse", s.Sanitize("Straße"))
	assert.Len(t, s.Table(), 1)

	got := s.Table()
	got[0].To = "mutated"
	assert.Equal(t, "Strasse", s.Sanitize("Straße"))
}

func TestSanitizeAppliesInOrder(t *testing.T) {
	s := NewSanitizer([]Substitution{{From: "a", To: "b"}, {From: "b", To: "c"}})
	assert.Equal(t, "cc", s.Sanitize("ab"))
}
