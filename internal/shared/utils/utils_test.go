package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeIdentifier(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercase", "The Road", "the road"},
		{"collapses whitespace", "the   road", "the road"},
		{"trims", "  the road  ", "the road"},
		{"strips punctuation", "J. R. R. Tolkien", "j r r tolkien"},
		{"quotes and parens", `"Salem's Lot" (Illustrated)`, "salems lot illustrated"},
		{"empty", "", ""},
		{"only punctuation", "...", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeIdentifier(tt.input))
		})
	}
}

func TestNormalizeIdentifierIsIdempotent(t *testing.T) {
	inputs := []string{"The Road", "  J. R. R.   Tolkien ", "don't panic!", ""}
	for _, input := range inputs {
		once := NormalizeIdentifier(input)
		assert.Equal(t, once, NormalizeIdentifier(once))
	}
}

func TestNormalizeAuthorName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain name", "Cormac McCarthy", "cormac mccarthy"},
		{"drops jr suffix", "Martin Luther King Jr.", "martin luther king"},
		{"drops sr suffix", "Harry Connick Sr.", "harry connick"},
		{"drops roman numeral", "John Paul II", "john paul"},
		{"suffix only at end", "Junior Brown", "junior brown"},
		{"initials kept", "J. R. R. Tolkien", "j r r tolkien"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeAuthorName(tt.input))
		})
	}
}

func TestNormalizeAuthorNameIsIdempotent(t *testing.T) {
	inputs := []string{"Martin Luther King Jr.", "Kurt Vonnegut", ""}
	for _, input := range inputs {
		once := NormalizeAuthorName(input)
		assert.Equal(t, once, NormalizeAuthorName(once))
	}
}

func TestIdentityKey(t *testing.T) {
	assert.Equal(t, "the road|cormac mccarthy", IdentityKey("The Road", "Cormac McCarthy"))
	assert.Equal(t,
		IdentityKey("The Road", "Cormac McCarthy"),
		IdentityKey("the   ROAD", "cormac  mccarthy"))
	assert.Equal(t, "|", IdentityKey("", ""))
}
