package utils

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	whitespaceRe  = regexp.MustCompile(`\s+`)
	punctuationRe = regexp.MustCompile(`[.,;:!?'"()]`)
)

// NormalizeIdentifier canonicalizes a title or author string for matching
// the same work across users: lowercase, trim, collapse runs of whitespace,
// then strip common punctuation that differs between entries.
//
// The function is idempotent: applying it twice gives the same result.
func NormalizeIdentifier(s string) string {
	if s == "" {
		return ""
	}
	s = whitespaceRe.ReplaceAllString(strings.TrimSpace(strings.ToLower(s)), " ")
	s = punctuationRe.ReplaceAllString(s, "")
	return s
}

// IdentityKey builds the cross-user grouping key for a work
func IdentityKey(title, author string) string {
	return NormalizeIdentifier(title) + "|" + NormalizeIdentifier(author)
}

var generationalSuffixRe = regexp.MustCompile(` (jr|sr|ii|iii|iv)$`)

// NormalizeAuthorName canonicalizes an author name for deduplication and
// canon matching. On top of NormalizeIdentifier it drops generational
// suffixes, so "Martin Luther King Jr." and "Martin Luther King" collapse
// to the same author row.
func NormalizeAuthorName(name string) string {
	s := NormalizeIdentifier(name)
	return generationalSuffixRe.ReplaceAllString(s, "")
}

func ParseFloatToDecimal(number *float64) *decimal.Decimal {
	if number == nil {
		return nil
	}
	d := decimal.NewFromFloat(*number)
	return &d
}

func ParseStringToUUID(s string) uuid.UUID {
	uid, err := uuid.Parse(s)
	if err != nil || s == "" {
		return uuid.Nil
	}
	return uid
}
