package glguess

import (
	"strings"
	"unicode"
)

// Normalize applies input defaults: qty 1 when missing or not positive, unit
// "ea" when blank, unit price 0 when missing. The description is kept as sent;
// history and hint lookups match it exactly.
func Normalize(in LineInput) Line {
	line := Line{
		Description: in.Description,
		Qty:         1,
		Unit:        strings.TrimSpace(in.Unit),
	}
	if in.Qty != nil && *in.Qty > 0 {
		line.Qty = *in.Qty
	}
	if line.Unit == "" {
		line.Unit = DefaultUnit
	}
	if in.UnitPrice != nil {
		line.UnitPrice = *in.UnitPrice
	}
	return line
}

// Tokenize lower-cases s and splits it on runs of anything that is not a
// letter or digit.
func Tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// TokenGuess returns the account of the first token, in description order,
// that the token map maps to a positive id.
func TokenGuess(tokenMap map[string]int64, description string) (int64, bool) {
	if len(tokenMap) == 0 {
		return 0, false
	}
	for _, tok := range Tokenize(description) {
		if id, ok := tokenMap[tok]; ok && id > 0 {
			return id, true
		}
	}
	return 0, false
}
