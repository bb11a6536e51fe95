package calc

import (
	"math/big"
	"regexp"
	"unicode"
	"unicode/utf8"
)

var numberRegexp = regexp.MustCompile(`\d+`)

// FirstTwoNumbers returns the first two unsigned integers in text, left to right.
// A digit run only counts as a number when no letter, digit or underscore touches
// it, so "café12" holds no number. ok is false when text holds fewer than two.
func FirstTwoNumbers(text string) (a, b *big.Int, ok bool) {
	var numbers []*big.Int

	for _, loc := range numberRegexp.FindAllStringIndex(text, -1) {
		if !standsAlone(text, loc[0], loc[1]) {
			continue
		}

		n, _ := new(big.Int).SetString(text[loc[0]:loc[1]], 10)
		numbers = append(numbers, n)

		if len(numbers) == 2 {
			return numbers[0], numbers[1], true
		}
	}

	return nil, nil, false
}

func standsAlone(text string, start, end int) bool {
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(text[:start])
		if isWordRune(r) {
			return false
		}
	}

	if end < len(text) {
		r, _ := utf8.DecodeRuneInString(text[end:])
		if isWordRune(r) {
			return false
		}
	}

	return true
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r)
}
