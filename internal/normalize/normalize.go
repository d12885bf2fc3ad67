// Package normalize produces the canonical string and scalar forms
// every downstream comparison reads. Every function here is pure and
// safe to call concurrently from many goroutines.
package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// umlautExpander applies the German-specific digraph expansion. It
// must run before accent folding so that "Müller" and "Mueller"
// converge on the same canonical string.
var umlautExpander = strings.NewReplacer(
	"ü", "ue", "Ü", "ue",
	"ö", "oe", "Ö", "oe",
	"ä", "ae", "Ä", "ae",
	"ß", "ss",
)

// diacriticFold strips combining marks left over after umlaut
// expansion (é -> e, ñ -> n, and so on) via Unicode decomposition.
var diacriticFold = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// charFilter keeps a-z, 0-9, space and hyphen; everything else is
// dropped rather than replaced.
var charFilter = regexp.MustCompile(`[^a-z0-9 -]`)

var whitespaceRun = regexp.MustCompile(`\s+`)

var digitsOnly = regexp.MustCompile(`[^0-9]`)

var yearPattern = regexp.MustCompile(`\d{4}`)

// Text is the canonical normalizer for every comparable textual field:
// given name, surname, secondary name, street, city.
//
// normalize(normalize(x)) == normalize(x) for any x: every step here
// is idempotent, and the composition of idempotent steps over a fixed
// output alphabet is idempotent.
func Text(s string) string {
	if s == "" {
		return ""
	}

	s = strings.ToLower(s)
	s = umlautExpander.Replace(s)

	if folded, _, err := transform.String(diacriticFold, s); err == nil {
		s = folded
	}

	s = charFilter.ReplaceAllString(s, "")
	s = whitespaceRun.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// PostalCode keeps only decimal digits.
func PostalCode(s string) string {
	return digitsOnly.ReplaceAllString(s, "")
}

// HouseNumber lowercases its input and keeps only digits and the
// letters a-z ("12 A" -> "12a"), dropping everything else. Letters are
// kept wherever they appear, not only as a trailing suffix.
func HouseNumber(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) || (r >= 'a' && r <= 'z') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ExtractYear pulls the first 4-digit run out of a raw date string, if
// any. Malformed or missing input degrades to (0, false) rather than
// an error: the field is treated absent and the record proceeds.
func ExtractYear(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	match := yearPattern.FindString(raw)
	if match == "" {
		return 0, false
	}
	year, err := strconv.Atoi(match)
	if err != nil {
		return 0, false
	}
	return year, true
}

// EffectiveYear applies the precedence rule for a record's year of
// birth: the year of birthDate wins over birthYear when both are
// present. This is a business rule, not a null-coalescing fallback.
func EffectiveYear(birthDate string, birthYear *int) (int, bool) {
	if year, ok := ExtractYear(birthDate); ok {
		return year, true
	}
	if birthYear != nil {
		return *birthYear, true
	}
	return 0, false
}
