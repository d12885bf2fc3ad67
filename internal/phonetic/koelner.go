// Package phonetic implements Kölner Phonetik ("Cologne phonetic"), a
// German-oriented phonetic algorithm that maps a name to a digit
// string so that common spelling variants of the same name collapse
// to the same code (Meyer/Maier/Mayer/Meier, Schmidt/Schmitt, ...).
//
// The encoder is pure: equal normalized inputs always produce equal
// codes, and it never mutates its input.
package phonetic

import "strings"

const (
	codeNone = -1 // H: transparent, contributes no digit
)

// initialCAfter is the set of letters which, when they follow an
// initial C, make it code as 4 rather than 8.
var initialCAfter = map[byte]bool{'a': true, 'h': true, 'k': true, 'l': true, 'o': true, 'q': true, 'r': true, 'u': true, 'x': true}

// medialCAfter is the narrower set used for a non-initial C (no L, no R).
var medialCAfter = map[byte]bool{'a': true, 'h': true, 'k': true, 'o': true, 'q': true, 'u': true, 'x': true}

// Encode computes the Kölner Phonetik code of a normalized name.
//
// Per the fixed compound-name convention, hyphens and spaces are
// dropped before encoding and the remaining letters are treated as a
// single token: "meyer-schmidt" encodes exactly as "meyerschmidt"
// would.
func Encode(name string) string {
	letters := onlyLetters(name)
	if len(letters) == 0 {
		return ""
	}

	raw := rawCodes(letters)
	collapsed := collapseRepeats(raw)
	return stripNonLeadingZeros(collapsed)
}

// onlyLetters drops anything that is not a-z, including the hyphens
// and spaces normalize.Text otherwise preserves.
func onlyLetters(s string) []byte {
	s = strings.ToLower(s)
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'a' && c <= 'z' {
			out = append(out, c)
		}
	}
	return out
}

// rawCodes maps every letter to zero, one or two digits (X produces
// two), using the left/right letter context. H appends nothing, since
// it never emits a digit.
func rawCodes(letters []byte) []int {
	codes := make([]int, 0, len(letters)+1)
	for i, c := range letters {
		var prev, next byte
		hasPrev, hasNext := i > 0, i+1 < len(letters)
		if hasPrev {
			prev = letters[i-1]
		}
		if hasNext {
			next = letters[i+1]
		}

		switch c {
		case 'a', 'e', 'i', 'j', 'o', 'u', 'y':
			codes = append(codes, 0)
		case 'h':
			// no code emitted
		case 'b':
			codes = append(codes, 1)
		case 'p':
			if hasNext && next == 'h' {
				codes = append(codes, 3)
			} else {
				codes = append(codes, 1)
			}
		case 'd', 't':
			if hasNext && isOneOf(next, 'c', 's', 'z') {
				codes = append(codes, 8)
			} else {
				codes = append(codes, 2)
			}
		case 'f', 'v', 'w':
			codes = append(codes, 3)
		case 'g', 'k', 'q':
			codes = append(codes, 4)
		case 'c':
			codes = append(codes, codeForC(i == 0, hasPrev, prev, hasNext, next))
		case 'x':
			if hasPrev && isOneOf(prev, 'c', 'k', 'q') {
				codes = append(codes, 8)
			} else {
				codes = append(codes, 4, 8)
			}
		case 'l':
			codes = append(codes, 5)
		case 'm', 'n':
			codes = append(codes, 6)
		case 'r':
			codes = append(codes, 7)
		case 's', 'z':
			codes = append(codes, 8)
		}
	}
	return codes
}

func codeForC(initial, hasPrev bool, prev byte, hasNext bool, next byte) int {
	if initial {
		if hasNext && initialCAfter[next] {
			return 4
		}
		return 8
	}
	if hasPrev && isOneOf(prev, 's', 'z') {
		return 8
	}
	if hasNext && medialCAfter[next] {
		return 4
	}
	return 8
}

func isOneOf(c byte, options ...byte) bool {
	for _, o := range options {
		if c == o {
			return true
		}
	}
	return false
}

// collapseRepeats merges consecutive identical digits, the same way
// double letters collapse in the source name.
func collapseRepeats(codes []int) []int {
	if len(codes) == 0 {
		return codes
	}
	out := make([]int, 0, len(codes))
	out = append(out, codes[0])
	for _, c := range codes[1:] {
		if c != out[len(out)-1] {
			out = append(out, c)
		}
	}
	return out
}

// stripNonLeadingZeros removes every 0 digit except one occupying the
// very first position, then renders the result as a digit string.
func stripNonLeadingZeros(codes []int) string {
	if len(codes) == 0 {
		return ""
	}
	var b strings.Builder
	for i, c := range codes {
		if c == 0 && i != 0 {
			continue
		}
		b.WriteByte(byte('0' + c))
	}
	return b.String()
}
