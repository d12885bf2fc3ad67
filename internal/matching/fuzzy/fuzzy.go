// Package fuzzy provides the symmetric, normalized character-level
// similarity the two-stage matcher's Stage 2 runs on, comparable to
// RapidFuzz's QRatio, built on a Damerau-Levenshtein edit distance so
// adjacent-letter transpositions ("Max"/"Amx") cost one edit rather
// than two.
package fuzzy

// Ratio returns a similarity score in [0, 1]: 1 for identical strings,
// 0 for maximally dissimilar ones relative to the longer string's
// length. Two empty strings are considered identical.
func Ratio(a, b string) float64 {
	if a == "" && b == "" {
		return 1.0
	}
	if a == "" || b == "" {
		return 0.0
	}

	ra, rb := []rune(a), []rune(b)
	maxLen := len(ra)
	if len(rb) > maxLen {
		maxLen = len(rb)
	}
	if maxLen == 0 {
		return 1.0
	}

	dist := damerauLevenshtein(ra, rb)
	similarity := 1.0 - float64(dist)/float64(maxLen)
	if similarity < 0 {
		similarity = 0
	}
	return similarity
}

// damerauLevenshtein computes the minimum number of insertions,
// deletions, substitutions and adjacent transpositions needed to turn
// a into b, using the classic unlimited-distance variant with a
// lookup table of each rune's last-seen position.
func damerauLevenshtein(a, b []rune) int {
	lenA, lenB := len(a), len(b)
	if lenA == 0 {
		return lenB
	}
	if lenB == 0 {
		return lenA
	}

	maxDist := lenA + lenB
	matrix := make([][]int, lenA+2)
	for i := range matrix {
		matrix[i] = make([]int, lenB+2)
	}

	matrix[0][0] = maxDist
	for i := 0; i <= lenA; i++ {
		matrix[i+1][0] = maxDist
		matrix[i+1][1] = i
	}
	for j := 0; j <= lenB; j++ {
		matrix[0][j+1] = maxDist
		matrix[1][j+1] = j
	}

	lastSeen := make(map[rune]int)

	for i := 1; i <= lenA; i++ {
		lastMatchCol := 0
		for j := 1; j <= lenB; j++ {
			i1 := lastSeen[b[j-1]]
			j1 := lastMatchCol
			cost := 1

			if a[i-1] == b[j-1] {
				cost = 0
				lastMatchCol = j
			}

			matrix[i+1][j+1] = min4(
				matrix[i+1][j]+1,                      // insertion
				matrix[i][j+1]+1,                       // deletion
				matrix[i][j]+cost,                      // substitution
				matrix[i1][j1]+(i-i1-1)+1+(j-j1-1),     // transposition
			)
		}
		lastSeen[a[i-1]] = i
	}

	return matrix[lenA+1][lenB+1]
}

func min4(a, b, c, d int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	if d < m {
		m = d
	}
	return m
}
