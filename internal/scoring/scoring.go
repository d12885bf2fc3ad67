// Package scoring implements the confidence scorer: it turns a match
// type plus the similarity evidence that produced it into an integer
// confidence in [0, 100], clipped to the interval the match type owns.
package scoring

import (
	"math"

	"dedupe/internal/record"
)

// bounds is the [low, high] interval a match type's confidence must
// land in, regardless of how the underlying similarity score varies.
type bounds struct {
	low, high int
}

var intervals = map[record.MatchType]bounds{
	record.ExactNormal:             {90, 100},
	record.ExactSwapped:            {85, 95},
	record.PhoneticAssistedNormal:  {72, 82},
	record.PhoneticAssistedSwapped: {70, 80},
	record.FuzzyNormal:             {70, 95},
	record.FuzzySwapped:            {65, 95},
}

// AddressRatio is the fraction of {street, house_number, postal_code,
// city} that are equal after normalization, among the fields
// populated on *both* records. It is 0.0 when the two records share no
// populated address field.
func AddressRatio(a, b record.NormalizedRecord) float64 {
	type field struct {
		av, bv     string
		ahas, bhas bool
	}
	fields := []field{
		{a.Street, b.Street, a.HasStreet, b.HasStreet},
		{a.HouseNumber, b.HouseNumber, a.HasHouseNumber, b.HasHouseNumber},
		{a.PostalCode, b.PostalCode, a.HasPostalCode, b.HasPostalCode},
		{a.City, b.City, a.HasCity, b.HasCity},
	}

	var common, equal int
	for _, f := range fields {
		if f.ahas && f.bhas {
			common++
			if f.av == f.bv {
				equal++
			}
		}
	}
	if common == 0 {
		return 0.0
	}
	return float64(equal) / float64(common)
}

// Score computes the confidence for a match of the given type.
// scoreNormal and scoreSwapped are the Stage 2 similarity scores that
// produced the match (0 for the exact types, which don't consult
// them); they are ignored by the formulas that don't need them.
func Score(matchType record.MatchType, addressRatio, scoreNormal, scoreSwapped float64) int {
	var raw float64
	switch matchType {
	case record.ExactNormal:
		raw = 90 + 10*addressRatio
	case record.ExactSwapped:
		raw = 85 + 10*addressRatio
	case record.PhoneticAssistedNormal:
		raw = 72 + 10*addressRatio
	case record.PhoneticAssistedSwapped:
		raw = 70 + 10*addressRatio
	case record.FuzzyNormal:
		raw = 50*scoreNormal + 30*addressRatio
	case record.FuzzySwapped:
		raw = 50*scoreSwapped + 30*addressRatio - 5
	default:
		return 0
	}

	score := int(math.Floor(raw))
	b, ok := intervals[matchType]
	if !ok {
		return score
	}
	if score < b.low {
		score = b.low
	}
	if score > b.high {
		score = b.high
	}
	return score
}
