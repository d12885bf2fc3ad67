// Package matching implements the two-stage matcher: Stage 1 searches
// for exact matches on normalized names (direct and swapped), Stage 2
// runs fuzzy similarity with a phonetic fallback over whatever Stage 1
// left unresolved.
package matching

import (
	"dedupe/internal/matching/fuzzy"
	"dedupe/internal/record"
	"dedupe/internal/rulegate"
	"dedupe/internal/scoring"
)

// Options carries the subset of the run configuration Stage 1/Stage 2
// need. It is copied into every block worker rather than shared, since
// it is tiny and immutable for the duration of a run.
type Options struct {
	FuzzyThreshold      float64
	PhoneticFallbackLow float64
	UsePhonetic         bool
	YearPolicy          rulegate.AmbiguousYearPolicy
}

// ProcessBlock runs Stage 1 then Stage 2 over every unordered pair in
// a single block and returns the matches found, each already carrying
// its confidence score. It never materializes the pair list: both
// stages iterate the same lazy (i, j) nested loop over recs.
func ProcessBlock(recs []record.NormalizedRecord, opts Options) []record.Match {
	n := len(recs)
	matches := make([]record.Match, 0)
	matchedStage1 := make(map[record.PairKey]bool)

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			a, b := orderByID(recs[i], recs[j])
			if a.ID == b.ID {
				continue
			}
			if !rulegate.Gate(a, b, opts.YearPolicy) {
				continue
			}
			if a.GivenName == "" || a.Surname == "" || b.GivenName == "" || b.Surname == "" {
				continue // empty normalized names disqualify the record from Stage 1
			}

			var matchType record.MatchType
			switch {
			case a.GivenName == b.GivenName && a.Surname == b.Surname:
				matchType = record.ExactNormal
			case a.GivenName == b.Surname && a.Surname == b.GivenName:
				matchType = record.ExactSwapped
			default:
				continue
			}

			key := record.NewPairKey(a.ID, b.ID)
			matchedStage1[key] = true
			confidence := scoring.Score(matchType, scoring.AddressRatio(a, b), 0, 0)
			matches = append(matches, record.Match{IDA: a.ID, IDB: b.ID, Type: matchType, Confidence: confidence})
		}
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			a, b := orderByID(recs[i], recs[j])
			if a.ID == b.ID {
				continue
			}
			if matchedStage1[record.NewPairKey(a.ID, b.ID)] {
				continue
			}
			if !rulegate.Gate(a, b, opts.YearPolicy) {
				continue
			}

			scoreNormal, scoreSwapped, bestIsSwapped, best := stage2Scores(a, b)

			switch {
			case best >= opts.FuzzyThreshold:
				matchType := record.FuzzyNormal
				if bestIsSwapped {
					matchType = record.FuzzySwapped
				}
				confidence := scoring.Score(matchType, scoring.AddressRatio(a, b), scoreNormal, scoreSwapped)
				matches = append(matches, record.Match{IDA: a.ID, IDB: b.ID, Type: matchType, Confidence: confidence})

			case opts.UsePhonetic && best >= opts.PhoneticFallbackLow:
				// The 0.60 floor exists so phonetic matching is never
				// invoked on wildly dissimilar strings, which would
				// produce false positives from short phonetic codes.
				matchType, ok := phoneticFallback(a, b)
				if !ok {
					continue
				}
				confidence := scoring.Score(matchType, scoring.AddressRatio(a, b), scoreNormal, scoreSwapped)
				matches = append(matches, record.Match{IDA: a.ID, IDB: b.ID, Type: matchType, Confidence: confidence})
			}
		}
	}

	return matches
}

// orderByID returns (a, b) such that a.ID < b.ID, so every caller
// downstream always sees IDA < IDB without re-deriving it.
func orderByID(x, y record.NormalizedRecord) (record.NormalizedRecord, record.NormalizedRecord) {
	if x.ID < y.ID {
		return x, y
	}
	return y, x
}

func stage2Scores(a, b record.NormalizedRecord) (scoreNormal, scoreSwapped float64, bestIsSwapped bool, best float64) {
	dg := fuzzy.Ratio(a.GivenName, b.GivenName)
	ds := fuzzy.Ratio(a.Surname, b.Surname)
	scoreNormal = (dg + ds) / 2

	swg := fuzzy.Ratio(a.GivenName, b.Surname)
	sws := fuzzy.Ratio(a.Surname, b.GivenName)
	scoreSwapped = (swg + sws) / 2

	best = scoreNormal
	if scoreSwapped > scoreNormal {
		best = scoreSwapped
		bestIsSwapped = true
	}
	return
}

// phoneticFallback decides between the normal and swapped phonetic
// match types. Swap takes precedence only when the normal-order
// phonetic codes disagree and the swapped-order codes agree.
func phoneticFallback(a, b record.NormalizedRecord) (record.MatchType, bool) {
	phoneticNormal := a.GivenPhon == b.GivenPhon && a.SurnamePhon == b.SurnamePhon
	phoneticSwapped := a.GivenPhon == b.SurnamePhon && a.SurnamePhon == b.GivenPhon

	switch {
	case !phoneticNormal && phoneticSwapped:
		return record.PhoneticAssistedSwapped, true
	case phoneticNormal:
		return record.PhoneticAssistedNormal, true
	default:
		return record.MatchUnknown, false
	}
}
