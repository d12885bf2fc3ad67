// Package rulegate implements the two hard pre-conditions a candidate
// pair must pass before any similarity work: the secondary-name rule
// and the birth-year rule. Either failing rejects the pair.
package rulegate

import (
	"strings"

	"dedupe/internal/record"
)

// AmbiguousYearPolicy controls the birth-year rule's behavior when
// exactly one record in the pair carries year information. The
// business default is to reject such pairs as ambiguous; PassAmbiguous
// is the policy-flag escape hatch for callers that would rather assume
// a match than lose it to missing data.
type AmbiguousYearPolicy int

const (
	RejectAmbiguous AmbiguousYearPolicy = iota
	PassAmbiguous
)

// SecondaryNameRule checks that the pair's secondary names are
// consistent. secondary_name often stores the
// trailing hyphenated component of a compound surname on one side of
// the pair (surname="rohner-stassek", secondary_name="" vs.
// surname="rohner", secondary_name="-stassek"). The asymmetric branch
// accounts for that convention by checking suffix containment against
// the other record's surname rather than requiring equality.
func SecondaryNameRule(a, b record.NormalizedRecord) bool {
	switch {
	case a.SecondaryName == "" && b.SecondaryName == "":
		return true
	case a.SecondaryName != "" && b.SecondaryName != "":
		return a.SecondaryName == b.SecondaryName
	case a.SecondaryName != "":
		return strings.HasSuffix(b.Surname, a.SecondaryName)
	default:
		return strings.HasSuffix(a.Surname, b.SecondaryName)
	}
}

// BirthYearRule checks that the pair's birth years are consistent.
// When both records carry year information it must agree exactly; when
// neither does, the rule passes by default (no conflicting evidence);
// when exactly one does, the pair can be neither confirmed nor safely
// assumed, so the default policy rejects it.
func BirthYearRule(a, b record.NormalizedRecord, policy AmbiguousYearPolicy) bool {
	switch {
	case a.EffectiveYear == nil && b.EffectiveYear == nil:
		return true
	case a.EffectiveYear != nil && b.EffectiveYear != nil:
		return *a.EffectiveYear == *b.EffectiveYear
	default:
		return policy == PassAmbiguous
	}
}

// Gate evaluates the secondary-name rule before the birth-year rule,
// since the secondary-name check is cheaper and short-circuits the
// pair before any year comparison.
func Gate(a, b record.NormalizedRecord, policy AmbiguousYearPolicy) bool {
	if !SecondaryNameRule(a, b) {
		return false
	}
	return BirthYearRule(a, b, policy)
}
