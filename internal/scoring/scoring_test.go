package scoring

import (
	"testing"

	"dedupe/internal/record"
)

func TestAddressRatio_NoCommonFields(t *testing.T) {
	a := record.NormalizedRecord{}
	b := record.NormalizedRecord{}
	if got := AddressRatio(a, b); got != 0.0 {
		t.Errorf("AddressRatio = %v, want 0.0", got)
	}
}

func TestAddressRatio_AllMatch(t *testing.T) {
	a := record.NormalizedRecord{
		Street: "hauptstrasse", HasStreet: true,
		PostalCode: "8000", HasPostalCode: true,
	}
	b := a
	if got := AddressRatio(a, b); got != 1.0 {
		t.Errorf("AddressRatio = %v, want 1.0", got)
	}
}

func TestAddressRatio_PartialMatch(t *testing.T) {
	a := record.NormalizedRecord{
		Street: "hauptstrasse", HasStreet: true,
		PostalCode: "8000", HasPostalCode: true,
	}
	b := record.NormalizedRecord{
		Street: "bahnhofstrasse", HasStreet: true,
		PostalCode: "8000", HasPostalCode: true,
	}
	if got, want := AddressRatio(a, b), 0.5; got != want {
		t.Errorf("AddressRatio = %v, want %v", got, want)
	}
}

func TestScore_ExactNormal_Bounds(t *testing.T) {
	if got := Score(record.ExactNormal, 1.0, 0, 0); got != 100 {
		t.Errorf("Score(exact_normal, ratio=1.0) = %d, want 100", got)
	}
	if got := Score(record.ExactNormal, 0.0, 0, 0); got != 90 {
		t.Errorf("Score(exact_normal, ratio=0.0) = %d, want 90", got)
	}
}

func TestScore_ExactSwapped_Bounds(t *testing.T) {
	if got := Score(record.ExactSwapped, 1.0, 0, 0); got != 95 {
		t.Errorf("Score(exact_swapped, ratio=1.0) = %d, want 95", got)
	}
	if got := Score(record.ExactSwapped, 0.0, 0, 0); got != 85 {
		t.Errorf("Score(exact_swapped, ratio=0.0) = %d, want 85", got)
	}
}

func TestScore_AllTypesWithinDeclaredInterval(t *testing.T) {
	types := []record.MatchType{
		record.ExactNormal, record.ExactSwapped,
		record.PhoneticAssistedNormal, record.PhoneticAssistedSwapped,
		record.FuzzyNormal, record.FuzzySwapped,
	}
	want := map[record.MatchType][2]int{
		record.ExactNormal:             {90, 100},
		record.ExactSwapped:            {85, 95},
		record.PhoneticAssistedNormal:  {72, 82},
		record.PhoneticAssistedSwapped: {70, 80},
		record.FuzzyNormal:             {70, 95},
		record.FuzzySwapped:            {65, 95},
	}
	for _, ratio := range []float64{0.0, 0.3, 0.5, 0.7, 1.0} {
		for _, sim := range []float64{0.0, 0.5, 0.7, 0.85, 1.0} {
			for _, mt := range types {
				got := Score(mt, ratio, sim, sim)
				lo, hi := want[mt][0], want[mt][1]
				if got < lo || got > hi {
					t.Errorf("Score(%v, ratio=%v, sim=%v) = %d, want in [%d,%d]", mt, ratio, sim, got, lo, hi)
				}
			}
		}
	}
}

func TestScore_FuzzyNeverExceedsExact(t *testing.T) {
	fuzzyNormal := Score(record.FuzzyNormal, 1.0, 1.0, 1.0)
	fuzzySwapped := Score(record.FuzzySwapped, 1.0, 1.0, 1.0)
	if fuzzyNormal > 95 || fuzzySwapped > 95 {
		t.Errorf("fuzzy confidence must never exceed 95: normal=%d swapped=%d", fuzzyNormal, fuzzySwapped)
	}
}
