package rulegate

import (
	"testing"

	"dedupe/internal/record"
)

func yr(y int) *int { return &y }

func TestSecondaryNameRule_BothEmpty(t *testing.T) {
	a := record.NormalizedRecord{}
	b := record.NormalizedRecord{}
	if !SecondaryNameRule(a, b) {
		t.Error("want pass when both secondary names are empty")
	}
}

func TestSecondaryNameRule_BothEqual(t *testing.T) {
	a := record.NormalizedRecord{SecondaryName: "maria"}
	b := record.NormalizedRecord{SecondaryName: "maria"}
	if !SecondaryNameRule(a, b) {
		t.Error("want pass when both secondary names are equal")
	}
}

func TestSecondaryNameRule_BothNonEmptyDiffer(t *testing.T) {
	a := record.NormalizedRecord{SecondaryName: "maria"}
	b := record.NormalizedRecord{SecondaryName: "anna"}
	if SecondaryNameRule(a, b) {
		t.Error("want reject when both secondary names differ")
	}
}

func TestSecondaryNameRule_CompoundSurnameSuffixConvention(t *testing.T) {
	a := record.NormalizedRecord{Surname: "rohner-stassek", SecondaryName: ""}
	b := record.NormalizedRecord{Surname: "rohner", SecondaryName: "-stassek"}
	if !SecondaryNameRule(a, b) {
		t.Error("want pass via compound-surname suffix convention")
	}
}

func TestSecondaryNameRule_AsymmetricNonSuffix(t *testing.T) {
	a := record.NormalizedRecord{Surname: "mueller", SecondaryName: ""}
	b := record.NormalizedRecord{Surname: "huber", SecondaryName: "schmidt"}
	if SecondaryNameRule(a, b) {
		t.Error("want reject when secondary name is not a suffix of the other surname")
	}
}

func TestBirthYearRule_BothAbsent(t *testing.T) {
	a := record.NormalizedRecord{}
	b := record.NormalizedRecord{}
	if !BirthYearRule(a, b, RejectAmbiguous) {
		t.Error("want pass when neither record has year information")
	}
}

func TestBirthYearRule_BothPresentEqual(t *testing.T) {
	a := record.NormalizedRecord{EffectiveYear: yr(1980)}
	b := record.NormalizedRecord{EffectiveYear: yr(1980)}
	if !BirthYearRule(a, b, RejectAmbiguous) {
		t.Error("want pass when years are equal")
	}
}

func TestBirthYearRule_BothPresentDiffer(t *testing.T) {
	a := record.NormalizedRecord{EffectiveYear: yr(1980)}
	b := record.NormalizedRecord{EffectiveYear: yr(1985)}
	if BirthYearRule(a, b, RejectAmbiguous) {
		t.Error("want reject when years differ")
	}
}

func TestBirthYearRule_OnePresentDefaultRejects(t *testing.T) {
	a := record.NormalizedRecord{EffectiveYear: yr(1980)}
	b := record.NormalizedRecord{}
	if BirthYearRule(a, b, RejectAmbiguous) {
		t.Error("want reject by default when exactly one side has year information")
	}
}

func TestBirthYearRule_OnePresentPolicyOverridePasses(t *testing.T) {
	a := record.NormalizedRecord{EffectiveYear: yr(1980)}
	b := record.NormalizedRecord{}
	if !BirthYearRule(a, b, PassAmbiguous) {
		t.Error("want pass when PassAmbiguous policy is set")
	}
}

func TestGate_SecondaryNameRuleEvaluatedFirst(t *testing.T) {
	// The secondary-name rule fails (names differ) even though years
	// also differ. Gate must return false regardless of the birth-year
	// rule's outcome.
	a := record.NormalizedRecord{SecondaryName: "maria", EffectiveYear: yr(1980)}
	b := record.NormalizedRecord{SecondaryName: "anna", EffectiveYear: yr(1985)}
	if Gate(a, b, RejectAmbiguous) {
		t.Error("want reject when the secondary-name rule fails")
	}
}

func TestGate_BothRulesPass(t *testing.T) {
	a := record.NormalizedRecord{EffectiveYear: yr(1980)}
	b := record.NormalizedRecord{EffectiveYear: yr(1980)}
	if !Gate(a, b, RejectAmbiguous) {
		t.Error("want pass when both rules pass")
	}
}
