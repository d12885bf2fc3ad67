// Package record defines the data model shared by every pipeline stage:
// the raw input Record, the immutable NormalizedRecord derived from it,
// Block groupings and the Match output.
package record

// Record is a person-address tuple as supplied by the ingestion
// collaborator. Any field may be empty/absent; the normalizer is the
// only stage that interprets absence.
type Record struct {
	ID             int
	GivenName      string
	Surname        string
	SecondaryName  string
	Street         string
	HouseNumber    string
	PostalCode     string
	City           string
	BirthDate      string // raw, possibly containing a 4-digit year
	BirthYear      *int
}

// NormalizedRecord is the immutable, derived form every downstream
// stage reads. It never exposes raw fields once constructed.
type NormalizedRecord struct {
	ID            int
	GivenName     string
	Surname       string
	SecondaryName string
	Street        string
	HouseNumber   string
	PostalCode    string // digits only
	City          string
	EffectiveYear *int
	GivenPhon     string
	SurnamePhon   string
	BlockingKey   string

	// Has* fields are kept only for the confidence scorer's
	// address_ratio computation, which compares normalized values but
	// needs to know which address fields were populated in the source.
	HasStreet      bool
	HasHouseNumber bool
	HasPostalCode  bool
	HasCity        bool
}

// Block is a group of record ids sharing a blocking key. Blocks of
// size < 2 never reach this type; see blocker.Build.
type Block struct {
	Key string
	IDs []int
}

// MatchType is the closed six-value enum a pair is classified into.
// It is a tagged integer, never a bare string, so control flow never
// depends on string comparisons.
type MatchType int

const (
	MatchUnknown MatchType = iota
	ExactNormal
	ExactSwapped
	FuzzyNormal
	FuzzySwapped
	PhoneticAssistedNormal
	PhoneticAssistedSwapped
)

var matchTypeNames = map[MatchType]string{
	ExactNormal:             "exact_normal",
	ExactSwapped:            "exact_swapped",
	FuzzyNormal:             "fuzzy_normal",
	FuzzySwapped:            "fuzzy_swapped",
	PhoneticAssistedNormal:  "phonetic_assisted_normal",
	PhoneticAssistedSwapped: "phonetic_assisted_swapped",
}

// String renders the wire/export name of the match type. Only the
// boundary (export, logging) should ever look at this value.
func (t MatchType) String() string {
	if name, ok := matchTypeNames[t]; ok {
		return name
	}
	return "unknown"
}

// rank orders match types by precedence when the same pair is produced
// more than once: exact_normal > exact_swapped > fuzzy_normal >
// fuzzy_swapped > phonetic_assisted_normal > phonetic_assisted_swapped.
var matchTypeRank = map[MatchType]int{
	ExactNormal:             6,
	ExactSwapped:            5,
	FuzzyNormal:             4,
	FuzzySwapped:            3,
	PhoneticAssistedNormal:  2,
	PhoneticAssistedSwapped: 1,
}

// Outranks reports whether t takes precedence over other when the same
// (id_a, id_b) pair is produced under two different types.
func (t MatchType) Outranks(other MatchType) bool {
	return matchTypeRank[t] > matchTypeRank[other]
}

// Match is a single emitted duplicate-candidate pair. IDA is always
// strictly less than IDB.
type Match struct {
	IDA        int
	IDB        int
	Type       MatchType
	Confidence int
}

// PairKey identifies a match irrespective of which stage produced it.
type PairKey struct {
	A, B int
}

// Key returns the deduplication key for the match sink.
func (m Match) Key() PairKey {
	return PairKey{A: m.IDA, B: m.IDB}
}

// NewPairKey builds an ordered pair key from two ids, panicking is
// never appropriate here: the caller is responsible for ordering, this
// helper just enforces it defensively.
func NewPairKey(a, b int) PairKey {
	if a < b {
		return PairKey{A: a, B: b}
	}
	return PairKey{A: b, B: a}
}
