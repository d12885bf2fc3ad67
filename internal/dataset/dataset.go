// Package dataset turns raw records into the normalized form every
// pipeline stage after it reads: it applies text/postal/house-number
// normalization, computes phonetic codes and the effective birth
// year, and assigns each record its blocking key.
package dataset

import (
	"github.com/google/uuid"

	"dedupe/internal/blocker"
	"dedupe/internal/normalize"
	"dedupe/internal/phonetic"
	"dedupe/internal/record"
)

// Dataset is the normalized view of a batch of records, plus an
// id-indexed lookup for the scorer and export stages. BatchID
// identifies one call to Build for logging and export correlation;
// it carries no semantic weight for the matcher itself.
type Dataset struct {
	BatchID string
	Records []record.NormalizedRecord
	byID    map[int]record.NormalizedRecord
}

// Build normalizes every raw record independently. A malformed field
// on one record never affects any other record: normalize.Text and
// its siblings already degrade per-field rather than erroring.
func Build(raw []record.Record) *Dataset {
	out := make([]record.NormalizedRecord, 0, len(raw))
	for _, r := range raw {
		out = append(out, normalizeOne(r))
	}
	ds := &Dataset{BatchID: uuid.New().String(), Records: out, byID: make(map[int]record.NormalizedRecord, len(out))}
	for _, nr := range out {
		ds.byID[nr.ID] = nr
	}
	return ds
}

// ByID looks up a normalized record by its id. ok is false if no
// record with that id was in the batch Build was called with.
func (d *Dataset) ByID(id int) (record.NormalizedRecord, bool) {
	nr, ok := d.byID[id]
	return nr, ok
}

func normalizeOne(r record.Record) record.NormalizedRecord {
	street := normalize.Text(r.Street)
	houseNumber := normalize.HouseNumber(r.HouseNumber)
	postalCode := normalize.PostalCode(r.PostalCode)
	city := normalize.Text(r.City)

	given := normalize.Text(r.GivenName)
	surname := normalize.Text(r.Surname)

	year, hasYear := normalize.EffectiveYear(r.BirthDate, r.BirthYear)
	var effectiveYear *int
	if hasYear {
		y := year
		effectiveYear = &y
	}

	nr := record.NormalizedRecord{
		ID:             r.ID,
		GivenName:      given,
		Surname:        surname,
		SecondaryName:  normalize.Text(r.SecondaryName),
		Street:         street,
		HouseNumber:    houseNumber,
		PostalCode:     postalCode,
		City:           city,
		EffectiveYear:  effectiveYear,
		GivenPhon:      phonetic.Encode(given),
		SurnamePhon:    phonetic.Encode(surname),
		HasStreet:      street != "",
		HasHouseNumber: houseNumber != "",
		HasPostalCode:  postalCode != "",
		HasCity:        city != "",
	}
	nr.BlockingKey = blocker.Key(nr)
	return nr
}
