// Package adapter is the reference ingestion shim: it turns a CSV or
// XLSX file into []record.Record by header name, tolerating column
// order differences. It sits outside the tested core the way the
// export adapter does: the pipeline itself only ever consumes
// []record.Record, never a file.
package adapter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"dedupe/internal/record"
)

var columnAliases = map[string]string{
	"id": "id", "given_name": "given_name", "first_name": "given_name",
	"surname": "surname", "last_name": "surname", "family_name": "surname",
	"secondary_name": "secondary_name", "second_name": "secondary_name",
	"street": "street", "house_number": "house_number", "house_no": "house_number",
	"postal_code": "postal_code", "zip": "postal_code", "plz": "postal_code",
	"city": "city", "birth_date": "birth_date", "birthdate": "birth_date",
	"birth_year": "birth_year",
}

// FromCSV reads every row of r as a record.Record, resolving column
// positions from the header row rather than assuming a fixed layout.
func FromCSV(r io.Reader) ([]record.Record, error) {
	reader := csv.NewReader(r)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	cols := resolveColumns(rows[0])
	return rowsToRecords(rows[1:], cols), nil
}

// FromXLSX reads the first sheet of an XLSX workbook the same way.
func FromXLSX(r io.Reader) ([]record.Record, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("no sheets found")
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	cols := resolveColumns(rows[0])
	return rowsToRecords(rows[1:], cols), nil
}

// columns maps a logical field name to its column index in a row, or
// -1 if the input never carried that field.
type columns map[string]int

func resolveColumns(header []string) columns {
	cols := columns{
		"id": -1, "given_name": -1, "surname": -1, "secondary_name": -1,
		"street": -1, "house_number": -1, "postal_code": -1, "city": -1,
		"birth_date": -1, "birth_year": -1,
	}
	for i, raw := range header {
		key := strings.ToLower(strings.TrimSpace(raw))
		if canonical, ok := columnAliases[key]; ok {
			cols[canonical] = i
		}
	}
	return cols
}

func rowsToRecords(rows [][]string, cols columns) []record.Record {
	out := make([]record.Record, 0, len(rows))
	for i, row := range rows {
		out = append(out, rowToRecord(i, row, cols))
	}
	return out
}

// rowToRecord degrades a malformed or missing cell to the field's
// zero value (for the id, to the 1-based row position) rather than
// failing the whole row: ingestion errors never abort a batch over one
// bad record.
func rowToRecord(rowIdx int, row []string, cols columns) record.Record {
	r := record.Record{ID: rowIdx + 1}
	if idx := cols["id"]; idx >= 0 && idx < len(row) {
		if id, err := strconv.Atoi(strings.TrimSpace(row[idx])); err == nil {
			r.ID = id
		}
	}
	r.GivenName = cellAt(row, cols["given_name"])
	r.Surname = cellAt(row, cols["surname"])
	r.SecondaryName = cellAt(row, cols["secondary_name"])
	r.Street = cellAt(row, cols["street"])
	r.HouseNumber = cellAt(row, cols["house_number"])
	r.PostalCode = cellAt(row, cols["postal_code"])
	r.City = cellAt(row, cols["city"])
	r.BirthDate = cellAt(row, cols["birth_date"])

	if yearStr := cellAt(row, cols["birth_year"]); yearStr != "" {
		if year, err := strconv.Atoi(strings.TrimSpace(yearStr)); err == nil {
			r.BirthYear = &year
		}
	}
	return r
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
