// Package export writes the match-pair schema to CSV or Excel. It
// sits outside the tested core: the pipeline itself only produces
// []record.Match, and this package is one adapter among several that
// could render that into a deliverable.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"dedupe/internal/dataset"
	"dedupe/internal/record"
)

var csvHeaders = []string{
	"match_id", "position", "id", "given_name", "surname", "secondary_name",
	"street", "house_number", "postal_code", "city", "match_type", "confidence",
}

// ToCSV renders every match as two rows (position A, position B)
// against the csvHeaders schema.
func ToCSV(w io.Writer, matches []record.Match, ds *dataset.Dataset) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write(csvHeaders); err != nil {
		return fmt.Errorf("write csv headers: %w", err)
	}

	for _, m := range matches {
		for _, row := range pairRows(m, ds) {
			if err := writer.Write(row); err != nil {
				return fmt.Errorf("write csv row: %w", err)
			}
		}
	}
	return writer.Error()
}

// ToExcel renders the same schema to an .xlsx sheet named "Matches".
func ToExcel(matches []record.Match, ds *dataset.Dataset) (*excelize.File, error) {
	f := excelize.NewFile()
	const sheetName = "Matches"
	if _, err := f.NewSheet(sheetName); err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("delete default sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}
	for col, header := range csvHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	rowIdx := 2
	for _, m := range matches {
		for _, row := range pairRows(m, ds) {
			for col, value := range row {
				cell, _ := excelize.CoordinatesToCellName(col+1, rowIdx)
				f.SetCellValue(sheetName, cell, value)
			}
			rowIdx++
		}
	}

	f.SetActiveSheet(0)
	return f, nil
}

func pairRows(m record.Match, ds *dataset.Dataset) [][]string {
	matchID := fmt.Sprintf("%d_%d", m.IDA, m.IDB)
	return [][]string{
		recordRow(matchID, "A", m.IDA, m, ds),
		recordRow(matchID, "B", m.IDB, m, ds),
	}
}

func recordRow(matchID, position string, id int, m record.Match, ds *dataset.Dataset) []string {
	nr, _ := ds.ByID(id)
	return []string{
		matchID, position, fmt.Sprintf("%d", id),
		nr.GivenName, nr.Surname, nr.SecondaryName,
		nr.Street, nr.HouseNumber, nr.PostalCode, nr.City,
		m.Type.String(), fmt.Sprintf("%d", m.Confidence),
	}
}
