// Package excel reads spreadsheet and CSV files into the row shape the
// analysis engine consumes.
package excel

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"tablero/domain/tabular"
)

// DataReader reads an .xlsx or .csv file into a rectangular row set.
type DataReader struct {
	filePath string
	fileType string
}

// NewDataReader creates a reader for the given file, picking the format
// from the extension.
func NewDataReader(filePath string) *DataReader {
	fileType := "xlsx"
	if strings.ToLower(filepath.Ext(filePath)) == ".csv" {
		fileType = "csv"
	}
	return &DataReader{filePath: filePath, fileType: fileType}
}

// ReadRows loads the file. The first record is the header; every following
// record becomes one Row keyed by header name. Short records leave their
// trailing columns missing.
func (r *DataReader) ReadRows() ([]tabular.Row, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("data file not found: %s", r.filePath)
	}
	switch r.fileType {
	case "csv":
		return r.readCSV()
	default:
		return r.readExcel()
	}
}

func (r *DataReader) readExcel() ([]tabular.Row, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("opening spreadsheet: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("spreadsheet %s has no sheets", r.filePath)
	}
	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading sheet %s: %w", sheets[0], err)
	}
	return recordsToRows(records), nil
}

func (r *DataReader) readCSV() ([]tabular.Row, error) {
	f, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("opening csv: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}
	return recordsToRows(records), nil
}

func recordsToRows(records [][]string) []tabular.Row {
	if len(records) == 0 {
		return nil
	}
	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = strings.TrimSpace(h)
	}

	rows := make([]tabular.Row, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(tabular.Row, len(headers))
		for i, header := range headers {
			if header == "" {
				continue
			}
			if i < len(record) {
				row[header] = record[i]
			}
		}
		rows = append(rows, row)
	}
	return rows
}
