package table

import (
	"encoding/csv"
	"os"

	"github.com/rotisserie/eris"
)

// ReadCSV loads a CSV file into a Table. The first record is the header.
// Variable field counts are tolerated; short rows leave trailing columns null.
func ReadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "table: open csv %s", path)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1 // allow variable fields

	records, err := reader.ReadAll()
	if err != nil {
		return nil, eris.Wrapf(err, "table: read csv %s", path)
	}

	if len(records) == 0 {
		return &Table{Name: displayName(path)}, nil
	}

	return buildTable(displayName(path), records[0], records[1:]), nil
}

// Read loads a tabular file, dispatching on extension: .csv is parsed as
// CSV, everything else as XLSX.
func Read(path string) (*Table, error) {
	if len(path) > 4 && path[len(path)-4:] == ".csv" {
		return ReadCSV(path)
	}
	return ReadXLSX(path, XLSXOptions{})
}
