package bridge

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"bridges/internal/types"
)

// headerRows is the number of title/header lines at the top of an
// inventory export.
const headerRows = 2

// ReadRows reads a CSV inventory export and returns its data rows. Rows may
// have differing field counts because the BCI run is ragged.
func ReadRows(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read inventory rows: %w", err)
	}
	if len(rows) <= headerRows {
		return [][]string{}, nil
	}
	return rows[headerRows:], nil
}

// ReadFile opens path and returns its data rows.
func ReadFile(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadRows(f)
}

// LoadFile reads and normalizes an inventory export.
func LoadFile(path string) ([]*types.Bridge, error) {
	rows, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Normalize(rows)
}
