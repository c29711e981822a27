// Package bridge turns raw inventory rows into typed bridge records and
// answers condition and location queries over them.
package bridge

import (
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"bridges/internal/types"
)

// Column positions in a raw inventory row.
const (
	colID = iota
	colName
	colHighway
	colLatitude
	colLongitude
	colYearBuilt
	colLastMajor
	colLastMinor
	colSpanCount
	colSpanDetails
	colLength
	colLastInspected
	colCurrentBCI

	// preambleLen is the number of fixed fields before the BCI columns.
	preambleLen = colCurrentBCI
)

// FormatError reports a field that could not be parsed during
// normalization. Row is the 0-based index of the raw row.
type FormatError struct {
	Row   int
	Field string
	Value string
	Err   error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("row %d: invalid %s %q: %v", e.Row, e.Field, e.Value, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// Normalize converts raw rows into bridge records. IDs are assigned from 1
// in row order, replacing whatever identifier the export carried. Any
// malformed row aborts the whole batch; the error reported is that of the
// first malformed row.
func Normalize(rows [][]string) ([]*types.Bridge, error) {
	bridges := make([]*types.Bridge, len(rows))
	errs := make([]error, len(rows))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, row := range rows {
		i, row := i, row
		g.Go(func() error {
			b, err := NormalizeRow(row, i+1)
			if err != nil {
				var fe *FormatError
				if errors.As(err, &fe) {
					fe.Row = i
				}
				errs[i] = err
				return err
			}
			bridges[i] = b
			return nil
		})
	}
	if g.Wait() == nil {
		return bridges, nil
	}
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return bridges, nil
}

// NormalizeRow converts a single raw row into a record with the given id.
func NormalizeRow(row []string, id int) (*types.Bridge, error) {
	if len(row) < preambleLen {
		return nil, &FormatError{
			Field: "row",
			Value: strings.Join(row, ","),
			Err:   fmt.Errorf("want at least %d fields, got %d", preambleLen, len(row)),
		}
	}

	lat, err := parseFloat("latitude", row[colLatitude])
	if err != nil {
		return nil, err
	}
	lon, err := parseFloat("longitude", row[colLongitude])
	if err != nil {
		return nil, err
	}
	spans, err := parseSpans(row[colSpanDetails])
	if err != nil {
		return nil, err
	}
	length := 0.0
	if strings.TrimSpace(row[colLength]) != "" {
		if length, err = parseFloat("length", row[colLength]); err != nil {
			return nil, err
		}
	}
	bcis, err := parseBCIs(row)
	if err != nil {
		return nil, err
	}

	return &types.Bridge{
		ID:             id,
		Name:           row[colName],
		Highway:        row[colHighway],
		Latitude:       lat,
		Longitude:      lon,
		YearBuilt:      row[colYearBuilt],
		LastMajorRehab: row[colLastMajor],
		LastMinorRehab: row[colLastMinor],
		SpanCount:      len(spans),
		SpanLengths:    spans,
		TotalLength:    length,
		LastInspected:  row[colLastInspected],
		BCIHistory:     bcis,
	}, nil
}

// parseSpans reads the "Total=64  (1)=12;(2)=19;" mini-format. Only
// segments naming a span index contribute a length.
func parseSpans(s string) ([]float64, error) {
	spans := []float64{}
	for _, part := range strings.Split(s, ";") {
		if !strings.Contains(part, "(") {
			continue
		}
		value := part
		if i := strings.LastIndex(part, ")="); i >= 0 {
			value = part[i+2:]
		}
		v, err := parseFloat("span length", value)
		if err != nil {
			return nil, err
		}
		spans = append(spans, v)
	}
	return spans, nil
}

// parseBCIs collects the historical condition run that follows the current
// BCI column. The current value is repeated as the first entry of the run,
// so it is not read separately. Blank padding cells are dropped.
func parseBCIs(row []string) ([]float64, error) {
	bcis := []float64{}
	if len(row) <= colCurrentBCI+1 {
		return bcis, nil
	}
	for _, cell := range row[colCurrentBCI+1:] {
		if strings.TrimSpace(cell) == "" {
			continue
		}
		v, err := parseFloat("bci", cell)
		if err != nil {
			return nil, err
		}
		bcis = append(bcis, v)
	}
	return bcis, nil
}

func parseFloat(field, s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, &FormatError{Field: field, Value: s, Err: err}
	}
	return v, nil
}
