package geo

import (
	"fmt"
	"strings"

	shp "github.com/jonas-p/go-shp"

	"bridges/internal/types"
)

// DBF column layout of an exported bridge layer. Names are capped at ten
// characters by the format.
var bridgeFields = []shp.Field{
	shp.NumberField("ID", 10),
	shp.StringField("NAME", 80),
	shp.StringField("HIGHWAY", 16),
	shp.FloatField("BCI", 8, 1),
	shp.FloatField("LENGTH", 12, 2),
	shp.StringField("INSPECTED", 10),
}

// WriteShapefile writes the bridges as a POINT layer (X = longitude,
// Y = latitude). path names the .shp file; the .shx and .dbf companions are
// written next to it.
func WriteShapefile(path string, bridges []*types.Bridge) error {
	w, err := shp.Create(path, shp.POINT)
	if err != nil {
		return fmt.Errorf("create shapefile %s: %w", path, err)
	}
	defer w.Close()

	if err := w.SetFields(bridgeFields); err != nil {
		return fmt.Errorf("set shapefile fields: %w", err)
	}

	for _, b := range bridges {
		row := int(w.Write(&shp.Point{X: b.Longitude, Y: b.Latitude}))
		bci, _ := b.CurrentBCI()
		values := []interface{}{
			b.ID,
			clip(b.Name, bridgeFields[1].Size),
			clip(b.Highway, bridgeFields[2].Size),
			bci,
			b.TotalLength,
			clip(b.LastInspected, bridgeFields[5].Size),
		}
		for field, v := range values {
			if err := w.WriteAttribute(row, field, v); err != nil {
				return fmt.Errorf("write attribute %d of bridge %d: %w", field, b.ID, err)
			}
		}
	}
	return nil
}

// clip truncates s to the DBF column width; WriteAttribute rejects longer
// values.
func clip(s string, size uint8) string {
	if len(s) > int(size) {
		return s[:size]
	}
	return s
}

// attribute trims the space and NUL padding DBF cells carry.
func attribute(r *shp.Reader, row, field int) string {
	return strings.TrimRight(r.ReadAttribute(row, field), "\x00 ")
}
