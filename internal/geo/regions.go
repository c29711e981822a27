package geo

import (
	"fmt"
	"math"

	shp "github.com/jonas-p/go-shp"
)

// Region is a polygon (possibly multi-part) from a region layer together
// with its DBF attribute values.
type Region struct {
	Parts  [][][2]float64    // each part is a closed ring of [lat, lon] points
	Attrs  map[string]string // keyed by DBF field name
	MinLat float64
	MinLon float64
	MaxLat float64
	MaxLon float64
}

// LoadRegions reads a polygon shapefile in WGS-84 degrees. Non-polygon
// shapes are skipped.
func LoadRegions(path string) ([]Region, error) {
	r, err := shp.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open region layer %s: %w", path, err)
	}
	defer r.Close()

	fields := r.Fields()

	var regions []Region
	for r.Next() {
		idx, shape := r.Shape()
		poly, ok := shape.(*shp.Polygon)
		if !ok {
			continue
		}

		numParts := len(poly.Parts)
		parts := make([][][2]float64, numParts)

		minLat, minLon := math.MaxFloat64, math.MaxFloat64
		maxLat, maxLon := -math.MaxFloat64, -math.MaxFloat64

		for partIdx := 0; partIdx < numParts; partIdx++ {
			start := poly.Parts[partIdx]
			end := int32(len(poly.Points))
			if partIdx+1 < numParts {
				end = poly.Parts[partIdx+1]
			}
			ring := make([][2]float64, 0, int(end-start))
			for i := start; i < end; i++ {
				pt := poly.Points[i]
				ring = append(ring, [2]float64{pt.Y, pt.X})
				minLat = math.Min(minLat, pt.Y)
				maxLat = math.Max(maxLat, pt.Y)
				minLon = math.Min(minLon, pt.X)
				maxLon = math.Max(maxLon, pt.X)
			}
			parts[partIdx] = ring
		}

		attrs := make(map[string]string, len(fields))
		for i, f := range fields {
			attrs[f.String()] = attribute(r, idx, i)
		}

		regions = append(regions, Region{
			Parts:  parts,
			Attrs:  attrs,
			MinLat: minLat,
			MinLon: minLon,
			MaxLat: maxLat,
			MaxLon: maxLon,
		})
	}
	return regions, nil
}

// Contains reports whether the point lies inside any ring of the region.
func (r Region) Contains(lat, lon float64) bool {
	if lat < r.MinLat || lat > r.MaxLat || lon < r.MinLon || lon > r.MaxLon {
		return false
	}
	for _, ring := range r.Parts {
		if pointInPolygon(lat, lon, ring) {
			return true
		}
	}
	return false
}

// FindRegion returns the first region containing the point.
func FindRegion(regions []Region, lat, lon float64) (Region, bool) {
	for _, r := range regions {
		if r.Contains(lat, lon) {
			return r, true
		}
	}
	return Region{}, false
}

// pointInPolygon is the ray-casting test. Rings from a shapefile are
// already closed.
func pointInPolygon(lat, lon float64, ring [][2]float64) bool {
	inside := false
	j := len(ring) - 1
	for i := 0; i < len(ring); i++ {
		yi, xi := ring[i][0], ring[i][1]
		yj, xj := ring[j][0], ring[j][1]
		if ((yi > lat) != (yj > lat)) && (lon < (xj-xi)*(lat-yi)/(yj-yi)+xi) {
			inside = !inside
		}
		j = i
	}
	return inside
}
