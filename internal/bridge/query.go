package bridge

import (
	"strconv"
	"strings"

	"bridges/internal/geo"
	"bridges/internal/types"
)

// NotFound is returned by id-valued lookups that have no answer.
const NotFound = -1

// Get returns the bridge with the given id, or nil.
func Get(bridges []*types.Bridge, id int) *types.Bridge {
	for _, b := range bridges {
		if b.ID == id {
			return b
		}
	}
	return nil
}

// AverageCondition returns the mean BCI of a bridge rounded to four
// decimals, or 0 when the bridge is unknown or has never been rated.
func AverageCondition(bridges []*types.Bridge, id int) float64 {
	b := Get(bridges, id)
	if b == nil || len(b.BCIHistory) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range b.BCIHistory {
		sum += v
	}
	return geo.Round(sum/float64(len(b.BCIHistory)), 4)
}

// TotalLengthOnHighway sums the lengths of every bridge on highway.
// Highway names are compared exactly.
func TotalLengthOnHighway(bridges []*types.Bridge, highway string) float64 {
	total := 0.0
	for _, b := range bridges {
		if b.Highway == highway {
			total += b.TotalLength
		}
	}
	return total
}

// DistanceBetween returns the distance in kilometres between two bridges.
func DistanceBetween(a, b *types.Bridge) float64 {
	return geo.Distance(a.Latitude, a.Longitude, b.Latitude, b.Longitude)
}

// Closest returns the id of the bridge nearest to bridge id. Ties go to the
// bridge seen first. It returns NotFound when id is unknown or is the only
// bridge.
func Closest(bridges []*types.Bridge, id int) int {
	self := Get(bridges, id)
	if self == nil {
		return NotFound
	}

	closest := NotFound
	best := 0.0
	for _, b := range bridges {
		if b.ID == id {
			continue
		}
		d := DistanceBetween(self, b)
		if closest == NotFound || d < best {
			closest, best = b.ID, d
		}
	}
	return closest
}

// ConditionBelow returns, in collection order, the ids among ids whose most
// recent BCI is at or below threshold. Bridges without ratings are skipped.
func ConditionBelow(bridges []*types.Bridge, ids []int, threshold float64) []int {
	wanted := idSet(ids)
	result := []int{}
	for _, b := range bridges {
		if !wanted[b.ID] {
			continue
		}
		if bci, ok := b.CurrentBCI(); ok && bci <= threshold {
			result = append(result, b.ID)
		}
	}
	return result
}

// Containing returns the ids of bridges where any field, rendered as text,
// contains keyword. The match ignores case and does not modify the records.
func Containing(bridges []*types.Bridge, keyword string) []int {
	keyword = strings.ToLower(keyword)
	result := []int{}
	for _, b := range bridges {
		for _, field := range fieldText(b) {
			if strings.Contains(strings.ToLower(field), keyword) {
				result = append(result, b.ID)
				break
			}
		}
	}
	return result
}

// InRadius returns the ids of bridges within radiusKm of (lat, lon),
// boundary included.
func InRadius(bridges []*types.Bridge, lat, lon, radiusKm float64) []int {
	result := []int{}
	for _, b := range bridges {
		if geo.Distance(lat, lon, b.Latitude, b.Longitude) <= radiusKm {
			result = append(result, b.ID)
		}
	}
	return result
}

func idSet(ids []int) map[int]bool {
	set := make(map[int]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

// fieldText renders every field of b the way the inventory reports print
// them: whole floats keep a trailing ".0" and lists are bracketed.
func fieldText(b *types.Bridge) []string {
	return []string{
		strconv.Itoa(b.ID),
		b.Name,
		b.Highway,
		formatFloat(b.Latitude),
		formatFloat(b.Longitude),
		b.YearBuilt,
		b.LastMajorRehab,
		b.LastMinorRehab,
		strconv.Itoa(b.SpanCount),
		formatFloats(b.SpanLengths),
		formatFloat(b.TotalLength),
		b.LastInspected,
		formatFloats(b.BCIHistory),
	}
}

func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}

func formatFloats(vs []float64) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = formatFloat(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
