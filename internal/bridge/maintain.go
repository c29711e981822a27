package bridge

import "bridges/internal/types"

// RecordInspection stamps every bridge in ids with the inspection date and
// prepends bci to its history. It returns how many bridges were updated.
func RecordInspection(bridges []*types.Bridge, ids []int, date string, bci float64) int {
	wanted := idSet(ids)
	n := 0
	for _, b := range bridges {
		if !wanted[b.ID] {
			continue
		}
		b.LastInspected = date
		b.BCIHistory = append([]float64{bci}, b.BCIHistory...)
		n++
	}
	return n
}

// RecordRehab sets the major or minor rehab year of bridge id from the last
// four characters of date (MM/DD/YYYY). It reports whether the bridge
// exists.
func RecordRehab(bridges []*types.Bridge, id int, date string, major bool) bool {
	b := Get(bridges, id)
	if b == nil {
		return false
	}
	year := RehabYear(date)
	if major {
		b.LastMajorRehab = year
	} else {
		b.LastMinorRehab = year
	}
	return true
}

// RehabYear returns the year part of an MM/DD/YYYY date: its last four
// characters.
func RehabYear(date string) string {
	if len(date) > 4 {
		return date[len(date)-4:]
	}
	return date
}
