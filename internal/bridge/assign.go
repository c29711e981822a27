package bridge

import (
	"bridges/internal/geo"
	"bridges/internal/types"
)

// Tier is an inspector eligibility rule: a bridge qualifies when its
// current BCI is at or below Threshold and it lies within RadiusKm.
type Tier struct {
	Threshold float64
	RadiusKm  float64
}

// Inspection priority tiers, most severe first.
var (
	HighPriority   = Tier{Threshold: 60, RadiusKm: 500}
	MediumPriority = Tier{Threshold: 70, RadiusKm: 250}
	LowPriority    = Tier{Threshold: 100, RadiusKm: 100}

	Tiers = []Tier{HighPriority, MediumPriority, LowPriority}
)

// Admits reports whether the inspector may be sent to b under this tier.
func (t Tier) Admits(in types.Inspector, b *types.Bridge) bool {
	bci, ok := b.CurrentBCI()
	if !ok || bci > t.Threshold {
		return false
	}
	return geo.Distance(in.Latitude, in.Longitude, b.Latitude, b.Longitude) <= t.RadiusKm
}

// Priority is the severity class of a bridge's current condition.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
	PriorityNone   Priority = "none"
)

// Classify returns the most severe tier whose threshold the bridge's
// current BCI meets.
func Classify(b *types.Bridge) Priority {
	bci, ok := b.CurrentBCI()
	switch {
	case !ok:
		return PriorityNone
	case bci <= HighPriority.Threshold:
		return PriorityHigh
	case bci <= MediumPriority.Threshold:
		return PriorityMedium
	case bci <= LowPriority.Threshold:
		return PriorityLow
	default:
		return PriorityNone
	}
}

// AssignInspectors hands out bridges to inspectors, at most max each.
// Inspectors are served in order from one shared pool of unassigned bridges,
// so an earlier inspector wins any bridge both could take. The result holds
// one id list per inspector.
func AssignInspectors(bridges []*types.Bridge, inspectors []types.Inspector, max int) [][]int {
	assigned := make([][]int, len(inspectors))
	for i := range assigned {
		assigned[i] = []int{}
	}
	if max <= 0 {
		return assigned
	}

	pool := make([]*types.Bridge, len(bridges))
	copy(pool, bridges)

	for i, in := range inspectors {
		remaining := pool[:0:0]
		for _, b := range pool {
			if len(assigned[i]) < max && eligible(in, b) {
				assigned[i] = append(assigned[i], b.ID)
				continue
			}
			remaining = append(remaining, b)
		}
		pool = remaining
	}
	return assigned
}

func eligible(in types.Inspector, b *types.Bridge) bool {
	for _, t := range Tiers {
		if t.Admits(in, b) {
			return true
		}
	}
	return false
}
