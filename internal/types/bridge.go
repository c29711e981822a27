package types

// Bridge holds one normalized record from the bridge inventory export.
// Year fields stay as text because the source leaves them blank for
// bridges that were never rehabilitated.
type Bridge struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Highway string `json:"highway"`

	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`

	YearBuilt      string `json:"year_built"`
	LastMajorRehab string `json:"last_major_rehab"`
	LastMinorRehab string `json:"last_minor_rehab"`

	SpanCount   int       `json:"span_count"`
	SpanLengths []float64 `json:"span_lengths"`
	TotalLength float64   `json:"total_length"`

	LastInspected string `json:"last_inspected"`
	// BCIHistory is ordered most recent first.
	BCIHistory []float64 `json:"bci_history"`
}

// CurrentBCI returns the most recent condition index, if any.
func (b *Bridge) CurrentBCI() (float64, bool) {
	if len(b.BCIHistory) == 0 {
		return 0, false
	}
	return b.BCIHistory[0], true
}

// Inspector is a maintenance inspector's home location.
type Inspector struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
