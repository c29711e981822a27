package types

import "time"

// Inspection is one entry of the inspection log kept by the store.
type Inspection struct {
	ID         string    `json:"id"`
	BridgeID   int       `json:"bridge_id"`
	Date       string    `json:"date"`
	BCI        float64   `json:"bci"`
	RecordedAt time.Time `json:"recorded_at"`
}
