package models

import "time"

// SystemState is the latest monitor state exposed over the API.
type SystemState struct {
	Activated   bool            `json:"activated"`
	Iteration   int64           `json:"iteration"`
	Snapshot    *SensorSnapshot `json:"snapshot,omitempty"`
	Verdict     Verdict         `json:"verdict"`
	DisplayText string          `json:"display_text"`
	Indicators  Indicators      `json:"indicators"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
