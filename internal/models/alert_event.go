package models

import "time"

// Event types written to the event index.
const (
	EventActivated    = "ACTIVATED"
	EventEmergency    = "EMERGENCY"
	EventNotifyFailed = "NOTIFY_FAILED"
	EventSensorError  = "SENSOR_ERROR"
	EventShutdown     = "SHUTDOWN"
)

// AlertEvent is a single indexed log entry.
type AlertEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`        // ACTIVATED | EMERGENCY | NOTIFY_FAILED | SENSOR_ERROR | SHUTDOWN
	Description string    `json:"description"` // human-readable
	Metadata    any       `json:"metadata,omitempty"`
}
