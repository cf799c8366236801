package service

import "time"

// LogFilter narrows the event index by time range and type.
type LogFilter struct {
	From time.Time // inclusive; zero means no lower bound
	To   time.Time // inclusive; zero means no upper bound
	Type string    // "", "ACTIVATED", "EMERGENCY", "NOTIFY_FAILED", "SENSOR_ERROR", "SHUTDOWN"
}
