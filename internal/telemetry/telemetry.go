// Package telemetry streams per-iteration frames (snapshot + verdict) to a broker.
// It is data plumbing only; the e-mail remains the sole alert.
package telemetry

import (
	"context"
	"encoding/json"
	"time"

	"mine_evacuation/internal/models"
)

// Frame is one monitor iteration as published on the wire.
type Frame struct {
	DeviceID  string                `json:"device_id"`
	Iteration int64                 `json:"iteration"`
	Timestamp time.Time             `json:"timestamp"`
	Snapshot  models.SensorSnapshot `json:"snapshot"`
	Verdict   models.Verdict        `json:"verdict"`
}

// Publisher delivers frames. Close releases the connection.
type Publisher interface {
	Publish(ctx context.Context, f Frame) error
	Close() error
}

func encode(f Frame) ([]byte, error) {
	return json.Marshal(f)
}

// Nop discards frames.
type Nop struct{}

func (Nop) Publish(context.Context, Frame) error { return nil }
func (Nop) Close() error                         { return nil }
