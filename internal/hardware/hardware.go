// Package hardware abstracts the mine panel's sensors and actuators behind small
// capability interfaces so the monitor loop can run against simulated or scripted devices.
package hardware

import (
	"context"

	"mine_evacuation/internal/models"
)

// SensorReader captures one full snapshot of every sensor on the panel.
type SensorReader interface {
	ReadSnapshot(ctx context.Context) (models.SensorSnapshot, error)
}

// IndicatorController drives LEDs, the buzzer and the lighting relay.
type IndicatorController interface {
	SetIndicators(ctx context.Context, ind models.Indicators) error
}

// Display is the panel's RGB-backlit LCD.
type Display interface {
	SetText(ctx context.Context, text string, color models.RGB) error
	SetBacklight(ctx context.Context, color models.RGB) error
}

// Button is the activation push button.
type Button interface {
	// WaitPressed blocks until the button is pressed or ctx is done.
	WaitPressed(ctx context.Context) error
}

// Board is the full panel.
type Board interface {
	SensorReader
	IndicatorController
	Display
	Button
}
