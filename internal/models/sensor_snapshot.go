package models

import "time"

// SensorSnapshot is one full read of the sensor set, captured once per loop iteration.
type SensorSnapshot struct {
	TemperatureC   float64   `json:"temperature_c"`   // °C
	HumidityPct    float64   `json:"humidity_pct"`    // %
	LightIntensity int       `json:"light_intensity"` // raw, unitless
	SoundLevel     int       `json:"sound_level"`     // raw, unitless
	DistanceCm     float64   `json:"distance_cm"`     // cm
	RotationAngle  int       `json:"rotation_angle"`  // degrees
	AirQuality     int       `json:"air_quality"`     // raw, unitless
	CapturedAt     time.Time `json:"captured_at"`
}
