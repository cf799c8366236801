package service

import (
	"fmt"
	"strconv"
	"strings"

	"mine_evacuation/internal/models"
)

// Evaluate classifies a snapshot against the thresholds. It is pure and never fails.
// Reasons are collected in priority order: temperature, sound, distance, air quality.
func Evaluate(s models.SensorSnapshot, t models.Thresholds) models.Verdict {
	var reasons []models.Reason
	if s.TemperatureC > t.TemperatureC {
		reasons = append(reasons, models.ReasonTemperature)
	}
	if s.SoundLevel > t.SoundLevel {
		reasons = append(reasons, models.ReasonSound)
	}
	if s.DistanceCm < t.DistanceCm {
		reasons = append(reasons, models.ReasonDistance)
	}
	if s.AirQuality > t.AirQuality {
		reasons = append(reasons, models.ReasonAirQuality)
	}
	return models.Verdict{Triggered: len(reasons) > 0, Reasons: reasons}
}

// LightingRequired reports whether ambient light is below the automatic-lighting cut-off.
func LightingRequired(s models.SensorSnapshot, t models.Thresholds) bool {
	return s.LightIntensity < t.LightIntensity
}

func onOff(b bool) string {
	if b {
		return "ON"
	}
	return "OFF"
}

// FormatStatus renders the LCD status block for one snapshot.
func FormatStatus(s models.SensorSnapshot, kitsLocation string, lightingOn bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Temp: %.2fC  Humidity: %.2f%%\n", s.TemperatureC, s.HumidityPct)
	fmt.Fprintf(&b, "Light: %d  Sound: %d\n", s.LightIntensity, s.SoundLevel)
	fmt.Fprintf(&b, "Distance: %scm  Angle: %d°\n", strconv.FormatFloat(s.DistanceCm, 'f', -1, 64), s.RotationAngle)
	fmt.Fprintf(&b, "Air Quality: %d\n", s.AirQuality)
	fmt.Fprintf(&b, "Emergency Kits: %s\n", kitsLocation)
	fmt.Fprintf(&b, "Automatic Lighting: %s\n", onOff(lightingOn))
	return b.String()
}
