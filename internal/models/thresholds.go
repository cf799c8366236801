package models

// Thresholds are the fixed boundaries the evaluator compares readings against.
// Built once at startup and passed by value.
type Thresholds struct {
	TemperatureC   float64 `json:"temperature_c" mapstructure:"temperature_c"`     // emergency when reading > value
	SoundLevel     int     `json:"sound_level" mapstructure:"sound_level"`         // emergency when reading > value
	DistanceCm     float64 `json:"distance_cm" mapstructure:"distance_cm"`         // emergency when reading < value
	AirQuality     int     `json:"air_quality" mapstructure:"air_quality"`         // emergency when reading > value
	LightIntensity int     `json:"light_intensity" mapstructure:"light_intensity"` // lighting relay on when reading < value
}

// DefaultThresholds returns the mine's standard limits.
func DefaultThresholds() Thresholds {
	return Thresholds{
		TemperatureC:   30,
		SoundLevel:     80,
		DistanceCm:     30,
		AirQuality:     200,
		LightIntensity: 100,
	}
}
