package service

import (
	"reflect"
	"strings"
	"testing"

	"mine_evacuation/internal/models"
)

func nominal() models.SensorSnapshot {
	return models.SensorSnapshot{
		TemperatureC:   20,
		HumidityPct:    45,
		LightIntensity: 300,
		SoundLevel:     10,
		DistanceCm:     100,
		RotationAngle:  90,
		AirQuality:     50,
	}
}

func TestEvaluate(t *testing.T) {
	t.Parallel()

	th := models.DefaultThresholds()

	cases := []struct {
		name    string
		mutate  func(s *models.SensorSnapshot)
		want    []models.Reason
		display string
	}{
		{name: "all nominal", mutate: func(s *models.SensorSnapshot) {}},
		{
			name:    "high temperature",
			mutate:  func(s *models.SensorSnapshot) { s.TemperatureC = 35; s.SoundLevel = 50; s.DistanceCm = 50 },
			want:    []models.Reason{models.ReasonTemperature},
			display: "High Temperature Detected",
		},
		{
			name:    "loud noise",
			mutate:  func(s *models.SensorSnapshot) { s.SoundLevel = 90; s.DistanceCm = 50 },
			want:    []models.Reason{models.ReasonSound},
			display: "Loud Noise Detected",
		},
		{
			name:    "obstacle",
			mutate:  func(s *models.SensorSnapshot) { s.DistanceCm = 12.5 },
			want:    []models.Reason{models.ReasonDistance},
			display: "Obstacle Detected",
		},
		{
			name:    "air quality",
			mutate:  func(s *models.SensorSnapshot) { s.AirQuality = 201 },
			want:    []models.Reason{models.ReasonAirQuality},
			display: "Low Air Quality",
		},
		{
			name:   "temperature exactly at threshold",
			mutate: func(s *models.SensorSnapshot) { s.TemperatureC = 30 },
		},
		{
			name:   "distance exactly at threshold",
			mutate: func(s *models.SensorSnapshot) { s.DistanceCm = 30 },
		},
		{
			name:   "sound and air quality exactly at threshold",
			mutate: func(s *models.SensorSnapshot) { s.SoundLevel = 80; s.AirQuality = 200 },
		},
		{
			name: "sound outranks distance and air quality",
			mutate: func(s *models.SensorSnapshot) {
				s.SoundLevel = 95
				s.DistanceCm = 5
				s.AirQuality = 300
			},
			want:    []models.Reason{models.ReasonSound, models.ReasonDistance, models.ReasonAirQuality},
			display: "Loud Noise Detected",
		},
		{
			name: "every condition violated",
			mutate: func(s *models.SensorSnapshot) {
				s.TemperatureC = 31
				s.SoundLevel = 81
				s.DistanceCm = 29
				s.AirQuality = 201
			},
			want: []models.Reason{
				models.ReasonTemperature, models.ReasonSound, models.ReasonDistance, models.ReasonAirQuality,
			},
			display: "High Temperature Detected",
		},
		{
			name:    "distance outranks air quality",
			mutate:  func(s *models.SensorSnapshot) { s.DistanceCm = 0; s.AirQuality = 999 },
			want:    []models.Reason{models.ReasonDistance, models.ReasonAirQuality},
			display: "Obstacle Detected",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			s := nominal()
			tc.mutate(&s)

			v := Evaluate(s, th)
			if v.Triggered != (len(tc.want) > 0) {
				t.Fatalf("Triggered = %v; want %v", v.Triggered, len(tc.want) > 0)
			}
			if v.Triggered != (len(v.Reasons) > 0) {
				t.Fatalf("Triggered/Reasons inconsistent: %+v", v)
			}
			if !reflect.DeepEqual(v.Reasons, tc.want) {
				t.Fatalf("Reasons = %v; want %v", v.Reasons, tc.want)
			}
			if got := v.Display(); got != tc.display {
				t.Fatalf("Display() = %q; want %q", got, tc.display)
			}
		})
	}
}

func TestEvaluate_ReasonsFollowPriority(t *testing.T) {
	t.Parallel()

	th := models.DefaultThresholds()
	// every combination of the four conditions
	for mask := 0; mask < 16; mask++ {
		s := nominal()
		if mask&1 != 0 {
			s.TemperatureC = 40
		}
		if mask&2 != 0 {
			s.SoundLevel = 100
		}
		if mask&4 != 0 {
			s.DistanceCm = 10
		}
		if mask&8 != 0 {
			s.AirQuality = 250
		}
		v := Evaluate(s, th)
		if v.Triggered != (mask != 0) {
			t.Fatalf("mask %04b: Triggered = %v", mask, v.Triggered)
		}
		idx := 0
		for bit, r := range models.ReasonPriority {
			if mask&(1<<bit) == 0 {
				continue
			}
			if idx >= len(v.Reasons) || v.Reasons[idx] != r {
				t.Fatalf("mask %04b: reasons %v out of priority order", mask, v.Reasons)
			}
			idx++
		}
		if idx != len(v.Reasons) {
			t.Fatalf("mask %04b: unexpected extra reasons %v", mask, v.Reasons)
		}
	}
}

func TestLightingRequired(t *testing.T) {
	t.Parallel()

	th := models.DefaultThresholds()
	cases := map[int]bool{0: true, 99: true, 100: false, 500: false}
	for light, want := range cases {
		s := nominal()
		s.LightIntensity = light
		if got := LightingRequired(s, th); got != want {
			t.Errorf("light %d: got %v, want %v", light, got, want)
		}
	}
}

func TestFormatStatus(t *testing.T) {
	t.Parallel()

	s := models.SensorSnapshot{
		TemperatureC:   21.5,
		HumidityPct:    40,
		LightIntensity: 300,
		SoundLevel:     10,
		DistanceCm:     100,
		RotationAngle:  45,
		AirQuality:     50,
	}
	want := "Temp: 21.50C  Humidity: 40.00%\n" +
		"Light: 300  Sound: 10\n" +
		"Distance: 100cm  Angle: 45°\n" +
		"Air Quality: 50\n" +
		"Emergency Kits: Near Exit B\n" +
		"Automatic Lighting: OFF\n"
	if got := FormatStatus(s, "Near Exit B", false); got != want {
		t.Fatalf("FormatStatus:\n got %q\nwant %q", got, want)
	}

	s.DistanceCm = 27.25
	got := FormatStatus(s, "Shaft 2", true)
	for _, line := range []string{"Distance: 27.25cm", "Emergency Kits: Shaft 2", "Automatic Lighting: ON"} {
		if !strings.Contains(got, line) {
			t.Errorf("missing %q in %q", line, got)
		}
	}
}
