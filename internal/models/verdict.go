package models

// Reason identifies one violated emergency condition.
type Reason string

const (
	ReasonTemperature Reason = "temperature"
	ReasonSound       Reason = "sound"
	ReasonDistance    Reason = "distance"
	ReasonAirQuality  Reason = "air_quality"
)

// ReasonPriority is the fixed display order, highest first.
var ReasonPriority = []Reason{ReasonTemperature, ReasonSound, ReasonDistance, ReasonAirQuality}

// Message is the LCD text shown for the reason.
func (r Reason) Message() string {
	switch r {
	case ReasonTemperature:
		return "High Temperature Detected"
	case ReasonSound:
		return "Loud Noise Detected"
	case ReasonDistance:
		return "Obstacle Detected"
	case ReasonAirQuality:
		return "Low Air Quality"
	default:
		return ""
	}
}

// Verdict is the evaluator's classification of a snapshot.
// Triggered is true iff Reasons is non-empty; Reasons follow ReasonPriority.
type Verdict struct {
	Triggered bool     `json:"triggered"`
	Reasons   []Reason `json:"reasons,omitempty"`
}

// Primary returns the highest-priority reason, or "" when nothing is violated.
func (v Verdict) Primary() Reason {
	if len(v.Reasons) == 0 {
		return ""
	}
	return v.Reasons[0]
}

// Display returns the message shown on the LCD for this verdict.
func (v Verdict) Display() string {
	return v.Primary().Message()
}
