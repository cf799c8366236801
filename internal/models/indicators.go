package models

// RGB is an LCD backlight colour.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

var (
	ColorWhite = RGB{R: 255, G: 255, B: 255}
	ColorGreen = RGB{R: 0, G: 128, B: 0}
	ColorRed   = RGB{R: 255, G: 0, B: 0}
	ColorOff   = RGB{}
)

// Indicators is the full actuator state: LEDs, buzzer and the lighting relay.
type Indicators struct {
	RedLED   bool `json:"red_led"`
	BlueLED  bool `json:"blue_led"`
	GreenLED bool `json:"green_led"`
	Buzzer   bool `json:"buzzer"`
	Lighting bool `json:"lighting"` // automatic lighting relay
}
