package hardware

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"mine_evacuation/internal/logger"
	"mine_evacuation/internal/models"
)

// SimulatedSensors produces plausible readings around nominal mine conditions and,
// with probability emergencyRate per read, pushes one reading past its limit.
type SimulatedSensors struct {
	mu            sync.Mutex
	rng           *rand.Rand
	emergencyRate float64
	now           func() time.Time
}

// NewSimulatedSensors seeds the generator; seed 0 means time-based.
func NewSimulatedSensors(seed int64, emergencyRate float64) *SimulatedSensors {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &SimulatedSensors{
		rng:           rand.New(rand.NewSource(seed)),
		emergencyRate: emergencyRate,
		now:           time.Now,
	}
}

func (s *SimulatedSensors) between(lo, hi float64) float64 {
	return lo + s.rng.Float64()*(hi-lo)
}

func (s *SimulatedSensors) intBetween(lo, hi int) int {
	return lo + s.rng.Intn(hi-lo+1)
}

func (s *SimulatedSensors) ReadSnapshot(ctx context.Context) (models.SensorSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return models.SensorSnapshot{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := models.SensorSnapshot{
		TemperatureC:   s.between(18, 28),
		HumidityPct:    s.between(30, 70),
		LightIntensity: s.intBetween(40, 800),
		SoundLevel:     s.intBetween(10, 60),
		DistanceCm:     float64(s.intBetween(40, 300)),
		RotationAngle:  s.intBetween(0, 300),
		AirQuality:     s.intBetween(20, 150),
		CapturedAt:     s.now().UTC(),
	}

	if s.rng.Float64() < s.emergencyRate {
		switch s.rng.Intn(4) {
		case 0:
			snap.TemperatureC = s.between(31, 45)
		case 1:
			snap.SoundLevel = s.intBetween(81, 120)
		case 2:
			snap.DistanceCm = float64(s.intBetween(5, 29))
		default:
			snap.AirQuality = s.intBetween(201, 400)
		}
	}
	return snap, nil
}

// SimulatedBoard is a whole panel without physical hardware: simulated sensors,
// in-memory actuators, a pluggable display and a virtual button.
type SimulatedBoard struct {
	SensorReader
	Display
	*VirtualButton

	mu         sync.Mutex
	indicators models.Indicators
	log        *logger.Logger
}

func NewSimulatedBoard(sensors SensorReader, display Display, log *logger.Logger) *SimulatedBoard {
	if log == nil {
		log = logger.Nop()
	}
	return &SimulatedBoard{
		SensorReader:  sensors,
		Display:       display,
		VirtualButton: NewVirtualButton(),
		log:           log,
	}
}

func (b *SimulatedBoard) SetIndicators(_ context.Context, ind models.Indicators) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if ind != b.indicators {
		b.log.Debugw("indicators_changed",
			"red", ind.RedLED, "blue", ind.BlueLED, "green", ind.GreenLED,
			"buzzer", ind.Buzzer, "lighting", ind.Lighting)
	}
	b.indicators = ind
	return nil
}

// Indicators returns the current actuator state.
func (b *SimulatedBoard) Indicators() models.Indicators {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.indicators
}

var _ Board = (*SimulatedBoard)(nil)
