package hardware

import (
	"context"
	"errors"
	"sync"

	"mine_evacuation/internal/models"
)

// ErrScriptExhausted is returned once every scripted reading has been consumed.
var ErrScriptExhausted = errors.New("scripted sensor: no more readings")

// ScriptedStep is one scripted read: either a snapshot or a failure.
type ScriptedStep struct {
	Snapshot models.SensorSnapshot
	Err      error
}

// ScriptedSensor replays a fixed sequence of reads.
type ScriptedSensor struct {
	mu    sync.Mutex
	steps []ScriptedStep
	next  int
}

func NewScriptedSensor(steps ...ScriptedStep) *ScriptedSensor {
	return &ScriptedSensor{steps: steps}
}

// Snapshots is a shorthand for a script without failures.
func Snapshots(snaps ...models.SensorSnapshot) *ScriptedSensor {
	steps := make([]ScriptedStep, 0, len(snaps))
	for _, s := range snaps {
		steps = append(steps, ScriptedStep{Snapshot: s})
	}
	return NewScriptedSensor(steps...)
}

func (s *ScriptedSensor) ReadSnapshot(ctx context.Context) (models.SensorSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return models.SensorSnapshot{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.next >= len(s.steps) {
		return models.SensorSnapshot{}, ErrScriptExhausted
	}
	step := s.steps[s.next]
	s.next++
	return step.Snapshot, step.Err
}

var _ SensorReader = (*ScriptedSensor)(nil)
