package repository

import (
	"context"
	"sync"

	"mine_evacuation/internal/models"
)

// StateMemory holds the latest SystemState in process memory; state is not
// retained across restarts.
type StateMemory struct {
	mu    sync.RWMutex
	state models.SystemState
}

func NewStateMemory() *StateMemory {
	return &StateMemory{}
}

// Save replaces the stored state. UpdatedAt is normalised to UTC.
func (r *StateMemory) Save(ctx context.Context, s models.SystemState) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !s.UpdatedAt.IsZero() {
		s.UpdatedAt = s.UpdatedAt.UTC()
	}
	if s.Snapshot != nil {
		snap := *s.Snapshot
		s.Snapshot = &snap
	}
	s.Verdict.Reasons = append([]models.Reason(nil), s.Verdict.Reasons...)

	r.mu.Lock()
	r.state = s
	r.mu.Unlock()
	return nil
}

// Load returns a copy of the stored state; the zero value if nothing was saved yet.
func (r *StateMemory) Load(ctx context.Context) (models.SystemState, error) {
	if err := ctx.Err(); err != nil {
		return models.SystemState{}, err
	}
	r.mu.RLock()
	s := r.state
	r.mu.RUnlock()

	if s.Snapshot != nil {
		snap := *s.Snapshot
		s.Snapshot = &snap
	}
	s.Verdict.Reasons = append([]models.Reason(nil), s.Verdict.Reasons...)
	return s, nil
}

var _ StateRepo = (*StateMemory)(nil)
