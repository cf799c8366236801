package service

import (
	"context"
	"time"

	"mine_evacuation/internal/models"
	"mine_evacuation/internal/repository"
)

type MonitoringService struct {
	stateRepo repository.StateRepo
}

func NewMonitoringService(stateRepo repository.StateRepo) *MonitoringService {
	return &MonitoringService{stateRepo: stateRepo}
}

// GetState returns the latest panel state, or a baseline "awaiting activation"
// state before the monitor has saved anything.
func (s *MonitoringService) GetState(ctx context.Context) (models.SystemState, error) {
	st, err := s.stateRepo.Load(ctx)
	if err != nil {
		return models.SystemState{}, err
	}
	if st.UpdatedAt.IsZero() {
		return s.baselineState(), nil
	}
	st.UpdatedAt = toUTC(st.UpdatedAt)
	return st, nil
}

func (s *MonitoringService) baselineState() models.SystemState {
	return models.SystemState{
		Activated:   false,
		DisplayText: MsgPressButton,
		UpdatedAt:   time.Now().UTC(),
	}
}

// toUTC normalizes non-zero time to UTC, preserving zero values.
func toUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}
