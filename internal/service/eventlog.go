package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"mine_evacuation/internal/models"
	"mine_evacuation/internal/repository"
)

// EventLogService queries the event index.
type EventLogService struct {
	eventRepo repository.EventRepo
}

func NewEventLogService(eventRepo repository.EventRepo) *EventLogService {
	return &EventLogService{eventRepo: eventRepo}
}

var (
	errInvalidTimeRange = errors.New("invalid time range: From must be <= To")
	ErrUnknownEventType = errors.New("unknown event type")
)

var knownEventTypes = map[string]struct{}{
	models.EventActivated:    {},
	models.EventEmergency:    {},
	models.EventNotifyFailed: {},
	models.EventSensorError:  {},
	models.EventShutdown:     {},
}

// IsInvalidFilter reports whether err came from filter validation rather than storage.
func IsInvalidFilter(err error) bool {
	return errors.Is(err, errInvalidTimeRange) || errors.Is(err, ErrUnknownEventType)
}

func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

// normalizeEventType trims and upper-cases the type filter ("emergency " -> "EMERGENCY").
func normalizeEventType(s string) string {
	return strings.TrimSpace(strings.ToUpper(s))
}

func normalizeAndValidateFilter(f LogFilter) (from, to time.Time, typ string, err error) {
	from = normalizeToUTC(f.From)
	to = normalizeToUTC(f.To)
	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return time.Time{}, time.Time{}, "", errInvalidTimeRange
	}

	typ = normalizeEventType(f.Type)
	if typ != "" {
		if _, ok := knownEventTypes[typ]; !ok {
			return time.Time{}, time.Time{}, "", fmt.Errorf("%w: %q", ErrUnknownEventType, typ)
		}
	}
	return from, to, typ, nil
}

// List returns indexed events matching f, oldest first.
func (s *EventLogService) List(ctx context.Context, f LogFilter) ([]models.AlertEvent, error) {
	from, to, typ, err := normalizeAndValidateFilter(f)
	if err != nil {
		return nil, err
	}
	return s.eventRepo.List(ctx, from, to, typ)
}
