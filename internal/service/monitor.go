package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"mine_evacuation/internal/hardware"
	"mine_evacuation/internal/logger"
	"mine_evacuation/internal/metrics"
	"mine_evacuation/internal/models"
	"mine_evacuation/internal/notify"
	"mine_evacuation/internal/repository"
	"mine_evacuation/internal/telemetry"

	"github.com/google/uuid"
)

// LCD and journal texts.
const (
	MsgBanner        = "Coal Mine Evacuation System"
	MsgPressButton   = "Press the button to start"
	MsgActivated     = "System Activated"
	MsgEvacuate      = "Emergency! Evacuate!"
	MsgStopped       = "System Stopped"
	JournalEmergency = "Emergency Triggered"
)

// MonitorSettings is the immutable part of the monitor's configuration.
type MonitorSettings struct {
	DeviceID     string
	KitsLocation string
	SplashDelay  time.Duration
	Thresholds   models.Thresholds
	Alert        notify.Message
}

// MonitorService reads the panel, evaluates, drives the actuators and records the outcome.
type MonitorService struct {
	board     hardware.Board
	stateRepo repository.StateRepo
	eventRepo repository.EventRepo
	journal   repository.Journal
	notifier  notify.Notifier
	publisher telemetry.Publisher
	metrics   *metrics.Metrics
	log       *logger.Logger
	settings  MonitorSettings

	mu        sync.Mutex
	iteration int64
}

func NewMonitorService(repos *repository.Repository, d Deps) *MonitorService {
	m := &MonitorService{
		board:     d.Board,
		stateRepo: repos.StateRepo,
		eventRepo: repos.EventRepo,
		journal:   repos.Journal,
		notifier:  d.Notifier,
		publisher: d.Publisher,
		metrics:   d.Metrics,
		log:       d.Log,
		settings:  d.Settings,
	}
	if m.notifier == nil {
		m.notifier = notify.Nop{}
	}
	if m.publisher == nil {
		m.publisher = telemetry.Nop{}
	}
	if m.metrics == nil {
		m.metrics = metrics.New()
	}
	if m.log == nil {
		m.log = logger.Nop()
	}
	return m
}

// sleep waits d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// WaitForActivation shows the banner, then blocks until the start button is pressed.
func (m *MonitorService) WaitForActivation(ctx context.Context) error {
	if err := m.board.SetText(ctx, MsgBanner, models.ColorWhite); err != nil {
		return fmt.Errorf("display banner: %w", err)
	}
	if err := sleep(ctx, m.settings.SplashDelay); err != nil {
		return err
	}
	if err := m.board.SetText(ctx, MsgPressButton, models.ColorWhite); err != nil {
		return fmt.Errorf("display prompt: %w", err)
	}
	m.log.Infow("waiting_for_activation")

	if err := m.board.WaitPressed(ctx); err != nil {
		return err
	}
	if err := m.board.SetText(ctx, MsgActivated, models.ColorWhite); err != nil {
		return fmt.Errorf("display activated: %w", err)
	}

	now := time.Now().UTC()
	m.saveState(ctx, models.SystemState{Activated: true, DisplayText: MsgActivated, UpdatedAt: now})
	m.recordEvent(ctx, now, models.EventActivated, "System activated", nil)
	m.log.Infow("system_activated", "device_id", m.settings.DeviceID)
	return nil
}

// Step runs one read, decide, act iteration. A sensor or actuator failure is returned;
// notification and telemetry failures are logged only.
func (m *MonitorService) Step(ctx context.Context, now time.Time) (models.Verdict, error) {
	snap, err := m.board.ReadSnapshot(ctx)
	if err != nil {
		m.metrics.ObserveSensorError()
		m.recordEvent(ctx, now, models.EventSensorError, "Sensor read failed", map[string]any{"err": err.Error()})
		return models.Verdict{}, fmt.Errorf("read sensors: %w", err)
	}
	if snap.CapturedAt.IsZero() {
		snap.CapturedAt = now.UTC()
	}

	th := m.settings.Thresholds
	lighting := LightingRequired(snap, th)
	status := FormatStatus(snap, m.settings.KitsLocation, lighting)
	if err := m.board.SetText(ctx, status, models.ColorGreen); err != nil {
		return models.Verdict{}, fmt.Errorf("display status: %w", err)
	}

	verdict := Evaluate(snap, th)
	ind := models.Indicators{Lighting: lighting}
	display := status

	if verdict.Triggered {
		ind.RedLED = true
		ind.Buzzer = true
		if err := m.board.SetIndicators(ctx, ind); err != nil {
			return verdict, fmt.Errorf("set indicators: %w", err)
		}
		if err := m.board.SetText(ctx, MsgEvacuate, models.ColorRed); err != nil {
			return verdict, fmt.Errorf("display evacuate: %w", err)
		}
		if err := m.raiseEmergency(ctx, now, snap, verdict); err != nil {
			return verdict, err
		}
		display = verdict.Display()
		if err := m.board.SetText(ctx, display, models.ColorRed); err != nil {
			return verdict, fmt.Errorf("display reason: %w", err)
		}
	} else {
		ind.GreenLED = true
		if err := m.board.SetIndicators(ctx, ind); err != nil {
			return verdict, fmt.Errorf("set indicators: %w", err)
		}
	}

	m.mu.Lock()
	m.iteration++
	iter := m.iteration
	m.mu.Unlock()

	m.metrics.ObserveIteration(snap, verdict)
	if err := m.publisher.Publish(ctx, telemetry.Frame{
		DeviceID:  m.settings.DeviceID,
		Iteration: iter,
		Timestamp: now.UTC(),
		Snapshot:  snap,
		Verdict:   verdict,
	}); err != nil {
		m.log.Warnw("telemetry_publish_failed", "err", err, "iteration", iter)
	}

	m.saveState(ctx, models.SystemState{
		Activated:   true,
		Iteration:   iter,
		Snapshot:    &snap,
		Verdict:     verdict,
		DisplayText: display,
		Indicators:  ind,
		UpdatedAt:   now,
	})
	return verdict, nil
}

// raiseEmergency journals the emergency, indexes it and sends the best-effort notification.
func (m *MonitorService) raiseEmergency(ctx context.Context, now time.Time, snap models.SensorSnapshot, v models.Verdict) error {
	if err := m.journal.Append(ctx, now, JournalEmergency); err != nil {
		return fmt.Errorf("journal emergency: %w", err)
	}
	m.log.Warnw("emergency_triggered", "reasons", v.Reasons, "temp_c", snap.TemperatureC,
		"sound", snap.SoundLevel, "distance_cm", snap.DistanceCm, "air_quality", snap.AirQuality)
	m.recordEvent(ctx, now, models.EventEmergency, JournalEmergency, map[string]any{
		"reasons":     v.Reasons,
		"temp_c":      snap.TemperatureC,
		"sound":       snap.SoundLevel,
		"distance_cm": snap.DistanceCm,
		"air_quality": snap.AirQuality,
	})

	err := m.notifier.Notify(ctx, m.settings.Alert)
	m.metrics.ObserveNotification(err)
	if err != nil {
		m.log.Errorw("notify_failed", "err", err)
		m.recordEvent(ctx, now, models.EventNotifyFailed, "Emergency notification failed", map[string]any{"err": err.Error()})
	}
	return nil
}

// Run steps immediately, then once per tick, until ctx is cancelled (nil) or a step fails.
func (m *MonitorService) Run(ctx context.Context, tick time.Duration) error {
	if _, err := m.Step(ctx, time.Now()); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return err
	}

	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-t.C:
			if _, err := m.Step(ctx, now); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return err
			}
		}
	}
}

// Shutdown turns every actuator off, clears the backlight and records the stop.
// Every step is attempted; failures are joined.
func (m *MonitorService) Shutdown(ctx context.Context) error {
	var errs []error
	if err := m.board.SetText(ctx, MsgStopped, models.ColorWhite); err != nil {
		errs = append(errs, fmt.Errorf("display stopped: %w", err))
	}
	if err := m.board.SetIndicators(ctx, models.Indicators{}); err != nil {
		errs = append(errs, fmt.Errorf("clear indicators: %w", err))
	}
	if err := m.board.SetBacklight(ctx, models.ColorOff); err != nil {
		errs = append(errs, fmt.Errorf("backlight off: %w", err))
	}
	if err := m.publisher.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close telemetry: %w", err))
	}

	now := time.Now().UTC()
	m.mu.Lock()
	iter := m.iteration
	m.mu.Unlock()

	m.saveState(ctx, models.SystemState{Iteration: iter, DisplayText: MsgStopped, UpdatedAt: now})
	m.recordEvent(ctx, now, models.EventShutdown, MsgStopped, map[string]any{"iterations": iter})
	m.log.Infow("system_stopped", "iterations", iter)
	return errors.Join(errs...)
}

func (m *MonitorService) recordEvent(ctx context.Context, at time.Time, typ, desc string, meta map[string]any) {
	ev := models.AlertEvent{
		EventID:     uuid.NewString(),
		OccurredAt:  at.UTC(),
		Type:        typ,
		Description: desc,
	}
	if meta != nil {
		ev.Metadata = meta
	}
	if err := m.eventRepo.Append(ctx, ev); err != nil {
		m.log.Errorw("event_append_failed", "err", err, "type", typ)
	}
}

func (m *MonitorService) saveState(ctx context.Context, st models.SystemState) {
	if err := m.stateRepo.Save(ctx, st); err != nil {
		m.log.Errorw("state_save_failed", "err", err)
	}
}

var _ Monitor = (*MonitorService)(nil)
