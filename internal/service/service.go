package service

import (
	"context"
	"time"

	"mine_evacuation/internal/hardware"
	"mine_evacuation/internal/logger"
	"mine_evacuation/internal/metrics"
	"mine_evacuation/internal/models"
	"mine_evacuation/internal/notify"
	"mine_evacuation/internal/repository"
	"mine_evacuation/internal/telemetry"
)

type Authorization interface {
	SignUp(ctx context.Context, username, password string) (int, error)
	GenerateToken(ctx context.Context, username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// Monitor is the evacuation panel's main loop.
// Run stops when ctx is cancelled; Shutdown performs the single cleanup pass.
type Monitor interface {
	WaitForActivation(ctx context.Context) error
	Step(ctx context.Context, now time.Time) (models.Verdict, error)
	Run(ctx context.Context, tick time.Duration) error
	Shutdown(ctx context.Context) error
}

// Monitoring exposes the latest panel state read-only.
type Monitoring interface {
	GetState(ctx context.Context) (models.SystemState, error)
}

// EventLog exposes the event index with filtering.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.AlertEvent, error)
}

// Activation presses the panel's start button remotely.
type Activation interface {
	Activate(ctx context.Context) error
}

type Service struct {
	Monitor
	Monitoring
	EventLog
	Activation
	Authorization
}

// Deps are the collaborators the services are built from.
type Deps struct {
	Board     hardware.Board
	Button    Presser
	Notifier  notify.Notifier
	Publisher telemetry.Publisher
	Metrics   *metrics.Metrics
	Log       *logger.Logger
	Settings  MonitorSettings
	Auth      AuthSettings
}

func NewService(repos *repository.Repository, d Deps) *Service {
	return &Service{
		Monitor:       NewMonitorService(repos, d),
		Monitoring:    NewMonitoringService(repos.StateRepo),
		EventLog:      NewEventLogService(repos.EventRepo),
		Activation:    NewActivationService(d.Button),
		Authorization: NewAuthService(repos.Auth, d.Auth),
	}
}
