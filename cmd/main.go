package main

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "mine_evacuation/docs"
	"mine_evacuation/internal/config"
	"mine_evacuation/internal/handlers"
	"mine_evacuation/internal/hardware"
	"mine_evacuation/internal/logger"
	"mine_evacuation/internal/metrics"
	"mine_evacuation/internal/notify"
	"mine_evacuation/internal/repository"
	"mine_evacuation/internal/repository/db"
	"mine_evacuation/internal/server"
	"mine_evacuation/internal/service"
	"mine_evacuation/internal/telemetry"
)

const shutdownTimeout = 10 * time.Second

// @title                       Mine Evacuation Monitor API
// @version                     1.0
// @description                 State, activation and alert event index of the coal-mine evacuation panel.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load("configs")
	if err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}
	log := logger.Get(cfg.Log.Level, cfg.Log.Format)
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Errorw("monitor_stopped_with_error", "err", err)
		_ = log.Sync()
		os.Exit(1)
	}
}

func run(cfg config.Config, log *logger.Logger) error {
	sqlDB, err := openDB(cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	publisher, err := newPublisher(cfg.Telemetry, log)
	if err != nil {
		return err
	}

	board := hardware.NewSimulatedBoard(
		hardware.NewSimulatedSensors(cfg.Simulation.Seed, cfg.Simulation.EmergencyRate),
		hardware.NewTerminalDisplay(os.Stdout),
		log,
	)
	m := metrics.New()

	repos := repository.NewRepository(sqlDB, repository.NewTextJournal(cfg.Journal.Path))
	services := service.NewService(repos, service.Deps{
		Board:     board,
		Button:    board,
		Notifier:  newNotifier(cfg.Notify, log),
		Publisher: publisher,
		Metrics:   m,
		Log:       log,
		Settings: service.MonitorSettings{
			DeviceID:     cfg.Monitor.DeviceID,
			KitsLocation: cfg.Monitor.KitsLocation,
			SplashDelay:  cfg.Monitor.SplashDelay,
			Thresholds:   cfg.Thresholds,
			Alert:        notify.Message{Subject: cfg.Notify.Subject, Body: cfg.Notify.Body},
		},
		Auth: service.AuthSettings{
			SigningKey: signingKey(cfg.Auth, log),
			TokenTTL:   cfg.Auth.TokenTTL,
		},
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := &server.Server{}
	if err := srv.Listen(cfg.Port, handlers.NewHandler(services, m, log).InitRoutes()); err != nil {
		return err
	}
	go func() {
		if err := srv.Serve(); err != nil {
			log.Errorw("http_server_failed", "err", err)
			stop()
		}
	}()
	log.Infow("http_server_started", "addr", srv.Addr())

	if cfg.Monitor.AutoActivate {
		board.Press()
	}
	runErr := runMonitor(ctx, services.Monitor, cfg.Monitor.Tick)

	// fresh context: ctx is already cancelled on a signal
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := services.Monitor.Shutdown(shutdownCtx); err != nil {
		log.Errorw("monitor_cleanup_failed", "err", err)
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
	return runErr
}

// runMonitor waits for the start button, then loops until ctx is cancelled or a step fails.
func runMonitor(ctx context.Context, mon service.Monitor, tick time.Duration) error {
	if err := mon.WaitForActivation(ctx); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return err
	}
	return mon.Run(ctx, tick)
}

func openDB(cfg config.Config, log *logger.Logger) (*sql.DB, error) {
	path := cfg.DB.Path
	if path == "" {
		log.Infow("db.path not set in config; using default file", "default", "events.db")
		path = "events.db"
	}
	return db.InitDB(path)
}

func newNotifier(cfg config.NotifyConfig, log *logger.Logger) notify.Notifier {
	if !cfg.Enabled {
		log.Infow("email_notifications_disabled")
		return notify.Nop{}
	}
	return notify.NewEmailNotifier(cfg.SMTP, cfg.Timeout)
}

func newPublisher(cfg config.TelemetryConfig, log *logger.Logger) (telemetry.Publisher, error) {
	switch cfg.Sink {
	case config.SinkMQTT:
		log.Infow("telemetry_sink", "sink", cfg.Sink, "broker", cfg.MQTT.Broker, "topic", cfg.MQTT.Topic)
		return telemetry.NewMQTTPublisher(cfg.MQTT)
	case config.SinkKafka:
		log.Infow("telemetry_sink", "sink", cfg.Sink, "brokers", cfg.Kafka.Brokers, "topic", cfg.Kafka.Topic)
		return telemetry.NewKafkaPublisher(cfg.Kafka), nil
	case config.SinkNone, "":
		return telemetry.Nop{}, nil
	default:
		return nil, errors.New("unknown telemetry sink: " + cfg.Sink)
	}
}

// signingKey falls back to a random per-process key, so tokens do not survive restarts.
func signingKey(cfg config.AuthConfig, log *logger.Logger) []byte {
	if cfg.SigningKey != "" {
		return []byte(cfg.SigningKey)
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalw("failed to generate signing key", "err", err)
	}
	log.Warnw("auth.signing_key not set; using a random key for this process")
	return key
}
