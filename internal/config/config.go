package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"mine_evacuation/internal/models"

	"github.com/spf13/viper"
)

// Telemetry sinks accepted in telemetry.sink.
const (
	SinkNone  = "none"
	SinkMQTT  = "mqtt"
	SinkKafka = "kafka"
)

const envPrefix = "MINE"

// Config is the immutable process configuration, loaded once in main and passed by value.
type Config struct {
	Port       string            `mapstructure:"port"`
	Log        LogConfig         `mapstructure:"log"`
	DB         DBConfig          `mapstructure:"db"`
	Journal    JournalConfig     `mapstructure:"journal"`
	Monitor    MonitorConfig     `mapstructure:"monitor"`
	Thresholds models.Thresholds `mapstructure:"thresholds"`
	Notify     NotifyConfig      `mapstructure:"notify"`
	Telemetry  TelemetryConfig   `mapstructure:"telemetry"`
	Simulation SimulationConfig  `mapstructure:"simulation"`
	Auth       AuthConfig        `mapstructure:"auth"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type DBConfig struct {
	Path string `mapstructure:"path"`
}

// JournalConfig points at the append-only text event log.
type JournalConfig struct {
	Path string `mapstructure:"path"`
}

type MonitorConfig struct {
	DeviceID     string        `mapstructure:"device_id"`
	Tick         time.Duration `mapstructure:"tick"`
	SplashDelay  time.Duration `mapstructure:"splash_delay"`
	KitsLocation string        `mapstructure:"kits_location"`
	AutoActivate bool          `mapstructure:"auto_activate"`
}

// SMTPConfig holds the authenticated relay used for the emergency e-mail.
type SMTPConfig struct {
	Host      string `mapstructure:"host"`
	Port      int    `mapstructure:"port"`
	Username  string `mapstructure:"username"`
	Password  string `mapstructure:"password"`
	From      string `mapstructure:"from"`
	Recipient string `mapstructure:"recipient"`
}

type NotifyConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Subject string        `mapstructure:"subject"`
	Body    string        `mapstructure:"body"`
	Timeout time.Duration `mapstructure:"timeout"`
	SMTP    SMTPConfig    `mapstructure:"smtp"`
}

type MQTTConfig struct {
	Broker   string `mapstructure:"broker"`
	ClientID string `mapstructure:"client_id"`
	Topic    string `mapstructure:"topic"`
	QoS      byte   `mapstructure:"qos"`
}

type KafkaConfig struct {
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

type TelemetryConfig struct {
	Sink  string      `mapstructure:"sink"`
	MQTT  MQTTConfig  `mapstructure:"mqtt"`
	Kafka KafkaConfig `mapstructure:"kafka"`
}

// SimulationConfig drives the simulated sensor board.
type SimulationConfig struct {
	Seed          int64   `mapstructure:"seed"`
	EmergencyRate float64 `mapstructure:"emergency_rate"`
}

type AuthConfig struct {
	SigningKey string        `mapstructure:"signing_key"`
	TokenTTL   time.Duration `mapstructure:"token_ttl"`
}

func setDefaults(v *viper.Viper) {
	th := models.DefaultThresholds()

	v.SetDefault("port", "8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("db.path", "events.db")
	v.SetDefault("journal.path", "event_log.txt")

	v.SetDefault("monitor.device_id", "mine-panel-01")
	v.SetDefault("monitor.tick", time.Second)
	v.SetDefault("monitor.splash_delay", 2*time.Second)
	v.SetDefault("monitor.kits_location", "Near Exit B")
	v.SetDefault("monitor.auto_activate", false)

	v.SetDefault("thresholds.temperature_c", th.TemperatureC)
	v.SetDefault("thresholds.sound_level", th.SoundLevel)
	v.SetDefault("thresholds.distance_cm", th.DistanceCm)
	v.SetDefault("thresholds.air_quality", th.AirQuality)
	v.SetDefault("thresholds.light_intensity", th.LightIntensity)

	v.SetDefault("notify.enabled", false)
	v.SetDefault("notify.subject", "Coal Mine Emergency")
	v.SetDefault("notify.body", "An emergency has been triggered in the coal mine.")
	v.SetDefault("notify.timeout", 10*time.Second)
	v.SetDefault("notify.smtp.host", "smtp.example.com")
	v.SetDefault("notify.smtp.port", 587)
	v.SetDefault("notify.smtp.username", "")
	v.SetDefault("notify.smtp.password", "")
	v.SetDefault("notify.smtp.from", "")
	v.SetDefault("notify.smtp.recipient", "")

	v.SetDefault("telemetry.sink", SinkNone)
	v.SetDefault("telemetry.mqtt.broker", "tcp://localhost:1883")
	v.SetDefault("telemetry.mqtt.client_id", "mine-evacuation")
	v.SetDefault("telemetry.mqtt.topic", "mine/telemetry")
	v.SetDefault("telemetry.mqtt.qos", 0)
	v.SetDefault("telemetry.kafka.brokers", []string{"localhost:9092"})
	v.SetDefault("telemetry.kafka.topic", "mine.telemetry")

	v.SetDefault("simulation.seed", 0)
	v.SetDefault("simulation.emergency_rate", 0.05)

	v.SetDefault("auth.signing_key", "")
	v.SetDefault("auth.token_ttl", time.Hour)
}

// Load reads config.yml from the given directories (falling back to defaults when absent),
// applies MINE_* environment overrides and validates the result.
func Load(paths ...string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the monitor cannot run with.
func (c Config) Validate() error {
	if c.Monitor.Tick <= 0 {
		return fmt.Errorf("monitor.tick must be > 0, got %s", c.Monitor.Tick)
	}
	if c.Monitor.SplashDelay < 0 {
		return fmt.Errorf("monitor.splash_delay must be >= 0, got %s", c.Monitor.SplashDelay)
	}
	if c.Simulation.EmergencyRate < 0 || c.Simulation.EmergencyRate > 1 {
		return fmt.Errorf("simulation.emergency_rate must be within [0,1], got %v", c.Simulation.EmergencyRate)
	}
	switch c.Telemetry.Sink {
	case SinkNone, SinkMQTT, SinkKafka:
	default:
		return fmt.Errorf("telemetry.sink must be one of none|mqtt|kafka, got %q", c.Telemetry.Sink)
	}
	if c.Notify.Enabled {
		if c.Notify.SMTP.Host == "" || c.Notify.SMTP.Port <= 0 {
			return errors.New("notify.smtp.host and notify.smtp.port are required when notify.enabled")
		}
		if c.Notify.SMTP.Recipient == "" {
			return errors.New("notify.smtp.recipient is required when notify.enabled")
		}
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("auth.token_ttl must be > 0, got %s", c.Auth.TokenTTL)
	}
	return nil
}
