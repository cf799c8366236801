package metrics

import (
	"net/http"

	"mine_evacuation/internal/models"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the monitor's collectors on a private registry.
type Metrics struct {
	registry      *prometheus.Registry
	iterations    prometheus.Counter
	emergencies   prometheus.Counter
	reasons       *prometheus.CounterVec
	readings      *prometheus.GaugeVec
	triggered     prometheus.Gauge
	notifications *prometheus.CounterVec
	sensorErrors  prometheus.Counter
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		iterations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mine_monitor_iterations_total",
			Help: "Completed monitor loop iterations.",
		}),
		emergencies: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mine_monitor_emergencies_total",
			Help: "Iterations whose verdict was triggered.",
		}),
		reasons: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mine_monitor_violations_total",
			Help: "Threshold violations by reason.",
		}, []string{"reason"}),
		readings: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "mine_sensor_reading",
			Help: "Latest raw sensor reading.",
		}, []string{"sensor"}),
		triggered: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "mine_emergency_active",
			Help: "1 while the latest verdict is triggered.",
		}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mine_notifications_total",
			Help: "Emergency notifications by result.",
		}, []string{"result"}),
		sensorErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mine_sensor_errors_total",
			Help: "Failed sensor snapshot reads.",
		}),
	}
	m.registry.MustRegister(
		m.iterations,
		m.emergencies,
		m.reasons,
		m.readings,
		m.triggered,
		m.notifications,
		m.sensorErrors,
	)
	return m
}

// ObserveIteration records the snapshot and verdict of one loop iteration.
func (m *Metrics) ObserveIteration(s models.SensorSnapshot, v models.Verdict) {
	m.iterations.Inc()
	m.readings.WithLabelValues("temperature_c").Set(s.TemperatureC)
	m.readings.WithLabelValues("humidity_pct").Set(s.HumidityPct)
	m.readings.WithLabelValues("light_intensity").Set(float64(s.LightIntensity))
	m.readings.WithLabelValues("sound_level").Set(float64(s.SoundLevel))
	m.readings.WithLabelValues("distance_cm").Set(s.DistanceCm)
	m.readings.WithLabelValues("rotation_angle").Set(float64(s.RotationAngle))
	m.readings.WithLabelValues("air_quality").Set(float64(s.AirQuality))

	if !v.Triggered {
		m.triggered.Set(0)
		return
	}
	m.triggered.Set(1)
	m.emergencies.Inc()
	for _, r := range v.Reasons {
		m.reasons.WithLabelValues(string(r)).Inc()
	}
}

// ObserveNotification counts one notification attempt.
func (m *Metrics) ObserveNotification(err error) {
	if err != nil {
		m.notifications.WithLabelValues("failed").Inc()
		return
	}
	m.notifications.WithLabelValues("sent").Inc()
}

func (m *Metrics) ObserveSensorError() {
	m.sensorErrors.Inc()
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry is exposed for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
