package plancodec

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	opEncode = "encode"
	opDecode = "decode"

	resultSuccess = "success"
	resultFailure = "failure"
)

// metrics is a container of metrics for a codec.
type metrics struct {
	// registry to collect metrics as a unit.
	reg *prometheus.Registry

	plansTotal *prometheus.CounterVec
	planBytes  *prometheus.HistogramVec
	seconds    *prometheus.HistogramVec
}

func newMetrics() *metrics {
	reg := prometheus.NewRegistry()

	return &metrics{
		reg: reg,

		plansTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "strata_engine_plancodec_plans_total",
			Help: "Total number of physical plans encoded or decoded, by operation and result",
		}, []string{"op", "result"}),

		planBytes: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "strata_engine_plancodec_plan_bytes",
			Help:    "Size in bytes of successfully encoded or decoded physical plans",
			Buckets: prometheus.ExponentialBuckets(64, 4, 10),

			NativeHistogramBucketFactor:     1.1,
			NativeHistogramMaxBucketNumber:  100,
			NativeHistogramMinResetDuration: time.Hour,
		}, []string{"op"}),

		seconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name: "strata_engine_plancodec_duration_seconds",
			Help: "Number of seconds taken to encode or decode a physical plan",

			NativeHistogramBucketFactor:     1.1,
			NativeHistogramMaxBucketNumber:  100,
			NativeHistogramMinResetDuration: time.Hour,
		}, []string{"op"}),
	}
}

func (m *metrics) observe(op string, size int, took time.Duration, err error) {
	if err != nil {
		m.plansTotal.WithLabelValues(op, resultFailure).Inc()
		return
	}
	m.plansTotal.WithLabelValues(op, resultSuccess).Inc()
	m.planBytes.WithLabelValues(op).Observe(float64(size))
	m.seconds.WithLabelValues(op).Observe(took.Seconds())
}

// Register registers metrics to report to reg.
func (m *metrics) Register(reg prometheus.Registerer) error { return reg.Register(m.reg) }

// Unregister unregisters metrics from the provided Registerer.
func (m *metrics) Unregister(reg prometheus.Registerer) { reg.Unregister(m.reg) }
