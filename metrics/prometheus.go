package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusCollector exports command executions as Prometheus metrics.
type PrometheusCollector struct {
	total    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewPrometheusCollector creates a collector registered against reg. Pass
// prometheus.DefaultRegisterer to use the process-wide registry.
func NewPrometheusCollector(reg prometheus.Registerer) *PrometheusCollector {
	c := &PrometheusCollector{
		total: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "relay",
				Name:      "commands_total",
				Help:      "Total number of dispatched commands by outcome.",
			},
			[]string{"command", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "relay",
				Name:      "command_duration_seconds",
				Help:      "Command execution time in seconds.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"command"},
		),
	}

	reg.MustRegister(c.total, c.duration)
	return c
}

func (c *PrometheusCollector) RecordCommand(command string, executionTime time.Duration, success bool, errMsg string) {
	status := "ok"
	if !success {
		status = "error"
	}
	c.total.WithLabelValues(command, status).Inc()
	c.duration.WithLabelValues(command).Observe(executionTime.Seconds())
}
