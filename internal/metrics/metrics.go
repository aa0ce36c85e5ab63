// Package metrics defines the Prometheus collectors exported at /metrics.
//
// A nil *Metrics is valid and records nothing, so packages can accept one
// optionally.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "dinelink"

type Metrics struct {
	rpcRequests         *prometheus.CounterVec
	rpcDuration         *prometheus.HistogramVec
	billsFinalized      prometheus.Counter
	payments            *prometheus.CounterVec
	notificationsFailed prometheus.Counter
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		rpcRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rpc_requests_total",
			Help:      "RPC calls by procedure and result code.",
		}, []string{"procedure", "code"}),
		rpcDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_duration_seconds",
			Help:      "RPC handling latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure"}),
		billsFinalized: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bills_finalized_total",
			Help:      "Bills moved from draft to finalized.",
		}),
		payments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payments_total",
			Help:      "Payments created (pending) and completed.",
		}, []string{"status"}),
		notificationsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_failed_total",
			Help:      "Notifications that could not be stored.",
		}),
	}
	reg.MustRegister(m.rpcRequests, m.rpcDuration, m.billsFinalized, m.payments, m.notificationsFailed)
	return m
}

// ObserveRPC records one finished RPC. code is "ok" on success.
func (m *Metrics) ObserveRPC(procedure, code string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.rpcRequests.WithLabelValues(procedure, code).Inc()
	m.rpcDuration.WithLabelValues(procedure).Observe(elapsed.Seconds())
}

func (m *Metrics) BillFinalized() {
	if m == nil {
		return
	}
	m.billsFinalized.Inc()
}

// Payment counts a payment transition into status.
func (m *Metrics) Payment(status string) {
	if m == nil {
		return
	}
	m.payments.WithLabelValues(status).Inc()
}

func (m *Metrics) NotificationFailed() {
	if m == nil {
		return
	}
	m.notificationsFailed.Inc()
}
