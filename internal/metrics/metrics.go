// Package metrics collects and exposes Prometheus metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector is used by the service layer and HTTP middleware.
type Collector struct {
	httpStatus        *prometheus.CounterVec
	httpLatency       *prometheus.HistogramVec
	pledgesSubmitted  prometheus.Counter
	migrationRuns     prometheus.Counter
	migrationFailures prometheus.Counter
	filesMigrated     prometheus.Counter
	paymentsVerified  prometheus.Counter
	paymentsAmbiguous prometheus.Counter
}

// NewCollector creates a Collector and registers its metrics with the registry.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "portal_http_status_total",
			Help: "Responses by HTTP status code",
		}, []string{"status_code"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "portal_http_latency_seconds",
			Help:    "Request latency by route pattern",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		pledgesSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "portal_pledges_submitted_total",
			Help: "Pledge forms accepted",
		}),
		migrationRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "portal_migrations_total",
			Help: "Temp pledge migrations attempted",
		}),
		migrationFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "portal_migration_failures_total",
			Help: "Temp pledge migrations that did not complete",
		}),
		filesMigrated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "portal_files_migrated_total",
			Help: "Files moved from temp to permanent storage",
		}),
		paymentsVerified: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "portal_payments_verified_total",
			Help: "Payments with a valid signature",
		}),
		paymentsAmbiguous: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "portal_payments_ambiguous_total",
			Help: "Payments parked for manual review",
		}),
	}

	reg.MustRegister(
		c.httpStatus,
		c.httpLatency,
		c.pledgesSubmitted,
		c.migrationRuns,
		c.migrationFailures,
		c.filesMigrated,
		c.paymentsVerified,
		c.paymentsAmbiguous,
	)

	return c
}

func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

func (c *Collector) RecordHTTPLatency(route string, duration time.Duration) {
	c.httpLatency.WithLabelValues(route).Observe(duration.Seconds())
}

func (c *Collector) RecordPledgeSubmitted() {
	c.pledgesSubmitted.Inc()
}

func (c *Collector) RecordMigrationRun() {
	c.migrationRuns.Inc()
}

func (c *Collector) RecordMigrationFailure() {
	c.migrationFailures.Inc()
}

func (c *Collector) RecordFilesMigrated(count int) {
	c.filesMigrated.Add(float64(count))
}

func (c *Collector) RecordPaymentVerified() {
	c.paymentsVerified.Inc()
}

func (c *Collector) RecordPaymentAmbiguous() {
	c.paymentsAmbiguous.Inc()
}

// Handler returns the HTTP handler for Prometheus scrapes.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
