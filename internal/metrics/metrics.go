// Package metrics defines Prometheus metrics for the tenant admin service.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tenantadmin_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tenantadmin_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	ErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tenantadmin_errors_total",
			Help: "Total errors by type",
		},
		[]string{"type"},
	)

	AuditQueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "tenantadmin_audit_queue_depth",
			Help: "Current audit queue depth",
		},
	)

	AuditEntriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tenantadmin_audit_entries_total",
			Help: "Audit entries by outcome (recorded, dropped, failed)",
		},
		[]string{"outcome"},
	)

	ImportRowsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tenantadmin_import_rows_total",
			Help: "Bulk import rows by outcome (valid, invalid, created, failed)",
		},
		[]string{"outcome"},
	)

	ExportsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tenantadmin_exports_total",
			Help: "Bulk exports by format",
		},
		[]string{"format"},
	)

	RelationshipOpsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tenantadmin_relationship_ops_total",
			Help: "Role and privilege toggles by operation and result (changed, noop)",
		},
		[]string{"op", "result"},
	)

	WSConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "tenantadmin_websocket_connections",
			Help: "Active WebSocket connections",
		},
	)

	LoginAttemptsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tenantadmin_login_attempts_total",
			Help: "Login attempts by result (success, failed, locked)",
		},
		[]string{"result"},
	)
)

func init() {
	prometheus.MustRegister(
		RequestDuration, RequestsTotal, ErrorsTotal,
		AuditQueueDepth, AuditEntriesTotal,
		ImportRowsTotal, ExportsTotal, RelationshipOpsTotal,
		WSConnections, LoginAttemptsTotal,
	)
}
