package dbpool

import "github.com/prometheus/client_golang/prometheus"

var (
	totalConnsDesc = prometheus.NewDesc(
		"tenantadmin_db_pool_connections",
		"Open database connections by state",
		[]string{"state"}, nil,
	)
	acquireWaitDesc = prometheus.NewDesc(
		"tenantadmin_db_pool_acquire_wait_seconds_total",
		"Cumulative time spent waiting for a pooled connection",
		nil, nil,
	)
)

// Collector exports pool statistics on every scrape.
type Collector struct {
	pool *Pool
}

// NewCollector returns a prometheus.Collector over p.
func NewCollector(p *Pool) *Collector {
	return &Collector{pool: p}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- totalConnsDesc
	ch <- acquireWaitDesc
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	s := c.pool.Stat()

	ch <- prometheus.MustNewConstMetric(totalConnsDesc, prometheus.GaugeValue, float64(s.AcquiredConns()), "acquired")
	ch <- prometheus.MustNewConstMetric(totalConnsDesc, prometheus.GaugeValue, float64(s.IdleConns()), "idle")
	ch <- prometheus.MustNewConstMetric(totalConnsDesc, prometheus.GaugeValue, float64(s.ConstructingConns()), "constructing")
	ch <- prometheus.MustNewConstMetric(acquireWaitDesc, prometheus.CounterValue, s.AcquireDuration().Seconds())
}
