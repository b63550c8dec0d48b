package metrics

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
)

// PoolCollector exports pgxpool statistics as Prometheus gauges.
type PoolCollector struct {
	pool *pgxpool.Pool

	totalConns    *prometheus.Desc
	idleConns     *prometheus.Desc
	acquiredConns *prometheus.Desc
	maxConns      *prometheus.Desc
	acquireCount  *prometheus.Desc
}

// NewPoolCollector creates a collector for the given pool.
func NewPoolCollector(pool *pgxpool.Pool) *PoolCollector {
	return &PoolCollector{
		pool:          pool,
		totalConns:    prometheus.NewDesc("db_pool_total_conns", "Total connections in the pool", nil, nil),
		idleConns:     prometheus.NewDesc("db_pool_idle_conns", "Idle connections in the pool", nil, nil),
		acquiredConns: prometheus.NewDesc("db_pool_acquired_conns", "Connections currently acquired", nil, nil),
		maxConns:      prometheus.NewDesc("db_pool_max_conns", "Maximum pool size", nil, nil),
		acquireCount:  prometheus.NewDesc("db_pool_acquire_count", "Cumulative connection acquires", nil, nil),
	}
}

// Describe implements prometheus.Collector.
func (p *PoolCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- p.totalConns
	ch <- p.idleConns
	ch <- p.acquiredConns
	ch <- p.maxConns
	ch <- p.acquireCount
}

// Collect implements prometheus.Collector.
func (p *PoolCollector) Collect(ch chan<- prometheus.Metric) {
	stat := p.pool.Stat()
	ch <- prometheus.MustNewConstMetric(p.totalConns, prometheus.GaugeValue, float64(stat.TotalConns()))
	ch <- prometheus.MustNewConstMetric(p.idleConns, prometheus.GaugeValue, float64(stat.IdleConns()))
	ch <- prometheus.MustNewConstMetric(p.acquiredConns, prometheus.GaugeValue, float64(stat.AcquiredConns()))
	ch <- prometheus.MustNewConstMetric(p.maxConns, prometheus.GaugeValue, float64(stat.MaxConns()))
	ch <- prometheus.MustNewConstMetric(p.acquireCount, prometheus.CounterValue, float64(stat.AcquireCount()))
}

// Register registers the collector on the default registry. Registration is
// best-effort; a duplicate registration (tests) is not fatal.
func (p *PoolCollector) Register() {
	_ = prometheus.Register(p)
}
