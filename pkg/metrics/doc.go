// Package metrics tracks transfer session results and exposes them through Prometheus.
//
// Key components:
//   - Metrics: Queues session metrics and updates gauges and counters.
//   - NewMetric: Builds a metric from a session report.
//
// Usage example:
//
//	m := metrics.Default()
//	m.Register(metrics.NewMetric(report))
//
// A nil metric registers a skipped session.
package metrics
