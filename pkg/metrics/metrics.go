package metrics

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/nicholas-fedor/harborlift/pkg/types"
)

var metrics *Metrics

// Metric holds data points from a transfer session.
type Metric struct {
	Scanned     int // Number of images taking part in the session.
	Transferred int // Number of images copied.
	Failed      int // Number of images that failed.
	Skipped     int // Number of images skipped by filters or dry run.
}

// Metrics handles processing and exposing session metrics.
type Metrics struct {
	channel          chan *Metric       // Channel for queuing metrics.
	scanned          prometheus.Gauge   // Gauge for scanned images.
	transferred      prometheus.Gauge   // Gauge for transferred images.
	failed           prometheus.Gauge   // Gauge for failed images.
	skipped          prometheus.Gauge   // Gauge for skipped images.
	transferredTotal prometheus.Counter // Counter for all transferred images.
	total            prometheus.Counter // Counter for total sessions.
	skippedSessions  prometheus.Counter // Counter for skipped sessions.
	dropped          prometheus.Counter // Counter for dropped metrics.
	stopCh           chan struct{}      // Channel for shutdown signaling.
	shutdownOnce     sync.Once          // Ensures shutdown is called only once.
	//nolint:containedctx
	ctx    context.Context    // Context for cancellation.
	cancel context.CancelFunc // Cancel function for the context.

	mu   sync.RWMutex // Guards last.
	last Metric       // Most recently processed session.
}

// NewWithRegistry creates a new Metrics handler with a custom Prometheus registry.
//
// Parameters:
//   - registry: Prometheus registerer to use for metric registration.
//
// Returns:
//   - (*Metrics, error): Metrics handler with Prometheus metrics and goroutine, or an error if registration fails.
func NewWithRegistry(registry prometheus.Registerer) (*Metrics, error) {
	const channelBufferSize = 10

	ctx, cancel := context.WithCancel(context.Background())

	metrics := &Metrics{
		scanned: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "harborlift_images_scanned",
			Help: "Number of images taking part in the last transfer session",
		}),
		transferred: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "harborlift_images_transferred",
			Help: "Number of images copied during the last transfer session",
		}),
		failed: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "harborlift_images_failed",
			Help: "Number of images whose transfer failed during the last session",
		}),
		skipped: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "harborlift_images_skipped",
			Help: "Number of images skipped during the last transfer session",
		}),
		transferredTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "harborlift_images_transferred_total",
			Help: "Total number of images copied since harborlift started",
		}),
		total: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "harborlift_sessions_total",
			Help: "Number of transfer sessions since harborlift started",
		}),
		skippedSessions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "harborlift_sessions_skipped_total",
			Help: "Number of skipped transfer sessions since harborlift started",
		}),
		dropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "harborlift_metrics_dropped_total",
			Help: "Number of metrics dropped due to full channel",
		}),
		channel: make(chan *Metric, channelBufferSize),
		stopCh:  make(chan struct{}),
		ctx:     ctx,
		cancel:  cancel,
	}

	collectors := []prometheus.Collector{
		metrics.scanned,
		metrics.transferred,
		metrics.failed,
		metrics.skipped,
		metrics.transferredTotal,
		metrics.total,
		metrics.skippedSessions,
		metrics.dropped,
	}
	for _, collector := range collectors {
		if err := registry.Register(collector); err != nil {
			cancel()

			alreadyRegisteredError := &prometheus.AlreadyRegisteredError{}
			if errors.As(err, &alreadyRegisteredError) {
				return nil, fmt.Errorf("failed to register metric: %w", err)
			}

			return nil, fmt.Errorf("failed to register metric: %w", err)
		}
	}

	go metrics.HandleUpdate()

	return metrics, nil
}

// NewMetric creates a Metric from a session report.
//
// Parameters:
//   - report: Session report.
//
// Returns:
//   - *Metric: New metric instance.
func NewMetric(report types.Report) *Metric {
	if report == nil {
		panic("NewMetric: report is nil")
	}

	return &Metric{
		Scanned:     len(report.Scanned()),
		Transferred: len(report.Transferred()),
		Failed:      len(report.Failed()),
		Skipped:     len(report.Skipped()),
	}
}

// QueueIsEmpty checks if the metrics channel is empty.
func (m *Metrics) QueueIsEmpty() bool {
	return len(m.channel) == 0
}

// Register attempts to enqueue a metric for processing. A nil metric marks a
// skipped session. If the channel is full, the metric is dropped and counted.
//
// Parameters:
//   - metric: Metric to register.
func (m *Metrics) Register(metric *Metric) {
	select {
	case m.channel <- metric:
	default:
		m.dropped.Inc()
	}
}

// Default initializes or returns the singleton Metrics handler. It panics on registration failure.
//
// Returns:
//   - *Metrics: Metrics handler registered against the default registry.
func Default() *Metrics {
	if metrics != nil {
		return metrics
	}

	var err error

	metrics, err = NewWithRegistry(prometheus.DefaultRegisterer)
	if err != nil {
		panic(err)
	}

	return metrics
}

// Last returns the most recently processed session metric.
func (m *Metrics) Last() Metric {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.last
}

// Shutdown stops the metrics processing goroutine. It is idempotent.
func (m *Metrics) Shutdown() {
	m.shutdownOnce.Do(func() {
		close(m.stopCh)
		m.cancel()
	})
}

// HandleUpdate processes metrics from the channel until shutdown.
func (m *Metrics) HandleUpdate() {
	for {
		select {
		case change, ok := <-m.channel:
			if !ok {
				return
			}

			m.apply(change)
		case <-m.stopCh:
			return
		case <-m.ctx.Done():
			return
		}
	}
}

func (m *Metrics) apply(change *Metric) {
	m.total.Inc()

	if change == nil {
		// Session was skipped because another one was running.
		m.skippedSessions.Inc()
		change = &Metric{}
	}

	m.scanned.Set(float64(change.Scanned))
	m.transferred.Set(float64(change.Transferred))
	m.failed.Set(float64(change.Failed))
	m.skipped.Set(float64(change.Skipped))
	m.transferredTotal.Add(float64(change.Transferred))

	m.mu.Lock()
	m.last = *change
	m.mu.Unlock()
}
