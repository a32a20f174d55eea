// Package metrics provides the HTTP handler exposing session metrics in the Prometheus format.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Path is the endpoint served by the handler.
const Path = "/v1/metrics"

// Handler serves metrics gathered from a Prometheus registry.
type Handler struct {
	Path   string
	Handle http.Handler
}

// New creates a metrics handler for the given gatherer.
//
// Parameters:
//   - gatherer: Registry to expose; nil uses the default registry.
//
// Returns:
//   - *Handler: Initialized handler.
func New(gatherer prometheus.Gatherer) *Handler {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	return &Handler{
		Path:   Path,
		Handle: promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}),
	}
}
