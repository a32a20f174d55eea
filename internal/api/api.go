// Package api wires the transfer and metrics endpoints into the HTTP API server.
package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/nicholas-fedor/harborlift/pkg/api"
	metricsAPI "github.com/nicholas-fedor/harborlift/pkg/api/metrics"
	"github.com/nicholas-fedor/harborlift/pkg/api/transfer"
	"github.com/nicholas-fedor/harborlift/pkg/metrics"
)

// Config describes which endpoints to expose and how to serve them.
type Config struct {
	Host           string // Interface to bind to.
	Port           string // Port to listen on.
	Token          string // Bearer token required by protected endpoints.
	EnableTransfer bool   // Expose the transfer trigger endpoint.
	EnableMetrics  bool   // Expose the Prometheus metrics endpoint.
	Block          bool   // Serve in the foreground until the context ends.

	// Lock is shared with the scheduler so only one session runs at a time.
	Lock chan bool
	// Run executes a transfer session limited to the given repositories.
	Run transfer.Func
	// Metrics receives the result of every API-triggered session.
	Metrics *metrics.Metrics
	// Gatherer backs the metrics endpoint. Defaults to prometheus.DefaultGatherer.
	Gatherer prometheus.Gatherer
	// Server overrides the underlying HTTP server, mainly for tests.
	Server api.HTTPServer
}

// GetAPIAddr formats the API address string based on host and port.
func GetAPIAddr(host, port string) string {
	address := host + ":" + port
	if host != "" && strings.Contains(host, ":") && net.ParseIP(host) != nil {
		address = "[" + host + "]:" + port
	}

	return address
}

// Build creates the HTTP API with the endpoints enabled in cfg.
//
// Parameters:
//   - cfg: Endpoint and server configuration.
//
// Returns:
//   - *api.API: Configured API, not yet started.
func Build(cfg Config) *api.API {
	address := GetAPIAddr(cfg.Host, cfg.Port)

	var httpAPI *api.API
	if cfg.Server != nil {
		httpAPI = api.New(cfg.Token, address, cfg.Server)
	} else {
		httpAPI = api.New(cfg.Token, address)
	}

	if cfg.EnableTransfer && cfg.Run != nil {
		run := cfg.Run
		handler := transfer.New(func(ctx context.Context, repositories []string) *metrics.Metric {
			metric := run(ctx, repositories)
			if cfg.Metrics != nil {
				cfg.Metrics.Register(metric)
			}

			return metric
		}, cfg.Lock)
		httpAPI.RegisterFunc(handler.Path, handler.Handle)
	}

	if cfg.EnableMetrics {
		gatherer := cfg.Gatherer
		if gatherer == nil {
			gatherer = prometheus.DefaultGatherer
		}

		handler := metricsAPI.New(gatherer)
		httpAPI.RegisterHandler(handler.Path, handler.Handle)
	}

	return httpAPI
}

// SetupAndStartAPI builds the HTTP API and starts it.
//
// Parameters:
//   - ctx: Context controlling the server lifetime.
//   - cfg: Endpoint and server configuration.
//
// Returns:
//   - error: Non-nil if the server failed for reasons other than a clean shutdown.
func SetupAndStartAPI(ctx context.Context, cfg Config) error {
	httpAPI := Build(cfg)

	if err := httpAPI.Start(ctx, cfg.Block); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logrus.WithError(err).Error("Failed to start API")

		return fmt.Errorf("failed to start HTTP API: %w", err)
	}

	return nil
}
