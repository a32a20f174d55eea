// Package transfer provides the HTTP handler that triggers transfer sessions.
package transfer

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/nicholas-fedor/harborlift/pkg/metrics"
)

// Path is the endpoint served by the handler.
const Path = "/v1/transfer"

// retryAfterSeconds is advertised when a full session is rejected.
const retryAfterSeconds = "30"

// Func runs a transfer session restricted to the given repositories; empty means all.
type Func func(ctx context.Context, repositories []string) *metrics.Metric

// Handler triggers transfer sessions via HTTP.
type Handler struct {
	fn   Func
	Path string
	lock chan bool
}

// New creates a transfer handler.
//
// Parameters:
//   - fn: Session function.
//   - lock: Session lock shared with the scheduler; nil creates a new one.
//
// Returns:
//   - *Handler: Initialized handler.
func New(fn Func, lock chan bool) *Handler {
	if lock == nil {
		lock = make(chan bool, 1)
		lock <- true
	}

	return &Handler{fn: fn, Path: Path, lock: lock}
}

// Handle processes POST requests that trigger a transfer session.
//
// Requests naming repositories with ?repository=a,b wait for a running session to finish.
// Requests for a full session are rejected with 429 while another session runs, since a
// second full pass would copy the same images.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)

		return
	}

	logrus.WithFields(logrus.Fields{
		"method": r.Method,
		"path":   r.URL.Path,
	}).Info("Received HTTP API transfer request")

	if _, err := io.Copy(io.Discard, r.Body); err != nil {
		logrus.WithError(err).Debug("Failed to read request body")
		http.Error(w, "Failed to read request body", http.StatusInternalServerError)

		return
	}

	repositories := repositoriesFromQuery(r)

	if len(repositories) > 0 {
		select {
		case v := <-h.lock:
			defer func() { h.lock <- v }()
		case <-r.Context().Done():
			http.Error(w, "request cancelled", http.StatusServiceUnavailable)

			return
		}

		logrus.WithField("repositories", repositories).Info("Executing targeted transfer")
	} else {
		select {
		case v := <-h.lock:
			defer func() { h.lock <- v }()
		default:
			logrus.Debug("Skipped transfer, another transfer already in progress")
			w.Header().Set("Retry-After", retryAfterSeconds)
			writeJSON(w, http.StatusTooManyRequests, map[string]any{
				"error":       "another transfer is already running",
				"api_version": "v1",
				"timestamp":   time.Now().UTC().Format(time.RFC3339),
			})

			return
		}

		logrus.Info("Executing full transfer")
	}

	start := time.Now()
	metric := h.fn(context.WithoutCancel(r.Context()), repositories)
	duration := time.Since(start)

	if metric == nil {
		metric = &metrics.Metric{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"summary": map[string]any{
			"scanned":     metric.Scanned,
			"transferred": metric.Transferred,
			"failed":      metric.Failed,
			"skipped":     metric.Skipped,
		},
		"timing": map[string]any{
			"duration_ms": duration.Milliseconds(),
			"duration":    duration.String(),
		},
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"api_version": "v1",
	})
}

// repositoriesFromQuery collects comma-separated repository parameters.
func repositoriesFromQuery(r *http.Request) []string {
	var repositories []string

	for _, value := range r.URL.Query()["repository"] {
		for name := range strings.SplitSeq(value, ",") {
			if name = strings.TrimSpace(name); name != "" {
				repositories = append(repositories, name)
			}
		}
	}

	return repositories
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	var buf bytes.Buffer

	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		logrus.WithError(err).Error("Failed to encode JSON response")
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if _, err := w.Write(buf.Bytes()); err != nil {
		logrus.WithError(err).Error("Failed to write response")
	}
}
