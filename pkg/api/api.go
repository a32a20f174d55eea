package api

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	// HealthPath is the unauthenticated liveness endpoint.
	HealthPath = "/health"

	readHeaderTimeout = 10 * time.Second
	idleTimeout       = 60 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// ErrEmptyToken indicates the API was started without a bearer token.
var ErrEmptyToken = errors.New("api token is empty or has not been set")

// HTTPServer is the subset of http.Server used by RunHTTPServer.
type HTTPServer interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}

// API represents the HTTP API server.
type API struct {
	Token       string
	Addr        string
	hasHandlers bool
	mux         *http.ServeMux
	server      HTTPServer // Injected server for testing; nil builds an http.Server.
}

// New creates an API instance with the health endpoint registered.
//
// Parameters:
//   - token: Bearer token required by authenticated endpoints.
//   - addr: Listen address.
//   - server: Optional server replacing the default http.Server.
//
// Returns:
//   - *API: New API instance.
func New(token, addr string, server ...HTTPServer) *API {
	api := &API{
		Token: token,
		Addr:  addr,
		mux:   http.NewServeMux(),
	}

	if len(server) > 0 {
		api.server = server[0]
	}

	api.mux.HandleFunc(HealthPath, healthHandler)

	logrus.WithField("addr", addr).Debug("Initialized new API instance")

	return api
}

// RegisterFunc registers an authenticated handler function for the given path.
func (a *API) RegisterFunc(path string, fn http.HandlerFunc) {
	a.mux.HandleFunc(path, a.RequireToken(fn))
	a.hasHandlers = true
}

// RegisterHandler registers an authenticated handler for the given path.
func (a *API) RegisterHandler(path string, handler http.Handler) {
	a.mux.Handle(path, a.RequireToken(handler.ServeHTTP))
	a.hasHandlers = true
}

// Handler returns the routing handler of the API.
func (a *API) Handler() http.Handler {
	return a.mux
}

// RequireToken wraps a handler function with bearer token authentication.
func (a *API) RequireToken(fn http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !found || a.Token == "" || subtle.ConstantTimeCompare([]byte(token), []byte(a.Token)) != 1 {
			logrus.WithFields(logrus.Fields{
				"path":   r.URL.Path,
				"remote": r.RemoteAddr,
			}).Debug("Rejected unauthenticated API request")
			http.Error(w, "Unauthorized", http.StatusUnauthorized)

			return
		}

		fn(w, r)
	}
}

// Start starts the HTTP API server.
//
// Parameters:
//   - ctx: Context whose cancellation shuts the server down.
//   - block: Serve in the foreground until shutdown; otherwise serve in the background.
//
// Returns:
//   - error: ErrEmptyToken without a token, or the server error when blocking.
func (a *API) Start(ctx context.Context, block bool) error {
	if !a.hasHandlers {
		logrus.Debug("No API endpoints registered, HTTP API skipped.")

		return nil
	}

	if a.Token == "" {
		return ErrEmptyToken
	}

	server := a.server
	if server == nil {
		server = &http.Server{
			Addr:              a.Addr,
			Handler:           a.mux,
			ReadHeaderTimeout: readHeaderTimeout,
			IdleTimeout:       idleTimeout,
			BaseContext:       func(net.Listener) context.Context { return ctx },
		}
	}

	logrus.WithField("addr", a.Addr).Info("Starting HTTP API server")

	if block {
		return RunHTTPServer(ctx, server)
	}

	go func() {
		if err := RunHTTPServer(ctx, server); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Error("HTTP API server failed")
		}
	}()

	return nil
}

// RunHTTPServer serves until the context is cancelled, then shuts the server down.
//
// Parameters:
//   - ctx: Context controlling the server lifetime.
//   - server: Server to run.
//
// Returns:
//   - error: Listen error, or a shutdown failure.
func RunHTTPServer(ctx context.Context, server HTTPServer) error {
	errChan := make(chan error, 1)

	go func() {
		errChan <- server.ListenAndServe()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		return nil
	}
}

// healthHandler reports liveness in the format expected by the health checker.
func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(map[string]string{"status": "healthy"}); err != nil {
		logrus.WithError(err).Debug("Failed to write health response")
	}
}
