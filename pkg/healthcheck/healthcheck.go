// Package healthcheck probes the /health endpoint of a list of hosts.
package healthcheck

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultTimeout bounds every health request.
	DefaultTimeout = 5 * time.Second
	// DefaultConcurrency is the number of hosts probed at once.
	DefaultConcurrency = 10
	// HealthPath is requested on every host.
	HealthPath = "/health"

	healthyStatus = "healthy"
)

// ErrUnhealthy indicates at least one host failed its check.
var ErrUnhealthy = errors.New("unhealthy hosts detected")

// Result is the outcome of probing one host.
type Result struct {
	Host    string
	Healthy bool
	Status  string // Reported status, empty when the response could not be decoded.
	Err     error  // Transport or decoding failure.
}

// Checker probes hosts concurrently.
type Checker struct {
	Client      *http.Client
	Concurrency int
}

// NewChecker creates a checker with the default timeout and the given concurrency.
func NewChecker(concurrency int) *Checker {
	if concurrency < 1 {
		concurrency = DefaultConcurrency
	}

	return &Checker{
		Client:      &http.Client{Timeout: DefaultTimeout},
		Concurrency: concurrency,
	}
}

// ReadHosts reads one host per line, skipping blank lines.
func ReadHosts(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open hosts file: %w", err)
	}
	defer file.Close()

	var hosts []string

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		host := strings.TrimSpace(scanner.Text())
		if host == "" {
			continue
		}

		hosts = append(hosts, host)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read hosts file: %w", err)
	}

	return hosts, nil
}

// Check probes every host, at most Concurrency at a time.
//
// Parameters:
//   - ctx: Context for all requests.
//   - hosts: host[:port] values.
//
// Returns:
//   - []Result: One result per host, in input order.
func (c *Checker) Check(ctx context.Context, hosts []string) []Result {
	results := make([]Result, len(hosts))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(max(c.Concurrency, 1))

	for i, host := range hosts {
		group.Go(func() error {
			results[i] = c.checkHost(groupCtx, host)

			return nil
		})
	}

	_ = group.Wait()

	return results
}

type healthResponse struct {
	Status string `json:"status"`
}

func (c *Checker) checkHost(ctx context.Context, host string) Result {
	result := Result{Host: host}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://"+host+HealthPath, nil)
	if err != nil {
		result.Err = err

		return result
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		result.Err = err

		return result
	}
	defer resp.Body.Close()

	var health healthResponse
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		result.Err = fmt.Errorf("invalid JSON: %w", err)

		return result
	}

	result.Status = health.Status
	result.Healthy = strings.EqualFold(health.Status, healthyStatus)

	logrus.WithFields(logrus.Fields{
		"host":   host,
		"status": health.Status,
		"code":   resp.StatusCode,
	}).Debug("Health check completed")

	return result
}

// Report writes one line per result and returns ErrUnhealthy if any host failed.
//
// Parameters:
//   - w: Output writer.
//   - results: Check results.
//   - noColor: Disable ANSI colors.
//
// Returns:
//   - error: ErrUnhealthy with the failure count, or nil.
func Report(w io.Writer, results []Result, noColor bool) error {
	healthy := color.New(color.FgGreen)
	unhealthy := color.New(color.FgRed)

	if noColor {
		healthy.DisableColor()
		unhealthy.DisableColor()
	}

	failures := 0

	for _, result := range results {
		switch {
		case result.Healthy:
			_, _ = healthy.Fprintf(w, "✅ %s - healthy\n", result.Host)
		case result.Err != nil:
			failures++

			_, _ = unhealthy.Fprintf(w, "❌ %s - error: %v\n", result.Host, result.Err)
		default:
			failures++

			_, _ = unhealthy.Fprintf(w, "❌ %s - status: %s\n", result.Host, result.Status)
		}
	}

	if failures > 0 {
		return fmt.Errorf("%w: %d of %d", ErrUnhealthy, failures, len(results))
	}

	return nil
}
