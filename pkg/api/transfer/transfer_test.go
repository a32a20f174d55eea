package transfer_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nicholas-fedor/harborlift/pkg/api/transfer"
	"github.com/nicholas-fedor/harborlift/pkg/metrics"
)

type response struct {
	Summary struct {
		Scanned     int `json:"scanned"`
		Transferred int `json:"transferred"`
		Failed      int `json:"failed"`
		Skipped     int `json:"skipped"`
	} `json:"summary"`
	APIVersion string `json:"api_version"`
	Error      string `json:"error"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) response {
	t.Helper()

	var body response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))

	return body
}

func TestHandle_FullTransfer(t *testing.T) {
	t.Parallel()

	var got []string

	handler := transfer.New(func(_ context.Context, repositories []string) *metrics.Metric {
		got = repositories

		return &metrics.Metric{Scanned: 5, Transferred: 4, Failed: 1}
	}, nil)

	rec := httptest.NewRecorder()
	handler.Handle(rec, httptest.NewRequest(http.MethodPost, transfer.Path, nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Empty(t, got)

	body := decode(t, rec)
	assert.Equal(t, 5, body.Summary.Scanned)
	assert.Equal(t, 4, body.Summary.Transferred)
	assert.Equal(t, 1, body.Summary.Failed)
	assert.Equal(t, "v1", body.APIVersion)
}

func TestHandle_RepositoryQuery(t *testing.T) {
	t.Parallel()

	var got []string

	handler := transfer.New(func(_ context.Context, repositories []string) *metrics.Metric {
		got = repositories

		return nil
	}, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, transfer.Path+"?repository=nginx,tools/redis&repository=%20busybox", nil)
	handler.Handle(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"nginx", "tools/redis", "busybox"}, got)
	assert.Equal(t, 0, decode(t, rec).Summary.Scanned)
}

func TestHandle_RejectsConcurrentFullTransfer(t *testing.T) {
	t.Parallel()

	lock := make(chan bool, 1) // held by another session
	handler := transfer.New(func(context.Context, []string) *metrics.Metric {
		t.Error("session must not run")

		return nil
	}, lock)

	rec := httptest.NewRecorder()
	handler.Handle(rec, httptest.NewRequest(http.MethodPost, transfer.Path, nil))

	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "30", rec.Header().Get("Retry-After"))
	assert.Equal(t, "another transfer is already running", decode(t, rec).Error)
}

func TestHandle_TargetedTransferWaitsForLock(t *testing.T) {
	t.Parallel()

	lock := make(chan bool, 1)
	ran := make(chan struct{})
	handler := transfer.New(func(context.Context, []string) *metrics.Metric {
		close(ran)

		return &metrics.Metric{Transferred: 1}
	}, lock)

	var wg sync.WaitGroup

	rec := httptest.NewRecorder()

	wg.Go(func() {
		handler.Handle(rec, httptest.NewRequest(http.MethodPost, transfer.Path+"?repository=nginx", nil))
	})

	select {
	case <-ran:
		t.Fatal("targeted session ran while the lock was held")
	case <-time.After(50 * time.Millisecond):
	}

	lock <- true

	wg.Wait()
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, lock, 1, "lock must be released")
}

func TestHandle_TargetedTransferCancelled(t *testing.T) {
	t.Parallel()

	handler := transfer.New(func(context.Context, []string) *metrics.Metric { return nil }, make(chan bool, 1))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rec := httptest.NewRecorder()
	req := httptest.NewRequestWithContext(ctx, http.MethodPost, transfer.Path+"?repository=nginx", nil)
	handler.Handle(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHandle_MethodNotAllowed(t *testing.T) {
	t.Parallel()

	handler := transfer.New(func(context.Context, []string) *metrics.Metric { return nil }, nil)

	rec := httptest.NewRecorder()
	handler.Handle(rec, httptest.NewRequest(http.MethodGet, transfer.Path, nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, http.MethodPost, rec.Header().Get("Allow"))
}
