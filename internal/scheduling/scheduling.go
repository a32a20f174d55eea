// Package scheduling runs transfer sessions on a cron schedule.
// It guards sessions with a lock channel so that only one runs at a time, records skipped
// sessions in the metrics, and shuts down gracefully on SIGINT, SIGTERM or context cancellation.
package scheduling

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron"
	"github.com/sirupsen/logrus"

	"github.com/nicholas-fedor/harborlift/pkg/metrics"
	"github.com/nicholas-fedor/harborlift/pkg/types"
)

// transferWaitTimeout bounds how long shutdown waits for a running session.
const transferWaitTimeout = 60 * time.Second

// errScheduleFailed indicates the cron specification was rejected.
var errScheduleFailed = errors.New("failed to schedule transfers")

// Session runs one transfer session and returns its counts.
type Session func(ctx context.Context) *metrics.Metric

// Options configures RunTransfersOnSchedule.
type Options struct {
	Spec            string               // Cron specification with seconds; empty disables periodic runs.
	Lock            chan bool            // Shared session lock; nil creates one.
	TransferOnStart bool                 // Run one session before the scheduler starts.
	Session         Session              // Transfer session to run.
	Metrics         *metrics.Metrics     // Metrics sink; nil uses metrics.Default().
	Notifier        types.Notifier       // Closed on shutdown; may be nil.
	OnStart         func(next time.Time) // Called once with the first scheduled run time; may be nil.
}

// NewLock returns an unlocked session lock.
func NewLock() chan bool {
	lock := make(chan bool, 1)
	lock <- true

	return lock
}

// TryRun runs a session if no other session holds the lock.
//
// Parameters:
//   - ctx: Context passed to the session.
//   - lock: Session lock.
//   - session: Session to run.
//
// Returns:
//   - *metrics.Metric: Session counts, or nil if the session was skipped.
//   - bool: True if the session ran.
func TryRun(ctx context.Context, lock chan bool, session Session) (*metrics.Metric, bool) {
	select {
	case v := <-lock:
		defer func() { lock <- v }()

		return session(ctx), true
	default:
		return nil, false
	}
}

// WaitForRunningTransfer waits for a running session to complete before proceeding with shutdown.
//
// Parameters:
//   - ctx: Context for cancellation, allowing early shutdown.
//   - lock: Session lock.
func WaitForRunningTransfer(ctx context.Context, lock chan bool) {
	logrus.Debug("Checking lock status before shutdown.")

	if len(lock) == 0 {
		select {
		case v := <-lock:
			lock <- v

			logrus.Debug("Lock acquired, transfer finished.")
		case <-time.After(transferWaitTimeout):
			logrus.Warn("Timeout waiting for running transfer to finish, proceeding with shutdown.")
		case <-ctx.Done():
			logrus.Warn("Context cancelled while waiting for running transfer.")
		}
	} else {
		logrus.Debug("No transfer running, lock available.")
	}
}

// RunTransfersOnSchedule runs transfer sessions according to a cron specification.
//
// A session triggered while another one holds the lock is skipped and registered as a nil
// metric. The function blocks until SIGINT, SIGTERM or context cancellation, then stops the
// scheduler, waits for a running session and closes the notifier.
//
// Parameters:
//   - ctx: Context controlling the scheduler's lifecycle.
//   - opts: Schedule, lock, session and collaborators.
//
// Returns:
//   - error: Non-nil if the cron specification is invalid.
func RunTransfersOnSchedule(ctx context.Context, opts Options) error {
	lock := opts.Lock
	if lock == nil {
		lock = NewLock()
	}

	sink := opts.Metrics
	if sink == nil {
		sink = metrics.Default()
	}

	scheduler := cron.New()

	transferFunc := func() {
		metric, ran := TryRun(ctx, lock, opts.Session)
		if ran {
			sink.Register(metric)
			logrus.Debug("Transfer session completed")
		} else {
			sink.Register(nil)
			logrus.Debug("Skipped another transfer already running.")
		}

		if nextRuns := scheduler.Entries(); len(nextRuns) > 0 {
			logrus.Debug("Scheduled next run: " + nextRuns[0].Next.String())
		}
	}

	if opts.Spec != "" {
		if err := scheduler.AddFunc(opts.Spec, transferFunc); err != nil {
			return fmt.Errorf("%w: %q: %w", errScheduleFailed, opts.Spec, err)
		}
	}

	var nextRun time.Time
	if entries := scheduler.Entries(); len(entries) > 0 {
		nextRun = entries[0].Schedule.Next(time.Now())
	}

	if opts.OnStart != nil {
		opts.OnStart(nextRun)
	}

	if opts.TransferOnStart {
		transferFunc()
	}

	scheduler.Start()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	defer signal.Stop(interrupt)

	select {
	case <-ctx.Done():
		logrus.Debug("Context canceled, stopping scheduler...")
	case <-interrupt:
		logrus.Debug("Received interrupt signal, stopping scheduler...")
	}

	scheduler.Stop()
	logrus.Debug("Waiting for running transfer to be finished...")

	WaitForRunningTransfer(ctx, lock)

	if opts.Notifier != nil {
		opts.Notifier.Close()
	}

	logrus.Debug("Scheduler stopped and transfer completed.")

	return nil
}
