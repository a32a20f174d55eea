package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/nicholas-fedor/harborlift/pkg/metrics"
	"github.com/nicholas-fedor/harborlift/pkg/runtime"
)

// DefaultTimeout bounds a hook command when Hooks.Timeout is zero.
const DefaultTimeout = time.Minute

// Errors for lifecycle hook execution.
var (
	// ErrPreSessionFailed indicates a failure in executing the pre-session command.
	ErrPreSessionFailed = errors.New("pre-session command execution failed")
)

// Hooks holds the commands run around a transfer session.
type Hooks struct {
	PreSession  string        // Runs before a session; failure aborts it.
	PostSession string        // Runs after a session with its counts in the environment.
	Timeout     time.Duration // Limit per command; DefaultTimeout when zero.
}

// ExecutePreSessionCommand executes the pre-session hook.
//
// Parameters:
//   - ctx: Context for cancellation.
//   - executor: Executor running the shell; nil uses the OS.
//   - hooks: Configured hooks.
//
// Returns:
//   - bool: True if the command ran, false if none is configured.
//   - error: Non-nil if the command failed.
func ExecutePreSessionCommand(ctx context.Context, executor runtime.Executor, hooks Hooks) (bool, error) {
	clog := logrus.WithField("timeout", hooks.timeout())

	if strings.TrimSpace(hooks.PreSession) == "" {
		clog.Debug("No pre-session command supplied. Skipping")

		return false, nil
	}

	ctx, cancel := context.WithTimeout(ctx, hooks.timeout())
	defer cancel()

	clog.WithField("command", hooks.PreSession).Debug("Executing pre-session command")

	if err := runtime.RunShell(ctx, executor, hooks.PreSession); err != nil {
		clog.WithError(err).Debug("Pre-session command failed")

		return true, fmt.Errorf("%w: %w", ErrPreSessionFailed, err)
	}

	clog.Debug("Pre-session command executed")

	return true, nil
}

// ExecutePostSessionCommand executes the post-session hook.
//
// The command sees HARBORLIFT_SCANNED, HARBORLIFT_TRANSFERRED, HARBORLIFT_FAILED and
// HARBORLIFT_SKIPPED. Failures are logged and otherwise ignored.
//
// Parameters:
//   - ctx: Context for cancellation.
//   - executor: Executor running the shell; nil uses the OS.
//   - hooks: Configured hooks.
//   - metric: Counts of the finished session; nil reports zeros.
func ExecutePostSessionCommand(
	ctx context.Context,
	executor runtime.Executor,
	hooks Hooks,
	metric *metrics.Metric,
) {
	clog := logrus.WithField("timeout", hooks.timeout())

	if strings.TrimSpace(hooks.PostSession) == "" {
		clog.Debug("No post-session command supplied. Skipping")

		return
	}

	if metric == nil {
		metric = &metrics.Metric{}
	}

	if executor == nil {
		executor = runtime.NewOSExecutor()
	}

	// The session may have been cancelled; the hook still reports its outcome.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), hooks.timeout())
	defer cancel()

	clog.WithField("command", hooks.PostSession).Debug("Executing post-session command")

	args := append(sessionEnv(metric), "sh", "-c", hooks.PostSession)

	out, err := executor.Run(ctx, nil, "env", args...)
	if err != nil {
		clog.WithError(err).Warn("Post-session command failed")

		return
	}

	clog.WithField("output", strings.TrimSpace(string(out))).Debug("Post-session command executed")
}

// sessionEnv renders the session counts as env(1) assignments.
func sessionEnv(metric *metrics.Metric) []string {
	return []string{
		"HARBORLIFT_SCANNED=" + strconv.Itoa(metric.Scanned),
		"HARBORLIFT_TRANSFERRED=" + strconv.Itoa(metric.Transferred),
		"HARBORLIFT_FAILED=" + strconv.Itoa(metric.Failed),
		"HARBORLIFT_SKIPPED=" + strconv.Itoa(metric.Skipped),
	}
}

func (h Hooks) timeout() time.Duration {
	if h.Timeout <= 0 {
		return DefaultTimeout
	}

	return h.Timeout
}
