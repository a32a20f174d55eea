package actions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/siderolabs/go-retry/retry"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/nicholas-fedor/harborlift/pkg/runtime"
	"github.com/nicholas-fedor/harborlift/pkg/session"
	"github.com/nicholas-fedor/harborlift/pkg/types"
)

// defaultRetryInterval is used when retries are enabled without an interval.
const defaultRetryInterval = time.Second

// loginExecutor runs the destination login command.
var loginExecutor runtime.Executor = runtime.NewOSExecutor()

// Transfer copies every selected image of the source project to the destination.
//
// Logins and the repository listing abort the session. A repository whose tags cannot be
// listed and an image that fails to transfer are recorded as failed and the session
// continues, unless FailFast is set. Local copies are removed after every image that was
// pulled, whether or not the tag and push succeeded.
//
// Parameters:
//   - ctx: Context for cancellation.
//   - catalog: Lists repositories and tags of the source registry.
//   - rt: Runtime that moves image bytes.
//   - params: Session configuration.
//
// Returns:
//   - types.Report: Outcome of every image seen during the session.
//   - error: Non-nil if the session was aborted.
func Transfer(
	ctx context.Context,
	catalog types.Catalog,
	rt types.Runtime,
	params types.TransferParams,
) (types.Report, error) {
	progress := session.NewProgress()

	clog := logrus.WithFields(logrus.Fields{
		"source":      params.Source.Host + "/" + params.Source.Project,
		"destination": params.Destination.Host + "/" + params.Destination.Project,
		"runtime":     rt.Name(),
		"dry_run":     params.DryRun,
	})
	clog.Info("Starting transfer session")

	if !params.DryRun {
		if err := login(ctx, rt, params); err != nil {
			return progress.Report(), err
		}
	}

	repositories, err := catalog.ListRepositories(ctx, params.Source.Project)
	if err != nil {
		return progress.Report(), fmt.Errorf("%w: %s: %w", ErrListRepositoriesFailed, params.Source.Project, err)
	}

	clog.WithField("count", len(repositories)).Debug("Listed source repositories")

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(max(params.Concurrency, 1))

	aborted := false

	for _, repository := range repositories {
		if groupCtx.Err() != nil {
			aborted = true

			break
		}

		repoRef := types.ImageRef{Host: params.Source.Host, Project: params.Source.Project, Repository: repository}
		repoDst := repoRef.Retarget(params.Destination.Host, params.Destination.Project)

		if !accepts(params.RepositoryFilter, repository) {
			logrus.WithField("repository", repository).Debug("Repository excluded by filter")
			progress.AddSkipped(repoRef, repoDst, errExcludedByFilter)

			continue
		}

		tags, err := catalog.ListTags(groupCtx, params.Source.Project, repository)
		if err != nil {
			err = fmt.Errorf("%w: %s: %w", errListTagsFailed, repository, err)

			logrus.WithField("repository", repository).WithError(err).Error("Tag listing failed")
			progress.AddFailed(repoRef, repoDst, err)

			if params.FailFast {
				aborted = true

				break
			}

			continue
		}

		for _, tag := range tags {
			src := repoRef
			src.Tag = tag
			dst := src.Retarget(params.Destination.Host, params.Destination.Project)

			switch {
			case !accepts(params.TagFilter, tag):
				logrus.WithField("image", src.String()).Debug("Tag excluded by filter")
				progress.AddSkipped(src, dst, errExcludedByFilter)

				continue
			case params.DryRun:
				logrus.WithFields(logrus.Fields{
					"source":      src.String(),
					"destination": dst.String(),
				}).Info("Would transfer image")
				progress.AddSkipped(src, dst, errDryRun)

				continue
			}

			if groupCtx.Err() != nil {
				aborted = true

				break
			}

			progress.AddScanned(src, dst)

			group.Go(func() error {
				if groupCtx.Err() != nil {
					// Queued behind an image that stopped the session.
					progress.AddSkipped(src, dst, ErrSessionAborted)

					return nil
				}

				return transferImage(groupCtx, rt, params, progress, src, dst)
			})
		}
	}

	if err := group.Wait(); err != nil {
		aborted = true

		logrus.WithError(err).Debug("Transfer worker stopped the session")
	}

	report := progress.Report()

	clog.WithFields(logrus.Fields{
		"scanned":     len(report.Scanned()),
		"transferred": len(report.Transferred()),
		"failed":      len(report.Failed()),
		"skipped":     len(report.Skipped()),
	}).Info("Transfer session finished")

	if aborted && params.FailFast {
		return report, ErrSessionAborted
	}

	if err := ctx.Err(); err != nil {
		return report, fmt.Errorf("%w: %w", ErrSessionAborted, err)
	}

	return report, nil
}

// login authenticates the runtime against both registries.
//
// The destination is always registered with the runtime, even without credentials, so
// that stored Docker config credentials and transport settings apply to the push. A
// configured login command runs first and may populate those stored credentials.
func login(ctx context.Context, rt types.Runtime, params types.TransferParams) error {
	if err := rt.Login(ctx, params.Source); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrSourceLoginFailed, params.Source.Host, err)
	}

	clog := logrus.WithField("host", params.Destination.Host)

	switch {
	case params.Destination.HasCredentials():
	case params.DestinationLoginCommand != "":
		clog.Debug("Running destination login command")

		if err := runtime.RunShell(ctx, loginExecutor, params.DestinationLoginCommand); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrDestinationLoginFailed, params.Destination.Host, err)
		}
	default:
		clog.Debug("Using existing destination session")
	}

	if err := rt.Login(ctx, params.Destination); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrDestinationLoginFailed, params.Destination.Host, err)
	}

	return nil
}

// transferImage runs the pull, tag, push and cleanup sequence for one image.
// The returned error is non-nil only when FailFast should stop the session.
func transferImage(
	ctx context.Context,
	rt types.Runtime,
	params types.TransferParams,
	progress *session.Progress,
	src, dst types.ImageRef,
) error {
	start := time.Now()
	fields := logrus.Fields{
		"source":      src.String(),
		"destination": dst.String(),
	}

	err := copyImage(ctx, rt, params, src, dst)
	duration := time.Since(start)

	if err != nil {
		logrus.WithFields(fields).WithError(err).Error("Image transfer failed")
		progress.MarkFailed(src, err, duration)

		if params.FailFast {
			return err
		}

		return nil
	}

	logrus.WithFields(fields).WithField("duration", duration.Round(time.Millisecond)).Info("Transferred image")
	progress.MarkTransferred(src, duration)

	return nil
}

// copyImage pulls, tags and pushes an image, then removes what was created locally.
func copyImage(
	ctx context.Context,
	rt types.Runtime,
	params types.TransferParams,
	src, dst types.ImageRef,
) (err error) {
	var local []types.ImageRef

	defer func() {
		if !params.Cleanup || len(local) == 0 {
			return
		}

		// Cleanup outlives cancellation so a failed session leaves nothing behind.
		if removeErr := rt.Remove(context.WithoutCancel(ctx), local...); removeErr != nil {
			logrus.WithField("image", src.String()).WithError(removeErr).Warn("Failed to remove local images")
		}
	}()

	if err := withRetry(ctx, params, func(ctx context.Context) error { return rt.Pull(ctx, src) }); err != nil {
		return err
	}

	local = append(local, src)

	if err := withRetry(ctx, params, func(ctx context.Context) error { return rt.Tag(ctx, src, dst) }); err != nil {
		return err
	}

	local = append(local, dst)

	return withRetry(ctx, params, func(ctx context.Context) error { return rt.Push(ctx, dst) })
}

// withRetry runs a transfer step, retrying it with a constant interval while the
// retry timeout allows. A zero timeout runs the step once.
func withRetry(ctx context.Context, params types.TransferParams, step func(context.Context) error) error {
	if params.RetryTimeout <= 0 {
		return step(ctx)
	}

	interval := params.RetryInterval
	if interval <= 0 {
		interval = defaultRetryInterval
	}

	var last error

	err := retry.Constant(params.RetryTimeout, retry.WithUnits(interval)).
		RetryWithContext(ctx, func(ctx context.Context) error {
			if err := step(ctx); err != nil {
				last = err

				logrus.WithError(err).Debug("Transfer step failed, retrying")

				return retry.ExpectedError(err)
			}

			return nil
		})
	if err != nil {
		if last != nil && !errors.Is(err, last) {
			return fmt.Errorf("%w (retried for %s)", last, params.RetryTimeout)
		}

		return err
	}

	return nil
}

// accepts reports whether a filter selects a name; a nil filter selects everything.
func accepts(filter types.Filter, name string) bool {
	return filter == nil || filter(name)
}
