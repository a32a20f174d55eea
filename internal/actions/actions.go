package actions

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/nicholas-fedor/harborlift/pkg/metrics"
	"github.com/nicholas-fedor/harborlift/pkg/types"
)

// RunTransfersWithNotifications runs a transfer session between notification batching calls.
//
// Log entries emitted during the session are queued by the notifier and sent together
// with the session report once it finished.
//
// Parameters:
//   - ctx: Context for cancellation.
//   - catalog: Source registry catalog.
//   - rt: Runtime that moves image bytes.
//   - notifier: Notifier batching session messages; may be nil.
//   - params: Session configuration.
//
// Returns:
//   - *metrics.Metric: Session counts; never nil.
//   - error: Non-nil if the session was aborted.
func RunTransfersWithNotifications(
	ctx context.Context,
	catalog types.Catalog,
	rt types.Runtime,
	notifier types.Notifier,
	params types.TransferParams,
) (*metrics.Metric, error) {
	if notifier != nil {
		notifier.StartNotification()
	} else {
		logrus.Debug("Notifier is nil, skipping notification batching")
	}

	report, err := Transfer(ctx, catalog, rt, params)
	if err != nil {
		logrus.WithError(err).Error("Transfer session failed")
	}

	if report == nil {
		return &metrics.Metric{}, err
	}

	transferred := make([]string, 0, len(report.Transferred()))
	for _, image := range report.Transferred() {
		transferred = append(transferred, image.Source())
	}

	logrus.WithFields(logrus.Fields{
		"scanned":           len(report.Scanned()),
		"transferred":       len(report.Transferred()),
		"failed":            len(report.Failed()),
		"skipped":           len(report.Skipped()),
		"transferred_names": transferred,
	}).Debug("Report before notification")

	if notifier != nil {
		notifier.SendNotification(report)
	}

	return metrics.NewMetric(report), err
}
