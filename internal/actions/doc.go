// Package actions runs image transfer sessions.
//
// A session logs in to both registries, lists the repositories of the source project,
// lists the tags of every selected repository and, for every selected tag, pulls the
// source image, tags it with the destination reference, pushes it and removes the local
// copies again. Outcomes are recorded per image in a session report.
//
// Key components:
//   - Transfer: Runs one session and returns its report.
//   - RunTransfersWithNotifications: Wraps Transfer with notification batching and metrics.
//
// Usage example:
//
//	report, err := actions.Transfer(ctx, catalog, runtime, params)
//	if err != nil {
//	    logrus.WithError(err).Error("Transfer session aborted")
//	}
package actions
