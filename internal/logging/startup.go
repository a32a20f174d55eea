// Package logging writes the startup summary of harborlift.
// It reports the version, runtime, registries, filters, notifications, schedule and HTTP API status.
package logging

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/nicholas-fedor/harborlift/internal/util"
	"github.com/nicholas-fedor/harborlift/pkg/notifications"
	"github.com/nicholas-fedor/harborlift/pkg/types"
)

// StartupInfo describes the configuration summarized at startup.
type StartupInfo struct {
	Version      string               // harborlift version.
	Runtime      string               // Name of the runtime backend.
	Source       types.RegistryConfig // Source registry.
	Destination  types.RegistryConfig // Destination registry.
	Repositories string               // Description of the repository filter.
	Tags         string               // Description of the tag filter.
	DryRun       bool                 // Whether sessions only list images.
}

// WriteStartupMessage logs or notifies startup information based on configuration flags.
//
// Messages are batched through the notifier so that the startup summary reaches configured
// services as a single notification. Nothing is written when --no-startup-message is set.
//
// Parameters:
//   - c: Command providing flags like --no-startup-message and the HTTP API settings.
//   - sched: Time of the first scheduled session, or zero if no schedule is set.
//   - info: Configuration summary.
//   - notifier: Notifier for batching startup messages; may be nil.
func WriteStartupMessage(
	c *cobra.Command,
	sched time.Time,
	info StartupInfo,
	notifier types.Notifier,
) {
	noStartupMessage, _ := c.PersistentFlags().GetBool("no-startup-message")
	if noStartupMessage {
		return
	}

	startupLog := SetupStartupLogger(noStartupMessage, notifier)

	startupLog.Info("harborlift ", info.Version, " using the ", info.Runtime, " runtime")
	startupLog.Info(fmt.Sprintf(
		"Mirroring %s/%s to %s/%s",
		info.Source.Host, info.Source.Project,
		info.Destination.Host, info.Destination.Project,
	))

	if info.Repositories != "" || info.Tags != "" {
		startupLog.WithFields(logrus.Fields{
			"repositories": info.Repositories,
			"tags":         info.Tags,
		}).Debug("Using filters")
	}

	if info.DryRun {
		startupLog.Info("Dry run enabled: images are listed but not transferred")
	}

	var notifierNames []string
	if notifier != nil {
		notifierNames = notifier.GetNames()
	}

	LogNotifierInfo(startupLog, notifierNames)
	LogScheduleInfo(startupLog, c, sched)

	if addr, enabled := apiAddress(c); enabled {
		startupLog.Info(fmt.Sprintf("The HTTP API is enabled at %s.", addr))
	}

	if notifier != nil {
		notifier.SendNotification(nil)
	}

	if logrus.IsLevelEnabled(logrus.TraceLevel) {
		startupLog.Warn(
			"Trace level enabled: log will include sensitive information as credentials and tokens",
		)
	}
}

// apiAddress returns the HTTP API listen address and whether any API endpoint is enabled.
func apiAddress(c *cobra.Command) (string, bool) {
	transferAPI, _ := c.PersistentFlags().GetBool("http-api-transfer")
	metricsAPI, _ := c.PersistentFlags().GetBool("http-api-metrics")

	host, _ := c.PersistentFlags().GetString("http-api-host")

	port, _ := c.PersistentFlags().GetString("http-api-port")
	if port == "" {
		port = "8080"
	}

	return host + ":" + port, transferAPI || metricsAPI
}

// SetupStartupLogger configures the logger for startup messages.
//
// It uses a local log entry if messages are suppressed, otherwise batches messages
// through the notifier.
//
// Parameters:
//   - noStartupMessage: Whether startup messages should be logged locally only.
//   - notifier: Notifier for batching messages; may be nil.
//
// Returns:
//   - *logrus.Entry: Log entry for writing startup messages.
func SetupStartupLogger(noStartupMessage bool, notifier types.Notifier) *logrus.Entry {
	if noStartupMessage {
		return notifications.LocalLog
	}

	log := logrus.NewEntry(logrus.StandardLogger())

	if notifier != nil {
		notifier.StartNotification()
	}

	return log
}

// LogNotifierInfo logs the configured notification services.
func LogNotifierInfo(log *logrus.Entry, notifierNames []string) {
	if len(notifierNames) > 0 {
		log.Info("Using notifications: " + strings.Join(notifierNames, ", "))
	} else {
		log.Info("Using no notifications")
	}
}

// LogScheduleInfo logs when transfer sessions will run.
//
// Parameters:
//   - log: Entry used to write the schedule information.
//   - c: Command providing --transfer-on-start and --http-api-transfer.
//   - sched: Time of the first scheduled session, or zero if no schedule is set.
func LogScheduleInfo(log *logrus.Entry, c *cobra.Command, sched time.Time) {
	onStart, _ := c.PersistentFlags().GetBool("transfer-on-start")
	transferAPI, _ := c.PersistentFlags().GetBool("http-api-transfer")

	switch {
	case !sched.IsZero():
		if onStart {
			log.Info("Running a transfer on start, then scheduling periodic transfers.")
		}

		until := util.FormatDuration(time.Until(sched))
		log.Info("Scheduling next run: " + sched.Format("2006-01-02 15:04:05 -0700 MST"))
		log.Info("Note that the next transfer will be performed in " + until)
	case transferAPI:
		log.Info("Transfers via HTTP API enabled. Periodic transfers are not enabled.")
	default:
		log.Info("Running a single transfer session.")
	}
}
