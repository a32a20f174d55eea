// Package notifications sends transfer session results through Shoutrrr services.
//
// Log entries emitted during a session are captured by a logrus hook, batched, and rendered
// together with the session report through a Go text template. Built-in templates are
// "default", "default-legacy", "porcelain.v1.summary-no-log" and "json.v1".
//
// Usage example:
//
//	notifier := notifications.NewNotifier(cmd)
//	notifier.AddLogHook()
//	notifier.StartNotification()
//	notifier.SendNotification(report)
//	notifier.Close()
package notifications
