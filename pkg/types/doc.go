// Package types defines core interfaces and structs for harborlift.
// It provides abstractions for registry catalogs, container runtimes, notifications and session reporting.
//
// Key components:
//   - ImageRef: Fully qualified image reference of the form host/project/repository:tag.
//   - RegistryConfig: Connection and credential settings for one registry.
//   - Catalog: Interface listing repositories and tags of a source project.
//   - Runtime: Interface for the login/pull/tag/push/remove primitives that move images.
//   - TransferParams: Struct configuring one transfer session.
//   - Report: Interface for session results (scanned, transferred, failed, skipped).
//   - Notifier: Interface for notification services with templating and batching.
//
// Usage example:
//
//	params := types.TransferParams{Source: src, Destination: dst, Cleanup: true}
//	notifier.StartNotification()
//	report, err := actions.Transfer(ctx, catalog, runtime, params)
//	notifier.SendNotification(report)
package types
