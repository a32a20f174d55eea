// Package flags manages command-line flags and environment variables for harborlift.
// Every flag can be set through an HARBORLIFT_ environment variable and, with --config,
// through a YAML, TOML or JSON file.
//
// Key components:
//   - RegisterRegistryFlags / RegisterTransferFlags: Source, destination and session settings.
//   - RegisterSystemFlags: Run modes, logging and the HTTP API.
//   - RegisterNotificationFlags: Notification settings.
//   - ReadTransferParams: Converts parsed flags into types.TransferParams.
//   - SetupLogging: Configures logrus based on flags.
//
// Usage example:
//
//	flags.SetDefaults()
//	flags.RegisterSystemFlags(cmd)
//	if err := flags.SetupLogging(cmd.PersistentFlags()); err != nil {
//	    logrus.WithError(err).Fatal("Logging setup failed")
//	}
package flags
