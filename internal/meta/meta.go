// Package meta holds build metadata injected at link time.
package meta

var (
	// Version is the release version, set with -ldflags.
	Version = "v0.0.0-unknown"
	// Commit is the git commit the binary was built from.
	Commit = "unknown"
	// Date is the build timestamp.
	Date = "unknown"
)

// UserAgent identifies harborlift in outgoing HTTP requests.
func UserAgent() string {
	return "harborlift/" + Version
}
