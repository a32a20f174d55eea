package types

import "time"

// TransferParams configures one transfer session.
type TransferParams struct {
	Source                  RegistryConfig // Registry images are copied from.
	Destination             RegistryConfig // Registry images are copied to.
	DestinationLoginCommand string         // Shell command that authenticates the runtime against the destination.
	RepositoryFilter        Filter         // Selects repositories; nil selects all.
	TagFilter               Filter         // Selects tags; nil selects all.
	Cleanup                 bool           // Remove local copies after each image.
	DryRun                  bool           // List images without touching the runtime.
	FailFast                bool           // Abort the session on the first failed image.
	Concurrency             int            // Images transferred in parallel; values below 1 mean 1.
	RetryTimeout            time.Duration  // Total time to retry a failed step; 0 disables retries.
	RetryInterval           time.Duration  // Pause between retries.
}
