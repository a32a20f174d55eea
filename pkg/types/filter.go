package types

// Filter decides whether a repository or tag name takes part in a transfer.
type Filter func(name string) bool
