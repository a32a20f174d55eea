package actions

import "errors"

// Errors that abort a transfer session.
var (
	// ErrSourceLoginFailed indicates the runtime could not authenticate against the source registry.
	ErrSourceLoginFailed = errors.New("source registry login failed")
	// ErrDestinationLoginFailed indicates the runtime could not authenticate against the destination registry.
	ErrDestinationLoginFailed = errors.New("destination registry login failed")
	// ErrListRepositoriesFailed indicates the source project could not be listed.
	ErrListRepositoriesFailed = errors.New("failed to list repositories")
	// ErrSessionAborted indicates fail-fast stopped the session after a failure.
	ErrSessionAborted = errors.New("transfer session aborted after failure")
)

// Errors recorded on individual images.
var (
	// errListTagsFailed indicates the tags of a repository could not be listed.
	errListTagsFailed = errors.New("failed to list tags")
	// errExcludedByFilter marks repositories and tags rejected by a filter.
	errExcludedByFilter = errors.New("excluded by filter")
	// errDryRun marks images that would have been transferred.
	errDryRun = errors.New("dry run")
)
