package session

import (
	"time"

	"github.com/nicholas-fedor/harborlift/pkg/types"
)

// State enum values.
const (
	UnknownState     State = iota // Uninitialized state.
	SkippedState                  // Image skipped by filter or dry run.
	ScannedState                  // Image discovered, transfer pending.
	TransferredState              // Image copied to the destination.
	FailedState                   // Image transfer failed.
)

// State indicates the current state of an image in a session.
type State int

// ImageStatus holds an image's state during a session.
//
//nolint:errname // ImageStatus is not an error type, it contains an error field.
type ImageStatus struct {
	source      types.ImageRef // Source reference.
	destination types.ImageRef // Destination reference.
	imageError  error          // Error encountered, if any.
	state       State          // Current state.
	duration    time.Duration  // Time spent transferring.
}

// Source returns the source reference. Repository-level entries omit the tag.
//
// Returns:
//   - string: Source reference.
func (s *ImageStatus) Source() string {
	if s.source.Tag == "" {
		return s.source.Name()
	}

	return s.source.String()
}

// Destination returns the destination reference.
//
// Returns:
//   - string: Destination reference.
func (s *ImageStatus) Destination() string {
	if s.destination.Tag == "" {
		return s.destination.Name()
	}

	return s.destination.String()
}

// Repository returns the repository name relative to its project.
func (s *ImageStatus) Repository() string {
	return s.source.Repository
}

// Tag returns the image tag.
func (s *ImageStatus) Tag() string {
	return s.source.Tag
}

// Error returns the session error, if any.
//
// Returns:
//   - string: Error message or empty if none.
func (s *ImageStatus) Error() string {
	if s.imageError == nil {
		return ""
	}

	return s.imageError.Error()
}

// Duration returns the time spent on the image.
func (s *ImageStatus) Duration() time.Duration {
	return s.duration
}

// State returns the human-readable state name.
//
// Returns:
//   - string: State as a string (e.g., "Transferred").
func (s *ImageStatus) State() string {
	switch s.state {
	case UnknownState:
		return "Unknown"
	case SkippedState:
		return "Skipped"
	case ScannedState:
		return "Scanned"
	case TransferredState:
		return "Transferred"
	case FailedState:
		return "Failed"
	default:
		return "Unknown"
	}
}
