package types

import "time"

// Report defines transfer session results.
type Report interface {
	Scanned() []ImageReport     // Images discovered in the source.
	Transferred() []ImageReport // Images copied successfully.
	Failed() []ImageReport      // Images whose transfer failed.
	Skipped() []ImageReport     // Images skipped by filters or dry run.
	All() []ImageReport         // All unique images.
}

// ImageReport defines one image's session status.
type ImageReport interface {
	Source() string          // Source reference.
	Destination() string     // Destination reference.
	Repository() string      // Repository name.
	Tag() string             // Image tag.
	Error() string           // Error message, if any.
	State() string           // Human-readable state.
	Duration() time.Duration // Time spent on the image.
}
