package session

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/nicholas-fedor/harborlift/pkg/types"
)

// Progress tracks image statuses during a session. It is safe for concurrent use.
type Progress struct {
	mu     sync.Mutex
	images map[string]*ImageStatus
}

// NewProgress creates an empty progress tracker.
func NewProgress() *Progress {
	return &Progress{images: make(map[string]*ImageStatus)}
}

// AddScanned records a discovered image awaiting transfer.
//
// Parameters:
//   - src: Source reference.
//   - dst: Destination reference.
func (p *Progress) AddScanned(src, dst types.ImageRef) {
	p.add(&ImageStatus{source: src, destination: dst, state: ScannedState})
}

// AddSkipped records an image that will not be transferred.
//
// Parameters:
//   - src: Source reference.
//   - dst: Destination reference.
//   - reason: Why the image was skipped; may be nil.
func (p *Progress) AddSkipped(src, dst types.ImageRef, reason error) {
	p.add(&ImageStatus{source: src, destination: dst, state: SkippedState, imageError: reason})
}

// AddFailed records a failure that happened before individual images were known,
// such as a repository whose tags could not be listed.
//
// Parameters:
//   - src: Source reference; the tag may be empty.
//   - dst: Destination reference.
//   - err: Failure cause.
func (p *Progress) AddFailed(src, dst types.ImageRef, err error) {
	p.add(&ImageStatus{source: src, destination: dst, state: FailedState, imageError: err})

	logrus.WithFields(logrus.Fields{
		"source": src.Name(),
	}).WithError(err).Debug("Added failed entry")
}

// MarkTransferred sets an image's state to transferred.
//
// Parameters:
//   - src: Source reference of the image.
//   - duration: Time spent transferring.
func (p *Progress) MarkTransferred(src types.ImageRef, duration time.Duration) {
	p.update(src, func(status *ImageStatus) {
		status.state = TransferredState
		status.duration = duration
	})
}

// MarkFailed sets an image's state to failed.
//
// Parameters:
//   - src: Source reference of the image.
//   - err: Failure cause.
//   - duration: Time spent before failing.
func (p *Progress) MarkFailed(src types.ImageRef, err error, duration time.Duration) {
	p.update(src, func(status *ImageStatus) {
		status.state = FailedState
		status.imageError = err
		status.duration = duration
	})
}

// Len returns the number of tracked entries.
func (p *Progress) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return len(p.images)
}

// Report generates a report from the progress data.
//
// Returns:
//   - types.Report: New report instance.
func (p *Progress) Report() types.Report {
	p.mu.Lock()
	defer p.mu.Unlock()

	logrus.WithField("count", len(p.images)).Debug("Generating report")

	return NewReport(p.images)
}

func (p *Progress) add(status *ImageStatus) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.images[status.Source()] = status
}

func (p *Progress) update(src types.ImageRef, apply func(*ImageStatus)) {
	p.mu.Lock()
	defer p.mu.Unlock()

	status, exists := p.images[src.String()]
	if !exists {
		logrus.WithField("source", src.String()).Debug("Image not found in progress map")

		return
	}

	apply(status)
}
