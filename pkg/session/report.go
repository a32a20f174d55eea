package session

import (
	"sort"

	"github.com/nicholas-fedor/harborlift/pkg/types"
)

// report implements the Report interface for session results.
type report struct {
	scanned     []types.ImageReport // Images taking part in the transfer.
	transferred []types.ImageReport // Images copied successfully.
	failed      []types.ImageReport // Images that failed.
	skipped     []types.ImageReport // Images skipped.
}

// Scanned returns scanned images.
func (r *report) Scanned() []types.ImageReport {
	return r.scanned
}

// Transferred returns transferred images.
func (r *report) Transferred() []types.ImageReport {
	return r.transferred
}

// Failed returns failed images.
func (r *report) Failed() []types.ImageReport {
	return r.failed
}

// Skipped returns skipped images.
func (r *report) Skipped() []types.ImageReport {
	return r.skipped
}

// All returns every image once, sorted by source reference.
//
// Each image lives in exactly one status, so no deduplication is needed beyond
// merging the scanned and skipped partitions.
func (r *report) All() []types.ImageReport {
	all := make([]types.ImageReport, 0, len(r.scanned)+len(r.skipped))
	all = append(all, r.scanned...)
	all = append(all, r.skipped...)

	sortReports(all)

	return all
}

// NewReport creates a report from a set of image statuses.
//
// Parameters:
//   - images: Statuses keyed by source reference.
//
// Returns:
//   - types.Report: Categorized and sorted report.
func NewReport(images map[string]*ImageStatus) types.Report {
	report := &report{
		scanned:     make([]types.ImageReport, 0, len(images)),
		transferred: make([]types.ImageReport, 0),
		failed:      make([]types.ImageReport, 0),
		skipped:     make([]types.ImageReport, 0),
	}

	for _, status := range images {
		if status.state == SkippedState {
			report.skipped = append(report.skipped, status)

			continue
		}

		report.scanned = append(report.scanned, status)

		switch status.state {
		case TransferredState:
			report.transferred = append(report.transferred, status)
		case FailedState:
			report.failed = append(report.failed, status)
		case UnknownState, ScannedState, SkippedState:
		}
	}

	sortReports(report.scanned)
	sortReports(report.transferred)
	sortReports(report.failed)
	sortReports(report.skipped)

	return report
}

func sortReports(reports []types.ImageReport) {
	sort.Slice(reports, func(i, j int) bool {
		return reports[i].Source() < reports[j].Source()
	})
}
