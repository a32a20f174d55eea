package notifications

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/nicholas-fedor/harborlift/pkg/types"
)

var _ json.Marshaler = &Data{}

// errMarshalFailed indicates a failure to marshal notification data to JSON.
var errMarshalFailed = errors.New("failed to marshal notification data")

// jsonMap is a type alias for a JSON-compatible map.
type jsonMap = map[string]any

// MarshalJSON implements json.Marshaler for Data.
//
// Returns:
//   - []byte: JSON-encoded data.
//   - error: Non-nil if marshaling fails, nil on success.
func (d Data) MarshalJSON() ([]byte, error) {
	clog := logrus.WithFields(logrus.Fields{
		"title":   d.Title,
		"host":    d.Host,
		"entries": len(d.Entries),
	})
	clog.Debug("Marshaling notification data to JSON")

	entries := make([]jsonMap, len(d.Entries))
	for i, entry := range d.Entries {
		entries[i] = jsonMap{
			"level":   entry.Level,
			"message": entry.Message,
			"data":    entry.Data,
			"time":    entry.Time,
		}
	}

	var report jsonMap

	if d.Report != nil {
		report = jsonMap{
			"scanned":     marshalReports(d.Report.Scanned()),
			"transferred": marshalReports(d.Report.Transferred()),
			"failed":      marshalReports(d.Report.Failed()),
			"skipped":     marshalReports(d.Report.Skipped()),
		}
	}

	data := jsonMap{
		"report":  report,
		"title":   d.Title,
		"host":    d.Host,
		"entries": entries,
	}

	bytes, err := json.Marshal(data)
	if err != nil {
		clog.WithError(err).Error("Failed to marshal notification data to JSON")

		return nil, fmt.Errorf("%w: %w", errMarshalFailed, err)
	}

	return bytes, nil
}

// marshalReports converts image reports to JSON-compatible maps.
//
// Parameters:
//   - reports: List of image reports.
//
// Returns:
//   - []jsonMap: JSON maps of report data.
func marshalReports(reports []types.ImageReport) []jsonMap {
	jsonReports := make([]jsonMap, len(reports))
	for i, report := range reports {
		jsonReports[i] = jsonMap{
			"source":      report.Source(),
			"destination": report.Destination(),
			"repository":  report.Repository(),
			"tag":         report.Tag(),
			"state":       report.State(),
		}

		if duration := report.Duration(); duration > 0 {
			jsonReports[i]["duration"] = duration.String()
		}

		if errorMessage := report.Error(); errorMessage != "" {
			jsonReports[i]["error"] = errorMessage
		}
	}

	return jsonReports
}
