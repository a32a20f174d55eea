package configmap

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// FileName is the manifest compared for every application directory.
const FileName = "configmap.yaml"

// ErrFoldersDiffer indicates at least one application differs or lacks a ConfigMap.
var ErrFoldersDiffer = errors.New("configmap key differences or missing configmaps detected")

// AppStatus is the outcome of comparing one application.
type AppStatus string

// Application outcomes.
const (
	StatusMatch   AppStatus = "match"
	StatusDiffer  AppStatus = "differ"
	StatusMissing AppStatus = "missing"
)

// AppResult holds the comparison of one application's ConfigMaps.
type AppResult struct {
	App    string
	Status AppStatus
	Diff   Diff   // Set when Status is StatusDiffer.
	Detail string // Where the ConfigMap is missing, when Status is StatusMissing.
}

// FolderReport summarises a folder comparison.
type FolderReport struct {
	Env1        string
	Env2        string
	Apps        []AppResult
	Matches     int
	Differences int
	Missing     int
}

// Err returns ErrFoldersDiffer unless every application matched.
func (r FolderReport) Err() error {
	if r.Differences > 0 || r.Missing > 0 {
		return ErrFoldersDiffer
	}

	return nil
}

// Write prints one line per application followed by the summary.
func (r FolderReport) Write(w io.Writer) {
	for _, app := range r.Apps {
		switch app.Status {
		case StatusMissing:
			fmt.Fprintf(w, "ConfigMap missing for app '%s': %s\n", app.App, app.Detail)
		case StatusDiffer:
			fmt.Fprintf(w, "Difference detected in '%s': %v\n", app.App, app.Diff.Err())
		case StatusMatch:
			fmt.Fprintf(w, "ConfigMap keys match for app '%s'\n", app.App)
		}
	}

	fmt.Fprintf(w, "\nSummary: %d matches, %d differences, %d missing\n", r.Matches, r.Differences, r.Missing)
}

// CompareFolders compares <env>/<app>/configmap.yaml for every application
// directory found in env1.
//
// Parameters:
//   - env1: Reference environment directory.
//   - env2: Environment compared against env1.
//
// Returns:
//   - FolderReport: Per-application outcomes and counts.
//   - error: Non-nil if env1 cannot be listed or a manifest cannot be parsed.
func CompareFolders(env1, env2 string) (FolderReport, error) {
	entries, err := os.ReadDir(env1)
	if err != nil {
		return FolderReport{}, fmt.Errorf("failed to read directory %s: %w", env1, err)
	}

	report := FolderReport{Env1: env1, Env2: env2}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		app := entry.Name()
		path1 := filepath.Join(env1, app, FileName)
		path2 := filepath.Join(env2, app, FileName)

		missing1 := isMissing(path1)
		missing2 := isMissing(path2)

		if missing1 || missing2 {
			report.Missing++
			report.Apps = append(report.Apps, AppResult{
				App:    app,
				Status: StatusMissing,
				Detail: missingDetail(missing1, missing2, env1, env2),
			})

			continue
		}

		logrus.WithField("app", app).Debug("Comparing ConfigMap keys")

		diff, err := CompareFiles(path1, path2)
		if err != nil {
			return report, err
		}

		if diff.Equal() {
			report.Matches++
			report.Apps = append(report.Apps, AppResult{App: app, Status: StatusMatch, Diff: diff})
		} else {
			report.Differences++
			report.Apps = append(report.Apps, AppResult{App: app, Status: StatusDiffer, Diff: diff})
		}
	}

	return report, nil
}

func isMissing(path string) bool {
	_, err := os.Stat(path)

	return errors.Is(err, fs.ErrNotExist)
}

func missingDetail(missing1, missing2 bool, env1, env2 string) string {
	switch {
	case missing1 && missing2:
		return fmt.Sprintf("missing in both %s and %s", env1, env2)
	case missing1:
		return "missing in " + env1
	default:
		return "missing in " + env2
	}
}
