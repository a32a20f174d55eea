package flux

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	helmv2 "github.com/fluxcd/helm-controller/api/v2"
	"github.com/sirupsen/logrus"
	apiextensionsv1 "k8s.io/apiextensions-apiserver/pkg/apis/apiextensions/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"sigs.k8s.io/yaml"
)

const (
	// DefaultInterval is how often Flux reconciles a generated release.
	DefaultInterval = 5 * time.Minute
	// DefaultOutput is where GenerateHelmRelease writes when no path is given.
	DefaultOutput = "render/helmrelease.yaml"

	helmRepositoryKind = "HelmRepository"
	helmReleaseKind    = "HelmRelease"
	dirPerm            = 0o755
	filePerm           = 0o644
)

var (
	// ErrMissingName indicates the release has no name.
	ErrMissingName = errors.New("release name is required")
	// ErrMissingChart indicates the release has no chart.
	ErrMissingChart = errors.New("chart name is required")
	// ErrMissingRepository indicates the release has no HelmRepository source.
	ErrMissingRepository = errors.New("helm repository name is required")
)

// ReleaseOptions describes a HelmRelease to generate.
type ReleaseOptions struct {
	Name                string         // Release name.
	Namespace           string         // Release namespace.
	Chart               string         // Chart name in the repository.
	Version             string         // Chart version or semver range.
	RepositoryName      string         // HelmRepository source name.
	RepositoryNamespace string         // HelmRepository source namespace.
	Values              map[string]any // Chart values.
	Interval            time.Duration  // Reconcile interval; DefaultInterval when zero.
}

// NewHelmRelease builds a HelmRelease from opts.
//
// Parameters:
//   - opts: Release description.
//
// Returns:
//   - *helmv2.HelmRelease: Release ready to be serialized.
//   - error: Non-nil when a required field is missing or values cannot be encoded.
func NewHelmRelease(opts ReleaseOptions) (*helmv2.HelmRelease, error) {
	switch {
	case opts.Name == "":
		return nil, ErrMissingName
	case opts.Chart == "":
		return nil, ErrMissingChart
	case opts.RepositoryName == "":
		return nil, ErrMissingRepository
	}

	interval := opts.Interval
	if interval == 0 {
		interval = DefaultInterval
	}

	release := &helmv2.HelmRelease{
		TypeMeta: metav1.TypeMeta{
			APIVersion: helmv2.GroupVersion.String(),
			Kind:       helmReleaseKind,
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:      opts.Name,
			Namespace: opts.Namespace,
		},
		Spec: helmv2.HelmReleaseSpec{
			Interval: metav1.Duration{Duration: interval},
			Chart: &helmv2.HelmChartTemplate{
				Spec: helmv2.HelmChartTemplateSpec{
					Chart:   opts.Chart,
					Version: opts.Version,
					SourceRef: helmv2.CrossNamespaceObjectReference{
						Kind:      helmRepositoryKind,
						Name:      opts.RepositoryName,
						Namespace: opts.RepositoryNamespace,
					},
				},
			},
		},
	}

	if len(opts.Values) > 0 {
		raw, err := json.Marshal(opts.Values)
		if err != nil {
			return nil, fmt.Errorf("failed to encode values: %w", err)
		}

		release.Spec.Values = &apiextensionsv1.JSON{Raw: raw}
	}

	return release, nil
}

// GenerateHelmRelease renders a HelmRelease and writes it to output, creating
// parent directories as needed.
//
// Parameters:
//   - opts: Release description.
//   - output: Destination file; DefaultOutput when empty.
//
// Returns:
//   - string: Path written.
//   - error: Non-nil if the release is invalid or cannot be written.
func GenerateHelmRelease(opts ReleaseOptions, output string) (string, error) {
	if output == "" {
		output = DefaultOutput
	}

	release, err := NewHelmRelease(opts)
	if err != nil {
		return "", err
	}

	if err := writeRelease(output, release); err != nil {
		return "", err
	}

	logrus.WithFields(logrus.Fields{
		"release": opts.Name,
		"chart":   opts.Chart,
		"path":    output,
	}).Info("HelmRelease written")

	return output, nil
}

// ReadHelmRelease loads a HelmRelease manifest from disk.
func ReadHelmRelease(path string) (*helmv2.HelmRelease, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	release := &helmv2.HelmRelease{}
	if err := yaml.Unmarshal(data, release); err != nil {
		return nil, fmt.Errorf("failed to unmarshal HelmRelease %s: %w", path, err)
	}

	return release, nil
}

func writeRelease(path string, release *helmv2.HelmRelease) error {
	out, err := yaml.Marshal(release)
	if err != nil {
		return fmt.Errorf("failed to marshal HelmRelease: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(path), err)
	}

	if err := os.WriteFile(path, out, filePerm); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}
