package keyvault

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"
)

// Errors for secret copy operations.
var (
	// ErrListSecretsFailed indicates the source vault could not be listed.
	ErrListSecretsFailed = errors.New("failed to list source secrets")
	// ErrCopyIncomplete indicates at least one secret could not be copied.
	ErrCopyIncomplete = errors.New("some secrets were not copied")
	// errGetSecretFailed indicates a secret could not be read from the source.
	errGetSecretFailed = errors.New("failed to read secret")
	// errSetSecretFailed indicates a secret could not be written to the destination.
	errSetSecretFailed = errors.New("failed to write secret")
)

// Secret is the copied part of a secret.
type Secret struct {
	Value       string
	ContentType string
}

// Store reads and writes the secrets of one vault.
type Store interface {
	// ListSecretNames returns the names of all secrets that can be copied.
	ListSecretNames(ctx context.Context) ([]string, error)
	// GetSecret returns the current version of a secret.
	GetSecret(ctx context.Context, name string) (Secret, error)
	// SetSecret writes a new version of a secret.
	SetSecret(ctx context.Context, name string, secret Secret) error
}

// Options selects which secrets are copied.
type Options struct {
	Exclude  []string // Names never copied.
	Suffixes []string // When set, only names ending with one of them are copied.
	DryRun   bool     // Report what would be copied without reading values.
}

// Failure records a secret that could not be copied.
type Failure struct {
	Name string
	Err  error
}

// Report is the outcome of a copy.
type Report struct {
	Copied  []string
	Skipped []string
	Failed  []Failure
	DryRun  bool
}

// Err returns ErrCopyIncomplete when any secret failed.
func (r Report) Err() error {
	if len(r.Failed) == 0 {
		return nil
	}

	names := make([]string, 0, len(r.Failed))
	for _, failure := range r.Failed {
		names = append(names, failure.Name)
	}

	return fmt.Errorf("%w: %s", ErrCopyIncomplete, strings.Join(names, ", "))
}

// Write prints one line per secret followed by a summary.
func (r Report) Write(w io.Writer) {
	copied := "Copied secret"
	if r.DryRun {
		copied = "Would copy secret"
	}

	for _, name := range r.Skipped {
		_, _ = fmt.Fprintf(w, "Skipping secret: %s\n", name)
	}

	for _, name := range r.Copied {
		_, _ = fmt.Fprintf(w, "%s: %s\n", copied, name)
	}

	for _, failure := range r.Failed {
		_, _ = fmt.Fprintf(w, "Failed to copy secret %s: %v\n", failure.Name, failure.Err)
	}

	_, _ = fmt.Fprintf(w, "Secrets copy complete: %d copied, %d skipped, %d failed\n",
		len(r.Copied), len(r.Skipped), len(r.Failed))
}

// Copier copies secrets from one store to another.
type Copier struct {
	source      Store
	destination Store
	options     Options
}

// NewCopier creates a copier between two stores.
func NewCopier(source, destination Store, options Options) *Copier {
	return &Copier{source: source, destination: destination, options: options}
}

// Selects reports whether a secret name passes the exclusions and suffixes.
func (o Options) Selects(name string) bool {
	if name == "" || slices.Contains(o.Exclude, name) {
		return false
	}

	if len(o.Suffixes) == 0 {
		return true
	}

	return slices.ContainsFunc(o.Suffixes, func(suffix string) bool {
		return suffix != "" && strings.HasSuffix(name, suffix)
	})
}

// Copy copies every selected secret.
//
// A listing failure aborts the copy. Secrets that cannot be read or written are recorded
// and the copy continues.
//
// Parameters:
//   - ctx: Context for cancellation.
//
// Returns:
//   - Report: Copied, skipped and failed secret names.
//   - error: Non-nil if the source could not be listed or the context was cancelled.
func (c *Copier) Copy(ctx context.Context) (Report, error) {
	report := Report{DryRun: c.options.DryRun}

	names, err := c.source.ListSecretNames(ctx)
	if err != nil {
		return report, fmt.Errorf("%w: %w", ErrListSecretsFailed, err)
	}

	logrus.WithField("count", len(names)).Debug("Listed source secrets")

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return report, fmt.Errorf("secret copy interrupted: %w", err)
		}

		clog := logrus.WithField("secret", name)

		if !c.options.Selects(name) {
			clog.Debug("Skipping secret")

			report.Skipped = append(report.Skipped, name)

			continue
		}

		if c.options.DryRun {
			clog.Info("Would copy secret")

			report.Copied = append(report.Copied, name)

			continue
		}

		if err := c.copySecret(ctx, name); err != nil {
			clog.WithError(err).Error("Secret copy failed")

			report.Failed = append(report.Failed, Failure{Name: name, Err: err})

			continue
		}

		clog.Info("Copied secret")

		report.Copied = append(report.Copied, name)
	}

	return report, nil
}

func (c *Copier) copySecret(ctx context.Context, name string) error {
	secret, err := c.source.GetSecret(ctx, name)
	if err != nil {
		return fmt.Errorf("%w: %w", errGetSecretFailed, err)
	}

	if err := c.destination.SetSecret(ctx, name, secret); err != nil {
		return fmt.Errorf("%w: %w", errSetSecretFailed, err)
	}

	return nil
}
