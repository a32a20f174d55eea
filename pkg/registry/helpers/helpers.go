// Package helpers provides utility functions for registry-related operations in harborlift.
// It includes methods for normalizing configured hosts, stripping project prefixes from
// Harbor repository names and validating rendered image references.
package helpers

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/distribution/reference"

	"github.com/nicholas-fedor/harborlift/pkg/types"
)

// Domains for Docker Hub, the default registry.
const (
	DefaultRegistryDomain = "docker.io"
	DefaultRegistryHost   = "index.docker.io"
)

// errInvalidReference indicates a rendered image reference failed to parse.
var errInvalidReference = errors.New("invalid image reference")

// NormalizeHost strips a scheme, path and trailing slash from a configured registry host.
//
// Parameters:
//   - host: Host as configured, e.g. "https://harbor.example.com/".
//
// Returns:
//   - string: Bare host with optional port, e.g. "harbor.example.com".
func NormalizeHost(host string) string {
	host = strings.TrimSpace(host)

	if strings.Contains(host, "://") {
		if parsed, err := url.Parse(host); err == nil && parsed.Host != "" {
			return parsed.Host
		}
	}

	if idx := strings.Index(host, "/"); idx >= 0 {
		host = host[:idx]
	}

	return host
}

// StripProject removes a leading "project/" from a repository name.
//
// Harbor reports repository names including their project. Image references are
// rendered as host/project/repository:tag, so the prefix would otherwise appear twice.
//
// Parameters:
//   - project: Project the repository belongs to.
//   - name: Repository name as reported by the catalog.
//
// Returns:
//   - string: Repository name relative to the project.
func StripProject(project, name string) string {
	if project == "" {
		return name
	}

	return strings.TrimPrefix(name, project+"/")
}

// ParseImageRef validates an image reference with the distribution grammar.
//
// Parameters:
//   - ref: Image reference to validate.
//
// Returns:
//   - reference.NamedTagged: Parsed reference.
//   - error: Non-nil if the reference is malformed or lacks a tag.
func ParseImageRef(ref types.ImageRef) (reference.NamedTagged, error) {
	named, err := reference.ParseNormalizedNamed(ref.String())
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", errInvalidReference, ref, err)
	}

	tagged, ok := named.(reference.NamedTagged)
	if !ok {
		return nil, fmt.Errorf("%w: %s: missing tag", errInvalidReference, ref)
	}

	return tagged, nil
}

// GetRegistryAddress extracts the registry address from an image reference.
// It maps Docker Hub's default domain to its canonical host address.
func GetRegistryAddress(imageRef string) (string, error) {
	normalizedRef, err := reference.ParseNormalizedNamed(imageRef)
	if err != nil {
		return "", fmt.Errorf("failed to parse image reference: %w", err)
	}

	address := reference.Domain(normalizedRef)
	if address == DefaultRegistryDomain {
		address = DefaultRegistryHost
	}

	return address, nil
}
