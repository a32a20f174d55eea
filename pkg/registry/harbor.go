package registry

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/nicholas-fedor/harborlift/internal/meta"
	"github.com/nicholas-fedor/harborlift/pkg/registry/helpers"
	"github.com/nicholas-fedor/harborlift/pkg/types"
)

// Tag listing modes supported by the Harbor client.
const (
	// TagListingTags lists tags through /repositories/{repo}/tags.
	TagListingTags = "tags"
	// TagListingArtifacts lists tags through /repositories/{repo}/artifacts?with_tag=true.
	TagListingArtifacts = "artifacts"
)

const (
	harborAPIPrefix      = "/api/v2.0"
	harborPageSize       = 100
	defaultHarborTimeout = 15 * time.Second
	maxErrorBodyBytes    = 512
)

// harborRepository is the subset of a Harbor repository object the client reads.
type harborRepository struct {
	Name string `json:"name"`
}

// harborTag is the subset of a Harbor tag object the client reads.
type harborTag struct {
	Name string `json:"name"`
}

// harborArtifact is the subset of a Harbor artifact object the client reads.
type harborArtifact struct {
	Digest string      `json:"digest"`
	Tags   []harborTag `json:"tags"`
}

// HarborClient implements types.Catalog against the Harbor REST API v2.0.
type HarborClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	config     types.RegistryConfig
	tagListing string
}

var _ types.Catalog = (*HarborClient)(nil)

// Option customizes a HarborClient.
type Option func(*HarborClient)

// WithHTTPClient replaces the HTTP client used for API calls.
func WithHTTPClient(client *http.Client) Option {
	return func(c *HarborClient) {
		c.httpClient = client
	}
}

// WithTagListing selects how tags are listed (TagListingTags or TagListingArtifacts).
func WithTagListing(mode string) Option {
	return func(c *HarborClient) {
		c.tagListing = mode
	}
}

// WithBaseURL overrides the API base URL derived from the registry config.
func WithBaseURL(base *url.URL) Option {
	return func(c *HarborClient) {
		c.baseURL = base
	}
}

// NewHarborClient creates a catalog client for the registry described by cfg.
//
// Parameters:
//   - cfg: Source registry configuration (host, credentials, TLS settings).
//   - opts: Optional client customizations.
//
// Returns:
//   - *HarborClient: Ready client.
//   - error: Non-nil if the host cannot form a URL or the tag listing mode is unknown.
func NewHarborClient(cfg types.RegistryConfig, opts ...Option) (*HarborClient, error) {
	base, err := url.Parse(cfg.Scheme() + "://" + helpers.NormalizeHost(cfg.Host))
	if err != nil || base.Host == "" {
		return nil, fmt.Errorf("%w: %q", errInvalidBaseURL, cfg.Host)
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.SkipTLSVerify {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // opt-in via --source-tls-skip-verify
	}

	client := &HarborClient{
		baseURL: base,
		httpClient: &http.Client{
			Timeout:   defaultHarborTimeout,
			Transport: transport,
		},
		config:     cfg,
		tagListing: TagListingTags,
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.tagListing != TagListingTags && client.tagListing != TagListingArtifacts {
		return nil, fmt.Errorf("%w: %q", errUnknownTagListing, client.tagListing)
	}

	return client, nil
}

// ListRepositories returns the repositories of a project, relative to the project.
//
// Parameters:
//   - ctx: Context for cancellation.
//   - project: Harbor project name.
//
// Returns:
//   - []string: Repository names in catalog order.
//   - error: Non-nil on transport, status or decoding failures.
func (c *HarborClient) ListRepositories(ctx context.Context, project string) ([]string, error) {
	path := fmt.Sprintf("/projects/%s/repositories", url.PathEscape(project))

	var repositories []harborRepository
	if err := paginate(ctx, c, path, nil, &repositories); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(repositories))
	for _, repository := range repositories {
		names = append(names, helpers.StripProject(project, repository.Name))
	}

	logrus.WithFields(logrus.Fields{
		"project": project,
		"count":   len(names),
	}).Debug("Listed repositories")

	return names, nil
}

// ListTags returns the tags of one repository.
//
// Parameters:
//   - ctx: Context for cancellation.
//   - project: Harbor project name.
//   - repository: Repository name relative to the project.
//
// Returns:
//   - []string: Tag names.
//   - error: Non-nil on transport, status or decoding failures.
func (c *HarborClient) ListTags(ctx context.Context, project, repository string) ([]string, error) {
	var (
		names []string
		err   error
	)

	if c.tagListing == TagListingArtifacts {
		names, err = c.listArtifactTags(ctx, project, repository)
	} else {
		names, err = c.listTags(ctx, project, repository)
	}

	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"project":    project,
		"repository": repository,
		"count":      len(names),
	}).Debug("Listed tags")

	return names, nil
}

func (c *HarborClient) listTags(ctx context.Context, project, repository string) ([]string, error) {
	var tags []harborTag
	if err := paginate(ctx, c, repositoryPath(project, repository, "tags"), nil, &tags); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(tags))
	for _, tag := range tags {
		names = append(names, tag.Name)
	}

	return names, nil
}

func (c *HarborClient) listArtifactTags(ctx context.Context, project, repository string) ([]string, error) {
	query := url.Values{"with_tag": []string{"true"}}

	var artifacts []harborArtifact
	if err := paginate(ctx, c, repositoryPath(project, repository, "artifacts"), query, &artifacts); err != nil {
		return nil, err
	}

	var names []string

	for _, artifact := range artifacts {
		for _, tag := range artifact.Tags {
			names = append(names, tag.Name)
		}
	}

	return names, nil
}

// repositoryPath builds a path below a repository. Harbor expects nested repository
// names to be escaped twice, so "team/api" becomes "team%252Fapi" on the wire.
func repositoryPath(project, repository, suffix string) string {
	return fmt.Sprintf(
		"/projects/%s/repositories/%s/%s",
		url.PathEscape(project),
		url.PathEscape(url.PathEscape(repository)),
		suffix,
	)
}

// paginate follows Harbor's page/page_size pagination until a short page is returned.
func paginate[T any](ctx context.Context, c *HarborClient, path string, query url.Values, out *[]T) error {
	for page := 1; ; page++ {
		values := url.Values{}
		for key, value := range query {
			values[key] = value
		}

		values.Set("page", strconv.Itoa(page))
		values.Set("page_size", strconv.Itoa(harborPageSize))

		var batch []T
		if err := c.getJSON(ctx, path, values, &batch); err != nil {
			return err
		}

		*out = append(*out, batch...)

		if len(batch) < harborPageSize {
			return nil
		}
	}
}

// resolve joins an API path onto the base URL. The path is taken as already escaped.
func (c *HarborClient) resolve(escapedPath string, query url.Values) string {
	resolved := *c.baseURL
	rawPath := strings.TrimSuffix(resolved.EscapedPath(), "/") + harborAPIPrefix + escapedPath

	if unescaped, err := url.PathUnescape(rawPath); err == nil {
		resolved.Path = unescaped
		resolved.RawPath = rawPath
	}

	resolved.RawQuery = query.Encode()

	return resolved.String()
}

func (c *HarborClient) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	endpoint := c.resolve(path, query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrCatalogRequest, endpoint, err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", meta.UserAgent())

	if c.config.Username != "" {
		req.SetBasicAuth(c.config.Username, c.config.Password)
	}

	clog := logrus.WithFields(logrus.Fields{
		"method": req.Method,
		"url":    endpoint,
	})

	resp, err := c.httpClient.Do(req)
	if err != nil {
		clog.WithError(err).Debug("Catalog request failed")

		return fmt.Errorf("%w: %s: %w", ErrCatalogRequest, endpoint, err)
	}
	defer resp.Body.Close()

	clog.WithField("status", resp.Status).Trace("Catalog request completed")

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))

		return fmt.Errorf(
			"%w: %s: %s: %s",
			ErrCatalogRequest,
			endpoint,
			resp.Status,
			strings.TrimSpace(string(body)),
		)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrCatalogDecode, endpoint, err)
	}

	return nil
}
