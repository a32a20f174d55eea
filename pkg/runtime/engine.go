package runtime

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	cerrdefs "github.com/containerd/errdefs"
	dockerConfigTypes "github.com/docker/cli/cli/config/types"
	dockerImage "github.com/docker/docker/api/types/image"
	dockerRegistry "github.com/docker/docker/api/types/registry"
	dockerClient "github.com/docker/docker/client"
	"github.com/docker/docker/pkg/jsonmessage"

	"github.com/nicholas-fedor/harborlift/pkg/registry/auth"
	"github.com/nicholas-fedor/harborlift/pkg/types"
)

// engineAPI is the subset of the Docker Engine API used by the Engine runtime.
type engineAPI interface {
	RegistryLogin(ctx context.Context, auth dockerRegistry.AuthConfig) (dockerRegistry.AuthenticateOKBody, error)
	ImagePull(ctx context.Context, ref string, options dockerImage.PullOptions) (io.ReadCloser, error)
	ImageTag(ctx context.Context, source, target string) error
	ImagePush(ctx context.Context, ref string, options dockerImage.PushOptions) (io.ReadCloser, error)
	ImageRemove(ctx context.Context, image string, options dockerImage.RemoveOptions) ([]dockerImage.DeleteResponse, error)
}

// Engine moves images through the Docker Engine API.
type Engine struct {
	api         engineAPI
	mu          sync.RWMutex
	credentials map[string]dockerConfigTypes.AuthConfig
}

var _ types.Runtime = (*Engine)(nil)

// NewEngineFromEnv creates an Engine runtime configured from DOCKER_HOST, DOCKER_TLS_VERIFY,
// DOCKER_CERT_PATH and DOCKER_API_VERSION, negotiating the API version with the daemon.
//
// Returns:
//   - *Engine: Runtime instance.
//   - error: Non-nil if the client cannot be created.
func NewEngineFromEnv() (*Engine, error) {
	cli, err := dockerClient.NewClientWithOpts(
		dockerClient.FromEnv,
		dockerClient.WithAPIVersionNegotiation(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errEngineClientFailed, err)
	}

	logrus.WithField("host", cli.DaemonHost()).Debug("Initialized Docker Engine client")

	return NewEngine(cli), nil
}

// NewEngine wraps an existing Docker API client.
func NewEngine(api dockerClient.APIClient) *Engine {
	return &Engine{
		api:         api,
		credentials: make(map[string]dockerConfigTypes.AuthConfig),
	}
}

// Name returns the backend name.
func (e *Engine) Name() string {
	return KindEngine
}

// Login resolves credentials for a registry and, when explicit credentials are
// configured, validates them with the daemon. Registries without explicit credentials
// use what the Docker config file or its credential helper holds for them.
func (e *Engine) Login(ctx context.Context, cfg types.RegistryConfig) error {
	creds, err := auth.Credentials(cfg)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrLoginFailed, cfg.Host, err)
	}

	clog := logrus.WithField("registry", cfg.Host)

	if cfg.HasCredentials() {
		response, err := e.api.RegistryLogin(ctx, dockerRegistry.AuthConfig{
			Username:      creds.Username,
			Password:      creds.Password,
			ServerAddress: cfg.Host,
		})
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrLoginFailed, cfg.Host, err)
		}

		if response.IdentityToken != "" {
			creds.IdentityToken = response.IdentityToken
		}

		clog.WithField("status", response.Status).Info("Logged in to registry")
	} else {
		clog.Debug("No credentials configured, using Docker config")
	}

	e.mu.Lock()
	e.credentials[cfg.Host] = creds
	e.mu.Unlock()

	return nil
}

// Pull pulls an image and drains the progress stream, surfacing errors embedded in it.
func (e *Engine) Pull(ctx context.Context, ref types.ImageRef) error {
	registryAuth, err := e.encodedAuth(ref.Host)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrPullFailed, ref, err)
	}

	response, err := e.api.ImagePull(ctx, ref.String(), dockerImage.PullOptions{RegistryAuth: registryAuth})
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrPullFailed, ref, err)
	}
	defer response.Close()

	if err := drainProgress(response); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrPullFailed, ref, err)
	}

	return nil
}

// Tag adds the destination reference to a pulled image.
func (e *Engine) Tag(ctx context.Context, src, dst types.ImageRef) error {
	if err := e.api.ImageTag(ctx, src.String(), dst.String()); err != nil {
		return fmt.Errorf("%w: %s -> %s: %w", ErrTagFailed, src, dst, err)
	}

	return nil
}

// Push pushes an image and drains the progress stream, surfacing errors embedded in it.
func (e *Engine) Push(ctx context.Context, ref types.ImageRef) error {
	registryAuth, err := e.encodedAuth(ref.Host)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrPushFailed, ref, err)
	}

	response, err := e.api.ImagePush(ctx, ref.String(), dockerImage.PushOptions{RegistryAuth: registryAuth})
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrPushFailed, ref, err)
	}
	defer response.Close()

	if err := drainProgress(response); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrPushFailed, ref, err)
	}

	return nil
}

// Remove untags every reference. References already gone are not an error.
func (e *Engine) Remove(ctx context.Context, refs ...types.ImageRef) error {
	var failed []string

	for _, ref := range refs {
		clog := logrus.WithField("image", ref.String())

		items, err := e.api.ImageRemove(ctx, ref.String(), dockerImage.RemoveOptions{
			Force:         true,
			PruneChildren: true,
		})
		if err != nil {
			if cerrdefs.IsNotFound(err) {
				clog.Debug("Image not found, no removal needed")

				continue
			}

			clog.WithError(err).Debug("Failed to remove image")
			failed = append(failed, ref.String()+": "+err.Error())

			continue
		}

		clog.WithField("deleted", len(items)).Debug("Removed image")
	}

	if len(failed) > 0 {
		return fmt.Errorf("%w: %s", ErrRemoveFailed, strings.Join(failed, "; "))
	}

	return nil
}

func (e *Engine) encodedAuth(host string) (string, error) {
	e.mu.RLock()
	creds, found := e.credentials[host]
	e.mu.RUnlock()

	if !found {
		return auth.EncodeAuth(dockerConfigTypes.AuthConfig{})
	}

	return auth.EncodeAuth(creds)
}

// drainProgress consumes a JSON progress stream and returns the first error it reports.
func drainProgress(stream io.Reader) error {
	if err := jsonmessage.DisplayJSONMessagesStream(stream, io.Discard, 0, false, nil); err != nil {
		return fmt.Errorf("progress stream reported failure: %w", err)
	}

	return nil
}
