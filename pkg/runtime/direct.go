package runtime

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"sync"

	"github.com/google/go-containerregistry/pkg/name"
	"github.com/google/go-containerregistry/pkg/v1/remote"
	"github.com/sirupsen/logrus"

	v1 "github.com/google/go-containerregistry/pkg/v1"

	"github.com/nicholas-fedor/harborlift/pkg/registry/auth"
	"github.com/nicholas-fedor/harborlift/pkg/types"
)

// registrySettings holds per-registry transport flags learned at login.
type registrySettings struct {
	insecure      bool
	skipTLSVerify bool
}

// Direct copies images registry to registry with go-containerregistry.
//
// Pull resolves the remote descriptor, Tag aliases it, Push writes it to the
// destination and Remove forgets it. Layers are streamed between registries and
// never stored locally; multi-platform indexes are copied whole.
type Direct struct {
	keychain *auth.Keychain
	mu       sync.RWMutex
	settings map[string]registrySettings
	images   map[string]remote.Taggable
}

var _ types.Runtime = (*Direct)(nil)

// NewDirect creates a Direct runtime. Registries without explicit credentials
// resolve through the Docker config file and credential helpers.
func NewDirect() *Direct {
	return &Direct{
		keychain: auth.NewKeychain(),
		settings: make(map[string]registrySettings),
		images:   make(map[string]remote.Taggable),
	}
}

// Name returns the backend name.
func (d *Direct) Name() string {
	return KindDirect
}

// Login records credentials and transport settings for a registry. Credentials are
// verified lazily on the first request.
func (d *Direct) Login(_ context.Context, cfg types.RegistryConfig) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.keychain.Add(cfg)
	d.settings[cfg.Host] = registrySettings{
		insecure:      cfg.Insecure,
		skipTLSVerify: cfg.SkipTLSVerify,
	}

	logrus.WithFields(logrus.Fields{
		"registry":    cfg.Host,
		"credentials": cfg.HasCredentials(),
	}).Debug("Registered registry for direct copy")

	return nil
}

// Pull resolves the source image or index and keeps a handle to it.
func (d *Direct) Pull(ctx context.Context, ref types.ImageRef) error {
	parsed, options, err := d.prepare(ctx, ref)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrPullFailed, ref, err)
	}

	descriptor, err := remote.Get(parsed, options...)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrPullFailed, ref, err)
	}

	var taggable remote.Taggable

	if descriptor.MediaType.IsIndex() {
		taggable, err = descriptor.ImageIndex()
	} else {
		taggable, err = descriptor.Image()
	}

	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrPullFailed, ref, err)
	}

	d.mu.Lock()
	d.images[ref.String()] = taggable
	d.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"image":      ref.String(),
		"media_type": descriptor.MediaType,
		"digest":     descriptor.Digest.String(),
	}).Debug("Resolved source image")

	return nil
}

// Tag aliases a pulled image under the destination reference.
func (d *Direct) Tag(_ context.Context, src, dst types.ImageRef) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	taggable, found := d.images[src.String()]
	if !found {
		return fmt.Errorf("%w: %s -> %s: %w", ErrTagFailed, src, dst, errImageNotPulled)
	}

	d.images[dst.String()] = taggable

	return nil
}

// Push writes an aliased image or index to its registry.
func (d *Direct) Push(ctx context.Context, ref types.ImageRef) error {
	d.mu.RLock()
	taggable, found := d.images[ref.String()]
	d.mu.RUnlock()

	if !found {
		return fmt.Errorf("%w: %s: %w", ErrPushFailed, ref, errImageNotPulled)
	}

	parsed, options, err := d.prepare(ctx, ref)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrPushFailed, ref, err)
	}

	switch artifact := taggable.(type) {
	case v1.ImageIndex:
		err = remote.WriteIndex(parsed, artifact, options...)
	case v1.Image:
		err = remote.Write(parsed, artifact, options...)
	default:
		err = fmt.Errorf("unsupported artifact %T", artifact)
	}

	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrPushFailed, ref, err)
	}

	return nil
}

// Remove forgets image handles. It never fails.
func (d *Direct) Remove(_ context.Context, refs ...types.ImageRef) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, ref := range refs {
		delete(d.images, ref.String())
	}

	return nil
}

// prepare parses a reference and assembles remote options for its registry.
func (d *Direct) prepare(ctx context.Context, ref types.ImageRef) (name.Reference, []remote.Option, error) {
	d.mu.RLock()
	settings := d.settings[ref.Host]
	d.mu.RUnlock()

	var nameOptions []name.Option
	if settings.insecure {
		nameOptions = append(nameOptions, name.Insecure)
	}

	parsed, err := name.ParseReference(ref.String(), nameOptions...)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid reference: %w", err)
	}

	options := []remote.Option{
		remote.WithContext(ctx),
		remote.WithAuthFromKeychain(d.keychain),
	}

	if settings.skipTLSVerify {
		transport := remote.DefaultTransport.(*http.Transport).Clone()
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // opt-in per registry

		options = append(options, remote.WithTransport(transport))
	}

	return parsed, options, nil
}
