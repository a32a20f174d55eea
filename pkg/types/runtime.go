package types

import "context"

// Runtime moves image bytes between registries.
//
// Implementations wrap a container engine CLI, the Docker Engine API or a
// daemonless registry client. Every method blocks until the step finished.
type Runtime interface {
	Name() string                                        // Backend name for logging.
	Login(ctx context.Context, cfg RegistryConfig) error // Authenticate against a registry.
	Pull(ctx context.Context, ref ImageRef) error        // Fetch an image.
	Tag(ctx context.Context, src, dst ImageRef) error    // Alias a fetched image.
	Push(ctx context.Context, ref ImageRef) error        // Upload an aliased image.
	Remove(ctx context.Context, refs ...ImageRef) error  // Drop local copies.
}
