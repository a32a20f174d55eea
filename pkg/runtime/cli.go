package runtime

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/nicholas-fedor/harborlift/pkg/types"
)

// CLI drives an external container engine binary.
//
// The binary must accept the docker command grammar: docker itself, podman, or
// nerdctl all do. Calls are synchronous and fail with the command's stderr.
type CLI struct {
	binary   string
	executor Executor
}

var _ types.Runtime = (*CLI)(nil)

// NewCLI creates a CLI runtime.
//
// Parameters:
//   - binary: Engine binary; empty uses DefaultBinary.
//   - executor: Command executor; nil uses the OS.
//
// Returns:
//   - *CLI: Runtime instance.
func NewCLI(binary string, executor Executor) *CLI {
	if binary == "" {
		binary = DefaultBinary
	}

	if executor == nil {
		executor = NewOSExecutor()
	}

	return &CLI{binary: binary, executor: executor}
}

// Name returns the backend name.
func (c *CLI) Name() string {
	return KindCLI + "/" + c.binary
}

// Login runs "<binary> login HOST -u USER --password-stdin" with the password piped on stdin.
// Registries without credentials are left untouched.
func (c *CLI) Login(ctx context.Context, cfg types.RegistryConfig) error {
	clog := logrus.WithFields(logrus.Fields{
		"registry": cfg.Host,
		"runtime":  c.Name(),
	})

	if !cfg.HasCredentials() {
		clog.Debug("No credentials configured, relying on existing session")

		return nil
	}

	_, err := c.executor.Run(
		ctx,
		strings.NewReader(cfg.Password),
		c.binary,
		"login", cfg.Host, "-u", cfg.Username, "--password-stdin",
	)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrLoginFailed, cfg.Host, err)
	}

	clog.WithField("username", cfg.Username).Info("Logged in to registry")

	return nil
}

// Pull runs "<binary> pull REF".
func (c *CLI) Pull(ctx context.Context, ref types.ImageRef) error {
	if _, err := c.executor.Run(ctx, nil, c.binary, "pull", ref.String()); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrPullFailed, ref, err)
	}

	return nil
}

// Tag runs "<binary> tag SRC DST".
func (c *CLI) Tag(ctx context.Context, src, dst types.ImageRef) error {
	if _, err := c.executor.Run(ctx, nil, c.binary, "tag", src.String(), dst.String()); err != nil {
		return fmt.Errorf("%w: %s -> %s: %w", ErrTagFailed, src, dst, err)
	}

	return nil
}

// Push runs "<binary> push REF".
func (c *CLI) Push(ctx context.Context, ref types.ImageRef) error {
	if _, err := c.executor.Run(ctx, nil, c.binary, "push", ref.String()); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrPushFailed, ref, err)
	}

	return nil
}

// Remove runs "<binary> rmi REF..." for all references in a single call.
func (c *CLI) Remove(ctx context.Context, refs ...types.ImageRef) error {
	if len(refs) == 0 {
		return nil
	}

	args := make([]string, 0, len(refs)+1)
	args = append(args, "rmi")

	for _, ref := range refs {
		args = append(args, ref.String())
	}

	if _, err := c.executor.Run(ctx, nil, c.binary, args...); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrRemoveFailed, strings.Join(args[1:], " "), err)
	}

	return nil
}
