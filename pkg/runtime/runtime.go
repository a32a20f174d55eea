package runtime

import (
	"fmt"

	"github.com/nicholas-fedor/harborlift/pkg/types"
)

// Runtime kinds selectable with --runtime.
const (
	KindCLI    = "cli"
	KindEngine = "engine"
	KindDirect = "direct"
)

// DefaultBinary is the container engine binary driven by the CLI runtime.
const DefaultBinary = "docker"

// Options selects and configures a runtime backend.
type Options struct {
	Kind     string   // One of KindCLI, KindEngine or KindDirect.
	Binary   string   // Engine binary for KindCLI.
	Executor Executor // Command executor for KindCLI; nil uses the OS.
}

// New creates the runtime backend selected by opts.Kind.
//
// Parameters:
//   - opts: Backend selection and settings.
//
// Returns:
//   - types.Runtime: Ready backend.
//   - error: Non-nil for unknown kinds or when the engine client cannot be created.
func New(opts Options) (types.Runtime, error) {
	switch opts.Kind {
	case KindCLI, "":
		return NewCLI(opts.Binary, opts.Executor), nil
	case KindEngine:
		return NewEngineFromEnv()
	case KindDirect:
		return NewDirect(), nil
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownRuntime, opts.Kind)
	}
}
