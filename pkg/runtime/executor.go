package runtime

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/sirupsen/logrus"
)

// Executor runs external commands.
type Executor interface {
	// Run executes name with args, feeding stdin when non-nil, and returns stdout.
	Run(ctx context.Context, stdin io.Reader, name string, args ...string) ([]byte, error)
}

// osExecutor runs commands with os/exec.
type osExecutor struct{}

// NewOSExecutor returns an Executor backed by os/exec.
func NewOSExecutor() Executor {
	return osExecutor{}
}

// Run implements Executor. A non-zero exit status is returned as ErrCommandFailed
// carrying the trimmed stderr of the command.
func (osExecutor) Run(ctx context.Context, stdin io.Reader, name string, args ...string) ([]byte, error) {
	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = stdin
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logrus.WithFields(logrus.Fields{
		"command": name,
		"args":    strings.Join(args, " "),
	}).Trace("Running command")

	if err := cmd.Run(); err != nil {
		message := strings.TrimSpace(stderr.String())
		if message == "" {
			message = strings.TrimSpace(stdout.String())
		}

		return stdout.Bytes(), fmt.Errorf("%w: %s %s: %w: %s", ErrCommandFailed, name, firstArg(args), err, message)
	}

	return stdout.Bytes(), nil
}

// RunShell runs a command line through "sh -c".
//
// Parameters:
//   - ctx: Context for cancellation.
//   - executor: Executor to use; nil uses the OS.
//   - command: Command line, e.g. "az acr login --name myacr".
//
// Returns:
//   - error: Non-nil if the command exits unsuccessfully.
func RunShell(ctx context.Context, executor Executor, command string) error {
	if executor == nil {
		executor = NewOSExecutor()
	}

	out, err := executor.Run(ctx, nil, "sh", "-c", command)
	if err != nil {
		return err
	}

	logrus.WithField("output", strings.TrimSpace(string(out))).Debug("Shell command completed")

	return nil
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}

	return args[0]
}
