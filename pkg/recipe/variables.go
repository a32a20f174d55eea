package recipe

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/nicholas-fedor/harborlift/pkg/runtime"
)

// Variables holds build variables with an optional fallback lookup.
type Variables struct {
	values   map[string]string
	fallback func(string) (string, bool)
}

// NewVariables wraps values. Missing keys are looked up in the process environment.
func NewVariables(values map[string]string) *Variables {
	if values == nil {
		values = map[string]string{}
	}

	return &Variables{values: values, fallback: os.LookupEnv}
}

// WithFallback replaces the lookup used for keys missing from the dump.
func (v *Variables) WithFallback(fallback func(string) (string, bool)) *Variables {
	v.fallback = fallback

	return v
}

// Get returns the value of name, or an empty string when it is undefined.
func (v *Variables) Get(name string) string {
	if value, ok := v.values[name]; ok {
		return value
	}

	if v.fallback != nil {
		if value, ok := v.fallback(name); ok {
			return value
		}
	}

	return ""
}

// Len returns the number of variables parsed from the dump.
func (v *Variables) Len() int {
	return len(v.values)
}

// Parse reads `bitbake -e` output. Lines of the form VAR="value" and
// export VAR="value" are kept; comments, functions and other lines are skipped.
//
// Parameters:
//   - r: Dump content.
//
// Returns:
//   - *Variables: Parsed variables with the environment as fallback.
//   - error: Non-nil if the input cannot be read.
func Parse(r io.Reader) (*Variables, error) {
	values := map[string]string{}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	inFunction := false

	for scanner.Scan() {
		line := scanner.Text()

		// Function bodies may assign shell variables that shadow build variables.
		if inFunction {
			inFunction = strings.TrimRight(line, " \t") != "}"

			continue
		}

		if isFunctionStart(line) {
			inFunction = true

			continue
		}

		name, value, ok := parseLine(line)
		if !ok {
			continue
		}

		values[name] = value
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read build variables: %w", err)
	}

	return NewVariables(values), nil
}

// isFunctionStart matches the header of a shell or python function in a bitbake -e dump.
func isFunctionStart(line string) bool {
	line = strings.TrimSpace(line)

	return strings.HasSuffix(line, "{") && strings.Contains(line, "()")
}

// parseLine reads a top-level NAME="value" assignment. Indented lines are never top level.
func parseLine(line string) (string, string, bool) {
	if strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t") {
		return "", "", false
	}

	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", "", false
	}

	line = strings.TrimPrefix(line, "export ")

	name, value, found := strings.Cut(line, "=")
	if !found || !isVariableName(name) {
		return "", "", false
	}

	return name, unquote(value), true
}

func isVariableName(name string) bool {
	if name == "" {
		return false
	}

	for _, r := range name {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9':
		case r == '_', r == '-', r == ':', r == '.', r == '/', r == '+':
		default:
			return false
		}
	}

	return true
}

func unquote(value string) string {
	if len(value) >= 2 {
		first, last := value[0], value[len(value)-1]
		if (first == '"' || first == '\'') && first == last {
			return value[1 : len(value)-1]
		}
	}

	return value
}

// LoadFile parses a saved `bitbake -e` dump.
func LoadFile(path string) (*Variables, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open build variables: %w", err)
	}
	defer file.Close()

	return Parse(file)
}

// LoadFromBitbake runs `bitbake -e <recipe>` and parses its output.
//
// Parameters:
//   - ctx: Context for the bitbake process.
//   - executor: Command executor; nil uses the OS.
//   - recipe: Recipe name.
//
// Returns:
//   - *Variables: Parsed variables.
//   - error: Non-nil if bitbake fails.
func LoadFromBitbake(ctx context.Context, executor runtime.Executor, recipe string) (*Variables, error) {
	if executor == nil {
		executor = runtime.NewOSExecutor()
	}

	logrus.WithField("recipe", recipe).Debug("Reading build variables from bitbake")

	out, err := executor.Run(ctx, nil, "bitbake", "-e", recipe)
	if err != nil {
		return nil, fmt.Errorf("failed to read build variables for %s: %w", recipe, err)
	}

	return Parse(bytes.NewReader(out))
}
