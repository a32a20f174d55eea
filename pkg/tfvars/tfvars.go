// Package tfvars derives a terraform.tfvars skeleton from Terraform variable declarations.
package tfvars

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"
)

// DefaultOutput is the file written when no output path is given.
const DefaultOutput = "terraform.tfvars"

// RequiredPlaceholder marks variables without a default.
const RequiredPlaceholder = `"<REQUIRED>"`

var (
	variablePattern = regexp.MustCompile(`variable\s+"([^"]+)"`)
	defaultPattern  = regexp.MustCompile(`default\s*=\s*(.*)`)
)

// Assignment is one generated tfvars line.
type Assignment struct {
	Name     string
	Value    string
	Required bool // No default was declared.
}

// String renders the assignment as tfvars syntax.
func (a Assignment) String() string {
	return a.Name + " = " + a.Value
}

// Parse scans variable blocks and returns one assignment per variable, in
// declaration order. A block without a default line yields RequiredPlaceholder
// when its closing brace is reached.
//
// Parameters:
//   - r: variables.tf content.
//
// Returns:
//   - []Assignment: Generated assignments.
//   - error: Non-nil if the input cannot be read.
func Parse(r io.Reader) ([]Assignment, error) {
	var (
		assignments []Assignment
		current     string
		inBlock     bool
	)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if matches := variablePattern.FindStringSubmatch(line); matches != nil {
			current = matches[1]
			inBlock = true

			continue
		}

		if !inBlock {
			continue
		}

		if matches := defaultPattern.FindStringSubmatch(line); matches != nil {
			assignments = append(assignments, Assignment{Name: current, Value: matches[1]})
			inBlock = false

			continue
		}

		if strings.HasPrefix(line, "}") {
			assignments = append(assignments, Assignment{Name: current, Value: RequiredPlaceholder, Required: true})
			inBlock = false
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read variables: %w", err)
	}

	return assignments, nil
}

// Write renders assignments one per line.
func Write(w io.Writer, assignments []Assignment) error {
	for _, assignment := range assignments {
		if _, err := fmt.Fprintln(w, assignment.String()); err != nil {
			return fmt.Errorf("failed to write tfvars: %w", err)
		}
	}

	return nil
}

// Generate reads input and writes the tfvars file to output.
//
// Parameters:
//   - input: Path to variables.tf.
//   - output: Destination; DefaultOutput when empty.
//
// Returns:
//   - []Assignment: Assignments written.
//   - error: Non-nil on I/O failure.
func Generate(input, output string) ([]Assignment, error) {
	if output == "" {
		output = DefaultOutput
	}

	in, err := os.Open(input)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer in.Close()

	assignments, err := Parse(in)
	if err != nil {
		return nil, err
	}

	out, err := os.Create(output)
	if err != nil {
		return nil, fmt.Errorf("failed to create tfvars file: %w", err)
	}

	if err := Write(out, assignments); err != nil {
		_ = out.Close()

		return nil, err
	}

	if err := out.Close(); err != nil {
		return nil, fmt.Errorf("failed to close tfvars file: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"path":      output,
		"variables": len(assignments),
	}).Info("tfvars file written")

	return assignments, nil
}
