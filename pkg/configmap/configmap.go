// Package configmap compares the data keys of Kubernetes ConfigMaps across environments.
package configmap

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	corev1 "k8s.io/api/core/v1"
	"sigs.k8s.io/yaml"

	"github.com/nicholas-fedor/harborlift/internal/util"
)

// ErrKeysDiffer indicates two ConfigMaps do not define the same keys.
var ErrKeysDiffer = errors.New("configmap key differences detected")

// Diff lists the keys each ConfigMap lacks relative to the other.
type Diff struct {
	FileA      string
	FileB      string
	MissingInA []string // Keys present in FileB only.
	MissingInB []string // Keys present in FileA only.
}

// Equal reports whether both ConfigMaps define the same keys.
func (d Diff) Equal() bool {
	return len(d.MissingInA) == 0 && len(d.MissingInB) == 0
}

// Err returns ErrKeysDiffer with every missing key when the key sets differ.
func (d Diff) Err() error {
	if d.Equal() {
		return nil
	}

	differences := make([]string, 0, len(d.MissingInA)+len(d.MissingInB))
	for _, key := range d.MissingInB {
		differences = append(differences, fmt.Sprintf("%s (missing in %s)", key, d.FileB))
	}

	for _, key := range d.MissingInA {
		differences = append(differences, fmt.Sprintf("%s (missing in %s)", key, d.FileA))
	}

	return fmt.Errorf("%w: %s", ErrKeysDiffer, strings.Join(differences, ", "))
}

// Write prints a human-readable summary of the diff.
func (d Diff) Write(w io.Writer) {
	if d.Equal() {
		fmt.Fprintln(w, "Keys match between the two configmaps.")

		return
	}

	fmt.Fprintln(w, "Key differences detected:")
	writeMissing(w, d.FileA, d.FileB, d.MissingInB)
	writeMissing(w, d.FileB, d.FileA, d.MissingInA)
}

func writeMissing(w io.Writer, present, absent string, keys []string) {
	if len(keys) == 0 {
		return
	}

	fmt.Fprintf(w, "  - Keys present in %s but missing in %s:\n", present, absent)

	for _, key := range keys {
		fmt.Fprintf(w, "    * %s\n", key)
	}
}

// Read parses a ConfigMap manifest.
//
// Parameters:
//   - path: YAML file holding a single ConfigMap.
//
// Returns:
//   - *corev1.ConfigMap: Parsed ConfigMap.
//   - error: Non-nil if the file cannot be read or parsed.
func Read(path string) (*corev1.ConfigMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	configMap := &corev1.ConfigMap{}
	if err := yaml.Unmarshal(data, configMap); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return configMap, nil
}

// CompareFiles compares the data keys of two ConfigMap manifests. Binary data
// keys take part in the comparison as well.
//
// Parameters:
//   - fileA: First manifest.
//   - fileB: Second manifest.
//
// Returns:
//   - Diff: Missing keys on each side, sorted.
//   - error: Non-nil if either manifest cannot be read.
func CompareFiles(fileA, fileB string) (Diff, error) {
	configMapA, err := Read(fileA)
	if err != nil {
		return Diff{}, err
	}

	configMapB, err := Read(fileB)
	if err != nil {
		return Diff{}, err
	}

	keysA := keys(configMapA)
	keysB := keys(configMapB)

	return Diff{
		FileA:      fileA,
		FileB:      fileB,
		MissingInA: util.SliceSubtract(keysB, keysA),
		MissingInB: util.SliceSubtract(keysA, keysB),
	}, nil
}

func keys(configMap *corev1.ConfigMap) []string {
	all := make(map[string]struct{}, len(configMap.Data)+len(configMap.BinaryData))
	for key := range configMap.Data {
		all[key] = struct{}{}
	}

	for key := range configMap.BinaryData {
		all[key] = struct{}{}
	}

	return util.SortedKeys(all)
}
