package configmap_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nicholas-fedor/harborlift/pkg/configmap"
)

func writeConfigMap(t *testing.T, path string, keys ...string) {
	t.Helper()

	content := "apiVersion: v1\nkind: ConfigMap\nmetadata:\n  name: app-config\ndata:\n"
	for _, key := range keys {
		content += "  " + key + ": value\n"
	}

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestCompareFiles_Match(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.yaml")
	b := filepath.Join(dir, "b.yaml")
	writeConfigMap(t, a, "LOG_LEVEL", "DB_HOST")
	writeConfigMap(t, b, "DB_HOST", "LOG_LEVEL")

	diff, err := configmap.CompareFiles(a, b)
	require.NoError(t, err)
	assert.True(t, diff.Equal())
	assert.NoError(t, diff.Err())

	var out bytes.Buffer
	diff.Write(&out)
	assert.Equal(t, "Keys match between the two configmaps.\n", out.String())
}

func TestCompareFiles_Differ(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.yaml")
	b := filepath.Join(dir, "b.yaml")
	writeConfigMap(t, a, "LOG_LEVEL", "DB_HOST", "CACHE_TTL")
	writeConfigMap(t, b, "LOG_LEVEL", "FEATURE_X")

	diff, err := configmap.CompareFiles(a, b)
	require.NoError(t, err)

	assert.Equal(t, []string{"CACHE_TTL", "DB_HOST"}, diff.MissingInB)
	assert.Equal(t, []string{"FEATURE_X"}, diff.MissingInA)

	err = diff.Err()
	require.ErrorIs(t, err, configmap.ErrKeysDiffer)
	assert.Contains(t, err.Error(), "CACHE_TTL (missing in "+b+")")
	assert.Contains(t, err.Error(), "FEATURE_X (missing in "+a+")")

	var out bytes.Buffer
	diff.Write(&out)
	assert.Contains(t, out.String(), "Keys present in "+a+" but missing in "+b+":\n    * CACHE_TTL\n    * DB_HOST\n")
	assert.Contains(t, out.String(), "Keys present in "+b+" but missing in "+a+":\n    * FEATURE_X\n")
}

func TestCompareFiles_BinaryData(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.yaml")
	b := filepath.Join(dir, "b.yaml")
	writeConfigMap(t, a, "LOG_LEVEL")
	require.NoError(t, os.WriteFile(b, []byte(
		"apiVersion: v1\nkind: ConfigMap\ndata:\n  LOG_LEVEL: debug\nbinaryData:\n  cert.pem: aGVsbG8=\n"), 0o644))

	diff, err := configmap.CompareFiles(a, b)
	require.NoError(t, err)
	assert.Equal(t, []string{"cert.pem"}, diff.MissingInA)
}

func TestCompareFiles_Unreadable(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.yaml")
	writeConfigMap(t, a, "X")

	_, err := configmap.CompareFiles(a, filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)

	broken := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(broken, []byte("data: [unclosed"), 0o644))

	_, err = configmap.CompareFiles(a, broken)
	require.Error(t, err)
}

func TestCompareFolders(t *testing.T) {
	root := t.TempDir()
	dev := filepath.Join(root, "dev")
	prod := filepath.Join(root, "prod")

	writeConfigMap(t, filepath.Join(dev, "api", configmap.FileName), "A", "B")
	writeConfigMap(t, filepath.Join(prod, "api", configmap.FileName), "A", "B")
	writeConfigMap(t, filepath.Join(dev, "web", configmap.FileName), "A", "B")
	writeConfigMap(t, filepath.Join(prod, "web", configmap.FileName), "A")
	writeConfigMap(t, filepath.Join(dev, "worker", configmap.FileName), "A")
	require.NoError(t, os.MkdirAll(filepath.Join(dev, "empty"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dev, "README.md"), []byte("docs"), 0o644))

	report, err := configmap.CompareFolders(dev, prod)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Matches)
	assert.Equal(t, 1, report.Differences)
	assert.Equal(t, 2, report.Missing)
	require.ErrorIs(t, report.Err(), configmap.ErrFoldersDiffer)

	require.Len(t, report.Apps, 4)
	assert.Equal(t, configmap.AppResult{
		App: "empty", Status: configmap.StatusMissing, Detail: "missing in both " + dev + " and " + prod,
	}, report.Apps[1])
	assert.Equal(t, configmap.StatusDiffer, report.Apps[2].Status)
	assert.Equal(t, "missing in "+prod, report.Apps[3].Detail)

	var out bytes.Buffer
	report.Write(&out)
	assert.Contains(t, out.String(), "ConfigMap keys match for app 'api'")
	assert.Contains(t, out.String(), "Summary: 1 matches, 1 differences, 2 missing")
}

func TestCompareFolders_AllMatch(t *testing.T) {
	root := t.TempDir()
	writeConfigMap(t, filepath.Join(root, "a", "api", configmap.FileName), "A")
	writeConfigMap(t, filepath.Join(root, "b", "api", configmap.FileName), "A")

	report, err := configmap.CompareFolders(filepath.Join(root, "a"), filepath.Join(root, "b"))
	require.NoError(t, err)
	assert.NoError(t, report.Err())
}

func TestCompareFolders_MissingEnvironment(t *testing.T) {
	_, err := configmap.CompareFolders(filepath.Join(t.TempDir(), "absent"), t.TempDir())
	require.Error(t, err)
}
