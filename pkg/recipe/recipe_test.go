package recipe

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dump = `# $SRC_URI [3 operations]
#   set /layers/meta-g2v2/recipes-bsp/u-boot/u-boot-fslc_%.bbappend:4
SRC_URI="git://github.com/Freescale/u-boot-fslc.git;branch=2023.04+fslc file://0001-G2V2-Provisioning-SD.patch file://fw_env.config"
export MACHINE="imx8mm-g2v2"
PN="u-boot-fslc"
do_compile() {
    oe_runmake CC="${CC}"
    PN="from-shell-function"
export MACHINE="unindented-in-function"
}
python do_fetch() {
	SRC_URI = "from-python-function"
}
EMPTY=""
	EMPTY="indented"
`

type fakeExecutor struct {
	out  string
	err  error
	args []string
}

func (f *fakeExecutor) Run(_ context.Context, _ io.Reader, name string, args ...string) ([]byte, error) {
	f.args = append([]string{name}, args...)

	return []byte(f.out), f.err
}

func noFallback(string) (string, bool) { return "", false }

func parseDump(t *testing.T, content string) *Variables {
	t.Helper()

	vars, err := Parse(strings.NewReader(content))
	require.NoError(t, err)

	return vars.WithFallback(noFallback)
}

func TestParse(t *testing.T) {
	vars := parseDump(t, dump)

	assert.Equal(t, 4, vars.Len())
	assert.Equal(t, "imx8mm-g2v2", vars.Get("MACHINE"))
	assert.Equal(t, "u-boot-fslc", vars.Get("PN"))
	assert.Contains(t, vars.Get("SRC_URI"), "file://fw_env.config")
	assert.Empty(t, vars.Get("EMPTY"))
	assert.Empty(t, vars.Get("oe_runmake CC"))
	assert.NotContains(t, vars.Get("SRC_URI"), "from-python-function")
}

func TestVariables_EnvironmentFallback(t *testing.T) {
	t.Setenv("MACHINE", "qemux86-64")

	vars, err := Parse(strings.NewReader(`PN="busybox"`))
	require.NoError(t, err)

	assert.Equal(t, "qemux86-64", vars.Get("MACHINE"))
	assert.Equal(t, "busybox", vars.Get("PN"))
}

func TestLocalPatches(t *testing.T) {
	patches := LocalPatches("git://host/repo.git file://a.patch  https://x/y.tar.gz\tfile://b.cfg")

	assert.Equal(t, []string{"file://a.patch", "file://b.cfg"}, patches)
	assert.Empty(t, LocalPatches(""))
}

func TestSourceURIHook_PatchPresent(t *testing.T) {
	diagnostics := SourceURIHook(parseDump(t, dump), "")

	assert.Equal(t, []Diagnostic{
		{Level: LevelWarn, Message: "MACHINE is: imx8mm-g2v2"},
		{Level: LevelWarn, Message: "SRC_URI is: git://github.com/Freescale/u-boot-fslc.git;branch=2023.04+fslc file://0001-G2V2-Provisioning-SD.patch file://fw_env.config"},
		{Level: LevelNote, Message: "Patches being applied:"},
		{Level: LevelNote, Message: "  --> file://0001-G2V2-Provisioning-SD.patch"},
		{Level: LevelNote, Message: "  --> file://fw_env.config"},
	}, diagnostics)
}

func TestSourceURIHook_PatchAbsent(t *testing.T) {
	vars := parseDump(t, `SRC_URI="git://host/repo.git"`+"\n"+`MACHINE="imx8mm-g2v2"`)

	diagnostics := SourceURIHook(vars, "")

	require.Len(t, diagnostics, 4)
	assert.Equal(t, Diagnostic{
		Level:   LevelWarn,
		Message: "G2V2 provisioning patch not detected in SRC_URI!",
	}, diagnostics[3])
}

func TestSourceURIHook_CustomPatch(t *testing.T) {
	vars := parseDump(t, dump)

	diagnostics := SourceURIHook(vars, "0002-custom.patch")

	assert.Equal(t, "0002-custom.patch patch not detected in SRC_URI!", diagnostics[len(diagnostics)-1].Message)
}

func TestPackageGateHook(t *testing.T) {
	vars := parseDump(t, dump)

	assert.Equal(t, []Diagnostic{
		{Level: LevelWarn, Message: "We're inside u-boot-fslc!"},
		{Level: LevelWarn, Message: "MACHINE = imx8mm-g2v2"},
		{Level: LevelWarn, Message: "SRC_URI = " + vars.Get("SRC_URI")},
	}, PackageGateHook(vars, ""))

	assert.Empty(t, PackageGateHook(vars, "linux-fslc"))
}

func TestEmit(t *testing.T) {
	logger, hook := logtest.NewNullLogger()

	Emit(logger, []Diagnostic{
		{Level: LevelWarn, Message: "careful"},
		{Level: LevelNote, Message: "fyi"},
	})

	require.Len(t, hook.AllEntries(), 2)
	assert.Equal(t, logrus.WarnLevel, hook.AllEntries()[0].Level)
	assert.Equal(t, "careful", hook.AllEntries()[0].Message)
	assert.Equal(t, logrus.InfoLevel, hook.AllEntries()[1].Level)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "env.txt")
	require.NoError(t, os.WriteFile(path, []byte(dump), 0o644))

	vars, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "u-boot-fslc", vars.Get("PN"))

	_, err = LoadFile(filepath.Join(t.TempDir(), "absent"))
	require.Error(t, err)
}

func TestLoadFromBitbake(t *testing.T) {
	executor := &fakeExecutor{out: dump}

	vars, err := LoadFromBitbake(context.Background(), executor, "u-boot-fslc")
	require.NoError(t, err)

	assert.Equal(t, []string{"bitbake", "-e", "u-boot-fslc"}, executor.args)
	assert.Equal(t, "imx8mm-g2v2", vars.Get("MACHINE"))

	_, err = LoadFromBitbake(context.Background(), &fakeExecutor{err: errors.New("exit status 1")}, "missing")
	require.ErrorContains(t, err, "missing")
}
