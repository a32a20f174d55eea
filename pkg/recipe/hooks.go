package recipe

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

const (
	// DefaultExpectedPatch is the patch SourceURIHook looks for.
	DefaultExpectedPatch = "0001-G2V2-Provisioning-SD.patch"
	// DefaultPackage is the package PackageGateHook reports on.
	DefaultPackage = "u-boot-fslc"

	localFilePrefix = "file://"
	// defaultPatchLabel names DefaultExpectedPatch in the missing-patch warning.
	defaultPatchLabel = "G2V2 provisioning"
)

// Level is the severity of a diagnostic.
type Level string

// Diagnostic levels mirroring bbwarn and bbnote.
const (
	LevelWarn Level = "warn"
	LevelNote Level = "note"
)

// Diagnostic is a message produced by a hook.
type Diagnostic struct {
	Level   Level
	Message string
}

func warn(format string, args ...any) Diagnostic {
	return Diagnostic{Level: LevelWarn, Message: fmt.Sprintf(format, args...)}
}

func note(format string, args ...any) Diagnostic {
	return Diagnostic{Level: LevelNote, Message: fmt.Sprintf(format, args...)}
}

// LocalPatches returns the file:// entries of a whitespace-separated SRC_URI.
func LocalPatches(srcURI string) []string {
	var patches []string

	for _, uri := range strings.Fields(srcURI) {
		if strings.HasPrefix(uri, localFilePrefix) {
			patches = append(patches, uri)
		}
	}

	return patches
}

// SourceURIHook reports MACHINE, SRC_URI and the local patches, and warns
// when expectedPatch does not occur in SRC_URI.
//
// Parameters:
//   - vars: Build variables.
//   - expectedPatch: Literal patch name; DefaultExpectedPatch when empty.
//
// Returns:
//   - []Diagnostic: Messages in emission order.
func SourceURIHook(vars *Variables, expectedPatch string) []Diagnostic {
	if expectedPatch == "" {
		expectedPatch = DefaultExpectedPatch
	}

	srcURI := vars.Get("SRC_URI")

	diagnostics := []Diagnostic{
		warn("MACHINE is: %s", vars.Get("MACHINE")),
		warn("SRC_URI is: %s", srcURI),
		note("Patches being applied:"),
	}

	for _, patch := range LocalPatches(srcURI) {
		diagnostics = append(diagnostics, note("  --> %s", patch))
	}

	if !strings.Contains(srcURI, expectedPatch) {
		label := expectedPatch
		if expectedPatch == DefaultExpectedPatch {
			label = defaultPatchLabel
		}

		diagnostics = append(diagnostics, warn("%s patch not detected in SRC_URI!", label))
	}

	return diagnostics
}

// PackageGateHook reports MACHINE and SRC_URI when PN equals pkg.
//
// Parameters:
//   - vars: Build variables.
//   - pkg: Package name; DefaultPackage when empty.
//
// Returns:
//   - []Diagnostic: Messages, empty for other packages.
func PackageGateHook(vars *Variables, pkg string) []Diagnostic {
	if pkg == "" {
		pkg = DefaultPackage
	}

	pn := vars.Get("PN")
	if pn != pkg {
		return nil
	}

	return []Diagnostic{
		warn("We're inside %s!", pn),
		warn("MACHINE = %s", vars.Get("MACHINE")),
		warn("SRC_URI = %s", vars.Get("SRC_URI")),
	}
}

// Emit logs diagnostics, warnings at warn level and notes at info level.
func Emit(log logrus.FieldLogger, diagnostics []Diagnostic) {
	for _, diagnostic := range diagnostics {
		switch diagnostic.Level {
		case LevelWarn:
			log.Warn(diagnostic.Message)
		case LevelNote:
			log.Info(diagnostic.Message)
		}
	}
}
