package cmd

import (
	"errors"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/nicholas-fedor/harborlift/pkg/recipe"
	"github.com/nicholas-fedor/harborlift/pkg/runtime"
)

var errRecipeSourceConflict = errors.New("use either --env-file or --recipe, not both")

// recipeExecutor runs bitbake for --recipe; tests replace it.
var recipeExecutor runtime.Executor = runtime.NewOSExecutor()

// newRecipeDebugCommand creates the recipe-debug command, which prints the diagnostics
// of the Yocto build hooks for a set of recipe variables.
func newRecipeDebugCommand() *cobra.Command {
	var (
		envFile       string
		recipeName    string
		expectedPatch string
		pkg           string
	)

	command := &cobra.Command{
		Use:   "recipe-debug",
		Short: "Print MACHINE, SRC_URI and patch diagnostics for a Yocto recipe",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if envFile != "" && recipeName != "" {
				return errRecipeSourceConflict
			}

			vars := recipe.NewVariables(nil)

			switch {
			case envFile != "":
				loaded, err := recipe.LoadFile(envFile)
				if err != nil {
					return err
				}

				vars = loaded
			case recipeName != "":
				loaded, err := recipe.LoadFromBitbake(cmd.Context(), recipeExecutor, recipeName)
				if err != nil {
					return err
				}

				vars = loaded
			}

			log := logrus.StandardLogger()
			recipe.Emit(log, recipe.SourceURIHook(vars, expectedPatch))
			recipe.Emit(log, recipe.PackageGateHook(vars, pkg))

			return nil
		},
	}

	command.Flags().StringVar(&envFile, "env-file", "",
		"File of VAR=\"value\" assignments, such as the output of bitbake -e; the process environment is used when empty")
	command.Flags().StringVar(&recipeName, "recipe", "",
		"Recipe whose variables are read by running bitbake -e")
	command.Flags().StringVar(&expectedPatch, "expect-patch", recipe.DefaultExpectedPatch,
		"Patch that must appear in SRC_URI")
	command.Flags().StringVar(&pkg, "package", recipe.DefaultPackage,
		"Package whose recipe triggers the package diagnostics")

	return command
}
