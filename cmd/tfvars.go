package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nicholas-fedor/harborlift/pkg/tfvars"
)

// newTfvarsCommand creates the tfvars command, which renders a terraform.tfvars skeleton
// from the variable blocks of a variables.tf file.
func newTfvarsCommand() *cobra.Command {
	var output string

	command := &cobra.Command{
		Use:   "tfvars VARIABLES_TF",
		Short: "Generate a terraform.tfvars file from variables.tf",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			assignments, err := tfvars.Generate(args[0], output)
			if err != nil {
				return err
			}

			required := 0

			for _, assignment := range assignments {
				if assignment.Required {
					required++
				}
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d variables to %s (%d required)\n",
				len(assignments), output, required)

			return nil
		},
	}

	command.Flags().StringVarP(&output, "output", "o", tfvars.DefaultOutput, "File to write")

	return command
}
