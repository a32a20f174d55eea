package cmd

import (
	"github.com/spf13/cobra"

	"github.com/nicholas-fedor/harborlift/pkg/configmap"
)

// newConfigMapCommand creates the configmap command group for comparing ConfigMap keys.
func newConfigMapCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "configmap",
		Short: "Compare the keys of Kubernetes ConfigMaps",
	}

	command.AddCommand(
		&cobra.Command{
			Use:   "compare FILE_A FILE_B",
			Short: "Fail when two ConfigMaps define different keys",
			Args:  cobra.ExactArgs(2), //nolint:mnd
			RunE: func(cmd *cobra.Command, args []string) error {
				diff, err := configmap.CompareFiles(args[0], args[1])
				if err != nil {
					return err
				}

				diff.Write(cmd.OutOrStdout())

				return diff.Err()
			},
		},
		&cobra.Command{
			Use:   "report FILE_A FILE_B",
			Short: "Print the key differences between two ConfigMaps",
			Args:  cobra.ExactArgs(2), //nolint:mnd
			RunE: func(cmd *cobra.Command, args []string) error {
				diff, err := configmap.CompareFiles(args[0], args[1])
				if err != nil {
					return err
				}

				diff.Write(cmd.OutOrStdout())

				return nil
			},
		},
		&cobra.Command{
			Use:   "compare-folders ENV1 ENV2",
			Short: "Compare the configmap.yaml of every application in two environment folders",
			Args:  cobra.ExactArgs(2), //nolint:mnd
			RunE: func(cmd *cobra.Command, args []string) error {
				report, err := configmap.CompareFolders(args[0], args[1])
				if err != nil {
					return err
				}

				report.Write(cmd.OutOrStdout())

				return report.Err()
			},
		},
	)

	return command
}
