package cmd

import (
	"github.com/spf13/cobra"

	"github.com/nicholas-fedor/harborlift/pkg/healthcheck"
)

// newHealthCheckCommand creates the healthcheck command, which probes the /health endpoint
// of every host listed in a file.
func newHealthCheckCommand() *cobra.Command {
	var (
		hostsFile   string
		concurrency int
	)

	command := &cobra.Command{
		Use:   "healthcheck",
		Short: "Check the /health endpoint of every host in a hosts file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			hosts, err := healthcheck.ReadHosts(hostsFile)
			if err != nil {
				return err
			}

			noColor, _ := cmd.Root().PersistentFlags().GetBool("no-color")

			results := healthcheck.NewChecker(concurrency).Check(cmd.Context(), hosts)

			return healthcheck.Report(cmd.OutOrStdout(), results, noColor)
		},
	}

	command.Flags().StringVar(&hostsFile, "hosts-file", "hosts.txt",
		"File listing one host[:port] per line")
	command.Flags().IntVar(&concurrency, "concurrency", healthcheck.DefaultConcurrency,
		"Maximum number of hosts checked at once")

	return command
}
