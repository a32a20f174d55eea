package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nicholas-fedor/harborlift/pkg/keyvault"
)

var errSameVault = errors.New("source and destination vaults must differ")

// openVaults creates the stores for the source and destination vaults.
var openVaults = func(source, destination string) (keyvault.Store, keyvault.Store, error) {
	credential, err := keyvault.NewDefaultCredential()
	if err != nil {
		return nil, nil, err
	}

	sourceStore, err := keyvault.NewVaultStore(source, credential, nil)
	if err != nil {
		return nil, nil, err
	}

	destinationStore, err := keyvault.NewVaultStore(destination, credential, nil)
	if err != nil {
		return nil, nil, err
	}

	return sourceStore, destinationStore, nil
}

// newKeyVaultCommand creates the keyvault command group for copying Azure Key Vault secrets.
func newKeyVaultCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "keyvault",
		Short: "Copy secrets between Azure Key Vaults",
	}

	command.AddCommand(newKeyVaultCopyCommand())

	return command
}

func newKeyVaultCopyCommand() *cobra.Command {
	var (
		sourceVault      string
		destinationVault string
		options          keyvault.Options
	)

	command := &cobra.Command{
		Use:   "copy",
		Short: "Copy every selected secret of one vault into another",
		Long: "\nCopies the current version of every secret in the source vault to the destination vault." +
			"\nSecrets named by --exclude are skipped. With --suffix only names ending in one of the" +
			"\nsuffixes are copied. Credentials come from the default Azure credential chain.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sourceURL, _ := keyvault.VaultURL(sourceVault)
			if destinationURL, _ := keyvault.VaultURL(destinationVault); sourceURL == destinationURL {
				return fmt.Errorf("%w: %s", errSameVault, sourceURL)
			}

			options.DryRun, _ = cmd.Root().PersistentFlags().GetBool("dry-run")

			source, destination, err := openVaults(sourceVault, destinationVault)
			if err != nil {
				return err
			}

			report, err := keyvault.NewCopier(source, destination, options).Copy(cmd.Context())
			report.Write(cmd.OutOrStdout())

			if err != nil {
				return err
			}

			return report.Err()
		},
	}

	flags := command.Flags()
	flags.StringVar(&sourceVault, "source-vault", "", "Source vault name or URL")
	flags.StringVar(&destinationVault, "destination-vault", "", "Destination vault name or URL")
	flags.StringSliceVar(&options.Exclude, "exclude", nil, "Secret names never copied")
	flags.StringSliceVar(&options.Suffixes, "suffix", nil, "Copy only secrets whose names end with one of these")
	_ = command.MarkFlagRequired("source-vault")
	_ = command.MarkFlagRequired("destination-vault")

	return command
}
