package keyvault

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/security/keyvault/azsecrets"
	"github.com/sirupsen/logrus"
)

// vaultDomain completes bare vault names.
const vaultDomain = ".vault.azure.net"

var (
	errMissingVault     = errors.New("vault name or URL is required")
	errCredentialFailed = errors.New("failed to obtain Azure credentials")
	errClientFailed     = errors.New("failed to create Key Vault client")
	errSecretHasNoValue = errors.New("secret has no value")
)

// VaultStore is a Store backed by an Azure Key Vault.
type VaultStore struct {
	client *azsecrets.Client
	url    string
}

var _ Store = (*VaultStore)(nil)

// VaultURL turns a vault name into its URL. Values already containing a scheme are kept.
//
// Parameters:
//   - vault: Vault name, host or URL.
//
// Returns:
//   - string: Vault URL with a trailing slash.
//   - error: Non-nil if vault is empty.
func VaultURL(vault string) (string, error) {
	vault = strings.TrimSpace(vault)
	if vault == "" {
		return "", errMissingVault
	}

	if !strings.Contains(vault, "://") {
		if !strings.Contains(vault, ".") {
			vault += vaultDomain
		}

		vault = "https://" + vault
	}

	return strings.TrimSuffix(vault, "/") + "/", nil
}

// NewDefaultCredential creates the default Azure credential chain.
func NewDefaultCredential() (azcore.TokenCredential, error) {
	credential, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errCredentialFailed, err)
	}

	return credential, nil
}

// NewVaultStore creates a store for a vault.
//
// Parameters:
//   - vault: Vault name, host or URL.
//   - credential: Token credential for the vault.
//   - options: Client options; nil uses the SDK defaults.
//
// Returns:
//   - *VaultStore: Store for the vault.
//   - error: Non-nil if the vault is empty or the client cannot be created.
func NewVaultStore(
	vault string,
	credential azcore.TokenCredential,
	options *azsecrets.ClientOptions,
) (*VaultStore, error) {
	url, err := VaultURL(vault)
	if err != nil {
		return nil, err
	}

	client, err := azsecrets.NewClient(url, credential, options)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", errClientFailed, url, err)
	}

	return &VaultStore{client: client, url: url}, nil
}

// URL returns the vault URL.
func (s *VaultStore) URL() string {
	return s.url
}

// ListSecretNames pages through the vault. Secrets backing Key Vault certificates are left out.
func (s *VaultStore) ListSecretNames(ctx context.Context) ([]string, error) {
	var names []string

	pager := s.client.NewListSecretPropertiesPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", s.url, err)
		}

		for _, item := range page.Value {
			if item == nil || item.ID == nil {
				continue
			}

			if item.Managed != nil && *item.Managed {
				logrus.WithField("secret", item.ID.Name()).Debug("Skipping managed secret")

				continue
			}

			names = append(names, item.ID.Name())
		}
	}

	return names, nil
}

// GetSecret reads the current version of a secret.
func (s *VaultStore) GetSecret(ctx context.Context, name string) (Secret, error) {
	response, err := s.client.GetSecret(ctx, name, "", nil)
	if err != nil {
		return Secret{}, fmt.Errorf("%s: %w", name, err)
	}

	if response.Value == nil {
		return Secret{}, fmt.Errorf("%w: %s", errSecretHasNoValue, name)
	}

	secret := Secret{Value: *response.Value}
	if response.ContentType != nil {
		secret.ContentType = *response.ContentType
	}

	return secret, nil
}

// SetSecret writes a new version of a secret.
func (s *VaultStore) SetSecret(ctx context.Context, name string, secret Secret) error {
	parameters := azsecrets.SetSecretParameters{Value: &secret.Value}
	if secret.ContentType != "" {
		parameters.ContentType = &secret.ContentType
	}

	if _, err := s.client.SetSecret(ctx, name, parameters, nil); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	return nil
}
