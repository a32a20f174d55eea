// Package auth resolves registry credentials for the container runtimes.
//
// Credentials come either from explicit configuration or, when none were given, from the
// Docker CLI config file and its credential helpers. The latter covers registries the
// operator logged into out of band, for example with "az acr login".
package auth

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/google/go-containerregistry/pkg/authn"
	"github.com/sirupsen/logrus"

	dockerCliConfig "github.com/docker/cli/cli/config"
	dockerConfigConfigfile "github.com/docker/cli/cli/config/configfile"
	dockerConfigCredentials "github.com/docker/cli/cli/config/credentials"
	dockerConfigTypes "github.com/docker/cli/cli/config/types"

	"github.com/nicholas-fedor/harborlift/pkg/types"
)

// Errors for registry authentication operations.
var (
	// errFailedLoadDockerConfig indicates a failure to load the Docker configuration file.
	errFailedLoadDockerConfig = errors.New("failed to load Docker config")
	// errFailedReadCredentials indicates the credential store could not be queried.
	errFailedReadCredentials = errors.New("failed to read stored credentials")
	// errFailedMarshalAuthConfig indicates a failure to marshal the auth config to JSON.
	errFailedMarshalAuthConfig = errors.New("failed to marshal auth config to JSON")
)

// Credentials returns the auth config for a registry.
//
// Explicit credentials win. Otherwise the Docker config directory (DOCKER_CONFIG or the
// CLI default) is consulted. An empty config and nil error mean anonymous access.
//
// Parameters:
//   - cfg: Registry configuration.
//
// Returns:
//   - dockerConfigTypes.AuthConfig: Resolved credentials.
//   - error: Non-nil if the config file or credential helper fails.
func Credentials(cfg types.RegistryConfig) (dockerConfigTypes.AuthConfig, error) {
	if cfg.HasCredentials() {
		logrus.WithFields(logrus.Fields{
			"registry": cfg.Host,
			"username": cfg.Username,
		}).Debug("Using configured registry credentials")

		return dockerConfigTypes.AuthConfig{
			Username:      cfg.Username,
			Password:      cfg.Password,
			ServerAddress: cfg.Host,
		}, nil
	}

	return ConfigCredentials(cfg.Host)
}

// ConfigCredentials looks up stored credentials for a registry host in the Docker config.
//
// Parameters:
//   - server: Registry host.
//
// Returns:
//   - dockerConfigTypes.AuthConfig: Stored credentials, empty if none.
//   - error: Non-nil if the config or credential store cannot be read.
func ConfigCredentials(server string) (dockerConfigTypes.AuthConfig, error) {
	configDir := os.Getenv("DOCKER_CONFIG")
	if configDir == "" {
		configDir = dockerCliConfig.Dir()
	}

	clog := logrus.WithFields(logrus.Fields{
		"registry":   server,
		"config_dir": configDir,
	})

	configFile, err := dockerCliConfig.Load(configDir)
	if err != nil {
		clog.WithError(err).Debug("Failed to load Docker config")

		return dockerConfigTypes.AuthConfig{}, fmt.Errorf("%w: %w", errFailedLoadDockerConfig, err)
	}

	auth, err := CredentialsStore(*configFile).Get(server)
	if err != nil {
		return dockerConfigTypes.AuthConfig{}, fmt.Errorf("%w: %s: %w", errFailedReadCredentials, server, err)
	}

	if auth.Username == "" && auth.Password == "" && auth.IdentityToken == "" {
		clog.Debug("No stored credentials found")

		return auth, nil
	}

	clog.WithField("username", auth.Username).Debug("Loaded stored registry credentials")

	if logrus.GetLevel() == logrus.TraceLevel {
		clog.WithField("password", auth.Password).Trace("Using stored credentials")
	}

	return auth, nil
}

// CredentialsStore returns a credentials store based on the settings in the configuration file.
// A native helper is used when one is configured, the plain file store otherwise.
func CredentialsStore(configFile dockerConfigConfigfile.ConfigFile) dockerConfigCredentials.Store {
	if configFile.CredentialsStore != "" {
		return dockerConfigCredentials.NewNativeStore(&configFile, configFile.CredentialsStore)
	}

	return dockerConfigCredentials.NewFileStore(&configFile)
}

// EncodeAuth Base64 encodes an AuthConfig struct for the X-Registry-Auth header.
// It marshals the struct to JSON and applies URL-safe base64 encoding.
func EncodeAuth(authConfig dockerConfigTypes.AuthConfig) (string, error) {
	buf, err := json.Marshal(authConfig)
	if err != nil {
		return "", fmt.Errorf("%w: %w", errFailedMarshalAuthConfig, err)
	}

	return base64.URLEncoding.EncodeToString(buf), nil
}

// Keychain resolves go-containerregistry authenticators from configured registries.
//
// Registries without explicit credentials fall through to the fallback keychain,
// which defaults to authn.DefaultKeychain (Docker config and helpers).
type Keychain struct {
	credentials map[string]authn.AuthConfig
	fallback    authn.Keychain
}

var _ authn.Keychain = (*Keychain)(nil)

// NewKeychain builds a keychain from registry configurations.
//
// Parameters:
//   - configs: Registries whose explicit credentials should be served.
//
// Returns:
//   - *Keychain: Keychain ready for remote options.
func NewKeychain(configs ...types.RegistryConfig) *Keychain {
	keychain := &Keychain{
		credentials: make(map[string]authn.AuthConfig, len(configs)),
		fallback:    authn.DefaultKeychain,
	}

	for _, cfg := range configs {
		keychain.Add(cfg)
	}

	return keychain
}

// Add registers the credentials of a registry, ignoring registries without them.
func (k *Keychain) Add(cfg types.RegistryConfig) {
	if !cfg.HasCredentials() {
		return
	}

	k.credentials[cfg.Host] = authn.AuthConfig{
		Username: cfg.Username,
		Password: cfg.Password,
	}
}

// Resolve implements authn.Keychain.
func (k *Keychain) Resolve(target authn.Resource) (authn.Authenticator, error) {
	if creds, found := k.credentials[target.RegistryStr()]; found {
		return authn.FromConfig(creds), nil
	}

	if k.fallback == nil {
		return authn.Anonymous, nil
	}

	authenticator, err := k.fallback.Resolve(target)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", errFailedReadCredentials, target.RegistryStr(), err)
	}

	return authenticator, nil
}
