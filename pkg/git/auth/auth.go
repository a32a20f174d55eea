// Package auth builds go-git transport credentials for pushing manifest changes.
package auth

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/go-git/go-git/v5/plumbing/transport/ssh"
)

// Method defines the authentication method for Git operations.
type Method string

const (
	// MethodToken uses HTTP token authentication.
	MethodToken Method = "token"
	// MethodSSH uses SSH key authentication.
	MethodSSH Method = "ssh"
	// MethodBasic uses username/password authentication.
	MethodBasic Method = "basic"
	// MethodNone relies on the remote accepting anonymous pushes or on ambient credentials.
	MethodNone Method = "none"
)

// Config contains authentication configuration for Git operations.
type Config struct {
	Method   Method // Authentication method
	Token    string // For token-based auth
	Username string // For basic auth
	Password string // For basic auth
	SSHKey   []byte // For SSH key auth
}

// Predefined error variables for consistent error handling.
var (
	ErrUnsupportedAuthMethod = errors.New("unsupported authentication method")
	ErrSSHKeyPathEmpty       = errors.New("SSH key file path is empty")
	ErrTokenRequired         = errors.New("token authentication requires a token")
	ErrBasicAuthIncomplete   = errors.New(
		"basic authentication requires both username and password",
	)
	ErrSSHKeyRequired = errors.New("SSH authentication requires a private key")
)

// CreateAuthMethod creates a go-git authentication method from a Config.
//
// Parameters:
//   - config: Credentials and the method to use.
//
// Returns:
//   - transport.AuthMethod: Auth for go-git, nil when no credentials apply.
//   - error: Non-nil for unknown methods or unreadable SSH keys.
func CreateAuthMethod(config Config) (transport.AuthMethod, error) {
	switch config.Method {
	case MethodToken:
		return createTokenAuth(config.Token), nil
	case MethodBasic:
		return createBasicAuth(config.Username, config.Password), nil
	case MethodSSH:
		return createSSHAuth(config.SSHKey)
	case MethodNone, "":
		return nil, nil //nolint:nilnil // No authentication needed is valid
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedAuthMethod, config.Method)
	}
}

// createTokenAuth creates HTTP token authentication.
func createTokenAuth(token string) transport.AuthMethod {
	if token == "" {
		return nil
	}

	return &http.BasicAuth{
		Username: "token", // GitHub/GitLab convention
		Password: token,
	}
}

func createBasicAuth(username, password string) transport.AuthMethod {
	if username == "" || password == "" {
		return nil
	}

	return &http.BasicAuth{
		Username: username,
		Password: password,
	}
}

func createSSHAuth(sshKey []byte) (transport.AuthMethod, error) {
	if len(sshKey) == 0 {
		return nil, ErrSSHKeyRequired
	}

	publicKeys, err := ssh.NewPublicKeys("git", sshKey, "")
	if err != nil {
		return nil, fmt.Errorf("failed to create SSH public keys: %w", err)
	}

	return publicKeys, nil
}

// LoadSSHKeyFromFile loads an SSH private key from a file.
func LoadSSHKeyFromFile(filePath string) ([]byte, error) {
	if filePath == "" {
		return nil, ErrSSHKeyPathEmpty
	}

	keyData, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read SSH key file %s: %w", filePath, err)
	}

	return keyData, nil
}

// ParseConfigFromFlags creates a Config from command-line flags. The first
// complete set of credentials wins, in the order token, basic, SSH key.
//
// Parameters:
//   - token: Access token.
//   - username: Basic auth user.
//   - password: Basic auth password.
//   - sshKeyPath: Path to a private key.
//
// Returns:
//   - Config: Parsed configuration.
//   - error: Non-nil if the SSH key cannot be read.
func ParseConfigFromFlags(token, username, password, sshKeyPath string) (Config, error) {
	config := Config{}

	switch {
	case token != "":
		config.Method = MethodToken
		config.Token = token
	case username != "" && password != "":
		config.Method = MethodBasic
		config.Username = username
		config.Password = password
	case sshKeyPath != "":
		config.Method = MethodSSH

		sshKey, err := LoadSSHKeyFromFile(sshKeyPath)
		if err != nil {
			return config, fmt.Errorf("failed to load SSH key: %w", err)
		}

		config.SSHKey = sshKey
	default:
		config.Method = MethodNone
	}

	return config, nil
}

// ValidateConfig checks if the authentication configuration is complete.
func ValidateConfig(config Config) error {
	switch config.Method {
	case MethodToken:
		if config.Token == "" {
			return ErrTokenRequired
		}
	case MethodBasic:
		if config.Username == "" || config.Password == "" {
			return ErrBasicAuthIncomplete
		}
	case MethodSSH:
		if len(config.SSHKey) == 0 {
			return ErrSSHKeyRequired
		}
	case MethodNone, "":
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedAuthMethod, config.Method)
	}

	return nil
}
