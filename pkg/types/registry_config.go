package types

// RegistryConfig holds connection settings and credentials for a registry.
type RegistryConfig struct {
	Host          string // Registry host without scheme.
	Project       string // Project or namespace.
	Username      string // Login user; empty means anonymous or pre-authenticated.
	Password      string // Login password or token.
	Insecure      bool   // Use plain HTTP for API calls.
	SkipTLSVerify bool   // Disable TLS certificate verification.
}

// HasCredentials reports whether both username and password are set.
func (c RegistryConfig) HasCredentials() bool {
	return c.Username != "" && c.Password != ""
}

// Scheme returns the URL scheme for API calls against the registry.
func (c RegistryConfig) Scheme() string {
	if c.Insecure {
		return "http"
	}

	return "https"
}
