package registry

import "errors"

// Errors returned by the Harbor catalog client.
var (
	// ErrCatalogRequest indicates the registry API answered with a non-success status or could not be reached.
	ErrCatalogRequest = errors.New("catalog request failed")
	// ErrCatalogDecode indicates the registry API returned a body that is not the expected JSON.
	ErrCatalogDecode = errors.New("failed to decode catalog response")
	// errInvalidBaseURL indicates the configured host cannot form a valid API URL.
	errInvalidBaseURL = errors.New("invalid registry base URL")
	// errUnknownTagListing indicates an unsupported tag listing mode.
	errUnknownTagListing = errors.New("unknown tag listing mode")
)
