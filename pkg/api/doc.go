// Package api provides the HTTP server for the harborlift API endpoints.
// Every endpoint except the health probe requires a bearer token.
//
// Key components:
//   - API: Manages server setup and endpoint registration.
//   - RequireToken: Wraps handlers with token validation.
//   - RunHTTPServer: Serves until the context is cancelled, then shuts down gracefully.
//
// Usage example:
//
//	httpAPI := api.New("secure-token", ":8080")
//	httpAPI.RegisterFunc("/v1/transfer", transferHandler.Handle)
//	if err := httpAPI.Start(ctx, true); err != nil {
//	    logrus.WithError(err).Error("API start failed")
//	}
package api
