// Package lifecycle runs the shell commands configured around transfer sessions.
//
// A pre-session command runs before the registries are contacted; when it fails the
// session is aborted. A post-session command runs after every session that started and
// receives the session counts as environment variables. Its failure is only logged.
//
// Usage example:
//
//	hooks := lifecycle.Hooks{PreSession: "az acr login --name myacr"}
//	if _, err := lifecycle.ExecutePreSessionCommand(ctx, executor, hooks); err != nil {
//	    logrus.WithError(err).Error("Pre-session command failed")
//	}
package lifecycle
