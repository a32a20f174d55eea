// Package git records manifest changes in the enclosing Git repository.
//
// It stages and commits a single file with go-git and can push the result to
// a remote. Credentials come from the auth subpackage:
//
//	cfg, _ := auth.ParseConfigFromFlags(token, "", "", "")
//	hash, err := git.CommitFile(ctx, "apps/web/helmrelease.yaml", git.CommitOptions{
//		Message: "Bump web to 1.2.4",
//		Push:    true,
//		Auth:    cfg,
//	})
//
// Failures are reported as Error values carrying the failed operation.
package git
