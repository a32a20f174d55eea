package types

import "context"

// Catalog lists the contents of a source registry project.
type Catalog interface {
	// ListRepositories returns repository names relative to the project.
	ListRepositories(ctx context.Context, project string) ([]string, error)
	// ListTags returns the tags of one repository in the project.
	ListTags(ctx context.Context, project, repository string) ([]string, error)
}
