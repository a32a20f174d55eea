// Package registry lists the contents of a source Harbor project.
//
// HarborClient implements types.Catalog on top of the Harbor REST API v2.0. Repository
// listings follow page/page_size pagination, repository names are returned relative to
// their project, and tags are read either from the tags endpoint or from the tagged
// artifacts of a repository.
package registry
