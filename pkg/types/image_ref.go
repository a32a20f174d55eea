package types

import "strings"

// ImageRef identifies one tagged image inside a registry project.
type ImageRef struct {
	Host       string // Registry host, optionally with port.
	Project    string // Project or namespace inside the registry.
	Repository string // Repository name relative to the project.
	Tag        string // Image tag.
}

// String renders the reference as {host}/{project}/{repository}:{tag}.
//
// Returns:
//   - string: Fully qualified image reference.
func (r ImageRef) String() string {
	var builder strings.Builder

	builder.Grow(len(r.Host) + len(r.Project) + len(r.Repository) + len(r.Tag) + 3)
	builder.WriteString(r.Host)
	builder.WriteByte('/')
	builder.WriteString(r.Project)
	builder.WriteByte('/')
	builder.WriteString(r.Repository)
	builder.WriteByte(':')
	builder.WriteString(r.Tag)

	return builder.String()
}

// Name returns the reference without its tag.
func (r ImageRef) Name() string {
	return r.Host + "/" + r.Project + "/" + r.Repository
}

// Retarget returns a copy of the reference pointing at another host and project.
//
// Parameters:
//   - host: Destination registry host.
//   - project: Destination project.
//
// Returns:
//   - ImageRef: Reference that differs only in host and project.
func (r ImageRef) Retarget(host, project string) ImageRef {
	r.Host = host
	r.Project = project

	return r
}
