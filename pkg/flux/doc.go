// Package flux renders and edits Flux HelmRelease manifests.
//
// GenerateHelmRelease writes a new HelmRelease that installs a chart from a
// HelmRepository source. BumpImageTag increments the image tag stored in an
// existing release's values so a mirrored image can be rolled out.
package flux
