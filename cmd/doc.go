// Package cmd contains the command-line interface definitions and execution logic for harborlift.
// It provides the root command, which mirrors images from a Harbor project into another registry,
// and the auxiliary subcommands used alongside the mirror in build and deployment pipelines.
//
// Key components:
//   - rootCmd: Root command running transfer sessions once, on a schedule or through the HTTP API.
//   - recipe-debug: Prints fetch and patch information for a BitBake recipe.
//   - configmap: Compares ConfigMap keys between files or environment folders.
//   - healthcheck: Probes the /health endpoint of a list of hosts.
//   - tfvars: Generates a terraform.tfvars skeleton from variables.tf.
//   - flux: Generates HelmRelease manifests and bumps their image tags.
//
// Usage examples:
//   - Run the CLI from main.go:
//     cmd.Execute()
//   - Mirror a project once:
//     harborlift --source-host harbor.example.com --source-project library \
//     --destination-host myacr.azurecr.io --destination-project mirror
//
// The package integrates with actions, registry, runtime, notifications and flags packages,
// using Cobra for CLI parsing and logrus for logging.
package cmd
