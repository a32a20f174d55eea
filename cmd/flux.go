package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"sigs.k8s.io/yaml"

	harborflags "github.com/nicholas-fedor/harborlift/internal/flags"
	"github.com/nicholas-fedor/harborlift/pkg/flux"
	"github.com/nicholas-fedor/harborlift/pkg/git"
	"github.com/nicholas-fedor/harborlift/pkg/git/auth"
)

var errInvalidValues = errors.New("invalid chart values")

// newFluxCommand creates the flux command group for rendering and updating HelmRelease manifests.
func newFluxCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "flux",
		Short: "Render and update Flux HelmRelease manifests",
	}

	command.AddCommand(newFluxGenerateCommand(), newFluxBumpCommand())

	return command
}

func newFluxGenerateCommand() *cobra.Command {
	var (
		opts   flux.ReleaseOptions
		values string
		output string
	)

	command := &cobra.Command{
		Use:   "generate",
		Short: "Write a HelmRelease manifest for a chart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			parsed, err := readValues(values)
			if err != nil {
				return err
			}

			opts.Values = parsed

			path, err := flux.GenerateHelmRelease(opts, output)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), path)

			return nil
		},
	}

	flags := command.Flags()
	flags.StringVar(&opts.Name, "name", "", "Release name")
	flags.StringVar(&opts.Namespace, "namespace", "default", "Release namespace")
	flags.StringVar(&opts.Chart, "chart", "", "Chart name")
	flags.StringVar(&opts.Version, "chart-version", "", "Chart version or semver range")
	flags.StringVar(&opts.RepositoryName, "repository", "", "HelmRepository source name")
	flags.StringVar(&opts.RepositoryNamespace, "repository-namespace", "",
		"HelmRepository source namespace; the release namespace when empty")
	flags.DurationVar(&opts.Interval, "reconcile-interval", flux.DefaultInterval, "Reconcile interval")
	flags.StringVar(&values, "values", "", "Chart values as inline JSON or a path to a YAML or JSON file")
	flags.StringVarP(&output, "output", "o", flux.DefaultOutput, "File to write")

	return command
}

func newFluxBumpCommand() *cobra.Command {
	var (
		image      string
		commit     bool
		push       bool
		remote     string
		gitToken   string
		gitUser    string
		gitPass    string
		gitSSHKey  string
		commitText string
	)

	command := &cobra.Command{
		Use:   "bump-image FILE",
		Short: "Increment the image tag of a HelmRelease and optionally commit the change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bump, err := flux.BumpImageTag(args[0], image)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %s -> %s\n", bump.Repository, bump.OldTag, bump.NewTag)

			if !commit && !push {
				return nil
			}

			authConfig, err := auth.ParseConfigFromFlags(gitToken, gitUser, gitPass, gitSSHKey)
			if err != nil {
				return err
			}

			message := commitText
			if message == "" {
				message = fmt.Sprintf("Bump %s to %s", bump.Repository, bump.NewTag)
			}

			hash, err := git.CommitFile(cmd.Context(), args[0], git.CommitOptions{
				Message: message,
				Push:    push,
				Remote:  remote,
				Auth:    authConfig,
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Committed %s\n", hash)

			return nil
		},
	}

	flags := command.Flags()
	flags.StringVar(&image, "image", "", "Image repository the release must reference")
	flags.BoolVar(&commit, "commit", false, "Commit the updated manifest")
	flags.BoolVar(&push, "push", false, "Commit and push the updated manifest")
	flags.StringVar(&remote, "remote", git.DefaultRemote, "Remote to push to")
	flags.StringVarP(&commitText, "message", "m", "", "Commit message")
	flags.StringVar(&gitToken, "git-token", viper.GetString(harborflags.EnvPrefix+"GIT_TOKEN"),
		"Token for pushing over HTTPS")
	flags.StringVar(&gitUser, "git-username", "", "Username for pushing over HTTPS")
	flags.StringVar(&gitPass, "git-password", "", "Password for pushing over HTTPS")
	flags.StringVar(&gitSSHKey, "git-ssh-key", "", "Private key file for pushing over SSH")
	_ = command.MarkFlagRequired("image")

	return command
}

// readValues decodes chart values given inline as JSON or as a YAML or JSON file.
func readValues(values string) (map[string]any, error) {
	if values == "" {
		return nil, nil //nolint:nilnil
	}

	data := []byte(values)

	if !strings.HasPrefix(strings.TrimSpace(values), "{") {
		content, err := os.ReadFile(values)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", errInvalidValues, err)
		}

		data = content
	}

	jsonData, err := yaml.YAMLToJSON(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errInvalidValues, err)
	}

	var parsed map[string]any
	if err := json.Unmarshal(jsonData, &parsed); err != nil {
		return nil, fmt.Errorf("%w: %w", errInvalidValues, err)
	}

	return parsed, nil
}
