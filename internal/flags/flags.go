// Package flags manages command-line flags and environment variables for harborlift configuration.
package flags

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/nicholas-fedor/harborlift/pkg/filters"
	"github.com/nicholas-fedor/harborlift/pkg/types"
)

// EnvPrefix is prepended to every harborlift environment variable.
const EnvPrefix = "HARBORLIFT_"

// DockerAPIMinVersion specifies the minimum Docker API version used by the engine runtime.
const DockerAPIMinVersion string = "1.44"

// defaultRetryIntervalSeconds is the pause between retries of a failed transfer step.
const defaultRetryIntervalSeconds = 5

// errInvalidLogFormat indicates an invalid log format was specified.
var errInvalidLogFormat = errors.New("invalid log format specified")

// errInvalidLogLevel indicates an invalid log level was specified.
var errInvalidLogLevel = errors.New("invalid log level specified")

// errSetEnvFailed indicates a failure to set an environment variable.
var errSetEnvFailed = errors.New("failed to set environment variable")

// errOpenFileFailed indicates a failure to open a file for reading secrets.
var errOpenFileFailed = errors.New("failed to open secret file")

// errCloseFileFailed indicates a failure to close a file after reading secrets.
var errCloseFileFailed = errors.New("failed to close secret file")

// errReplaceSliceFailed indicates a failure to replace a slice value in a flag.
var errReplaceSliceFailed = errors.New("failed to replace slice value in flag")

// errReadFileFailed indicates a failure to read a file's contents.
var errReadFileFailed = errors.New("failed to read secret file")

// errSetFlagFailed indicates a failure to read or set a flag's value.
var errSetFlagFailed = errors.New("failed to set flag value")

// errInvalidFlagName indicates an invalid flag name was provided.
var errInvalidFlagName = errors.New("invalid flag name provided")

// errNotSliceValue indicates a flag does not support slice values.
var errNotSliceValue = errors.New("flag does not support slice values")

// errReadConfigFailed indicates the configuration file could not be loaded.
var errReadConfigFailed = errors.New("failed to read configuration file")

// ErrScheduleConflict indicates both a schedule and an interval were given.
var ErrScheduleConflict = errors.New("only schedule or interval can be defined, not both")

// ErrUnknownPorcelain indicates an unsupported porcelain version.
var ErrUnknownPorcelain = errors.New("unknown porcelain version")

// listSeparator splits comma or space separated environment lists.
var listSeparator = regexp.MustCompile("[, ]+")

// RegisterDockerFlags adds flags used by the Docker Engine API runtime to the root command.
func RegisterDockerFlags(rootCmd *cobra.Command) {
	flags := rootCmd.PersistentFlags()
	flags.StringP("host", "H", envString("DOCKER_HOST"), "daemon socket to connect to")
	flags.BoolP("tlsverify", "v", envBool("DOCKER_TLS_VERIFY"), "use TLS and verify the remote")
	flags.StringP(
		"api-version",
		"a",
		envString("DOCKER_API_VERSION"),
		"api version to use by docker client",
	)
}

// RegisterRegistryFlags adds the source and destination registry settings to the root command.
func RegisterRegistryFlags(rootCmd *cobra.Command) {
	flags := rootCmd.PersistentFlags()

	flags.String(
		"source-host",
		envString(EnvPrefix+"SOURCE_HOST"),
		"Harbor registry host images are copied from, e.g. harbor.example.com")

	flags.String(
		"source-project",
		envString(EnvPrefix+"SOURCE_PROJECT"),
		"Harbor project whose repositories are copied")

	flags.String(
		"source-username",
		envString(EnvPrefix+"SOURCE_USERNAME"),
		"Username for the source registry")

	flags.String(
		"source-password",
		envString(EnvPrefix+"SOURCE_PASSWORD"),
		"Password for the source registry, or a file containing it")

	flags.Bool(
		"source-insecure",
		envBool(EnvPrefix+"SOURCE_INSECURE"),
		"Talk to the source registry over plain HTTP")

	flags.Bool(
		"source-tls-skip-verify",
		envBool(EnvPrefix+"SOURCE_TLS_SKIP_VERIFY"),
		"Do not verify the source registry certificate")

	flags.String(
		"harbor-tag-listing",
		envString(EnvPrefix+"HARBOR_TAG_LISTING"),
		`How tags are listed from Harbor. Possible values: "tags" or "artifacts"`)

	flags.String(
		"destination-host",
		envString(EnvPrefix+"DESTINATION_HOST"),
		"Registry host images are copied to, e.g. myacr.azurecr.io")

	flags.String(
		"destination-project",
		envString(EnvPrefix+"DESTINATION_PROJECT"),
		"Namespace in the destination registry")

	flags.String(
		"destination-username",
		envString(EnvPrefix+"DESTINATION_USERNAME"),
		"Username for the destination registry")

	flags.String(
		"destination-password",
		envString(EnvPrefix+"DESTINATION_PASSWORD"),
		"Password for the destination registry, or a file containing it")

	flags.Bool(
		"destination-insecure",
		envBool(EnvPrefix+"DESTINATION_INSECURE"),
		"Talk to the destination registry over plain HTTP")

	flags.Bool(
		"destination-tls-skip-verify",
		envBool(EnvPrefix+"DESTINATION_TLS_SKIP_VERIFY"),
		"Do not verify the destination registry certificate")

	flags.String(
		"destination-login-command",
		envString(EnvPrefix+"DESTINATION_LOGIN_COMMAND"),
		`Shell command that logs the runtime in to the destination, e.g. "az acr login --name myacr"`)
}

// RegisterTransferFlags adds flags that shape a transfer session to the root command.
func RegisterTransferFlags(rootCmd *cobra.Command) {
	flags := rootCmd.PersistentFlags()

	flags.String(
		"runtime",
		envString(EnvPrefix+"RUNTIME"),
		`Backend that moves image bytes. Possible values: "cli", "engine" or "direct"`)

	flags.String(
		"runtime-binary",
		envString(EnvPrefix+"RUNTIME_BINARY"),
		`Container CLI used by the cli runtime, e.g. "docker" or "podman"`)

	flags.StringSlice(
		"repositories",
		envList(EnvPrefix+"REPOSITORIES"),
		"Repository names or patterns to copy; all when empty")

	flags.StringSlice(
		"exclude-repositories",
		envList(EnvPrefix+"EXCLUDE_REPOSITORIES"),
		"Repository names or patterns to skip")

	flags.StringSlice(
		"repository-suffixes",
		envList(EnvPrefix+"REPOSITORY_SUFFIXES"),
		"Only copy repositories ending in one of these suffixes")

	flags.StringSlice(
		"tags",
		envList(EnvPrefix+"TAGS"),
		"Tag names or patterns to copy; all when empty")

	flags.StringSlice(
		"exclude-tags",
		envList(EnvPrefix+"EXCLUDE_TAGS"),
		"Tag names or patterns to skip")

	flags.StringSlice(
		"tag-suffixes",
		envList(EnvPrefix+"TAG_SUFFIXES"),
		"Only copy tags ending in one of these suffixes")

	flags.Bool(
		"no-cleanup",
		envBool(EnvPrefix+"NO_CLEANUP"),
		"Keep local copies of transferred images")

	flags.Bool(
		"dry-run",
		envBool(EnvPrefix+"DRY_RUN"),
		"List the images that would be copied without transferring them")

	flags.Bool(
		"fail-fast",
		envBool(EnvPrefix+"FAIL_FAST"),
		"Abort the session on the first failed image")

	flags.Int(
		"concurrency",
		envInt(EnvPrefix+"CONCURRENCY"),
		"Number of images transferred in parallel")

	flags.Duration(
		"retry-timeout",
		envDuration(EnvPrefix+"RETRY_TIMEOUT"),
		"Total time to retry a failed transfer step; 0 disables retries")

	flags.Duration(
		"retry-interval",
		envDuration(EnvPrefix+"RETRY_INTERVAL"),
		"Pause between retries of a failed transfer step")

	flags.String(
		"pre-session-command",
		envString(EnvPrefix+"PRE_SESSION_COMMAND"),
		"Shell command run before each transfer session; the session is aborted when it fails")

	flags.String(
		"post-session-command",
		envString(EnvPrefix+"POST_SESSION_COMMAND"),
		"Shell command run after each transfer session with the session counts in its environment")

	flags.Duration(
		"session-hook-timeout",
		envDuration(EnvPrefix+"SESSION_HOOK_TIMEOUT"),
		"Time limit for the pre- and post-session commands")
}

// RegisterSystemFlags adds flags that modify the program flow to the root command.
func RegisterSystemFlags(rootCmd *cobra.Command) {
	flags := rootCmd.PersistentFlags()

	flags.String(
		"config",
		envString(EnvPrefix+"CONFIG"),
		"Configuration file (YAML, TOML or JSON) providing flag defaults")

	flags.IntP(
		"interval",
		"i",
		envInt(EnvPrefix+"INTERVAL"),
		"Run a transfer session every N seconds")

	flags.StringP(
		"schedule",
		"s",
		envString(EnvPrefix+"SCHEDULE"),
		"The cron expression which defines when to run transfer sessions")

	flags.Bool(
		"transfer-on-start",
		envBool(EnvPrefix+"TRANSFER_ON_START"),
		"Run a transfer session immediately when periodic sessions are enabled")

	flags.Bool(
		"no-startup-message",
		envBool(EnvPrefix+"NO_STARTUP_MESSAGE"),
		"Do not send a message on startup")

	flags.StringP(
		"log-format",
		"l",
		envString(EnvPrefix+"LOG_FORMAT"),
		"Sets what logging format to use for console output. Possible values: Auto, LogFmt, Pretty, JSON",
	)

	flags.BoolP(
		"debug",
		"d",
		envBool(EnvPrefix+"DEBUG"),
		"Enable debug mode with verbose logging")

	flags.Bool(
		"trace",
		envBool(EnvPrefix+"TRACE"),
		"Enable trace mode with very verbose logging - caution, exposes credentials")

	flags.String(
		"log-level",
		envString(EnvPrefix+"LOG_LEVEL"),
		"The maximum log level that will be written to STDERR. Possible values: panic, fatal, error, warn, info, debug or trace",
	)

	// https://no-color.org/
	flags.Bool(
		"no-color",
		viper.IsSet("NO_COLOR"),
		"Disable ANSI color escape codes in output")

	flags.Bool(
		"http-api-transfer",
		envBool(EnvPrefix+"HTTP_API_TRANSFER"),
		"Expose POST /v1/transfer so sessions can be triggered over HTTP")

	flags.Bool(
		"http-api-metrics",
		envBool(EnvPrefix+"HTTP_API_METRICS"),
		"Expose Prometheus metrics on GET /v1/metrics")

	flags.String(
		"http-api-host",
		envString(EnvPrefix+"HTTP_API_HOST"),
		"Address to bind the HTTP API to; all interfaces when empty")

	flags.String(
		"http-api-port",
		envString(EnvPrefix+"HTTP_API_PORT"),
		"Port to bind the HTTP API to")

	flags.String(
		"http-api-token",
		envString(EnvPrefix+"HTTP_API_TOKEN"),
		"Bearer token required by HTTP API requests")

	flags.StringP(
		"porcelain",
		"P",
		envString(EnvPrefix+"PORCELAIN"),
		`Write session results to stdout using a stable versioned format. Supported values: "v1"`)
}

// RegisterNotificationFlags adds flags for configuring notifications to the root command.
func RegisterNotificationFlags(rootCmd *cobra.Command) {
	flags := rootCmd.PersistentFlags()

	flags.String(
		"notifications-level",
		envString(EnvPrefix+"NOTIFICATIONS_LEVEL"),
		"The log level used for sending notifications. Possible values: panic, fatal, error, warn, info or debug",
	)

	flags.Int(
		"notifications-delay",
		envInt(EnvPrefix+"NOTIFICATIONS_DELAY"),
		"Delay before sending notifications, expressed in seconds")

	flags.String(
		"notifications-hostname",
		envString(EnvPrefix+"NOTIFICATIONS_HOSTNAME"),
		"Custom hostname for notification titles")

	flags.String(
		"notification-template",
		envString(EnvPrefix+"NOTIFICATION_TEMPLATE"),
		"The shoutrrr text/template for the messages")

	flags.StringArray(
		"notification-url",
		envStringSlice(EnvPrefix+"NOTIFICATION_URL"),
		"The shoutrrr URL to send notifications to")

	flags.Bool(
		"notification-report",
		envBool(EnvPrefix+"NOTIFICATION_REPORT"),
		"Use the session report as the notification template data")

	flags.String(
		"notification-title-tag",
		envString(EnvPrefix+"NOTIFICATION_TITLE_TAG"),
		"Title prefix tag for notifications")

	flags.Bool(
		"notification-skip-title",
		envBool(EnvPrefix+"NOTIFICATION_SKIP_TITLE"),
		"Do not pass the title param to notifications")

	flags.Bool(
		"notification-log-stdout",
		envBool(EnvPrefix+"NOTIFICATION_LOG_STDOUT"),
		"Write notification logs to stdout instead of logging (to stderr)")
}

// envString retrieves a string value from an environment variable via Viper.
func envString(key string) string {
	viper.MustBindEnv(key)

	return viper.GetString(key)
}

// envStringSlice retrieves a string slice from an environment variable via Viper.
func envStringSlice(key string) []string {
	viper.MustBindEnv(key)

	return viper.GetStringSlice(key)
}

// envList retrieves a comma or space separated list from an environment variable.
// viper.GetStringSlice does not split env values on commas (spf13/viper#380).
func envList(key string) []string {
	value := strings.TrimSpace(envString(key))
	if value == "" {
		return []string{}
	}

	return listSeparator.Split(value, -1)
}

// envInt retrieves an integer value from an environment variable via Viper.
func envInt(key string) int {
	viper.MustBindEnv(key)

	return viper.GetInt(key)
}

// envBool retrieves a boolean value from an environment variable via Viper.
func envBool(key string) bool {
	viper.MustBindEnv(key)

	return viper.GetBool(key)
}

// envDuration retrieves a duration value from an environment variable via Viper.
func envDuration(key string) time.Duration {
	viper.MustBindEnv(key)

	return viper.GetDuration(key)
}

// SetDefaults configures default values for environment variables.
// It must run before the Register functions so the defaults reach the flags.
func SetDefaults() {
	viper.AutomaticEnv()
	viper.SetDefault("DOCKER_HOST", "unix:///var/run/docker.sock")
	viper.SetDefault("DOCKER_API_VERSION", DockerAPIMinVersion)
	viper.SetDefault(EnvPrefix+"RUNTIME", "cli")
	viper.SetDefault(EnvPrefix+"RUNTIME_BINARY", "docker")
	viper.SetDefault(EnvPrefix+"HARBOR_TAG_LISTING", "tags")
	viper.SetDefault(EnvPrefix+"CONCURRENCY", 1)
	viper.SetDefault(EnvPrefix+"RETRY_INTERVAL", time.Second*defaultRetryIntervalSeconds)
	viper.SetDefault(EnvPrefix+"SESSION_HOOK_TIMEOUT", time.Minute)
	viper.SetDefault(EnvPrefix+"HTTP_API_PORT", "8080")
	viper.SetDefault(EnvPrefix+"NOTIFICATIONS_LEVEL", "info")
	viper.SetDefault(EnvPrefix+"LOG_LEVEL", "info")
	viper.SetDefault(EnvPrefix+"LOG_FORMAT", "auto")
}

// EnvConfig exports the Docker connection flags as environment variables for the engine runtime.
func EnvConfig(cmd *cobra.Command) error {
	var err error

	var host string

	var tls bool

	var version string

	flags := cmd.PersistentFlags()

	if host, err = flags.GetString("host"); err != nil {
		return fmt.Errorf("%w: %w", errSetFlagFailed, err)
	}

	if tls, err = flags.GetBool("tlsverify"); err != nil {
		return fmt.Errorf("%w: %w", errSetFlagFailed, err)
	}

	if version, err = flags.GetString("api-version"); err != nil {
		return fmt.Errorf("%w: %w", errSetFlagFailed, err)
	}

	if err = setEnvOptStr("DOCKER_HOST", host); err != nil {
		return err
	}

	if err = setEnvOptBool("DOCKER_TLS_VERIFY", tls); err != nil {
		return err
	}

	return setEnvOptStr("DOCKER_API_VERSION", version)
}

// FilterDescriptions holds human-readable descriptions of the active filters.
type FilterDescriptions struct {
	Repositories string
	Tags         string
}

// ReadTransferParams builds the transfer session configuration from the registry and transfer flags.
//
// Parameters:
//   - cmd: Command carrying the persistent flags.
//
// Returns:
//   - types.TransferParams: Session configuration.
//   - FilterDescriptions: Descriptions of the repository and tag filters.
//   - error: Non-nil if a flag cannot be read.
func ReadTransferParams(cmd *cobra.Command) (types.TransferParams, FilterDescriptions, error) {
	flags := cmd.PersistentFlags()
	reader := &flagReader{flags: flags}

	params := types.TransferParams{
		Source: types.RegistryConfig{
			Host:          reader.str("source-host"),
			Project:       reader.str("source-project"),
			Username:      reader.str("source-username"),
			Password:      reader.str("source-password"),
			Insecure:      reader.boolean("source-insecure"),
			SkipTLSVerify: reader.boolean("source-tls-skip-verify"),
		},
		Destination: types.RegistryConfig{
			Host:          reader.str("destination-host"),
			Project:       reader.str("destination-project"),
			Username:      reader.str("destination-username"),
			Password:      reader.str("destination-password"),
			Insecure:      reader.boolean("destination-insecure"),
			SkipTLSVerify: reader.boolean("destination-tls-skip-verify"),
		},
		DestinationLoginCommand: reader.str("destination-login-command"),
		Cleanup:                 !reader.boolean("no-cleanup"),
		DryRun:                  reader.boolean("dry-run"),
		FailFast:                reader.boolean("fail-fast"),
		Concurrency:             reader.integer("concurrency"),
		RetryTimeout:            reader.duration("retry-timeout"),
		RetryInterval:           reader.duration("retry-interval"),
	}

	var descriptions FilterDescriptions

	params.RepositoryFilter, descriptions.Repositories = filters.BuildFilter(
		"repositories",
		reader.list("repositories"),
		reader.list("exclude-repositories"),
		reader.list("repository-suffixes"),
	)

	params.TagFilter, descriptions.Tags = filters.BuildFilter(
		"tags",
		reader.list("tags"),
		reader.list("exclude-tags"),
		reader.list("tag-suffixes"),
	)

	if reader.err != nil {
		return types.TransferParams{}, FilterDescriptions{}, reader.err
	}

	return params, descriptions, nil
}

// flagReader reads typed flag values and keeps the first error.
type flagReader struct {
	flags *pflag.FlagSet
	err   error
}

func (r *flagReader) keep(err error) {
	if err != nil && r.err == nil {
		r.err = fmt.Errorf("%w: %w", errSetFlagFailed, err)
	}
}

func (r *flagReader) str(name string) string {
	value, err := r.flags.GetString(name)
	r.keep(err)

	return value
}

func (r *flagReader) boolean(name string) bool {
	value, err := r.flags.GetBool(name)
	r.keep(err)

	return value
}

func (r *flagReader) integer(name string) int {
	value, err := r.flags.GetInt(name)
	r.keep(err)

	return value
}

func (r *flagReader) duration(name string) time.Duration {
	value, err := r.flags.GetDuration(name)
	r.keep(err)

	return value
}

func (r *flagReader) list(name string) []string {
	value, err := r.flags.GetStringSlice(name)
	r.keep(err)

	return value
}

// LoadConfigFile applies values from the file named by --config to flags that were neither
// set on the command line nor through their environment variable.
//
// Parameters:
//   - cmd: Command carrying the persistent flags.
//
// Returns:
//   - error: Non-nil if the file cannot be read or a value cannot be applied.
func LoadConfigFile(cmd *cobra.Command) error {
	flags := cmd.PersistentFlags()

	path, err := flags.GetString("config")
	if err != nil {
		return fmt.Errorf("%w: %w", errSetFlagFailed, err)
	}

	if path == "" {
		return nil
	}

	config := viper.New()
	config.SetConfigFile(path)

	if err := config.ReadInConfig(); err != nil {
		return fmt.Errorf("%w: %s: %w", errReadConfigFailed, path, err)
	}

	var applyErr error

	flags.VisitAll(func(flag *pflag.Flag) {
		if applyErr != nil || flag.Changed || !config.IsSet(flag.Name) {
			return
		}

		if _, fromEnv := os.LookupEnv(EnvKey(flag.Name)); fromEnv {
			return
		}

		values := []string{config.GetString(flag.Name)}
		if _, isSlice := flag.Value.(pflag.SliceValue); isSlice {
			values = config.GetStringSlice(flag.Name)
		}

		for _, value := range values {
			if err := flags.Set(flag.Name, value); err != nil {
				applyErr = fmt.Errorf("%w: %s: %w", errSetFlagFailed, flag.Name, err)

				return
			}
		}

		logrus.WithField("flag", flag.Name).Debug("Applied value from configuration file")
	})

	return applyErr
}

// EnvKey returns the environment variable bound to a flag name.
func EnvKey(flagName string) string {
	switch flagName {
	case "host":
		return "DOCKER_HOST"
	case "tlsverify":
		return "DOCKER_TLS_VERIFY"
	case "api-version":
		return "DOCKER_API_VERSION"
	}

	return EnvPrefix + strings.ToUpper(strings.ReplaceAll(flagName, "-", "_"))
}

// setEnvOptStr sets an environment variable to a specified string value if needed.
func setEnvOptStr(env string, opt string) error {
	if opt == "" || opt == os.Getenv(env) {
		return nil
	}

	if err := os.Setenv(env, opt); err != nil {
		return fmt.Errorf("%w: %s: %w", errSetEnvFailed, env, err)
	}

	return nil
}

// setEnvOptBool sets an environment variable to "1" if the boolean is true.
func setEnvOptBool(env string, opt bool) error {
	if opt {
		return setEnvOptStr(env, "1")
	}

	return nil
}

// GetSecretsFromFiles replaces secret flag values with file contents when they reference files.
func GetSecretsFromFiles(rootCmd *cobra.Command) {
	flags := rootCmd.PersistentFlags()

	secrets := []string{
		"source-password",
		"destination-password",
		"notification-url",
		"http-api-token",
	}
	for _, secret := range secrets {
		if err := getSecretFromFile(flags, secret); err != nil {
			logrus.Fatalf("failed to get secret from flag %v: %s", secret, err)
		}
	}
}

// getSecretFromFile updates a flag's value with file contents if it references a file.
// Slice flags read one value per non-empty line.
func getSecretFromFile(flags *pflag.FlagSet, secret string) error {
	flag := flags.Lookup(secret)
	if sliceValue, ok := flag.Value.(pflag.SliceValue); ok {
		oldValues := sliceValue.GetSlice()
		values := make([]string, 0, len(oldValues))

		for _, value := range oldValues {
			if value != "" && isFilePath(value) {
				file, err := os.Open(value)
				if err != nil {
					return fmt.Errorf("%w: %w", errOpenFileFailed, err)
				}

				scanner := bufio.NewScanner(file)
				for scanner.Scan() {
					line := scanner.Text()
					if line == "" {
						continue
					}

					values = append(values, line)
				}

				if err := file.Close(); err != nil {
					return fmt.Errorf("%w: %w", errCloseFileFailed, err)
				}
			} else {
				values = append(values, value)
			}
		}

		if err := sliceValue.Replace(values); err != nil {
			return fmt.Errorf("%w: %w", errReplaceSliceFailed, err)
		}

		return nil
	}

	value := flag.Value.String()
	if value != "" && isFilePath(value) {
		content, err := os.ReadFile(value)
		if err != nil {
			return fmt.Errorf("%w: %w", errReadFileFailed, err)
		}

		if err := flags.Set(secret, strings.TrimSpace(string(content))); err != nil {
			return fmt.Errorf("%w: %w", errSetFlagFailed, err)
		}
	}

	return nil
}

// isFilePath determines if a string likely represents an existing file path.
// Values with a colon past the second character are treated as URLs.
func isFilePath(path string) bool {
	firstColon := strings.IndexRune(path, ':')
	if firstColon != 1 && firstColon != -1 {
		return false
	}

	_, err := os.Stat(path)

	return !errors.Is(err, os.ErrNotExist)
}

// ProcessFlagAliases synchronizes flag values based on helper flags.
// It expands --porcelain, validates the schedule flags and applies --debug/--trace.
//
// Parameters:
//   - flags: Persistent flag set of the root command.
//
// Returns:
//   - error: ErrUnknownPorcelain or ErrScheduleConflict on invalid input.
func ProcessFlagAliases(flags *pflag.FlagSet) error {
	porcelain, err := flags.GetString("porcelain")
	if err != nil {
		return fmt.Errorf("%w: %w", errSetFlagFailed, err)
	}

	if porcelain != "" {
		if porcelain != "v1" {
			return fmt.Errorf("%w: %q", ErrUnknownPorcelain, porcelain)
		}

		if err = appendFlagValue(flags, "notification-url", "logger://"); err != nil {
			return err
		}

		setFlagIfDefault(flags, "notification-log-stdout", "true")
		setFlagIfDefault(flags, "notification-report", "true")

		tpl := fmt.Sprintf("porcelain.%s.summary-no-log", porcelain)
		setFlagIfDefault(flags, "notification-template", tpl)
	}

	schedule, _ := flags.GetString("schedule")
	interval, _ := flags.GetInt("interval")

	if schedule != "" && interval > 0 {
		return ErrScheduleConflict
	}

	if interval > 0 {
		if err := flags.Set("schedule", fmt.Sprintf("@every %ds", interval)); err != nil {
			return fmt.Errorf("%w: %w", errSetFlagFailed, err)
		}
	}

	if flagIsEnabled(flags, "debug") {
		if err := flags.Set("log-level", "debug"); err != nil {
			return fmt.Errorf("%w: %w", errSetFlagFailed, err)
		}
	}

	if flagIsEnabled(flags, "trace") {
		if err := flags.Set("log-level", "trace"); err != nil {
			return fmt.Errorf("%w: %w", errSetFlagFailed, err)
		}
	}

	return nil
}

// SetupLogging configures the global logger based on log-related flags.
func SetupLogging(flags *pflag.FlagSet) error {
	logFormat, err := flags.GetString("log-format")
	if err != nil {
		return fmt.Errorf("%w: %w", errSetFlagFailed, err)
	}

	noColor, err := flags.GetBool("no-color")
	if err != nil {
		return fmt.Errorf("%w: %w", errSetFlagFailed, err)
	}

	if err := configureLogFormat(logFormat, noColor); err != nil {
		return err
	}

	rawLogLevel, err := flags.GetString("log-level")
	if err != nil {
		return fmt.Errorf("%w: %w", errSetFlagFailed, err)
	}

	logLevel, err := logrus.ParseLevel(rawLogLevel)
	if err != nil {
		return fmt.Errorf("%w: %w", errInvalidLogLevel, err)
	}

	logrus.SetLevel(logLevel)

	return nil
}

// configureLogFormat sets the logrus formatter based on the specified format and color preference.
func configureLogFormat(logFormat string, noColor bool) error {
	switch strings.ToLower(logFormat) {
	case "auto":
		logrus.SetFormatter(&logrus.TextFormatter{
			DisableColors:             noColor,
			EnvironmentOverrideColors: true,
		})
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	case "logfmt":
		logrus.SetFormatter(&logrus.TextFormatter{
			DisableColors: true,
			FullTimestamp: true,
		})
	case "pretty":
		logrus.SetFormatter(&logrus.TextFormatter{
			ForceColors:   !noColor,
			FullTimestamp: false,
		})
	default:
		return fmt.Errorf("%w: %s", errInvalidLogFormat, logFormat)
	}

	return nil
}

// flagIsEnabled checks if a boolean flag is set to true.
func flagIsEnabled(flags *pflag.FlagSet, name string) bool {
	value, err := flags.GetBool(name)
	if err != nil {
		logrus.Fatalf("The flag %q is not defined", name)
	}

	return value
}

// appendFlagValue appends values to a slice-type flag.
func appendFlagValue(flags *pflag.FlagSet, name string, values ...string) error {
	flag := flags.Lookup(name)
	if flag == nil {
		return fmt.Errorf("%w: %q", errInvalidFlagName, name)
	}

	flagValues, ok := flag.Value.(pflag.SliceValue)
	if !ok {
		return fmt.Errorf("%w: %q", errNotSliceValue, name)
	}

	for _, value := range values {
		if err := flagValues.Append(value); err != nil {
			logrus.Errorf("Failed to append value to flag %q: %v", name, err)
		}
	}

	return nil
}

// setFlagIfDefault sets a flag's value if it hasn't been explicitly changed.
func setFlagIfDefault(flags *pflag.FlagSet, name string, value string) {
	if flags.Changed(name) {
		return
	}

	if err := flags.Set(name, value); err != nil {
		logrus.Errorf("Failed to set flag: %v", err)
	}
}
