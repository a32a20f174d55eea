package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/nicholas-fedor/harborlift/internal/actions"
	"github.com/nicholas-fedor/harborlift/internal/api"
	"github.com/nicholas-fedor/harborlift/internal/flags"
	"github.com/nicholas-fedor/harborlift/internal/logging"
	"github.com/nicholas-fedor/harborlift/internal/meta"
	"github.com/nicholas-fedor/harborlift/internal/scheduling"
	"github.com/nicholas-fedor/harborlift/pkg/filters"
	"github.com/nicholas-fedor/harborlift/pkg/lifecycle"
	"github.com/nicholas-fedor/harborlift/pkg/metrics"
	"github.com/nicholas-fedor/harborlift/pkg/notifications"
	"github.com/nicholas-fedor/harborlift/pkg/registry"
	"github.com/nicholas-fedor/harborlift/pkg/runtime"
	"github.com/nicholas-fedor/harborlift/pkg/types"
)

var (
	errMissingSource      = errors.New("source registry host and project are required")
	errMissingDestination = errors.New("destination registry host and project are required")
)

// notifier sends session reports and batched log entries to the configured services.
//
// It is initialized in preRun from the notification flags.
var notifier types.Notifier

// rootCmd is the harborlift command with every subcommand attached.
var rootCmd = NewRootCommand()

// RunConfig encapsulates everything runMain needs to execute transfer sessions.
type RunConfig struct {
	// Command is the cobra.Command being executed, used for startup messages.
	Command *cobra.Command
	// Catalog lists repositories and tags of the source project.
	Catalog types.Catalog
	// Runtime moves image bytes between registries.
	Runtime types.Runtime
	// Notifier receives session reports; may be nil.
	Notifier types.Notifier
	// Params configures every transfer session.
	Params types.TransferParams
	// Filters describes the repository and tag filters for the startup message.
	Filters flags.FilterDescriptions
	// ScheduleSpec is the cron specification; empty disables periodic sessions.
	ScheduleSpec string
	// TransferOnStart runs one session immediately when sessions are periodic.
	TransferOnStart bool
	// EnableTransferAPI exposes POST /v1/transfer.
	EnableTransferAPI bool
	// EnableMetricsAPI exposes GET /v1/metrics.
	EnableMetricsAPI bool
	// APIToken is the bearer token for the HTTP API.
	APIToken string
	// APIHost is the interface the HTTP API binds to.
	APIHost string
	// APIPort is the port the HTTP API listens on.
	APIPort string
	// Metrics receives session metrics; nil uses metrics.Default().
	Metrics *metrics.Metrics
	// Hooks are the shell commands run around every session.
	Hooks lifecycle.Hooks
	// HookExecutor runs the hook commands; nil uses the OS.
	HookExecutor runtime.Executor
}

// NewRootCommand creates the root command, registers its flags and attaches the subcommands.
//
// Returns:
//   - *cobra.Command: Configured root command ready for execution.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "harborlift",
		Short: "Mirrors container images from a Harbor project into another registry",
		Long: "\nharborlift copies every tag of every repository in a Harbor project to another registry," +
			"\nonce, on a schedule or on demand through its HTTP API.",
		PersistentPreRunE: setupCommon,
		PreRun:            preRun,
		Run:               run,
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		Version:           meta.Version,
	}

	flags.SetDefaults()
	flags.RegisterDockerFlags(root)
	flags.RegisterRegistryFlags(root)
	flags.RegisterTransferFlags(root)
	flags.RegisterSystemFlags(root)
	flags.RegisterNotificationFlags(root)

	root.AddCommand(
		newRecipeDebugCommand(),
		newConfigMapCommand(),
		newHealthCheckCommand(),
		newTfvarsCommand(),
		newFluxCommand(),
		newKeyVaultCommand(),
	)

	return root
}

// Execute runs the root command and exits with status 1 on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logrus.WithError(err).Fatal("Failed to execute command")
	}
}

// setupCommon applies the configuration file, flag aliases and logging settings for every command.
func setupCommon(cmd *cobra.Command, _ []string) error {
	root := cmd.Root()

	if err := flags.LoadConfigFile(root); err != nil {
		return err
	}

	if err := flags.ProcessFlagAliases(root.PersistentFlags()); err != nil {
		return err
	}

	if err := flags.SetupLogging(root.PersistentFlags()); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}

	return nil
}

// preRun prepares the notifier and the Docker environment before transfer sessions run.
func preRun(cmd *cobra.Command, _ []string) {
	flags.GetSecretsFromFiles(cmd)

	if err := flags.EnvConfig(cmd); err != nil {
		logrus.WithError(err).Fatal("Failed to configure Docker environment")
	}

	notifier = notifications.NewNotifier(cmd)
	notifier.AddLogHook()
}

// run builds the session collaborators from flags and exits with the status returned by runMain.
func run(c *cobra.Command, _ []string) {
	cfg, err := buildRunConfig(c)
	if err != nil {
		logrus.WithError(err).Error("Invalid configuration")
		notifier.Close()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	exitCode := runMain(ctx, cfg)

	stop()

	if exitCode != 0 {
		logrus.WithField("exit_code", exitCode).Debug("Exiting with non-zero status")
		os.Exit(exitCode)
	}
}

// buildRunConfig reads the transfer settings and creates the catalog and runtime they select.
//
// Parameters:
//   - c: Root command carrying the parsed flags.
//
// Returns:
//   - RunConfig: Configuration for runMain.
//   - error: Non-nil if required settings are missing or a collaborator cannot be created.
func buildRunConfig(c *cobra.Command) (RunConfig, error) {
	flagsSet := c.PersistentFlags()

	params, descriptions, err := flags.ReadTransferParams(c)
	if err != nil {
		return RunConfig{}, err
	}

	if err := validateParams(params); err != nil {
		return RunConfig{}, err
	}

	tagListing, _ := flagsSet.GetString("harbor-tag-listing")

	catalog, err := registry.NewHarborClient(params.Source, registry.WithTagListing(tagListing))
	if err != nil {
		return RunConfig{}, fmt.Errorf("failed to create registry client: %w", err)
	}

	kind, _ := flagsSet.GetString("runtime")
	binary, _ := flagsSet.GetString("runtime-binary")

	rt, err := runtime.New(runtime.Options{Kind: kind, Binary: binary})
	if err != nil {
		return RunConfig{}, fmt.Errorf("failed to create runtime: %w", err)
	}

	scheduleSpec, _ := flagsSet.GetString("schedule")
	transferOnStart, _ := flagsSet.GetBool("transfer-on-start")
	enableTransferAPI, _ := flagsSet.GetBool("http-api-transfer")
	enableMetricsAPI, _ := flagsSet.GetBool("http-api-metrics")
	apiToken, _ := flagsSet.GetString("http-api-token")
	apiHost, _ := flagsSet.GetString("http-api-host")

	preSession, _ := flagsSet.GetString("pre-session-command")
	postSession, _ := flagsSet.GetString("post-session-command")
	hookTimeout, _ := flagsSet.GetDuration("session-hook-timeout")

	apiPort, _ := flagsSet.GetString("http-api-port")
	if apiPort == "" {
		apiPort = "8080"
	}

	return RunConfig{
		Command:           c,
		Catalog:           catalog,
		Runtime:           rt,
		Notifier:          notifier,
		Params:            params,
		Filters:           descriptions,
		ScheduleSpec:      scheduleSpec,
		TransferOnStart:   transferOnStart,
		EnableTransferAPI: enableTransferAPI,
		EnableMetricsAPI:  enableMetricsAPI,
		APIToken:          apiToken,
		APIHost:           apiHost,
		APIPort:           apiPort,
		Hooks: lifecycle.Hooks{
			PreSession:  preSession,
			PostSession: postSession,
			Timeout:     hookTimeout,
		},
	}, nil
}

// validateParams checks that both registries are addressed.
func validateParams(params types.TransferParams) error {
	if params.Source.Host == "" || params.Source.Project == "" {
		return errMissingSource
	}

	if params.Destination.Host == "" || params.Destination.Project == "" {
		return errMissingDestination
	}

	return nil
}

// runMain executes transfer sessions in the mode selected by cfg.
//
// Without a schedule or the transfer API a single session runs. Otherwise the HTTP API is
// started and sessions are scheduled until the context ends or a signal arrives.
//
// Parameters:
//   - ctx: Context controlling the lifetime of the API and scheduler.
//   - cfg: Run configuration.
//
// Returns:
//   - int: 0 on success, 1 if a single session failed or startup failed.
func runMain(ctx context.Context, cfg RunConfig) int {
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.Default()
	}

	info := logging.StartupInfo{
		Version:      meta.Version,
		Runtime:      cfg.Runtime.Name(),
		Source:       cfg.Params.Source,
		Destination:  cfg.Params.Destination,
		Repositories: cfg.Filters.Repositories,
		Tags:         cfg.Filters.Tags,
		DryRun:       cfg.Params.DryRun,
	}

	periodic := cfg.ScheduleSpec != ""

	if !periodic && !cfg.EnableTransferAPI {
		logging.WriteStartupMessage(cfg.Command, time.Time{}, info, cfg.Notifier)

		metric, err := runSession(ctx, cfg, cfg.Params)
		cfg.Metrics.Register(metric)

		if cfg.Notifier != nil {
			cfg.Notifier.Close()
		}

		return exitCode(metric, err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lock := scheduling.NewLock()

	if cfg.EnableTransferAPI || cfg.EnableMetricsAPI {
		if !periodic {
			logging.WriteStartupMessage(cfg.Command, time.Time{}, info, cfg.Notifier)
		}

		err := api.SetupAndStartAPI(ctx, api.Config{
			Host:           cfg.APIHost,
			Port:           cfg.APIPort,
			Token:          cfg.APIToken,
			EnableTransfer: cfg.EnableTransferAPI,
			EnableMetrics:  cfg.EnableMetricsAPI,
			Block:          cfg.EnableTransferAPI && !periodic,
			Lock:           lock,
			Run: func(ctx context.Context, repositories []string) *metrics.Metric {
				metric, _ := runSession(ctx, cfg, targetedParams(cfg.Params, repositories))

				return metric
			},
			Metrics: cfg.Metrics,
		})
		if err != nil {
			logNotify(cfg.Notifier, "HTTP API failed", err)

			return 1
		}

		if !periodic {
			if cfg.Notifier != nil {
				cfg.Notifier.Close()
			}

			return 0
		}
	}

	err := scheduling.RunTransfersOnSchedule(ctx, scheduling.Options{
		Spec:            cfg.ScheduleSpec,
		Lock:            lock,
		TransferOnStart: cfg.TransferOnStart,
		Session: func(ctx context.Context) *metrics.Metric {
			metric, _ := runSession(ctx, cfg, cfg.Params)

			return metric
		},
		Metrics:  cfg.Metrics,
		Notifier: cfg.Notifier,
		OnStart: func(next time.Time) {
			logging.WriteStartupMessage(cfg.Command, next, info, cfg.Notifier)
		},
	})
	if err != nil {
		logNotify(cfg.Notifier, "Scheduling failed", err)

		return 1
	}

	return 0
}

// runSession runs one transfer session with notification batching, wrapped in the session hooks.
// A failing pre-session command aborts the session before any registry is contacted.
func runSession(ctx context.Context, cfg RunConfig, params types.TransferParams) (*metrics.Metric, error) {
	if _, err := lifecycle.ExecutePreSessionCommand(ctx, cfg.HookExecutor, cfg.Hooks); err != nil {
		logrus.WithError(err).Error("Skipping transfer session")

		return &metrics.Metric{}, err
	}

	metric, err := actions.RunTransfersWithNotifications(ctx, cfg.Catalog, cfg.Runtime, cfg.Notifier, params)

	lifecycle.ExecutePostSessionCommand(ctx, cfg.HookExecutor, cfg.Hooks, metric)

	return metric, err
}

// targetedParams narrows the repository filter to the requested repositories.
func targetedParams(params types.TransferParams, repositories []string) types.TransferParams {
	if len(repositories) == 0 {
		return params
	}

	base := params.RepositoryFilter
	if base == nil {
		base = filters.NoFilter
	}

	params.RepositoryFilter = filters.FilterByNames(repositories, base)

	return params
}

// exitCode maps a session outcome to the process exit status.
func exitCode(metric *metrics.Metric, err error) int {
	if err != nil || (metric != nil && metric.Failed > 0) {
		return 1
	}

	return 0
}

// logNotify logs an error and flushes pending notifications.
func logNotify(n types.Notifier, msg string, err error) {
	logrus.WithError(err).Error(msg)

	if n != nil {
		n.Close()
	}
}
