package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"assetstack/internal/config"
	"assetstack/internal/topology"
)

// globalOptions holds the flag-level configuration overrides shared by
// every verb. Only flags the user actually set are forwarded to the
// resolver, so environment variables keep working for the rest.
type globalOptions struct {
	sessionName string
	host        string
	port        int
	redisURL    string
	databaseURL string
	projectDir  string
	verbose     bool
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}
	root := &cobra.Command{
		Use:           "assetstack",
		Short:         "Local development orchestrator for the AssetIntel stack",
		Long:          "assetstack starts the AssetIntel development stack (Redis broker, arq worker, uvicorn API server) in one tmux session, and ships probes to verify each piece independently.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.sessionName, "session", "", "tmux session name")
	flags.StringVar(&opts.host, "host", "", "API server bind host")
	flags.IntVar(&opts.port, "port", 0, "API server bind port")
	flags.StringVar(&opts.redisURL, "redis-url", "", "broker connection URL")
	flags.StringVar(&opts.databaseURL, "database-url", "", "database URL, passed through to child processes")
	flags.StringVar(&opts.projectDir, "project-dir", "", "project directory the processes run in")
	flags.BoolVar(&opts.verbose, "verbose", false, "enable debug logging")

	root.AddCommand(
		newStartSessionCmd(opts),
		newAttachSessionCmd(opts),
		newStopSessionCmd(opts),
		newRunRoleCmd(opts, "run-broker", topology.RoleBroker, "Run the Redis broker in the foreground"),
		newRunRoleCmd(opts, "run-api", topology.RoleAPIServer, "Run the API server in the foreground"),
		newRunRoleCmd(opts, "run-worker", topology.RoleWorker, "Run the job worker in the foreground"),
		newPingBrokerCmd(opts),
		newCheckHealthCmd(opts),
		newListQueueKeysCmd(opts),
		newShowConfigCmd(opts),
		newInstallPrerequisitesCmd(opts),
	)
	return root
}

// resolveConfig builds the immutable configuration for this invocation from
// defaults, the environment, and whichever flags were explicitly set.
func resolveConfig(cmd *cobra.Command, opts *globalOptions) (config.Config, error) {
	overrides := map[string]any{}
	flags := cmd.Flags()
	if flags.Changed("session") {
		overrides[config.KeySessionName] = opts.sessionName
	}
	if flags.Changed("host") {
		overrides[config.KeyHost] = opts.host
	}
	if flags.Changed("port") {
		overrides[config.KeyPort] = opts.port
	}
	if flags.Changed("redis-url") {
		overrides[config.KeyRedisURL] = opts.redisURL
	}
	if flags.Changed("database-url") {
		overrides[config.KeyDatabaseURL] = opts.databaseURL
	}
	if flags.Changed("project-dir") {
		overrides[config.KeyProjectDir] = opts.projectDir
	}
	return config.Resolve(overrides)
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
