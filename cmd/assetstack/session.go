package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"assetstack/internal/config"
	"assetstack/internal/session"
	"assetstack/internal/tmux"
	"assetstack/internal/topology"
)

// sessionPrerequisites are the binaries a full session launch depends on.
// They are checked up front so a missing tool is reported before any
// session action.
var sessionPrerequisites = []string{"tmux", "redis-server", "uvicorn", "arq"}

func newStartSessionCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "start-session",
		Short: "Start broker, worker, and API server in one tmux session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := resolveConfig(cmd, opts)
			if err != nil {
				return err
			}
			if err := checkPrerequisites(sessionPrerequisites); err != nil {
				return err
			}
			logger := newLogger(opts.verbose)
			manager := session.NewManager(tmux.NewMux(), logger)

			sess, err := manager.Create(cfg.SessionName)
			if errors.Is(err, session.ErrSessionExists) {
				fmt.Fprintf(cmd.OutOrStdout(),
					"session %q is already running; join it with `assetstack attach-session`\n", cfg.SessionName)
				return &exitCodeError{code: 2}
			}
			if err != nil {
				return err
			}

			result, err := topology.Launch(sess, topology.NewRegistry(cfg), config.Project(cfg))
			if err != nil {
				logger.Error("launch incomplete, session left for inspection",
					"session", cfg.SessionName, "error", err.Error())
				return fmt.Errorf("launch topology: %w", err)
			}
			for _, slot := range result.Slots {
				logger.Debug("slot started", "index", slot.Index, "role", string(slot.Role))
			}
			fmt.Fprintf(cmd.OutOrStdout(),
				"started session %q with %d slots; attach with `assetstack attach-session`\n",
				cfg.SessionName, len(result.Slots))
			return nil
		},
	}
}

func newAttachSessionCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "attach-session",
		Short: "Attach the current terminal to the running session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := resolveConfig(cmd, opts)
			if err != nil {
				return err
			}
			manager := session.NewManager(tmux.NewMux(), newLogger(opts.verbose))
			exists, err := manager.Exists(cfg.SessionName)
			if err != nil {
				return err
			}
			if !exists {
				return fmt.Errorf("session %q is not running; start it with `assetstack start-session`", cfg.SessionName)
			}

			argv := tmux.AttachCommand(cfg.SessionName)
			attach := exec.CommandContext(cmd.Context(), argv[0], argv[1:]...)
			attach.Stdin = os.Stdin
			attach.Stdout = os.Stdout
			attach.Stderr = os.Stderr
			if err := attach.Run(); err != nil {
				var exitErr *exec.ExitError
				if errors.As(err, &exitErr) {
					return &exitCodeError{code: exitErr.ExitCode()}
				}
				return fmt.Errorf("attach session: %w", err)
			}
			return nil
		},
	}
}

func newStopSessionCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stop-session",
		Short: "Tear down the session and every process in it",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := resolveConfig(cmd, opts)
			if err != nil {
				return err
			}
			manager := session.NewManager(tmux.NewMux(), newLogger(opts.verbose))
			err = manager.Destroy(cfg.SessionName)
			if errors.Is(err, session.ErrSessionNotFound) {
				fmt.Fprintf(cmd.OutOrStdout(), "session %q is not running\n", cfg.SessionName)
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "stopped session %q\n", cfg.SessionName)
			return nil
		},
	}
}
