package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"assetstack/internal/config"
	"assetstack/internal/topology"
)

// newRunRoleCmd builds a verb that runs one role's process directly in the
// foreground, outside any session, with the same projected environment the
// session launch would apply. The child's exit code becomes ours.
func newRunRoleCmd(opts *globalOptions, use string, role topology.Role, short string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := resolveConfig(cmd, opts)
			if err != nil {
				return err
			}
			spec := topology.NewRegistry(cfg).SpecFor(role)
			if err := checkPrerequisites([]string{spec.Argv[0]}); err != nil {
				return err
			}
			return runForeground(cmd.Context(), spec, config.Project(cfg))
		},
	}
}

func runForeground(ctx context.Context, spec topology.ProcessSpec, env map[string]string) error {
	command := exec.CommandContext(ctx, spec.Argv[0], spec.Argv[1:]...)
	command.Dir = spec.Dir
	command.Env = append(os.Environ(), config.EnvironList(env)...)
	command.Stdin = os.Stdin
	command.Stdout = os.Stdout
	command.Stderr = os.Stderr
	if err := command.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &exitCodeError{code: exitErr.ExitCode()}
		}
		return fmt.Errorf("run %s: %w", spec.Role, err)
	}
	return nil
}
