package main

import (
	"errors"
	"fmt"
	"os/exec"

	"github.com/spf13/cobra"
)

// systemBinaries cannot be installed by pip; they come from the OS package
// manager and are only reported when absent.
var systemBinaries = []string{"tmux", "redis-server"}

func newInstallPrerequisitesCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "install-prerequisites",
		Short: "Install the Python dependencies and report missing system tools",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := resolveConfig(cmd, opts)
			if err != nil {
				return err
			}
			if err := checkPrerequisites([]string{"python3"}); err != nil {
				return err
			}

			missingSystem := false
			for _, binary := range systemBinaries {
				if _, err := lookPath(binary); err != nil {
					missingSystem = true
					fmt.Fprintf(cmd.OutOrStdout(),
						"missing system binary %q; install it with your package manager\n", binary)
				}
			}

			pip := exec.CommandContext(cmd.Context(), "python3", "-m", "pip", "install", "-r", "requirements.txt")
			pip.Dir = cfg.ProjectDir
			pip.Stdout = cmd.OutOrStdout()
			pip.Stderr = cmd.ErrOrStderr()
			if err := pip.Run(); err != nil {
				var exitErr *exec.ExitError
				if errors.As(err, &exitErr) {
					return &exitCodeError{code: exitErr.ExitCode(), message: "pip install failed"}
				}
				return fmt.Errorf("pip install: %w", err)
			}
			if missingSystem {
				return &exitCodeError{code: 1}
			}
			fmt.Fprintln(cmd.OutOrStdout(), "prerequisites installed")
			return nil
		},
	}
}
