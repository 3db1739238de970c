package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newShowConfigCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show-config",
		Short: "Print the resolved configuration as YAML",
		Long:  "Print the resolved configuration as YAML. Secrets are printed verbatim; this tool targets local development only.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := resolveConfig(cmd, opts)
			if err != nil {
				return err
			}
			data, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("render config: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}
