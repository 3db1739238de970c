package main

import (
	"fmt"
	"net"
	"strconv"

	"github.com/spf13/cobra"

	"assetstack/internal/config"
	"assetstack/internal/probe"
)

func newPingBrokerCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ping-broker",
		Short: "Check that the broker answers a liveness command",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := resolveConfig(cmd, opts)
			if err != nil {
				return err
			}
			if err := probe.PingBroker(cmd.Context(), cfg.RedisURL); err != nil {
				return &exitCodeError{code: 1, message: err.Error()}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "broker alive at %s\n", cfg.RedisURL)
			return nil
		},
	}
}

func newCheckHealthCmd(opts *globalOptions) *cobra.Command {
	var baseURL string
	cmd := &cobra.Command{
		Use:   "check-health",
		Short: "Check the API server's health endpoint",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := resolveConfig(cmd, opts)
			if err != nil {
				return err
			}
			target := baseURL
			if target == "" {
				target = apiBaseURL(cfg)
			}
			status, err := probe.CheckHealth(cmd.Context(), target)
			if err != nil {
				return &exitCodeError{code: 1, message: err.Error()}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s -> %d\n", target, status)
			if status < 200 || status > 299 {
				return &exitCodeError{code: 1}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&baseURL, "url", "", "base URL of the API server (default derived from host/port)")
	return cmd
}

func newListQueueKeysCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list-queue-keys",
		Short: "List broker keys in the job queue namespace",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := resolveConfig(cmd, opts)
			if err != nil {
				return err
			}
			keys, err := probe.ListQueueKeys(cmd.Context(), cfg.RedisURL)
			if err != nil {
				return &exitCodeError{code: 1, message: err.Error()}
			}
			for _, key := range keys {
				fmt.Fprintln(cmd.OutOrStdout(), key)
			}
			return nil
		},
	}
}

// apiBaseURL derives a probe-able URL from the bind configuration. A
// wildcard bind host is not dialable, so probes go through loopback.
func apiBaseURL(cfg config.Config) string {
	host := cfg.Host
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "127.0.0.1"
	}
	return "http://" + net.JoinHostPort(host, strconv.Itoa(cfg.Port))
}
