// Package tmux is the tmux-backed multiplexer: a thin client over the tmux
// binary plus the adapter that satisfies the session package's interface.
package tmux

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// CommandRunner executes tmux commands.
type CommandRunner interface {
	Run(args []string) ([]byte, error)
}

// Client executes tmux commands.
type Client struct {
	runner CommandRunner
}

// NewClient returns a tmux client using the default command runner.
func NewClient() *Client {
	return &Client{runner: execRunner{}}
}

// NewClientWithRunner returns a tmux client using a custom command runner.
func NewClientWithRunner(runner CommandRunner) *Client {
	return &Client{runner: runner}
}

// NewSession creates a detached tmux session with a single placeholder pane.
func (c *Client) NewSession(name string) error {
	return c.run([]string{"new-session", "-d", "-s", name})
}

// HasSession reports whether the named session exists. tmux signals absence
// through its exit status, which is not an error here.
func (c *Client) HasSession(name string) (bool, error) {
	if c == nil || c.runner == nil {
		return false, errors.New("tmux runner unavailable")
	}
	output, err := c.runner.Run([]string{"has-session", "-t", name})
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return false, nil
		}
		if len(output) > 0 {
			return false, fmt.Errorf("tmux has-session failed: %s", bytes.TrimSpace(output))
		}
		return false, fmt.Errorf("tmux has-session failed: %w", err)
	}
	return true, nil
}

// KillSession terminates a tmux session and every pane in it.
func (c *Client) KillSession(name string) error {
	return c.run([]string{"kill-session", "-t", name})
}

// RespawnPane replaces whatever runs in the target pane with a command.
func (c *Client) RespawnPane(target, dir string, command []string) error {
	args := []string{"respawn-pane", "-k", "-t", target}
	if strings.TrimSpace(dir) != "" {
		args = append(args, "-c", dir)
	}
	if len(command) > 0 {
		args = append(args, "--")
		args = append(args, command...)
	}
	return c.run(args)
}

// SplitPane splits the target pane vertically and runs a command in the new
// pane without taking focus.
func (c *Client) SplitPane(target, dir string, command []string) error {
	args := []string{"split-window", "-d", "-v", "-t", target}
	if strings.TrimSpace(dir) != "" {
		args = append(args, "-c", dir)
	}
	if len(command) > 0 {
		args = append(args, "--")
		args = append(args, command...)
	}
	return c.run(args)
}

// SelectLayout applies a named layout to the target window.
func (c *Client) SelectLayout(target, layout string) error {
	return c.run([]string{"select-layout", "-t", target, layout})
}

// ResizePaneShare resizes a pane to a percentage of the window height.
func (c *Client) ResizePaneShare(target string, percent int) error {
	return c.run([]string{"resize-pane", "-t", target, "-y", fmt.Sprintf("%d%%", percent)})
}

// SetPaneTitle labels a pane.
func (c *Client) SetPaneTitle(target, title string) error {
	return c.run([]string{"select-pane", "-t", target, "-T", title})
}

// SelectPane moves input focus to the target pane.
func (c *Client) SelectPane(target string) error {
	return c.run([]string{"select-pane", "-t", target})
}

// SetOption sets a session option.
func (c *Client) SetOption(session, option, value string) error {
	return c.run([]string{"set-option", "-t", session, option, value})
}

func (c *Client) run(args []string) error {
	if c == nil || c.runner == nil {
		return errors.New("tmux runner unavailable")
	}
	output, err := c.runner.Run(args)
	if err != nil {
		if len(output) > 0 {
			return fmt.Errorf("tmux %s failed: %s", args[0], bytes.TrimSpace(output))
		}
		return fmt.Errorf("tmux %s failed: %w", args[0], err)
	}
	return nil
}

type execRunner struct{}

func (execRunner) Run(args []string) ([]byte, error) {
	return exec.Command("tmux", args...).CombinedOutput()
}

var getenv = os.Getenv

// AttachCommand returns the command that attaches the current terminal to a
// session, switching clients when already running inside tmux.
func AttachCommand(name string) []string {
	if strings.TrimSpace(getenv("TMUX")) != "" {
		return []string{"tmux", "switch-client", "-t", name}
	}
	return []string{"tmux", "attach-session", "-t", name}
}
