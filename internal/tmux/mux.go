package tmux

import (
	"fmt"

	"assetstack/internal/session"
)

// Mux adapts the tmux client to the orchestrator's multiplexer interface.
// Slot index 0 takes over the placeholder pane created with the session;
// later slots split the pane above them, so pane indexes match slot
// indexes.
type Mux struct {
	client *Client
}

func NewMux() *Mux {
	return &Mux{client: NewClient()}
}

func NewMuxWithClient(client *Client) *Mux {
	return &Mux{client: client}
}

func (m *Mux) Exists(name string) (bool, error) {
	return m.client.HasSession(name)
}

func (m *Mux) Create(name string) error {
	if err := m.client.NewSession(name); err != nil {
		return err
	}
	// Render pane titles so slot labels are visible when attached.
	return m.client.SetOption(name, "pane-border-status", "top")
}

func (m *Mux) AddSlot(name string, slot session.SlotSpec) error {
	command := commandWithEnv(slot.Env, slot.Argv)
	target := paneTarget(name, slot.Index)
	if slot.Index == 0 {
		if err := m.client.RespawnPane(target, slot.Dir, command); err != nil {
			return err
		}
	} else {
		if err := m.client.SplitPane(paneTarget(name, slot.Index-1), slot.Dir, command); err != nil {
			return err
		}
	}
	return m.client.SetPaneTitle(target, slot.Title)
}

func (m *Mux) SetLayout(name string, primaryShare int) error {
	if err := m.client.SelectLayout(name+":0", "even-vertical"); err != nil {
		return err
	}
	if primaryShare <= 0 {
		return nil
	}
	return m.client.ResizePaneShare(paneTarget(name, 0), primaryShare)
}

func (m *Mux) Focus(name string, index int) error {
	return m.client.SelectPane(paneTarget(name, index))
}

func (m *Mux) Destroy(name string) error {
	return m.client.KillSession(name)
}

// commandWithEnv prefixes the command with env(1) so the variables reach
// the spawned process directly, with no shell quoting involved.
func commandWithEnv(env, argv []string) []string {
	if len(env) == 0 {
		return argv
	}
	command := make([]string, 0, len(env)+len(argv)+1)
	command = append(command, "env")
	command = append(command, env...)
	command = append(command, argv...)
	return command
}

func paneTarget(name string, index int) string {
	return fmt.Sprintf("%s:0.%d", name, index)
}
