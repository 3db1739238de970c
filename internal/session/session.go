// Package session owns the named multi-process development session. The
// underlying process-group manager is abstracted behind the narrow
// Multiplexer interface so the concrete backend (tmux today) stays
// swappable.
package session

// SlotSpec describes one execution unit to place inside a session: which
// pane position it occupies, the human-readable role label, and the command
// to run there with its working directory and environment.
type SlotSpec struct {
	Index int
	Title string
	Dir   string
	// Env holds KEY=VALUE pairs that must be visible to the spawned
	// command itself, not only to a shell that later runs in the slot.
	Env  []string
	Argv []string
}

// Multiplexer is the full surface the orchestrator needs from the external
// process-group manager.
type Multiplexer interface {
	Exists(name string) (bool, error)
	Create(name string) error
	AddSlot(name string, slot SlotSpec) error
	// SetLayout normalizes slot sizing; primaryShare is the percentage of
	// vertical space given to the first slot, the rest split evenly.
	SetLayout(name string, primaryShare int) error
	Focus(name string, index int) error
	Destroy(name string) error
}

// Session is a handle to a live named session. Slots never outlive it; the
// multiplexer tears them down together with the session container.
type Session struct {
	name  string
	mux   Multiplexer
	slots []SlotSpec
}

func (s *Session) Name() string {
	return s.name
}

// Slots returns the slots added through this handle, in creation order.
func (s *Session) Slots() []SlotSpec {
	return append([]SlotSpec(nil), s.slots...)
}

// AddSlot instantiates one execution unit inside the session.
func (s *Session) AddSlot(slot SlotSpec) error {
	if err := s.mux.AddSlot(s.name, slot); err != nil {
		return err
	}
	s.slots = append(s.slots, slot)
	return nil
}

// SetLayout applies the fixed slot sizing across the session.
func (s *Session) SetLayout(primaryShare int) error {
	return s.mux.SetLayout(s.name, primaryShare)
}

// Focus moves input focus to the slot at index.
func (s *Session) Focus(index int) error {
	return s.mux.Focus(s.name, index)
}
