package session

import (
	"errors"
	"fmt"
	"log/slog"
)

// ErrSessionExists reports a refused duplicate creation; the caller should
// attach to the running session instead.
var ErrSessionExists = errors.New("session already exists")

// ErrSessionNotFound reports an absent session on destroy; callers treat it
// as already-stopped.
var ErrSessionNotFound = errors.New("session not found")

// Manager owns creation, termination, and existence queries for named
// sessions. The multiplexer is the source of truth for existence; nothing
// is cached here.
type Manager struct {
	mux    Multiplexer
	logger *slog.Logger
}

func NewManager(mux Multiplexer, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{mux: mux, logger: logger}
}

// Exists queries the multiplexer. An absent session is a false result, not
// an error.
func (m *Manager) Exists(name string) (bool, error) {
	return m.mux.Exists(name)
}

// Create allocates a new empty session, refusing to duplicate an existing
// one. The existence check is best-effort: a concurrent creator loses at
// the multiplexer level rather than here. No slots are created when
// creation fails.
func (m *Manager) Create(name string) (*Session, error) {
	exists, err := m.mux.Exists(name)
	if err != nil {
		return nil, fmt.Errorf("check session %q: %w", name, err)
	}
	if exists {
		return nil, fmt.Errorf("session %q: %w", name, ErrSessionExists)
	}
	if err := m.mux.Create(name); err != nil {
		return nil, fmt.Errorf("create session %q: %w", name, err)
	}
	m.logger.Info("session created", "session", name)
	return &Session{name: name, mux: m.mux}, nil
}

// Destroy terminates the session and every slot in it. An absent session
// returns ErrSessionNotFound, which is a success-equivalent outcome for
// stop.
func (m *Manager) Destroy(name string) error {
	exists, err := m.mux.Exists(name)
	if err != nil {
		return fmt.Errorf("check session %q: %w", name, err)
	}
	if !exists {
		m.logger.Info("session already gone", "session", name)
		return fmt.Errorf("session %q: %w", name, ErrSessionNotFound)
	}
	if err := m.mux.Destroy(name); err != nil {
		return fmt.Errorf("destroy session %q: %w", name, err)
	}
	m.logger.Info("session destroyed", "session", name)
	return nil
}
