package session

import (
	"errors"
	"testing"
)

type fakeMux struct {
	sessions map[string]bool
	existErr error

	created   []string
	slots     []SlotSpec
	layouts   []int
	focused   []int
	destroyed []string
}

func newFakeMux() *fakeMux {
	return &fakeMux{sessions: map[string]bool{}}
}

func (f *fakeMux) Exists(name string) (bool, error) {
	if f.existErr != nil {
		return false, f.existErr
	}
	return f.sessions[name], nil
}

func (f *fakeMux) Create(name string) error {
	f.sessions[name] = true
	f.created = append(f.created, name)
	return nil
}

func (f *fakeMux) AddSlot(name string, slot SlotSpec) error {
	f.slots = append(f.slots, slot)
	return nil
}

func (f *fakeMux) SetLayout(name string, primaryShare int) error {
	f.layouts = append(f.layouts, primaryShare)
	return nil
}

func (f *fakeMux) Focus(name string, index int) error {
	f.focused = append(f.focused, index)
	return nil
}

func (f *fakeMux) Destroy(name string) error {
	delete(f.sessions, name)
	f.destroyed = append(f.destroyed, name)
	return nil
}

func TestManagerCreateRefusesDuplicate(t *testing.T) {
	mux := newFakeMux()
	manager := NewManager(mux, nil)

	first, err := manager.Create("assetintel")
	if err != nil {
		t.Fatalf("first create: %v", err)
	}
	if first == nil || first.Name() != "assetintel" {
		t.Fatalf("unexpected session handle: %#v", first)
	}

	second, err := manager.Create("assetintel")
	if !errors.Is(err, ErrSessionExists) {
		t.Fatalf("expected ErrSessionExists, got %v", err)
	}
	if second != nil {
		t.Fatal("expected no session handle on duplicate create")
	}
	if len(mux.created) != 1 {
		t.Fatalf("expected 1 creation, got %d", len(mux.created))
	}
	if len(mux.slots) != 0 {
		t.Fatalf("expected no slots on refused create, got %d", len(mux.slots))
	}
}

func TestManagerCreatePropagatesExistenceFailure(t *testing.T) {
	mux := newFakeMux()
	mux.existErr = errors.New("tmux unavailable")
	manager := NewManager(mux, nil)

	if _, err := manager.Create("assetintel"); err == nil {
		t.Fatal("expected error when the existence check fails")
	}
	if len(mux.created) != 0 {
		t.Fatal("expected no creation after a failed existence check")
	}
}

func TestManagerDestroyMissingSession(t *testing.T) {
	mux := newFakeMux()
	manager := NewManager(mux, nil)

	err := manager.Destroy("assetintel")
	if !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	if len(mux.destroyed) != 0 {
		t.Fatal("expected no destroy call for an absent session")
	}
}

func TestManagerDestroyRunningSession(t *testing.T) {
	mux := newFakeMux()
	manager := NewManager(mux, nil)

	if _, err := manager.Create("assetintel"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := manager.Destroy("assetintel"); err != nil {
		t.Fatalf("destroy: %v", err)
	}
	if len(mux.destroyed) != 1 || mux.destroyed[0] != "assetintel" {
		t.Fatalf("unexpected destroy calls: %#v", mux.destroyed)
	}
}

func TestSessionTracksSlots(t *testing.T) {
	mux := newFakeMux()
	manager := NewManager(mux, nil)

	sess, err := manager.Create("assetintel")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	slot := SlotSpec{Index: 0, Title: "broker", Argv: []string{"redis-server"}}
	if err := sess.AddSlot(slot); err != nil {
		t.Fatalf("add slot: %v", err)
	}
	slots := sess.Slots()
	if len(slots) != 1 || slots[0].Title != "broker" {
		t.Fatalf("unexpected slots: %#v", slots)
	}
}
