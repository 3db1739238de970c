package topology

import (
	"errors"
	"strings"
	"testing"

	"assetstack/internal/config"
	"assetstack/internal/session"
)

type fakeMux struct {
	slots      []session.SlotSpec
	layouts    []int
	focused    []int
	slotErr    error
	operations []string
}

func (f *fakeMux) Exists(name string) (bool, error) { return false, nil }

func (f *fakeMux) Create(name string) error {
	f.operations = append(f.operations, "create")
	return nil
}

func (f *fakeMux) AddSlot(name string, slot session.SlotSpec) error {
	if f.slotErr != nil {
		return f.slotErr
	}
	f.slots = append(f.slots, slot)
	f.operations = append(f.operations, "slot:"+slot.Title)
	return nil
}

func (f *fakeMux) SetLayout(name string, primaryShare int) error {
	f.layouts = append(f.layouts, primaryShare)
	f.operations = append(f.operations, "layout")
	return nil
}

func (f *fakeMux) Focus(name string, index int) error {
	f.focused = append(f.focused, index)
	f.operations = append(f.operations, "focus")
	return nil
}

func (f *fakeMux) Destroy(name string) error { return nil }

func testConfig(t *testing.T) config.Config {
	t.Helper()
	cfg, err := config.Resolve(map[string]any{config.KeyProjectDir: t.TempDir()})
	if err != nil {
		t.Fatalf("resolve config: %v", err)
	}
	return cfg
}

func launchWith(t *testing.T, mux *fakeMux, cfg config.Config) (*LaunchResult, error) {
	t.Helper()
	manager := session.NewManager(mux, nil)
	sess, err := manager.Create(cfg.SessionName)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	return Launch(sess, NewRegistry(cfg), config.Project(cfg))
}

func TestLaunchCreatesThreeSlotsInOrder(t *testing.T) {
	mux := &fakeMux{}
	cfg := testConfig(t)

	result, err := launchWith(t, mux, cfg)
	if err != nil {
		t.Fatalf("launch: %v", err)
	}
	if len(mux.slots) != 3 {
		t.Fatalf("expected 3 slots, got %d", len(mux.slots))
	}
	expectedOrder := []string{"broker", "worker", "api-server"}
	for i, title := range expectedOrder {
		if mux.slots[i].Title != title {
			t.Fatalf("slot %d: expected %q, got %q", i, title, mux.slots[i].Title)
		}
		if mux.slots[i].Index != i {
			t.Fatalf("slot %d: unexpected index %d", i, mux.slots[i].Index)
		}
		if mux.slots[i].Dir != cfg.ProjectDir {
			t.Fatalf("slot %d: unexpected dir %q", i, mux.slots[i].Dir)
		}
	}
	if len(result.Slots) != 3 {
		t.Fatalf("unexpected result slots: %#v", result.Slots)
	}
}

func TestLaunchAppliesLayoutAndFocusAfterSlots(t *testing.T) {
	mux := &fakeMux{}
	cfg := testConfig(t)

	if _, err := launchWith(t, mux, cfg); err != nil {
		t.Fatalf("launch: %v", err)
	}
	expected := []string{"create", "slot:broker", "slot:worker", "slot:api-server", "layout", "focus"}
	if strings.Join(mux.operations, ",") != strings.Join(expected, ",") {
		t.Fatalf("unexpected operation order: %#v", mux.operations)
	}
	if len(mux.layouts) != 1 || mux.layouts[0] != brokerPaneShare {
		t.Fatalf("unexpected layouts: %#v", mux.layouts)
	}
	if len(mux.focused) != 1 || mux.focused[0] != 2 {
		t.Fatalf("expected focus on slot 2, got %#v", mux.focused)
	}
}

func TestLaunchProjectsEnvironmentIntoSlots(t *testing.T) {
	mux := &fakeMux{}
	cfg := testConfig(t)
	cfg.Port = 9000

	if _, err := launchWith(t, mux, cfg); err != nil {
		t.Fatalf("launch: %v", err)
	}
	for i, slot := range mux.slots {
		found := false
		for _, pair := range slot.Env {
			if pair == "PORT=9000" {
				found = true
			}
		}
		if !found {
			t.Fatalf("slot %d missing PORT in env: %#v", i, slot.Env)
		}
	}
}

func TestLaunchStopsOnSlotFailureWithoutRollback(t *testing.T) {
	mux := &fakeMux{slotErr: errors.New("pane creation rejected")}
	cfg := testConfig(t)

	if _, err := launchWith(t, mux, cfg); err == nil {
		t.Fatal("expected launch to fail")
	}
	for _, operation := range mux.operations {
		if operation == "layout" || operation == "focus" {
			t.Fatalf("unexpected operation after failure: %#v", mux.operations)
		}
	}
}
