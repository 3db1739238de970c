package topology

import (
	"errors"
	"fmt"

	"assetstack/internal/config"
	"assetstack/internal/session"
)

// brokerPaneShare is the vertical share given to the broker slot; the
// remaining roles split the rest evenly. Cosmetic, not functional.
const brokerPaneShare = 20

// SlotInfo records one launched slot.
type SlotInfo struct {
	Index int
	Role  Role
}

// LaunchResult reports what was placed into the session.
type LaunchResult struct {
	Session string
	Slots   []SlotInfo
}

// Launch instantiates every role into its own slot in fixed order, applies
// the layout, labels the slots through their specs, and leaves focus on the
// API server. It returns once the commands have been issued; readiness is
// the caller's concern, via the probes. On failure it stops immediately and
// does not roll back already created slots; stop-session cleans up.
func Launch(sess *session.Session, registry *Registry, env map[string]string) (*LaunchResult, error) {
	if sess == nil {
		return nil, errors.New("session is required")
	}
	if registry == nil {
		return nil, errors.New("registry is required")
	}

	environ := config.EnvironList(env)
	result := &LaunchResult{Session: sess.Name()}
	for index, role := range Roles() {
		spec := registry.SpecFor(role)
		slot := session.SlotSpec{
			Index: index,
			Title: string(role),
			Dir:   spec.Dir,
			Env:   environ,
			Argv:  spec.Argv,
		}
		if err := sess.AddSlot(slot); err != nil {
			return nil, fmt.Errorf("add slot %d (%s): %w", index, role, err)
		}
		result.Slots = append(result.Slots, SlotInfo{Index: index, Role: role})
	}

	if err := sess.SetLayout(brokerPaneShare); err != nil {
		return nil, fmt.Errorf("set layout: %w", err)
	}
	focusIndex := len(Roles()) - 1
	if err := sess.Focus(focusIndex); err != nil {
		return nil, fmt.Errorf("focus %s: %w", RoleAPIServer, err)
	}
	return result, nil
}
