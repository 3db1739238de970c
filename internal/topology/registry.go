// Package topology declares the fixed three-role process topology and
// launches it into a session. The role set is deliberately closed: this is
// not a general process manager.
package topology

import (
	"fmt"
	"strconv"

	"assetstack/internal/config"
)

// Role identifies one of the fixed process kinds the orchestrator manages.
type Role string

const (
	RoleBroker    Role = "broker"
	RoleWorker    Role = "worker"
	RoleAPIServer Role = "api-server"
)

// Roles returns every role in launch order.
func Roles() []Role {
	return []Role{RoleBroker, RoleWorker, RoleAPIServer}
}

// ProcessSpec is the command template for one role.
type ProcessSpec struct {
	Role Role
	Argv []string
	Dir  string
}

// Registry holds the command templates for the fixed topology, interpolated
// once from the resolved configuration and read-only afterwards.
type Registry struct {
	specs map[Role]ProcessSpec
}

// NewRegistry builds the three canonical specs. The broker runs standalone
// and takes no configuration-derived arguments; the worker and API server
// read the rest of their settings from the projected environment.
func NewRegistry(cfg config.Config) *Registry {
	return &Registry{specs: map[Role]ProcessSpec{
		RoleBroker: {
			Role: RoleBroker,
			Argv: []string{"redis-server"},
			Dir:  cfg.ProjectDir,
		},
		RoleWorker: {
			Role: RoleWorker,
			Argv: []string{"arq", "app.worker.WorkerSettings"},
			Dir:  cfg.ProjectDir,
		},
		RoleAPIServer: {
			Role: RoleAPIServer,
			Argv: []string{
				"uvicorn", "app.main:app",
				"--host", cfg.Host,
				"--port", strconv.Itoa(cfg.Port),
				"--reload",
			},
			Dir: cfg.ProjectDir,
		},
	}}
}

// SpecFor returns the command template for a role. The role set is closed;
// asking for anything else is a programming error.
func (r *Registry) SpecFor(role Role) ProcessSpec {
	spec, ok := r.specs[role]
	if !ok {
		panic(fmt.Sprintf("topology: unknown role %q", role))
	}
	return spec
}
