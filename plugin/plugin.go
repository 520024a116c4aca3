package plugin

import (
	"sort"
	"sync"

	"github.com/xraph/relay/command"
	"github.com/xraph/relay/events"
)

// Unit is an independently loaded plugin. Register is its single required
// entry point: it conventionally calls registry.Register and bus.Subscribe
// any number of times.
type Unit interface {
	Name() string
	Register(bus *events.Bus, registry *command.Registry) error
}

// MetadataProvider is an optional interface for units that carry their own
// metadata. The bool result reports whether metadata is actually present;
// units reporting false get the discovery-time defaults, like units that
// never implement the interface at all.
type MetadataProvider interface {
	Metadata() (Metadata, bool)
}

// Metadata describes a plugin. It is created at discovery (defaulted) or
// pre-registered explicitly, mutated only via enable/disable, and never
// removed for the process lifetime.
type Metadata struct {
	Name         string   `json:"name"`
	Version      string   `json:"version"`
	Description  string   `json:"description"`
	Author       string   `json:"author"`
	Dependencies []string `json:"dependencies"`
	Enabled      bool     `json:"enabled"`
}

// Func adapts a plain register function into a Unit.
type Func struct {
	UnitName string
	Fn       func(bus *events.Bus, registry *command.Registry) error
	Meta     *Metadata
}

func (f *Func) Name() string {
	return f.UnitName
}

func (f *Func) Register(bus *events.Bus, registry *command.Registry) error {
	return f.Fn(bus, registry)
}

func (f *Func) Metadata() (Metadata, bool) {
	if f.Meta == nil {
		return Metadata{}, false
	}
	return *f.Meta, true
}

// Builtin manifest: plugin packages self-register from init(), replacing
// the filesystem reflection a dynamic runtime would use. The loader reads
// the manifest in sorted-name order so discovery is deterministic.
var (
	builtinsMu sync.Mutex
	builtins   = make(map[string]Unit)
)

// Builtin adds a unit to the manifest. Same-name registration is
// last-write-wins, mirroring command registration.
func Builtin(u Unit) {
	if u == nil {
		return
	}
	builtinsMu.Lock()
	defer builtinsMu.Unlock()
	builtins[u.Name()] = u
}

// Builtins returns the manifest sorted by unit name.
func Builtins() []Unit {
	builtinsMu.Lock()
	defer builtinsMu.Unlock()

	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)

	units := make([]Unit, 0, len(names))
	for _, name := range names {
		units = append(units, builtins[name])
	}
	return units
}

// ClearBuiltins empties the manifest. Test helper.
func ClearBuiltins() {
	builtinsMu.Lock()
	defer builtinsMu.Unlock()
	builtins = make(map[string]Unit)
}
