package plugin

import (
	"sort"

	"github.com/xraph/relay/command"
	"github.com/xraph/relay/di"
	"github.com/xraph/relay/errors"
	"github.com/xraph/relay/events"
	"github.com/xraph/relay/logger"
)

// DefaultVersion is assigned to units discovered without metadata.
const DefaultVersion = "1.0.0"

// Info is the external health-reporting view of one loaded plugin.
type Info struct {
	Name        string `json:"name"`
	Enabled     bool   `json:"enabled"`
	Version     string `json:"version"`
	Description string `json:"description"`
	Author      string `json:"author"`
}

// Manager layers dependency gating and an enable/disable lifecycle on top
// of the Loader. Declared plugin dependencies are names checked against
// the dependency container at registration time: a unit whose dependencies
// are not all present is skipped for that pass, with no retry, though it
// stays discoverable in memory.
type Manager struct {
	loader    *Loader
	container di.Container
	logger    logger.Logger
	metadata  map[string]*Metadata
}

// NewManager creates a manager over the given loader and container.
func NewManager(loader *Loader, container di.Container, log logger.Logger) *Manager {
	if log == nil {
		log = logger.NewNoopLogger()
	}
	return &Manager{
		loader:    loader,
		container: container,
		logger:    log.Named("plugin-manager"),
		metadata:  make(map[string]*Metadata),
	}
}

// SetMetadata pre-registers metadata for a plugin before discovery, e.g.
// from a host-read manifest.
func (m *Manager) SetMetadata(name string, meta Metadata) {
	meta.Name = name
	m.metadata[name] = &meta
}

// DiscoverAndLoad delegates to the loader, then synthesizes default
// metadata for any loaded unit lacking a pre-registered entry.
func (m *Manager) DiscoverAndLoad() error {
	if err := m.loader.DiscoverAndLoad(); err != nil {
		return err
	}

	for _, u := range m.loader.Units() {
		if _, exists := m.metadata[u.Name()]; exists {
			continue
		}

		if provider, ok := u.(MetadataProvider); ok {
			if meta, present := provider.Metadata(); present {
				meta.Name = u.Name()
				if meta.Version == "" {
					meta.Version = DefaultVersion
				}
				m.metadata[u.Name()] = &meta
				continue
			}
		}

		m.metadata[u.Name()] = &Metadata{
			Name:    u.Name(),
			Version: DefaultVersion,
			Enabled: true,
		}
	}

	return nil
}

// RegisterPlugins invokes Register on every loaded unit that is enabled
// and whose declared dependencies are all present in the container. Units
// failing either check are skipped with a warning and not retried within
// this pass; a unit whose Register fails is likewise logged and skipped.
func (m *Manager) RegisterPlugins(bus *events.Bus, registry *command.Registry) {
	for _, u := range m.loader.Units() {
		meta := m.metadata[u.Name()]
		if meta == nil || !meta.Enabled {
			m.logger.Warn("skipping disabled plugin", logger.String("plugin", u.Name()))
			continue
		}

		if missing := m.missingDependencies(meta); len(missing) > 0 {
			m.logger.Warn("skipping plugin with unsatisfied dependencies",
				logger.String("plugin", u.Name()),
				logger.Strings("missing", missing),
			)
			continue
		}

		if err := u.Register(bus, registry); err != nil {
			m.logger.Error("plugin registration failed",
				logger.String("plugin", u.Name()),
				logger.Error(err),
			)
			continue
		}
		m.logger.Info("plugin registered", logger.String("plugin", u.Name()))
	}
}

// EnablePlugin sets the enabled flag. It has no retroactive effect on a
// RegisterPlugins pass that already completed.
func (m *Manager) EnablePlugin(name string) error {
	return m.setEnabled(name, true)
}

// DisablePlugin clears the enabled flag.
func (m *Manager) DisablePlugin(name string) error {
	return m.setEnabled(name, false)
}

func (m *Manager) setEnabled(name string, enabled bool) error {
	meta, exists := m.metadata[name]
	if !exists {
		return errors.ErrPluginNotFound(name)
	}
	meta.Enabled = enabled
	return nil
}

// PluginInfo returns the metadata for one plugin.
func (m *Manager) PluginInfo(name string) (*Metadata, bool) {
	meta, exists := m.metadata[name]
	return meta, exists
}

// EnabledPlugins returns the names of enabled plugins, sorted.
func (m *Manager) EnabledPlugins() []string {
	var names []string
	for name, meta := range m.metadata {
		if meta.Enabled {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// LoadedPlugins returns health-reporting entries for every loaded unit,
// in load order.
func (m *Manager) LoadedPlugins() []Info {
	infos := make([]Info, 0, len(m.loader.Units()))
	for _, u := range m.loader.Units() {
		meta := m.metadata[u.Name()]
		if meta == nil {
			infos = append(infos, Info{Name: u.Name()})
			continue
		}
		infos = append(infos, Info{
			Name:        meta.Name,
			Enabled:     meta.Enabled,
			Version:     meta.Version,
			Description: meta.Description,
			Author:      meta.Author,
		})
	}
	return infos
}

func (m *Manager) missingDependencies(meta *Metadata) []string {
	var missing []string
	for _, dep := range meta.Dependencies {
		if !m.container.Has(dep) {
			missing = append(missing, dep)
		}
	}
	return missing
}
