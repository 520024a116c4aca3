package plugin

import (
	"os"
	"path/filepath"
	"plugin"
	"sort"
	"strings"

	"github.com/xraph/relay/command"
	"github.com/xraph/relay/errors"
	"github.com/xraph/relay/events"
	"github.com/xraph/relay/logger"
)

// Loader discovers plugin units and imports them: builtin units from the
// manifest, plus optional shared objects built with -buildmode=plugin from
// a directory. One broken unit never stops the others; only an unreadable
// plugin directory is fatal, since then there is nothing to discover.
type Loader struct {
	dir    string
	logger logger.Logger
	units  []Unit
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithDir sets a directory to scan for .so plugin files.
func WithDir(dir string) LoaderOption {
	return func(l *Loader) {
		l.dir = dir
	}
}

// NewLoader creates a loader over the builtin manifest.
func NewLoader(log logger.Logger, opts ...LoaderOption) *Loader {
	if log == nil {
		log = logger.NewNoopLogger()
	}
	l := &Loader{
		logger: log.Named("plugin-loader"),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// DiscoverAndLoad imports every discoverable unit, appending each to the
// loaded list. Individual failures are logged and skipped.
func (l *Loader) DiscoverAndLoad() error {
	l.units = l.units[:0]

	for _, u := range Builtins() {
		l.units = append(l.units, u)
		l.logger.Debug("builtin plugin loaded", logger.String("plugin", u.Name()))
	}

	if l.dir == "" {
		return nil
	}

	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return errors.ErrPluginLoad(l.dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".so") {
			continue
		}
		files = append(files, entry.Name())
	}
	sort.Strings(files)

	for _, file := range files {
		unit, err := l.loadShared(filepath.Join(l.dir, file))
		if err != nil {
			l.logger.Error("skipping plugin",
				logger.String("file", file),
				logger.Error(err),
			)
			continue
		}
		l.units = append(l.units, unit)
		l.logger.Info("plugin loaded",
			logger.String("plugin", unit.Name()),
			logger.String("file", file),
		)
	}

	return nil
}

// Units returns the loaded units in load order.
func (l *Loader) Units() []Unit {
	out := make([]Unit, len(l.units))
	copy(out, l.units)
	return out
}

// RegisterPlugins invokes every loaded unit's Register with the given bus
// and registry. A failure from one unit is logged and the loop continues.
func (l *Loader) RegisterPlugins(bus *events.Bus, registry *command.Registry) {
	for _, u := range l.units {
		if err := u.Register(bus, registry); err != nil {
			l.logger.Error("plugin registration failed",
				logger.String("plugin", u.Name()),
				logger.Error(err),
			)
			continue
		}
		l.logger.Info("plugin registered", logger.String("plugin", u.Name()))
	}
}

// loadShared opens a shared object and adapts its exported symbols into a
// Unit. The object must export
//
//	func Register(*events.Bus, *command.Registry) error
//
// and may export Meta *plugin.Metadata.
func (l *Loader) loadShared(path string) (Unit, error) {
	name := strings.TrimSuffix(filepath.Base(path), ".so")

	p, err := plugin.Open(path)
	if err != nil {
		return nil, errors.ErrPluginLoad(name, err)
	}

	sym, err := p.Lookup("Register")
	if err != nil {
		return nil, errors.ErrPluginLoad(name, err)
	}
	register, ok := sym.(func(*events.Bus, *command.Registry) error)
	if !ok {
		return nil, errors.ErrPluginLoad(name, errors.New("Register has wrong signature"))
	}

	unit := &Func{UnitName: name, Fn: register}

	if metaSym, err := p.Lookup("Meta"); err == nil {
		if meta, ok := metaSym.(**Metadata); ok && *meta != nil {
			unit.Meta = *meta
		}
	}

	return unit, nil
}
