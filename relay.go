// Package relay is a single-process command-handling framework for
// chat-style bots. It routes named commands to handlers through a
// configurable middleware chain and lets independently loaded plugin units
// contribute commands and event listeners without the core knowing about
// them at compile time.
//
// The root package is a facade: each concern lives in its own subpackage
// (di, events, command, middleware, metrics, plugin) and is re-exported
// here for hosts that prefer a single import.
package relay

import (
	"github.com/xraph/relay/command"
	"github.com/xraph/relay/di"
	"github.com/xraph/relay/events"
	"github.com/xraph/relay/logger"
	"github.com/xraph/relay/metrics"
	"github.com/xraph/relay/plugin"
)

// Dispatch types.
type (
	Handler    = command.Handler
	Middleware = command.Middleware
	Chain      = command.Chain
	Request    = command.Request
	Replier    = command.Replier
	Metadata   = command.Metadata
	Registry   = command.Registry
)

// Dependency container.
type (
	Container = di.Container
	Factory   = di.Factory
)

// Event bus.
type (
	Bus      = events.Bus
	Listener = events.Listener
)

// Plugin system.
type (
	PluginUnit     = plugin.Unit
	PluginMetadata = plugin.Metadata
	PluginLoader   = plugin.Loader
	PluginManager  = plugin.Manager
	PluginInfo     = plugin.Info
)

// Metrics.
type (
	MetricsCollector = metrics.Collector
	CommandStats     = metrics.CommandStats
)

// Logging.
type (
	Logger        = logger.Logger
	Field         = logger.Field
	LoggingConfig = logger.LoggingConfig
)

// Constructors.
var (
	NewContainer = di.New
	NewBus       = events.New
	NewChain     = command.NewChain
	NewRegistry  = command.NewRegistry

	NewPluginLoader  = plugin.NewLoader
	NewPluginManager = plugin.NewManager
	BuiltinPlugin    = plugin.Builtin

	NewMemoryCollector = metrics.NewMemoryCollector
	NewNoopCollector   = metrics.NewNoopCollector

	NewLogger            = logger.NewLogger
	NewDevelopmentLogger = logger.NewDevelopmentLogger
	NewProductionLogger  = logger.NewProductionLogger
	NewNoopLogger        = logger.NewNoopLogger
	GetGlobalLogger      = logger.GetGlobalLogger
	SetGlobalLogger      = logger.SetGlobalLogger
)

// Service locator helpers.
var (
	SetContainer = di.SetContainer
	Locate       = di.Locate
	Contains     = di.Contains
)
