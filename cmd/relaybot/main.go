// Command relaybot is a reference host for the relay framework: it wires
// the container, bus, registry, and plugin manager, then reads commands
// from stdin as a stand-in for a real chat transport. A small HTTP surface
// exposes plugin health and Prometheus metrics.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/xraph/relay/command"
	"github.com/xraph/relay/config"
	"github.com/xraph/relay/di"
	"github.com/xraph/relay/events"
	"github.com/xraph/relay/logger"
	"github.com/xraph/relay/metrics"
	"github.com/xraph/relay/middleware"
	"github.com/xraph/relay/plugin"

	// Builtin plugin units self-register on import.
	_ "github.com/xraph/relay/plugins/ping"
	_ "github.com/xraph/relay/plugins/sysinfo"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "relaybot:", err)
		os.Exit(1)
	}
}

func run() error {
	// .env is optional; real deployments use the environment directly
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("RELAY_CONFIG"))
	if err != nil {
		return err
	}

	log := logger.NewLogger(cfg.Logging)
	defer func() { _ = log.Sync() }()
	logger.SetGlobalLogger(log)

	collector := metrics.NewMemoryCollector()
	promCollector := metrics.NewPrometheusCollector(prometheus.DefaultRegisterer)

	bus := events.New()
	registry := command.NewRegistry(log)

	container := di.New()
	container.RegisterSingleton("logger", log)
	container.RegisterSingleton("metrics", collector)
	container.RegisterSingleton("event_bus", bus)
	container.RegisterSingleton("command_registry", registry)
	di.SetContainer(container)

	// Ordering is load-bearing: authorization runs before rate limiting so
	// unauthorized traffic never consumes rate budget.
	limiterOpts := []middleware.SlidingWindowOption{
		middleware.WithWindow(cfg.RateLimit.Window),
	}
	if cfg.RateLimit.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RateLimit.RedisAddr})
		limiterOpts = append(limiterOpts,
			middleware.WithStore(middleware.NewRedisRateLimitStore(client, "")))
		log.Info("rate limiting backed by redis", logger.String("addr", cfg.RateLimit.RedisAddr))
	}
	limiter := middleware.NewSlidingWindow(cfg.RateLimit.MaxPerWindow, limiterOpts...)
	registry.Chain().Use(
		middleware.RequestID(),
		middleware.Recovery(log),
		middleware.Logging(log),
		middleware.Authorization(cfg.Owner.UserID, log),
		middleware.RateLimit(limiter, log),
		middleware.Metrics(collector),
		middleware.Metrics(promCollector),
		middleware.Tracing("relaybot"),
	)

	loaderOpts := []plugin.LoaderOption{}
	if cfg.Plugins.Dir != "" {
		loaderOpts = append(loaderOpts, plugin.WithDir(cfg.Plugins.Dir))
	}
	manager := plugin.NewManager(plugin.NewLoader(log, loaderOpts...), container, log)

	if err := manager.DiscoverAndLoad(); err != nil {
		return err
	}
	for _, name := range cfg.Plugins.Disabled {
		if err := manager.DisablePlugin(name); err != nil {
			log.Warn("cannot disable plugin", logger.String("plugin", name), logger.Error(err))
		}
	}
	manager.RegisterPlugins(bus, registry)

	go serveHTTP(cfg.HTTP.Addr, manager, log)

	log.Info("relaybot ready",
		logger.Int("commands", len(registry.Info())),
		logger.Int("plugins", len(manager.LoadedPlugins())),
	)

	return consoleLoop(registry, cfg.Owner.UserID)
}

// consoleLoop is the stand-in transport: each stdin line becomes one
// dispatch from the owner user.
func consoleLoop(registry *command.Registry, ownerID int64) error {
	scanner := bufio.NewScanner(os.Stdin)
	replier := consoleReplier{}

	fmt.Println("relaybot console. Type /help for commands, Ctrl-D to exit.")
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		name := fields[0]

		if name == "/help" {
			printHelp(registry)
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		result, err := registry.Dispatch(ctx, name, &command.Request{
			UserID:  ownerID,
			Args:    fields[1:],
			Update:  line,
			Replier: replier,
		})
		cancel()

		switch {
		case err != nil:
			fmt.Println("error:", err)
		case result != nil:
			fmt.Println(result)
		}
	}

	return scanner.Err()
}

func printHelp(registry *command.Registry) {
	for _, meta := range registry.Info() {
		usage := meta.Usage
		if usage == "" {
			usage = meta.Name
		}
		fmt.Printf("  %-20s %s\n", usage, meta.Description)
	}
}

type consoleReplier struct{}

func (consoleReplier) Reply(_ context.Context, text string) error {
	fmt.Println(text)
	return nil
}

// serveHTTP exposes plugin health and Prometheus metrics.
func serveHTTP(addr string, manager *plugin.Manager, log logger.Logger) {
	r := chi.NewRouter()
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":  "ok",
			"plugins": manager.LoadedPlugins(),
		})
	})
	r.Handle("/metrics", promhttp.Handler())

	if err := http.ListenAndServe(addr, r); err != nil {
		log.Error("http server stopped", logger.Error(err))
	}
}
