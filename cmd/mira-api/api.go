// Package main provides the Mira API server implementation.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	fiberlogger "github.com/gofiber/fiber/v3/middleware/logger"

	"github.com/advisorhub/mira/pkg/actions"
	"github.com/advisorhub/mira/pkg/agents"
	"github.com/advisorhub/mira/pkg/behavior"
	"github.com/advisorhub/mira/pkg/catalog"
	"github.com/advisorhub/mira/pkg/channels/gochannel"
	"github.com/advisorhub/mira/pkg/channels/kafka"
	"github.com/advisorhub/mira/pkg/eventbus"
	"github.com/advisorhub/mira/pkg/executor"
	"github.com/advisorhub/mira/pkg/insights"
	"github.com/advisorhub/mira/pkg/otelhelper"
	"github.com/advisorhub/mira/pkg/registry"
	"github.com/advisorhub/mira/pkg/shortcuts"
	"github.com/advisorhub/mira/pkg/store"
	"github.com/advisorhub/mira/pkg/store/memory"
	"github.com/advisorhub/mira/pkg/store/postgres"
	"github.com/advisorhub/mira/pkg/suggestions"
	"github.com/advisorhub/mira/pkg/tools"
	"github.com/advisorhub/mira/pkg/web"
)

const sessionTTL = 24 * time.Hour

// Config selects the backing services for one API instance.
type Config struct {
	DatabaseURL     string
	RedisURL        string
	EventBus        string
	KafkaBrokers    []string
	InsightSchedule string
}

type API struct {
	logger    *slog.Logger
	app       *fiber.App
	store     store.Store
	bus       eventbus.EventBus
	recorder  *behavior.Recorder
	scheduler *insights.Scheduler
}

// NewAPI wires the full service graph. Everything downstream receives its
// dependencies here; no package holds global state.
func NewAPI(ctx context.Context, logger *slog.Logger, cfg Config) (*API, error) {
	st, err := newStore(ctx, logger, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	bus, err := newEventBus(logger, cfg)
	if err != nil {
		return nil, err
	}

	toolRegistry := tools.NewRegistry(logger, tools.DefaultRetryConfig(), newToolFailureSink(logger, bus))
	tools.RegisterCustomerTools(toolRegistry, st)
	tools.RegisterNewBusinessTools(toolRegistry, st)
	tools.RegisterProductTools(toolRegistry, st)
	tools.RegisterAnalyticsTools(toolRegistry, st)
	tools.RegisterTodoTools(toolRegistry, st)
	tools.RegisterBroadcastTools(toolRegistry, st)
	tools.RegisterVisualizerTools(toolRegistry, st)

	router := agents.NewRouter(logger)
	router.Register(agents.NewCustomerAgent(logger, toolRegistry))
	router.Register(agents.NewNewBusinessAgent(logger, toolRegistry))
	router.Register(agents.NewProductAgent(logger, toolRegistry))
	router.Register(agents.NewAnalyticsAgent(logger, toolRegistry))
	router.Register(agents.NewTodoAgent(logger, toolRegistry))
	router.Register(agents.NewBroadcastAgent(logger, toolRegistry))
	router.Register(agents.NewVisualizerAgent(logger, toolRegistry))

	cat := catalog.New()

	actionRegistry := registry.NewRegistry(logger, registry.DefaultConfig())

	for _, template := range cat.Templates() {
		action := template.Action
		if err := actionRegistry.Register(&action); err != nil {
			return nil, fmt.Errorf("register action %s: %w", action.ID, err)
		}
	}

	exec := executor.NewExecutor(logger, executor.Options{
		Usage:  actionRegistry,
		Audit:  newEventAuditSink(logger, bus),
		Tracer: otelhelper.Tracer("action-executor"),
	})
	actions.Register(exec, st, logger)

	manager := shortcuts.NewManager(logger, exec)

	for _, action := range actionRegistry.All() {
		if action.KeyboardShortcut != "" {
			manager.RegisterAction(action)
		}
	}

	var recorder *behavior.Recorder

	if cfg.RedisURL != "" {
		recorder, err = behavior.NewRecorder(ctx, logger, cfg.RedisURL, sessionTTL)
		if err != nil {
			return nil, fmt.Errorf("connect behavior recorder: %w", err)
		}
	}

	tracker := insights.NewContextTracker(0)
	scheduler := insights.NewScheduler(logger, router, bus, tracker, cfg.InsightSchedule)

	engine := suggestions.NewEngine(logger, cat, nil)

	handlers := web.NewAPIHandlers(
		logger, exec, actionRegistry, router, engine, manager, recorder, tracker, bus, st,
		validator.New(validator.WithRequiredStructEnabled()),
	)

	return &API{
		logger:    logger,
		app:       newApp(handlers),
		store:     st,
		bus:       bus,
		recorder:  recorder,
		scheduler: scheduler,
	}, nil
}

func newApp(handlers *web.APIHandlers) *fiber.App {
	app := fiber.New()
	app.Use(cors.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		DisableColors: true,
	}))

	app.Get(healthcheck.DefaultLivenessEndpoint, healthcheck.NewHealthChecker())
	app.Get(healthcheck.DefaultReadinessEndpoint, healthcheck.NewHealthChecker())

	app.Get("/", func(c fiber.Ctx) error {
		return c.SendString("Mira API")
	})

	a := app.Group("/actions")
	a.Get("/", handlers.ListActions)
	a.Get("/search", handlers.SearchActions)
	a.Get("/most-used", handlers.GetMostUsedActions)
	a.Get("/history", handlers.GetHistory)
	a.Post("/execute", handlers.ExecuteAction)
	a.Post("/undo", handlers.UndoLastAction)
	a.Get("/:id", handlers.GetAction)

	app.Post("/chat", handlers.Chat)

	s := app.Group("/suggestions")
	s.Post("/", handlers.GetSuggestions)
	s.Get("/quick-actions", handlers.GetQuickActions)
	s.Get("/agent", handlers.GetAgentSuggestions)

	k := app.Group("/shortcuts")
	k.Get("/", handlers.ListShortcuts)
	k.Post("/trigger", handlers.TriggerShortcut)

	app.Post("/behavior/navigation", handlers.RecordNavigation)

	app.Get("/health", handlers.HealthCheck)

	return app
}

func newStore(ctx context.Context, logger *slog.Logger, databaseURL string) (store.Store, error) {
	if databaseURL == "" {
		logger.Info("No database URL configured, using seeded in-memory store")

		return memory.NewStore(), nil
	}

	st, err := postgres.NewStore(ctx, logger, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect postgres store: %w", err)
	}

	return st, nil
}

func newEventBus(logger *slog.Logger, cfg Config) (eventbus.EventBus, error) {
	wmLogger := watermill.NewSlogLogger(logger)

	switch cfg.EventBus {
	case "kafka":
		pub, sub, err := kafka.CreateChannel(wmLogger, cfg.KafkaBrokers, "mira")
		if err != nil {
			return nil, fmt.Errorf("create kafka channel: %w", err)
		}

		return eventbus.NewWatermillEventBus(pub, sub), nil
	case "gochannel", "":
		pub, sub, err := gochannel.CreateChannel(wmLogger)
		if err != nil {
			return nil, fmt.Errorf("create gochannel: %w", err)
		}

		return eventbus.NewWatermillEventBus(pub, sub), nil
	default:
		return nil, fmt.Errorf("unsupported event bus provider: %s", cfg.EventBus)
	}
}

func (a *API) Start(ctx context.Context, port int) error {
	if err := a.scheduler.Start(ctx); err != nil {
		return err
	}

	return a.app.Listen(":" + strconv.Itoa(port))
}

func (a *API) Shutdown(ctx context.Context) {
	if err := a.app.ShutdownWithContext(ctx); err != nil {
		a.logger.Error("Failed to shut down HTTP server", "error", err)
	}

	a.scheduler.Stop()

	if a.recorder != nil {
		if err := a.recorder.Close(); err != nil {
			a.logger.Error("Failed to close behavior recorder", "error", err)
		}
	}

	if err := a.bus.Close(); err != nil {
		a.logger.Error("Failed to close event bus", "error", err)
	}

	if err := a.store.Close(); err != nil {
		a.logger.Error("Failed to close store", "error", err)
	}
}
