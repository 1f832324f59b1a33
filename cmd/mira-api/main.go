package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	cli "github.com/urfave/cli/v3"

	"github.com/advisorhub/mira/pkg/log"
	"github.com/advisorhub/mira/pkg/otelhelper"
)

const defaultPort = 9090

func main() {
	logger := log.WithModule("api")

	cmd := &cli.Command{
		Name:                  "mira-api",
		Usage:                 "Serve the Mira action orchestration API",
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to run the API server on",
				Value:   defaultPort,
				Sources: cli.EnvVars("PORT"),
			},
			&cli.StringFlag{
				Name:    "database-url",
				Usage:   "Postgres connection URL (omit to use the seeded in-memory store)",
				Sources: cli.EnvVars("DATABASE_URL"),
			},
			&cli.StringFlag{
				Name:    "redis-url",
				Usage:   "Redis connection URL for behavioral tracking (omit to disable)",
				Sources: cli.EnvVars("REDIS_URL"),
			},
			&cli.StringFlag{
				Name:    "event-bus",
				Usage:   "Event bus provider (gochannel, kafka)",
				Value:   "gochannel",
				Sources: cli.EnvVars("EVENT_BUS"),
			},
			&cli.StringSliceFlag{
				Name:    "kafka-brokers",
				Usage:   "Kafka broker addresses (required when event-bus is kafka)",
				Sources: cli.EnvVars("KAFKA_BROKERS"),
			},
			&cli.StringFlag{
				Name:    "insight-schedule",
				Usage:   "Cron expression for the proactive insight sweep",
				Sources: cli.EnvVars("INSIGHT_SCHEDULE"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "info",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			log.Setup(command.String("log-level"))

			tracerProvider, err := otelhelper.InitTracer(ctx, "mira-api")
			if err != nil {
				return fmt.Errorf("initialize tracer: %w", err)
			}
			defer func() {
				if err := tracerProvider.Shutdown(context.Background()); err != nil {
					logger.Error("Failed to shut down tracer provider", "error", err)
				}
			}()

			logger.InfoContext(ctx, "Initializing Mira API")

			api, err := NewAPI(ctx, logger, Config{
				DatabaseURL:     command.String("database-url"),
				RedisURL:        command.String("redis-url"),
				EventBus:        command.String("event-bus"),
				KafkaBrokers:    command.StringSlice("kafka-brokers"),
				InsightSchedule: command.String("insight-schedule"),
			})
			if err != nil {
				return err
			}

			runCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			go func() {
				<-runCtx.Done()
				logger.Info("Shutting down Mira API")

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				api.Shutdown(shutdownCtx)
			}()

			return api.Start(runCtx, command.Int("port"))
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		logger.Error("Mira API exited with error", "error", err)
		os.Exit(1)
	}
}
