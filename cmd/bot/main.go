// Package main is the entry point for the bot process. It wires the task
// queue, the chat, persona, dice, daily game and notification services and
// serves the command API that the chat gateway calls.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	// Daily game schedules need IANA zones even on minimal images.
	_ "time/tzdata"

	"github.com/phrazzld/cunningbot/internal/config"
	"github.com/phrazzld/cunningbot/internal/platform/discord"
	"github.com/phrazzld/cunningbot/internal/platform/gemini"
	"github.com/phrazzld/cunningbot/internal/platform/logger"
	"github.com/phrazzld/cunningbot/internal/platform/redis"
	"github.com/phrazzld/cunningbot/internal/redact"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("bot exited with error: %s", redact.Error(err))
	}
}

// run loads configuration, connects external dependencies and blocks until
// a shutdown signal arrives.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	lg, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}
	lg.Info("configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"queue_capacity", cfg.Queue.Capacity,
		"timezone", cfg.DailyGame.Timezone)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rdb, err := redis.Connect(ctx, cfg.Redis.URL)
	if err != nil {
		return err
	}
	lg.Info("connected to Redis")

	generator, err := gemini.NewGeminiGenerator(ctx, lg.With("component", "llm_generator"), cfg.LLM)
	if err != nil {
		_ = rdb.Close()
		return fmt.Errorf("failed to initialize LLM generator: %w", err)
	}
	lg.Info("LLM generator initialized", "model", cfg.LLM.ModelName)

	poster, err := discord.NewClient(cfg.Discord, lg)
	if err != nil {
		_ = rdb.Close()
		return fmt.Errorf("failed to initialize Discord client: %w", err)
	}

	app, err := newApplication(cfg, lg, rdb, generator, poster)
	if err != nil {
		_ = rdb.Close()
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}
