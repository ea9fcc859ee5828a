package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/cunningbot/internal/config"
	"github.com/phrazzld/cunningbot/internal/domain/dice"
	"github.com/phrazzld/cunningbot/internal/events"
	"github.com/phrazzld/cunningbot/internal/generation"
	platformredis "github.com/phrazzld/cunningbot/internal/platform/redis"
	"github.com/phrazzld/cunningbot/internal/redact"
	"github.com/phrazzld/cunningbot/internal/service"
	"github.com/phrazzld/cunningbot/internal/service/auth"
	"github.com/phrazzld/cunningbot/internal/task"
	goredis "github.com/redis/go-redis/v9"
)

const (
	// queueDrainBudget bounds how long shutdown lets queued notices run
	// before unstarted tasks are dropped.
	queueDrainBudget = 5 * time.Second

	// queueShutdownBudget bounds how long shutdown waits for the in-flight job.
	queueShutdownBudget = 10 * time.Second
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	redis  *goredis.Client

	jwtService auth.JWTService
	queue      *task.Queue
	emitter    *events.Dispatcher
	roller     *dice.Roller

	chatService         *service.ChatService
	personaService      *service.PersonaService
	dailyGameService    *service.DailyGameService
	notificationService *service.NotificationService
	scheduler           *service.Scheduler
}

// newApplication wires every service around one task queue. rdb, generator
// and poster are created by the caller so that tests can substitute them.
func newApplication(
	cfg *config.Config,
	logger *slog.Logger,
	rdb *goredis.Client,
	generator generation.Generator,
	poster service.ThreadPoster,
) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		redis:  rdb,
		roller: dice.NewRoller(),
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	personaStore := platformredis.NewPersonaStore(rdb, logger)
	channelStore := platformredis.NewUpdateChannelStore(rdb, logger)
	gameStore := platformredis.NewDailyGameStore(rdb, logger)

	app.queue = task.New(task.Config{
		Capacity:    cfg.Queue.Capacity,
		HistorySize: cfg.Queue.HistorySize,
	}, logger)

	app.chatService, err = service.NewChatService(app.queue, generator, poster, personaStore, cfg.Queue, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat service: %w", err)
	}

	app.personaService, err = service.NewPersonaService(personaStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create persona service: %w", err)
	}

	app.dailyGameService, err = service.NewDailyGameService(gameStore, cfg.DailyGame, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create daily game service: %w", err)
	}

	app.scheduler, err = service.NewScheduler(app.dailyGameService, app.queue, poster, cfg.DailyGame, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create daily game scheduler: %w", err)
	}

	app.notificationService, err = service.NewNotificationService(
		channelStore, app.queue, poster, cfg.Discord.BotName, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create notification service: %w", err)
	}

	app.emitter = events.NewDispatcher(logger)
	app.emitter.Subscribe(app.notificationService, events.TypeBotStarted, events.TypeBotStopping)

	logger.Info("application initialized successfully")
	return app, nil
}

// Run announces startup, runs the scheduler and serves HTTP until ctx is
// done, then shuts everything down in order.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	schedCtx, stopScheduler := context.WithCancel(ctx)
	schedDone := make(chan struct{})
	go func() {
		defer close(schedDone)
		app.scheduler.Run(schedCtx)
	}()

	app.emitLifecycle(ctx, events.TypeBotStarted, "")

	serveErr := app.startHTTPServer(ctx, router)

	stopScheduler()
	<-schedDone
	app.cleanup()

	if serveErr != nil {
		return fmt.Errorf("server error: %w", serveErr)
	}
	return nil
}

// emitLifecycle publishes a lifecycle event. Handler failures are logged;
// lifecycle notices never block startup or shutdown.
func (app *application) emitLifecycle(ctx context.Context, eventType, reason string) {
	event, err := events.NewEvent(eventType, events.LifecyclePayload{
		BotName: app.config.Discord.BotName,
		Reason:  reason,
	})
	if err != nil {
		app.logger.Error("failed to build lifecycle event", "event_type", eventType, "error", err)
		return
	}
	if err := app.emitter.EmitEvent(ctx, event); err != nil {
		app.logger.Warn("lifecycle notice not fully delivered",
			"event_type", eventType,
			"error", redact.Error(err))
	}
}

// cleanup drains and stops the task queue and closes the Redis connection.
func (app *application) cleanup() {
	app.waitForIdle(queueDrainBudget)

	ctx, cancel := context.WithTimeout(context.Background(), queueShutdownBudget)
	defer cancel()

	if err := app.queue.Shutdown(ctx); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			app.logger.Warn("in-flight task did not finish before shutdown deadline",
				"budget", queueShutdownBudget.String())
		} else {
			app.logger.Error("task queue shutdown failed", "error", redact.Error(err))
		}
	}

	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error("error closing Redis connection", "error", redact.Error(err))
		}
	}

	app.logger.Info("shutdown completed")
}

// waitForIdle polls the queue until nothing is queued or running, or budget
// elapses.
func (app *application) waitForIdle(budget time.Duration) {
	deadline := time.Now().Add(budget)
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		s := app.queue.Status()
		if s.QueueSize == 0 && s.ActiveTasks == 0 {
			return
		}
		if time.Now().After(deadline) {
			app.logger.Warn("task queue not idle at shutdown, dropping remaining tasks",
				"queue_size", s.QueueSize,
				"active_tasks", s.ActiveTasks)
			return
		}
		<-ticker.C
	}
}
