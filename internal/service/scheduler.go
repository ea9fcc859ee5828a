package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/phrazzld/cunningbot/internal/config"
	"github.com/phrazzld/cunningbot/internal/domain"
	"github.com/phrazzld/cunningbot/internal/redact"
	"github.com/phrazzld/cunningbot/internal/task"
)

// Scheduler polls for due daily games and enqueues one reminder per game per
// 10-minute slot. Games that could not be enqueued are retried on later ticks
// of the same slot.
type Scheduler struct {
	games    *DailyGameService
	queue    TaskQueue
	poster   ThreadPoster
	interval time.Duration
	now      func() time.Time
	logger   *slog.Logger

	mu       sync.Mutex
	slot     time.Time
	slotDone bool
	sent     map[string]bool
}

// NewScheduler creates a Scheduler that checks every CheckIntervalSeconds.
func NewScheduler(
	games *DailyGameService,
	queue TaskQueue,
	poster ThreadPoster,
	cfg config.DailyGameConfig,
	logger *slog.Logger,
) (*Scheduler, error) {
	if games == nil || queue == nil || poster == nil {
		return nil, errors.New("scheduler requires a game service, a queue and a poster")
	}
	interval := time.Duration(cfg.CheckIntervalSeconds) * time.Second
	if interval <= 0 {
		interval = time.Minute
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		games:    games,
		queue:    queue,
		poster:   poster,
		interval: interval,
		now:      time.Now,
		logger:   logger.With("component", "daily_game_scheduler"),
	}, nil
}

// Run checks immediately and then on every interval until ctx is done.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("daily game scheduler started", "interval", s.interval)
	for {
		if _, err := s.Tick(ctx, s.now()); err != nil {
			s.logger.Error("daily game check failed", "error", redact.Error(err))
		}

		select {
		case <-ctx.Done():
			s.logger.Info("daily game scheduler stopped")
			return
		case <-ticker.C:
		}
	}
}

// Tick enqueues reminders for the slot containing now and returns how many
// were enqueued. Once every due game of a slot is enqueued, later ticks in
// that slot do nothing.
func (s *Scheduler) Tick(ctx context.Context, now time.Time) (int, error) {
	slot := slotStart(now.In(s.games.Location()))

	s.mu.Lock()
	defer s.mu.Unlock()

	if !slot.Equal(s.slot) {
		s.slot = slot
		s.slotDone = false
		s.sent = make(map[string]bool)
	}
	if s.slotDone {
		return 0, nil
	}

	due, err := s.games.DueGames(ctx, slot)
	if err != nil {
		return 0, err
	}

	enqueued, rejected := 0, 0
	for _, d := range due {
		key := d.GuildID + "/" + d.Game.Name
		if s.sent[key] {
			continue
		}

		threadName := fmt.Sprintf("%s – %s", d.Game.Name, slot.Format(time.DateOnly))
		_, err := enqueue(s.queue, s.postJob(d.Game.ChannelID, d.Game.Message(), threadName),
			task.WithName("daily_game"),
			task.WithOrigin(task.Origin{GuildID: d.GuildID, ChannelID: d.Game.ChannelID}),
			task.WithExpiry(slot.Add(domain.SlotMinutes*time.Minute)),
		)
		if err != nil {
			s.logger.Warn("failed to enqueue daily game reminder, will retry this slot",
				"error", redact.Error(err),
				"guild_id", d.GuildID,
				"game", d.Game.Name)
			rejected++
			continue
		}
		s.sent[key] = true
		enqueued++
	}
	s.slotDone = rejected == 0

	if enqueued > 0 || rejected > 0 {
		s.logger.Info("daily game reminders enqueued",
			"slot", slot.Format("15:04"),
			"due", len(due),
			"enqueued", enqueued,
			"rejected", rejected)
	}
	return enqueued, nil
}

// postJob posts the reminder and opens a thread for the day's discussion.
func (s *Scheduler) postJob(channelID, content, threadName string) task.Job {
	return func(ctx context.Context) error {
		return s.poster.PostWithThread(ctx, channelID, content, threadName)
	}
}

// slotStart truncates t to the start of its 10-minute slot in t's location.
func slotStart(t time.Time) time.Time {
	hour, minute := domain.SlotOf(t)
	return time.Date(t.Year(), t.Month(), t.Day(), hour, minute, 0, 0, t.Location())
}
