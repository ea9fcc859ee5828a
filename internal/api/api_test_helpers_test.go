package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/cunningbot/internal/config"
	"github.com/phrazzld/cunningbot/internal/domain"
	"github.com/phrazzld/cunningbot/internal/domain/dice"
	"github.com/phrazzld/cunningbot/internal/mocks"
	"github.com/phrazzld/cunningbot/internal/service"
	"github.com/phrazzld/cunningbot/internal/store"
	"github.com/phrazzld/cunningbot/internal/task"
	"github.com/stretchr/testify/require"
)

// memPersonaStore is an in-memory store.PersonaStore.
type memPersonaStore struct {
	mu       sync.Mutex
	personas map[string]domain.Persona
}

func (s *memPersonaStore) Get(_ context.Context, guildID string) (domain.Persona, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.personas[guildID]
	if !ok {
		return domain.Persona{}, store.ErrPersonaNotFound
	}
	return p, nil
}

func (s *memPersonaStore) Set(_ context.Context, guildID string, p domain.Persona) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.personas[guildID] = p
	return nil
}

func (s *memPersonaStore) Clear(_ context.Context, guildID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.personas, guildID)
	return nil
}

// memChannelStore is an in-memory store.UpdateChannelStore.
type memChannelStore struct {
	mu       sync.Mutex
	channels map[string]bool
}

func (s *memChannelStore) Register(_ context.Context, channelID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.channels[channelID] {
		return store.ErrChannelExists
	}
	s.channels[channelID] = true
	return nil
}

func (s *memChannelStore) Unregister(_ context.Context, channelID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.channels[channelID] {
		return store.ErrChannelNotFound
	}
	delete(s.channels, channelID)
	return nil
}

func (s *memChannelStore) IsRegistered(_ context.Context, channelID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.channels[channelID], nil
}

func (s *memChannelStore) List(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.channels))
	for id := range s.channels {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// memGameStore is an in-memory store.DailyGameStore.
type memGameStore struct {
	mu    sync.Mutex
	games map[string]map[string]*domain.DailyGame
}

func (s *memGameStore) Save(_ context.Context, guildID string, game *domain.DailyGame) error {
	if err := game.Validate(); err != nil {
		return store.ErrInvalidEntity
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	guild := s.games[guildID]
	if guild == nil {
		guild = make(map[string]*domain.DailyGame)
		s.games[guildID] = guild
	}
	if existing, ok := guild[game.Name]; ok && existing.ChannelID != game.ChannelID {
		return store.ErrGameNameTaken
	}
	cp := *game
	guild[game.Name] = &cp
	return nil
}

func (s *memGameStore) Get(_ context.Context, guildID, name string) (*domain.DailyGame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.games[guildID][name]
	if !ok {
		return nil, store.ErrDailyGameNotFound
	}
	cp := *g
	return &cp, nil
}

func (s *memGameStore) Delete(_ context.Context, guildID, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.games[guildID][name]; !ok {
		return store.ErrDailyGameNotFound
	}
	delete(s.games[guildID], name)
	return nil
}

func (s *memGameStore) List(_ context.Context, guildID string) ([]*domain.DailyGame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.DailyGame
	for _, g := range s.games[guildID] {
		cp := *g
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *memGameStore) ListAll(ctx context.Context) (map[string][]*domain.DailyGame, error) {
	out := make(map[string][]*domain.DailyGame)
	for guildID := range s.games {
		games, _ := s.List(ctx, guildID)
		out[guildID] = games
	}
	return out, nil
}

// testServer wires real services over in-memory stores and a real queue.
type testServer struct {
	router    http.Handler
	queue     *task.Queue
	generator *mocks.MockGenerator
	poster    *mocks.MockPoster
	personas  *memPersonaStore
	channels  *memChannelStore
	games     *memGameStore
}

func newTestServer(t *testing.T, capacity int) *testServer {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	ts := &testServer{
		queue:     task.New(task.Config{Capacity: capacity, HistorySize: 10}, logger),
		generator: &mocks.MockGenerator{Text: "hi there"},
		poster:    &mocks.MockPoster{},
		personas:  &memPersonaStore{personas: make(map[string]domain.Persona)},
		channels:  &memChannelStore{channels: make(map[string]bool)},
		games:     &memGameStore{games: make(map[string]map[string]*domain.DailyGame)},
	}
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = ts.queue.Shutdown(ctx)
	})

	chat, err := service.NewChatService(ts.queue, ts.generator, ts.poster, ts.personas,
		config.QueueConfig{Capacity: capacity, TaskExpiryMinutes: 5, JobTimeoutSeconds: 5}, logger)
	require.NoError(t, err)
	personas, err := service.NewPersonaService(ts.personas, logger)
	require.NoError(t, err)
	games, err := service.NewDailyGameService(ts.games, config.DailyGameConfig{Timezone: "UTC"}, logger)
	require.NoError(t, err)
	notifications, err := service.NewNotificationService(ts.channels, ts.queue, ts.poster, "TestBot", logger)
	require.NoError(t, err)

	chatHandler := NewChatHandler(chat)
	diceHandler := NewDiceHandler(dice.NewRoller())
	personaHandler := NewPersonaHandler(personas)
	gameHandler := NewDailyGameHandler(games)
	channelHandler := NewUpdateChannelHandler(notifications)
	queueHandler := NewQueueHandler(ts.queue)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Post("/chat", chatHandler.Submit)
		r.Post("/roll", diceHandler.Roll)

		r.Get("/personas", personaHandler.List)
		r.Put("/personas/{guild_id}", personaHandler.Set)
		r.Delete("/personas/{guild_id}", personaHandler.Clear)

		r.Post("/daily-games", gameHandler.Register)
		r.Get("/daily-games/{guild_id}", gameHandler.List)
		r.Patch("/daily-games/{guild_id}/{name}", gameHandler.Update)
		r.Delete("/daily-games/{guild_id}/{name}", gameHandler.Unregister)
		r.Get("/daily-games/{guild_id}/{name}/preview", gameHandler.Preview)

		r.Post("/updates/channels", channelHandler.Register)
		r.Get("/updates/channels", channelHandler.List)
		r.Delete("/updates/channels/{channel_id}", channelHandler.Unregister)

		r.Get("/queue", queueHandler.Status)
		r.Get("/queue/tasks/{id}", queueHandler.Task)
	})
	ts.router = r
	return ts
}

// do sends a request with an optional JSON body and returns the recorder.
func (ts *testServer) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader = http.NoBody
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = bytes.NewBufferString(b)
		default:
			raw, err := json.Marshal(b)
			require.NoError(t, err)
			reader = bytes.NewReader(raw)
		}
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

// decodeBody unmarshals the recorder's body into v.
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

// errorMessage extracts the "error" field of an error response.
func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	decodeBody(t, rec, &body)
	return body.Error
}
