package service

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/cunningbot/internal/domain"
	"github.com/phrazzld/cunningbot/internal/generation"
	"github.com/phrazzld/cunningbot/internal/task"
	"github.com/stretchr/testify/mock"
)

// MockPersonaStore mocks the store.PersonaStore interface
type MockPersonaStore struct {
	mock.Mock
}

func (m *MockPersonaStore) Get(ctx context.Context, guildID string) (domain.Persona, error) {
	args := m.Called(ctx, guildID)
	return args.Get(0).(domain.Persona), args.Error(1)
}

func (m *MockPersonaStore) Set(ctx context.Context, guildID string, persona domain.Persona) error {
	args := m.Called(ctx, guildID, persona)
	return args.Error(0)
}

func (m *MockPersonaStore) Clear(ctx context.Context, guildID string) error {
	args := m.Called(ctx, guildID)
	return args.Error(0)
}

// MockUpdateChannelStore mocks the store.UpdateChannelStore interface
type MockUpdateChannelStore struct {
	mock.Mock
}

func (m *MockUpdateChannelStore) Register(ctx context.Context, channelID string) error {
	args := m.Called(ctx, channelID)
	return args.Error(0)
}

func (m *MockUpdateChannelStore) Unregister(ctx context.Context, channelID string) error {
	args := m.Called(ctx, channelID)
	return args.Error(0)
}

func (m *MockUpdateChannelStore) IsRegistered(ctx context.Context, channelID string) (bool, error) {
	args := m.Called(ctx, channelID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUpdateChannelStore) List(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockDailyGameStore mocks the store.DailyGameStore interface
type MockDailyGameStore struct {
	mock.Mock
}

func (m *MockDailyGameStore) Save(ctx context.Context, guildID string, game *domain.DailyGame) error {
	args := m.Called(ctx, guildID, game)
	return args.Error(0)
}

func (m *MockDailyGameStore) Get(ctx context.Context, guildID, name string) (*domain.DailyGame, error) {
	args := m.Called(ctx, guildID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DailyGame), args.Error(1)
}

func (m *MockDailyGameStore) Delete(ctx context.Context, guildID, name string) error {
	args := m.Called(ctx, guildID, name)
	return args.Error(0)
}

func (m *MockDailyGameStore) List(ctx context.Context, guildID string) ([]*domain.DailyGame, error) {
	args := m.Called(ctx, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.DailyGame), args.Error(1)
}

func (m *MockDailyGameStore) ListAll(ctx context.Context) (map[string][]*domain.DailyGame, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string][]*domain.DailyGame), args.Error(1)
}

// MockGenerator mocks the generation.Generator interface
type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Reply(ctx context.Context, req generation.Request) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

// MockPoster mocks the Poster interface
type MockPoster struct {
	mock.Mock
}

func (m *MockPoster) Post(ctx context.Context, channelID, content string) error {
	args := m.Called(ctx, channelID, content)
	return args.Error(0)
}

func (m *MockPoster) PostWithThread(ctx context.Context, channelID, content, threadName string) error {
	args := m.Called(ctx, channelID, content, threadName)
	return args.Error(0)
}

// fakeQueue records enqueued jobs so tests can run them on demand.
type fakeQueue struct {
	mu    sync.Mutex
	jobs  []task.Job
	stats task.Stats
	err   error
}

func (q *fakeQueue) Enqueue(job task.Job, opts ...task.EnqueueOption) (uuid.UUID, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.err != nil {
		return uuid.Nil, q.err
	}
	q.jobs = append(q.jobs, job)
	return uuid.New(), nil
}

func (q *fakeQueue) Status() task.Stats {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.stats
}

func (q *fakeQueue) enqueued() []task.Job {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]task.Job(nil), q.jobs...)
}

// runAll executes every recorded job in order and returns their errors.
func (q *fakeQueue) runAll(ctx context.Context) []error {
	var errs []error
	for _, job := range q.enqueued() {
		errs = append(errs, job(ctx))
	}
	return errs
}
