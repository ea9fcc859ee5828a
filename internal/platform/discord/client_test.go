package discord

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/phrazzld/cunningbot/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	method string
	path   string
	auth   string
	body   map[string]any
}

// newTestServer returns a client pointed at a fake Discord API that answers
// every request with status and body.
func newTestServer(t *testing.T, status int, body string) (*Client, *[]recordedRequest) {
	t.Helper()

	var requests []recordedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		rec := recordedRequest{method: r.Method, path: r.URL.Path, auth: r.Header.Get("Authorization")}
		_ = json.Unmarshal(raw, &rec.body)
		requests = append(requests, rec)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)

	c, err := NewClient(config.DiscordConfig{
		BotToken:              "test-token",
		APIBaseURL:            srv.URL + "/api/v10",
		BotName:               "TestBot",
		RequestTimeoutSeconds: 2,
	}, nil)
	require.NoError(t, err)
	return c, &requests
}

func TestNewClient_RequiresToken(t *testing.T) {
	_, err := NewClient(config.DiscordConfig{APIBaseURL: "https://discord.com/api/v10"}, nil)
	assert.Error(t, err)
}

func TestPost_Success(t *testing.T) {
	c, requests := newTestServer(t, http.StatusOK, `{"id":"m1","channel_id":"c1","content":"hello"}`)

	err := c.Post(context.Background(), "c1", "hello")

	require.NoError(t, err)
	require.Len(t, *requests, 1)
	req := (*requests)[0]
	assert.Equal(t, http.MethodPost, req.method)
	assert.Equal(t, "/api/v10/channels/c1/messages", req.path)
	assert.Equal(t, "Bot test-token", req.auth)
	assert.Equal(t, "hello", req.body["content"])
}

func TestPost_RateLimited(t *testing.T) {
	c, requests := newTestServer(t, http.StatusTooManyRequests,
		`{"message":"You are being rate limited.","retry_after":1.5,"global":false}`)

	err := c.Post(context.Background(), "c1", "hello")

	assert.ErrorIs(t, err, ErrRateLimited)
	assert.Len(t, *requests, 1, "rate limited requests are not retried")
}

func TestPost_RequestFailed(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   string
	}{
		{name: "forbidden", status: http.StatusForbidden, want: "status 403"},
		{name: "not found", status: http.StatusNotFound, want: "status 404"},
		{name: "server error", status: http.StatusInternalServerError, want: "status 500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestServer(t, tt.status, `{"message":"nope","code":0}`)

			err := c.Post(context.Background(), "c1", "hello")

			assert.ErrorIs(t, err, ErrRequestFailed)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestPost_InvalidInput(t *testing.T) {
	c, requests := newTestServer(t, http.StatusOK, `{}`)

	assert.ErrorIs(t, c.Post(context.Background(), "", "hello"), ErrMissingChannel)
	assert.ErrorIs(t, c.Post(context.Background(), "c1", "  "), ErrEmptyContent)
	assert.Empty(t, *requests)
}

func TestPost_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	defer srv.Close()

	c, err := NewClient(config.DiscordConfig{
		BotToken:              "test-token",
		APIBaseURL:            srv.URL,
		RequestTimeoutSeconds: 5,
	}, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err = c.Post(ctx, "c1", "hello")
	assert.ErrorIs(t, err, ErrRequestFailed)
}

func TestRebaseTransport(t *testing.T) {
	var gotURL string
	next := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		gotURL = r.URL.String()
		return &http.Response{StatusCode: http.StatusNoContent, Body: http.NoBody, Request: r}, nil
	})

	rt, err := newRebaseTransport("https://proxy.example/discord/api/v10/", next)
	require.NoError(t, err)

	req, _ := http.NewRequest(http.MethodGet, "https://discord.com/api/v9/channels/1/messages?limit=5", nil)
	_, err = rt.RoundTrip(req)
	require.NoError(t, err)
	assert.Equal(t, "https://proxy.example/discord/api/v10/channels/1/messages?limit=5", gotURL)

	other, _ := http.NewRequest(http.MethodGet, "https://cdn.discordapp.com/avatars/1.png", nil)
	_, err = rt.RoundTrip(other)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.discordapp.com/avatars/1.png", gotURL, "other hosts pass through")
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

// newRoutedServer returns a client pointed at a fake Discord API that answers
// each "METHOD path" key with its status and body, and 404 otherwise.
func newRoutedServer(t *testing.T, routes map[string]fakeResponse) (*Client, *[]recordedRequest) {
	t.Helper()

	var requests []recordedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		rec := recordedRequest{method: r.Method, path: r.URL.Path, auth: r.Header.Get("Authorization")}
		_ = json.Unmarshal(raw, &rec.body)
		requests = append(requests, rec)

		resp, ok := routes[r.Method+" "+r.URL.Path]
		if !ok {
			resp = fakeResponse{status: http.StatusNotFound, body: `{"message":"Unknown","code":0}`}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(resp.status)
		_, _ = io.WriteString(w, resp.body)
	}))
	t.Cleanup(srv.Close)

	c, err := NewClient(config.DiscordConfig{
		BotToken:              "test-token",
		APIBaseURL:            srv.URL + "/api/v10",
		RequestTimeoutSeconds: 2,
	}, nil)
	require.NoError(t, err)
	return c, &requests
}

type fakeResponse struct {
	status int
	body   string
}

const (
	sendRoute    = "POST /api/v10/channels/c1/messages"
	channelRoute = "GET /api/v10/channels/c1"
	threadRoute  = "POST /api/v10/channels/c1/messages/m1/threads"
)

func TestPostWithThread_StartsThread(t *testing.T) {
	c, requests := newRoutedServer(t, map[string]fakeResponse{
		sendRoute:    {http.StatusOK, `{"id":"m1","channel_id":"c1","content":"play"}`},
		channelRoute: {http.StatusOK, `{"id":"c1","type":0}`},
		threadRoute:  {http.StatusCreated, `{"id":"t1","type":11}`},
	})

	err := c.PostWithThread(context.Background(), "c1", "play", "Wordle – 2025-06-13")

	require.NoError(t, err)
	require.Len(t, *requests, 3)
	thread := (*requests)[2]
	assert.Equal(t, "/api/v10/channels/c1/messages/m1/threads", thread.path)
	assert.Equal(t, "Wordle – 2025-06-13", thread.body["name"])
	assert.EqualValues(t, ThreadArchiveMinutes, thread.body["auto_archive_duration"])
}

func TestPostWithThread_SkipsThreadInsideThread(t *testing.T) {
	c, requests := newRoutedServer(t, map[string]fakeResponse{
		sendRoute:    {http.StatusOK, `{"id":"m1","channel_id":"c1","content":"play"}`},
		channelRoute: {http.StatusOK, `{"id":"c1","type":11}`},
	})

	err := c.PostWithThread(context.Background(), "c1", "play", "Wordle – 2025-06-13")

	require.NoError(t, err)
	require.Len(t, *requests, 2)
	assert.Equal(t, http.MethodGet, (*requests)[1].method)
}

func TestPostWithThread_ThreadFailureDoesNotFailPost(t *testing.T) {
	c, requests := newRoutedServer(t, map[string]fakeResponse{
		sendRoute:    {http.StatusOK, `{"id":"m1","channel_id":"c1","content":"play"}`},
		channelRoute: {http.StatusOK, `{"id":"c1","type":0}`},
		threadRoute:  {http.StatusForbidden, `{"message":"Missing Permissions","code":50013}`},
	})

	err := c.PostWithThread(context.Background(), "c1", "play", "Wordle – 2025-06-13")

	assert.NoError(t, err)
	assert.Len(t, *requests, 3)
}

func TestPostWithThread_SendFailure(t *testing.T) {
	c, requests := newRoutedServer(t, map[string]fakeResponse{
		sendRoute: {http.StatusForbidden, `{"message":"Missing Access","code":50001}`},
	})

	err := c.PostWithThread(context.Background(), "c1", "play", "Wordle – 2025-06-13")

	assert.ErrorIs(t, err, ErrRequestFailed)
	assert.Len(t, *requests, 1, "no thread without a message")
}
