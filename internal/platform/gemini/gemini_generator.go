package gemini

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/phrazzld/cunningbot/internal/config"
	"github.com/phrazzld/cunningbot/internal/generation"
	"github.com/phrazzld/cunningbot/internal/redact"
	"google.golang.org/genai"
)

const (
	defaultMaxRetries        = 3
	defaultRetryDelaySeconds = 2
)

// contentGenerator is the subset of the genai models service used by the
// generator. *genai.Models satisfies it.
type contentGenerator interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// GeminiGenerator implements the generation.Generator interface using
// Google's Gemini API to write chat replies.
type GeminiGenerator struct {
	// logger is used for structured logging
	logger *slog.Logger

	// config contains LLM-specific configuration
	config config.LLMConfig

	// models is the Gemini API surface used for requests
	models contentGenerator

	// retryDelay is the base delay of the exponential backoff
	retryDelay time.Duration

	rngMu sync.Mutex
	rng   *rand.Rand
}

var _ generation.Generator = (*GeminiGenerator)(nil)

// NewGeminiGenerator creates a GeminiGenerator that talks to the Gemini API.
func NewGeminiGenerator(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*GeminiGenerator, error) {
	if logger == nil {
		return nil, ErrNilLogger
	}

	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %s",
			generation.ErrInvalidConfig, redact.Error(err))
	}

	return newGenerator(logger, cfg, client.Models)
}

// newGenerator wires a generator around any contentGenerator.
func newGenerator(logger *slog.Logger, cfg config.LLMConfig, models contentGenerator) (*GeminiGenerator, error) {
	if logger == nil {
		return nil, ErrNilLogger
	}
	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	logger = logger.With("component", "gemini_generator", "model", cfg.ModelName)

	if cfg.MaxRetries < 0 {
		logger.Warn("invalid max retries value, using default", "max_retries", defaultMaxRetries)
		cfg.MaxRetries = defaultMaxRetries
	}
	if cfg.RetryDelaySeconds < 1 {
		logger.Warn("invalid retry delay value, using default", "base_delay_seconds", defaultRetryDelaySeconds)
		cfg.RetryDelaySeconds = defaultRetryDelaySeconds
	}

	return &GeminiGenerator{
		logger:     logger,
		config:     cfg,
		models:     models,
		retryDelay: time.Duration(cfg.RetryDelaySeconds) * time.Second,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}, nil
}

// Reply asks Gemini for the bot's answer to req.
func (g *GeminiGenerator) Reply(ctx context.Context, req generation.Request) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	instruction, err := renderSystemInstruction(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", generation.ErrGenerationFailed, err)
	}

	temperature := g.config.Temperature
	genConfig := &genai.GenerateContentConfig{
		SystemInstruction: textContent("user", instruction),
		Temperature:       &temperature,
	}

	g.logger.DebugContext(ctx, "generating reply",
		"history_turns", len(req.History),
		"message_length", len(req.Message))

	return g.callGeminiWithRetry(ctx, buildContents(req), genConfig)
}

// callGeminiWithRetry makes a call to the Gemini API with exponential backoff retry logic.
//
// It attempts the call up to config.MaxRetries+1 times. Permanent errors (an
// empty response or content blocked by safety filters) are returned
// immediately without retrying.
func (g *GeminiGenerator) callGeminiWithRetry(
	ctx context.Context,
	contents []*genai.Content,
	genConfig *genai.GenerateContentConfig,
) (string, error) {
	maxRetries := g.config.MaxRetries

	for attempt := 0; ; attempt++ {
		attemptNum := attempt + 1
		g.logger.InfoContext(ctx, "making Gemini API call",
			"attempt", attemptNum,
			"max_attempts", maxRetries+1)

		resp, err := g.models.GenerateContent(ctx, g.config.ModelName, contents, genConfig)
		if err == nil {
			text, perr := extractText(resp)
			if perr != nil {
				g.logger.WarnContext(ctx, "permanent error occurred, not retrying",
					"attempt", attemptNum,
					"error", perr)
				return "", perr
			}
			g.logger.InfoContext(ctx, "Gemini API call successful",
				"attempt", attemptNum,
				"reply_length", len(text))
			return text, nil
		}

		g.logger.ErrorContext(ctx, "Gemini API call failed",
			"attempt", attemptNum,
			"error", redact.Error(err))

		if ctx.Err() != nil {
			return "", fmt.Errorf("%w: %v", generation.ErrTransientFailure, ctx.Err())
		}

		if attempt >= maxRetries {
			g.logger.WarnContext(ctx, "maximum retry attempts reached",
				"max_retries", maxRetries)
			return "", fmt.Errorf("%w: exceeded maximum retry attempts (%d)",
				generation.ErrTransientFailure, maxRetries)
		}

		delay := g.backoff(attempt)
		g.logger.InfoContext(ctx, "retrying after delay",
			"attempt", attemptNum,
			"delay", delay.String())

		timer := time.NewTimer(delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			g.logger.WarnContext(ctx, "API call cancelled during retry delay",
				"attempt", attemptNum,
				"ctx_err", ctx.Err())
			return "", fmt.Errorf("%w: %v", generation.ErrTransientFailure, ctx.Err())
		}
	}
}

// backoff returns baseDelay * 2^attempt * [0.5, 1.0).
func (g *GeminiGenerator) backoff(attempt int) time.Duration {
	g.rngMu.Lock()
	jitter := 0.5 + g.rng.Float64()*0.5
	g.rngMu.Unlock()

	return time.Duration(float64(g.retryDelay) * math.Pow(2, float64(attempt)) * jitter)
}

// extractText returns the concatenated text of the first candidate.
func extractText(resp *genai.GenerateContentResponse) (string, error) {
	switch {
	case resp == nil:
		return "", fmt.Errorf("%w: nil response", generation.ErrInvalidResponse)
	case resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "":
		return "", fmt.Errorf("%w: prompt blocked (%s)",
			generation.ErrContentBlocked, resp.PromptFeedback.BlockReason)
	case len(resp.Candidates) == 0:
		return "", fmt.Errorf("%w: no content generated", generation.ErrInvalidResponse)
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", fmt.Errorf("%w: reply blocked by safety filters", generation.ErrContentBlocked)
	}
	if candidate.Content == nil {
		return "", fmt.Errorf("%w: empty content in response", generation.ErrInvalidResponse)
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if part != nil {
			sb.WriteString(part.Text)
		}
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", fmt.Errorf("%w: response contained no text", generation.ErrInvalidResponse)
	}
	return text, nil
}
