package relevance

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sethvargo/go-retry"
	"golang.org/x/sync/semaphore"

	"newswatch/internal/model"
)

const systemPrompt = "You are a precise and concise news analyst. " +
	"Output must conform to the schema: score (integer), reasoning (text)."

// attemptTimeout bounds a single remote call; the retry budget bounds
// the whole scoring attempt.
const attemptTimeout = 120 * time.Second

// Config configures the OpenAI-compatible scoring client.
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	Concurrency int           // global in-flight calls, shared across feeds
	MaxAttempts int           // total attempts per item, including the first
	RetryBase   time.Duration // delay is RetryBase * 2^attempt plus jitter
	Jitter      time.Duration // upper bound of the random jitter added per delay
}

// OpenAIScorer implements Scorer on the Chat Completions API with a
// JSON-object response format and schema enforcement at the boundary.
type OpenAIScorer struct {
	client      *openai.Client
	model       string
	sem         *semaphore.Weighted
	maxAttempts int
	retryBase   time.Duration
	jitter      time.Duration
}

func NewOpenAI(cfg Config) *OpenAIScorer {
	cc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		cc.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	if cfg.Model == "" {
		panic("scoring model must be specified")
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 32
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	if cfg.RetryBase <= 0 {
		cfg.RetryBase = 2 * time.Second
	}
	if cfg.Jitter <= 0 {
		cfg.Jitter = 500 * time.Millisecond
	}
	return &OpenAIScorer{
		client:      openai.NewClientWithConfig(cc),
		model:       cfg.Model,
		sem:         semaphore.NewWeighted(int64(cfg.Concurrency)),
		maxAttempts: cfg.MaxAttempts,
		retryBase:   cfg.RetryBase,
		jitter:      cfg.Jitter,
	}
}

// Score holds a gate slot for the full duration of the call, retries
// included, so the in-flight budget is honored process-wide.
func (o *OpenAIScorer) Score(ctx context.Context, prompt, text string) (model.Evaluation, error) {
	if err := o.sem.Acquire(ctx, 1); err != nil {
		return model.Evaluation{}, err
	}
	defer o.sem.Release(1)

	var eval model.Evaluation
	attempts := 0
	err := retry.Do(ctx, o.backoff(), func(ctx context.Context) error {
		attempts++
		ev, err := o.evaluate(ctx, prompt, text)
		if err != nil {
			slog.Warn("relevance: attempt failed", "attempt", attempts, "max", o.maxAttempts, "err", err)
			return retry.RetryableError(err)
		}
		eval = ev
		return nil
	})
	if err != nil {
		return model.Evaluation{}, &ScoreError{Attempts: attempts, Err: err}
	}
	return eval, nil
}

// backoff yields RetryBase * 2^attempt plus uniform jitter, and stops
// once the attempt budget is spent.
func (o *OpenAIScorer) backoff() retry.Backoff {
	attempt := 0
	return retry.BackoffFunc(func() (time.Duration, bool) {
		if attempt >= o.maxAttempts-1 {
			return 0, true
		}
		d := o.retryBase << attempt
		d += time.Duration(rand.Int63n(int64(o.jitter)))
		attempt++
		return d, false
	})
}

func (o *OpenAIScorer) evaluate(ctx context.Context, prompt, text string) (model.Evaluation, error) {
	ctx, cancel := context.WithTimeout(ctx, attemptTimeout)
	defer cancel()

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf("%s\n\nTEXT:\n%s", prompt, text)},
		},
		Temperature: 0.2,
		MaxTokens:   1024,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return model.Evaluation{}, err
	}
	if len(resp.Choices) == 0 {
		return model.Evaluation{}, fmt.Errorf("empty completion response")
	}
	return decodeEvaluation(resp.Choices[0].Message.Content)
}

// decodeEvaluation enforces the two-field contract. Anything that does
// not carry an integer score is a schema violation, which the caller
// retries rather than coercing to zero.
func decodeEvaluation(content string) (model.Evaluation, error) {
	var raw struct {
		Score     json.Number `json:"score"`
		Reasoning string      `json:"reasoning"`
	}
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return model.Evaluation{}, fmt.Errorf("non-conforming response: %w", err)
	}
	if raw.Score == "" {
		return model.Evaluation{}, fmt.Errorf("non-conforming response: missing score")
	}
	score, err := raw.Score.Int64()
	if err != nil {
		return model.Evaluation{}, fmt.Errorf("non-conforming response: score %q is not an integer", raw.Score)
	}
	return model.Evaluation{Score: int(score), Reasoning: raw.Reasoning}, nil
}
