// Package recommendation produces post-event advisory reports from an
// analytics snapshot, via a chat-completion model with a deterministic
// rule-based fallback.
package recommendation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	openai "github.com/sashabaranov/go-openai"

	"github.com/iamnithishraja/cavens-sub001/internal/config"
	"github.com/iamnithishraja/cavens-sub001/internal/metrics"
	"github.com/iamnithishraja/cavens-sub001/internal/models"
)

const (
	pathAI       = "ai"
	pathFallback = "fallback"
)

var errNoClient = errors.New("no completion client configured")

// ChatCompleter is the slice of the OpenAI client the engine uses.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Engine generates recommendations. Recommend never returns an error:
// every failure on the AI path routes to the fallback.
type Engine struct {
	client    ChatCompleter
	config    config.OpenAIConfig
	logger    *slog.Logger
	collector *metrics.EngineCollector
}

// NewEngine creates an engine backed by the OpenAI API. With an empty
// API key the AI path is skipped and every call takes the fallback.
func NewEngine(cfg config.OpenAIConfig, logger *slog.Logger, collector *metrics.EngineCollector) *Engine {
	var client ChatCompleter
	if cfg.APIKey != "" {
		client = openai.NewClient(cfg.APIKey)
	}

	return NewEngineWithClient(client, cfg, logger, collector)
}

// NewEngineWithClient creates an engine with an explicit completion
// client, which tests substitute with a stub.
func NewEngineWithClient(client ChatCompleter, cfg config.OpenAIConfig, logger *slog.Logger, collector *metrics.EngineCollector) *Engine {
	return &Engine{
		client:    client,
		config:    cfg,
		logger:    logger,
		collector: collector,
	}
}

// Recommend produces an advisory report for one event's snapshot.
func (e *Engine) Recommend(ctx context.Context, snapshot models.AnalyticsSnapshot) models.Recommendation {
	rec, err := e.recommendWithAI(ctx, snapshot)
	if err != nil {
		e.logger.Warn("ai recommendation failed, using rule-based fallback",
			"event_id", snapshot.Event.ID,
			"error", err,
		)
		e.collector.RecommendationPath(pathFallback)
		return Fallback(snapshot)
	}

	e.logger.Info("ai recommendation generated",
		"event_id", snapshot.Event.ID,
		"confidence", rec.Confidence,
	)
	e.collector.RecommendationPath(pathAI)
	return rec
}

func (e *Engine) recommendWithAI(ctx context.Context, snapshot models.AnalyticsSnapshot) (models.Recommendation, error) {
	if e.client == nil {
		return models.Recommendation{}, errNoClient
	}

	prompt := BuildRecommendationPrompt(snapshot)

	apiCtx, cancel := context.WithTimeout(ctx, e.config.Timeout)
	defer cancel()

	resp, err := e.client.CreateChatCompletion(apiCtx, openai.ChatCompletionRequest{
		Model:       e.config.Model,
		Temperature: e.config.Temperature,
		MaxTokens:   e.config.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	})
	if err != nil {
		return models.Recommendation{}, fmt.Errorf("chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return models.Recommendation{}, fmt.Errorf("no completion choices returned from model %s", e.config.Model)
	}

	content := resp.Choices[0].Message.Content
	if content == "" {
		return models.Recommendation{}, fmt.Errorf("empty response from model %s", e.config.Model)
	}

	return parseResponse(content)
}
