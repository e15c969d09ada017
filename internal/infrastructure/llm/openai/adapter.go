package openai

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"quiz-solver/internal/application/port/output"
	"quiz-solver/internal/domain/entity"
)

var _ output.ComputePort = (*Adapter)(nil)

const (
	systemPrompt = "You are a data analysis and web scraping expert. " +
		"Extract the answer as a single value (number, string, boolean, or JSON object). " +
		"Return ONLY the answer, no explanation."
	retrySuffix = " This is a retry - the previous answer was wrong. Try a different approach."

	firstTryTemperature = 0.3
	retryTemperature    = 0.7
	maxAnswerTokens     = 500
)

// Adapter computes answers with a single chat completion against any
// OpenAI-compatible endpoint. It is constructed once per process and passed
// by reference; there is no ambient shared client.
type Adapter struct {
	client *openai.Client
	model  string
	logger output.LoggerPort
}

type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

func DefaultConfig(apiKey, model string) Config {
	return Config{
		APIKey:  apiKey,
		Model:   model,
		BaseURL: "https://api.openai.com/v1",
		Timeout: 30 * time.Second,
	}
}

func NewAdapter(cfg Config, logger output.LoggerPort) *Adapter {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	clientCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	return &Adapter{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
		logger: logger,
	}
}

func (a *Adapter) Compute(ctx context.Context, in entity.ComputeInput) (string, error) {
	system := systemPrompt
	temperature := float32(firstTryTemperature)
	if in.Retry {
		system += retrySuffix
		temperature = retryTemperature
	}

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: buildContext(in)},
		},
		Temperature: temperature,
		MaxTokens:   maxAnswerTokens,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	answer := strings.TrimSpace(resp.Choices[0].Message.Content)
	a.logger.Debug("Computed answer", "model", a.model, "retry", in.Retry, "answer", answer)
	return answer, nil
}

func buildContext(in entity.ComputeInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Instructions: %s\n\n", in.Instructions)

	names := make([]string, 0, len(in.FileContents))
	for name := range in.FileContents {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&b, "File: %s\n%s\n\n", name, in.FileContents[name])
	}

	if in.HTMLExcerpt != "" {
		fmt.Fprintf(&b, "Page HTML:\n%s\n\n", in.HTMLExcerpt)
	}
	return b.String()
}
