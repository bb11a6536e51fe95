package llm

import (
	"context"
	"intentbot/app/config"
	"log/slog"
	"math"
	"net/http"
	"strings"

	"github.com/samber/do"
	"github.com/samber/oops"
	"github.com/sashabaranov/go-openai"
)

// Completer sends a single prompt to the hosted model and returns its raw text answer.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

var _ Completer = (*Client)(nil)

type Client struct {
	cfg    config.LLM
	client *openai.Client
}

func New(di *do.Injector) (*Client, error) {
	cfg := do.MustInvoke[*config.Config](di)

	return NewClient(cfg.LLM), nil
}

func NewClient(cfg config.LLM) *Client {
	clientConfig := openai.DefaultConfig(cfg.Token)

	clientConfig.BaseURL = cfg.BaseURL
	clientConfig.HTTPClient = &http.Client{
		Timeout: cfg.Timeout,
	}

	return &Client{
		cfg:    cfg,
		client: openai.NewClientWithConfig(clientConfig),
	}
}

func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	// the request drops a zero temperature, which would leave the server default
	temperature := c.cfg.Temperature
	if temperature == 0 {
		temperature = math.SmallestNonzeroFloat32
	}

	aiResponse, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: c.cfg.Model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature:         temperature,
			MaxCompletionTokens: c.cfg.MaxTokens,
		},
	)
	if err != nil {
		return "", oops.
			In("llm").
			With("model", c.cfg.Model).
			Errorf("failed to create chat completion: %w", err)
	}

	if len(aiResponse.Choices) == 0 {
		return "", oops.In("llm").Errorf("no chat completion found")
	}

	slog.DebugContext(ctx, "LLM usage",
		"model", c.cfg.Model,
		"prompt_tokens", aiResponse.Usage.PromptTokens,
		"completion_tokens", aiResponse.Usage.CompletionTokens,
	)

	return aiResponse.Choices[0].Message.Content, nil
}

// Cleanup strips the Markdown code fence models like to wrap JSON answers in.
func Cleanup(text string) string {
	result := strings.TrimSpace(text)
	result = strings.Trim(result, "`")
	result = strings.TrimSpace(result)
	result = strings.TrimPrefix(result, "json")

	return strings.TrimSpace(result)
}
