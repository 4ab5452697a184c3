package generate

import (
	"context"
	"errors"
	"net/http"

	openai "github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"golang.org/x/time/rate"
)

const (
	// DefaultModel is the chat model used when none is configured.
	DefaultModel = "gpt-4o-mini"

	// RateLimit caps requests per second against the completion API.
	RateLimit = 1.0

	// maxCompletionTokens bounds a single response. A 1500-word draft
	// plus formatting sits comfortably under this.
	maxCompletionTokens = 4096
)

// Client is a rate-limited CompletionService backed by the OpenAI
// chat-completions API.
type Client struct {
	api     openai.Client
	limiter *rate.Limiter
	model   string

	baseURL    string
	httpClient *http.Client
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithModel sets the chat model.
func WithModel(model string) ClientOption {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

// WithBaseURL points the client at an alternate API endpoint (for
// OpenAI-compatible services and tests).
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a completion client. Retries are disabled: the single
// ampliation pass is the only follow-up the workflow permits.
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		model:   DefaultModel,
		limiter: rate.NewLimiter(rate.Limit(RateLimit), 1),
	}
	for _, opt := range opts {
		opt(c)
	}

	reqOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if c.baseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(c.baseURL))
	}
	if c.httpClient != nil {
		reqOpts = append(reqOpts, option.WithHTTPClient(c.httpClient))
	}
	c.api = openai.NewClient(reqOpts...)

	return c
}

// ModelName returns the configured chat model.
func (c *Client) ModelName() string {
	return c.model
}

// Complete sends one chat-completion request and returns the text of the
// first choice.
func (c *Client) Complete(ctx context.Context, system, prompt string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	params := openai.ChatCompletionNewParams{
		Model:               openai.ChatModel(c.model),
		MaxCompletionTokens: openai.Int(maxCompletionTokens),
	}
	if system != "" {
		params.Messages = append(params.Messages, openai.SystemMessage(system))
	}
	params.Messages = append(params.Messages, openai.UserMessage(prompt))

	resp, err := c.api.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("completion API returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
