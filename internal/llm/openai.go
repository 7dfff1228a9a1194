// Package llm is the AI assist gateway: single request/response calls to an
// OpenAI-compatible chat endpoint with fixed prompts.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// DefaultModel is used when Config.Model is empty.
const DefaultModel = "gpt-4o-mini"

// Config configures the gateway client.
type Config struct {
	APIKey  string
	BaseURL string        // optional, for OpenAI-compatible providers
	Model   string        // defaults to DefaultModel
	Timeout time.Duration // per request; zero means no client-side timeout
}

// ChatCompleter is the subset of *openai.Client the gateway needs.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Client issues assist requests.
type Client struct {
	chat  ChatCompleter
	model string
}

// New builds a Client backed by the OpenAI API.
func New(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("llm: empty api key")
	}
	oc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oc.BaseURL = cfg.BaseURL
	}
	oc.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	return NewWithCompleter(openai.NewClientWithConfig(oc), cfg.Model), nil
}

// NewWithCompleter builds a Client over an arbitrary chat endpoint.
func NewWithCompleter(chat ChatCompleter, model string) *Client {
	if model == "" {
		model = DefaultModel
	}
	return &Client{chat: chat, model: model}
}

// complete sends one system+user exchange and returns the first choice's text ("" if none).
func (c *Client) complete(ctx context.Context, p prompt, text string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: p.system},
			{Role: openai.ChatMessageRoleUser, Content: p.instruction + "\n\n" + text},
		},
		Temperature: p.temperature,
		MaxTokens:   p.maxTokens,
	}
	resp, err := c.chat.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("llm %s: %w", p.name, err)
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

// Improve rewrites text according to action. Unknown actions fall back to
// plain improvement; an empty reply returns the input unchanged.
func (c *Client) Improve(ctx context.Context, text, action string) (string, error) {
	out, err := c.complete(ctx, improvePrompt(action), text)
	if err != nil {
		return "", err
	}
	if out == "" {
		return text, nil
	}
	return out, nil
}

// Summarize returns a two to three sentence summary.
func (c *Client) Summarize(ctx context.Context, text string) (string, error) {
	return c.complete(ctx, summarizePrompt, text)
}

// KeyPoints returns three to five key points.
func (c *Client) KeyPoints(ctx context.Context, text string) ([]string, error) {
	out, err := c.complete(ctx, keyPointsPrompt, text)
	if err != nil {
		return nil, err
	}
	return ParseList(out), nil
}

// SuggestTags returns a handful of short tags.
func (c *Client) SuggestTags(ctx context.Context, text string) ([]string, error) {
	out, err := c.complete(ctx, tagsPrompt, text)
	if err != nil {
		return nil, err
	}
	return ParseTags(out), nil
}

// ActionItems returns the tasks mentioned in text.
func (c *Client) ActionItems(ctx context.Context, text string) ([]string, error) {
	out, err := c.complete(ctx, actionItemsPrompt, text)
	if err != nil {
		return nil, err
	}
	return ParseList(out), nil
}

// Continue returns a continuation of text without repeating it.
func (c *Client) Continue(ctx context.Context, text string) (string, error) {
	return c.complete(ctx, continuePrompt, text)
}
