// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package summarize calls an OpenAI-compatible chat-completions endpoint to
// turn a rendered prompt into a cited answer.
package summarize

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/research-assistant/pkg/types"
)

// ErrSummarize wraps every failure of the completion call. Callers test for
// it with errors.Is.
var ErrSummarize = errors.New("summarization failed")

// completionsPath is appended to the configured base URL.
const completionsPath = "/chat/completions"

// maxErrorBody bounds how much of an error response is quoted in the error.
const maxErrorBody = 512

// Client sends one chat-completion request per prompt. It is immutable after
// construction and safe for concurrent use.
type Client struct {
	baseURL      string
	apiKey       string
	model        string
	temperature  float64
	maxTokens    int
	systemPrompt string
	http         *http.Client
	log          *zap.Logger
}

// New returns a Client for cfg. systemPrompt may be empty.
func New(cfg types.SummarizerConfig, systemPrompt string, client *http.Client, log *zap.Logger) *Client {
	if client == nil {
		client = http.DefaultClient
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:       cfg.APIKey,
		model:        cfg.Model,
		temperature:  cfg.Temperature,
		maxTokens:    cfg.MaxTokens,
		systemPrompt: systemPrompt,
		http:         client,
		log:          log,
	}
}

// Model returns the model identifier sent with each request.
func (c *Client) Model() string { return c.model }

// chatRequest is the request body for the chat-completions API.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

// chatMessage is a single message in the conversation.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse is the response body from the chat-completions API.
type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// apiError is the error envelope returned with non-2xx statuses.
type apiError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Summarize sends prompt as the user message and returns the trimmed text of
// the first choice. The call is not retried.
func (c *Client) Summarize(ctx context.Context, prompt string) (string, error) {
	var messages []chatMessage
	if c.systemPrompt != "" {
		messages = append(messages, chatMessage{Role: "system", Content: c.systemPrompt})
	}
	messages = append(messages, chatMessage{Role: "user", Content: prompt})

	bodyBytes, err := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("%w: marshaling request: %v", ErrSummarize, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+completionsPath, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("%w: creating request: %v", ErrSummarize, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	c.log.Debug("calling completion API",
		zap.String("model", c.model),
		zap.Int("prompt_chars", len(prompt)))

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: calling completion API: %w", ErrSummarize, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return "", fmt.Errorf("%w: completion API returned %d: %s", ErrSummarize, resp.StatusCode, errorMessage(body))
	}

	var cr chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", fmt.Errorf("%w: decoding completion response: %v", ErrSummarize, err)
	}
	if len(cr.Choices) == 0 {
		return "", fmt.Errorf("%w: completion API returned no choices", ErrSummarize)
	}
	return strings.TrimSpace(cr.Choices[0].Message.Content), nil
}

// errorMessage extracts error.message from an API error body, falling back
// to the raw body.
func errorMessage(body []byte) string {
	var ae apiError
	if err := json.Unmarshal(body, &ae); err == nil && ae.Error.Message != "" {
		return ae.Error.Message
	}
	return strings.TrimSpace(string(body))
}
