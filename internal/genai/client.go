// Package genai mediates all calls to the remote text-generation service.
// It exposes the two call shapes the application needs: a structured request
// that returns a corrected thought plus exactly three challenge questions,
// and a plain-text request over a role-tagged history. The service is
// stateless; callers resend the full history on every call.
package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/fjordlane/counterpoint/internal/errors"
	"github.com/fjordlane/counterpoint/internal/logging"
	"github.com/fjordlane/counterpoint/internal/prompts"
)

// Message roles for the plain-text call shape.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// EmptyOutputFallback is returned by Respond when the service answers
// successfully but produces no text.
const EmptyOutputFallback = "(the model produced no output)"

// Message is one role-tagged utterance in a generation request.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Refinement is the parsed structured response: the corrected thought and
// exactly three challenge questions.
type Refinement struct {
	Corrected string   `json:"corrected"`
	Questions []string `json:"questions"`
}

// Client is the generation-service boundary. Implementations must treat
// non-success transport responses and malformed payloads both as failures;
// callers never receive a partially-parsed result.
type Client interface {
	// Refine sends the structured call shape: the user's thought plus a fixed
	// coaching instruction and the refinement output schema.
	Refine(ctx context.Context, instruction, thought string) (*Refinement, error)

	// Respond sends the plain-text call shape: a fixed instruction plus an
	// ordered role-tagged history. Returns EmptyOutputFallback when the
	// service answers with empty text.
	Respond(ctx context.Context, instruction string, history []Message) (string, error)
}

// Config holds connection settings for the HTTP client.
type Config struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// HTTPClient talks to an OpenAI-compatible chat-completions endpoint.
type HTTPClient struct {
	model      string
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *logging.Logger
}

// NewHTTPClient constructs a generation client from config. A nil logger
// disables logging.
func NewHTTPClient(cfg Config, logger *logging.Logger) *HTTPClient {
	if logger == nil {
		logger = logging.NopLogger()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &HTTPClient{
		model:      cfg.Model,
		apiKey:     cfg.APIKey,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// chatResponse is the subset of the chat-completions payload we consume.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Refine implements the structured call shape.
func (c *HTTPClient) Refine(ctx context.Context, instruction, thought string) (*Refinement, error) {
	payload := map[string]any{
		"model": c.model,
		"messages": []Message{
			{Role: RoleSystem, Content: instruction},
			{Role: RoleUser, Content: thought},
		},
		"response_format": map[string]any{
			"type":        "json_schema",
			"json_schema": prompts.RefinementSchema(),
		},
	}

	content, err := c.complete(ctx, payload)
	if err != nil {
		return nil, err
	}

	var refinement Refinement
	if err := json.Unmarshal([]byte(content), &refinement); err != nil {
		return nil, errors.NewServiceError("structured response is not valid JSON", errors.ErrBadPayload).
			WithEndpoint(completionsPath)
	}
	if refinement.Corrected == "" || len(refinement.Questions) != 3 {
		return nil, errors.NewServiceError(
			fmt.Sprintf("structured response missing required fields (questions=%d)", len(refinement.Questions)),
			errors.ErrBadPayload,
		).WithEndpoint(completionsPath)
	}
	return &refinement, nil
}

// Respond implements the plain-text call shape.
func (c *HTTPClient) Respond(ctx context.Context, instruction string, history []Message) (string, error) {
	messages := make([]Message, 0, len(history)+1)
	messages = append(messages, Message{Role: RoleSystem, Content: instruction})
	messages = append(messages, history...)

	payload := map[string]any{
		"model":    c.model,
		"messages": messages,
	}

	content, err := c.complete(ctx, payload)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(content) == "" {
		return EmptyOutputFallback, nil
	}
	return content, nil
}

const completionsPath = "/chat/completions"

// complete posts a chat-completions payload and returns the first choice's
// content.
func (c *HTTPClient) complete(ctx context.Context, payload map[string]any) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	endpoint := c.baseURL + completionsPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	c.logger.Debug("generation request", "model", c.model, "endpoint", endpoint)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("generation request failed", "error", err)
		return "", errors.NewServiceError("request failed", errors.ErrServiceUnavailable).
			WithEndpoint(completionsPath)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.NewServiceError("reading response body", errors.ErrServiceUnavailable).
			WithEndpoint(completionsPath).WithStatusCode(resp.StatusCode)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("generation request rejected", "status", resp.StatusCode)
		return "", errors.NewServiceError("non-success status", errors.ErrServiceUnavailable).
			WithEndpoint(completionsPath).WithStatusCode(resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", errors.NewServiceError("response is not valid JSON", errors.ErrBadPayload).
			WithEndpoint(completionsPath).WithStatusCode(resp.StatusCode)
	}
	if len(parsed.Choices) == 0 {
		return "", errors.NewServiceError("response has no choices", errors.ErrBadPayload).
			WithEndpoint(completionsPath).WithStatusCode(resp.StatusCode)
	}

	return parsed.Choices[0].Message.Content, nil
}
