// Package perplexity implements an eino ChatModel over the Perplexity
// chat-completions API (OpenAI wire shape). Unlike the SDK-backed models it
// exposes the upstream failure modes callers need to branch on: a missing
// credential fails before any network I/O, a 429 maps to ErrRateLimited,
// and every other non-2xx surfaces as an APIError carrying the status.
package perplexity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

var (
	// ErrMissingAPIKey is returned before any request is attempted when no
	// credential is configured.
	ErrMissingAPIKey = errors.New("perplexity: api key is not configured")

	// ErrRateLimited maps the upstream 429 so callers can advise a retry
	// instead of reporting a generic failure. No retry happens here.
	ErrRateLimited = errors.New("perplexity: rate limited by upstream")
)

// APIError reports a non-2xx upstream response other than 429.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("perplexity: upstream returned status %d: %s", e.Status, e.Body)
}

// Config carries the connection settings for the completions endpoint.
type Config struct {
	APIKey      string
	Model       string
	BaseURL     string
	Temperature *float64
	TopP        *float64
	MaxTokens   *int
}

// ChatModel is a non-streaming eino chat model backed by the HTTP API.
type ChatModel struct {
	cfg    Config
	client *http.Client
}

// NewChatModel builds a ChatModel. Construction never fails: the credential
// is validated per request so a misconfigured deployment still boots and
// reports the problem on each call.
func NewChatModel(cfg Config) *ChatModel {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.perplexity.ai"
	}
	if cfg.Model == "" {
		cfg.Model = "sonar"
	}
	return &ChatModel{
		cfg:    cfg,
		client: &http.Client{},
	}
}

type wireMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []wireMessage `json:"messages"`
	Temperature *float64      `json:"temperature,omitempty"`
	TopP        *float64      `json:"top_p,omitempty"`
	MaxTokens   *int          `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Generate sends the message list and returns the first choice as an
// assistant message. An upstream response without choices yields an empty
// assistant message; substituting user-facing fallback text is the caller's
// concern.
func (m *ChatModel) Generate(ctx context.Context, input []*schema.Message, _ ...model.Option) (*schema.Message, error) {
	if strings.TrimSpace(m.cfg.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}

	body := chatRequest{
		Model:       m.cfg.Model,
		Messages:    make([]wireMessage, 0, len(input)),
		Temperature: m.cfg.Temperature,
		TopP:        m.cfg.TopP,
		MaxTokens:   m.cfg.MaxTokens,
	}
	for _, msg := range input {
		body.Messages = append(body.Messages, wireMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
		})
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("perplexity: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.cfg.BaseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("perplexity: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+m.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("perplexity: send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		io.Copy(io.Discard, resp.Body)
		return nil, ErrRateLimited
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &APIError{Status: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("perplexity: decode response: %w", err)
	}

	content := ""
	if len(parsed.Choices) > 0 {
		content = parsed.Choices[0].Message.Content
	}
	return schema.AssistantMessage(content, nil), nil
}

// Stream is not supported; the turn contract is a single response.
func (m *ChatModel) Stream(_ context.Context, _ []*schema.Message, _ ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("perplexity: streaming is not supported")
}

// BindTools is not supported by this provider integration.
func (m *ChatModel) BindTools(_ []*schema.ToolInfo) error {
	return errors.New("perplexity: tool binding is not supported")
}
