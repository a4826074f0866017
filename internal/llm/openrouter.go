package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/cstobie/commit-synth/internal/jsonextract"
)

const openRouterEndpoint = "https://openrouter.ai/api/v1/chat/completions"

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type toolFunction struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

type tool struct {
	Type     string       `json:"type"`
	Function toolFunction `json:"function"`
}

type toolChoice struct {
	Type     string `json:"type"`
	Function struct {
		Name string `json:"name"`
	} `json:"function"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature *float64      `json:"temperature,omitempty"`
	MaxTokens   *int          `json:"max_tokens,omitempty"`
	Tools       []tool        `json:"tools,omitempty"`
	ToolChoice  *toolChoice   `json:"tool_choice,omitempty"`
}

type toolCall struct {
	Function struct {
		Name      string `json:"name"`
		Arguments string `json:"arguments"`
	} `json:"function"`
}

type chatChoice struct {
	Message struct {
		Content   string     `json:"content"`
		ToolCalls []toolCall `json:"tool_calls"`
	} `json:"message"`
}

type chatResponse struct {
	ID      string       `json:"id"`
	Choices []chatChoice `json:"choices"`
	Error   *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    any    `json:"code"`
	} `json:"error,omitempty"`
}

// OpenRouterClient is the concrete Client implementation, modeled on an
// OpenAI-compatible chat-completions endpoint with a tools/function-calling
// request field. APIKey, Referer, and Title populate the headers OpenRouter
// uses for request attribution.
type OpenRouterClient struct {
	APIKey     string
	Referer    string
	Title      string
	Endpoint   string
	HTTPClient *http.Client
}

// NewOpenRouterClient builds a client; Endpoint/HTTPClient default when zero.
func NewOpenRouterClient(apiKey string) *OpenRouterClient {
	return &OpenRouterClient{
		APIKey:     apiKey,
		Referer:    "github.com/cstobie/commit-synth",
		Title:      "commit-synth",
		Endpoint:   openRouterEndpoint,
		HTTPClient: http.DefaultClient,
	}
}

// Call issues the chat-completion request with req.Schema wired in as the
// single callable tool, forcing the model to invoke it, and extracts the
// resulting JSON arguments. If the provider ignores tool_choice and answers
// in prose instead, jsonextract recovers the structured payload from the
// free-form content.
func (c *OpenRouterClient) Call(ctx context.Context, req Request) ([]byte, error) {
	if c.APIKey == "" {
		return nil, &Error{Kind: Authentication, Err: fmt.Errorf("no API key configured")}
	}

	temp := req.Temperature
	maxTok := req.MaxTokens

	body := chatRequest{
		Model: req.Model,
		Messages: []chatMessage{
			{Role: "system", Content: req.SystemPrompt},
			{Role: "user", Content: req.UserPrompt},
		},
		Temperature: &temp,
		MaxTokens:   &maxTok,
		Tools: []tool{{
			Type: "function",
			Function: toolFunction{
				Name:        req.Schema.Name,
				Description: req.Schema.Description,
				Parameters:  req.Schema.Parameters,
			},
		}},
		ToolChoice: &toolChoice{Type: "function"},
	}
	body.ToolChoice.Function.Name = req.Schema.Name

	raw, err := json.Marshal(body)
	if err != nil {
		return nil, &Error{Kind: SchemaViolation, Err: fmt.Errorf("marshal request: %w", err)}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(), bytes.NewReader(raw))
	if err != nil {
		return nil, &Error{Kind: Network, Err: err}
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")
	if c.Referer != "" {
		httpReq.Header.Set("HTTP-Referer", c.Referer)
	}
	if c.Title != "" {
		httpReq.Header.Set("X-Title", c.Title)
	}

	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return nil, &Error{Kind: Timeout, Err: ctx.Err()}
		}
		return nil, &Error{Kind: Network, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		buf := new(bytes.Buffer)
		_, _ = buf.ReadFrom(resp.Body)
		return nil, &Error{Kind: classifyStatus(resp.StatusCode), Err: fmt.Errorf("status %d: %s", resp.StatusCode, buf.String())}
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, &Error{Kind: ProviderError, Err: fmt.Errorf("decode response: %w", err)}
	}
	if parsed.Error != nil && parsed.Error.Message != "" {
		return nil, &Error{Kind: ProviderError, Err: fmt.Errorf("%s", parsed.Error.Message)}
	}
	if len(parsed.Choices) == 0 {
		return nil, &Error{Kind: ProviderError, Err: fmt.Errorf("empty choices")}
	}

	msg := parsed.Choices[0].Message
	for _, tc := range msg.ToolCalls {
		if tc.Function.Name == req.Schema.Name && tc.Function.Arguments != "" {
			return []byte(tc.Function.Arguments), nil
		}
	}

	if content := strings.TrimSpace(msg.Content); content != "" {
		raw, err := jsonextract.Extract(content)
		if err != nil {
			return nil, &Error{Kind: SchemaViolation, Err: fmt.Errorf("no structured response recovered: %w", err)}
		}
		return raw, nil
	}

	return nil, &Error{Kind: SchemaViolation, Err: fmt.Errorf("no tool call or content in response")}
}

func (c *OpenRouterClient) endpoint() string {
	if c.Endpoint != "" {
		return c.Endpoint
	}
	return openRouterEndpoint
}

func classifyStatus(code int) ErrorKind {
	switch {
	case code == 401 || code == 403:
		return Authentication
	case code == 429:
		return RateLimit
	case code >= 500:
		return ProviderError
	default:
		return ProviderError
	}
}
