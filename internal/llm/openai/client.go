package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"cvmaker-backend/internal/llm"
	"cvmaker-backend/internal/shared/telemetry"
)

const (
	defaultBaseURL = "https://api.openai.com/v1/chat/completions"
	DefaultModel   = "gpt-4o-mini"
	providerName   = "openai"
)

// Client implements llm.Extractor using OpenAI Chat Completions in JSON mode.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewClient constructs a new OpenAI client. An empty model selects gpt-4o-mini.
func NewClient(apiKey, model string, timeout time.Duration) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}
	if strings.TrimSpace(model) == "" {
		model = DefaultModel
	}
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &Client{
		apiKey:     apiKey,
		model:      strings.TrimSpace(model),
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	Temperature    float32        `json:"temperature"`
	ResponseFormat responseFormat `json:"response_format"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Usage *struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage,omitempty"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// ExtractResume asks the model for the resume JSON. When the first reply is
// not valid JSON it makes one repair attempt and returns that reply as is;
// validation is left to llm.DecodeObject.
func (c *Client) ExtractResume(ctx context.Context, cvText string) (json.RawMessage, error) {
	raw, err := c.complete(ctx, []chatMessage{
		{Role: "system", Content: llm.SystemPrompt},
		{Role: "developer", Content: llm.InstructionPrompt()},
		{Role: "user", Content: llm.UserPrompt(cvText)},
	})
	if err != nil {
		return nil, llm.Unavailable(providerName, err)
	}
	if json.Valid(llm.StripFences(raw)) {
		return raw, nil
	}

	telemetry.Warn("llm.fix_json", map[string]any{"provider": providerName, "model": c.model})
	fixed, err := c.complete(ctx, []chatMessage{
		{Role: "system", Content: llm.FixJSONSystemPrompt},
		{Role: "user", Content: llm.FixUserPrompt(raw)},
	})
	if err != nil {
		return nil, llm.Unavailable(providerName, err)
	}
	return fixed, nil
}

func (c *Client) complete(ctx context.Context, messages []chatMessage) (json.RawMessage, error) {
	payload, err := json.Marshal(chatRequest{
		Model:          c.model,
		Messages:       messages,
		ResponseFormat: responseFormat{Type: "json_object"},
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("openai response parse (status %d): %w", resp.StatusCode, err)
	}
	if parsed.Error != nil {
		return nil, fmt.Errorf("openai error: %s (%s)", parsed.Error.Message, parsed.Error.Type)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("openai status %d", resp.StatusCode)
	}
	if len(parsed.Choices) == 0 {
		return nil, fmt.Errorf("openai response missing choices")
	}

	fields := map[string]any{"provider": providerName, "model": c.model}
	if parsed.Usage != nil {
		fields["prompt_tokens"] = parsed.Usage.PromptTokens
		fields["completion_tokens"] = parsed.Usage.CompletionTokens
		fields["total_tokens"] = parsed.Usage.TotalTokens
	}
	telemetry.Info("llm.response", fields)

	return json.RawMessage(strings.TrimSpace(parsed.Choices[0].Message.Content)), nil
}

var _ llm.Extractor = (*Client)(nil)
