package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"cvmaker-backend/internal/llm"
	"cvmaker-backend/internal/shared/telemetry"
)

const (
	DefaultModel = "gemini-2.5-flash"
	providerName = "gemini"
)

// contentGenerator is the subset of *genai.Models used here.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Client implements llm.Extractor on the Gemini API.
type Client struct {
	models contentGenerator
	model  string
}

// NewClient creates a Gemini client for the Gemini API backend.
func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("GEMINI_API_KEY is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	if model = strings.TrimSpace(model); model == "" {
		model = DefaultModel
	}
	return &Client{models: client.Models, model: model}, nil
}

// ExtractResume requests JSON output for the CV text.
func (c *Client) ExtractResume(ctx context.Context, cvText string) (json.RawMessage, error) {
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{
			{Text: llm.SystemPrompt},
			{Text: llm.InstructionPrompt()},
		}},
		ResponseMIMEType: "application/json",
		Temperature:      genai.Ptr[float32](0),
	}

	resp, err := c.models.GenerateContent(ctx, c.model, genai.Text(llm.UserPrompt(cvText)), cfg)
	if err != nil {
		return nil, llm.Unavailable(providerName, fmt.Errorf("generate content: %w", err))
	}

	text := responseText(resp)
	if text == "" {
		return nil, llm.Unavailable(providerName, errors.New("empty response"))
	}
	fields := map[string]any{"provider": providerName, "model": c.model}
	if resp.UsageMetadata != nil {
		fields["prompt_tokens"] = resp.UsageMetadata.PromptTokenCount
		fields["total_tokens"] = resp.UsageMetadata.TotalTokenCount
	}
	telemetry.Info("llm.response", fields)
	return json.RawMessage(text), nil
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	var b strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil || strings.TrimSpace(part.Text) == "" {
				continue
			}
			b.WriteString(part.Text)
		}
		// The first candidate with text is the answer.
		if b.Len() > 0 {
			break
		}
	}
	return strings.TrimSpace(b.String())
}

var _ llm.Extractor = (*Client)(nil)
