package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Extractor turns raw CV text into a JSON object describing the resume.
type Extractor interface {
	ExtractResume(ctx context.Context, cvText string) (json.RawMessage, error)
}

var (
	// ErrUnavailable wraps provider failures: transport errors, API errors, timeouts.
	ErrUnavailable = errors.New("llm unavailable")
	// ErrNotConfigured is returned by the placeholder when no provider is set up.
	ErrNotConfigured = fmt.Errorf("%w: no provider configured", ErrUnavailable)
)

// PlaceholderClient stands in when LLM_PROVIDER=none or credentials are missing.
type PlaceholderClient struct{}

// ExtractResume returns ErrNotConfigured.
func (PlaceholderClient) ExtractResume(context.Context, string) (json.RawMessage, error) {
	return nil, ErrNotConfigured
}

// Unavailable wraps err so callers can match ErrUnavailable; context
// cancellation passes through untouched.
func Unavailable(provider string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	return fmt.Errorf("%w: %s: %w", ErrUnavailable, provider, err)
}
