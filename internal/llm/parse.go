package llm

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ErrExtractionFormat marks model output that is not a non-empty JSON object.
var ErrExtractionFormat = errors.New("extraction output is not a JSON object")

var resumeObjectSchema = gojsonschema.NewStringLoader(`{
  "type": "object",
  "minProperties": 1
}`)

// DecodeObject parses model output into a generic object. Markdown fences and
// chatter around the outermost braces are tolerated.
func DecodeObject(raw []byte) (map[string]any, error) {
	body := StripFences(raw)
	if len(body) == 0 {
		return nil, fmt.Errorf("%w: empty output", ErrExtractionFormat)
	}

	result, err := gojsonschema.Validate(resumeObjectSchema, gojsonschema.NewBytesLoader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtractionFormat, err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, fmt.Errorf("%w: %s", ErrExtractionFormat, strings.Join(msgs, "; "))
	}

	var out map[string]any
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtractionFormat, err)
	}
	return out, nil
}

// StripFences removes ```json fences and returns the span from the first '{'
// to the last '}' when the remaining text is not already valid JSON.
func StripFences(raw []byte) []byte {
	body := bytes.TrimSpace(raw)
	if bytes.HasPrefix(body, []byte("```")) {
		body = bytes.TrimPrefix(body, []byte("```"))
		if nl := bytes.IndexByte(body, '\n'); nl >= 0 {
			body = body[nl+1:]
		}
		body = bytes.TrimSuffix(bytes.TrimSpace(body), []byte("```"))
		body = bytes.TrimSpace(body)
	}
	if json.Valid(body) {
		return body
	}
	start := bytes.IndexByte(body, '{')
	end := bytes.LastIndexByte(body, '}')
	if start >= 0 && end > start {
		return body[start : end+1]
	}
	return body
}
