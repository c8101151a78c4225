package llm

import (
	_ "embed"
	"fmt"
)

//go:embed prompts/extract_resume.txt
var extractPrompt string

const (
	SystemPrompt        = "You are an assistant that extracts structured resume data from raw text. Respond with JSON only."
	FixJSONSystemPrompt = "You are a JSON repair tool. Return only one valid JSON object."
)

// InstructionPrompt returns the extraction instructions and target shape.
func InstructionPrompt() string {
	return extractPrompt
}

// UserPrompt wraps the CV text for the user turn.
func UserPrompt(cvText string) string {
	return fmt.Sprintf("CV Text:\n%s", cvText)
}

// FixUserPrompt asks the model to repair a previous, invalid reply.
func FixUserPrompt(raw []byte) string {
	return fmt.Sprintf("Fix this so it is a single valid JSON object with the same content. Output JSON only:\n%s", string(raw))
}
