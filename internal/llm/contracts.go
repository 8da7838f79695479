package llm

import (
	"context"
	"strings"
)

// FieldCandidate is the untyped key-value set a structured-extraction call
// returns. Fields may be missing or null; processors coerce and validate it.
type FieldCandidate map[string]any

// Client is the language-model capability the classifiers and processors
// depend on. Production backing is an LLM endpoint; tests inject stubs.
type Client interface {
	// ExtractFields renders the prompt template against text and returns the
	// candidate field set plus the raw model output.
	ExtractFields(ctx context.Context, promptTemplate, text string) (FieldCandidate, []byte, error)

	// ClassifyText renders the prompt template against text and returns the
	// category label the model chose.
	ClassifyText(ctx context.Context, promptTemplate, text string) (string, error)
}

// FillPrompt substitutes the {text} placeholder in a prompt template.
func FillPrompt(template, text string) string {
	return strings.ReplaceAll(template, "{text}", text)
}
