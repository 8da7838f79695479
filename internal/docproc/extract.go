package docproc

import (
	"context"
	"log/slog"
	"strings"

	"github.com/medclaims/claims-pipeline/internal/common"
	"github.com/medclaims/claims-pipeline/internal/llm"
)

// Schema fragments shared by the per-type candidate schemas. Value types stay
// permissive: amounts may come back as numbers or strings and coercion deals
// with them; the schema's job is to reject structurally broken output.
func scalarProp() map[string]any {
	return map[string]any{"type": []any{"string", "number", "null"}}
}

func listProp() map[string]any {
	return map[string]any{"type": []any{"array", "string", "null"}}
}

func candidateSchema(props map[string]any) map[string]any {
	return map[string]any{
		"type":                 "object",
		"properties":           props,
		"additionalProperties": true,
	}
}

// extractCandidate runs the shared processor flow: concatenate page texts with
// newline separators, call the extraction capability, validate the candidate
// shape. Both failure paths wrap common.ErrExtraction.
func extractCandidate(ctx context.Context, client llm.Client, logger *slog.Logger,
	event, prompt string, pageTexts []string, schema map[string]any) (llm.FieldCandidate, error) {

	combined := strings.Join(pageTexts, "\n")

	candidate, raw, err := client.ExtractFields(ctx, prompt, combined)
	if err != nil {
		return nil, err
	}
	if err := llm.ValidateCandidate(schema, raw); err != nil {
		logger.Error(event+".schema_validation_failed", "error", err, "raw_bytes", len(raw))
		return nil, common.NewAppError("EXTRACTION_FAILED", "candidate failed schema validation", common.ErrExtraction)
	}
	return candidate, nil
}
