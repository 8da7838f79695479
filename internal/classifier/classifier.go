// Package classifier maps page text to a document type and groups classified
// pages into document instances.
package classifier

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/medclaims/claims-pipeline/constants"
	"github.com/medclaims/claims-pipeline/internal/common"
	"github.com/medclaims/claims-pipeline/internal/entity"
	"github.com/medclaims/claims-pipeline/internal/llm"
)

// Classifier maps a page's text to a document type. Implementations are total:
// they return a type for any input, falling back to claim_form.
type Classifier interface {
	Classify(ctx context.Context, text string) constants.DocumentType
}

// Factory builds a classifier version. The LLM client may go unused by
// deterministic versions.
type Factory func(client llm.Client, logger *slog.Logger) Classifier

var factories = map[string]Factory{
	"v1": func(_ llm.Client, _ *slog.Logger) Classifier { return &KeywordClassifier{} },
	"v2": func(client llm.Client, logger *slog.Logger) Classifier { return NewLLMClassifier(client, logger) },
}

// Load returns the classifier for the configured version, failing closed on
// unregistered versions.
func Load(version string, client llm.Client, logger *slog.Logger) (Classifier, error) {
	f, ok := factories[version]
	if !ok {
		return nil, common.NewAppError("UNSUPPORTED_VERSION",
			fmt.Sprintf("classifier version %q", version), common.ErrUnsupportedVersion)
	}
	return f(client, logger), nil
}

// ClassifyPages classifies an ordered sequence of raw page texts.
func ClassifyPages(ctx context.Context, c Classifier, pageTexts []string) []entity.Page {
	pages := make([]entity.Page, 0, len(pageTexts))
	for i, text := range pageTexts {
		pages = append(pages, entity.Page{
			PageNumber:   i + 1,
			RawText:      text,
			DocumentType: c.Classify(ctx, text),
			Confidence:   1.0,
		})
	}
	return pages
}
