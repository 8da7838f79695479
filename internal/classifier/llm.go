package classifier

import (
	"context"
	"log/slog"

	"github.com/medclaims/claims-pipeline/constants"
	"github.com/medclaims/claims-pipeline/internal/llm"
)

const classifyPrompt = `You are an expert document classifier for insurance claims processing.

Please classify the following document text into one of these exact categories:
- "claim_form": Insurance claim form with policy number and claim details
- "discharge": Hospital discharge summary or report
- "invoice": Medical invoice or bill with itemized costs
- "receipt": Payment receipt with transaction details
- "payment_proof": Bank statement or other proof of payment
- "id_card": Patient identification card or document

Text to classify:
{text}

Respond with ONLY the category name in lowercase, nothing else.`

// LLMClassifier is the v2 classifier backed by the classification capability.
// The contract stays total: on any error or an unknown label it falls back to
// claim_form, same as the v1 no-match rule.
type LLMClassifier struct {
	client llm.Client
	logger *slog.Logger
}

func NewLLMClassifier(client llm.Client, logger *slog.Logger) *LLMClassifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LLMClassifier{client: client, logger: logger}
}

func (c *LLMClassifier) Classify(ctx context.Context, text string) constants.DocumentType {
	label, err := c.client.ClassifyText(ctx, classifyPrompt, text)
	if err != nil {
		c.logger.Warn("classifier.llm.fallback", "error", err)
		return constants.ClaimForm
	}
	if !constants.IsValidDocumentType(label) {
		c.logger.Warn("classifier.llm.unknown_label", "label", label)
		return constants.ClaimForm
	}
	return constants.DocumentType(label)
}
