package classifier

import (
	"context"
	"strings"

	"github.com/medclaims/claims-pipeline/constants"
)

// KeywordClassifier is the v1 classifier: deterministic, case-insensitive
// keyword rules. The precedence order (claim_form first, claim_form as the
// no-match fallback) is load-bearing; the rule engines depend on ambiguous
// pages landing on claim_form.
type KeywordClassifier struct{}

func (KeywordClassifier) Classify(_ context.Context, text string) constants.DocumentType {
	t := strings.ToLower(text)

	switch {
	case strings.Contains(t, "claim") && (strings.Contains(t, "policy") || strings.Contains(t, "insur")):
		return constants.ClaimForm
	case strings.Contains(t, "discharge") && (strings.Contains(t, "hospital") || strings.Contains(t, "treatment")):
		return constants.Discharge
	case strings.Contains(t, "invoice") || (strings.Contains(t, "bill") && strings.Contains(t, "amount")):
		return constants.Invoice
	case strings.Contains(t, "receipt") || (strings.Contains(t, "paid") && strings.Contains(t, "date")):
		return constants.Receipt
	case strings.Contains(t, "payment") && (strings.Contains(t, "bank") || strings.Contains(t, "transaction")):
		return constants.PaymentProof
	case strings.Contains(t, "id") && (strings.Contains(t, "card") || strings.Contains(t, "identification")):
		return constants.IDCard
	default:
		return constants.ClaimForm
	}
}
