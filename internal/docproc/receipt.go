package docproc

import (
	"context"
	"log/slog"

	"github.com/medclaims/claims-pipeline/internal/entity"
	"github.com/medclaims/claims-pipeline/internal/llm"
)

const receiptV1Prompt = `You are an expert payments processor. Extract the following fields from the payment receipt:

- payment_amount: Amount paid
- payment_date: Date of payment
- payment_method: Method of payment
- merchant_name: Name of the merchant or provider
- transaction_reference: Transaction reference number
- patient_name: Name of the patient if present

Return ONLY a JSON object with these fields. If any field is not present, set it to null.

Text:
{text}`

// ReceiptV1 extracts the payment-receipt field set.
type ReceiptV1 struct {
	client llm.Client
	logger *slog.Logger
}

func (p *ReceiptV1) Extract(ctx context.Context, pageTexts []string) (any, error) {
	schema := candidateSchema(map[string]any{
		"payment_amount":        scalarProp(),
		"payment_date":          scalarProp(),
		"payment_method":        scalarProp(),
		"merchant_name":         scalarProp(),
		"transaction_reference": scalarProp(),
		"patient_name":          scalarProp(),
	})

	c, err := extractCandidate(ctx, p.client, p.logger,
		"docproc.receipt.v1", receiptV1Prompt, pageTexts, schema)
	if err != nil {
		return nil, err
	}

	return entity.ReceiptRecord{
		PaymentAmount:        amount(c, "payment_amount"),
		PaymentDate:          str(c, "payment_date"),
		PaymentMethod:        str(c, "payment_method"),
		MerchantName:         str(c, "merchant_name"),
		TransactionReference: str(c, "transaction_reference"),
		PatientName:          str(c, "patient_name"),
	}, nil
}
