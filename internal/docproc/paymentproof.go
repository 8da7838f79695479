package docproc

import (
	"context"
	"log/slog"

	"github.com/medclaims/claims-pipeline/internal/entity"
	"github.com/medclaims/claims-pipeline/internal/llm"
)

const paymentProofV1Prompt = `You are an expert payments processor. Extract the following fields from the proof of payment (bank statement, transfer confirmation, or similar):

- payer_name: Name of the payer
- payee_name: Name of the beneficiary
- payment_amount: Amount transferred
- payment_date: Date of the transfer
- bank_name: Name of the bank
- account_number_last4: Last 4 digits of the account number
- transaction_id: Bank transaction identifier
- payment_purpose: Stated purpose of the payment

Return ONLY a JSON object with these fields. If any field is not present, set it to null.

Text:
{text}`

// PaymentProofV1 extracts the payment-proof field set.
type PaymentProofV1 struct {
	client llm.Client
	logger *slog.Logger
}

func (p *PaymentProofV1) Extract(ctx context.Context, pageTexts []string) (any, error) {
	schema := candidateSchema(map[string]any{
		"payer_name":           scalarProp(),
		"payee_name":           scalarProp(),
		"payment_amount":       scalarProp(),
		"payment_date":         scalarProp(),
		"bank_name":            scalarProp(),
		"account_number_last4": scalarProp(),
		"transaction_id":       scalarProp(),
		"payment_purpose":      scalarProp(),
	})

	c, err := extractCandidate(ctx, p.client, p.logger,
		"docproc.payment_proof.v1", paymentProofV1Prompt, pageTexts, schema)
	if err != nil {
		return nil, err
	}

	return entity.PaymentProofRecord{
		PayerName:          str(c, "payer_name"),
		PayeeName:          str(c, "payee_name"),
		PaymentAmount:      amount(c, "payment_amount"),
		PaymentDate:        str(c, "payment_date"),
		BankName:           str(c, "bank_name"),
		AccountNumberLast4: str(c, "account_number_last4"),
		TransactionID:      str(c, "transaction_id"),
		PaymentPurpose:     str(c, "payment_purpose"),
	}, nil
}
