package docproc

import (
	"context"
	"log/slog"

	"github.com/medclaims/claims-pipeline/internal/entity"
	"github.com/medclaims/claims-pipeline/internal/llm"
)

const invoiceV1Prompt = `You are an expert medical billing processor. Extract the following fields from the invoice:

- total_amount: Total invoice amount
- service_date: Date the service was provided
- hospital_name: Name of the hospital or provider
- itemized_services: List of services, each with "service" and "cost"
- patient_account_number: Patient account number

Return ONLY a JSON object with these fields. If any field is not present, set it to null.
Return itemized_services as a JSON array of objects.

Text:
{text}`

// InvoiceV1 extracts the invoice field set.
type InvoiceV1 struct {
	client llm.Client
	logger *slog.Logger
}

func (p *InvoiceV1) Extract(ctx context.Context, pageTexts []string) (any, error) {
	schema := candidateSchema(map[string]any{
		"total_amount":           scalarProp(),
		"service_date":           scalarProp(),
		"hospital_name":          scalarProp(),
		"itemized_services":      map[string]any{"type": []any{"array", "null"}},
		"patient_account_number": scalarProp(),
	})

	c, err := extractCandidate(ctx, p.client, p.logger,
		"docproc.invoice.v1", invoiceV1Prompt, pageTexts, schema)
	if err != nil {
		return nil, err
	}

	return entity.InvoiceRecord{
		TotalAmount:          amount(c, "total_amount"),
		ServiceDate:          str(c, "service_date"),
		HospitalName:         str(c, "hospital_name"),
		ItemizedServices:     serviceItems(c, "itemized_services"),
		PatientAccountNumber: str(c, "patient_account_number"),
	}, nil
}
