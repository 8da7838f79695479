package docproc

import (
	"context"
	"log/slog"

	"github.com/medclaims/claims-pipeline/internal/entity"
	"github.com/medclaims/claims-pipeline/internal/llm"
)

const idCardV1Prompt = `You are an expert identity-document processor. Extract the following fields from the identification document:

- patient_name: Full name on the document
- date_of_birth: Date of birth
- id_number: Identification number
- expiration_date: Expiry date of the document
- issuing_authority: Authority that issued the document
- address: Address on the document

Return ONLY a JSON object with these fields. If any field is not present, set it to null.

Text:
{text}`

// IDCardV1 extracts the identification-document field set.
type IDCardV1 struct {
	client llm.Client
	logger *slog.Logger
}

func (p *IDCardV1) Extract(ctx context.Context, pageTexts []string) (any, error) {
	schema := candidateSchema(map[string]any{
		"patient_name":      scalarProp(),
		"date_of_birth":     scalarProp(),
		"id_number":         scalarProp(),
		"expiration_date":   scalarProp(),
		"issuing_authority": scalarProp(),
		"address":           scalarProp(),
	})

	c, err := extractCandidate(ctx, p.client, p.logger,
		"docproc.id_card.v1", idCardV1Prompt, pageTexts, schema)
	if err != nil {
		return nil, err
	}

	return entity.IDCardRecord{
		PatientName:      str(c, "patient_name"),
		DateOfBirth:      str(c, "date_of_birth"),
		IDNumber:         str(c, "id_number"),
		ExpirationDate:   str(c, "expiration_date"),
		IssuingAuthority: str(c, "issuing_authority"),
		Address:          str(c, "address"),
	}, nil
}
