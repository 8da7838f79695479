package docproc

import (
	"context"
	"log/slog"

	"github.com/medclaims/claims-pipeline/internal/entity"
	"github.com/medclaims/claims-pipeline/internal/llm"
)

const claimFormV1Prompt = `You are an expert insurance claims processor. Extract the following fields from the claim form:

- policy_number: Insurance policy number
- patient_name: Name of the patient
- claim_amount: Total amount claimed
- date_of_service: Date when service was provided
- diagnosis_codes: List of diagnosis codes (ICD-10 format)

Return ONLY a JSON object with these fields. If any field is not present, set it to null.
If diagnosis_codes are present, return them as a JSON array.

Text:
{text}`

const claimFormV2Prompt = `You are an expert insurance claims processor. Extract the following fields from the claim form:

- policy_number: Insurance policy number
- patient_name: Name of the patient
- claim_amount: Total amount claimed
- date_of_service: Date when service was provided
- diagnosis_codes: List of diagnosis codes (ICD-10 format)
- provider_name: Name of healthcare provider
- provider_npi: National Provider Identifier
- claim_submission_date: Date when claim was submitted

Return ONLY a JSON object with these fields. If any field is not present, set it to null.
If diagnosis_codes are present, return them as a JSON array.

Text:
{text}`

func claimFormSchema() map[string]any {
	return candidateSchema(map[string]any{
		"policy_number":   scalarProp(),
		"patient_name":    scalarProp(),
		"claim_amount":    scalarProp(),
		"date_of_service": scalarProp(),
		"diagnosis_codes": listProp(),
	})
}

// ClaimFormV1 extracts the baseline claim-form field set.
type ClaimFormV1 struct {
	client llm.Client
	logger *slog.Logger
}

func (p *ClaimFormV1) Extract(ctx context.Context, pageTexts []string) (any, error) {
	candidate, err := extractCandidate(ctx, p.client, p.logger,
		"docproc.claim_form.v1", claimFormV1Prompt, pageTexts, claimFormSchema())
	if err != nil {
		return nil, err
	}
	return validateClaimForm(candidate), nil
}

// ClaimFormV2 is a superset of v1: everything v1 extracts plus provider
// identity and submission date. Kept as its own implementation so claims
// processed under v1 configuration stay reproducible.
type ClaimFormV2 struct {
	client llm.Client
	logger *slog.Logger
}

func (p *ClaimFormV2) Extract(ctx context.Context, pageTexts []string) (any, error) {
	schema := claimFormSchema()
	props := schema["properties"].(map[string]any)
	props["provider_name"] = scalarProp()
	props["provider_npi"] = scalarProp()
	props["claim_submission_date"] = scalarProp()

	candidate, err := extractCandidate(ctx, p.client, p.logger,
		"docproc.claim_form.v2", claimFormV2Prompt, pageTexts, schema)
	if err != nil {
		return nil, err
	}

	rec := validateClaimForm(candidate)
	rec.ProviderName = str(candidate, "provider_name")
	rec.ProviderNPI = str(candidate, "provider_npi")
	rec.ClaimSubmissionDate = str(candidate, "claim_submission_date")
	return rec, nil
}

// validateClaimForm applies the claim-form coercion rules shared by both
// versions: amount to float-or-nil, diagnosis codes to a list.
func validateClaimForm(c llm.FieldCandidate) *entity.ClaimFormRecord {
	return &entity.ClaimFormRecord{
		PolicyNumber:   str(c, "policy_number"),
		PatientName:    str(c, "patient_name"),
		ClaimAmount:    amount(c, "claim_amount"),
		DateOfService:  str(c, "date_of_service"),
		DiagnosisCodes: stringList(c, "diagnosis_codes"),
	}
}
