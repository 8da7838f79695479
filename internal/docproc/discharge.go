package docproc

import (
	"context"
	"log/slog"

	"github.com/medclaims/claims-pipeline/internal/entity"
	"github.com/medclaims/claims-pipeline/internal/llm"
)

const dischargeV1Prompt = `You are an expert medical records processor. Extract the following fields from the hospital discharge summary:

- patient_name: Name of the patient
- diagnosis_codes: List of diagnosis codes (ICD-10 format)
- procedure_codes: List of procedure codes (CPT format)
- admission_date: Date of admission
- discharge_date: Date of discharge
- attending_physician: Name of the attending physician
- hospital_name: Name of the hospital
- discharge_condition: Patient condition at discharge

Return ONLY a JSON object with these fields. If any field is not present, set it to null.
Return code lists as JSON arrays.

Text:
{text}`

// DischargeV1 extracts the discharge-summary field set.
type DischargeV1 struct {
	client llm.Client
	logger *slog.Logger
}

func (p *DischargeV1) Extract(ctx context.Context, pageTexts []string) (any, error) {
	schema := candidateSchema(map[string]any{
		"patient_name":        scalarProp(),
		"diagnosis_codes":     listProp(),
		"procedure_codes":     listProp(),
		"admission_date":      scalarProp(),
		"discharge_date":      scalarProp(),
		"attending_physician": scalarProp(),
		"hospital_name":       scalarProp(),
		"discharge_condition": scalarProp(),
	})

	c, err := extractCandidate(ctx, p.client, p.logger,
		"docproc.discharge.v1", dischargeV1Prompt, pageTexts, schema)
	if err != nil {
		return nil, err
	}

	return entity.DischargeRecord{
		PatientName:        str(c, "patient_name"),
		DiagnosisCodes:     stringList(c, "diagnosis_codes"),
		ProcedureCodes:     stringList(c, "procedure_codes"),
		AdmissionDate:      str(c, "admission_date"),
		DischargeDate:      str(c, "discharge_date"),
		AttendingPhysician: str(c, "attending_physician"),
		HospitalName:       str(c, "hospital_name"),
		DischargeCondition: str(c, "discharge_condition"),
	}, nil
}
