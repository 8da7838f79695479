package entity

// NerOutput is the canonical claim-level entity set merged from every
// extracted document record. Derived from an OcrOutput, never mutated after.
type NerOutput struct {
	PolicyNumber       string   `json:"policy_number,omitempty"`
	PatientName        string   `json:"patient_name,omitempty"`
	DiagnosisCodes     []string `json:"diagnosis_codes"`
	ProcedureCodes     []string `json:"procedure_codes"`
	TotalClaimedAmount *float64 `json:"total_claimed_amount"`
	SignatureVerified  *bool    `json:"signature_verified"`
	HospitalName       string   `json:"hospital_name,omitempty"`
	ServiceDates       []string `json:"service_dates"`
	NerVersion         string   `json:"ner_version,omitempty"`
}
