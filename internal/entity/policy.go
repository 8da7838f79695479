package entity

import "github.com/medclaims/claims-pipeline/constants"

// PolicyData is the immutable snapshot of policy attributes consulted during
// one rule-engine evaluation. A nil ClaimLimit means unbounded.
type PolicyData struct {
	PolicyNumber      string                   `json:"policy_number"`
	IsActive          bool                     `json:"is_active"`
	CoverageActive    bool                     `json:"coverage_active"`
	ExcludedDiagnoses []string                 `json:"excluded_diagnoses"`
	ClaimLimit        *float64                 `json:"claim_limit"`
	RequiredDocuments []constants.DocumentType `json:"required_documents"`
}

// ExcludesDiagnosis reports whether code is on the policy's exclusion list.
func (p PolicyData) ExcludesDiagnosis(code string) bool {
	for _, d := range p.ExcludedDiagnoses {
		if d == code {
			return true
		}
	}
	return false
}
