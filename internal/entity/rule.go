package entity

import "github.com/medclaims/claims-pipeline/constants"

// RuleCheckOutput is the result of one rule-engine evaluation pass.
// RejectionReasons is append-only: a newer engine version appends to its
// predecessor's reasons and never rewrites them.
type RuleCheckOutput struct {
	PolicyValid       bool                     `json:"policy_valid"`
	CoverageActive    bool                     `json:"coverage_active"`
	DiagnosisCovered  bool                     `json:"diagnosis_covered"`
	AmountWithinLimit bool                     `json:"amount_within_limit"`
	MissingDocuments  []constants.DocumentType `json:"missing_documents"`
	FinalDecision     constants.Decision       `json:"final_decision"`
	RejectionReasons  []string                 `json:"rejection_reasons"`
	RuleEngineVersion string                   `json:"rule_engine_version"`
}
