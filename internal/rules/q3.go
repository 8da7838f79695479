package rules

import (
	"fmt"

	"github.com/medclaims/claims-pipeline/constants"
	"github.com/medclaims/claims-pipeline/internal/entity"
)

// VersionQ3 tags the 2025 Q3 rule set.
const VersionQ3 = "rules_2025_q3_v1"

// Q3 is the baseline rule set: policy validity, coverage, diagnosis
// exclusions, amount limit, and required-document presence.
type Q3 struct {
	required RequiredChecker
}

func NewQ3(required RequiredChecker) *Q3 {
	return &Q3{required: required}
}

func (e *Q3) Version() string { return VersionQ3 }

func (e *Q3) CheckClaim(ner *entity.NerOutput, policy entity.PolicyData, ocr *entity.OcrOutput) *entity.RuleCheckOutput {
	out := &entity.RuleCheckOutput{
		MissingDocuments:  []constants.DocumentType{},
		RejectionReasons:  []string{},
		RuleEngineVersion: VersionQ3,
	}

	out.PolicyValid = policy.IsActive
	if !out.PolicyValid {
		out.RejectionReasons = append(out.RejectionReasons, "Policy is not active")
	}

	out.CoverageActive = policy.CoverageActive
	if !out.CoverageActive {
		out.RejectionReasons = append(out.RejectionReasons, "Coverage is not active")
	}

	// First excluded diagnosis short-circuits further diagnosis checks.
	out.DiagnosisCovered = true
	for _, code := range ner.DiagnosisCodes {
		if policy.ExcludesDiagnosis(code) {
			out.DiagnosisCovered = false
			out.RejectionReasons = append(out.RejectionReasons,
				fmt.Sprintf("Diagnosis %s is not covered", code))
			break
		}
	}

	// A missing claim limit means unbounded.
	out.AmountWithinLimit = true
	var claimed float64
	if ner.TotalClaimedAmount != nil {
		claimed = *ner.TotalClaimedAmount
	}
	if policy.ClaimLimit != nil && claimed > *policy.ClaimLimit {
		out.AmountWithinLimit = false
		out.RejectionReasons = append(out.RejectionReasons,
			fmt.Sprintf("Claim amount %.2f exceeds policy limit %.2f", claimed, *policy.ClaimLimit))
	}

	// Required documents come from the policy and from the version registry;
	// each missing type contributes exactly one entry and one reason, never
	// duplicated across the two sources.
	flagged := map[constants.DocumentType]bool{}
	missing := func(dt constants.DocumentType) {
		if flagged[dt] || ocr.HasDocuments(dt) {
			return
		}
		flagged[dt] = true
		out.MissingDocuments = append(out.MissingDocuments, dt)
		out.RejectionReasons = append(out.RejectionReasons,
			fmt.Sprintf("Required document missing: %s", dt))
	}
	for _, dt := range policy.RequiredDocuments {
		missing(dt)
	}
	for _, dt := range constants.DocumentTypes {
		if e.required.IsRequired(dt) {
			missing(dt)
		}
	}

	if len(out.RejectionReasons) == 0 {
		out.FinalDecision = constants.DecisionApproved
	} else {
		out.FinalDecision = constants.DecisionRejected
	}
	return out
}
