package rules

import (
	"github.com/medclaims/claims-pipeline/constants"
	"github.com/medclaims/claims-pipeline/internal/entity"
)

// VersionQ4 tags the 2025 Q4 rule set.
const VersionQ4 = "rules_2025_q4_v1"

// paymentProofThreshold is the claimed amount above which Q4 demands payment
// proof evidence.
const paymentProofThreshold = 1000.0

// Q4 wraps the Q3 engine: it runs the predecessor's full evaluation, then
// appends its own checks. It never rewrites the predecessor's reasons, and it
// can only downgrade the decision, never upgrade it.
type Q4 struct {
	prev Engine
}

func NewQ4(prev Engine) *Q4 {
	return &Q4{prev: prev}
}

func (e *Q4) Version() string { return VersionQ4 }

func (e *Q4) CheckClaim(ner *entity.NerOutput, policy entity.PolicyData, ocr *entity.OcrOutput) *entity.RuleCheckOutput {
	out := e.prev.CheckClaim(ner, policy, ocr)

	if ner.TotalClaimedAmount != nil && *ner.TotalClaimedAmount > paymentProofThreshold {
		if !ocr.HasDocuments(constants.PaymentProof) {
			out.RejectionReasons = append(out.RejectionReasons,
				"Payment proof required for claims over $1000")
			out.FinalDecision = constants.DecisionRejected
		}
	}

	out.RuleEngineVersion = VersionQ4
	return out
}
