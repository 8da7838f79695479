package entity

import (
	"time"

	"github.com/medclaims/claims-pipeline/constants"
)

// ClaimResult is the top-level envelope returned for one pipeline run.
// Immutable once returned.
type ClaimResult struct {
	ClaimID             string             `json:"claim_id"`
	PolicyNumber        string             `json:"policy_number,omitempty"`
	OCR                 *OcrOutput         `json:"ocr"`
	NER                 *NerOutput         `json:"ner"`
	RuleCheck           *RuleCheckOutput   `json:"rule_check"`
	OverallStatus       constants.Decision `json:"overall_status"`
	ProcessingTimestamp time.Time          `json:"processing_timestamp"`
	PipelineVersion     string             `json:"pipeline_version"`
}
