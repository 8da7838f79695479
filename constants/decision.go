package constants

// Decision is the terminal outcome of a rule-engine evaluation.
type Decision string

const (
	DecisionApproved      Decision = "APPROVED"
	DecisionRejected      Decision = "REJECTED"
	DecisionPendingReview Decision = "PENDING_REVIEW"
)

// Pipeline-wide version strings stamped onto outputs.
const (
	OCRVersion      = "1.0.0"
	PipelineVersion = "1.1.0"
)
