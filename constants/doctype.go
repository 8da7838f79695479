package constants

// DocumentType is the closed set of document types the pipeline understands.
type DocumentType string

// Stable values (these exact strings appear in config tables and outputs).
const (
	ClaimForm    DocumentType = "claim_form"
	Discharge    DocumentType = "discharge"
	Invoice      DocumentType = "invoice"
	Receipt      DocumentType = "receipt"
	PaymentProof DocumentType = "payment_proof"
	IDCard       DocumentType = "id_card"
)

// DocumentTypes lists every type in canonical processing order. The entity
// aggregator and the rule engines both iterate in this order, so it is
// load-bearing: first-non-null merge rules depend on claim_form coming first.
var DocumentTypes = []DocumentType{
	ClaimForm,
	Discharge,
	Invoice,
	Receipt,
	PaymentProof,
	IDCard,
}

// IsValidDocumentType reports whether s names a known document type.
func IsValidDocumentType(s string) bool {
	for _, dt := range DocumentTypes {
		if string(dt) == s {
			return true
		}
	}
	return false
}
