package entity

import (
	"time"

	"github.com/medclaims/claims-pipeline/constants"
)

// Per-type extracted records. String fields use "" for absent, amount fields
// are nil when the source value could not be coerced, list fields are always
// non-nil (empty, never null, in the serialized output).

// ClaimFormRecord is the field set extracted from the claim form. The provider
// fields are only populated by the v2 processor.
type ClaimFormRecord struct {
	PolicyNumber   string   `json:"policy_number,omitempty"`
	PatientName    string   `json:"patient_name,omitempty"`
	ClaimAmount    *float64 `json:"claim_amount"`
	DateOfService  string   `json:"date_of_service,omitempty"`
	DiagnosisCodes []string `json:"diagnosis_codes"`

	// v2 additions
	ProviderName        string `json:"provider_name,omitempty"`
	ProviderNPI         string `json:"provider_npi,omitempty"`
	ClaimSubmissionDate string `json:"claim_submission_date,omitempty"`
}

type DischargeRecord struct {
	PatientName        string   `json:"patient_name,omitempty"`
	DiagnosisCodes     []string `json:"diagnosis_codes"`
	ProcedureCodes     []string `json:"procedure_codes"`
	AdmissionDate      string   `json:"admission_date,omitempty"`
	DischargeDate      string   `json:"discharge_date,omitempty"`
	AttendingPhysician string   `json:"attending_physician,omitempty"`
	HospitalName       string   `json:"hospital_name,omitempty"`
	DischargeCondition string   `json:"discharge_condition,omitempty"`
}

// ServiceItem is one line of an invoice's itemized services.
type ServiceItem struct {
	Service string   `json:"service"`
	Cost    *float64 `json:"cost"`
}

type InvoiceRecord struct {
	TotalAmount          *float64      `json:"total_amount"`
	ServiceDate          string        `json:"service_date,omitempty"`
	HospitalName         string        `json:"hospital_name,omitempty"`
	ItemizedServices     []ServiceItem `json:"itemized_services"`
	PatientAccountNumber string        `json:"patient_account_number,omitempty"`
}

type ReceiptRecord struct {
	PaymentAmount        *float64 `json:"payment_amount"`
	PaymentDate          string   `json:"payment_date,omitempty"`
	PaymentMethod        string   `json:"payment_method,omitempty"`
	MerchantName         string   `json:"merchant_name,omitempty"`
	TransactionReference string   `json:"transaction_reference,omitempty"`
	PatientName          string   `json:"patient_name,omitempty"`
}

type PaymentProofRecord struct {
	PayerName          string   `json:"payer_name,omitempty"`
	PayeeName          string   `json:"payee_name,omitempty"`
	PaymentAmount      *float64 `json:"payment_amount"`
	PaymentDate        string   `json:"payment_date,omitempty"`
	BankName           string   `json:"bank_name,omitempty"`
	AccountNumberLast4 string   `json:"account_number_last4,omitempty"`
	TransactionID      string   `json:"transaction_id,omitempty"`
	PaymentPurpose     string   `json:"payment_purpose,omitempty"`
}

type IDCardRecord struct {
	PatientName      string `json:"patient_name,omitempty"`
	DateOfBirth      string `json:"date_of_birth,omitempty"`
	IDNumber         string `json:"id_number,omitempty"`
	ExpirationDate   string `json:"expiration_date,omitempty"`
	IssuingAuthority string `json:"issuing_authority,omitempty"`
	Address          string `json:"address,omitempty"`
}

// OcrMetadata records what was processed and under which versions.
type OcrMetadata struct {
	ClaimID             string                            `json:"claim_id,omitempty"`
	PolicyNumber        string                            `json:"policy_number,omitempty"`
	OCRVersion          string                            `json:"ocr_version"`
	DocumentVersions    map[constants.DocumentType]string `json:"document_versions"`
	ProcessingTimestamp time.Time                         `json:"processing_timestamp"`
}

// OcrOutput is the aggregator's result: exactly one claim form record plus
// zero or more records per repeatable type, in group-discovery order. It is
// consumed read-only downstream.
type OcrOutput struct {
	ClaimForm     *ClaimFormRecord     `json:"claim_form"`
	Discharges    []DischargeRecord    `json:"discharges"`
	Invoices      []InvoiceRecord      `json:"invoices"`
	Receipts      []ReceiptRecord      `json:"receipts"`
	PaymentProofs []PaymentProofRecord `json:"payment_proofs"`
	IDCards       []IDCardRecord       `json:"id_cards"`
	Metadata      OcrMetadata          `json:"metadata"`
}

// HasDocuments reports whether at least one record of the given type was
// extracted. The rule engines use this for missing-document checks.
func (o *OcrOutput) HasDocuments(dt constants.DocumentType) bool {
	switch dt {
	case constants.ClaimForm:
		return o.ClaimForm != nil
	case constants.Discharge:
		return len(o.Discharges) > 0
	case constants.Invoice:
		return len(o.Invoices) > 0
	case constants.Receipt:
		return len(o.Receipts) > 0
	case constants.PaymentProof:
		return len(o.PaymentProofs) > 0
	case constants.IDCard:
		return len(o.IDCards) > 0
	}
	return false
}
