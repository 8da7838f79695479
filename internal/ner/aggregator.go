// Package ner merges per-document extracted fields into one canonical
// claim-level entity set.
package ner

import (
	"fmt"

	"github.com/medclaims/claims-pipeline/internal/common"
	"github.com/medclaims/claims-pipeline/internal/entity"
)

// Aggregator derives the canonical entity set from an OcrOutput. The merge is
// deterministic: the same input always yields the same output.
type Aggregator interface {
	ExtractEntities(ocr *entity.OcrOutput) *entity.NerOutput
}

// Load returns the aggregator for the configured version, failing closed.
func Load(version string) (Aggregator, error) {
	switch version {
	case "v1":
		return &V1{}, nil
	case "v2":
		return &V2{base: &V1{}}, nil
	default:
		return nil, common.NewAppError("UNSUPPORTED_VERSION",
			fmt.Sprintf("ner aggregator version %q", version), common.ErrUnsupportedVersion)
	}
}

// V1 implements the baseline merge rules, evaluated in canonical document
// type order (claim_form first): first-non-null wins for names and the policy
// number, insertion-ordered dedup for code sets and dates, and a single
// authoritative source for the claimed total.
type V1 struct{}

func (V1) ExtractEntities(ocr *entity.OcrOutput) *entity.NerOutput {
	out := &entity.NerOutput{
		DiagnosisCodes: []string{},
		ProcedureCodes: []string{},
		ServiceDates:   []string{},
		NerVersion:     "v1",
	}

	if cf := ocr.ClaimForm; cf != nil {
		out.PatientName = cf.PatientName
		out.PolicyNumber = cf.PolicyNumber
		out.DiagnosisCodes = appendUnique(out.DiagnosisCodes, cf.DiagnosisCodes...)
		if cf.ClaimAmount != nil {
			v := *cf.ClaimAmount
			out.TotalClaimedAmount = &v
		}
		if cf.DateOfService != "" {
			out.ServiceDates = appendUnique(out.ServiceDates, cf.DateOfService)
		}
	}

	for _, d := range ocr.Discharges {
		if out.PatientName == "" {
			out.PatientName = d.PatientName
		}
		if out.HospitalName == "" {
			out.HospitalName = d.HospitalName
		}
		out.DiagnosisCodes = appendUnique(out.DiagnosisCodes, d.DiagnosisCodes...)
		out.ProcedureCodes = appendUnique(out.ProcedureCodes, d.ProcedureCodes...)
		if d.AdmissionDate != "" {
			out.ServiceDates = appendUnique(out.ServiceDates, d.AdmissionDate)
		}
		if d.DischargeDate != "" {
			out.ServiceDates = appendUnique(out.ServiceDates, d.DischargeDate)
		}
	}

	var invoiceTotal float64
	invoiceSeen := false
	for _, inv := range ocr.Invoices {
		if inv.TotalAmount != nil {
			invoiceTotal += *inv.TotalAmount
			invoiceSeen = true
		}
		if out.HospitalName == "" {
			out.HospitalName = inv.HospitalName
		}
		if inv.ServiceDate != "" {
			out.ServiceDates = appendUnique(out.ServiceDates, inv.ServiceDate)
		}
	}

	var receiptTotal float64
	receiptSeen := false
	for _, r := range ocr.Receipts {
		if r.PaymentAmount != nil {
			receiptTotal += *r.PaymentAmount
			receiptSeen = true
		}
	}

	// First available amount source wins; sources never mix.
	if out.TotalClaimedAmount == nil {
		if invoiceSeen {
			out.TotalClaimedAmount = &invoiceTotal
		} else if receiptSeen {
			out.TotalClaimedAmount = &receiptTotal
		}
	}

	// Placeholder policy: the presence of any payment proof counts as a
	// verified signature. Not a real signature check.
	if len(ocr.PaymentProofs) > 0 {
		verified := true
		out.SignatureVerified = &verified
	}

	for _, id := range ocr.IDCards {
		if out.PatientName == "" {
			out.PatientName = id.PatientName
		}
	}

	return out
}

// V2 wraps V1: it must never re-derive V1's fields differently, only add
// behavior on top. Nothing extra yet beyond the version stamp.
type V2 struct {
	base Aggregator
}

func (a V2) ExtractEntities(ocr *entity.OcrOutput) *entity.NerOutput {
	out := a.base.ExtractEntities(ocr)
	out.NerVersion = "v2"
	return out
}

// appendUnique appends each value not already present, preserving insertion
// order so repeated aggregation is byte-stable.
func appendUnique(list []string, values ...string) []string {
	for _, v := range values {
		found := false
		for _, existing := range list {
			if existing == v {
				found = true
				break
			}
		}
		if !found {
			list = append(list, v)
		}
	}
	return list
}
