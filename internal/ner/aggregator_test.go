package ner

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medclaims/claims-pipeline/internal/common"
	"github.com/medclaims/claims-pipeline/internal/entity"
)

func f(v float64) *float64 { return &v }

func baseOcr() *entity.OcrOutput {
	return &entity.OcrOutput{
		ClaimForm: &entity.ClaimFormRecord{
			PolicyNumber:   "POL-123456",
			PatientName:    "John Doe",
			ClaimAmount:    f(1250),
			DateOfService:  "2024-01-15",
			DiagnosisCodes: []string{"E11.9"},
		},
		Discharges: []entity.DischargeRecord{{
			PatientName:    "Jonathan Doe",
			HospitalName:   "City General",
			DiagnosisCodes: []string{"E11.9", "I10"},
			ProcedureCodes: []string{"99213"},
			AdmissionDate:  "2024-01-10",
			DischargeDate:  "2024-01-15",
		}},
		Invoices: []entity.InvoiceRecord{{TotalAmount: f(900), ServiceDate: "2024-01-15"}},
		Receipts: []entity.ReceiptRecord{{PaymentAmount: f(900)}},
	}
}

func TestLoad(t *testing.T) {
	for _, v := range []string{"v1", "v2"} {
		agg, err := Load(v)
		require.NoError(t, err)
		assert.NotNil(t, agg)
	}

	_, err := Load("v3")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrUnsupportedVersion))
}

func TestExtractEntitiesMerge(t *testing.T) {
	agg, err := Load("v1")
	require.NoError(t, err)

	out := agg.ExtractEntities(baseOcr())

	assert.Equal(t, "POL-123456", out.PolicyNumber)
	assert.Equal(t, "John Doe", out.PatientName, "claim form name wins over discharge name")
	assert.Equal(t, "City General", out.HospitalName)
	assert.Equal(t, []string{"E11.9", "I10"}, out.DiagnosisCodes, "deduplicated, first-seen order")
	assert.Equal(t, []string{"99213"}, out.ProcedureCodes)
	assert.Equal(t, []string{"2024-01-15", "2024-01-10"}, out.ServiceDates)
	require.NotNil(t, out.TotalClaimedAmount)
	assert.Equal(t, 1250.0, *out.TotalClaimedAmount, "claim form amount is authoritative")
	assert.Nil(t, out.SignatureVerified, "no payment proofs, so signature state is unknown")
	assert.Equal(t, "v1", out.NerVersion)
}

func TestExtractEntitiesIdempotent(t *testing.T) {
	agg, err := Load("v1")
	require.NoError(t, err)

	in := baseOcr()
	first, err1 := json.Marshal(agg.ExtractEntities(in))
	second, err2 := json.Marshal(agg.ExtractEntities(in))
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, string(first), string(second))
}

func TestTotalClaimedAmountPrecedence(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(o *entity.OcrOutput)
		want   *float64
	}{
		{
			name:   "claim form amount wins",
			mutate: func(o *entity.OcrOutput) {},
			want:   f(1250),
		},
		{
			name: "invoice sum when claim form amount is nil",
			mutate: func(o *entity.OcrOutput) {
				o.ClaimForm.ClaimAmount = nil
				o.Invoices = append(o.Invoices, entity.InvoiceRecord{TotalAmount: f(100)})
			},
			want: f(1000),
		},
		{
			name: "receipt sum when invoices have no amounts at all",
			mutate: func(o *entity.OcrOutput) {
				o.ClaimForm.ClaimAmount = nil
				o.Invoices = nil
			},
			want: f(900),
		},
		{
			name: "invoices present but all amounts nil falls through to receipts",
			mutate: func(o *entity.OcrOutput) {
				o.ClaimForm.ClaimAmount = nil
				o.Invoices = []entity.InvoiceRecord{{TotalAmount: nil}}
			},
			want: f(900),
		},
		{
			name: "no source yields nil",
			mutate: func(o *entity.OcrOutput) {
				o.ClaimForm.ClaimAmount = nil
				o.Invoices = nil
				o.Receipts = nil
			},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agg, err := Load("v1")
			require.NoError(t, err)

			in := baseOcr()
			tt.mutate(in)
			out := agg.ExtractEntities(in)
			if tt.want == nil {
				assert.Nil(t, out.TotalClaimedAmount)
				return
			}
			require.NotNil(t, out.TotalClaimedAmount)
			assert.Equal(t, *tt.want, *out.TotalClaimedAmount)
		})
	}
}

func TestSignatureVerified(t *testing.T) {
	agg, err := Load("v1")
	require.NoError(t, err)

	in := baseOcr()
	in.PaymentProofs = []entity.PaymentProofRecord{{PayerName: "John Doe"}}
	out := agg.ExtractEntities(in)
	require.NotNil(t, out.SignatureVerified)
	assert.True(t, *out.SignatureVerified)
}

func TestPatientNameFallsBackToIDCard(t *testing.T) {
	agg, err := Load("v1")
	require.NoError(t, err)

	in := baseOcr()
	in.ClaimForm.PatientName = ""
	in.Discharges = nil
	in.IDCards = []entity.IDCardRecord{{PatientName: "John Q. Doe"}}

	out := agg.ExtractEntities(in)
	assert.Equal(t, "John Q. Doe", out.PatientName)
}

func TestV2DelegatesToV1(t *testing.T) {
	v1, err := Load("v1")
	require.NoError(t, err)
	v2, err := Load("v2")
	require.NoError(t, err)

	in := baseOcr()
	a := v1.ExtractEntities(in)
	b := v2.ExtractEntities(in)

	assert.Equal(t, "v2", b.NerVersion)
	b.NerVersion = a.NerVersion
	assert.Equal(t, a, b, "v2 adds nothing beyond the version stamp yet")
}

func TestEmptyListsNeverNil(t *testing.T) {
	agg, err := Load("v1")
	require.NoError(t, err)

	out := agg.ExtractEntities(&entity.OcrOutput{ClaimForm: &entity.ClaimFormRecord{}})
	require.NotNil(t, out.DiagnosisCodes)
	require.NotNil(t, out.ProcedureCodes)
	require.NotNil(t, out.ServiceDates)

	b, err := json.Marshal(out)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"diagnosis_codes":[]`)
}
