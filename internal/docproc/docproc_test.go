package docproc

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medclaims/claims-pipeline/constants"
	"github.com/medclaims/claims-pipeline/internal/common"
	"github.com/medclaims/claims-pipeline/internal/entity"
	"github.com/medclaims/claims-pipeline/internal/llm"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// stubClient returns a fixed candidate for every extraction call.
type stubClient struct {
	candidate llm.FieldCandidate
	err       error
}

func (s *stubClient) ExtractFields(_ context.Context, _, _ string) (llm.FieldCandidate, []byte, error) {
	if s.err != nil {
		return nil, nil, s.err
	}
	raw, err := json.Marshal(s.candidate)
	if err != nil {
		return nil, nil, err
	}
	return s.candidate, raw, nil
}

func (s *stubClient) ClassifyText(_ context.Context, _, _ string) (string, error) {
	return "", errors.New("not implemented")
}

func TestRegistryLoad(t *testing.T) {
	r := NewRegistry(&stubClient{}, nil)

	tests := []struct {
		docType constants.DocumentType
		version string
		wantErr bool
	}{
		{constants.ClaimForm, "v1", false},
		{constants.ClaimForm, "v2", false},
		{constants.Discharge, "v1", false},
		{constants.Invoice, "v1", false},
		{constants.Receipt, "v1", false},
		{constants.PaymentProof, "v1", false},
		{constants.IDCard, "v1", false},
		{constants.Invoice, "v7", true},
		{constants.Discharge, "v2", true},
	}

	for _, tt := range tests {
		p, err := r.Load(tt.docType, tt.version)
		if tt.wantErr {
			require.Error(t, err, "%s/%s", tt.docType, tt.version)
			assert.True(t, errors.Is(err, common.ErrUnsupportedVersion))
			continue
		}
		require.NoError(t, err, "%s/%s", tt.docType, tt.version)
		assert.NotNil(t, p)
	}
}

func TestClaimFormV1Extract(t *testing.T) {
	client := &stubClient{candidate: llm.FieldCandidate{
		"policy_number":   "POL-123456",
		"patient_name":    "John Doe",
		"claim_amount":    "$1,250.00",
		"date_of_service": "2024-01-15",
		"diagnosis_codes": "E11.9",
	}}

	p := &ClaimFormV1{client: client, logger: testLogger()}
	got, err := p.Extract(context.Background(), []string{"page one", "page two"})
	require.NoError(t, err)

	rec, ok := got.(*entity.ClaimFormRecord)
	require.True(t, ok)
	assert.Equal(t, "POL-123456", rec.PolicyNumber)
	assert.Equal(t, "John Doe", rec.PatientName)
	require.NotNil(t, rec.ClaimAmount)
	assert.Equal(t, 1250.0, *rec.ClaimAmount)
	assert.Equal(t, []string{"E11.9"}, rec.DiagnosisCodes, "scalar code wraps into a list")
	assert.Empty(t, rec.ProviderName, "v1 never fills v2 fields")
}

func TestClaimFormV2Extract(t *testing.T) {
	client := &stubClient{candidate: llm.FieldCandidate{
		"policy_number":         "POL-123456",
		"patient_name":          "John Doe",
		"claim_amount":          1250.0,
		"diagnosis_codes":       []any{"E11.9", "I10"},
		"provider_name":         "City General Hospital",
		"provider_npi":          "1234567890",
		"claim_submission_date": "2024-01-20",
	}}

	p := &ClaimFormV2{client: client, logger: testLogger()}
	got, err := p.Extract(context.Background(), []string{"page"})
	require.NoError(t, err)

	rec, ok := got.(*entity.ClaimFormRecord)
	require.True(t, ok)
	assert.Equal(t, []string{"E11.9", "I10"}, rec.DiagnosisCodes)
	assert.Equal(t, "City General Hospital", rec.ProviderName)
	assert.Equal(t, "1234567890", rec.ProviderNPI)
	assert.Equal(t, "2024-01-20", rec.ClaimSubmissionDate)
}

func TestClaimFormExtractDegradesBadValues(t *testing.T) {
	client := &stubClient{candidate: llm.FieldCandidate{
		"policy_number":   nil,
		"claim_amount":    "not a number",
		"diagnosis_codes": nil,
	}}

	p := &ClaimFormV1{client: client, logger: testLogger()}
	got, err := p.Extract(context.Background(), []string{"page"})
	require.NoError(t, err, "coercion failures degrade, never error")

	rec := got.(*entity.ClaimFormRecord)
	assert.Empty(t, rec.PolicyNumber)
	assert.Nil(t, rec.ClaimAmount)
	require.NotNil(t, rec.DiagnosisCodes)
	assert.Empty(t, rec.DiagnosisCodes)
}

func TestExtractPropagatesClientFailure(t *testing.T) {
	client := &stubClient{err: common.NewAppError("EXTRACTION_FAILED", "boom", common.ErrExtraction)}
	p := &InvoiceV1{client: client, logger: testLogger()}

	_, err := p.Extract(context.Background(), []string{"page"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrExtraction))
}

func TestInvoiceV1Extract(t *testing.T) {
	client := &stubClient{candidate: llm.FieldCandidate{
		"total_amount": "$2,500.00",
		"service_date": "2024-01-15",
		"itemized_services": []any{
			map[string]any{"service": "Consultation", "cost": 150.0},
		},
	}}

	p := &InvoiceV1{client: client, logger: testLogger()}
	got, err := p.Extract(context.Background(), []string{"page"})
	require.NoError(t, err)

	rec, ok := got.(entity.InvoiceRecord)
	require.True(t, ok)
	require.NotNil(t, rec.TotalAmount)
	assert.Equal(t, 2500.0, *rec.TotalAmount)
	require.Len(t, rec.ItemizedServices, 1)
	assert.Equal(t, "Consultation", rec.ItemizedServices[0].Service)
}
