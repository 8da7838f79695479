package classifier

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medclaims/claims-pipeline/constants"
	"github.com/medclaims/claims-pipeline/internal/common"
)

func TestKeywordClassifier(t *testing.T) {
	tests := []struct {
		name string
		text string
		want constants.DocumentType
	}{
		{
			name: "claim form by policy keyword",
			text: "Insurance Claim Form. Policy Number: POL-123456.",
			want: constants.ClaimForm,
		},
		{
			name: "claim form wins over discharge keywords on the same page",
			text: "claim for insurance after hospital discharge and treatment",
			want: constants.ClaimForm,
		},
		{
			name: "discharge summary",
			text: "Hospital Discharge Summary for patient John Doe",
			want: constants.Discharge,
		},
		{
			name: "invoice by keyword",
			text: "INVOICE #2024-001 from City General",
			want: constants.Invoice,
		},
		{
			name: "invoice by bill plus amount",
			text: "Final bill, total amount due: $1,250.00",
			want: constants.Invoice,
		},
		{
			name: "receipt",
			text: "Payment receipt for services rendered",
			want: constants.Receipt,
		},
		{
			name: "payment proof",
			text: "Bank statement showing payment transaction #98765",
			want: constants.PaymentProof,
		},
		{
			name: "id card",
			text: "National identification card, ID number 1234",
			want: constants.IDCard,
		},
		{
			name: "case insensitive",
			text: "CLAIM submitted under INSURANCE policy",
			want: constants.ClaimForm,
		},
		{
			name: "no keyword match falls back to claim form",
			text: "lorem ipsum dolor sit amet",
			want: constants.ClaimForm,
		},
		{
			name: "empty page falls back to claim form",
			text: "",
			want: constants.ClaimForm,
		},
	}

	c := KeywordClassifier{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(context.Background(), tt.text))
		})
	}
}

func TestLoad(t *testing.T) {
	c, err := Load("v1", nil, nil)
	require.NoError(t, err)
	assert.IsType(t, &KeywordClassifier{}, c)

	_, err = Load("v99", nil, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrUnsupportedVersion))
}

func TestClassifyPages(t *testing.T) {
	pages := ClassifyPages(context.Background(), KeywordClassifier{}, []string{
		"insurance claim under policy POL-1",
		"hospital discharge summary",
		"invoice #1",
	})

	require.Len(t, pages, 3)
	assert.Equal(t, 1, pages[0].PageNumber)
	assert.Equal(t, constants.ClaimForm, pages[0].DocumentType)
	assert.Equal(t, 2, pages[1].PageNumber)
	assert.Equal(t, constants.Discharge, pages[1].DocumentType)
	assert.Equal(t, 3, pages[2].PageNumber)
	assert.Equal(t, constants.Invoice, pages[2].DocumentType)
}
