package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/medclaims/claims-pipeline/constants"
	"github.com/medclaims/claims-pipeline/internal/entity"
)

func TestClaimsXLSX(t *testing.T) {
	amount := 1250.0
	results := []*entity.ClaimResult{{
		ClaimID:      "claim-1",
		PolicyNumber: "POL-123456",
		NER: &entity.NerOutput{
			PatientName:        "John Doe",
			DiagnosisCodes:     []string{"E11.9", "I10"},
			TotalClaimedAmount: &amount,
		},
		RuleCheck: &entity.RuleCheckOutput{
			MissingDocuments:  []constants.DocumentType{},
			FinalDecision:     constants.DecisionApproved,
			RejectionReasons:  []string{},
			RuleEngineVersion: "rules_2025_q4_v1",
		},
		OverallStatus:       constants.DecisionApproved,
		ProcessingTimestamp: time.Date(2024, 1, 20, 12, 0, 0, 0, time.UTC),
	}}

	data, err := NewService(nil).ClaimsXLSX(results)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Claims")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Claim ID", rows[0][0])
	assert.Equal(t, "claim-1", rows[1][0])
	assert.Equal(t, "POL-123456", rows[1][1])
	assert.Equal(t, "John Doe", rows[1][2])
	assert.Equal(t, "1250.00", rows[1][3])
	assert.Equal(t, "E11.9, I10", rows[1][4])
	assert.Equal(t, "APPROVED", rows[1][5])
}

func TestClaimsXLSXEmpty(t *testing.T) {
	data, err := NewService(nil).ClaimsXLSX(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Claims")
	require.NoError(t, err)
	require.Len(t, rows, 1, "header row only")
}
