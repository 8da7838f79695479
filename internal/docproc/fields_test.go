package docproc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medclaims/claims-pipeline/internal/llm"
)

func TestAmount(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  *float64
	}{
		{name: "number", value: 1250.5, want: f(1250.5)},
		{name: "plain numeric string", value: "1250.50", want: f(1250.5)},
		{name: "currency string", value: "$1,250.00", want: f(1250)},
		{name: "padded string", value: "  42  ", want: f(42)},
		{name: "unparseable string", value: "abc", want: nil},
		{name: "null", value: nil, want: nil},
		{name: "wrong type", value: []any{"1250"}, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := llm.FieldCandidate{"claim_amount": tt.value}
			got := amount(c, "claim_amount")
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}

	t.Run("absent field", func(t *testing.T) {
		assert.Nil(t, amount(llm.FieldCandidate{}, "claim_amount"))
	})
}

func TestStringList(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  []string
	}{
		{name: "list", value: []any{"E11.9", "I10"}, want: []string{"E11.9", "I10"}},
		{name: "scalar wraps into single-element list", value: "E11.9", want: []string{"E11.9"}},
		{name: "null yields empty list", value: nil, want: []string{}},
		{name: "empty string yields empty list", value: "", want: []string{}},
		{name: "mixed list keeps non-string scalars", value: []any{"E11.9", 12.0}, want: []string{"E11.9", "12"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := llm.FieldCandidate{"diagnosis_codes": tt.value}
			got := stringList(c, "diagnosis_codes")
			require.NotNil(t, got, "lists are never nil")
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("absent field yields empty list", func(t *testing.T) {
		got := stringList(llm.FieldCandidate{}, "diagnosis_codes")
		require.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestServiceItems(t *testing.T) {
	c := llm.FieldCandidate{
		"itemized_services": []any{
			map[string]any{"service": "Consultation", "cost": 150.0},
			map[string]any{"service": "X-Ray", "cost": "$300.00"},
			"not an object",
		},
	}
	items := serviceItems(c, "itemized_services")
	require.Len(t, items, 2)
	assert.Equal(t, "Consultation", items[0].Service)
	require.NotNil(t, items[0].Cost)
	assert.Equal(t, 150.0, *items[0].Cost)
	assert.Equal(t, "X-Ray", items[1].Service)
	require.NotNil(t, items[1].Cost)
	assert.Equal(t, 300.0, *items[1].Cost)

	assert.Empty(t, serviceItems(llm.FieldCandidate{"itemized_services": "oops"}, "itemized_services"))
}

func f(v float64) *float64 { return &v }
