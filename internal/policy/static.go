package policy

import (
	"context"

	"github.com/medclaims/claims-pipeline/constants"
	"github.com/medclaims/claims-pipeline/internal/common"
	"github.com/medclaims/claims-pipeline/internal/entity"
)

// StaticStore answers lookups from an in-memory map. Used in tests and demo
// runs where no database is configured.
type StaticStore struct {
	policies map[string]entity.PolicyData
}

func NewStaticStore(policies ...entity.PolicyData) *StaticStore {
	m := make(map[string]entity.PolicyData, len(policies))
	for _, p := range policies {
		m[p.PolicyNumber] = p
	}
	return &StaticStore{policies: m}
}

func (s *StaticStore) GetPolicy(_ context.Context, policyNumber string) (entity.PolicyData, error) {
	p, ok := s.policies[policyNumber]
	if !ok {
		return entity.PolicyData{}, common.NewAppError("POLICY_NOT_FOUND", policyNumber, common.ErrPolicyNotFound)
	}
	return p, nil
}

// DemoStore answers every lookup with the demo fixture for the requested
// policy number. The policy number is only known after extraction, so demo
// runs cannot pre-seed a StaticStore.
type DemoStore struct{}

func (DemoStore) GetPolicy(_ context.Context, policyNumber string) (entity.PolicyData, error) {
	return DemoPolicy(policyNumber), nil
}

// DemoPolicy is the fixture used by local runs when no store is configured.
func DemoPolicy(policyNumber string) entity.PolicyData {
	limit := 5000.0
	return entity.PolicyData{
		PolicyNumber:      policyNumber,
		IsActive:          true,
		CoverageActive:    true,
		ExcludedDiagnoses: []string{"Z00.00", "Z01.818"},
		ClaimLimit:        &limit,
		RequiredDocuments: []constants.DocumentType{constants.ClaimForm, constants.Invoice},
	}
}
