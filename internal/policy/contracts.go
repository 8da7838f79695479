// Package policy provides the policy lookup capability consulted during rule
// evaluation. The pipeline treats it as synchronous and always available; an
// unknown policy number is a hard failure for the claim.
package policy

import (
	"context"

	"github.com/medclaims/claims-pipeline/internal/entity"
)

// Repository is the lookup contract the pipeline depends on.
type Repository interface {
	GetPolicy(ctx context.Context, policyNumber string) (entity.PolicyData, error)
}
