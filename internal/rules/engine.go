// Package rules holds the versioned decision engines. Engines are cumulative
// by policy quarter: a newer engine wraps its predecessor, runs its full
// evaluation, and appends further checks. It never reimplements them.
package rules

import (
	"fmt"

	"github.com/medclaims/claims-pipeline/constants"
	"github.com/medclaims/claims-pipeline/internal/common"
	"github.com/medclaims/claims-pipeline/internal/entity"
)

// Engine evaluates one claim in a single pass.
type Engine interface {
	CheckClaim(ner *entity.NerOutput, policy entity.PolicyData, ocr *entity.OcrOutput) *entity.RuleCheckOutput
	Version() string
}

// RequiredChecker answers which document types configuration marks required.
// Satisfied by *version.Registry.
type RequiredChecker interface {
	IsRequired(dt constants.DocumentType) bool
}

// Load returns the engine for a configured rule-set tag, failing closed on
// unregistered tags.
func Load(tag string, required RequiredChecker) (Engine, error) {
	switch tag {
	case VersionQ3:
		return NewQ3(required), nil
	case VersionQ4:
		return NewQ4(NewQ3(required)), nil
	default:
		return nil, common.NewAppError("UNSUPPORTED_VERSION",
			fmt.Sprintf("rule engine %q", tag), common.ErrUnsupportedVersion)
	}
}
