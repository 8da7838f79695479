// Package pipeline chains the adjudication stages for one claim: classify →
// group → extract → aggregate entities → evaluate rules.
package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/medclaims/claims-pipeline/constants"
	"github.com/medclaims/claims-pipeline/internal/classifier"
	"github.com/medclaims/claims-pipeline/internal/common"
	"github.com/medclaims/claims-pipeline/internal/docproc"
	"github.com/medclaims/claims-pipeline/internal/entity"
	"github.com/medclaims/claims-pipeline/internal/llm"
	"github.com/medclaims/claims-pipeline/internal/ner"
	"github.com/medclaims/claims-pipeline/internal/ocr"
	"github.com/medclaims/claims-pipeline/internal/policy"
	"github.com/medclaims/claims-pipeline/internal/rules"
	"github.com/medclaims/claims-pipeline/internal/version"
)

// Pipeline holds the resolved stage implementations for the configured
// versions. Build once per process; Process runs are independent and safe to
// run concurrently; no state is shared across claims.
type Pipeline struct {
	logger     *slog.Logger
	classifier classifier.Classifier
	ocr        *ocr.Service
	ner        ner.Aggregator
	rules      rules.Engine
	policies   policy.Repository
}

// New resolves every stage from the version registry; an unresolvable stage
// version aborts startup.
func New(
	logger *slog.Logger,
	versions *version.Registry,
	client llm.Client,
	policies policy.Repository,
	cfg common.PipelineConfig,
) (*Pipeline, error) {
	if logger == nil {
		logger = slog.Default()
	}

	cls, err := classifier.Load(versions.ClassifierVersion(), client, logger)
	if err != nil {
		return nil, err
	}
	nerAgg, err := ner.Load(versions.NerVersion())
	if err != nil {
		return nil, err
	}
	engine, err := rules.Load(versions.RuleEngine(), versions)
	if err != nil {
		return nil, err
	}

	processors := docproc.NewRegistry(client, logger)
	ocrSvc := ocr.NewService(logger, versions, processors, cfg.ExtractWorkers, cfg.StrictExtraction)

	return &Pipeline{
		logger:     logger,
		classifier: cls,
		ocr:        ocrSvc,
		ner:        nerAgg,
		rules:      engine,
		policies:   policies,
	}, nil
}

// Process adjudicates one claim from its ordered page texts.
func (p *Pipeline) Process(ctx context.Context, pageTexts []string) (*entity.ClaimResult, error) {
	claimID := uuid.New().String()
	start := time.Now()
	p.logger.Info("pipeline.claim.start", "claim_id", claimID, "pages", len(pageTexts))

	pages := classifier.ClassifyPages(ctx, p.classifier, pageTexts)
	grouped := classifier.GroupPages(pages)

	ocrOut, err := p.ocr.Process(ctx, grouped)
	if err != nil {
		p.logger.Error("pipeline.ocr.failed", "claim_id", claimID, "error", err)
		return nil, err
	}
	ocrOut.Metadata.ClaimID = claimID

	nerOut := p.ner.ExtractEntities(ocrOut)

	policyNumber := ocrOut.Metadata.PolicyNumber
	if policyNumber == "" {
		policyNumber = nerOut.PolicyNumber
	}
	policyData, err := p.policies.GetPolicy(ctx, policyNumber)
	if err != nil {
		p.logger.Error("pipeline.policy_lookup.failed",
			"claim_id", claimID, "policy_number", policyNumber, "error", err)
		return nil, common.WrapError(err, "policy lookup")
	}

	ruleOut := p.rules.CheckClaim(nerOut, policyData, ocrOut)

	result := &entity.ClaimResult{
		ClaimID:             claimID,
		PolicyNumber:        policyNumber,
		OCR:                 ocrOut,
		NER:                 nerOut,
		RuleCheck:           ruleOut,
		OverallStatus:       ruleOut.FinalDecision,
		ProcessingTimestamp: time.Now().UTC(),
		PipelineVersion:     constants.PipelineVersion,
	}

	p.logger.Info("pipeline.claim.ok",
		"claim_id", claimID,
		"decision", result.OverallStatus,
		"rejections", len(ruleOut.RejectionReasons),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return result, nil
}
