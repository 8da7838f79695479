// Package ocr orchestrates the versioned processors over grouped pages and
// assembles the per-claim structured output.
package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/medclaims/claims-pipeline/constants"
	"github.com/medclaims/claims-pipeline/internal/classifier"
	"github.com/medclaims/claims-pipeline/internal/common"
	"github.com/medclaims/claims-pipeline/internal/docproc"
	"github.com/medclaims/claims-pipeline/internal/entity"
	"github.com/medclaims/claims-pipeline/internal/version"
)

// Service runs per-group extraction and aggregates results.
type Service struct {
	logger     *slog.Logger
	versions   *version.Registry
	processors *docproc.Registry
	workers    int
	strict     bool
}

// NewService builds the aggregator. workers bounds concurrent extraction
// calls; strict fails the whole claim on any group's extraction failure
// instead of deferring the absence to the rule engine.
func NewService(logger *slog.Logger, versions *version.Registry, processors *docproc.Registry, workers int, strict bool) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if workers < 1 {
		workers = 4
	}
	return &Service{
		logger:     logger,
		versions:   versions,
		processors: processors,
		workers:    workers,
		strict:     strict,
	}
}

// task is one document group with its resolved processor, index-addressed so
// completion order cannot reorder results.
type task struct {
	group     entity.DocumentGroup
	version   string
	processor docproc.Processor
}

// Process extracts one record per document group and assembles the OcrOutput.
// A claim without a claim_form group fails with MissingRequiredDocumentError;
// every other absent-but-required type is only warned about here, the rule
// engine being the authority on missing documents.
func (s *Service) Process(ctx context.Context, pages []entity.Page) (*entity.OcrOutput, error) {
	groups := classifier.BuildGroups(pages)

	hasClaimForm := false
	seen := map[constants.DocumentType]bool{}
	for _, g := range groups {
		seen[g.DocumentType] = true
		if g.DocumentType == constants.ClaimForm {
			hasClaimForm = true
		}
	}
	if !hasClaimForm {
		return nil, common.NewAppError("MISSING_REQUIRED_DOCUMENT",
			"no claim_form document found", common.ErrMissingRequiredDocument)
	}
	for _, dt := range constants.DocumentTypes {
		if s.versions.IsRequired(dt) && !seen[dt] {
			s.logger.Warn("ocr.required_document_absent", "document_type", dt)
		}
	}

	// Resolve versions and load processors up front; these failures are
	// configuration problems and fatal for the claim regardless of mode.
	tasks := make([]task, len(groups))
	for i, g := range groups {
		ver, err := s.versions.ResolveVersion(g.DocumentType)
		if err != nil {
			return nil, err
		}
		proc, err := s.processors.Load(g.DocumentType, ver)
		if err != nil {
			return nil, err
		}
		tasks[i] = task{group: g, version: ver, processor: proc}
	}

	// Extraction is independent per group; fan out on a bounded pool and
	// reassemble by index so group-discovery order survives any completion
	// order.
	records := make([]any, len(tasks))
	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(s.workers)

	for i, t := range tasks {
		i, t := i, t
		eg.Go(func() error {
			start := time.Now()
			s.logger.Info("ocr.extract.start",
				"document_type", t.group.DocumentType,
				"document_id", t.group.DocumentID,
				"version", t.version,
				"pages", len(t.group.Pages),
			)
			rec, err := t.processor.Extract(gctx, t.group.PageTexts())
			if err != nil {
				if s.strict || t.group.DocumentType == constants.ClaimForm {
					return fmt.Errorf("extract %s/%s: %w", t.group.DocumentType, t.group.DocumentID, err)
				}
				s.logger.Warn("ocr.extract.dropped_group",
					"document_type", t.group.DocumentType,
					"document_id", t.group.DocumentID,
					"error", err,
				)
				return nil
			}
			records[i] = rec
			s.logger.Info("ocr.extract.ok",
				"document_type", t.group.DocumentType,
				"document_id", t.group.DocumentID,
				"elapsed_ms", time.Since(start).Milliseconds(),
			)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return s.assemble(tasks, records)
}

// assemble folds extracted records into the output in discovery order and
// builds metadata recording the version actually used per processed type.
func (s *Service) assemble(tasks []task, records []any) (*entity.OcrOutput, error) {
	out := &entity.OcrOutput{
		Discharges:    []entity.DischargeRecord{},
		Invoices:      []entity.InvoiceRecord{},
		Receipts:      []entity.ReceiptRecord{},
		PaymentProofs: []entity.PaymentProofRecord{},
		IDCards:       []entity.IDCardRecord{},
	}
	versionsUsed := map[constants.DocumentType]string{}

	for i, t := range tasks {
		rec := records[i]
		if rec == nil {
			continue
		}
		versionsUsed[t.group.DocumentType] = t.version

		switch r := rec.(type) {
		case *entity.ClaimFormRecord:
			out.ClaimForm = r
		case entity.DischargeRecord:
			out.Discharges = append(out.Discharges, r)
		case entity.InvoiceRecord:
			out.Invoices = append(out.Invoices, r)
		case entity.ReceiptRecord:
			out.Receipts = append(out.Receipts, r)
		case entity.PaymentProofRecord:
			out.PaymentProofs = append(out.PaymentProofs, r)
		case entity.IDCardRecord:
			out.IDCards = append(out.IDCards, r)
		default:
			return nil, fmt.Errorf("processor for %s returned unexpected type %T", t.group.DocumentType, rec)
		}
	}

	if out.ClaimForm == nil {
		return nil, common.NewAppError("MISSING_REQUIRED_DOCUMENT",
			"claim_form extraction produced no record", common.ErrMissingRequiredDocument)
	}

	out.Metadata = entity.OcrMetadata{
		PolicyNumber:        out.ClaimForm.PolicyNumber,
		OCRVersion:          constants.OCRVersion,
		DocumentVersions:    versionsUsed,
		ProcessingTimestamp: time.Now().UTC(),
	}
	return out, nil
}
