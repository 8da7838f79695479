// Package docproc holds the versioned document processors: per (document type,
// version), the extraction prompt, candidate-shape validation, and the
// type-specific coercion rules that turn a raw LLM candidate into a typed
// record. Versions are isolated implementations, never edited in place, so a
// claim processed under an older configuration stays reproducible.
package docproc

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/medclaims/claims-pipeline/constants"
	"github.com/medclaims/claims-pipeline/internal/common"
	"github.com/medclaims/claims-pipeline/internal/llm"
)

// Processor extracts a typed record from the ordered page texts of one
// document group. The concrete return type depends on the document type the
// processor is registered under (e.g. *entity.ClaimFormRecord for claim_form).
type Processor interface {
	Extract(ctx context.Context, pageTexts []string) (any, error)
}

// Factory builds one processor version.
type Factory func(client llm.Client, logger *slog.Logger) Processor

type key struct {
	docType constants.DocumentType
	version string
}

// Registry maps (document type, version) to a processor factory and fails
// closed on unregistered combinations; no silent fallback to wrong logic.
type Registry struct {
	factories map[key]Factory
	client    llm.Client
	logger    *slog.Logger
}

// NewRegistry builds a registry with every built-in processor registered.
func NewRegistry(client llm.Client, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Registry{
		factories: map[key]Factory{},
		client:    client,
		logger:    logger,
	}

	r.Register(constants.ClaimForm, "v1", func(c llm.Client, l *slog.Logger) Processor { return &ClaimFormV1{client: c, logger: l} })
	r.Register(constants.ClaimForm, "v2", func(c llm.Client, l *slog.Logger) Processor { return &ClaimFormV2{client: c, logger: l} })
	r.Register(constants.Discharge, "v1", func(c llm.Client, l *slog.Logger) Processor { return &DischargeV1{client: c, logger: l} })
	r.Register(constants.Invoice, "v1", func(c llm.Client, l *slog.Logger) Processor { return &InvoiceV1{client: c, logger: l} })
	r.Register(constants.Receipt, "v1", func(c llm.Client, l *slog.Logger) Processor { return &ReceiptV1{client: c, logger: l} })
	r.Register(constants.PaymentProof, "v1", func(c llm.Client, l *slog.Logger) Processor { return &PaymentProofV1{client: c, logger: l} })
	r.Register(constants.IDCard, "v1", func(c llm.Client, l *slog.Logger) Processor { return &IDCardV1{client: c, logger: l} })

	return r
}

// Register adds or replaces a processor factory for (docType, version).
func (r *Registry) Register(docType constants.DocumentType, version string, f Factory) {
	r.factories[key{docType, version}] = f
}

// Load returns the processor for (docType, version).
func (r *Registry) Load(docType constants.DocumentType, version string) (Processor, error) {
	f, ok := r.factories[key{docType, version}]
	if !ok {
		return nil, common.NewAppError("UNSUPPORTED_VERSION",
			fmt.Sprintf("no processor for document type %q version %q", docType, version),
			common.ErrUnsupportedVersion)
	}
	return f(r.client, r.logger), nil
}
