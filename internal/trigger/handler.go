// Package trigger connects the pipeline to its external trigger: a storage
// upload event referencing the folder holding one claim's source files. PDF
// decoding and OCR text extraction happen upstream; the PageSource capability
// hands the pipeline the already-extracted page texts.
package trigger

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	cloudevents "github.com/cloudevents/sdk-go/v2"

	"github.com/medclaims/claims-pipeline/internal/entity"
	"github.com/medclaims/claims-pipeline/internal/pipeline"
)

// StorageEvent is the payload of an upload event.
type StorageEvent struct {
	Bucket string `json:"bucket"`
	Name   string `json:"name"`
}

// PageSource fetches the ordered page texts for a claim folder.
type PageSource interface {
	PageTexts(ctx context.Context, bucket, folder string) ([]string, error)
}

// Sink receives finished claim results. Persistence is out of scope for the
// core; daemons plug in whatever downstream they need.
type Sink func(ctx context.Context, result *entity.ClaimResult) error

// Handler adapts CloudEvents to pipeline runs.
type Handler struct {
	logger *slog.Logger
	pages  PageSource
	pipe   *pipeline.Pipeline
	sink   Sink
}

func NewHandler(logger *slog.Logger, pages PageSource, pipe *pipeline.Pipeline, sink Sink) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, pages: pages, pipe: pipe, sink: sink}
}

// Receive handles one upload event end to end. Per-claim failures are
// returned to the event transport for its retry policy; they never affect
// other claims.
func (h *Handler) Receive(ctx context.Context, e cloudevents.Event) error {
	var ev StorageEvent
	if err := json.Unmarshal(e.Data(), &ev); err != nil {
		h.logger.Error("trigger.decode_failed", "event_id", e.ID(), "error", err)
		return fmt.Errorf("decode storage event: %w", err)
	}
	h.logger.Info("trigger.received",
		"event_id", e.ID(), "bucket", ev.Bucket, "name", ev.Name)

	pageTexts, err := h.pages.PageTexts(ctx, ev.Bucket, ev.Name)
	if err != nil {
		h.logger.Error("trigger.page_source_failed", "event_id", e.ID(), "error", err)
		return fmt.Errorf("fetch page texts: %w", err)
	}

	result, err := h.pipe.Process(ctx, pageTexts)
	if err != nil {
		h.logger.Error("trigger.pipeline_failed", "event_id", e.ID(), "error", err)
		return err
	}

	if h.sink != nil {
		if err := h.sink(ctx, result); err != nil {
			h.logger.Error("trigger.sink_failed",
				"event_id", e.ID(), "claim_id", result.ClaimID, "error", err)
			return err
		}
	}
	return nil
}
