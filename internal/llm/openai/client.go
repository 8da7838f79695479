package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/medclaims/claims-pipeline/internal/common"
	"github.com/medclaims/claims-pipeline/internal/llm"
)

// ExtractFields implements llm.Client using chat/completions with JSON output.
// Attempts are bounded by cfg.MaxAttempts with linear backoff; after the last
// attempt the error wraps common.ErrExtraction so callers can treat the group
// as failed without inspecting provider details.
func (c *Client) ExtractFields(ctx context.Context, promptTemplate, text string) (llm.FieldCandidate, []byte, error) {
	rid := uuid.New().String()
	start := time.Now()

	c.logger.Info("llm.extract.start",
		"req_id", rid,
		"model", c.cfg.Model,
		"temp", c.cfg.Temperature,
		"text_len", len(text),
	)

	body := map[string]any{
		"model":           c.cfg.Model,
		"temperature":     c.cfg.Temperature,
		"response_format": map[string]any{"type": "json_object"},
		"messages": []map[string]any{
			{"role": "user", "content": llm.FillPrompt(promptTemplate, text)},
		},
	}

	content, err := c.complete(ctx, rid, body)
	if err != nil {
		c.logger.Error("llm.extract.failed",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, nil, common.NewAppError("EXTRACTION_FAILED", "structured extraction", common.ErrExtraction)
	}

	raw := []byte(strings.TrimSpace(content))
	var candidate llm.FieldCandidate
	if err := json.Unmarshal(raw, &candidate); err != nil {
		c.logger.Error("llm.extract.decode_error",
			"req_id", rid, "error", err, "content", content,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, raw, common.NewAppError("EXTRACTION_FAILED", "malformed model response", common.ErrExtraction)
	}

	c.logger.Info("llm.extract.ok",
		"req_id", rid,
		"fields", len(candidate),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return candidate, raw, nil
}

// ClassifyText implements llm.Client. The label is lowercased and trimmed;
// validating it against the closed type set is the classifier's job.
func (c *Client) ClassifyText(ctx context.Context, promptTemplate, text string) (string, error) {
	rid := uuid.New().String()
	start := time.Now()

	c.logger.Info("llm.classify.start", "req_id", rid, "model", c.cfg.Model, "text_len", len(text))

	body := map[string]any{
		"model":       c.cfg.Model,
		"temperature": c.cfg.Temperature,
		"messages": []map[string]any{
			{"role": "user", "content": llm.FillPrompt(promptTemplate, text)},
		},
	}

	content, err := c.complete(ctx, rid, body)
	if err != nil {
		c.logger.Error("llm.classify.failed",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return "", common.NewAppError("EXTRACTION_FAILED", "classification", common.ErrExtraction)
	}

	label := strings.ToLower(strings.TrimSpace(content))
	c.logger.Info("llm.classify.ok", "req_id", rid, "label", label,
		"elapsed_ms", time.Since(start).Milliseconds())
	return label, nil
}

// complete posts one chat/completions request, retrying transient failures.
func (c *Client) complete(ctx context.Context, rid string, body map[string]any) (string, error) {
	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	headers := map[string]string{"Authorization": "Bearer " + c.cfg.APIKey}

	var lastErr error
	for attempt := 1; attempt <= c.cfg.MaxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(time.Duration(attempt-1) * c.cfg.RetryDelay):
			}
			c.logger.Warn("llm.retry", "req_id", rid, "attempt", attempt, "last_error", lastErr)
		}

		raw, _, err := llm.SendJSON(ctx, c.http, endpoint, body, headers, c.logger)
		if err != nil {
			lastErr = err
			continue
		}

		var cc struct {
			Choices []struct {
				Message struct {
					Content string `json:"content"`
				} `json:"message"`
			} `json:"choices"`
		}
		if err := json.Unmarshal(raw, &cc); err != nil {
			lastErr = fmt.Errorf("decode openai response: %w", err)
			continue
		}
		if len(cc.Choices) == 0 {
			lastErr = fmt.Errorf("no choices in openai response")
			continue
		}
		return cc.Choices[0].Message.Content, nil
	}
	return "", fmt.Errorf("after %d attempts: %w", c.cfg.MaxAttempts, lastErr)
}
