// Package export renders adjudicated claim results as XLSX workbooks.
package export

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/medclaims/claims-pipeline/internal/entity"
)

type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// ClaimsXLSX returns an XLSX workbook (as bytes) with one row per claim
// result: identity, merged entities, and the rule-check verdict.
func (s *Service) ClaimsXLSX(results []*entity.ClaimResult) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	const sheet = "Claims"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)
	// Drop the default sheet excelize creates.
	if index, _ := f.GetSheetIndex("Sheet1"); index != -1 {
		_ = f.DeleteSheet("Sheet1")
	}

	headers := []string{
		"Claim ID", "Policy Number", "Patient Name", "Claimed Amount",
		"Diagnosis Codes", "Decision", "Rejection Reasons",
		"Missing Documents", "Rule Engine", "Processed At",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	for row, r := range results {
		claimed := ""
		if r.NER != nil && r.NER.TotalClaimedAmount != nil {
			claimed = fmt.Sprintf("%.2f", *r.NER.TotalClaimedAmount)
		}
		missing := make([]string, 0, len(r.RuleCheck.MissingDocuments))
		for _, dt := range r.RuleCheck.MissingDocuments {
			missing = append(missing, string(dt))
		}
		values := []any{
			r.ClaimID,
			r.PolicyNumber,
			r.NER.PatientName,
			claimed,
			strings.Join(r.NER.DiagnosisCodes, ", "),
			string(r.OverallStatus),
			strings.Join(r.RuleCheck.RejectionReasons, "; "),
			strings.Join(missing, ", "),
			r.RuleCheck.RuleEngineVersion,
			r.ProcessingTimestamp.UTC().Format(time.RFC3339),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}

	s.logger.Info("export.claims_xlsx.ok",
		"rows", len(results),
		"bytes", buf.Len(),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}
