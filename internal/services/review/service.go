// Package review runs the quality gate over an assembled report and records
// the publish decision.
package review

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"valuator/internal/domain"
	"valuator/internal/ports"
	"valuator/internal/quality"
	"valuator/internal/valuation"
)

type Service struct {
	reports ports.ReportRepository
	gate    *quality.Gate
	logger  *zap.Logger
}

func New(reports ports.ReportRepository, gate *quality.Gate, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{reports: reports, gate: gate, logger: logger}
}

// Evaluate scores the report and sets its status to ready or blocked. With
// strict set, a blocked report also returns a *quality.GateError.
func (s *Service) Evaluate(ctx context.Context, reportID string, strict bool) (quality.Result, error) {
	id, err := uuid.Parse(reportID)
	if err != nil {
		return quality.Result{}, eris.Wrapf(domain.ErrInput, "report id %q is not a uuid", reportID)
	}
	report, err := s.reports.Get(ctx, id.String())
	if err != nil {
		return quality.Result{}, eris.Wrapf(err, "load report %s", reportID)
	}

	sections := Sections(report)
	data := valuation.New(report.CalculationResults)

	var res quality.Result
	if strict {
		res, err = s.gate.EvaluateStrict(ctx, sections, data)
	} else {
		res, err = s.gate.Evaluate(ctx, sections, data)
	}
	var gateErr *quality.GateError
	if err != nil && !errors.As(err, &gateErr) {
		return res, err
	}

	update := domain.StatusUpdate{ReportID: report.ID, Status: domain.StatusReady}
	if res.CanProceed {
		update.Message = fmt.Sprintf("quality gate passed with score %.1f", res.Score)
	} else {
		update.Status = domain.StatusBlocked
		update.Message = fmt.Sprintf("quality gate blocked: score %.1f, %d blocking error(s)", res.Score, len(res.BlockingErrors))
	}
	if uerr := s.reports.UpdateStatus(ctx, update); uerr != nil {
		return res, eris.Wrapf(uerr, "record gate status for %s", report.ID)
	}
	s.logger.Info("review: gate decision recorded",
		zap.String("report_id", report.ID),
		zap.String("status", string(update.Status)),
		zap.Float64("score", res.Score),
	)
	return res, err
}

// Sections assembles the section text the gate evaluates: stored report data,
// with each completed narrative filling its titled section.
func Sections(report domain.Report) map[string]string {
	out := make(map[string]string, len(report.ReportData.Sections)+len(domain.NarrativeIDs))
	for title, text := range report.ReportData.Sections {
		out[title] = text
	}
	for id, r := range report.PassOutputs.Narratives() {
		if content := r.Content(); content != "" {
			out[id.SectionTitle()] = content
		}
	}
	return out
}
