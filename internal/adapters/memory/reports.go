// Package memory holds in-process implementations of the repository ports.
// Used by tests and when no database is configured.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"

	"valuator/internal/domain"
)

type ReportRepository struct {
	mu      sync.Mutex
	reports map[string]domain.Report
	now     func() time.Time
}

func NewReportRepository() *ReportRepository {
	return &ReportRepository{
		reports: make(map[string]domain.Report),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (r *ReportRepository) Create(_ context.Context, report domain.Report) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if report.ID == "" {
		report.ID = uuid.NewString()
	}
	if _, exists := r.reports[report.ID]; exists {
		return "", eris.Wrapf(domain.ErrConcurrency, "report %s already exists", report.ID)
	}
	if report.Status == "" {
		report.Status = domain.StatusPending
	}
	if report.ReportData.Sections == nil {
		report.ReportData.Sections = map[string]string{}
	}
	if report.PassOutputs.Len() == 0 {
		report.PassOutputs = domain.NewPassOutputs()
	}
	report.Version = 1
	report.CreatedAt = r.now()
	report.UpdatedAt = report.CreatedAt
	r.reports[report.ID] = copyReport(report)
	return report.ID, nil
}

func (r *ReportRepository) Get(_ context.Context, reportID string) (domain.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	report, ok := r.reports[reportID]
	if !ok {
		return domain.Report{}, eris.Wrapf(domain.ErrNotFound, "report %s", reportID)
	}
	return copyReport(report), nil
}

func (r *ReportRepository) CommitPass(_ context.Context, c domain.PassCommit) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	report, ok := r.reports[c.ReportID]
	if !ok {
		return 0, eris.Wrapf(domain.ErrNotFound, "report %s", c.ReportID)
	}
	if report.Version != c.ExpectedVersion {
		return 0, eris.Wrapf(domain.ErrConcurrency, "report %s is at version %d, expected %d", c.ReportID, report.Version, c.ExpectedVersion)
	}
	outputs := report.PassOutputs.Clone()
	outputs.Set(c.Selector, c.Result)
	report.PassOutputs = outputs
	if c.ReportData != nil {
		report.ReportData = copyReportData(*c.ReportData)
	}
	report.Status = c.Status
	report.Message = c.Message
	report.LastPassDurationMs = c.DurationMs
	report.ProcessingTimeMs += c.DurationMs
	report.Version++
	report.UpdatedAt = r.now()
	r.reports[c.ReportID] = report
	return report.Version, nil
}

func (r *ReportRepository) UpdateStatus(_ context.Context, u domain.StatusUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	report, ok := r.reports[u.ReportID]
	if !ok {
		return eris.Wrapf(domain.ErrNotFound, "report %s", u.ReportID)
	}
	report.Status = u.Status
	report.Message = u.Message
	report.UpdatedAt = r.now()
	r.reports[u.ReportID] = report
	return nil
}

func (r *ReportRepository) UpdateCalculations(_ context.Context, reportID string, data *domain.ValuationData) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	report, ok := r.reports[reportID]
	if !ok {
		return eris.Wrapf(domain.ErrNotFound, "report %s", reportID)
	}
	if data != nil {
		cp := *data
		report.CalculationResults = &cp
	} else {
		report.CalculationResults = nil
	}
	report.Version++
	report.UpdatedAt = r.now()
	r.reports[reportID] = report
	return nil
}

func copyReport(r domain.Report) domain.Report {
	r.PassOutputs = r.PassOutputs.Clone()
	r.ReportData = copyReportData(r.ReportData)
	if r.CalculationResults != nil {
		cp := *r.CalculationResults
		r.CalculationResults = &cp
	}
	return r
}

func copyReportData(d domain.ReportData) domain.ReportData {
	out := domain.ReportData{Sections: make(map[string]string, len(d.Sections))}
	for k, v := range d.Sections {
		out.Sections[k] = v
	}
	return out
}
