package reports

import (
	"context"
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"

	"valuator/internal/domain"
	"valuator/internal/ports"
)

// Service opens reports, records calculation results and queues workflows.
type Service struct {
	reports ports.ReportRepository
	jobs    ports.JobRepository
}

func New(reports ports.ReportRepository, jobs ports.JobRepository) *Service {
	return &Service{reports: reports, jobs: jobs}
}

// Open creates a pending report for company.
func (s *Service) Open(ctx context.Context, company domain.Company) (domain.Report, error) {
	company.Name = strings.TrimSpace(company.Name)
	company.NAICS = strings.TrimSpace(company.NAICS)
	company.Website = strings.TrimSpace(company.Website)
	if company.Name == "" {
		return domain.Report{}, eris.Wrap(domain.ErrInput, "company name is required")
	}
	for _, r := range company.NAICS {
		if r < '0' || r > '9' {
			return domain.Report{}, eris.Wrapf(domain.ErrInput, "naics %q must be numeric", company.NAICS)
		}
	}
	id, err := s.reports.Create(ctx, domain.Report{
		Company:     company,
		Status:      domain.StatusPending,
		PassOutputs: domain.NewPassOutputs(),
		ReportData:  domain.ReportData{Sections: map[string]string{}},
	})
	if err != nil {
		return domain.Report{}, eris.Wrap(err, "create report")
	}
	return s.reports.Get(ctx, id)
}

func (s *Service) Get(ctx context.Context, reportID string) (domain.Report, error) {
	id, err := checkID(reportID)
	if err != nil {
		return domain.Report{}, err
	}
	return s.reports.Get(ctx, id)
}

// SetCalculations replaces the report's valuation snapshot.
func (s *Service) SetCalculations(ctx context.Context, reportID string, data *domain.ValuationData) error {
	id, err := checkID(reportID)
	if err != nil {
		return err
	}
	if data == nil {
		return eris.Wrap(domain.ErrInput, "calculation results are required")
	}
	for name, v := range map[string]float64{
		"final_value":         data.FinalValue,
		"capitalization_rate": data.CapitalizationRate,
		"sde_multiple":        data.Multiples.SDE,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return eris.Wrapf(domain.ErrInput, "%s is not a finite number", name)
		}
	}
	return s.reports.UpdateCalculations(ctx, id, data)
}

// StartWorkflow queues a job that runs every outstanding pass of the report.
func (s *Service) StartWorkflow(ctx context.Context, reportID string, force bool) (string, error) {
	report, err := s.Get(ctx, reportID)
	if err != nil {
		return "", err
	}
	jobID, err := s.jobs.Enqueue(ctx, report.ID, force)
	if err != nil {
		return "", eris.Wrapf(err, "enqueue workflow for %s", reportID)
	}
	return jobID, nil
}

// checkID returns the canonical spelling of a report id.
func checkID(reportID string) (string, error) {
	id, err := uuid.Parse(reportID)
	if err != nil {
		return "", eris.Wrapf(domain.ErrInput, "report id %q is not a uuid", reportID)
	}
	return id.String(), nil
}
