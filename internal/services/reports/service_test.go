package reports

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"valuator/internal/adapters/memory"
	"valuator/internal/domain"
)

func newService() (*Service, *memory.JobRepository) {
	jobs := memory.NewJobRepository()
	return New(memory.NewReportRepository(), jobs), jobs
}

func TestOpen(t *testing.T) {
	svc, _ := newService()
	report, err := svc.Open(context.Background(), domain.Company{Name: "  Summit HVAC Services ", NAICS: "238220"})
	require.NoError(t, err)
	assert.Equal(t, "Summit HVAC Services", report.Company.Name)
	assert.Equal(t, domain.StatusPending, report.Status)
	assert.NotEmpty(t, report.ID)

	_, err = svc.Open(context.Background(), domain.Company{})
	assert.True(t, errors.Is(err, domain.ErrInput))

	_, err = svc.Open(context.Background(), domain.Company{Name: "Acme", NAICS: "23-82"})
	assert.True(t, errors.Is(err, domain.ErrInput))
}

func TestSetCalculations(t *testing.T) {
	svc, _ := newService()
	report, err := svc.Open(context.Background(), domain.Company{Name: "Acme"})
	require.NoError(t, err)

	err = svc.SetCalculations(context.Background(), report.ID, nil)
	assert.True(t, errors.Is(err, domain.ErrInput))

	err = svc.SetCalculations(context.Background(), report.ID, &domain.ValuationData{FinalValue: math.NaN()})
	assert.True(t, errors.Is(err, domain.ErrInput))

	require.NoError(t, svc.SetCalculations(context.Background(), report.ID, &domain.ValuationData{FinalValue: 1_000_000}))
	got, err := svc.Get(context.Background(), report.ID)
	require.NoError(t, err)
	require.NotNil(t, got.CalculationResults)
	assert.Equal(t, 1_000_000.0, got.CalculationResults.FinalValue)
}

func TestGet_BadID(t *testing.T) {
	svc, _ := newService()
	_, err := svc.Get(context.Background(), "not-a-uuid")
	assert.True(t, errors.Is(err, domain.ErrInput))

	_, err = svc.Get(context.Background(), "6f1c2b8e-3a55-4d0e-9f1a-2d7c5e8b9a10")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestGet_CanonicalizesID(t *testing.T) {
	svc, _ := newService()
	report, err := svc.Open(context.Background(), domain.Company{Name: "Acme"})
	require.NoError(t, err)

	for _, spelling := range []string{strings.ToUpper(report.ID), "urn:uuid:" + report.ID} {
		got, err := svc.Get(context.Background(), spelling)
		require.NoError(t, err, spelling)
		assert.Equal(t, report.ID, got.ID)
	}
}

func TestStartWorkflow(t *testing.T) {
	svc, jobs := newService()
	report, err := svc.Open(context.Background(), domain.Company{Name: "Acme"})
	require.NoError(t, err)

	jobID, err := svc.StartWorkflow(context.Background(), report.ID, true)
	require.NoError(t, err)
	state, _, ok := jobs.State(jobID)
	require.True(t, ok)
	assert.Equal(t, "queued", state)

	_, err = svc.StartWorkflow(context.Background(), "6f1c2b8e-3a55-4d0e-9f1a-2d7c5e8b9a10", false)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
