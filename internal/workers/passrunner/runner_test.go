package passrunner

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"valuator/internal/adapters/memory"
	"valuator/internal/domain"
	"valuator/internal/ports"
	"valuator/internal/services/passes"
)

type countingGenerator struct {
	mu sync.Mutex
	// failures is how many parse failures to return per pass key.
	failures map[string]int
	// contradict is how many narratives per pass key misstate SDE.
	contradict map[string]int
	calls      map[string]int
	forced     map[string]int
}

func (g *countingGenerator) Generate(_ context.Context, req ports.GenerationRequest) (domain.PassResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.calls == nil {
		g.calls = map[string]int{}
		g.forced = map[string]int{}
	}
	key := req.Selector.Key()
	g.calls[key]++
	if req.ForceRegenerate {
		g.forced[key]++
	}
	if g.calls[key] <= g.failures[key] {
		return domain.ParseFailureResult("not json", "invalid character"), nil
	}
	if g.calls[key] <= g.contradict[key] {
		return domain.OkResult(json.RawMessage(`{"content":"Seller's discretionary earnings reached $2.1 million."}`)), nil
	}
	return domain.OkResult(json.RawMessage(`{"content":"Section text."}`)), nil
}

func (g *countingGenerator) forcedCount(key string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.forced[key]
}

func (g *countingGenerator) count(key string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls[key]
}

func setup(t *testing.T, gen *countingGenerator, seeded ...int) (*memory.ReportRepository, WorkflowProcessor, string) {
	t.Helper()
	repo := memory.NewReportRepository()
	outputs := domain.NewPassOutputs()
	for _, n := range seeded {
		outputs.Set(domain.NumericPass(n), domain.OkResult(json.RawMessage(`{"seeded":true}`)))
	}
	id, err := repo.Create(context.Background(), domain.Report{
		Company:            domain.Company{Name: "Summit HVAC Services"},
		PassOutputs:        outputs,
		CalculationResults: &domain.ValuationData{
			FinalValue:       5_250_000,
			FinancialMetrics: domain.FinancialMetrics{SDE: 1_250_000},
		},
	})
	require.NoError(t, err)
	orch := passes.New(repo, passes.NewExecutor(gen, time.Second, nil), nil, nil)
	return repo, WorkflowProcessor{Reports: repo, Passes: orch}, id
}

func TestWorkflowProcessor_RunsOutstandingPasses(t *testing.T) {
	gen := &countingGenerator{}
	repo, proc, id := setup(t, gen, 1, 2)

	require.NoError(t, proc.Process(context.Background(), ports.WorkflowJob{ID: "job-1", ReportID: id}))

	report, err := repo.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPassesComplete, report.Status)
	assert.Equal(t, 0, gen.count("1"))
	assert.Equal(t, 1, gen.count("3"))
	assert.Equal(t, 1, gen.count("narrative:executive_summary"))
}

func TestWorkflowProcessor_ForceRegeneratesEverything(t *testing.T) {
	gen := &countingGenerator{}
	_, proc, id := setup(t, gen, 1, 2)

	require.NoError(t, proc.Process(context.Background(), ports.WorkflowJob{ID: "job-1", ReportID: id, Force: true}))
	assert.Equal(t, 1, gen.count("1"))
	assert.Equal(t, 1, gen.count("2"))
}

func TestWorkflowProcessor_RetriesParseFailure(t *testing.T) {
	gen := &countingGenerator{failures: map[string]int{"3": 1}}
	repo, proc, id := setup(t, gen)

	require.NoError(t, proc.Process(context.Background(), ports.WorkflowJob{ID: "job-1", ReportID: id}))
	assert.Equal(t, 2, gen.count("3"))

	report, err := repo.Get(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, report.PassOutputs.Completed(domain.NumericPass(3)))
}

func TestWorkflowProcessor_StopsAfterRepeatedParseFailure(t *testing.T) {
	gen := &countingGenerator{failures: map[string]int{"3": maxPassAttempts}}
	repo, proc, id := setup(t, gen)

	err := proc.Process(context.Background(), ports.WorkflowJob{ID: "job-1", ReportID: id})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unparseable")
	assert.Equal(t, 0, gen.count("4"))

	report, err := repo.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAwaitingRetry, report.Status)
}

func TestWorkflowProcessor_RegeneratesContradictingNarrative(t *testing.T) {
	key := "narrative:financial_analysis"
	gen := &countingGenerator{contradict: map[string]int{key: 1}}
	repo, proc, id := setup(t, gen, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13)

	require.NoError(t, proc.Process(context.Background(), ports.WorkflowJob{ID: "job-1", ReportID: id}))
	assert.Equal(t, 2, gen.count(key))
	assert.Equal(t, 1, gen.forcedCount(key))

	report, err := repo.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Section text.", report.ReportData.Sections["Financial Analysis"])
	assert.Equal(t, domain.StatusPassesComplete, report.Status)
}

func TestWorkflowProcessor_FailsOnPersistentContradiction(t *testing.T) {
	key := "narrative:financial_analysis"
	gen := &countingGenerator{contradict: map[string]int{key: maxPassAttempts}}
	_, proc, id := setup(t, gen, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13)

	err := proc.Process(context.Background(), ports.WorkflowJob{ID: "job-1", ReportID: id})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrValidation))
	assert.Contains(t, err.Error(), "SDE mismatch")
	assert.Equal(t, maxPassAttempts, gen.count(key))
	assert.Equal(t, 0, gen.count("narrative:industry_analysis"))
}

func TestRun_ProcessesQueuedJobs(t *testing.T) {
	gen := &countingGenerator{}
	_, proc, id := setup(t, gen)
	jobs := memory.NewJobRepository()
	jobID, err := jobs.Enqueue(context.Background(), id, false)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	Run(ctx, jobs, proc, 2, 10*time.Millisecond, nil)

	require.Eventually(t, func() bool {
		state, _, _ := jobs.State(jobID)
		return state == "completed"
	}, 5*time.Second, 10*time.Millisecond)
}

func TestProcessInline_RecordsFailure(t *testing.T) {
	gen := &countingGenerator{}
	_, proc, _ := setup(t, gen)
	jobs := memory.NewJobRepository()

	jobID, err := ProcessInline(context.Background(), jobs, proc, "6f1c2b8e-3a55-4d0e-9f1a-2d7c5e8b9a10", false, nil)
	require.Error(t, err)
	state, reason, ok := jobs.State(jobID)
	require.True(t, ok)
	assert.Equal(t, "failed", state)
	assert.Contains(t, reason, "not found")
}
