package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"valuator/internal/domain"
	"valuator/internal/ports"
)

// These tests need a disposable database in TEST_DATABASE_URL.
func testDB(t *testing.T) *DB {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	db, err := Connect(ctx, url, 4)
	require.NoError(t, err)
	t.Cleanup(db.Close)
	require.NoError(t, db.Migrate(ctx))
	return db
}

var (
	_ ports.ReportRepository = (*DB)(nil)
	_ ports.JobRepository    = (*DB)(nil)
)

func TestReports_CommitPassVersioning(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	id, err := db.Create(ctx, domain.Report{Company: domain.Company{Name: "Summit HVAC Services"}})
	require.NoError(t, err)

	report, err := db.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(1), report.Version)
	assert.Equal(t, domain.StatusPending, report.Status)

	commit := domain.PassCommit{
		ReportID:        id,
		ExpectedVersion: 1,
		Selector:        domain.NumericPass(1),
		Result:          domain.OkResult(json.RawMessage(`{"revenue":1}`)),
		Status:          domain.StatusProcessing,
		Message:         "pass 1 complete",
		DurationMs:      1200,
	}
	version, err := db.CommitPass(ctx, commit)
	require.NoError(t, err)
	assert.Equal(t, int64(2), version)

	_, err = db.CommitPass(ctx, commit)
	assert.True(t, errors.Is(err, domain.ErrConcurrency))

	commit.ExpectedVersion = 2
	commit.Selector = domain.NarrativePass(domain.NarrativeMarketApproach)
	commit.ReportData = &domain.ReportData{Sections: map[string]string{"Market Approach": "text"}}
	_, err = db.CommitPass(ctx, commit)
	require.NoError(t, err)

	report, err = db.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "narrative:market_approach"}, report.PassOutputs.Keys())
	assert.Equal(t, "text", report.ReportData.Sections["Market Approach"])
	assert.Equal(t, int64(2400), report.ProcessingTimeMs)
}

func TestReports_NotFound(t *testing.T) {
	db := testDB(t)
	_, err := db.Get(context.Background(), "6f1c2b8e-3a55-4d0e-9f1a-2d7c5e8b9a10")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestJobs_ClaimOnce(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	reportID, err := db.Create(ctx, domain.Report{Company: domain.Company{Name: "Acme"}})
	require.NoError(t, err)
	jobID, err := db.Enqueue(ctx, reportID, false)
	require.NoError(t, err)

	var claimed []ports.WorkflowJob
	for {
		job, found, err := db.ClaimNext(ctx)
		require.NoError(t, err)
		if !found {
			break
		}
		claimed = append(claimed, job)
		require.NoError(t, db.MarkCompleted(ctx, job.ID))
	}
	ids := make([]string, 0, len(claimed))
	for _, j := range claimed {
		ids = append(ids, j.ID)
	}
	assert.Contains(t, ids, jobID)
}
