package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rotisserie/eris"

	"valuator/internal/domain"
	"valuator/internal/ports"
)

func (db *DB) Enqueue(ctx context.Context, reportID string, force bool) (string, error) {
	var id string
	err := db.Pool.QueryRow(ctx, `
		INSERT INTO workflow_jobs (id, report_id, force)
		VALUES ($1, $2, $3)
		RETURNING id::text
	`, uuid.NewString(), reportID, force).Scan(&id)
	if err != nil {
		return "", eris.Wrapf(err, "postgres: enqueue workflow for %s", reportID)
	}
	return id, nil
}

func (db *DB) StartInline(ctx context.Context, reportID string, force bool) (string, error) {
	var id string
	err := db.Pool.QueryRow(ctx, `
		INSERT INTO workflow_jobs (id, report_id, force, status, attempts, started_at)
		VALUES ($1, $2, $3, 'running', 1, now())
		RETURNING id::text
	`, uuid.NewString(), reportID, force).Scan(&id)
	if err != nil {
		return "", eris.Wrapf(err, "postgres: start inline workflow for %s", reportID)
	}
	return id, nil
}

// ClaimNext selects the next queued job using SKIP LOCKED and marks it running.
func (db *DB) ClaimNext(ctx context.Context) (job ports.WorkflowJob, found bool, err error) {
	err = db.inTx(ctx, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			SELECT id::text, report_id::text, force FROM workflow_jobs
			WHERE status = 'queued'
			ORDER BY queued_at
			FOR UPDATE SKIP LOCKED
			LIMIT 1
		`).Scan(&job.ID, &job.ReportID, &job.Force)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		if err != nil {
			return eris.Wrap(err, "postgres: select queued job")
		}
		if _, err := tx.Exec(ctx, `
			UPDATE workflow_jobs SET status = 'running', started_at = now(), attempts = attempts + 1 WHERE id = $1
		`, job.ID); err != nil {
			return eris.Wrap(err, "postgres: mark job running")
		}
		found = true
		return nil
	})
	if err != nil {
		return ports.WorkflowJob{}, false, err
	}
	return job, found, nil
}

func (db *DB) MarkCompleted(ctx context.Context, jobID string) error {
	return db.finishJob(ctx, jobID, "completed", "")
}

func (db *DB) MarkFailed(ctx context.Context, jobID string, reason string) error {
	return db.finishJob(ctx, jobID, "failed", reason)
}

func (db *DB) finishJob(ctx context.Context, jobID, status, reason string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	tag, err := db.Pool.Exec(ctx, `
		UPDATE workflow_jobs SET status = $2, reason = $3, finished_at = now() WHERE id = $1
	`, jobID, status, reason)
	if err != nil {
		return eris.Wrapf(err, "postgres: mark job %s %s", jobID, status)
	}
	if tag.RowsAffected() == 0 {
		return eris.Wrapf(domain.ErrNotFound, "job %s", jobID)
	}
	return nil
}
