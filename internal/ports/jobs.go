package ports

import "context"

// WorkflowJob asks a worker to drive every outstanding pass of one report.
type WorkflowJob struct {
	ID       string
	ReportID string
	Force    bool
}

// JobRepository supports enqueuing, claiming and finishing workflow jobs.
type JobRepository interface {
	Enqueue(ctx context.Context, reportID string, force bool) (jobID string, err error)
	// StartInline records a job that is already running in the caller.
	StartInline(ctx context.Context, reportID string, force bool) (jobID string, err error)
	ClaimNext(ctx context.Context) (job WorkflowJob, found bool, err error)
	MarkCompleted(ctx context.Context, jobID string) error
	MarkFailed(ctx context.Context, jobID string, reason string) error
}
