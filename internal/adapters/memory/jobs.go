package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"

	"valuator/internal/domain"
	"valuator/internal/ports"
)

type jobState string

const (
	jobQueued    jobState = "queued"
	jobRunning   jobState = "running"
	jobCompleted jobState = "completed"
	jobFailed    jobState = "failed"
)

type job struct {
	ports.WorkflowJob
	state  jobState
	reason string
}

// JobRepository is a FIFO workflow queue.
type JobRepository struct {
	mu    sync.Mutex
	order []string
	jobs  map[string]*job
}

func NewJobRepository() *JobRepository {
	return &JobRepository{jobs: make(map[string]*job)}
}

func (r *JobRepository) Enqueue(_ context.Context, reportID string, force bool) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := uuid.NewString()
	r.jobs[id] = &job{WorkflowJob: ports.WorkflowJob{ID: id, ReportID: reportID, Force: force}, state: jobQueued}
	r.order = append(r.order, id)
	return id, nil
}

func (r *JobRepository) StartInline(_ context.Context, reportID string, force bool) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := uuid.NewString()
	r.jobs[id] = &job{WorkflowJob: ports.WorkflowJob{ID: id, ReportID: reportID, Force: force}, state: jobRunning}
	return id, nil
}

func (r *JobRepository) ClaimNext(_ context.Context) (ports.WorkflowJob, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, id := range r.order {
		j := r.jobs[id]
		if j.state != jobQueued {
			continue
		}
		j.state = jobRunning
		r.order = append(r.order[:i:i], r.order[i+1:]...)
		return j.WorkflowJob, true, nil
	}
	return ports.WorkflowJob{}, false, nil
}

func (r *JobRepository) MarkCompleted(_ context.Context, jobID string) error {
	return r.finish(jobID, jobCompleted, "")
}

func (r *JobRepository) MarkFailed(_ context.Context, jobID string, reason string) error {
	return r.finish(jobID, jobFailed, reason)
}

func (r *JobRepository) finish(jobID string, state jobState, reason string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[jobID]
	if !ok {
		return eris.Wrapf(domain.ErrNotFound, "job %s", jobID)
	}
	j.state = state
	j.reason = reason
	return nil
}

// State returns a job's state and failure reason, for tests and diagnostics.
func (r *JobRepository) State(jobID string) (state string, reason string, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, found := r.jobs[jobID]
	if !found {
		return "", "", false
	}
	return string(j.state), j.reason, true
}
