package passrunner

import (
	"context"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"valuator/internal/domain"
	"valuator/internal/ports"
	"valuator/internal/services/passes"
)

// maxPassAttempts bounds how often one pass is generated when its output is
// unparseable or a narrative contradicts a critical value.
const maxPassAttempts = 2

// Processor performs the work for one workflow job.
type Processor interface {
	Process(ctx context.Context, job ports.WorkflowJob) error
}

// PassRunner is the orchestrator entry point the processor drives.
type PassRunner interface {
	Run(ctx context.Context, req passes.Request) (passes.Response, error)
}

// WorkflowProcessor runs every pass of a report that has no ok result yet, in
// catalog order. With job.Force set every pass is regenerated.
type WorkflowProcessor struct {
	Reports ports.ReportRepository
	Passes  PassRunner
	Logger  *zap.Logger
}

func (p WorkflowProcessor) Process(ctx context.Context, job ports.WorkflowJob) error {
	logger := p.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	report, err := p.Reports.Get(ctx, job.ReportID)
	if err != nil {
		return eris.Wrapf(err, "workflow: load report %s", job.ReportID)
	}

	ran := 0
	for _, sel := range passes.All() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !job.Force && report.PassOutputs.Completed(sel) {
			continue
		}
		if err := p.runPass(ctx, job, sel); err != nil {
			return err
		}
		ran++
	}
	logger.Info("workflow: report processed",
		zap.String("report_id", job.ReportID),
		zap.String("job_id", job.ID),
		zap.Int("passes_run", ran),
	)
	return nil
}

func (p WorkflowProcessor) runPass(ctx context.Context, job ports.WorkflowJob, sel domain.PassSelector) error {
	req := passes.Request{ReportID: job.ReportID, UseWebSearch: true, ForceRegenerate: job.Force}
	if sel.IsNarrative() {
		id := string(sel.Narrative())
		req.NarrativePassID = &id
	} else {
		n := sel.Number()
		req.PassNumber = &n
	}
	var mismatch []string
	for attempt := 1; attempt <= maxPassAttempts; attempt++ {
		resp, err := p.Passes.Run(ctx, req)
		if err != nil {
			return err
		}
		if resp.HasParseError {
			mismatch = nil
			continue
		}
		if resp.NarrativeCheck == nil || len(resp.NarrativeCheck.Errors) == 0 {
			return nil
		}
		mismatch = resp.NarrativeCheck.Errors
		req.ForceRegenerate = true
	}
	if len(mismatch) > 0 {
		return eris.Wrapf(domain.ErrValidation, "workflow: %s still contradicts the valuation after %d attempts: %s",
			sel.Key(), maxPassAttempts, strings.Join(mismatch, "; "))
	}
	return eris.Errorf("workflow: %s returned unparseable output %d times", sel.Key(), maxPassAttempts)
}

// Run starts worker goroutines that claim jobs and process them. It returns
// immediately; workers stop when ctx is cancelled.
func Run(ctx context.Context, repo ports.JobRepository, processor Processor, concurrency int, pollInterval time.Duration, logger *zap.Logger) {
	if concurrency < 1 {
		return
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	jobsCh := make(chan ports.WorkflowJob, concurrency)

	// dispatcher loop
	go func() {
		ticker := time.NewTicker(pollInterval)
		defer ticker.Stop()
		defer close(jobsCh)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				for {
					job, found, err := repo.ClaimNext(ctx)
					if err != nil {
						logger.Error("workflow: claim job", zap.Error(err))
						break
					}
					if !found {
						break
					}
					select {
					case jobsCh <- job:
					case <-ctx.Done():
						return
					}
				}
			}
		}
	}()

	for i := 0; i < concurrency; i++ {
		go func(idx int) {
			for job := range jobsCh {
				finish(ctx, repo, job, processor.Process(ctx, job), logger.With(zap.Int("worker", idx)))
			}
		}(i)
	}
}

// ProcessInline runs a workflow synchronously with the same processor the
// background workers use. The job is recorded as running from the start so no
// worker claims it.
func ProcessInline(ctx context.Context, repo ports.JobRepository, processor Processor, reportID string, force bool, logger *zap.Logger) (string, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	jobID, err := repo.StartInline(ctx, reportID, force)
	if err != nil {
		return "", err
	}
	job := ports.WorkflowJob{ID: jobID, ReportID: reportID, Force: force}
	err = processor.Process(ctx, job)
	finish(ctx, repo, job, err, logger)
	return jobID, err
}

func finish(ctx context.Context, repo ports.JobRepository, job ports.WorkflowJob, err error, logger *zap.Logger) {
	// The job row must be settled even if the request context expired.
	ctx = context.WithoutCancel(ctx)
	if err != nil {
		logger.Warn("workflow: job failed", zap.String("job_id", job.ID), zap.String("report_id", job.ReportID), zap.Error(err))
		if merr := repo.MarkFailed(ctx, job.ID, err.Error()); merr != nil {
			logger.Error("workflow: mark failed", zap.String("job_id", job.ID), zap.Error(merr))
		}
		return
	}
	if merr := repo.MarkCompleted(ctx, job.ID); merr != nil {
		logger.Error("workflow: mark completed", zap.String("job_id", job.ID), zap.Error(merr))
	}
}

// Inline runs workflows synchronously for request handlers.
type Inline struct {
	Jobs      ports.JobRepository
	Processor Processor
	Logger    *zap.Logger
}

func (i Inline) RunInline(ctx context.Context, reportID string, force bool) (string, error) {
	return ProcessInline(ctx, i.Jobs, i.Processor, reportID, force, i.Logger)
}
