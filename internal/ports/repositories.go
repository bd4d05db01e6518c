package ports

import (
	"context"

	"valuator/internal/domain"
)

// ReportRepository stores report aggregates. Get and the update methods return
// an error matching domain.ErrNotFound for unknown ids.
type ReportRepository interface {
	Create(ctx context.Context, report domain.Report) (reportID string, err error)
	Get(ctx context.Context, reportID string) (domain.Report, error)
	// CommitPass writes one pass result plus status in a single update. It
	// fails with domain.ErrConcurrency, writing nothing, when the stored
	// version no longer equals commit.ExpectedVersion.
	CommitPass(ctx context.Context, commit domain.PassCommit) (version int64, err error)
	UpdateStatus(ctx context.Context, update domain.StatusUpdate) error
	UpdateCalculations(ctx context.Context, reportID string, data *domain.ValuationData) error
}
