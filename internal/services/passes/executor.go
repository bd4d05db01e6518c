package passes

import (
	"context"
	"time"

	"go.uber.org/zap"

	"valuator/internal/domain"
	"valuator/internal/ports"
)

// Executor invokes the generation capability for a single pass.
type Executor struct {
	gen     ports.Generator
	timeout time.Duration
	logger  *zap.Logger
}

// NewExecutor returns an Executor. A zero timeout leaves the caller's deadline
// in charge.
func NewExecutor(gen ports.Generator, timeout time.Duration, logger *zap.Logger) *Executor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Executor{gen: gen, timeout: timeout, logger: logger}
}

// Execute runs one pass. The web-search flag is cleared for passes outside the
// research allow-list. A capability failure is returned as a
// *domain.PassExecutionError; an unparseable response is a successful call
// returning a parse-failure result.
func (e *Executor) Execute(ctx context.Context, def Definition, req ports.GenerationRequest) (domain.PassResult, time.Duration, error) {
	if !def.WebSearch {
		req.UseWebSearch = false
	}
	req.Selector = def.Selector
	req.PassLabel = def.Label

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	start := time.Now()
	res, err := e.gen.Generate(ctx, req)
	elapsed := time.Since(start)
	if err != nil {
		e.logger.Warn("passes: generation failed",
			zap.String("report_id", req.ReportID),
			zap.String("pass", def.Selector.Key()),
			zap.Duration("elapsed", elapsed),
			zap.Error(err),
		)
		return domain.PassResult{}, elapsed, &domain.PassExecutionError{Pass: def.Label, Err: err}
	}
	if res.Kind == "" {
		res.Kind = domain.ResultOK
	}
	if res.GeneratedAt.IsZero() {
		res.GeneratedAt = time.Now().UTC()
	}
	res.DurationMs = elapsed.Milliseconds()

	fields := []zap.Field{
		zap.String("report_id", req.ReportID),
		zap.String("pass", def.Selector.Key()),
		zap.Duration("elapsed", elapsed),
		zap.Bool("web_search", req.UseWebSearch),
	}
	if res.IsParseFailure() {
		e.logger.Warn("passes: unparseable generation output", append(fields, zap.String("reason", res.Reason))...)
	} else {
		e.logger.Info("passes: pass generated", fields...)
	}
	return res, elapsed, nil
}
