// Package passes runs individual generation passes against a report: it checks
// dependencies, builds the pass context, invokes the generator and commits the
// merged outputs.
package passes

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"valuator/internal/domain"
	"valuator/internal/lock"
	"valuator/internal/ports"
	"valuator/internal/validation"
	"valuator/internal/valuation"
)

// Request selects one pass to run. Exactly one of PassNumber and
// NarrativePassID must be set.
type Request struct {
	ReportID        string
	PassNumber      *int
	NarrativePassID *string
	UseWebSearch    bool
	ForceRegenerate bool
}

// Response is the outcome of one pass. Failures that were recorded on the
// report still produce a Response with Success=false.
type Response struct {
	Success        bool               `json:"success"`
	PassKey        string             `json:"passKey,omitempty"`
	PassLabel      string             `json:"passLabel,omitempty"`
	DurationMs     int64              `json:"durationMs"`
	HasParseError  bool               `json:"hasParseError"`
	Result         *domain.PassResult `json:"result,omitempty"`
	NarrativeCheck *validation.Result `json:"narrativeCheck,omitempty"`
	Status         string             `json:"status,omitempty"`
	Error          string             `json:"error,omitempty"`
}

// Orchestrator runs passes for reports.
type Orchestrator struct {
	reports  ports.ReportRepository
	executor *Executor
	rules    *validation.Rules
	locks    *lock.MutexMap
	logger   *zap.Logger
}

func New(reports ports.ReportRepository, executor *Executor, rules *validation.Rules, logger *zap.Logger) *Orchestrator {
	if rules == nil {
		rules = validation.DefaultRules()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		reports:  reports,
		executor: executor,
		rules:    rules,
		locks:    lock.NewMutexMap(),
		logger:   logger,
	}
}

// Run executes one pass and persists its result. Passes against the same
// report are serialized; the commit fails with domain.ErrConcurrency if the
// report changed underneath.
func (o *Orchestrator) Run(ctx context.Context, req Request) (Response, error) {
	sel, err := domain.ParseSelector(req.PassNumber, req.NarrativePassID)
	if err != nil {
		return Response{Error: err.Error()}, err
	}
	id, err := uuid.Parse(req.ReportID)
	if err != nil {
		err = eris.Wrapf(domain.ErrInput, "report id %q is not a uuid", req.ReportID)
		return Response{Error: err.Error()}, err
	}
	// Every spelling of the id shares one lock and one stored row.
	req.ReportID = id.String()
	def := Lookup(sel)
	resp := Response{PassKey: sel.Key(), PassLabel: def.Label}

	o.locks.Lock(req.ReportID)
	defer o.locks.Unlock(req.ReportID)

	report, err := o.reports.Get(ctx, req.ReportID)
	if err != nil {
		resp.Error = err.Error()
		return resp, eris.Wrapf(err, "load report %s", req.ReportID)
	}

	if missing := MissingDependencies(def, report); len(missing) > 0 {
		msg := fmt.Sprintf("%s is waiting on %s", def.Label, strings.Join(missing, ", "))
		o.recordStatus(ctx, report.ID, report.Status, msg)
		resp.Error = msg
		resp.Status = string(report.Status)
		return resp, eris.Wrap(domain.ErrMissingDependency, msg)
	}

	acc := valuation.New(report.CalculationResults)
	result, elapsed, err := o.executor.Execute(ctx, def, o.generationRequest(report, sel, acc, req))
	resp.DurationMs = elapsed.Milliseconds()
	if err != nil {
		msg := err.Error()
		o.recordStatus(ctx, report.ID, domain.StatusFailed, msg)
		resp.Error = msg
		resp.Status = string(domain.StatusFailed)
		return resp, err
	}

	outputs := report.PassOutputs.Clone()
	prior, hadPrior := outputs.Get(sel)
	outputs.Set(sel, result)

	commit := domain.PassCommit{
		ReportID:        report.ID,
		ExpectedVersion: report.Version,
		Selector:        sel,
		Result:          result,
		DurationMs:      resp.DurationMs,
	}

	if sel.IsNarrative() && !result.IsParseFailure() {
		content := result.Content()
		check := validation.NewNarrativeValidator(acc, o.rules, o.logger).ValidateSection(sel.Narrative(), content)
		resp.NarrativeCheck = &check
		data := cloneReportData(report.ReportData)
		data.Sections[sel.Narrative().SectionTitle()] = content
		commit.ReportData = &data
	}

	switch {
	case result.IsParseFailure():
		commit.Status = domain.StatusAwaitingRetry
		commit.Message = fmt.Sprintf("%s returned unparseable output: %s", def.Label, result.Reason)
	case AllComplete(outputs):
		commit.Status = domain.StatusPassesComplete
		commit.Message = "all passes complete"
	default:
		commit.Status = domain.StatusProcessing
		commit.Message = fmt.Sprintf("%s complete (%d of %d passes)", def.Label, completedCount(outputs), len(All()))
	}
	if resp.NarrativeCheck != nil && !resp.NarrativeCheck.Passed {
		commit.Message += fmt.Sprintf("; %d value mismatch(es), regenerate recommended", len(resp.NarrativeCheck.Errors))
	}

	if _, err := o.reports.CommitPass(ctx, commit); err != nil {
		resp.Error = err.Error()
		if errors.Is(err, domain.ErrConcurrency) {
			o.logger.Warn("passes: commit conflict",
				zap.String("report_id", report.ID),
				zap.String("pass", sel.Key()),
				zap.Int64("expected_version", report.Version),
			)
			return resp, err
		}
		return resp, eris.Wrapf(err, "commit %s for report %s", sel.Key(), report.ID)
	}

	if hadPrior && !prior.IsParseFailure() {
		o.logStaleDependents(report.ID, sel, outputs)
	}

	resp.Success = !result.IsParseFailure()
	resp.HasParseError = result.IsParseFailure()
	resp.Result = &result
	resp.Status = string(commit.Status)
	if resp.HasParseError {
		resp.Error = commit.Message
	}
	return resp, nil
}

func (o *Orchestrator) generationRequest(report domain.Report, sel domain.PassSelector, acc *valuation.Accessor, req Request) ports.GenerationRequest {
	gen := ports.GenerationRequest{
		ReportID:        report.ID,
		Company:         report.Company,
		UseWebSearch:    req.UseWebSearch,
		ForceRegenerate: req.ForceRegenerate,
	}
	if sel.IsNarrative() {
		narratives := make(map[domain.NarrativeID]domain.PassResult)
		for id, r := range report.PassOutputs.Narratives() {
			if r.IsParseFailure() {
				continue
			}
			if req.ForceRegenerate && id == sel.Narrative() {
				continue
			}
			narratives[id] = r
		}
		grounding := acc.Grounding()
		gen.Narratives = narratives
		gen.Grounding = &grounding
		return gen
	}
	prior := report.PassOutputs.Numeric()
	if req.ForceRegenerate {
		delete(prior, sel.Key())
	}
	gen.PriorOutputs = prior
	return gen
}

// recordStatus writes a status message outside the pass commit. Failures are
// logged; the caller is already returning the original error.
func (o *Orchestrator) recordStatus(ctx context.Context, reportID string, status domain.ProcessingStatus, msg string) {
	err := o.reports.UpdateStatus(ctx, domain.StatusUpdate{ReportID: reportID, Status: status, Message: msg})
	if err != nil {
		o.logger.Error("passes: record status", zap.String("report_id", reportID), zap.Error(err))
	}
}

func (o *Orchestrator) logStaleDependents(reportID string, sel domain.PassSelector, outputs domain.PassOutputs) {
	var stale []string
	for _, dep := range Dependents(sel) {
		if outputs.Completed(dep) {
			stale = append(stale, dep.Key())
		}
	}
	if len(stale) == 0 {
		return
	}
	o.logger.Info("passes: dependents computed from previous output",
		zap.String("report_id", reportID),
		zap.String("pass", sel.Key()),
		zap.Strings("dependents", stale),
	)
}

func completedCount(outputs domain.PassOutputs) int {
	n := 0
	for _, s := range All() {
		if outputs.Completed(s) {
			n++
		}
	}
	return n
}

func cloneReportData(d domain.ReportData) domain.ReportData {
	out := domain.ReportData{Sections: make(map[string]string, len(d.Sections)+1)}
	for k, v := range d.Sections {
		out.Sections[k] = v
	}
	return out
}
