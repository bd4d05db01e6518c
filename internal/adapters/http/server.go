package httpadapter

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	api "valuator/internal/api"
	"valuator/internal/domain"
	"valuator/internal/quality"
	"valuator/internal/services/passes"
)

const (
	maxBodyBytes       = 4 << 20
	defaultWaitTimeout = 300 * time.Second
)

// Reports is the report lifecycle the handlers need.
type Reports interface {
	Open(ctx context.Context, company domain.Company) (domain.Report, error)
	Get(ctx context.Context, reportID string) (domain.Report, error)
	SetCalculations(ctx context.Context, reportID string, data *domain.ValuationData) error
	StartWorkflow(ctx context.Context, reportID string, force bool) (string, error)
}

type Passes interface {
	Run(ctx context.Context, req passes.Request) (passes.Response, error)
}

type Reviews interface {
	Evaluate(ctx context.Context, reportID string, strict bool) (quality.Result, error)
}

// Workflows runs a whole workflow inside the request.
type Workflows interface {
	RunInline(ctx context.Context, reportID string, force bool) (jobID string, err error)
}

// Server implements the generated StrictServerInterface.
type Server struct {
	reports   Reports
	passes    Passes
	reviews   Reviews
	workflows Workflows
	logger    *zap.Logger
}

var _ api.StrictServerInterface = (*Server)(nil)

func New(reports Reports, passes Passes, reviews Reviews, workflows Workflows, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{reports: reports, passes: passes, reviews: reviews, workflows: workflows, logger: logger}
}

// Routes returns a chi.Router mounting the generated handlers.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestSize(maxBodyBytes))
	r.Use(s.accessLog)

	handler := api.NewStrictHandlerWithOptions(s, nil, api.StrictHTTPServerOptions{
		RequestErrorHandlerFunc:  s.requestError,
		ResponseErrorHandlerFunc: s.writeError,
	})
	api.HandlerWithOptions(handler, api.ChiServerOptions{
		BaseRouter:       r,
		ErrorHandlerFunc: s.requestError,
	})
	return r
}

func (s *Server) GetHealthz(_ context.Context, _ api.GetHealthzRequestObject) (api.GetHealthzResponseObject, error) {
	ok := "ok"
	return api.GetHealthz200JSONResponse{Status: &ok}, nil
}

func (s *Server) CreateReport(ctx context.Context, req api.CreateReportRequestObject) (api.CreateReportResponseObject, error) {
	if req.Body == nil {
		return nil, inputError("request body is required")
	}
	report, err := s.reports.Open(ctx, companyFromAPI(req.Body.Company))
	if err != nil {
		return nil, err
	}
	if req.Body.CalculationResults != nil {
		if err := s.reports.SetCalculations(ctx, report.ID, req.Body.CalculationResults); err != nil {
			return nil, err
		}
	}
	return api.CreateReport201JSONResponse{Id: report.ID, Status: string(report.Status)}, nil
}

func (s *Server) GetReport(ctx context.Context, req api.GetReportRequestObject) (api.GetReportResponseObject, error) {
	report, err := s.reports.Get(ctx, req.Id.String())
	if err != nil {
		return nil, err
	}
	completed := []string{}
	for _, key := range report.PassOutputs.Keys() {
		sel, err := domain.ParseSelectorKey(key)
		if err == nil && report.PassOutputs.Completed(sel) {
			completed = append(completed, key)
		}
	}
	return api.GetReport200JSONResponse{
		Id:                 report.ID,
		Company:            companyToAPI(report.Company),
		Status:             string(report.Status),
		Message:            report.Message,
		CompletedPasses:    completed,
		PassOutputs:        report.PassOutputs,
		ReportData:         report.ReportData,
		CalculationResults: report.CalculationResults,
		LastPassDurationMs: report.LastPassDurationMs,
		ProcessingTimeMs:   report.ProcessingTimeMs,
		Version:            report.Version,
		CreatedAt:          report.CreatedAt,
		UpdatedAt:          report.UpdatedAt,
	}, nil
}

func (s *Server) PutCalculations(ctx context.Context, req api.PutCalculationsRequestObject) (api.PutCalculationsResponseObject, error) {
	if err := s.reports.SetCalculations(ctx, req.Id.String(), req.Body); err != nil {
		return nil, err
	}
	return api.PutCalculations204Response{}, nil
}

func (s *Server) RunPass(ctx context.Context, req api.RunPassRequestObject) (api.RunPassResponseObject, error) {
	if req.Body == nil {
		return nil, inputError("request body is required")
	}
	resp, err := s.passes.Run(ctx, passes.Request{
		ReportID:        req.Id.String(),
		PassNumber:      req.Body.PassNumber,
		NarrativePassID: req.Body.NarrativePassId,
		UseWebSearch:    flag(req.Body.UseWebSearch),
		ForceRegenerate: flag(req.Body.ForceRegenerate),
	})
	if err != nil {
		s.logFailure(ctx, "RunPass", err)
		resp.Success = false
		resp.Error = err.Error()
		return api.RunPassdefaultJSONResponse{Body: passToAPI(resp), StatusCode: statusFor(err)}, nil
	}
	return api.RunPass200JSONResponse(passToAPI(resp)), nil
}

func (s *Server) StartWorkflow(ctx context.Context, req api.StartWorkflowRequestObject) (api.StartWorkflowResponseObject, error) {
	id := req.Id.String()
	force := req.Body != nil && flag(req.Body.Force)
	timeout := defaultWaitTimeout
	if t := req.Params.Timeout; t != nil {
		if *t <= 0 {
			return nil, inputError("timeout must be a positive number of seconds")
		}
		timeout = time.Duration(*t) * time.Second
	}
	if !flag(req.Params.Wait) {
		jobID, err := s.reports.StartWorkflow(ctx, id, force)
		if err != nil {
			return nil, err
		}
		return api.StartWorkflow202JSONResponse{JobId: jobID}, nil
	}

	// Blocking path: run every outstanding pass before responding.
	if _, err := s.reports.Get(ctx, id); err != nil {
		return nil, err
	}
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	jobID, err := s.workflows.RunInline(runCtx, id, force)
	if err != nil {
		s.logFailure(ctx, "StartWorkflow", err)
		msg := err.Error()
		return api.StartWorkflowdefaultJSONResponse{
			Body:       api.WorkflowResult{Success: false, JobId: jobID, Error: &msg},
			StatusCode: statusFor(err),
		}, nil
	}
	report, err := s.reports.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	status := string(report.Status)
	return api.StartWorkflow200JSONResponse{
		Success: true,
		JobId:   jobID,
		Status:  &status,
		Message: &report.Message,
	}, nil
}

func (s *Server) EvaluateQualityGate(ctx context.Context, req api.EvaluateQualityGateRequestObject) (api.EvaluateQualityGateResponseObject, error) {
	res, err := s.reviews.Evaluate(ctx, req.Id.String(), flag(req.Params.Strict))
	var gateErr *quality.GateError
	if errors.As(err, &gateErr) {
		return api.EvaluateQualityGate422JSONResponse{Success: false, Error: gateErr.Error(), Result: res}, nil
	}
	if err != nil {
		return nil, err
	}
	return api.EvaluateQualityGate200JSONResponse(res), nil
}

func flag(b *bool) bool { return b != nil && *b }

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func value(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func companyFromAPI(c api.Company) domain.Company {
	return domain.Company{
		Name:     c.Name,
		Industry: value(c.Industry),
		NAICS:    value(c.Naics),
		State:    value(c.State),
		Website:  value(c.Website),
	}
}

func companyToAPI(c domain.Company) api.Company {
	return api.Company{
		Name:     c.Name,
		Industry: optional(c.Industry),
		Naics:    optional(c.NAICS),
		State:    optional(c.State),
		Website:  optional(c.Website),
	}
}

func passToAPI(r passes.Response) api.PassResponse {
	return api.PassResponse{
		Success:        r.Success,
		PassKey:        optional(r.PassKey),
		PassLabel:      optional(r.PassLabel),
		DurationMs:     r.DurationMs,
		HasParseError:  r.HasParseError,
		Result:         r.Result,
		NarrativeCheck: r.NarrativeCheck,
		Status:         optional(r.Status),
		Error:          optional(r.Error),
	}
}

func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("http: request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}
