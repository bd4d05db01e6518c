package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"valuator/internal/adapters/memory"
	"valuator/internal/domain"
	"valuator/internal/ports"
	"valuator/internal/quality"
	"valuator/internal/services/passes"
	reportsvc "valuator/internal/services/reports"
	"valuator/internal/services/review"
	"valuator/internal/validation"
	"valuator/internal/workers/passrunner"
)

type generatorFunc func(ctx context.Context, req ports.GenerationRequest) (domain.PassResult, error)

func (f generatorFunc) Generate(ctx context.Context, req ports.GenerationRequest) (domain.PassResult, error) {
	return f(ctx, req)
}

type harness struct {
	srv  *httptest.Server
	fail atomic.Bool
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{}
	repo := memory.NewReportRepository()
	jobs := memory.NewJobRepository()
	gen := generatorFunc(func(_ context.Context, req ports.GenerationRequest) (domain.PassResult, error) {
		if h.fail.Load() {
			return domain.PassResult{}, errors.New("generator unavailable")
		}
		return domain.OkResult(json.RawMessage(`{"content":"Generated text."}`)), nil
	})
	gate, err := quality.New(validation.DefaultRules(), nil)
	require.NoError(t, err)

	orch := passes.New(repo, passes.NewExecutor(gen, time.Second, nil), nil, nil)
	server := New(
		reportsvc.New(repo, jobs),
		orch,
		review.New(repo, gate, nil),
		passrunner.Inline{Jobs: jobs, Processor: passrunner.WorkflowProcessor{Reports: repo, Passes: orch}},
		nil,
	)
	h.srv = httptest.NewServer(server.Routes())
	t.Cleanup(h.srv.Close)
	return h
}

func (h *harness) do(t *testing.T, method, path, body string) (*http.Response, map[string]any) {
	t.Helper()
	req, err := http.NewRequest(method, h.srv.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	var out map[string]any
	if resp.StatusCode != http.StatusNoContent {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	}
	return resp, out
}

func (h *harness) createReport(t *testing.T) string {
	t.Helper()
	resp, body := h.do(t, http.MethodPost, "/reports", `{
		"company": {"name": "Summit HVAC Services", "naics": "238220"},
		"calculationResults": {"final_value": 5250000, "multiples": {"sde": 2.8}}
	}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return body["id"].(string)
}

func TestHealthz(t *testing.T) {
	h := newHarness(t)
	resp, body := h.do(t, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
}

func TestCreateAndGetReport(t *testing.T) {
	h := newHarness(t)
	id := h.createReport(t)

	resp, body := h.do(t, http.MethodGet, "/reports/"+id, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "pending", body["status"])
	assert.Equal(t, []any{}, body["completedPasses"])
	assert.NotNil(t, body["calculationResults"])
}

func TestCreateReport_Validation(t *testing.T) {
	h := newHarness(t)
	resp, body := h.do(t, http.MethodPost, "/reports", `{"company": {"name": ""}}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, false, body["success"])

	resp, body = h.do(t, http.MethodPost, "/reports", `{"company": `)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body["error"], "can't decode JSON body")

	resp, _ = h.do(t, http.MethodPost, "/reports", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = h.do(t, http.MethodPost, "/reports", `{"company": {"name": "Acme", "naics": "23x"}}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetReport_IDSpellings(t *testing.T) {
	h := newHarness(t)
	id := h.createReport(t)

	resp, body := h.do(t, http.MethodGet, "/reports/"+strings.ToUpper(id), "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, id, body["id"])

	resp, body = h.do(t, http.MethodGet, "/reports/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body["error"], "Invalid format for parameter id")
}

func TestPostPass(t *testing.T) {
	h := newHarness(t)
	id := h.createReport(t)

	resp, body := h.do(t, http.MethodPost, "/reports/"+id+"/passes", `{"passNumber": 1}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, false, body["hasParseError"])
	assert.Equal(t, "Pass 1: Document Intake and Company Profile", body["passLabel"])

	_, body = h.do(t, http.MethodGet, "/reports/"+id, "")
	assert.Equal(t, []any{"1"}, body["completedPasses"])
}

func TestPostPass_ErrorStatuses(t *testing.T) {
	h := newHarness(t)
	id := h.createReport(t)

	tests := []struct {
		name   string
		path   string
		body   string
		fail   bool
		status int
	}{
		{"both selectors", "/reports/" + id + "/passes", `{"passNumber": 1, "narrativePassId": "executive_summary"}`, false, http.StatusBadRequest},
		{"no selector", "/reports/" + id + "/passes", `{}`, false, http.StatusBadRequest},
		{"bad report id", "/reports/nope/passes", `{"passNumber": 1}`, false, http.StatusBadRequest},
		{"unknown report", "/reports/6f1c2b8e-3a55-4d0e-9f1a-2d7c5e8b9a10/passes", `{"passNumber": 1}`, false, http.StatusNotFound},
		{"missing dependency", "/reports/" + id + "/passes", `{"passNumber": 5}`, false, http.StatusConflict},
		{"generator failure", "/reports/" + id + "/passes", `{"passNumber": 1}`, true, http.StatusBadGateway},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h.fail.Store(tt.fail)
			resp, body := h.do(t, http.MethodPost, tt.path, tt.body)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Equal(t, false, body["success"])
			assert.NotEmpty(t, body["error"])
		})
	}
	h.fail.Store(false)
}

func TestPutCalculations(t *testing.T) {
	h := newHarness(t)
	id := h.createReport(t)

	resp, _ := h.do(t, http.MethodPut, "/reports/"+id+"/calculations", `{"final_value": 6100000}`)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	_, body := h.do(t, http.MethodGet, "/reports/"+id, "")
	calc := body["calculationResults"].(map[string]any)
	assert.Equal(t, 6100000.0, calc["final_value"])
}

func TestPostWorkflow(t *testing.T) {
	h := newHarness(t)
	id := h.createReport(t)

	resp, body := h.do(t, http.MethodPost, "/reports/"+id+"/workflow", "")
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)
	assert.NotEmpty(t, body["jobId"])
}

func TestPostWorkflow_Wait(t *testing.T) {
	h := newHarness(t)
	id := h.createReport(t)

	resp, body := h.do(t, http.MethodPost, "/reports/"+id+"/workflow?wait=true&timeout=30", `{"force": false}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "passes_complete", body["status"])

	_, body = h.do(t, http.MethodGet, "/reports/"+id, "")
	assert.Len(t, body["completedPasses"], 24)

	resp, _ = h.do(t, http.MethodPost, "/reports/"+id+"/workflow?wait=true&timeout=-1", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestQualityGate(t *testing.T) {
	h := newHarness(t)
	id := h.createReport(t)

	resp, body := h.do(t, http.MethodPost, "/reports/"+id+"/quality-gate", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, false, body["can_proceed"])

	resp, body = h.do(t, http.MethodPost, "/reports/"+id+"/quality-gate?strict=true", "")
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["error"], "missing required section")

	resp, _ = h.do(t, http.MethodPost, "/reports/"+id+"/quality-gate?strict=maybe", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body = h.do(t, http.MethodPost, "/reports/not-a-uuid/quality-gate", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, false, body["success"])

	_, body = h.do(t, http.MethodGet, "/reports/"+id, "")
	assert.Equal(t, "blocked", body["status"])
}
