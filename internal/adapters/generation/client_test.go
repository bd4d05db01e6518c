package generation

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"valuator/internal/domain"
	"valuator/internal/ports"
	"valuator/internal/valuation"
)

var _ ports.Generator = (*Client)(nil)

func serve(t *testing.T, status int, body string, inspect func(r *http.Request)) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if inspect != nil {
			inspect(r)
		}
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return New(srv.URL+"/", 2*time.Second)
}

func TestGenerate_SendsPassContext(t *testing.T) {
	var got map[string]any
	c := serve(t, http.StatusOK, `{"content":"ok"}`, func(r *http.Request) {
		assert.Equal(t, "/generate", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
	})

	grounding := valuation.New(&domain.ValuationData{FinalValue: 5_250_000}).Grounding()
	res, err := c.Generate(context.Background(), ports.GenerationRequest{
		ReportID:     "r1",
		Selector:     domain.NarrativePass(domain.NarrativeExecutiveSummary),
		PassLabel:    "Narrative: Executive Summary",
		Company:      domain.Company{Name: "Acme"},
		Grounding:    &grounding,
		UseWebSearch: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", res.Content())

	assert.Equal(t, "narrative:executive_summary", got["pass_key"])
	assert.Equal(t, "executive_summary", got["narrative_pass_id"])
	assert.Equal(t, true, got["use_web_search"])
	require.Contains(t, got, "authoritative_values")
	assert.Equal(t, 5_250_000.0, got["authoritative_values"].(map[string]any)["final_value"])
}

func TestGenerate_Non2xxIsError(t *testing.T) {
	c := serve(t, http.StatusServiceUnavailable, "overloaded", nil)
	_, err := c.Generate(context.Background(), ports.GenerationRequest{Selector: domain.NumericPass(3)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
	assert.Contains(t, err.Error(), "overloaded")
}

func TestGenerate_UndecodableBodyIsParseFailure(t *testing.T) {
	c := serve(t, http.StatusOK, "Here is the analysis you asked for: {", nil)
	res, err := c.Generate(context.Background(), ports.GenerationRequest{Selector: domain.NumericPass(3)})
	require.NoError(t, err)
	assert.True(t, res.IsParseFailure())
	assert.Equal(t, "Here is the analysis you asked for: {", res.Raw)
	assert.NotEmpty(t, res.Reason)
}

func TestDecodeOutput(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		ok   bool
	}{
		{"object", `{"revenue": 1}`, true},
		{"fenced", "```json\n{\"revenue\": 1}\n```", true},
		{"array", `[1, 2]`, false},
		{"empty", "  ", false},
		{"truncated", `{"revenue": `, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := decodeOutput([]byte(tt.raw))
			assert.Equal(t, tt.ok, !res.IsParseFailure())
		})
	}
}
