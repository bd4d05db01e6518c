// Package generation calls the external text-generation service that runs
// individual report passes.
package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rotisserie/eris"

	"valuator/internal/domain"
	"valuator/internal/ports"
	"valuator/internal/valuation"
)

const maxResponseBytes = 8 << 20

// Client implements ports.Generator over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type generateRequest struct {
	ReportID        string                                   `json:"report_id"`
	PassKey         string                                   `json:"pass_key"`
	PassNumber      int                                      `json:"pass_number,omitempty"`
	NarrativePassID string                                   `json:"narrative_pass_id,omitempty"`
	PassLabel       string                                   `json:"pass_label"`
	Company         domain.Company                           `json:"company"`
	PriorOutputs    map[string]domain.PassResult             `json:"prior_outputs,omitempty"`
	Narratives      map[domain.NarrativeID]domain.PassResult `json:"narratives,omitempty"`
	Grounding       *valuation.AuthoritativeValues           `json:"authoritative_values,omitempty"`
	UseWebSearch    bool                                     `json:"use_web_search"`
	ForceRegenerate bool                                     `json:"force_regenerate"`
}

// Generate posts the pass context to /generate. Transport failures and non-2xx
// statuses are errors; a 2xx body that is not JSON becomes a parse-failure
// result carrying the raw text.
func (c *Client) Generate(ctx context.Context, req ports.GenerationRequest) (domain.PassResult, error) {
	body := generateRequest{
		ReportID:        req.ReportID,
		PassKey:         req.Selector.Key(),
		PassNumber:      req.Selector.Number(),
		NarrativePassID: string(req.Selector.Narrative()),
		PassLabel:       req.PassLabel,
		Company:         req.Company,
		PriorOutputs:    req.PriorOutputs,
		Narratives:      req.Narratives,
		Grounding:       req.Grounding,
		UseWebSearch:    req.UseWebSearch,
		ForceRegenerate: req.ForceRegenerate,
	}
	buf, err := json.Marshal(body)
	if err != nil {
		return domain.PassResult{}, eris.Wrap(err, "generation: encode request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/generate", bytes.NewReader(buf))
	if err != nil {
		return domain.PassResult{}, eris.Wrap(err, "generation: build request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return domain.PassResult{}, eris.Wrapf(err, "generation: %s", req.Selector.Key())
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return domain.PassResult{}, eris.Wrap(err, "generation: read response")
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return domain.PassResult{}, eris.Errorf("generation: %s returned %d: %s", req.Selector.Key(), resp.StatusCode, snippet(raw))
	}
	return decodeOutput(raw), nil
}

// decodeOutput accepts a JSON document, optionally wrapped in a markdown code
// fence.
func decodeOutput(raw []byte) domain.PassResult {
	text := strings.TrimSpace(string(raw))
	text = stripFence(text)
	if text == "" {
		return domain.ParseFailureResult(string(raw), "empty response")
	}
	var decoded any
	if err := json.Unmarshal([]byte(text), &decoded); err != nil {
		return domain.ParseFailureResult(string(raw), err.Error())
	}
	if _, ok := decoded.(map[string]any); !ok {
		return domain.ParseFailureResult(string(raw), fmt.Sprintf("expected a JSON object, got %T", decoded))
	}
	return domain.OkResult(json.RawMessage(text))
}

func stripFence(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	if nl := strings.IndexByte(text, '\n'); nl >= 0 {
		text = text[nl+1:]
	} else {
		return ""
	}
	text = strings.TrimSpace(text)
	return strings.TrimSpace(strings.TrimSuffix(text, "```"))
}

func snippet(b []byte) string {
	s := strings.TrimSpace(string(b))
	if len(s) > 200 {
		return s[:200] + "..."
	}
	return s
}
