package domain

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"
)

// Numeric passes are numbered 1..NumericPassCount.
const NumericPassCount = 13

// NarrativeID names one of the fixed narrative passes.
type NarrativeID string

const (
	NarrativeExecutiveSummary   NarrativeID = "executive_summary"
	NarrativeCompanyOverview    NarrativeID = "company_overview"
	NarrativeFinancialAnalysis  NarrativeID = "financial_analysis"
	NarrativeIndustryAnalysis   NarrativeID = "industry_analysis"
	NarrativeRiskAssessment     NarrativeID = "risk_assessment"
	NarrativeAssetApproach      NarrativeID = "asset_approach"
	NarrativeIncomeApproach     NarrativeID = "income_approach"
	NarrativeMarketApproach     NarrativeID = "market_approach"
	NarrativeValuationSynthesis NarrativeID = "valuation_synthesis"
	NarrativeAssumptions        NarrativeID = "assumptions_limiting_conditions"
	NarrativeValueEnhancement   NarrativeID = "value_enhancement"
)

// NarrativeIDs lists every narrative pass in generation order.
var NarrativeIDs = []NarrativeID{
	NarrativeCompanyOverview,
	NarrativeFinancialAnalysis,
	NarrativeIndustryAnalysis,
	NarrativeRiskAssessment,
	NarrativeAssetApproach,
	NarrativeIncomeApproach,
	NarrativeMarketApproach,
	NarrativeValuationSynthesis,
	NarrativeAssumptions,
	NarrativeValueEnhancement,
	NarrativeExecutiveSummary,
}

var narrativeSectionTitles = map[NarrativeID]string{
	NarrativeExecutiveSummary:   "Executive Summary",
	NarrativeCompanyOverview:    "Company Overview",
	NarrativeFinancialAnalysis:  "Financial Analysis",
	NarrativeIndustryAnalysis:   "Industry Analysis",
	NarrativeRiskAssessment:     "Risk Assessment",
	NarrativeAssetApproach:      "Asset Approach",
	NarrativeIncomeApproach:     "Income Approach",
	NarrativeMarketApproach:     "Market Approach",
	NarrativeValuationSynthesis: "Valuation Synthesis",
	NarrativeAssumptions:        "Assumptions and Limiting Conditions",
	NarrativeValueEnhancement:   "Value Enhancement Opportunities",
}

// Valid reports whether id belongs to the fixed narrative set.
func (id NarrativeID) Valid() bool {
	_, ok := narrativeSectionTitles[id]
	return ok
}

// SectionTitle is the report section a narrative pass writes.
func (id NarrativeID) SectionTitle() string {
	return narrativeSectionTitles[id]
}

// narrativeKeyPrefix marks narrative selector keys.
const narrativeKeyPrefix = "narrative:"

// PassSelector identifies exactly one pass: numeric or narrative.
type PassSelector struct {
	number    int
	narrative NarrativeID
}

// NumericPass returns the selector for pass n. Callers outside ParseSelector must
// pass an in-range number.
func NumericPass(n int) PassSelector { return PassSelector{number: n} }

// NarrativePass returns the selector for a narrative pass.
func NarrativePass(id NarrativeID) PassSelector { return PassSelector{narrative: id} }

// ParseSelector validates the request form: exactly one of passNumber or
// narrativeID must be supplied and it must be in range.
func ParseSelector(passNumber *int, narrativeID *string) (PassSelector, error) {
	switch {
	case passNumber != nil && narrativeID != nil:
		return PassSelector{}, eris.Wrap(ErrInput, "supply either passNumber or narrativePassId, not both")
	case passNumber == nil && narrativeID == nil:
		return PassSelector{}, eris.Wrap(ErrInput, "one of passNumber or narrativePassId is required")
	case passNumber != nil:
		if *passNumber < 1 || *passNumber > NumericPassCount {
			return PassSelector{}, eris.Wrapf(ErrInput, "passNumber %d out of range 1-%d", *passNumber, NumericPassCount)
		}
		return NumericPass(*passNumber), nil
	default:
		id := NarrativeID(strings.TrimSpace(*narrativeID))
		if !id.Valid() {
			return PassSelector{}, eris.Wrapf(ErrInput, "unknown narrativePassId %q", *narrativeID)
		}
		return NarrativePass(id), nil
	}
}

// ParseSelectorKey is the inverse of PassSelector.Key.
func ParseSelectorKey(key string) (PassSelector, error) {
	if strings.HasPrefix(key, narrativeKeyPrefix) {
		id := strings.TrimPrefix(key, narrativeKeyPrefix)
		return ParseSelector(nil, &id)
	}
	n, err := strconv.Atoi(key)
	if err != nil {
		return PassSelector{}, eris.Wrapf(ErrInput, "malformed pass key %q", key)
	}
	return ParseSelector(&n, nil)
}

func (s PassSelector) IsNumeric() bool   { return s.number > 0 }
func (s PassSelector) IsNarrative() bool { return s.narrative != "" }
func (s PassSelector) Number() int       { return s.number }

func (s PassSelector) Narrative() NarrativeID { return s.narrative }

// Key is the stable string form used in PassOutputs and logs.
func (s PassSelector) Key() string {
	if s.IsNarrative() {
		return narrativeKeyPrefix + string(s.narrative)
	}
	return strconv.Itoa(s.number)
}

func (s PassSelector) String() string { return s.Key() }

// ResultKind tags a PassResult.
type ResultKind string

const (
	ResultOK           ResultKind = "ok"
	ResultParseFailure ResultKind = "parse_failure"
)

// PassResult is what one pass produced. A parse failure keeps the raw output so
// a retry can inspect it.
type PassResult struct {
	Kind        ResultKind      `json:"kind"`
	Payload     json.RawMessage `json:"payload,omitempty"`
	Raw         string          `json:"raw,omitempty"`
	Reason      string          `json:"reason,omitempty"`
	GeneratedAt time.Time       `json:"generated_at"`
	DurationMs  int64           `json:"duration_ms"`
}

func OkResult(payload json.RawMessage) PassResult {
	return PassResult{Kind: ResultOK, Payload: payload, GeneratedAt: time.Now().UTC()}
}

func ParseFailureResult(raw, reason string) PassResult {
	return PassResult{Kind: ResultParseFailure, Raw: raw, Reason: reason, GeneratedAt: time.Now().UTC()}
}

func (r PassResult) IsParseFailure() bool { return r.Kind == ResultParseFailure }

// Content returns the narrative text carried by an ok payload, looking at the
// "content" then "text" fields. Non-narrative payloads return "".
func (r PassResult) Content() string {
	if r.Kind != ResultOK || len(r.Payload) == 0 {
		return ""
	}
	var body struct {
		Content string `json:"content"`
		Text    string `json:"text"`
	}
	if err := json.Unmarshal(r.Payload, &body); err != nil {
		return ""
	}
	if body.Content != "" {
		return body.Content
	}
	return body.Text
}

// narrativeResultsKey nests narrative results inside the serialized outputs.
const narrativeResultsKey = "narrative_results"

// PassOutputs is the append/overwrite-only store of pass results, keyed by the
// closed PassSelector space.
type PassOutputs struct {
	numeric   map[int]PassResult
	narrative map[NarrativeID]PassResult
}

func NewPassOutputs() PassOutputs {
	return PassOutputs{
		numeric:   make(map[int]PassResult),
		narrative: make(map[NarrativeID]PassResult),
	}
}

// Set stores r under s, replacing any previous result for s only.
func (o *PassOutputs) Set(s PassSelector, r PassResult) {
	if o.numeric == nil {
		o.numeric = make(map[int]PassResult)
	}
	if o.narrative == nil {
		o.narrative = make(map[NarrativeID]PassResult)
	}
	if s.IsNarrative() {
		o.narrative[s.narrative] = r
		return
	}
	o.numeric[s.number] = r
}

func (o PassOutputs) Get(s PassSelector) (PassResult, bool) {
	if s.IsNarrative() {
		r, ok := o.narrative[s.narrative]
		return r, ok
	}
	r, ok := o.numeric[s.number]
	return r, ok
}

// Completed reports whether s has a non-failed result.
func (o PassOutputs) Completed(s PassSelector) bool {
	r, ok := o.Get(s)
	return ok && !r.IsParseFailure()
}

func (o PassOutputs) Len() int { return len(o.numeric) + len(o.narrative) }

// Keys returns all stored keys, numeric passes first in order.
func (o PassOutputs) Keys() []string {
	nums := make([]int, 0, len(o.numeric))
	for n := range o.numeric {
		nums = append(nums, n)
	}
	sort.Ints(nums)
	keys := make([]string, 0, o.Len())
	for _, n := range nums {
		keys = append(keys, NumericPass(n).Key())
	}
	ids := make([]string, 0, len(o.narrative))
	for id := range o.narrative {
		ids = append(ids, string(id))
	}
	sort.Strings(ids)
	for _, id := range ids {
		keys = append(keys, narrativeKeyPrefix+id)
	}
	return keys
}

// Numeric returns a copy of the numeric results keyed by their string key.
func (o PassOutputs) Numeric() map[string]PassResult {
	out := make(map[string]PassResult, len(o.numeric))
	for n, r := range o.numeric {
		out[strconv.Itoa(n)] = r
	}
	return out
}

// Narratives returns a copy of the narrative results.
func (o PassOutputs) Narratives() map[NarrativeID]PassResult {
	out := make(map[NarrativeID]PassResult, len(o.narrative))
	for id, r := range o.narrative {
		out[id] = r
	}
	return out
}

// Clone returns an independent copy.
func (o PassOutputs) Clone() PassOutputs {
	c := NewPassOutputs()
	for n, r := range o.numeric {
		c.numeric[n] = r
	}
	for id, r := range o.narrative {
		c.narrative[id] = r
	}
	return c
}

func (o PassOutputs) MarshalJSON() ([]byte, error) {
	flat := make(map[string]any, len(o.numeric)+1)
	for n, r := range o.numeric {
		flat[strconv.Itoa(n)] = r
	}
	narratives := make(map[string]PassResult, len(o.narrative))
	for id, r := range o.narrative {
		narratives[string(id)] = r
	}
	flat[narrativeResultsKey] = narratives
	return json.Marshal(flat)
}

func (o *PassOutputs) UnmarshalJSON(data []byte) error {
	var flat map[string]json.RawMessage
	if err := json.Unmarshal(data, &flat); err != nil {
		return err
	}
	out := NewPassOutputs()
	for key, raw := range flat {
		if key == narrativeResultsKey {
			var narratives map[string]PassResult
			if err := json.Unmarshal(raw, &narratives); err != nil {
				return eris.Wrapf(err, "pass outputs: %s", key)
			}
			for id, r := range narratives {
				nid := NarrativeID(id)
				if !nid.Valid() {
					return eris.Errorf("pass outputs: unknown narrative key %q", id)
				}
				out.narrative[nid] = r
			}
			continue
		}
		n, err := strconv.Atoi(key)
		if err != nil || n < 1 || n > NumericPassCount {
			return eris.Errorf("pass outputs: invalid pass key %q", key)
		}
		var r PassResult
		if err := json.Unmarshal(raw, &r); err != nil {
			return eris.Wrapf(err, "pass outputs: %s", key)
		}
		out.numeric[n] = r
	}
	*o = out
	return nil
}
