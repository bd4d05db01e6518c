// Package validation checks an assembled valuation report against the
// authoritative snapshot. Validators never fail fast: every check runs and
// contributes errors or warnings to one Result.
package validation

import "fmt"

// Severity grades a single finding.
type Severity string

const (
	SeverityOK      Severity = "ok"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// RuleResult is the outcome of one named rule.
type RuleResult struct {
	Name     string   `json:"name"`
	Passed   bool     `json:"passed"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message,omitempty"`
}

// Mismatch is a numeric mention in text that disagrees with its
// authoritative value.
type Mismatch struct {
	Section   string  `json:"section"`
	Metric    string  `json:"metric"`
	Found     string  `json:"found"`
	Value     float64 `json:"value"`
	Expected  float64 `json:"expected"`
	Deviation float64 `json:"deviation"`
}

// Result is what every validator produces.
type Result struct {
	Validator  string       `json:"validator"`
	Passed     bool         `json:"passed"`
	Errors     []string     `json:"errors"`
	Warnings   []string     `json:"warnings"`
	Rules      []RuleResult `json:"rules,omitempty"`
	Mismatches []Mismatch   `json:"mismatches,omitempty"`
}

func newResult(name string) *Result {
	return &Result{Validator: name, Passed: true, Errors: []string{}, Warnings: []string{}}
}

func (r *Result) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
	r.Passed = false
}

func (r *Result) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Rule returns the named rule result, if the validator recorded one.
func (r Result) Rule(name string) (RuleResult, bool) {
	for _, rr := range r.Rules {
		if rr.Name == name {
			return rr, true
		}
	}
	return RuleResult{}, false
}
