package validation

import (
	"sort"

	"valuator/internal/valuation"
)

// ConsistencyValidator checks that tracked metrics quoted in report sections
// agree with the authoritative snapshot.
type ConsistencyValidator struct {
	data  *valuation.Accessor
	rules MentionRules
}

func NewConsistencyValidator(data *valuation.Accessor, rules *Rules) *ConsistencyValidator {
	return &ConsistencyValidator{data: data, rules: rules.Consistency}
}

func (v *ConsistencyValidator) Name() string { return "consistency" }

// Validate scans every section that mentions a metric's trigger keyword.
// Sections are visited in title order so findings are stable.
func (v *ConsistencyValidator) Validate(sections map[string]string) Result {
	res := newResult(v.Name())
	titles := make([]string, 0, len(sections))
	for t := range sections {
		titles = append(titles, t)
	}
	sort.Strings(titles)

	for i := range v.rules.Metrics {
		metric := &v.rules.Metrics[i]
		expected := metricValue(v.data, metric.Key)
		if expected <= 0 {
			res.warnf("%s: no authoritative value, consistency check skipped", metric.Label)
			continue
		}
		for _, title := range titles {
			text := sections[title]
			if !metric.MatchesSection(text) {
				continue
			}
			checkMentions(res, title, metric, text, expected, v.rules, func(string) bool { return true })
		}
	}
	return *res
}

// checkMentions records one finding per distinct mismatched value in text.
// critical decides whether a mismatch in section is an error or a warning.
func checkMentions(res *Result, section string, metric *MetricRule, text string, expected float64, rules MentionRules, critical func(string) bool) {
	mentions := Compare(Extract(text, metric.Type), expected, metric.Tolerance, rules.PlausibilityMin, rules.PlausibilityMax)
	seen := make(map[float64]bool)
	for _, m := range mentions {
		if m.Matches || seen[m.Value] {
			continue
		}
		seen[m.Value] = true
		res.Mismatches = append(res.Mismatches, Mismatch{
			Section:   section,
			Metric:    metric.Key,
			Found:     m.Raw,
			Value:     m.Value,
			Expected:  expected,
			Deviation: m.Deviation,
		})
		msg := "%s: %s mismatch: found %s, expected %s (%.1f%% deviation)"
		args := []any{section, metric.Label, m.Raw, formatValue(expected, metric.Type), m.Deviation * 100}
		if critical(section) {
			res.errorf(msg, args...)
		} else {
			res.warnf(msg, args...)
		}
	}
}
