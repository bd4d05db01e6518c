package validation

import (
	"go.uber.org/zap"

	"valuator/internal/domain"
	"valuator/internal/valuation"
)

// NarrativeValidator checks one freshly generated narrative section so a bad
// section can be regenerated before the report is assembled.
type NarrativeValidator struct {
	data   *valuation.Accessor
	rules  MentionRules
	logger *zap.Logger
}

func NewNarrativeValidator(data *valuation.Accessor, rules *Rules, logger *zap.Logger) *NarrativeValidator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NarrativeValidator{data: data, rules: rules.Narrative, logger: logger}
}

func (v *NarrativeValidator) Name() string { return "narrative" }

// ValidateSection compares every configured metric mentioned in text with its
// authoritative value. A mismatch is an error only in the metric's critical
// sections; elsewhere it is logged and kept as a warning.
func (v *NarrativeValidator) ValidateSection(id domain.NarrativeID, text string) Result {
	res := newResult(v.Name())
	section := string(id)
	for i := range v.rules.Metrics {
		metric := &v.rules.Metrics[i]
		expected := metricValue(v.data, metric.Key)
		if expected <= 0 || !metric.MatchesSection(text) {
			continue
		}
		before := len(res.Warnings)
		checkMentions(res, section, metric, text, expected, v.rules, metric.IsCritical)
		for _, w := range res.Warnings[before:] {
			v.logger.Warn("narrative: value mismatch outside critical section",
				zap.String("section", section),
				zap.String("metric", metric.Key),
				zap.String("detail", w),
			)
		}
	}
	return *res
}

// CriticalMismatches re-checks the narrative sections present in sections,
// keyed by section title, and keeps only mismatches inside each metric's
// critical sections. Metrics listed in skip are not checked.
func (v *NarrativeValidator) CriticalMismatches(sections map[string]string, skip map[string]bool) Result {
	res := newResult(v.Name())
	for _, id := range domain.NarrativeIDs {
		text, ok := sections[id.SectionTitle()]
		if !ok {
			continue
		}
		section := string(id)
		for i := range v.rules.Metrics {
			metric := &v.rules.Metrics[i]
			if skip[metric.Key] || !metric.IsCritical(section) || !metric.MatchesSection(text) {
				continue
			}
			expected := metricValue(v.data, metric.Key)
			if expected <= 0 {
				continue
			}
			checkMentions(res, section, metric, text, expected, v.rules, metric.IsCritical)
		}
	}
	return *res
}
