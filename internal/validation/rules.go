package validation

import (
	_ "embed"
	"fmt"
	"math"
	"os"
	"regexp"
	"strings"
	"sync"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

//go:embed rules.yaml
var defaultRulesYAML []byte

// ValueType selects how numeric mentions are extracted.
type ValueType string

const (
	ValueCurrency   ValueType = "currency"
	ValueMultiplier ValueType = "multiplier"
)

// MetricRule describes one tracked metric: where to look for it and how close
// a mention must be to the authoritative value.
type MetricRule struct {
	Key              string    `yaml:"key"`
	Label            string    `yaml:"label"`
	Type             ValueType `yaml:"type"`
	Tolerance        float64   `yaml:"tolerance"`
	Keywords         []string  `yaml:"keywords"`
	CriticalSections []string  `yaml:"critical_sections"`

	keywordRe *regexp.Regexp
}

// MatchesSection reports whether text contains one of the metric's trigger
// keywords as a whole word.
func (m *MetricRule) MatchesSection(text string) bool {
	if m.keywordRe == nil {
		return false
	}
	return m.keywordRe.MatchString(text)
}

// IsCritical reports whether section is one where a mismatch is an error.
func (m *MetricRule) IsCritical(section string) bool {
	for _, s := range m.CriticalSections {
		if s == section {
			return true
		}
	}
	return false
}

type MentionRules struct {
	PlausibilityMin float64      `yaml:"plausibility_min"`
	PlausibilityMax float64      `yaml:"plausibility_max"`
	Metrics         []MetricRule `yaml:"metrics"`
}

type Band struct {
	NAICS string  `yaml:"naics"`
	Name  string  `yaml:"name"`
	Low   float64 `yaml:"low"`
	High  float64 `yaml:"high"`
}

type CapRateRule struct {
	Min        float64 `yaml:"min"`
	Max        float64 `yaml:"max"`
	TypicalMin float64 `yaml:"typical_min"`
	TypicalMax float64 `yaml:"typical_max"`
}

type BusinessRules struct {
	WeightTolerance     float64     `yaml:"weight_tolerance"`
	MultipleErrorFactor float64     `yaml:"multiple_error_factor"`
	CapRate             CapRateRule `yaml:"cap_rate"`
	DefaultBand         Band        `yaml:"default_band"`
	IndustryBands       []Band      `yaml:"industry_bands"`
}

// BandFor returns the industry band with the longest NAICS prefix match, or the
// default band.
func (b BusinessRules) BandFor(naics string) Band {
	naics = strings.TrimSpace(naics)
	best := b.DefaultBand
	bestLen := 0
	for _, band := range b.IndustryBands {
		if band.NAICS != "" && strings.HasPrefix(naics, band.NAICS) && len(band.NAICS) > bestLen {
			best = band
			bestLen = len(band.NAICS)
		}
	}
	if best.Name == "" {
		best.Name = "default"
	}
	return best
}

type SectionRule struct {
	Title     string `yaml:"title"`
	MinLength int    `yaml:"min_length"`
}

type CompletenessRules struct {
	RequiredSections []SectionRule `yaml:"required_sections"`
}

type GateRules struct {
	MinScore         float64            `yaml:"min_score"`
	Weights          map[string]float64 `yaml:"weights"`
	CriticalKeywords []string           `yaml:"critical_keywords"`
	NAWindow         int                `yaml:"na_window"`
}

// Rules is the full rule table set.
type Rules struct {
	SchemaVersion string            `yaml:"schema_version"`
	Consistency   MentionRules      `yaml:"consistency"`
	Narrative     MentionRules      `yaml:"narrative"`
	Business      BusinessRules     `yaml:"business"`
	Completeness  CompletenessRules `yaml:"completeness"`
	QualityGate   GateRules         `yaml:"quality_gate"`
}

var (
	defaultOnce  sync.Once
	defaultRules *Rules
)

// DefaultRules returns the embedded rule tables.
func DefaultRules() *Rules {
	defaultOnce.Do(func() {
		r, err := parseRules(defaultRulesYAML, &Rules{})
		if err != nil {
			panic(fmt.Sprintf("validation: embedded rules: %v", err))
		}
		defaultRules = r
	})
	return defaultRules
}

// LoadRules reads a rules file and overlays it on the embedded defaults. An
// empty path yields a private copy of the defaults, so the caller may adjust it
// without touching DefaultRules.
func LoadRules(path string) (*Rules, error) {
	base, err := parseRules(defaultRulesYAML, &Rules{})
	if err != nil {
		return nil, err
	}
	if path == "" {
		return base, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "read rules %s", path)
	}
	return parseRules(data, base)
}

func parseRules(data []byte, into *Rules) (*Rules, error) {
	if err := yaml.Unmarshal(data, into); err != nil {
		return nil, eris.Wrap(err, "parse rules")
	}
	if err := into.compile(); err != nil {
		return nil, err
	}
	return into, nil
}

func (r *Rules) compile() error {
	for _, set := range []*MentionRules{&r.Consistency, &r.Narrative} {
		if set.PlausibilityMin <= 0 || set.PlausibilityMax <= set.PlausibilityMin {
			return eris.Errorf("rules: invalid plausibility band [%v, %v]", set.PlausibilityMin, set.PlausibilityMax)
		}
		for i := range set.Metrics {
			m := &set.Metrics[i]
			if !knownMetric(m.Key) {
				return eris.Errorf("rules: unknown metric %q", m.Key)
			}
			if m.Type == "" {
				m.Type = ValueCurrency
			}
			if m.Type != ValueCurrency && m.Type != ValueMultiplier {
				return eris.Errorf("rules: metric %s: unknown type %q", m.Key, m.Type)
			}
			if m.Tolerance <= 0 {
				return eris.Errorf("rules: metric %s: tolerance must be positive", m.Key)
			}
			re, err := keywordRegexp(m.Keywords)
			if err != nil {
				return eris.Wrapf(err, "rules: metric %s", m.Key)
			}
			m.keywordRe = re
		}
	}
	sum := 0.0
	for _, w := range r.QualityGate.Weights {
		sum += w
	}
	if math.Abs(sum-1.0) > 1e-6 {
		return eris.Errorf("rules: quality gate weights sum to %.4f, want 1.0", sum)
	}
	return nil
}

func keywordRegexp(keywords []string) (*regexp.Regexp, error) {
	if len(keywords) == 0 {
		return nil, eris.New("no keywords")
	}
	quoted := make([]string, 0, len(keywords))
	for _, k := range keywords {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		quoted = append(quoted, regexp.QuoteMeta(k))
	}
	return regexp.Compile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)\b`)
}
