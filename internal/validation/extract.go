package validation

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"valuator/internal/valuation"
)

// ValueMention is a numeric token found in free text.
type ValueMention struct {
	Raw       string    `json:"raw"`
	Value     float64   `json:"value"`
	Kind      ValueType `json:"kind"`
	Offset    int       `json:"offset"`
	Matches   bool      `json:"matches"`
	Deviation float64   `json:"deviation"`
}

var (
	// $5,250,000 | $5250000.00 | $1.2M | $1.2 million | $3bn | $850K
	currencyRe = regexp.MustCompile(`(?i)\$\s?(\d{1,3}(?:,\d{3})+(?:\.\d+)?|\d+(?:\.\d+)?)(?:\s?(million|billion|thousand|mm|bn|m|b|k)\b)?`)
	// 2.5x | 2.5× | 2.5 times
	multiplierRe = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s?(?:x\b|×|times\b)`)
)

var scaleSuffix = map[string]float64{
	"thousand": 1e3,
	"k":        1e3,
	"million":  1e6,
	"mm":       1e6,
	"m":        1e6,
	"billion":  1e9,
	"bn":       1e9,
	"b":        1e9,
}

// ExtractCurrency finds dollar amounts in full and shorthand form, normalized
// to whole-dollar values.
func ExtractCurrency(text string) []ValueMention {
	var out []ValueMention
	for _, loc := range currencyRe.FindAllStringSubmatchIndex(text, -1) {
		num := strings.ReplaceAll(text[loc[2]:loc[3]], ",", "")
		v, err := strconv.ParseFloat(num, 64)
		if err != nil {
			continue
		}
		if loc[4] >= 0 {
			v *= scaleSuffix[strings.ToLower(text[loc[4]:loc[5]])]
		}
		out = append(out, ValueMention{Raw: text[loc[0]:loc[1]], Value: v, Kind: ValueCurrency, Offset: loc[0]})
	}
	return out
}

// ExtractMultipliers finds multiples written as 2.5x, 2.5× or 2.5 times.
func ExtractMultipliers(text string) []ValueMention {
	var out []ValueMention
	for _, loc := range multiplierRe.FindAllStringSubmatchIndex(text, -1) {
		if loc[0] > 0 && text[loc[0]-1] == '$' {
			continue
		}
		v, err := strconv.ParseFloat(text[loc[2]:loc[3]], 64)
		if err != nil {
			continue
		}
		out = append(out, ValueMention{Raw: text[loc[0]:loc[1]], Value: v, Kind: ValueMultiplier, Offset: loc[0]})
	}
	return out
}

// Extract dispatches on kind.
func Extract(text string, kind ValueType) []ValueMention {
	if kind == ValueMultiplier {
		return ExtractMultipliers(text)
	}
	return ExtractCurrency(text)
}

// Compare keeps mentions inside the plausibility band [lo×expected,
// hi×expected] and marks each as matching when its relative deviation is
// within tolerance. Mentions outside the band are dropped as unrelated amounts.
func Compare(mentions []ValueMention, expected, tolerance, lo, hi float64) []ValueMention {
	if expected <= 0 || math.IsNaN(expected) || math.IsInf(expected, 0) {
		return nil
	}
	out := make([]ValueMention, 0, len(mentions))
	for _, m := range mentions {
		if m.Value < expected*lo || m.Value > expected*hi {
			continue
		}
		m.Deviation = math.Abs(m.Value-expected) / expected
		m.Matches = m.Deviation <= tolerance
		out = append(out, m)
	}
	return out
}

var metricValues = map[string]func(*valuation.Accessor) float64{
	"final_value":           (*valuation.Accessor).FinalValue,
	"sde":                   (*valuation.Accessor).SDE,
	"revenue":               (*valuation.Accessor).Revenue,
	"ebitda":                (*valuation.Accessor).EBITDA,
	"sde_multiple":          (*valuation.Accessor).MarketMultiple,
	"revenue_multiple":      (*valuation.Accessor).RevenueMultiple,
	"ebitda_multiple":       (*valuation.Accessor).EBITDAMultiple,
	"total_assets":          (*valuation.Accessor).TotalAssets,
	"asset_approach_value":  func(a *valuation.Accessor) float64 { return a.ApproachValues().Asset },
	"income_approach_value": func(a *valuation.Accessor) float64 { return a.ApproachValues().Income },
	"market_approach_value": func(a *valuation.Accessor) float64 { return a.ApproachValues().Market },
}

func knownMetric(key string) bool {
	_, ok := metricValues[key]
	return ok
}

// metricValue reads the authoritative value for key; unknown keys read as 0.
func metricValue(a *valuation.Accessor, key string) float64 {
	if fn, ok := metricValues[key]; ok {
		return fn(a)
	}
	return 0
}

func formatValue(v float64, kind ValueType) string {
	if kind == ValueMultiplier {
		return valuation.FormatMultiple(v)
	}
	return valuation.FormatCurrency(v)
}
