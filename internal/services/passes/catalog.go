package passes

import (
	"fmt"

	"valuator/internal/domain"
)

// Definition is the static description of one pass.
type Definition struct {
	Selector domain.PassSelector
	Label    string
	// Requires lists passes whose ok result must exist before this one runs.
	Requires []domain.PassSelector
	// NeedsCalculations is set for passes that read the valuation snapshot.
	NeedsCalculations bool
	// WebSearch marks the research passes allowed to use web search.
	WebSearch bool
}

var numericLabels = [domain.NumericPassCount]string{
	"Document Intake and Company Profile",
	"Income Statement Analysis",
	"Balance Sheet Analysis",
	"Industry Research",
	"Earnings Normalization",
	"Risk Assessment",
	"Asset Approach",
	"Income Approach",
	"Market Approach",
	"Value Reconciliation",
	"Discounts and Premiums",
	"Value Conclusion",
	"Report Review",
}

var numericRequires = map[int][]int{
	2:  {1},
	3:  {1},
	4:  {1},
	5:  {2},
	6:  {3, 4, 5},
	7:  {3},
	8:  {5, 6},
	9:  {4, 5},
	10: {7, 8, 9},
	11: {10},
	12: {11},
	13: {12},
}

var webSearchPasses = map[int]bool{4: true, 6: true, 9: true}

// Lookup returns the definition of s. Selectors come from
// domain.ParseSelector, so every valid selector has one.
func Lookup(s domain.PassSelector) Definition {
	if s.IsNarrative() {
		id := s.Narrative()
		def := Definition{
			Selector:          s,
			Label:             "Narrative: " + id.SectionTitle(),
			NeedsCalculations: true,
		}
		if id == domain.NarrativeExecutiveSummary {
			def.Requires = []domain.PassSelector{domain.NarrativePass(domain.NarrativeValuationSynthesis)}
		}
		return def
	}
	n := s.Number()
	def := Definition{Selector: s, WebSearch: webSearchPasses[n]}
	if n >= 1 && n <= domain.NumericPassCount {
		def.Label = fmt.Sprintf("Pass %d: %s", n, numericLabels[n-1])
	}
	for _, dep := range numericRequires[n] {
		def.Requires = append(def.Requires, domain.NumericPass(dep))
	}
	return def
}

// All returns every pass in workflow order: numeric 1..13 then narratives.
func All() []domain.PassSelector {
	out := make([]domain.PassSelector, 0, domain.NumericPassCount+len(domain.NarrativeIDs))
	for n := 1; n <= domain.NumericPassCount; n++ {
		out = append(out, domain.NumericPass(n))
	}
	for _, id := range domain.NarrativeIDs {
		out = append(out, domain.NarrativePass(id))
	}
	return out
}

// MissingDependencies returns the keys of required passes without an ok result.
func MissingDependencies(def Definition, report domain.Report) []string {
	var missing []string
	for _, dep := range def.Requires {
		if !report.PassOutputs.Completed(dep) {
			missing = append(missing, dep.Key())
		}
	}
	if def.NeedsCalculations && report.CalculationResults == nil {
		missing = append(missing, "calculation_results")
	}
	return missing
}

// Dependents returns the passes that declare s as a direct requirement.
func Dependents(s domain.PassSelector) []domain.PassSelector {
	var out []domain.PassSelector
	for _, candidate := range All() {
		for _, dep := range Lookup(candidate).Requires {
			if dep == s {
				out = append(out, candidate)
				break
			}
		}
	}
	return out
}

// AllComplete reports whether every pass has an ok result.
func AllComplete(outputs domain.PassOutputs) bool {
	for _, s := range All() {
		if !outputs.Completed(s) {
			return false
		}
	}
	return true
}
