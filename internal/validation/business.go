package validation

import (
	"fmt"
	"math"

	"valuator/internal/valuation"
)

// Rule names reported by BusinessRuleValidator.
const (
	RuleFinalValuePositive   = "final_value_positive"
	RuleApproachWeightsSum   = "approach_weights_sum"
	RuleAssetApproachPresent = "asset_approach_present"
	RuleMarketMultipleInBand = "market_multiple_in_band"
	RuleCapitalizationRate   = "capitalization_rate_range"
)

// BusinessRuleValidator enforces valuation domain constraints directly on the
// snapshot, independent of any narrative text.
type BusinessRuleValidator struct {
	data  *valuation.Accessor
	rules BusinessRules
}

func NewBusinessRuleValidator(data *valuation.Accessor, rules *Rules) *BusinessRuleValidator {
	return &BusinessRuleValidator{data: data, rules: rules.Business}
}

func (v *BusinessRuleValidator) Name() string { return "business_rules" }

// Validate evaluates every rule; each one is recorded in Result.Rules.
func (v *BusinessRuleValidator) Validate() Result {
	res := newResult(v.Name())
	for _, rule := range []func() RuleResult{
		v.finalValuePositive,
		v.approachWeightsSum,
		v.assetApproachPresent,
		v.marketMultipleInBand,
		v.capitalizationRate,
	} {
		rr := rule()
		res.Rules = append(res.Rules, rr)
		switch rr.Severity {
		case SeverityError:
			res.errorf("%s", rr.Message)
		case SeverityWarning:
			res.warnf("%s", rr.Message)
		}
	}
	return *res
}

func pass(name string) RuleResult {
	return RuleResult{Name: name, Passed: true, Severity: SeverityOK}
}

func fail(name, msg string) RuleResult {
	return RuleResult{Name: name, Passed: false, Severity: SeverityError, Message: msg}
}

func warn(name, msg string) RuleResult {
	return RuleResult{Name: name, Passed: true, Severity: SeverityWarning, Message: msg}
}

func (v *BusinessRuleValidator) finalValuePositive() RuleResult {
	if fv := v.data.FinalValue(); fv <= 0 {
		return fail(RuleFinalValuePositive, "final concluded value must be positive, got "+valuation.FormatCurrency(fv))
	}
	return pass(RuleFinalValuePositive)
}

func (v *BusinessRuleValidator) approachWeightsSum() RuleResult {
	sum := v.data.WeightSum()
	if math.Abs(sum-1.0) > v.rules.WeightTolerance {
		w := v.data.ApproachWeights()
		return fail(RuleApproachWeightsSum, fmt.Sprintf(
			"approach weights must sum to 1.00 (±%.0f%%), got %.2f (asset %.2f, income %.2f, market %.2f)",
			v.rules.WeightTolerance*100, sum, w.Asset, w.Income, w.Market))
	}
	return pass(RuleApproachWeightsSum)
}

func (v *BusinessRuleValidator) assetApproachPresent() RuleResult {
	assets := v.data.TotalAssets()
	if assets > 0 && v.data.ApproachValues().Asset == 0 {
		return fail(RuleAssetApproachPresent, fmt.Sprintf(
			"asset approach value is $0 although total assets are %s", valuation.FormatCurrency(assets)))
	}
	return pass(RuleAssetApproachPresent)
}

func (v *BusinessRuleValidator) marketMultipleInBand() RuleResult {
	m := v.data.MarketMultiple()
	band := v.rules.BandFor(v.data.CompanyFacts().NAICS)
	if m <= 0 {
		if v.data.ApproachWeights().Market > 0 {
			return warn(RuleMarketMultipleInBand, "market approach is weighted but no SDE multiple is recorded")
		}
		return pass(RuleMarketMultipleInBand)
	}
	if m > band.High*v.rules.MultipleErrorFactor {
		return fail(RuleMarketMultipleInBand, fmt.Sprintf(
			"SDE multiple %s exceeds %.1fx the %s band high of %s",
			valuation.FormatMultiple(m), v.rules.MultipleErrorFactor, band.Name, valuation.FormatMultiple(band.High)))
	}
	if m < band.Low || m > band.High {
		return warn(RuleMarketMultipleInBand, fmt.Sprintf(
			"SDE multiple %s is outside the %s band %s-%s",
			valuation.FormatMultiple(m), band.Name, valuation.FormatMultiple(band.Low), valuation.FormatMultiple(band.High)))
	}
	return pass(RuleMarketMultipleInBand)
}

func (v *BusinessRuleValidator) capitalizationRate() RuleResult {
	r := v.data.CapRate()
	cr := v.rules.CapRate
	if r < cr.Min || r > cr.Max {
		return fail(RuleCapitalizationRate, fmt.Sprintf(
			"capitalization rate %s is outside the allowed range %s-%s",
			valuation.FormatPercent(r), valuation.FormatPercent(cr.Min), valuation.FormatPercent(cr.Max)))
	}
	if r < cr.TypicalMin || r > cr.TypicalMax {
		return warn(RuleCapitalizationRate, fmt.Sprintf(
			"capitalization rate %s is outside the typical range %s-%s",
			valuation.FormatPercent(r), valuation.FormatPercent(cr.TypicalMin), valuation.FormatPercent(cr.TypicalMax)))
	}
	return pass(RuleCapitalizationRate)
}
