package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"valuator/internal/domain"
)

func TestBusinessRuleValidator_ValidSnapshot(t *testing.T) {
	res := NewBusinessRuleValidator(accessorWith(nil), DefaultRules()).Validate()
	assert.True(t, res.Passed)
	assert.Empty(t, res.Errors)
	assert.Empty(t, res.Warnings)
	assert.Len(t, res.Rules, 5)
}

func TestBusinessRuleValidator_WeightSum(t *testing.T) {
	tests := []struct {
		name    string
		weights [3]float64
		pass    bool
	}{
		{name: "sums to one", weights: [3]float64{0.34, 0.46, 0.20}, pass: true},
		{name: "within tolerance", weights: [3]float64{0.34, 0.46, 0.205}, pass: true},
		{name: "sums to 1.30", weights: [3]float64{0.50, 0.50, 0.30}, pass: false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			data := accessorWith(func(d *domain.ValuationData) {
				d.Approaches.Asset.Weight = tc.weights[0]
				d.Approaches.Income.Weight = tc.weights[1]
				d.Approaches.Market.Weight = tc.weights[2]
			})
			res := NewBusinessRuleValidator(data, DefaultRules()).Validate()
			rule, ok := res.Rule(RuleApproachWeightsSum)
			require.True(t, ok)
			assert.Equal(t, tc.pass, rule.Passed)
			assert.Equal(t, tc.pass, res.Passed)
			if !tc.pass {
				assert.Contains(t, rule.Message, "1.30")
			}
		})
	}
}

func TestBusinessRuleValidator_AssetApproachGuard(t *testing.T) {
	failing := accessorWith(func(d *domain.ValuationData) {
		d.Approaches.Asset.Value = 0
		d.BalanceSheet.TotalAssets = 4_200_000
	})
	rule, _ := NewBusinessRuleValidator(failing, DefaultRules()).Validate().Rule(RuleAssetApproachPresent)
	assert.False(t, rule.Passed)
	assert.Contains(t, rule.Message, "$4,200,000")

	noAssets := accessorWith(func(d *domain.ValuationData) {
		d.Approaches.Asset.Value = 0
		d.BalanceSheet.TotalAssets = 0
	})
	rule, _ = NewBusinessRuleValidator(noAssets, DefaultRules()).Validate().Rule(RuleAssetApproachPresent)
	assert.True(t, rule.Passed)
}

func TestBusinessRuleValidator_CapRateBands(t *testing.T) {
	tests := []struct {
		rate     float64
		severity Severity
	}{
		{0.03, SeverityError},
		{0.08, SeverityWarning},
		{0.22, SeverityOK},
		{0.55, SeverityWarning},
		{0.65, SeverityError},
	}
	for _, tc := range tests {
		data := accessorWith(func(d *domain.ValuationData) { d.CapitalizationRate = tc.rate })
		res := NewBusinessRuleValidator(data, DefaultRules()).Validate()
		rule, ok := res.Rule(RuleCapitalizationRate)
		require.True(t, ok)
		assert.Equal(t, tc.severity, rule.Severity, "rate %v", tc.rate)
		assert.Equal(t, tc.severity != SeverityError, res.Passed, "rate %v", tc.rate)
	}
}

func TestBusinessRuleValidator_MarketMultipleBand(t *testing.T) {
	// NAICS 238220 falls in the 2382 band: 2.0x-3.5x.
	tests := []struct {
		multiple float64
		severity Severity
	}{
		{2.8, SeverityOK},
		{1.6, SeverityWarning},
		{4.5, SeverityWarning},
		{5.4, SeverityError},
	}
	for _, tc := range tests {
		data := accessorWith(func(d *domain.ValuationData) { d.Multiples.SDE = tc.multiple })
		rule, _ := NewBusinessRuleValidator(data, DefaultRules()).Validate().Rule(RuleMarketMultipleInBand)
		assert.Equal(t, tc.severity, rule.Severity, "multiple %v", tc.multiple)
	}
}

func TestBusinessRuleValidator_AccumulatesEveryRule(t *testing.T) {
	data := accessorWith(func(d *domain.ValuationData) {
		d.FinalValue = 0
		d.Approaches.Asset.Value = 0
		d.Approaches.Asset.Weight = 0.9
		d.CapitalizationRate = 0.9
	})
	res := NewBusinessRuleValidator(data, DefaultRules()).Validate()
	assert.False(t, res.Passed)
	assert.Len(t, res.Errors, 4)
	assert.Len(t, res.Rules, 5)
}

func TestBusinessRuleValidator_EmptySnapshot(t *testing.T) {
	res := NewBusinessRuleValidator(accessorWith(func(d *domain.ValuationData) { *d = domain.ValuationData{} }), DefaultRules()).Validate()
	assert.False(t, res.Passed)
	rule, _ := res.Rule(RuleFinalValuePositive)
	assert.False(t, rule.Passed)
}
