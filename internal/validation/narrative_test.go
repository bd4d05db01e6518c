package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"valuator/internal/domain"
)

func TestNarrativeValidator_CriticalSection(t *testing.T) {
	v := NewNarrativeValidator(accessorWith(nil), DefaultRules(), nil)

	res := v.ValidateSection(domain.NarrativeExecutiveSummary, "We estimate a fair market value of $5.25 million.")
	assert.True(t, res.Passed)

	res = v.ValidateSection(domain.NarrativeExecutiveSummary, "We estimate a fair market value of $4.1 million.")
	assert.False(t, res.Passed)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "$5,250,000")
}

func TestNarrativeValidator_NonCriticalSectionWarns(t *testing.T) {
	v := NewNarrativeValidator(accessorWith(nil), DefaultRules(), nil)
	res := v.ValidateSection(domain.NarrativeCompanyOverview, "Owners previously valued at $3,900,000 in a 2019 appraisal.")
	assert.True(t, res.Passed)
	assert.Len(t, res.Warnings, 1)
}

func TestNarrativeValidator_Multiplier(t *testing.T) {
	v := NewNarrativeValidator(accessorWith(nil), DefaultRules(), nil)

	res := v.ValidateSection(domain.NarrativeMarketApproach, "Comparable transactions support an SDE multiple of 2.8 times earnings.")
	assert.True(t, res.Passed)

	res = v.ValidateSection(domain.NarrativeMarketApproach, "Comparable transactions support an SDE multiple of 3.6x.")
	assert.False(t, res.Passed)
	require.Len(t, res.Mismatches, 1)
	assert.Equal(t, "sde_multiple", res.Mismatches[0].Metric)
	assert.Contains(t, res.Errors[0], "2.80x")
}

func TestNarrativeValidator_SDE(t *testing.T) {
	v := NewNarrativeValidator(accessorWith(nil), DefaultRules(), nil)
	res := v.ValidateSection(domain.NarrativeFinancialAnalysis, "Seller's discretionary earnings reached $1.6M in the latest year.")
	assert.False(t, res.Passed)
	res = v.ValidateSection(domain.NarrativeFinancialAnalysis, "SDE of $1,250,000 reflects add-backs for owner compensation.")
	assert.True(t, res.Passed)
}

func TestNarrativeValidator_CriticalMismatches(t *testing.T) {
	v := NewNarrativeValidator(accessorWith(nil), DefaultRules(), nil)
	sections := map[string]string{
		"Financial Analysis": "Seller's discretionary earnings reached $2.1 million.",
		"Company Overview":   "SDE was about $900,000 before the expansion.",
		"Market Approach":    "Comparable transactions support an SDE multiple of 2.8x.",
		"Executive Summary":  "We estimate a fair market value of $4.1 million.",
	}

	res := v.CriticalMismatches(sections, nil)
	assert.False(t, res.Passed)
	require.Len(t, res.Errors, 2)
	assert.Contains(t, res.Errors[0], "financial_analysis: SDE mismatch")
	assert.Contains(t, res.Errors[1], "executive_summary: concluded value mismatch")
	assert.Empty(t, res.Warnings)

	res = v.CriticalMismatches(sections, map[string]bool{"final_value": true})
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "sde", res.Mismatches[0].Metric)
}
