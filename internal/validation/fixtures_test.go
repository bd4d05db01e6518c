package validation

import (
	"valuator/internal/domain"
	"valuator/internal/valuation"
)

func validSnapshot() *domain.ValuationData {
	return &domain.ValuationData{
		FinancialMetrics: domain.FinancialMetrics{Revenue: 6_800_000, SDE: 1_250_000, EBITDA: 980_000, FiscalYear: 2025},
		Approaches: domain.Approaches{
			Asset:  domain.ApproachValue{Value: 3_100_000, Weight: 0.34},
			Income: domain.ApproachValue{Value: 5_900_000, Weight: 0.46},
			Market: domain.ApproachValue{Value: 3_500_000, Weight: 0.20},
		},
		FinalValue:         5_250_000,
		Multiples:          domain.Multiples{SDE: 2.8},
		CapitalizationRate: 0.22,
		BalanceSheet:       domain.BalanceSheet{TotalAssets: 4_200_000, TotalLiabilities: 1_100_000},
		Company:            domain.CompanyFacts{Name: "Summit HVAC Services", NAICS: "238220"},
		RiskScore:          3.2,
		DataQualityScore:   0.9,
	}
}

func accessorWith(mutate func(d *domain.ValuationData)) *valuation.Accessor {
	d := validSnapshot()
	if mutate != nil {
		mutate(d)
	}
	return valuation.New(d)
}
