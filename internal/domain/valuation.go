package domain

// ValuationData is the canonical numeric snapshot for a report version, stored
// as calculation_results. Every validator reads it through valuation.Accessor.
type ValuationData struct {
	FinancialMetrics   FinancialMetrics `json:"financial_metrics"`
	Approaches         Approaches       `json:"approaches"`
	FinalValue         float64          `json:"final_value"`
	ValueRangeLow      float64          `json:"value_range_low,omitempty"`
	ValueRangeHigh     float64          `json:"value_range_high,omitempty"`
	Multiples          Multiples        `json:"multiples"`
	CapitalizationRate float64          `json:"capitalization_rate"`
	BalanceSheet       BalanceSheet     `json:"balance_sheet"`
	Company            CompanyFacts     `json:"company"`
	RiskScore          float64          `json:"risk_score"`
	DataQualityScore   float64          `json:"data_quality_score"`
}

type FinancialMetrics struct {
	Revenue    float64 `json:"revenue"`
	SDE        float64 `json:"sde"`
	EBITDA     float64 `json:"ebitda"`
	NetIncome  float64 `json:"net_income"`
	FiscalYear int     `json:"fiscal_year,omitempty"`
}

// ApproachValue is one valuation approach's indicated value and its weight in
// the reconciliation.
type ApproachValue struct {
	Value  float64 `json:"value"`
	Weight float64 `json:"weight"`
}

type Approaches struct {
	Asset  ApproachValue `json:"asset"`
	Income ApproachValue `json:"income"`
	Market ApproachValue `json:"market"`
}

type Multiples struct {
	SDE     float64 `json:"sde_multiple"`
	Revenue float64 `json:"revenue_multiple"`
	EBITDA  float64 `json:"ebitda_multiple"`
}

type BalanceSheet struct {
	TotalAssets      float64 `json:"total_assets"`
	TotalLiabilities float64 `json:"total_liabilities"`
	Equity           float64 `json:"equity"`
	Cash             float64 `json:"cash"`
}

type CompanyFacts struct {
	Name            string `json:"name"`
	Industry        string `json:"industry,omitempty"`
	NAICS           string `json:"naics,omitempty"`
	State           string `json:"state,omitempty"`
	YearsInBusiness int    `json:"years_in_business,omitempty"`
	Employees       int    `json:"employees,omitempty"`
	Website         string `json:"website,omitempty"`
}
