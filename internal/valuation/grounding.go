package valuation

// AuthoritativeValues is the grounding block injected into narrative passes so
// generated text quotes real numbers. Formatted mirrors the numeric fields in
// the exact form the validators expect to find in text.
type AuthoritativeValues struct {
	FinalValue         float64           `json:"final_value"`
	ValueRangeLow      float64           `json:"value_range_low"`
	ValueRangeHigh     float64           `json:"value_range_high"`
	AssetApproach      float64           `json:"asset_approach_value"`
	IncomeApproach     float64           `json:"income_approach_value"`
	MarketApproach     float64           `json:"market_approach_value"`
	AssetWeight        float64           `json:"asset_approach_weight"`
	IncomeWeight       float64           `json:"income_approach_weight"`
	MarketWeight       float64           `json:"market_approach_weight"`
	SDEMultiple        float64           `json:"sde_multiple"`
	CapitalizationRate float64           `json:"capitalization_rate"`
	Revenue            float64           `json:"revenue"`
	SDE                float64           `json:"sde"`
	EBITDA             float64           `json:"ebitda"`
	TotalAssets        float64           `json:"total_assets"`
	RiskScore          float64           `json:"risk_score"`
	Company            Facts             `json:"company"`
	Formatted          map[string]string `json:"formatted"`
}

// Grounding converts the snapshot into the authoritative-values context.
func (a *Accessor) Grounding() AuthoritativeValues {
	approaches := a.ApproachValues()
	weights := a.ApproachWeights()
	low, high := a.ValueRange()
	av := AuthoritativeValues{
		FinalValue:         a.FinalValue(),
		ValueRangeLow:      low,
		ValueRangeHigh:     high,
		AssetApproach:      approaches.Asset,
		IncomeApproach:     approaches.Income,
		MarketApproach:     approaches.Market,
		AssetWeight:        weights.Asset,
		IncomeWeight:       weights.Income,
		MarketWeight:       weights.Market,
		SDEMultiple:        a.MarketMultiple(),
		CapitalizationRate: a.CapRate(),
		Revenue:            a.Revenue(),
		SDE:                a.SDE(),
		EBITDA:             a.EBITDA(),
		TotalAssets:        a.TotalAssets(),
		RiskScore:          a.RiskScore(),
		Company:            a.CompanyFacts(),
	}
	av.Formatted = map[string]string{
		"final_value":            FormatCurrency(av.FinalValue),
		"value_range_low":        FormatCurrency(av.ValueRangeLow),
		"value_range_high":       FormatCurrency(av.ValueRangeHigh),
		"asset_approach_value":   FormatCurrency(av.AssetApproach),
		"income_approach_value":  FormatCurrency(av.IncomeApproach),
		"market_approach_value":  FormatCurrency(av.MarketApproach),
		"asset_approach_weight":  FormatPercent(av.AssetWeight),
		"income_approach_weight": FormatPercent(av.IncomeWeight),
		"market_approach_weight": FormatPercent(av.MarketWeight),
		"sde_multiple":           FormatMultiple(av.SDEMultiple),
		"capitalization_rate":    FormatPercent(av.CapitalizationRate),
		"revenue":                FormatCurrency(av.Revenue),
		"sde":                    FormatCurrency(av.SDE),
		"ebitda":                 FormatCurrency(av.EBITDA),
		"total_assets":           FormatCurrency(av.TotalAssets),
	}
	return av
}
