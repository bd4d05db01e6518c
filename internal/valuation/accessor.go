// Package valuation exposes the canonical valuation snapshot through one
// read-only view. Narrative grounding and every validator read numbers here.
package valuation

import (
	"fmt"
	"math"
	"net/url"
	"strings"

	"github.com/dustin/go-humanize"
	"golang.org/x/net/publicsuffix"

	"valuator/internal/domain"
)

// Accessor is a total view over a ValuationData: no method panics or errors,
// missing or non-finite values read as zero.
type Accessor struct {
	data domain.ValuationData
	ok   bool
}

// New wraps data. A nil snapshot yields an accessor whose every value is zero.
func New(data *domain.ValuationData) *Accessor {
	if data == nil {
		return &Accessor{}
	}
	return &Accessor{data: *data, ok: true}
}

// HasData reports whether a snapshot was supplied at all.
func (a *Accessor) HasData() bool { return a != nil && a.ok }

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func (a *Accessor) snapshot() domain.ValuationData {
	if a == nil {
		return domain.ValuationData{}
	}
	return a.data
}

func (a *Accessor) FinalValue() float64 { return finite(a.snapshot().FinalValue) }

func (a *Accessor) ValueRange() (low, high float64) {
	d := a.snapshot()
	return finite(d.ValueRangeLow), finite(d.ValueRangeHigh)
}

// ApproachValues are the three indicated values.
type ApproachValues struct {
	Asset  float64
	Income float64
	Market float64
}

func (a *Accessor) ApproachValues() ApproachValues {
	ap := a.snapshot().Approaches
	return ApproachValues{Asset: finite(ap.Asset.Value), Income: finite(ap.Income.Value), Market: finite(ap.Market.Value)}
}

func (a *Accessor) ApproachWeights() ApproachValues {
	ap := a.snapshot().Approaches
	return ApproachValues{Asset: finite(ap.Asset.Weight), Income: finite(ap.Income.Weight), Market: finite(ap.Market.Weight)}
}

func (a *Accessor) WeightSum() float64 {
	w := a.ApproachWeights()
	return w.Asset + w.Income + w.Market
}

// MarketMultiple is the SDE multiple applied in the market approach.
func (a *Accessor) MarketMultiple() float64 { return finite(a.snapshot().Multiples.SDE) }

func (a *Accessor) RevenueMultiple() float64  { return finite(a.snapshot().Multiples.Revenue) }
func (a *Accessor) EBITDAMultiple() float64   { return finite(a.snapshot().Multiples.EBITDA) }
func (a *Accessor) CapRate() float64          { return finite(a.snapshot().CapitalizationRate) }
func (a *Accessor) Revenue() float64          { return finite(a.snapshot().FinancialMetrics.Revenue) }
func (a *Accessor) SDE() float64              { return finite(a.snapshot().FinancialMetrics.SDE) }
func (a *Accessor) EBITDA() float64           { return finite(a.snapshot().FinancialMetrics.EBITDA) }
func (a *Accessor) NetIncome() float64        { return finite(a.snapshot().FinancialMetrics.NetIncome) }
func (a *Accessor) TotalAssets() float64      { return finite(a.snapshot().BalanceSheet.TotalAssets) }
func (a *Accessor) TotalLiabilities() float64 { return finite(a.snapshot().BalanceSheet.TotalLiabilities) }
func (a *Accessor) RiskScore() float64        { return finite(a.snapshot().RiskScore) }
func (a *Accessor) DataQualityScore() float64 { return finite(a.snapshot().DataQualityScore) }

// Facts is CompanyFacts plus derived fields.
type Facts struct {
	domain.CompanyFacts
	// Domain is the registrable domain (eTLD+1) of Website, if any.
	Domain string
}

func (a *Accessor) CompanyFacts() Facts {
	c := a.snapshot().Company
	return Facts{CompanyFacts: c, Domain: registrableDomain(c.Website)}
}

func registrableDomain(website string) string {
	website = strings.TrimSpace(website)
	if website == "" {
		return ""
	}
	if !strings.Contains(website, "://") {
		website = "https://" + website
	}
	u, err := url.Parse(website)
	if err != nil {
		return ""
	}
	host := strings.ToLower(u.Hostname())
	registrable, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return host
	}
	return registrable
}

// FormatCurrency renders whole dollars with thousands separators, e.g. $5,250,000.
func FormatCurrency(v float64) string {
	v = finite(v)
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	v = math.Round(v)
	if v >= math.MaxInt64 {
		return sign + "$" + humanize.Commaf(v)
	}
	return sign + "$" + humanize.Comma(int64(v))
}

// FormatMultiple renders a multiplier such as 2.75x.
func FormatMultiple(v float64) string {
	return fmt.Sprintf("%.2fx", finite(v))
}

// FormatPercent renders a ratio (0.25) as a percentage (25.0%).
func FormatPercent(v float64) string {
	return fmt.Sprintf("%.1f%%", finite(v)*100)
}
