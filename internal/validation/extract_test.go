package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractCurrency(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []float64
	}{
		{name: "full form", text: "a fair market value of $5,250,000.", want: []float64{5_250_000}},
		{name: "no separators with cents", text: "paid $5250000.50 in total", want: []float64{5_250_000.50}},
		{name: "shorthand M", text: "roughly $1.2M of revenue", want: []float64{1_200_000}},
		{name: "shorthand words", text: "between $1.2 million and $1.5 billion", want: []float64{1_200_000, 1_500_000_000}},
		{name: "thousands", text: "owner salary of $85K", want: []float64{85_000}},
		{name: "word starting with m is not a suffix", text: "$5 more", want: []float64{5}},
		{name: "no currency", text: "a 3.5x multiple", want: nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ExtractCurrency(tc.text)
			if tc.want == nil {
				assert.Empty(t, got)
				return
			}
			var values []float64
			for _, m := range got {
				assert.Equal(t, ValueCurrency, m.Kind)
				values = append(values, m.Value)
			}
			assert.InDeltaSlice(t, tc.want, values, 0.001)
		})
	}
}

func TestExtractMultipliers(t *testing.T) {
	got := ExtractMultipliers("An SDE multiple of 2.5x, or 2.5 times earnings, versus 3× for peers.")
	require.Len(t, got, 3)
	assert.Equal(t, 2.5, got[0].Value)
	assert.Equal(t, "2.5x", got[0].Raw)
	assert.Equal(t, 2.5, got[1].Value)
	assert.Equal(t, 3.0, got[2].Value)
}

func TestCompareDropsImplausibleAmounts(t *testing.T) {
	mentions := ExtractCurrency("concluded at $5,250,000 with $12,000 of deposits and $1,500,000 of debt")
	got := Compare(mentions, 5_250_000, 0.01, 0.1, 10)
	require.Len(t, got, 2, "$12,000 is below 0.1x and is ignored")
	assert.True(t, got[0].Matches)
	assert.False(t, got[1].Matches)
	assert.InDelta(t, 0.714, got[1].Deviation, 0.001)
}

func TestCompareZeroExpected(t *testing.T) {
	assert.Nil(t, Compare(ExtractCurrency("$100"), 0, 0.01, 0.1, 10))
}
