package passes

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"valuator/internal/domain"
)

func TestLookup_WebSearchAllowList(t *testing.T) {
	var allowed []int
	for n := 1; n <= domain.NumericPassCount; n++ {
		if Lookup(domain.NumericPass(n)).WebSearch {
			allowed = append(allowed, n)
		}
	}
	assert.Equal(t, []int{4, 6, 9}, allowed)
	for _, id := range domain.NarrativeIDs {
		assert.False(t, Lookup(domain.NarrativePass(id)).WebSearch, id)
	}
}

func TestLookup_DependenciesPointBackwards(t *testing.T) {
	for n := 1; n <= domain.NumericPassCount; n++ {
		for _, dep := range Lookup(domain.NumericPass(n)).Requires {
			assert.True(t, dep.IsNumeric())
			assert.Less(t, dep.Number(), n)
		}
	}
}

func TestAll(t *testing.T) {
	all := All()
	assert.Len(t, all, 24)
	assert.Equal(t, "1", all[0].Key())
	assert.Equal(t, "narrative:executive_summary", all[len(all)-1].Key())
}

func TestDependents(t *testing.T) {
	keys := func(sels []domain.PassSelector) []string {
		out := make([]string, len(sels))
		for i, s := range sels {
			out[i] = s.Key()
		}
		return out
	}
	assert.Equal(t, []string{"6", "7"}, keys(Dependents(domain.NumericPass(3))))
	assert.Equal(t, []string{"narrative:executive_summary"}, keys(Dependents(domain.NarrativePass(domain.NarrativeValuationSynthesis))))
	assert.Empty(t, Dependents(domain.NumericPass(13)))
}
