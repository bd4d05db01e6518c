package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRules(t *testing.T) {
	r := DefaultRules()
	require.NotEmpty(t, r.Consistency.Metrics)
	assert.Equal(t, 0.01, r.Consistency.Metrics[0].Tolerance)
	assert.Len(t, r.QualityGate.Weights, 4)
	assert.True(t, r.Consistency.Metrics[0].MatchesSection("The Fair Market Value is"))
	assert.False(t, r.Consistency.Metrics[0].MatchesSection("unconcluded"))
}

func TestBandFor(t *testing.T) {
	b := DefaultRules().Business
	assert.Equal(t, "Building Equipment Contractors", b.BandFor("238220").Name)
	assert.Equal(t, "default", b.BandFor("999999").Name)
	assert.Equal(t, "default", b.BandFor("").Name)
}

func TestLoadRules_Overlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("business:\n  weight_tolerance: 0.02\n"), 0o600))

	r, err := LoadRules(path)
	require.NoError(t, err)
	assert.Equal(t, 0.02, r.Business.WeightTolerance)
	assert.Equal(t, 1.5, r.Business.MultipleErrorFactor, "unset fields keep defaults")
	assert.NotEmpty(t, r.Completeness.RequiredSections)
}

func TestLoadRules_RejectsBadWeights(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("quality_gate:\n  weights:\n    consistency: 0.5\n"), 0o600))
	_, err := LoadRules(path)
	assert.ErrorContains(t, err, "weights sum")
}

func TestLoadRules_EmptyPathIsPrivateCopy(t *testing.T) {
	want := DefaultRules().QualityGate.MinScore

	r, err := LoadRules("")
	require.NoError(t, err)
	assert.NotSame(t, DefaultRules(), r)
	assert.Equal(t, want, r.QualityGate.MinScore)
	assert.True(t, r.Consistency.Metrics[0].MatchesSection("final value"))

	r.QualityGate.MinScore = 95
	assert.Equal(t, want, DefaultRules().QualityGate.MinScore)
}
