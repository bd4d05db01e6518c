package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("WORKFLOW_WORKERS", "")
	t.Setenv("PASS_TIMEOUT", "")

	cfg, err := Load()
	assert.True(t, errors.Is(err, ErrNoDatabase))
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, 2, cfg.WorkflowWorkers)
	assert.Equal(t, 6*time.Minute, cfg.PassTimeout)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/valuator")
	t.Setenv("WORKFLOW_WORKERS", "4")
	t.Setenv("PASS_TIMEOUT", "90")
	t.Setenv("GENERATOR_TIMEOUT", "2m")
	t.Setenv("MIN_QUALITY_SCORE", "80")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.WorkflowWorkers)
	assert.Equal(t, 90*time.Second, cfg.PassTimeout)
	assert.Equal(t, 2*time.Minute, cfg.GeneratorTimeout)
	assert.Equal(t, 80.0, cfg.MinQualityScore)
}

func TestGetenvDuration_Invalid(t *testing.T) {
	t.Setenv("PASS_TIMEOUT", "soon")
	assert.Equal(t, time.Minute, getenvDuration("PASS_TIMEOUT", time.Minute))
}
