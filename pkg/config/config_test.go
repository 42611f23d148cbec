package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schooltech/scheduler-core/pkg/config"
)

func TestLoadFallsBackToDefaultsWhenConfigAbsent(t *testing.T) {
	cfg, err := config.Load(t.TempDir())

	require.NoError(t, err)
	assert.EqualValues(t, 8, cfg.Schedule.PeriodsPerDay)
	assert.EqualValues(t, 5, cfg.Schedule.DaysPerWeek)
	assert.Equal(t, []uint8{3, 4}, cfg.Schedule.LunchPeriods)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.True(t, cfg.Metrics.Enabled)
}
