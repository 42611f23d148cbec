package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schooltech/scheduler-core/internal/domain"
	"github.com/schooltech/scheduler-core/internal/validator"
)

func TestParseFormatsExpandsAll(t *testing.T) {
	assert.ElementsMatch(t, []string{"json", "markdown", "text"}, parseFormats("all"))
}

func TestParseFormatsAcceptsAliasesAndDropsUnknown(t *testing.T) {
	assert.Equal(t, []string{"markdown", "text"}, parseFormats("md,bogus,txt"))
}

func TestLoadBaselineScoreMissingFile(t *testing.T) {
	_, ok := loadBaselineScore(filepath.Join(t.TempDir(), "schedule.json"))
	assert.False(t, ok)
}

func TestLoadBaselineScoreReadsStoredMetadata(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "schedule.json")

	schedule := &domain.Schedule{Metadata: domain.ScheduleMetadata{Score: 87.5}}
	data, err := json.Marshal(reportEnvelope{Schedule: schedule, Report: validator.Report{TotalScore: 87.5}})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	score, ok := loadBaselineScore(path)
	require.True(t, ok)
	assert.Equal(t, 87.5, score)
}

func TestLoadScheduleRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "schedule.json")

	tid := domain.TeacherId("t1")
	original := &domain.Schedule{
		Sections: []*domain.Section{{Id: "math-1", CourseId: "math", TeacherId: &tid}},
	}
	data, err := json.Marshal(reportEnvelope{Schedule: original, Report: validator.Report{}})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	loaded, err := loadSchedule(path)
	require.NoError(t, err)
	require.Len(t, loaded.Sections, 1)
	assert.Equal(t, domain.CourseId("math"), loaded.Sections[0].CourseId)
}

func TestLoadScheduleRejectsMissingFile(t *testing.T) {
	_, err := loadSchedule(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
