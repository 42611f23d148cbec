package reporter_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schooltech/scheduler-core/internal/domain"
	"github.com/schooltech/scheduler-core/internal/reporter"
	"github.com/schooltech/scheduler-core/internal/validator"
)

func sampleSchedule() *domain.Schedule {
	tid := domain.TeacherId("t1")
	section := &domain.Section{
		Id:               "math-1",
		CourseId:         "math",
		TeacherId:        &tid,
		Periods:          []domain.Period{domain.NewPeriod(0, 2), domain.NewPeriod(1, 2)},
		EnrolledStudents: []domain.StudentId{"s1"},
		Capacity:         30,
	}
	return &domain.Schedule{Sections: []*domain.Section{section}}
}

func TestJSONRoundTrips(t *testing.T) {
	schedule := sampleSchedule()
	report := validator.Validate(schedule, domain.ScheduleInput{})

	data, err := reporter.JSON(schedule, report)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Contains(t, decoded, "schedule")
	assert.Contains(t, decoded, "validation")
}

func TestBuildStudentScheduleOrdersByDayThenSlot(t *testing.T) {
	schedule := sampleSchedule()

	view := reporter.BuildStudentSchedule(schedule, "s1")

	require.Len(t, view.Entries, 2)
	assert.Equal(t, uint8(0), view.Entries[0].Period.Day)
	assert.Equal(t, uint8(1), view.Entries[1].Period.Day)
}

func TestMarkdownContainsCourseAndSection(t *testing.T) {
	schedule := sampleSchedule()
	view := reporter.BuildStudentSchedule(schedule, "s1")

	md := reporter.Markdown("Schedule for s1", view)

	assert.Contains(t, md, "math")
	assert.Contains(t, md, "math-1")
}

func TestCSVIncludesEveryEnrollment(t *testing.T) {
	schedule := sampleSchedule()

	data, err := reporter.CSV(schedule)

	require.NoError(t, err)
	assert.Contains(t, string(data), "s1")
	assert.Contains(t, string(data), "math-1")
}

func TestPDFProducesNonEmptyOutput(t *testing.T) {
	schedule := sampleSchedule()
	view := reporter.BuildStudentSchedule(schedule, "s1")

	data, err := reporter.PDF("Schedule for s1", view)

	require.NoError(t, err)
	assert.NotEmpty(t, data)
}
