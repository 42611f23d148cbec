package pipeline_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schooltech/scheduler-core/internal/domain"
	"github.com/schooltech/scheduler-core/internal/pipeline"
	"github.com/schooltech/scheduler-core/internal/pipeline/studentassigner/solver/memsolver"
)

func smallInput() domain.ScheduleInput {
	return domain.ScheduleInput{
		Students: []domain.Student{
			{Id: "s1", Name: "A", Grade: 10, RequiredCourses: []domain.CourseId{"math"}},
			{Id: "s2", Name: "B", Grade: 10, RequiredCourses: []domain.CourseId{"math"}},
		},
		Teachers: []domain.Teacher{
			{Id: "t1", Name: "Teacher", Subjects: []domain.CourseId{"math"}, MaxSections: 2},
		},
		Courses: []domain.Course{
			{Id: "math", Name: "Math", MaxStudents: 30, Sections: 1},
		},
		Rooms: []domain.Room{
			{Id: "r1", Name: "Room", Capacity: 30},
		},
		Config: domain.DefaultScheduleConfig(),
	}
}

type recordingObserver struct {
	phases []string
}

func (r *recordingObserver) ObservePhase(phase string, _ time.Duration) {
	r.phases = append(r.phases, phase)
}

func TestGenerateProducesAssignedSchedule(t *testing.T) {
	schedule, err := pipeline.Generate(context.Background(), memsolver.New(), smallInput(), nil)

	require.NoError(t, err)
	require.Len(t, schedule.Sections, 1)
	assert.Equal(t, domain.AlgorithmVersion, schedule.Metadata.AlgorithmVersion)
	assert.False(t, schedule.Metadata.GeneratedAt.IsZero())
	assert.ElementsMatch(t, []domain.StudentId{"s1", "s2"}, schedule.Sections[0].EnrolledStudents)
	assert.Empty(t, schedule.Unassigned)
}

func TestGenerateAssignsTeacherRoomAndPeriod(t *testing.T) {
	schedule, err := pipeline.Generate(context.Background(), memsolver.New(), smallInput(), nil)

	require.NoError(t, err)
	section := schedule.Sections[0]
	require.NotNil(t, section.TeacherId)
	assert.Equal(t, domain.TeacherId("t1"), *section.TeacherId)
	require.NotNil(t, section.RoomId)
	assert.NotEmpty(t, section.Periods)
}

func richerInput() domain.ScheduleInput {
	return domain.ScheduleInput{
		Students: []domain.Student{
			{Id: "s1", Name: "A", Grade: 10, RequiredCourses: []domain.CourseId{"math", "eng"}, ElectivePreferences: []domain.CourseId{"art"}},
			{Id: "s2", Name: "B", Grade: 10, RequiredCourses: []domain.CourseId{"math", "eng"}, ElectivePreferences: []domain.CourseId{"art"}},
			{Id: "s3", Name: "C", Grade: 11, RequiredCourses: []domain.CourseId{"math"}, ElectivePreferences: []domain.CourseId{"art"}},
			{Id: "s4", Name: "D", Grade: 11, RequiredCourses: []domain.CourseId{"eng"}},
		},
		Teachers: []domain.Teacher{
			{Id: "t1", Name: "T1", Subjects: []domain.CourseId{"math"}, MaxSections: 2},
			{Id: "t2", Name: "T2", Subjects: []domain.CourseId{"eng", "art"}, MaxSections: 3},
		},
		Courses: []domain.Course{
			{Id: "math", Name: "Math", MaxStudents: 30, Sections: 2},
			{Id: "eng", Name: "English", MaxStudents: 30, Sections: 1},
			{Id: "art", Name: "Art", MaxStudents: 20, Sections: 1},
		},
		Rooms: []domain.Room{
			{Id: "r1", Name: "Room 1", Capacity: 30},
			{Id: "r2", Name: "Room 2", Capacity: 30},
			{Id: "r3", Name: "Art Room", Capacity: 20},
		},
		Config: domain.DefaultScheduleConfig(),
	}
}

func TestGenerateIsDeterministicAcrossRuns(t *testing.T) {
	first, err := pipeline.Generate(context.Background(), memsolver.New(), richerInput(), nil)
	require.NoError(t, err)
	second, err := pipeline.Generate(context.Background(), memsolver.New(), richerInput(), nil)
	require.NoError(t, err)

	require.Len(t, second.Sections, len(first.Sections))
	for i := range first.Sections {
		a, b := first.Sections[i], second.Sections[i]
		assert.Equal(t, a.Id, b.Id)
		assert.Equal(t, a.TeacherId, b.TeacherId)
		assert.Equal(t, a.RoomId, b.RoomId)
		assert.Equal(t, a.Periods, b.Periods)
		assert.Equal(t, a.EnrolledStudents, b.EnrolledStudents)
	}
	assert.Equal(t, first.Unassigned, second.Unassigned)
}

func TestGenerateEnrollsEveryoneWhenFeasible(t *testing.T) {
	schedule, err := pipeline.Generate(context.Background(), memsolver.New(), richerInput(), nil)

	require.NoError(t, err)
	assert.Empty(t, schedule.Unassigned)
	total := 0
	for _, sec := range schedule.Sections {
		total += sec.Enrollment()
	}
	assert.Equal(t, 9, total, "all six required pairs plus the three art electives should land in sections")
}

func TestGenerateReportsEveryPhaseToObserver(t *testing.T) {
	observer := &recordingObserver{}

	_, err := pipeline.Generate(context.Background(), memsolver.New(), smallInput(), observer)

	require.NoError(t, err)
	assert.Equal(t, []string{
		"section_build",
		"time_assign",
		"room_assign",
		"student_assign",
		"balance_optimize",
	}, observer.phases)
}
