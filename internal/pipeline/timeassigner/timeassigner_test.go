package timeassigner_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schooltech/scheduler-core/internal/domain"
	"github.com/schooltech/scheduler-core/internal/pipeline/timeassigner"
)

func defaultConfig() domain.ScheduleConfig {
	return domain.DefaultScheduleConfig()
}

func TestAssignGivesDifferentSectionsDifferentSlots(t *testing.T) {
	courses := []domain.Course{
		{Id: "math", Name: "Math", MaxStudents: 30, Sections: 3},
	}
	teachers := []domain.Teacher{
		{Id: "t1", Subjects: []domain.CourseId{"math"}, MaxSections: 3},
	}
	sections := []*domain.Section{
		domain.NewSection("math-1", "math", 30),
		domain.NewSection("math-2", "math", 30),
		domain.NewSection("math-3", "math", 30),
	}
	tid := domain.TeacherId("t1")
	for _, s := range sections {
		s.TeacherId = &tid
	}

	timeassigner.Assign(sections, courses, teachers, defaultConfig())

	slots := map[uint8]struct{}{}
	for _, s := range sections {
		require.NotEmpty(t, s.Periods)
		slots[s.Periods[0].Slot] = struct{}{}
	}
	assert.Len(t, slots, 3, "every section of the same course should land on a distinct slot when capacity allows")
}

func TestAssignPopulatesEveryDay(t *testing.T) {
	courses := []domain.Course{{Id: "math", MaxStudents: 30, Sections: 1}}
	sections := []*domain.Section{domain.NewSection("math-1", "math", 30)}

	config := defaultConfig()
	timeassigner.Assign(sections, courses, nil, config)

	require.Len(t, sections[0].Periods, int(config.DaysPerWeek))
	slot := sections[0].Periods[0].Slot
	for _, p := range sections[0].Periods {
		assert.Equal(t, slot, p.Slot)
	}
}

func TestAssignAvoidsTeacherDoubleBooking(t *testing.T) {
	courses := []domain.Course{
		{Id: "math", MaxStudents: 30, Sections: 1},
		{Id: "science", MaxStudents: 30, Sections: 1},
	}
	teachers := []domain.Teacher{
		{Id: "t1", Subjects: []domain.CourseId{"math", "science"}, MaxSections: 2},
	}
	mathSection := domain.NewSection("math-1", "math", 30)
	scienceSection := domain.NewSection("science-1", "science", 30)
	tid := domain.TeacherId("t1")
	mathSection.TeacherId = &tid
	scienceSection.TeacherId = &tid
	sections := []*domain.Section{mathSection, scienceSection}

	timeassigner.Assign(sections, courses, teachers, defaultConfig())

	assert.NotEqual(t, mathSection.Periods[0].Slot, scienceSection.Periods[0].Slot)
}

func TestAssignGradeRestrictedCoursesAvoidConflicts(t *testing.T) {
	courses := []domain.Course{
		{Id: "algebra", MaxStudents: 30, Sections: 1, GradeRestrictions: []int{9}},
		{Id: "geometry", MaxStudents: 30, Sections: 1, GradeRestrictions: []int{9}},
	}
	sections := []*domain.Section{
		domain.NewSection("algebra-1", "algebra", 30),
		domain.NewSection("geometry-1", "geometry", 30),
	}

	timeassigner.Assign(sections, courses, nil, defaultConfig())

	assert.NotEqual(t, sections[0].Periods[0].Slot, sections[1].Periods[0].Slot,
		"sections sharing a grade restriction should prefer distinct slots")
}

func TestAssignIsDeterministicAcrossRuns(t *testing.T) {
	buildInput := func() ([]*domain.Section, []domain.Course, []domain.Teacher) {
		courses := []domain.Course{
			{Id: "math", MaxStudents: 30, Sections: 2, GradeRestrictions: []int{9, 10}},
			{Id: "art", MaxStudents: 25, Sections: 2},
		}
		teachers := []domain.Teacher{
			{Id: "t1", Subjects: []domain.CourseId{"math"}, MaxSections: 2},
			{Id: "t2", Subjects: []domain.CourseId{"art"}, MaxSections: 2},
		}
		tid1, tid2 := domain.TeacherId("t1"), domain.TeacherId("t2")
		sections := []*domain.Section{
			domain.NewSection("math-1", "math", 30),
			domain.NewSection("math-2", "math", 30),
			domain.NewSection("art-1", "art", 25),
			domain.NewSection("art-2", "art", 25),
		}
		sections[0].TeacherId = &tid1
		sections[1].TeacherId = &tid1
		sections[2].TeacherId = &tid2
		sections[3].TeacherId = &tid2
		return sections, courses, teachers
	}

	sectionsA, coursesA, teachersA := buildInput()
	timeassigner.Assign(sectionsA, coursesA, teachersA, defaultConfig())

	sectionsB, coursesB, teachersB := buildInput()
	timeassigner.Assign(sectionsB, coursesB, teachersB, defaultConfig())

	for i := range sectionsA {
		assert.Equal(t, sectionsA[i].Periods[0].Slot, sectionsB[i].Periods[0].Slot)
	}
}
