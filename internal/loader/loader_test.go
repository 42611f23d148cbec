package loader_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schooltech/scheduler-core/internal/domain"
	"github.com/schooltech/scheduler-core/internal/loader"
)

func writeJSON(t *testing.T, dir, name string, v interface{}) {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0o644))
}

func writeValidFixture(t *testing.T, dir string) {
	t.Helper()
	writeJSON(t, dir, "students.json", []domain.Student{
		{Id: "s1", Name: "Student One", Grade: 10, RequiredCourses: []domain.CourseId{"math"}},
	})
	writeJSON(t, dir, "teachers.json", []domain.Teacher{
		{Id: "t1", Name: "Teacher One", Subjects: []domain.CourseId{"math"}, MaxSections: 2},
	})
	writeJSON(t, dir, "courses.json", []domain.Course{
		{Id: "math", Name: "Math", MaxStudents: 30, Sections: 1},
	})
	writeJSON(t, dir, "rooms.json", []domain.Room{
		{Id: "r1", Name: "Room One", Capacity: 30},
	})
}

func TestLoadValidFixture(t *testing.T) {
	dir := t.TempDir()
	writeValidFixture(t, dir)

	input, warnings, err := loader.New().Load(dir, domain.DefaultScheduleConfig())

	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Len(t, input.Students, 1)
	assert.Len(t, input.Teachers, 1)
	assert.Len(t, input.Courses, 1)
	assert.Len(t, input.Rooms, 1)
}

func TestLoadRejectsDanglingCourseReference(t *testing.T) {
	dir := t.TempDir()
	writeJSON(t, dir, "students.json", []domain.Student{
		{Id: "s1", Name: "Student One", Grade: 10, RequiredCourses: []domain.CourseId{"nonexistent"}},
	})
	writeJSON(t, dir, "teachers.json", []domain.Teacher{})
	writeJSON(t, dir, "courses.json", []domain.Course{
		{Id: "math", Name: "Math", MaxStudents: 30, Sections: 1},
	})
	writeJSON(t, dir, "rooms.json", []domain.Room{})

	_, _, err := loader.New().Load(dir, domain.DefaultScheduleConfig())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown course")
}

func TestLoadRejectsDuplicateIds(t *testing.T) {
	dir := t.TempDir()
	writeJSON(t, dir, "students.json", []domain.Student{
		{Id: "s1", Name: "A", Grade: 10},
		{Id: "s1", Name: "B", Grade: 11},
	})
	writeJSON(t, dir, "teachers.json", []domain.Teacher{})
	writeJSON(t, dir, "courses.json", []domain.Course{})
	writeJSON(t, dir, "rooms.json", []domain.Room{})

	_, _, err := loader.New().Load(dir, domain.DefaultScheduleConfig())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate student id")
}

func TestLoadWarnsOnOutOfRangeGrade(t *testing.T) {
	dir := t.TempDir()
	writeJSON(t, dir, "students.json", []domain.Student{
		{Id: "s1", Name: "A", Grade: 7, RequiredCourses: []domain.CourseId{"art"}},
	})
	writeJSON(t, dir, "teachers.json", []domain.Teacher{
		{Id: "t1", Name: "Teacher One", Subjects: []domain.CourseId{"art"}, MaxSections: 2},
	})
	writeJSON(t, dir, "courses.json", []domain.Course{
		{Id: "art", Name: "Art", MaxStudents: 20, Sections: 1},
	})
	writeJSON(t, dir, "rooms.json", []domain.Room{})

	_, warnings, err := loader.New().Load(dir, domain.DefaultScheduleConfig())

	require.NoError(t, err)
	assert.Len(t, warnings, 1)
}

func TestLoadFailsOnCourseWithNoQualifiedTeacher(t *testing.T) {
	dir := t.TempDir()
	writeJSON(t, dir, "students.json", []domain.Student{
		{Id: "s1", Name: "A", Grade: 10, RequiredCourses: []domain.CourseId{"art"}},
	})
	writeJSON(t, dir, "teachers.json", []domain.Teacher{})
	writeJSON(t, dir, "courses.json", []domain.Course{
		{Id: "art", Name: "Art", MaxStudents: 20, Sections: 1},
	})
	writeJSON(t, dir, "rooms.json", []domain.Room{})

	_, _, err := loader.New().Load(dir, domain.DefaultScheduleConfig())

	require.Error(t, err)
}

func TestLoadReturnsInputErrorOnMissingFile(t *testing.T) {
	dir := t.TempDir()

	_, _, err := loader.New().Load(dir, domain.DefaultScheduleConfig())

	require.Error(t, err)
}
