// Package loader reads the four input JSON files that, together with a
// caller-supplied grid config, make up a domain.ScheduleInput, validating both
// the shape of each record (struct tags) and the cross-references
// between them before the pipeline ever sees the data.
package loader

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"

	"github.com/schooltech/scheduler-core/internal/domain"
	pkgerrors "github.com/schooltech/scheduler-core/pkg/errors"
)

const (
	studentsFile = "students.json"
	teachersFile = "teachers.json"
	coursesFile  = "courses.json"
	roomsFile    = "rooms.json"
)

// Loader reads and validates scheduling input from a directory.
type Loader struct {
	validate *validator.Validate
}

// New returns a Loader using its own validator.Validate instance.
func New() *Loader {
	return &Loader{validate: validator.New()}
}

// Load reads students.json, teachers.json, courses.json, and rooms.json
// from dir, applying the given schedule config (the caller is expected
// to have already loaded it, e.g. via pkg/config). It returns the
// populated ScheduleInput plus any non-fatal warnings (grade ranges
// outside 9-12), or a *pkg/errors.Error of kind INPUT_ERROR /
// DATA_VALIDATION_ERROR on the hard cases.
func (l *Loader) Load(dir string, scheduleConfig domain.ScheduleConfig) (domain.ScheduleInput, []string, error) {
	var students []domain.Student
	if err := l.readJSON(dir, studentsFile, &students); err != nil {
		return domain.ScheduleInput{}, nil, err
	}
	var teachers []domain.Teacher
	if err := l.readJSON(dir, teachersFile, &teachers); err != nil {
		return domain.ScheduleInput{}, nil, err
	}
	var courses []domain.Course
	if err := l.readJSON(dir, coursesFile, &courses); err != nil {
		return domain.ScheduleInput{}, nil, err
	}
	var rooms []domain.Room
	if err := l.readJSON(dir, roomsFile, &rooms); err != nil {
		return domain.ScheduleInput{}, nil, err
	}

	if err := l.validateRecords(students, teachers, courses, rooms); err != nil {
		return domain.ScheduleInput{}, nil, err
	}

	warnings, err := crossValidate(students, teachers, courses, rooms)
	if err != nil {
		return domain.ScheduleInput{}, nil, err
	}

	return domain.ScheduleInput{
		Students: students,
		Teachers: teachers,
		Courses:  courses,
		Rooms:    rooms,
		Config:   scheduleConfig,
	}, warnings, nil
}

func (l *Loader) readJSON(dir, filename string, out interface{}) error {
	path := filepath.Join(dir, filename)
	data, err := os.ReadFile(path)
	if err != nil {
		return pkgerrors.InputError(fmt.Sprintf("read %s", filename), err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return pkgerrors.InputError(fmt.Sprintf("parse %s", filename), err)
	}
	return nil
}

func (l *Loader) validateRecords(students []domain.Student, teachers []domain.Teacher, courses []domain.Course, rooms []domain.Room) error {
	for i := range students {
		if err := l.validate.Struct(&students[i]); err != nil {
			return pkgerrors.DataValidationError(fmt.Sprintf("student %q", students[i].Id), err)
		}
	}
	for i := range teachers {
		if err := l.validate.Struct(&teachers[i]); err != nil {
			return pkgerrors.DataValidationError(fmt.Sprintf("teacher %q", teachers[i].Id), err)
		}
	}
	for i := range courses {
		if err := l.validate.Struct(&courses[i]); err != nil {
			return pkgerrors.DataValidationError(fmt.Sprintf("course %q", courses[i].Id), err)
		}
	}
	for i := range rooms {
		if err := l.validate.Struct(&rooms[i]); err != nil {
			return pkgerrors.DataValidationError(fmt.Sprintf("room %q", rooms[i].Id), err)
		}
	}
	return nil
}

// crossValidate checks invariants that span multiple input files: unique
// ids per kind, dangling course references, and at-least-one-qualified-
// teacher per course. Grade values outside 9-12 are downgraded to a
// warning rather than a hard failure.
func crossValidate(students []domain.Student, teachers []domain.Teacher, courses []domain.Course, rooms []domain.Room) ([]string, error) {
	var warnings []string

	courseIds := make(map[domain.CourseId]struct{}, len(courses))
	if err := requireUniqueCourseIds(courses, courseIds); err != nil {
		return nil, err
	}
	if err := requireUniqueIds("student", studentIds(students)); err != nil {
		return nil, err
	}
	if err := requireUniqueIds("teacher", teacherIds(teachers)); err != nil {
		return nil, err
	}
	if err := requireUniqueIds("room", roomIds(rooms)); err != nil {
		return nil, err
	}

	for _, student := range students {
		for _, c := range student.AllRequestedCourses() {
			if _, ok := courseIds[c]; !ok {
				return nil, pkgerrors.DataValidationError(
					fmt.Sprintf("student %q references unknown course %q", student.Id, c), nil)
			}
		}
		if student.Grade < 9 || student.Grade > 12 {
			warnings = append(warnings, fmt.Sprintf("student %q has grade %d outside the typical 9-12 range", student.Id, student.Grade))
		}
	}

	qualifiedCourses := make(map[domain.CourseId]struct{})
	for _, teacher := range teachers {
		for _, subject := range teacher.Subjects {
			qualifiedCourses[subject] = struct{}{}
		}
	}
	for _, course := range courses {
		if _, ok := qualifiedCourses[course.Id]; !ok {
			return nil, pkgerrors.DataValidationError(
				fmt.Sprintf("course %q has no qualified teacher", course.Id), nil)
		}
	}

	return warnings, nil
}

func requireUniqueCourseIds(courses []domain.Course, seen map[domain.CourseId]struct{}) error {
	for _, c := range courses {
		if _, ok := seen[c.Id]; ok {
			return pkgerrors.DataValidationError(fmt.Sprintf("duplicate course id %q", c.Id), nil)
		}
		seen[c.Id] = struct{}{}
	}
	return nil
}

func requireUniqueIds(kind string, ids []string) error {
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			return pkgerrors.DataValidationError(fmt.Sprintf("duplicate %s id %q", kind, id), nil)
		}
		seen[id] = struct{}{}
	}
	return nil
}

func studentIds(students []domain.Student) []string {
	out := make([]string, len(students))
	for i, s := range students {
		out[i] = string(s.Id)
	}
	return out
}

func teacherIds(teachers []domain.Teacher) []string {
	out := make([]string, len(teachers))
	for i, t := range teachers {
		out[i] = string(t.Id)
	}
	return out
}

func roomIds(rooms []domain.Room) []string {
	out := make([]string, len(rooms))
	for i, r := range rooms {
		out[i] = string(r.Id)
	}
	return out
}
