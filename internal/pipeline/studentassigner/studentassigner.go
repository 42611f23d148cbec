// Package studentassigner implements phase 4 of the scheduling pipeline:
// enrolling students into sections via binary integer optimization.
//
// The model maximizes a weighted sum of (student, section) assignment
// variables: 1000 per satisfied required course, (10-min(rank,9)) per
// satisfied elective, subject to three constraint families: at most one
// enrolled section per requested course per student, section capacity,
// and no two time-overlapping sections for the same student.
package studentassigner

import (
	"context"
	"fmt"

	"github.com/schooltech/scheduler-core/internal/domain"
	"github.com/schooltech/scheduler-core/internal/pipeline/studentassigner/solver"
)

const (
	requiredWeight  = 1000.0
	maxElectiveRank = 9
)

// Assign solves the student assignment problem and returns the diagnosed
// set of unassigned required courses. Sections are mutated in place to
// carry their enrolled students.
func Assign(ctx context.Context, engine solver.Engine, sections []*domain.Section, students []domain.Student, courses []domain.Course) ([]domain.UnassignedCourse, error) {
	courseMap := make(map[domain.CourseId]*domain.Course, len(courses))
	for i := range courses {
		courseMap[courses[i].Id] = &courses[i]
	}

	sectionsByCourse := make(map[domain.CourseId][]int)
	for idx, s := range sections {
		sectionsByCourse[s.CourseId] = append(sectionsByCourse[s.CourseId], idx)
	}

	sectionPeriods := make([]domain.PeriodSet, len(sections))
	for idx, s := range sections {
		sectionPeriods[idx] = s.PeriodSet()
	}

	model := engine.NewModel()

	// vars[s][k] is the decision variable for student index s, section
	// index k. Only allocated for combinations the student could plausibly
	// take (wants the course, grade allows it).
	vars := make([]map[int]solver.Var, len(students))
	for s := range students {
		vars[s] = make(map[int]solver.Var)
	}

	for s, student := range students {
		for k, section := range sections {
			if !student.WantsCourse(section.CourseId) {
				continue
			}
			if course, ok := courseMap[section.CourseId]; ok && !course.AllowsGrade(student.Grade) {
				continue
			}
			v := model.NewBinaryVar()
			vars[s][k] = v

			weight := 0.0
			if student.IsRequired(section.CourseId) {
				weight = requiredWeight
			} else if rank, ok := student.ElectiveRank(section.CourseId); ok {
				r := rank
				if r > maxElectiveRank {
					r = maxElectiveRank
				}
				weight = float64(10 - r)
			}
			if weight > 0 {
				model.AddObjectiveTerm(weight, v)
			}
		}
	}

	// Constraint 1: at most one section per requested course per student.
	for s, student := range students {
		for _, courseId := range student.AllRequestedCourses() {
			var group []solver.Var
			for _, k := range sectionsByCourse[courseId] {
				if v, ok := vars[s][k]; ok {
					group = append(group, v)
				}
			}
			if len(group) > 1 {
				model.AddAtMostOne(group)
			}
		}
	}

	// Constraint 2: section capacity.
	for k, section := range sections {
		var group []solver.Var
		for s := range students {
			if v, ok := vars[s][k]; ok {
				group = append(group, v)
			}
		}
		if len(group) > 0 {
			model.AddAtMost(group, float64(section.Capacity))
		}
	}

	// Constraint 3: no time conflicts per student.
	for s := range students {
		var studentSections []int
		for k := range sections {
			if _, ok := vars[s][k]; ok {
				studentSections = append(studentSections, k)
			}
		}
		for i := 0; i < len(studentSections); i++ {
			for j := i + 1; j < len(studentSections); j++ {
				k1, k2 := studentSections[i], studentSections[j]
				if sectionPeriods[k1].Overlaps(sectionPeriods[k2]) {
					model.AddPairwiseConflict(vars[s][k1], vars[s][k2])
				}
			}
		}
	}

	solution, err := engine.Solve(ctx, model)
	if err != nil {
		return nil, fmt.Errorf("studentassigner: %w", err)
	}

	for s, student := range students {
		for k := range sections {
			v, ok := vars[s][k]
			if !ok {
				continue
			}
			if solution.Value(v) > 0.5 {
				sections[k].Enroll(student.Id)
			}
		}
	}

	var unassigned []domain.UnassignedCourse
	for _, student := range students {
		for _, courseId := range student.RequiredCourses {
			if studentEnrolledIn(sections, sectionsByCourse[courseId], student.Id) {
				continue
			}
			reason := determineUnassignedReason(student, courseId, sections, sectionsByCourse[courseId], sectionPeriods, courseMap)
			unassigned = append(unassigned, domain.UnassignedCourse{
				StudentId: student.Id,
				CourseId:  courseId,
				Reason:    reason,
			})
		}
	}

	return unassigned, nil
}

func studentEnrolledIn(sections []*domain.Section, indices []int, studentId domain.StudentId) bool {
	for _, k := range indices {
		if sections[k].HasStudent(studentId) {
			return true
		}
	}
	return false
}

// determineUnassignedReason diagnoses why a required course could not be
// satisfied, checked in priority order: grade restriction, no sections
// exist, all sections full, time conflict, otherwise unknown.
func determineUnassignedReason(
	student domain.Student,
	courseId domain.CourseId,
	sections []*domain.Section,
	courseSectionIndices []int,
	sectionPeriods []domain.PeriodSet,
	courseMap map[domain.CourseId]*domain.Course,
) string {
	if course, ok := courseMap[courseId]; ok && !course.AllowsGrade(student.Grade) {
		return fmt.Sprintf("Grade %d not allowed (restricted to %v)", student.Grade, course.GradeRestrictions)
	}

	if len(courseSectionIndices) == 0 {
		return "No sections available"
	}

	allFull := true
	for _, k := range courseSectionIndices {
		if !sections[k].IsFull() {
			allFull = false
			break
		}
	}
	if allFull {
		return "All sections at capacity"
	}

	studentPeriods := make(domain.PeriodSet)
	for idx, section := range sections {
		if section.HasStudent(student.Id) {
			for p := range sectionPeriods[idx] {
				studentPeriods.Add(p)
			}
		}
	}

	hasAvailableSlot := false
	for _, k := range courseSectionIndices {
		if sections[k].IsFull() {
			continue
		}
		if !sectionPeriods[k].Overlaps(studentPeriods) {
			hasAvailableSlot = true
			break
		}
	}
	if !hasAvailableSlot {
		return "Time conflict with other courses"
	}

	return "Unknown reason"
}
