// Package sectionbuilder implements phase 1 of the scheduling pipeline:
// materializing the declared number of sections per course and assigning
// each a qualified teacher via load-balanced round-robin.
package sectionbuilder

import "github.com/schooltech/scheduler-core/internal/domain"

// Build emits course.Sections sections per course, in input order, with
// ids "<course_id>-<n>" (n starting at 1). Each new section is handed to
// the qualified teacher (from teacher.Subjects) with the fewest sections
// so far who still has capacity under MaxSections; ties are broken by the
// input order of the course's qualified-teacher list. A section is left
// teacher-less when no qualified teacher has remaining capacity — this is
// a visible anomaly surfaced downstream by the validator, never a hard
// failure.
func Build(courses []domain.Course, teachers []domain.Teacher) []*domain.Section {
	qualifiedByCourse := teachersByCourse(teachers)
	counts := make(map[domain.TeacherId]int, len(teachers))

	var sections []*domain.Section
	for _, course := range courses {
		qualified := qualifiedByCourse[course.Id]
		for n := 1; n <= course.Sections; n++ {
			id := domain.NewSectionId(course.Id, n)
			section := domain.NewSection(id, course.Id, course.MaxStudents)

			if teacher := pickTeacher(qualified, counts); teacher != nil {
				tid := teacher.Id
				section.TeacherId = &tid
				counts[tid]++
			}

			sections = append(sections, section)
		}
	}
	return sections
}

// teachersByCourse maps each course id to the teachers qualified for it,
// in the order those teachers appear in the input slice.
func teachersByCourse(teachers []domain.Teacher) map[domain.CourseId][]*domain.Teacher {
	out := make(map[domain.CourseId][]*domain.Teacher)
	for i := range teachers {
		t := &teachers[i]
		for _, subject := range t.Subjects {
			out[subject] = append(out[subject], t)
		}
	}
	return out
}

// pickTeacher returns the qualified teacher with the fewest assigned
// sections so far who still has room under MaxSections, breaking ties by
// the order teachers appear in qualified. Returns nil if none qualifies.
func pickTeacher(qualified []*domain.Teacher, counts map[domain.TeacherId]int) *domain.Teacher {
	var best *domain.Teacher
	bestCount := 0
	for _, t := range qualified {
		count := counts[t.Id]
		if count >= t.MaxSections {
			continue
		}
		if best == nil || count < bestCount {
			best = t
			bestCount = count
		}
	}
	return best
}
