package domain

import "time"

// UnassignedCourse records a (student, required course) pair for which no
// section enrollment was achieved, with a diagnostic reason. Electives are
// never reported here.
type UnassignedCourse struct {
	StudentId StudentId `json:"student_id"`
	CourseId  CourseId  `json:"course_id"`
	Reason    string    `json:"reason"`
}

// ScheduleMetadata carries provenance about how a Schedule was produced.
type ScheduleMetadata struct {
	GeneratedAt      time.Time `json:"generated_at"`
	AlgorithmVersion string    `json:"algorithm_version"`
	Score            float64   `json:"score"`
	SolveTimeMs      int64     `json:"solve_time_ms"`
}

// AlgorithmVersion is stamped into every generated Schedule's metadata.
const AlgorithmVersion = "heuristic-ilp-v1"

// Schedule is the pipeline's final product: a set of sections plus any
// students who could not be placed in a required course.
type Schedule struct {
	Sections   []*Section         `json:"sections"`
	Unassigned []UnassignedCourse `json:"unassigned"`
	Metadata   ScheduleMetadata   `json:"metadata"`
}

// TotalAssignments counts every (student, section) enrollment across the
// schedule.
func (s *Schedule) TotalAssignments() int {
	total := 0
	for _, sec := range s.Sections {
		total += sec.Enrollment()
	}
	return total
}

// SectionsByCourse groups section indices by course id, preserving the
// input order of s.Sections within each group.
func (s *Schedule) SectionsByCourse() map[CourseId][]int {
	out := make(map[CourseId][]int)
	for idx, sec := range s.Sections {
		out[sec.CourseId] = append(out[sec.CourseId], idx)
	}
	return out
}
