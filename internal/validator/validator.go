// Package validator checks a finalized schedule against hard constraints
// (conflicts that must never occur) and scores it against soft
// constraints (preference satisfaction, section balance), producing a
// Report consumed by the CLI and the reporters.
package validator

import (
	"fmt"

	"github.com/schooltech/scheduler-core/internal/domain"
	"github.com/schooltech/scheduler-core/internal/pipeline/balanceoptimizer"
)

// Severity classifies a Violation.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

// Violation is a single detected hard-constraint breach.
type Violation struct {
	Constraint string   `json:"constraint"`
	Message    string   `json:"message"`
	Severity   Severity `json:"severity"`
}

// SoftScore reports how well a soft constraint was satisfied.
type SoftScore struct {
	Constraint string  `json:"constraint"`
	Score      float64 `json:"score"`
	MaxScore   float64 `json:"max_score"`
	Details    string  `json:"details"`
}

// Statistics summarizes a schedule's shape.
type Statistics struct {
	TotalSections       int     `json:"total_sections"`
	TotalStudents       int     `json:"total_students"`
	TotalAssignments    int     `json:"total_assignments"`
	UnassignedRequired  int     `json:"unassigned_required"`
	UnassignedElectives int     `json:"unassigned_electives"`
	AvgSectionFillRate  float64 `json:"avg_section_fill_rate"`
	SectionBalanceScore float64 `json:"section_balance_score"`
}

// Report is the complete output of Validate.
type Report struct {
	IsValid        bool        `json:"is_valid"`
	HardViolations []Violation `json:"hard_violations"`
	SoftScores     []SoftScore `json:"soft_scores"`
	TotalScore     float64     `json:"total_score"`
	Statistics     Statistics  `json:"statistics"`
}

// Validate checks schedule's hard constraints, scores its soft
// constraints, and computes descriptive statistics against the input
// that produced it.
func Validate(schedule *domain.Schedule, input domain.ScheduleInput) Report {
	var hardViolations []Violation
	hardViolations = append(hardViolations, checkTeacherConflicts(schedule)...)
	hardViolations = append(hardViolations, checkStudentConflicts(schedule)...)
	hardViolations = append(hardViolations, checkRoomConflicts(schedule)...)
	hardViolations = append(hardViolations, checkCapacityViolations(schedule)...)
	hardViolations = append(hardViolations, checkTeacherUnavailability(schedule, input)...)
	hardViolations = append(hardViolations, checkRoomUnavailability(schedule, input)...)

	softScores := calculateSoftScores(schedule, input)
	statistics := calculateStatistics(schedule, input)

	isValid := true
	for _, v := range hardViolations {
		if v.Severity == SeverityError {
			isValid = false
			break
		}
	}

	totalScore := 0.0
	if isValid {
		softTotal, softMax := 0.0, 0.0
		for _, s := range softScores {
			softTotal += s.Score
			softMax += s.MaxScore
		}
		if softMax > 0 {
			totalScore = (softTotal / softMax) * 100.0
		} else {
			totalScore = 100.0
		}
	}

	return Report{
		IsValid:        isValid,
		HardViolations: hardViolations,
		SoftScores:     softScores,
		TotalScore:     totalScore,
		Statistics:     statistics,
	}
}

func calculateStatistics(schedule *domain.Schedule, input domain.ScheduleInput) Statistics {
	totalSections := len(schedule.Sections)
	totalStudents := len(input.Students)
	totalAssignments := schedule.TotalAssignments()

	requiredByStudent := make(map[domain.StudentId]map[domain.CourseId]struct{}, len(input.Students))
	for _, s := range input.Students {
		set := make(map[domain.CourseId]struct{}, len(s.RequiredCourses))
		for _, c := range s.RequiredCourses {
			set[c] = struct{}{}
		}
		requiredByStudent[s.Id] = set
	}

	unassignedRequired := 0
	for _, u := range schedule.Unassigned {
		if required, ok := requiredByStudent[u.StudentId]; ok {
			if _, isRequired := required[u.CourseId]; isRequired {
				unassignedRequired++
			}
		}
	}
	unassignedElectives := len(schedule.Unassigned) - unassignedRequired

	avgFillRate := 0.0
	if totalSections > 0 {
		sum := 0.0
		for _, sec := range schedule.Sections {
			if sec.Capacity > 0 {
				sum += float64(sec.Enrollment()) / float64(sec.Capacity)
			}
		}
		avgFillRate = sum / float64(totalSections) * 100.0
	}

	return Statistics{
		TotalSections:       totalSections,
		TotalStudents:       totalStudents,
		TotalAssignments:    totalAssignments,
		UnassignedRequired:  unassignedRequired,
		UnassignedElectives: unassignedElectives,
		AvgSectionFillRate:  avgFillRate,
		SectionBalanceScore: balanceoptimizer.BalanceScore(schedule.Sections),
	}
}

func checkTeacherConflicts(schedule *domain.Schedule) []Violation {
	var violations []Violation
	teacherPeriods := make(map[domain.TeacherId]domain.PeriodSet)

	for _, section := range schedule.Sections {
		if section.TeacherId == nil {
			continue
		}
		periods := teacherPeriods[*section.TeacherId]
		if periods == nil {
			periods = make(domain.PeriodSet)
			teacherPeriods[*section.TeacherId] = periods
		}
		for _, p := range section.Periods {
			if periods.Contains(p) {
				violations = append(violations, Violation{
					Constraint: "NoTeacherConflict",
					Message:    fmt.Sprintf("teacher %q double-booked at %s", *section.TeacherId, p),
					Severity:   SeverityError,
				})
				continue
			}
			periods.Add(p)
		}
	}
	return violations
}

func checkStudentConflicts(schedule *domain.Schedule) []Violation {
	var violations []Violation
	studentPeriods := make(map[domain.StudentId]domain.PeriodSet)

	for _, section := range schedule.Sections {
		for _, studentId := range section.EnrolledStudents {
			periods := studentPeriods[studentId]
			if periods == nil {
				periods = make(domain.PeriodSet)
				studentPeriods[studentId] = periods
			}
			for _, p := range section.Periods {
				if periods.Contains(p) {
					violations = append(violations, Violation{
						Constraint: "NoStudentConflict",
						Message:    fmt.Sprintf("student %q double-booked at %s", studentId, p),
						Severity:   SeverityError,
					})
					continue
				}
				periods.Add(p)
			}
		}
	}
	return violations
}

func checkRoomConflicts(schedule *domain.Schedule) []Violation {
	var violations []Violation
	roomPeriods := make(map[domain.RoomId]domain.PeriodSet)

	for _, section := range schedule.Sections {
		if section.RoomId == nil {
			continue
		}
		periods := roomPeriods[*section.RoomId]
		if periods == nil {
			periods = make(domain.PeriodSet)
			roomPeriods[*section.RoomId] = periods
		}
		for _, p := range section.Periods {
			if periods.Contains(p) {
				violations = append(violations, Violation{
					Constraint: "NoRoomConflict",
					Message:    fmt.Sprintf("room %q double-booked at %s", *section.RoomId, p),
					Severity:   SeverityError,
				})
				continue
			}
			periods.Add(p)
		}
	}
	return violations
}

func checkTeacherUnavailability(schedule *domain.Schedule, input domain.ScheduleInput) []Violation {
	teacherById := make(map[domain.TeacherId]*domain.Teacher, len(input.Teachers))
	for i := range input.Teachers {
		teacherById[input.Teachers[i].Id] = &input.Teachers[i]
	}

	var violations []Violation
	for _, section := range schedule.Sections {
		if section.TeacherId == nil {
			continue
		}
		teacher, ok := teacherById[*section.TeacherId]
		if !ok {
			continue
		}
		unavailable := teacher.UnavailableSet()
		for _, p := range section.Periods {
			if unavailable.Contains(p) {
				violations = append(violations, Violation{
					Constraint: "TeacherAvailability",
					Message:    fmt.Sprintf("section %q meets at %s during teacher %q's unavailability", section.Id, p, *section.TeacherId),
					Severity:   SeverityError,
				})
			}
		}
	}
	return violations
}

func checkRoomUnavailability(schedule *domain.Schedule, input domain.ScheduleInput) []Violation {
	roomById := make(map[domain.RoomId]*domain.Room, len(input.Rooms))
	for i := range input.Rooms {
		roomById[input.Rooms[i].Id] = &input.Rooms[i]
	}

	var violations []Violation
	for _, section := range schedule.Sections {
		if section.RoomId == nil {
			continue
		}
		room, ok := roomById[*section.RoomId]
		if !ok {
			continue
		}
		for _, p := range section.Periods {
			if !room.IsAvailable(p) {
				violations = append(violations, Violation{
					Constraint: "RoomAvailability",
					Message:    fmt.Sprintf("section %q meets at %s during room %q's unavailability", section.Id, p, *section.RoomId),
					Severity:   SeverityError,
				})
			}
		}
	}
	return violations
}

func checkCapacityViolations(schedule *domain.Schedule) []Violation {
	var violations []Violation
	for _, section := range schedule.Sections {
		if section.Enrollment() > section.Capacity {
			violations = append(violations, Violation{
				Constraint: "RoomCapacity",
				Message:    fmt.Sprintf("section %q over capacity: %d enrolled, %d capacity", section.Id, section.Enrollment(), section.Capacity),
				Severity:   SeverityError,
			})
		}
	}
	return violations
}

func calculateSoftScores(schedule *domain.Schedule, input domain.ScheduleInput) []SoftScore {
	return []SoftScore{
		scoreRequiredCourses(schedule, input),
		scoreElectivePreferences(schedule, input),
		scoreSectionBalance(schedule),
	}
}

func scoreRequiredCourses(schedule *domain.Schedule, input domain.ScheduleInput) SoftScore {
	totalRequired := 0
	fulfilled := 0

	for _, student := range input.Students {
		totalRequired += len(student.RequiredCourses)
		for _, courseId := range student.RequiredCourses {
			if scheduleHasAssignment(schedule, courseId, student.Id) {
				fulfilled++
			}
		}
	}

	return SoftScore{
		Constraint: "RequiredCourses",
		Score:      float64(fulfilled),
		MaxScore:   float64(totalRequired),
		Details:    fmt.Sprintf("%d/%d required courses fulfilled", fulfilled, totalRequired),
	}
}

func scoreElectivePreferences(schedule *domain.Schedule, input domain.ScheduleInput) SoftScore {
	totalPoints := 0.0
	maxPoints := 0.0

	for _, student := range input.Students {
		for rank, courseId := range student.ElectivePreferences {
			r := rank
			if r > 9 {
				r = 9
			}
			weight := float64(10 - r)
			maxPoints += weight
			if scheduleHasAssignment(schedule, courseId, student.Id) {
				totalPoints += weight
			}
		}
	}

	return SoftScore{
		Constraint: "ElectivePreferences",
		Score:      totalPoints,
		MaxScore:   maxPoints,
		Details:    fmt.Sprintf("%.1f/%.1f elective preference points", totalPoints, maxPoints),
	}
}

func scoreSectionBalance(schedule *domain.Schedule) SoftScore {
	byCourse := schedule.SectionsByCourse()

	totalImbalance := 0.0
	courseCount := 0

	for _, indices := range byCourse {
		if len(indices) < 2 {
			continue
		}
		min, max := -1, -1
		for _, idx := range indices {
			e := schedule.Sections[idx].Enrollment()
			if min == -1 || e < min {
				min = e
			}
			if max == -1 || e > max {
				max = e
			}
		}
		if max > 0 {
			totalImbalance += float64(max-min) / float64(max)
		}
		courseCount++
	}

	avgImbalance := 0.0
	if courseCount > 0 {
		avgImbalance = totalImbalance / float64(courseCount)
	}
	score := (1.0 - avgImbalance) * 100.0

	return SoftScore{
		Constraint: "SectionBalance",
		Score:      score,
		MaxScore:   100.0,
		Details:    fmt.Sprintf("%.1f%% average imbalance across %d multi-section courses", avgImbalance*100.0, courseCount),
	}
}

func scheduleHasAssignment(schedule *domain.Schedule, courseId domain.CourseId, studentId domain.StudentId) bool {
	for _, section := range schedule.Sections {
		if section.CourseId == courseId && section.HasStudent(studentId) {
			return true
		}
	}
	return false
}
