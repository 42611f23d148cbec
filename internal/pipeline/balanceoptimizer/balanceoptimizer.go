// Package balanceoptimizer implements phase 5 of the scheduling pipeline:
// a bounded local search that moves students from the largest to the
// smallest section of the same course when enrollment is lopsided and
// the move does not violate capacity or create a time conflict.
//
// The ILP phase maximizes total assignments but is indifferent to how
// those assignments distribute across sections of the same course; this
// phase cleans up the resulting imbalance without touching the objective.
package balanceoptimizer

import (
	"sort"

	"github.com/schooltech/scheduler-core/internal/domain"
)

// MaxIterations bounds how many balancing passes are attempted before
// giving up, even if sections remain imbalanced.
const MaxIterations = 100

// Optimize rebalances sections of the same course toward an enrollment
// spread of at most 1, mutating sections in place.
func Optimize(sections []*domain.Section) {
	studentSchedules := buildStudentSchedules(sections)
	byCourse := sectionsByCourse(sections)

	courseIds := make([]domain.CourseId, 0, len(byCourse))
	for id := range byCourse {
		courseIds = append(courseIds, id)
	}
	sort.Slice(courseIds, func(i, j int) bool { return courseIds[i] < courseIds[j] })

	for iter := 0; iter < MaxIterations; iter++ {
		improved := false

		for _, courseId := range courseIds {
			indices := byCourse[courseId]
			if len(indices) < 2 {
				continue
			}

			smallest, largest := smallestAndLargest(sections, indices)
			diff := sections[largest].Enrollment() - sections[smallest].Enrollment()
			if diff <= 1 {
				continue
			}

			candidates := append([]domain.StudentId(nil), sections[largest].EnrolledStudents...)
			for _, studentId := range candidates {
				if canMove(studentId, largest, smallest, sections, studentSchedules) {
					moveStudent(studentId, largest, smallest, sections, studentSchedules)
					improved = true
					break
				}
			}
		}

		if !improved {
			break
		}
	}
}

// BalanceScore reports the mean enrollment variance across courses with
// more than one section. Lower is better; 0 means every multi-section
// course is perfectly balanced (or there are none).
func BalanceScore(sections []*domain.Section) float64 {
	byCourse := sectionsByCourse(sections)

	totalVariance := 0.0
	courseCount := 0

	for _, indices := range byCourse {
		if len(indices) < 2 {
			continue
		}

		sum := 0
		for _, idx := range indices {
			sum += sections[idx].Enrollment()
		}
		mean := float64(sum) / float64(len(indices))

		variance := 0.0
		for _, idx := range indices {
			d := float64(sections[idx].Enrollment()) - mean
			variance += d * d
		}
		variance /= float64(len(indices))

		totalVariance += variance
		courseCount++
	}

	if courseCount == 0 {
		return 0
	}
	return totalVariance / float64(courseCount)
}

func sectionsByCourse(sections []*domain.Section) map[domain.CourseId][]int {
	out := make(map[domain.CourseId][]int)
	for idx, s := range sections {
		out[s.CourseId] = append(out[s.CourseId], idx)
	}
	return out
}

func buildStudentSchedules(sections []*domain.Section) map[domain.StudentId]domain.PeriodSet {
	schedules := make(map[domain.StudentId]domain.PeriodSet)
	for _, section := range sections {
		periods := section.PeriodSet()
		for _, studentId := range section.EnrolledStudents {
			schedule, ok := schedules[studentId]
			if !ok {
				schedule = make(domain.PeriodSet)
				schedules[studentId] = schedule
			}
			for p := range periods {
				schedule.Add(p)
			}
		}
	}
	return schedules
}

func smallestAndLargest(sections []*domain.Section, indices []int) (smallest, largest int) {
	sorted := append([]int(nil), indices...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sections[sorted[i]].Enrollment() < sections[sorted[j]].Enrollment()
	})
	return sorted[0], sorted[len(sorted)-1]
}

func canMove(studentId domain.StudentId, fromIdx, toIdx int, sections []*domain.Section, schedules map[domain.StudentId]domain.PeriodSet) bool {
	toSection := sections[toIdx]
	if toSection.IsFull() {
		return false
	}

	fromPeriods := sections[fromIdx].PeriodSet()
	toPeriods := toSection.PeriodSet()

	schedule, ok := schedules[studentId]
	if !ok {
		return true
	}
	for p := range toPeriods {
		if _, inFrom := fromPeriods[p]; inFrom {
			continue
		}
		if schedule.Contains(p) {
			return false
		}
	}
	return true
}

func moveStudent(studentId domain.StudentId, fromIdx, toIdx int, sections []*domain.Section, schedules map[domain.StudentId]domain.PeriodSet) {
	fromPeriods := sections[fromIdx].PeriodSet()
	toPeriods := sections[toIdx].PeriodSet()

	sections[fromIdx].Unenroll(studentId)
	sections[toIdx].Enroll(studentId)

	schedule, ok := schedules[studentId]
	if !ok {
		schedule = make(domain.PeriodSet)
		schedules[studentId] = schedule
	}
	for p := range fromPeriods {
		delete(schedule, p)
	}
	for p := range toPeriods {
		schedule.Add(p)
	}
}
