// Package timeassigner implements phase 2 of the scheduling pipeline:
// picking one time slot per section using a penalty-minimizing greedy
// over four conflict dimensions (teacher double-book, same-course
// overlap, global slot load, same-grade cohort clash).
package timeassigner

import (
	"sort"

	"github.com/schooltech/scheduler-core/internal/domain"
)

const (
	sameCoursePenalty = 1000
	gradeClashPenalty = 500
)

// Assign populates section.Periods for every section, mutating the slice
// in place. Grade-restricted courses are processed before open courses
// (fewer grades first); open courses come last in stable input order.
func Assign(sections []*domain.Section, courses []domain.Course, teachers []domain.Teacher, config domain.ScheduleConfig) {
	courseMap := make(map[domain.CourseId]*domain.Course, len(courses))
	for i := range courses {
		courseMap[courses[i].Id] = &courses[i]
	}
	teacherMap := make(map[domain.TeacherId]*domain.Teacher, len(teachers))
	for i := range teachers {
		teacherMap[teachers[i].Id] = &teachers[i]
	}

	teacherBusySlots := make(map[domain.TeacherId]map[uint8]struct{})
	slotUsage := make([]int, config.PeriodsPerDay)
	gradeTracker := newGradeSlotTracker()

	byCourse := sectionsByCourse(sections)
	order := orderCourses(byCourse, courseMap)

	for _, courseId := range order {
		course, ok := courseMap[courseId]
		if !ok {
			continue
		}
		courseUsedSlots := make(map[uint8]struct{})

		for _, idx := range byCourse[courseId] {
			section := sections[idx]
			best := bestSlot(section, course, teacherMap, teacherBusySlots, courseUsedSlots, slotUsage, gradeTracker, config)

			section.Periods = make([]domain.Period, 0, config.DaysPerWeek)
			for day := uint8(0); day < config.DaysPerWeek; day++ {
				section.Periods = append(section.Periods, domain.NewPeriod(day, best))
			}

			if section.TeacherId != nil {
				busy := teacherBusySlots[*section.TeacherId]
				if busy == nil {
					busy = make(map[uint8]struct{})
					teacherBusySlots[*section.TeacherId] = busy
				}
				busy[best] = struct{}{}
			}
			slotUsage[best]++
			courseUsedSlots[best] = struct{}{}
			gradeTracker.record(course.GradeRestrictions, best)
		}
	}
}

// sectionsByCourse groups section indices by course id, preserving the
// order sections appear in the input slice.
func sectionsByCourse(sections []*domain.Section) map[domain.CourseId][]int {
	out := make(map[domain.CourseId][]int)
	for idx, s := range sections {
		out[s.CourseId] = append(out[s.CourseId], idx)
	}
	return out
}

// orderCourses returns course ids ordered grade-restricted-first (fewer
// grades first), open courses last, both groups in stable input order.
func orderCourses(byCourse map[domain.CourseId][]int, courseMap map[domain.CourseId]*domain.Course) []domain.CourseId {
	ids := make([]domain.CourseId, 0, len(byCourse))
	for id := range byCourse {
		ids = append(ids, id)
	}

	firstIndex := make(map[domain.CourseId]int, len(ids))
	for id, idxs := range byCourse {
		min := idxs[0]
		for _, i := range idxs {
			if i < min {
				min = i
			}
		}
		firstIndex[id] = min
	}

	sort.SliceStable(ids, func(i, j int) bool {
		ci, cj := courseMap[ids[i]], courseMap[ids[j]]
		ri, rj := restrictionRank(ci), restrictionRank(cj)
		if ri != rj {
			if ri[0] != rj[0] {
				return ri[0] < rj[0]
			}
			return ri[1] < rj[1]
		}
		return firstIndex[ids[i]] < firstIndex[ids[j]]
	})
	return ids
}

// restrictionRank maps a course to a (tier, grade-count) comparison key:
// grade-restricted courses sort before open ones, and among restricted
// courses, fewer grades sorts first (tighter constraint first).
func restrictionRank(c *domain.Course) [2]int {
	if c == nil || len(c.GradeRestrictions) == 0 {
		return [2]int{1, 0}
	}
	return [2]int{0, len(c.GradeRestrictions)}
}

func bestSlot(
	section *domain.Section,
	course *domain.Course,
	teacherMap map[domain.TeacherId]*domain.Teacher,
	teacherBusySlots map[domain.TeacherId]map[uint8]struct{},
	courseUsedSlots map[uint8]struct{},
	slotUsage []int,
	gradeTracker *gradeSlotTracker,
	config domain.ScheduleConfig,
) uint8 {
	bestSlot := uint8(0)
	bestPenalty := -1
	found := false

	for slot := uint8(0); slot < config.PeriodsPerDay; slot++ {
		if !feasible(section, teacherMap, teacherBusySlots, slot, config) {
			continue
		}
		penalty := slotUsage[slot]
		if _, used := courseUsedSlots[slot]; used {
			penalty += sameCoursePenalty
		}
		penalty += gradeTracker.penalty(course.GradeRestrictions, slot)

		if !found || penalty < bestPenalty {
			found = true
			bestPenalty = penalty
			bestSlot = slot
		}
	}

	if !found {
		return 0
	}
	return bestSlot
}

func feasible(
	section *domain.Section,
	teacherMap map[domain.TeacherId]*domain.Teacher,
	teacherBusySlots map[domain.TeacherId]map[uint8]struct{},
	slot uint8,
	config domain.ScheduleConfig,
) bool {
	if section.TeacherId == nil {
		return true
	}
	tid := *section.TeacherId
	if busy, ok := teacherBusySlots[tid]; ok {
		if _, taken := busy[slot]; taken {
			return false
		}
	}
	teacher, ok := teacherMap[tid]
	if !ok {
		return true
	}
	for day := uint8(0); day < config.DaysPerWeek; day++ {
		if teacher.UnavailableSet().Contains(domain.NewPeriod(day, slot)) {
			return false
		}
	}
	return true
}

// gradeSlotTracker tallies how many grade-restricted sections target each
// (grade, slot) pair.
type gradeSlotTracker struct {
	usage map[int]map[uint8]int
}

func newGradeSlotTracker() *gradeSlotTracker {
	return &gradeSlotTracker{usage: make(map[int]map[uint8]int)}
}

func (g *gradeSlotTracker) record(grades []int, slot uint8) {
	for _, grade := range grades {
		m := g.usage[grade]
		if m == nil {
			m = make(map[uint8]int)
			g.usage[grade] = m
		}
		m[slot]++
	}
}

func (g *gradeSlotTracker) penalty(grades []int, slot uint8) int {
	total := 0
	for _, grade := range grades {
		if m, ok := g.usage[grade]; ok {
			total += m[slot] * gradeClashPenalty
		}
	}
	return total
}
