// Package roomassigner implements phase 3 of the scheduling pipeline:
// matching each section to the smallest feasible room, processing the
// most feature-constrained sections first.
package roomassigner

import (
	"sort"

	"github.com/schooltech/scheduler-core/internal/domain"
)

// Assign populates section.RoomId for every section that has a feasible
// room, mutating the slice in place. Sections with no feasible room are
// left with a nil RoomId; the validator surfaces this as a conflict.
func Assign(sections []*domain.Section, rooms []domain.Room, courses []domain.Course) {
	courseMap := make(map[domain.CourseId]*domain.Course, len(courses))
	for i := range courses {
		courseMap[courses[i].Id] = &courses[i]
	}

	sortedRooms := make([]*domain.Room, len(rooms))
	for i := range rooms {
		sortedRooms[i] = &rooms[i]
	}
	sort.SliceStable(sortedRooms, func(i, j int) bool {
		return sortedRooms[i].Capacity < sortedRooms[j].Capacity
	})

	order := make([]int, len(sections))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return featureCount(sections[order[i]], courseMap) > featureCount(sections[order[j]], courseMap)
	})

	roomSchedules := make(map[domain.RoomId]domain.PeriodSet, len(rooms))

	for _, idx := range order {
		section := sections[idx]
		course := courseMap[section.CourseId]
		var requiredFeatures []string
		if course != nil {
			requiredFeatures = course.RequiredFeatures
		}

		room := findSuitableRoom(section, sortedRooms, requiredFeatures, roomSchedules)
		if room == nil {
			continue
		}

		rid := room.Id
		section.RoomId = &rid

		schedule := roomSchedules[rid]
		if schedule == nil {
			schedule = make(domain.PeriodSet)
			roomSchedules[rid] = schedule
		}
		for _, p := range section.Periods {
			schedule.Add(p)
		}
	}
}

func featureCount(section *domain.Section, courseMap map[domain.CourseId]*domain.Course) int {
	if course, ok := courseMap[section.CourseId]; ok {
		return len(course.RequiredFeatures)
	}
	return 0
}

func findSuitableRoom(
	section *domain.Section,
	rooms []*domain.Room,
	requiredFeatures []string,
	roomSchedules map[domain.RoomId]domain.PeriodSet,
) *domain.Room {
	for _, room := range rooms {
		if room.Capacity < section.Capacity {
			continue
		}
		if !room.HasFeatures(requiredFeatures) {
			continue
		}

		schedule := roomSchedules[room.Id]
		available := true
		for _, p := range section.Periods {
			if schedule.Contains(p) || !room.IsAvailable(p) {
				available = false
				break
			}
		}
		if available {
			return room
		}
	}
	return nil
}
