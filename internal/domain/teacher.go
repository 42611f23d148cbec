package domain

// Teacher is qualified to teach a set of courses, caps how many sections
// they can simultaneously hold, and carries a set of Periods during which
// they cannot be scheduled.
type Teacher struct {
	Id          TeacherId  `json:"id" validate:"required"`
	Name        string     `json:"name" validate:"required"`
	Subjects    []CourseId `json:"subjects"`
	MaxSections int        `json:"max_sections" validate:"required,min=1"`
	Unavailable []Period   `json:"unavailable"`
}

// Qualifies reports whether the teacher may teach c.
func (t *Teacher) Qualifies(c CourseId) bool {
	for _, s := range t.Subjects {
		if s == c {
			return true
		}
	}
	return false
}

// UnavailableSet returns the teacher's unavailability as a PeriodSet for
// O(1) membership checks.
func (t *Teacher) UnavailableSet() PeriodSet {
	return NewPeriodSet(t.Unavailable...)
}
