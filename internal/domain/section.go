package domain

// Section is a concrete instance of a course: one teacher (once phase 1
// completes), one room (once phase 3 completes), a shared weekly time
// slot, and a student roster bounded by Capacity.
type Section struct {
	Id               SectionId   `json:"id"`
	CourseId         CourseId    `json:"course_id"`
	TeacherId        *TeacherId  `json:"teacher_id,omitempty"`
	RoomId           *RoomId     `json:"room_id,omitempty"`
	Periods          []Period    `json:"periods,omitempty"`
	EnrolledStudents []StudentId `json:"enrolled_students"`
	Capacity         int         `json:"capacity"`
}

// NewSection constructs an empty section for the given course.
func NewSection(id SectionId, courseId CourseId, capacity int) *Section {
	return &Section{
		Id:               id,
		CourseId:         courseId,
		Capacity:         capacity,
		EnrolledStudents: []StudentId{},
	}
}

// Enrollment returns the current roster size.
func (s *Section) Enrollment() int {
	return len(s.EnrolledStudents)
}

// IsFull reports whether the section has reached capacity.
func (s *Section) IsFull() bool {
	return s.Enrollment() >= s.Capacity
}

// HasStudent reports whether id is currently enrolled.
func (s *Section) HasStudent(id StudentId) bool {
	for _, e := range s.EnrolledStudents {
		if e == id {
			return true
		}
	}
	return false
}

// Enroll appends a student to the roster. Callers are responsible for
// capacity and conflict checks; Enroll performs neither.
func (s *Section) Enroll(id StudentId) {
	s.EnrolledStudents = append(s.EnrolledStudents, id)
}

// Unenroll removes a student from the roster, if present.
func (s *Section) Unenroll(id StudentId) {
	for i, e := range s.EnrolledStudents {
		if e == id {
			s.EnrolledStudents = append(s.EnrolledStudents[:i], s.EnrolledStudents[i+1:]...)
			return
		}
	}
}

// PeriodSet returns the section's periods as a set for overlap checks.
func (s *Section) PeriodSet() PeriodSet {
	return NewPeriodSet(s.Periods...)
}
