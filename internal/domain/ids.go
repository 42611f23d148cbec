package domain

import "strconv"

// StudentId, TeacherId, CourseId, RoomId and SectionId are opaque string
// identifiers with value semantics: equality and hashing are by content.
type (
	StudentId string
	TeacherId string
	CourseId  string
	RoomId    string
	SectionId string
)

// NewSectionId derives a section identifier as "<course_id>-<n>" (n is
// 1-based).
func NewSectionId(course CourseId, n int) SectionId {
	return SectionId(string(course) + "-" + strconv.Itoa(n))
}
