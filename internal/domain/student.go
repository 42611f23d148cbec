package domain

// Student represents an enrollee with a required-course list and ranked
// elective preferences. Position 0 in ElectivePreferences is the top pick.
type Student struct {
	Id                  StudentId  `json:"id" validate:"required"`
	Name                string     `json:"name" validate:"required"`
	Grade               int        `json:"grade" validate:"required"`
	RequiredCourses     []CourseId `json:"required_courses"`
	ElectivePreferences []CourseId `json:"elective_preferences"`
}

// WantsCourse reports whether the student requested c, as required or
// elective.
func (s *Student) WantsCourse(c CourseId) bool {
	for _, rc := range s.RequiredCourses {
		if rc == c {
			return true
		}
	}
	for _, ec := range s.ElectivePreferences {
		if ec == c {
			return true
		}
	}
	return false
}

// IsRequired reports whether c is one of the student's required courses.
func (s *Student) IsRequired(c CourseId) bool {
	for _, rc := range s.RequiredCourses {
		if rc == c {
			return true
		}
	}
	return false
}

// ElectiveRank returns the 0-based rank of c in ElectivePreferences and
// true, or (0, false) if c is not an elective of this student.
func (s *Student) ElectiveRank(c CourseId) (int, bool) {
	for rank, ec := range s.ElectivePreferences {
		if ec == c {
			return rank, true
		}
	}
	return 0, false
}

// AllRequestedCourses returns the union of required and elective course
// ids, in a deterministic order (required first, then electives, first
// occurrence wins).
func (s *Student) AllRequestedCourses() []CourseId {
	seen := make(map[CourseId]struct{}, len(s.RequiredCourses)+len(s.ElectivePreferences))
	out := make([]CourseId, 0, len(s.RequiredCourses)+len(s.ElectivePreferences))
	for _, c := range s.RequiredCourses {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	for _, c := range s.ElectivePreferences {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}
