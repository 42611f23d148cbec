package balanceoptimizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/schooltech/scheduler-core/internal/domain"
	"github.com/schooltech/scheduler-core/internal/pipeline/balanceoptimizer"
)

func makeSection(id domain.SectionId, course domain.CourseId, slot uint8, students []domain.StudentId) *domain.Section {
	s := domain.NewSection(id, course, 30)
	for d := uint8(0); d < 5; d++ {
		s.Periods = append(s.Periods, domain.NewPeriod(d, slot))
	}
	s.EnrolledStudents = students
	return s
}

func TestOptimizeBalancesSections(t *testing.T) {
	sections := []*domain.Section{
		makeSection("math-1", "math", 0, []domain.StudentId{"s1", "s2", "s3", "s4", "s5", "s6"}),
		makeSection("math-2", "math", 1, nil),
	}

	balanceoptimizer.Optimize(sections)

	diff := sections[0].Enrollment() - sections[1].Enrollment()
	if diff < 0 {
		diff = -diff
	}
	assert.LessOrEqual(t, diff, 1)
}

func TestOptimizeRespectsTimeConflicts(t *testing.T) {
	sections := []*domain.Section{
		makeSection("math-1", "math", 0, []domain.StudentId{"s1"}),
		makeSection("math-2", "math", 1, nil),
		makeSection("eng-1", "eng", 1, []domain.StudentId{"s1"}),
	}

	balanceoptimizer.Optimize(sections)

	for _, id := range sections[1].EnrolledStudents {
		assert.NotEqual(t, domain.StudentId("s1"), id, "s1 cannot move into math-2 while also enrolled in eng-1 at the same slot")
	}
}

func TestBalanceScoreIsZeroWhenEven(t *testing.T) {
	sections := []*domain.Section{
		makeSection("math-1", "math", 0, []domain.StudentId{"s1", "s2"}),
		makeSection("math-2", "math", 1, []domain.StudentId{"s3", "s4"}),
	}

	assert.Equal(t, 0.0, balanceoptimizer.BalanceScore(sections))
}

func TestBalanceScoreIgnoresSingleSectionCourses(t *testing.T) {
	sections := []*domain.Section{
		makeSection("art-1", "art", 0, []domain.StudentId{"s1", "s2", "s3"}),
	}

	assert.Equal(t, 0.0, balanceoptimizer.BalanceScore(sections))
}
