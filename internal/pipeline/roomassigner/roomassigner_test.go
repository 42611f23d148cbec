package roomassigner_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schooltech/scheduler-core/internal/domain"
	"github.com/schooltech/scheduler-core/internal/pipeline/roomassigner"
)

func TestAssignRespectsCapacity(t *testing.T) {
	courses := []domain.Course{
		{Id: "math", MaxStudents: 25, Sections: 1},
	}
	rooms := []domain.Room{
		{Id: "small", Capacity: 20},
		{Id: "medium", Capacity: 30},
	}
	section := domain.NewSection("math-1", "math", 25)
	section.Periods = []domain.Period{domain.NewPeriod(0, 0)}
	sections := []*domain.Section{section}

	roomassigner.Assign(sections, rooms, courses)

	require.NotNil(t, sections[0].RoomId)
	assert.Equal(t, domain.RoomId("medium"), *sections[0].RoomId)
}

func TestAssignRespectsRequiredFeatures(t *testing.T) {
	courses := []domain.Course{
		{Id: "chem", MaxStudents: 25, Sections: 1, RequiredFeatures: []string{"lab"}},
	}
	rooms := []domain.Room{
		{Id: "regular", Capacity: 30},
		{Id: "lab", Capacity: 30, Features: []string{"lab"}},
	}
	section := domain.NewSection("chem-1", "chem", 25)
	section.Periods = []domain.Period{domain.NewPeriod(0, 0)}
	sections := []*domain.Section{section}

	roomassigner.Assign(sections, rooms, courses)

	require.NotNil(t, sections[0].RoomId)
	assert.Equal(t, domain.RoomId("lab"), *sections[0].RoomId)
}

func TestAssignProcessesMostConstrainedFirst(t *testing.T) {
	courses := []domain.Course{
		{Id: "chem", MaxStudents: 20, Sections: 1, RequiredFeatures: []string{"lab"}},
		{Id: "art", MaxStudents: 20, Sections: 1},
	}
	rooms := []domain.Room{
		{Id: "only-lab", Capacity: 20, Features: []string{"lab"}},
	}
	chem := domain.NewSection("chem-1", "chem", 20)
	chem.Periods = []domain.Period{domain.NewPeriod(0, 0)}
	art := domain.NewSection("art-1", "art", 20)
	art.Periods = []domain.Period{domain.NewPeriod(0, 0)}
	sections := []*domain.Section{art, chem}

	roomassigner.Assign(sections, rooms, courses)

	require.NotNil(t, chem.RoomId)
	assert.Equal(t, domain.RoomId("only-lab"), *chem.RoomId)
	assert.Nil(t, art.RoomId, "the only lab room should go to the feature-constrained section")
}

func TestAssignLeavesSectionRoomlessWhenNoneFit(t *testing.T) {
	courses := []domain.Course{{Id: "math", MaxStudents: 50, Sections: 1}}
	rooms := []domain.Room{{Id: "small", Capacity: 10}}
	section := domain.NewSection("math-1", "math", 50)
	section.Periods = []domain.Period{domain.NewPeriod(0, 0)}
	sections := []*domain.Section{section}

	roomassigner.Assign(sections, rooms, courses)

	assert.Nil(t, sections[0].RoomId)
}

func TestAssignAvoidsDoubleBookingRoom(t *testing.T) {
	courses := []domain.Course{
		{Id: "math", MaxStudents: 20, Sections: 1},
		{Id: "art", MaxStudents: 20, Sections: 1},
	}
	rooms := []domain.Room{{Id: "only", Capacity: 20}}
	math := domain.NewSection("math-1", "math", 20)
	math.Periods = []domain.Period{domain.NewPeriod(0, 0)}
	art := domain.NewSection("art-1", "art", 20)
	art.Periods = []domain.Period{domain.NewPeriod(0, 0)}
	sections := []*domain.Section{math, art}

	roomassigner.Assign(sections, rooms, courses)

	require.NotNil(t, math.RoomId)
	assert.Nil(t, art.RoomId, "both sections meet at the same period so only one can take the single room")
}
