// Package pipeline wires the five scheduling phases — section
// construction, time assignment, room assignment, ILP student
// assignment, and balance optimization — into one deterministic
// Generate call.
package pipeline

import (
	"context"
	"time"

	"github.com/schooltech/scheduler-core/internal/domain"
	"github.com/schooltech/scheduler-core/internal/pipeline/balanceoptimizer"
	"github.com/schooltech/scheduler-core/internal/pipeline/roomassigner"
	"github.com/schooltech/scheduler-core/internal/pipeline/sectionbuilder"
	"github.com/schooltech/scheduler-core/internal/pipeline/studentassigner"
	"github.com/schooltech/scheduler-core/internal/pipeline/studentassigner/solver"
	"github.com/schooltech/scheduler-core/internal/pipeline/timeassigner"
)

// PhaseObserver receives the wall-clock duration of each named phase.
// Callers that don't care about instrumentation pass a nil observer.
type PhaseObserver interface {
	ObservePhase(phase string, d time.Duration)
}

// Generate runs the full pipeline against input and returns the
// resulting schedule, stamped with generation metadata. The solve
// duration spent inside phase 4 is not separately tracked here;
// callers that need it should wrap engine.
func Generate(ctx context.Context, engine solver.Engine, input domain.ScheduleInput, observer PhaseObserver) (*domain.Schedule, error) {
	start := time.Now()

	sections := timed(observer, "section_build", func() []*domain.Section {
		return sectionbuilder.Build(input.Courses, input.Teachers)
	})

	runTimed(observer, "time_assign", func() {
		timeassigner.Assign(sections, input.Courses, input.Teachers, input.Config)
	})

	runTimed(observer, "room_assign", func() {
		roomassigner.Assign(sections, input.Rooms, input.Courses)
	})

	var unassigned []domain.UnassignedCourse
	phaseStart := time.Now()
	unassigned, err := studentassigner.Assign(ctx, engine, sections, input.Students, input.Courses)
	if observer != nil {
		observer.ObservePhase("student_assign", time.Since(phaseStart))
	}
	if err != nil {
		return nil, err
	}

	runTimed(observer, "balance_optimize", func() {
		balanceoptimizer.Optimize(sections)
	})

	return &domain.Schedule{
		Sections:   sections,
		Unassigned: unassigned,
		Metadata: domain.ScheduleMetadata{
			GeneratedAt:      time.Now().UTC(),
			AlgorithmVersion: domain.AlgorithmVersion,
			SolveTimeMs:      time.Since(start).Milliseconds(),
		},
	}, nil
}

func runTimed(observer PhaseObserver, phase string, fn func()) {
	start := time.Now()
	fn()
	if observer != nil {
		observer.ObservePhase(phase, time.Since(start))
	}
}

func timed(observer PhaseObserver, phase string, fn func() []*domain.Section) []*domain.Section {
	start := time.Now()
	result := fn()
	if observer != nil {
		observer.ObservePhase(phase, time.Since(start))
	}
	return result
}
