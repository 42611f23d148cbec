// Package nextmvsolver adapts github.com/nextmv-io/sdk/mip to the
// solver.Engine interface, using the HiGHS backend for exact student
// assignment optimization.
package nextmvsolver

import (
	"context"
	"fmt"
	"time"

	"github.com/nextmv-io/sdk/mip"

	"github.com/schooltech/scheduler-core/internal/pipeline/studentassigner/solver"
)

// MaxSolveDuration bounds how long HiGHS is allowed to search before
// returning its best incumbent.
const MaxSolveDuration = 30 * time.Second

// Engine solves via the nextmv HiGHS MIP backend.
type Engine struct{}

// New returns a nextmv-backed solver.Engine.
func New() Engine {
	return Engine{}
}

func (Engine) NewModel() solver.Model {
	m := mip.NewModel()
	m.Objective().SetMaximize()
	return &modelAdapter{model: m}
}

func (Engine) Solve(ctx context.Context, m solver.Model) (solver.Solution, error) {
	adapter, ok := m.(*modelAdapter)
	if !ok {
		return nil, fmt.Errorf("nextmvsolver: model not built by this engine")
	}

	s, err := mip.NewSolver(mip.Highs, adapter.model)
	if err != nil {
		return nil, fmt.Errorf("nextmvsolver: create solver: %w", err)
	}

	solution, err := s.Solve(mip.SolveOptions{Duration: MaxSolveDuration})
	if err != nil {
		return nil, fmt.Errorf("nextmvsolver: solve: %w", err)
	}
	if solution == nil || (!solution.IsOptimal() && !solution.IsSubOptimal()) {
		return nil, fmt.Errorf("nextmvsolver: no feasible solution found")
	}

	return &solutionAdapter{solution: solution}, nil
}

type modelAdapter struct {
	model mip.Model
}

func (a *modelAdapter) NewBinaryVar() solver.Var {
	return a.model.NewBool()
}

func (a *modelAdapter) AddObjectiveTerm(weight float64, v solver.Var) {
	a.model.Objective().NewTerm(weight, v.(mip.Bool))
}

func (a *modelAdapter) AddAtMostOne(vars []solver.Var) {
	a.AddAtMost(vars, 1.0)
}

func (a *modelAdapter) AddAtMost(vars []solver.Var, limit float64) {
	if len(vars) == 0 {
		return
	}
	c := a.model.NewConstraint(mip.LessThanOrEqual, limit)
	for _, v := range vars {
		c.NewTerm(1.0, v.(mip.Bool))
	}
}

func (a *modelAdapter) AddPairwiseConflict(x, y solver.Var) {
	c := a.model.NewConstraint(mip.LessThanOrEqual, 1.0)
	c.NewTerm(1.0, x.(mip.Bool))
	c.NewTerm(1.0, y.(mip.Bool))
}

type solutionAdapter struct {
	solution mip.Solution
}

func (s *solutionAdapter) Value(v solver.Var) float64 {
	return s.solution.Value(v.(mip.Bool))
}
