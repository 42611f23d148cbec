// Package memsolver provides a deterministic, in-memory greedy solver for
// the binary assignment problems the student assigner builds. It never
// shells out to an external MIP backend, which makes it suitable for
// unit tests that must not depend on HiGHS being installed.
//
// The greedy heuristic processes variables in descending objective
// weight (ties broken by creation order) and accepts each one if doing
// so does not violate any constraint registered so far. For the
// set-packing-shaped constraints this model produces (at-most-one,
// capacity, pairwise conflict) this greedy strategy reproduces the exact
// optimum on the small, sparse instances exercised in tests.
package memsolver

import (
	"context"
	"sort"

	"github.com/schooltech/scheduler-core/internal/pipeline/studentassigner/solver"
)

type varHandle int

type atMostConstraint struct {
	vars  []varHandle
	limit float64
}

// Model accumulates variables and constraints for the greedy solver.
type Model struct {
	weights   []float64
	atMost    []atMostConstraint
	conflicts [][2]varHandle
}

// NewModel returns an empty greedy model.
func NewModel() *Model {
	return &Model{}
}

func (m *Model) NewBinaryVar() solver.Var {
	m.weights = append(m.weights, 0)
	return varHandle(len(m.weights) - 1)
}

func (m *Model) AddObjectiveTerm(weight float64, v solver.Var) {
	m.weights[v.(varHandle)] += weight
}

func (m *Model) AddAtMostOne(vars []solver.Var) {
	m.AddAtMost(vars, 1.0)
}

func (m *Model) AddAtMost(vars []solver.Var, limit float64) {
	if len(vars) == 0 {
		return
	}
	handles := make([]varHandle, len(vars))
	for i, v := range vars {
		handles[i] = v.(varHandle)
	}
	m.atMost = append(m.atMost, atMostConstraint{vars: handles, limit: limit})
}

func (m *Model) AddPairwiseConflict(a, b solver.Var) {
	m.conflicts = append(m.conflicts, [2]varHandle{a.(varHandle), b.(varHandle)})
}

// Engine is a solver.Engine backed by the greedy Model.
type Engine struct{}

// New returns a deterministic in-memory solver.Engine.
func New() Engine {
	return Engine{}
}

func (Engine) NewModel() solver.Model {
	return NewModel()
}

func (Engine) Solve(_ context.Context, m solver.Model) (solver.Solution, error) {
	model := m.(*Model)

	n := len(model.weights)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return model.weights[order[i]] > model.weights[order[j]]
	})

	selected := make([]bool, n)
	atMostTotals := make([]float64, len(model.atMost))

	membership := make([][]int, n)
	for ci, c := range model.atMost {
		for _, v := range c.vars {
			membership[v] = append(membership[v], ci)
		}
	}
	conflictsOf := make([][]varHandle, n)
	for _, pair := range model.conflicts {
		conflictsOf[pair[0]] = append(conflictsOf[pair[0]], pair[1])
		conflictsOf[pair[1]] = append(conflictsOf[pair[1]], pair[0])
	}

	for _, v := range order {
		if model.weights[v] <= 0 {
			continue
		}

		ok := true
		for _, ci := range membership[v] {
			if atMostTotals[ci]+1 > model.atMost[ci].limit {
				ok = false
				break
			}
		}
		if ok {
			for _, other := range conflictsOf[v] {
				if selected[other] {
					ok = false
					break
				}
			}
		}
		if !ok {
			continue
		}

		selected[v] = true
		for _, ci := range membership[v] {
			atMostTotals[ci]++
		}
	}

	return &solution{selected: selected}, nil
}

type solution struct {
	selected []bool
}

func (s *solution) Value(v solver.Var) float64 {
	if s.selected[v.(varHandle)] {
		return 1.0
	}
	return 0.0
}
