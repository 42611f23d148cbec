// Package solver defines the narrow interface the student assigner needs
// from a binary optimization backend, so the ILP model-building code does
// not depend on a specific MIP library.
package solver

import "context"

// Var is an opaque handle to a decision variable. Callers never inspect
// it; they hand it back to the Model or Solution that produced it.
type Var interface{}

// Model accumulates decision variables, an objective, and constraints for
// a binary assignment problem: maximize a weighted sum of variables
// subject to group-exclusivity, capacity, and pairwise-conflict
// constraints.
type Model interface {
	// NewBinaryVar allocates a new 0/1 decision variable.
	NewBinaryVar() Var

	// AddObjectiveTerm adds weight*v to the maximization objective.
	AddObjectiveTerm(weight float64, v Var)

	// AddAtMostOne constrains sum(vars) <= 1.
	AddAtMostOne(vars []Var)

	// AddAtMost constrains sum(vars) <= limit.
	AddAtMost(vars []Var, limit float64)

	// AddPairwiseConflict constrains a+b <= 1.
	AddPairwiseConflict(a, b Var)
}

// Solution reports the optimized value assigned to each variable. A
// value > 0.5 means the variable was selected.
type Solution interface {
	Value(v Var) float64
}

// Engine builds a fresh Model and solves it.
type Engine interface {
	NewModel() Model
	Solve(ctx context.Context, m Model) (Solution, error)
}
