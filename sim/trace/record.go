// Package trace provides per-step decision recording for policy evaluation.
// It stores pure data; the sim types it holds are immutable snapshots.
package trace

import "github.com/dealer-sim/dealer-sim/sim"

// StepRecord captures one row of an iteration: the state the policy saw, the
// decision it took and what the step produced. The terminal row of an
// iteration has Terminal set, carries the final state and no decision.
type StepRecord struct {
	Iteration           int
	T                   int
	CumulativeObjective float64 // objective accumulated before this step
	State               sim.State
	Decision            sim.Decision
	Profit              sim.Profit
	CarsSold            map[sim.CarModel]int
	CarsAdded           map[sim.CarModel]int
	Terminal            bool
}

// IterationRecord captures the outcome of one Monte Carlo iteration.
type IterationRecord struct {
	Iteration   int
	Steps       int     // accepted steps
	Performance float64 // terminal cumulative objective; NaN when undefined
	Aborted     bool
	Reason      string // why the iteration was aborted
}
