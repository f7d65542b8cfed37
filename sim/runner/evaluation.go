package runner

import (
	"time"

	"github.com/google/uuid"

	"github.com/dealer-sim/dealer-sim/sim/trace"
)

// IterationResult is the outcome of one Monte Carlo iteration.
type IterationResult struct {
	Iteration   int
	Performance float64 // terminal cumulative objective; NaN when undefined
	Steps       int
	Err         error // non-nil when the iteration was aborted
}

// EvaluationResult bundles all outputs from a policy evaluation.
type EvaluationResult struct {
	RunID       uuid.UUID
	PolicyName  string
	Iterations  []IterationResult
	Performance float64 // mean of the defined iteration performances
	Undefined   int     // iterations excluded from Performance
	Trace       *trace.SimulationTrace
	Summary     *trace.TraceSummary

	WallTime time.Duration // wall-clock duration of Run()
}

// NewEvaluationResult constructs an EvaluationResult with a fresh run ID.
func NewEvaluationResult(policyName string, iterations []IterationResult, performance float64, undefined int, tr *trace.SimulationTrace, wallTime time.Duration) *EvaluationResult {
	return &EvaluationResult{
		RunID:       uuid.New(),
		PolicyName:  policyName,
		Iterations:  iterations,
		Performance: performance,
		Undefined:   undefined,
		Trace:       tr,
		Summary:     trace.Summarize(tr),
		WallTime:    wallTime,
	}
}

// Performances returns the per-iteration performances in iteration order,
// including undefined ones.
func (r *EvaluationResult) Performances() []float64 {
	out := make([]float64, len(r.Iterations))
	for i, it := range r.Iterations {
		out[i] = it.Performance
	}
	return out
}
