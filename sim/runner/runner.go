// Package runner evaluates a policy against the dealership model by Monte
// Carlo repetition.
package runner

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"

	"github.com/dealer-sim/dealer-sim/sim"
	"github.com/dealer-sim/dealer-sim/sim/policy"
	"github.com/dealer-sim/dealer-sim/sim/trace"
)

// ErrNoPerformance is returned, together with the full result, when no
// iteration produced a defined performance.
var ErrNoPerformance = errors.New("no iteration produced a defined performance")

// Config controls how iterations are repeated.
type Config struct {
	// ResetPRNG rewinds the random stream at the start of every iteration,
	// making all iterations identical. Leave false for independent draws.
	ResetPRNG bool
	// TraceLevel selects how much per-step detail is kept.
	TraceLevel trace.TraceLevel
}

// Runner drives the State -> Decision -> Transition -> Objective loop.
type Runner struct {
	model *sim.Model
	cfg   Config
}

// New creates a Runner over model. The model itself is never stepped; each
// iteration works on a clone that shares the model's random stream.
func New(model *sim.Model, cfg Config) *Runner {
	return &Runner{model: model, cfg: cfg}
}

// Run evaluates p over n iterations and returns the mean terminal objective
// together with the per-iteration detail. An iteration whose decision fails
// validation is aborted and excluded from the mean, as is any iteration whose
// performance is not a finite number. When every iteration is excluded the
// result is still returned, with a NaN Performance, alongside
// ErrNoPerformance.
func (r *Runner) Run(p policy.Policy, n int) (*EvaluationResult, error) {
	if p == nil {
		return nil, fmt.Errorf("policy is nil")
	}
	if n <= 0 {
		return nil, fmt.Errorf("iterations must be positive, got %d", n)
	}

	start := time.Now()
	tr := trace.NewSimulationTrace(trace.TraceConfig{Level: r.cfg.TraceLevel})
	results := make([]IterationResult, 0, n)
	defined := make([]float64, 0, n)

	logrus.Infof("evaluating policy %q: iterations=%d horizon=%d reset_prng=%v",
		p.Name(), n, r.model.Horizon(), r.cfg.ResetPRNG)

	for i := 0; i < n; i++ {
		res := r.runIteration(i, p, tr)
		results = append(results, res)

		rec := trace.IterationRecord{Iteration: i, Steps: res.Steps, Performance: res.Performance}
		if res.Err != nil {
			rec.Aborted = true
			rec.Reason = res.Err.Error()
		}
		tr.RecordIteration(rec)

		if res.Err == nil && trace.IsDefined(res.Performance) {
			defined = append(defined, res.Performance)
		}
	}

	undefined := n - len(defined)
	if undefined > 0 {
		logrus.Warnf("for %d of %d iterations the performance was undefined and is excluded from the mean", undefined, n)
	}
	if len(defined) == 0 {
		return NewEvaluationResult(p.Name(), results, math.NaN(), undefined, tr, time.Since(start)), ErrNoPerformance
	}

	result := NewEvaluationResult(p.Name(), results, stat.Mean(defined, nil), undefined, tr, time.Since(start))
	logrus.Infof("policy %q performance=%.2f over %d iterations (run %s)",
		p.Name(), result.Performance, len(defined), result.RunID)
	return result, nil
}

func (r *Runner) runIteration(i int, p policy.Policy, tr *trace.SimulationTrace) IterationResult {
	m := r.model.Clone()
	m.Reset(r.cfg.ResetPRNG)

	steps := 0
	for !m.IsFinished() {
		state := m.State()
		decision := m.BuildDecision(p.Decide(policy.NewContext(m)))
		cumulative := m.Objective()

		out, err := m.Step(decision)
		if err != nil {
			var verr *sim.ValidationError
			if errors.As(err, &verr) {
				logrus.Warnf("iteration %d aborted at t=%d: %v", i, m.T(), err)
			} else {
				logrus.Errorf("iteration %d failed at t=%d: %v", i, m.T(), err)
			}
			return IterationResult{Iteration: i, Performance: math.NaN(), Steps: steps, Err: fmt.Errorf("iteration %d at t=%d: %w", i, m.T(), err)}
		}
		steps++

		tr.RecordStep(trace.StepRecord{
			Iteration:           i,
			T:                   out.T,
			CumulativeObjective: cumulative,
			State:               state,
			Decision:            decision,
			Profit:              out.Profit,
			CarsSold:            out.CarsSold,
			CarsAdded:           out.CarsAdded,
		})
	}

	tr.RecordStep(trace.StepRecord{
		Iteration:           i,
		T:                   m.T(),
		CumulativeObjective: m.Objective(),
		State:               m.State(),
		Terminal:            true,
	})

	return IterationResult{Iteration: i, Performance: m.Objective(), Steps: steps}
}
