package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/dealer-sim/dealer-sim/sim/runner"
	"github.com/dealer-sim/dealer-sim/sim/trace"
)

// printEvaluation displays the aggregated evaluation at the end of a run.
func printEvaluation(w io.Writer, res *runner.EvaluationResult) {
	fmt.Fprintln(w, "=== Policy Evaluation ===")
	fmt.Fprintf(w, "Run ID               : %s\n", res.RunID)
	fmt.Fprintf(w, "Policy               : %s\n", res.PolicyName)
	fmt.Fprintf(w, "Iterations           : %d\n", len(res.Iterations))
	fmt.Fprintf(w, "Performance (mean)   : %.2f\n", res.Performance)
	if s := res.Summary; s != nil && s.Completed > 0 {
		fmt.Fprintf(w, "Performance (stddev) : %.2f\n", s.StdDevPerformance)
		fmt.Fprintf(w, "Performance (min/max): %.2f / %.2f\n", s.MinPerformance, s.MaxPerformance)
	}
	if res.Undefined > 0 {
		fmt.Fprintf(w, "Undefined iterations : %d\n", res.Undefined)
	}
	for _, it := range res.Iterations {
		if it.Err != nil {
			fmt.Fprintf(w, "  iteration %d aborted: %v\n", it.Iteration, it.Err)
			continue
		}
		fmt.Fprintf(w, "  iteration %d: %.2f after %d steps\n", it.Iteration, it.Performance, it.Steps)
	}
	fmt.Fprintf(w, "Wall time            : %s\n", res.WallTime)
}

// writeLedger saves the step trace as CSV.
func writeLedger(path string, st *trace.SimulationTrace) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating ledger: %w", err)
	}
	if err := trace.WriteCSV(f, st); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing ledger: %w", err)
	}
	return f.Close()
}
