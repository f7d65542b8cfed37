package trace

// TraceLevel controls the verbosity of decision tracing.
type TraceLevel string

const (
	// TraceLevelNone disables per-step tracing; iteration outcomes are still kept.
	TraceLevelNone TraceLevel = "none"
	// TraceLevelSteps captures every step plus the terminal row of each iteration.
	TraceLevelSteps TraceLevel = "steps"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:  true,
	TraceLevelSteps: true,
	"":              true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
}

// SimulationTrace collects records during a policy evaluation.
type SimulationTrace struct {
	Config     TraceConfig
	Steps      []StepRecord
	Iterations []IterationRecord
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace(config TraceConfig) *SimulationTrace {
	return &SimulationTrace{
		Config:     config,
		Steps:      make([]StepRecord, 0),
		Iterations: make([]IterationRecord, 0),
	}
}

// StepsEnabled reports whether step rows are kept.
func (st *SimulationTrace) StepsEnabled() bool {
	return st.Config.Level == TraceLevelSteps
}

// RecordStep appends a step record when step tracing is enabled.
func (st *SimulationTrace) RecordStep(record StepRecord) {
	if !st.StepsEnabled() {
		return
	}
	st.Steps = append(st.Steps, record)
}

// RecordIteration appends an iteration outcome.
func (st *SimulationTrace) RecordIteration(record IterationRecord) {
	st.Iterations = append(st.Iterations, record)
}

// StepsFor returns the step records of one iteration in recording order.
func (st *SimulationTrace) StepsFor(iteration int) []StepRecord {
	var out []StepRecord
	for _, r := range st.Steps {
		if r.Iteration == iteration {
			out = append(out, r)
		}
	}
	return out
}
