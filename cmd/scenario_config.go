package cmd

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dealer-sim/dealer-sim/sim"
	"github.com/dealer-sim/dealer-sim/sim/policy"
	"github.com/dealer-sim/dealer-sim/sim/trace"
)

// Scenario is the full scenario.yaml structure. Fields absent from the file
// keep the values of DefaultScenario.
type Scenario struct {
	Model            sim.ModelConfig `yaml:"model"`
	InitialStateFile string          `yaml:"initial_state_file"`
	MarketTrendsFile string          `yaml:"market_trends_file"`
	Policy           PolicySection   `yaml:"policy"`
	Runner           RunnerSection   `yaml:"runner"`
}

// PolicySection selects the policy and its thresholds.
// Nil Thresholds means "use the stock seasonal tables"; nil ThetaMin/ThetaMax
// means "derive from the starting stock".
type PolicySection struct {
	Name       string                     `yaml:"name"`
	Thresholds *policy.SeasonalThresholds `yaml:"thresholds"`
	ThetaMin   map[sim.CarModel]int       `yaml:"theta_min"`
	ThetaMax   map[sim.CarModel]int       `yaml:"theta_max"`
}

// RunnerSection controls Monte Carlo repetition.
type RunnerSection struct {
	Iterations int    `yaml:"iterations"`
	ResetPRNG  bool   `yaml:"reset_prng"`
	TraceLevel string `yaml:"trace_level"`
}

// DefaultScenario returns the scenario used when no file is given.
func DefaultScenario() Scenario {
	return Scenario{
		Model:  sim.DefaultModelConfig(),
		Policy: PolicySection{Name: policy.NameOrderUpTo},
		Runner: RunnerSection{Iterations: 10, TraceLevel: string(trace.TraceLevelNone)},
	}
}

// LoadScenario reads path on top of DefaultScenario.
// Uses strict field checking: typos must cause errors.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	sc := DefaultScenario()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&sc); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Validate checks policy names and runner parameters. Model parameters are
// validated by sim.NewModel.
func (s *Scenario) Validate() error {
	if !policy.ValidPolicies[s.Policy.Name] {
		return fmt.Errorf("unknown policy %q; valid policies: %v", s.Policy.Name, policy.ValidPolicyNames())
	}
	if s.Runner.Iterations <= 0 {
		return fmt.Errorf("runner.iterations must be positive, got %d", s.Runner.Iterations)
	}
	if !trace.IsValidTraceLevel(s.Runner.TraceLevel) {
		return fmt.Errorf("unknown trace level %q", s.Runner.TraceLevel)
	}
	for car, v := range s.Policy.ThetaMax {
		if v < 0 {
			return fmt.Errorf("policy.theta_max[%s] must be non-negative, got %d", car, v)
		}
	}
	return nil
}

// PolicyConfig resolves the policy parameters against the starting stock.
func (s *Scenario) PolicyConfig(s0 sim.InitialState) policy.Config {
	cfg := policy.Config{Seasonal: policy.DefaultSeasonalThresholds()}
	if s.Policy.Thresholds != nil {
		cfg.Seasonal = *s.Policy.Thresholds
	}
	derivedMin, derivedMax := policy.DeriveThresholds(fleetOf(s0), s0.InventoryLevel)
	cfg.ThetaMin, cfg.ThetaMax = derivedMin, derivedMax
	if s.Policy.ThetaMin != nil {
		cfg.ThetaMin = s.Policy.ThetaMin
	}
	if s.Policy.ThetaMax != nil {
		cfg.ThetaMax = s.Policy.ThetaMax
	}
	return cfg
}

func fleetOf(s0 sim.InitialState) []sim.CarModel {
	if len(s0.Fleet) > 0 {
		return s0.Fleet
	}
	fleet := make([]sim.CarModel, 0, len(s0.InventoryLevel))
	for car := range s0.InventoryLevel {
		fleet = append(fleet, car)
	}
	return fleet
}

// DemoInitialState is the three-car lot used when no initial-state file is
// configured.
func DemoInitialState() sim.InitialState {
	return sim.InitialState{
		Fleet:           []sim.CarModel{"Car A", "Car B", "Car C"},
		InventoryLevel:  map[sim.CarModel]int{"Car A": 8, "Car B": 12, "Car C": 6},
		HoldingTime:     map[sim.CarModel]int{"Car A": 2, "Car B": 5, "Car C": 1},
		CompetitorPrice: map[sim.CarModel]float64{"Car A": 23450, "Car B": 31200, "Car C": 18990},
		DemandForecast:  map[sim.CarModel]float64{"Car A": 10, "Car B": 10, "Car C": 10},
	}
}
