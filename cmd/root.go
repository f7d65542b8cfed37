package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/dealer-sim/dealer-sim/sim"
	"github.com/dealer-sim/dealer-sim/sim/dataset"
	"github.com/dealer-sim/dealer-sim/sim/policy"
	"github.com/dealer-sim/dealer-sim/sim/runner"
	"github.com/dealer-sim/dealer-sim/sim/trace"
)

var (
	// CLI flags
	seed             int64  // Seed for the demand random stream
	horizon          int    // Number of periods per iteration
	iterations       int    // Number of Monte Carlo iterations
	maxInventory     int    // Lot capacity across the fleet
	policyName       string // Policy to evaluate
	scenarioPath     string // YAML scenario file
	initialStatePath string // CSV export of the starting lot
	marketTrendsPath string // CSV export of the market-trend reference
	ledgerPath       string // CSV output for the per-step ledger
	traceLevel       string // Trace verbosity (none, steps)
	resetPRNG        bool   // Rewind the random stream every iteration
	requireTrends    bool   // Fail when no market-trend reference is given
	logLevel         string // Log verbosity level
	dotenvPath       string // Optional .env file with DEALER_SIM_* defaults
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "dealer-sim",
	Short: "Sequential inventory decision simulator for a car dealership",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadDotEnv(dotenvPath); err != nil {
			return fmt.Errorf("loading %s: %w", dotenvPath, err)
		}
		return applyEnvDefaults(cmd.Flags())
	},
}

// runCmd evaluates a policy using parameters from the scenario and CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Evaluate a restocking policy by Monte Carlo simulation",
	Run: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		sc, err := resolveScenario(cmd)
		if err != nil {
			logrus.Fatalf("%v", err)
		}

		s0 := DemoInitialState()
		if sc.InitialStateFile != "" {
			if s0, err = dataset.LoadInitialState(sc.InitialStateFile); err != nil {
				logrus.Fatalf("%v", err)
			}
		} else {
			logrus.Infof("No initial state file configured; using the demo lot")
		}

		var market *sim.MarketTable
		if sc.MarketTrendsFile != "" {
			if market, err = dataset.LoadMarketTable(sc.MarketTrendsFile); err != nil {
				logrus.Fatalf("%v", err)
			}
			logrus.Infof("Loaded %d market-trend rows from %s", market.Len(), sc.MarketTrendsFile)
		}

		model, err := sim.NewModel(s0, sc.Model, market)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		p, err := policy.NewPolicy(sc.Policy.Name, sc.PolicyConfig(s0))
		if err != nil {
			logrus.Fatalf("%v", err)
		}

		r := runner.New(model, runner.Config{
			ResetPRNG:  sc.Runner.ResetPRNG,
			TraceLevel: trace.TraceLevel(sc.Runner.TraceLevel),
		})
		result, err := r.Run(p, sc.Runner.Iterations)
		if result != nil {
			printEvaluation(os.Stdout, result)
		}
		if err != nil {
			logrus.Fatalf("Evaluation failed: %v", err)
		}

		if ledgerPath != "" {
			if err := writeLedger(ledgerPath, result.Trace); err != nil {
				logrus.Fatalf("%v", err)
			}
			logrus.Infof("Wrote ledger to %s", ledgerPath)
		}
		logrus.Info("Simulation complete.")
	},
}

// resolveScenario loads the scenario file (if any) and applies changed flags on top.
func resolveScenario(cmd *cobra.Command) (*Scenario, error) {
	sc := DefaultScenario()
	if scenarioPath != "" {
		loaded, err := LoadScenario(scenarioPath)
		if err != nil {
			return nil, err
		}
		sc = *loaded
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		sc.Model.Seed = seed
	}
	if flags.Changed("horizon") {
		sc.Model.Horizon = horizon
	}
	if flags.Changed("max-inventory") {
		sc.Model.MaxInventory = maxInventory
	}
	if flags.Changed("require-market-trends") {
		sc.Model.RequireMarketTrends = requireTrends
	}
	if flags.Changed("iterations") {
		sc.Runner.Iterations = iterations
	}
	if flags.Changed("reset-prng") {
		sc.Runner.ResetPRNG = resetPRNG
	}
	if flags.Changed("trace-level") {
		sc.Runner.TraceLevel = traceLevel
	}
	if flags.Changed("policy") {
		sc.Policy.Name = policyName
	}
	if flags.Changed("initial-state") {
		sc.InitialStateFile = initialStatePath
	}
	if flags.Changed("market-trends") {
		sc.MarketTrendsFile = marketTrendsPath
	}
	if ledgerPath != "" && sc.Runner.TraceLevel != string(trace.TraceLevelSteps) {
		logrus.Infof("--ledger requires step tracing; enabling trace level %q", trace.TraceLevelSteps)
		sc.Runner.TraceLevel = string(trace.TraceLevelSteps)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	defaults := DefaultScenario()

	rootCmd.PersistentFlags().StringVar(&dotenvPath, "env-file", ".env", "Optional .env file providing DEALER_SIM_* defaults")

	runCmd.Flags().Int64Var(&seed, "seed", defaults.Model.Seed, "Seed for the demand random stream")
	runCmd.Flags().IntVar(&horizon, "horizon", defaults.Model.Horizon, "Number of periods per iteration")
	runCmd.Flags().IntVar(&iterations, "iterations", defaults.Runner.Iterations, "Number of Monte Carlo iterations")
	runCmd.Flags().IntVar(&maxInventory, "max-inventory", defaults.Model.MaxInventory, "Lot capacity across the fleet")
	runCmd.Flags().StringVar(&policyName, "policy", defaults.Policy.Name, fmt.Sprintf("Policy to evaluate %v", policy.ValidPolicyNames()))
	runCmd.Flags().StringVar(&scenarioPath, "scenario", "", "YAML scenario file")
	runCmd.Flags().StringVar(&initialStatePath, "initial-state", "", "CSV export of the starting lot")
	runCmd.Flags().StringVar(&marketTrendsPath, "market-trends", "", "CSV export of the market-trend reference")
	runCmd.Flags().StringVar(&ledgerPath, "ledger", "", "Write the per-step ledger to this CSV file")
	runCmd.Flags().StringVar(&traceLevel, "trace-level", defaults.Runner.TraceLevel, "Trace verbosity (none, steps)")
	runCmd.Flags().BoolVar(&resetPRNG, "reset-prng", false, "Rewind the random stream at the start of every iteration")
	runCmd.Flags().BoolVar(&requireTrends, "require-market-trends", false, "Fail when no market-trend reference is given")
	runCmd.Flags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}
