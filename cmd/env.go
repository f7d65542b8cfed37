package cmd

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
)

// Environment variables that supply flag defaults. An explicit flag always wins.
const (
	envLogLevel = "DEALER_SIM_LOG"
	envScenario = "DEALER_SIM_SCENARIO"
	envSeed     = "DEALER_SIM_SEED"
)

// envFlagBindings maps flag names to the environment variable that can set them.
var envFlagBindings = map[string]string{
	"log":      envLogLevel,
	"scenario": envScenario,
	"seed":     envSeed,
}

// loadDotEnv loads dotenvPath into the process environment if it exists.
// Variables already set in the environment are not overridden.
func loadDotEnv(dotenvPath string) error {
	if err := godotenv.Load(dotenvPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	logrus.Debugf("loaded environment from %s", dotenvPath)
	return nil
}

// applyEnvDefaults sets every unchanged bound flag from its environment variable.
func applyEnvDefaults(flags *pflag.FlagSet) error {
	for name, env := range envFlagBindings {
		f := flags.Lookup(name)
		if f == nil || f.Changed {
			continue
		}
		v, ok := os.LookupEnv(env)
		if !ok || v == "" {
			continue
		}
		if err := flags.Set(name, v); err != nil {
			return err
		}
	}
	return nil
}
