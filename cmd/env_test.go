package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEnvFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Int64("seed", 42, "")
	fs.String("log", "warn", "")
	fs.String("scenario", "", "")
	return fs
}

func TestApplyEnvDefaults_UnchangedFlagsTakeEnv(t *testing.T) {
	// GIVEN seed and log level in the environment
	t.Setenv(envSeed, "99")
	t.Setenv(envLogLevel, "debug")
	fs := newEnvFlagSet()

	// WHEN defaults are applied
	require.NoError(t, applyEnvDefaults(fs))

	// THEN the flags carry the environment values
	seed, err := fs.GetInt64("seed")
	require.NoError(t, err)
	assert.Equal(t, int64(99), seed)
	lvl, err := fs.GetString("log")
	require.NoError(t, err)
	assert.Equal(t, "debug", lvl)
}

func TestApplyEnvDefaults_ExplicitFlagWins(t *testing.T) {
	t.Setenv(envSeed, "99")
	fs := newEnvFlagSet()
	require.NoError(t, fs.Parse([]string{"--seed", "7"}))

	require.NoError(t, applyEnvDefaults(fs))

	seed, err := fs.GetInt64("seed")
	require.NoError(t, err)
	assert.Equal(t, int64(7), seed)
}

func TestApplyEnvDefaults_BadValue_ReturnsError(t *testing.T) {
	t.Setenv(envSeed, "forty-two")
	assert.Error(t, applyEnvDefaults(newEnvFlagSet()))
}

func TestLoadDotEnv(t *testing.T) {
	// missing file is not an error
	assert.NoError(t, loadDotEnv(filepath.Join(t.TempDir(), ".env")))

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("DEALER_SIM_SCENARIO=from-dotenv.yaml\n"), 0o644))
	t.Setenv(envScenario, "")
	require.NoError(t, os.Unsetenv(envScenario))

	require.NoError(t, loadDotEnv(path))
	assert.Equal(t, "from-dotenv.yaml", os.Getenv(envScenario))
}
