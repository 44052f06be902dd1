package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets every variable ApplyEnv reads for the duration of the test
func clearEnv(t *testing.T) {
	for _, name := range []string{EnvPasses, EnvVerbose, EnvLog, EnvNoColor} {
		t.Setenv(name, "")
		require.NoError(t, os.Unsetenv(name))
	}
}

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "localopt.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, []string{"algebraic-identity", "strength-reduction", "const-fold-opt"}, cfg.Passes)
	assert.Equal(t, 0, cfg.Verbosity)
	assert.True(t, cfg.Color)
	assert.Empty(t, cfg.LogFile)
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `passes:
  - const-fold-opt
  - function-info
verbosity: 2
log_file: /tmp/localopt.log
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"const-fold-opt", "function-info"}, cfg.Passes)
	assert.Equal(t, 2, cfg.Verbosity)
	assert.Equal(t, "/tmp/localopt.log", cfg.LogFile)
	assert.True(t, cfg.Color, "fields missing from the file keep their defaults")
}

func TestLoadEmptyFile(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	clearEnv(t)

	_, err := Load(writeConfig(t, "pases: [const-fold-opt]\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoadRejectsNegativeVerbosity(t *testing.T) {
	clearEnv(t)

	_, err := Load(writeConfig(t, "verbosity: -1\n"))
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "passes: [function-info]\nverbosity: 1\ncolor: true\n")

	t.Setenv(EnvPasses, "strength-reduction, const-fold-opt,")
	t.Setenv(EnvVerbose, "3")
	t.Setenv(EnvLog, "opt.log")
	t.Setenv(EnvNoColor, "1")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"strength-reduction", "const-fold-opt"}, cfg.Passes)
	assert.Equal(t, 3, cfg.Verbosity)
	assert.Equal(t, "opt.log", cfg.LogFile)
	assert.False(t, cfg.Color)
}

func TestSplitPasses(t *testing.T) {
	assert.Nil(t, SplitPasses(""))
	assert.Nil(t, SplitPasses(" , ,"))
	assert.Equal(t, []string{"a", "b"}, SplitPasses("a,,b "))
}

func TestEmptyEnvPassesKeepConfiguredPasses(t *testing.T) {
	for _, value := range []string{"", " ", " , ,"} {
		t.Run("value "+value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(EnvPasses, value)

			cfg, err := Load(writeConfig(t, "passes: [function-info]\n"))
			require.NoError(t, err)
			assert.Equal(t, []string{"function-info"}, cfg.Passes)

			cfg, err = Load("")
			require.NoError(t, err)
			assert.Equal(t, Default().Passes, cfg.Passes)
		})
	}
}
