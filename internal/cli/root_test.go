package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"localopts/internal/config"
)

// execute runs the root command with args and returns stdout and stderr
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	for _, name := range []string{config.EnvPasses, config.EnvVerbose, config.EnvLog, config.EnvNoColor} {
		t.Setenv(name, "")
		require.NoError(t, os.Unsetenv(name))
	}

	cmd := NewRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--no-color"}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "localopt", cmd.Use)
	assert.Contains(t, cmd.Long, "strength reduction")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"opt", "info", "passes", "repl"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "0", verboseFlag.DefValue)

	configFlag := cmd.PersistentFlags().Lookup("config")
	require.NotNil(t, configFlag)
	assert.Equal(t, "", configFlag.DefValue)

	require.NotNil(t, cmd.PersistentFlags().Lookup("no-color"))
}

func TestOptCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	optCmd, _, err := cmd.Find([]string{"opt"})
	require.NoError(t, err)

	passFlag := optCmd.Flags().Lookup("pass")
	require.NotNil(t, passFlag)
	assert.Equal(t, "p", passFlag.Shorthand)

	outputFlag := optCmd.Flags().Lookup("output")
	require.NotNil(t, outputFlag)
	assert.Equal(t, "o", outputFlag.Shorthand)
}

func TestConfigFlag(t *testing.T) {
	cfgPath := writeFile(t, "localopt.yaml", "passes: [const-fold-opt]\n")
	irPath := writeFile(t, "f.ll", `define i32 @f(i32 %x) {
  %a = add i32 %x, 0
  %b = add i32 1, 2
  %c = add i32 %a, %b
  ret i32 %c
}
`)

	stdout, _, err := execute(t, "--config", cfgPath, "opt", irPath)
	require.NoError(t, err)
	// Only constant folding ran, so the identity survives
	assert.Contains(t, stdout, "%a = add i32 %x, 0")
	assert.Contains(t, stdout, "%c = add i32 %a, 3")
}

func TestBadConfig(t *testing.T) {
	cfgPath := writeFile(t, "localopt.yaml", "unknown: true\n")
	_, _, err := execute(t, "--config", cfgPath, "passes")
	assert.Error(t, err)
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "500ns", formatDuration(500))
	assert.Equal(t, "1.5μs", formatDuration(1500))
	assert.Equal(t, "2.0ms", formatDuration(2000000))
	assert.Equal(t, "1.50s", formatDuration(1500000000))
	assert.Equal(t, "2.00min", formatDuration(120000000000))
}
