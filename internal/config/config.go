package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tliron/commonlog"
	"github.com/xyproto/env/v2"
	"gopkg.in/yaml.v3"

	"localopts/internal/ir"
)

var log = commonlog.GetLogger("localopts.config")

// Environment variables consulted by ApplyEnv
const (
	EnvPasses  = "LOCALOPTS_PASSES"
	EnvVerbose = "LOCALOPTS_VERBOSE"
	EnvLog     = "LOCALOPTS_LOG"
	EnvNoColor = "NO_COLOR"
)

// Config holds the settings shared by every localopt command
type Config struct {
	Passes    []string `yaml:"passes"`
	Verbosity int      `yaml:"verbosity"`
	Color     bool     `yaml:"color"`
	LogFile   string   `yaml:"log_file"`
}

// Default returns the configuration used when nothing else is given
func Default() *Config {
	passes := make([]string, len(ir.DefaultPasses))
	copy(passes, ir.DefaultPasses)
	return &Config{
		Passes: passes,
		Color:  true,
	}
}

// Load reads the YAML file at path over the defaults and then applies
// environment overrides. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := cfg.decode(data); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}
	cfg.ApplyEnv()
	return cfg, nil
}

func (c *Config) decode(data []byte) error {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	if c.Verbosity < 0 {
		return fmt.Errorf("verbosity must not be negative, got %d", c.Verbosity)
	}
	return nil
}

// ApplyEnv overrides fields from the environment. A pass list that names
// no pass is ignored.
func (c *Config) ApplyEnv() {
	if raw := env.Str(EnvPasses); strings.TrimSpace(raw) != "" {
		if passes := SplitPasses(raw); len(passes) > 0 {
			c.Passes = passes
		} else {
			log.Warningf("%s=%q names no passes, keeping %v", EnvPasses, raw, c.Passes)
		}
	}
	c.Verbosity = env.Int(EnvVerbose, c.Verbosity)
	c.LogFile = env.Str(EnvLog, c.LogFile)
	if env.Has(EnvNoColor) {
		c.Color = false
	}
}

// SplitPasses parses a comma separated pass list, dropping empty entries
func SplitPasses(list string) []string {
	var passes []string
	for _, name := range strings.Split(list, ",") {
		if name = strings.TrimSpace(name); name != "" {
			passes = append(passes, name)
		}
	}
	return passes
}
