// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"agab/internal/filter"
)

// FileName is the config file picked up from the working directory when
// no --config flag is given.
const FileName = "agab.yaml"

// Config holds all pipeline configuration.
type Config struct {
	Layout    LayoutConfig    `yaml:"layout"`
	Filter    FilterConfig    `yaml:"filter"`
	Numbering NumberingConfig `yaml:"numbering"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// FilterConfig configures the curation pass.
type FilterConfig struct {
	AffinityRules    []filter.Rule `yaml:"affinity_rules"`
	ConfidenceLevels []string      `yaml:"confidence_levels"` // empty = no confidence filter
}

// NumberingConfig configures the external numbering tool.
type NumberingConfig struct {
	Command   []string `yaml:"command"`
	BatchSize int      `yaml:"batch_size"`
	Workers   int      `yaml:"workers"` // 0 = all CPUs
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Layout: DefaultLayout(),
		Filter: FilterConfig{
			AffinityRules: filter.DefaultRules(),
		},
		Numbering: NumberingConfig{
			Command:   []string{"anarci-batch", "--scheme", "imgt", "--assign-germline"},
			BatchSize: 500,
			Workers:   0,
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load reads a YAML file over the defaults and applies env overrides.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.applyEnvOverrides()
	return cfg, nil
}

// Discover loads path if given, else FileName from the working directory
// if present, else the defaults. Env overrides apply in every case.
func Discover(path string) (*Config, error) {
	if path != "" {
		return Load(path)
	}
	if _, err := os.Stat(FileName); err == nil {
		return Load(FileName)
	}
	cfg := Default()
	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the config as YAML.
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func (c *Config) applyEnvOverrides() {
	if v := strings.TrimSpace(os.Getenv("AGAB_ROOT")); v != "" {
		c.Layout.Roots = []string{v}
	}
	if v := strings.TrimSpace(os.Getenv("AGAB_LOG_LEVEL")); v != "" {
		c.Logging.Level = v
	}
	if v := strings.TrimSpace(os.Getenv("AGAB_NUMBERING_WORKERS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Numbering.Workers = n
		}
	}
}

// Validate checks the config for values the stages cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if len(c.Layout.Roots) == 0 {
		errs = append(errs, errors.New("layout.roots must not be empty"))
	}
	if _, err := c.Rules(); err != nil {
		errs = append(errs, err)
	}
	if c.Numbering.BatchSize < 1 {
		errs = append(errs, errors.New("numbering.batch_size must be ≥ 1"))
	}
	if c.Numbering.Workers < 0 {
		errs = append(errs, errors.New("numbering.workers must be ≥ 0"))
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("logging.level %q: want debug|info|warn|error", c.Logging.Level))
	}
	return errors.Join(errs...)
}

// Rules compiles the configured affinity rules.
func (c *Config) Rules() (filter.Rules, error) {
	return filter.NewRules(c.Filter.AffinityRules)
}

// Workers returns the effective numbering worker count.
func (c *Config) Workers() int {
	if c.Numbering.Workers > 0 {
		return c.Numbering.Workers
	}
	return runtime.NumCPU()
}
