// Package config holds the run configuration of the routeflow CLI.
//
// A Config starts from Default, is optionally overlaid by a YAML or TOML
// file (chosen by extension), then by ROUTEFLOW_* environment variables.
// Command-line flags are applied last by the caller. Validate checks the
// merged result.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/routeflow/flow"
	"github.com/katalvlaran/routeflow/repair"
)

var (
	// ErrUnsupportedFormat is returned for config files that are neither
	// YAML nor TOML.
	ErrUnsupportedFormat = errors.New("config: unsupported file format")
	// ErrInvalid wraps every validation failure.
	ErrInvalid = errors.New("config: invalid")
)

// Optimizer kinds.
const (
	OptimizerNone    = "none"
	OptimizerMaxFlow = "maxflow"
	OptimizerSampler = "sampler"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "ROUTEFLOW_"

type OptimizerConfig struct {
	Kind                  string  `yaml:"kind" toml:"kind" validate:"oneof=none maxflow sampler"`
	Shots                 int     `yaml:"shots" toml:"shots" validate:"gte=0"`
	Seed                  int64   `yaml:"seed" toml:"seed"`
	ActivationProbability float64 `yaml:"activation_probability" toml:"activation_probability" validate:"gte=0,lte=1"`
	Penalty               float64 `yaml:"penalty" toml:"penalty" validate:"gte=0"`
	Algorithm             string  `yaml:"algorithm" toml:"algorithm"`
}

type RepairConfig struct {
	MaxPasses int `yaml:"max_passes" toml:"max_passes" validate:"gte=1,lte=100"`
}

type LogConfig struct {
	Level  string `yaml:"level" toml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" toml:"format" validate:"oneof=text json"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled" toml:"enabled"`
}

// Config is the merged run configuration.
type Config struct {
	Nodes     string          `yaml:"nodes" toml:"nodes" validate:"required"`
	Routes    string          `yaml:"routes" toml:"routes" validate:"required"`
	OutputDir string          `yaml:"output_dir" toml:"output_dir" validate:"required"`
	Optimizer OptimizerConfig `yaml:"optimizer" toml:"optimizer"`
	Repair    RepairConfig    `yaml:"repair" toml:"repair"`
	Log       LogConfig       `yaml:"log" toml:"log"`
	Metrics   MetricsConfig   `yaml:"metrics" toml:"metrics"`
}

// Default returns the baseline configuration.
func Default() Config {
	return Config{
		OutputDir: "results",
		Optimizer: OptimizerConfig{
			Kind:                  OptimizerMaxFlow,
			Shots:                 1024,
			Seed:                  1,
			ActivationProbability: 0.5,
			Algorithm:             flow.AlgDinic.String(),
		},
		Repair: RepairConfig{MaxPasses: repair.MaxPassBudget},
		Log:    LogConfig{Level: "info", Format: "text"},
	}
}

// Load reads path on top of Default. Keys absent from the file keep their
// default values.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	default:
		return cfg, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
	if err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// ApplyEnv overlays ROUTEFLOW_* variables found through lookup, usually
// os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(EnvPrefix + key); ok {
			*dst = v
		}
	}
	var errs error
	num := func(key string, set func(string) error) {
		if v, ok := lookup(EnvPrefix + key); ok {
			if err := set(v); err != nil {
				errs = multierr.Append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, key, err))
			}
		}
	}

	str("NODES", &c.Nodes)
	str("ROUTES", &c.Routes)
	str("OUTPUT_DIR", &c.OutputDir)
	str("OPTIMIZER", &c.Optimizer.Kind)
	str("ALGORITHM", &c.Optimizer.Algorithm)
	str("LOG_LEVEL", &c.Log.Level)
	str("LOG_FORMAT", &c.Log.Format)
	num("SHOTS", func(v string) (err error) { c.Optimizer.Shots, err = strconv.Atoi(v); return })
	num("SEED", func(v string) (err error) { c.Optimizer.Seed, err = strconv.ParseInt(v, 10, 64); return })
	num("MAX_PASSES", func(v string) (err error) { c.Repair.MaxPasses, err = strconv.Atoi(v); return })
	num("METRICS", func(v string) (err error) { c.Metrics.Enabled, err = strconv.ParseBool(v); return })

	return errs
}

var validate = validator.New()

// Validate checks field ranges and cross-field rules.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			e := verrs[0]
			return fmt.Errorf("%w: %s: failed %q (%v)", ErrInvalid, e.Namespace(), e.Tag(), e.Value())
		}
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if _, err := flow.ParseAlgorithm(c.Optimizer.Algorithm); err != nil {
		return fmt.Errorf("%w: optimizer.algorithm: %w", ErrInvalid, err)
	}
	if c.Optimizer.Kind == OptimizerSampler && c.Optimizer.Shots < 1 {
		return fmt.Errorf("%w: sampler needs at least one shot", ErrInvalid)
	}

	return nil
}
