package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/katalvlaran/routeflow/config"
)

// ExitError carries the process exit code for a failed run.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

// options is the parsed command line.
type options struct {
	configPath string
	envFile    string
	set        map[string]bool

	nodes, routes, outDir string
	optimizerKind         string
	algorithm             string
	shots                 int
	seed                  int64
	maxPasses             int
	logLevel, logFormat   string
	metrics               bool
}

// parseFlags returns the parsed options, or shouldExit=true after -h.
func parseFlags(args []string, output io.Writer) (*options, bool, error) {
	fs := flag.NewFlagSet("routeflow", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprint(output, `
routeflow - compare greedy route activation against an external optimizer.

Usage:
  routeflow [options]

Settings are merged in this order: defaults, -config file (.yaml/.yml/.toml),
ROUTEFLOW_* environment variables (a .env file is loaded first), flags.

Options:
`)
		fs.PrintDefaults()
	}

	o := &options{set: make(map[string]bool)}
	fs.StringVar(&o.configPath, "config", "", "Path to a YAML or TOML config file.")
	fs.StringVar(&o.envFile, "env-file", ".env", "Optional dotenv file with ROUTEFLOW_* variables.")
	fs.StringVar(&o.nodes, "nodes", "", "Node CSV (node_id,node_type,capacity,supply,demand).")
	fs.StringVar(&o.routes, "routes", "", "Route CSV (from,to,cost).")
	fs.StringVar(&o.outDir, "out", "", "Report output directory.")
	fs.StringVar(&o.optimizerKind, "optimizer", "", "External optimizer: none, maxflow or sampler.")
	fs.StringVar(&o.algorithm, "algorithm", "", "Max-flow algorithm: dinic, edmonds-karp or ford-fulkerson.")
	fs.IntVar(&o.shots, "shots", 0, "Shot count passed to the external optimizer.")
	fs.Int64Var(&o.seed, "seed", 0, "Sampler RNG seed.")
	fs.IntVar(&o.maxPasses, "max-passes", 0, "Greedy repair pass budget (1..100).")
	fs.StringVar(&o.logLevel, "log-level", "", "Log level: debug, info, warn or error.")
	fs.StringVar(&o.logFormat, "log-format", "", "Log format: text or json.")
	fs.BoolVar(&o.metrics, "metrics", false, "Write Prometheus text metrics next to the report.")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	if fs.NArg() > 0 {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("unexpected arguments: %v", fs.Args())}
	}
	fs.Visit(func(f *flag.Flag) { o.set[f.Name] = true })

	return o, false, nil
}

// resolveConfig merges file, environment and flags, then validates.
func resolveConfig(o *options, lookup func(string) (string, bool)) (config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		var err error
		if cfg, err = config.Load(o.configPath); err != nil {
			return cfg, &ExitError{Code: 2, Message: err.Error()}
		}
	}
	if err := cfg.ApplyEnv(lookup); err != nil {
		return cfg, &ExitError{Code: 2, Message: err.Error()}
	}
	o.apply(&cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, &ExitError{Code: 2, Message: err.Error()}
	}

	return cfg, nil
}

// apply copies explicitly set flags onto cfg.
func (o *options) apply(cfg *config.Config) {
	if o.set["nodes"] {
		cfg.Nodes = o.nodes
	}
	if o.set["routes"] {
		cfg.Routes = o.routes
	}
	if o.set["out"] {
		cfg.OutputDir = o.outDir
	}
	if o.set["optimizer"] {
		cfg.Optimizer.Kind = o.optimizerKind
	}
	if o.set["algorithm"] {
		cfg.Optimizer.Algorithm = o.algorithm
	}
	if o.set["shots"] {
		cfg.Optimizer.Shots = o.shots
	}
	if o.set["seed"] {
		cfg.Optimizer.Seed = o.seed
	}
	if o.set["max-passes"] {
		cfg.Repair.MaxPasses = o.maxPasses
	}
	if o.set["log-level"] {
		cfg.Log.Level = o.logLevel
	}
	if o.set["log-format"] {
		cfg.Log.Format = o.logFormat
	}
	if o.set["metrics"] {
		cfg.Metrics.Enabled = o.metrics
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
