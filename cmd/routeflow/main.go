// Command routeflow runs one greedy-versus-external comparison on a node and
// a route CSV and writes the report directory.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-logr/logr"
	"github.com/joho/godotenv"

	"github.com/katalvlaran/routeflow/compare"
	"github.com/katalvlaran/routeflow/config"
	"github.com/katalvlaran/routeflow/flow"
	"github.com/katalvlaran/routeflow/ingest"
	"github.com/katalvlaran/routeflow/metrics"
	"github.com/katalvlaran/routeflow/optimizer"
	"github.com/katalvlaran/routeflow/repair"
	"github.com/katalvlaran/routeflow/report"
)

// metricsFile is written next to the report when metrics are enabled.
const metricsFile = "metrics.prom"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Stdout, os.Args[1:])
	stop()
	if err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run is main without the process exit, so tests can drive it.
func run(ctx context.Context, outW io.Writer, args []string) error {
	opts, shouldExit, err := parseFlags(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	// A missing default .env is normal; an explicitly named one is not.
	if opts.set["env-file"] || fileExists(opts.envFile) {
		if err := godotenv.Load(opts.envFile); err != nil {
			return &ExitError{Code: 2, Message: fmt.Sprintf("load env file: %v", err)}
		}
	}

	cfg, err := resolveConfig(opts, os.LookupEnv)
	if err != nil {
		return err
	}
	log := newLogger(cfg.Log.Level, cfg.Log.Format, outW)

	nodes, routes, loadErr := ingest.LoadFiles(cfg.Nodes, cfg.Routes)
	if fatal := ingest.Fatal(loadErr); fatal != nil {
		return &ExitError{Code: 1, Message: fatal.Error()}
	}
	for _, d := range ingest.Diagnostics(loadErr) {
		log.Info("input row skipped", "diagnostic", d)
	}

	opt, backend, err := buildOptimizer(cfg.Optimizer, log)
	if err != nil {
		return &ExitError{Code: 2, Message: err.Error()}
	}

	var reg *metrics.Registry
	if cfg.Metrics.Enabled {
		reg = metrics.NewRegistry()
	}
	repairOpts := repair.DefaultOptions()
	repairOpts.MaxPasses = cfg.Repair.MaxPasses
	repairOpts.Logger = log
	h := compare.New(
		compare.WithLogger(log.WithName("compare")),
		compare.WithMetrics(reg),
		compare.WithRepairOptions(repairOpts),
	)

	cmp := h.Run(ctx, compare.Input{Nodes: nodes, Routes: routes}, opt, backend, cfg.Optimizer.Shots)

	if _, err := report.WriteDir(cfg.OutputDir, cmp, time.Now()); err != nil {
		return &ExitError{Code: 1, Message: err.Error()}
	}
	if reg != nil {
		if err := writeMetrics(filepath.Join(cfg.OutputDir, metricsFile), reg); err != nil {
			return &ExitError{Code: 1, Message: err.Error()}
		}
	}

	for _, side := range []compare.Side{cmp.Classical, cmp.External} {
		fmt.Fprintf(outW, "%-9s cost=%g fill_rate=%.3f violations=%d elapsed=%s\n",
			side.Label, side.TotalCost, side.FillRate, len(side.Violations), side.Elapsed.Round(time.Microsecond))
	}
	fmt.Fprintf(outW, "report: %s (run %s)\n", cfg.OutputDir, cmp.RunID)

	return nil
}

// buildOptimizer maps the configured kind onto an optimizer and its backend.
// Kind "none" yields a nil optimizer, which the harness reports as a solver
// failure.
func buildOptimizer(c config.OptimizerConfig, log logr.Logger) (optimizer.Optimizer, optimizer.Backend, error) {
	switch c.Kind {
	case config.OptimizerNone:
		return nil, nil, nil
	case config.OptimizerMaxFlow:
		alg, err := flow.ParseAlgorithm(c.Algorithm)
		if err != nil {
			return nil, nil, err
		}
		return optimizer.MaxFlow{Logger: log.WithName("maxflow")}, optimizer.FlowBackend{Algorithm: alg}, nil
	case config.OptimizerSampler:
		return optimizer.Sampler{Logger: log.WithName("sampler")}, optimizer.SamplerBackend{
			Seed:                  c.Seed,
			ActivationProbability: c.ActivationProbability,
			Penalty:               c.Penalty,
		}, nil
	}

	return nil, nil, fmt.Errorf("unknown optimizer kind %q", c.Kind)
}

func writeMetrics(path string, reg *metrics.Registry) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	return reg.WriteText(f)
}
