package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/routeflow/report"
)

const (
	testNodes = `node_id,node_type,capacity,supply,demand
P,source,10,5,
H,intermediate,10,,
C1,sink,5,,3
C2,sink,5,,2
`
	testRoutes = `from,to,cost
P,H,1
H,C1,2
P,C2,3
`
)

func inputs(t *testing.T) (dir, nodes, routes string) {
	t.Helper()
	dir = t.TempDir()
	nodes = filepath.Join(dir, "nodes.csv")
	routes = filepath.Join(dir, "routes.csv")
	require.NoError(t, os.WriteFile(nodes, []byte(testNodes), 0o600))
	require.NoError(t, os.WriteFile(routes, []byte(testRoutes), 0o600))
	return dir, nodes, routes
}

func exitCode(t *testing.T, err error) int {
	t.Helper()
	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr), "expected *ExitError, got %v", err)
	return exitErr.Code
}

func TestRunHelp(t *testing.T) {
	out := &bytes.Buffer{}
	require.NoError(t, run(context.Background(), out, []string{"-h"}))
	require.Contains(t, out.String(), "Usage:")
}

func TestRunUsageErrors(t *testing.T) {
	out := &bytes.Buffer{}
	require.Equal(t, 2, exitCode(t, run(context.Background(), out, []string{"-no-such-flag"})))
	require.Equal(t, 2, exitCode(t, run(context.Background(), out, []string{"stray"})))
	require.Equal(t, 2, exitCode(t, run(context.Background(), out, []string{"-routes", "r.csv"})), "nodes is required")
	require.Equal(t, 2, exitCode(t, run(context.Background(), out,
		[]string{"-nodes", "n.csv", "-routes", "r.csv", "-max-passes", "500"})))
}

func TestRunMaxFlow(t *testing.T) {
	dir, nodes, routes := inputs(t)
	outDir := filepath.Join(dir, "report")
	out := &bytes.Buffer{}

	err := run(context.Background(), out, []string{
		"-nodes", nodes, "-routes", routes, "-out", outDir,
		"-optimizer", "maxflow", "-metrics", "-log-level", "error",
	})
	require.NoError(t, err)
	require.Contains(t, out.String(), "classical cost=6 fill_rate=1.000 violations=0")
	require.Contains(t, out.String(), "external  cost=6 fill_rate=1.000 violations=0")

	for _, name := range []string{
		report.FileClassicalSelection, report.FileExternalSelection,
		report.FileViolations, report.FileMetrics, report.FileSummary, metricsFile,
	} {
		require.FileExists(t, filepath.Join(outDir, name))
	}
	prom, err := os.ReadFile(filepath.Join(outDir, metricsFile))
	require.NoError(t, err)
	require.Contains(t, string(prom), "routeflow_runs_total 1")
}

// TestRunWithoutOptimizer: violations alone never fail the run.
func TestRunWithoutOptimizer(t *testing.T) {
	dir, nodes, routes := inputs(t)
	out := &bytes.Buffer{}
	err := run(context.Background(), out, []string{
		"-nodes", nodes, "-routes", routes, "-out", filepath.Join(dir, "r"),
		"-optimizer", "none", "-log-level", "error",
	})
	require.NoError(t, err)
	require.Contains(t, out.String(), "external  cost=NaN fill_rate=0.000 violations=1")
}

func TestRunMissingInput(t *testing.T) {
	dir, _, routes := inputs(t)
	err := run(context.Background(), &bytes.Buffer{}, []string{
		"-nodes", filepath.Join(dir, "absent.csv"), "-routes", routes, "-out", dir,
	})
	require.Equal(t, 1, exitCode(t, err))
}

func TestRunConfigAndEnvFile(t *testing.T) {
	dir, nodes, routes := inputs(t)
	cfgPath := filepath.Join(dir, "run.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(
		"nodes: "+nodes+"\nroutes: "+routes+"\noutput_dir: "+filepath.Join(dir, "cfg-out")+"\nlog:\n  level: error\n"), 0o600))
	envPath := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(envPath, []byte("ROUTEFLOW_OPTIMIZER=sampler\nROUTEFLOW_SHOTS=256\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("ROUTEFLOW_OPTIMIZER")
		os.Unsetenv("ROUTEFLOW_SHOTS")
	})

	out := &bytes.Buffer{}
	require.NoError(t, run(context.Background(), out, []string{"-config", cfgPath, "-env-file", envPath}))
	require.FileExists(t, filepath.Join(dir, "cfg-out", report.FileSummary))
	require.Contains(t, out.String(), "external ")

	err := run(context.Background(), out, []string{"-config", cfgPath, "-env-file", filepath.Join(dir, "nope.env")})
	require.Equal(t, 2, exitCode(t, err))
}
