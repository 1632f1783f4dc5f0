package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"go.uber.org/multierr"

	"github.com/katalvlaran/routeflow/compare"
	"github.com/katalvlaran/routeflow/network"
	"github.com/katalvlaran/routeflow/validate"
)

// File names written by WriteDir.
const (
	FileClassicalSelection = "classical_selection.csv"
	FileExternalSelection  = "external_selection.csv"
	FileViolations         = "violations.csv"
	FileMetrics            = "metrics.csv"
	FileSummary            = "summary.json"
)

var (
	selectionHeader = []string{"from", "to", "cost"}
	violationHeader = []string{"solution_label", "kind", "node", "details"}
	metricsHeader   = []string{"solution_label", "total_cost", "fill_rate", "violations", "elapsed_seconds", "passes", "error"}
)

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// WriteSelection writes sel as from,to,cost rows under a header.
func WriteSelection(w io.Writer, sel network.Selection) error {
	cw := csv.NewWriter(w)
	_ = cw.Write(selectionHeader)
	for _, e := range sel {
		_ = cw.Write([]string{e.From, e.To, formatFloat(e.Cost)})
	}
	cw.Flush()

	return cw.Error()
}

// WriteViolations writes the violations of one side. Call it once per side
// on the same writer with header=false after the first call to get a single
// table.
func WriteViolations(w io.Writer, label string, vs []validate.Violation, header bool) error {
	cw := csv.NewWriter(w)
	if header {
		_ = cw.Write(violationHeader)
	}
	for _, v := range vs {
		_ = cw.Write([]string{label, v.Kind.String(), v.Node, v.Details})
	}
	cw.Flush()

	return cw.Error()
}

// WriteMetrics writes one summary row per side of cmp.
func WriteMetrics(w io.Writer, cmp compare.Comparison) error {
	cw := csv.NewWriter(w)
	_ = cw.Write(metricsHeader)
	for _, s := range []compare.Side{cmp.Classical, cmp.External} {
		errText := ""
		if s.Err != nil {
			errText = s.Err.Error()
		}
		_ = cw.Write([]string{
			s.Label,
			formatFloat(s.TotalCost),
			formatFloat(s.FillRate),
			strconv.Itoa(len(s.Violations)),
			formatFloat(s.Elapsed.Seconds()),
			strconv.Itoa(s.Passes),
			errText,
		})
	}
	cw.Flush()

	return cw.Error()
}

// Summary is the JSON document written to summary.json.
type Summary struct {
	RunID       string        `json:"run_id"`
	GeneratedAt time.Time     `json:"generated_at"`
	Sources     int           `json:"sources"`
	Sinks       int           `json:"sinks"`
	Hubs        int           `json:"intermediate_nodes"`
	Routes      int           `json:"routes"`
	Sides       []SideSummary `json:"sides"`
}

// SideSummary is the JSON form of one compare.Side.
type SideSummary struct {
	Label        string         `json:"label"`
	TotalCost    *float64       `json:"total_cost"`
	FillRate     float64        `json:"fill_rate"`
	Selected     int            `json:"selected_routes"`
	Violations   map[string]int `json:"violations"`
	ForeignEdges int            `json:"foreign_routes,omitempty"`
	Elapsed      float64        `json:"elapsed_seconds"`
	Passes       int            `json:"passes,omitempty"`
	Error        string         `json:"error,omitempty"`
}

// NewSummary condenses cmp. generatedAt is stamped as given.
func NewSummary(cmp compare.Comparison, generatedAt time.Time) Summary {
	s := Summary{RunID: cmp.RunID, GeneratedAt: generatedAt.UTC()}
	if p := cmp.Problem; p != nil {
		s.Sources = len(p.Sources)
		s.Sinks = len(p.Sinks)
		s.Hubs = len(p.IntermediateNodes)
		s.Routes = len(p.Edges)
	}
	for _, side := range []compare.Side{cmp.Classical, cmp.External} {
		ss := SideSummary{
			Label:        side.Label,
			FillRate:     side.FillRate,
			Selected:     len(side.Selection),
			Violations:   make(map[string]int),
			ForeignEdges: side.ForeignEdges,
			Elapsed:      side.Elapsed.Seconds(),
			Passes:       side.Passes,
		}
		if !math.IsNaN(side.TotalCost) {
			c := side.TotalCost
			ss.TotalCost = &c
		}
		for kind, n := range validate.CountByKind(side.Violations) {
			ss.Violations[kind.String()] = n
		}
		if side.Err != nil {
			ss.Error = side.Err.Error()
		}
		s.Sides = append(s.Sides, ss)
	}

	return s
}

// WriteSummary writes the indented JSON summary.
func WriteSummary(w io.Writer, s Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(s)
}

// Writer owns the open files of one report directory.
type Writer struct {
	dir   string
	files []*os.File
	paths []string
}

// NewWriter creates dir (and parents) if needed.
func NewWriter(dir string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("report: %w", err)
	}

	return &Writer{dir: dir}, nil
}

// Create opens name inside the directory for writing, truncating it.
func (w *Writer) Create(name string) (io.Writer, error) {
	path := filepath.Join(w.dir, name)
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("report: %w", err)
	}
	w.files = append(w.files, f)
	w.paths = append(w.paths, path)

	return f, nil
}

// Paths lists created files in creation order.
func (w *Writer) Paths() []string {
	return append([]string(nil), w.paths...)
}

// Close closes every file and returns all close errors combined.
func (w *Writer) Close() error {
	var err error
	for _, f := range w.files {
		err = multierr.Append(err, f.Close())
	}
	w.files = nil

	return err
}

// WriteDir writes the full report for cmp into dir and returns the written
// paths.
func WriteDir(dir string, cmp compare.Comparison, generatedAt time.Time) (paths []string, err error) {
	w, err := NewWriter(dir)
	if err != nil {
		return nil, err
	}
	defer func() {
		err = multierr.Append(err, w.Close())
		if err == nil {
			paths = w.Paths()
		}
	}()

	steps := []struct {
		name  string
		write func(io.Writer) error
	}{
		{FileClassicalSelection, func(f io.Writer) error { return WriteSelection(f, cmp.Classical.Selection) }},
		{FileExternalSelection, func(f io.Writer) error { return WriteSelection(f, cmp.External.Selection) }},
		{FileViolations, func(f io.Writer) error {
			return multierr.Combine(
				WriteViolations(f, cmp.Classical.Label, cmp.Classical.Violations, true),
				WriteViolations(f, cmp.External.Label, cmp.External.Violations, false),
			)
		}},
		{FileMetrics, func(f io.Writer) error { return WriteMetrics(f, cmp) }},
		{FileSummary, func(f io.Writer) error { return WriteSummary(f, NewSummary(cmp, generatedAt)) }},
	}
	for _, step := range steps {
		f, err := w.Create(step.name)
		if err != nil {
			return nil, err
		}
		if err := step.write(f); err != nil {
			return nil, fmt.Errorf("report: write %s: %w", step.name, err)
		}
	}

	return nil, nil
}
