package metrics

import (
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"
)

// Registry holds all routeflow collectors.
type Registry struct {
	RunsTotal                prometheus.Counter
	SolveDuration            *prometheus.HistogramVec
	ViolationsTotal          *prometheus.CounterVec
	FillRate                 *prometheus.GaugeVec
	RepairPasses             prometheus.Histogram
	CollaboratorFailureTotal prometheus.Counter

	registry *prometheus.Registry
}

// NewRegistry creates a registry with every collector registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Registry{
		RunsTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "routeflow_runs_total",
			Help: "Total number of comparison runs executed",
		}),
		SolveDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "routeflow_solve_duration_seconds",
			Help:    "Solver wall time per side in seconds",
			Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 1, 10, 60},
		}, []string{"side"}),
		ViolationsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "routeflow_violations_total",
			Help: "Violations reported by the validator per side and kind",
		}, []string{"side", "kind"}),
		FillRate: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "routeflow_fill_rate",
			Help: "Fill rate of the most recent run per side",
		}, []string{"side"}),
		RepairPasses: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "routeflow_repair_passes",
			Help:    "Greedy repair passes executed per run",
			Buckets: []float64{1, 2, 5, 10, 25, 50, 100},
		}),
		CollaboratorFailureTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "routeflow_collaborator_failures_total",
			Help: "External optimizer calls that returned an error",
		}),
		registry: reg,
	}
}

// RecordRun counts one comparison run.
func (r *Registry) RecordRun() {
	r.RunsTotal.Inc()
}

// RecordSide records latency, fill rate and violation counts for one side.
func (r *Registry) RecordSide(side string, elapsed time.Duration, fillRate float64, violationsByKind map[string]int) {
	r.SolveDuration.WithLabelValues(side).Observe(elapsed.Seconds())
	r.FillRate.WithLabelValues(side).Set(fillRate)
	for kind, n := range violationsByKind {
		r.ViolationsTotal.WithLabelValues(side, kind).Add(float64(n))
	}
}

// RecordPasses observes the repair pass count of one run.
func (r *Registry) RecordPasses(n int) {
	r.RepairPasses.Observe(float64(n))
}

// RecordCollaboratorFailure counts one failed optimizer call.
func (r *Registry) RecordCollaboratorFailure() {
	r.CollaboratorFailureTotal.Inc()
}

// Gatherer returns the underlying registry for exposition.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteText writes all metrics in the Prometheus text exposition format.
func (r *Registry) WriteText(w io.Writer) error {
	families, err := r.registry.Gather()
	if err != nil {
		return err
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return err
		}
	}

	return nil
}
