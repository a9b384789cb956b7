package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// assessment pipeline.
type Metrics struct {
	ObservationsConsumed prometheus.Counter
	ObservationErrors    prometheus.Counter
	AssessmentsProduced  prometheus.Counter
	RunsDiscarded        prometheus.Counter // superseded by newer input mid-run
	RunErrors            prometheus.Counter
	PipelineRunning      prometheus.Gauge

	// Numeric-core diagnostics.
	CalibrationNonConvergence prometheus.Counter
	CalibrationIterations     prometheus.Histogram
	ComputationFaults         prometheus.Counter
	RunDuration               prometheus.Histogram

	// RAO table cache lookups. labels: result={hit,miss}
	RAOCache *prometheus.CounterVec
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		ObservationsConsumed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "seakeeping",
			Name:      "observations_consumed_total",
			Help:      "Total sensor observations read from the source topic.",
		}),
		ObservationErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "seakeeping",
			Name:      "observation_errors_total",
			Help:      "Total sensor observations rejected during parsing or validation.",
		}),
		AssessmentsProduced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "seakeeping",
			Name:      "assessments_produced_total",
			Help:      "Total completed assessments published to the sink topic.",
		}),
		RunsDiscarded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "seakeeping",
			Name:      "runs_discarded_total",
			Help:      "Completed runs discarded because newer input arrived while computing.",
		}),
		RunErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "seakeeping",
			Name:      "run_errors_total",
			Help:      "Assessment runs aborted by validation, parse, or publish failures.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "seakeeping",
			Name:      "pipeline_running",
			Help:      "1 when the pipeline is active, 0 when shut down.",
		}),
		CalibrationNonConvergence: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "seakeeping",
			Name:      "calibration_nonconvergence_total",
			Help:      "Spectrum calibrations that exhausted the iteration budget; results are degraded, not dropped.",
		}),
		CalibrationIterations: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "seakeeping",
			Name:      "calibration_iterations",
			Help:      "Fixed-point iterations needed to calibrate the spectrum alpha.",
			Buckets:   []float64{1, 2, 4, 8, 12, 16, 25, 50},
		}),
		ComputationFaults: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "seakeeping",
			Name:      "computation_faults_total",
			Help:      "Frequency bins zeroed due to non-finite intermediate values.",
		}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "seakeeping",
			Name:      "run_duration_seconds",
			Help:      "Duration of a complete spectrum-to-dose assessment run.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5},
		}),
		RAOCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "seakeeping",
			Name:      "rao_cache_total",
			Help:      "RAO table cache lookups by result.",
		}, []string{"result"}),
	}

	prometheus.MustRegister(
		m.ObservationsConsumed,
		m.ObservationErrors,
		m.AssessmentsProduced,
		m.RunsDiscarded,
		m.RunErrors,
		m.PipelineRunning,
		m.CalibrationNonConvergence,
		m.CalibrationIterations,
		m.ComputationFaults,
		m.RunDuration,
		m.RAOCache,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		ObservationsConsumed:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "seakeeping", Name: "observations_consumed_total"}),
		ObservationErrors:         prometheus.NewCounter(prometheus.CounterOpts{Namespace: "seakeeping", Name: "observation_errors_total"}),
		AssessmentsProduced:       prometheus.NewCounter(prometheus.CounterOpts{Namespace: "seakeeping", Name: "assessments_produced_total"}),
		RunsDiscarded:             prometheus.NewCounter(prometheus.CounterOpts{Namespace: "seakeeping", Name: "runs_discarded_total"}),
		RunErrors:                 prometheus.NewCounter(prometheus.CounterOpts{Namespace: "seakeeping", Name: "run_errors_total"}),
		PipelineRunning:           prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "seakeeping", Name: "pipeline_running"}),
		CalibrationNonConvergence: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "seakeeping", Name: "calibration_nonconvergence_total"}),
		CalibrationIterations:     prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "seakeeping", Name: "calibration_iterations"}),
		ComputationFaults:         prometheus.NewCounter(prometheus.CounterOpts{Namespace: "seakeeping", Name: "computation_faults_total"}),
		RunDuration:               prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "seakeeping", Name: "run_duration_seconds"}),
		RAOCache:                  prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "seakeeping", Name: "rao_cache_total"}, []string{"result"}),
	}
}
