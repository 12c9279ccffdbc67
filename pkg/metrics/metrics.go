// Package metrics exposes run counters in Prometheus text format so a
// node-exporter textfile collector can pick them up after each run.
package metrics

import (
	"github.com/mp3curate/mp3curate/pkg/errors"
	"github.com/mp3curate/mp3curate/pkg/report"
	"github.com/prometheus/client_golang/prometheus"
)

// Entry states used as the "state" label of mp3curate_entries_total
const (
	StateAlreadyCanonical      = "already_canonical"
	StateRenamed               = "renamed"
	StateSkippedIdenticalPath  = "skipped_identical_path"
	StateSkippedSamefile       = "skipped_samefile"
	StateSkippedClassification = "skipped_classification"
	StateConflict              = "conflict"
	StateQuarantined           = "quarantined"
	StateErrored               = "errored"
)

// Metrics holds the run metrics in a private registry
type Metrics struct {
	registry *prometheus.Registry

	// EntriesTotal counts processed entries by state and variant
	EntriesTotal *prometheus.CounterVec

	// RunDuration is the wall time of the last run
	RunDuration prometheus.Gauge

	// LastRunTimestamp is when the last run finished
	LastRunTimestamp prometheus.Gauge

	// Interrupted is 1 when the last run was cancelled
	Interrupted prometheus.Gauge
}

// New creates the metrics and registers them in a fresh registry
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		EntriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mp3curate_entries_total",
				Help: "Entries processed by outcome state",
			},
			[]string{"state", "variant"},
		),
		RunDuration: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "mp3curate_run_duration_seconds",
				Help: "Duration of the last run in seconds",
			},
		),
		LastRunTimestamp: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "mp3curate_last_run_timestamp_seconds",
				Help: "Unix time the last run finished",
			},
		),
		Interrupted: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "mp3curate_last_run_interrupted",
				Help: "1 if the last run was interrupted before finishing",
			},
		),
	}

	m.registry.MustRegister(
		m.EntriesTotal,
		m.RunDuration,
		m.LastRunTimestamp,
		m.Interrupted,
	)
	return m
}

// Registry returns the registry holding the run metrics
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Observe adds a finished run to the metrics
func (m *Metrics) Observe(s *report.Summary) {
	if m == nil || s == nil {
		return
	}
	variant := string(s.Variant)
	c := s.Counts
	for state, n := range map[string]int{
		StateAlreadyCanonical:      c.AlreadyCanonical,
		StateRenamed:               c.Renamed,
		StateSkippedIdenticalPath:  c.SkippedIdenticalPath,
		StateSkippedSamefile:       c.SkippedSamefile,
		StateSkippedClassification: c.SkippedClassification,
		StateConflict:              c.Conflicts,
		StateQuarantined:           c.Quarantined,
		StateErrored:               c.Errored,
	} {
		m.EntriesTotal.WithLabelValues(state, variant).Add(float64(n))
	}

	m.RunDuration.Set(s.Duration().Seconds())
	if !s.FinishedAt.IsZero() {
		m.LastRunTimestamp.Set(float64(s.FinishedAt.Unix()))
	}
	if s.Interrupted {
		m.Interrupted.Set(1)
	} else {
		m.Interrupted.Set(0)
	}
}

// WriteTextfile writes the metrics atomically to path
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return errors.Wrapf(err, errors.ErrInternal, "cannot write metrics to %s", path)
	}
	return nil
}
