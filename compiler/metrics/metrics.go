// Package metrics collects Prometheus metrics for the compiler phases.
package metrics

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

const namespace = "splc"

// Metrics holds the collectors of one compiler instance.
type Metrics struct {
	phaseDuration    *prometheus.HistogramVec
	diagnostics      *prometheus.CounterVec
	placementRetries prometheus.Histogram
	partialSolutions prometheus.Counter
	toolkits         prometheus.Gauge
}

func New() *Metrics {
	return &Metrics{
		phaseDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "phase_duration_seconds",
				Help:      "Duration of a compiler phase in seconds.",
				Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
			},
			[]string{"phase", "result"},
		),
		diagnostics: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "diagnostics_total",
				Help:      "Diagnostics reported by severity.",
			},
			[]string{"severity"},
		),
		placementRetries: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "placement",
				Name:      "host_assignment_attempts",
				Help:      "Host assignment attempts made by one placement.",
				Buckets:   prometheus.LinearBuckets(1, 1, 10),
			},
		),
		partialSolutions: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "toolkit",
				Name:      "partial_solutions_total",
				Help:      "Partial solutions considered while resolving toolkit versions.",
			},
		),
		toolkits: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "toolkit",
				Name:      "loaded",
				Help:      "Toolkits selected by the last resolution.",
			},
		),
	}
}

// MustRegister registers the metrics with the given Prometheus registry.
func (m *Metrics) MustRegister(registry prometheus.Registerer) {
	registry.MustRegister(
		m.phaseDuration,
		m.diagnostics,
		m.placementRetries,
		m.partialSolutions,
		m.toolkits,
	)
}

// ObservePhase records the duration of a phase that started at start.
func (m *Metrics) ObservePhase(phase string, start time.Time, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	m.phaseDuration.WithLabelValues(phase, result).Observe(time.Since(start).Seconds())
}

func (m *Metrics) AddDiagnostics(errors, warnings int) {
	m.diagnostics.WithLabelValues("error").Add(float64(errors))
	m.diagnostics.WithLabelValues("warning").Add(float64(warnings))
}

func (m *Metrics) ObservePlacement(attempts int) {
	m.placementRetries.Observe(float64(attempts))
}

func (m *Metrics) ObserveResolution(solutions, toolkits int) {
	m.partialSolutions.Add(float64(solutions))
	m.toolkits.Set(float64(toolkits))
}

// WriteText writes a one-line-per-sample summary of everything gathered
// from g.  Histograms are summarized by count and sum.
func WriteText(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}
	var b strings.Builder
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			name := mf.GetName() + labels(m.GetLabel())
			switch mf.GetType() {
			case dto.MetricType_COUNTER:
				fmt.Fprintf(&b, "%s %g\n", name, m.GetCounter().GetValue())
			case dto.MetricType_GAUGE:
				fmt.Fprintf(&b, "%s %g\n", name, m.GetGauge().GetValue())
			case dto.MetricType_HISTOGRAM:
				h := m.GetHistogram()
				fmt.Fprintf(&b, "%s count=%d sum=%g\n", name, h.GetSampleCount(), h.GetSampleSum())
			}
		}
	}
	_, err = io.WriteString(w, b.String())
	return err
}

func labels(pairs []*dto.LabelPair) string {
	if len(pairs) == 0 {
		return ""
	}
	var out []string
	for _, p := range pairs {
		out = append(out, fmt.Sprintf("%s=%q", p.GetName(), p.GetValue()))
	}
	slices.Sort(out)
	return "{" + strings.Join(out, ",") + "}"
}
