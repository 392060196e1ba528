package metrics

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New()
	m.MustRegister(registry)

	m.ObservePhase("resolve", time.Now(), nil)
	m.ObservePhase("resolve", time.Now(), errors.New("unreconcilable"))
	m.ObservePhase("place", time.Now(), nil)
	assert.Equal(t, 3, testutil.CollectAndCount(m.phaseDuration))

	m.AddDiagnostics(2, 1)
	m.AddDiagnostics(1, 0)
	assert.Equal(t, 3.0, testutil.ToFloat64(m.diagnostics.WithLabelValues("error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.diagnostics.WithLabelValues("warning")))

	m.ObserveResolution(4, 3)
	m.ObserveResolution(2, 5)
	assert.Equal(t, 6.0, testutil.ToFloat64(m.partialSolutions))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.toolkits))

	m.ObservePlacement(2)
	var b strings.Builder
	require.NoError(t, WriteText(&b, registry))
	out := b.String()
	assert.Contains(t, out, `splc_diagnostics_total{severity="error"} 3`)
	assert.Contains(t, out, "splc_toolkit_partial_solutions_total 6\n")
	assert.Contains(t, out, "splc_placement_host_assignment_attempts count=1 sum=2\n")
	assert.Contains(t, out, `splc_phase_duration_seconds{phase="resolve",result="error"} count=1`)
}
