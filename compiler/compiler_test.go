package compiler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/brimdata/splc/compiler/diag"
	"github.com/brimdata/splc/compiler/metrics"
	"github.com/brimdata/splc/compiler/placement"
	"github.com/brimdata/splc/compiler/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "splc.yaml")
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	conf, err := LoadConfig(writeConfig(t, `
toolkitPaths: [/opt/toolkits]
productVersion: "4.2.1"
placement:
  seed: 9
  fusionOptimize: true
`))
	require.NoError(t, err)
	assert.Equal(t, []string{"/opt/toolkits"}, conf.ToolkitPaths)
	assert.Equal(t, "spl", conf.SPLToolkit)
	opts := conf.PlacementOptions()
	assert.Equal(t, uint64(9), opts.Seed)
	assert.True(t, opts.FusionOptimize)
	assert.Equal(t, placement.DefaultIterationBound, opts.IterationBound)

	for _, text := range []string{
		"toolkitPath: [/opt]\n",
		"productVersion: x.y\n",
		"language: \"!!\"\n",
		"modelCacheSize: 0\n",
	} {
		_, err := LoadConfig(writeConfig(t, text))
		assert.ErrorIs(t, err, ErrConfig, text)
	}
}

func writeToolkit(t *testing.T, dir, name, version, productRange string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "toolkit.xml"), []byte(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<toolkitModel xmlns="http://www.ibm.com/xmlns/prod/streams/spl/toolkit" productVersion="4.0">
  <toolkit name=%q version=%q requiredProductVersion=%q>
    <namespace name="com.example.%s"/>
  </toolkit>
</toolkitModel>
`, name, version, productRange, strings.ToLower(name))), 0o644))
}

func TestResolveToolkits(t *testing.T) {
	root := t.TempDir()
	writeToolkit(t, filepath.Join(root, "a1"), "A", "1.0", "[4.0,5.0)")
	writeToolkit(t, filepath.Join(root, "a2"), "A", "2.0", "[4.0,5.0)")
	conf := DefaultConfig()
	conf.ToolkitPaths = []string{filepath.Join(root, "a1"), filepath.Join(root, "a2")}
	registry := prometheus.NewRegistry()
	m := metrics.New()
	m.MustRegister(registry)
	c, err := New(conf, nil, WithMetrics(m))
	require.NoError(t, err)
	tks, err := c.ResolveToolkits(context.Background())
	require.NoError(t, err)
	require.Len(t, tks.Resolution.Toolkits, 1)
	assert.Equal(t, "A(2.0)", tks.Resolution.Toolkits[0].String())
	assert.True(t, tks.Index.HasNamespace("com.example.a"))
	var b strings.Builder
	require.NoError(t, metrics.WriteText(&b, registry))
	assert.Contains(t, b.String(), `splc_phase_duration_seconds{phase="resolve",result="success"} count=1`)
	assert.Contains(t, b.String(), "splc_toolkit_loaded 1\n")
}

func TestResolveProductMismatch(t *testing.T) {
	root := t.TempDir()
	writeToolkit(t, root, "A", "1.0", "[3.0,4.0)")
	conf := DefaultConfig()
	conf.ToolkitPaths = []string{root}
	c, err := New(conf, nil)
	require.NoError(t, err)
	_, err = c.ResolveToolkits(context.Background())
	require.Error(t, err)
	assert.Equal(t, []diag.ID{diag.ToolkitMismatchProductVersion}, c.Reporter().IDs())
}

func TestResolveNoPath(t *testing.T) {
	conf := DefaultConfig()
	conf.ToolkitPaths = []string{filepath.Join(t.TempDir(), "missing")}
	c, err := New(conf, nil)
	require.NoError(t, err)
	_, err = c.ResolveToolkits(context.Background())
	assert.ErrorIs(t, err, ErrNoToolkitPath)
	assert.Equal(t, []diag.ID{diag.PathIsNotADirectory}, c.Reporter().IDs())
}

func TestValidateImport(t *testing.T) {
	c, err := New(DefaultConfig(), nil)
	require.NoError(t, err)
	imp, err := c.ValidateImport(Import{
		Schema:       "int32 a, list<int32> b",
		Subscription: `kind == "sensor"`,
		Filter:       "a % 2 == 0",
	})
	require.NoError(t, err)
	assert.NotNil(t, imp.Subscription)
	assert.NotNil(t, imp.Filter)
	assert.Equal(t, types.Boolean, imp.FilterType)

	_, err = c.ValidateImport(Import{Schema: "int32 a", Filter: "a % 0 == 0"})
	var list *diag.List
	require.True(t, errors.As(err, &list))
	assert.Equal(t, diag.FilterInvalid, list.Diags[0].ID)

	_, err = c.ValidateImport(Import{Filter: "a == 1"})
	assert.EqualError(t, err, "a filter requires an output schema")
	_, err = c.ValidateImport(Import{Schema: "int32", Filter: "a == 1"})
	assert.Error(t, err)
}

func TestPlace(t *testing.T) {
	g, err := placement.Load(strings.NewReader(`
pools:
  - {name: p, hosts: [a, b]}
operators:
  - {name: x, pool: p, hostExlocation: [e]}
  - {name: y, pool: p, hostExlocation: [e]}
`))
	require.NoError(t, err)
	conf := DefaultConfig()
	conf.Placement.Seed = 3
	c, err := New(conf, nil)
	require.NoError(t, err)
	var dump bytes.Buffer
	plan, err := c.Place(g, &dump)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), plan.Seed)
	assert.Len(t, plan.Partitions, 2)
	assert.NotEqual(t, plan.Partitions[0].Host, plan.Partitions[1].Host)
	assert.NotZero(t, dump.Len())

	g.Nodes = append(g.Nodes, &placement.Node{
		Name:      "z",
		Placement: placement.HostPlacement{Kind: placement.InPool, Pool: 0},
		Labels:    g.Nodes[0].Labels,
	})
	_, err = c.Place(g, nil)
	assert.ErrorIs(t, err, placement.ErrInfeasible)
	assert.True(t, c.Reporter().Has(diag.HEXPoolSizeConflict))
}
