package placement

import (
	"bytes"
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/brimdata/splc/compiler/diag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solve(t *testing.T, src string, opts Options) (*Plan, *diag.Reporter, error) {
	t.Helper()
	g, err := Load(strings.NewReader(src))
	require.NoError(t, err)
	if opts.Seed == 0 {
		opts.Seed = 1
	}
	r := diag.NewReporter(nil)
	plan, err := Solve(r, nil, g, opts)
	return plan, r, err
}

func partitionOf(t *testing.T, p *Plan, name string) *Partition {
	t.Helper()
	part, ok := p.Partition(name)
	require.True(t, ok, name)
	return part
}

func TestIsolatedExlocatedOperators(t *testing.T) {
	plan, r, err := solve(t, `
defaultPool: hosts
pools:
  - name: hosts
    hosts: [h1, h2]
operators:
  - name: op1
    hostIsolation: true
    partitionExlocation: [X]
  - name: op2
    hostIsolation: true
    partitionExlocation: [X]
`, Options{})
	require.NoError(t, err)
	assert.Empty(t, r.Diagnostics())
	p1, p2 := partitionOf(t, plan, "op1"), partitionOf(t, plan, "op2")
	assert.NotEqual(t, p1.ID, p2.ID)
	assert.NotEqual(t, p1.Bucket, p2.Bucket)
	assert.NotEmpty(t, p1.Host)
	assert.NotEmpty(t, p2.Host)
	assert.NotEqual(t, p1.Host, p2.Host)
}

func TestIsolatedOperatorsWithoutPools(t *testing.T) {
	plan, r, err := solve(t, `
operators:
  - name: op1
    hostIsolation: true
    partitionExlocation: [X]
  - name: op2
    hostIsolation: true
    partitionExlocation: [X]
`, Options{})
	require.NoError(t, err)
	assert.Empty(t, r.Diagnostics())
	assert.NotEqual(t, partitionOf(t, plan, "op1").Bucket, partitionOf(t, plan, "op2").Bucket)
	assert.Equal(t, 1, plan.Iterations)
}

func TestPoolCapacity(t *testing.T) {
	for _, pool := range []string{"size: 2", "hosts: [a, b]"} {
		t.Run(pool, func(t *testing.T) {
			_, r, err := solve(t, fmt.Sprintf(`
pools:
  - name: small
    %s
    loc: {file: app.spl, line: 3, column: 1}
operators:
  - {name: x, pool: small, hostExlocation: [E]}
  - {name: y, pool: small, hostExlocation: [E]}
  - {name: z, pool: small, hostExlocation: [E]}
`, pool), Options{})
			require.ErrorIs(t, err, ErrInfeasible)
			require.Equal(t, []diag.ID{diag.HEXPoolSizeConflict}, r.IDs())
			d := r.Diagnostics()[0]
			assert.Equal(t, "host pool small of size 2 cannot hold the 3 host exlocated partitions of E", d.Message())
			assert.Equal(t, 3, d.Loc.Line)
		})
	}
}

func TestColocationThroughSharedMember(t *testing.T) {
	plan, r, err := solve(t, `
operators:
  - {name: a, partitionColocation: [p]}
  - {name: b, partitionColocation: [p, r]}
  - {name: c, partitionColocation: [q, r]}
  - {name: d, partitionColocation: [q]}
  - {name: e}
`, Options{})
	require.NoError(t, err)
	assert.Empty(t, r.Diagnostics())
	require.Len(t, plan.Partitions, 2)
	assert.Len(t, plan.Partitions[0].Operators, 4)
	assert.Equal(t, "e", plan.Partitions[1].Operators[0].Name)

	_, r, err = solve(t, `
operators:
  - {name: a, partitionColocation: [p], partitionExlocation: [x]}
  - {name: b, partitionColocation: [p, r]}
  - {name: c, partitionColocation: [q, r]}
  - {name: d, partitionColocation: [q], partitionExlocation: [x]}
`, Options{})
	require.ErrorIs(t, err, ErrInfeasible)
	assert.Equal(t, []diag.ID{diag.PCLPEXConflict}, r.IDs())
	assert.Equal(t, "partition exlocation x is violated by operators a and d placed in the same partition", r.Diagnostics()[0].Message())
}

// Random graphs whose operator pairs are alternately colocated and
// exlocated must either be rejected or satisfy both kinds of label.
func TestColocationExlocationDuality(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	for trial := range 50 {
		n := 3 + rng.IntN(6)
		g := &Graph{DefaultPool: -1}
		for i := range n {
			g.Nodes = append(g.Nodes, &Node{Name: fmt.Sprintf("op%d", i)})
		}
		type pair struct{ a, b int }
		var pcl, pex []pair
		for k := range 2 * n {
			a, b := rng.IntN(n), rng.IntN(n)
			if a == b {
				continue
			}
			l := fmt.Sprintf("L%d", k)
			if k%2 == 0 {
				g.Nodes[a].Labels[PartitionColocation] = append(g.Nodes[a].Labels[PartitionColocation], l)
				g.Nodes[b].Labels[PartitionColocation] = append(g.Nodes[b].Labels[PartitionColocation], l)
				pcl = append(pcl, pair{a, b})
			} else {
				g.Nodes[a].Labels[PartitionExlocation] = append(g.Nodes[a].Labels[PartitionExlocation], l)
				g.Nodes[b].Labels[PartitionExlocation] = append(g.Nodes[b].Labels[PartitionExlocation], l)
				pex = append(pex, pair{a, b})
			}
		}
		r := diag.NewReporter(nil)
		plan, err := Solve(r, nil, g, Options{Seed: 3})
		if err != nil {
			require.ErrorIs(t, err, ErrInfeasible, "trial %d", trial)
			assert.True(t, r.Has(diag.PCLPEXConflict), "trial %d", trial)
			continue
		}
		pe := func(i int) int { return partitionOf(t, plan, g.Nodes[i].Name).ID }
		for _, p := range pcl {
			assert.Equal(t, pe(p.a), pe(p.b), "trial %d", trial)
		}
		for _, p := range pex {
			assert.NotEqual(t, pe(p.a), pe(p.b), "trial %d", trial)
		}
	}
}

func TestRestartability(t *testing.T) {
	src := `
operators:
  - {name: a, restartable: true, partitionColocation: [p]}
  - {name: b, restartable: false, partitionColocation: [p]}
`
	_, r, err := solve(t, src, Options{})
	require.ErrorIs(t, err, ErrInfeasible)
	assert.Equal(t, []diag.ID{diag.PCLRestartConflict}, r.IDs())
	assert.Equal(t, "operators a and b are in the same partition but differ in restartability", r.Diagnostics()[0].Message())

	plan, r, err := solve(t, src, Options{RelaxRestartable: true})
	require.NoError(t, err)
	assert.Empty(t, r.Diagnostics())
	assert.Len(t, plan.Partitions, 1)
}

func TestRelocatableNotRestartable(t *testing.T) {
	_, r, err := solve(t, `
operators:
  - {name: a, restartable: false, relocatable: true}
`, Options{})
	require.NoError(t, err)
	assert.Equal(t, []diag.ID{diag.RelocatableNotRestartable}, r.IDs())
	assert.Zero(t, r.NumErrors())
}

func TestPartitionIsolation(t *testing.T) {
	_, r, err := solve(t, `
operators:
  - {name: a, partitionIsolation: true, partitionColocation: [p]}
  - {name: b, partitionColocation: [p]}
`, Options{})
	require.ErrorIs(t, err, ErrInfeasible)
	assert.Equal(t, []diag.ID{diag.PCLPISConflict}, r.IDs())
}

func TestHostIsolationFusesBucket(t *testing.T) {
	plan, r, err := solve(t, `
operators:
  - {name: op1, hostIsolation: true, hostColocation: [h], loc: {file: app.spl, line: 9, column: 5}}
  - {name: op2, hostColocation: [h]}
  - {name: op3, hostColocation: [h]}
  - {name: op4}
`, Options{})
	require.NoError(t, err)
	require.Equal(t, []diag.ID{diag.FusionHISWarning}, r.IDs())
	d := r.Diagnostics()[0]
	assert.Equal(t, "host isolation of operator op1 fused the operators 'op1', 'op2', 'op3'", d.Message())
	assert.Equal(t, 9, d.Loc.Line)
	require.Len(t, plan.Partitions, 2)
	assert.Len(t, plan.Partitions[0].Operators, 3)
	assert.Equal(t, 1, plan.Partitions[1].ID)
}

func TestFusionMessageBound(t *testing.T) {
	var b strings.Builder
	b.WriteString("operators:\n  - {name: iso, hostIsolation: true, hostColocation: [h]}\n")
	for i := range 6 {
		fmt.Fprintf(&b, "  - {name: op%d, hostColocation: [h]}\n", i)
	}
	_, r, err := solve(t, b.String(), Options{MessageNodeBound: 3})
	require.NoError(t, err)
	require.Len(t, r.Diagnostics(), 1)
	assert.Equal(t, "host isolation of operator iso fused the operators 'iso', 'op0', 'op1', ...", r.Diagnostics()[0].Message())
}

func TestHostIsolationConflicts(t *testing.T) {
	_, r, err := solve(t, `
operators:
  - {name: op1, hostIsolation: true, hostColocation: [h], partitionExlocation: [x]}
  - {name: op2, hostColocation: [h], partitionExlocation: [x], restartable: true}
  - {name: op3, hostColocation: [h], restartable: false}
`, Options{})
	require.ErrorIs(t, err, ErrInfeasible)
	assert.Equal(t, []diag.ID{diag.PEXHISConflict, diag.RestartHISConflict}, r.IDs())
	msgs := []string{r.Diagnostics()[0].Message(), r.Diagnostics()[1].Message()}
	assert.Equal(t, []string{
		"host isolated operator op1 would need to share a host with operators op1 and op2 of partition exlocation x",
		"host isolated operator op1 would fuse operators op2 and op3 that differ in restartability",
	}, msgs)
}

func TestHostIsolationWithPartitionIsolation(t *testing.T) {
	_, r, err := solve(t, `
operators:
  - {name: op1, hostIsolation: true, hostColocation: [h]}
  - {name: op2, partitionIsolation: true, hostColocation: [h]}
`, Options{})
	require.ErrorIs(t, err, ErrInfeasible)
	assert.Equal(t, []diag.ID{diag.PISHISConflict}, r.IDs())
}

func TestHostColocationExlocation(t *testing.T) {
	_, r, err := solve(t, `
pools:
  - {name: p, hosts: [a, b]}
operators:
  - {name: op1, pool: p, slot: 0, hostExlocation: [e]}
  - {name: op2, pool: p, slot: 0, hostExlocation: [e]}
`, Options{})
	require.ErrorIs(t, err, ErrInfeasible)
	assert.Equal(t, []diag.ID{diag.HCLHEXConflict}, r.IDs())
}

func TestExclusivePool(t *testing.T) {
	_, r, err := solve(t, `
pools:
  - {name: ex, size: 2, exclusive: true}
operators:
  - {name: op1, pool: ex, hostColocation: [h]}
  - {name: op2, host: h9, hostColocation: [h]}
`, Options{})
	require.ErrorIs(t, err, ErrInfeasible)
	assert.Equal(t, []diag.ID{diag.ExclusivePoolConflict, diag.HPConflict}, r.IDs())
	assert.Equal(t, "operator op1 is placed in exclusive pool ex but shares a host with operator op2", r.Diagnostics()[0].Message())
	assert.Equal(t, "operators 'op1', 'op2' have no host in common", r.Diagnostics()[1].Message())
}

func TestExclusivePoolHosts(t *testing.T) {
	plan, r, err := solve(t, `
pools:
  - {name: shared}
  - {name: ex, size: 2, exclusive: true}
operators:
  - {name: op1, pool: ex, hostIsolation: true}
  - {name: op2, pool: ex, hostIsolation: true}
`, Options{})
	require.NoError(t, err)
	assert.Empty(t, r.Diagnostics())
	hosts := []string{partitionOf(t, plan, "op1").Host, partitionOf(t, plan, "op2").Host}
	assert.ElementsMatch(t, []string{"_CC_exclusivePool_1._host_0", "_CC_exclusivePool_1._host_1"}, hosts)
}

func TestPoolSlotConflict(t *testing.T) {
	_, r, err := solve(t, `
pools:
  - {name: p, hosts: [a, b]}
operators:
  - {name: op1, pool: p, slot: 0, hostColocation: [h]}
  - {name: op2, pool: p, slot: 1, hostColocation: [h]}
`, Options{})
	require.ErrorIs(t, err, ErrInfeasible)
	assert.Equal(t, []diag.ID{diag.HPConflict, diag.HPConflict}, r.IDs())
}

func TestUnplacedInheritsBucketPlacement(t *testing.T) {
	plan, r, err := solve(t, `
defaultPool: shared
pools:
  - {name: shared}
  - {name: p, hosts: [a, b]}
operators:
  - {name: op1, pool: p, slot: 1, hostColocation: [h]}
  - {name: op2, hostColocation: [h]}
  - {name: op3}
`, Options{})
	require.NoError(t, err)
	assert.Empty(t, r.Diagnostics())
	op := func(name string) Operator {
		for _, o := range partitionOf(t, plan, name).Operators {
			if o.Name == name {
				return o
			}
		}
		t.Fatalf("no operator %s", name)
		return Operator{}
	}
	assert.Equal(t, "pool(p)[1]", op("op2").Placement)
	assert.Equal(t, "pool(shared)", op("op3").Placement)
	assert.Equal(t, partitionOf(t, plan, "op1").Bucket, partitionOf(t, plan, "op2").Bucket)
}

func TestNeedDefaultPoolSize(t *testing.T) {
	src := `
defaultPool: shared
pools:
  - {name: shared}
operators:
  - {name: op1}
`
	_, r, err := solve(t, src, Options{FusionOptimize: true})
	require.ErrorIs(t, err, ErrInfeasible)
	assert.Equal(t, []diag.ID{diag.NeedDefaultPoolSize}, r.IDs())

	_, r, err = solve(t, src, Options{})
	require.NoError(t, err)
	assert.Empty(t, r.Diagnostics())
}

func TestHostExlocationMatching(t *testing.T) {
	src := `
pools:
  - {name: p, hosts: [a, b, c]}
operators:
  - {name: x, host: a, hostExlocation: [e]}
  - {name: y, pool: p, hostExlocation: [e]}
  - {name: z, pool: p, hostExlocation: [e]}
`
	plan, r, err := solve(t, src, Options{Seed: 42})
	require.NoError(t, err)
	assert.Empty(t, r.Diagnostics())
	hosts := map[string]bool{}
	for _, name := range []string{"x", "y", "z"} {
		hosts[partitionOf(t, plan, name).Host] = true
	}
	assert.Equal(t, map[string]bool{"a": true, "b": true, "c": true}, hosts)
	again, _, err := solve(t, src, Options{Seed: 42})
	require.NoError(t, err)
	assert.Equal(t, plan, again)
}

func TestHostExlocationIsolationFailure(t *testing.T) {
	_, r, err := solve(t, `
pools:
  - {name: p, hosts: [a, b]}
operators:
  - {name: iso, pool: p, hostIsolation: true}
  - {name: y, pool: p, hostExlocation: [e]}
  - {name: z, pool: p, hostExlocation: [e]}
`, Options{IterationBound: 3})
	require.ErrorIs(t, err, ErrInfeasible)
	require.Equal(t, []diag.ID{diag.HEXHISFailure}, r.IDs())
	assert.Equal(t, "no host assignment satisfying host exlocation and isolation was found after 3 attempts", r.Diagnostics()[0].Message())
}

func TestInternalError(t *testing.T) {
	g := &Graph{
		DefaultPool: -1,
		Nodes:       []*Node{{Name: "op", Placement: HostPlacement{Kind: InPool, Pool: 4}}},
	}
	_, err := Solve(diag.NewReporter(nil), nil, g, Options{Seed: 1})
	require.ErrorIs(t, err, ErrInternal)
	assert.Contains(t, err.Error(), "pool index 4 out of range")
}

func TestMatch(t *testing.T) {
	bm := roaring.BitmapOf
	hosts, ok := match([]*roaring.Bitmap{bm(0, 1), bm(0)})
	require.True(t, ok)
	assert.Equal(t, []int{1, 0}, hosts)

	hosts, ok = match([]*roaring.Bitmap{bm(0, 1), bm(1, 2), bm(0, 1)})
	require.True(t, ok)
	assert.Equal(t, []int{0, 2, 1}, hosts)

	_, ok = match([]*roaring.Bitmap{bm(0, 1), bm(0, 1), bm(0, 1)})
	assert.False(t, ok)
}

func TestDumpAndText(t *testing.T) {
	g, err := Load(strings.NewReader(`
pools:
  - {name: p, hosts: [a]}
operators:
  - {name: op1, pool: p}
  - {name: op2, host: b, partitionColocation: [c]}
  - {name: op3, partitionColocation: [c]}
`))
	require.NoError(t, err)
	s := NewSolver(diag.NewReporter(nil), nil, g, Options{Seed: 5})
	plan, err := s.Run()
	require.NoError(t, err)
	var text bytes.Buffer
	require.NoError(t, plan.WriteText(&text))
	expected := `partition 0 bucket 0 host -
  op2 host(b)
  op3 host(b)
partition 1 bucket 1 host -
  op1 pool(p)
`
	assert.Equal(t, expected, text.String())
	var dump bytes.Buffer
	s.Dump(&dump)
	assert.Contains(t, dump.String(), "Hosts:")
	assert.Contains(t, dump.String(), `"op3"`)
}

func TestLoadErrors(t *testing.T) {
	for _, src := range []string{
		"operators:\n  - {name: a, pool: nope}\n",
		"pools:\n  - {name: p, hosts: [a]}\noperators:\n  - {name: a, pool: p, slot: 1}\n",
		"pools:\n  - {name: p, hosts: [a], size: 2}\n",
		"pools:\n  - {name: p, exclusive: true}\n",
		"operators:\n  - {name: a}\n  - {name: a}\n",
		"operators:\n  - {name: a, host: h, pool: p}\n",
		"defaultPool: missing\n",
		"operators:\n  - {name: a, colour: red}\n",
	} {
		_, err := Load(strings.NewReader(src))
		assert.ErrorIs(t, err, ErrGraph, src)
	}
}
