package toolkit

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/brimdata/splc/compiler/diag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mk builds a toolkit whose dependencies are written name@range.
func mk(name, version string, deps ...string) *Toolkit {
	tk := &Toolkit{
		Name:    name,
		Version: MustParseVersion(version),
		Dir:     name + "-" + version,
		File:    name + "-" + version + "/toolkit.xml",
	}
	for _, d := range deps {
		n, r, _ := strings.Cut(d, "@")
		tk.Dependencies = append(tk.Dependencies, Dependency{Name: n, Range: MustParseRange(r)})
	}
	return tk
}

func names(tks []*Toolkit) string {
	return strings.Join(toolkitNames(tks), " ")
}

func TestResolveSingleVersionDependency(t *testing.T) {
	r := diag.NewReporter(nil)
	found := []*Toolkit{
		mk("A", "1.0"),
		mk("A", "2.0"),
		mk("B", "1.0", "A@[2.0,3.0)"),
	}
	res, err := Resolve(r, nil, found)
	require.NoError(t, err)
	assert.Equal(t, "A(2.0) B(1.0)", names(res.Toolkits))
	assert.Empty(t, r.Diagnostics())
	require.NoError(t, CheckDependencies(r, MustParseVersion("4.0"), res.Toolkits))
	assert.Empty(t, r.Diagnostics())
}

func TestResolvePrefersHighestVersions(t *testing.T) {
	r := diag.NewReporter(nil)
	found := []*Toolkit{
		mk("app", "1.0", "lib@[1.0,3.0)"),
		mk("lib", "1.0"),
		mk("lib", "2.0", "util@[1.0,2.0)"),
		mk("util", "1.0"),
		mk("util", "1.5"),
	}
	res, err := Resolve(r, nil, found)
	require.NoError(t, err)
	assert.Equal(t, "app(1.0) lib(2.0) util(1.5)", names(res.Toolkits))
	assert.Positive(t, res.Solutions)
	assert.Empty(t, r.Diagnostics())
}

func TestResolveUnreferencedVersions(t *testing.T) {
	r := diag.NewReporter(nil)
	res, err := Resolve(r, nil, []*Toolkit{mk("A", "1.0"), mk("A", "1.2"), mk("A", "1.1")})
	require.NoError(t, err)
	assert.Equal(t, "A(1.2)", names(res.Toolkits))
}

func TestResolveCycle(t *testing.T) {
	r := diag.NewReporter(nil)
	found := []*Toolkit{
		mk("A", "1.0", "B@[1.0,2.0)"),
		mk("A", "2.0", "B@[2.0,3.0)"),
		mk("B", "1.0", "A@[1.0,2.0)"),
		mk("B", "2.0", "A@[2.0,3.0)"),
	}
	res, err := Resolve(r, nil, found)
	require.NoError(t, err)
	assert.Equal(t, "A(2.0) B(2.0)", names(res.Toolkits))
	assert.Empty(t, r.Diagnostics())
}

func TestResolveDeterministic(t *testing.T) {
	found := []*Toolkit{
		mk("app", "1.0", "lib@[1.0,3.0)", "net@1.0"),
		mk("lib", "1.0", "util@[1.0,2.0)"),
		mk("lib", "2.0", "util@[1.0,2.0)"),
		mk("net", "1.0", "util@1.0"),
		mk("net", "1.1", "util@1.0"),
		mk("util", "1.0"),
		mk("util", "1.5"),
		mk("util", "2.0"),
	}
	first, err := Resolve(diag.NewReporter(nil), nil, found)
	require.NoError(t, err)
	want := names(first.Toolkits)
	rng := rand.New(rand.NewPCG(1, 2))
	for range 20 {
		shuffled := append([]*Toolkit(nil), found...)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
		res, err := Resolve(diag.NewReporter(nil), nil, shuffled)
		require.NoError(t, err)
		assert.Equal(t, want, names(res.Toolkits))
	}
}

func TestResolveUnreconcilable(t *testing.T) {
	r := diag.NewReporter(nil)
	found := []*Toolkit{
		mk("A", "1.0"),
		mk("A", "1.1"),
		mk("B", "1.0", "A@[2.0,3.0)"),
	}
	_, err := Resolve(r, nil, found)
	require.ErrorIs(t, err, ErrUnreconcilable)
	diags := r.Diagnostics()
	require.Len(t, diags, 1)
	assert.Equal(t, diag.UnreconcilableDependencies, diags[0].ID)
	require.Len(t, diags[0].Details, 2)
	var msgs []string
	for _, d := range diags[0].Details {
		assert.Equal(t, diag.UnreconcilableToolkit, d.ID)
		msgs = append(msgs, d.Message())
	}
	assert.Equal(t, []string{
		"toolkit B version 1.0 requires A in range [2.0,3.0) but version 1.1 was considered",
		"toolkit B version 1.0 requires A in range [2.0,3.0) but version 1.0 was considered",
	}, msgs)
}

func TestMutuallyIncompatibleToolkits(t *testing.T) {
	r := diag.NewReporter(nil)
	found := []*Toolkit{
		mk("A", "1.0", "B@[2.0,3.0)"),
		mk("B", "1.0", "A@[3.0,4.0)"),
	}
	res, err := Resolve(r, nil, found)
	require.NoError(t, err)
	err = CheckDependencies(r, MustParseVersion("4.0"), res.Toolkits)
	require.ErrorIs(t, err, ErrDependency)
	out := r.Render()
	for _, s := range []string{"toolkit A", "toolkit B", "[2.0,3.0)", "[3.0,4.0)"} {
		assert.Contains(t, out, s)
	}
	assert.Equal(t, []diag.ID{diag.ToolkitDependencyMismatch, diag.ToolkitDependencyMismatch}, r.IDs())
}

func TestResolveLoadOrder(t *testing.T) {
	current := mk("zeta", "1.0")
	current.Current = true
	spl := mk("spl", "1.0")
	spl.SPL = true
	res, err := Resolve(diag.NewReporter(nil), nil, []*Toolkit{mk("beta", "1.0"), spl, mk("alpha", "1.0"), current})
	require.NoError(t, err)
	assert.Equal(t, "zeta(1.0) spl(1.0) alpha(1.0) beta(1.0)", names(res.Toolkits))
}

func TestSolutionCompare(t *testing.T) {
	a1, a2, b1, b2 := mk("A", "1.0"), mk("A", "2.0"), mk("B", "1.0"), mk("B", "2.0")
	assert.Equal(t, 1, Solution{Path: []*Toolkit{a2, b1}}.Compare(Solution{Path: []*Toolkit{b2, a1}}))
	assert.Equal(t, -1, Solution{Path: []*Toolkit{b1, a2}}.Compare(Solution{Path: []*Toolkit{a1, b2}}))
	assert.Equal(t, 0, Solution{Path: []*Toolkit{a1}}.Compare(Solution{Path: []*Toolkit{b2}}))
	assert.Equal(t, "A(2.0)|B(1.0)", Solution{Path: []*Toolkit{a2, b1}}.String())
}

func TestCheckDependencies(t *testing.T) {
	r := diag.NewReporter(nil)
	old := mk("old", "1.0", "gone@1.0")
	old.RequiredProductVersion = MustParseRange("[3.0,4.0)")
	err := CheckDependencies(r, MustParseVersion("4.2"), []*Toolkit{old})
	require.ErrorIs(t, err, ErrDependency)
	assert.Equal(t, []diag.ID{diag.ToolkitMismatchProductVersion, diag.ToolkitDependencyMissing}, r.IDs())
	assert.Equal(t, "toolkit old version 1.0 requires product version [3.0,4.0) but the compiler version is 4.2", r.Diagnostics()[0].Message())
}
