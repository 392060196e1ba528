package graph

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func build(t *testing.T, vertices string, edges ...string) *Graph[string] {
	g := New[string]()
	for _, v := range strings.Fields(vertices) {
		require.True(t, g.AddVertex(v))
	}
	for _, e := range edges {
		from, to, ok := strings.Cut(e, "->")
		require.True(t, ok, e)
		require.NoError(t, g.AddEdge(from, to))
	}
	return g
}

func TestAddEdge(t *testing.T) {
	g := build(t, "A B")
	assert.False(t, g.AddVertex("A"))
	require.NoError(t, g.AddEdge("A", "B"))
	require.NoError(t, g.AddEdge("A", "B"))
	assert.Equal(t, []string{"B"}, g.Successors("A"))
	assert.Equal(t, []string{"A"}, g.Predecessors("B"))
	assert.ErrorIs(t, g.AddEdge("A", "C"), ErrMissingVertex)
	assert.ErrorIs(t, g.AddEdge("A", "A"), ErrSelfEdge)
	assert.Equal(t, 2, g.Len())
}

func TestRoots(t *testing.T) {
	g := build(t, "A B C D", "A->B", "B->C", "D->C")
	assert.Equal(t, []string{"A", "D"}, g.Roots())
}

func collect(g *Graph[string], start string, same func(a, b string) bool) []string {
	var out []string
	g.Paths(start, same, func(p []string) {
		out = append(out, strings.Join(p, ""))
	})
	return out
}

func TestPaths(t *testing.T) {
	g := build(t, "A B C D", "A->B", "A->C", "B->D", "C->D")
	assert.Equal(t, []string{"ABD", "ACD"}, collect(g, "A", nil))
	assert.Equal(t, []string{"D"}, collect(g, "D", nil))
	assert.Nil(t, collect(g, "X", nil))
}

func TestPathsStopAtRepeat(t *testing.T) {
	g := build(t, "A B C", "A->B", "B->C", "C->A")
	assert.Equal(t, []string{"ABCA"}, collect(g, "A", nil))
}

func TestPathsCustomSameness(t *testing.T) {
	// Vertices with the same letter are versions of one module.
	g := build(t, "a1 b1 a2", "a1->b1", "b1->a2")
	same := func(x, y string) bool { return x[0] == y[0] }
	var paths [][]string
	g.Paths("a1", same, func(p []string) { paths = append(paths, p) })
	assert.Equal(t, [][]string{{"a1", "b1", "a2"}}, paths)
}

func TestCycles(t *testing.T) {
	g := build(t, "A B C D E", "A->B", "B->C", "C->A", "D->E", "E->D", "C->D")
	assert.Equal(t, [][]string{{"A", "B", "C"}, {"D", "E"}}, g.Cycles())
	assert.Empty(t, build(t, "A B", "A->B").Cycles())
}
