// Package graph implements a small directed graph over comparable
// vertices.  An edge from u to v means u depends on v.  Vertices and
// edges are kept in insertion order so every traversal is deterministic.
package graph

import (
	"errors"
	"fmt"
)

var (
	ErrMissingVertex = errors.New("vertex not in graph")
	ErrSelfEdge      = errors.New("vertex cannot depend on itself")
)

type Graph[V comparable] struct {
	vertices []V
	index    map[V]int
	succ     [][]int
	pred     [][]int
}

func New[V comparable]() *Graph[V] {
	return &Graph[V]{index: make(map[V]int)}
}

// AddVertex adds v and reports whether it was not already present.
func (g *Graph[V]) AddVertex(v V) bool {
	if _, ok := g.index[v]; ok {
		return false
	}
	g.index[v] = len(g.vertices)
	g.vertices = append(g.vertices, v)
	g.succ = append(g.succ, nil)
	g.pred = append(g.pred, nil)
	return true
}

// AddEdge records that from depends on to.  Adding an existing edge is
// a no-op.
func (g *Graph[V]) AddEdge(from, to V) error {
	i, ok := g.index[from]
	if !ok {
		return fmt.Errorf("%w: %v", ErrMissingVertex, from)
	}
	j, ok := g.index[to]
	if !ok {
		return fmt.Errorf("%w: %v", ErrMissingVertex, to)
	}
	if i == j {
		return fmt.Errorf("%w: %v", ErrSelfEdge, from)
	}
	for _, k := range g.succ[i] {
		if k == j {
			return nil
		}
	}
	g.succ[i] = append(g.succ[i], j)
	g.pred[j] = append(g.pred[j], i)
	return nil
}

func (g *Graph[V]) Len() int      { return len(g.vertices) }
func (g *Graph[V]) Vertices() []V { return append([]V(nil), g.vertices...) }

// Successors returns the vertices v depends on.
func (g *Graph[V]) Successors(v V) []V {
	i, ok := g.index[v]
	if !ok {
		return nil
	}
	return g.lookup(g.succ[i])
}

// Predecessors returns the vertices that depend on v.
func (g *Graph[V]) Predecessors(v V) []V {
	i, ok := g.index[v]
	if !ok {
		return nil
	}
	return g.lookup(g.pred[i])
}

func (g *Graph[V]) lookup(ids []int) []V {
	out := make([]V, 0, len(ids))
	for _, id := range ids {
		out = append(out, g.vertices[id])
	}
	return out
}

// Roots returns the vertices no other vertex depends on.
func (g *Graph[V]) Roots() []V {
	var roots []V
	for i, v := range g.vertices {
		if len(g.pred[i]) == 0 {
			roots = append(roots, v)
		}
	}
	return roots
}

// Paths calls fn with every maximal path that starts at start and
// follows dependency edges.  A path ends at a vertex with no successors
// or at a vertex that repeats an earlier vertex of the path according
// to same, which defaults to ==.  The slice passed to fn is fresh for
// each call.
func (g *Graph[V]) Paths(start V, same func(a, b V) bool, fn func([]V)) {
	i, ok := g.index[start]
	if !ok {
		return
	}
	if same == nil {
		same = func(a, b V) bool { return a == b }
	}
	g.paths([]int{i}, same, fn)
}

func (g *Graph[V]) paths(path []int, same func(a, b V) bool, fn func([]V)) {
	last := path[len(path)-1]
	if len(g.succ[last]) == 0 || g.repeats(path, same) {
		fn(g.lookup(path))
		return
	}
	for _, next := range g.succ[last] {
		g.paths(append(path[:len(path):len(path)], next), same, fn)
	}
}

func (g *Graph[V]) repeats(path []int, same func(a, b V) bool) bool {
	last := g.vertices[path[len(path)-1]]
	for _, id := range path[:len(path)-1] {
		if same(g.vertices[id], last) {
			return true
		}
	}
	return false
}

// Cycles returns the strongly connected components that contain a
// cycle, each in vertex insertion order.  Components are ordered by
// their first vertex.
func (g *Graph[V]) Cycles() [][]V {
	t := &tarjan[V]{
		g:     g,
		index: make([]int, len(g.vertices)),
		low:   make([]int, len(g.vertices)),
		on:    make([]bool, len(g.vertices)),
		comp:  make([]int, len(g.vertices)),
	}
	for i := range t.index {
		t.index[i] = -1
	}
	for i := range g.vertices {
		if t.index[i] < 0 {
			t.visit(i)
		}
	}
	var cycles [][]V
	seen := make(map[int]bool)
	for i := range g.vertices {
		c := t.comp[i]
		if seen[c] {
			continue
		}
		seen[c] = true
		var members []int
		for j := i; j < len(g.vertices); j++ {
			if t.comp[j] == c {
				members = append(members, j)
			}
		}
		if len(members) > 1 {
			cycles = append(cycles, g.lookup(members))
		}
	}
	return cycles
}

type tarjan[V comparable] struct {
	g     *Graph[V]
	next  int
	index []int
	low   []int
	on    []bool
	stack []int
	comp  []int
	ncomp int
}

func (t *tarjan[V]) visit(v int) {
	t.index[v] = t.next
	t.low[v] = t.next
	t.next++
	t.stack = append(t.stack, v)
	t.on[v] = true
	for _, w := range t.g.succ[v] {
		if t.index[w] < 0 {
			t.visit(w)
			t.low[v] = min(t.low[v], t.low[w])
		} else if t.on[w] {
			t.low[v] = min(t.low[v], t.index[w])
		}
	}
	if t.low[v] != t.index[v] {
		return
	}
	for {
		w := t.stack[len(t.stack)-1]
		t.stack = t.stack[:len(t.stack)-1]
		t.on[w] = false
		t.comp[w] = t.ncomp
		if w == v {
			break
		}
	}
	t.ncomp++
}
