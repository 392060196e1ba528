package toolkit

import (
	"errors"
	"slices"
	"strings"

	"github.com/brimdata/splc/compiler/diag"
	"github.com/brimdata/splc/compiler/graph"
	"github.com/brimdata/splc/compiler/srcfiles"
	"go.uber.org/zap"
)

var ErrUnreconcilable = errors.New("toolkit dependencies cannot be reconciled")

// Resolution is the outcome of Resolve.
type Resolution struct {
	// Toolkits is the load order: the current toolkit, the standard
	// toolkit, then the rest sorted by name.
	Toolkits []*Toolkit
	// Solutions counts the partial solutions considered.
	Solutions int
}

// Solution is one path through the dependency graph of the toolkits
// needing resolution.
type Solution struct {
	Path []*Toolkit
}

func (s Solution) version(name string) (Version, bool) {
	for _, tk := range s.Path {
		if tk.Name == name {
			return tk.Version, true
		}
	}
	return Version{}, false
}

// Compare walks s in path order and compares each toolkit's version with
// the version of the same-named toolkit in other.  The first difference
// decides.
func (s Solution) Compare(other Solution) int {
	for _, tk := range s.Path {
		if v, ok := other.version(tk.Name); ok {
			if c := tk.Version.Compare(v); c != 0 {
				return c
			}
		}
	}
	return 0
}

func (s Solution) String() string {
	var b strings.Builder
	for k, tk := range s.Path {
		if k > 0 {
			b.WriteByte('|')
		}
		b.WriteString(tk.String())
	}
	return b.String()
}

// Resolve chooses one version of every toolkit name in found.  Names
// found in a single version are taken as is.  For the rest, versions
// that are the only match for a dependency of a chosen toolkit are
// taken next, and whatever remains is settled by combining partial
// solutions, highest versions first, until a combination satisfies every
// pairwise dependency.  On failure every conflict detected is reported
// under one UNRECONCILABLE_DEPENDENCIES diagnostic.
func Resolve(reporter *diag.Reporter, logger *zap.Logger, found []*Toolkit) (*Resolution, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &resolver{
		reporter: reporter,
		logger:   logger,
		versions: make(map[string][]*Toolkit),
		loaded:   make(map[string]*Toolkit),
		pending:  make(map[string][]*Toolkit),
	}
	for _, tk := range found {
		if _, ok := r.versions[tk.Name]; !ok {
			r.names = append(r.names, tk.Name)
		}
		r.versions[tk.Name] = append(r.versions[tk.Name], tk)
	}
	slices.Sort(r.names)
	for _, name := range r.names {
		tks := r.versions[name]
		if len(tks) == 1 {
			r.loaded[name] = tks[0]
			continue
		}
		sorted := slices.Clone(tks)
		slices.SortStableFunc(sorted, func(a, b *Toolkit) int { return a.Version.Compare(b.Version) })
		r.pending[name] = sorted
		logger.Debug("toolkit needs version resolution",
			zap.String("name", name),
			zap.Strings("versions", toolkitNames(sorted)))
	}
	res := &Resolution{}
	if len(r.pending) > 0 {
		r.addSingletonDependencies()
	}
	if len(r.pending) > 0 {
		solutions := r.partialSolutions()
		res.Solutions = len(solutions)
		if len(solutions) > 0 && !r.combine(solutions) {
			return nil, ErrUnreconcilable
		}
	}
	res.Toolkits = r.order()
	for _, tk := range res.Toolkits {
		logger.Debug("toolkit selected",
			zap.Stringer("toolkit", tk),
			zap.String("file", tk.File))
	}
	return res, nil
}

type resolver struct {
	reporter *diag.Reporter
	logger   *zap.Logger
	names    []string
	versions map[string][]*Toolkit
	loaded   map[string]*Toolkit
	pending  map[string][]*Toolkit
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// addSingletonDependencies commits, until nothing changes, every pending
// version that is the only one satisfying a dependency of a committed
// toolkit.
func (r *resolver) addSingletonDependencies() {
	seen := make(map[string]bool)
	for changed := true; changed; {
		changed = false
		for _, name := range sortedKeys(r.loaded) {
			if seen[name] {
				continue
			}
			seen[name] = true
			tk := r.loaded[name]
			for _, dep := range tk.Dependencies {
				var matches []*Toolkit
				for _, v := range r.pending[dep.Name] {
					if dep.Range.Contains(v.Version) {
						matches = append(matches, v)
					}
				}
				if len(matches) == 1 {
					r.logger.Debug("single version satisfies dependency",
						zap.Stringer("toolkit", tk),
						zap.Stringer("dependency", dep),
						zap.Stringer("selected", matches[0]))
					delete(r.pending, dep.Name)
					r.loaded[dep.Name] = matches[0]
					changed = true
				}
			}
		}
	}
}

// considered returns the committed toolkits followed by every pending
// version, in name order.
func (r *resolver) considered() []*Toolkit {
	var out []*Toolkit
	for _, name := range sortedKeys(r.loaded) {
		out = append(out, r.loaded[name])
	}
	for _, name := range sortedKeys(r.pending) {
		out = append(out, r.pending[name]...)
	}
	return out
}

func toolkitNames(tks []*Toolkit) []string {
	out := make([]string, 0, len(tks))
	for _, tk := range tks {
		out = append(out, tk.String())
	}
	return out
}

func sameName(a, b *Toolkit) bool { return a.Name == b.Name }

func (r *resolver) partialSolutions() []Solution {
	g := graph.New[*Toolkit]()
	considered := r.considered()
	for _, tk := range considered {
		g.AddVertex(tk)
	}
	for _, tk := range considered {
		for _, other := range considered {
			if tk != other && tk.DependsOn(other) {
				// Both vertices are present and distinct.
				_ = g.AddEdge(tk, other)
			}
		}
	}
	for _, cycle := range g.Cycles() {
		r.logger.Debug("cyclic toolkit dependency", zap.Strings("toolkits", toolkitNames(cycle)))
	}
	var solutions []Solution
	record := func(path []*Toolkit) {
		if r.valid(path) {
			solutions = append(solutions, Solution{Path: path})
		}
	}
	handled := make(map[string]bool)
	for _, root := range g.Roots() {
		g.Paths(root, sameName, record)
		handled[root.Name] = true
	}
	// What remains is only reachable through a cycle.
	for _, name := range sortedKeys(r.pending) {
		if handled[name] {
			delete(r.pending, name)
			continue
		}
		for _, tk := range r.pending[name] {
			g.Paths(tk, sameName, record)
		}
	}
	slices.SortStableFunc(solutions, func(a, b Solution) int { return b.Compare(a) })
	for _, s := range solutions {
		r.logger.Debug("partial solution", zap.Stringer("solution", s))
	}
	return solutions
}

// valid reports whether path adds something to the committed toolkits
// without contradicting them.
func (r *resolver) valid(path []*Toolkit) bool {
	allLoaded := true
	for _, tk := range path {
		loaded, ok := r.loaded[tk.Name]
		if !ok {
			allLoaded = false
			continue
		}
		if loaded != tk {
			return false
		}
	}
	return !allLoaded
}

// conflict describes a dependency of one toolkit that another toolkit
// under consideration does not meet.
type conflict struct {
	requirer *Toolkit
	required *Toolkit
	dep      Dependency
}

func findConflict(a, b *Toolkit) (conflict, bool) {
	if dep, ok := a.unsatisfied(b); ok {
		return conflict{requirer: a, required: b, dep: dep}, true
	}
	if dep, ok := b.unsatisfied(a); ok {
		return conflict{requirer: b, required: a, dep: dep}, true
	}
	return conflict{}, false
}

type candidate map[string]*Toolkit

func (c candidate) clone() candidate {
	out := make(candidate, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// accepts checks tk against every member of c in both directions.
func (c candidate) accepts(tk *Toolkit) (conflict, bool) {
	for _, name := range sortedKeys(c) {
		if cf, ok := findConflict(tk, c[name]); ok {
			return cf, false
		}
	}
	return conflict{}, true
}

// add merges s into c if every toolkit of s is compatible with c.
func (c candidate) add(s Solution) (conflict, bool) {
	for _, tk := range s.Path {
		if cf, ok := c.accepts(tk); !ok {
			return cf, false
		}
	}
	for _, tk := range s.Path {
		if _, ok := c[tk.Name]; !ok {
			c[tk.Name] = tk
		}
	}
	return conflict{}, true
}

func (c candidate) consistent() (conflict, bool) {
	names := sortedKeys(c)
	for _, outer := range names {
		for _, inner := range names {
			if outer == inner {
				continue
			}
			if dep, ok := c[inner].unsatisfied(c[outer]); ok {
				return conflict{requirer: c[inner], required: c[outer], dep: dep}, false
			}
		}
	}
	return conflict{}, true
}

func (r *resolver) combine(solutions []Solution) bool {
	var conflicts []conflict
	for k, outer := range solutions {
		potential := candidate(r.loaded).clone()
		if cf, ok := potential.add(outer); !ok {
			conflicts = append(conflicts, cf)
			continue
		}
		for j, inner := range solutions {
			if j == k {
				continue
			}
			if cf, ok := potential.add(inner); !ok {
				conflicts = append(conflicts, cf)
			}
		}
		if cf, ok := potential.consistent(); !ok {
			conflicts = append(conflicts, cf)
			continue
		}
		r.logger.Debug("dependencies reconciled", zap.Stringer("solution", outer))
		r.loaded = potential
		return true
	}
	d := r.reporter.Error(srcfiles.Location{}, diag.UnreconcilableDependencies)
	seen := make(map[string]bool)
	for _, cf := range conflicts {
		key := cf.requirer.String() + " " + cf.required.String() + " " + cf.dep.String()
		if seen[key] {
			continue
		}
		seen[key] = true
		r.reporter.Detail(d, srcfiles.Location{File: cf.requirer.File}, diag.UnreconcilableToolkit,
			cf.requirer.Name, cf.requirer.Version.String(), cf.required.Name, cf.required.Version.String(), cf.dep.Range.String())
	}
	return false
}

// order puts the current toolkit first, the standard toolkit second and
// the rest in name order.
func (r *resolver) order() []*Toolkit {
	var current, spl *Toolkit
	var rest []*Toolkit
	for _, name := range sortedKeys(r.loaded) {
		tk := r.loaded[name]
		switch {
		case current == nil && tk.Current:
			current = tk
		case spl == nil && tk.SPL:
			spl = tk
		default:
			rest = append(rest, tk)
		}
	}
	var out []*Toolkit
	if current != nil {
		out = append(out, current)
	}
	if spl != nil {
		out = append(out, spl)
	}
	return append(out, rest...)
}
