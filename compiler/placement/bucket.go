package placement

import (
	"slices"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/brimdata/splc/compiler/diag"
	"go.uber.org/zap"
)

// buckets groups partitions that must share a host.  A merge re-points
// every partition of the absorbed bucket and leaves it empty.
type buckets struct {
	of      []int
	members []*roaring.Bitmap
}

func newBuckets(partitions int) *buckets {
	of := make([]int, partitions)
	for k := range of {
		of[k] = -1
	}
	return &buckets{of: of}
}

func (b *buckets) add(pes ...int) int {
	id := len(b.members)
	bm := roaring.New()
	for _, pe := range pes {
		bm.Add(uint32(pe))
		b.of[pe] = id
	}
	b.members = append(b.members, bm)
	return id
}

func (b *buckets) join(x, y int) {
	bx, by := b.of[x], b.of[y]
	switch {
	case bx == -1 && by == -1:
		b.add(x, y)
	case bx == -1:
		b.of[x] = by
		b.members[by].Add(uint32(x))
	case by == -1:
		b.of[y] = bx
		b.members[bx].Add(uint32(y))
	case bx != by:
		for _, pe := range toInts(b.members[by]) {
			b.of[pe] = bx
		}
		b.members[bx].Or(b.members[by])
		b.members[by].Clear()
	}
}

// bucketize merges partitions into host buckets, checks host exlocation
// and isolation, fuses the partitions of isolated buckets and gives
// unplaced nodes a placement.
func (s *Solver) bucketize() error {
	bk := newBuckets(s.numPEs)
	for _, l := range s.order[HostColocation] {
		m := s.members(HostColocation, l)
		x := s.nodes[m[0]].pe
		if bk.of[x] == -1 && len(m) == 1 {
			bk.add(x)
		}
		for _, j := range m[1:] {
			bk.join(x, s.nodes[j].pe)
		}
	}
	// Nodes pinned to the same host or the same pool slot are
	// colocated.
	byHost := make(map[uint32]int)
	bySlot := make(map[[2]int]int)
	for i := range s.nodes {
		info := &s.nodes[i]
		if info.hosts.GetCardinality() == 1 {
			h := info.hosts.Minimum()
			if pe, ok := byHost[h]; ok {
				bk.join(pe, info.pe)
			} else {
				byHost[h] = info.pe
			}
		}
		if hp := info.placement; hp.Kind == InPoolSlot {
			key := [2]int{hp.Pool, hp.Slot}
			if pe, ok := bySlot[key]; ok {
				bk.join(pe, info.pe)
			} else {
				bySlot[key] = info.pe
			}
		}
	}
	for pe, b := range bk.of {
		if b == -1 {
			bk.add(pe)
		}
	}
	s.bucketOf = bk.of
	s.numBuckets = len(bk.members)
	s.logger.Debug("host buckets assigned", zap.Int("buckets", s.numBuckets))

	for _, l := range s.order[HostExlocation] {
		s.pairs(HostExlocation, l, func(a, b int) {
			if s.bucket(a) == s.bucket(b) {
				s.reporter.Error(s.loc(a), diag.HCLHEXConflict, l, s.name(a), s.name(b))
			}
		})
	}
	s.isolate(bk)
	return s.placeUnset()
}

// isolate checks each bucket holding a host isolated node for
// partitions that cannot be fused and, when there are none, fuses the
// bucket into a single partition.
func (s *Solver) isolate(bk *buckets) {
	var fused []int
	responsible := make(map[int]int)
	for b, m := range s.bucketMembers() {
		k := slices.IndexFunc(m, func(i int) bool { return s.graph.Nodes[i].HostIsolation })
		if k < 0 {
			continue
		}
		k = m[k]
		responsible[b] = k
		if !s.checkIsolation(b, k, m) {
			fused = append(fused, b)
		}
	}
	empty := make([]bool, s.numPEs)
	members := s.partitionMembers()
	for _, b := range fused {
		pes := toInts(bk.members[b])
		if len(pes) < 2 {
			continue
		}
		var names []int
		target := pes[0]
		names = append(names, members[target]...)
		for _, pe := range pes[1:] {
			for _, i := range members[pe] {
				s.nodes[i].pe = target
				names = append(names, i)
			}
			empty[pe] = true
		}
		bk.members[b] = roaring.BitmapOf(uint32(target))
		if len(names) > 1 {
			k := responsible[b]
			s.reporter.Warn(s.loc(k), diag.FusionHISWarning, s.name(k), s.nameList(names))
		}
	}
	s.compact(empty)
}

// checkIsolation reports why the partitions of bucket b, which holds
// the host isolated node k, cannot be fused.  It reports whether any
// conflict was found.
func (s *Solver) checkIsolation(b, k int, m []int) bool {
	conflict := false
	nk := s.graph.Nodes[k]
	for _, l := range s.order[PartitionExlocation] {
		s.pairs(PartitionExlocation, l, func(x, y int) {
			if s.bucket(x) == b && s.bucket(y) == b && s.nodes[x].pe != s.nodes[y].pe {
				s.reporter.Error(nk.Loc, diag.PEXHISConflict, nk.Name, l, s.name(x), s.name(y))
				conflict = true
			}
		})
	}
	if !s.opts.RelaxRestartable {
		for i, x := range m {
			for _, y := range m[i+1:] {
				if s.nodes[x].pe == s.nodes[y].pe {
					continue
				}
				nx, ny := s.graph.Nodes[x], s.graph.Nodes[y]
				if differ(nx.Restartable, ny.Restartable) {
					if !*nx.Restartable {
						nx, ny = ny, nx
					}
					s.reporter.Error(nk.Loc, diag.RestartHISConflict, nk.Name, nx.Name, ny.Name)
					conflict = true
				}
				nx, ny = s.graph.Nodes[x], s.graph.Nodes[y]
				if differ(nx.Relocatable, ny.Relocatable) {
					if !*nx.Relocatable {
						nx, ny = ny, nx
					}
					s.reporter.Error(nk.Loc, diag.RelocateHISConflict, nk.Name, nx.Name, ny.Name)
					conflict = true
				}
			}
		}
	}
	other := -1
	for _, x := range m {
		if x == k {
			continue
		}
		other = x
		if s.graph.Nodes[x].PartitionIsolation {
			s.reporter.Error(nk.Loc, diag.PISHISConflict, nk.Name, s.name(x))
			conflict = true
		}
	}
	if nk.PartitionIsolation && other >= 0 {
		s.reporter.Error(nk.Loc, diag.PISHISConflict, nk.Name, s.name(other))
		conflict = true
	}
	return conflict
}

// compact renumbers partitions so the ids of the non-empty ones are
// dense.
func (s *Solver) compact(empty []bool) {
	renumber := make([]int, s.numPEs)
	n := 0
	for pe := range renumber {
		if empty[pe] {
			renumber[pe] = -1
			continue
		}
		renumber[pe] = n
		n++
	}
	for i := range s.nodes {
		pe := renumber[s.nodes[i].pe]
		if pe < 0 {
			internalf("operator %s is in emptied partition %d", s.name(i), s.nodes[i].pe)
		}
		s.nodes[i].pe = pe
	}
	bucketOf := make([]int, n)
	for pe, id := range renumber {
		if id >= 0 {
			bucketOf[id] = s.bucketOf[pe]
		}
	}
	s.bucketOf = bucketOf
	s.numPEs = n
}

// placeUnset gives each node without a host placement the placement of
// a placed node in its bucket or, failing that, the default pool.
func (s *Solver) placeUnset() error {
	placed := make(map[int]int)
	for i := range s.nodes {
		if s.nodes[i].placement.Kind == HostNotSet {
			continue
		}
		if _, ok := placed[s.bucket(i)]; !ok {
			placed[s.bucket(i)] = i
		}
	}
	for i := range s.nodes {
		if s.nodes[i].placement.Kind != HostNotSet {
			continue
		}
		if j, ok := placed[s.bucket(i)]; ok {
			s.place(i, s.nodes[j].placement)
			continue
		}
		if s.graph.DefaultPool < 0 {
			continue
		}
		if s.opts.FusionOptimize && !s.pool(s.graph.DefaultPool).HasSize() {
			s.reporter.Error(s.loc(i), diag.NeedDefaultPoolSize, s.name(i))
			return ErrInfeasible
		}
		s.place(i, HostPlacement{Kind: InPool, Pool: s.graph.DefaultPool})
	}
	return nil
}
