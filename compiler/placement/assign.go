package placement

import (
	"github.com/RoaringBitmap/roaring/v2"
	"github.com/brimdata/splc/compiler/diag"
	"github.com/brimdata/splc/compiler/srcfiles"
	"go.uber.org/zap"
)

// intersect checks pool consistency within each bucket and computes the
// hosts every member of the bucket can run on.  Members in shared
// implicit pools do not constrain the bucket.
func (s *Solver) intersect() {
	s.bucketHosts = make([]*roaring.Bitmap, s.numBuckets)
	for b, m := range s.bucketMembers() {
		s.checkExclusive(m)
		var hosts *roaring.Bitmap
		var placed []int
		for _, i := range m {
			if s.nodes[i].deferred() {
				continue
			}
			placed = append(placed, i)
			if hosts == nil {
				hosts = s.nodes[i].hosts.Clone()
			} else {
				hosts.And(s.nodes[i].hosts)
			}
		}
		if hosts == nil {
			hosts = roaring.New()
		}
		if len(placed) > 1 && hosts.IsEmpty() {
			s.reporter.Error(s.loc(placed[0]), diag.HPConflict, s.nameList(placed))
		}
		s.bucketHosts[b] = hosts
		s.checkSlots(m)
	}
}

// checkExclusive reports members of a bucket outside the exclusive pool
// of its first exclusively placed member.
func (s *Solver) checkExclusive(m []int) {
	for _, l := range m {
		if !s.nodes[l].exclusive {
			continue
		}
		pool := s.nodes[l].pool
		for _, j := range m {
			if s.nodes[j].pool != pool {
				s.reporter.Error(s.loc(l), diag.ExclusivePoolConflict, s.name(l), s.pool(pool).Name, s.name(j))
			}
		}
		return
	}
}

// checkSlots reports members of a bucket pinned to different slots of
// the same sized pool.
func (s *Solver) checkSlots(m []int) {
	first := make(map[int]int)
	for _, i := range m {
		hp := s.nodes[i].placement
		if hp.Kind != InPoolSlot || !s.pool(hp.Pool).HasSize() {
			continue
		}
		j, ok := first[hp.Pool]
		if !ok {
			first[hp.Pool] = i
			continue
		}
		if s.nodes[j].placement.Slot != hp.Slot {
			s.reporter.Error(s.loc(j), diag.HPConflict, s.nameList([]int{j, i}))
		}
	}
}

// assign chooses hosts for the buckets of host isolated nodes and of
// host exlocated nodes.  A pool too small for the exlocated buckets
// placed in it fails before any search.  Otherwise up to
// IterationBound randomized attempts are made.
func (s *Solver) assign() {
	s.bucketHost = make([]int, s.numBuckets)
	s.resetHosts()
	if !s.checkCapacity() {
		return
	}
	labels := append([]string(nil), s.order[HostExlocation]...)
	isolated := roaring.New()
	for i, n := range s.graph.Nodes {
		if b := s.bucket(i); n.HostIsolation && !s.bucketHosts[b].IsEmpty() {
			isolated.Add(uint32(b))
		}
	}
	iso := toInts(isolated)
	ok := false
	for s.iterations < s.opts.IterationBound && !ok {
		if s.iterations > 0 {
			s.resetHosts()
			s.rng.Shuffle(len(labels), func(i, j int) { labels[i], labels[j] = labels[j], labels[i] })
			s.rng.Shuffle(len(iso), func(i, j int) { iso[i], iso[j] = iso[j], iso[i] })
		}
		s.iterations++
		ok = s.tryAssign(labels, iso) && s.sanityCheck(false) == nil
		s.logger.Debug("host assignment attempt",
			zap.Int("iteration", s.iterations),
			zap.Bool("ok", ok))
	}
	if !ok {
		s.reporter.Error(srcfiles.Location{}, diag.HEXHISFailure, s.opts.IterationBound)
	}
}

func (s *Solver) resetHosts() {
	for b := range s.bucketHost {
		s.bucketHost[b] = -1
	}
}

// checkCapacity reports each sized pool holding more buckets of one host
// exlocation label than it has hosts.
func (s *Solver) checkCapacity() bool {
	pools := make([][]int, s.numBuckets)
	for i := range s.nodes {
		info := &s.nodes[i]
		if info.pool < 0 || !info.exclusive && !s.pool(info.pool).HasSize() {
			continue
		}
		b := s.bucket(i)
		pools[b] = append(pools[b], info.pool)
	}
	ok := true
	for _, l := range s.order[HostExlocation] {
		count := make(map[int]*roaring.Bitmap)
		for _, i := range s.members(HostExlocation, l) {
			b := s.bucket(i)
			for _, k := range pools[b] {
				if count[k] == nil {
					count[k] = roaring.New()
				}
				count[k].Add(uint32(b))
			}
		}
		for k := range s.graph.Pools {
			bm := count[k]
			if bm == nil {
				continue
			}
			p := s.pool(k)
			if n := int(bm.GetCardinality()); n > p.Len() {
				s.reporter.Error(p.Loc, diag.HEXPoolSizeConflict, p.Len(), p.Name, n, l)
				ok = false
			}
		}
	}
	return ok
}

// tryAssign makes one attempt.  Each isolated bucket takes a random
// host no other isolated bucket has.  Then the unassigned buckets of
// each exlocation label are matched to distinct hosts avoiding the
// hosts of the label's assigned buckets and those reserved by
// isolation.
func (s *Solver) tryAssign(labels []string, iso []int) bool {
	reserved := roaring.New()
	for _, b := range iso {
		free := roaring.AndNot(s.bucketHosts[b], reserved)
		n := free.GetCardinality()
		if n == 0 {
			return false
		}
		h, err := free.Select(uint32(s.rng.IntN(int(n))))
		if err != nil {
			internalf("selecting a host for bucket %d: %s", b, err)
		}
		s.bucketHost[b] = int(h)
		reserved.Add(h)
	}
	for _, l := range labels {
		var lhs []int
		used := roaring.New()
		seen := roaring.New()
		for _, i := range s.members(HostExlocation, l) {
			b := s.bucket(i)
			if h := s.bucketHost[b]; h >= 0 {
				used.Add(uint32(h))
				continue
			}
			if s.bucketHosts[b].IsEmpty() || seen.Contains(uint32(b)) {
				continue
			}
			seen.Add(uint32(b))
			lhs = append(lhs, b)
		}
		if len(lhs) == 0 {
			continue
		}
		allowed := make([]*roaring.Bitmap, len(lhs))
		for k, b := range lhs {
			allowed[k] = roaring.AndNot(s.bucketHosts[b], used)
			allowed[k].AndNot(reserved)
		}
		hosts, ok := match(allowed)
		if !ok {
			s.logger.Debug("no matching for host exlocation", zap.String("label", l))
			return false
		}
		for k, b := range lhs {
			s.bucketHost[b] = hosts[k]
		}
	}
	return true
}
