package placement

import (
	"github.com/RoaringBitmap/roaring/v2"
	"github.com/brimdata/splc/compiler/diag"
	"go.uber.org/zap"
)

// populate indexes labels and hosts and computes the candidate hosts of
// each node.
func (s *Solver) populate() {
	s.nodes = make([]nodeInfo, len(s.graph.Nodes))
	for k := range s.labels {
		s.labels[k] = make(map[string]*roaring.Bitmap)
	}
	for i, n := range s.graph.Nodes {
		s.nodes[i] = nodeInfo{pe: -1, pool: -1, hosts: roaring.New()}
		if n.Restartable != nil && !*n.Restartable && n.Relocatable != nil && *n.Relocatable {
			s.reporter.Warn(n.Loc, diag.RelocatableNotRestartable, n.Name)
		}
		for k, labels := range n.Labels {
			for _, l := range labels {
				bm, ok := s.labels[k][l]
				if !ok {
					bm = roaring.New()
					s.labels[k][l] = bm
				}
				bm.Add(uint32(i))
			}
		}
	}
	for k := range s.labels {
		s.order[k] = sortedKeys(s.labels[k])
	}
	for k, p := range s.graph.Pools {
		if !p.Implicit || p.Exclusive {
			for slot := range p.Len() {
				s.addHost(p.slotHost(k, slot))
			}
		}
	}
	for _, n := range s.graph.Nodes {
		if n.Placement.Kind == OnHost {
			s.addHost(n.Placement.Host)
		}
	}
	for i, n := range s.graph.Nodes {
		s.place(i, n.Placement)
	}
	s.logger.Debug("placement constraints populated",
		zap.Int("operators", len(s.nodes)),
		zap.Int("pools", len(s.graph.Pools)),
		zap.Int("hosts", len(s.hosts)))
}

func (s *Solver) addHost(name string) {
	if _, ok := s.hostIndex[name]; !ok {
		s.hostIndex[name] = len(s.hosts)
		s.hosts = append(s.hosts, name)
	}
}

// place records hp as the placement of node i and adds the hosts it
// allows.  Shared implicit pools add none.
func (s *Solver) place(i int, hp HostPlacement) {
	info := &s.nodes[i]
	info.placement = hp
	switch hp.Kind {
	case OnHost:
		info.hosts.Add(s.hostID(hp.Host))
	case InPool, InPoolSlot:
		p := s.pool(hp.Pool)
		info.pool = hp.Pool
		info.implicit = p.Implicit
		info.exclusive = p.Implicit && p.Exclusive
		if info.deferred() {
			return
		}
		if hp.Kind == InPoolSlot {
			if hp.Slot < 0 || hp.Slot >= p.Len() {
				internalf("slot %d of pool %s out of range", hp.Slot, p.Name)
			}
			info.hosts.Add(s.hostID(p.slotHost(hp.Pool, hp.Slot)))
			return
		}
		for slot := range p.Len() {
			info.hosts.Add(s.hostID(p.slotHost(hp.Pool, slot)))
		}
	}
}

// partition assigns every node a partition.  Nodes sharing a partition
// colocation label, directly or through other labels, share one.  The
// colocated groups are numbered first in label order and every other
// node gets a partition of its own.
func (s *Solver) partition() {
	parent := make([]int, len(s.nodes))
	for i := range parent {
		parent[i] = i
	}
	find := func(i int) int {
		for parent[i] != i {
			parent[i] = parent[parent[i]]
			i = parent[i]
		}
		return i
	}
	for _, l := range s.order[PartitionColocation] {
		m := s.members(PartitionColocation, l)
		for _, j := range m[1:] {
			if a, b := find(m[0]), find(j); a != b {
				parent[b] = a
			}
		}
	}
	ids := make(map[int]int)
	assign := func(i int) {
		root := find(i)
		id, ok := ids[root]
		if !ok {
			id = s.numPEs
			s.numPEs++
			ids[root] = id
		}
		s.nodes[i].pe = id
	}
	for _, l := range s.order[PartitionColocation] {
		for _, i := range s.members(PartitionColocation, l) {
			assign(i)
		}
	}
	for i := range s.nodes {
		if s.nodes[i].pe == -1 {
			assign(i)
		}
	}
	s.logger.Debug("partitions assigned", zap.Int("partitions", s.numPEs))

	for _, l := range s.order[PartitionExlocation] {
		s.pairs(PartitionExlocation, l, func(a, b int) {
			if s.nodes[a].pe == s.nodes[b].pe {
				s.reporter.Error(s.loc(a), diag.PCLPEXConflict, l, s.name(a), s.name(b))
			}
		})
	}
	if !s.opts.RelaxRestartable {
		for _, m := range s.partitionMembers() {
			for x, a := range m {
				for _, b := range m[x+1:] {
					s.checkRestart(a, b)
				}
			}
		}
	}
	for _, l := range s.order[HostExlocation] {
		s.pairs(HostExlocation, l, func(a, b int) {
			if s.nodes[a].pe == s.nodes[b].pe {
				s.reporter.Error(s.loc(a), diag.PCLHEXConflict, l, s.name(a), s.name(b))
			}
		})
	}
	members := s.partitionMembers()
	for i, n := range s.graph.Nodes {
		if !n.PartitionIsolation {
			continue
		}
		for _, k := range members[s.nodes[i].pe] {
			if k != i {
				s.reporter.Error(n.Loc, diag.PCLPISConflict, n.Name, s.name(k))
			}
		}
	}
}

// checkRestart reports nodes a and b, which share a partition, when
// they disagree on restartability or relocatability.  The restartable
// or relocatable node is named first.
func (s *Solver) checkRestart(a, b int) {
	na, nb := s.graph.Nodes[a], s.graph.Nodes[b]
	if differ(na.Restartable, nb.Restartable) {
		first, second := na, nb
		if !*na.Restartable {
			first, second = nb, na
		}
		s.reporter.Error(na.Loc, diag.PCLRestartConflict, first.Name, second.Name)
	}
	if differ(na.Relocatable, nb.Relocatable) {
		first, second := na, nb
		if !*na.Relocatable {
			first, second = nb, na
		}
		s.reporter.Error(na.Loc, diag.PCLRelocateConflict, first.Name, second.Name)
	}
}
