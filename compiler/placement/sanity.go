package placement

import "fmt"

// sanityCheck verifies the host assignment and, when full is set, the
// partition assignment.  It returns the first violation found.
func (s *Solver) sanityCheck(full bool) error {
	if full {
		if err := s.checkPartitions(); err != nil {
			return err
		}
	}
	return s.checkHosts()
}

func (s *Solver) checkPartitions() error {
	for i := range s.nodes {
		if pe := s.nodes[i].pe; pe < 0 || pe >= s.numPEs {
			return fmt.Errorf("operator %s is not assigned a partition", s.name(i))
		}
	}
	for pe, b := range s.bucketOf {
		if b < 0 || b >= s.numBuckets {
			return fmt.Errorf("partition %d is not assigned a host bucket", pe)
		}
	}
	for _, l := range s.order[PartitionColocation] {
		m := s.members(PartitionColocation, l)
		for _, i := range m[1:] {
			if s.nodes[i].pe != s.nodes[m[0]].pe {
				return fmt.Errorf("partition colocation %s of %s and %s is not satisfied", l, s.name(m[0]), s.name(i))
			}
		}
	}
	var err error
	for _, l := range s.order[PartitionExlocation] {
		s.pairs(PartitionExlocation, l, func(a, b int) {
			if err == nil && s.nodes[a].pe == s.nodes[b].pe {
				err = fmt.Errorf("partition exlocation %s of %s and %s is not satisfied", l, s.name(a), s.name(b))
			}
		})
	}
	if err != nil {
		return err
	}
	for _, m := range s.partitionMembers() {
		for x, a := range m {
			for _, b := range m[x+1:] {
				na, nb := s.graph.Nodes[a], s.graph.Nodes[b]
				if !s.opts.RelaxRestartable && (differ(na.Restartable, nb.Restartable) || differ(na.Relocatable, nb.Relocatable)) {
					return fmt.Errorf("operators %s and %s share a partition but differ in restartability or relocatability", na.Name, nb.Name)
				}
				if na.PartitionIsolation || nb.PartitionIsolation {
					return fmt.Errorf("partition isolation of %s and %s is not satisfied", na.Name, nb.Name)
				}
			}
		}
	}
	return nil
}

// checkHosts verifies that the assigned buckets of each host exlocation
// label have distinct hosts and that no bucket shares the host of a
// host isolated bucket.  Unassigned buckets are ignored.
func (s *Solver) checkHosts() error {
	for _, l := range s.order[HostExlocation] {
		owner := make(map[int]int)
		for _, i := range s.members(HostExlocation, l) {
			b := s.bucket(i)
			h := s.bucketHost[b]
			if h < 0 {
				continue
			}
			if other, ok := owner[h]; ok && other != b {
				return fmt.Errorf("host exlocation %s places buckets %d and %d on host %s", l, other, b, s.hosts[h])
			}
			owner[h] = b
		}
	}
	for i, n := range s.graph.Nodes {
		if !n.HostIsolation {
			continue
		}
		b := s.bucket(i)
		h := s.bucketHost[b]
		if h < 0 {
			continue
		}
		for other, oh := range s.bucketHost {
			if other != b && oh == h {
				return fmt.Errorf("host isolation of %s is not satisfied: bucket %d shares host %s", n.Name, other, s.hosts[h])
			}
		}
	}
	return nil
}
