// Package placement fuses operators into partitions and assigns the
// partitions to hosts subject to colocation, exlocation, isolation and
// host pool constraints.
//
// Solving runs in five phases.  Operator constraints are indexed by
// label, operators are merged into partitions, partitions into host
// buckets, the candidate hosts of each bucket are intersected, and
// finally exlocated and isolated buckets are matched to hosts by a
// bounded randomized search.  Conflicts are reported to a
// diag.Reporter as they are found and solving continues so a single
// run surfaces as many of them as possible.
package placement

import (
	"fmt"

	"github.com/brimdata/splc/compiler/srcfiles"
)

// ConstraintKind names the four label-based constraints.
type ConstraintKind int

const (
	HostColocation ConstraintKind = iota
	HostExlocation
	PartitionColocation
	PartitionExlocation
	numConstraintKinds
)

var constraintNames = [...]string{
	HostColocation:      "hostColocation",
	HostExlocation:      "hostExlocation",
	PartitionColocation: "partitionColocation",
	PartitionExlocation: "partitionExlocation",
}

func (k ConstraintKind) String() string { return constraintNames[k] }

// PlacementKind says how an operator's host is constrained.
type PlacementKind int

const (
	HostNotSet PlacementKind = iota
	// OnHost pins an operator to a named host.
	OnHost
	// InPool places an operator on any host of a pool.
	InPool
	// InPoolSlot pins an operator to one slot of a pool.
	InPoolSlot
)

type HostPlacement struct {
	Kind PlacementKind
	Host string
	Pool int
	Slot int
}

func (h HostPlacement) String() string {
	switch h.Kind {
	case OnHost:
		return "host(" + h.Host + ")"
	case InPool:
		return fmt.Sprintf("pool(%d)", h.Pool)
	case InPoolSlot:
		return fmt.Sprintf("pool(%d)[%d]", h.Pool, h.Slot)
	}
	return "unset"
}

// Pool is a host pool.  An explicit pool lists its hosts.  An implicit
// pool is filled at submission time and has a size only if one was
// declared.  Each operator placed in an exclusive implicit pool gets a
// host of its own.
type Pool struct {
	Name      string
	Hosts     []string
	Implicit  bool
	Exclusive bool
	// Size is the declared size of an implicit pool.  Zero means
	// unsized.
	Size int
	Loc  srcfiles.Location
}

func (p *Pool) HasSize() bool {
	return !p.Implicit || p.Size > 0
}

func (p *Pool) Len() int {
	if p.Implicit {
		return p.Size
	}
	return len(p.Hosts)
}

// slotHost names the host behind slot n of p, which is pool k of its
// collection.  Implicit exclusive pools get synthesized names.
func (p *Pool) slotHost(k, n int) string {
	if !p.Implicit {
		return p.Hosts[n]
	}
	return fmt.Sprintf("_CC_exclusivePool_%d._host_%d", k, n)
}

// Node is an operator instance with its placement constraints.
// Restartable and Relocatable are nil when the operator does not set
// them.
type Node struct {
	Name               string
	Loc                srcfiles.Location
	PartitionIsolation bool
	HostIsolation      bool
	Restartable        *bool
	Relocatable        *bool
	Placement          HostPlacement
	Labels             [numConstraintKinds][]string
}

// Graph is the solver input.  DefaultPool indexes Pools and is -1 when
// there is no default pool.
type Graph struct {
	Nodes       []*Node
	Pools       []*Pool
	DefaultPool int
}
