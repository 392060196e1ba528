package placement

import (
	"fmt"
	"io"
	"strings"

	"github.com/kr/pretty"
)

// Plan is the result of a successful placement.
type Plan struct {
	Seed       uint64      `json:"seed" yaml:"seed"`
	Iterations int         `json:"iterations" yaml:"iterations"`
	Partitions []Partition `json:"partitions" yaml:"partitions"`
}

// Partition is a set of fused operators.  Host is empty when the
// partition's host is chosen at submission from a shared pool.
type Partition struct {
	ID        int        `json:"id" yaml:"id"`
	Bucket    int        `json:"bucket" yaml:"bucket"`
	Host      string     `json:"host,omitempty" yaml:"host,omitempty"`
	Operators []Operator `json:"operators" yaml:"operators"`
}

type Operator struct {
	Name      string `json:"name" yaml:"name"`
	Placement string `json:"placement" yaml:"placement"`
}

func (s *Solver) plan() *Plan {
	p := &Plan{
		Seed:       s.seed,
		Iterations: s.iterations,
		Partitions: make([]Partition, s.numPEs),
	}
	for pe := range p.Partitions {
		b := s.bucketOf[pe]
		p.Partitions[pe] = Partition{ID: pe, Bucket: b}
		if h := s.bucketHost[b]; h >= 0 {
			p.Partitions[pe].Host = s.hosts[h]
		}
	}
	for i, n := range s.graph.Nodes {
		part := &p.Partitions[s.nodes[i].pe]
		part.Operators = append(part.Operators, Operator{
			Name:      n.Name,
			Placement: s.describe(s.nodes[i].placement),
		})
	}
	return p
}

func (s *Solver) describe(hp HostPlacement) string {
	switch hp.Kind {
	case OnHost:
		return "host(" + hp.Host + ")"
	case InPool:
		return "pool(" + s.graph.Pools[hp.Pool].Name + ")"
	case InPoolSlot:
		return fmt.Sprintf("pool(%s)[%d]", s.graph.Pools[hp.Pool].Name, hp.Slot)
	}
	return "unset"
}

// Partition returns the partition holding an operator.
func (p *Plan) Partition(operator string) (*Partition, bool) {
	for k := range p.Partitions {
		for _, o := range p.Partitions[k].Operators {
			if o.Name == operator {
				return &p.Partitions[k], true
			}
		}
	}
	return nil, false
}

// WriteText writes one line per partition followed by its operators.
func (p *Plan) WriteText(w io.Writer) error {
	var b strings.Builder
	for _, part := range p.Partitions {
		host := part.Host
		if host == "" {
			host = "-"
		}
		fmt.Fprintf(&b, "partition %d bucket %d host %s\n", part.ID, part.Bucket, host)
		for _, o := range part.Operators {
			fmt.Fprintf(&b, "  %s %s\n", o.Name, o.Placement)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

type dump struct {
	Hosts       []string
	Partition   map[string]int
	Bucket      []int
	BucketHosts [][]uint32
	BucketHost  []int
	Labels      map[string]map[string][]uint32
	Iterations  int
	Seed        uint64
}

// Dump writes the solver state for debugging.
func (s *Solver) Dump(w io.Writer) {
	d := dump{
		Hosts:      s.hosts,
		Partition:  make(map[string]int),
		Bucket:     s.bucketOf,
		BucketHost: s.bucketHost,
		Labels:     make(map[string]map[string][]uint32),
		Iterations: s.iterations,
		Seed:       s.seed,
	}
	for i, n := range s.graph.Nodes {
		if i < len(s.nodes) {
			d.Partition[n.Name] = s.nodes[i].pe
		}
	}
	for _, bm := range s.bucketHosts {
		d.BucketHosts = append(d.BucketHosts, bm.ToArray())
	}
	for k, labels := range s.labels {
		if len(labels) == 0 {
			continue
		}
		m := make(map[string][]uint32)
		for l, bm := range labels {
			m[l] = bm.ToArray()
		}
		d.Labels[ConstraintKind(k).String()] = m
	}
	pretty.Fprintf(w, "%# v\n", d)
}
