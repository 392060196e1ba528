package placement

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/brimdata/splc/compiler/srcfiles"
	"github.com/goccy/go-yaml"
)

var ErrGraph = errors.New("invalid placement graph")

// graphFile is the YAML form of a Graph.  Pools are referenced by name.
type graphFile struct {
	DefaultPool string         `yaml:"defaultPool"`
	Pools       []poolFile     `yaml:"pools"`
	Operators   []operatorFile `yaml:"operators"`
}

type poolFile struct {
	Name      string            `yaml:"name"`
	Hosts     []string          `yaml:"hosts"`
	Size      int               `yaml:"size"`
	Exclusive bool              `yaml:"exclusive"`
	Loc       srcfiles.Location `yaml:"loc"`
}

type operatorFile struct {
	Name                string            `yaml:"name"`
	Loc                 srcfiles.Location `yaml:"loc"`
	PartitionIsolation  bool              `yaml:"partitionIsolation"`
	HostIsolation       bool              `yaml:"hostIsolation"`
	Restartable         *bool             `yaml:"restartable"`
	Relocatable         *bool             `yaml:"relocatable"`
	Host                string            `yaml:"host"`
	Pool                string            `yaml:"pool"`
	Slot                *int              `yaml:"slot"`
	HostColocation      []string          `yaml:"hostColocation"`
	HostExlocation      []string          `yaml:"hostExlocation"`
	PartitionColocation []string          `yaml:"partitionColocation"`
	PartitionExlocation []string          `yaml:"partitionExlocation"`
}

// LoadFile reads a graph from a YAML file.
func LoadFile(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	g, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// Load reads a graph in YAML.  A pool without hosts is implicit.
// Operators name their pool and optionally a slot within it.
func Load(r io.Reader) (*Graph, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var file graphFile
	if err := yaml.UnmarshalWithOptions(b, &file, yaml.DisallowUnknownField()); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrGraph, yaml.FormatError(err, false, true))
	}
	return file.graph()
}

func (f *graphFile) graph() (*Graph, error) {
	g := &Graph{DefaultPool: -1}
	pools := make(map[string]int)
	for _, p := range f.Pools {
		if p.Name == "" {
			return nil, fmt.Errorf("%w: pool without a name", ErrGraph)
		}
		if _, ok := pools[p.Name]; ok {
			return nil, fmt.Errorf("%w: duplicate pool %q", ErrGraph, p.Name)
		}
		if len(p.Hosts) > 0 && (p.Size != 0 || p.Exclusive) {
			return nil, fmt.Errorf("%w: pool %q lists hosts so it cannot have a size or be exclusive", ErrGraph, p.Name)
		}
		if p.Exclusive && p.Size <= 0 {
			return nil, fmt.Errorf("%w: exclusive pool %q needs a size", ErrGraph, p.Name)
		}
		pools[p.Name] = len(g.Pools)
		g.Pools = append(g.Pools, &Pool{
			Name:      p.Name,
			Hosts:     p.Hosts,
			Implicit:  len(p.Hosts) == 0,
			Exclusive: p.Exclusive,
			Size:      p.Size,
			Loc:       p.Loc,
		})
	}
	if f.DefaultPool != "" {
		k, ok := pools[f.DefaultPool]
		if !ok {
			return nil, fmt.Errorf("%w: unknown default pool %q", ErrGraph, f.DefaultPool)
		}
		g.DefaultPool = k
	}
	names := make(map[string]bool)
	for _, o := range f.Operators {
		if o.Name == "" {
			return nil, fmt.Errorf("%w: operator without a name", ErrGraph)
		}
		if names[o.Name] {
			return nil, fmt.Errorf("%w: duplicate operator %q", ErrGraph, o.Name)
		}
		names[o.Name] = true
		n := &Node{
			Name:               o.Name,
			Loc:                o.Loc,
			PartitionIsolation: o.PartitionIsolation,
			HostIsolation:      o.HostIsolation,
			Restartable:        o.Restartable,
			Relocatable:        o.Relocatable,
		}
		n.Labels[HostColocation] = o.HostColocation
		n.Labels[HostExlocation] = o.HostExlocation
		n.Labels[PartitionColocation] = o.PartitionColocation
		n.Labels[PartitionExlocation] = o.PartitionExlocation
		placement, err := o.placement(g, pools)
		if err != nil {
			return nil, err
		}
		n.Placement = placement
		g.Nodes = append(g.Nodes, n)
	}
	return g, nil
}

func (o *operatorFile) placement(g *Graph, pools map[string]int) (HostPlacement, error) {
	switch {
	case o.Host != "" && o.Pool != "":
		return HostPlacement{}, fmt.Errorf("%w: operator %q names both a host and a pool", ErrGraph, o.Name)
	case o.Host != "":
		if o.Slot != nil {
			return HostPlacement{}, fmt.Errorf("%w: operator %q has a slot but no pool", ErrGraph, o.Name)
		}
		return HostPlacement{Kind: OnHost, Host: o.Host}, nil
	case o.Pool != "":
		k, ok := pools[o.Pool]
		if !ok {
			return HostPlacement{}, fmt.Errorf("%w: operator %q names unknown pool %q", ErrGraph, o.Name, o.Pool)
		}
		if o.Slot == nil {
			return HostPlacement{Kind: InPool, Pool: k}, nil
		}
		p := g.Pools[k]
		if *o.Slot < 0 || p.HasSize() && *o.Slot >= p.Len() {
			return HostPlacement{}, fmt.Errorf("%w: operator %q: slot %d is out of range for pool %q", ErrGraph, o.Name, *o.Slot, o.Pool)
		}
		return HostPlacement{Kind: InPoolSlot, Pool: k, Slot: *o.Slot}, nil
	case o.Slot != nil:
		return HostPlacement{}, fmt.Errorf("%w: operator %q has a slot but no pool", ErrGraph, o.Name)
	}
	return HostPlacement{}, nil
}
