package place

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/brimdata/splc/cmd/splc/root"
	"github.com/brimdata/splc/compiler/placement"
	"github.com/brimdata/splc/pkg/charm"
	"github.com/goccy/go-yaml"
)

var spec = &charm.Spec{
	Name:  "place",
	Usage: "place [ -seed n ] [ -debug ] [ -f yaml|text ] graph.yaml",
	Short: "partition and place the operators of a graph",
	Long: `
The place command reads an operator graph in YAML, fuses its operators into
partitions and assigns hosts to partitions whose constraints require one.
The graph lists host pools and operators with their host placement and
their colocation, exlocation and isolation constraints:

  defaultPool: shared
  pools:
    - {name: shared}
    - {name: edge, hosts: [e1, e2]}
  operators:
    - {name: src, pool: edge, hostExlocation: [sources]}
    - {name: sink, hostIsolation: true}

Host assignment is randomized.  Use -seed to reproduce a placement; the
seed used is printed in the plan.  With -debug the solver state is
written to standard error.
`,
	New: New,
}

func init() {
	root.Splc.Add(spec)
}

type Command struct {
	*root.Command
	seed   uint64
	debug  bool
	format string
}

func New(parent charm.Command, f *flag.FlagSet) (charm.Command, error) {
	c := &Command{Command: parent.(*root.Command)}
	f.Uint64Var(&c.seed, "seed", 0, "random seed for host assignment (0 picks one)")
	f.BoolVar(&c.debug, "debug", false, "write the solver state to stderr")
	f.StringVar(&c.format, "f", "text", "plan format (yaml or text)")
	return c, nil
}

func (c *Command) Run(args []string) error {
	_, cleanup, err := c.Init()
	if err != nil {
		return err
	}
	defer cleanup()
	if len(args) != 1 {
		return charm.NeedHelp
	}
	if c.format != "yaml" && c.format != "text" {
		return fmt.Errorf("unknown plan format %q", c.format)
	}
	g, err := placement.LoadFile(args[0])
	if err != nil {
		return err
	}
	if c.seed != 0 {
		c.Config.Placement.Seed = c.seed
	}
	comp, err := c.Compiler()
	if err != nil {
		return err
	}
	var dump io.Writer
	if c.debug {
		dump = os.Stderr
	}
	plan, err := comp.Place(g, dump)
	if err := c.Report(comp, err); err != nil {
		return err
	}
	if c.format == "text" {
		return plan.WriteText(os.Stdout)
	}
	b, err := yaml.Marshal(plan)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(b)
	return err
}
