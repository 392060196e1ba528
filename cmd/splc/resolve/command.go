package resolve

import (
	"flag"
	"fmt"

	"github.com/brimdata/splc/cmd/splc/root"
	"github.com/brimdata/splc/pkg/charm"
)

var spec = &charm.Spec{
	Name:  "resolve",
	Usage: "resolve [ -t path[:path...] ] [ -product version ] [ -current name ]",
	Short: "select toolkit versions from a toolkit path",
	Long: `
The resolve command searches the toolkit path for toolkits, selects one
version of each toolkit so that every dependency is satisfied, and checks
the selection against the product version.  The selected toolkits are
printed in load order, one per line, followed by their directories.

Each entry of the toolkit path is a toolkit directory, a directory whose
subdirectories are toolkits, or a toolkit list file.
`,
	New: New,
}

func init() {
	root.Splc.Add(spec)
}

type Command struct {
	*root.Command
	product string
	current string
}

func New(parent charm.Command, f *flag.FlagSet) (charm.Command, error) {
	c := &Command{Command: parent.(*root.Command)}
	f.StringVar(&c.product, "product", "", "product version (overrides the configuration)")
	f.StringVar(&c.current, "current", "", "name of the toolkit being compiled")
	return c, nil
}

func (c *Command) Run(args []string) error {
	ctx, cleanup, err := c.Init()
	if err != nil {
		return err
	}
	defer cleanup()
	if len(args) > 0 {
		return fmt.Errorf("resolve: unexpected arguments %q", args)
	}
	if c.product != "" {
		c.Config.ProductVersion = c.product
	}
	if c.current != "" {
		c.Config.CurrentToolkit = c.current
	}
	comp, err := c.Compiler()
	if err != nil {
		return err
	}
	tks, err := comp.ResolveToolkits(ctx)
	if err := c.Report(comp, err); err != nil {
		return err
	}
	for _, tk := range tks.Resolution.Toolkits {
		fmt.Printf("%s %s\n", tk, tk.Dir)
	}
	return nil
}
