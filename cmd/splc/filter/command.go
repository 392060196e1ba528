package filter

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/brimdata/splc/cmd/splc/root"
	"github.com/brimdata/splc/compiler"
	"github.com/brimdata/splc/compiler/expr"
	"github.com/brimdata/splc/compiler/srcfiles"
	"github.com/brimdata/splc/pkg/charm"
	"github.com/goccy/go-yaml"
)

var spec = &charm.Spec{
	Name:  "filter",
	Usage: "filter -schema attrs [ -subscription ] [ -tree ] expr",
	Short: "validate an import filter or subscription",
	Long: `
The filter command checks an expression used by an import specification.
By default the expression is a filter over the tuple type of the output
port given by -schema as an attribute list, e.g.,

  splc filter -schema "int32 a, list<int32> b" "a % 2 == 0"

With -subscription the expression is checked as a subscription, which
refers to stream properties rather than output attributes and does not
need a schema.

On success the expression is printed as source text.  With -tree its
interchange form is printed as YAML instead.
`,
	New: New,
}

func init() {
	root.Splc.Add(spec)
}

type Command struct {
	*root.Command
	schema       string
	subscription bool
	tree         bool
}

func New(parent charm.Command, f *flag.FlagSet) (charm.Command, error) {
	c := &Command{Command: parent.(*root.Command)}
	f.StringVar(&c.schema, "schema", "", "output tuple attributes, e.g. \"int32 a, list<int32> b\"")
	f.BoolVar(&c.subscription, "subscription", false, "validate a subscription instead of a filter")
	f.BoolVar(&c.tree, "tree", false, "print the expression tree as YAML")
	return c, nil
}

func (c *Command) Run(args []string) error {
	_, cleanup, err := c.Init()
	if err != nil {
		return err
	}
	defer cleanup()
	if len(args) == 0 {
		return charm.NeedHelp
	}
	comp, err := c.Compiler()
	if err != nil {
		return err
	}
	text := strings.Join(args, " ")
	imp := compiler.Import{
		Schema: c.schema,
		Loc:    srcfiles.At("<command line>", 1, 1),
	}
	if c.subscription {
		imp.Subscription = text
	} else {
		imp.Filter = text
	}
	out, err := comp.ValidateImport(imp)
	if err != nil {
		return c.Report(comp, err)
	}
	e := out.Filter
	if c.subscription {
		e = out.Subscription
	}
	if err := c.Report(comp, nil); err != nil {
		return err
	}
	if !c.tree {
		fmt.Println(expr.Format(e))
		return nil
	}
	tt := expr.NewTypeTable()
	tree := expr.Serialize(e, tt, nil)
	b, err := yaml.Marshal(struct {
		Types []string   `yaml:"types"`
		Tree  *expr.Tree `yaml:"tree"`
	}{tt.Names(), tree})
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(b)
	return err
}
