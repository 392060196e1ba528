package root

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/brimdata/splc/cli"
	"github.com/brimdata/splc/compiler"
	"github.com/brimdata/splc/compiler/diag"
	"github.com/brimdata/splc/pkg/charm"
)

var Splc = &charm.Spec{
	Name:  "splc",
	Usage: "splc [ options ] <command>",
	Short: "check and plan SPL applications",
	Long: `
The "splc" command runs the stages of an SPL application build that can be
exercised on their own: validating the subscription and filter expressions
of an import, resolving the versions of the toolkits on a toolkit path, and
partitioning and placing the operators of an application graph onto hosts.

Diagnostics are written to standard error.  The command exits with a
non-zero status when any error was reported.

Settings may be given in a YAML file named with -config.  Flags override
the file.  With -stats, compiler metrics gathered while running are printed
to standard error on exit.
`,
	New: New,
}

type Command struct {
	cli.Flags
	// Stderr receives diagnostics.
	Stderr io.Writer
}

func New(parent charm.Command, f *flag.FlagSet) (charm.Command, error) {
	c := &Command{Stderr: os.Stderr}
	c.SetFlags(f)
	return c, nil
}

func (c *Command) Run(args []string) error {
	return charm.NoRun(args)
}

// Report writes the diagnostics of comp to Stderr and replaces a
// diagnostic list error with a summary, since the list was just
// written.
func (c *Command) Report(comp *compiler.Compiler, err error) error {
	r := comp.Reporter()
	if r.Len() > 0 {
		fmt.Fprintln(c.Stderr, r.Render())
	}
	var list *diag.List
	if errors.As(err, &list) || err != nil && r.NumErrors() > 0 {
		return fmt.Errorf("%s: %d error(s), %d warning(s)", diag.Format(diag.CannotContinue), r.NumErrors(), r.NumWarnings())
	}
	return err
}
