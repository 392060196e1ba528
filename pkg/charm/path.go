package charm

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
)

type instance struct {
	spec    *Spec
	command Command
}

// path is the chain of commands from the root to the command being run.
// Every command along the path registers its flags in the one flag set.
type path struct {
	instances []instance
	flags     *flag.FlagSet
}

func (p path) last() instance {
	return p.instances[len(p.instances)-1]
}

func (p path) run(args []string) error {
	return p.last().command.Run(args)
}

func (p path) names() string {
	var names []string
	for _, i := range p.instances {
		names = append(names, i.spec.Name)
	}
	return strings.Join(names, " ")
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	return fs
}

// parse walks args from spec, constructing each command along the way
// and parsing its flags.  When leaf is set, an internal leaf receives
// its leaf flags and ErrNotLeaf is returned if a subcommand follows it.
func parse(spec *Spec, args []string, parent Command, leaf bool) (path, []string, bool, error) {
	fs := newFlagSet(spec.Name)
	var help, hidden bool
	fs.BoolVar(&help, "h", false, "display help")
	fs.BoolVar(&help, "help", false, "display help")
	fs.BoolVar(&hidden, "hidden", false, "show hidden options")
	p := path{flags: fs}
	for {
		cmd, err := spec.New(parent, fs)
		if err != nil {
			return p, nil, hidden, err
		}
		if leaf && spec.InternalLeaf {
			if il, ok := cmd.(InternalLeaf); ok {
				il.SetLeafFlags(fs)
			}
		}
		p.instances = append(p.instances, instance{spec: spec, command: cmd})
		if err := fs.Parse(args); err != nil {
			if errors.Is(err, flag.ErrHelp) {
				return p, nil, hidden, NeedHelp
			}
			return p, nil, hidden, fmt.Errorf("%s: %w", p.names(), err)
		}
		if help {
			return p, nil, hidden, NeedHelp
		}
		args = fs.Args()
		if len(args) == 0 {
			return p, args, hidden, nil
		}
		child := spec.lookupSub(args[0])
		if child == nil {
			return p, args, hidden, nil
		}
		if leaf && spec.InternalLeaf {
			return p, nil, hidden, ErrNotLeaf
		}
		spec, parent, args = child, cmd, args[1:]
	}
}

// parseHelp finds the command that help was requested for.  Flags are
// registered but not parsed so a malformed flag does not hide the help.
func parseHelp(spec *Spec, args []string) (path, error) {
	p := path{flags: newFlagSet(spec.Name)}
	var parent Command
	for {
		cmd, err := spec.New(parent, p.flags)
		if err != nil {
			return p, err
		}
		p.instances = append(p.instances, instance{spec: spec, command: cmd})
		var next *Spec
		for len(args) > 0 && next == nil {
			next = spec.lookupSub(args[0])
			args = args[1:]
		}
		if next == nil {
			if il, ok := cmd.(InternalLeaf); ok && spec.InternalLeaf {
				il.SetLeafFlags(p.flags)
			}
			return p, nil
		}
		spec, parent = next, cmd
	}
}
