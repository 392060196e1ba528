// Package charm is a small framework for command trees.  Each command
// is described by a Spec and built by its constructor as the command
// line is parsed, so a child can reach its parent's flag values.
package charm

import (
	"errors"
	"flag"
)

var (
	NeedHelp   = errors.New("help")
	ErrNoRun   = errors.New("no run method")
	ErrNotLeaf = errors.New("no internal leaf found")
)

type Constructor func(Command, *flag.FlagSet) (Command, error)

type Command interface {
	Run([]string) error
}

// InternalLeaf is implemented by a command with children that also runs
// on its own.  Its leaf flags apply only when no child is named.
type InternalLeaf interface {
	SetLeafFlags(*flag.FlagSet)
}

type Spec struct {
	Name  string
	Usage string
	Short string
	Long  string
	New   Constructor
	// Hidden omits the command from help.
	Hidden bool
	// HiddenFlags is a comma-separated list of flags omitted from help.
	HiddenFlags string
	// RedactedFlags is a comma-separated list of flags whose defaults
	// are not shown in help.
	RedactedFlags string
	// InternalLeaf marks a command whose constructed value should have
	// SetLeafFlags called.  Children that embed their parent's command
	// also satisfy InternalLeaf, so it cannot be inferred.
	InternalLeaf bool
	children     []*Spec
	parent       *Spec
}

func (c *Spec) Add(child *Spec) {
	c.children = append(c.children, child)
	child.parent = c
}

func (c *Spec) lookupSub(name string) *Spec {
	for _, child := range c.children {
		if name == child.Name {
			return child
		}
	}
	return nil
}

// Exec parses args, runs the selected command and displays help when
// it is asked for or a command returns NeedHelp.
func (s *Spec) Exec(args []string) error {
	path, rest, showHidden, err := parse(s, args, nil, true)
	if errors.Is(err, ErrNotLeaf) {
		path, rest, showHidden, err = parse(s, args, nil, false)
	}
	if err == nil {
		err = path.run(rest)
	}
	if errors.Is(err, NeedHelp) {
		path, err := parseHelp(s, args)
		if err != nil {
			return err
		}
		displayHelp(path, showHidden)
		return nil
	}
	return err
}

// NoRun is the Run of a command that only groups its children.
func NoRun(args []string) error {
	if len(args) == 0 {
		return NeedHelp
	}
	return ErrNoRun
}
