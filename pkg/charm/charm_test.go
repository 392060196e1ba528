package charm

import (
	"flag"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rootCommand struct {
	verbose bool
	ran     []string
}

func (r *rootCommand) Run(args []string) error { return NoRun(args) }

type leafCommand struct {
	root *rootCommand
	seed int
}

func (l *leafCommand) Run(args []string) error {
	l.root.ran = append(l.root.ran, args...)
	if len(args) == 0 {
		return NeedHelp
	}
	return nil
}

func newTree(root *rootCommand, leaf **leafCommand) *Spec {
	top := &Spec{
		Name:        "tool",
		Usage:       "tool [options] <command>",
		Short:       "test tool",
		HiddenFlags: "secret",
		New: func(_ Command, f *flag.FlagSet) (Command, error) {
			f.BoolVar(&root.verbose, "v", false, "verbose")
			f.String("secret", "", "not shown")
			return root, nil
		},
	}
	top.Add(&Spec{
		Name:  "place",
		Usage: "place [ -seed n ] file",
		Short: "place operators",
		Long:  "Place operators.",
		New: func(parent Command, f *flag.FlagSet) (Command, error) {
			l := &leafCommand{root: parent.(*rootCommand)}
			f.IntVar(&l.seed, "seed", 0, "random seed")
			*leaf = l
			return l, nil
		},
	})
	return top
}

func TestExec(t *testing.T) {
	root := &rootCommand{}
	var leaf *leafCommand
	spec := newTree(root, &leaf)
	require.NoError(t, spec.Exec([]string{"-v", "place", "-seed", "7", "graph.yaml"}))
	assert.True(t, root.verbose)
	assert.Equal(t, 7, leaf.seed)
	assert.Equal(t, []string{"graph.yaml"}, root.ran)

	err := newTree(&rootCommand{}, &leaf).Exec([]string{"place", "-nope"})
	assert.ErrorContains(t, err, "tool place: flag provided but not defined: -nope")

	err = newTree(&rootCommand{}, &leaf).Exec([]string{"bogus"})
	assert.ErrorIs(t, err, ErrNoRun)
}

func TestHelp(t *testing.T) {
	root := &rootCommand{}
	var leaf *leafCommand
	p, err := parseHelp(newTree(root, &leaf), []string{"-v", "place", "x"})
	require.NoError(t, err)
	assert.Equal(t, "tool place", p.names())
	help := formatHelp(p, false)
	assert.True(t, strings.HasPrefix(help, "NAME\n    tool place - place operators\n"))
	assert.Contains(t, help, "USAGE\n    tool place [ -seed n ] file\n")
	assert.Contains(t, help, `-seed random seed (default "0")`)
	assert.NotContains(t, help, "secret")
	assert.Contains(t, help, "DESCRIPTION\n    Place operators.\n")
	assert.Contains(t, formatHelp(p, true), "-secret not shown")

	p, err = parseHelp(newTree(root, &leaf), nil)
	require.NoError(t, err)
	assert.Contains(t, formatHelp(p, false), "COMMANDS\n    place        place operators\n")
}
