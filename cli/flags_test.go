package cli

import (
	"errors"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type initializer struct{ err error }

func (i initializer) Init() error { return i.err }

func parse(t *testing.T, args ...string) *Flags {
	t.Helper()
	var f Flags
	fs := flag.NewFlagSet("splc", flag.ContinueOnError)
	f.SetFlags(fs)
	require.NoError(t, fs.Parse(args))
	return &f
}

func TestInit(t *testing.T) {
	config := filepath.Join(t.TempDir(), "splc.yaml")
	require.NoError(t, os.WriteFile(config, []byte("toolkitPaths: [/from/config]\nproductVersion: \"4.1\"\n"), 0o644))
	f := parse(t, "-config", config, "-t", "/a:/b")
	_, cleanup, err := f.Init(initializer{})
	require.NoError(t, err)
	defer cleanup()
	assert.Equal(t, []string{"/a", "/b"}, f.Config.ToolkitPaths)
	assert.Equal(t, "4.1", f.Config.ProductVersion)
	assert.NotNil(t, f.Logger)
	c, err := f.Compiler()
	require.NoError(t, err)
	assert.Same(t, f.Metrics, c.Metrics())
}

func TestInitErrors(t *testing.T) {
	_, _, err := parse(t, "-config", filepath.Join(t.TempDir(), "missing.yaml")).Init()
	assert.Error(t, err)

	bad := errors.New("bad flag value")
	_, _, err = parse(t).Init(initializer{bad})
	assert.ErrorIs(t, err, bad)
}
