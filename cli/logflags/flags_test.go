package logflags

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/units"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func parse(t *testing.T, args ...string) *Flags {
	t.Helper()
	var f Flags
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	f.SetFlags(fs)
	require.NoError(t, fs.Parse(args))
	return &f
}

func TestDefaults(t *testing.T) {
	f := parse(t)
	assert.Equal(t, zapcore.WarnLevel, f.Level)
	assert.Equal(t, FileModeAppend, f.Mode)
	assert.Equal(t, "stderr", f.Path)
	assert.Equal(t, 100*units.MiB, f.MaxSize)
	assert.Equal(t, 64*units.MiB, parse(t, "-log.maxsize", "64MiB").MaxSize)
}

func TestFileModes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "splc.log")
	require.NoError(t, os.WriteFile(path, []byte("old\n"), 0644))

	logger, err := parse(t, "-log.level", "debug", "-log.path", path).Open()
	require.NoError(t, err)
	logger.Debug("appended")
	require.NoError(t, logger.Sync())
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "old\n")
	assert.Contains(t, string(b), `"msg":"appended"`)

	logger, err = parse(t, "-log.path", path, "-log.mode", "truncate").Open()
	require.NoError(t, err)
	logger.Warn("truncated")
	require.NoError(t, logger.Sync())
	b, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "old\n")
	assert.Contains(t, string(b), `"msg":"truncated"`)

	rotated := filepath.Join(dir, "rotated.log")
	logger, err = parse(t, "-log.path", rotated, "-log.mode", "rotate").Open()
	require.NoError(t, err)
	logger.Info("dropped")
	logger.Error("kept")
	b, err = os.ReadFile(rotated)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "dropped")
	assert.Contains(t, string(b), "kept")
}

func TestBadFlags(t *testing.T) {
	var f Flags
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(nopWriter{})
	f.SetFlags(fs)
	assert.Error(t, fs.Parse([]string{"-log.mode", "sideways"}))
	assert.Error(t, fs.Parse([]string{"-log.level", "loud"}))
	assert.Error(t, fs.Parse([]string{"-log.maxsize", "huge"}))

	_, err := parse(t, "-log.path", filepath.Join(t.TempDir(), "x.log"), "-log.mode", "rotate", "-log.maxsize", "512KiB").Open()
	assert.Error(t, err)
}

type nopWriter struct{}

func (nopWriter) Write(b []byte) (int, error) { return len(b), nil }
