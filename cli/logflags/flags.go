// Package logflags builds a zap logger from command-line flags.
package logflags

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/units"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
	"gopkg.in/natefinch/lumberjack.v2"
)

// FileMode says how an existing log file is treated.
type FileMode string

const (
	FileModeAppend   FileMode = "append"
	FileModeTruncate FileMode = "truncate"
	FileModeRotate   FileMode = "rotate"
)

func (m FileMode) String() string {
	return string(m)
}

func (m *FileMode) Set(s string) error {
	switch mode := FileMode(s); mode {
	case FileModeAppend, FileModeTruncate, FileModeRotate:
		*m = mode
		return nil
	}
	return fmt.Errorf("unknown log file mode %q", s)
}

type Flags struct {
	Level zapcore.Level
	Path  string
	Mode  FileMode
	// MaxSize is the size at which a rotated log file is rolled over.
	// Rotation works in whole mebibytes.
	MaxSize units.Base2Bytes
}

func (f *Flags) SetFlags(fs *flag.FlagSet) {
	f.Level = zapcore.WarnLevel
	f.Mode = FileModeAppend
	fs.Var(&f.Level, "log.level", "logging level")
	fs.StringVar(&f.Path, "log.path", "stderr", "path to send logs (values: stderr, stdout, path in file system)")
	fs.Var(&f.Mode, "log.mode", "log file write mode (values: append, truncate, rotate)")
	f.MaxSize = 100 * units.MiB
	fs.Func("log.maxsize", "size of a rotated log file, e.g. 64MiB (default 100MiB)", func(s string) error {
		size, err := units.ParseBase2Bytes(s)
		if err != nil {
			return err
		}
		f.MaxSize = size
		return nil
	})
}

// Open returns a logger writing to the configured path.  Terminals get
// the console encoding and everything else gets JSON.
func (f *Flags) Open() (*zap.Logger, error) {
	w, tty, err := f.sink()
	if err != nil {
		return nil, err
	}
	config := zap.NewProductionEncoderConfig()
	config.EncodeTime = zapcore.ISO8601TimeEncoder
	var enc zapcore.Encoder
	if tty {
		config.EncodeLevel = zapcore.CapitalColorLevelEncoder
		enc = zapcore.NewConsoleEncoder(config)
	} else {
		enc = zapcore.NewJSONEncoder(config)
	}
	core := zapcore.NewCore(enc, w, zap.NewAtomicLevelAt(f.Level))
	return zap.New(core, zap.ErrorOutput(zapcore.Lock(os.Stderr))), nil
}

func (f *Flags) sink() (zapcore.WriteSyncer, bool, error) {
	switch f.Path {
	case "", "stderr":
		return zapcore.Lock(os.Stderr), term.IsTerminal(int(os.Stderr.Fd())), nil
	case "stdout":
		return zapcore.Lock(os.Stdout), term.IsTerminal(int(os.Stdout.Fd())), nil
	}
	var w io.Writer
	switch f.Mode {
	case FileModeRotate:
		if f.MaxSize < units.MiB {
			return nil, false, errors.New("log rotation requires a -log.maxsize of at least 1MiB")
		}
		w = &lumberjack.Logger{
			Filename: f.Path,
			MaxSize:  int(f.MaxSize / units.MiB),
		}
	case FileModeTruncate:
		file, err := os.Create(f.Path)
		if err != nil {
			return nil, false, err
		}
		w = file
	default:
		file, err := os.OpenFile(f.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, false, err
		}
		w = file
	}
	return zapcore.AddSync(w), false, nil
}
