// Package cli holds the flags and setup shared by every splc command.
package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/brimdata/splc/cli/logflags"
	"github.com/brimdata/splc/compiler"
	"github.com/brimdata/splc/compiler/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Initializer is implemented by flag groups that must check or convert
// their values after parsing.
type Initializer interface {
	Init() error
}

type Flags struct {
	Config  compiler.Config
	Logger  *zap.Logger
	Metrics *metrics.Metrics

	configPath   string
	toolkitPaths string
	stats        bool
	logFlags     logflags.Flags
	registry     *prometheus.Registry
}

func (f *Flags) SetFlags(fs *flag.FlagSet) {
	f.Config = compiler.DefaultConfig()
	fs.StringVar(&f.configPath, "config", "", "path of YAML configuration file")
	fs.StringVar(&f.toolkitPaths, "t", "", "colon-separated toolkit path (overrides the configuration)")
	fs.BoolVar(&f.stats, "stats", false, "print compiler metrics to stderr on exit")
	f.logFlags.SetFlags(fs)
}

// Init loads the configuration, opens the logger and initializes each
// flag group in all.  The returned cleanup flushes the logger and
// prints metrics when -stats is set.
func (f *Flags) Init(all ...Initializer) (context.Context, func(), error) {
	if f.configPath != "" {
		conf, err := compiler.LoadConfig(f.configPath)
		if err != nil {
			return nil, nil, err
		}
		f.Config = conf
	}
	if f.toolkitPaths != "" {
		f.Config.ToolkitPaths = strings.Split(f.toolkitPaths, ":")
	}
	for _, i := range all {
		if err := i.Init(); err != nil {
			return nil, nil, err
		}
	}
	logger, err := f.logFlags.Open()
	if err != nil {
		return nil, nil, err
	}
	f.Logger = logger
	f.registry = prometheus.NewRegistry()
	f.Metrics = metrics.New()
	f.Metrics.MustRegister(f.registry)
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	cleanup := func() {
		cancel()
		if f.stats {
			if err := metrics.WriteText(os.Stderr, f.registry); err != nil {
				fmt.Fprintln(os.Stderr, err)
			}
		}
		logger.Sync()
	}
	return ctx, cleanup, nil
}

// Compiler returns a compiler for the loaded configuration.  Init must
// have been called.
func (f *Flags) Compiler() (*compiler.Compiler, error) {
	return compiler.New(f.Config, f.Logger, compiler.WithMetrics(f.Metrics))
}
