// Package compiler ties the stages of an SPL compilation together:
// toolkit resolution, import validation and operator placement.  All
// stages report through one diagnostic reporter.
package compiler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/brimdata/splc/compiler/diag"
	"github.com/brimdata/splc/compiler/expr"
	"github.com/brimdata/splc/compiler/filter"
	"github.com/brimdata/splc/compiler/metrics"
	"github.com/brimdata/splc/compiler/placement"
	"github.com/brimdata/splc/compiler/srcfiles"
	"github.com/brimdata/splc/compiler/toolkit"
	"github.com/brimdata/splc/compiler/types"
	"github.com/segmentio/ksuid"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

var ErrNoToolkitPath = errors.New("no usable directory on the toolkit path")

type Compiler struct {
	config   Config
	product  toolkit.Version
	tag      language.Tag
	id       ksuid.KSUID
	logger   *zap.Logger
	reporter *diag.Reporter
	metrics  *metrics.Metrics
	parser   toolkit.ModelParser
	types    *types.Factory
}

type Option func(*Compiler)

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Compiler) { c.metrics = m }
}

// WithModelParser replaces the parser of toolkit descriptors and models.
func WithModelParser(p toolkit.ModelParser) Option {
	return func(c *Compiler) { c.parser = p }
}

// WithSources attaches source text to rendered diagnostics.
func WithSources(list *srcfiles.List) Option {
	return func(c *Compiler) {
		c.reporter = diag.NewReporter(c.logger, diag.WithLanguage(c.tag), diag.WithSources(list))
	}
}

func New(conf Config, logger *zap.Logger, opts ...Option) (*Compiler, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	product, _ := conf.Product()
	tag, _ := conf.Tag()
	id := ksuid.New()
	logger = logger.With(zap.Stringer("run", id))
	c := &Compiler{
		config:  conf,
		product: product,
		tag:     tag,
		id:      id,
		logger:  logger,
		metrics: metrics.New(),
		parser:  toolkit.XMLParser{},
		types:   types.Default,
	}
	c.reporter = diag.NewReporter(logger, diag.WithLanguage(tag))
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// ID identifies this compilation in logs.
func (c *Compiler) ID() ksuid.KSUID           { return c.id }
func (c *Compiler) Reporter() *diag.Reporter  { return c.reporter }
func (c *Compiler) Metrics() *metrics.Metrics { return c.metrics }

// phase runs fn as the named phase.  An error diagnostic reported by fn
// fails the phase even when fn itself succeeds.
func (c *Compiler) phase(name string, fn func() error) error {
	start := time.Now()
	mark := c.reporter.Len()
	c.logger.Debug("phase started", zap.String("phase", name))
	err := fn()
	var nerr, nwarn int
	for _, d := range c.reporter.Since(mark) {
		switch d.Severity {
		case diag.SevError:
			nerr++
		case diag.SevWarning:
			nwarn++
		}
	}
	if err == nil && nerr > 0 {
		err = c.reporter.Err()
	}
	c.metrics.AddDiagnostics(nerr, nwarn)
	c.metrics.ObservePhase(name, start, err)
	c.logger.Debug("phase finished",
		zap.String("phase", name),
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("errors", nerr),
		zap.Int("warnings", nwarn),
		zap.Error(err))
	return err
}

// Toolkits is the outcome of ResolveToolkits.
type Toolkits struct {
	Resolution *toolkit.Resolution
	Index      *toolkit.Index
}

// ResolveToolkits searches the configured toolkit path, selects one
// version of each toolkit, verifies the selection against the product
// version and indexes the symbols of the selected toolkits.
func (c *Compiler) ResolveToolkits(ctx context.Context) (*Toolkits, error) {
	var res *toolkit.Resolution
	err := c.phase("resolve", func() error {
		s := toolkit.NewSearch(c.reporter, c.logger,
			toolkit.WithParser(c.parser),
			toolkit.WithCurrent(c.config.CurrentToolkit),
			toolkit.WithSPL(c.config.SPLToolkit))
		if !s.SetPaths(c.config.ToolkitPaths) {
			return ErrNoToolkitPath
		}
		if err := s.Locate(ctx); err != nil {
			return err
		}
		var err error
		if res, err = s.Resolve(); err != nil {
			return err
		}
		c.metrics.ObserveResolution(res.Solutions, len(res.Toolkits))
		c.logger.Info("toolkits resolved",
			zap.Strings("toolkits", toolkitNames(res.Toolkits)),
			zap.Int("solutions", res.Solutions))
		return toolkit.CheckDependencies(c.reporter, c.product, res.Toolkits)
	})
	if err != nil {
		return nil, err
	}
	var ix *toolkit.Index
	err = c.phase("index", func() error {
		var err error
		ix, err = toolkit.NewIndex(c.reporter, c.logger, c.parser, res.Toolkits, c.config.ModelCacheSize)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &Toolkits{Resolution: res, Index: ix}, nil
}

func toolkitNames(tks []*toolkit.Toolkit) []string {
	names := make([]string, 0, len(tks))
	for _, tk := range tks {
		names = append(names, tk.String())
	}
	return names
}

// Import is the import specification of one operator invocation.
// Schema is the tuple type of the operator's output port 0 written as
// an attribute list.  Either expression may be empty.
type Import struct {
	Schema       string
	Subscription string
	Filter       string
	Loc          srcfiles.Location
}

// ValidatedImport holds the expressions of a valid import.
type ValidatedImport struct {
	Subscription expr.Expr
	Filter       expr.Expr
	FilterType   types.Meta
}

func (c *Compiler) ValidateImport(imp Import) (*ValidatedImport, error) {
	out := &ValidatedImport{}
	err := c.phase("import", func() error {
		var schema *types.Type
		if imp.Schema != "" {
			var err error
			if schema, err = c.types.ParseSchema(imp.Schema); err != nil {
				return fmt.Errorf("output schema: %w", err)
			}
		}
		v := filter.NewValidator(c.reporter, schema, c.logger)
		if imp.Subscription != "" {
			out.Subscription, _ = v.ParseSubscription(imp.Subscription, imp.Loc)
		}
		if imp.Filter != "" {
			if schema == nil {
				return errors.New("a filter requires an output schema")
			}
			out.Filter, out.FilterType, _ = v.ParseFilter(imp.Filter, imp.Loc)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Place partitions the operators of g and assigns hosts.  When dump is
// not nil the solver state is written to it whether or not placement
// succeeded.
func (c *Compiler) Place(g *placement.Graph, dump io.Writer) (*placement.Plan, error) {
	var plan *placement.Plan
	err := c.phase("place", func() error {
		s := placement.NewSolver(c.reporter, c.logger, g, c.config.PlacementOptions())
		var err error
		plan, err = s.Run()
		c.metrics.ObservePlacement(s.Iterations())
		if dump != nil {
			s.Dump(dump)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return plan, nil
}
