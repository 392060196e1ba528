// Package diag accumulates the user-facing diagnostics of a compilation.
//
// Every diagnostic carries a stable ID, positional arguments and the most
// specific source location known at the point of detection.  Phases keep
// running after reporting so a single run surfaces as many problems as
// possible; callers check Reporter.Err once a stage has completed.
package diag

import (
	"fmt"
	"strings"
	"sync"

	"github.com/brimdata/splc/compiler/srcfiles"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type Severity int

const (
	SevError Severity = iota
	SevWarning
	SevInfo
)

func (s Severity) String() string {
	switch s {
	case SevError:
		return "error"
	case SevWarning:
		return "warning"
	case SevInfo:
		return "info"
	}
	return fmt.Sprintf("severity(%d)", int(s))
}

type Diagnostic struct {
	ID       ID                `json:"id" yaml:"id"`
	Severity Severity          `json:"severity" yaml:"severity"`
	Args     []any             `json:"args,omitempty" yaml:"args,omitempty"`
	Loc      srcfiles.Location `json:"loc" yaml:"loc"`
	// Details are subordinate messages such as the previous location
	// of a duplicate definition.
	Details []*Diagnostic `json:"details,omitempty" yaml:"details,omitempty"`
}

// Message renders d in English without location or details.
func (d *Diagnostic) Message() string {
	return Format(d.ID, d.Args...)
}

func (d *Diagnostic) String() string {
	var b strings.Builder
	d.write(&b, catalog, nil, "")
	return b.String()
}

func (d *Diagnostic) write(b *strings.Builder, p *message.Printer, sources *srcfiles.List, indent string) {
	msg := d.Severity.String() + ": " + format(p, d.ID, d.Args)
	b.WriteString(indent)
	b.WriteString(srcfiles.NewError(sources, msg, d.Loc).Error())
	for _, detail := range d.Details {
		b.WriteByte('\n')
		detail.write(b, p, sources, indent+"  ")
	}
}

// Reporter collects diagnostics.  It is safe for concurrent use.
type Reporter struct {
	logger  *zap.Logger
	printer *message.Printer
	sources *srcfiles.List

	mu       sync.Mutex
	diags    []*Diagnostic
	nerrors  int
	nwarning int
}

type Option func(*Reporter)

// WithLanguage selects the message catalog language.
func WithLanguage(tag language.Tag) Option {
	return func(r *Reporter) { r.printer = Printer(tag) }
}

// WithSources attaches source text so rendered messages show the
// offending line.
func WithSources(list *srcfiles.List) Option {
	return func(r *Reporter) { r.sources = list }
}

func NewReporter(logger *zap.Logger, opts ...Option) *Reporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Reporter{
		logger:  logger,
		printer: catalog,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

func (r *Reporter) Error(loc srcfiles.Location, id ID, args ...any) *Diagnostic {
	return r.add(&Diagnostic{ID: id, Severity: SevError, Args: args, Loc: loc})
}

func (r *Reporter) Warn(loc srcfiles.Location, id ID, args ...any) *Diagnostic {
	return r.add(&Diagnostic{ID: id, Severity: SevWarning, Args: args, Loc: loc})
}

func (r *Reporter) Info(loc srcfiles.Location, id ID, args ...any) *Diagnostic {
	return r.add(&Diagnostic{ID: id, Severity: SevInfo, Args: args, Loc: loc})
}

// Detail attaches a subordinate message to parent.
func (r *Reporter) Detail(parent *Diagnostic, loc srcfiles.Location, id ID, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	parent.Details = append(parent.Details, &Diagnostic{ID: id, Severity: parent.Severity, Args: args, Loc: loc})
}

func (r *Reporter) add(d *Diagnostic) *Diagnostic {
	r.mu.Lock()
	r.diags = append(r.diags, d)
	switch d.Severity {
	case SevError:
		r.nerrors++
	case SevWarning:
		r.nwarning++
	}
	r.mu.Unlock()
	r.logger.Debug("diagnostic",
		zap.String("id", string(d.ID)),
		zap.Stringer("severity", d.Severity),
		zap.Stringer("loc", d.Loc))
	return d
}

func (r *Reporter) NumErrors() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.nerrors
}

func (r *Reporter) NumWarnings() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.nwarning
}

// Diagnostics returns a snapshot of everything reported so far.
func (r *Reporter) Diagnostics() []*Diagnostic {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*Diagnostic(nil), r.diags...)
}

// Since returns the diagnostics reported after the first n.
func (r *Reporter) Since(n int) []*Diagnostic {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n >= len(r.diags) {
		return nil
	}
	return append([]*Diagnostic(nil), r.diags[n:]...)
}

// Len is the number of diagnostics reported so far.  It serves as a
// checkpoint for Since.
func (r *Reporter) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.diags)
}

// IDs returns the IDs of all diagnostics in report order.
func (r *Reporter) IDs() []ID {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]ID, 0, len(r.diags))
	for _, d := range r.diags {
		ids = append(ids, d.ID)
	}
	return ids
}

// Has reports whether a diagnostic with id was reported.
func (r *Reporter) Has(id ID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.diags {
		if d.ID == id {
			return true
		}
	}
	return false
}

// Err returns a *List holding every diagnostic if any error was
// reported, and nil otherwise.
func (r *Reporter) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.nerrors == 0 {
		return nil
	}
	return &List{Diags: append([]*Diagnostic(nil), r.diags...), printer: r.printer, sources: r.sources}
}

// Render formats every diagnostic, one per line, in the reporter's
// language.
func (r *Reporter) Render() string {
	r.mu.Lock()
	l := &List{Diags: append([]*Diagnostic(nil), r.diags...), printer: r.printer, sources: r.sources}
	r.mu.Unlock()
	return l.Error()
}

// List is the error returned once a stage finished with errors.
type List struct {
	Diags   []*Diagnostic
	printer *message.Printer
	sources *srcfiles.List
}

func (l *List) Error() string {
	p := l.printer
	if p == nil {
		p = catalog
	}
	var b strings.Builder
	for i, d := range l.Diags {
		if i > 0 {
			b.WriteByte('\n')
		}
		d.write(&b, p, l.sources, "")
	}
	return b.String()
}
