package toolkit

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/brimdata/splc/compiler/diag"
	"github.com/brimdata/splc/compiler/srcfiles"
	"github.com/hashicorp/golang-lru/arc/v2"
	"go.uber.org/zap"
)

var (
	ErrDuplicateSymbol = errors.New("duplicate toolkit symbol")
	ErrNotFound        = errors.New("symbol not found")
	ErrNotPrimitive    = errors.New("not a primitive operator")
)

// DefaultCacheSize bounds the number of parsed operator and function
// models kept by an Index.
const DefaultCacheSize = 256

type Kind int

const (
	PrimitiveOp Kind = iota
	CompositeOp
	TypeDef
	EnumLiteral
	Function
	NativeFunction
)

var kindNames = [...]string{
	PrimitiveOp:    "primitive operator",
	CompositeOp:    "composite operator",
	TypeDef:        "type",
	EnumLiteral:    "enum",
	Function:       "function",
	NativeFunction: "native function",
}

func (k Kind) String() string { return kindNames[k] }

// Symbol is a namespace-qualified definition in a loaded toolkit.
type Symbol struct {
	Name string
	Kind Kind
	// Toolkit indexes the load order passed to NewIndex.
	Toolkit int
	// Path is the directory holding a primitive operator's model, the
	// model file of a native function, or the source file of anything
	// else.
	Path string
	Loc  srcfiles.Location
}

// QualifiedName joins a namespace and a name with "::".  The default
// namespace is empty.
func QualifiedName(namespace, name string) string {
	if namespace == "" {
		return name
	}
	return namespace + "::" + name
}

// Index maps the symbols of the loaded toolkits to their definitions.
// Operator and function models are parsed on first lookup and cached
// by path.
type Index struct {
	logger     *zap.Logger
	toolkits   []*Toolkit
	symbols    map[string]*Symbol
	functions  map[string][]*Symbol
	namespaces []string
	operators  *modelCache[*OperatorModel]
	natives    *modelCache[*FunctionModel]
}

// NewIndex registers the symbols of toolkits, which must be in load
// order.  Namespaces are visited in name order.  A name defined twice
// is reported at the second definition with the first as a detail, and
// ErrDuplicateSymbol is returned along with the index.
func NewIndex(reporter *diag.Reporter, logger *zap.Logger, parser ModelParser, toolkits []*Toolkit, cacheSize int) (*Index, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if parser == nil {
		parser = XMLParser{}
	}
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	operators, err := newModelCache(cacheSize, parser.Operator)
	if err != nil {
		return nil, err
	}
	natives, err := newModelCache(cacheSize, parser.Function)
	if err != nil {
		return nil, err
	}
	ix := &Index{
		logger:    logger,
		toolkits:  toolkits,
		symbols:   make(map[string]*Symbol),
		functions: make(map[string][]*Symbol),
		operators: operators,
		natives:   natives,
	}
	ok := true
	for k, tk := range toolkits {
		ok = ix.addToolkit(reporter, k, tk) && ok
	}
	slices.Sort(ix.namespaces)
	ix.namespaces = slices.Compact(ix.namespaces)
	if !ok {
		return ix, ErrDuplicateSymbol
	}
	return ix, nil
}

func (ix *Index) addToolkit(reporter *diag.Reporter, k int, tk *Toolkit) bool {
	var uris []URI
	if tk.elem != nil {
		uris = tk.elem.URIs
	}
	namespaces := slices.Clone(tk.Namespaces())
	slices.SortStableFunc(namespaces, func(a, b NamespaceElem) int { return strings.Compare(a.Name, b.Name) })
	ok := true
	add := func(ns string, sym *Symbol) {
		ok = ix.add(reporter, tk, ns, sym) && ok
	}
	for _, ns := range namespaces {
		ix.namespaces = append(ix.namespaces, ns.Name)
		for _, op := range ns.PrimitiveOps {
			if dir, found := resolveURI(tk.Dir, uris, op.ModelURIIndex); found {
				add(ns.Name, &Symbol{Name: QualifiedName(ns.Name, op.Name), Kind: PrimitiveOp, Toolkit: k, Path: dir, Loc: srcfiles.Location{File: dir}})
			}
		}
		for _, op := range ns.CompositeOps {
			add(ns.Name, ix.symbol(tk, k, uris, ns.Name, op.Name, CompositeOp, op.URIIndex, op.Line, op.Column))
		}
		for _, t := range ns.Types {
			add(ns.Name, ix.symbol(tk, k, uris, ns.Name, t.Name, TypeDef, t.URIIndex, t.Line, t.Column))
		}
		for _, e := range ns.Enums {
			for _, lit := range e.Enums {
				add(ns.Name, ix.symbol(tk, k, uris, ns.Name, lit, EnumLiteral, e.URIIndex, e.Line, e.Column))
			}
		}
		for _, fn := range ns.Functions {
			sym := ix.symbol(tk, k, uris, ns.Name, fn.Name, Function, fn.URIIndex, fn.Line, fn.Column)
			if fn.Native {
				sym.Kind = NativeFunction
				if path, found := resolveURI(tk.Dir, uris, fn.ModelURIIndex); found {
					sym.Path = path
				}
			}
			// Functions overload, so repeated names are not duplicates.
			ix.functions[sym.Name] = append(ix.functions[sym.Name], sym)
		}
	}
	return ok
}

func (ix *Index) symbol(tk *Toolkit, k int, uris []URI, ns, name string, kind Kind, uri, line, col int) *Symbol {
	path, found := resolveURI(tk.Dir, uris, uri)
	if !found {
		path = "<missing file>"
	}
	return &Symbol{
		Name:    QualifiedName(ns, name),
		Kind:    kind,
		Toolkit: k,
		Path:    path,
		Loc:     srcfiles.Location{File: path, Line: line, Column: col},
	}
}

func (ix *Index) add(reporter *diag.Reporter, tk *Toolkit, ns string, sym *Symbol) bool {
	prev, ok := ix.symbols[sym.Name]
	if !ok {
		ix.logger.Debug("adding symbol",
			zap.String("name", sym.Name),
			zap.Stringer("kind", sym.Kind),
			zap.String("path", sym.Path))
		ix.symbols[sym.Name] = sym
		return true
	}
	var d *diag.Diagnostic
	if ns == "" {
		d = reporter.Error(sym.Loc, diag.DuplicateToolkitNameDefaultNS, sym.Name, tk.Name)
	} else {
		d = reporter.Error(sym.Loc, diag.DuplicateToolkitName, sym.Name, tk.Name)
	}
	reporter.Detail(d, prev.Loc, diag.PreviousLocation, sym.Name)
	return false
}

func (ix *Index) Toolkits() []*Toolkit { return ix.toolkits }
func (ix *Index) Namespaces() []string { return ix.namespaces }
func (ix *Index) Len() int             { return len(ix.symbols) }

func (ix *Index) HasNamespace(ns string) bool {
	_, ok := slices.BinarySearch(ix.namespaces, ns)
	return ok
}

// Lookup finds a non-function symbol.
func (ix *Index) Lookup(namespace, name string) (*Symbol, bool) {
	sym, ok := ix.symbols[QualifiedName(namespace, name)]
	return sym, ok
}

// Functions returns every overload of a function.
func (ix *Index) Functions(namespace, name string) []*Symbol {
	return ix.functions[QualifiedName(namespace, name)]
}

// ResourcePath returns the root directory of the toolkit defining a
// qualified name.
func (ix *Index) ResourcePath(qualified string) (string, bool) {
	sym, ok := ix.symbols[qualified]
	if !ok {
		return "", false
	}
	return filepath.Dir(ix.toolkits[sym.Toolkit].File), true
}

// OperatorModel returns the model of a primitive operator along with
// the directory holding it.
func (ix *Index) OperatorModel(qualified string) (*OperatorModel, string, error) {
	sym, ok := ix.symbols[qualified]
	if !ok {
		return nil, "", fmt.Errorf("%w: %s", ErrNotFound, qualified)
	}
	if sym.Kind != PrimitiveOp {
		return nil, "", fmt.Errorf("%w: %s is a %s", ErrNotPrimitive, qualified, sym.Kind)
	}
	name := qualified
	if k := strings.LastIndex(name, "::"); k >= 0 {
		name = name[k+2:]
	}
	m, err := ix.operators.get(filepath.Join(sym.Path, name+".xml"))
	if err != nil {
		return nil, "", err
	}
	return m, sym.Path, nil
}

// FunctionModel returns the model of a native function.
func (ix *Index) FunctionModel(sym *Symbol) (*FunctionModel, error) {
	if sym.Kind != NativeFunction {
		return nil, fmt.Errorf("%w: %s is a %s", ErrNotFound, sym.Name, sym.Kind)
	}
	return ix.natives.get(sym.Path)
}

type modelCache[T any] struct {
	cache *arc.ARCCache[string, T]
	load  func(string) (T, error)
}

func newModelCache[T any](size int, load func(string) (T, error)) (*modelCache[T], error) {
	cache, err := arc.NewARC[string, T](size)
	if err != nil {
		return nil, err
	}
	return &modelCache[T]{cache: cache, load: load}, nil
}

func (m *modelCache[T]) get(path string) (T, error) {
	if v, ok := m.cache.Get(path); ok {
		return v, nil
	}
	v, err := m.load(path)
	if err != nil {
		var zero T
		return zero, err
	}
	m.cache.Add(path, v)
	return v, nil
}
