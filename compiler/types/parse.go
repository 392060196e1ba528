package types

import (
	"errors"
	"fmt"

	"github.com/brimdata/splc/compiler/ast"
	"github.com/brimdata/splc/compiler/parser"
)

// ParseType parses a type spelling such as "list<int32>" or
// "tuple<int32 a,rstring b>".
func (f *Factory) ParseType(s string) (*Type, error) {
	n, err := parser.ParseType(s)
	if err != nil {
		return nil, syntaxError(err)
	}
	return f.typeOf(n)
}

// ParseSchema parses a comma-separated attribute list such as
// "int32 a, list<int32> b" into a tuple type.
func (f *Factory) ParseSchema(s string) (*Type, error) {
	attrs, err := parser.ParseSchema(s)
	if err != nil {
		return nil, syntaxError(err)
	}
	out, err := f.attrsOf(attrs)
	if err != nil {
		return nil, err
	}
	return f.TupleOf(out), nil
}

func syntaxError(err error) error {
	var perr *parser.Error
	if errors.As(err, &perr) {
		return typeErrorf(perr.Offset, "%s", perr.Msg)
	}
	return err
}

func typeErrorf(offset int, format string, args ...any) error {
	return fmt.Errorf("type syntax error at column %d: %s", offset+1, fmt.Sprintf(format, args...))
}

func (f *Factory) typeOf(n ast.Type) (*Type, error) {
	switch n := n.(type) {
	case *ast.TypeName:
		m, ok := LookupMeta(n.Name)
		if !ok || !m.IsPrimitive() || m == Enum {
			return nil, typeErrorf(n.Pos(), "unknown type %q", n.Name)
		}
		return f.Primitive(m), nil
	case *ast.TypeCollection:
		elem, err := f.typeOf(n.Elem)
		if err != nil {
			return nil, err
		}
		switch n.Collection {
		case "list":
			return f.ListOf(elem), nil
		case "set":
			return f.SetOf(elem), nil
		}
		return f.OptionalOf(elem), nil
	case *ast.TypeMap:
		key, err := f.typeOf(n.KeyType)
		if err != nil {
			return nil, err
		}
		val, err := f.typeOf(n.ValType)
		if err != nil {
			return nil, err
		}
		return f.MapOf(key, val), nil
	case *ast.TypeTuple:
		attrs, err := f.attrsOf(n.Attrs)
		if err != nil {
			return nil, err
		}
		return f.TupleOf(attrs), nil
	case *ast.TypeEnum:
		return f.EnumOf(n.Symbols), nil
	}
	return nil, fmt.Errorf("unknown type node %T", n)
}

func (f *Factory) attrsOf(nodes []*ast.Attr) ([]Attr, error) {
	attrs := make([]Attr, 0, len(nodes))
	seen := make(map[string]bool)
	for _, n := range nodes {
		if seen[n.Name] {
			return nil, typeErrorf(n.Pos(), "duplicate attribute %q", n.Name)
		}
		seen[n.Name] = true
		t, err := f.typeOf(n.Type)
		if err != nil {
			return nil, err
		}
		attrs = append(attrs, Attr{Name: n.Name, Type: t})
	}
	return attrs, nil
}
