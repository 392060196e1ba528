package expr

import (
	"strings"

	"github.com/brimdata/splc/compiler/types"
)

type LiteralKind int

const (
	LitInvalid LiteralKind = iota
	LitNull
	LitPrimitive
	LitList
	LitSet
	LitMap
	LitTuple
	LitExpn
)

func (k LiteralKind) String() string {
	switch k {
	case LitNull:
		return "null"
	case LitPrimitive:
		return "primitive"
	case LitList:
		return "list"
	case LitSet:
		return "set"
	case LitMap:
		return "map"
	case LitTuple:
		return "tuple"
	case LitExpn:
		return "expression"
	}
	return "invalid"
}

// Literal is a constant value.  Composite literals own their elements.
// An expression-wrapped literal holds a tree that has not been folded
// to a value.
type Literal struct {
	Kind    LiteralKind
	Type    *types.Type
	Value   Value
	Elems   []*Literal
	Entries []MapEntry
	Expr    Expr
}

type MapEntry struct {
	Key   *Literal
	Value *Literal
}

func NewPrimitive(v Value) *Literal {
	return &Literal{Kind: LitPrimitive, Type: v.Type, Value: v}
}

func NewNull(t *types.Type) *Literal {
	return &Literal{Kind: LitNull, Type: t}
}

func NewList(t *types.Type, elems ...*Literal) *Literal {
	return &Literal{Kind: LitList, Type: t, Elems: elems}
}

func NewSet(t *types.Type, elems ...*Literal) *Literal {
	return &Literal{Kind: LitSet, Type: t, Elems: elems}
}

func NewTuple(t *types.Type, elems ...*Literal) *Literal {
	return &Literal{Kind: LitTuple, Type: t, Elems: elems}
}

func NewMap(t *types.Type, entries ...MapEntry) *Literal {
	return &Literal{Kind: LitMap, Type: t, Entries: entries}
}

func NewExpnLiteral(e Expr) *Literal {
	return &Literal{Kind: LitExpn, Type: TypeOf(e), Expr: e}
}

// IsCompileTimeEvaluatable reports whether every nested value of l is
// known, i.e., no part of l wraps an expression.
func (l *Literal) IsCompileTimeEvaluatable() bool {
	switch l.Kind {
	case LitPrimitive, LitNull:
		return true
	case LitList, LitSet, LitTuple:
		for _, e := range l.Elems {
			if !e.IsCompileTimeEvaluatable() {
				return false
			}
		}
		return true
	case LitMap:
		for _, e := range l.Entries {
			if !e.Key.IsCompileTimeEvaluatable() || !e.Value.IsCompileTimeEvaluatable() {
				return false
			}
		}
		return true
	}
	return false
}

// IsEmpty reports whether a composite literal has no elements.
func (l *Literal) IsEmpty() bool {
	switch l.Kind {
	case LitList, LitSet, LitTuple:
		return len(l.Elems) == 0
	case LitMap:
		return len(l.Entries) == 0
	}
	return false
}

// PrimitiveValue returns the value of a primitive literal.
func (l *Literal) PrimitiveValue() (Value, bool) {
	if l == nil || l.Kind != LitPrimitive {
		return Value{}, false
	}
	return l.Value, true
}

func (l *Literal) Clone() *Literal {
	if l == nil {
		return nil
	}
	out := &Literal{Kind: l.Kind, Type: l.Type, Value: l.Value}
	if l.Elems != nil {
		out.Elems = make([]*Literal, 0, len(l.Elems))
		for _, e := range l.Elems {
			out.Elems = append(out.Elems, e.Clone())
		}
	}
	if l.Entries != nil {
		out.Entries = make([]MapEntry, 0, len(l.Entries))
		for _, e := range l.Entries {
			out.Entries = append(out.Entries, MapEntry{e.Key.Clone(), e.Value.Clone()})
		}
	}
	if l.Expr != nil {
		out.Expr = Copy(l.Expr)
	}
	return out
}

func (l *Literal) Equal(o *Literal) bool {
	if l == nil || o == nil {
		return l == o
	}
	if l.Kind != o.Kind || l.Type != o.Type {
		return false
	}
	switch l.Kind {
	case LitPrimitive:
		return l.Value.Equal(o.Value)
	case LitList, LitSet, LitTuple:
		if len(l.Elems) != len(o.Elems) {
			return false
		}
		for k := range l.Elems {
			if !l.Elems[k].Equal(o.Elems[k]) {
				return false
			}
		}
	case LitMap:
		if len(l.Entries) != len(o.Entries) {
			return false
		}
		for k := range l.Entries {
			if !l.Entries[k].Key.Equal(o.Entries[k].Key) || !l.Entries[k].Value.Equal(o.Entries[k].Value) {
				return false
			}
		}
	case LitExpn:
		return Equal(l.Expr, o.Expr)
	}
	return true
}

func (l *Literal) String() string {
	var b strings.Builder
	l.format(&b)
	return b.String()
}

func (l *Literal) format(b *strings.Builder) {
	switch l.Kind {
	case LitNull:
		b.WriteString("null")
	case LitPrimitive:
		b.WriteString(l.Value.String())
	case LitList, LitSet:
		lb, rb := "[", "]"
		if l.Kind == LitSet {
			lb, rb = "{", "}"
		}
		b.WriteString(lb)
		for k, e := range l.Elems {
			if k > 0 {
				b.WriteString(", ")
			}
			e.format(b)
		}
		b.WriteString(rb)
	case LitMap:
		b.WriteByte('{')
		for k, e := range l.Entries {
			if k > 0 {
				b.WriteString(", ")
			}
			e.Key.format(b)
			b.WriteString(" : ")
			e.Value.format(b)
		}
		b.WriteByte('}')
	case LitTuple:
		b.WriteByte('{')
		for k, e := range l.Elems {
			if k > 0 {
				b.WriteString(", ")
			}
			if l.Type != nil && k < len(l.Type.Attrs) {
				b.WriteString(l.Type.Attrs[k].Name)
				b.WriteString(" = ")
			}
			e.format(b)
		}
		b.WriteByte('}')
	case LitExpn:
		b.WriteString(Format(l.Expr))
	default:
		b.WriteString("<invalid>")
	}
}
