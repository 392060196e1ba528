// Package types is the compiler's minimal type model.  Types are interned
// by a Factory so that identity comparison of *Type values is equivalent
// to structural equality.
package types

import (
	"fmt"
	"strings"
	"sync"
)

type Meta int

const (
	Invalid Meta = iota
	Void
	Boolean
	Enum
	Int8
	Int16
	Int32
	Int64
	Uint8
	Uint16
	Uint32
	Uint64
	Float32
	Float64
	Rstring
	Ustring
	Timestamp
	List
	Set
	Map
	Tuple
	Optional
)

var metaNames = [...]string{
	Invalid:   "invalid",
	Void:      "void",
	Boolean:   "boolean",
	Enum:      "enum",
	Int8:      "int8",
	Int16:     "int16",
	Int32:     "int32",
	Int64:     "int64",
	Uint8:     "uint8",
	Uint16:    "uint16",
	Uint32:    "uint32",
	Uint64:    "uint64",
	Float32:   "float32",
	Float64:   "float64",
	Rstring:   "rstring",
	Ustring:   "ustring",
	Timestamp: "timestamp",
	List:      "list",
	Set:       "set",
	Map:       "map",
	Tuple:     "tuple",
	Optional:  "optional",
}

func (m Meta) String() string {
	if m < 0 || int(m) >= len(metaNames) {
		return fmt.Sprintf("meta(%d)", int(m))
	}
	return metaNames[m]
}

func (m Meta) IsSigned() bool   { return m >= Int8 && m <= Int64 }
func (m Meta) IsUnsigned() bool { return m >= Uint8 && m <= Uint64 }
func (m Meta) IsIntegral() bool { return m.IsSigned() || m.IsUnsigned() }
func (m Meta) IsFloat() bool    { return m == Float32 || m == Float64 }
func (m Meta) IsNumeric() bool  { return m.IsIntegral() || m.IsFloat() }
func (m Meta) IsString() bool   { return m == Rstring || m == Ustring }

func (m Meta) IsPrimitive() bool {
	return m >= Boolean && m <= Timestamp
}

// Bits returns the width of a numeric meta type.
func (m Meta) Bits() int {
	switch m {
	case Int8, Uint8:
		return 8
	case Int16, Uint16:
		return 16
	case Int32, Uint32, Float32:
		return 32
	case Int64, Uint64, Float64:
		return 64
	}
	return 0
}

// Attr is a named tuple attribute.
type Attr struct {
	Name string
	Type *Type
}

type Type struct {
	Meta  Meta
	Elem  *Type
	Key   *Type
	Value *Type
	Attrs []Attr
	// Enumerators lists the values of an enum type.
	Enumerators []string
	name        string
}

// Name returns the canonical spelling of t, e.g., "list<int32>".
func (t *Type) Name() string {
	if t == nil {
		return "<nil>"
	}
	return t.name
}

func (t *Type) String() string { return t.Name() }

// AttrIndex returns the index of the attribute named name in a tuple type.
func (t *Type) AttrIndex(name string) (int, bool) {
	for i, a := range t.Attrs {
		if a.Name == name {
			return i, true
		}
	}
	return -1, false
}

// ElemMeta returns the element meta type of a list or set and the meta type of
// t itself otherwise.
func (t *Type) ElemMeta() Meta {
	if (t.Meta == List || t.Meta == Set) && t.Elem != nil {
		return t.Elem.Meta
	}
	return t.Meta
}

func typeName(t *Type) string {
	switch t.Meta {
	case List, Set, Optional:
		return fmt.Sprintf("%s<%s>", t.Meta, t.Elem.Name())
	case Map:
		return fmt.Sprintf("map<%s,%s>", t.Key.Name(), t.Value.Name())
	case Tuple:
		var b strings.Builder
		b.WriteString("tuple<")
		for i, a := range t.Attrs {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(a.Type.Name())
			b.WriteByte(' ')
			b.WriteString(a.Name)
		}
		b.WriteByte('>')
		return b.String()
	case Enum:
		return "enum{" + strings.Join(t.Enumerators, ",") + "}"
	}
	return t.Meta.String()
}

// Factory interns types by canonical name.
type Factory struct {
	mu    sync.Mutex
	types map[string]*Type
}

func NewFactory() *Factory {
	return &Factory{types: make(map[string]*Type)}
}

func (f *Factory) intern(t *Type) *Type {
	t.name = typeName(t)
	f.mu.Lock()
	defer f.mu.Unlock()
	if existing, ok := f.types[t.name]; ok {
		return existing
	}
	f.types[t.name] = t
	return t
}

// Primitive returns the interned type for a primitive meta type.
func (f *Factory) Primitive(m Meta) *Type {
	return f.intern(&Type{Meta: m})
}

func (f *Factory) ListOf(elem *Type) *Type {
	return f.intern(&Type{Meta: List, Elem: elem})
}

func (f *Factory) SetOf(elem *Type) *Type {
	return f.intern(&Type{Meta: Set, Elem: elem})
}

func (f *Factory) OptionalOf(elem *Type) *Type {
	return f.intern(&Type{Meta: Optional, Elem: elem})
}

func (f *Factory) MapOf(key, value *Type) *Type {
	return f.intern(&Type{Meta: Map, Key: key, Value: value})
}

func (f *Factory) TupleOf(attrs []Attr) *Type {
	return f.intern(&Type{Meta: Tuple, Attrs: append([]Attr(nil), attrs...)})
}

func (f *Factory) EnumOf(values []string) *Type {
	return f.intern(&Type{Meta: Enum, Enumerators: append([]string(nil), values...)})
}

// Default is the process-wide type table.
var Default = NewFactory()

var (
	TypeInvalid = Default.Primitive(Invalid)
	TypeVoid    = Default.Primitive(Void)
	TypeBool    = Default.Primitive(Boolean)
	TypeInt8    = Default.Primitive(Int8)
	TypeInt16   = Default.Primitive(Int16)
	TypeInt32   = Default.Primitive(Int32)
	TypeInt64   = Default.Primitive(Int64)
	TypeUint8   = Default.Primitive(Uint8)
	TypeUint16  = Default.Primitive(Uint16)
	TypeUint32  = Default.Primitive(Uint32)
	TypeUint64  = Default.Primitive(Uint64)
	TypeFloat32 = Default.Primitive(Float32)
	TypeFloat64 = Default.Primitive(Float64)
	TypeRstring = Default.Primitive(Rstring)
	TypeUstring = Default.Primitive(Ustring)
)

// LookupMeta returns the meta type spelled name.
func LookupMeta(name string) (Meta, bool) {
	for m, s := range metaNames {
		if s == name {
			return Meta(m), true
		}
	}
	return Invalid, false
}
