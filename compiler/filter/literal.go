package filter

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/brimdata/splc/compiler/types"
	"golang.org/x/exp/constraints"
)

// ErrRange is returned when a literal cannot be represented in the
// target kind.
var ErrRange = errors.New("value out of range")

type Kind int

const (
	RString Kind = iota
	Int64
	Int32
	Int16
	Int8
	UInt64
	UInt32
	UInt16
	UInt8
	Float64
	Float32
	Boolean
)

var kindMeta = [...]types.Meta{
	RString: types.Rstring,
	Int64:   types.Int64,
	Int32:   types.Int32,
	Int16:   types.Int16,
	Int8:    types.Int8,
	UInt64:  types.Uint64,
	UInt32:  types.Uint32,
	UInt16:  types.Uint16,
	UInt8:   types.Uint8,
	Float64: types.Float64,
	Float32: types.Float32,
	Boolean: types.Boolean,
}

func (k Kind) Meta() types.Meta { return kindMeta[k] }
func (k Kind) String() string   { return kindMeta[k].String() }

func (k Kind) IsSigned() bool   { return k >= Int64 && k <= Int8 }
func (k Kind) IsUnsigned() bool { return k >= UInt64 && k <= UInt8 }
func (k Kind) IsIntegral() bool { return k.IsSigned() || k.IsUnsigned() }
func (k Kind) IsFloat() bool    { return k == Float64 || k == Float32 }
func (k Kind) IsNumeric() bool  { return k.IsIntegral() || k.IsFloat() }

// KindOf returns the literal kind matching a primitive meta type.
func KindOf(m types.Meta) (Kind, bool) {
	for k, km := range kindMeta {
		if km == m {
			return Kind(k), true
		}
	}
	return 0, false
}

// Literal is a typed constant of a filter predicate.
type Literal struct {
	Kind Kind
	i    int64
	u    uint64
	f    float64
	s    string
	b    bool
}

func NewString(s string) Literal { return Literal{Kind: RString, s: s} }
func NewBool(b bool) Literal     { return Literal{Kind: Boolean, b: b} }

// NewInt returns a signed literal.  The value must fit kind.
func NewInt(kind Kind, v int64) Literal  { return Literal{Kind: kind, i: v} }
func NewUint(kind Kind, v uint64) Literal { return Literal{Kind: kind, u: v} }
func NewFloat(kind Kind, v float64) Literal {
	if kind == Float32 {
		v = float64(float32(v))
	}
	return Literal{Kind: kind, f: v}
}

func (l Literal) Int() int64     { return l.i }
func (l Literal) Uint() uint64   { return l.u }
func (l Literal) Float() float64 { return l.f }
func (l Literal) Str() string    { return l.s }
func (l Literal) Bool() bool     { return l.b }

// EqualsZero reports whether l is a numeric zero.  It is false for strings
// and booleans.
func (l Literal) EqualsZero() bool {
	switch {
	case l.Kind.IsSigned():
		return l.i == 0
	case l.Kind.IsUnsigned():
		return l.u == 0
	case l.Kind.IsFloat():
		return l.f == 0
	}
	return false
}

// IsNegative reports whether l is a numeric value below zero.
func (l Literal) IsNegative() bool {
	switch {
	case l.Kind.IsSigned():
		return l.i < 0
	case l.Kind.IsFloat():
		return l.f < 0
	}
	return false
}

// Equal compares kind and value exactly.
func (l Literal) Equal(o Literal) bool {
	if l.Kind != o.Kind {
		return false
	}
	switch {
	case l.Kind.IsSigned():
		return l.i == o.i
	case l.Kind.IsUnsigned():
		return l.u == o.u
	case l.Kind.IsFloat():
		return l.f == o.f
	case l.Kind == Boolean:
		return l.b == o.b
	}
	return l.s == o.s
}

func (l Literal) String() string {
	switch {
	case l.Kind.IsSigned():
		return strconv.FormatInt(l.i, 10)
	case l.Kind.IsUnsigned():
		return strconv.FormatUint(l.u, 10)
	case l.Kind.IsFloat():
		bits := 64
		if l.Kind == Float32 {
			bits = 32
		}
		s := strconv.FormatFloat(l.f, 'g', -1, bits)
		if !strings.ContainsAny(s, ".eEnN") {
			s += ".0"
		}
		return s
	case l.Kind == Boolean:
		return strconv.FormatBool(l.b)
	}
	return strconv.Quote(l.s)
}

// CastToMatchingType converts l to kind.  Numeric conversions are range
// checked and fail with ErrRange rather than truncate; a float converts to
// an integer only if it is integral.  Casts between string, boolean and
// numeric kinds are not conversions: l is returned unchanged and the
// caller detects the mismatch by comparing kinds.
func (l Literal) CastToMatchingType(kind Kind) (Literal, error) {
	if l.Kind == kind || !l.Kind.IsNumeric() || !kind.IsNumeric() {
		return l, nil
	}
	var (
		out Literal
		ok  bool
	)
	switch {
	case l.Kind.IsSigned():
		out, ok = fromInt(kind, l.i)
	case l.Kind.IsUnsigned():
		out, ok = fromUint(kind, l.u)
	default:
		out, ok = fromFloat(kind, l.f)
	}
	if !ok {
		return l, fmt.Errorf("%w: %s cannot be represented as %s", ErrRange, l, kind)
	}
	return out, nil
}

func fromInt(kind Kind, v int64) (Literal, bool) {
	switch kind {
	case Int64:
		return NewInt(kind, v), true
	case Int32:
		return signed[int32](kind, v)
	case Int16:
		return signed[int16](kind, v)
	case Int8:
		return signed[int8](kind, v)
	case Float64, Float32:
		return exactFloat(kind, float64(v), func(f float64) bool { return f < 0x1p63 && int64(f) == v })
	}
	if v < 0 {
		return Literal{}, false
	}
	return fromUint(kind, uint64(v))
}

func fromUint(kind Kind, v uint64) (Literal, bool) {
	switch kind {
	case UInt64:
		return NewUint(kind, v), true
	case UInt32:
		return unsigned[uint32](kind, v)
	case UInt16:
		return unsigned[uint16](kind, v)
	case UInt8:
		return unsigned[uint8](kind, v)
	case Float64, Float32:
		return exactFloat(kind, float64(v), func(f float64) bool { return f < math.MaxUint64 && uint64(f) == v })
	}
	if v > math.MaxInt64 {
		return Literal{}, false
	}
	return fromInt(kind, int64(v))
}

func fromFloat(kind Kind, v float64) (Literal, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Literal{}, kind.IsFloat()
	}
	switch {
	case kind == Float64:
		return NewFloat(kind, v), true
	case kind == Float32:
		if math.Abs(v) > math.MaxFloat32 {
			return Literal{}, false
		}
		return NewFloat(kind, v), true
	case v != math.Trunc(v):
		return Literal{}, false
	case kind.IsSigned():
		if v < math.MinInt64 || v >= math.MaxInt64 {
			return Literal{}, false
		}
		return fromInt(kind, int64(v))
	}
	if v < 0 || v >= math.MaxUint64 {
		return Literal{}, false
	}
	return fromUint(kind, uint64(v))
}

func signed[T constraints.Signed](kind Kind, v int64) (Literal, bool) {
	if int64(T(v)) != v {
		return Literal{}, false
	}
	return NewInt(kind, v), true
}

func unsigned[T constraints.Unsigned](kind Kind, v uint64) (Literal, bool) {
	if uint64(T(v)) != v {
		return Literal{}, false
	}
	return NewUint(kind, v), true
}

// exactFloat converts an integer to a float kind only when the float
// holds the integer exactly.
func exactFloat(kind Kind, f float64, exact func(float64) bool) (Literal, bool) {
	if kind == Float32 {
		f = float64(float32(f))
	}
	if !exact(f) {
		return Literal{}, false
	}
	return NewFloat(kind, f), true
}
