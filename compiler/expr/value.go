package expr

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/brimdata/splc/compiler/types"
)

// Value is a primitive constant.  Signed integers are held in an int64,
// unsigned integers in a uint64 and floats in a float64, each normalized
// to the width of Type.
type Value struct {
	Type *types.Type
	i    int64
	u    uint64
	f    float64
	s    string
	b    bool
}

func NewBool(b bool) Value {
	return Value{Type: types.TypeBool, b: b}
}

func NewInt(t *types.Type, v int64) Value {
	return Value{Type: t, i: wrapInt(t.Meta, v)}
}

func NewUint(t *types.Type, v uint64) Value {
	return Value{Type: t, u: wrapUint(t.Meta, v)}
}

func NewFloat(t *types.Type, v float64) Value {
	if t.Meta == types.Float32 {
		v = float64(float32(v))
	}
	return Value{Type: t, f: v}
}

func NewString(t *types.Type, s string) Value {
	return Value{Type: t, s: s}
}

// NewEnumValue returns the enumerator named name of enum type t.
func NewEnumValue(t *types.Type, name string) Value {
	return Value{Type: t, s: name}
}

func wrapInt(m types.Meta, v int64) int64 {
	switch m {
	case types.Int8:
		return int64(int8(v))
	case types.Int16:
		return int64(int16(v))
	case types.Int32:
		return int64(int32(v))
	}
	return v
}

func wrapUint(m types.Meta, v uint64) uint64 {
	switch m {
	case types.Uint8:
		return uint64(uint8(v))
	case types.Uint16:
		return uint64(uint16(v))
	case types.Uint32:
		return uint64(uint32(v))
	}
	return v
}

func (v Value) Meta() types.Meta {
	if v.Type == nil {
		return types.Invalid
	}
	return v.Type.Meta
}

func (v Value) Bool() bool       { return v.b }
func (v Value) Int() int64       { return v.i }
func (v Value) Uint() uint64     { return v.u }
func (v Value) Float() float64   { return v.f }
func (v Value) Str() string      { return v.s }
func (v Value) IsValid() bool    { return v.Type != nil && v.Type.Meta != types.Invalid }
func (v Value) IsString() bool   { return v.Meta().IsString() }
func (v Value) IsIntegral() bool { return v.Meta().IsIntegral() }

// AsInt64 returns an integral value widened to int64.  The second result
// is false for non-integral values and for unsigned values above MaxInt64.
func (v Value) AsInt64() (int64, bool) {
	m := v.Meta()
	switch {
	case m.IsSigned():
		return v.i, true
	case m.IsUnsigned():
		if v.u > 1<<63-1 {
			return 0, false
		}
		return int64(v.u), true
	}
	return 0, false
}

// IsZero reports whether v is a numeric zero.
func (v Value) IsZero() bool {
	m := v.Meta()
	switch {
	case m.IsSigned():
		return v.i == 0
	case m.IsUnsigned():
		return v.u == 0
	case m.IsFloat():
		return v.f == 0
	}
	return false
}

// IsOne reports whether v is an integral one.
func (v Value) IsOne() bool {
	m := v.Meta()
	switch {
	case m.IsSigned():
		return v.i == 1
	case m.IsUnsigned():
		return v.u == 1
	}
	return false
}

// Equal compares type and value.
func (v Value) Equal(o Value) bool {
	if v.Type != o.Type {
		return false
	}
	m := v.Meta()
	switch {
	case m == types.Boolean:
		return v.b == o.b
	case m.IsSigned():
		return v.i == o.i
	case m.IsUnsigned():
		return v.u == o.u
	case m.IsFloat():
		return v.f == o.f
	}
	return v.s == o.s
}

// Compare orders two values of the same type.  The second result is false
// when the values are not ordered.
func (v Value) Compare(o Value) (int, bool) {
	if v.Meta() != o.Meta() {
		return 0, false
	}
	m := v.Meta()
	switch {
	case m == types.Boolean:
		switch {
		case v.b == o.b:
			return 0, true
		case !v.b:
			return -1, true
		}
		return 1, true
	case m.IsSigned():
		return cmp3(v.i, o.i), true
	case m.IsUnsigned():
		return cmp3(v.u, o.u), true
	case m.IsFloat():
		if v.f != v.f || o.f != o.f {
			return 0, false
		}
		return cmp3(v.f, o.f), true
	case m.IsString(), m == types.Timestamp:
		return strings.Compare(v.s, o.s), true
	case m == types.Enum:
		if v.Type != o.Type {
			return 0, false
		}
		return cmp3(enumIndex(v), enumIndex(o)), true
	}
	return 0, false
}

func enumIndex(v Value) int {
	for i, s := range v.Type.Enumerators {
		if s == v.s {
			return i
		}
	}
	return -1
}

func cmp3[T int | int64 | uint64 | float64](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

var intSuffix = map[types.Meta]string{
	types.Int8:   "b",
	types.Int16:  "h",
	types.Int32:  "",
	types.Int64:  "l",
	types.Uint8:  "ub",
	types.Uint16: "uh",
	types.Uint32: "u",
	types.Uint64: "ul",
}

// String formats v as source text.
func (v Value) String() string {
	m := v.Meta()
	switch {
	case m == types.Boolean:
		return strconv.FormatBool(v.b)
	case m.IsSigned():
		return strconv.FormatInt(v.i, 10) + intSuffix[m]
	case m.IsUnsigned():
		return strconv.FormatUint(v.u, 10) + intSuffix[m]
	case m == types.Float32:
		return formatFloat(v.f, 32) + "w"
	case m == types.Float64:
		return formatFloat(v.f, 64)
	case m == types.Rstring:
		return strconv.Quote(v.s)
	case m == types.Ustring:
		return "u" + strconv.Quote(v.s)
	case m == types.Enum:
		return v.s
	case m == types.Timestamp:
		return fmt.Sprintf("timestamp(%s)", v.s)
	}
	return "<invalid>"
}

func formatFloat(f float64, bits int) string {
	s := strconv.FormatFloat(f, 'g', -1, bits)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}

// Text is the unquoted rendering of v used for string conversion.
func (v Value) Text() string {
	if v.IsString() {
		return v.s
	}
	s := v.String()
	if m := v.Meta(); m.IsIntegral() || m == types.Float32 {
		s = strings.TrimRight(s, "bhwlu")
	}
	return s
}
