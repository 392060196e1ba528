// Package anymath provides per-kind arithmetic tables.  A Function holds
// one implementation for each numeric representation; a nil entry means
// the operation is undefined for that representation.
package anymath

import (
	"errors"
	"math"
)

var ErrDivideByZero = errors.New("divide by zero")

type Float64 func(float64, float64) float64
type Int64 func(int64, int64) int64
type Uint64 func(uint64, uint64) uint64
type String func(string, string) string

type Function struct {
	Init
	Float64
	Int64
	Uint64
	String
	// ZeroDivisor is set for operations that fail when the right
	// operand is zero.
	ZeroDivisor bool
}

type Init struct {
	Float64 float64
	Int64   int64
	Uint64  uint64
}

var Min = &Function{
	Init:    Init{math.MaxFloat64, math.MaxInt64, math.MaxUint64},
	Float64: func(a, b float64) float64 { return min(a, b) },
	Int64:   func(a, b int64) int64 { return min(a, b) },
	Uint64:  func(a, b uint64) uint64 { return min(a, b) },
	String:  func(a, b string) string { return min(a, b) },
}

var Max = &Function{
	Init:    Init{-math.MaxFloat64, math.MinInt64, 0},
	Float64: func(a, b float64) float64 { return max(a, b) },
	Int64:   func(a, b int64) int64 { return max(a, b) },
	Uint64:  func(a, b uint64) uint64 { return max(a, b) },
	String:  func(a, b string) string { return max(a, b) },
}

var Add = &Function{
	Float64: func(a, b float64) float64 { return a + b },
	Int64:   func(a, b int64) int64 { return a + b },
	Uint64:  func(a, b uint64) uint64 { return a + b },
	String:  func(a, b string) string { return a + b },
}

var Sub = &Function{
	Float64: func(a, b float64) float64 { return a - b },
	Int64:   func(a, b int64) int64 { return a - b },
	Uint64:  func(a, b uint64) uint64 { return a - b },
}

var Mul = &Function{
	Init:    Init{1, 1, 1},
	Float64: func(a, b float64) float64 { return a * b },
	Int64:   func(a, b int64) int64 { return a * b },
	Uint64:  func(a, b uint64) uint64 { return a * b },
}

var Div = &Function{
	Float64:     func(a, b float64) float64 { return a / b },
	Int64:       func(a, b int64) int64 { return a / b },
	Uint64:      func(a, b uint64) uint64 { return a / b },
	ZeroDivisor: true,
}

var Mod = &Function{
	Float64:     math.Mod,
	Int64:       func(a, b int64) int64 { return a % b },
	Uint64:      func(a, b uint64) uint64 { return a % b },
	ZeroDivisor: true,
}

var And = &Function{
	Init:   Init{Int64: -1, Uint64: math.MaxUint64},
	Int64:  func(a, b int64) int64 { return a & b },
	Uint64: func(a, b uint64) uint64 { return a & b },
}

var Or = &Function{
	Int64:  func(a, b int64) int64 { return a | b },
	Uint64: func(a, b uint64) uint64 { return a | b },
}

var Xor = &Function{
	Int64:  func(a, b int64) int64 { return a ^ b },
	Uint64: func(a, b uint64) uint64 { return a ^ b },
}

// Shift amounts are taken modulo 64 for the signed and unsigned tables.
var Lsh = &Function{
	Int64:  func(a, b int64) int64 { return a << (uint64(b) & 63) },
	Uint64: func(a, b uint64) uint64 { return a << (b & 63) },
}

var Rsh = &Function{
	Int64:  func(a, b int64) int64 { return a >> (uint64(b) & 63) },
	Uint64: func(a, b uint64) uint64 { return a >> (b & 63) },
}

// CheckInt64 reports ErrDivideByZero if f cannot be applied to b.
func (f *Function) CheckInt64(b int64) error {
	if f.ZeroDivisor && b == 0 {
		return ErrDivideByZero
	}
	return nil
}

func (f *Function) CheckUint64(b uint64) error {
	if f.ZeroDivisor && b == 0 {
		return ErrDivideByZero
	}
	return nil
}
