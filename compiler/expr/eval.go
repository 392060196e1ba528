package expr

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/brimdata/splc/compiler/diag"
	"github.com/brimdata/splc/compiler/types"
	"github.com/brimdata/splc/pkg/anymath"
	"go.uber.org/zap"
)

// ErrNotConstant is returned when an operation cannot be folded at
// compile time.  It is not a user error.
var ErrNotConstant = errors.New("expression is not a compile-time constant")

// EvalError is a failure of an operation whose operands are all known,
// e.g., a division by zero.
type EvalError struct {
	Op  string
	Err error
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Err)
}

func (e *EvalError) Unwrap() error { return e.Err }

var (
	errIndexRange = errors.New("index out of bounds")
	errCastRange  = errors.New("value out of range")
	errKeyMissing = errors.New("map key not found")
)

// Evaluator folds operations over literals.
type Evaluator struct {
	reporter *diag.Reporter
	logger   *zap.Logger
	types    *types.Factory
}

func NewEvaluator(r *diag.Reporter, logger *zap.Logger) *Evaluator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Evaluator{reporter: r, logger: logger, types: types.Default}
}

// report surfaces an evaluation failure of e.  Operations that are merely
// not constant are not reported.
func (ev *Evaluator) report(e Expr, err error) {
	var evalErr *EvalError
	if !errors.As(err, &evalErr) {
		return
	}
	ev.logger.Debug("evaluation failed", zap.String("expr", Format(e)), zap.Error(err))
	if ev.reporter == nil {
		return
	}
	if evalErr.Err != nil {
		ev.reporter.Error(LocOf(e), diag.EvaluationExceptionMsg, evalErr.Err.Error(), Format(e))
	} else {
		ev.reporter.Error(LocOf(e), diag.EvaluationException, Format(e))
	}
}

var arith = map[Op]*anymath.Function{
	OpPlus:   anymath.Add,
	OpMinus:  anymath.Sub,
	OpStar:   anymath.Mul,
	OpSlash:  anymath.Div,
	OpMod:    anymath.Mod,
	OpAmp:    anymath.And,
	OpBar:    anymath.Or,
	OpHat:    anymath.Xor,
	OpLShift: anymath.Lsh,
	OpRShift: anymath.Rsh,
}

// Binary evaluates l op r.
func (ev *Evaluator) Binary(op Op, l, r *Literal) (*Literal, error) {
	if op.IsAssign() {
		return nil, ErrNotConstant
	}
	if op.IsDotted() {
		return ev.dotted(op.Undotted(), l, r)
	}
	switch op {
	case OpIn:
		return ev.in(l, r)
	case OpEq, OpNeq:
		if l.Kind != LitPrimitive || r.Kind != LitPrimitive {
			if !l.IsCompileTimeEvaluatable() || !r.IsCompileTimeEvaluatable() || l.Type != r.Type {
				return nil, ErrNotConstant
			}
			return NewPrimitive(NewBool(l.Equal(r) == (op == OpEq))), nil
		}
	}
	lv, ok1 := l.PrimitiveValue()
	rv, ok2 := r.PrimitiveValue()
	if !ok1 || !ok2 {
		return nil, ErrNotConstant
	}
	v, err := BinaryValue(op, lv, rv)
	if err != nil {
		return nil, err
	}
	return NewPrimitive(v), nil
}

// BinaryValue evaluates lv op rv over primitives.
func BinaryValue(op Op, lv, rv Value) (Value, error) {
	switch op {
	case OpAmpAmp, OpBarBar:
		if lv.Meta() != types.Boolean || rv.Meta() != types.Boolean {
			return Value{}, ErrNotConstant
		}
		if op == OpAmpAmp {
			return NewBool(lv.b && rv.b), nil
		}
		return NewBool(lv.b || rv.b), nil
	case OpLess, OpLeq, OpGreater, OpGeq, OpEq, OpNeq:
		if lv.Type != rv.Type {
			return Value{}, ErrNotConstant
		}
		c, ok := lv.Compare(rv)
		if !ok {
			// Unordered operands, e.g., NaN, differ from everything.
			return NewBool(op == OpNeq), nil
		}
		return NewBool(compareResult(op, c)), nil
	}
	fn, ok := arith[op]
	if !ok {
		return Value{}, ErrNotConstant
	}
	shift := op == OpLShift || op == OpRShift
	if !shift && lv.Type != rv.Type {
		return Value{}, ErrNotConstant
	}
	m := lv.Meta()
	switch {
	case m.IsSigned() && fn.Int64 != nil:
		b, ok := integralOperand(rv, shift)
		if !ok {
			return Value{}, ErrNotConstant
		}
		if err := fn.CheckInt64(b); err != nil {
			return Value{}, &EvalError{Op: op.String(), Err: err}
		}
		return NewInt(lv.Type, fn.Int64(lv.i, b)), nil
	case m.IsUnsigned() && fn.Uint64 != nil:
		var b uint64
		if shift {
			i, ok := integralOperand(rv, true)
			if !ok {
				return Value{}, ErrNotConstant
			}
			b = uint64(i)
		} else {
			b = rv.u
		}
		if err := fn.CheckUint64(b); err != nil {
			return Value{}, &EvalError{Op: op.String(), Err: err}
		}
		return NewUint(lv.Type, fn.Uint64(lv.u, b)), nil
	case m.IsFloat() && fn.Float64 != nil:
		return NewFloat(lv.Type, fn.Float64(lv.f, rv.f)), nil
	case m.IsString() && fn.String != nil:
		return NewString(lv.Type, fn.String(lv.s, rv.s)), nil
	}
	return Value{}, ErrNotConstant
}

// integralOperand returns the right operand of an integer operation.  A
// shift amount may have any integral type.
func integralOperand(v Value, shift bool) (int64, bool) {
	if shift {
		if v.Meta().IsUnsigned() {
			return int64(v.u & 63), true
		}
		if v.Meta().IsSigned() {
			return v.i, true
		}
		return 0, false
	}
	return v.i, true
}

func compareResult(op Op, c int) bool {
	switch op {
	case OpLess:
		return c < 0
	case OpLeq:
		return c <= 0
	case OpGreater:
		return c > 0
	case OpGeq:
		return c >= 0
	case OpEq:
		return c == 0
	}
	return c != 0
}

func (ev *Evaluator) in(l, r *Literal) (*Literal, error) {
	if r.Kind != LitList && r.Kind != LitSet {
		return nil, ErrNotConstant
	}
	if !l.IsCompileTimeEvaluatable() || !r.IsCompileTimeEvaluatable() {
		return nil, ErrNotConstant
	}
	for _, e := range r.Elems {
		if e.Equal(l) {
			return NewPrimitive(NewBool(true)), nil
		}
	}
	return NewPrimitive(NewBool(false)), nil
}

// dotted applies op element-wise.  Either operand may be a scalar.
func (ev *Evaluator) dotted(op Op, l, r *Literal) (*Literal, error) {
	n := -1
	for _, lit := range []*Literal{l, r} {
		switch lit.Kind {
		case LitList:
			if n >= 0 && n != len(lit.Elems) {
				return nil, &EvalError{Op: "." + op.String(), Err: errIndexRange}
			}
			n = len(lit.Elems)
		case LitPrimitive:
		default:
			return nil, ErrNotConstant
		}
	}
	if n < 0 {
		return ev.Binary(op, l, r)
	}
	elems := make([]*Literal, 0, n)
	for k := 0; k < n; k++ {
		a, b := l, r
		if l.Kind == LitList {
			a = l.Elems[k]
		}
		if r.Kind == LitList {
			b = r.Elems[k]
		}
		v, err := ev.Binary(op, a, b)
		if err != nil {
			return nil, err
		}
		elems = append(elems, v)
	}
	elemType := types.TypeBool
	if len(elems) > 0 {
		elemType = elems[0].Type
	} else if !op.IsComparison() {
		if l.Kind == LitList {
			elemType = l.Type.Elem
		} else {
			elemType = r.Type.Elem
		}
	}
	return NewList(ev.types.ListOf(elemType), elems...), nil
}

// Unary evaluates op applied to l.
func (ev *Evaluator) Unary(op Op, l *Literal) (*Literal, error) {
	v, ok := l.PrimitiveValue()
	if !ok {
		return nil, ErrNotConstant
	}
	m := v.Meta()
	switch op {
	case OpNeg:
		switch {
		case m.IsSigned():
			return NewPrimitive(NewInt(v.Type, -v.i)), nil
		case m.IsUnsigned():
			return NewPrimitive(NewUint(v.Type, -v.u)), nil
		case m.IsFloat():
			return NewPrimitive(NewFloat(v.Type, -v.f)), nil
		}
	case OpBang:
		if m == types.Boolean {
			return NewPrimitive(NewBool(!v.b)), nil
		}
	case OpTilde:
		switch {
		case m.IsSigned():
			return NewPrimitive(NewInt(v.Type, ^v.i)), nil
		case m.IsUnsigned():
			return NewPrimitive(NewUint(v.Type, ^v.u)), nil
		}
	}
	return nil, ErrNotConstant
}

// Cast converts l to type t.
func (ev *Evaluator) Cast(t *types.Type, l *Literal) (*Literal, error) {
	if l.Type == t {
		return l.Clone(), nil
	}
	v, ok := l.PrimitiveValue()
	if !ok {
		return nil, ErrNotConstant
	}
	out, err := CastValue(t, v)
	if err != nil {
		return nil, err
	}
	return NewPrimitive(out), nil
}

// CastValue converts a primitive to type t.
func CastValue(t *types.Type, v Value) (Value, error) {
	from, to := v.Meta(), t.Meta
	switch {
	case to.IsString():
		return NewString(t, v.Text()), nil
	case from.IsString() && to.IsNumeric():
		return parseNumber(t, v.s)
	case from.IsString() && to == types.Boolean:
		b, err := strconv.ParseBool(v.s)
		if err != nil {
			return Value{}, &EvalError{Op: "cast", Err: err}
		}
		return NewBool(b), nil
	case from == types.Boolean && to.IsIntegral():
		var i int64
		if v.b {
			i = 1
		}
		if to.IsSigned() {
			return NewInt(t, i), nil
		}
		return NewUint(t, uint64(i)), nil
	case from.IsNumeric() && to == types.Boolean:
		return NewBool(!v.IsZero()), nil
	case from.IsNumeric() && to.IsNumeric():
		return castNumber(t, v)
	}
	return Value{}, ErrNotConstant
}

func castNumber(t *types.Type, v Value) (Value, error) {
	to := t.Meta
	switch from := v.Meta(); {
	case from.IsSigned():
		switch {
		case to.IsSigned():
			return NewInt(t, v.i), nil
		case to.IsUnsigned():
			return NewUint(t, uint64(v.i)), nil
		}
		return NewFloat(t, float64(v.i)), nil
	case from.IsUnsigned():
		switch {
		case to.IsSigned():
			return NewInt(t, int64(v.u)), nil
		case to.IsUnsigned():
			return NewUint(t, v.u), nil
		}
		return NewFloat(t, float64(v.u)), nil
	}
	f := v.f
	switch {
	case to.IsFloat():
		return NewFloat(t, f), nil
	case math.IsNaN(f) || math.IsInf(f, 0):
		return Value{}, &EvalError{Op: "cast", Err: errCastRange}
	case to.IsSigned():
		if f < math.MinInt64 || f >= math.MaxInt64 {
			return Value{}, &EvalError{Op: "cast", Err: errCastRange}
		}
		return NewInt(t, int64(f)), nil
	}
	if f < 0 || f >= math.MaxUint64 {
		return Value{}, &EvalError{Op: "cast", Err: errCastRange}
	}
	return NewUint(t, uint64(f)), nil
}

func parseNumber(t *types.Type, s string) (Value, error) {
	m := t.Meta
	switch {
	case m.IsSigned():
		i, err := strconv.ParseInt(s, 0, m.Bits())
		if err != nil {
			return Value{}, &EvalError{Op: "cast", Err: err}
		}
		return NewInt(t, i), nil
	case m.IsUnsigned():
		u, err := strconv.ParseUint(s, 0, m.Bits())
		if err != nil {
			return Value{}, &EvalError{Op: "cast", Err: err}
		}
		return NewUint(t, u), nil
	}
	f, err := strconv.ParseFloat(s, m.Bits())
	if err != nil {
		return Value{}, &EvalError{Op: "cast", Err: err}
	}
	return NewFloat(t, f), nil
}

// Subscript evaluates l[index].
func (ev *Evaluator) Subscript(l, index *Literal) (*Literal, error) {
	switch l.Kind {
	case LitList:
		iv, ok := index.PrimitiveValue()
		if !ok || !iv.IsIntegral() {
			return nil, ErrNotConstant
		}
		i, ok := iv.AsInt64()
		if !ok || i < 0 || i >= int64(len(l.Elems)) {
			return nil, &EvalError{Op: "[]", Err: errIndexRange}
		}
		return l.Elems[i].Clone(), nil
	case LitMap:
		for _, e := range l.Entries {
			if e.Key.Equal(index) {
				return e.Value.Clone(), nil
			}
		}
		return nil, &EvalError{Op: "[]", Err: errKeyMissing}
	}
	return nil, ErrNotConstant
}

type builtin func(ev *Evaluator, args []*Literal) (*Literal, error)

var builtins = map[string]builtin{
	"spl.math::abs":        evalAbs,
	"spl.math::min":        reducer(anymath.Min),
	"spl.math::max":        reducer(anymath.Max),
	"spl.collection::size": evalSize,
	"spl.string::length":   evalLength,
}

// Call folds a call to a known side-effect-free builtin.
func (ev *Evaluator) Call(fn *Function, args []*Literal) (*Literal, error) {
	if fn == nil || fn.Native || fn.SideEffects {
		return nil, ErrNotConstant
	}
	b, ok := builtins[fn.QualifiedName()]
	if !ok {
		return nil, ErrNotConstant
	}
	return b(ev, args)
}

func evalAbs(ev *Evaluator, args []*Literal) (*Literal, error) {
	if len(args) != 1 {
		return nil, ErrNotConstant
	}
	v, ok := args[0].PrimitiveValue()
	if !ok {
		return nil, ErrNotConstant
	}
	switch m := v.Meta(); {
	case m.IsSigned():
		if v.i < 0 {
			return ev.Unary(OpNeg, args[0])
		}
		return args[0].Clone(), nil
	case m.IsUnsigned():
		return args[0].Clone(), nil
	case m.IsFloat():
		return NewPrimitive(NewFloat(v.Type, math.Abs(v.f))), nil
	}
	return nil, ErrNotConstant
}

// reducer folds a two-argument min or max, or the elements of a single
// list argument.
func reducer(fn *anymath.Function) builtin {
	return func(ev *Evaluator, args []*Literal) (*Literal, error) {
		var vals []Value
		switch {
		case len(args) == 2:
			for _, a := range args {
				v, ok := a.PrimitiveValue()
				if !ok {
					return nil, ErrNotConstant
				}
				vals = append(vals, v)
			}
		case len(args) == 1 && args[0].Kind == LitList && len(args[0].Elems) > 0:
			for _, a := range args[0].Elems {
				v, ok := a.PrimitiveValue()
				if !ok {
					return nil, ErrNotConstant
				}
				vals = append(vals, v)
			}
		default:
			return nil, ErrNotConstant
		}
		acc := vals[0]
		for _, v := range vals[1:] {
			if v.Type != acc.Type {
				return nil, ErrNotConstant
			}
			switch m := acc.Meta(); {
			case m.IsSigned():
				acc = NewInt(acc.Type, fn.Int64(acc.i, v.i))
			case m.IsUnsigned():
				acc = NewUint(acc.Type, fn.Uint64(acc.u, v.u))
			case m.IsFloat():
				acc = NewFloat(acc.Type, fn.Float64(acc.f, v.f))
			case m.IsString():
				acc = NewString(acc.Type, fn.String(acc.s, v.s))
			default:
				return nil, ErrNotConstant
			}
		}
		return NewPrimitive(acc), nil
	}
}

func evalSize(_ *Evaluator, args []*Literal) (*Literal, error) {
	if len(args) != 1 || !args[0].IsCompileTimeEvaluatable() {
		return nil, ErrNotConstant
	}
	switch args[0].Kind {
	case LitList, LitSet:
		return NewPrimitive(NewInt(types.TypeInt32, int64(len(args[0].Elems)))), nil
	case LitMap:
		return NewPrimitive(NewInt(types.TypeInt32, int64(len(args[0].Entries)))), nil
	}
	return nil, ErrNotConstant
}

func evalLength(_ *Evaluator, args []*Literal) (*Literal, error) {
	if len(args) != 1 {
		return nil, ErrNotConstant
	}
	v, ok := args[0].PrimitiveValue()
	if !ok || !v.IsString() {
		return nil, ErrNotConstant
	}
	return NewPrimitive(NewInt(types.TypeInt32, int64(len(v.s)))), nil
}
