package expr

import (
	"testing"

	"github.com/brimdata/splc/compiler/diag"
	"github.com/brimdata/splc/compiler/srcfiles"
	"github.com/brimdata/splc/compiler/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var loc = srcfiles.At("test.spl", 1, 1)

func i32(v int64) Expr { return NewValue(loc, NewInt(types.TypeInt32, v)) }

func str(s string) Expr { return NewValue(loc, NewString(types.TypeRstring, s)) }

func boolean(b bool) Expr { return NewValue(loc, NewBool(b)) }

func sym(id string, t *types.Type) *SymbolExpr { return NewSymbol(t, loc, id, SymAttr) }

func bin(op Op, lhs, rhs Expr) *BinaryExpr {
	t := TypeOf(lhs)
	if op.IsComparison() || op == OpAmpAmp || op == OpBarBar {
		t = types.TypeBool
	}
	return NewBinary(t, loc, op, lhs, rhs)
}

func newEvaluator() (*Evaluator, *diag.Reporter) {
	r := diag.NewReporter(nil)
	return NewEvaluator(r, nil), r
}

func sampleTrees() []Expr {
	list := NewList(types.Default.ListOf(types.TypeInt32),
		NewPrimitive(NewInt(types.TypeInt32, 1)),
		NewPrimitive(NewInt(types.TypeInt32, 2)))
	return []Expr{
		bin(OpPlus, sym("a", types.TypeInt32), i32(1)),
		NewConditional(types.TypeInt32, loc, sym("c", types.TypeBool), i32(1), NewPrefix(types.TypeInt32, loc, OpNeg, sym("a", types.TypeInt32))),
		NewCall(types.TypeInt32, loc, &Function{Name: "f", Namespace: "ns"}, []Expr{i32(3), str("x")}, "Main"),
		NewSubscript(types.TypeInt32, loc, NewLiteral(loc, list), i32(0)),
		NewSlice(types.Default.ListOf(types.TypeInt32), loc, sym("l", types.Default.ListOf(types.TypeInt32)), nil, i32(2)),
		NewCast(types.TypeInt64, loc, sym("a", types.TypeInt32)),
		NewAttribute(types.TypeInt32, loc, sym("t", types.TypeVoid), "x"),
		NewStreamHistory(types.TypeInt32, loc, "In", 0, 2),
		NewUnwrapOrElse(types.TypeInt32, loc, sym("o", types.Default.OptionalOf(types.TypeInt32)), i32(0)),
		NewNary(types.TypeInt32, loc, OpPlus, []Expr{i32(1), i32(2), sym("a", types.TypeInt32)}),
	}
}

func TestCopyEqual(t *testing.T) {
	for _, e := range sampleTrees() {
		c := Copy(e)
		assert.True(t, Equal(e, c), Format(e))
		assert.NotSame(t, e, c)
	}
}

func TestCopyIsDeep(t *testing.T) {
	e := bin(OpPlus, sym("a", types.TypeInt32), i32(1))
	c := Copy(e).(*BinaryExpr)
	c.LHS.(*SymbolExpr).ID = "b"
	assert.Equal(t, "a", e.LHS.(*SymbolExpr).ID)
	assert.False(t, Equal(e, c))
}

func TestEqualIgnoresFlags(t *testing.T) {
	a := bin(OpPlus, sym("a", types.TypeInt32), i32(1))
	b := Copy(a)
	SetDontSimplify(b, true)
	b.(*BinaryExpr).Loc = srcfiles.At("other.spl", 9, 9)
	assert.True(t, Equal(a, b))
	assert.False(t, Equal(a, bin(OpMinus, sym("a", types.TypeInt32), i32(1))))
}

func TestSimplifyFolds(t *testing.T) {
	ev, r := newEvaluator()
	e := Simplify(bin(OpStar, bin(OpPlus, i32(1), i32(2)), i32(3)), ev)
	v, ok := PrimitiveOf(e)
	require.True(t, ok)
	assert.Equal(t, int64(9), v.Int())
	assert.Zero(t, r.Len())

	e = Simplify(bin(OpPlus, str("a"), str("b")), ev)
	v, ok = PrimitiveOf(e)
	require.True(t, ok)
	assert.Equal(t, "ab", v.Str())

	e = Simplify(bin(OpLess, i32(1), i32(2)), ev)
	v, ok = PrimitiveOf(e)
	require.True(t, ok)
	assert.True(t, v.Bool())
}

func TestSimplifyWraps(t *testing.T) {
	ev, _ := newEvaluator()
	e := Simplify(bin(OpPlus, NewValue(loc, NewInt(types.TypeInt8, 127)), NewValue(loc, NewInt(types.TypeInt8, 1))), ev)
	v, ok := PrimitiveOf(e)
	require.True(t, ok)
	assert.Equal(t, int64(-128), v.Int())
}

func TestSimplifyIdentities(t *testing.T) {
	ev, _ := newEvaluator()
	a := sym("a", types.TypeInt32)
	tests := []struct {
		in  Expr
		out string
	}{
		{bin(OpPlus, Copy(a), i32(0)), "a"},
		{bin(OpPlus, i32(0), Copy(a)), "a"},
		{bin(OpStar, i32(1), Copy(a)), "a"},
		{bin(OpStar, Copy(a), i32(1)), "a"},
		{bin(OpAmp, i32(0), Copy(a)), "0"},
		{bin(OpAmp, Copy(a), i32(0)), "0"},
		{bin(OpLShift, Copy(a), i32(0)), "a"},
		{bin(OpPlus, bin(OpPlus, Copy(a), i32(1)), i32(2)), "a + 3"},
		{bin(OpStar, bin(OpStar, Copy(a), i32(2)), i32(3)), "a * 6"},
		{bin(OpMinus, bin(OpMinus, Copy(a), i32(1)), i32(2)), "a - 1 - 2"},
		{bin(OpPlus, sym("f", types.TypeFloat64), NewValue(loc, NewFloat(types.TypeFloat64, 0))), "f"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.out, Format(Simplify(tc.in, ev)))
	}
}

func TestSimplifyKeepsSideEffects(t *testing.T) {
	ev, _ := newEvaluator()
	call := NewCall(types.TypeInt32, loc, &Function{Name: "next", SideEffects: true}, nil, "")
	e := Simplify(bin(OpAmp, i32(0), call), ev)
	assert.Equal(t, "0 & next()", Format(e))
}

func TestShortCircuit(t *testing.T) {
	ev, _ := newEvaluator()
	x := sym("x", types.TypeBool)
	assert.Equal(t, "true", Format(Simplify(bin(OpBarBar, boolean(true), Copy(x)), ev)))
	assert.Equal(t, "false", Format(Simplify(bin(OpAmpAmp, boolean(false), Copy(x)), ev)))
	assert.Equal(t, "x", Format(Simplify(bin(OpBarBar, boolean(false), Copy(x)), ev)))
	assert.Equal(t, "x", Format(Simplify(bin(OpAmpAmp, bin(OpLess, i32(1), i32(2)), Copy(x)), ev)))
}

func TestSimplifyIdempotent(t *testing.T) {
	ev, _ := newEvaluator()
	a := sym("a", types.TypeInt32)
	trees := []Expr{
		bin(OpStar, bin(OpPlus, i32(1), i32(2)), i32(3)),
		bin(OpPlus, bin(OpPlus, bin(OpPlus, Copy(a), i32(1)), i32(2)), i32(3)),
		bin(OpBarBar, bin(OpEq, Copy(a), i32(1)), bin(OpLess, i32(4), i32(3))),
		NewConditional(types.TypeInt32, loc, bin(OpGeq, i32(2), i32(1)), bin(OpMod, i32(7), i32(4)), Copy(a)),
		NewPrefix(types.TypeInt32, loc, OpTilde, i32(0)),
		NewCast(types.TypeInt64, loc, bin(OpMinus, i32(10), i32(4))),
	}
	for _, e := range trees {
		once := Simplify(e, ev)
		twice := Simplify(Copy(once), ev)
		assert.True(t, Equal(once, twice), Format(once))
	}
}

func TestDivideByZeroReported(t *testing.T) {
	ev, r := newEvaluator()
	e := bin(OpSlash, i32(1), i32(0))
	out := Simplify(e, ev)
	assert.Same(t, e, out)
	assert.True(t, r.Has(diag.EvaluationExceptionMsg))
}

func TestDontSimplify(t *testing.T) {
	ev, _ := newEvaluator()
	e := bin(OpPlus, i32(1), i32(2))
	SetDontSimplify(e, true)
	assert.Same(t, e, Simplify(e, ev))
	outer := bin(OpPlus, e, i32(3))
	assert.Equal(t, "1 + 2 + 3", Format(Simplify(outer, ev)))
}

func TestDottedAndIn(t *testing.T) {
	ev, _ := newEvaluator()
	list := NewList(types.Default.ListOf(types.TypeInt32),
		NewPrimitive(NewInt(types.TypeInt32, 1)),
		NewPrimitive(NewInt(types.TypeInt32, 2)))
	out, err := ev.Binary(OpDotStar, list, NewPrimitive(NewInt(types.TypeInt32, 3)))
	require.NoError(t, err)
	assert.Equal(t, "[3, 6]", out.String())
	out, err = ev.Binary(OpIn, NewPrimitive(NewInt(types.TypeInt32, 2)), list)
	require.NoError(t, err)
	assert.Equal(t, "true", out.String())
}

func TestBuiltins(t *testing.T) {
	ev, _ := newEvaluator()
	maxFn := &Function{Name: "max", Namespace: "spl.math"}
	e := Simplify(NewCall(types.TypeInt32, loc, maxFn, []Expr{i32(3), i32(8)}, ""), ev)
	assert.Equal(t, "8", Format(e))
	native := &Function{Name: "max", Namespace: "spl.math", Native: true}
	e = Simplify(NewCall(types.TypeInt32, loc, native, []Expr{i32(3), i32(8)}, ""), ev)
	assert.Equal(t, "max(3, 8)", Format(e))
}

func TestFormat(t *testing.T) {
	a := sym("a", types.TypeInt32)
	e := bin(OpEq, bin(OpMod, a, i32(2)), i32(0))
	assert.Equal(t, "a % 2 == 0", Format(e))
	e = bin(OpStar, bin(OpPlus, sym("a", types.TypeInt32), i32(1)), i32(2))
	assert.Equal(t, "(a + 1) * 2", Format(e))
	assert.Equal(t, "-(a + 1)", Format(NewPrefix(types.TypeInt32, loc, OpNeg, bin(OpPlus, sym("a", types.TypeInt32), i32(1)))))
}

func TestRemap(t *testing.T) {
	assert.Equal(t, "state$n", NewSymbol(types.TypeInt32, loc, "n", SymState).Remap())
	assert.Equal(t, "id$n", NewSymbol(types.TypeInt32, loc, "n", SymLocal).Remap())
	assert.Equal(t, "n", NewSymbol(types.TypeInt32, loc, "n", SymAttr).Remap())
}

func TestSerializeDeterministic(t *testing.T) {
	e := bin(OpEq, bin(OpMod, sym("a", types.TypeInt32), i32(2)), NewValue(loc, NewInt(types.TypeInt64, 0)))
	tt1 := NewTypeTable()
	t1 := Serialize(e, tt1, func(e Expr) string { return Format(e) })
	tt2 := NewTypeTable()
	t2 := Serialize(Copy(e), tt2, func(e Expr) string { return Format(e) })
	assert.Equal(t, t1, t2)
	assert.Equal(t, []string{"boolean", "int32", "int64"}, tt1.Names())
	assert.Equal(t, "binary", t1.Kind)
	assert.Equal(t, "==", t1.Op)
	assert.Equal(t, 0, t1.Type)
	assert.Equal(t, "symbol", t1.LHS.LHS.Kind)
	assert.Equal(t, 2, t1.RHS.Type)
	assert.Equal(t, "a % 2", t1.LHS.Code)
}

func TestEvalCompileTime(t *testing.T) {
	lookup := func(name string) (string, bool) {
		if name == "com.acme" {
			return "/opt/acme", true
		}
		return "", false
	}
	dir := NewCall(types.TypeRstring, loc, &Function{Name: "getToolkitDirectory", Intrinsic: true}, []Expr{str("com.acme")}, "")
	s, err := EvalCompileTime(bin(OpPlus, dir, str("/etc")), lookup)
	require.NoError(t, err)
	assert.Equal(t, "/opt/acme/etc", s)

	_, err = EvalCompileTime(bin(OpPlus, str("a"), sym("x", types.TypeRstring)), lookup)
	assert.ErrorIs(t, err, ErrNotCompileTime)
	_, err = EvalCompileTime(bin(OpPlus, i32(1), i32(2)), lookup)
	assert.ErrorIs(t, err, ErrNotCompileTime)
	unknown := NewCall(types.TypeRstring, loc, &Function{Name: "getToolkitDirectory", Intrinsic: true}, []Expr{str("nope")}, "")
	_, err = EvalCompileTime(unknown, lookup)
	assert.ErrorIs(t, err, ErrNotCompileTime)
}

func TestCollect(t *testing.T) {
	f := &Function{Name: "f", Namespace: "ns"}
	intrinsic := &Function{Name: "getToolkitDirectory", Intrinsic: true}
	e := bin(OpPlus,
		NewCall(types.TypeInt32, loc, f, []Expr{i32(1)}, ""),
		NewCast(types.TypeInt32, loc, NewCall(types.TypeRstring, loc, intrinsic, []Expr{str("x")}, "")))
	c := Collect(e, Copy(e))
	assert.Equal(t, []*types.Type{types.TypeInt32, types.TypeRstring}, c.Types)
	require.Len(t, c.Functions, 1)
	assert.Equal(t, "ns::f", c.Functions[0].QualifiedName())
}
