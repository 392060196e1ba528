package expr

import (
	"testing"

	"github.com/brimdata/splc/compiler/diag"
	"github.com/brimdata/splc/compiler/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stpCall(name string, args ...Expr) *CallExpr {
	return NewCall(types.TypeRstring, loc, &Function{Name: name, Intrinsic: true}, args, "my::Main")
}

func TestReplaceLiterals(t *testing.T) {
	r := NewLiteralReplacer(diag.NewReporter(nil), "my::Main")
	e := bin(OpPlus, bin(OpPlus, sym("a", types.TypeInt32), i32(1)), i32(2))
	out := ReplaceLits(e, r, false)
	assert.Equal(t, "a + lit$1 + lit$0", Format(out))
	require.Equal(t, 2, r.Len())
	assert.Equal(t, "2", r.Literals()[0].String())
	assert.Equal(t, "1", r.Literals()[1].String())
	assert.Nil(t, r.Arguments()[0])
	assert.Len(t, r.Locations(), 2)

	// Equal literals share an index.
	out = ReplaceLits(bin(OpPlus, i32(2), i32(2)), r, false)
	assert.Equal(t, "lit$0 + lit$0", Format(out))

	r.Reset()
	assert.Zero(t, r.Len())
	out = ReplaceLits(i32(7), r, false)
	assert.Equal(t, "lit$0", Format(out))
}

func TestReplaceOnlySTP(t *testing.T) {
	r := NewLiteralReplacer(nil, "my::Main")
	e := bin(OpPlus, stpCall("getSubmissionTimeValue", str("p")), str("x"))
	out := ReplaceLits(e, r, true)
	assert.Equal(t, `lit$0 + "x"`, Format(out))
	require.Equal(t, 1, r.Len())
	arg := r.Arguments()[0]
	require.NotNil(t, arg)
	assert.Equal(t, ArgInfo{Kind: ArgNamed, CompositeName: "my::Main", Name: "p", Required: true}, *arg)
	assert.Equal(t, `""`, r.Literals()[0].String())
	sym, ok := out.(*BinaryExpr).LHS.(*LiteralSymbolExpr)
	require.True(t, ok)
	assert.True(t, sym.Arg)
}

func TestReplaceSubmissionDefaults(t *testing.T) {
	r := NewLiteralReplacer(nil, "my::Main")
	ReplaceLits(stpCall("getSubmissionTimeValue", str("p"), str("dflt")), r, false)
	listType := types.Default.ListOf(types.TypeRstring)
	dflt := NewLiteral(loc, NewList(listType, NewPrimitive(NewString(types.TypeRstring, "a"))))
	ReplaceLits(stpCall("getSubmissionTimeListValue", str("q"), dflt), r, false)
	require.Equal(t, 2, r.Len())
	assert.False(t, r.Arguments()[0].Required)
	assert.Equal(t, `"dflt"`, r.Literals()[0].String())
	assert.Equal(t, ArgNamedList, r.Arguments()[1].Kind)
	assert.Equal(t, `["a"]`, r.Literals()[1].String())
}

func TestReplaceNeedsLiteral(t *testing.T) {
	reporter := diag.NewReporter(nil)
	r := NewLiteralReplacer(reporter, "")
	e := stpCall("getSubmissionTimeValue", sym("name", types.TypeRstring))
	out := ReplaceLits(e, r, false)
	assert.Same(t, e, out)
	assert.Equal(t, []diag.ID{diag.GetArgumentNeedsLit}, reporter.IDs())
	assert.Zero(t, r.Len())

	e = stpCall("getSubmissionTimeValue", str("p"), i32(3))
	ReplaceLits(e, r, false)
	assert.Equal(t, 2, reporter.NumErrors())
}

func TestReplaceMainComposite(t *testing.T) {
	r := NewLiteralReplacer(nil, "my::Main")
	out := ReplaceLits(stpCall("getMainCompositeName"), r, false)
	assert.Equal(t, "lit$0", Format(out))
	assert.Equal(t, `"my::Main"`, r.Literals()[0].String())
	r.Reset()
	out = ReplaceLits(stpCall("getMainCompositeName"), r, true)
	assert.Equal(t, "getMainCompositeName()", Format(out))
}

func TestReplaceSkipsEmptyTupleAndRangeArgs(t *testing.T) {
	r := NewLiteralReplacer(nil, "")
	tuple := NewLiteral(loc, NewTuple(types.Default.TupleOf(nil)))
	assert.Same(t, tuple, ReplaceLits(tuple, r, false))

	rangeFn := &Function{Name: "range", Namespace: "spl.collection", Native: true}
	call := NewCall(types.TypeVoid, loc, rangeFn, []Expr{i32(10)}, "")
	ReplaceLits(call, r, false)
	assert.Equal(t, "range(10)", Format(call))
	assert.Zero(t, r.Len())
}
