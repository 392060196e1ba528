package filter

import (
	"errors"
	"math"
	"testing"

	"github.com/brimdata/splc/compiler/diag"
	"github.com/brimdata/splc/compiler/expr"
	"github.com/brimdata/splc/compiler/srcfiles"
	"github.com/brimdata/splc/compiler/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var loc = srcfiles.At("main.spl", 3, 10)

func schema(t *testing.T) *types.Type {
	typ, err := types.Default.ParseSchema("int32 a, list<int32> b, rstring s, boolean flag, float64 f, list<rstring> names, uint8 small")
	require.NoError(t, err)
	return typ
}

var numericKinds = []Kind{Int64, Int32, Int16, Int8, UInt64, UInt32, UInt16, UInt8, Float64, Float32}

func lit(kind Kind, v int64) Literal {
	switch {
	case kind.IsSigned():
		return NewInt(kind, v)
	case kind.IsUnsigned():
		return NewUint(kind, uint64(v))
	}
	return NewFloat(kind, float64(v))
}

func TestCastRoundTrip(t *testing.T) {
	for _, from := range numericKinds {
		for _, to := range numericKinds {
			orig := lit(from, 7)
			cast, err := orig.CastToMatchingType(to)
			require.NoError(t, err, "%s to %s", from, to)
			assert.Equal(t, to, cast.Kind)
			back, err := cast.CastToMatchingType(from)
			require.NoError(t, err, "%s to %s and back", from, to)
			assert.True(t, orig.Equal(back), "%s to %s and back", from, to)
		}
	}
}

func TestCastRange(t *testing.T) {
	cases := []struct {
		lit Literal
		to  Kind
	}{
		{NewUint(UInt64, 1<<63), Int64},
		{NewInt(Int64, -1), UInt8},
		{NewInt(Int64, -1), UInt64},
		{NewInt(Int64, 300), Int8},
		{NewInt(Int64, math.MaxInt32 + 1), Int32},
		{NewUint(UInt32, 70000), UInt16},
		{NewFloat(Float64, 1.5), Int32},
		{NewFloat(Float64, 1e39), Float32},
		{NewFloat(Float64, -1), UInt32},
		{NewInt(Int64, 1<<53 + 1), Float64},
		{NewInt(Int64, 1<<24 + 1), Float32},
		{NewInt(Int64, math.MaxInt64), Float64},
	}
	for _, c := range cases {
		out, err := c.lit.CastToMatchingType(c.to)
		assert.ErrorIs(t, err, ErrRange, "%s to %s", c.lit, c.to)
		assert.True(t, out.Equal(c.lit))
	}
}

func TestCastMismatchedKinds(t *testing.T) {
	s := NewString("x")
	out, err := s.CastToMatchingType(Int32)
	require.NoError(t, err)
	assert.Equal(t, RString, out.Kind)
	b := NewBool(true)
	out, err = b.CastToMatchingType(RString)
	require.NoError(t, err)
	assert.Equal(t, Boolean, out.Kind)
	out, err = NewInt(Int64, 1).CastToMatchingType(Boolean)
	require.NoError(t, err)
	assert.Equal(t, Int64, out.Kind)
}

func TestEqualsZero(t *testing.T) {
	for _, k := range numericKinds {
		assert.True(t, lit(k, 0).EqualsZero(), k.String())
		assert.False(t, lit(k, 1).EqualsZero(), k.String())
	}
	assert.False(t, NewString("").EqualsZero())
	assert.False(t, NewBool(false).EqualsZero())
	assert.False(t, NewInt(Int32, 0).Equal(NewInt(Int64, 0)))
}

func TestParsePrint(t *testing.T) {
	cases := []struct {
		in, out string
	}{
		{"a % 2 == 0", "(a % 2) == 0"},
		{"x > 1 && (y || !z)", "(x > 1) && ((y) || (!z))"},
		{`"abc" in names`, `"abc" in names`},
		{"~a & 3 == 1", "(~a & 3) == 1"},
		{"b[2] >= -4", "b[2] >= -4"},
		{"a % 4 + 1 != 2", "((a % 4) + 1) != 2"},
		{"f < 2.5e3", "f < 2500.0"},
		{"flag == false || s != \"q\\\"\"", `(flag == false) || (s != "q\"")`},
	}
	for _, c := range cases {
		clause, err := Parse(c.in)
		require.NoError(t, err, c.in)
		assert.Equal(t, c.out, clause.String(), c.in)
		again, err := Parse(clause.String())
		require.NoError(t, err, clause.String())
		assert.True(t, Equal(clause, again), c.in)
	}
}

func TestParseErrors(t *testing.T) {
	for _, in := range []string{
		"",
		"   ",
		"a ==",
		"a in b",
		"a % 1.5 == 0",
		`s == "x`,
		"a == 1 )",
		"(a == 1",
		"b[1.0] == 2",
		"a == 1 $",
		"1 == a",
	} {
		_, err := Parse(in)
		var perr *ParseError
		assert.True(t, errors.As(err, &perr), "%q: %v", in, err)
	}
}

func TestSingleClauseEquality(t *testing.T) {
	p := &Predicate{Symbol: "a", Op: Eq, Lit: NewInt(Int64, 1)}
	assert.True(t, Equal(&And{Clauses: []Clause{p}}, p))
	assert.True(t, Equal(p, &Or{Clauses: []Clause{&And{Clauses: []Clause{p}}}}))
	q := &Predicate{Symbol: "a", Op: Eq, Lit: NewInt(Int32, 1)}
	assert.False(t, Equal(p, q))
	assert.False(t, Equal(&And{Clauses: []Clause{p, p}}, &Or{Clauses: []Clause{p, p}}))
}

func TestCheck(t *testing.T) {
	sch := schema(t)
	cases := []struct {
		in  string
		err error
	}{
		{"a % 0 == 0", ErrDivideByZero},
		{"a / 0 == 0", ErrDivideByZero},
		{"s % 2 == 0", ErrArithType},
		{"~f == 1", ErrArithType},
		{"b[-1] == 3", ErrNegativeSubscript},
		{"s == 1", ErrLiteralType},
		{"a", ErrLiteralType},
		{"a == 1.5", ErrRange},
		{"small == 256", ErrRange},
		{`"x" in s`, nil},
		{"flag", nil},
		{"b[1] == 3", nil},
	}
	for _, c := range cases {
		clause, err := Parse(c.in)
		require.NoError(t, err, c.in)
		err = Check(clause, sch)
		if c.err == nil {
			assert.NoError(t, err, c.in)
		} else {
			assert.ErrorIs(t, err, c.err, c.in)
		}
	}
	clause, err := Parse("1 in b[0]")
	require.NoError(t, err)
	assert.ErrorIs(t, Check(clause, nil), ErrSubscriptIn)
}

func TestCheckRetypesLiterals(t *testing.T) {
	clause, err := Parse("a % 2 == 0 && f > 1 && 5 in b")
	require.NoError(t, err)
	require.NoError(t, Check(clause, schema(t)))
	var kinds []Kind
	Predicates(clause, func(p *Predicate) {
		for _, step := range p.Arith {
			kinds = append(kinds, step.Lit.Kind)
		}
		kinds = append(kinds, p.Lit.Kind)
	})
	assert.Equal(t, []Kind{Int32, Int32, Float64, Int32}, kinds)
}

func TestToExpr(t *testing.T) {
	sch := schema(t)
	cases := []struct {
		in, out string
	}{
		{"a % 2 == 0", "a % 2 == 0"},
		{"5 in b", "5 in b"},
		{"flag", "flag == true"},
		{"!flag", "!(flag == true)"},
		{"~a == 1 || a < 3 || a > 9", "~a == 1 || a < 3 || a > 9"},
	}
	for _, c := range cases {
		clause, err := Parse(c.in)
		require.NoError(t, err)
		require.NoError(t, Check(clause, sch))
		assert.Equal(t, c.out, expr.Format(ToExpr(clause, sch, loc)), c.in)
	}
	clause, err := Parse("flag && a == 1")
	require.NoError(t, err)
	e := ToExpr(clause, sch, loc).(*expr.BinaryExpr)
	assert.Equal(t, srcfiles.At("main.spl", 3, 10), e.Loc)
	assert.Equal(t, srcfiles.At("main.spl", 3, 18), expr.LocOf(e.RHS))
	assert.Equal(t, types.TypeInt32, expr.TypeOf(e.RHS.(*expr.BinaryExpr).LHS))
}

// Scenario A: a filter over tuple<int32 a, list<int32> b>.
func TestFilterScenario(t *testing.T) {
	sch, err := types.Default.ParseSchema("int32 a, list<int32> b")
	require.NoError(t, err)
	reporter := diag.NewReporter(nil)
	v := NewValidator(reporter, sch, nil)

	e, m, ok := v.ParseFilter("a % 2 == 0", loc)
	require.True(t, ok)
	assert.Equal(t, types.Boolean, m)
	assert.NotNil(t, e)
	assert.Zero(t, reporter.Len())

	e, _, ok = v.ParseFilter("a % 0 == 0", loc)
	assert.False(t, ok)
	assert.Nil(t, e)
	require.Equal(t, []diag.ID{diag.FilterInvalid}, reporter.IDs())
	d := reporter.Diagnostics()[0]
	assert.Equal(t, loc, d.Loc)
	assert.Contains(t, d.Message(), "division by zero")
}

func parseFilter(t *testing.T, text string) (*diag.Reporter, bool) {
	reporter := diag.NewReporter(nil)
	_, _, ok := NewValidator(reporter, schema(t), nil).ParseFilter(text, loc)
	return reporter, ok
}

func TestFilterValid(t *testing.T) {
	for _, in := range []string{
		"a % 2 == 0",
		"5 in b",
		`"bob" in names`,
		"flag",
		"!flag",
		"flag && a > 3 || s == \"x\"",
		"b[1] == 3",
		"~a & 7 != 0",
		"f >= 1",
		"small < 7",
		"flag != false",
	} {
		reporter, ok := parseFilter(t, in)
		assert.True(t, ok, in)
		assert.Zero(t, reporter.Len(), "%s: %s", in, reporter.Render())
	}
}

func TestFilterDiagnostics(t *testing.T) {
	cases := []struct {
		in string
		id diag.ID
	}{
		{"flag < true", diag.InvalidBooleanOperator},
		{"s == 1", diag.FilterInvalid},
		{"b == 1", diag.InvalidFilterSymbolType},
		{"1 in a", diag.InvalidFilterNotList},
		{"s % 2 == 0", diag.FilterInvalid},
		{"a == 1.5", diag.FilterInvalid},
		{"zz == 1", diag.FilterSymbolNotInOutput},
		{"a ==", diag.FilterInvalid},
	}
	for _, c := range cases {
		reporter, ok := parseFilter(t, c.in)
		assert.False(t, ok, c.in)
		assert.Equal(t, []diag.ID{c.id}, reporter.IDs(), c.in)
	}
}

func TestFilterSymbolHint(t *testing.T) {
	reporter, ok := parseFilter(t, "flg")
	assert.False(t, ok)
	require.Equal(t, []diag.ID{diag.FilterSymbolNotInOutput}, reporter.IDs())
	d := reporter.Diagnostics()[0]
	assert.Equal(t, []any{"flg"}, d.Args)
	require.Len(t, d.Details, 1)
	assert.Equal(t, diag.FilterSymbolHint, d.Details[0].ID)
	assert.Equal(t, []any{"flag"}, d.Details[0].Args)
	assert.Equal(t, srcfiles.At("main.spl", 3, 10), d.Loc)

	reporter, _ = parseFilter(t, "qwertyuiop == 1")
	require.Len(t, reporter.Diagnostics(), 1)
	assert.Empty(t, reporter.Diagnostics()[0].Details)
}

func sym(sch *types.Type, name string) *expr.SymbolExpr {
	typ := types.TypeInvalid
	if k, ok := sch.AttrIndex(name); ok {
		typ = sch.Attrs[k].Type
	}
	return expr.NewSymbol(typ, loc, name, expr.SymAttr)
}

func value(v expr.Value) expr.Expr { return expr.NewValue(loc, v) }

func cmp(op expr.Op, lhs, rhs expr.Expr) expr.Expr {
	return expr.NewBinary(types.TypeBool, loc, op, lhs, rhs)
}

func TestFilterExpressions(t *testing.T) {
	sch := schema(t)
	call := expr.NewCall(types.TypeInt32, loc, &expr.Function{Name: "f"}, nil, "")
	sum := expr.NewBinary(types.TypeInt32, loc, expr.OpPlus, value(expr.NewInt(types.TypeInt32, 1)), value(expr.NewInt(types.TypeInt32, 2)))
	cases := []struct {
		name string
		e    expr.Expr
		id   diag.ID
	}{
		{"literal", value(expr.NewBool(true)), diag.InvalidFilterExpn},
		{"call", cmp(expr.OpEq, call, value(expr.NewInt(types.TypeInt32, 1))), diag.InvalidSimplifiedFilterExpn},
		{"mismatch", cmp(expr.OpEq, sym(sch, "a"), value(expr.NewFloat(types.TypeFloat64, 1.5))), diag.InvalidFilterMismatchType},
		{"not literal", cmp(expr.OpEq, sym(sch, "a"), sym(sch, "small")), diag.InvalidFilterLiteral},
		{"arith symbol rhs", cmp(expr.OpEq,
			expr.NewBinary(types.TypeInt32, loc, expr.OpPlus, sym(sch, "a"), sym(sch, "small")),
			value(expr.NewInt(types.TypeInt32, 1))), diag.InvalidFilterLiteral},
		{"float modulus", cmp(expr.OpEq,
			expr.NewBinary(types.TypeFloat64, loc, expr.OpMod, sym(sch, "f"), value(expr.NewInt(types.TypeInt32, 2))),
			value(expr.NewInt(types.TypeInt32, 0))), diag.InvalidFilterModSymbol},
		{"need bool", cmp(expr.OpAmpAmp, sym(sch, "flag"), sym(sch, "a")), diag.InvalidFilterNeedBool},
		{"slice", cmp(expr.OpEq,
			expr.NewSlice(sch.Attrs[1].Type, loc, sym(sch, "b"), value(expr.NewInt(types.TypeInt32, 0)), nil),
			value(expr.NewInt(types.TypeInt32, 1))), diag.InvalidFilterSymbol},
		{"in subscript", cmp(expr.OpIn, value(expr.NewInt(types.TypeInt32, 1)),
			expr.NewSubscript(types.TypeInt32, loc, sym(sch, "b"), value(expr.NewInt(types.TypeInt32, 0)))), diag.InvalidFilterSymbol},
	}
	for _, c := range cases {
		reporter := diag.NewReporter(nil)
		m, ok := NewValidator(reporter, sch, nil).Filter(c.e)
		assert.False(t, ok, c.name)
		assert.Equal(t, types.Invalid, m, c.name)
		assert.Equal(t, []diag.ID{c.id}, reporter.IDs(), c.name)
	}

	// Operands fold before they are checked.
	reporter := diag.NewReporter(nil)
	e := cmp(expr.OpEq, expr.NewBinary(types.TypeInt32, loc, expr.OpMod, sym(sch, "a"), sum), value(expr.NewInt(types.TypeInt32, 0)))
	m, ok := NewValidator(reporter, sch, nil).Filter(e)
	assert.True(t, ok)
	assert.Equal(t, types.Boolean, m)
	assert.Equal(t, "a % (1 + 2) == 0", expr.Format(e))
}

func TestFilterContinuesPastErrors(t *testing.T) {
	reporter, ok := parseFilter(t, "zz == 1 && yy == 2")
	assert.False(t, ok)
	assert.Equal(t, []diag.ID{diag.FilterSymbolNotInOutput, diag.FilterSymbolNotInOutput}, reporter.IDs())
}

func TestSubscriptions(t *testing.T) {
	valid := []string{
		"a % 2 == 0 && s == \"x\"",
		"b[3] > 1.5 || c != -2",
		`"x" in names`,
	}
	for _, in := range valid {
		reporter := diag.NewReporter(nil)
		_, ok := NewValidator(reporter, nil, nil).ParseSubscription(in, loc)
		assert.True(t, ok, in)
		assert.Zero(t, reporter.Len(), "%s: %s", in, reporter.Render())
	}
	cases := []struct {
		in string
		id diag.ID
	}{
		{"!(a == 1)", diag.InvalidSubscriptionExpn},
		{"flag", diag.InvalidSubscriptionLiteralType},
		{"a * 2 == 1", diag.InvalidSimplifiedSubscriptionExpn},
		{"a % 0 == 1", diag.SubscriptionInvalid},
		{"a == true", diag.InvalidSubscriptionLiteralType},
		{"~a == 1", diag.InvalidSimplifiedSubscriptionExpn},
		{"", diag.SubscriptionInvalid},
	}
	for _, c := range cases {
		reporter := diag.NewReporter(nil)
		_, ok := NewValidator(reporter, nil, nil).ParseSubscription(c.in, loc)
		assert.False(t, ok, c.in)
		assert.Equal(t, []diag.ID{c.id}, reporter.IDs(), c.in)
	}
}

func TestSubscriptionExpressions(t *testing.T) {
	sch := schema(t)
	cases := []struct {
		name string
		e    expr.Expr
		id   diag.ID
	}{
		{"uint64 modulus", cmp(expr.OpEq,
			expr.NewBinary(types.TypeInt32, loc, expr.OpMod, sym(sch, "a"), value(expr.NewUint(types.TypeUint64, 2))),
			value(expr.NewInt(types.TypeInt32, 0))), diag.InvalidSubscriptionInt64Literal},
		{"symbol modulus", cmp(expr.OpEq,
			expr.NewBinary(types.TypeInt32, loc, expr.OpMod, sym(sch, "a"), sym(sch, "small")),
			value(expr.NewInt(types.TypeInt32, 0))), diag.InvalidSubscriptionLiteral},
		{"subscript type", cmp(expr.OpEq,
			expr.NewSubscript(types.TypeInt32, loc, sym(sch, "b"), value(expr.NewString(types.TypeRstring, "k"))),
			value(expr.NewInt(types.TypeInt32, 0))), diag.InvalidSubscriptionSubscriptType},
		{"call symbol", cmp(expr.OpLess,
			expr.NewCall(types.TypeInt32, loc, &expr.Function{Name: "f"}, nil, ""),
			value(expr.NewInt(types.TypeInt32, 0))), diag.InvalidSimplifiedSubscriptionExpn},
	}
	for _, c := range cases {
		reporter := diag.NewReporter(nil)
		assert.False(t, NewValidator(reporter, sch, nil).Subscription(c.e), c.name)
		assert.Equal(t, []diag.ID{c.id}, reporter.IDs(), c.name)
	}
}

func TestCanCast(t *testing.T) {
	assert.True(t, canCast(types.Int8, types.Int64))
	assert.False(t, canCast(types.Int8, types.Uint8))
	assert.False(t, canCast(types.Int8, types.Uint64))
	assert.True(t, canCast(types.Uint64, types.Int64))
	assert.True(t, canCast(types.Float32, types.Float64))
	assert.False(t, canCast(types.Float64, types.Float32))
	assert.False(t, canCast(types.Int32, types.Float64))
}
