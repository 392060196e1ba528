package parser_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/brimdata/splc/compiler/ast"
	"github.com/brimdata/splc/compiler/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterTree(t *testing.T) {
	n, err := parser.ParseFilter("~a & 3 == 1")
	require.NoError(t, err)
	b, err := json.Marshal(n)
	require.NoError(t, err)
	expected := `{
		"kind": "Predicate",
		"op": "==",
		"operand": {
			"kind": "Arith",
			"complement": true,
			"symbol": {"kind": "Symbol", "name": "a", "subscript": null, "loc": {"first": 1, "last": 1}},
			"steps": [
				{
					"kind": "ArithStep",
					"op": "&",
					"operand": {"kind": "Literal", "type": "int", "text": "3", "loc": {"first": 5, "last": 5}},
					"loc": {"first": 5, "last": 5}
				}
			],
			"loc": {"first": 0, "last": 1}
		},
		"lit": {"kind": "Literal", "type": "int", "text": "1", "loc": {"first": 10, "last": 10}},
		"loc": {"first": 0, "last": 10}
	}`
	assert.JSONEq(t, expected, string(b))
}

func TestFilterShapes(t *testing.T) {
	n, err := parser.ParseFilter(`x > 1 && ("abc" in names || !(b[-2] == - 7))`)
	require.NoError(t, err)
	and, ok := n.(*ast.And)
	require.True(t, ok, "%T", n)
	require.Len(t, and.Clauses, 2)
	or, ok := and.Clauses[1].(*ast.Or)
	require.True(t, ok, "%T", and.Clauses[1])
	member := or.Clauses[0].(*ast.Predicate)
	assert.Equal(t, "in", member.Op)
	assert.Equal(t, "names", member.Operand.Symbol.Name)
	assert.Equal(t, "string", member.Lit.Type)
	assert.Equal(t, `"abc"`, member.Lit.Text)
	not := or.Clauses[1].(*ast.Not)
	pred := not.Clause.(*ast.Predicate)
	assert.Equal(t, "-2", pred.Operand.Symbol.Subscript.Text)
	assert.Equal(t, "-7", pred.Lit.Text)

	n, err = parser.ParseFilter("(a % 4) + 1 != 2.5e3")
	require.NoError(t, err)
	pred = n.(*ast.Predicate)
	require.Len(t, pred.Operand.Steps, 2)
	assert.Equal(t, "%", pred.Operand.Steps[0].Op)
	assert.Equal(t, "+", pred.Operand.Steps[1].Op)
	assert.Equal(t, "float", pred.Lit.Type)

	n, err = parser.ParseFilter("flag")
	require.NoError(t, err)
	pred = n.(*ast.Predicate)
	assert.Empty(t, pred.Op)
	assert.Nil(t, pred.Lit)
}

func TestFilterErrors(t *testing.T) {
	cases := []struct {
		in     string
		offset int
	}{
		{"a ==", 4},
		{"a == 1 $", 7},
	}
	for _, c := range cases {
		_, err := parser.ParseFilter(c.in)
		var perr *parser.Error
		require.True(t, errors.As(err, &perr), "%q: %v", c.in, err)
		assert.Equal(t, c.offset, perr.Offset, c.in)
	}
	for _, in := range []string{"in == 1", "a % 1.5 == 0", "b[1.0] == 2", "true == a"} {
		_, err := parser.ParseFilter(in)
		assert.Error(t, err, in)
	}
}

func TestTypes(t *testing.T) {
	n, err := parser.ParseType(" map<rstring, list<int32>> ")
	require.NoError(t, err)
	m, ok := n.(*ast.TypeMap)
	require.True(t, ok, "%T", n)
	assert.Equal(t, "rstring", m.KeyType.(*ast.TypeName).Name)
	list := m.ValType.(*ast.TypeCollection)
	assert.Equal(t, "list", list.Collection)
	assert.Equal(t, "int32", list.Elem.(*ast.TypeName).Name)

	n, err = parser.ParseType("enum{red, green}")
	require.NoError(t, err)
	assert.Equal(t, []string{"red", "green"}, n.(*ast.TypeEnum).Symbols)

	attrs, err := parser.ParseSchema("int32 a, tuple<optional<int8> b, $c d> t")
	require.NoError(t, err)
	require.Len(t, attrs, 2)
	assert.Equal(t, "t", attrs[1].Name)
	tuple := attrs[1].Type.(*ast.TypeTuple)
	require.Len(t, tuple.Attrs, 2)
	assert.Equal(t, "$c", tuple.Attrs[1].Type.(*ast.TypeName).Name)

	for _, in := range []string{"", "list<int32", "tuple<int32>", "int32 x"} {
		_, err := parser.ParseType(in)
		assert.Error(t, err, in)
	}
}

func TestVersions(t *testing.T) {
	v, err := parser.ParseVersion("1.2.3.beta")
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3"}, v.Nums)
	assert.Equal(t, "beta", v.Qualifier)

	v, err = parser.ParseVersion(" 4 ")
	require.NoError(t, err)
	assert.Equal(t, []string{"4"}, v.Nums)

	r, err := parser.ParseRange("[1.0, 2.0)")
	require.NoError(t, err)
	assert.True(t, r.LowInclusive)
	assert.False(t, r.HighInclusive)
	assert.Equal(t, []string{"2", "0"}, r.High.Nums)

	r, err = parser.ParseRange("3.1")
	require.NoError(t, err)
	assert.Nil(t, r.High)
	assert.True(t, r.LowInclusive)

	for _, in := range []string{"1.x", "1.beta", "1.2.3.", "+1", "-1"} {
		_, err := parser.ParseVersion(in)
		assert.Error(t, err, in)
	}
	for _, in := range []string{"[1.0", "[1.0)", "[a,b]", "(1,2"} {
		_, err := parser.ParseRange(in)
		assert.Error(t, err, in)
	}
}
