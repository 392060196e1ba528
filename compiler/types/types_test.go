package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterning(t *testing.T) {
	f := NewFactory()
	a := f.ListOf(f.Primitive(Int32))
	b := f.ListOf(f.Primitive(Int32))
	assert.Same(t, a, b)
	assert.Equal(t, "list<int32>", a.Name())
	assert.NotSame(t, a, f.SetOf(f.Primitive(Int32)))
}

func TestParseSchema(t *testing.T) {
	f := NewFactory()
	tuple, err := f.ParseSchema("int32 a, list<int32> b, map<rstring,float64> m")
	require.NoError(t, err)
	require.Len(t, tuple.Attrs, 3)
	assert.Equal(t, Int32, tuple.Attrs[0].Type.Meta)
	assert.Equal(t, Int32, tuple.Attrs[1].Type.ElemMeta())
	i, ok := tuple.AttrIndex("m")
	require.True(t, ok)
	assert.Equal(t, 2, i)
	assert.Equal(t, "tuple<int32 a,list<int32> b,map<rstring,float64> m>", tuple.Name())
}

func TestParseTypeErrors(t *testing.T) {
	f := NewFactory()
	for _, s := range []string{"", "list<int32", "integer", "tuple<int32>", "int32 x"} {
		_, err := f.ParseType(s)
		assert.Error(t, err, s)
	}
	_, err := f.ParseSchema("int32 a, int64 a")
	assert.ErrorContains(t, err, "duplicate attribute")
}

func TestMetaPredicates(t *testing.T) {
	assert.True(t, Uint16.IsIntegral())
	assert.False(t, Float32.IsIntegral())
	assert.True(t, Float32.IsNumeric())
	assert.False(t, Boolean.IsNumeric())
	assert.Equal(t, 32, Float32.Bits())
	m, ok := LookupMeta("uint64")
	assert.True(t, ok)
	assert.Equal(t, Uint64, m)
}
