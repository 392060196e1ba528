package anymath

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTables(t *testing.T) {
	assert.Equal(t, int64(3), Min.Int64(3, 7))
	assert.Equal(t, "b", Max.String("a", "b"))
	assert.Equal(t, "ab", Add.String("a", "b"))
	assert.Equal(t, int64(1), Mod.Int64(7, 3))
	assert.Equal(t, 1.5, Mod.Float64(7.5, 2))
	assert.Equal(t, uint64(8), Lsh.Uint64(1, 3))
	assert.Nil(t, Xor.Float64)
}

func TestZeroDivisor(t *testing.T) {
	assert.ErrorIs(t, Div.CheckInt64(0), ErrDivideByZero)
	assert.ErrorIs(t, Mod.CheckUint64(0), ErrDivideByZero)
	assert.NoError(t, Add.CheckInt64(0))
	assert.NoError(t, Div.CheckInt64(2))
}
