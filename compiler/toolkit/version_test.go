package toolkit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVersion(t *testing.T) {
	cases := []struct {
		in   string
		nums []int
		qual string
		out  string
	}{
		{"1", []int{1}, "", "1"},
		{"1.2", []int{1, 2}, "", "1.2"},
		{" 1.2.3 ", []int{1, 2, 3}, "", "1.2.3"},
		{"1.2.3.beta", []int{1, 2, 3}, "beta", "1.2.3.beta"},
		{"4.0.1.20240101", []int{4, 0, 1}, "20240101", "4.0.1.20240101"},
	}
	for _, c := range cases {
		v, err := ParseVersion(c.in)
		require.NoError(t, err, c.in)
		assert.Equal(t, c.nums, v.Nums, c.in)
		assert.Equal(t, c.qual, v.Qualifier, c.in)
		assert.Equal(t, c.out, v.String(), c.in)
	}
	for _, bad := range []string{"", "a", "1.x", "1..2", "-1", "+1", "1.2.3."} {
		_, err := ParseVersion(bad)
		assert.ErrorIs(t, err, ErrVersion, bad)
	}
}

func TestVersionCompare(t *testing.T) {
	v := MustParseVersion
	assert.Equal(t, 0, v("1").Compare(v("1.0.0")))
	assert.Equal(t, -1, v("1.2").Compare(v("1.10")))
	assert.Equal(t, 1, v("2.0").Compare(v("1.9.9")))
	assert.Equal(t, -1, v("1.0.0").Compare(v("1.0.0.a")))
	assert.Equal(t, -1, v("1.0.0.a").Compare(v("1.0.0.b")))
	assert.True(t, v("3.0").Equal(v("3")))
}

func TestRange(t *testing.T) {
	cases := []struct {
		rng  string
		in   []string
		out  []string
		text string
	}{
		{"[2.0,3.0)", []string{"2.0", "2.9.9", "2"}, []string{"1.9", "3.0", "3.0.1"}, "[2.0,3.0)"},
		{"(2.0,3.0]", []string{"2.0.1", "3.0"}, []string{"2.0", "3.0.1"}, "(2.0,3.0]"},
		{"[1,1]", []string{"1.0.0"}, []string{"1.0.1"}, "[1,1]"},
		{"(1,2)", []string{"1.5"}, []string{"1", "2"}, "(1,2)"},
		{"2.1", []string{"2.1", "9"}, []string{"2.0.9"}, "2.1"},
	}
	for _, c := range cases {
		r, err := ParseRange(c.rng)
		require.NoError(t, err, c.rng)
		for _, s := range c.in {
			assert.True(t, r.Contains(MustParseVersion(s)), "%s in %s", s, c.rng)
		}
		for _, s := range c.out {
			assert.False(t, r.Contains(MustParseVersion(s)), "%s not in %s", s, c.rng)
		}
		assert.Equal(t, c.text, r.String())
	}
	assert.True(t, Range{}.Contains(MustParseVersion("0.1")))
	assert.Equal(t, "*", Range{}.String())
	for _, bad := range []string{"", "[1.0", "[1.0)", "[2.0,1.0)", "[a,b]"} {
		_, err := ParseRange(bad)
		assert.ErrorIs(t, err, ErrVersion, bad)
	}
}
