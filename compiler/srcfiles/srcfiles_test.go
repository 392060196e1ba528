package srcfiles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLines(t *testing.T) {
	l := NewList()
	l.Add("a.spl", []byte("first\nsecond\n"))
	f := l.Add("b.spl", []byte("x == 1\ny"))
	assert.Equal(t, 2, f.NumLines())
	assert.Equal(t, At("b.spl", 2, 1), f.Position(7))
	assert.Equal(t, Location{}, f.Position(100))

	line, ok := l.LineOf(At("a.spl", 2, 3))
	require.True(t, ok)
	assert.Equal(t, "second", line)
	line, ok = l.LineOf(At("b.spl", 1, 1))
	require.True(t, ok)
	assert.Equal(t, "x == 1", line)
	_, ok = l.LineOf(At("c.spl", 1, 1))
	assert.False(t, ok)
	assert.Equal(t, []string{"a.spl", "b.spl"}, l.Names())
}

func TestError(t *testing.T) {
	l := NewList()
	l.Add("f.spl", []byte("a % 0 == 0\n"))
	err := NewError(l, "bad", At("f.spl", 1, 5))
	assert.Equal(t, "bad in f.spl at line 1, column 5:\na % 0 == 0\n=== ^ ===", err.Error())
	assert.Equal(t, "bad in g.spl at line 2, column 1", NewError(l, "bad", At("g.spl", 2, 1)).Error())
	assert.Equal(t, "bad in g.spl", NewError(nil, "bad", Location{File: "g.spl"}).Error())
	assert.Equal(t, "bad", NewError(nil, "bad", Location{}).Error())

	var list ErrorList
	list.Append(nil, "one", At("", 1, 2))
	list.Append(nil, "two", Location{})
	assert.Equal(t, "one at line 1, column 2\ntwo", list.Error())
}

func TestLocationString(t *testing.T) {
	assert.Equal(t, "<unknown>", Location{}.String())
	assert.Equal(t, "x.spl", Location{File: "x.spl"}.String())
	assert.Equal(t, "3:4", At("", 3, 4).String())
	assert.Equal(t, "x.spl:3:4", At("x.spl", 3, 4).String())
}
