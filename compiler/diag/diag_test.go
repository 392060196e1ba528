package diag

import (
	"errors"
	"testing"

	"github.com/brimdata/splc/compiler/srcfiles"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReporter(t *testing.T) {
	r := NewReporter(nil)
	assert.NoError(t, r.Err())
	r.Warn(srcfiles.Location{}, PathIsDuplicate, "/opt/tk")
	mark := r.Len()
	d := r.Error(srcfiles.At("in.spl", 1, 1), FilterSymbolNotInOutput, "flg")
	r.Detail(d, srcfiles.At("in.spl", 1, 1), FilterSymbolHint, "flag")
	r.Info(srcfiles.Location{}, MissingToolkit, "/tmp")

	assert.Equal(t, 1, r.NumErrors())
	assert.Equal(t, 1, r.NumWarnings())
	assert.Equal(t, []ID{PathIsDuplicate, FilterSymbolNotInOutput, MissingToolkit}, r.IDs())
	assert.Len(t, r.Since(mark), 2)
	assert.Nil(t, r.Since(10))
	assert.True(t, r.Has(MissingToolkit))
	assert.False(t, r.Has(HPConflict))
	assert.Equal(t, "symbol flg is not an attribute of the output stream", d.Message())

	err := r.Err()
	var list *List
	require.True(t, errors.As(err, &list))
	assert.Len(t, list.Diags, 3)
	expected := "warning: toolkit path /opt/tk duplicates an earlier path\n" +
		"error: symbol flg is not an attribute of the output stream in in.spl at line 1, column 1\n" +
		"  error: did you mean flag? in in.spl at line 1, column 1\n" +
		"info: no toolkit was found in /tmp"
	assert.Equal(t, expected, err.Error())
	assert.Equal(t, expected, r.Render())
}

func TestRenderWithSources(t *testing.T) {
	sources := srcfiles.NewList()
	sources.Add("in.spl", []byte("stream<int32 a> S = Import() {}\n"))
	r := NewReporter(nil, WithSources(sources))
	r.Error(srcfiles.At("in.spl", 1, 5), FilterSymbolNotInOutput, "b")
	assert.Equal(t, "error: symbol b is not an attribute of the output stream in in.spl at line 1, column 5:\n"+
		"stream<int32 a> S = Import() {}\n=== ^ ===", r.Render())
}

func TestUnknownID(t *testing.T) {
	assert.Equal(t, "NOT_A_MESSAGE", Format("NOT_A_MESSAGE", 1))
	assert.Equal(t, "error", SevError.String())
	assert.Equal(t, "severity(9)", Severity(9).String())
}
