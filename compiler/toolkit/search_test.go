package toolkit

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/brimdata/splc/compiler/diag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// writeToolkit creates a toolkit directory whose info.xml declares deps
// written name@range.
func writeToolkit(t *testing.T, dir, name, version string, deps ...string) {
	t.Helper()
	writeFile(t, filepath.Join(dir, "toolkit.xml"), fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<toolkitModel xmlns="http://www.ibm.com/xmlns/prod/streams/spl/toolkit" productVersion="4.0">
  <toolkit name=%q version=%q requiredProductVersion="[4.0,5.0)">
    <description>test toolkit</description>
  </toolkit>
</toolkitModel>
`, name, version))
	if len(deps) == 0 {
		return
	}
	var b strings.Builder
	for _, d := range deps {
		n, r, _ := strings.Cut(d, "@")
		fmt.Fprintf(&b, "    <common:toolkit><common:name>%s</common:name><common:version>%s</common:version></common:toolkit>\n", n, r)
	}
	writeFile(t, filepath.Join(dir, "info.xml"), fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<info:toolkitInfoModel xmlns:common="http://www.ibm.com/xmlns/prod/streams/spl/common" xmlns:info="http://www.ibm.com/xmlns/prod/streams/spl/toolkitInfo">
  <info:identity>
    <info:name>%s</info:name>
    <info:version>%s</info:version>
  </info:identity>
  <info:dependencies>
%s  </info:dependencies>
</info:toolkitInfoModel>
`, name, version, b.String()))
}

func locate(t *testing.T, r *diag.Reporter, paths ...string) *Search {
	t.Helper()
	s := NewSearch(r, nil)
	s.SetPaths(paths)
	require.NoError(t, s.Locate(context.Background()))
	return s
}

func TestSearchAndResolve(t *testing.T) {
	root := t.TempDir()
	writeToolkit(t, filepath.Join(root, "a1"), "A", "1.0")
	writeToolkit(t, filepath.Join(root, "a2"), "A", "2.0")
	writeToolkit(t, filepath.Join(root, "b"), "B", "1.0", "A@[2.0,3.0)")
	r := diag.NewReporter(nil)
	s := locate(t, r, filepath.Join(root, "a1"), filepath.Join(root, "a2"), filepath.Join(root, "b"))
	assert.Equal(t, "A(1.0) A(2.0) B(1.0)", names(s.Toolkits()))
	res, err := s.Resolve()
	require.NoError(t, err)
	assert.Equal(t, "A(2.0) B(1.0)", names(res.Toolkits))
	require.NoError(t, CheckDependencies(r, MustParseVersion("4.1"), res.Toolkits))
	assert.Empty(t, r.Diagnostics())
}

func TestSetPathsDeduplicates(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "tk")
	writeToolkit(t, dir, "A", "1.0")
	link := filepath.Join(root, "link")
	require.NoError(t, os.Symlink(dir, link))
	r := diag.NewReporter(nil)
	s := NewSearch(r, nil)
	ok := s.SetPaths([]string{dir, link, dir + "/.", filepath.Join(root, "missing")})
	assert.True(t, ok)
	assert.Equal(t, []string{dir}, s.Paths())
	assert.Equal(t, []diag.ID{diag.PathIsDuplicate, diag.PathIsDuplicate, diag.PathIsNotADirectory}, r.IDs())
	assert.Zero(t, r.NumErrors())
}

func TestSearchSubdirectories(t *testing.T) {
	root := t.TempDir()
	writeToolkit(t, filepath.Join(root, "x"), "X", "1.0")
	writeToolkit(t, filepath.Join(root, "y"), "Y", "1.0")
	require.NoError(t, os.Mkdir(filepath.Join(root, "empty"), 0o755))
	r := diag.NewReporter(nil)
	s := locate(t, r, root, filepath.Join(root, "empty"))
	assert.Equal(t, "X(1.0) Y(1.0)", names(s.Toolkits()))
	assert.Equal(t, []diag.ID{diag.MissingToolkit}, r.IDs())
}

func TestSearchToolkitList(t *testing.T) {
	root := t.TempDir()
	writeToolkit(t, filepath.Join(root, "tks", "a"), "A", "1.0")
	writeToolkit(t, filepath.Join(root, "more", "b"), "B", "1.0")
	writeFile(t, filepath.Join(root, "list.xml"), `<toolkitList>
  <toolkit directory="tks/a"/>
  <toolkit listFile="more/list.xml"/>
  <toolkit listFile="list.xml"/>
</toolkitList>`)
	writeFile(t, filepath.Join(root, "more", "list.xml"), `<toolkitList><toolkit directory="b"/></toolkitList>`)
	r := diag.NewReporter(nil)
	s := locate(t, r, filepath.Join(root, "list.xml"))
	assert.Equal(t, "A(1.0) B(1.0)", names(s.Toolkits()))
	assert.Empty(t, r.Diagnostics())
}

func TestSearchMalformedToolkit(t *testing.T) {
	root := t.TempDir()
	writeToolkit(t, filepath.Join(root, "good"), "Good", "1.0")
	writeFile(t, filepath.Join(root, "bad", "toolkit.xml"), "<toolkitModel><toolkit")
	writeFile(t, filepath.Join(root, "badversion", "toolkit.xml"), `<toolkitModel><toolkit name="V" version="x.y"/></toolkitModel>`)
	r := diag.NewReporter(nil)
	s := locate(t, r, filepath.Join(root, "bad"), filepath.Join(root, "good"), filepath.Join(root, "badversion"))
	assert.Equal(t, "Good(1.0)", names(s.Toolkits()))
	assert.Equal(t, []diag.ID{diag.ToolkitMalformed, diag.ToolkitMalformed}, r.IDs())
	assert.Contains(t, r.Diagnostics()[0].Message(), filepath.Join(root, "bad", "toolkit.xml"))
}

func TestSearchDuplicates(t *testing.T) {
	root := t.TempDir()
	writeToolkit(t, filepath.Join(root, "one"), "A", "1.0")
	writeToolkit(t, filepath.Join(root, "two"), "A", "1.0")
	r := diag.NewReporter(nil)
	s := locate(t, r, filepath.Join(root, "one"), filepath.Join(root, "two"))
	tks := s.Toolkits()
	require.Len(t, tks, 1)
	assert.Equal(t, filepath.Join(root, "one", "toolkit.xml"), tks[0].File)
	assert.Empty(t, r.Diagnostics())
}

func TestSearchPrefersCurrentDirectory(t *testing.T) {
	r := diag.NewReporter(nil)
	s := NewSearch(r, nil, WithCurrent("app"), WithSPL("spl"))
	s.Add(&Toolkit{Name: "app", Version: MustParseVersion("1.0"), Dir: ".", File: "toolkit.xml"})
	s.Add(&Toolkit{Name: "app", Version: MustParseVersion("2.0"), Dir: "/opt/app", File: "/opt/app/toolkit.xml"})
	s.Add(&Toolkit{Name: "spl", Version: MustParseVersion("1.0"), Dir: "/opt/spl", File: "/opt/spl/toolkit.xml"})
	tks := s.Toolkits()
	require.Len(t, tks, 2)
	assert.True(t, tks[0].Current)
	assert.True(t, tks[1].SPL)
	assert.Equal(t, []diag.ID{diag.SkippingToolkit}, r.IDs())
}

func TestSearchCanceled(t *testing.T) {
	root := t.TempDir()
	writeToolkit(t, root, "A", "1.0")
	s := NewSearch(diag.NewReporter(nil), nil)
	s.SetPaths([]string{root})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, s.Locate(ctx), context.Canceled)
}
