// Package ztest runs formulaic tests ("ztests") that can be (1) run in-process
// against the compiler packages or (2) run as a bash script running a sequence
// of arbitrary shell commands invoking the splc executable.  Case (1) is easier
// to debug by simply running "go test".  Script-style tests don't have this
// convenience.
//
// In the in-process style, ztest runs one compiler stage on an input and
// checks for an expected output and expected diagnostics.  The stage is one
// of "filter", "subscription" or "place".
//
//	stage: filter
//
//	schema: int32 a, list<int32> b
//
//	input: a % 2 == 0 && 3 in b
//
//	output: |
//	  a % 2 == 0 && 3 in b
//
// A place test takes an operator graph as input and prints the plan in the
// text form of "splc place -f text".  Host assignment is randomized, so
// place tests should set a seed.
//
//	stage: place
//
//	seed: 1
//
//	input: |
//	  operators:
//	    - {name: a, partitionColocation: [p]}
//	    - {name: b, partitionColocation: [p]}
//
//	output: |
//	  partition 0 bucket 0 host -
//	    a unset
//	    b unset
//
// When the stage reports errors, its rendered diagnostics are compared
// with the error field.
//
// Alternatively, tests can be configured to run as shell scripts.
// Scripts are executed by "bash -e -o pipefail", and a nonzero shell exit
// code causes a test failure, so any failed command generally results in a
// test failure.  Here, the yaml sets up a collection of input files and
// stdin, the script runs, and the test driver compares expected output
// files, stdout, and stderr with data in the yaml spec.  Instead of
// "stage", "input" and "output", you specify the yaml arrays "inputs" and
// "outputs", where each array element defines a file, stdin, stdout, or
// stderr, and a "script" that specifies a multi-line yaml string defining
// the script, e.g.,
//
//	inputs:
//	  - name: graph.yaml
//	    data: |
//	      operators:
//	        - {name: a}
//
//	script: |
//	  splc place -seed 1 graph.yaml
//
//	outputs:
//	  - name: stdout
//	    data: |
//	      partition 0 bucket 0 host -
//	        a unset
//
// Each input and output has a name.  For inputs, a file (source)
// or inline data (data) may be specified.
// If no data is specified, then a file of the same name as the
// name field is looked for in the same directory as the yaml file.
// The source spec is a file path relative to the directory of the
// yaml file.  For outputs, expected output is defined in the same
// fashion as the inputs though you can also specify a "regexp" string
// instead of expected data.  If an output is named "stdout" or "stderr"
// then the actual output is taken from the stdout or stderr of the
// the shell script.
//
// Ztest YAML files for a package should reside in a subdirectory named
// testdata/ztest, and a test file of the package should contain a Go test
// named TestZTest that calls Run.
//
//	func TestZTest(t *testing.T) { ztest.Run(t, "testdata/ztest") }
//
// If the ZTEST_PATH environment variable is unset or empty, Run runs the
// in-process tests and skips the script tests.  Otherwise, Run runs only
// the script tests, using the splc executable in the directories
// specified by ZTEST_PATH.
//
// Tests of either style can be skipped by setting the skip field to a non-empty
// string.  A message containing the string will be written to the test log.
package ztest

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/brimdata/splc/compiler"
	"github.com/brimdata/splc/compiler/expr"
	"github.com/brimdata/splc/compiler/placement"
	"github.com/brimdata/splc/compiler/srcfiles"
	"github.com/goccy/go-yaml"
	yamlparser "github.com/goccy/go-yaml/parser"
	"github.com/pmezard/go-difflib/difflib"
)

func ShellPath() string {
	return os.Getenv("ZTEST_PATH")
}

type Bundle struct {
	TestName string
	FileName string
	Test     *ZTest
	Error    error
}

func Load(dirname string) ([]Bundle, error) {
	var bundles []Bundle
	fileinfos, err := os.ReadDir(dirname)
	if err != nil {
		return nil, err
	}
	for _, fi := range fileinfos {
		filename := fi.Name()
		const dotyaml = ".yaml"
		if !strings.HasSuffix(filename, dotyaml) {
			continue
		}
		testname := strings.TrimSuffix(filename, dotyaml)
		filename = filepath.Join(dirname, filename)
		zt, err := FromYAMLFile(filename)
		bundles = append(bundles, Bundle{testname, filename, zt, err})
	}
	return bundles, nil
}

// Run runs the ztests in the directory named dirname.  For each file f.yaml in
// the directory, Run calls FromYAMLFile to load a ztest and then runs it in
// subtest named f.
func Run(t *testing.T, dirname string) {
	shellPath := ShellPath()
	bundles, err := Load(dirname)
	if err != nil {
		t.Fatal(err)
	}
	for _, b := range bundles {
		t.Run(b.TestName, func(t *testing.T) {
			t.Parallel()
			if b.Error != nil {
				t.Fatalf("%s: %s", b.FileName, b.Error)
			}
			b.Test.Run(t, shellPath, b.FileName)
		})
	}
}

type File struct {
	// Name is the name of the file with respect to the directory in which
	// the test script runs.  For inputs, if no data source is specified,
	// then name is also the name of a data file in the directory containing
	// the yaml test file, which is copied to the test script directory.
	// Name can also be stdin (for inputs) or stdout or stderr (for outputs).
	Name string `yaml:"name"`
	// Data is the contents of the file and Source names a file, relative
	// to the yaml file, holding them.
	Data   *string `yaml:"data,omitempty"`
	Source string  `yaml:"source,omitempty"`
	// Re is a regular expression describing the contents of the file,
	// which is only applicable to output files.
	Re string `yaml:"regexp,omitempty"`
}

func (f *File) check() error {
	if f.Data != nil && f.Source != "" {
		return fmt.Errorf("%s: must specify at most one of data or source", f.Name)
	}
	return nil
}

func (f *File) load(dir string) ([]byte, *regexp.Regexp, error) {
	if f.Data != nil {
		return []byte(*f.Data), nil, nil
	}
	if f.Source != "" {
		b, err := os.ReadFile(filepath.Join(dir, f.Source))
		return b, nil, err
	}
	if f.Re != "" {
		re, err := regexp.Compile(f.Re)
		return nil, re, err
	}
	b, err := os.ReadFile(filepath.Join(dir, f.Name))
	if err == nil {
		return b, nil, nil
	}
	if os.IsNotExist(err) {
		err = fmt.Errorf("%s: no data source", f.Name)
	}
	return nil, nil, err
}

// ZTest defines a ztest.
type ZTest struct {
	Skip string `yaml:"skip,omitempty"`
	Tag  string `yaml:"tag,omitempty"`

	// For in-process tests.
	Stage  string `yaml:"stage,omitempty"`
	Schema string `yaml:"schema,omitempty"`
	Seed   uint64 `yaml:"seed,omitempty"`
	// Placement holds the placement settings of a compiler configuration.
	Placement *compiler.PlacementConfig `yaml:"placement,omitempty"`
	Input     string                    `yaml:"input,omitempty"`
	Output    string                    `yaml:"output,omitempty"`
	Error     string                    `yaml:"error,omitempty"`

	// For script-style tests.
	Script  string   `yaml:"script,omitempty"`
	Inputs  []File   `yaml:"inputs,omitempty"`
	Outputs []File   `yaml:"outputs,omitempty"`
	Env     []string `yaml:"env,omitempty"`
}

func (z *ZTest) check() error {
	if z.Script != "" {
		if z.Outputs == nil {
			return errors.New("outputs field missing in a sh test")
		}
		for _, f := range z.Inputs {
			if err := f.check(); err != nil {
				return err
			}
			if f.Re != "" {
				return fmt.Errorf("%s: cannot use regexp in an input", f.Name)
			}
		}
		for _, f := range z.Outputs {
			if err := f.check(); err != nil {
				return err
			}
		}
		return nil
	}
	switch z.Stage {
	case "filter", "subscription", "place":
		return nil
	case "":
		return errors.New("either a stage field or script field must be present")
	}
	return fmt.Errorf("unknown stage %q", z.Stage)
}

// FromYAMLFile loads a ZTest from the YAML file named filename.
func FromYAMLFile(filename string) (*ZTest, error) {
	f, err := yamlparser.ParseFile(filename, 0)
	if err != nil {
		return nil, err
	}
	if len(f.Docs) != 1 {
		return nil, errors.New("file must contain one YAML document")
	}
	var z ZTest
	if err := yaml.NodeToValue(f.Docs[0].Body, &z, yaml.DisallowUnknownField()); err != nil {
		return nil, err
	}
	return &z, nil
}

func (z *ZTest) ShouldSkip(path string) string {
	switch {
	case z.Script != "" && path == "":
		return "script test on in-process run"
	case z.Stage != "" && path != "":
		return "in-process test on script run"
	case z.Skip != "":
		return z.Skip
	case z.Tag != "" && z.Tag != os.Getenv("ZTEST_TAG"):
		return fmt.Sprintf("tag %q does not match ZTEST_TAG=%q", z.Tag, os.Getenv("ZTEST_TAG"))
	}
	return ""
}

func (z *ZTest) RunScript(ctx context.Context, shellPath, testDir, tempDir string) error {
	if err := z.check(); err != nil {
		return fmt.Errorf("bad yaml format: %w", err)
	}
	return runsh(ctx, shellPath, testDir, tempDir, z)
}

func (z *ZTest) RunInternal() error {
	if err := z.check(); err != nil {
		return fmt.Errorf("bad yaml format: %w", err)
	}
	return z.diffInternal(runInternal(z))
}

func (z *ZTest) diffInternal(out string, err error) error {
	var outDiffErr, errDiffErr error
	if z.Output != out {
		outDiffErr = diffErr("output", z.Output, out)
	}
	var errStr string
	if err != nil {
		// Append newline if err doesn't end with one.
		errStr = strings.TrimSuffix(err.Error(), "\n") + "\n"
	}
	if z.Error != errStr {
		errDiffErr = diffErr("error", z.Error, errStr)
	}
	return errors.Join(outDiffErr, errDiffErr)
}

func (z *ZTest) Run(t *testing.T, path, filename string) {
	if msg := z.ShouldSkip(path); msg != "" {
		t.Skip("skipping test:", msg)
	}
	var err error
	if z.Script != "" {
		err = z.RunScript(t.Context(), path, filepath.Dir(filename), t.TempDir())
	} else {
		err = z.RunInternal()
	}
	if err != nil {
		t.Fatalf("%s: %s", filename, err)
	}
}

func diffErr(name, expected, actual string) error {
	if !utf8.ValidString(expected) {
		expected = hex.Dump([]byte(expected))
		actual = hex.Dump([]byte(actual))
	}
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(expected),
		FromFile: "expected",
		B:        difflib.SplitLines(actual),
		ToFile:   "actual",
		Context:  5,
	})
	if err != nil {
		panic("ztest: " + err.Error())
	}
	return fmt.Errorf("expected and actual %s differ:\n%s", name, diff)
}

func runsh(ctx context.Context, path, testDir, tempDir string, zt *ZTest) error {
	var stdin io.Reader
	for _, f := range zt.Inputs {
		b, _, err := f.load(testDir)
		if err != nil {
			return err
		}
		if f.Name == "stdin" {
			stdin = bytes.NewReader(b)
			continue
		}
		if err := os.WriteFile(filepath.Join(tempDir, f.Name), b, 0644); err != nil {
			return err
		}
	}
	stdout, stderr, err := RunShell(ctx, tempDir, path, zt.Script, stdin, zt.Env)
	if err != nil {
		return fmt.Errorf("script failed: %w\n=== stdout ===\n%s=== stderr ===\n%s",
			err, stdout, stderr)
	}
	for _, f := range zt.Outputs {
		var actual string
		switch f.Name {
		case "stdout":
			actual = stdout
		case "stderr":
			actual = stderr
		default:
			b, err := os.ReadFile(filepath.Join(tempDir, f.Name))
			if err != nil {
				return fmt.Errorf("%s: %w", f.Name, err)
			}
			actual = string(b)
		}
		expected, expectedRE, err := f.load(testDir)
		if err != nil {
			return err
		}
		if expected != nil && string(expected) != actual {
			return diffErr(f.Name, string(expected), actual)
		}
		if expectedRE != nil && !expectedRE.MatchString(actual) {
			return fmt.Errorf("%s: regexp %q does not match %q", f.Name, expectedRE, actual)
		}
	}
	return nil
}

// runInternal runs the stage of zt over its input and returns the output.
// A stage that reports errors returns its rendered diagnostics as the
// error.
func runInternal(zt *ZTest) (string, error) {
	conf := compiler.DefaultConfig()
	if zt.Placement != nil {
		conf.Placement = *zt.Placement
	}
	if zt.Seed != 0 {
		conf.Placement.Seed = zt.Seed
	}
	comp, err := compiler.New(conf, nil)
	if err != nil {
		return "", err
	}
	fail := func(err error) (string, error) {
		if comp.Reporter().NumErrors() > 0 {
			return "", errors.New(comp.Reporter().Render())
		}
		return "", err
	}
	switch zt.Stage {
	case "place":
		g, err := placement.Load(strings.NewReader(zt.Input))
		if err != nil {
			return "", err
		}
		plan, err := comp.Place(g, nil)
		if err != nil {
			return fail(err)
		}
		var b strings.Builder
		if err := plan.WriteText(&b); err != nil {
			return "", err
		}
		return b.String(), nil
	default:
		imp := compiler.Import{
			Schema: zt.Schema,
			Loc:    srcfiles.At("input", 1, 1),
		}
		text := strings.TrimSpace(zt.Input)
		if zt.Stage == "subscription" {
			imp.Subscription = text
		} else {
			imp.Filter = text
		}
		out, err := comp.ValidateImport(imp)
		if err != nil {
			return fail(err)
		}
		e := out.Filter
		if zt.Stage == "subscription" {
			e = out.Subscription
		}
		return expr.Format(e) + "\n", nil
	}
}
