package toolkit

import (
	"encoding/xml"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

//go:generate go tool mockgen -destination=mock/mock_parser.go -package=mock . ModelParser

var ErrMalformed = errors.New("malformed model")

// MalformedError is returned when a descriptor cannot be parsed.
type MalformedError struct {
	Path string
	Err  error
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Err)
}

func (e *MalformedError) Unwrap() error        { return e.Err }
func (e *MalformedError) Is(target error) bool { return target == ErrMalformed }

// ToolkitModel is the contents of a toolkit.xml descriptor.
type ToolkitModel struct {
	XMLName        xml.Name      `xml:"toolkitModel"`
	ProductVersion string        `xml:"productVersion,attr"`
	Toolkits       []ToolkitElem `xml:"toolkit"`
}

type ToolkitElem struct {
	Name                   string           `xml:"name,attr"`
	Version                string           `xml:"version,attr"`
	RequiredProductVersion string           `xml:"requiredProductVersion,attr"`
	Description            string           `xml:"description"`
	URIs                   []URI            `xml:"uriTable>uri"`
	Namespaces             []NamespaceElem  `xml:"namespace"`
	Dependencies           []DependencyElem `xml:"dependency"`
}

type URI struct {
	Index int    `xml:"index,attr"`
	Value string `xml:"value,attr"`
}

type NamespaceElem struct {
	Name         string             `xml:"name,attr"`
	PrimitiveOps []PrimitiveOpElem  `xml:"primitiveOp"`
	CompositeOps []SymbolElem       `xml:"compositeOp"`
	Types        []SymbolElem       `xml:"type"`
	Enums        []EnumLiteralsElem `xml:"enumLiterals"`
	Functions    []FunctionElem     `xml:"function"`
}

type PrimitiveOpElem struct {
	Name          string `xml:"name,attr"`
	ModelURIIndex int    `xml:"modelUriIndex,attr"`
}

type SymbolElem struct {
	Name     string `xml:"name,attr"`
	URIIndex int    `xml:"uriIndex,attr"`
	Line     int    `xml:"line,attr"`
	Column   int    `xml:"column,attr"`
}

type EnumLiteralsElem struct {
	URIIndex int      `xml:"uriIndex,attr"`
	Line     int      `xml:"line,attr"`
	Column   int      `xml:"column,attr"`
	Enums    []string `xml:"enum"`
}

// FunctionElem declares a function.  Native functions carry the index
// of their function model instead of a source file.
type FunctionElem struct {
	Name          string `xml:"name,attr"`
	Native        bool   `xml:"native,attr"`
	URIIndex      int    `xml:"uriIndex,attr"`
	ModelURIIndex int    `xml:"modelUriIndex,attr"`
	Line          int    `xml:"line,attr"`
	Column        int    `xml:"column,attr"`
}

type DependencyElem struct {
	Name    string `xml:"name"`
	Version string `xml:"version"`
}

// InfoModel is the contents of an info.xml descriptor.
type InfoModel struct {
	XMLName  xml.Name `xml:"toolkitInfoModel"`
	Identity struct {
		Name                   string `xml:"name"`
		Description            string `xml:"description"`
		Version                string `xml:"version"`
		RequiredProductVersion string `xml:"requiredProductVersion"`
	} `xml:"identity"`
	Dependencies []DependencyElem `xml:"dependencies>toolkit"`
}

// ListModel is a toolkit list file naming toolkit directories and
// further list files.  Relative paths are relative to the list file.
type ListModel struct {
	XMLName xml.Name    `xml:"toolkitList"`
	Entries []ListEntry `xml:"toolkit"`
}

type ListEntry struct {
	Directory string `xml:"directory,attr"`
	ListFile  string `xml:"listFile,attr"`
}

// OperatorModel describes a primitive operator.
type OperatorModel struct {
	XMLName     xml.Name        `xml:"operatorModel"`
	Kind        string          `xml:"context>kind"`
	Description string          `xml:"context>description"`
	Parameters  []ParameterElem `xml:"parameters>parameter"`
	InputPorts  []PortElem      `xml:"inputPorts>inputPortSet"`
	OutputPorts []PortElem      `xml:"outputPorts>outputPortSet"`
}

type ParameterElem struct {
	Name        string `xml:"name"`
	Optional    bool   `xml:"optional"`
	Type        string `xml:"type"`
	Cardinality int    `xml:"cardinality"`
}

type PortElem struct {
	Optional    bool `xml:"optional"`
	Cardinality int  `xml:"cardinality"`
}

// FunctionModel describes a set of native functions.
type FunctionModel struct {
	XMLName    xml.Name `xml:"functionModel"`
	Prototypes []string `xml:"functionSet>functions>function>prototype"`
}

// ModelParser reads descriptors from disk.
type ModelParser interface {
	Toolkit(path string) (*ToolkitModel, error)
	Info(path string) (*InfoModel, error)
	List(path string) (*ListModel, error)
	Operator(path string) (*OperatorModel, error)
	Function(path string) (*FunctionModel, error)
}

// XMLParser is the ModelParser reading XML files.
type XMLParser struct{}

func (XMLParser) Toolkit(path string) (*ToolkitModel, error)   { return decode[ToolkitModel](path) }
func (XMLParser) Info(path string) (*InfoModel, error)         { return decode[InfoModel](path) }
func (XMLParser) List(path string) (*ListModel, error)         { return decode[ListModel](path) }
func (XMLParser) Operator(path string) (*OperatorModel, error) { return decode[OperatorModel](path) }
func (XMLParser) Function(path string) (*FunctionModel, error) { return decode[FunctionModel](path) }

func decode[T any](path string) (*T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var m T
	if err := xml.NewDecoder(f).Decode(&m); err != nil {
		return nil, &MalformedError{Path: path, Err: err}
	}
	return &m, nil
}

// resolveURI maps a uriTable entry to a path under dir.
func resolveURI(dir string, uris []URI, index int) (string, bool) {
	for _, u := range uris {
		if u.Index == index {
			p := strings.TrimPrefix(u.Value, "file://")
			if decoded, err := url.PathUnescape(p); err == nil {
				p = decoded
			}
			return filepath.Join(dir, p), true
		}
	}
	return "", false
}
