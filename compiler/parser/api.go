// Package parser parses filter predicates, SPL type spellings and toolkit
// versions into the syntax trees of package ast.  The parser is generated
// by pigeon from parser.peg.
package parser

//go:generate go tool pigeon -o parser.go parser.peg
//go:generate go tool goimports -w parser.go

import (
	"fmt"

	"github.com/brimdata/splc/compiler/ast"
)

// Error is a syntax error at a byte offset of the parsed text.
type Error struct {
	Offset int
	Msg    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("offset %d: %s", e.Offset, e.Msg)
}

// ParseFilter parses the text of a filter or subscription predicate.
func ParseFilter(text string) (ast.Clause, error) {
	v, err := parse("Filter", text)
	if err != nil {
		return nil, err
	}
	return v.(ast.Clause), nil
}

// ParseType parses a single type spelling such as "map<rstring,int32>".
func ParseType(text string) (ast.Type, error) {
	v, err := parse("TypeSpec", text)
	if err != nil {
		return nil, err
	}
	return v.(ast.Type), nil
}

// ParseSchema parses a comma-separated attribute list such as
// "int32 a, list<rstring> b".
func ParseSchema(text string) ([]*ast.Attr, error) {
	v, err := parse("Schema", text)
	if err != nil {
		return nil, err
	}
	return sliceOf[*ast.Attr](v), nil
}

func ParseVersion(text string) (*ast.Version, error) {
	v, err := parse("VersionSpec", text)
	if err != nil {
		return nil, err
	}
	return v.(*ast.Version), nil
}

func ParseRange(text string) (*ast.Range, error) {
	v, err := parse("RangeSpec", text)
	if err != nil {
		return nil, err
	}
	return v.(*ast.Range), nil
}

func parse(entrypoint, text string) (any, error) {
	v, err := Parse("", []byte(text), Entrypoint(entrypoint), Recover(false))
	if err != nil {
		return nil, convertParseErr(err)
	}
	return v, nil
}

// convertParseErr reduces the parser's error list to its first error.
func convertParseErr(err error) error {
	errs, ok := err.(errList)
	if !ok || len(errs) == 0 {
		return err
	}
	pe, ok := errs[0].(*parserError)
	if !ok {
		return errs[0]
	}
	return &Error{Offset: pe.pos.offset, Msg: pe.Inner.Error()}
}
