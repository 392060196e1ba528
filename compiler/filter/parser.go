package filter

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/brimdata/splc/compiler/ast"
	"github.com/brimdata/splc/compiler/parser"
)

// ParseError locates a syntax error in predicate text.
type ParseError struct {
	Pos int
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("column %d: %s", e.Pos+1, e.Msg)
}

// Parse parses predicate text into a clause tree.  Integer literals are
// int64 (uint64 when too large) and floating point literals are float64;
// predicates are retyped against a schema by Check.
func Parse(text string) (Clause, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &ParseError{Pos: 0, Msg: "empty predicate"}
	}
	n, err := parser.ParseFilter(text)
	if err != nil {
		var perr *parser.Error
		if errors.As(err, &perr) {
			return nil, &ParseError{Pos: perr.Offset, Msg: perr.Msg}
		}
		return nil, err
	}
	return clauseOf(n)
}

func clauseOf(n ast.Clause) (Clause, error) {
	switch n := n.(type) {
	case *ast.Or:
		clauses, err := clausesOf(n.Clauses)
		if err != nil {
			return nil, err
		}
		return &Or{Clauses: clauses}, nil
	case *ast.And:
		clauses, err := clausesOf(n.Clauses)
		if err != nil {
			return nil, err
		}
		return &And{Clauses: clauses}, nil
	case *ast.Not:
		c, err := clauseOf(n.Clause)
		if err != nil {
			return nil, err
		}
		return &Not{Clause: c}, nil
	case *ast.Predicate:
		return predicateOf(n)
	}
	return nil, fmt.Errorf("unknown clause node %T", n)
}

func clausesOf(nodes []ast.Clause) ([]Clause, error) {
	out := make([]Clause, 0, len(nodes))
	for _, n := range nodes {
		c, err := clauseOf(n)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func predicateOf(n *ast.Predicate) (*Predicate, error) {
	operand := n.Operand
	pred := &Predicate{
		Symbol:     operand.Symbol.Name,
		Complement: operand.Complement,
		Pos:        operand.Pos(),
	}
	if sub := operand.Symbol.Subscript; sub != nil {
		lit, err := literalOf(sub)
		if err != nil {
			return nil, err
		}
		if !lit.Kind.IsSigned() {
			return nil, &ParseError{Pos: sub.Pos(), Msg: "subscript must be an int64 integer"}
		}
		pred.HasSubscript = true
		pred.Subscript = lit.Int()
	}
	for _, step := range operand.Steps {
		lit, err := literalOf(step.Operand)
		if err != nil {
			return nil, err
		}
		op, ok := arithOpOf(step.Op)
		if !ok {
			return nil, &ParseError{Pos: step.Pos(), Msg: fmt.Sprintf("unknown operator %q", step.Op)}
		}
		pred.Arith = append(pred.Arith, ArithStep{Op: op, Lit: lit})
	}
	if n.Lit == nil {
		return pred, nil
	}
	op, ok := cmpOpOf(n.Op)
	if !ok {
		return nil, &ParseError{Pos: n.Pos(), Msg: fmt.Sprintf("unknown comparison %q", n.Op)}
	}
	lit, err := literalOf(n.Lit)
	if err != nil {
		return nil, err
	}
	pred.Op = op
	pred.Lit = lit
	if op == In {
		pred.Pos = n.Pos()
	}
	return pred, nil
}

func arithOpOf(s string) (ArithOp, bool) {
	for op, spelling := range arithSpellings {
		if spelling == s {
			return ArithOp(op), true
		}
	}
	return 0, false
}

func cmpOpOf(s string) (CmpOp, bool) {
	for op, spelling := range cmpSpellings {
		if op != int(None) && spelling == s {
			return CmpOp(op), true
		}
	}
	return None, false
}

func literalOf(n *ast.Literal) (Literal, error) {
	errorf := func(format string, args ...any) error {
		return &ParseError{Pos: n.Pos(), Msg: fmt.Sprintf(format, args...)}
	}
	switch n.Type {
	case "int":
		digits, neg := strings.CutPrefix(n.Text, "-")
		u, err := strconv.ParseUint(digits, 10, 64)
		if err != nil {
			return Literal{}, errorf("integer %s out of range", n.Text)
		}
		switch {
		case neg && u <= 1<<63:
			return NewInt(Int64, int64(-u)), nil
		case neg:
			return Literal{}, errorf("integer %s out of range", n.Text)
		case u > math.MaxInt64:
			return NewUint(UInt64, u), nil
		}
		return NewInt(Int64, int64(u)), nil
	case "float":
		f, err := strconv.ParseFloat(n.Text, 64)
		if err != nil {
			return Literal{}, errorf("malformed number %s", n.Text)
		}
		return NewFloat(Float64, f), nil
	case "string":
		s, err := strconv.Unquote(n.Text)
		if err != nil {
			return Literal{}, errorf("malformed string %s", n.Text)
		}
		return NewString(s), nil
	case "bool":
		return NewBool(n.Text == "true"), nil
	}
	return Literal{}, errorf("unknown literal type %q", n.Type)
}
