package parser

import (
	"slices"
	"strings"

	"github.com/brimdata/splc/compiler/ast"
)

func sliceOf[E any](s any) []E {
	if s == nil {
		return nil
	}
	slice := s.([]any)
	out := make([]E, len(slice))
	for i, el := range slice {
		out[i] = el.(E)
	}
	return out
}

func prepend(first, rest any) []any {
	if rest == nil {
		return []any{first}
	}
	return append([]any{first}, rest.([]any)...)
}

// tailOf picks element i of each sequence matched by a repeated group.
func tailOf(rest any, i int) []any {
	if rest == nil {
		return nil
	}
	var out []any
	for _, p := range rest.([]any) {
		out = append(out, p.([]any)[i])
	}
	return out
}

func loc(c *current) ast.Loc {
	return ast.NewLoc(c.pos.offset, c.pos.offset+len(c.text)-1)
}

func newClauseChain(c *current, kind string, first, rest any) any {
	tail := tailOf(rest, 3)
	if len(tail) == 0 {
		return first
	}
	clauses := sliceOf[ast.Clause](prepend(first, tail))
	if kind == "Or" {
		return &ast.Or{Kind: kind, Clauses: clauses, Loc: loc(c)}
	}
	return &ast.And{Kind: kind, Clauses: clauses, Loc: loc(c)}
}

func newMembership(c *current, lit, sym any) *ast.Predicate {
	s := sym.(*ast.Symbol)
	return &ast.Predicate{
		Kind:    "Predicate",
		Op:      "in",
		Operand: &ast.Arith{Kind: "Arith", Symbol: s, Loc: s.Loc},
		Lit:     lit.(*ast.Literal),
		Loc:     loc(c),
	}
}

func newComparison(c *current, operand, cmp any) *ast.Predicate {
	p := &ast.Predicate{
		Kind:    "Predicate",
		Operand: operand.(*ast.Arith),
		Loc:     loc(c),
	}
	if cmp != nil {
		part := cmp.([]any)
		p.Op = part[1].(string)
		p.Lit = part[3].(*ast.Literal)
	}
	return p
}

// newArith appends steps to a copy of base so that a parenthesized operand
// keeps its own steps ahead of the ones that follow it.
func newArith(c *current, base, steps any) *ast.Arith {
	a := *base.(*ast.Arith)
	a.Steps = slices.Clone(a.Steps)
	if steps != nil {
		for _, s := range steps.([]any) {
			part := s.([]any)
			lit := part[3].(*ast.Literal)
			a.Steps = append(a.Steps, &ast.ArithStep{
				Kind:    "ArithStep",
				Op:      part[1].(string),
				Operand: lit,
				Loc:     lit.Loc,
			})
		}
	}
	return &a
}

func newSymbol(c *current, name, sub any) *ast.Symbol {
	sym := &ast.Symbol{Kind: "Symbol", Name: name.(string), Loc: loc(c)}
	if sub != nil {
		sym.Subscript = sub.([]any)[3].(*ast.Literal)
	}
	return sym
}

func newNumber(c *current) *ast.Literal {
	text := strings.Join(strings.Fields(string(c.text)), "")
	typ := "int"
	if strings.ContainsAny(text, ".eE") {
		typ = "float"
	}
	return &ast.Literal{Kind: "Literal", Type: typ, Text: text, Loc: loc(c)}
}

func newLiteral(c *current, typ string) *ast.Literal {
	return &ast.Literal{Kind: "Literal", Type: typ, Text: string(c.text), Loc: loc(c)}
}

func newVersion(c *current, qualifier any, nums ...any) *ast.Version {
	v := &ast.Version{Kind: "Version", Loc: loc(c)}
	for _, n := range nums {
		v.Nums = append(v.Nums, n.(string))
	}
	if qualifier != nil {
		v.Qualifier = qualifier.(string)
	}
	return v
}

func newRange(c *current, lb, low, high, rb any) *ast.Range {
	return &ast.Range{
		Kind:          "Range",
		Low:           low.(*ast.Version),
		High:          high.(*ast.Version),
		LowInclusive:  string(lb.([]byte)) == "[",
		HighInclusive: string(rb.([]byte)) == "]",
		Loc:           loc(c),
	}
}
