package filter

import (
	"fmt"
	"strings"
)

// ArithOp is an operator of the arithmetic chain applied to a predicate
// symbol before comparison.
type ArithOp int

const (
	Mod ArithOp = iota
	Mul
	Div
	Add
	Sub
	BitAnd
	BitOr
	BitXor
	Lsh
	Rsh
)

var arithSpellings = [...]string{
	Mod:    "%",
	Mul:    "*",
	Div:    "/",
	Add:    "+",
	Sub:    "-",
	BitAnd: "&",
	BitOr:  "|",
	BitXor: "^",
	Lsh:    "<<",
	Rsh:    ">>",
}

func (o ArithOp) String() string { return arithSpellings[o] }

// CmpOp is the comparison of a predicate.  None means the predicate is a
// bare boolean symbol.
type CmpOp int

const (
	None CmpOp = iota
	Eq
	Neq
	Lt
	Leq
	Gt
	Geq
	In
)

var cmpSpellings = [...]string{
	None: "",
	Eq:   "==",
	Neq:  "!=",
	Lt:   "<",
	Leq:  "<=",
	Gt:   ">",
	Geq:  ">=",
	In:   "in",
}

func (o CmpOp) String() string { return cmpSpellings[o] }

type ArithStep struct {
	Op  ArithOp
	Lit Literal
}

// Clause is a node of a parsed filter: a *Predicate, *And, *Or or *Not.
type Clause interface {
	String() string
	clause()
}

// Predicate compares a possibly subscripted and arithmetically modified
// attribute with a literal.  For In, the literal is the left operand and
// the attribute is a list searched for it.
type Predicate struct {
	Symbol       string
	HasSubscript bool
	Subscript    int64
	Arith        []ArithStep
	// Complement applies ~ to the symbol ahead of the arithmetic chain.
	Complement bool
	Op         CmpOp
	Lit        Literal
	// Pos is the byte offset of the predicate in the source text.
	Pos int
}

type And struct {
	Clauses []Clause
}

type Or struct {
	Clauses []Clause
}

type Not struct {
	Clause Clause
}

func (*Predicate) clause() {}
func (*And) clause()       {}
func (*Or) clause()        {}
func (*Not) clause()       {}

func (p *Predicate) operand() string {
	var b strings.Builder
	b.WriteString(p.Symbol)
	if p.HasSubscript {
		fmt.Fprintf(&b, "[%d]", p.Subscript)
	}
	s := b.String()
	if p.Complement {
		s = "~" + s
	}
	for _, step := range p.Arith {
		s = fmt.Sprintf("(%s %s %s)", s, step.Op, step.Lit)
	}
	return s
}

func (p *Predicate) String() string {
	switch p.Op {
	case None:
		return p.operand()
	case In:
		return fmt.Sprintf("%s in %s", p.Lit, p.operand())
	}
	return fmt.Sprintf("%s %s %s", p.operand(), p.Op, p.Lit)
}

func (a *And) String() string { return join(a.Clauses, " && ") }
func (o *Or) String() string  { return join(o.Clauses, " || ") }

func (n *Not) String() string {
	if p, ok := n.Clause.(*Predicate); ok && p.Op == None {
		return "!" + p.String()
	}
	return "!(" + n.Clause.String() + ")"
}

func join(clauses []Clause, sep string) string {
	parts := make([]string, 0, len(clauses))
	for _, c := range clauses {
		parts = append(parts, "("+c.String()+")")
	}
	return strings.Join(parts, sep)
}

// Equal reports whether two clauses are structurally equal.  A
// single-clause And or Or equals its only clause.
func Equal(a, b Clause) bool {
	a, b = unwrap(a), unwrap(b)
	switch a := a.(type) {
	case *Predicate:
		b, ok := b.(*Predicate)
		return ok && a.equal(b)
	case *And:
		b, ok := b.(*And)
		return ok && equalClauses(a.Clauses, b.Clauses)
	case *Or:
		b, ok := b.(*Or)
		return ok && equalClauses(a.Clauses, b.Clauses)
	case *Not:
		b, ok := b.(*Not)
		return ok && Equal(a.Clause, b.Clause)
	}
	return a == nil && b == nil
}

func unwrap(c Clause) Clause {
	for {
		switch v := c.(type) {
		case *And:
			if len(v.Clauses) != 1 {
				return c
			}
			c = v.Clauses[0]
		case *Or:
			if len(v.Clauses) != 1 {
				return c
			}
			c = v.Clauses[0]
		default:
			return c
		}
	}
}

func equalClauses(a, b []Clause) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if !Equal(a[k], b[k]) {
			return false
		}
	}
	return true
}

func (p *Predicate) equal(o *Predicate) bool {
	if p.Symbol != o.Symbol || p.HasSubscript != o.HasSubscript || p.Complement != o.Complement ||
		p.Op != o.Op || len(p.Arith) != len(o.Arith) {
		return false
	}
	if p.HasSubscript && p.Subscript != o.Subscript {
		return false
	}
	if p.Op != None && !p.Lit.Equal(o.Lit) {
		return false
	}
	for k, step := range p.Arith {
		if step.Op != o.Arith[k].Op || !step.Lit.Equal(o.Arith[k].Lit) {
			return false
		}
	}
	return true
}

// Predicates calls f for every predicate of c in source order.
func Predicates(c Clause, f func(*Predicate)) {
	switch c := c.(type) {
	case *Predicate:
		f(c)
	case *And:
		for _, sub := range c.Clauses {
			Predicates(sub, f)
		}
	case *Or:
		for _, sub := range c.Clauses {
			Predicates(sub, f)
		}
	case *Not:
		Predicates(c.Clause, f)
	}
}
