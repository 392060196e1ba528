package filter

import (
	"github.com/brimdata/splc/compiler/expr"
	"github.com/brimdata/splc/compiler/srcfiles"
	"github.com/brimdata/splc/compiler/types"
)

var arithOps = [...]expr.Op{
	Mod:    expr.OpMod,
	Mul:    expr.OpStar,
	Div:    expr.OpSlash,
	Add:    expr.OpPlus,
	Sub:    expr.OpMinus,
	BitAnd: expr.OpAmp,
	BitOr:  expr.OpBar,
	BitXor: expr.OpHat,
	Lsh:    expr.OpLShift,
	Rsh:    expr.OpRShift,
}

var cmpOps = [...]expr.Op{
	Eq:  expr.OpEq,
	Neq: expr.OpNeq,
	Lt:  expr.OpLess,
	Leq: expr.OpLeq,
	Gt:  expr.OpGreater,
	Geq: expr.OpGeq,
	In:  expr.OpIn,
}

// ToExpr converts a predicate tree to the expression it denotes.
// Attributes are typed from schema, which may be nil; unknown attributes
// get the invalid type.  Node locations are offset from loc by the
// position of their predicate in the source text.
func ToExpr(c Clause, schema *types.Type, loc srcfiles.Location) expr.Expr {
	cv := &converter{schema: schema, loc: loc}
	return cv.clause(c)
}

type converter struct {
	schema *types.Type
	loc    srcfiles.Location
}

func (c *converter) at(pos int) srcfiles.Location {
	loc := c.loc
	if loc.IsValid() {
		loc.Column += pos
	}
	return loc
}

func (c *converter) clause(cl Clause) expr.Expr {
	switch cl := cl.(type) {
	case *Predicate:
		return c.predicate(cl)
	case *And:
		return c.fold(expr.OpAmpAmp, cl.Clauses)
	case *Or:
		return c.fold(expr.OpBarBar, cl.Clauses)
	case *Not:
		operand := c.clause(cl.Clause)
		return expr.NewPrefix(types.TypeBool, expr.LocOf(operand), expr.OpBang, operand)
	}
	panic("filter: unknown clause type")
}

func (c *converter) fold(op expr.Op, clauses []Clause) expr.Expr {
	e := c.clause(clauses[0])
	for _, cl := range clauses[1:] {
		e = expr.NewBinary(types.TypeBool, expr.LocOf(e), op, e, c.clause(cl))
	}
	return e
}

func (c *converter) attrType(name string) *types.Type {
	if c.schema != nil {
		if k, ok := c.schema.AttrIndex(name); ok {
			return c.schema.Attrs[k].Type
		}
	}
	return types.TypeInvalid
}

func (c *converter) predicate(p *Predicate) expr.Expr {
	loc := c.at(p.Pos)
	t := c.attrType(p.Symbol)
	var operand expr.Expr = expr.NewSymbol(t, loc, p.Symbol, expr.SymAttr)
	if p.HasSubscript {
		elem := types.TypeInvalid
		if t.Elem != nil {
			elem = t.Elem
		}
		index := expr.NewValue(loc, expr.NewInt(types.TypeInt64, p.Subscript))
		operand = expr.NewSubscript(elem, loc, operand, index)
		t = elem
	}
	if p.Complement {
		operand = expr.NewPrefix(t, loc, expr.OpTilde, operand)
	}
	for _, step := range p.Arith {
		operand = expr.NewBinary(t, loc, arithOps[step.Op], operand, c.literal(step.Lit, loc))
	}
	switch p.Op {
	case None:
		return expr.NewBinary(types.TypeBool, loc, expr.OpEq, operand, expr.NewValue(loc, expr.NewBool(true)))
	case In:
		return expr.NewBinary(types.TypeBool, loc, expr.OpIn, c.literal(p.Lit, loc), operand)
	}
	return expr.NewBinary(types.TypeBool, loc, cmpOps[p.Op], operand, c.literal(p.Lit, loc))
}

func (c *converter) literal(l Literal, loc srcfiles.Location) expr.Expr {
	return expr.NewValue(loc, Value(l))
}

// Value returns l as an expression value.
func Value(l Literal) expr.Value {
	t := types.Default.Primitive(l.Kind.Meta())
	switch {
	case l.Kind.IsSigned():
		return expr.NewInt(t, l.Int())
	case l.Kind.IsUnsigned():
		return expr.NewUint(t, l.Uint())
	case l.Kind.IsFloat():
		return expr.NewFloat(t, l.Float())
	case l.Kind == Boolean:
		return expr.NewBool(l.Bool())
	}
	return expr.NewString(t, l.Str())
}
