package expr

import (
	"errors"
	"fmt"
)

// ErrNotCompileTime is returned by EvalCompileTime for expressions outside
// the compile-time sublanguage.
var ErrNotCompileTime = errors.New("expression is not evaluatable at compile time")

const fnToolkitDirectory = "getToolkitDirectory"

// EvalCompileTime evaluates e in the compile-time sublanguage: string
// literals, string concatenation with +, and getToolkitDirectory(name),
// which is resolved with lookup.
func EvalCompileTime(e Expr, lookup func(toolkit string) (string, bool)) (string, error) {
	c := &compileTimeEval{lookup: lookup}
	s := c.eval(e)
	if c.err != nil {
		return "", c.err
	}
	return s, nil
}

type compileTimeEval struct {
	rejecter
	lookup func(string) (string, bool)
	val    string
}

func (c *compileTimeEval) eval(e Expr) string {
	if c.err != nil {
		return ""
	}
	if e == nil {
		c.err = ErrNotCompileTime
		return ""
	}
	c.val = ""
	Walk(c, e)
	return c.val
}

func (c *compileTimeEval) VisitLiteral(e *LiteralExpr) bool {
	v, ok := e.Value.PrimitiveValue()
	if !ok || !v.IsString() {
		return c.reject(e)
	}
	c.val = v.Str()
	return false
}

func (c *compileTimeEval) VisitBinary(e *BinaryExpr) bool {
	if e.Op != OpPlus {
		return c.reject(e)
	}
	lhs := c.eval(e.LHS)
	rhs := c.eval(e.RHS)
	c.val = lhs + rhs
	return false
}

func (c *compileTimeEval) VisitCall(e *CallExpr) bool {
	if e.Fn == nil || e.Fn.Name != fnToolkitDirectory || len(e.Args) != 1 {
		return c.reject(e)
	}
	name := c.eval(e.Args[0])
	if c.err != nil {
		return false
	}
	dir, ok := "", false
	if c.lookup != nil {
		dir, ok = c.lookup(name)
	}
	if !ok {
		c.err = fmt.Errorf("%w: unknown toolkit %q", ErrNotCompileTime, name)
		return false
	}
	c.val = dir
	return false
}

// rejecter fails on every node.
type rejecter struct {
	err error
}

func (r *rejecter) reject(e Expr) bool {
	if r.err == nil {
		r.err = fmt.Errorf("%w: %s", ErrNotCompileTime, Format(e))
	}
	return false
}

func (r *rejecter) VisitAttribute(e *AttributeExpr) bool               { return r.reject(e) }
func (r *rejecter) VisitBinary(e *BinaryExpr) bool                     { return r.reject(e) }
func (r *rejecter) VisitCall(e *CallExpr) bool                         { return r.reject(e) }
func (r *rejecter) VisitCast(e *CastExpr) bool                         { return r.reject(e) }
func (r *rejecter) VisitConditional(e *ConditionalExpr) bool           { return r.reject(e) }
func (r *rejecter) VisitCustomLiteral(e *CustomLiteralExpr) bool       { return r.reject(e) }
func (r *rejecter) VisitEnum(e *EnumExpr) bool                         { return r.reject(e) }
func (r *rejecter) VisitIsPresent(e *IsPresentExpr) bool               { return r.reject(e) }
func (r *rejecter) VisitLiteral(e *LiteralExpr) bool                   { return r.reject(e) }
func (r *rejecter) VisitLiteralSymbol(e *LiteralSymbolExpr) bool       { return r.reject(e) }
func (r *rejecter) VisitNary(e *NaryExpr) bool                         { return r.reject(e) }
func (r *rejecter) VisitStreamSymbol(e *StreamSymbolExpr) bool         { return r.reject(e) }
func (r *rejecter) VisitStreamHistory(e *StreamHistorySymbolExpr) bool { return r.reject(e) }
func (r *rejecter) VisitSubscript(e *SubscriptExpr) bool               { return r.reject(e) }
func (r *rejecter) VisitSymbol(e *SymbolExpr) bool                     { return r.reject(e) }
func (r *rejecter) VisitUnary(e *UnaryExpr) bool                       { return r.reject(e) }
func (r *rejecter) VisitUnwrap(e *UnwrapExpr) bool                     { return r.reject(e) }
func (r *rejecter) VisitUnwrapOrElse(e *UnwrapOrElseExpr) bool         { return r.reject(e) }
