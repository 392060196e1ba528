package expr

import "github.com/brimdata/splc/compiler/types"

// Simplify folds constant sub-expressions of e in a single bottom-up pass
// and returns the rewritten tree.  Children of e may be replaced in place.
// Folding is best effort: anything that cannot be evaluated is left as is,
// and evaluation failures are reported through ev without aborting.
func Simplify(e Expr, ev *Evaluator) Expr {
	if e == nil || IsDontSimplify(e) {
		return e
	}
	switch e := e.(type) {
	case *AttributeExpr:
		return simplifyAttribute(e, ev)
	case *BinaryExpr:
		return simplifyBinary(e, ev)
	case *CallExpr:
		return simplifyCall(e, ev)
	case *CastExpr:
		e.Operand = Simplify(e.Operand, ev)
		lit, ok := LiteralValue(e.Operand)
		if !ok {
			return e
		}
		v, err := ev.Cast(e.Type, lit)
		if err != nil {
			ev.report(e, err)
			return e
		}
		return NewLiteral(e.Loc, v)
	case *ConditionalExpr:
		e.Cond = Simplify(e.Cond, ev)
		if v, ok := PrimitiveOf(e.Cond); ok && v.Meta() == types.Boolean {
			if v.Bool() {
				return Simplify(e.Then, ev)
			}
			return Simplify(e.Else, ev)
		}
		e.Then = Simplify(e.Then, ev)
		e.Else = Simplify(e.Else, ev)
		return e
	case *IsPresentExpr:
		e.Operand = Simplify(e.Operand, ev)
		if lit, ok := LiteralValue(e.Operand); ok {
			return NewValue(e.Loc, NewBool(lit.Kind != LitNull))
		}
		return e
	case *NaryExpr:
		for k, o := range e.Operands {
			e.Operands[k] = Simplify(o, ev)
		}
		return e
	case *SubscriptExpr:
		return simplifySubscript(e, ev)
	case *UnaryExpr:
		e.Operand = Simplify(e.Operand, ev)
		if e.Form == KindPostfix || e.Op == OpPlusPlus || e.Op == OpMinusMinus {
			return e
		}
		lit, ok := LiteralValue(e.Operand)
		if !ok {
			return e
		}
		v, err := ev.Unary(e.Op, lit)
		if err != nil {
			ev.report(e, err)
			return e
		}
		return NewLiteral(e.Loc, v)
	case *UnwrapExpr:
		e.Operand = Simplify(e.Operand, ev)
		return e
	case *UnwrapOrElseExpr:
		e.LHS = Simplify(e.LHS, ev)
		e.RHS = Simplify(e.RHS, ev)
		if lit, ok := LiteralValue(e.LHS); ok && lit.Kind == LitNull {
			return e.RHS
		}
		return e
	}
	return e
}

func simplifyBinary(e *BinaryExpr, ev *Evaluator) Expr {
	e.LHS = Simplify(e.LHS, ev)
	if e.Op == OpBarBar || e.Op == OpAmpAmp {
		if v, ok := PrimitiveOf(e.LHS); ok && v.Meta() == types.Boolean {
			switch {
			case e.Op == OpBarBar && v.Bool():
				return NewValue(e.Loc, NewBool(true))
			case e.Op == OpAmpAmp && !v.Bool():
				return NewValue(e.Loc, NewBool(false))
			}
			return Simplify(e.RHS, ev)
		}
	}
	e.RHS = Simplify(e.RHS, ev)
	if IsDontSimplify(e.LHS) || IsDontSimplify(e.RHS) || e.Op.IsAssign() {
		return e
	}
	l, lok := LiteralValue(e.LHS)
	r, rok := LiteralValue(e.RHS)
	switch {
	case !lok && !rok:
		return e
	case lok && !rok:
		return leftIdentity(e, l)
	case !lok && rok:
		return rightIdentity(e, r, ev)
	}
	v, err := ev.Binary(e.Op, l, r)
	if err != nil {
		ev.report(e, err)
		return e
	}
	return NewLiteral(e.Loc, v)
}

func isList(e Expr) bool {
	t := TypeOf(e)
	return t != nil && t.Meta == types.List
}

// leftIdentity applies identities with a literal left operand.
func leftIdentity(e *BinaryExpr, l *Literal) Expr {
	v, ok := l.PrimitiveValue()
	if !ok {
		return e
	}
	switch {
	case v.IsIntegral() && !isList(e.RHS):
		if v.IsZero() {
			switch e.Op {
			case OpPlus, OpHat:
				return e.RHS
			case OpAmp, OpLShift, OpRShift:
				if !HasSideEffects(e.RHS) {
					return e.LHS
				}
			}
		} else if v.IsOne() && e.Op == OpStar {
			return e.RHS
		}
	case v.Meta().IsFloat() && v.IsZero() && e.Op == OpPlus:
		return e.RHS
	}
	return e
}

// rightIdentity applies identities with a literal right operand,
// including reassociation of (a op l1) op l2 into a op (l1 op l2).
func rightIdentity(e *BinaryExpr, r *Literal, ev *Evaluator) Expr {
	v, ok := r.PrimitiveValue()
	if !ok {
		return e
	}
	switch {
	case v.IsIntegral() && !isList(e.LHS):
		if v.IsZero() {
			switch e.Op {
			case OpPlus, OpHat, OpLShift, OpRShift:
				return e.LHS
			case OpAmp:
				if !HasSideEffects(e.LHS) {
					return e.RHS
				}
			}
		} else if v.IsOne() && e.Op == OpStar {
			return e.LHS
		}
	case v.Meta().IsFloat() && v.IsZero() && (e.Op == OpPlus || e.Op == OpMinus):
		return e.LHS
	}
	return reassociate(e, v, ev)
}

func reassociate(e *BinaryExpr, rv Value, ev *Evaluator) Expr {
	switch e.Op {
	case OpPlus, OpStar, OpAmp, OpBar, OpHat:
	default:
		return e
	}
	lhs, ok := e.LHS.(*BinaryExpr)
	if !ok || lhs.Op != e.Op || IsDontSimplify(lhs) {
		return e
	}
	lrv, ok := PrimitiveOf(lhs.RHS)
	if !ok || lrv.Type != rv.Type {
		return e
	}
	if m := rv.Meta(); !m.IsIntegral() && !m.IsString() {
		return e
	}
	folded, err := BinaryValue(e.Op, lrv, rv)
	if err != nil {
		ev.report(e, err)
		return e
	}
	return NewBinary(e.Type, e.Loc, e.Op, lhs.LHS, NewValue(LocOf(e.RHS), folded))
}

func simplifyAttribute(e *AttributeExpr, ev *Evaluator) Expr {
	e.LHS = Simplify(e.LHS, ev)
	lit, ok := LiteralValue(e.LHS)
	if !ok || lit.Kind != LitTuple || lit.Type == nil {
		return e
	}
	i, ok := lit.Type.AttrIndex(e.Attr)
	if !ok || i >= len(lit.Elems) {
		return e
	}
	return NewLiteral(e.Loc, lit.Elems[i].Clone())
}

func simplifySubscript(e *SubscriptExpr, ev *Evaluator) Expr {
	e.LHS = Simplify(e.LHS, ev)
	e.Lower = Simplify(e.Lower, ev)
	e.Upper = Simplify(e.Upper, ev)
	lit, ok := LiteralValue(e.LHS)
	if !ok {
		return e
	}
	if e.IsSlice {
		return simplifySlice(e, lit)
	}
	index, ok := LiteralValue(e.Lower)
	if !ok {
		return e
	}
	v, err := ev.Subscript(lit, index)
	if err != nil {
		ev.report(e, err)
		return e
	}
	return NewLiteral(e.Loc, v)
}

func simplifySlice(e *SubscriptExpr, lit *Literal) Expr {
	if lit.Kind != LitList {
		return e
	}
	lo, hi := int64(0), int64(len(lit.Elems))
	if e.Lower != nil {
		v, ok := PrimitiveOf(e.Lower)
		if !ok {
			return e
		}
		if lo, ok = v.AsInt64(); !ok {
			return e
		}
	}
	if e.Upper != nil {
		v, ok := PrimitiveOf(e.Upper)
		if !ok {
			return e
		}
		if hi, ok = v.AsInt64(); !ok {
			return e
		}
	}
	hi = min(hi, int64(len(lit.Elems)))
	lo = max(lo, 0)
	out := NewList(lit.Type)
	for k := lo; k < hi; k++ {
		out.Elems = append(out.Elems, lit.Elems[k].Clone())
	}
	return NewLiteral(e.Loc, out)
}

func simplifyCall(e *CallExpr, ev *Evaluator) Expr {
	args := make([]*Literal, 0, len(e.Args))
	for k, a := range e.Args {
		e.Args[k] = Simplify(a, ev)
		if lit, ok := LiteralValue(e.Args[k]); ok {
			args = append(args, lit)
		}
	}
	if len(args) != len(e.Args) || e.Fn == nil || e.Fn.Intrinsic {
		return e
	}
	v, err := ev.Call(e.Fn, args)
	if err != nil {
		ev.report(e, err)
		return e
	}
	return NewLiteral(e.Loc, v)
}
