package expr

// Visitor has one handler per node type.  A handler returns true when
// Walk should go on to visit the node's children; handlers that recurse
// by themselves return false.  The visitor value is the traversal's
// mutable context.
type Visitor interface {
	VisitAttribute(*AttributeExpr) bool
	VisitBinary(*BinaryExpr) bool
	VisitCall(*CallExpr) bool
	VisitCast(*CastExpr) bool
	VisitConditional(*ConditionalExpr) bool
	VisitCustomLiteral(*CustomLiteralExpr) bool
	VisitEnum(*EnumExpr) bool
	VisitIsPresent(*IsPresentExpr) bool
	VisitLiteral(*LiteralExpr) bool
	VisitLiteralSymbol(*LiteralSymbolExpr) bool
	VisitNary(*NaryExpr) bool
	VisitStreamSymbol(*StreamSymbolExpr) bool
	VisitStreamHistory(*StreamHistorySymbolExpr) bool
	VisitSubscript(*SubscriptExpr) bool
	VisitSymbol(*SymbolExpr) bool
	VisitUnary(*UnaryExpr) bool
	VisitUnwrap(*UnwrapExpr) bool
	VisitUnwrapOrElse(*UnwrapOrElseExpr) bool
}

// DefaultVisitor visits every child.  Embed it to override a subset of
// the handlers.
type DefaultVisitor struct{}

func (DefaultVisitor) VisitAttribute(*AttributeExpr) bool               { return true }
func (DefaultVisitor) VisitBinary(*BinaryExpr) bool                     { return true }
func (DefaultVisitor) VisitCall(*CallExpr) bool                         { return true }
func (DefaultVisitor) VisitCast(*CastExpr) bool                         { return true }
func (DefaultVisitor) VisitConditional(*ConditionalExpr) bool           { return true }
func (DefaultVisitor) VisitCustomLiteral(*CustomLiteralExpr) bool       { return true }
func (DefaultVisitor) VisitEnum(*EnumExpr) bool                         { return true }
func (DefaultVisitor) VisitIsPresent(*IsPresentExpr) bool               { return true }
func (DefaultVisitor) VisitLiteral(*LiteralExpr) bool                   { return true }
func (DefaultVisitor) VisitLiteralSymbol(*LiteralSymbolExpr) bool       { return true }
func (DefaultVisitor) VisitNary(*NaryExpr) bool                         { return true }
func (DefaultVisitor) VisitStreamSymbol(*StreamSymbolExpr) bool         { return true }
func (DefaultVisitor) VisitStreamHistory(*StreamHistorySymbolExpr) bool { return true }
func (DefaultVisitor) VisitSubscript(*SubscriptExpr) bool               { return true }
func (DefaultVisitor) VisitSymbol(*SymbolExpr) bool                     { return true }
func (DefaultVisitor) VisitUnary(*UnaryExpr) bool                       { return true }
func (DefaultVisitor) VisitUnwrap(*UnwrapExpr) bool                     { return true }
func (DefaultVisitor) VisitUnwrapOrElse(*UnwrapOrElseExpr) bool         { return true }

// Walk traverses e depth first, dispatching each node to v.
func Walk(v Visitor, e Expr) {
	if e == nil {
		return
	}
	switch e := e.(type) {
	case *AttributeExpr:
		if v.VisitAttribute(e) {
			Walk(v, e.LHS)
		}
	case *BinaryExpr:
		if v.VisitBinary(e) {
			Walk(v, e.LHS)
			Walk(v, e.RHS)
		}
	case *CallExpr:
		if v.VisitCall(e) {
			walkList(v, e.Args)
		}
	case *CastExpr:
		if v.VisitCast(e) {
			Walk(v, e.Operand)
		}
	case *ConditionalExpr:
		if v.VisitConditional(e) {
			Walk(v, e.Cond)
			Walk(v, e.Then)
			Walk(v, e.Else)
		}
	case *CustomLiteralExpr:
		v.VisitCustomLiteral(e)
	case *EnumExpr:
		v.VisitEnum(e)
	case *IsPresentExpr:
		if v.VisitIsPresent(e) {
			Walk(v, e.Operand)
		}
	case *LiteralExpr:
		if v.VisitLiteral(e) {
			walkLiteral(v, e.Value)
		}
	case *LiteralSymbolExpr:
		v.VisitLiteralSymbol(e)
	case *NaryExpr:
		if v.VisitNary(e) {
			walkList(v, e.Operands)
		}
	case *StreamSymbolExpr:
		v.VisitStreamSymbol(e)
	case *StreamHistorySymbolExpr:
		v.VisitStreamHistory(e)
	case *SubscriptExpr:
		if v.VisitSubscript(e) {
			Walk(v, e.LHS)
			Walk(v, e.Lower)
			Walk(v, e.Upper)
		}
	case *SymbolExpr:
		v.VisitSymbol(e)
	case *UnaryExpr:
		if v.VisitUnary(e) {
			Walk(v, e.Operand)
		}
	case *UnwrapExpr:
		if v.VisitUnwrap(e) {
			Walk(v, e.Operand)
		}
	case *UnwrapOrElseExpr:
		if v.VisitUnwrapOrElse(e) {
			Walk(v, e.LHS)
			Walk(v, e.RHS)
		}
	}
}

func walkList(v Visitor, exprs []Expr) {
	for _, e := range exprs {
		Walk(v, e)
	}
}

// walkLiteral visits expressions wrapped inside composite literals.
func walkLiteral(v Visitor, l *Literal) {
	if l == nil {
		return
	}
	if l.Kind == LitExpn {
		Walk(v, l.Expr)
		return
	}
	for _, e := range l.Elems {
		walkLiteral(v, e)
	}
	for _, e := range l.Entries {
		walkLiteral(v, e.Key)
		walkLiteral(v, e.Value)
	}
}

type inspector func(Expr) bool

// Inspect calls f for every node of e in depth-first order.  Children of
// a node are skipped when f returns false.
func Inspect(e Expr, f func(Expr) bool) {
	Walk(inspector(f), e)
}

func (f inspector) VisitAttribute(e *AttributeExpr) bool               { return f(e) }
func (f inspector) VisitBinary(e *BinaryExpr) bool                     { return f(e) }
func (f inspector) VisitCall(e *CallExpr) bool                         { return f(e) }
func (f inspector) VisitCast(e *CastExpr) bool                         { return f(e) }
func (f inspector) VisitConditional(e *ConditionalExpr) bool           { return f(e) }
func (f inspector) VisitCustomLiteral(e *CustomLiteralExpr) bool       { return f(e) }
func (f inspector) VisitEnum(e *EnumExpr) bool                         { return f(e) }
func (f inspector) VisitIsPresent(e *IsPresentExpr) bool               { return f(e) }
func (f inspector) VisitLiteral(e *LiteralExpr) bool                   { return f(e) }
func (f inspector) VisitLiteralSymbol(e *LiteralSymbolExpr) bool       { return f(e) }
func (f inspector) VisitNary(e *NaryExpr) bool                         { return f(e) }
func (f inspector) VisitStreamSymbol(e *StreamSymbolExpr) bool         { return f(e) }
func (f inspector) VisitStreamHistory(e *StreamHistorySymbolExpr) bool { return f(e) }
func (f inspector) VisitSubscript(e *SubscriptExpr) bool               { return f(e) }
func (f inspector) VisitSymbol(e *SymbolExpr) bool                     { return f(e) }
func (f inspector) VisitUnary(e *UnaryExpr) bool                       { return f(e) }
func (f inspector) VisitUnwrap(e *UnwrapExpr) bool                     { return f(e) }
func (f inspector) VisitUnwrapOrElse(e *UnwrapOrElseExpr) bool         { return f(e) }
