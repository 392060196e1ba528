package expr

import "fmt"

// Copy returns a deep copy of e.
func Copy(e Expr) Expr {
	if e == nil {
		return nil
	}
	switch e := e.(type) {
	case *AttributeExpr:
		out := *e
		out.LHS = Copy(e.LHS)
		return &out
	case *BinaryExpr:
		out := *e
		out.LHS = Copy(e.LHS)
		out.RHS = Copy(e.RHS)
		return &out
	case *CallExpr:
		out := *e
		out.Args = copyExprs(e.Args)
		return &out
	case *CastExpr:
		out := *e
		out.Operand = Copy(e.Operand)
		return &out
	case *ConditionalExpr:
		out := *e
		out.Cond = Copy(e.Cond)
		out.Then = Copy(e.Then)
		out.Else = Copy(e.Else)
		return &out
	case *CustomLiteralExpr:
		out := *e
		return &out
	case *EnumExpr:
		out := *e
		return &out
	case *IsPresentExpr:
		out := *e
		out.Operand = Copy(e.Operand)
		return &out
	case *LiteralExpr:
		out := *e
		out.Value = e.Value.Clone()
		return &out
	case *LiteralSymbolExpr:
		out := *e
		return &out
	case *NaryExpr:
		out := *e
		out.Operands = copyExprs(e.Operands)
		return &out
	case *StreamSymbolExpr:
		out := *e
		return &out
	case *StreamHistorySymbolExpr:
		out := *e
		return &out
	case *SubscriptExpr:
		out := *e
		out.LHS = Copy(e.LHS)
		out.Lower = Copy(e.Lower)
		out.Upper = Copy(e.Upper)
		return &out
	case *SymbolExpr:
		out := *e
		return &out
	case *UnaryExpr:
		out := *e
		out.Operand = Copy(e.Operand)
		return &out
	case *UnwrapExpr:
		out := *e
		out.Operand = Copy(e.Operand)
		return &out
	case *UnwrapOrElseExpr:
		out := *e
		out.LHS = Copy(e.LHS)
		out.RHS = Copy(e.RHS)
		return &out
	}
	panic(fmt.Sprintf("expr.Copy: unknown expression %T", e))
}

func copyExprs(exprs []Expr) []Expr {
	if exprs == nil {
		return nil
	}
	out := make([]Expr, 0, len(exprs))
	for _, e := range exprs {
		out = append(out, Copy(e))
	}
	return out
}

// Equal reports whether a and b are structurally equal.  Source locations
// and the DontSimplify flag do not participate.
func Equal(a, b Expr) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.ExprKind() != b.ExprKind() {
		return false
	}
	switch a := a.(type) {
	case *AttributeExpr:
		b := b.(*AttributeExpr)
		return a.Attr == b.Attr && Equal(a.LHS, b.LHS)
	case *BinaryExpr:
		b := b.(*BinaryExpr)
		return a.Op == b.Op && Equal(a.LHS, b.LHS) && Equal(a.RHS, b.RHS)
	case *CallExpr:
		b := b.(*CallExpr)
		return sameFunction(a.Fn, b.Fn) && equalExprs(a.Args, b.Args)
	case *CastExpr:
		b := b.(*CastExpr)
		return a.Type == b.Type && Equal(a.Operand, b.Operand)
	case *ConditionalExpr:
		b := b.(*ConditionalExpr)
		return Equal(a.Cond, b.Cond) && Equal(a.Then, b.Then) && Equal(a.Else, b.Else)
	case *CustomLiteralExpr:
		return a.ID == b.(*CustomLiteralExpr).ID
	case *EnumExpr:
		b := b.(*EnumExpr)
		return a.ID == b.ID && a.Type == b.Type
	case *IsPresentExpr:
		return Equal(a.Operand, b.(*IsPresentExpr).Operand)
	case *LiteralExpr:
		return a.Value.Equal(b.(*LiteralExpr).Value)
	case *LiteralSymbolExpr:
		b := b.(*LiteralSymbolExpr)
		return a.Index == b.Index && a.Arg == b.Arg
	case *NaryExpr:
		b := b.(*NaryExpr)
		return a.Op == b.Op && equalExprs(a.Operands, b.Operands)
	case *StreamSymbolExpr:
		b := b.(*StreamSymbolExpr)
		return a.ID == b.ID && a.Port == b.Port
	case *StreamHistorySymbolExpr:
		b := b.(*StreamHistorySymbolExpr)
		return a.ID == b.ID && a.Port == b.Port && a.PastDepth == b.PastDepth
	case *SubscriptExpr:
		b := b.(*SubscriptExpr)
		return a.IsSlice == b.IsSlice && Equal(a.LHS, b.LHS) && Equal(a.Lower, b.Lower) && Equal(a.Upper, b.Upper)
	case *SymbolExpr:
		b := b.(*SymbolExpr)
		return a.ID == b.ID && a.SymType == b.SymType
	case *UnaryExpr:
		b := b.(*UnaryExpr)
		return a.Op == b.Op && Equal(a.Operand, b.Operand)
	case *UnwrapExpr:
		return Equal(a.Operand, b.(*UnwrapExpr).Operand)
	case *UnwrapOrElseExpr:
		b := b.(*UnwrapOrElseExpr)
		return Equal(a.LHS, b.LHS) && Equal(a.RHS, b.RHS)
	}
	return false
}

func sameFunction(a, b *Function) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Name == b.Name && a.Namespace == b.Namespace
}

func equalExprs(a, b []Expr) bool {
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
