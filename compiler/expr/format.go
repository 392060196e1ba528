package expr

import (
	"strconv"
	"strings"
)

// Format renders e as source text, parenthesizing only where operator
// precedence requires it.
func Format(e Expr) string {
	var b strings.Builder
	formatExpr(&b, e, 0)
	return b.String()
}

const precUnary = 11

func precedence(o Op) int {
	switch o.Undotted() {
	case OpBarBar:
		return 1
	case OpAmpAmp:
		return 2
	case OpBar:
		return 3
	case OpHat:
		return 4
	case OpAmp:
		return 5
	case OpEq, OpNeq:
		return 6
	case OpLess, OpLeq, OpGreater, OpGeq, OpIn:
		return 7
	case OpLShift, OpRShift:
		return 8
	case OpPlus, OpMinus:
		return 9
	case OpStar, OpSlash, OpMod:
		return 10
	}
	return 0
}

func formatExpr(b *strings.Builder, e Expr, outer int) {
	if e == nil {
		b.WriteString("<nil>")
		return
	}
	switch e := e.(type) {
	case *AttributeExpr:
		formatExpr(b, e.LHS, precUnary+1)
		b.WriteByte('.')
		b.WriteString(e.Attr)
	case *BinaryExpr:
		prec := precedence(e.Op)
		if prec < outer {
			b.WriteByte('(')
		}
		formatExpr(b, e.LHS, prec)
		b.WriteByte(' ')
		b.WriteString(e.Op.String())
		b.WriteByte(' ')
		formatExpr(b, e.RHS, prec+1)
		if prec < outer {
			b.WriteByte(')')
		}
	case *CallExpr:
		if e.Fn != nil {
			b.WriteString(e.Fn.Name)
		}
		b.WriteByte('(')
		formatList(b, e.Args)
		b.WriteByte(')')
	case *CastExpr:
		b.WriteByte('(')
		b.WriteString(e.Type.Name())
		b.WriteByte(')')
		formatExpr(b, e.Operand, precUnary)
	case *ConditionalExpr:
		if outer > 0 {
			b.WriteByte('(')
		}
		formatExpr(b, e.Cond, 1)
		b.WriteString(" ? ")
		formatExpr(b, e.Then, 1)
		b.WriteString(" : ")
		formatExpr(b, e.Else, 0)
		if outer > 0 {
			b.WriteByte(')')
		}
	case *CustomLiteralExpr:
		b.WriteString(e.ID)
	case *EnumExpr:
		b.WriteString(e.ID)
	case *IsPresentExpr:
		formatExpr(b, e.Operand, precUnary+1)
		b.WriteString("??")
	case *LiteralExpr:
		b.WriteString(e.Value.String())
	case *LiteralSymbolExpr:
		b.WriteString(e.ID)
	case *NaryExpr:
		b.WriteString(e.Op.String())
		b.WriteByte('(')
		formatList(b, e.Operands)
		b.WriteByte(')')
	case *StreamSymbolExpr:
		b.WriteString(e.ID)
	case *StreamHistorySymbolExpr:
		b.WriteString(e.ID)
		b.WriteByte('[')
		b.WriteString(strconv.Itoa(e.PastDepth))
		b.WriteByte(']')
	case *SubscriptExpr:
		formatExpr(b, e.LHS, precUnary+1)
		b.WriteByte('[')
		if e.Lower != nil {
			formatExpr(b, e.Lower, 0)
		}
		if e.IsSlice {
			b.WriteByte(':')
			if e.Upper != nil {
				formatExpr(b, e.Upper, 0)
			}
		}
		b.WriteByte(']')
	case *SymbolExpr:
		b.WriteString(e.ID)
	case *UnaryExpr:
		if e.Form == KindPostfix {
			formatExpr(b, e.Operand, precUnary+1)
			b.WriteString(e.Op.String())
			return
		}
		b.WriteString(e.Op.String())
		formatExpr(b, e.Operand, precUnary)
	case *UnwrapExpr:
		formatExpr(b, e.Operand, precUnary+1)
		b.WriteByte('!')
	case *UnwrapOrElseExpr:
		if outer > 0 {
			b.WriteByte('(')
		}
		formatExpr(b, e.LHS, 1)
		b.WriteString(" ?: ")
		formatExpr(b, e.RHS, 1)
		if outer > 0 {
			b.WriteByte(')')
		}
	}
}

func formatList(b *strings.Builder, exprs []Expr) {
	for k, e := range exprs {
		if k > 0 {
			b.WriteString(", ")
		}
		formatExpr(b, e, 0)
	}
}
