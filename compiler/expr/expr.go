// Package expr is the typed expression IR.  Trees are strict: every node
// exclusively owns its children, so rewrites replace nodes rather than
// share them, and Copy always produces a deep copy.
package expr

import (
	"github.com/brimdata/splc/compiler/srcfiles"
	"github.com/brimdata/splc/compiler/types"
)

type Kind string

const (
	KindAttribute     Kind = "attribute"
	KindBinary        Kind = "binary"
	KindCall          Kind = "call"
	KindCast          Kind = "cast"
	KindConditional   Kind = "conditional"
	KindCustomLiteral Kind = "customLiteral"
	KindEnum          Kind = "enum"
	KindIsPresent     Kind = "isPresent"
	KindLiteral       Kind = "literal"
	KindLiteralSymbol Kind = "literalSymbol"
	KindNary          Kind = "nary"
	KindPostfix       Kind = "postfix"
	KindPrefix        Kind = "prefix"
	KindStream        Kind = "stream"
	KindStreamHistory Kind = "streamHistory"
	KindSubscript     Kind = "subscript"
	KindSymbol        Kind = "symbol"
	KindUnary         Kind = "unary"
	KindUnwrap        Kind = "unwrap"
	KindUnwrapOrElse  Kind = "unwrapOrElse"
)

type Expr interface {
	ExprKind() Kind
	base() *Node
}

// Node holds the fields common to every expression.  Type is shared with
// the type table and is never owned by the node.
type Node struct {
	Type         *types.Type
	Loc          srcfiles.Location
	DontSimplify bool
}

func (n *Node) base() *Node { return n }

func TypeOf(e Expr) *types.Type         { return e.base().Type }
func LocOf(e Expr) srcfiles.Location    { return e.base().Loc }
func SetDontSimplify(e Expr, flag bool) { e.base().DontSimplify = flag }
func IsDontSimplify(e Expr) bool        { return e.base().DontSimplify }

type SymbolType int

const (
	SymOther SymbolType = iota
	SymState
	SymLocal
	SymAttr
)

// Function describes the target of a call.
type Function struct {
	Name      string
	Namespace string
	// Intrinsic functions are provided by the compiler itself.
	Intrinsic   bool
	Native      bool
	SideEffects bool
}

// QualifiedName returns "ns::name", or just name for the default namespace.
func (f *Function) QualifiedName() string {
	if f.Namespace == "" {
		return f.Name
	}
	return f.Namespace + "::" + f.Name
}

type (
	AttributeExpr struct {
		Node
		LHS  Expr
		Attr string
	}
	BinaryExpr struct {
		Node
		Op  Op
		LHS Expr
		RHS Expr
	}
	CallExpr struct {
		Node
		Fn   *Function
		Args []Expr
		// CompositeName is the composite operator enclosing the call.
		CompositeName string
	}
	CastExpr struct {
		Node
		Operand Expr
	}
	ConditionalExpr struct {
		Node
		Cond Expr
		Then Expr
		Else Expr
	}
	// A CustomLiteralExpr names an enumerator-like constant defined by an
	// operator model, e.g., a custom literal parameter value.
	CustomLiteralExpr struct {
		Node
		ID string
	}
	EnumExpr struct {
		Node
		ID string
	}
	IsPresentExpr struct {
		Node
		Operand Expr
	}
	LiteralExpr struct {
		Node
		Value *Literal
	}
	// A LiteralSymbolExpr stands for an entry hoisted into a
	// LiteralReplacer.
	LiteralSymbolExpr struct {
		Node
		ID    string
		Index int
		// Arg is set when the entry is a submission-time argument.
		Arg bool
	}
	NaryExpr struct {
		Node
		Op       Op
		Operands []Expr
	}
	StreamSymbolExpr struct {
		Node
		ID   string
		Port int
	}
	StreamHistorySymbolExpr struct {
		Node
		ID        string
		Port      int
		PastDepth int
	}
	SubscriptExpr struct {
		Node
		LHS     Expr
		IsSlice bool
		// Lower is the index of a plain subscript.  Either bound of a
		// slice may be nil.
		Lower Expr
		Upper Expr
	}
	SymbolExpr struct {
		Node
		ID      string
		SymType SymbolType
	}
	// UnaryExpr covers the prefix, postfix and plain unary forms; Form
	// is one of KindPrefix, KindPostfix, or KindUnary.
	UnaryExpr struct {
		Node
		Form    Kind
		Op      Op
		Operand Expr
	}
	UnwrapExpr struct {
		Node
		Operand Expr
	}
	UnwrapOrElseExpr struct {
		Node
		LHS Expr
		RHS Expr
	}
)

func (*AttributeExpr) ExprKind() Kind           { return KindAttribute }
func (*BinaryExpr) ExprKind() Kind              { return KindBinary }
func (*CallExpr) ExprKind() Kind                { return KindCall }
func (*CastExpr) ExprKind() Kind                { return KindCast }
func (*ConditionalExpr) ExprKind() Kind         { return KindConditional }
func (*CustomLiteralExpr) ExprKind() Kind       { return KindCustomLiteral }
func (*EnumExpr) ExprKind() Kind                { return KindEnum }
func (*IsPresentExpr) ExprKind() Kind           { return KindIsPresent }
func (*LiteralExpr) ExprKind() Kind             { return KindLiteral }
func (*LiteralSymbolExpr) ExprKind() Kind       { return KindLiteralSymbol }
func (*NaryExpr) ExprKind() Kind                { return KindNary }
func (*StreamSymbolExpr) ExprKind() Kind        { return KindStream }
func (*StreamHistorySymbolExpr) ExprKind() Kind { return KindStreamHistory }
func (*SubscriptExpr) ExprKind() Kind           { return KindSubscript }
func (*SymbolExpr) ExprKind() Kind              { return KindSymbol }
func (e *UnaryExpr) ExprKind() Kind             { return e.Form }
func (*UnwrapExpr) ExprKind() Kind              { return KindUnwrap }
func (*UnwrapOrElseExpr) ExprKind() Kind        { return KindUnwrapOrElse }

// IsSymbol reports whether e is one of the symbol kinds.
func IsSymbol(e Expr) bool {
	switch e.(type) {
	case *SymbolExpr, *CustomLiteralExpr, *StreamSymbolExpr, *StreamHistorySymbolExpr, *LiteralSymbolExpr:
		return true
	}
	return false
}

func node(t *types.Type, loc srcfiles.Location) Node {
	return Node{Type: t, Loc: loc}
}

func NewAttribute(t *types.Type, loc srcfiles.Location, lhs Expr, attr string) *AttributeExpr {
	return &AttributeExpr{Node: node(t, loc), LHS: lhs, Attr: attr}
}

func NewBinary(t *types.Type, loc srcfiles.Location, op Op, lhs, rhs Expr) *BinaryExpr {
	return &BinaryExpr{Node: node(t, loc), Op: op, LHS: lhs, RHS: rhs}
}

func NewCall(t *types.Type, loc srcfiles.Location, fn *Function, args []Expr, composite string) *CallExpr {
	return &CallExpr{Node: node(t, loc), Fn: fn, Args: args, CompositeName: composite}
}

func NewCast(t *types.Type, loc srcfiles.Location, operand Expr) *CastExpr {
	return &CastExpr{Node: node(t, loc), Operand: operand}
}

func NewConditional(t *types.Type, loc srcfiles.Location, cond, then, els Expr) *ConditionalExpr {
	return &ConditionalExpr{Node: node(t, loc), Cond: cond, Then: then, Else: els}
}

func NewCustomLiteral(t *types.Type, loc srcfiles.Location, id string) *CustomLiteralExpr {
	return &CustomLiteralExpr{Node: node(t, loc), ID: id}
}

func NewEnum(t *types.Type, loc srcfiles.Location, id string) *EnumExpr {
	return &EnumExpr{Node: node(t, loc), ID: id}
}

func NewIsPresent(loc srcfiles.Location, operand Expr) *IsPresentExpr {
	return &IsPresentExpr{Node: node(types.TypeBool, loc), Operand: operand}
}

func NewLiteral(loc srcfiles.Location, lit *Literal) *LiteralExpr {
	return &LiteralExpr{Node: node(lit.Type, loc), Value: lit}
}

// NewValue wraps a primitive value in a literal expression.
func NewValue(loc srcfiles.Location, v Value) *LiteralExpr {
	return NewLiteral(loc, NewPrimitive(v))
}

func NewLiteralSymbol(t *types.Type, loc srcfiles.Location, id string, index int, arg bool) *LiteralSymbolExpr {
	return &LiteralSymbolExpr{Node: node(t, loc), ID: id, Index: index, Arg: arg}
}

func NewNary(t *types.Type, loc srcfiles.Location, op Op, operands []Expr) *NaryExpr {
	return &NaryExpr{Node: node(t, loc), Op: op, Operands: operands}
}

func NewStreamSymbol(t *types.Type, loc srcfiles.Location, id string, port int) *StreamSymbolExpr {
	return &StreamSymbolExpr{Node: node(t, loc), ID: id, Port: port}
}

func NewStreamHistory(t *types.Type, loc srcfiles.Location, id string, port, depth int) *StreamHistorySymbolExpr {
	return &StreamHistorySymbolExpr{Node: node(t, loc), ID: id, Port: port, PastDepth: depth}
}

func NewSubscript(t *types.Type, loc srcfiles.Location, lhs, index Expr) *SubscriptExpr {
	return &SubscriptExpr{Node: node(t, loc), LHS: lhs, Lower: index}
}

func NewSlice(t *types.Type, loc srcfiles.Location, lhs, lower, upper Expr) *SubscriptExpr {
	return &SubscriptExpr{Node: node(t, loc), LHS: lhs, IsSlice: true, Lower: lower, Upper: upper}
}

func NewSymbol(t *types.Type, loc srcfiles.Location, id string, st SymbolType) *SymbolExpr {
	return &SymbolExpr{Node: node(t, loc), ID: id, SymType: st}
}

func NewPrefix(t *types.Type, loc srcfiles.Location, op Op, operand Expr) *UnaryExpr {
	return &UnaryExpr{Node: node(t, loc), Form: KindPrefix, Op: op, Operand: operand}
}

func NewPostfix(t *types.Type, loc srcfiles.Location, op Op, operand Expr) *UnaryExpr {
	return &UnaryExpr{Node: node(t, loc), Form: KindPostfix, Op: op, Operand: operand}
}

func NewUnary(t *types.Type, loc srcfiles.Location, op Op, operand Expr) *UnaryExpr {
	return &UnaryExpr{Node: node(t, loc), Form: KindUnary, Op: op, Operand: operand}
}

func NewUnwrap(t *types.Type, loc srcfiles.Location, operand Expr) *UnwrapExpr {
	return &UnwrapExpr{Node: node(t, loc), Operand: operand}
}

func NewUnwrapOrElse(t *types.Type, loc srcfiles.Location, lhs, rhs Expr) *UnwrapOrElseExpr {
	return &UnwrapOrElseExpr{Node: node(t, loc), LHS: lhs, RHS: rhs}
}

// Remap returns the name used for s in generated code.
func (s *SymbolExpr) Remap() string {
	switch s.SymType {
	case SymState:
		return "state$" + s.ID
	case SymLocal:
		return "id$" + s.ID
	}
	return s.ID
}

// LiteralValue returns the literal held by e if e is a literal expression.
func LiteralValue(e Expr) (*Literal, bool) {
	if l, ok := e.(*LiteralExpr); ok {
		return l.Value, true
	}
	return nil, false
}

// PrimitiveOf returns the value of a primitive literal expression.
func PrimitiveOf(e Expr) (Value, bool) {
	if l, ok := e.(*LiteralExpr); ok {
		return l.Value.PrimitiveValue()
	}
	return Value{}, false
}

// HasSideEffects reports whether evaluating e could modify state.
func HasSideEffects(e Expr) bool {
	var found bool
	Inspect(e, func(e Expr) bool {
		switch e := e.(type) {
		case *CallExpr:
			if e.Fn != nil && e.Fn.SideEffects {
				found = true
			}
		case *BinaryExpr:
			if e.Op.IsAssign() {
				found = true
			}
		case *UnaryExpr:
			if e.Op == OpPlusPlus || e.Op == OpMinusMinus {
				found = true
			}
		}
		return !found
	})
	return found
}
