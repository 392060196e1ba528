package expr

import "github.com/brimdata/splc/compiler/types"

// TypeTable assigns dense indices to type names in first-seen order.
type TypeTable struct {
	names []string
	index map[string]int
}

func NewTypeTable() *TypeTable {
	return &TypeTable{index: make(map[string]int)}
}

func (t *TypeTable) Index(typ *types.Type) int {
	name := typ.Name()
	if i, ok := t.index[name]; ok {
		return i
	}
	i := len(t.names)
	t.names = append(t.names, name)
	t.index[name] = i
	return i
}

// Names returns the type names ordered by index.
func (t *TypeTable) Names() []string {
	return t.names
}

// Tree is the interchange form of an expression.
type Tree struct {
	Kind      string  `json:"kind" yaml:"kind"`
	Type      int     `json:"type" yaml:"type"`
	Op        string  `json:"op,omitempty" yaml:"op,omitempty"`
	Name      string  `json:"name,omitempty" yaml:"name,omitempty"`
	Value     string  `json:"value,omitempty" yaml:"value,omitempty"`
	Port      *int    `json:"port,omitempty" yaml:"port,omitempty"`
	PastDepth *int    `json:"pastDepth,omitempty" yaml:"pastDepth,omitempty"`
	LHS       *Tree   `json:"lhs,omitempty" yaml:"lhs,omitempty"`
	RHS       *Tree   `json:"rhs,omitempty" yaml:"rhs,omitempty"`
	Operand   *Tree   `json:"operand,omitempty" yaml:"operand,omitempty"`
	Cond      *Tree   `json:"cond,omitempty" yaml:"cond,omitempty"`
	Then      *Tree   `json:"then,omitempty" yaml:"then,omitempty"`
	Else      *Tree   `json:"else,omitempty" yaml:"else,omitempty"`
	Lower     *Tree   `json:"lower,omitempty" yaml:"lower,omitempty"`
	Upper     *Tree   `json:"upper,omitempty" yaml:"upper,omitempty"`
	Slice     bool    `json:"slice,omitempty" yaml:"slice,omitempty"`
	Args      []*Tree `json:"args,omitempty" yaml:"args,omitempty"`
	// Code is generated source text attached by the caller.
	Code string `json:"code,omitempty" yaml:"code,omitempty"`
}

// Serialize converts e to its interchange form.  Types are registered in
// tt in pre-order, so the same tree and a fresh table always produce the
// same result.  If annotate is not nil, its result is attached to every
// node as Code.
func Serialize(e Expr, tt *TypeTable, annotate func(Expr) string) *Tree {
	s := &serializer{types: tt, annotate: annotate}
	return s.tree(e)
}

type serializer struct {
	types    *TypeTable
	annotate func(Expr) string
	out      *Tree
}

func (s *serializer) tree(e Expr) *Tree {
	if e == nil {
		return nil
	}
	s.out = nil
	Walk(s, e)
	return s.out
}

func (s *serializer) trees(exprs []Expr) []*Tree {
	var out []*Tree
	for _, e := range exprs {
		out = append(out, s.tree(e))
	}
	return out
}

// node creates the tree for e before its children so type indices follow
// pre-order.
func (s *serializer) node(kind string, e Expr) *Tree {
	t := &Tree{Kind: kind, Type: s.types.Index(TypeOf(e))}
	if s.annotate != nil {
		t.Code = s.annotate(e)
	}
	return t
}

func intPtr(i int) *int { return &i }

func (s *serializer) VisitAttribute(e *AttributeExpr) bool {
	t := s.node("attribute", e)
	t.Name = e.Attr
	t.LHS = s.tree(e.LHS)
	s.out = t
	return false
}

func (s *serializer) VisitBinary(e *BinaryExpr) bool {
	t := s.node("binary", e)
	t.Op = e.Op.String()
	t.LHS = s.tree(e.LHS)
	t.RHS = s.tree(e.RHS)
	s.out = t
	return false
}

func (s *serializer) VisitCall(e *CallExpr) bool {
	t := s.node("call", e)
	if e.Fn != nil {
		t.Name = e.Fn.QualifiedName()
	}
	t.Args = s.trees(e.Args)
	s.out = t
	return false
}

func (s *serializer) VisitCast(e *CastExpr) bool {
	t := s.node("cast", e)
	t.Operand = s.tree(e.Operand)
	s.out = t
	return false
}

func (s *serializer) VisitConditional(e *ConditionalExpr) bool {
	t := s.node("conditional", e)
	t.Cond = s.tree(e.Cond)
	t.Then = s.tree(e.Then)
	t.Else = s.tree(e.Else)
	s.out = t
	return false
}

func (s *serializer) VisitCustomLiteral(e *CustomLiteralExpr) bool {
	t := s.node("symbol", e)
	t.Name = e.ID
	s.out = t
	return false
}

func (s *serializer) VisitEnum(e *EnumExpr) bool {
	t := s.node("enum", e)
	t.Name = e.ID
	s.out = t
	return false
}

func (s *serializer) VisitIsPresent(e *IsPresentExpr) bool {
	t := s.node("isPresent", e)
	t.Operand = s.tree(e.Operand)
	s.out = t
	return false
}

func (s *serializer) VisitLiteral(e *LiteralExpr) bool {
	t := s.node("literal", e)
	t.Value = e.Value.String()
	s.out = t
	return false
}

func (s *serializer) VisitLiteralSymbol(e *LiteralSymbolExpr) bool {
	t := s.node("symbol", e)
	t.Name = e.ID
	s.out = t
	return false
}

func (s *serializer) VisitNary(e *NaryExpr) bool {
	t := s.node("nary", e)
	t.Op = e.Op.String()
	t.Args = s.trees(e.Operands)
	s.out = t
	return false
}

func (s *serializer) VisitStreamSymbol(e *StreamSymbolExpr) bool {
	t := s.node("stream", e)
	t.Name = e.ID
	t.Port = intPtr(e.Port)
	s.out = t
	return false
}

func (s *serializer) VisitStreamHistory(e *StreamHistorySymbolExpr) bool {
	t := s.node("streamHistory", e)
	t.Name = e.ID
	t.Port = intPtr(e.Port)
	t.PastDepth = intPtr(e.PastDepth)
	s.out = t
	return false
}

func (s *serializer) VisitSubscript(e *SubscriptExpr) bool {
	t := s.node("subscript", e)
	t.Slice = e.IsSlice
	t.LHS = s.tree(e.LHS)
	t.Lower = s.tree(e.Lower)
	t.Upper = s.tree(e.Upper)
	s.out = t
	return false
}

func (s *serializer) VisitSymbol(e *SymbolExpr) bool {
	t := s.node("symbol", e)
	t.Name = e.ID
	s.out = t
	return false
}

func (s *serializer) VisitUnary(e *UnaryExpr) bool {
	t := s.node(string(e.Form), e)
	t.Op = e.Op.String()
	t.Operand = s.tree(e.Operand)
	s.out = t
	return false
}

func (s *serializer) VisitUnwrap(e *UnwrapExpr) bool {
	t := s.node("unwrap", e)
	t.Operand = s.tree(e.Operand)
	s.out = t
	return false
}

func (s *serializer) VisitUnwrapOrElse(e *UnwrapOrElseExpr) bool {
	t := s.node("unwrapOrElse", e)
	t.LHS = s.tree(e.LHS)
	t.RHS = s.tree(e.RHS)
	s.out = t
	return false
}
