// Package ast declares the types used to represent syntax trees for filter
// predicates, SPL type spellings and toolkit versions.
package ast

type Node interface {
	Pos() int // Offset of the first character belonging to the node.
	End() int // Offset of the last character belonging to the node.
}

type Loc struct {
	First int `json:"first"`
	Last  int `json:"last"`
}

func NewLoc(pos, end int) Loc {
	return Loc{pos, end}
}

func (l Loc) Pos() int { return l.First }
func (l Loc) End() int { return l.Last }

// Clause is the interface implemented by the nodes of a filter predicate.
type Clause interface {
	Node
	ClauseAST()
}

type Or struct {
	Kind    string   `json:"kind" unpack:""`
	Clauses []Clause `json:"clauses"`
	Loc     `json:"loc"`
}

type And struct {
	Kind    string   `json:"kind" unpack:""`
	Clauses []Clause `json:"clauses"`
	Loc     `json:"loc"`
}

type Not struct {
	Kind   string `json:"kind" unpack:""`
	Clause Clause `json:"clause"`
	Loc    `json:"loc"`
}

// Predicate is a comparison of an arithmetic operand with a literal.  Op is
// empty for a bare operand and "in" for a membership test, in which case
// Operand holds only the collection symbol.
type Predicate struct {
	Kind    string   `json:"kind" unpack:""`
	Op      string   `json:"op"`
	Operand *Arith   `json:"operand"`
	Lit     *Literal `json:"lit"`
	Loc     `json:"loc"`
}

type Arith struct {
	Kind       string       `json:"kind" unpack:""`
	Complement bool         `json:"complement"`
	Symbol     *Symbol      `json:"symbol"`
	Steps      []*ArithStep `json:"steps"`
	Loc        `json:"loc"`
}

type ArithStep struct {
	Kind    string   `json:"kind" unpack:""`
	Op      string   `json:"op"`
	Operand *Literal `json:"operand"`
	Loc     `json:"loc"`
}

type Symbol struct {
	Kind      string   `json:"kind" unpack:""`
	Name      string   `json:"name"`
	Subscript *Literal `json:"subscript"`
	Loc       `json:"loc"`
}

// Literal is a constant as spelled in the source.  Type is one of "int",
// "float", "string" or "bool".  Text of a string keeps its quotes and
// escapes, and Text of a negative number has no space after the sign.
type Literal struct {
	Kind string `json:"kind" unpack:""`
	Type string `json:"type"`
	Text string `json:"text"`
	Loc  `json:"loc"`
}

func (*Or) ClauseAST()        {}
func (*And) ClauseAST()       {}
func (*Not) ClauseAST()       {}
func (*Predicate) ClauseAST() {}

// Type is the interface implemented by the nodes of a type spelling.
type Type interface {
	Node
	TypeAST()
}

type TypeName struct {
	Kind string `json:"kind" unpack:""`
	Name string `json:"name"`
	Loc  `json:"loc"`
}

// TypeCollection is a list, set or optional of a single element type.
type TypeCollection struct {
	Kind       string `json:"kind" unpack:""`
	Collection string `json:"collection"`
	Elem       Type   `json:"elem"`
	Loc        `json:"loc"`
}

type TypeMap struct {
	Kind    string `json:"kind" unpack:""`
	KeyType Type   `json:"key_type"`
	ValType Type   `json:"val_type"`
	Loc     `json:"loc"`
}

type TypeTuple struct {
	Kind  string  `json:"kind" unpack:""`
	Attrs []*Attr `json:"attrs"`
	Loc   `json:"loc"`
}

type TypeEnum struct {
	Kind    string   `json:"kind" unpack:""`
	Symbols []string `json:"symbols"`
	Loc     `json:"loc"`
}

type Attr struct {
	Kind string `json:"kind" unpack:""`
	Type Type   `json:"type"`
	Name string `json:"name"`
	Loc  `json:"loc"`
}

func (*TypeName) TypeAST()       {}
func (*TypeCollection) TypeAST() {}
func (*TypeMap) TypeAST()        {}
func (*TypeTuple) TypeAST()      {}
func (*TypeEnum) TypeAST()       {}

// Version is a dotted toolkit version of one to three numbers, optionally
// followed by a qualifier when all three are present.
type Version struct {
	Kind      string   `json:"kind" unpack:""`
	Nums      []string `json:"nums"`
	Qualifier string   `json:"qualifier"`
	Loc       `json:"loc"`
}

// Range is a version range.  High is nil for a bare version, which admits
// every version from Low upward.
type Range struct {
	Kind          string   `json:"kind" unpack:""`
	Low           *Version `json:"low"`
	High          *Version `json:"high"`
	LowInclusive  bool     `json:"low_inclusive"`
	HighInclusive bool     `json:"high_inclusive"`
	Loc           `json:"loc"`
}
