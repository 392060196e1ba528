package expr

import (
	"fmt"

	"github.com/brimdata/splc/compiler/diag"
	"github.com/brimdata/splc/compiler/srcfiles"
	"github.com/brimdata/splc/compiler/types"
)

type ArgKind string

const (
	ArgNamed     ArgKind = "named"
	ArgNamedList ArgKind = "namedList"
)

// ArgInfo describes a submission-time argument hoisted into a
// LiteralReplacer.  Its literal entry holds the default value.
type ArgInfo struct {
	Kind          ArgKind `json:"kind" yaml:"kind"`
	CompositeName string  `json:"compositeName" yaml:"compositeName"`
	Name          string  `json:"name" yaml:"name"`
	Required      bool    `json:"required" yaml:"required"`
}

// LiteralReplacer assigns dense indices, starting at 0, to literals
// hoisted out of generated code.  The literal, argument and location
// tables are index aligned; the argument entry of a plain literal is nil.
type LiteralReplacer struct {
	reporter      *diag.Reporter
	mainComposite string
	literals      []*Literal
	args          []*ArgInfo
	locs          []srcfiles.Location
}

func NewLiteralReplacer(r *diag.Reporter, mainComposite string) *LiteralReplacer {
	return &LiteralReplacer{reporter: r, mainComposite: mainComposite}
}

// Reset clears the tables so indices start over at 0.
func (r *LiteralReplacer) Reset() {
	r.literals = nil
	r.args = nil
	r.locs = nil
}

// AddLiteral returns the index of lit, adding it if no equal literal is
// already present.
func (r *LiteralReplacer) AddLiteral(lit *Literal, loc srcfiles.Location) int {
	for k, l := range r.literals {
		if r.args[k] == nil && l.Equal(lit) {
			return k
		}
	}
	return r.add(lit.Clone(), nil, loc)
}

// AddArgument returns the index of a submission-time argument whose
// default value is lit.
func (r *LiteralReplacer) AddArgument(lit *Literal, loc srcfiles.Location, kind ArgKind, composite, name string, required bool) int {
	arg := &ArgInfo{Kind: kind, CompositeName: composite, Name: name, Required: required}
	for k, a := range r.args {
		if a != nil && *a == *arg && r.literals[k].Equal(lit) {
			return k
		}
	}
	return r.add(lit.Clone(), arg, loc)
}

func (r *LiteralReplacer) add(lit *Literal, arg *ArgInfo, loc srcfiles.Location) int {
	r.literals = append(r.literals, lit)
	r.args = append(r.args, arg)
	r.locs = append(r.locs, loc)
	return len(r.literals) - 1
}

func (r *LiteralReplacer) Len() int                       { return len(r.literals) }
func (r *LiteralReplacer) Literals() []*Literal           { return r.literals }
func (r *LiteralReplacer) Arguments() []*ArgInfo          { return r.args }
func (r *LiteralReplacer) Locations() []srcfiles.Location { return r.locs }

func literalID(index int) string {
	return fmt.Sprintf("lit$%d", index)
}

const (
	fnSubmissionValue     = "getSubmissionTimeValue"
	fnSubmissionListValue = "getSubmissionTimeListValue"
	fnMainCompositeName   = "getMainCompositeName"
)

// ReplaceLits hoists literals of e into r and returns the rewritten tree.
// When onlySTP is set, only calls that read submission-time parameters
// are replaced.
func ReplaceLits(e Expr, r *LiteralReplacer, onlySTP bool) Expr {
	if e == nil {
		return nil
	}
	switch e := e.(type) {
	case *LiteralExpr:
		if onlySTP {
			return e
		}
		lit := e.Value
		if !lit.IsCompileTimeEvaluatable() {
			replaceInLiteral(lit, r, onlySTP)
			return e
		}
		if lit.Kind == LitTuple && lit.IsEmpty() {
			return e
		}
		index := r.AddLiteral(lit, e.Loc)
		return NewLiteralSymbol(e.Type, e.Loc, literalID(index), index, false)
	case *AttributeExpr:
		e.LHS = ReplaceLits(e.LHS, r, onlySTP)
	case *BinaryExpr:
		e.RHS = ReplaceLits(e.RHS, r, onlySTP)
		e.LHS = ReplaceLits(e.LHS, r, onlySTP)
	case *CallExpr:
		return replaceCall(e, r, onlySTP)
	case *CastExpr:
		e.Operand = ReplaceLits(e.Operand, r, onlySTP)
	case *ConditionalExpr:
		e.Cond = ReplaceLits(e.Cond, r, onlySTP)
		e.Then = ReplaceLits(e.Then, r, onlySTP)
		e.Else = ReplaceLits(e.Else, r, onlySTP)
	case *IsPresentExpr:
		e.Operand = ReplaceLits(e.Operand, r, onlySTP)
	case *NaryExpr:
		for k, o := range e.Operands {
			e.Operands[k] = ReplaceLits(o, r, onlySTP)
		}
	case *SubscriptExpr:
		e.LHS = ReplaceLits(e.LHS, r, onlySTP)
		e.Lower = ReplaceLits(e.Lower, r, onlySTP)
		e.Upper = ReplaceLits(e.Upper, r, onlySTP)
	case *UnaryExpr:
		e.Operand = ReplaceLits(e.Operand, r, onlySTP)
	case *UnwrapExpr:
		e.Operand = ReplaceLits(e.Operand, r, onlySTP)
	case *UnwrapOrElseExpr:
		e.LHS = ReplaceLits(e.LHS, r, onlySTP)
		e.RHS = ReplaceLits(e.RHS, r, onlySTP)
	}
	return e
}

func replaceInLiteral(lit *Literal, r *LiteralReplacer, onlySTP bool) {
	switch lit.Kind {
	case LitExpn:
		lit.Expr = ReplaceLits(lit.Expr, r, onlySTP)
	case LitList, LitSet, LitTuple:
		for _, e := range lit.Elems {
			replaceInLiteral(e, r, onlySTP)
		}
	case LitMap:
		for _, e := range lit.Entries {
			replaceInLiteral(e.Key, r, onlySTP)
			replaceInLiteral(e.Value, r, onlySTP)
		}
	}
}

func replaceCall(e *CallExpr, r *LiteralReplacer, onlySTP bool) Expr {
	if fn := e.Fn; fn != nil && fn.Intrinsic {
		switch fn.Name {
		case fnSubmissionValue:
			return replaceSubmissionValue(e, r, ArgNamed)
		case fnSubmissionListValue:
			return replaceSubmissionValue(e, r, ArgNamedList)
		case fnMainCompositeName:
			if onlySTP {
				return e
			}
			index := r.AddLiteral(NewPrimitive(NewString(types.TypeRstring, r.mainComposite)), e.Loc)
			return NewLiteralSymbol(e.Type, e.Loc, literalID(index), index, false)
		}
	}
	argsSTP := onlySTP
	if fn := e.Fn; fn != nil && fn.Native && fn.Namespace == "spl.collection" && (fn.Name == "range" || fn.Name == "keys") {
		argsSTP = true
	}
	for k, a := range e.Args {
		e.Args[k] = ReplaceLits(a, r, argsSTP)
	}
	return e
}

func replaceSubmissionValue(e *CallExpr, r *LiteralReplacer, kind ArgKind) Expr {
	if len(e.Args) == 0 || len(e.Args) > 2 {
		return e
	}
	name, ok := PrimitiveOf(e.Args[0])
	if !ok || name.Meta() != types.Rstring {
		r.argumentNeedsLiteral(e, e.Args[0])
		return e
	}
	var dflt *Literal
	required := len(e.Args) == 1
	if required {
		if kind == ArgNamed {
			dflt = NewPrimitive(NewString(types.TypeRstring, ""))
		} else {
			dflt = NewList(types.Default.ListOf(types.TypeRstring))
		}
	} else {
		lit, ok := LiteralValue(e.Args[1])
		if !ok || !isStringDefault(lit, kind) {
			r.argumentNeedsLiteral(e, e.Args[1])
			return e
		}
		dflt = lit
	}
	index := r.AddArgument(dflt, e.Loc, kind, e.CompositeName, name.Str(), required)
	return NewLiteralSymbol(e.Type, e.Loc, literalID(index), index, true)
}

func isStringDefault(lit *Literal, kind ArgKind) bool {
	if kind == ArgNamed {
		v, ok := lit.PrimitiveValue()
		return ok && v.Meta() == types.Rstring
	}
	if lit.Kind != LitList || !lit.IsCompileTimeEvaluatable() {
		return false
	}
	return lit.Type != nil && lit.Type.Elem != nil && lit.Type.Elem.Meta == types.Rstring
}

func (r *LiteralReplacer) argumentNeedsLiteral(call *CallExpr, arg Expr) {
	if r.reporter != nil {
		r.reporter.Error(LocOf(arg), diag.GetArgumentNeedsLit, call.Fn.Name, Format(arg))
	}
}
