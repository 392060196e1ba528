package filter

import (
	"errors"
	"fmt"

	"github.com/brimdata/splc/compiler/types"
)

var (
	ErrSubscriptIn       = errors.New("a subscripted attribute cannot be the operand of in")
	ErrArithType         = errors.New("arithmetic requires an integral attribute")
	ErrDivideByZero      = errors.New("division by zero")
	ErrNegativeSubscript = errors.New("negative subscript")
	ErrLiteralType       = errors.New("literal does not match the attribute type")
)

// Check applies the construction rules of a predicate tree and retypes
// its literals to the kinds of the attributes they are compared with.
// If schema is nil, or an attribute is not found in it, only the rules
// that do not depend on attribute types are applied; unknown attributes
// are left for the validator to report.
func Check(c Clause, schema *types.Type) error {
	var err error
	Predicates(c, func(p *Predicate) {
		if err == nil {
			err = checkPredicate(p, schema)
		}
	})
	return err
}

func checkPredicate(p *Predicate, schema *types.Type) error {
	if p.HasSubscript {
		if p.Op == In {
			return fmt.Errorf("%w: %s", ErrSubscriptIn, p)
		}
		if p.Subscript < 0 {
			return fmt.Errorf("%w: %s", ErrNegativeSubscript, p)
		}
	}
	for _, step := range p.Arith {
		if (step.Op == Mod || step.Op == Div) && step.Lit.EqualsZero() {
			return fmt.Errorf("%w: %s", ErrDivideByZero, p)
		}
	}
	kind, ok := attrKind(p, schema)
	if !ok {
		return nil
	}
	if len(p.Arith) > 0 || p.Complement {
		if !kind.IsIntegral() {
			return fmt.Errorf("%w: %s has type %s", ErrArithType, p.Symbol, kind)
		}
		for k, step := range p.Arith {
			lit, err := step.Lit.CastToMatchingType(kind)
			if err != nil {
				return err
			}
			p.Arith[k].Lit = lit
		}
	}
	if p.Op == None {
		if kind != Boolean {
			return fmt.Errorf("%w: %s has type %s and is not a boolean predicate", ErrLiteralType, p.Symbol, kind)
		}
		return nil
	}
	lit, err := p.Lit.CastToMatchingType(kind)
	if err != nil {
		return err
	}
	if lit.Kind != kind {
		return fmt.Errorf("%w: %s is %s but %s has type %s", ErrLiteralType, p.Lit, p.Lit.Kind, p.Symbol, kind)
	}
	p.Lit = lit
	return nil
}

// attrKind returns the literal kind of the value a predicate compares,
// which is the element type for subscripts and the in operator.
func attrKind(p *Predicate, schema *types.Type) (Kind, bool) {
	if schema == nil {
		return 0, false
	}
	k, ok := schema.AttrIndex(p.Symbol)
	if !ok {
		return 0, false
	}
	t := schema.Attrs[k].Type
	if p.HasSubscript || p.Op == In {
		if t.Meta != types.List || t.Elem == nil {
			return 0, false
		}
		t = t.Elem
	}
	return KindOf(t.Meta)
}
