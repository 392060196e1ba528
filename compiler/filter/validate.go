package filter

import (
	"github.com/agnivade/levenshtein"
	"github.com/brimdata/splc/compiler/diag"
	"github.com/brimdata/splc/compiler/expr"
	"github.com/brimdata/splc/compiler/srcfiles"
	"github.com/brimdata/splc/compiler/types"
	"go.uber.org/zap"
)

// Validator checks subscription and filter expressions of an import
// specification.  Every problem is reported through the reporter with
// the location of the offending sub-expression, and validation of a
// tree continues past the first problem.
type Validator struct {
	reporter *diag.Reporter
	eval     *expr.Evaluator
	logger   *zap.Logger
	// schema is the tuple type of output port 0.
	schema *types.Type
}

func NewValidator(reporter *diag.Reporter, schema *types.Type, logger *zap.Logger) *Validator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Validator{
		reporter: reporter,
		eval:     expr.NewEvaluator(reporter, logger),
		logger:   logger,
		schema:   schema,
	}
}

// simplified folds a copy of e so the tree being validated is left as is.
func (v *Validator) simplified(e expr.Expr) expr.Expr {
	return expr.Simplify(expr.Copy(e), v.eval)
}

func (v *Validator) errorf(e expr.Expr, id diag.ID, args ...any) {
	v.reporter.Error(expr.LocOf(e), id, args...)
}

// ParseSubscription parses, checks and validates subscription text
// appearing at loc.  It returns the expression and whether it is valid.
func (v *Validator) ParseSubscription(text string, loc srcfiles.Location) (expr.Expr, bool) {
	c, err := Parse(text)
	if err == nil {
		err = Check(c, nil)
	}
	if err != nil {
		v.reporter.Error(loc, diag.SubscriptionInvalid, text, err.Error())
		return nil, false
	}
	e := ToExpr(c, nil, loc)
	return e, v.Subscription(e)
}

// ParseFilter parses, checks and validates filter text appearing at loc.
// Construction errors such as a modulus by zero are reported before the
// expression is validated.
func (v *Validator) ParseFilter(text string, loc srcfiles.Location) (expr.Expr, types.Meta, bool) {
	c, err := Parse(text)
	if err == nil {
		err = Check(c, v.schema)
	}
	if err != nil {
		v.logger.Debug("filter construction failed", zap.String("filter", text), zap.Error(err))
		v.reporter.Error(loc, diag.FilterInvalid, text, err.Error())
		return nil, types.Invalid, false
	}
	e := ToExpr(c, v.schema, loc)
	m, ok := v.Filter(e)
	return e, m, ok
}

// Subscription validates a subscription expression.
func (v *Validator) Subscription(e expr.Expr) bool {
	return v.subGeneral(e, e)
}

func (v *Validator) subInvalid(e, whole expr.Expr) bool {
	if e == whole {
		v.errorf(e, diag.InvalidSubscriptionExpn, expr.Format(e))
	} else {
		v.errorf(e, diag.InvalidSimplifiedSubscriptionExpn, expr.Format(e), expr.Format(whole))
	}
	return false
}

func (v *Validator) subGeneral(e, whole expr.Expr) bool {
	b, ok := e.(*expr.BinaryExpr)
	if !ok {
		return v.subInvalid(e, whole)
	}
	switch {
	case b.Op == expr.OpIn:
		lok := v.subLiteral(b.LHS)
		rok := v.subSymbol(b.RHS)
		return lok && rok
	case b.Op == expr.OpAmpAmp || b.Op == expr.OpBarBar:
		lok := v.subGeneral(b.LHS, whole)
		rok := v.subGeneral(b.RHS, whole)
		return lok && rok
	case b.Op.IsComparison() && !b.Op.IsDotted():
		lok := v.subSymbolMod(b.LHS, whole)
		rok := v.subLiteral(b.RHS)
		return lok && rok
	}
	return v.subInvalid(e, whole)
}

func (v *Validator) subSymbolMod(e, whole expr.Expr) bool {
	switch e := e.(type) {
	case *expr.SymbolExpr, *expr.SubscriptExpr:
		return v.subSymbol(e)
	case *expr.BinaryExpr:
		if e.Op != expr.OpMod {
			break
		}
		ok := v.subSymbol(e.LHS)
		rhs, isLit := expr.PrimitiveOf(v.simplified(e.RHS))
		if !isLit {
			v.errorf(e.RHS, diag.InvalidSubscriptionLiteral, expr.Format(e.RHS))
			return false
		}
		if m := rhs.Meta(); m < types.Int8 || m > types.Uint32 {
			v.errorf(e.RHS, diag.InvalidSubscriptionInt64Literal, expr.Format(e))
			return false
		}
		return ok
	}
	return v.subInvalid(e, whole)
}

func (v *Validator) subSymbol(e expr.Expr) bool {
	switch e := e.(type) {
	case *expr.SymbolExpr:
		return true
	case *expr.SubscriptExpr:
		if _, ok := v.simplified(e.LHS).(*expr.SymbolExpr); !ok || e.IsSlice {
			v.errorf(e, diag.InvalidSubscriptionSymbol, expr.Format(e))
			return false
		}
		index, ok := expr.PrimitiveOf(v.simplified(e.Lower))
		if !ok {
			v.errorf(e.Lower, diag.InvalidSubscriptionLiteral, expr.Format(e.Lower))
			return false
		}
		if !index.IsIntegral() {
			v.errorf(e.Lower, diag.InvalidSubscriptionSubscriptType, expr.Format(e.Lower))
			return false
		}
		return true
	}
	v.errorf(e, diag.InvalidSubscriptionSymbol, expr.Format(e))
	return false
}

func (v *Validator) subLiteral(e expr.Expr) bool {
	val, ok := expr.PrimitiveOf(v.simplified(e))
	if !ok {
		v.errorf(e, diag.InvalidSubscriptionLiteral, expr.Format(e))
		return false
	}
	if m := val.Meta(); m != types.Rstring && !m.IsIntegral() && !m.IsFloat() {
		v.errorf(e, diag.InvalidSubscriptionLiteralType, expr.Format(e))
		return false
	}
	return true
}

// Filter validates a filter expression and returns its result type,
// which is boolean for every valid filter.
func (v *Validator) Filter(e expr.Expr) (types.Meta, bool) {
	m := v.general(e, e)
	return m, m != types.Invalid
}

func (v *Validator) invalid(e, whole expr.Expr) types.Meta {
	if e == whole {
		v.errorf(e, diag.InvalidFilterExpn, expr.Format(e))
	} else {
		v.errorf(e, diag.InvalidSimplifiedFilterExpn, expr.Format(e), expr.Format(whole))
	}
	return types.Invalid
}

func (v *Validator) general(e, whole expr.Expr) types.Meta {
	switch e := e.(type) {
	case *expr.BinaryExpr:
		return v.binary(e, whole)
	case *expr.UnaryExpr:
		if e.Form != expr.KindPrefix || e.Op != expr.OpBang {
			break
		}
		m := v.general(e.Operand, whole)
		if m == types.Invalid {
			return m
		}
		return v.needBool(e.Operand, e.Op.String(), m)
	case *expr.SymbolExpr, *expr.SubscriptExpr:
		m := v.symbol(e)
		if m == types.Invalid {
			return m
		}
		return v.needBool(e, expr.Format(e), m)
	}
	return v.invalid(e, whole)
}

func (v *Validator) needBool(e expr.Expr, what string, m types.Meta) types.Meta {
	if m != types.Boolean {
		v.errorf(e, diag.InvalidFilterNeedBool, what, m)
		return types.Invalid
	}
	return types.Boolean
}

func (v *Validator) binary(e *expr.BinaryExpr, whole expr.Expr) types.Meta {
	switch {
	case e.Op == expr.OpIn:
		rmt := v.symbolIn(e.RHS)
		lmt := v.literal(e.LHS)
		if rmt == types.Invalid || lmt == types.Invalid {
			return types.Invalid
		}
		t := v.attrType(e.RHS)
		if rmt != types.List {
			v.errorf(e.RHS, diag.InvalidFilterNotList, expr.Format(e.RHS))
			return types.Invalid
		}
		rmt = t.ElemMeta()
		if rmt != lmt && !canCast(rmt, lmt) {
			v.errorf(e, diag.InvalidFilterMismatchType, e.Op.String(), lmt, rmt)
			return types.Invalid
		}
		return types.Boolean
	case e.Op == expr.OpAmpAmp || e.Op == expr.OpBarBar:
		lmt := v.general(e.LHS, whole)
		rmt := v.general(e.RHS, whole)
		if lmt == types.Invalid || rmt == types.Invalid {
			return types.Invalid
		}
		if v.needBool(e.LHS, e.Op.String(), lmt) == types.Invalid {
			return types.Invalid
		}
		return v.needBool(e.RHS, e.Op.String(), rmt)
	case e.Op.IsComparison() && !e.Op.IsDotted():
		lmt := v.symbolMod(e.LHS, whole)
		rmt := v.literal(e.RHS)
		if lmt == types.Invalid || rmt == types.Invalid {
			return types.Invalid
		}
		if rmt != lmt && !canCast(lmt, rmt) {
			v.errorf(e, diag.InvalidFilterMismatchType, e.Op.String(), lmt, rmt)
			return types.Invalid
		}
		if rmt == types.Boolean && e.Op != expr.OpEq && e.Op != expr.OpNeq {
			v.errorf(e, diag.InvalidBooleanOperator, e.Op.String())
			return types.Invalid
		}
		return types.Boolean
	}
	return v.invalid(e, whole)
}

func isArith(op expr.Op) bool {
	switch op {
	case expr.OpMod, expr.OpStar, expr.OpSlash, expr.OpPlus, expr.OpMinus,
		expr.OpAmp, expr.OpBar, expr.OpHat, expr.OpLShift, expr.OpRShift:
		return true
	}
	return false
}

func (v *Validator) symbolMod(e, whole expr.Expr) types.Meta {
	switch e := e.(type) {
	case *expr.SymbolExpr, *expr.SubscriptExpr:
		return v.symbol(e)
	case *expr.UnaryExpr:
		if e.Form != expr.KindPrefix || e.Op != expr.OpTilde {
			break
		}
		m := v.symbolMod(e.Operand, whole)
		if m == types.Invalid {
			return m
		}
		if !m.IsIntegral() {
			v.errorf(e.Operand, diag.InvalidFilterModSymbol, expr.Format(e.Operand))
			return types.Invalid
		}
		return m
	case *expr.BinaryExpr:
		if !isArith(e.Op) {
			break
		}
		lmt := v.symbolMod(e.LHS, whole)
		rhs, ok := expr.PrimitiveOf(v.simplified(e.RHS))
		if !ok {
			v.errorf(e.RHS, diag.InvalidFilterLiteral, expr.Format(e.RHS))
			return types.Invalid
		}
		if !rhs.IsIntegral() {
			v.errorf(e.RHS, diag.InvalidFilterInt64Literal, expr.Format(e))
			return types.Invalid
		}
		if lmt == types.Invalid {
			return lmt
		}
		if !lmt.IsIntegral() {
			v.errorf(e.LHS, diag.InvalidFilterModSymbol, expr.Format(e.LHS))
			return types.Invalid
		}
		return types.Int64
	}
	return v.invalid(e, whole)
}

func isFilterable(m types.Meta) bool {
	return m.IsNumeric() || m == types.Rstring || m == types.Boolean
}

// symbol returns the meta type of an attribute or of an element of a
// list attribute.
func (v *Validator) symbol(e expr.Expr) types.Meta {
	switch e := e.(type) {
	case *expr.SymbolExpr:
		t := v.lookup(e)
		if t == nil {
			return types.Invalid
		}
		if !isFilterable(t.Meta) {
			v.errorf(e, diag.InvalidFilterSymbolType, expr.Format(e))
			return types.Invalid
		}
		return t.Meta
	case *expr.SubscriptExpr:
		sym, ok := v.simplified(e.LHS).(*expr.SymbolExpr)
		if !ok || e.IsSlice {
			v.errorf(e, diag.InvalidFilterSymbol, expr.Format(e))
			return types.Invalid
		}
		t := v.lookup(sym)
		if t == nil {
			return types.Invalid
		}
		if t.Meta != types.List || t.Elem == nil || !isFilterable(t.Elem.Meta) {
			v.errorf(e.LHS, diag.InvalidFilterSubscriptSymbolType, expr.Format(e.LHS))
			return types.Invalid
		}
		index, ok := expr.PrimitiveOf(v.simplified(e.Lower))
		if !ok || !index.IsIntegral() {
			v.errorf(e.Lower, diag.InvalidFilterSubscriptType, expr.Format(e.Lower))
			return types.Invalid
		}
		return t.Elem.Meta
	}
	v.errorf(e, diag.InvalidFilterSymbol, expr.Format(e))
	return types.Invalid
}

func (v *Validator) symbolIn(e expr.Expr) types.Meta {
	sym, ok := e.(*expr.SymbolExpr)
	if !ok {
		v.errorf(e, diag.InvalidFilterSymbol, expr.Format(e))
		return types.Invalid
	}
	t := v.lookup(sym)
	if t == nil {
		return types.Invalid
	}
	return t.Meta
}

func (v *Validator) attrType(e expr.Expr) *types.Type {
	if sym, ok := e.(*expr.SymbolExpr); ok && v.schema != nil {
		if k, ok := v.schema.AttrIndex(sym.ID); ok {
			return v.schema.Attrs[k].Type
		}
	}
	return types.TypeInvalid
}

func (v *Validator) literal(e expr.Expr) types.Meta {
	val, ok := expr.PrimitiveOf(v.simplified(e))
	if !ok {
		v.errorf(e, diag.InvalidFilterLiteral, expr.Format(e))
		return types.Invalid
	}
	switch m := val.Meta(); {
	case m == types.Rstring:
		return types.Rstring
	case m.IsIntegral():
		return types.Int64
	case m.IsFloat():
		return types.Float64
	case m == types.Boolean:
		return types.Boolean
	}
	v.errorf(e, diag.InvalidFilterLiteralType, expr.Format(e))
	return types.Invalid
}

// lookup resolves an attribute of output port 0.  A missing attribute is
// reported along with the closest attribute name, if any is close.
func (v *Validator) lookup(sym *expr.SymbolExpr) *types.Type {
	if v.schema != nil {
		if k, ok := v.schema.AttrIndex(sym.ID); ok {
			return v.schema.Attrs[k].Type
		}
	}
	d := v.reporter.Error(sym.Loc, diag.FilterSymbolNotInOutput, sym.ID)
	if hint := v.closest(sym.ID); hint != "" {
		v.reporter.Detail(d, sym.Loc, diag.FilterSymbolHint, hint)
	}
	return nil
}

func (v *Validator) closest(name string) string {
	if v.schema == nil {
		return ""
	}
	best, bestDist := "", len(name)/2+1
	for _, a := range v.schema.Attrs {
		if d := levenshtein.ComputeDistance(name, a.Name); d < bestDist {
			best, bestDist = a.Name, d
		}
	}
	return best
}

// canCast reports whether a value of meta type from widens to to without
// loss.
func canCast(from, to types.Meta) bool {
	switch from {
	case types.Int8:
		return to == types.Int16 || to == types.Int32 || to == types.Int64
	case types.Int16:
		return to == types.Int32 || to == types.Int64
	case types.Int32:
		return to == types.Int64
	case types.Uint8:
		return to == types.Uint16 || to == types.Uint32 || to == types.Uint64 || to == types.Int64
	case types.Uint16:
		return to == types.Uint32 || to == types.Uint64 || to == types.Int64
	case types.Uint32:
		return to == types.Uint64 || to == types.Int64
	case types.Uint64:
		return to == types.Int64
	case types.Float32:
		return to == types.Float64
	}
	return false
}
