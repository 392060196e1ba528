package expr

import "github.com/brimdata/splc/compiler/types"

// Collection holds the types and called functions of a set of trees.
type Collection struct {
	Types     []*types.Type
	Functions []*Function
}

// Collect gathers every distinct type and every non-intrinsic function
// called in exprs, in first-seen order.
func Collect(exprs ...Expr) *Collection {
	c := &Collection{}
	seenTypes := make(map[*types.Type]bool)
	seenFuncs := make(map[string]bool)
	for _, e := range exprs {
		Inspect(e, func(e Expr) bool {
			if t := TypeOf(e); t != nil && !seenTypes[t] {
				seenTypes[t] = true
				c.Types = append(c.Types, t)
			}
			if call, ok := e.(*CallExpr); ok && call.Fn != nil && !call.Fn.Intrinsic {
				if name := call.Fn.QualifiedName(); !seenFuncs[name] {
					seenFuncs[name] = true
					c.Functions = append(c.Functions, call.Fn)
				}
			}
			return true
		})
	}
	return c
}
