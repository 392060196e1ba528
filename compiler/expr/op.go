package expr

import "fmt"

type Op int

const (
	OpInvalid Op = iota
	OpPlusPlus
	OpMinusMinus
	OpBang
	OpTilde
	OpNeg
	OpStar
	OpSlash
	OpMod
	OpPlus
	OpMinus
	OpAmp
	OpHat
	OpBar
	OpAmpAmp
	OpBarBar
	OpLess
	OpLeq
	OpGreater
	OpGeq
	OpNeq
	OpEq
	OpLShift
	OpRShift
	OpIn
	OpAssign
	OpStarEq
	OpSlashEq
	OpModEq
	OpPlusEq
	OpMinusEq
	OpAmpEq
	OpHatEq
	OpBarEq
	OpLShiftEq
	OpRShiftEq
	OpDotStar
	OpDotSlash
	OpDotMod
	OpDotPlus
	OpDotMinus
	OpDotAmp
	OpDotHat
	OpDotBar
	OpDotLess
	OpDotLeq
	OpDotGreater
	OpDotGeq
	OpDotNeq
	OpDotEq
	OpDotLShift
	OpDotRShift
	OpDot
	OpSubscript
	OpCall
	OpCast
	OpConditional
	numOps
)

var opSpellings = [numOps]string{
	OpInvalid:     "<INVALID>",
	OpPlusPlus:    "++",
	OpMinusMinus:  "--",
	OpBang:        "!",
	OpTilde:       "~",
	OpNeg:         "-",
	OpStar:        "*",
	OpSlash:       "/",
	OpMod:         "%",
	OpPlus:        "+",
	OpMinus:       "-",
	OpAmp:         "&",
	OpHat:         "^",
	OpBar:         "|",
	OpAmpAmp:      "&&",
	OpBarBar:      "||",
	OpLess:        "<",
	OpLeq:         "<=",
	OpGreater:     ">",
	OpGeq:         ">=",
	OpNeq:         "!=",
	OpEq:          "==",
	OpLShift:      "<<",
	OpRShift:      ">>",
	OpIn:          "in",
	OpAssign:      "=",
	OpStarEq:      "*=",
	OpSlashEq:     "/=",
	OpModEq:       "%=",
	OpPlusEq:      "+=",
	OpMinusEq:     "-=",
	OpAmpEq:       "&=",
	OpHatEq:       "^=",
	OpBarEq:       "|=",
	OpLShiftEq:    "<<=",
	OpRShiftEq:    ">>=",
	OpDotStar:     ".*",
	OpDotSlash:    "./",
	OpDotMod:      ".%",
	OpDotPlus:     ".+",
	OpDotMinus:    ".-",
	OpDotAmp:      ".&",
	OpDotHat:      ".^",
	OpDotBar:      ".|",
	OpDotLess:     ".<",
	OpDotLeq:      ".<=",
	OpDotGreater:  ".>",
	OpDotGeq:      ".>=",
	OpDotNeq:      ".!=",
	OpDotEq:       ".==",
	OpDotLShift:   ".<<",
	OpDotRShift:   ".>>",
	OpDot:         ".",
	OpSubscript:   "<subscript>",
	OpCall:        "<call>",
	OpCast:        "<cast>",
	OpConditional: "<?:>",
}

func (o Op) String() string {
	if o < 0 || o >= numOps {
		return fmt.Sprintf("op(%d)", int(o))
	}
	return opSpellings[o]
}

// LookupBinaryOp returns the binary operator spelled s.  The spelling "-"
// maps to subtraction.
func LookupBinaryOp(s string) (Op, bool) {
	if s == "-" {
		return OpMinus, true
	}
	for o := OpStar; o <= OpDotRShift; o++ {
		if opSpellings[o] == s {
			return o, true
		}
	}
	return OpInvalid, false
}

// IsAssign reports whether o is an assignment operator.
func (o Op) IsAssign() bool {
	return o >= OpAssign && o <= OpRShiftEq
}

// IsDotted reports whether o is an element-wise operator.
func (o Op) IsDotted() bool {
	return o >= OpDotStar && o <= OpDotRShift
}

// IsComparison reports whether o compares its operands.
func (o Op) IsComparison() bool {
	switch o {
	case OpLess, OpLeq, OpGreater, OpGeq, OpNeq, OpEq:
		return true
	}
	return false
}

// Undotted maps an element-wise operator to its scalar counterpart.
func (o Op) Undotted() Op {
	if !o.IsDotted() {
		return o
	}
	return undotted[o-OpDotStar]
}

var undotted = [...]Op{
	OpStar, OpSlash, OpMod, OpPlus, OpMinus, OpAmp, OpHat, OpBar,
	OpLess, OpLeq, OpGreater, OpGeq, OpNeq, OpEq, OpLShift, OpRShift,
}
