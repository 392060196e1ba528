package srcfiles

import (
	"fmt"
	"strings"
)

// ErrorList is a list of Errors.
type ErrorList []*Error

// Append appends an Error to e.
func (e *ErrorList) Append(list *List, msg string, loc Location) {
	*e = append(*e, &Error{Msg: msg, Loc: loc, list: list})
}

// Bind points errors created without a source list back at list.
func (e ErrorList) Bind(list *List) {
	for i := range e {
		e[i].list = list
	}
}

// Error concatenates the errors in e with a newline between each.
func (e ErrorList) Error() string {
	var b strings.Builder
	for i, err := range e {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(err.Error())
	}
	return b.String()
}

type Error struct {
	Msg  string
	Loc  Location
	list *List
}

func NewError(list *List, msg string, loc Location) *Error {
	return &Error{Msg: msg, Loc: loc, list: list}
}

func (e *Error) Error() string {
	if !e.Loc.IsValid() {
		if e.Loc.File != "" {
			return fmt.Sprintf("%s in %s", e.Msg, e.Loc.File)
		}
		return e.Msg
	}
	var b strings.Builder
	b.WriteString(e.Msg)
	if e.Loc.File != "" {
		fmt.Fprintf(&b, " in %s", e.Loc.File)
	}
	fmt.Fprintf(&b, " at line %d, column %d", e.Loc.Line, e.Loc.Column)
	line, ok := e.list.LineOf(e.Loc)
	if !ok {
		return b.String()
	}
	fmt.Fprintf(&b, ":\n%s\n", line)
	formatPointError(&b, e.Loc)
	return b.String()
}

func formatPointError(b *strings.Builder, loc Location) {
	col := loc.Column - 1
	for k := range col {
		if k >= col-4 && k != col-1 {
			b.WriteByte('=')
		} else {
			b.WriteByte(' ')
		}
	}
	b.WriteString("^ ===")
}
