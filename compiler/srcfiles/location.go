package srcfiles

import "fmt"

// Location is a point in a source file.  Locations are values so a
// single location may be shared by any number of IR nodes.
type Location struct {
	File   string `json:"file,omitempty" yaml:"file,omitempty"`
	Line   int    `json:"line" yaml:"line"`
	Column int    `json:"column" yaml:"column"`
}

// At returns the Location of line and column in file.
func At(file string, line, column int) Location {
	return Location{File: file, Line: line, Column: column}
}

func (l Location) IsValid() bool { return l.Line > 0 }

func (l Location) String() string {
	if !l.IsValid() {
		if l.File != "" {
			return l.File
		}
		return "<unknown>"
	}
	if l.File == "" {
		return fmt.Sprintf("%d:%d", l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}
