package srcfiles

import (
	"sort"
)

// File holds the line offsets of one registered source text.
type File struct {
	Name  string
	lines []int
	size  int
	start int
}

func newFile(name string, start int, src []byte) File {
	var lines []int
	line := 0
	for offset, b := range src {
		if line >= 0 {
			lines = append(lines, line)
		}
		line = -1
		if b == '\n' {
			line = offset + 1
		}
	}
	if len(lines) == 0 {
		lines = []int{0}
	}
	return File{
		Name:  name,
		lines: lines,
		size:  len(src),
		start: start,
	}
}

// NumLines returns the number of lines in f.
func (f File) NumLines() int {
	return len(f.lines)
}

// Line returns the text of the 1-based line n without its newline.
func (f File) Line(src string, n int) (string, bool) {
	if n < 1 || n > len(f.lines) {
		return "", false
	}
	start := f.lines[n-1]
	end := f.size
	if n < len(f.lines) {
		end = f.lines[n]
	}
	b := src[f.start+start : f.start+end]
	if len(b) > 0 && b[len(b)-1] == '\n' {
		b = b[:len(b)-1]
	}
	return b, true
}

// Position converts a byte offset relative to the start of f into
// a Location.
func (f File) Position(offset int) Location {
	if offset < 0 || offset > f.size {
		return Location{}
	}
	i := searchLine(f.lines, offset)
	return Location{
		File:   f.Name,
		Line:   i + 1,
		Column: offset - f.lines[i] + 1,
	}
}

func searchLine(lines []int, offset int) int {
	return sort.Search(len(lines), func(i int) bool { return lines[i] > offset }) - 1
}
