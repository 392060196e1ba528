package toolkit

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/brimdata/splc/compiler/ast"
	"github.com/brimdata/splc/compiler/parser"
)

var ErrVersion = errors.New("malformed version")

// Version is a dotted toolkit version: one to three non-negative numbers
// optionally followed by a qualifier, as in 1, 1.2, 1.2.3 or 1.2.3.beta.
// Missing numeric components compare as zero.
type Version struct {
	Nums      []int
	Qualifier string
}

func ParseVersion(s string) (Version, error) {
	if strings.TrimSpace(s) == "" {
		return Version{}, fmt.Errorf("%w: empty version", ErrVersion)
	}
	n, err := parser.ParseVersion(s)
	if err != nil {
		return Version{}, fmt.Errorf("%w: %q", ErrVersion, strings.TrimSpace(s))
	}
	return versionOf(n)
}

func versionOf(n *ast.Version) (Version, error) {
	v := Version{Qualifier: n.Qualifier}
	for _, text := range n.Nums {
		num, err := strconv.Atoi(text)
		if err != nil {
			return Version{}, fmt.Errorf("%w: component %q: %w", ErrVersion, text, err)
		}
		v.Nums = append(v.Nums, num)
	}
	return v, nil
}

func MustParseVersion(s string) Version {
	v, err := ParseVersion(s)
	if err != nil {
		panic(err)
	}
	return v
}

func (v Version) IsZero() bool { return len(v.Nums) == 0 }

func (v Version) num(k int) int {
	if k < len(v.Nums) {
		return v.Nums[k]
	}
	return 0
}

// Compare returns -1, 0 or +1 as v is less than, equal to or greater
// than w.
func (v Version) Compare(w Version) int {
	for k := range 3 {
		if a, b := v.num(k), w.num(k); a != b {
			if a < b {
				return -1
			}
			return 1
		}
	}
	return strings.Compare(v.Qualifier, w.Qualifier)
}

func (v Version) Equal(w Version) bool { return v.Compare(w) == 0 }

func (v Version) String() string {
	var b strings.Builder
	for k, n := range v.Nums {
		if k > 0 {
			b.WriteByte('.')
		}
		b.WriteString(strconv.Itoa(n))
	}
	if v.Qualifier != "" {
		for k := len(v.Nums); k < 3; k++ {
			b.WriteString(".0")
		}
		b.WriteByte('.')
		b.WriteString(v.Qualifier)
	}
	return b.String()
}

// Range is a version interval.  The bracketed forms [a,b), (a,b], [a,b]
// and (a,b) have the usual meaning; a bare version a means >= a.  The
// zero Range contains every version.
type Range struct {
	Low, High     Version
	LowInclusive  bool
	HighInclusive bool
}

func ParseRange(s string) (Range, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Range{}, fmt.Errorf("%w: empty range", ErrVersion)
	}
	n, err := parser.ParseRange(s)
	if err != nil {
		return Range{}, fmt.Errorf("%w: range %q: %w", ErrVersion, s, err)
	}
	low, err := versionOf(n.Low)
	if err != nil {
		return Range{}, err
	}
	if n.High == nil {
		return Range{Low: low, LowInclusive: true}, nil
	}
	high, err := versionOf(n.High)
	if err != nil {
		return Range{}, err
	}
	if low.Compare(high) > 0 {
		return Range{}, fmt.Errorf("%w: range %q is empty", ErrVersion, s)
	}
	return Range{
		Low:           low,
		High:          high,
		LowInclusive:  n.LowInclusive,
		HighInclusive: n.HighInclusive,
	}, nil
}

func MustParseRange(s string) Range {
	r, err := ParseRange(s)
	if err != nil {
		panic(err)
	}
	return r
}

func (r Range) IsZero() bool { return r.Low.IsZero() && r.High.IsZero() }

func (r Range) Contains(v Version) bool {
	if !r.Low.IsZero() {
		c := v.Compare(r.Low)
		if c < 0 || c == 0 && !r.LowInclusive {
			return false
		}
	}
	if !r.High.IsZero() {
		c := v.Compare(r.High)
		if c > 0 || c == 0 && !r.HighInclusive {
			return false
		}
	}
	return true
}

func (r Range) String() string {
	if r.IsZero() {
		return "*"
	}
	if r.High.IsZero() {
		return r.Low.String()
	}
	lb, rb := "(", ")"
	if r.LowInclusive {
		lb = "["
	}
	if r.HighInclusive {
		rb = "]"
	}
	return lb + r.Low.String() + "," + r.High.String() + rb
}
