// Package toolkit locates versioned toolkits on a search path, selects
// one version of each toolkit so that every declared dependency is
// satisfied, and indexes the symbols the selected toolkits define.
package toolkit

import (
	"fmt"
	"path/filepath"
)

type Dependency struct {
	Name  string
	Range Range
}

func (d Dependency) String() string {
	return fmt.Sprintf("%s%s", d.Name, d.Range)
}

type Toolkit struct {
	Name                   string
	Version                Version
	RequiredProductVersion Range
	Description            string
	Dependencies           []Dependency
	// Dir is the toolkit root and File its toolkit.xml.
	Dir  string
	File string
	// Current marks the toolkit being compiled and SPL the standard
	// toolkit.  They are loaded first and second.
	Current bool
	SPL     bool

	elem *ToolkitElem
}

func (t *Toolkit) String() string {
	return fmt.Sprintf("%s(%s)", t.Name, t.Version)
}

// Namespaces returns the namespaces declared in the toolkit's model.
func (t *Toolkit) Namespaces() []NamespaceElem {
	if t.elem == nil {
		return nil
	}
	return t.elem.Namespaces
}

// DependsOn reports whether t declares a dependency on other's name
// whose range contains other's version.
func (t *Toolkit) DependsOn(other *Toolkit) bool {
	for _, d := range t.Dependencies {
		if d.Name == other.Name && d.Range.Contains(other.Version) {
			return true
		}
	}
	return false
}

// SatisfiesDependencies reports whether other, if loaded, would meet
// every dependency t declares on other's name.  It is true when t does
// not depend on other's name at all.
func (t *Toolkit) SatisfiesDependencies(other *Toolkit) bool {
	_, ok := t.unsatisfied(other)
	return !ok
}

func (t *Toolkit) unsatisfied(other *Toolkit) (Dependency, bool) {
	for _, d := range t.Dependencies {
		if d.Name == other.Name && !d.Range.Contains(other.Version) {
			return d, true
		}
	}
	return Dependency{}, false
}

// newToolkit builds a toolkit from an element of the toolkit.xml in dir.
// Dependencies come from info when present.
func newToolkit(elem *ToolkitElem, info *InfoModel, dir, file string) (*Toolkit, error) {
	version, err := ParseVersion(elem.Version)
	if err != nil {
		return nil, fmt.Errorf("toolkit %s: %w", elem.Name, err)
	}
	tk := &Toolkit{
		Name:        elem.Name,
		Version:     version,
		Description: elem.Description,
		Dir:         filepath.Clean(dir),
		File:        file,
		elem:        elem,
	}
	required := elem.RequiredProductVersion
	deps := elem.Dependencies
	if info != nil {
		if required == "" {
			required = info.Identity.RequiredProductVersion
		}
		deps = info.Dependencies
	}
	if required != "" {
		if tk.RequiredProductVersion, err = ParseRange(required); err != nil {
			return nil, fmt.Errorf("toolkit %s: %w", elem.Name, err)
		}
	}
	for _, d := range deps {
		r, err := ParseRange(d.Version)
		if err != nil {
			return nil, fmt.Errorf("toolkit %s dependency %s: %w", elem.Name, d.Name, err)
		}
		tk.Dependencies = append(tk.Dependencies, Dependency{Name: d.Name, Range: r})
	}
	return tk, nil
}
