package toolkit

import (
	"errors"

	"github.com/brimdata/splc/compiler/diag"
	"github.com/brimdata/splc/compiler/srcfiles"
)

var ErrDependency = errors.New("toolkit dependencies are not met")

// CheckDependencies verifies the loaded toolkits independently of how
// they were chosen: each must accept the product version, and each
// dependency must name a loaded toolkit whose version is in range.
// Every violation is reported before ErrDependency is returned.
func CheckDependencies(reporter *diag.Reporter, product Version, loaded []*Toolkit) error {
	ok := true
	byName := make(map[string]*Toolkit)
	for _, tk := range loaded {
		loc := srcfiles.Location{File: tk.File}
		if !tk.RequiredProductVersion.Contains(product) {
			reporter.Error(loc, diag.ToolkitMismatchProductVersion, tk.Name, tk.Version.String(), tk.RequiredProductVersion.String(), product.String())
			ok = false
		}
		if prev, found := byName[tk.Name]; !found || prev.Version.Compare(tk.Version) < 0 {
			byName[tk.Name] = tk
		}
	}
	for _, tk := range loaded {
		loc := srcfiles.Location{File: tk.File}
		for _, dep := range tk.Dependencies {
			got, found := byName[dep.Name]
			switch {
			case !found:
				reporter.Error(loc, diag.ToolkitDependencyMissing, tk.Name, tk.Version.String(), dep.Name, dep.Range.String())
				ok = false
			case !dep.Range.Contains(got.Version):
				reporter.Error(loc, diag.ToolkitDependencyMismatch, tk.Name, tk.Version.String(), dep.Name, dep.Range.String(), got.Version.String())
				ok = false
			}
		}
	}
	if !ok {
		return ErrDependency
	}
	return nil
}
