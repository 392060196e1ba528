package charm

import (
	"flag"
	"fmt"
	"os"
	"slices"
	"strings"
)

func displayHelp(p path, showHidden bool) {
	fmt.Fprint(os.Stdout, formatHelp(p, showHidden))
}

func formatHelp(p path, showHidden bool) string {
	spec := p.last().spec
	var b strings.Builder
	fmt.Fprintf(&b, "NAME\n    %s - %s\n\n", p.names(), spec.Short)
	usage := spec.Usage
	if len(p.instances) > 1 {
		parents := strings.TrimSuffix(p.names(), spec.Name)
		usage = parents + usage
	}
	fmt.Fprintf(&b, "USAGE\n    %s\n\n", usage)
	hidden, redacted := flagSets(p)
	var opts []string
	p.flags.VisitAll(func(f *flag.Flag) {
		if !showHidden && hidden[f.Name] {
			return
		}
		line := fmt.Sprintf("    -%s %s", f.Name, f.Usage)
		if f.DefValue != "" && !redacted[f.Name] {
			line += fmt.Sprintf(" (default %q)", f.DefValue)
		}
		opts = append(opts, line)
	})
	if len(opts) > 0 {
		b.WriteString("OPTIONS\n")
		b.WriteString(strings.Join(opts, "\n"))
		b.WriteString("\n\n")
	}
	var children []*Spec
	for _, c := range spec.children {
		if showHidden || !c.Hidden {
			children = append(children, c)
		}
	}
	if len(children) > 0 {
		slices.SortFunc(children, func(a, b *Spec) int { return strings.Compare(a.Name, b.Name) })
		b.WriteString("COMMANDS\n")
		for _, c := range children {
			fmt.Fprintf(&b, "    %-12s %s\n", c.Name, c.Short)
		}
		b.WriteString("\n")
	}
	if long := strings.TrimSpace(spec.Long); long != "" {
		b.WriteString("DESCRIPTION\n")
		for _, line := range strings.Split(long, "\n") {
			if line == "" {
				b.WriteString("\n")
				continue
			}
			fmt.Fprintf(&b, "    %s\n", line)
		}
	}
	return b.String()
}

// flagSets collects the hidden and redacted flags named along the path.
func flagSets(p path) (map[string]bool, map[string]bool) {
	hidden := map[string]bool{"h": true, "help": true, "hidden": true}
	redacted := make(map[string]bool)
	for _, i := range p.instances {
		for _, name := range strings.Split(i.spec.HiddenFlags, ",") {
			hidden[strings.TrimSpace(name)] = true
		}
		for _, name := range strings.Split(i.spec.RedactedFlags, ",") {
			redacted[strings.TrimSpace(name)] = true
		}
	}
	return hidden, redacted
}
