package main

import (
	"fmt"
	"os"

	_ "github.com/brimdata/splc/cmd/splc/filter"
	_ "github.com/brimdata/splc/cmd/splc/place"
	_ "github.com/brimdata/splc/cmd/splc/resolve"
	"github.com/brimdata/splc/cmd/splc/root"
)

func main() {
	if err := root.Splc.Exec(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
