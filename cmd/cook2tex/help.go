package main

import (
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// printUsage writes the full usage text.
func printUsage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprint(w, `cook2tex - convert Cooklang recipes to LaTeX

Usage:
  cook2tex -t TEMPLATES -o OUTPUT [flags] COLLECTION...

Each COLLECTION is a directory of .cook recipe files. Its structure is
mirrored under OUTPUT with every recipe rendered to a .tex file through
the templates in TEMPLATES. Non-template files in TEMPLATES (classes,
styles, main.tex) are copied alongside; a main.tex containing %{{recipes}}
receives a chapter/input index over all converted recipes.

Flags:
`)
	fmt.Fprintln(w, fs.FlagUsages())
	fmt.Fprint(w, `Examples:
  cook2tex -t templates -o book soups desserts
  cook2tex -t templates -o out --fractions vulgar --units units.toml meals
  cook2tex -c cookbook.yaml
`)
}

// printUsageHint points at --help after a validation failure.
func printUsageHint(w io.Writer) {
	fmt.Fprintln(w, `run "cook2tex --help" for usage`)
}
