package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared with config handling.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// templateFlags holds template lookup flags.
type templateFlags struct {
	dir string
	key string
}

// renderFlags holds rendering policy flags.
type renderFlags struct {
	fractions string
	emphasis  string
	units     string
}

// cliFlags holds all flags for the cook2tex command.
type cliFlags struct {
	common    commonFlags
	templates templateFlags
	render    renderFlags
	output    string
	workers   int
	noBook    bool
	version   bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show per-file timing")
}

// addTemplateFlags adds template lookup flags to a FlagSet.
func addTemplateFlags(fs *flag.FlagSet, f *templateFlags) {
	fs.StringVarP(&f.dir, "templates", "t", "", "directory containing LaTeX templates")
	fs.StringVar(&f.key, "template-key", "", "metadata key naming a per-recipe template (default: template)")
}

// addRenderFlags adds rendering policy flags to a FlagSet.
func addRenderFlags(fs *flag.FlagSet, f *renderFlags) {
	fs.StringVar(&f.fractions, "fractions", "", "fraction policy: decimal, vulgar")
	fs.StringVar(&f.emphasis, "emphasis", "", "LaTeX command for ingredient names in steps (default: emph)")
	fs.StringVarP(&f.units, "units", "u", "", "TOML unit alias file")
}

// parseFlags parses command-line flags and returns the positional
// collection directories.
func parseFlags(args []string, errOut io.Writer) (*cliFlags, []string, error) {
	fs := flag.NewFlagSet("cook2tex", flag.ContinueOnError)
	f := &cliFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output directory for rendered LaTeX")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.BoolVar(&f.noBook, "no-book", false, "skip book index assembly in main.tex")
	fs.BoolVar(&f.version, "version", false, "print version and exit")

	addCommonFlags(fs, &f.common)
	addTemplateFlags(fs, &f.templates)
	addRenderFlags(fs, &f.render)

	fs.SetOutput(errOut)
	fs.Usage = func() { printUsage(errOut, fs) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
