package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	cook2tex "github.com/alnah/go-cook2tex"
	"github.com/alnah/go-cook2tex/internal/config"
	"github.com/alnah/go-cook2tex/internal/fileutil"
	"github.com/alnah/go-cook2tex/internal/hints"
)

// bookMainFile is the support file receiving the generated recipe index.
const bookMainFile = "main.tex"

// settings is the merged view of config file and flags; flags win.
type settings struct {
	templatesDir string
	outputDir    string
	collections  []string
	templateKey  string
	fractions    string
	emphasis     string
	unitsFile    string
	workers      int
	book         bool
	quiet        bool
	verbose      bool
}

// mergeSettings folds the config file under the flags.
func mergeSettings(flags *cliFlags, collections []string, cfg *config.Config) settings {
	s := settings{
		templatesDir: flags.templates.dir,
		outputDir:    flags.output,
		collections:  collections,
		templateKey:  flags.templates.key,
		fractions:    flags.render.fractions,
		emphasis:     flags.render.emphasis,
		unitsFile:    flags.render.units,
		workers:      flags.workers,
		book:         !flags.noBook && cfg.BookEnabled(),
		quiet:        flags.common.quiet,
		verbose:      flags.common.verbose,
	}

	if s.templatesDir == "" {
		s.templatesDir = cfg.Templates.Dir
	}
	if s.outputDir == "" {
		s.outputDir = cfg.Output.Dir
	}
	if len(s.collections) == 0 {
		s.collections = cfg.Collections
	}
	if s.templateKey == "" {
		s.templateKey = cfg.Templates.Key
	}
	if s.fractions == "" {
		s.fractions = cfg.Render.Fractions
	}
	if s.emphasis == "" {
		s.emphasis = cfg.Render.Emphasis
	}
	if s.unitsFile == "" {
		s.unitsFile = cfg.Units.File
	}

	return s
}

// validate checks that the merged settings name everything a run needs.
func (s *settings) validate() error {
	if s.templatesDir == "" {
		return ErrNoTemplateDir
	}
	if s.outputDir == "" {
		return ErrNoOutputDir
	}
	if len(s.collections) == 0 {
		return ErrNoCollections
	}
	return validateWorkers(s.workers)
}

// converterOptions translates settings into library options.
func (s *settings) converterOptions(units *cook2tex.UnitTable) []cook2tex.Option {
	var opts []cook2tex.Option
	if s.templateKey != "" {
		opts = append(opts, cook2tex.WithTemplateKey(s.templateKey))
	}
	if s.fractions != "" {
		opts = append(opts, cook2tex.WithFractions(s.fractions))
	}
	if s.emphasis != "" {
		opts = append(opts, cook2tex.WithEmphasis(s.emphasis))
	}
	if units != nil {
		opts = append(opts, cook2tex.WithUnits(units))
	}
	return opts
}

// run executes a full conversion and returns the process exit code.
//
// Per-file failures are reported and do not abort the run; the exit code
// still reflects them. Only template registry loading and output-root
// establishment are fatal, since nothing can be rendered without them.
func run(args []string, stdout, stderr io.Writer) int {
	flags, collections, err := parseFlags(args, stderr)
	if err != nil {
		return ExitUsage
	}

	if flags.version {
		fmt.Fprintf(stdout, "cook2tex %s\n", Version)
		return ExitSuccess
	}

	cfg := config.DefaultConfig()
	if flags.common.config != "" {
		cfg, err = config.LoadConfig(flags.common.config)
		if err != nil {
			fmt.Fprintln(stderr, withHint(err))
			return exitCodeFor(err)
		}
	}

	s := mergeSettings(flags, collections, cfg)
	if err := s.validate(); err != nil {
		fmt.Fprintln(stderr, withHint(err))
		printUsageHint(stderr)
		return exitCodeFor(err)
	}

	registry, err := cook2tex.LoadRegistry(s.templatesDir)
	if err != nil {
		fmt.Fprintln(stderr, withHint(err))
		return exitCodeFor(err)
	}

	var units *cook2tex.UnitTable
	if s.unitsFile != "" {
		units, err = cook2tex.LoadUnits(s.unitsFile)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return exitCodeFor(err)
		}
	}

	conv, err := cook2tex.NewConverter(registry, s.converterOptions(units)...)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitCodeFor(err)
	}

	files, err := discoverRecipes(s.collections, s.outputDir)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitCodeFor(err)
	}
	if len(files) == 0 {
		fmt.Fprintln(stderr, "no recipe files found")
		return ExitGeneral
	}

	if err := fileutil.EnsureDir(s.outputDir); err != nil {
		fmt.Fprintln(stderr, err)
		return ExitIO
	}
	if err := copySupportFiles(registry, s.outputDir); err != nil {
		fmt.Fprintln(stderr, err)
		return ExitIO
	}

	results := convertBatch(context.Background(), conv, files, s.workers)

	if s.book {
		if err := assembleBook(registry, s.outputDir, files, results); err != nil {
			fmt.Fprintf(stderr, "FAILED %s: %v\n", bookMainFile, err)
			results = append(results, conversionResult{InputPath: bookMainFile, Err: err})
		}
	}

	if failed := printResults(results, s.quiet, s.verbose, stdout, stderr); failed > 0 {
		return ExitGeneral
	}
	return ExitSuccess
}

// copySupportFiles reproduces non-template files from the template
// directory in the output root, so the rendered tree compiles as-is.
func copySupportFiles(registry *cook2tex.Registry, outputDir string) error {
	for _, name := range registry.SupportFiles() {
		src := filepath.Join(registry.Dir(), name)
		dst := filepath.Join(outputDir, name)
		if err := fileutil.CopyFile(src, dst); err != nil {
			return fmt.Errorf("copying support file %s: %w", name, err)
		}
	}
	return nil
}

// assembleBook substitutes the generated recipe index into the output
// main.tex. Only successfully converted recipes are listed, grouped by
// collection in discovery order.
func assembleBook(registry *cook2tex.Registry, outputDir string, files []recipeFile, results []conversionResult) error {
	mainPath := filepath.Join(outputDir, bookMainFile)
	if !fileutil.FileExists(mainPath) {
		return nil
	}

	source, err := os.ReadFile(mainPath) // #nosec G304 -- output main.tex
	if err != nil {
		return fmt.Errorf("reading %s: %w", mainPath, err)
	}

	text, ok, err := cook2tex.RenderBook(string(source), bookCollections(files, results))
	if err != nil || !ok {
		return err
	}
	return fileutil.WriteFile(mainPath, []byte(text))
}

// bookCollections groups successful conversions by collection, preserving
// discovery order for both collections and recipes.
func bookCollections(files []recipeFile, results []conversionResult) []cook2tex.BookCollection {
	var collections []cook2tex.BookCollection
	index := make(map[string]int)

	for i, f := range files {
		if i >= len(results) || results[i].Err != nil {
			continue
		}
		pos, ok := index[f.Collection]
		if !ok {
			pos = len(collections)
			index[f.Collection] = pos
			collections = append(collections, cook2tex.BookCollection{Name: f.Collection})
		}
		collections[pos].Inputs = append(collections[pos].Inputs, f.texRelPath())
	}

	return collections
}

// withHint appends an actionable hint to well-known errors.
func withHint(err error) string {
	msg := err.Error()
	switch {
	case errors.Is(err, cook2tex.ErrTemplateDirNotFound):
		msg += hints.ForTemplateDirNotFound("")
	case errors.Is(err, config.ErrConfigNotFound):
		msg += hints.ForConfigNotFound(nil)
	case errors.Is(err, ErrNoTemplateDir):
		msg += hints.ForTemplateDirNotFound("templates")
	}
	return msg
}
