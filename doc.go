// Package cook2tex converts Cooklang recipes to LaTeX documents using
// user-supplied templates.
//
// # Quick Start
//
// Load a template registry, create a converter, and convert a recipe:
//
//	registry, err := cook2tex.LoadRegistry("templates")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	conv, err := cook2tex.NewConverter(registry)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := conv.Convert(ctx, cook2tex.Input{
//	    Source: ">> title: Tomato Soup\n\nBoil @tomato{500%g} with @salt.",
//	    Name:   "tomato.cook",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("tomato.tex", result.TeX, 0644)
//
// # Conversion Pipeline
//
// The conversion process follows these stages:
//
//  1. Cooklang parsing via aquilax/cooklang-go (external grammar)
//  2. AST adaptation into the internal recipe model
//  3. Template selection (global default, or per-recipe override via the
//     "template" metadata key)
//  4. Placeholder substitution with LaTeX-escaped content
//
// # Templates
//
// Templates are ordinary LaTeX files carrying %{{name}} markers. Because
// the marker opens with the LaTeX comment character, an unrendered
// template still compiles. Recognized recipe placeholders are
// %{{title}}, %{{description}}, %{{metadata}}, %{{ingredients}} and
// %{{steps}}. A recipe feature with no matching placeholder in the
// selected template is a template authoring error and fails the
// conversion with ErrMissingPlaceholder.
//
// Files in the template directory without recipe placeholders (document
// classes, style files, a book main.tex) are support files; the CLI
// copies them into the output tree. A main.tex containing %{{recipes}}
// receives a generated \chapter and \input index over all converted
// collections, see RenderBook.
//
// # Configuration
//
// Use functional options to customize the converter:
//
//	conv, err := cook2tex.NewConverter(registry,
//	    cook2tex.WithFractions(cook2tex.FractionsVulgar),
//	    cook2tex.WithTemplateKey("layout"),
//	    cook2tex.WithEmphasis("textbf"),
//	)
//
// # Batch Conversion
//
// A Converter is stateless after construction and safe for concurrent
// use, so one instance serves a whole worker pool. The cook2tex command
// walks collection directories and mirrors them into an output tree; see
// cmd/cook2tex.
package cook2tex
