package cook2tex

import (
	"fmt"
	"strings"
)

// Fraction policy constants for quantity formatting.
const (
	FractionsDecimal = "decimal"
	FractionsVulgar  = "vulgar"
)

// DefaultTemplateKey is the metadata key a recipe uses to name its template.
const DefaultTemplateKey = "template"

// DefaultEmphasis is the LaTeX command used for ingredient names in steps.
const DefaultEmphasis = "emph"

// Recipe is the normalized representation of one parsed recipe source.
// Built once by the adapter, immutable thereafter, consumed by the renderer.
type Recipe struct {
	Title       string
	Description string
	Metadata    []MetaEntry
	Ingredients []Ingredient
	Steps       []Step
}

// MetaEntry is one metadata key/value pair in rendering order.
type MetaEntry struct {
	Key   string
	Value string
}

// MetadataValue returns the value for a metadata key, or "" if absent.
// Lookup is case-insensitive since Cooklang metadata keys are free-form.
func (r *Recipe) MetadataValue(key string) string {
	for _, m := range r.Metadata {
		if strings.EqualFold(m.Key, key) {
			return m.Value
		}
	}
	return ""
}

// Ingredient is one entry in a recipe's ingredient list.
type Ingredient struct {
	Name     string
	Quantity *Quantity // nil when the ingredient has no amount
	Note     string    // inline preparation note, may be empty
}

// Quantity is a numeric amount with an optional unit.
// Amount is nil for non-numeric quantities ("some", "a pinch"); Raw then
// carries the original text.
type Quantity struct {
	Amount *float64
	Raw    string
	Unit   string
}

// Step is an ordered sequence of inline elements preserving reading order.
type Step struct {
	Inlines []Inline
}

// Inline kinds.
const (
	InlineText       = "text"
	InlineIngredient = "ingredient"
	InlineTimer      = "timer"
	InlineCookware   = "cookware"
)

// Inline is one element of a step: plain text, an ingredient reference
// (index into Recipe.Ingredients), a timer, or a cookware reference.
type Inline struct {
	Kind       string
	Text       string    // InlineText
	Ingredient int       // InlineIngredient: index into Recipe.Ingredients
	Timer      *Timer    // InlineTimer
	Cookware   *Cookware // InlineCookware
}

// Timer is a duration with an optional name ("rest", "oven").
type Timer struct {
	Name     string
	Duration float64
	Unit     string
}

// Cookware is a referenced piece of equipment.
type Cookware struct {
	Name string
}

// Input contains conversion parameters for a single recipe.
type Input struct {
	Source string // Cooklang source text (required)
	Name   string // source file name, used in diagnostics (optional)
}

// ConvertResult holds the outcome of converting one recipe.
type ConvertResult struct {
	TeX      []byte // rendered LaTeX document
	Template string // name of the template that was applied
	Title    string // recipe title, for reporting
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	templateKey string
	fractions   string
	emphasis    string
	units       *UnitTable
}

// WithTemplateKey sets the metadata key used for per-recipe template
// selection. Panics if key is empty (programmer error).
func WithTemplateKey(key string) Option {
	if key == "" {
		panic("cook2tex: WithTemplateKey key must not be empty")
	}
	return func(c *Converter) {
		c.cfg.templateKey = key
	}
}

// WithFractions sets the quantity fraction policy:
// FractionsDecimal or FractionsVulgar.
func WithFractions(policy string) Option {
	return func(c *Converter) {
		c.cfg.fractions = policy
	}
}

// WithEmphasis sets the LaTeX command wrapping ingredient names inside
// step text, without the leading backslash (e.g. "textbf").
func WithEmphasis(command string) Option {
	return func(c *Converter) {
		c.cfg.emphasis = command
	}
}

// WithUnits sets the unit alias table applied during quantity formatting.
func WithUnits(units *UnitTable) Option {
	return func(c *Converter) {
		c.cfg.units = units
	}
}

// validate checks option-derived configuration.
func (cfg *converterConfig) validate() error {
	switch cfg.fractions {
	case FractionsDecimal, FractionsVulgar:
	default:
		return fmt.Errorf("%w: %q (must be %s or %s)",
			ErrInvalidFractionPolicy, cfg.fractions, FractionsDecimal, FractionsVulgar)
	}
	if cfg.emphasis == "" || !isCommandName(cfg.emphasis) {
		return fmt.Errorf("%w: %q (must be a LaTeX command name without backslash)",
			ErrInvalidEmphasis, cfg.emphasis)
	}
	if cfg.templateKey == "" {
		return fmt.Errorf("%w: empty", ErrInvalidTemplateKey)
	}
	return nil
}

// isCommandName reports whether s is a plain LaTeX command name (letters only).
func isCommandName(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return s != ""
}
