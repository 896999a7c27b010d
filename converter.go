package cook2tex

import (
	"context"
	"fmt"
)

// Converter orchestrates the recipe-to-LaTeX pipeline:
// parse -> adapt -> select template -> render.
// Create with NewConverter, then call Convert per recipe. A Converter is
// safe for concurrent use: the registry and configuration are read-only
// after construction.
type Converter struct {
	cfg      converterConfig
	registry *Registry
	renderer *renderer
}

// NewConverter creates a Converter over a loaded template registry.
// Use options to customize behavior (e.g. WithFractions, WithTemplateKey).
func NewConverter(registry *Registry, opts ...Option) (*Converter, error) {
	if registry == nil {
		return nil, fmt.Errorf("%w: nil registry", ErrTemplateDirNotFound)
	}

	c := &Converter{
		cfg: converterConfig{
			templateKey: DefaultTemplateKey,
			fractions:   FractionsDecimal,
			emphasis:    DefaultEmphasis,
		},
		registry: registry,
	}

	for _, opt := range opts {
		opt(c)
	}

	if err := c.cfg.validate(); err != nil {
		return nil, err
	}

	c.renderer = &renderer{
		fmtr: &Formatter{
			Fractions: c.cfg.fractions,
			Units:     c.cfg.units,
		},
		emphasis:    c.cfg.emphasis,
		templateKey: c.cfg.templateKey,
	}

	return c, nil
}

// Registry returns the converter's template registry.
func (c *Converter) Registry() *Registry { return c.registry }

// Convert runs the pipeline for one recipe source and returns the rendered
// LaTeX. The context is checked between stages so batch runs can be
// cancelled; no stage blocks on anything but CPU.
func (c *Converter) Convert(ctx context.Context, input Input) (*ConvertResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	recipe, err := Parse(input.Source, input.Name)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	t, err := c.registry.Select(recipe, c.cfg.templateKey)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", input.Name, err)
	}

	tex, err := c.renderer.Render(recipe, t)
	if err != nil {
		return nil, err
	}

	return &ConvertResult{
		TeX:      []byte(tex),
		Template: t.Name,
		Title:    recipe.Title,
	}, nil
}
