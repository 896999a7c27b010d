package cook2tex

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Placeholder names recognized in templates.
const (
	PlaceholderTitle       = "title"
	PlaceholderDescription = "description"
	PlaceholderMetadata    = "metadata"
	PlaceholderIngredients = "ingredients"
	PlaceholderSteps       = "steps"

	// PlaceholderRecipes marks where the generated book index goes in a
	// support file such as main.tex. It is filled by the collection
	// walker, not by the per-recipe renderer.
	PlaceholderRecipes = "recipes"
)

// recipePlaceholders are the per-recipe insertion points.
var recipePlaceholders = []string{
	PlaceholderTitle,
	PlaceholderDescription,
	PlaceholderMetadata,
	PlaceholderIngredients,
	PlaceholderSteps,
}

var knownPlaceholders = map[string]bool{
	PlaceholderTitle:       true,
	PlaceholderDescription: true,
	PlaceholderMetadata:    true,
	PlaceholderIngredients: true,
	PlaceholderSteps:       true,
	PlaceholderRecipes:     true,
}

// renderer substitutes recipe-derived content into template placeholders.
// Pure function of (recipe, template) given its fixed configuration.
type renderer struct {
	fmtr        *Formatter
	emphasis    string
	templateKey string
}

// Render produces the final LaTeX text for one recipe and one template.
//
// Every recipe feature that is present must have a matching placeholder in
// the template; a gap is a template authoring error reported as
// ErrMissingPlaceholder, never a silent skip that would truncate the
// document.
func (rd *renderer) Render(recipe *Recipe, t *Template) (string, error) {
	sections := []struct {
		name    string
		content string
	}{
		{PlaceholderTitle, EscapeLaTeX(recipe.Title)},
		{PlaceholderDescription, EscapeLaTeX(recipe.Description)},
		{PlaceholderMetadata, rd.metadataBlock(recipe)},
		{PlaceholderIngredients, rd.ingredientsBlock(recipe)},
		{PlaceholderSteps, rd.stepsBlock(recipe)},
	}

	values := make(map[string]string, len(sections))
	for _, s := range sections {
		if s.content != "" && !t.Has(s.name) {
			return "", fmt.Errorf("%w: template %q has no %%{{%s}} but recipe %q needs it",
				ErrMissingPlaceholder, t.Name, s.name, recipe.Title)
		}
		values[s.name] = s.content
	}

	return t.fill(values), nil
}

// metadataBlock renders metadata pairs as a description list, in the
// recipe's stored order. The template-selection key is a directive, not
// content, and is held out.
func (rd *renderer) metadataBlock(recipe *Recipe) string {
	var items Builder
	for _, m := range recipe.Metadata {
		if strings.EqualFold(m.Key, rd.templateKey) {
			continue
		}
		items.AddLine(`\item[` + EscapeLaTeX(titleCase(m.Key)) + `] ` + EscapeLaTeX(m.Value))
	}
	if len(items.lines) == 0 {
		return ""
	}

	var b Builder
	b.AddEnv("description", &items)
	return b.Build()
}

// ingredientsBlock renders one \item per ingredient as
// "quantity unit name (note)", omitting absent parts.
func (rd *renderer) ingredientsBlock(recipe *Recipe) string {
	if len(recipe.Ingredients) == 0 {
		return ""
	}

	var items Builder
	for _, ing := range recipe.Ingredients {
		var parts []string
		if qty := rd.fmtr.FormatQuantity(ing.Quantity); qty != "" {
			parts = append(parts, qty)
		}
		parts = append(parts, EscapeLaTeX(ing.Name))
		if ing.Note != "" {
			parts = append(parts, "("+EscapeLaTeX(ing.Note)+")")
		}
		items.AddLine(`\item ` + strings.Join(parts, " "))
	}

	var b Builder
	b.AddEnv("itemize", &items)
	return b.Build()
}

// stepsBlock renders one \item per step, concatenating inline elements in
// reading order.
func (rd *renderer) stepsBlock(recipe *Recipe) string {
	if len(recipe.Steps) == 0 {
		return ""
	}

	var items Builder
	for _, step := range recipe.Steps {
		items.AddLine(`\item ` + rd.stepText(recipe, step))
	}

	var b Builder
	b.AddEnv("enumerate", &items)
	return b.Build()
}

// stepText renders a step's inline elements. Ingredient references render
// as the ingredient's emphasized name so they stand out in the step text.
func (rd *renderer) stepText(recipe *Recipe, step Step) string {
	var b strings.Builder
	for _, in := range step.Inlines {
		switch in.Kind {
		case InlineText:
			b.WriteString(EscapeLaTeX(in.Text))
		case InlineIngredient:
			name := recipe.Ingredients[in.Ingredient].Name
			b.WriteString(`\` + rd.emphasis + `{` + EscapeLaTeX(name) + `}`)
		case InlineTimer:
			b.WriteString(rd.fmtr.FormatTimer(in.Timer))
		case InlineCookware:
			b.WriteString(EscapeLaTeX(in.Cookware.Name))
		}
	}
	return b.String()
}

// titleCase upper-cases the first rune of a metadata key for display.
func titleCase(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || r == utf8.RuneError && size == 1 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
