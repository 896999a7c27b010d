package cook2tex

import (
	"bufio"
	"fmt"
	"sort"
	"strings"

	cooklang "github.com/aquilax/cooklang-go"
)

// Metadata keys handled outside the rendered metadata block.
const (
	metaTitle       = "title"
	metaDescription = "description"
)

// Component marker prefixes, as written in Cooklang step text.
const (
	markIngredient = '@'
	markCookware   = '#'
	markTimer      = '~'
)

// preferredMetaKeys render first, in this order. The parser hands metadata
// over as an unordered map, so the adapter imposes a stable order: known
// keys first, the rest sorted.
var preferredMetaKeys = []string{
	"servings", "serves", "course", "cuisine", "time",
	"prep time", "cook time", "source", "author", "tags",
}

// Parse parses Cooklang source and adapts it into a Recipe.
// The name is used in error messages only.
func Parse(source, name string) (*Recipe, error) {
	if strings.TrimSpace(source) == "" {
		return nil, fmt.Errorf("%w: %s", ErrEmptySource, name)
	}

	parsed, err := cooklang.ParseString(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrParseRecipe, name, err)
	}

	recipe, err := Adapt(parsed, stepLines(source))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return recipe, nil
}

// stepLines extracts the step lines of Cooklang source, applying the same
// line handling as the parser: surrounding whitespace trimmed, empty lines,
// comment lines ("--") and metadata lines (">>") skipped. The i-th returned
// line is the source of the parser's i-th step.
func stepLines(source string) []string {
	var lines []string
	sc := bufio.NewScanner(strings.NewReader(source))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "--") || strings.HasPrefix(line, ">>") {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// Adapt normalizes the external parser's AST into a Recipe. The parser
// flattens each step into plain text, losing which span is an ingredient
// and where a timer sits, so the inline structure is rebuilt from the
// original step lines: each @, # and ~ marker consumes the next parsed
// component of its kind, in order. lines holds one source line per parsed
// step, as produced by stepLines.
//
// Adapt is the only code that touches parser types; the rest of the
// pipeline sees the internal model exclusively.
//
// Fails with ErrMalformedRecipe when the AST lacks a title, or when step
// text and the parsed component lists disagree: a marker with no component
// left, a component name absent from the text, or a component no marker
// accounts for.
func Adapt(src *cooklang.Recipe, lines []string) (*Recipe, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: nil parse result", ErrMalformedRecipe)
	}
	if len(lines) != len(src.Steps) {
		return nil, fmt.Errorf("%w: %d parsed steps for %d step lines",
			ErrMalformedRecipe, len(src.Steps), len(lines))
	}

	recipe := &Recipe{
		Title:       metadataString(src.Metadata, metaTitle),
		Description: metadataString(src.Metadata, metaDescription),
		Metadata:    orderMetadata(src.Metadata),
	}
	if recipe.Title == "" {
		return nil, fmt.Errorf("%w: recipe has no title metadata", ErrMalformedRecipe)
	}

	agg := newIngredientAggregator()
	for i, step := range src.Steps {
		adapted, err := adaptStep(lines[i], step, agg)
		if err != nil {
			return nil, err
		}
		if len(adapted.Inlines) > 0 {
			recipe.Steps = append(recipe.Steps, adapted)
		}
	}
	recipe.Ingredients = agg.list()

	return recipe, nil
}

// adaptStep rebuilds one step's inline sequence from its source line,
// consuming the step's ingredient, timer and cookware slices positionally
// as markers appear. Any disagreement between the text and the parsed
// components is reported, never dropped.
func adaptStep(line string, step cooklang.Step, agg *ingredientAggregator) (Step, error) {
	var out Step
	var nextIngredient, nextTimer, nextCookware int

	emitText := func(text string) {
		// A parenthesized aside directly after an ingredient is its
		// preparation note; it moves to the ingredient list entry.
		if n := len(out.Inlines); n > 0 && out.Inlines[n-1].Kind == InlineIngredient {
			var note string
			note, text = splitNote(text)
			if note != "" {
				agg.setNote(out.Inlines[n-1].Ingredient, note)
			}
		}
		if text != "" {
			out.Inlines = append(out.Inlines, Inline{Kind: InlineText, Text: text})
		}
	}

	start := 0
	for i := 0; i < len(line); {
		c := line[i]
		if c != markIngredient && c != markCookware && c != markTimer {
			i++
			continue
		}

		var name string
		var inline Inline
		switch c {
		case markIngredient:
			if nextIngredient >= len(step.Ingredients) {
				return Step{}, fmt.Errorf("%w: dangling ingredient marker in %q", ErrMalformedRecipe, line)
			}
			ing := step.Ingredients[nextIngredient]
			nextIngredient++
			name = ing.Name
			inline = Inline{Kind: InlineIngredient, Ingredient: agg.add(ing)}

		case markTimer:
			if nextTimer >= len(step.Timers) {
				return Step{}, fmt.Errorf("%w: dangling timer marker in %q", ErrMalformedRecipe, line)
			}
			t := step.Timers[nextTimer]
			nextTimer++
			name = t.Name
			inline = Inline{
				Kind:  InlineTimer,
				Timer: &Timer{Name: t.Name, Duration: t.Duration, Unit: t.Unit},
			}

		case markCookware:
			if nextCookware >= len(step.Cookware) {
				return Step{}, fmt.Errorf("%w: dangling cookware marker in %q", ErrMalformedRecipe, line)
			}
			cw := step.Cookware[nextCookware]
			nextCookware++
			name = cw.Name
			inline = Inline{Kind: InlineCookware, Cookware: &Cookware{Name: cw.Name}}
		}

		end, err := consumeMarker(line, i, name)
		if err != nil {
			return Step{}, err
		}
		emitText(line[start:i])
		out.Inlines = append(out.Inlines, inline)
		i = end
		start = end
	}
	emitText(line[start:])

	if nextIngredient != len(step.Ingredients) ||
		nextTimer != len(step.Timers) ||
		nextCookware != len(step.Cookware) {
		return Step{}, fmt.Errorf("%w: step %q has components with no marker", ErrMalformedRecipe, line)
	}

	return out, nil
}

// consumeMarker advances past the marker at position start: the prefix
// character, the component name exactly as the parser recorded it, and an
// optional {...} body. Returns the index just past the marker.
func consumeMarker(line string, start int, name string) (int, error) {
	i := start + 1
	if !strings.HasPrefix(line[i:], name) {
		return 0, fmt.Errorf("%w: marker at %q does not match component %q",
			ErrMalformedRecipe, line[start:], name)
	}
	i += len(name)
	if i < len(line) && line[i] == '{' {
		body := strings.IndexByte(line[i:], '}')
		if body < 0 {
			return 0, fmt.Errorf("%w: unterminated marker body after %q", ErrMalformedRecipe, name)
		}
		i += body + 1
	}
	return i, nil
}

// adaptQuantity converts a parser amount, or nil when the reference
// carries no quantity at all.
func adaptQuantity(a cooklang.IngredientAmount) *Quantity {
	if a.QuantityRaw == "" && a.Unit == "" {
		return nil
	}
	q := &Quantity{Raw: a.QuantityRaw, Unit: a.Unit}
	if a.IsNumeric {
		v := a.Quantity
		q.Amount = &v
	}
	return q
}

// ingredientAggregator folds repeated ingredient references into one list
// entry per name and unit, summing numeric amounts, preserving first-seen
// order.
type ingredientAggregator struct {
	order []Ingredient
	index map[string]int
}

func newIngredientAggregator() *ingredientAggregator {
	return &ingredientAggregator{index: make(map[string]int)}
}

// add records one ingredient reference and returns the index of its list
// entry.
func (a *ingredientAggregator) add(src cooklang.Ingredient) int {
	q := adaptQuantity(src.Amount)

	key := strings.ToLower(src.Name)
	if q != nil {
		key += "\x00" + strings.ToLower(q.Unit)
	}

	if idx, ok := a.index[key]; ok {
		existing := &a.order[idx]
		if q != nil && q.Amount != nil && existing.Quantity != nil && existing.Quantity.Amount != nil {
			sum := *existing.Quantity.Amount + *q.Amount
			existing.Quantity.Amount = &sum
			existing.Quantity.Raw = formatDecimal(sum)
		}
		return idx
	}

	a.order = append(a.order, Ingredient{Name: src.Name, Quantity: q})
	a.index[key] = len(a.order) - 1
	return len(a.order) - 1
}

// setNote attaches a preparation note to an entry; the first note wins.
func (a *ingredientAggregator) setNote(idx int, note string) {
	if idx >= 0 && idx < len(a.order) && a.order[idx].Note == "" {
		a.order[idx].Note = note
	}
}

func (a *ingredientAggregator) list() []Ingredient {
	return a.order
}

// splitNote peels a leading " (note)" aside off step text.
// Returns the note without parentheses and the remaining text.
func splitNote(text string) (note, rest string) {
	trimmed := strings.TrimLeft(text, " ")
	if !strings.HasPrefix(trimmed, "(") {
		return "", text
	}
	end := strings.Index(trimmed, ")")
	if end < 0 {
		return "", text
	}
	return trimmed[1:end], trimmed[end+1:]
}

// metadataString fetches a metadata value case-insensitively. An exact key
// wins; among case variants the lexicographically first is used, so the
// result never depends on map iteration order.
func metadataString(meta cooklang.Metadata, key string) string {
	if v, ok := meta[key]; ok {
		return strings.TrimSpace(v)
	}
	var matches []string
	for k := range meta {
		if strings.EqualFold(k, key) {
			matches = append(matches, k)
		}
	}
	if len(matches) == 0 {
		return ""
	}
	sort.Strings(matches)
	return strings.TrimSpace(meta[matches[0]])
}

// orderMetadata produces the deterministic metadata order: preferred keys
// first, remaining keys sorted. Keys differing only in case all render,
// sorted among themselves. Title and description render through their own
// placeholders and are held out here.
func orderMetadata(meta cooklang.Metadata) []MetaEntry {
	taken := make(map[string]bool, len(meta))
	var entries []MetaEntry

	appendKey := func(key string) {
		var variants []string
		for k := range meta {
			if strings.ToLower(k) == key {
				variants = append(variants, k)
			}
		}
		sort.Strings(variants)
		for _, k := range variants {
			taken[strings.ToLower(k)] = true
			entries = append(entries, MetaEntry{Key: k, Value: strings.TrimSpace(meta[k])})
		}
	}

	for _, key := range preferredMetaKeys {
		appendKey(key)
	}

	var rest []string
	for k := range meta {
		lk := strings.ToLower(k)
		if lk == metaTitle || lk == metaDescription || taken[lk] {
			continue
		}
		rest = append(rest, k)
	}
	sort.Strings(rest)
	for _, k := range rest {
		entries = append(entries, MetaEntry{Key: k, Value: strings.TrimSpace(meta[k])})
	}

	return entries
}
