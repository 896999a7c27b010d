package cook2tex

// BookCollection is one collection's contribution to the book index:
// a chapter plus the rendered recipe files to pull in, in render order.
type BookCollection struct {
	Name   string
	Inputs []string // output-root-relative .tex paths, forward slashes
}

// BuildBookIndex renders the \chapter and \input listing substituted into
// a book main file: one chapter per collection, one \input per recipe,
// \newpage between recipes.
func BuildBookIndex(collections []BookCollection) string {
	var b Builder
	for _, c := range collections {
		b.AddCommand("chapter", Required(EscapeLaTeX(c.Name)))
		for i, input := range c.Inputs {
			if i > 0 {
				b.AddCommand("newpage")
			}
			b.AddCommand("input", Required(input))
		}
	}
	return b.Build()
}

// RenderBook substitutes the book index into main-file source.
// Returns ok=false when the source has no %{{recipes}} marker, in which
// case the source is returned unchanged.
func RenderBook(source string, collections []BookCollection) (text string, ok bool, err error) {
	t, err := ParseTemplate("main", source)
	if err != nil {
		return "", false, err
	}
	if !t.Has(PlaceholderRecipes) {
		return source, false, nil
	}
	return t.fill(map[string]string{
		PlaceholderRecipes: BuildBookIndex(collections),
	}), true, nil
}
