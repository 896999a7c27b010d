package cook2tex

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultTemplateName is the template applied when a recipe names none.
const DefaultTemplateName = "default"

// templateExt is the extension of template files in the template directory.
const templateExt = ".tex"

// Registry holds the compiled templates of one template directory.
// Loaded once at startup, immutable and shared read-only afterwards.
type Registry struct {
	dir       string
	templates map[string]*Template
	support   []string
}

// LoadRegistry reads and compiles every template in dir.
//
// A .tex file containing recipe placeholders is a template, indexed by its
// base name without extension. Everything else (document classes, style
// files, a book main.tex) is a support file, reproduced verbatim in the
// output tree. Returns ErrTemplateDirNotFound if dir is missing and
// ErrInvalidTemplate if any template fails to compile.
func LoadRegistry(dir string) (*Registry, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrTemplateDirNotFound, dir)
		}
		return nil, fmt.Errorf("reading template directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrTemplateDirNotFound, dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading template directory %s: %w", dir, err)
	}

	r := &Registry{
		dir:       dir,
		templates: make(map[string]*Template),
	}

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.EqualFold(filepath.Ext(name), templateExt) {
			r.support = append(r.support, name)
			continue
		}

		source, err := os.ReadFile(filepath.Join(dir, name)) // #nosec G304 -- template dir entry
		if err != nil {
			return nil, fmt.Errorf("reading template %s: %w", name, err)
		}

		base := strings.TrimSuffix(name, filepath.Ext(name))
		t, err := ParseTemplate(base, string(source))
		if err != nil {
			return nil, err
		}
		if err := validateTemplatePlaceholders(t); err != nil {
			return nil, err
		}

		if hasRecipePlaceholder(t) {
			r.templates[base] = t
		} else {
			// Valid LaTeX without recipe placeholders: a support file,
			// possibly carrying the book index marker.
			r.support = append(r.support, name)
		}
	}

	sort.Strings(r.support)
	return r, nil
}

// Dir returns the directory the registry was loaded from.
func (r *Registry) Dir() string { return r.dir }

// SupportFiles returns the names of non-template files, sorted.
func (r *Registry) SupportFiles() []string { return r.support }

// TemplateNames returns the names of loaded templates, sorted.
func (r *Registry) TemplateNames() []string {
	names := make([]string, 0, len(r.templates))
	for n := range r.templates {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Template returns the named template.
// Returns ErrTemplateNotFound if it is not in the registry.
func (r *Registry) Template(name string) (*Template, error) {
	t, ok := r.templates[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (have: %s)", ErrTemplateNotFound, name,
			strings.Join(r.TemplateNames(), ", "))
	}
	return t, nil
}

// Select resolves which template a recipe uses: the one named by the
// recipe's template metadata key, or the global default.
func (r *Registry) Select(recipe *Recipe, templateKey string) (*Template, error) {
	name := recipe.MetadataValue(templateKey)
	if name == "" {
		name = DefaultTemplateName
	}
	return r.Template(name)
}

// validateTemplatePlaceholders rejects placeholder names the renderer does
// not know, so a typo surfaces at load time instead of as an unfilled
// marker in the output.
func validateTemplatePlaceholders(t *Template) error {
	for _, name := range t.Placeholders() {
		if !knownPlaceholders[name] {
			return fmt.Errorf("%w: %s: unknown placeholder %q", ErrInvalidTemplate, t.Name, name)
		}
	}
	return nil
}

// hasRecipePlaceholder reports whether the template holds at least one
// per-recipe insertion point.
func hasRecipePlaceholder(t *Template) bool {
	for _, name := range recipePlaceholders {
		if t.Has(name) {
			return true
		}
	}
	return false
}
