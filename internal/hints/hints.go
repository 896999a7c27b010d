// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to
// error messages.
package hints

import "strings"

// ForTemplateDirNotFound returns a hint for a missing template directory.
func ForTemplateDirNotFound(dir string) string {
	hint := "pass --templates /path/to/templates"
	if dir != "" {
		hint += " or create " + dir + " with a default.tex"
	}
	return format(hint)
}

// ForTemplateNotFound returns a hint when a recipe names an unknown template.
func ForTemplateNotFound(available []string) string {
	if len(available) == 0 {
		return format("template directory has no templates with recipe placeholders")
	}
	return format("available templates: " + strings.Join(available, ", "))
}

// ForConfigNotFound returns hints for config file not found errors.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"
	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/cook2tex") {
			hint += " or create " + p
			break
		}
	}
	return format(hint)
}

// format renders a single hint line.
func format(text string) string {
	return "\n  hint: " + text
}
