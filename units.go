package cook2tex

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// UnitTable maps unit spellings found in recipes to display names.
// Loaded from a TOML file:
//
//	[aliases]
//	tbsp = "tablespoon"
//	g = "g"
//
//	[plurals]
//	tablespoon = "tablespoons"
//
// Aliases normalize spellings; plurals apply when the amount exceeds one.
type UnitTable struct {
	Aliases map[string]string `toml:"aliases"`
	Plurals map[string]string `toml:"plurals"`
}

// LoadUnits reads a unit alias table from a TOML file.
func LoadUnits(path string) (*UnitTable, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		return nil, fmt.Errorf("reading units file: %w", err)
	}

	var table UnitTable
	if err := toml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("parsing units file %q: %w", path, err)
	}
	return &table, nil
}

// Display resolves a unit spelling to its display form.
// Alias lookup is case-insensitive; unknown units pass through unchanged.
func (t *UnitTable) Display(unit string, plural bool) string {
	if t == nil {
		return unit
	}

	name := unit
	if alias, ok := lookupFold(t.Aliases, unit); ok {
		name = alias
	}
	if plural {
		if p, ok := lookupFold(t.Plurals, name); ok {
			name = p
		}
	}
	return name
}

// lookupFold finds key in m ignoring case.
func lookupFold(m map[string]string, key string) (string, bool) {
	if v, ok := m[key]; ok {
		return v, true
	}
	for k, v := range m {
		if strings.EqualFold(k, key) {
			return v, true
		}
	}
	return "", false
}
