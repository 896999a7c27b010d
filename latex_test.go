package cook2tex

// Notes:
// - EscapeLaTeX: covers every special character plus a reverse-expansion
//   round trip, since escaping must be applied exactly once.
// - Formatter: exercises both fraction policies; determinism is implicit
//   in the table expectations (same input, same output).

import (
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestEscapeLaTeX - Special character escaping
// ---------------------------------------------------------------------------

func TestEscapeLaTeX(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "plain text unchanged",
			in:   "Boil the tomatoes",
			want: "Boil the tomatoes",
		},
		{
			name: "ampersand",
			in:   "salt & pepper",
			want: `salt \& pepper`,
		},
		{
			name: "percent",
			in:   "2% milk",
			want: `2\% milk`,
		},
		{
			name: "dollar and hash",
			in:   "$5 #1",
			want: `\$5 \#1`,
		},
		{
			name: "underscore and braces",
			in:   "a_{b}",
			want: `a\_\{b\}`,
		},
		{
			name: "tilde and caret",
			in:   "~2^3",
			want: `\textasciitilde{}2\textasciicircum{}3`,
		},
		{
			name: "backslash",
			in:   `a\b`,
			want: `a\textbackslash{}b`,
		},
		{
			name: "backslash before escapable char stays single pass",
			in:   `\&`,
			want: `\textbackslash{}\&`,
		},
		{
			name: "empty string",
			in:   "",
			want: "",
		},
		{
			name: "unicode preserved",
			in:   "crème fraîche",
			want: "crème fraîche",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := EscapeLaTeX(tt.in); got != tt.want {
				t.Errorf("EscapeLaTeX(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestEscapeLaTeXRoundTrip(t *testing.T) {
	t.Parallel()

	// Re-expanding the escape map must recover the original text.
	unescape := strings.NewReplacer(
		`\textbackslash{}`, `\`,
		`\&`, "&",
		`\%`, "%",
		`\$`, "$",
		`\#`, "#",
		`\_`, "_",
		`\{`, "{",
		`\}`, "}",
		`\textasciitilde{}`, "~",
		`\textasciicircum{}`, "^",
	)

	inputs := []string{
		"salt & pepper, 2% milk, $5",
		`100% whole_wheat {flour} #fine`,
		`back\slash ~and ^caret`,
	}

	for _, in := range inputs {
		escaped := EscapeLaTeX(in)
		for _, ch := range []string{"&", "%", "_"} {
			if countUnescaped(escaped, ch) > 0 {
				t.Errorf("EscapeLaTeX(%q) left unescaped %q in %q", in, ch, escaped)
			}
		}
		if got := unescape.Replace(escaped); got != in {
			t.Errorf("round trip of %q = %q", in, got)
		}
	}
}

// countUnescaped counts occurrences of ch not preceded by a backslash.
func countUnescaped(s, ch string) int {
	count := 0
	for i := 0; i < len(s); i++ {
		if s[i:i+1] == ch && (i == 0 || s[i-1] != '\\') {
			count++
		}
	}
	return count
}

// ---------------------------------------------------------------------------
// TestBuilder - LaTeX source building
// ---------------------------------------------------------------------------

func TestBuilder(t *testing.T) {
	t.Parallel()

	t.Run("command with required and optional args", func(t *testing.T) {
		t.Parallel()

		var b Builder
		b.AddCommand("item", Optional("Servings"), Required("4"))
		if got, want := b.Build(), `\item[Servings]{4}`; got != want {
			t.Errorf("Build() = %q, want %q", got, want)
		}
	})

	t.Run("command without args", func(t *testing.T) {
		t.Parallel()

		var b Builder
		b.AddCommand("newpage")
		if got, want := b.Build(), `\newpage`; got != want {
			t.Errorf("Build() = %q, want %q", got, want)
		}
	})

	t.Run("environment wraps content", func(t *testing.T) {
		t.Parallel()

		var items Builder
		items.AddLine(`\item salt`)

		var b Builder
		b.AddEnv("itemize", &items)

		want := "\\begin{itemize}\n\\item salt\n\\end{itemize}"
		if got := b.Build(); got != want {
			t.Errorf("Build() = %q, want %q", got, want)
		}
	})
}

// ---------------------------------------------------------------------------
// TestFormatter - Quantity and timer formatting
// ---------------------------------------------------------------------------

func floatPtr(v float64) *float64 { return &v }

func TestFormatQuantity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		fractions string
		qty       *Quantity
		want      string
	}{
		{
			name: "nil quantity",
			qty:  nil,
			want: "",
		},
		{
			name: "integer with unit",
			qty:  &Quantity{Amount: floatPtr(500), Raw: "500", Unit: "g"},
			want: "500 g",
		},
		{
			name: "integer renders without decimal point",
			qty:  &Quantity{Amount: floatPtr(3), Raw: "3.0", Unit: ""},
			want: "3",
		},
		{
			name: "decimal trimmed to two places",
			qty:  &Quantity{Amount: floatPtr(1.5), Raw: "1.5", Unit: "kg"},
			want: "1.5 kg",
		},
		{
			name: "unit only",
			qty:  &Quantity{Unit: "pinch", Raw: ""},
			want: "pinch",
		},
		{
			name: "raw non-numeric amount",
			qty:  &Quantity{Raw: "some", Unit: ""},
			want: "some",
		},
		{
			name:      "vulgar half",
			fractions: FractionsVulgar,
			qty:       &Quantity{Amount: floatPtr(0.5), Raw: "1/2", Unit: "cup"},
			want:      `\nicefrac{1}{2} cup`,
		},
		{
			name:      "vulgar mixed number",
			fractions: FractionsVulgar,
			qty:       &Quantity{Amount: floatPtr(1.25), Raw: "1.25", Unit: "cups"},
			want:      `1\nicefrac{1}{4} cups`,
		},
		{
			name:      "vulgar falls back to decimal",
			fractions: FractionsVulgar,
			qty:       &Quantity{Amount: floatPtr(0.41), Raw: "0.41", Unit: "l"},
			want:      "0.41 l",
		},
		{
			name: "decimal policy keeps thirds as decimals",
			qty:  &Quantity{Amount: floatPtr(0.75), Raw: "3/4", Unit: "cup"},
			want: "0.75 cup",
		},
		{
			name: "unit with special character escaped",
			qty:  &Quantity{Amount: floatPtr(2), Raw: "2", Unit: "50%_packs"},
			want: `2 50\%\_packs`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := &Formatter{Fractions: tt.fractions}
			if got := f.FormatQuantity(tt.qty); got != tt.want {
				t.Errorf("FormatQuantity() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatQuantityUnitAliases(t *testing.T) {
	t.Parallel()

	units := &UnitTable{
		Aliases: map[string]string{"tbsp": "tablespoon"},
		Plurals: map[string]string{"tablespoon": "tablespoons"},
	}
	f := &Formatter{Units: units}

	tests := []struct {
		name string
		qty  *Quantity
		want string
	}{
		{
			name: "alias resolved singular",
			qty:  &Quantity{Amount: floatPtr(1), Raw: "1", Unit: "tbsp"},
			want: "1 tablespoon",
		},
		{
			name: "alias resolved plural",
			qty:  &Quantity{Amount: floatPtr(2), Raw: "2", Unit: "tbsp"},
			want: "2 tablespoons",
		},
		{
			name: "unknown unit passes through",
			qty:  &Quantity{Amount: floatPtr(2), Raw: "2", Unit: "dash"},
			want: "2 dash",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := f.FormatQuantity(tt.qty); got != tt.want {
				t.Errorf("FormatQuantity() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatTimer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		timer *Timer
		want  string
	}{
		{
			name:  "duration with unit",
			timer: &Timer{Duration: 10, Unit: "minutes"},
			want:  "10 minutes",
		},
		{
			name:  "named timer",
			timer: &Timer{Name: "oven", Duration: 25, Unit: "minutes"},
			want:  "25 minutes (oven)",
		},
		{
			name:  "name only",
			timer: &Timer{Name: "rest"},
			want:  "rest",
		},
		{
			name:  "fractional duration",
			timer: &Timer{Duration: 1.5, Unit: "hours"},
			want:  "1.5 hours",
		},
		{
			name:  "nil timer",
			timer: nil,
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := &Formatter{}
			if got := f.FormatTimer(tt.timer); got != tt.want {
				t.Errorf("FormatTimer() = %q, want %q", got, tt.want)
			}
		})
	}
}
