package cook2tex

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// latexEscapes maps each LaTeX special character to its escaped form.
// Escaping is applied exactly once to raw recipe text; it is deliberately
// not idempotent (escaping escaped text double-escapes).
var latexEscapes = []struct {
	raw     rune
	escaped string
}{
	{'\\', `\textbackslash{}`},
	{'&', `\&`},
	{'%', `\%`},
	{'$', `\$`},
	{'#', `\#`},
	{'_', `\_`},
	{'{', `\{`},
	{'}', `\}`},
	{'~', `\textasciitilde{}`},
	{'^', `\textasciicircum{}`},
}

// EscapeLaTeX makes arbitrary text safe for inclusion in LaTeX source.
// Each special character is replaced in a single pass, so backslashes
// introduced by the escapes themselves are never re-escaped.
func EscapeLaTeX(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		escaped := ""
		for _, e := range latexEscapes {
			if e.raw == r {
				escaped = e.escaped
				break
			}
		}
		if escaped == "" {
			b.WriteRune(r)
		} else {
			b.WriteString(escaped)
		}
	}
	return b.String()
}

// Arg is one argument of a LaTeX command: {value} or [value].
type Arg struct {
	Value    string
	Optional bool
}

// Required returns a mandatory {value} argument.
func Required(value string) Arg { return Arg{Value: value} }

// Optional returns an optional [value] argument.
func Optional(value string) Arg { return Arg{Value: value, Optional: true} }

// Builder accumulates lines of LaTeX source.
// The zero value is ready to use.
type Builder struct {
	lines []string
}

// AddCommand appends \command followed by its arguments.
func (b *Builder) AddCommand(command string, args ...Arg) *Builder {
	var sb strings.Builder
	sb.WriteByte('\\')
	sb.WriteString(command)
	for _, a := range args {
		if a.Optional {
			sb.WriteString("[" + a.Value + "]")
		} else {
			sb.WriteString("{" + a.Value + "}")
		}
	}
	b.lines = append(b.lines, sb.String())
	return b
}

// AddLine appends a raw line of LaTeX.
func (b *Builder) AddLine(line string) *Builder {
	b.lines = append(b.lines, line)
	return b
}

// AddEnv wraps the content of another builder in \begin{env}...\end{env}.
func (b *Builder) AddEnv(env string, content *Builder) *Builder {
	b.AddCommand("begin", Required(env))
	b.lines = append(b.lines, content.lines...)
	return b.AddCommand("end", Required(env))
}

// Build joins the accumulated lines.
func (b *Builder) Build() string {
	return strings.Join(b.lines, "\n")
}

// vulgarDenominators are tried in order when matching a fractional amount.
var vulgarDenominators = []int{2, 3, 4, 5, 6, 8}

// fractionTolerance bounds the error accepted when snapping an amount to a
// vulgar fraction.
const fractionTolerance = 1e-4

// Formatter renders quantities and timers under a fixed, deterministic
// policy. The zero value uses decimal fractions and no unit aliases.
type Formatter struct {
	Fractions string     // FractionsDecimal or FractionsVulgar
	Units     *UnitTable // optional unit alias table
}

// FormatQuantity renders a quantity as "amount unit", omitting either part
// when absent. Non-numeric quantities render their raw text. The result is
// LaTeX-ready: raw text and units are escaped here, and callers must not
// escape again.
func (f *Formatter) FormatQuantity(q *Quantity) string {
	if q == nil {
		return ""
	}

	amount := EscapeLaTeX(q.Raw)
	plural := false
	if q.Amount != nil {
		amount = f.formatAmount(*q.Amount)
		plural = *q.Amount > 1
	}

	unit := q.Unit
	if f.Units != nil && unit != "" {
		unit = f.Units.Display(unit, plural)
	}
	unit = EscapeLaTeX(unit)

	switch {
	case amount == "":
		return unit
	case unit == "":
		return amount
	default:
		return amount + " " + unit
	}
}

// FormatTimer renders a timer as a duration phrase, with the timer's name
// parenthesized when present, e.g. "25 minutes (oven)". As with
// FormatQuantity, the result is already escaped.
func (f *Formatter) FormatTimer(t *Timer) string {
	if t == nil {
		return ""
	}
	duration := ""
	if t.Duration != 0 {
		duration = f.formatAmount(t.Duration)
	}
	phrase := strings.TrimSpace(duration + " " + EscapeLaTeX(t.Unit))
	if t.Name != "" {
		if phrase == "" {
			return EscapeLaTeX(t.Name)
		}
		phrase += " (" + EscapeLaTeX(t.Name) + ")"
	}
	return phrase
}

// formatAmount renders a numeric amount per the fraction policy.
// Integers never carry a decimal point. Under the vulgar policy, fractional
// parts matching n/d for small d render as \nicefrac; everything else falls
// back to decimals trimmed to at most two places.
func (f *Formatter) formatAmount(v float64) string {
	if v == math.Trunc(v) {
		return strconv.FormatInt(int64(v), 10)
	}

	if f.Fractions == FractionsVulgar {
		if whole, num, den, ok := asVulgarFraction(v); ok {
			frac := fmt.Sprintf(`\nicefrac{%d}{%d}`, num, den)
			if whole > 0 {
				return strconv.Itoa(whole) + frac
			}
			return frac
		}
	}

	return formatDecimal(v)
}

// asVulgarFraction splits v into whole + num/den for a small denominator.
func asVulgarFraction(v float64) (whole, num, den int, ok bool) {
	whole = int(math.Trunc(v))
	frac := v - math.Trunc(v)
	for _, d := range vulgarDenominators {
		scaled := frac * float64(d)
		n := math.Round(scaled)
		if n >= 1 && n < float64(d) && math.Abs(scaled-n) < fractionTolerance*float64(d) {
			return whole, int(n), d, true
		}
	}
	return 0, 0, 0, false
}

// formatDecimal renders v with at most two decimal places, trimmed.
func formatDecimal(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	return s
}
