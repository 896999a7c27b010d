package cook2tex

// Notes:
// - End-to-end pipeline tests: real Cooklang sources through the real
//   parser, against template directories built in t.TempDir().
// - Assertions stay on coarse substrings so they track behavior rather
//   than the parser's exact amount representation.

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func newTestConverter(t *testing.T, opts ...Option) *Converter {
	t.Helper()
	dir := writeTemplateDir(t, map[string]string{
		"default.tex": "\\section{%{{title}}}\n%{{description}}\n%{{metadata}}\n%{{ingredients}}\n%{{steps}}\n",
		"dessert.tex": "\\chapter{%{{title}}}\n%{{description}}\n%{{metadata}}\n%{{ingredients}}\n%{{steps}}\n",
	})
	r, err := LoadRegistry(dir)
	if err != nil {
		t.Fatalf("LoadRegistry() error = %v", err)
	}
	conv, err := NewConverter(r, opts...)
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}
	return conv
}

// ---------------------------------------------------------------------------
// TestConvert - Full pipeline
// ---------------------------------------------------------------------------

func TestConvert(t *testing.T) {
	t.Parallel()

	conv := newTestConverter(t)

	source := ">> title: Tomato Soup\n" +
		">> servings: 4\n" +
		"\n" +
		"Boil @tomato{500%g} for ~{10%minutes}.\n" +
		"\n" +
		"Blend everything in the #blender{} until smooth.\n"

	res, err := conv.Convert(context.Background(), Input{Source: source, Name: "tomato.cook"})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	if res.Template != DefaultTemplateName {
		t.Errorf("Template = %q, want %q", res.Template, DefaultTemplateName)
	}
	if res.Title != "Tomato Soup" {
		t.Errorf("Title = %q, want %q", res.Title, "Tomato Soup")
	}

	out := string(res.TeX)
	wantSubstrings := []string{
		`\section{Tomato Soup}`,
		`\item[Servings] 4`,
		`\emph{tomato}`,
		"500 g tomato",
		"10 minutes",
		"blender",
		`\begin{enumerate}`,
	}
	for _, want := range wantSubstrings {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\noutput:\n%s", want, out)
		}
	}
	if strings.Contains(out, markerOpen) {
		t.Errorf("output still contains placeholder markers:\n%s", out)
	}
}

func TestConvertDeterministic(t *testing.T) {
	t.Parallel()

	conv := newTestConverter(t)
	input := Input{
		Source: ">> title: Stock\n>> course: dinner\n>> author: me\n\nSimmer @bones{1%kg} and @water{2%l}.\n",
		Name:   "stock.cook",
	}

	first, err := conv.Convert(context.Background(), input)
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	for range 5 {
		res, err := conv.Convert(context.Background(), input)
		if err != nil {
			t.Fatalf("Convert() error = %v", err)
		}
		if string(res.TeX) != string(first.TeX) {
			t.Fatalf("repeated conversion differs:\nfirst:\n%s\nlater:\n%s", first.TeX, res.TeX)
		}
	}
}

func TestConvertTemplateOverride(t *testing.T) {
	t.Parallel()

	conv := newTestConverter(t)

	t.Run("metadata selects registered template", func(t *testing.T) {
		t.Parallel()

		res, err := conv.Convert(context.Background(), Input{
			Source: ">> title: Mousse\n>> template: dessert\n\nWhip the cream.\n",
			Name:   "mousse.cook",
		})
		if err != nil {
			t.Fatalf("Convert() error = %v", err)
		}
		if res.Template != "dessert" {
			t.Errorf("Template = %q, want %q", res.Template, "dessert")
		}
		if !strings.Contains(string(res.TeX), `\chapter{Mousse}`) {
			t.Errorf("output missing dessert chapter:\n%s", res.TeX)
		}
	})

	t.Run("metadata names unknown template", func(t *testing.T) {
		t.Parallel()

		_, err := conv.Convert(context.Background(), Input{
			Source: ">> title: Mousse\n>> template: wedding\n\nWhip the cream.\n",
			Name:   "mousse.cook",
		})
		if !errors.Is(err, ErrTemplateNotFound) {
			t.Errorf("Convert() error = %v, want ErrTemplateNotFound", err)
		}
		if err != nil && !strings.Contains(err.Error(), "mousse.cook") {
			t.Errorf("error does not name the input: %v", err)
		}
	})
}

func TestConvertErrors(t *testing.T) {
	t.Parallel()

	conv := newTestConverter(t)

	tests := []struct {
		name    string
		source  string
		wantErr error
	}{
		{
			name:    "empty source",
			source:  "",
			wantErr: ErrEmptySource,
		},
		{
			name:    "whitespace only",
			source:  " \n\t ",
			wantErr: ErrEmptySource,
		},
		{
			name:    "no title metadata",
			source:  "Boil @water{1%l}.\n",
			wantErr: ErrMalformedRecipe,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := conv.Convert(context.Background(), Input{Source: tt.source, Name: "x.cook"})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Convert() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestConvertCancelledContext(t *testing.T) {
	t.Parallel()

	conv := newTestConverter(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := conv.Convert(ctx, Input{Source: ">> title: T\n\nStir.\n", Name: "t.cook"})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Convert() error = %v, want context.Canceled", err)
	}
}

func TestConvertConcurrent(t *testing.T) {
	t.Parallel()

	conv := newTestConverter(t)
	input := Input{
		Source: ">> title: Bread\n\nKnead @flour{500%g} with @water{300%ml}.\n",
		Name:   "bread.cook",
	}

	baseline, err := conv.Convert(context.Background(), input)
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	const workers = 8
	errs := make(chan error, workers)
	for range workers {
		go func() {
			res, err := conv.Convert(context.Background(), input)
			if err == nil && string(res.TeX) != string(baseline.TeX) {
				err = errors.New("concurrent conversion produced different output")
			}
			errs <- err
		}()
	}
	for range workers {
		if err := <-errs; err != nil {
			t.Error(err)
		}
	}
}

// ---------------------------------------------------------------------------
// TestNewConverter - Option validation
// ---------------------------------------------------------------------------

func TestNewConverterOptions(t *testing.T) {
	t.Parallel()

	dir := writeTemplateDir(t, map[string]string{"default.tex": minimalTemplate})
	r, err := LoadRegistry(dir)
	if err != nil {
		t.Fatalf("LoadRegistry() error = %v", err)
	}

	tests := []struct {
		name    string
		opts    []Option
		wantErr error
	}{
		{
			name: "defaults",
		},
		{
			name: "valid fraction policies",
			opts: []Option{WithFractions(FractionsVulgar)},
		},
		{
			name:    "unknown fraction policy",
			opts:    []Option{WithFractions("sexagesimal")},
			wantErr: ErrInvalidFractionPolicy,
		},
		{
			name: "valid emphasis command",
			opts: []Option{WithEmphasis("textit")},
		},
		{
			name:    "emphasis with non-letter characters",
			opts:    []Option{WithEmphasis(`emph{x}`)},
			wantErr: ErrInvalidEmphasis,
		},
		{
			name:    "empty emphasis",
			opts:    []Option{WithEmphasis("")},
			wantErr: ErrInvalidEmphasis,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewConverter(r, tt.opts...)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NewConverter() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	t.Run("nil registry", func(t *testing.T) {
		t.Parallel()

		if _, err := NewConverter(nil); err == nil {
			t.Error("NewConverter(nil) error = nil, want error")
		}
	})
}
