package main

// Notes:
// - parseFlags: long and short forms, positional collections, and parse
//   errors. Output goes to io.Discard so tests stay quiet.

import (
	"io"
	"testing"
)

func TestParseFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		args      []string
		wantErr   bool
		wantColls []string
		check     func(t *testing.T, f *cliFlags)
	}{
		{
			name:      "positional collections",
			args:      []string{"soups", "breads"},
			wantColls: []string{"soups", "breads"},
		},
		{
			name: "long flags",
			args: []string{
				"--templates", "tpl", "--output", "out",
				"--fractions", "vulgar", "--emphasis", "textbf",
				"--template-key", "layout", "--units", "units.toml",
				"--workers", "4", "--no-book", "--quiet",
				"soups",
			},
			wantColls: []string{"soups"},
			check: func(t *testing.T, f *cliFlags) {
				if f.templates.dir != "tpl" {
					t.Errorf("templates.dir = %q, want %q", f.templates.dir, "tpl")
				}
				if f.output != "out" {
					t.Errorf("output = %q, want %q", f.output, "out")
				}
				if f.render.fractions != "vulgar" {
					t.Errorf("render.fractions = %q, want %q", f.render.fractions, "vulgar")
				}
				if f.render.emphasis != "textbf" {
					t.Errorf("render.emphasis = %q, want %q", f.render.emphasis, "textbf")
				}
				if f.templates.key != "layout" {
					t.Errorf("templates.key = %q, want %q", f.templates.key, "layout")
				}
				if f.render.units != "units.toml" {
					t.Errorf("render.units = %q, want %q", f.render.units, "units.toml")
				}
				if f.workers != 4 {
					t.Errorf("workers = %d, want 4", f.workers)
				}
				if !f.noBook {
					t.Error("noBook = false, want true")
				}
				if !f.common.quiet {
					t.Error("quiet = false, want true")
				}
			},
		},
		{
			name:      "short flags",
			args:      []string{"-t", "tpl", "-o", "out", "-w", "2", "-q", "soups"},
			wantColls: []string{"soups"},
			check: func(t *testing.T, f *cliFlags) {
				if f.templates.dir != "tpl" || f.output != "out" || f.workers != 2 || !f.common.quiet {
					t.Errorf("short flags not parsed: %+v", f)
				}
			},
		},
		{
			name: "version flag",
			args: []string{"--version"},
			check: func(t *testing.T, f *cliFlags) {
				if !f.version {
					t.Error("version = false, want true")
				}
			},
		},
		{
			name:    "unknown flag",
			args:    []string{"--frobnicate"},
			wantErr: true,
		},
		{
			name:    "missing flag value",
			args:    []string{"--templates"},
			wantErr: true,
		},
		{
			name: "defaults",
			args: []string{},
			check: func(t *testing.T, f *cliFlags) {
				if f.workers != 0 {
					t.Errorf("workers = %d, want 0 (auto)", f.workers)
				}
				if f.noBook || f.common.quiet || f.common.verbose {
					t.Errorf("boolean defaults not false: %+v", f)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f, colls, err := parseFlags(tt.args, io.Discard)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseFlags() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}

			if len(colls) != len(tt.wantColls) {
				t.Fatalf("collections = %v, want %v", colls, tt.wantColls)
			}
			for i := range tt.wantColls {
				if colls[i] != tt.wantColls[i] {
					t.Errorf("collections[%d] = %q, want %q", i, colls[i], tt.wantColls[i])
				}
			}

			if tt.check != nil {
				tt.check(t, f)
			}
		})
	}
}
