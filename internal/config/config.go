// Package config loads and validates cook2tex configuration files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-cook2tex/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrInvalidConfig   = errors.New("invalid config value")
)

// Config holds defaults for recipe conversion. Command-line flags override
// any value set here.
type Config struct {
	Templates   TemplatesConfig `yaml:"templates"`
	Output      OutputConfig    `yaml:"output"`
	Collections []string        `yaml:"collections"`
	Render      RenderConfig    `yaml:"render"`
	Units       UnitsConfig     `yaml:"units"`
}

// TemplatesConfig defines template lookup options.
type TemplatesConfig struct {
	Dir string `yaml:"dir"` // template directory (empty = must specify via flag)
	Key string `yaml:"key"` // metadata key naming a per-recipe template
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	Dir  string `yaml:"dir"`  // output root (empty = must specify via flag)
	Book *bool  `yaml:"book"` // assemble main.tex index (default true)
}

// RenderConfig defines rendering options.
type RenderConfig struct {
	Fractions string `yaml:"fractions"` // "decimal" or "vulgar"
	Emphasis  string `yaml:"emphasis"`  // LaTeX command for ingredient refs in steps
}

// UnitsConfig points at a TOML unit alias file.
type UnitsConfig struct {
	File string `yaml:"file"`
}

// DefaultConfig returns a neutral configuration.
func DefaultConfig() *Config {
	return &Config{}
}

// Validate checks config values that have a closed domain.
func (c *Config) Validate() error {
	switch c.Render.Fractions {
	case "", "decimal", "vulgar":
	default:
		return fmt.Errorf("%w: render.fractions %q (must be decimal or vulgar)",
			ErrInvalidConfig, c.Render.Fractions)
	}
	return nil
}

// BookEnabled reports whether book assembly is on (default true).
func (c *Config) BookEnabled() bool {
	return c.Output.Book == nil || *c.Output.Book
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard
// locations. Returns an error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if strings.ContainsAny(nameOrPath, "/\\") {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/cook2tex/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "cook2tex", name+ext)
			if fileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
