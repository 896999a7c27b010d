package main

import (
	"errors"
	"os"

	cook2tex "github.com/alnah/go-cook2tex"
	"github.com/alnah/go-cook2tex/internal/config"
)

// Exit codes for the cook2tex CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage.
const (
	ExitSuccess = 0 // all recipes converted
	ExitGeneral = 1 // unexpected error, or some recipes failed
	ExitUsage   = 2 // invalid flags, config, or validation
	ExitIO      = 3 // file not found, permission denied
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must wrap with
// fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrCollectionNotFound) ||
		errors.Is(err, ErrWriteOutput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrInvalidConfig) ||
		errors.Is(err, cook2tex.ErrTemplateDirNotFound) ||
		errors.Is(err, cook2tex.ErrInvalidTemplate) ||
		errors.Is(err, cook2tex.ErrInvalidFractionPolicy) ||
		errors.Is(err, cook2tex.ErrInvalidEmphasis) ||
		errors.Is(err, cook2tex.ErrInvalidTemplateKey) ||
		errors.Is(err, ErrNoCollections) ||
		errors.Is(err, ErrNoTemplateDir) ||
		errors.Is(err, ErrNoOutputDir) ||
		errors.Is(err, ErrInvalidWorkerCount) {
		return ExitUsage
	}

	return ExitGeneral
}
