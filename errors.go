package cook2tex

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptySource     = errors.New("recipe source cannot be empty")
	ErrParseRecipe     = errors.New("failed to parse recipe")
	ErrMalformedRecipe = errors.New("malformed recipe")

	// Template registry errors.
	ErrTemplateDirNotFound = errors.New("template directory not found")
	ErrInvalidTemplate     = errors.New("invalid template")
	ErrTemplateNotFound    = errors.New("template not found")

	// Rendering errors.
	ErrMissingPlaceholder = errors.New("template missing placeholder")

	// Option validation errors.
	ErrInvalidFractionPolicy = errors.New("invalid fraction policy")
	ErrInvalidEmphasis       = errors.New("invalid emphasis command")
	ErrInvalidTemplateKey    = errors.New("invalid template key")
)
