package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// recipeExt is the extension of recipe source files.
const recipeExt = ".cook"

// texExt is the extension of rendered output files.
const texExt = ".tex"

// Sentinel errors for file discovery.
var (
	ErrCollectionNotFound = errors.New("collection directory not found")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)

// recipeFile is one discovered recipe: its collection, its relative path
// within that collection, and the resolved input and output paths.
type recipeFile struct {
	Collection string // collection base name, used for book chapters
	RelPath    string // relative to the collection root, forward slashes
	InputPath  string
	OutputPath string
}

// discoverRecipes enumerates recipe files across the collection
// directories. Non-recipe files are skipped silently; they are simply not
// recipes. Within a collection the walk order is lexicographic, so
// repeated runs produce identical output trees.
//
// The relative path is preserved exactly into the output tree with the
// extension swapped to .tex. When two collections map a relative path to
// the same output file, the collection listed last wins (documented
// last-writer-wins, resolved here at discovery so no two writes ever race).
func discoverRecipes(collections []string, outputRoot string) ([]recipeFile, error) {
	byOutput := make(map[string]int)
	var files []recipeFile

	for _, root := range collections {
		info, err := os.Stat(root)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("%w: %s", ErrCollectionNotFound, root)
			}
			return nil, fmt.Errorf("reading collection %s: %w", root, err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("%w: %s is not a directory", ErrCollectionNotFound, root)
		}

		collection := filepath.Base(filepath.Clean(root))

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return fmt.Errorf("scanning %s: %w", path, err)
			}
			if d.IsDir() || !strings.EqualFold(filepath.Ext(path), recipeExt) {
				return nil
			}

			rel, err := filepath.Rel(root, path)
			if err != nil {
				return fmt.Errorf("resolving %s: %w", path, err)
			}
			rel = filepath.ToSlash(rel)

			f := recipeFile{
				Collection: collection,
				RelPath:    rel,
				InputPath:  path,
				OutputPath: filepath.Join(outputRoot, swapExt(rel)),
			}

			if prev, ok := byOutput[f.OutputPath]; ok {
				files[prev] = f
				return nil
			}
			byOutput[f.OutputPath] = len(files)
			files = append(files, f)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return files, nil
}

// swapExt replaces the recipe extension with .tex.
func swapExt(relPath string) string {
	return strings.TrimSuffix(relPath, filepath.Ext(relPath)) + texExt
}

// texRelPath is the output-root-relative path of a recipe's rendered file.
func (f recipeFile) texRelPath() string {
	return swapExt(f.RelPath)
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	return nil
}
