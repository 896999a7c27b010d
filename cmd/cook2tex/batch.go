package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"
	"time"

	cook2tex "github.com/alnah/go-cook2tex"
	"github.com/alnah/go-cook2tex/internal/fileutil"
)

// Sentinel errors for batch operations.
var (
	ErrNoCollections = errors.New("no collection directories specified")
	ErrNoTemplateDir = errors.New("no template directory specified")
	ErrNoOutputDir   = errors.New("no output directory specified")
	ErrReadRecipe    = errors.New("failed to read recipe file")
	ErrWriteOutput   = errors.New("failed to write output file")
)

// conversionResult holds the outcome of a single conversion.
type conversionResult struct {
	InputPath  string
	OutputPath string
	Template   string
	Err        error
	Duration   time.Duration
}

// resolveWorkers picks the worker count: the flag value, capped by the
// file count, defaulting to GOMAXPROCS.
func resolveWorkers(requested, files int) int {
	n := requested
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}
	if n > files {
		n = files
	}
	if n < 1 {
		n = 1
	}
	return n
}

// convertBatch processes files concurrently with a fixed worker pool.
// The converter is shared: it is read-only after construction. Results are
// indexed by file so output order is stable regardless of scheduling.
// A failure on one file never stops the others (fail-soft batch).
func convertBatch(ctx context.Context, conv *cook2tex.Converter, files []recipeFile, workers int) []conversionResult {
	if len(files) == 0 {
		return nil
	}

	results := make([]conversionResult, len(files))
	jobs := make(chan int, len(files))
	var wg sync.WaitGroup

	for w := 0; w < resolveWorkers(workers, len(files)); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = conversionResult{
						InputPath: files[idx].InputPath,
						Err:       ctx.Err(),
					}
					continue
				}
				results[idx] = convertFile(ctx, conv, files[idx])
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// convertFile runs read -> convert -> write for a single recipe.
func convertFile(ctx context.Context, conv *cook2tex.Converter, f recipeFile) conversionResult {
	start := time.Now()
	result := conversionResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
	}

	source, err := os.ReadFile(f.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrReadRecipe, err)
		result.Duration = time.Since(start)
		return result
	}

	res, err := conv.Convert(ctx, cook2tex.Input{
		Source: string(source),
		Name:   f.InputPath,
	})
	if err != nil {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}
	result.Template = res.Template

	if err := fileutil.WriteFile(f.OutputPath, res.TeX); err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrWriteOutput, err)
		result.Duration = time.Since(start)
		return result
	}

	result.Duration = time.Since(start)
	return result
}

// resultSummary holds the count of succeeded and failed conversions.
type resultSummary struct {
	Succeeded int
	Failed    int
}

// countResults tallies succeeded and failed conversions.
func countResults(results []conversionResult) resultSummary {
	var summary resultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// printResults reports per-file outcomes and the run summary.
// Returns the number of failures.
func printResults(results []conversionResult, quiet, verbose bool, stdout, stderr io.Writer) int {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			continue
		}

		if quiet {
			continue
		}

		if verbose {
			fmt.Fprintf(stdout, "%s -> %s [%s] (%v)\n",
				r.InputPath, r.OutputPath, r.Template, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	return summary.Failed
}
