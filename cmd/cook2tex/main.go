package main

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// Configure GOMAXPROCS for containerized runs before sizing the pool.
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues
	// safely.
	verbose := hasVerboseFlag(os.Args[1:])
	if verbose {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// hasVerboseFlag peeks at the arguments before full flag parsing, so
// maxprocs logging can be decided first.
func hasVerboseFlag(args []string) bool {
	f, _, err := parseFlags(args, io.Discard)
	return err == nil && f.common.verbose
}
