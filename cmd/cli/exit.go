package main

import (
	"fmt"
	"os"

	"github.com/leftovers/leftovers/pkg/ui"
)

// exitWithError prints a styled error message and exits with code 1.
func exitWithError(format string, args ...any) {
	fmt.Fprintln(os.Stderr, ui.ErrorStyle.Render("[!] "+fmt.Sprintf(format, args...)))
	os.Exit(1)
}

// exitWithUsage prints an error message followed by a usage hint, then exits.
func exitWithUsage(msg, usage string) {
	fmt.Fprintln(os.Stderr, ui.ErrorStyle.Render("[!] "+msg))
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Usage:", usage)
	os.Exit(1)
}
