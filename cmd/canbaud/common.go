package main

import (
	"fmt"
	"os"
)

// openOutput returns the file generated output goes to, defaulting to
// stdout when no path is given. The returned func closes the file and is a
// no-op for stdout.
func openOutput(path string) (*os.File, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	out, err := os.Create(path) // #nosec G304 -- user-specified output file path from command line flag
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return out, func() { _ = out.Close() }, nil
}
