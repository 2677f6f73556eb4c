package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/KotobaMedia/mesh-data-tile/mti1"
	"github.com/KotobaMedia/mesh-data-tile/tilecsv"
)

// runDecode implements "mti1 decode <file> [--output <path>]"
// (spec.md §6): run the full decode pipeline (C9) and project the
// values into CSV via tilecsv.Write, to stdout unless --output names
// a file.
func runDecode(args []string) error {
	fs := pflag.NewFlagSet("decode", pflag.ContinueOnError)
	output := fs.String("output", "", "output CSV path (default: stdout)")
	logDir := fs.String("log-dir", "", "directory for a daily operation log")
	verbose := fs.Bool("verbose", false, "enable verbose diagnostics on stderr")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: mti1 decode [flags] <file>")
	}
	path := fs.Arg(0)

	logger := cliLogger(*verbose)
	opLogger, err := maybeOperationLogger(*logDir)
	if err != nil {
		return err
	}
	if opLogger != nil {
		defer opLogger.Close()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %q: %w", path, err)
	}

	logger.Debug("decoding tile", "path", path, "bytes", len(data))
	result, err := mti1.Decode(data)
	if opLogger != nil {
		opLogger.LogDecode(result, err)
	}
	if err != nil {
		return err
	}

	dest := os.Stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			return fmt.Errorf("creating %q: %w", *output, err)
		}
		defer f.Close()
		dest = f
	}

	dims := tilecsv.Dimensions{
		Rows:  result.Header.Dimensions.Rows,
		Cols:  result.Header.Dimensions.Cols,
		Bands: result.Header.Dimensions.Bands,
	}
	return tilecsv.Write(dest, dims, result.Values)
}
