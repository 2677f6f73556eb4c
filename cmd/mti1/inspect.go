package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"github.com/KotobaMedia/mesh-data-tile/mti1"
)

// runInspect implements "mti1 inspect <file>" (spec.md §6): parse the
// header only (C9), then print one "Label: value" line per field, the
// way cmd/direwolf/main.go prints its startup banner one fact per
// line.
func runInspect(args []string) error {
	fs := pflag.NewFlagSet("inspect", pflag.ContinueOnError)
	logDir := fs.String("log-dir", "", "directory for a daily operation log")
	verbose := fs.Bool("verbose", false, "enable verbose diagnostics on stderr")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: mti1 inspect [flags] <file>")
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

	logger.Debug("inspecting tile", "path", path, "bytes", len(data))
	result, err := mti1.Inspect(data)
	if opLogger != nil {
		opLogger.LogInspect(result, err)
	}
	if err != nil {
		return err
	}

	printInspectResult(os.Stdout, result)
	return nil
}

func printInspectResult(w *os.File, r mti1.InspectResult) {
	h := r.Header
	fmt.Fprintf(w, "format_major: %d\n", h.FormatMajor)
	fmt.Fprintf(w, "tile_id: %d\n", h.TileID)
	fmt.Fprintf(w, "mesh_kind: %s\n", h.MeshKind)
	fmt.Fprintf(w, "dtype: %s\n", h.DType)
	fmt.Fprintf(w, "endianness: %s\n", h.Endianness)
	fmt.Fprintf(w, "compression: %s\n", h.Compression)
	fmt.Fprintf(w, "rows: %d\n", h.Dimensions.Rows)
	fmt.Fprintf(w, "cols: %d\n", h.Dimensions.Cols)
	fmt.Fprintf(w, "bands: %d\n", h.Dimensions.Bands)
	if h.NoData != nil {
		fmt.Fprintf(w, "no_data: %v\n", *h.NoData)
	} else {
		fmt.Fprintln(w, "no_data: null")
	}
	fmt.Fprintf(w, "uncompressed_payload_length: %d\n", h.UncompressedPayloadLength)
	fmt.Fprintf(w, "compressed_payload_length: %d\n", h.CompressedPayloadLength)
	fmt.Fprintf(w, "payload_crc32: %s\n", h.Checksum.PayloadCRC32Hex())
	fmt.Fprintf(w, "header_crc32: %s\n", h.Checksum.HeaderCRC32Hex())
	fmt.Fprintf(w, "header_length: %d\n", r.HeaderLength)
	fmt.Fprintf(w, "payload_offset: %d\n", r.PayloadOffset)
	fmt.Fprintf(w, "payload_length: %d\n", r.PayloadLength)
}

// cliLogger builds the shared charmbracelet/log logger used for CLI
// diagnostics, distinct from OperationLogger's file-backed audit log.
func cliLogger(verbose bool) *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	l := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false})
	l.SetLevel(level)
	return l
}

// maybeOperationLogger opens an OperationLogger rooted at dir, or
// returns (nil, nil) when dir is empty — operation logging is opt-in.
func maybeOperationLogger(dir string) (*mti1.OperationLogger, error) {
	if dir == "" {
		return nil, nil
	}
	return mti1.NewOperationLogger(dir, "mti1-%Y%m%d.log")
}
