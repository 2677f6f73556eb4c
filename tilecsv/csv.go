// Package tilecsv projects decoded tile values into the CSV format
// the CLI's decode subcommand emits (spec.md §6). It is a pure
// function of dimensions and data: it knows nothing about dtype,
// compression, or any other header field, and it keeps no state
// between calls, mirroring how the teacher's src/log.go turns decoded
// packet fields into plain CSV rows with encoding/csv.
package tilecsv

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// Dimensions is the minimal shape tilecsv needs: rows, cols, bands.
// It deliberately does not import the codec package, keeping this
// projection a pure function of its own small input contract.
type Dimensions struct {
	Rows  uint32
	Cols  uint32
	Bands uint8
}

// Write emits one CSV header row ("x,y,b0,...,b{bands-1}") followed
// by one row per cell, column-within-row (col, row, v0, v1, ...), in
// the fixed sample order row-outermost/band-innermost (spec.md §4.3).
// len(values) must equal rows*cols*bands exactly.
func Write(w io.Writer, dims Dimensions, values []float64) error {
	expected := uint64(dims.Rows) * uint64(dims.Cols) * uint64(dims.Bands)
	if uint64(len(values)) != expected {
		return fmt.Errorf("tilecsv: expected %d values for %dx%dx%d, got %d", expected, dims.Rows, dims.Cols, dims.Bands, len(values))
	}

	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := make([]string, 0, 2+int(dims.Bands))
	header = append(header, "x", "y")
	for b := uint8(0); b < dims.Bands; b++ {
		header = append(header, fmt.Sprintf("b%d", b))
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	cols := uint64(dims.Cols)
	bands := uint64(dims.Bands)
	row := make([]string, 0, 2+int(dims.Bands))
	for r := uint32(0); r < dims.Rows; r++ {
		for c := uint32(0); c < dims.Cols; c++ {
			row = row[:0]
			row = append(row, strconv.Itoa(int(c)), strconv.Itoa(int(r)))
			base := ((uint64(r) * cols) + uint64(c)) * bands
			for b := uint64(0); b < bands; b++ {
				row = append(row, strconv.FormatFloat(values[base+b], 'g', -1, 64))
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
