package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/pflag"

	"github.com/KotobaMedia/mesh-data-tile/mti1"
)

// encodeMetadata is the shape accepted by --metadata, a JSON object
// carrying the same fields as an encodeDefaults config file plus
// no_data. Pointer
// fields distinguish "absent" from the type's zero value, so a
// metadata blob can supply only the fields it cares about. There is
// no third-party JSON library anywhere in the reference stack this
// codebase is grounded on, so this uses encoding/json directly
// (see DESIGN.md).
type encodeMetadata struct {
	TileID      *string  `json:"tile_id"`
	MeshKind    *string  `json:"mesh_kind"`
	DType       *string  `json:"dtype"`
	Endianness  *string  `json:"endianness"`
	Compression *string  `json:"compression"`
	Rows        *uint32  `json:"rows"`
	Cols        *uint32  `json:"cols"`
	Bands       *uint8   `json:"bands"`
	NoData      *float64 `json:"no_data"`
}

// runEncode implements "mti1 encode --output <file> [flags]"
// (spec.md §6): assemble an mti1.EncodeInput from, in increasing
// precedence, an optional --config defaults file, an optional
// --metadata JSON blob, and individually-set flags, then run the
// encode pipeline (C8) and write the resulting bytes to --output.
func runEncode(args []string) error {
	fs := pflag.NewFlagSet("encode", pflag.ContinueOnError)
	output := fs.String("output", "", "output tile file path (required)")
	configPath := fs.String("config", "", "YAML file of fallback encode defaults")
	metadataJSON := fs.String("metadata", "", "JSON object of fallback encode fields")
	tileID := fs.String("tile-id", "", "tile id: unsigned integer or decimal string")
	meshKind := fs.String("mesh-kind", "", "JIS_X0410 or XYZ")
	rows := fs.Uint32("rows", 0, "grid row count")
	cols := fs.Uint32("cols", 0, "grid column count")
	bands := fs.Uint8("bands", 0, "band count")
	dtype := fs.String("dtype", "", "uint8|int8|uint16|int16|uint32|int32|float32|float64")
	endianness := fs.String("endianness", "", "little|big")
	compression := fs.String("compression", "", "none|deflate_raw")
	noData := fs.String("no-data", "", "no_data scalar, or \"null\"/omitted for none")
	valuesJSON := fs.String("values", "", "JSON array of sample values")
	valuesFile := fs.String("values-file", "", "path to a file containing a JSON array of values")
	logDir := fs.String("log-dir", "", "directory for a daily operation log")
	verbose := fs.Bool("verbose", false, "enable verbose diagnostics on stderr")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *output == "" {
		return fmt.Errorf("usage: mti1 encode --output <file> [flags]")
	}

	logger := cliLogger(*verbose)
	opLogger, err := maybeOperationLogger(*logDir)
	if err != nil {
		return err
	}
	if opLogger != nil {
		defer opLogger.Close()
	}

	b := encodeBuilder{}
	if *configPath != "" {
		defaults, err := loadEncodeDefaults(*configPath)
		if err != nil {
			return err
		}
		b.applyConfig(defaults)
	}
	if *metadataJSON != "" {
		var meta encodeMetadata
		if err := json.Unmarshal([]byte(*metadataJSON), &meta); err != nil {
			return fmt.Errorf("parsing --metadata: %w", err)
		}
		b.applyMetadata(&meta)
	}
	b.applyFlags(fs, tileID, meshKind, rows, cols, bands, dtype, endianness, compression, noData)

	input, err := b.build()
	if err != nil {
		return err
	}

	input.Values, err = loadValues(*valuesJSON, *valuesFile)
	if err != nil {
		return err
	}

	logger.Debug("encoding tile", "mesh_kind", input.MeshKind, "dtype", input.DType, "samples", len(input.Values))
	result, err := mti1.Encode(input)
	if opLogger != nil {
		opLogger.LogEncode(input, result, err)
	}
	if err != nil {
		return err
	}

	if err := os.WriteFile(*output, result.Bytes, 0o644); err != nil {
		return fmt.Errorf("writing %q: %w", *output, err)
	}
	return nil
}

// encodeBuilder accumulates the string/numeric form of each encode
// field across config, metadata, and flag layers before a final
// parse-and-validate pass in build().
type encodeBuilder struct {
	tileID      string
	meshKind    string
	dtype       string
	endianness  string
	compression string
	rows, cols  uint32
	bands       uint8
	noData      *string
}

func (b *encodeBuilder) applyConfig(d *encodeDefaults) {
	b.tileID = d.TileID
	b.meshKind = d.MeshKind
	b.dtype = d.DType
	b.endianness = d.Endianness
	b.compression = d.Compression
	b.rows = d.Rows
	b.cols = d.Cols
	b.bands = d.Bands
}

func (b *encodeBuilder) applyMetadata(m *encodeMetadata) {
	if m.TileID != nil {
		b.tileID = *m.TileID
	}
	if m.MeshKind != nil {
		b.meshKind = *m.MeshKind
	}
	if m.DType != nil {
		b.dtype = *m.DType
	}
	if m.Endianness != nil {
		b.endianness = *m.Endianness
	}
	if m.Compression != nil {
		b.compression = *m.Compression
	}
	if m.Rows != nil {
		b.rows = *m.Rows
	}
	if m.Cols != nil {
		b.cols = *m.Cols
	}
	if m.Bands != nil {
		b.bands = *m.Bands
	}
	if m.NoData != nil {
		s := strconv.FormatFloat(*m.NoData, 'g', -1, 64)
		b.noData = &s
	}
}

func (b *encodeBuilder) applyFlags(fs *pflag.FlagSet, tileID, meshKind *string, rows, cols *uint32, bands *uint8, dtype, endianness, compression, noData *string) {
	if fs.Changed("tile-id") {
		b.tileID = *tileID
	}
	if fs.Changed("mesh-kind") {
		b.meshKind = *meshKind
	}
	if fs.Changed("rows") {
		b.rows = *rows
	}
	if fs.Changed("cols") {
		b.cols = *cols
	}
	if fs.Changed("bands") {
		b.bands = *bands
	}
	if fs.Changed("dtype") {
		b.dtype = *dtype
	}
	if fs.Changed("endianness") {
		b.endianness = *endianness
	}
	if fs.Changed("compression") {
		b.compression = *compression
	}
	if fs.Changed("no-data") {
		b.noData = noData
	}
}

// build parses the accumulated string/numeric fields into a typed
// mti1.EncodeInput. Values is left unset; the caller fills it in from
// --values/--values-file.
func (b *encodeBuilder) build() (mti1.EncodeInput, error) {
	var input mti1.EncodeInput

	if b.tileID == "" {
		return input, fmt.Errorf("tile id is required (--tile-id, --metadata, or --config)")
	}
	input.TileID = b.tileID

	meshKind, err := mti1.ParseMeshKind(b.meshKind)
	if err != nil {
		return input, err
	}
	input.MeshKind = meshKind

	dtype, err := mti1.ParseDType(b.dtype)
	if err != nil {
		return input, err
	}
	input.DType = dtype

	endianness := mti1.LittleEndian
	if b.endianness != "" {
		endianness, err = mti1.ParseEndianness(b.endianness)
		if err != nil {
			return input, err
		}
	}
	input.Endianness = endianness

	compression, err := mti1.ParseCompression(b.compression)
	if err != nil {
		return input, err
	}
	input.Compression = compression

	input.Dimensions = mti1.Dimensions{Rows: b.rows, Cols: b.cols, Bands: b.bands}

	if b.noData != nil {
		s := *b.noData
		if s == "" || s == "null" {
			input.NoData = nil
		} else {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return input, fmt.Errorf("parsing --no-data %q: %w", s, err)
			}
			input.NoData = &v
		}
	}

	return input, nil
}

// loadValues resolves the sample values from either a literal JSON
// array (--values) or a file containing one (--values-file).
func loadValues(valuesJSON, valuesFile string) ([]float64, error) {
	var raw []byte
	switch {
	case valuesJSON != "" && valuesFile != "":
		return nil, fmt.Errorf("specify only one of --values or --values-file")
	case valuesJSON != "":
		raw = []byte(valuesJSON)
	case valuesFile != "":
		data, err := os.ReadFile(valuesFile)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", valuesFile, err)
		}
		raw = data
	default:
		return nil, fmt.Errorf("values are required (--values or --values-file)")
	}

	var values []float64
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, fmt.Errorf("parsing values as a JSON array of numbers: %w", err)
	}
	return values, nil
}
