package mti1

// FormatMajor1 is the only format_major value this codec accepts;
// any other value is a hard reject (§3).
const FormatMajor1 uint8 = 1

// Endianness selects the byte order applied to samples and to the
// no_data scalar slot (header fields themselves are always
// little-endian, §4.7).
type Endianness uint8

const (
	LittleEndian Endianness = iota
	BigEndian
)

func (e Endianness) little() bool { return e == LittleEndian }

func (e Endianness) String() string {
	switch e {
	case LittleEndian:
		return "little"
	case BigEndian:
		return "big"
	default:
		return "unknown"
	}
}

// ParseEndianness maps an external endianness name to its code.
func ParseEndianness(name string) (Endianness, error) {
	switch name {
	case "little":
		return LittleEndian, nil
	case "big":
		return BigEndian, nil
	default:
		return 0, errf(InvalidFieldValue, "unknown endianness %q", name)
	}
}

// Dimensions is the rows x cols x bands grid shape of a tile (§3).
type Dimensions struct {
	Rows  uint32
	Cols  uint32
	Bands uint8
}

// SampleCount validates and returns rows*cols*bands (invariant 1,
// §3): it must be strictly positive and fit in a pointer-safe
// (uint64, not overflowing) integer.
func (dims Dimensions) SampleCount() (uint64, error) {
	if dims.Rows == 0 || dims.Cols == 0 || dims.Bands == 0 {
		return 0, errf(InvalidFieldValue, "rows, cols, and bands must all be >= 1")
	}
	// rows*cols always fits uint64, but multiplying by bands can exceed
	// it (up to about 2^72), so check before the second multiplication.
	cells := uint64(dims.Rows) * uint64(dims.Cols)
	if cells > ^uint64(0)/uint64(dims.Bands) {
		return 0, errf(InvalidFieldValue, "sample count overflowed")
	}
	return cells * uint64(dims.Bands), nil
}

// Checksum bundles the two CRC-32 values a tile carries (§3).
// External consumers see these hex-formatted.
type Checksum struct {
	PayloadCRC32 uint32
	HeaderCRC32  uint32
}

func (c Checksum) PayloadCRC32Hex() string { return crc32Hex(c.PayloadCRC32) }
func (c Checksum) HeaderCRC32Hex() string  { return crc32Hex(c.HeaderCRC32) }

// Header is the fully parsed, structured form of the 58-byte fixed
// header (§4.7), plus the checksum bundle.
type Header struct {
	FormatMajor               uint8
	TileID                    uint64
	MeshKind                  MeshKind
	DType                     DType
	Endianness                Endianness
	Compression               Compression
	Dimensions                Dimensions
	NoData                    *float64
	UncompressedPayloadLength uint64
	CompressedPayloadLength   uint64
	Checksum                  Checksum
}

// EncodeInput is everything the encode pipeline (C8) needs: the
// logical tile fields plus the raw value sequence.
type EncodeInput struct {
	TileID      any // uint64, int64, int, float64, or an unsigned decimal string (§4.5)
	MeshKind    MeshKind
	DType       DType
	Endianness  Endianness
	Compression Compression // zero value (CompressionNone) is a valid default
	Dimensions  Dimensions
	NoData      *float64
	Values      []float64
}

// EncodeResult is the output of the encode pipeline: the assembled
// bytes and the header that was packed into them.
type EncodeResult struct {
	Bytes  []byte
	Header Header
}

// InspectResult is the output of the inspect pipeline (C9): the
// parsed header plus the derived offsets/lengths. Inspect performs no
// decompression and no payload CRC check.
type InspectResult struct {
	Header        Header
	HeaderLength  int
	PayloadOffset int
	PayloadLength uint64
}

// DecodeResult is the output of the decode pipeline: the parsed
// header, the uncompressed payload bytes, and the decoded scalar
// sequence.
type DecodeResult struct {
	Header              Header
	UncompressedPayload []byte
	Values              []float64
}

// FixedHeaderLength is the constant 58-byte header size (§4.7).
const FixedHeaderLength = 58

// headerCRCInputLength is the number of leading header bytes the
// header CRC is computed over (§4.7 offset 54).
const headerCRCInputLength = 54

// magicBytes is the 4-byte "MTI1" file magic (§4.7).
var magicBytes = [4]byte{'M', 'T', 'I', '1'}
