package mti1

import "math"

// Encode pipeline (C8): normalize tile id; validate mesh_kind, dtype,
// endianness; apply validateTileIDForMeshKind; validate dimensions;
// resolve compression; validate no_data finiteness; encode values to
// raw payload bytes; compress to stored bytes; compute payload CRC
// over raw bytes; assemble header (which computes header CRC);
// concatenate header and stored payload.
func Encode(input EncodeInput) (EncodeResult, error) {
	tileID, err := NormalizeTileID(input.TileID)
	if err != nil {
		return EncodeResult{}, err
	}

	if input.MeshKind != MeshJISX0410 && input.MeshKind != MeshXYZ {
		return EncodeResult{}, errf(MissingRequiredField, "mesh_kind is required and must be JIS_X0410 or XYZ")
	}
	if !input.DType.Valid() {
		return EncodeResult{}, errf(InvalidFieldValue, "dtype code %d is not recognized", input.DType)
	}
	if input.Endianness != LittleEndian && input.Endianness != BigEndian {
		return EncodeResult{}, errf(InvalidFieldValue, "endianness code %d is not recognized", input.Endianness)
	}
	if err := validateTileIDForMeshKind(input.MeshKind, tileID); err != nil {
		return EncodeResult{}, err
	}

	sampleCount, err := input.Dimensions.SampleCount()
	if err != nil {
		return EncodeResult{}, err
	}
	if input.Dimensions.Rows > math.MaxUint32 || input.Dimensions.Cols > math.MaxUint32 {
		return EncodeResult{}, errf(InvalidFieldValue, "rows/cols must fit in 32 bits")
	}

	compression := input.Compression
	if compression != CompressionNone && compression != CompressionDeflateRaw {
		return EncodeResult{}, errf(InvalidFieldValue, "compression code %d is not recognized", compression)
	}
	if !compressionSupported(compression) {
		return EncodeResult{}, errf(UnsupportedCompression, "compression mode %s is not available", compression)
	}

	if input.NoData != nil {
		if err := validateScalar(input.DType, *input.NoData); err != nil {
			return EncodeResult{}, err
		}
		if math.IsNaN(*input.NoData) || math.IsInf(*input.NoData, 0) {
			return EncodeResult{}, errf(InvalidFieldValue, "no_data value must be finite")
		}
	}

	for _, v := range input.Values {
		if err := validateScalar(input.DType, v); err != nil {
			return EncodeResult{}, err
		}
	}

	width := uint64(input.DType.Width())
	if sampleCount > uint64(math.MaxInt)/width {
		return EncodeResult{}, errf(InvalidFieldValue, "sample count too large to address")
	}

	raw, err := encodePayload(input.DType, input.Endianness.little(), input.Values, int(sampleCount))
	if err != nil {
		return EncodeResult{}, err
	}
	expectedRawLen := sampleCount * width
	if uint64(len(raw)) != expectedRawLen {
		return EncodeResult{}, errf(InternalFailure, "encoded payload length %d does not match expected %d", len(raw), expectedRawLen)
	}

	stored, err := compressPayload(compression, raw)
	if err != nil {
		return EncodeResult{}, err
	}

	payloadCRC := crc32Checksum(raw)

	header := Header{
		FormatMajor:               FormatMajor1,
		TileID:                    tileID,
		MeshKind:                  input.MeshKind,
		DType:                     input.DType,
		Endianness:                input.Endianness,
		Compression:               compression,
		Dimensions:                input.Dimensions,
		NoData:                    input.NoData,
		UncompressedPayloadLength: uint64(len(raw)),
		CompressedPayloadLength:   uint64(len(stored)),
		Checksum:                  Checksum{PayloadCRC32: payloadCRC},
	}

	headerBytes, err := packHeader(header)
	if err != nil {
		return EncodeResult{}, err
	}
	header.Checksum.HeaderCRC32 = crc32Checksum(headerBytes[:headerCRCInputLength])

	out := make([]byte, 0, FixedHeaderLength+len(stored))
	out = append(out, headerBytes[:]...)
	out = append(out, stored...)

	return EncodeResult{Bytes: out, Header: header}, nil
}
