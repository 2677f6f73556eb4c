package mti1

import "encoding/binary"

// Header codec (C7): pack/unpack the 58-byte fixed header (§4.7),
// compute and verify the header CRC, and dispatch the enum/dimension/
// tile-id/no-data validity rules that must hold before any payload
// byte is trusted.

const (
	offMagic       = 0
	offFormatMajor = 4
	offTileID      = 5
	offMeshKind    = 13
	offDTypeEndian = 14
	offCompression = 15
	offRows        = 16
	offCols        = 20
	offBands       = 24
	offNoDataKind  = 25
	offNoDataValue = 26
	offUncompLen   = 34
	offCompLen     = 42
	offPayloadCRC  = 50
	offHeaderCRC   = 54
)

const dtypeEndianBigBit = 0x80

// packHeader assembles the 58-byte fixed header for h. Callers are
// expected to have already validated h (the encode pipeline does
// this); packHeader itself only serializes and computes the header
// CRC.
func packHeader(h Header) ([FixedHeaderLength]byte, error) {
	var buf [FixedHeaderLength]byte

	copy(buf[offMagic:offMagic+4], magicBytes[:])
	buf[offFormatMajor] = h.FormatMajor
	binary.LittleEndian.PutUint64(buf[offTileID:], h.TileID)
	buf[offMeshKind] = byte(h.MeshKind)

	dtypeEndian := byte(h.DType)
	if h.Endianness == BigEndian {
		dtypeEndian |= dtypeEndianBigBit
	}
	buf[offDTypeEndian] = dtypeEndian

	buf[offCompression] = byte(h.Compression)
	binary.LittleEndian.PutUint32(buf[offRows:], h.Dimensions.Rows)
	binary.LittleEndian.PutUint32(buf[offCols:], h.Dimensions.Cols)
	buf[offBands] = h.Dimensions.Bands

	kind, slot, err := packNoData(h.DType, h.Endianness.little(), h.NoData)
	if err != nil {
		return buf, err
	}
	buf[offNoDataKind] = kind
	copy(buf[offNoDataValue:offNoDataValue+8], slot[:])

	binary.LittleEndian.PutUint64(buf[offUncompLen:], h.UncompressedPayloadLength)
	binary.LittleEndian.PutUint64(buf[offCompLen:], h.CompressedPayloadLength)
	binary.LittleEndian.PutUint32(buf[offPayloadCRC:], h.Checksum.PayloadCRC32)

	headerCRC := crc32Checksum(buf[:headerCRCInputLength])
	binary.LittleEndian.PutUint32(buf[offHeaderCRC:], headerCRC)

	return buf, nil
}

// parseHeader parses and validates the fixed header prefix of buf,
// enforcing the rejection order fixed by §4.7: magic, version, header
// CRC, enum/dimension values, tile-id validity for mesh kind, then
// no_data padding. It does not look past byte 58: payload-length and
// payload-CRC checks belong to the inspect/decode pipelines, which
// know the total buffer length.
func parseHeader(buf []byte) (Header, error) {
	if len(buf) < FixedHeaderLength {
		return Header{}, errf(InvalidHeaderLength, "buffer is %d bytes, fixed header requires %d", len(buf), FixedHeaderLength)
	}

	if string(buf[offMagic:offMagic+4]) != string(magicBytes[:]) {
		return Header{}, newErr(InvalidMagic, "missing MTI1 magic bytes")
	}

	formatMajor := buf[offFormatMajor]
	if formatMajor != FormatMajor1 {
		return Header{}, errf(UnsupportedVersion, "format_major %d is not supported", formatMajor)
	}

	storedHeaderCRC := binary.LittleEndian.Uint32(buf[offHeaderCRC:])
	computedHeaderCRC := crc32Checksum(buf[:headerCRCInputLength])
	if storedHeaderCRC != computedHeaderCRC {
		return Header{}, errf(HeaderChecksumMismatch, "header CRC mismatch: stored %s, computed %s", crc32Hex(storedHeaderCRC), crc32Hex(computedHeaderCRC))
	}

	meshKind := MeshKind(buf[offMeshKind])
	if meshKind != MeshJISX0410 && meshKind != MeshXYZ {
		return Header{}, errf(InvalidFieldValue, "mesh_kind code %d is not recognized", meshKind)
	}

	dtypeEndian := buf[offDTypeEndian]
	dtype := DType(dtypeEndian &^ dtypeEndianBigBit)
	endianness := LittleEndian
	if dtypeEndian&dtypeEndianBigBit != 0 {
		endianness = BigEndian
	}
	if !dtype.Valid() {
		return Header{}, errf(InvalidFieldValue, "dtype code %d is not recognized", dtype)
	}

	compression := Compression(buf[offCompression])
	if compression != CompressionNone && compression != CompressionDeflateRaw {
		return Header{}, errf(InvalidFieldValue, "compression code %d is not recognized", compression)
	}

	rows := binary.LittleEndian.Uint32(buf[offRows:])
	cols := binary.LittleEndian.Uint32(buf[offCols:])
	bands := buf[offBands]
	if rows == 0 || cols == 0 || bands == 0 {
		return Header{}, errf(InvalidFieldValue, "rows, cols, and bands must all be >= 1")
	}

	tileID := binary.LittleEndian.Uint64(buf[offTileID:])
	if err := validateTileIDForMeshKind(meshKind, tileID); err != nil {
		return Header{}, err
	}

	noDataKind := buf[offNoDataKind]
	var noDataSlot [8]byte
	copy(noDataSlot[:], buf[offNoDataValue:offNoDataValue+8])
	noData, err := unpackNoData(dtype, endianness.little(), noDataKind, noDataSlot)
	if err != nil {
		return Header{}, err
	}

	uncompLen := binary.LittleEndian.Uint64(buf[offUncompLen:])
	compLen := binary.LittleEndian.Uint64(buf[offCompLen:])
	payloadCRC := binary.LittleEndian.Uint32(buf[offPayloadCRC:])

	return Header{
		FormatMajor:               formatMajor,
		TileID:                    tileID,
		MeshKind:                  meshKind,
		DType:                     dtype,
		Endianness:                endianness,
		Compression:               compression,
		Dimensions:                Dimensions{Rows: rows, Cols: cols, Bands: bands},
		NoData:                    noData,
		UncompressedPayloadLength: uncompLen,
		CompressedPayloadLength:   compLen,
		Checksum: Checksum{
			PayloadCRC32: payloadCRC,
			HeaderCRC32:  computedHeaderCRC,
		},
	}, nil
}
