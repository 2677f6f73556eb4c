package mti1

import "math"

// Inspect (C9, header-only half): require >= 58 bytes, parse the
// header, compute derived offsets/lengths. Performs no decompression
// and no payload CRC check (§4.9).
func Inspect(data []byte) (InspectResult, error) {
	header, err := parseHeader(data)
	if err != nil {
		return InspectResult{}, err
	}

	payloadLength := header.CompressedPayloadLength
	if payloadLength > uint64(math.MaxInt) {
		return InspectResult{}, errf(InvalidHeaderLength, "declared stored payload length %d is outside the addressable range", payloadLength)
	}

	expectedTotal := uint64(FixedHeaderLength) + payloadLength
	if uint64(len(data)) != expectedTotal {
		return InspectResult{}, errf(InvalidPayloadLength, "declared stored payload length %d plus header does not match file length %d", payloadLength, len(data))
	}

	return InspectResult{
		Header:        header,
		HeaderLength:  FixedHeaderLength,
		PayloadOffset: FixedHeaderLength,
		PayloadLength: payloadLength,
	}, nil
}

// Decode (C9, full pipeline): Inspect, then check compression
// support, decompress, verify decompressed length against the
// declared uncompressed length, verify the payload CRC, verify the
// decoded byte length against sample_count*width, and decode scalars.
// Every integrity check precedes any consumption of the next stage
// (§2), mirroring the linear state machine in §4.9:
// NEW -> HEADER_PARSED -> PAYLOAD_LOADED -> DECOMPRESSED ->
// CRC_VERIFIED -> SAMPLES_DECODED.
func Decode(data []byte) (DecodeResult, error) {
	inspected, err := Inspect(data)
	if err != nil {
		return DecodeResult{}, err
	}
	header := inspected.Header

	if !compressionSupported(header.Compression) {
		return DecodeResult{}, errf(UnsupportedCompression, "compression mode %s is not available", header.Compression)
	}

	stored := data[inspected.PayloadOffset : inspected.PayloadOffset+int(inspected.PayloadLength)]

	raw, err := decompressPayload(header.Compression, stored)
	if err != nil {
		return DecodeResult{}, err
	}
	if uint64(len(raw)) != header.UncompressedPayloadLength {
		return DecodeResult{}, errf(InvalidPayloadLength, "decompressed length %d does not match declared uncompressed length %d", len(raw), header.UncompressedPayloadLength)
	}

	payloadCRC := crc32Checksum(raw)
	if payloadCRC != header.Checksum.PayloadCRC32 {
		return DecodeResult{}, errf(PayloadChecksumMismatch, "payload CRC mismatch: stored %s, computed %s", crc32Hex(header.Checksum.PayloadCRC32), crc32Hex(payloadCRC))
	}

	sampleCount, err := header.Dimensions.SampleCount()
	if err != nil {
		return DecodeResult{}, err
	}
	width := uint64(header.DType.Width())
	if uint64(len(raw)) != sampleCount*width {
		return DecodeResult{}, errf(InvalidPayloadLength, "decoded payload byte length %d does not match sample_count*width %d", len(raw), sampleCount*width)
	}

	values, err := decodePayload(header.DType, header.Endianness.little(), raw)
	if err != nil {
		return DecodeResult{}, err
	}

	return DecodeResult{Header: header, UncompressedPayload: raw, Values: values}, nil
}
