package mti1

// Payload codec (C3): bulk encode of a value sequence under
// (dtype, endian), bulk decode from bytes, with strict count/length
// checks. Sample order is fixed by callers (row outermost, band
// innermost, §4.3) — this codec only ever sees a flat sequence.

// encodePayload serializes values as expectedCount scalars of dtype
// d. It fails if len(values) != expectedCount.
func encodePayload(d DType, little bool, values []float64, expectedCount int) ([]byte, error) {
	if len(values) != expectedCount {
		return nil, errf(InvalidFieldValue, "expected %d values, got %d", expectedCount, len(values))
	}
	width := d.Width()
	out := make([]byte, expectedCount*width)
	for i, v := range values {
		if err := writeScalar(d, out[i*width:], little, v); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// decodePayload deserializes raw into a sequence of scalars of dtype
// d. It fails if len(raw) is not a multiple of the dtype width.
func decodePayload(d DType, little bool, raw []byte) ([]float64, error) {
	width := d.Width()
	if width == 0 {
		return nil, errf(InternalFailure, "unknown dtype code %d", d)
	}
	if len(raw)%width != 0 {
		return nil, errf(InvalidFieldValue, "payload length %d is not a multiple of dtype width %d", len(raw), width)
	}
	count := len(raw) / width
	out := make([]float64, count)
	for i := 0; i < count; i++ {
		v, err := readScalar(d, raw[i*width:], little)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// sampleIndex computes the fixed linear index for (row, col, band)
// per §4.3: row outermost, band innermost.
func sampleIndex(row, col, band uint64, cols uint64, bands uint8) uint64 {
	return ((row*cols)+col)*uint64(bands) + band
}
