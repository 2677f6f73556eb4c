package mti1

import "math"

// No-data field codec (C6): an 8-byte in-band slot, preceded by a
// 1-byte kind, using the same dtype/endian rules as payload samples
// (§4.6). The slot is always zeroed before the scalar is written, and
// zero-padding is strictly enforced on read — the repository's one
// nontrivial serialization rule (§9).

const noDataKindAbsent byte = 0
const noDataKindPresent byte = 1

// packNoData serializes an optional no_data scalar into its 8-byte
// on-disk slot and kind byte.
func packNoData(d DType, little bool, value *float64) (kind byte, slot [8]byte, err error) {
	if value == nil {
		return noDataKindAbsent, slot, nil
	}
	width := d.Width()
	if width == 0 {
		return 0, slot, errf(InternalFailure, "unknown dtype code %d", d)
	}
	scratch := make([]byte, width)
	if err := writeScalar(d, scratch, little, *value); err != nil {
		return 0, slot, err
	}
	if little {
		copy(slot[0:width], scratch)
	} else {
		copy(slot[8-width:8], scratch)
	}
	return noDataKindPresent, slot, nil
}

// unpackNoData deserializes the 8-byte no_data slot. It returns a nil
// value when kind is absent, after confirming all 8 bytes are zero.
// When kind is present it enforces zero padding outside the w-byte
// value window and rejects a non-finite decoded scalar.
func unpackNoData(d DType, little bool, kind byte, slot [8]byte) (*float64, error) {
	switch kind {
	case noDataKindAbsent:
		for _, b := range slot {
			if b != 0 {
				return nil, errf(InvalidFieldValue, "no_data kind is absent but value bytes are nonzero")
			}
		}
		return nil, nil
	case noDataKindPresent:
		width := d.Width()
		if width == 0 {
			return nil, errf(InternalFailure, "unknown dtype code %d", d)
		}
		var valueBytes []byte
		if little {
			valueBytes = slot[0:width]
			for _, b := range slot[width:8] {
				if b != 0 {
					return nil, errf(InvalidFieldValue, "no_data padding bytes are nonzero")
				}
			}
		} else {
			valueBytes = slot[8-width : 8]
			for _, b := range slot[0 : 8-width] {
				if b != 0 {
					return nil, errf(InvalidFieldValue, "no_data padding bytes are nonzero")
				}
			}
		}
		v, err := readScalar(d, valueBytes, little)
		if err != nil {
			return nil, err
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, errf(InvalidFieldValue, "no_data value must be finite")
		}
		return &v, nil
	default:
		return nil, errf(InvalidFieldValue, "no_data kind byte %d must be 0 or 1", kind)
	}
}
