package mti1

import (
	"encoding/binary"
	"math"
)

// DType enumerates the eight numeric sample types a tile may carry.
// Codes match the on-disk header encoding (§4.7) exactly — do not
// reorder.
type DType uint8

const (
	Uint8 DType = iota
	Int8
	Uint16
	Int16
	Uint32
	Int32
	Float32
	Float64
)

// dtypeDescriptor holds everything C2 needs for one dtype: byte
// width, integrality, inclusive value range, and endian-aware scalar
// read/write. A fixed array indexed by code avoids both a type switch
// sprawled across every caller and any reflection (§9).
type dtypeDescriptor struct {
	width     int
	isInteger bool
	min, max  float64 // ±MaxFloat64 for Float64, so every finite value passes
	read      func(buf []byte, little bool) float64
	write     func(buf []byte, little bool, v float64)
}

var dtypeTable = [8]dtypeDescriptor{
	Uint8: {
		width: 1, isInteger: true, min: 0, max: math.MaxUint8,
		read:  func(buf []byte, _ bool) float64 { return float64(buf[0]) },
		write: func(buf []byte, _ bool, v float64) { buf[0] = byte(uint8(v)) },
	},
	Int8: {
		width: 1, isInteger: true, min: math.MinInt8, max: math.MaxInt8,
		read:  func(buf []byte, _ bool) float64 { return float64(int8(buf[0])) },
		write: func(buf []byte, _ bool, v float64) { buf[0] = byte(int8(v)) },
	},
	Uint16: {
		width: 2, isInteger: true, min: 0, max: math.MaxUint16,
		read: func(buf []byte, little bool) float64 {
			if little {
				return float64(binary.LittleEndian.Uint16(buf))
			}
			return float64(binary.BigEndian.Uint16(buf))
		},
		write: func(buf []byte, little bool, v float64) {
			if little {
				binary.LittleEndian.PutUint16(buf, uint16(v))
			} else {
				binary.BigEndian.PutUint16(buf, uint16(v))
			}
		},
	},
	Int16: {
		width: 2, isInteger: true, min: math.MinInt16, max: math.MaxInt16,
		read: func(buf []byte, little bool) float64 {
			if little {
				return float64(int16(binary.LittleEndian.Uint16(buf)))
			}
			return float64(int16(binary.BigEndian.Uint16(buf)))
		},
		write: func(buf []byte, little bool, v float64) {
			if little {
				binary.LittleEndian.PutUint16(buf, uint16(int16(v)))
			} else {
				binary.BigEndian.PutUint16(buf, uint16(int16(v)))
			}
		},
	},
	Uint32: {
		width: 4, isInteger: true, min: 0, max: math.MaxUint32,
		read: func(buf []byte, little bool) float64 {
			if little {
				return float64(binary.LittleEndian.Uint32(buf))
			}
			return float64(binary.BigEndian.Uint32(buf))
		},
		write: func(buf []byte, little bool, v float64) {
			if little {
				binary.LittleEndian.PutUint32(buf, uint32(v))
			} else {
				binary.BigEndian.PutUint32(buf, uint32(v))
			}
		},
	},
	Int32: {
		width: 4, isInteger: true, min: math.MinInt32, max: math.MaxInt32,
		read: func(buf []byte, little bool) float64 {
			if little {
				return float64(int32(binary.LittleEndian.Uint32(buf)))
			}
			return float64(int32(binary.BigEndian.Uint32(buf)))
		},
		write: func(buf []byte, little bool, v float64) {
			if little {
				binary.LittleEndian.PutUint32(buf, uint32(int32(v)))
			} else {
				binary.BigEndian.PutUint32(buf, uint32(int32(v)))
			}
		},
	},
	Float32: {
		width: 4, isInteger: false, min: -math.MaxFloat32, max: math.MaxFloat32,
		read: func(buf []byte, little bool) float64 {
			if little {
				return float64(math.Float32frombits(binary.LittleEndian.Uint32(buf)))
			}
			return float64(math.Float32frombits(binary.BigEndian.Uint32(buf)))
		},
		write: func(buf []byte, little bool, v float64) {
			bits := math.Float32bits(float32(v))
			if little {
				binary.LittleEndian.PutUint32(buf, bits)
			} else {
				binary.BigEndian.PutUint32(buf, bits)
			}
		},
	},
	Float64: {
		width: 8, isInteger: false, min: -math.MaxFloat64, max: math.MaxFloat64,
		read: func(buf []byte, little bool) float64 {
			if little {
				return math.Float64frombits(binary.LittleEndian.Uint64(buf))
			}
			return math.Float64frombits(binary.BigEndian.Uint64(buf))
		},
		write: func(buf []byte, little bool, v float64) {
			bits := math.Float64bits(v)
			if little {
				binary.LittleEndian.PutUint64(buf, bits)
			} else {
				binary.BigEndian.PutUint64(buf, bits)
			}
		},
	},
}

// descriptor returns the dtype descriptor for d, or nil if d is not
// one of the eight known codes.
func (d DType) descriptor() (*dtypeDescriptor, bool) {
	if int(d) < 0 || int(d) >= len(dtypeTable) {
		return nil, false
	}
	return &dtypeTable[d], true
}

// Width returns the on-disk byte width of one sample of this dtype.
func (d DType) Width() int {
	desc, ok := d.descriptor()
	if !ok {
		return 0
	}
	return desc.width
}

// Valid reports whether d is one of the eight known dtype codes.
func (d DType) Valid() bool {
	_, ok := d.descriptor()
	return ok
}

// validateScalar checks a value against C2's encode-time rules: no
// non-finite values except NaN on float dtypes, no fractional values
// on integer dtypes, and range bounds on everything.
func validateScalar(d DType, v float64) error {
	desc, ok := d.descriptor()
	if !ok {
		return errf(InternalFailure, "unknown dtype code %d", d)
	}
	if math.IsNaN(v) {
		if desc.isInteger {
			return errf(InvalidFieldValue, "NaN is not a valid %s value", d)
		}
		return nil
	}
	if math.IsInf(v, 0) {
		return errf(InvalidFieldValue, "non-finite value %v is not valid for %s", v, d)
	}
	if desc.isInteger && v != math.Trunc(v) {
		return errf(InvalidFieldValue, "non-integer value %v is not valid for %s", v, d)
	}
	if v < desc.min || v > desc.max {
		return errf(InvalidFieldValue, "value %v out of range for %s [%v, %v]", v, d, desc.min, desc.max)
	}
	return nil
}

// readScalar decodes one dtype-width scalar from the front of buf.
// Decoding performs no range check (§4.2): byte width and signedness
// already constrain the result.
func readScalar(d DType, buf []byte, little bool) (float64, error) {
	desc, ok := d.descriptor()
	if !ok {
		return 0, errf(InternalFailure, "unknown dtype code %d", d)
	}
	if len(buf) < desc.width {
		return 0, errf(InvalidFieldValue, "buffer too short for %s scalar", d)
	}
	return desc.read(buf[:desc.width], little), nil
}

// writeScalar encodes v into the front of buf using dtype d.
func writeScalar(d DType, buf []byte, little bool, v float64) error {
	desc, ok := d.descriptor()
	if !ok {
		return errf(InternalFailure, "unknown dtype code %d", d)
	}
	if len(buf) < desc.width {
		return errf(InternalFailure, "buffer too short for %s scalar", d)
	}
	desc.write(buf[:desc.width], little, v)
	return nil
}

func (d DType) String() string {
	switch d {
	case Uint8:
		return "uint8"
	case Int8:
		return "int8"
	case Uint16:
		return "uint16"
	case Int16:
		return "int16"
	case Uint32:
		return "uint32"
	case Int32:
		return "int32"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	default:
		return "unknown"
	}
}

// ParseDType maps an external dtype name to its DType code.
func ParseDType(name string) (DType, error) {
	switch name {
	case "uint8":
		return Uint8, nil
	case "int8":
		return Int8, nil
	case "uint16":
		return Uint16, nil
	case "int16":
		return Int16, nil
	case "uint32":
		return Uint32, nil
	case "int32":
		return Int32, nil
	case "float32":
		return Float32, nil
	case "float64":
		return Float64, nil
	default:
		return 0, errf(InvalidFieldValue, "unknown dtype %q", name)
	}
}
