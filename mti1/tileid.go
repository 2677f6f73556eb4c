package mti1

import (
	"math"
	"strconv"
	"strings"
)

// Tile-identity codec (C5): two mesh kinds share the same 64-bit
// tile_id slot with different semantics.
const (
	zoomBits     = 6
	quadkeyBits  = 58
	maxZoom      = 29
	quadkeyMask  = (uint64(1) << quadkeyBits) - 1
)

// MeshKind selects how tile_id is interpreted (§3). Codes match the
// on-disk header encoding (§4.7).
type MeshKind uint8

const (
	_ MeshKind = iota
	MeshJISX0410
	MeshXYZ
)

func (m MeshKind) String() string {
	switch m {
	case MeshJISX0410:
		return "JIS_X0410"
	case MeshXYZ:
		return "XYZ"
	default:
		return "unknown"
	}
}

// ParseMeshKind maps an external mesh-kind name to its code.
func ParseMeshKind(name string) (MeshKind, error) {
	switch name {
	case "JIS_X0410":
		return MeshJISX0410, nil
	case "XYZ":
		return MeshXYZ, nil
	default:
		return 0, errf(InvalidFieldValue, "unknown mesh kind %q", name)
	}
}

// XYZ is the decoded form of an XYZ-packed tile_id.
type XYZ struct {
	Zoom    uint8
	X, Y    uint64
	Quadkey uint64
}

// EncodeXYZ packs (zoom, x, y) into a tile_id per §4.5: interleave x
// and y bits from the top of the zoom range down to bit 0, each step
// emitting a 2-bit digit (x_bit | y_bit<<1) and shifting the
// accumulator left 2.
func EncodeXYZ(zoom uint8, x, y uint64) (uint64, error) {
	if zoom > maxZoom {
		return 0, errf(InvalidFieldValue, "zoom %d exceeds maximum %d", zoom, maxZoom)
	}
	limit := uint64(1) << zoom
	if x >= limit || y >= limit {
		return 0, errf(InvalidFieldValue, "x/y must be in [0, 2^%d) for zoom %d", zoom, zoom)
	}
	var quadkey uint64
	for bit := int(zoom) - 1; bit >= 0; bit-- {
		xBit := (x >> uint(bit)) & 1
		yBit := (y >> uint(bit)) & 1
		digit := xBit | (yBit << 1)
		quadkey = (quadkey << 2) | digit
	}
	return (uint64(zoom) << quadkeyBits) | quadkey, nil
}

// DecodeXYZ unpacks a tile_id into its (zoom, x, y, quadkey) form.
func DecodeXYZ(tileID uint64) (XYZ, error) {
	zoom := uint8(tileID >> quadkeyBits)
	if zoom > maxZoom {
		return XYZ{}, errf(InvalidFieldValue, "zoom %d exceeds maximum %d", zoom, maxZoom)
	}
	quadkey := tileID & quadkeyMask
	usedBits := 2 * int(zoom)
	if usedBits < quadkeyBits {
		if quadkey>>uint(usedBits) != 0 {
			return XYZ{}, errf(InvalidFieldValue, "quadkey has bits set above 2*zoom for zoom %d", zoom)
		}
	}
	var x, y uint64
	for bit := int(zoom) - 1; bit >= 0; bit-- {
		shift := uint(2 * bit)
		digit := (quadkey >> shift) & 0x3
		xBit := digit & 1
		yBit := (digit >> 1) & 1
		x = (x << 1) | xBit
		y = (y << 1) | yBit
	}
	return XYZ{Zoom: zoom, X: x, Y: y, Quadkey: quadkey}, nil
}

// AssertValidXYZ validates that tileID is a structurally valid XYZ
// packing and returns it unchanged, for use as a guard in pipelines.
func AssertValidXYZ(tileID uint64) (uint64, error) {
	if _, err := DecodeXYZ(tileID); err != nil {
		return 0, err
	}
	return tileID, nil
}

// validateTileIDForMeshKind applies §3 invariants 5 and 6.
func validateTileIDForMeshKind(kind MeshKind, tileID uint64) error {
	switch kind {
	case MeshXYZ:
		_, err := DecodeXYZ(tileID)
		return err
	case MeshJISX0410:
		return nil // any u64 is a structurally valid JIS mesh code.
	default:
		return errf(InvalidFieldValue, "unknown mesh kind %d", kind)
	}
}

// NormalizeTileID accepts a tile id expressed as a uint64, int64, int,
// integral float64, or an unsigned decimal digit string, and returns
// it as a uint64.
// Negative values and non-digit strings are rejected, as are values
// outside [0, 2^64).
func NormalizeTileID(v any) (uint64, error) {
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int64:
		if t < 0 {
			return 0, errf(InvalidFieldValue, "tile id must not be negative, got %d", t)
		}
		return uint64(t), nil
	case int:
		if t < 0 {
			return 0, errf(InvalidFieldValue, "tile id must not be negative, got %d", t)
		}
		return uint64(t), nil
	case float64:
		if t < 0 || t != math.Trunc(t) || t > math.MaxUint64 {
			return 0, errf(InvalidFieldValue, "tile id %v is not a valid unsigned integer", t)
		}
		return uint64(t), nil
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, errf(InvalidFieldValue, "tile id string is empty")
		}
		for _, r := range s {
			if r < '0' || r > '9' {
				return 0, errf(InvalidFieldValue, "tile id string %q is not an unsigned decimal integer", t)
			}
		}
		n, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return 0, wrapErr(InvalidFieldValue, "tile id string %q out of range", err)
		}
		return n, nil
	default:
		return 0, errf(InvalidFieldValue, "tile id of type %T is not supported", v)
	}
}
