package mti1

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// S2
func TestEncodeXYZ_Scenario(t *testing.T) {
	id, err := EncodeXYZ(3, 5, 2)
	require.NoError(t, err)
	assert.Equal(t, (uint64(3)<<58)|25, id)

	got, err := DecodeXYZ(id)
	require.NoError(t, err)
	assert.Equal(t, XYZ{Zoom: 3, X: 5, Y: 2, Quadkey: 25}, got)
}

func TestEncodeXYZ_MaxZoom(t *testing.T) {
	maxCoord := uint64(1)<<29 - 1
	id, err := EncodeXYZ(29, maxCoord, maxCoord)
	require.NoError(t, err)
	assert.Equal(t, uint8(29), uint8(id>>58))
	assert.Equal(t, (uint64(1)<<58)-1, id&quadkeyMask)
}

// S7
func TestDecodeXYZ_RejectsBitsAboveUsedRange(t *testing.T) {
	tileID := (uint64(1) << 58) | 16 // zoom=1, quadkey bits above 2*zoom=2 nonzero
	_, err := DecodeXYZ(tileID)
	require.Error(t, err)
	var mErr *Error
	require.ErrorAs(t, err, &mErr)
	assert.Equal(t, InvalidFieldValue, mErr.Code)
}

func TestDecodeXYZ_RejectsZoomAboveMax(t *testing.T) {
	tileID := uint64(30) << 58
	_, err := DecodeXYZ(tileID)
	assert.Error(t, err)
}

// Property 2 & 3, §8.
func TestXYZ_RoundTripProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		zoom := uint8(rapid.IntRange(0, maxZoom).Draw(t, "zoom"))
		limit := uint64(1) << zoom
		x := rapid.Uint64Range(0, limit-1).Draw(t, "x")
		y := rapid.Uint64Range(0, limit-1).Draw(t, "y")

		id, err := EncodeXYZ(zoom, x, y)
		require.NoError(t, err)
		assert.Equal(t, uint64(zoom), id>>58)
		assert.Less(t, id&quadkeyMask, uint64(1)<<(2*zoom))

		got, err := DecodeXYZ(id)
		require.NoError(t, err)
		assert.Equal(t, zoom, got.Zoom)
		assert.Equal(t, x, got.X)
		assert.Equal(t, y, got.Y)
	})
}

func TestNormalizeTileID(t *testing.T) {
	v, err := NormalizeTileID("1001")
	require.NoError(t, err)
	assert.Equal(t, uint64(1001), v)

	v, err = NormalizeTileID(uint64(42))
	require.NoError(t, err)
	assert.Equal(t, uint64(42), v)

	_, err = NormalizeTileID("-5")
	assert.Error(t, err)

	_, err = NormalizeTileID("not-a-number")
	assert.Error(t, err)

	_, err = NormalizeTileID(int64(-1))
	assert.Error(t, err)
}

func TestValidateTileIDForMeshKind_JISAcceptsAnyU64(t *testing.T) {
	assert.NoError(t, validateTileIDForMeshKind(MeshJISX0410, ^uint64(0)))
}
