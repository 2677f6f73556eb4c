package mti1

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// S1
func TestEncodeDecode_Scenario1(t *testing.T) {
	input := EncodeInput{
		TileID:      1001,
		MeshKind:    MeshJISX0410,
		DType:       Uint16,
		Endianness:  LittleEndian,
		Compression: CompressionNone,
		Dimensions:  Dimensions{Rows: 2, Cols: 2, Bands: 1},
		Values:      []float64{1, 2, 3, 4},
	}

	encoded, err := Encode(input)
	require.NoError(t, err)

	inspected, err := Inspect(encoded.Bytes)
	require.NoError(t, err)
	assert.Equal(t, 58, inspected.HeaderLength)
	assert.Equal(t, 58, inspected.PayloadOffset)
	assert.Equal(t, uint64(8), inspected.PayloadLength)
	assert.Equal(t, uint64(8), inspected.Header.UncompressedPayloadLength)

	decoded, err := Decode(encoded.Bytes)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3, 4}, decoded.Values)
}

// S3
func TestEncode_EndiannessProducesDifferentBytesSameValues(t *testing.T) {
	values := []float64{1, 258, 1024, 2048}
	base := EncodeInput{
		TileID:     1,
		MeshKind:   MeshJISX0410,
		DType:      Uint16,
		Dimensions: Dimensions{Rows: 1, Cols: 4, Bands: 1},
		Values:     values,
	}

	little := base
	little.Endianness = LittleEndian
	big := base
	big.Endianness = BigEndian

	littleResult, err := Encode(little)
	require.NoError(t, err)
	bigResult, err := Encode(big)
	require.NoError(t, err)

	assert.NotEqual(t, littleResult.Bytes, bigResult.Bytes)

	littleDecoded, err := Decode(littleResult.Bytes)
	require.NoError(t, err)
	bigDecoded, err := Decode(bigResult.Bytes)
	require.NoError(t, err)
	assert.Equal(t, values, littleDecoded.Values)
	assert.Equal(t, values, bigDecoded.Values)
}

// S4
func TestEncode_DeflateRawRoundTrip(t *testing.T) {
	input := EncodeInput{
		TileID:      1,
		MeshKind:    MeshJISX0410,
		DType:       Uint16,
		Compression: CompressionDeflateRaw,
		Dimensions:  Dimensions{Rows: 1, Cols: 4, Bands: 1},
		Values:      []float64{1, 2, 3, 4},
	}
	result, err := Encode(input)
	require.NoError(t, err)
	assert.Equal(t, CompressionDeflateRaw, result.Header.Compression)

	decoded, err := Decode(result.Bytes)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3, 4}, decoded.Values)
	assert.Equal(t, uint64(8), decoded.Header.UncompressedPayloadLength)
}

// S6
func TestDecode_TamperedMagic(t *testing.T) {
	input := validTestInput()
	result, err := Encode(input)
	require.NoError(t, err)

	tampered := append([]byte(nil), result.Bytes...)
	tampered[1] = 0x00

	_, err = Decode(tampered)
	require.Error(t, err)
	var mErr *Error
	require.ErrorAs(t, err, &mErr)
	assert.Equal(t, InvalidMagic, mErr.Code)
}

func TestDecode_TamperedVersion(t *testing.T) {
	input := validTestInput()
	result, err := Encode(input)
	require.NoError(t, err)

	tampered := append([]byte(nil), result.Bytes...)
	tampered[4] = 2

	_, err = Decode(tampered)
	require.Error(t, err)
	var mErr *Error
	require.ErrorAs(t, err, &mErr)
	assert.Equal(t, UnsupportedVersion, mErr.Code)
}

func TestDecode_TamperedPayloadByte(t *testing.T) {
	input := validTestInput()
	result, err := Encode(input)
	require.NoError(t, err)

	tampered := append([]byte(nil), result.Bytes...)
	tampered[FixedHeaderLength] ^= 0xFF

	_, err = Decode(tampered)
	require.Error(t, err)
	var mErr *Error
	require.ErrorAs(t, err, &mErr)
	assert.Equal(t, PayloadChecksumMismatch, mErr.Code)
}

func TestDecode_TamperedHeaderByte(t *testing.T) {
	input := validTestInput()
	result, err := Encode(input)
	require.NoError(t, err)

	tampered := append([]byte(nil), result.Bytes...)
	tampered[20] ^= 0xFF // cols field

	_, err = Decode(tampered)
	require.Error(t, err)
	var mErr *Error
	require.ErrorAs(t, err, &mErr)
	assert.Equal(t, HeaderChecksumMismatch, mErr.Code)
}

func TestEncode_RejectsBadDimensions(t *testing.T) {
	cases := []Dimensions{
		{Rows: 0, Cols: 1, Bands: 1},
		{Rows: 1, Cols: 0, Bands: 1},
		{Rows: 1, Cols: 1, Bands: 0},
	}
	for _, dims := range cases {
		input := validTestInput()
		input.Dimensions = dims
		input.Values = nil
		_, err := Encode(input)
		require.Error(t, err)
		var mErr *Error
		require.ErrorAs(t, err, &mErr)
		assert.Equal(t, InvalidFieldValue, mErr.Code)
	}
}

func validTestInput() EncodeInput {
	return EncodeInput{
		TileID:      1001,
		MeshKind:    MeshJISX0410,
		DType:       Uint16,
		Endianness:  LittleEndian,
		Compression: CompressionNone,
		Dimensions:  Dimensions{Rows: 2, Cols: 2, Bands: 1},
		Values:      []float64{1, 2, 3, 4},
	}
}

// Property 1, §8.
func TestEncodeDecode_RoundTripProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		rows := uint32(rapid.IntRange(1, 4).Draw(t, "rows"))
		cols := uint32(rapid.IntRange(1, 4).Draw(t, "cols"))
		bands := uint8(rapid.IntRange(1, 3).Draw(t, "bands"))
		count := int(rows) * int(cols) * int(bands)

		values := make([]float64, count)
		for i := range values {
			values[i] = float64(rapid.IntRange(0, 1000).Draw(t, "v"))
		}

		input := EncodeInput{
			TileID:      rapid.Uint64Range(0, 1<<40).Draw(t, "tileID"),
			MeshKind:    MeshJISX0410,
			DType:       Uint32,
			Endianness:  LittleEndian,
			Dimensions:  Dimensions{Rows: rows, Cols: cols, Bands: bands},
			Values:      values,
		}

		result, err := Encode(input)
		require.NoError(t, err)

		decoded, err := Decode(result.Bytes)
		require.NoError(t, err)
		assert.Equal(t, values, decoded.Values)
		assert.Equal(t, CompressionNone, decoded.Header.Compression)
		assert.Nil(t, decoded.Header.NoData)
	})
}

// Property 4, §8.
func TestInspect_DerivedFields(t *testing.T) {
	result, err := Encode(validTestInput())
	require.NoError(t, err)

	inspected, err := Inspect(result.Bytes)
	require.NoError(t, err)
	assert.Equal(t, 58, inspected.HeaderLength)
	assert.Equal(t, 58, inspected.PayloadOffset)
	assert.Equal(t, result.Header.CompressedPayloadLength, inspected.PayloadLength)
}

func TestEncode_NoDataRoundTrip(t *testing.T) {
	noData := float64(9999)
	input := validTestInput()
	input.NoData = &noData

	result, err := Encode(input)
	require.NoError(t, err)
	require.NotNil(t, result.Header.NoData)
	assert.Equal(t, noData, *result.Header.NoData)

	decoded, err := Decode(result.Bytes)
	require.NoError(t, err)
	require.NotNil(t, decoded.Header.NoData)
	assert.Equal(t, noData, *decoded.Header.NoData)
}
