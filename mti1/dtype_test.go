package mti1

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestDType_Width(t *testing.T) {
	cases := map[DType]int{
		Uint8: 1, Int8: 1,
		Uint16: 2, Int16: 2,
		Uint32: 4, Int32: 4, Float32: 4,
		Float64: 8,
	}
	for dt, want := range cases {
		assert.Equal(t, want, dt.Width(), "width of %s", dt)
	}
}

func TestValidateScalar_IntegerRejectsFraction(t *testing.T) {
	err := validateScalar(Uint16, 1.5)
	require.Error(t, err)
	var mErr *Error
	require.ErrorAs(t, err, &mErr)
	assert.Equal(t, InvalidFieldValue, mErr.Code)
}

func TestValidateScalar_FloatAllowsNaN(t *testing.T) {
	assert.NoError(t, validateScalar(Float32, math.NaN()))
	assert.NoError(t, validateScalar(Float64, math.NaN()))
}

func TestValidateScalar_RejectsInfinity(t *testing.T) {
	assert.Error(t, validateScalar(Float64, math.Inf(1)))
	assert.Error(t, validateScalar(Float32, math.Inf(-1)))
}

func TestValidateScalar_RangeBounds(t *testing.T) {
	assert.NoError(t, validateScalar(Uint8, 255))
	assert.Error(t, validateScalar(Uint8, 256))
	assert.Error(t, validateScalar(Uint8, -1))
	assert.NoError(t, validateScalar(Int8, -128))
	assert.Error(t, validateScalar(Int8, -129))
}

func TestScalarRoundTrip_Endianness(t *testing.T) {
	for _, little := range []bool{true, false} {
		buf := make([]byte, 2)
		require.NoError(t, writeScalar(Uint16, buf, little, 0x1234))
		got, err := readScalar(Uint16, buf, little)
		require.NoError(t, err)
		assert.Equal(t, float64(0x1234), got)
	}
}

func TestScalarRoundTrip_Property(t *testing.T) {
	dtypes := []DType{Uint8, Int8, Uint16, Int16, Uint32, Int32, Float32, Float64}
	rapid.Check(t, func(t *rapid.T) {
		dt := dtypes[rapid.IntRange(0, len(dtypes)-1).Draw(t, "dtypeIdx")]
		little := rapid.Bool().Draw(t, "little")
		desc, _ := dt.descriptor()

		var v float64
		if desc.isInteger {
			v = float64(rapid.Int64Range(int64(desc.min), int64(desc.max)).Draw(t, "v"))
		} else {
			v = rapid.Float64Range(-1e6, 1e6).Draw(t, "v")
		}

		buf := make([]byte, desc.width)
		require.NoError(t, writeScalar(dt, buf, little, v))
		got, err := readScalar(dt, buf, little)
		require.NoError(t, err)
		if dt == Float32 {
			assert.InDelta(t, v, got, 1.0, "float32 round trip for %v", v)
		} else {
			assert.Equal(t, v, got)
		}
	})
}

func TestParseDType(t *testing.T) {
	dt, err := ParseDType("uint16")
	require.NoError(t, err)
	assert.Equal(t, Uint16, dt)

	_, err = ParseDType("nonsense")
	assert.Error(t, err)
}
