package mti1

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// S5
func TestPackNoData_LittleEndianUint16(t *testing.T) {
	v := float64(0x1234)
	kind, slot, err := packNoData(Uint16, true, &v)
	require.NoError(t, err)
	assert.Equal(t, noDataKindPresent, kind)
	assert.Equal(t, [8]byte{0x34, 0x12, 0, 0, 0, 0, 0, 0}, slot)
}

func TestPackNoData_BigEndianUint16(t *testing.T) {
	v := float64(0x1234)
	kind, slot, err := packNoData(Uint16, false, &v)
	require.NoError(t, err)
	assert.Equal(t, noDataKindPresent, kind)
	assert.Equal(t, [8]byte{0, 0, 0, 0, 0, 0, 0x12, 0x34}, slot)
}

func TestPackNoData_Absent(t *testing.T) {
	kind, slot, err := packNoData(Uint16, true, nil)
	require.NoError(t, err)
	assert.Equal(t, noDataKindAbsent, kind)
	assert.Equal(t, [8]byte{}, slot)
}

func TestUnpackNoData_RoundTrip(t *testing.T) {
	v := float64(0x1234)
	kind, slot, err := packNoData(Uint16, true, &v)
	require.NoError(t, err)
	got, err := unpackNoData(Uint16, true, kind, slot)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, v, *got)
}

func TestUnpackNoData_RejectsNonzeroPadding(t *testing.T) {
	slot := [8]byte{0x34, 0x12, 0x01, 0, 0, 0, 0, 0} // stray byte in padding
	_, err := unpackNoData(Uint16, true, noDataKindPresent, slot)
	require.Error(t, err)
	var mErr *Error
	require.ErrorAs(t, err, &mErr)
	assert.Equal(t, InvalidFieldValue, mErr.Code)
}

func TestUnpackNoData_RejectsNonzeroBytesWhenAbsent(t *testing.T) {
	slot := [8]byte{1, 0, 0, 0, 0, 0, 0, 0}
	_, err := unpackNoData(Uint16, true, noDataKindAbsent, slot)
	assert.Error(t, err)
}

func TestUnpackNoData_RejectsUnknownKind(t *testing.T) {
	var slot [8]byte
	_, err := unpackNoData(Uint16, true, 2, slot)
	assert.Error(t, err)
}
