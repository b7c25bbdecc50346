package flex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func encodeBIW(collapse, carryon, vectorstart, eobi, priority uint8) uint32 {
	return uint32(bitswitch(collapse))<<6 |
		uint32(bitswitch(carryon))<<8 |
		uint32(bitswitch(vectorstart))<<14 |
		uint32(bitswitch(eobi))<<16 |
		uint32(bitswitch(priority))<<20
}

func Test_decodeBIW_fields(t *testing.T) {
	var biw = decodeBIW(encodeBIW(5, 2, 37, 1, 9))

	assert.Equal(t, uint8(5), biw.Collapse)
	assert.Equal(t, uint8(2), biw.Carryon)
	assert.Equal(t, uint8(37), biw.VectorStart)
	assert.Equal(t, uint8(1), biw.EndOfBlockInfo)
	assert.Equal(t, uint8(9), biw.Priority)
}

func Test_decodeBIW_addressStartFollowsEndOfBlockInfo(t *testing.T) {
	var biw = decodeBIW(encodeBIW(0, 0, 0, 3, 0))
	assert.Equal(t, uint8(4), biw.AddressStart)
}

func encodeAuxLocalID(tz uint8) uint32 {
	const localIDSubtype = 0
	return uint32(bitswitch(localIDSubtype))<<20 | uint32(bitswitch(tz))<<17
}

func encodeAuxDate(month, day, yearRaw uint8) uint32 {
	const dateSubtype = 1
	return uint32(bitswitch(dateSubtype))<<20 |
		uint32(bitswitch(month))<<7 |
		uint32(bitswitch(day))<<12 |
		uint32(bitswitch(yearRaw))<<17
}

func encodeAuxTime(s3, minute, hour uint8) uint32 {
	const timeSubtype = 2
	return uint32(bitswitch(timeSubtype))<<20 |
		uint32(bitswitch(s3))<<6 |
		uint32(bitswitch(minute))<<12 |
		uint32(bitswitch(hour))<<17
}

func Test_decodeAuxiliaryBIW_localID(t *testing.T) {
	var sys SysClock
	var aux = decodeAuxiliaryBIW(encodeAuxLocalID(14), &sys)

	assert.Equal(t, AuxLocalID, aux.Kind)
	assert.Equal(t, uint8(14), aux.Timezone)
	assert.Equal(t, uint8(14), sys.Timezone)
}

func Test_decodeAuxiliaryBIW_date(t *testing.T) {
	var sys SysClock
	var aux = decodeAuxiliaryBIW(encodeAuxDate(7, 21, 30), &sys)

	assert.Equal(t, AuxDate, aux.Kind)
	assert.Equal(t, uint8(7), aux.Month)
	assert.Equal(t, uint8(21), aux.Day)
	assert.Equal(t, 2024, aux.Year)
	assert.Equal(t, 2024, sys.Year)
}

func Test_decodeAuxiliaryBIW_time_reconstructsSeconds(t *testing.T) {
	// s3 is a 3-bit quantization of seconds/7.5; the reconstruction
	// s3*7 + s3/2 recovers the nearest broadcastable value.
	for s3, wantSeconds := range map[uint8]uint8{
		0: 0, 1: 7, 2: 15, 3: 22, 4: 30, 5: 37, 6: 45, 7: 52,
	} {
		var sys SysClock
		var aux = decodeAuxiliaryBIW(encodeAuxTime(s3, 41, 13), &sys)

		assert.Equal(t, AuxTime, aux.Kind)
		assert.Equal(t, wantSeconds, aux.Seconds, "s3=%d", s3)
		assert.Equal(t, uint8(41), aux.Minute)
		assert.Equal(t, uint8(13), aux.Hour)
		assert.Equal(t, wantSeconds, sys.Seconds, "s3=%d", s3)
	}
}

func Test_decodeAuxiliaryBIW_spareOffsetIsNoOp(t *testing.T) {
	var sys = SysClock{Year: 2024, Hour: 5}
	var aux = decodeAuxiliaryBIW(uint32(bitswitch(3))<<20, &sys)

	assert.Equal(t, AuxSpareOffset, aux.Kind)
	assert.Equal(t, 2024, sys.Year)
	assert.Equal(t, uint8(5), sys.Hour)
}

func Test_decodeAuxiliaryBIW_nilSysIsSafe(t *testing.T) {
	assert.NotPanics(t, func() {
		decodeAuxiliaryBIW(encodeAuxLocalID(3), nil)
	})
}
