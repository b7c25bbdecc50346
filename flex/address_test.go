package flex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_classifyAddress_zoneBoundaries(t *testing.T) {
	cases := []struct {
		addr uint32
		want AddressZone
	}{
		{0x000000, ZoneIdle1},
		{0x000001, ZoneLong1},
		{0x008000, ZoneLong1},
		{0x008001, ZoneShort},
		{0x1F27FF, ZoneShort},
		{0x1F2800, ZoneInfoSvc},
		{0x1F67FF, ZoneInfoSvc},
		{0x1F6800, ZoneNetworkID},
		{0x1F77FF, ZoneNetworkID},
		{0x1F7800, ZoneTemporary},
		{0x1F780F, ZoneTemporary},
		{0x1F7810, ZoneReserved},
		{0x1F7FFE, ZoneReserved},
		{0x1F7FFF, ZoneLong2},
		{0x1FFFFE, ZoneLong2},
		{0x1FFFFF, ZoneIdle2},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, classifyAddress(c.addr), "addr=0x%X", c.addr)
	}
}

func Test_isTemporary(t *testing.T) {
	assert.True(t, isTemporary(0x1F7800))
	assert.True(t, isTemporary(0x1F780F))
	assert.False(t, isTemporary(0x1F7810))
	assert.False(t, isTemporary(0x000000))
}

func Test_ShortAddressRIC(t *testing.T) {
	assert.Equal(t, int64(0), ShortAddressRIC(32768))
	assert.Equal(t, int64(1), ShortAddressRIC(32769))
	assert.Equal(t, int64(-1), ShortAddressRIC(32767))
}
