package flex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_mappingTable_addAndFind(t *testing.T) {
	var table = newMappingTable(2)

	assert.Nil(t, table.find(5, 3))

	assert.True(t, table.addMapping(5, 3, 0x1000))
	var m = table.find(5, 3)
	if assert.NotNil(t, m) {
		assert.Equal(t, []uint32{0x1000}, m.Addresses)
	}
}

func Test_mappingTable_addMappingAppendsToExisting(t *testing.T) {
	var table = newMappingTable(4)

	table.addMapping(5, 3, 0x1000)
	table.addMapping(5, 3, 0x2000)

	assert.Equal(t, []uint32{0x1000, 0x2000}, table.addressesFor(5, 3))
}

func Test_mappingTable_capacityExhaustionLeavesStateUntouched(t *testing.T) {
	var table = newMappingTable(1)

	assert.True(t, table.addMapping(1, 0, 0xAAAA))
	assert.False(t, table.addMapping(2, 0, 0xBBBB))

	assert.Equal(t, []uint32{0xAAAA}, table.addressesFor(1, 0))
	assert.Nil(t, table.addressesFor(2, 0))
}

func Test_mappingTable_clearMappingsDropsOnlyMatchingFrame(t *testing.T) {
	var table = newMappingTable(4)

	table.addMapping(1, 0, 0xAAAA)
	table.addMapping(2, 0, 0xBBBB)

	table.clearMappings(1)

	assert.Nil(t, table.addressesFor(1, 0))
	assert.Equal(t, []uint32{0xBBBB}, table.addressesFor(2, 0))
}

func Test_mappingTable_addressesForUnknownReturnsNil(t *testing.T) {
	var table = newMappingTable(4)
	assert.Nil(t, table.addressesFor(9, 9))
}
