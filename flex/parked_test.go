package flex

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_parkedTable_parkFindUnpark(t *testing.T) {
	var table = newParkedTable(2, DefaultAllocator)

	var msg = newMessage(DefaultLongMsgTTL)
	msg.PrimaryAddress = 0x1000
	msg.MessageNo = 7

	assert.True(t, table.park(msg))
	assert.Equal(t, 0, msg.Slot)

	var found = table.find(0x1000, 7)
	assert.Same(t, msg, found)

	table.unpark(found)
	assert.Equal(t, NoSlot, msg.Slot)
	assert.Nil(t, table.find(0x1000, 7))
}

func Test_parkedTable_parkFullDropsMessage(t *testing.T) {
	var table = newParkedTable(1, DefaultAllocator)

	var first = newMessage(DefaultLongMsgTTL)
	var second = newMessage(DefaultLongMsgTTL)

	assert.True(t, table.park(first))
	assert.False(t, table.park(second))
	assert.Equal(t, NoSlot, second.Slot)
}

func Test_parkedTable_tickDecrementsTTL(t *testing.T) {
	var table = newParkedTable(2, DefaultAllocator)

	var msg = newMessage(3)
	msg.Payload = []byte("AB")
	msg.Length = 2
	table.park(msg)

	table.tickAndExpire(HumanReadableSink{W: &bytes.Buffer{}})
	assert.Equal(t, uint8(2), msg.TTL)
	assert.Same(t, msg, table.find(msg.PrimaryAddress, msg.MessageNo))
}

func Test_parkedTable_expiryForceEmitsAndFrees(t *testing.T) {
	var table = newParkedTable(2, DefaultAllocator)

	var msg = newMessage(0)
	msg.PrimaryAddress = 0x2000
	msg.MessageNo = 4
	msg.Payload = []byte("partial")
	msg.Length = len(msg.Payload)
	table.park(msg)

	var buf bytes.Buffer
	table.tickAndExpire(HumanReadableSink{W: &buf})

	assert.Contains(t, buf.String(), "partial")
	assert.Contains(t, buf.String(), "[MSG TRUNCATED]")
	assert.Nil(t, table.find(0x2000, 4))
}

func Test_parkedTable_expiryAllocationFailureStillEmits(t *testing.T) {
	var table = newParkedTable(2, failingAllocator{})

	var msg = newMessage(0)
	msg.Payload = []byte("x")
	msg.Length = 1
	table.park(msg)

	var buf bytes.Buffer
	assert.NotPanics(t, func() {
		table.tickAndExpire(HumanReadableSink{W: &buf})
	})
	assert.Contains(t, buf.String(), "[MSG TRUNCATED]")
}
