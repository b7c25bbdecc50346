package flex

import "github.com/flexpager/flexproc/internal/logging"

/*------------------------------------------------------------------
 *
 * Purpose:	Park incomplete (fragmented) messages across frames,
 *		decaying their TTL and force-emitting whatever arrived so
 *		far once it reaches zero.
 *
 * Reference:	original_source/AVR - FlexDecoder/flexprocess.c,
 *		findMessage / storeMessage / deleteStaleMessages.
 *
 *------------------------------------------------------------------*/

// DefaultMaxMessages is §9's configuration knob default.
const DefaultMaxMessages = 5

// DefaultLongMsgTTL is §9's configuration knob default, in frames.
const DefaultLongMsgTTL = 10

// parkedTable is the C8 fixed-capacity array of optional parked messages.
type parkedTable struct {
	slots []*Message // len == maxMessages; nil entries are free
	alloc Allocator
}

func newParkedTable(maxMessages int, alloc Allocator) *parkedTable {
	if maxMessages <= 0 {
		maxMessages = DefaultMaxMessages
	}
	if alloc == nil {
		alloc = DefaultAllocator
	}
	return &parkedTable{slots: make([]*Message, maxMessages), alloc: alloc}
}

// find does a linear scan for a parked message keyed by
// (primaryAddress, messageNo).
func (t *parkedTable) find(primaryAddress uint32, messageNo uint8) *Message {
	for _, m := range t.slots {
		if m != nil && m.PrimaryAddress == primaryAddress && m.MessageNo == messageNo {
			return m
		}
	}
	return nil
}

// unpark clears msg's slot (if any) without touching its other state, the
// way processFrame pulls a hit out of the table before re-appending to it.
func (t *parkedTable) unpark(msg *Message) {
	if msg.Slot == NoSlot {
		return
	}
	t.slots[msg.Slot] = nil
	msg.Slot = NoSlot
}

// park takes the first free slot for msg. If none are free, msg is dropped
// (its buffers released, i.e. simply discarded for the GC to reclaim) and a
// warning logged.
func (t *parkedTable) park(msg *Message) bool {
	for i, m := range t.slots {
		if m == nil {
			t.slots[i] = msg
			msg.Slot = i
			return true
		}
	}
	logging.Log(logging.CategoryError, "parked table full, dropping message",
		"primary_address", msg.PrimaryAddress, "message_no", msg.MessageNo)
	return false
}

// tickAndExpire decrements every occupied slot's TTL by one; any slot whose
// TTL is already zero is force-emitted (with a truncation marker) and freed.
func (t *parkedTable) tickAndExpire(sink Sink) {
	for i, m := range t.slots {
		if m == nil {
			continue
		}
		if m.TTL == 0 {
			newLen := m.Length + 1
			buf, ok := t.alloc.Grow(m.Payload, newLen)
			if ok {
				m.Payload = buf
				m.Payload[newLen-1] = 0x00
			} else {
				// Even on allocation failure, overwrite the last byte so the
				// sink never reads past a missing terminator.
				if len(m.Payload) > 0 {
					m.Payload[len(m.Payload)-1] = 0x00
				}
			}

			sink.EmitMessage(m, true)

			t.slots[i] = nil
			continue
		}
		m.TTL--
	}
}
