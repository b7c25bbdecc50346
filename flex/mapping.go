package flex

import "github.com/flexpager/flexproc/internal/logging"

/*------------------------------------------------------------------
 *
 * Purpose:	Bind a short "temporary address" (4 bits) and a frame
 *		number to one or more full recipient addresses, so a
 *		broadcast doesn't have to resend every recipient's full
 *		address on every frame.
 *
 * Reference:	original_source/AVR - FlexDecoder/flexprocess.c,
 *		addMapping / clearMappings / addMappingsToMessage.
 *
 *------------------------------------------------------------------*/

// DefaultMaxMappings is §9's configuration knob default.
const DefaultMaxMappings = 8

// Mapping binds (Frame, TempAddress) to a non-empty set of recipient
// addresses.
type Mapping struct {
	Frame       uint8
	TempAddress uint8
	Addresses   []uint32
}

// mappingTable is the C6 global mapping pool: at most maxMappings live
// entries, linear-scanned, a nil slot meaning free — the same fixed-size,
// linear-scanned shape as a per-channel context table (e.g. il2p_context,
// fx_context), just indexed by first-free-slot instead of [chan][subchan]
// [slice].
type mappingTable struct {
	slots []*Mapping // len == maxMappings; nil entries are free
}

func newMappingTable(maxMappings int) *mappingTable {
	if maxMappings <= 0 {
		maxMappings = DefaultMaxMappings
	}
	return &mappingTable{slots: make([]*Mapping, maxMappings)}
}

// find returns the live mapping for (frame, tempaddr), or nil.
func (t *mappingTable) find(frame, tempaddr uint8) *Mapping {
	for _, m := range t.slots {
		if m != nil && m.Frame == frame && m.TempAddress == tempaddr {
			return m
		}
	}
	return nil
}

// addMapping appends address to the mapping for (frame, tempaddr), creating
// it in the first free slot if none exists yet. Returns false on capacity
// exhaustion, leaving all existing state untouched (invariant 1: at most one
// Mapping per (frame, tempaddress) pair is preserved either way).
func (t *mappingTable) addMapping(frame, tempaddr uint8, address uint32) bool {
	if m := t.find(frame, tempaddr); m != nil {
		m.Addresses = append(m.Addresses, address)
		return true
	}

	for i, m := range t.slots {
		if m == nil {
			t.slots[i] = &Mapping{
				Frame:       frame,
				TempAddress: tempaddr,
				Addresses:   []uint32{address},
			}
			return true
		}
	}

	logging.Log(logging.CategoryError, "mapping table full, dropping mapping",
		"frame", frame, "tempaddr", tempaddr)
	return false
}

// addressesFor returns the recipient addresses bound to (frame, tempaddr),
// or nil if there is no such mapping.
func (t *mappingTable) addressesFor(frame, tempaddr uint8) []uint32 {
	if m := t.find(frame, tempaddr); m != nil {
		return m.Addresses
	}
	return nil
}

// clearMappings drops every entry matching frame.
func (t *mappingTable) clearMappings(frame uint8) {
	for i, m := range t.slots {
		if m != nil && m.Frame == frame {
			t.slots[i] = nil
		}
	}
}
