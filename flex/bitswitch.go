package flex

/*------------------------------------------------------------------
 *
 * Purpose:	FLEX transmits every field LSB-first within byte-swapped
 *		32-bit words.  These two helpers are the single place that
 *		knows about that convention; every other file in this
 *		package works in logical (MSB-first) field order.
 *
 *------------------------------------------------------------------*/

// bitswitch reverses the bit order of a single byte: bit 7 becomes bit 0,
// bit 6 becomes bit 1, and so on. Pure, involutive (bitswitch(bitswitch(x))
// == x for all x).
func bitswitch(b byte) byte {
	var out byte
	for i := range 8 {
		if b&(1<<uint(i)) != 0 {
			out |= 1 << uint(7-i)
		}
	}
	return out
}

// decodeAddress reverses the high 21 bits of a 32-bit frame word into the
// low 21 bits of the result: bit 31 of w becomes bit 0, bit 30 becomes bit 1,
// ... bit 11 becomes bit 20. Bits 0..10 of w never contribute to the result.
func decodeAddress(w uint32) uint32 {
	var out uint32
	for i := range 21 {
		if w&(1<<uint(31-i)) != 0 {
			out |= 1 << uint(i)
		}
	}
	return out
}
