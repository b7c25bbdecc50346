package flex

/*------------------------------------------------------------------
 *
 * Purpose:	Classify a decoded 21-bit address into one of nine zones.
 *
 * Reference:	original_source/AVR - FlexDecoder/flexprocess.c,
 *		getAddressType.
 *
 *------------------------------------------------------------------*/

// AddressZone classifies a decoded 21-bit address by numeric range.
type AddressZone int

const (
	ZoneIdle1 AddressZone = iota
	ZoneLong1
	ZoneShort
	ZoneInfoSvc
	ZoneNetworkID
	ZoneTemporary
	ZoneReserved
	ZoneLong2
	ZoneIdle2
)

// temporaryZoneBase is the top 17 bits of every Temporary-zone address;
// the low nibble of the address is the tempaddr it indexes into the
// mapping table.
const temporaryZoneBase uint32 = 0x1F780

// classifyAddress classifies an already-decoded 21-bit address.
func classifyAddress(addr uint32) AddressZone {
	switch {
	case addr == 0x1FFFFF:
		return ZoneIdle2
	case addr >= 0x1F7FFF:
		return ZoneLong2
	case addr >= 0x1F7810:
		return ZoneReserved
	case addr >= 0x1F7800:
		return ZoneTemporary
	case addr >= 0x1F6800:
		return ZoneNetworkID
	case addr >= 0x1F2800:
		return ZoneInfoSvc
	case addr >= 0x8001:
		return ZoneShort
	case addr >= 1:
		return ZoneLong1
	default:
		return ZoneIdle1
	}
}

// isTemporary reports whether addr (already decoded) falls in the
// Temporary-address zone, i.e. its top 17 bits equal 0x1F780.
func isTemporary(addr uint32) bool {
	return addr>>4 == temporaryZoneBase
}

// ShortAddressRIC returns the displayed decimal RIC for a short address.
func ShortAddressRIC(addr uint32) int64 {
	return int64(addr) - 32768
}
