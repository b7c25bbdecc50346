package flex

/*------------------------------------------------------------------
 *
 * Purpose:	Decode the Block Information Word (block 0, word 0) that
 *		describes the layout of the rest of the frame, and the
 *		auxiliary BIWs (block 0, words 1..3) that carry the
 *		broadcast's date/time/timezone.
 *
 * Reference:	original_source/AVR - FlexDecoder/flexprocess.c,
 *		processBIW / processBIW2.
 *
 *------------------------------------------------------------------*/

// BIW is the decoded primary Block Information Word.
type BIW struct {
	Collapse       uint8 // 0..7
	Carryon        uint8 // 0..3
	VectorStart    uint8 // 0..63
	EndOfBlockInfo uint8 // 0..3
	AddressStart   uint8 // EndOfBlockInfo + 1
	Priority       uint8 // 0..15
}

// decodeBIW extracts the primary BIW fields from block 0, word 0 via
// bit-reversed nibble/septet extraction. Field order (after a 6-bit skip):
// collapse(3), carryon(2), vectorstart(6), endofblockinfo(2), priority(4).
func decodeBIW(word uint32) BIW {
	w := word >> 6
	var biw BIW
	biw.Collapse = bitswitch(byte(w)) & 0x07
	w >>= 2
	biw.Carryon = bitswitch(byte(w)) & 0x03
	w >>= 6
	biw.VectorStart = bitswitch(byte(w)) & 0x3F
	w >>= 2
	biw.EndOfBlockInfo = bitswitch(byte(w)) & 0x03
	biw.AddressStart = biw.EndOfBlockInfo + 1
	w >>= 4
	biw.Priority = bitswitch(byte(w)) & 0x0F
	return biw
}

// AuxiliaryBIWKind tags the subtype of an auxiliary BIW.
type AuxiliaryBIWKind int

const (
	AuxLocalID AuxiliaryBIWKind = iota
	AuxDate
	AuxTime
	AuxSpareOffset
)

// AuxiliaryBIW is one decoded auxiliary BIW (block 0, words 1..3).
type AuxiliaryBIW struct {
	Kind AuxiliaryBIWKind

	// Valid for AuxLocalID.
	Timezone uint8 // 0..31

	// Valid for AuxDate.
	Year  int // >= 1994
	Month uint8
	Day   uint8

	// Valid for AuxTime.
	Hour    uint8
	Minute  uint8
	Seconds uint8 // reconstructed from the 3-bit field, see decodeAuxiliaryBIW
}

// SysClock is the external "sys" container the auxiliary BIW updates.
// Stage one / the host application owns its lifetime; this package only
// writes to it from decodeAuxiliaryBIW, exactly as the AVR source's
// processBIW2 wrote into the global `sys` struct.
type SysClock struct {
	Timezone uint8
	Year     int
	Month    uint8
	Day      uint8
	Hour     uint8
	Minute   uint8
	Seconds  uint8

	// Subsecond is a free-running counter driven by an external
	// millisecond tick; this package never writes it.
	Subsecond uint16
}

// decodeAuxiliaryBIW decodes one auxiliary BIW word and, for Date/Time/
// LocalID subtypes, applies it to sys. SpareOffset is a documented no-op.
// Unknown subtypes (4..7 of the 3-bit field) are also a no-op and are
// reported as AuxSpareOffset.
func decodeAuxiliaryBIW(word uint32, sys *SysClock) AuxiliaryBIW {
	subtype := bitswitch(byte(word>>20)) & 0x07

	switch subtype {
	case 0x00: // local id
		w := word >> 17
		tz := bitswitch(byte(w)) & 0x1F
		if sys != nil {
			sys.Timezone = tz
		}
		return AuxiliaryBIW{Kind: AuxLocalID, Timezone: tz}

	case 0x01: // month/day/year
		w := word >> 7
		month := bitswitch(byte(w)) & 0x0F
		w >>= 5
		day := bitswitch(byte(w)) & 0x1F
		w >>= 5
		year := 1994 + int(bitswitch(byte(w))&0x1F)
		if sys != nil {
			sys.Month, sys.Day, sys.Year = month, day, year
		}
		return AuxiliaryBIW{Kind: AuxDate, Month: month, Day: day, Year: year}

	case 0x02: // hour/minute/second
		w := word >> 6
		s3 := bitswitch(byte(w)) & 0x07
		seconds := s3*7 + s3/2
		w >>= 6
		minute := bitswitch(byte(w)) & 0x3F
		w >>= 5
		hour := bitswitch(byte(w)) & 0x1F
		if sys != nil {
			sys.Seconds, sys.Minute, sys.Hour = seconds, minute, hour
		}
		return AuxiliaryBIW{Kind: AuxTime, Hour: hour, Minute: minute, Seconds: seconds}

	default: // 0x03 and anything else: spare/offset, no effect
		return AuxiliaryBIW{Kind: AuxSpareOffset}
	}
}
