package flex

/*------------------------------------------------------------------
 *
 * Purpose:	Decode a 21-bit vector word plus its paired address word
 *		into a tagged Vector.
 *
 * Reference:	original_source/AVR - FlexDecoder/flexprocess.c,
 *		decodeVector.
 *
 *------------------------------------------------------------------*/

// VectorKind tags which of the nine FLEX vector types a Vector carries.
type VectorKind int

const (
	VectorNull VectorKind = iota
	VectorAlpha
	VectorHex
	VectorSecure
	VectorInstruction
	VectorShort
	VectorNumeric
	VectorNumericFormat
	VectorNumericNo
)

// vectorTypeKind maps the 3-bit on-air type field to VectorKind, per
// flexprocess.h's VECT_* constants.
var vectorTypeKind = map[uint8]VectorKind{
	0: VectorSecure,
	1: VectorInstruction,
	2: VectorShort,
	3: VectorNumeric,
	4: VectorNumericFormat,
	5: VectorAlpha,
	6: VectorHex,
	7: VectorNumericNo,
}

// Vector is a decoded 21-bit vector word, tagged by Kind. Alpha/Hex/Secure
// carry Start/Length (word indices into the frame); Instruction carries
// TempFrame/TempAddr. Every non-null vector carries the paired recipient
// Address.
type Vector struct {
	Kind VectorKind

	Start  uint8 // 0..127, valid for Alpha/Hex/Secure
	Length uint8 // 0..127, valid for Alpha/Hex/Secure

	TempFrame uint8 // 0..127, valid for Instruction
	TempAddr  uint8 // 0..15, valid for Instruction

	Address uint32 // decoded 21-bit recipient address
}

// decodeVector decodes a vector word and its paired address word. vword == 0
// is always Null regardless of the address word's contents.
func decodeVector(vword, aword uint32) Vector {
	if vword == 0 {
		return Vector{Kind: VectorNull}
	}

	kindBits := bitswitch(byte(vword>>20)) & 0x07
	vect := Vector{
		Kind:    vectorTypeKind[kindBits],
		Address: decodeAddress(aword),
	}

	switch vect.Kind {
	case VectorAlpha, VectorHex, VectorSecure:
		w := vword >> 10
		vect.Length = bitswitch(byte(w)) & 0x7F
		w >>= 7
		vect.Start = bitswitch(byte(w)) & 0x7F

	case VectorInstruction:
		w := vword >> 7
		vect.TempAddr = bitswitch(byte(w)) & 0x0F
		w >>= 7
		vect.TempFrame = bitswitch(byte(w)) & 0x7F
	}

	return vect
}
