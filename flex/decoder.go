package flex

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/flexpager/flexproc/internal/logging"
)

/*------------------------------------------------------------------
 *
 * Purpose:	The frame processor orchestrator (C9): per-frame pipeline
 *		that validates the BIW, walks the address/vector fields,
 *		routes alpha vectors through the assembler and instruction
 *		vectors through the mapping table, and flushes both tables'
 *		housekeeping.
 *
 * Reference:	original_source/AVR - FlexDecoder/flexprocess.c,
 *		processFrame. spec.md §9's design note replaces the C
 *		source's file-scope globals (mapping[], messages[], sys,
 *		procmutex, previousframe) with this single Decoder value.
 *
 *------------------------------------------------------------------*/

// noPreviousFrame is the boot sentinel for Decoder.previousFrame
// (flexprocess.c's `previousframe = 0xFF`).
const noPreviousFrame = 0xFF

// Config carries the §9 configuration knobs plus the collaborators a
// Decoder needs wired in.
type Config struct {
	MaxMappings int // default DefaultMaxMappings
	MaxMessages int // default DefaultMaxMessages
	LongMsgTTL  int // default DefaultLongMsgTTL, in frames

	Validator WordValidator // required
	Sink      Sink          // required
	Allocator Allocator     // optional, defaults to DefaultAllocator
}

// Decoder is the process-wide state of the frame processing engine: the
// mapping table, the parked-message table, the broadcast clock container,
// and the single-entrant processing guard, all given an explicit
// New -> ProcessFrame x N lifecycle instead of living as file-scope globals.
type Decoder struct {
	mu         sync.Mutex
	processing bool

	mappings *mappingTable
	parked   *parkedTable
	sys      SysClock

	previousFrame uint8
	longMsgTTL    uint8

	validator WordValidator
	sink      Sink
	alloc     Allocator
}

// NewDecoder builds a Decoder from cfg, applying the §9 defaults for any
// zero-valued knob.
func NewDecoder(cfg Config) *Decoder {
	alloc := cfg.Allocator
	if alloc == nil {
		alloc = DefaultAllocator
	}

	ttl := cfg.LongMsgTTL
	if ttl <= 0 {
		ttl = DefaultLongMsgTTL
	}

	return &Decoder{
		mappings:      newMappingTable(cfg.MaxMappings),
		parked:        newParkedTable(cfg.MaxMessages, alloc),
		previousFrame: noPreviousFrame,
		longMsgTTL:    uint8(ttl),
		validator:     cfg.Validator,
		sink:          cfg.Sink,
		alloc:         alloc,
	}
}

// Clock returns a copy of the broadcast date/time/timezone container
// maintained from auxiliary BIWs.
func (d *Decoder) Clock() SysClock {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.sys
}

// MemStats reports allocator/memory-usage introspection (spec.md §1's
// "Allocator and memory-usage introspection" external collaborator),
// implemented over runtime.MemStats since this is a hosted Go build rather
// than the AVR original's hand-rolled heap.
func (d *Decoder) MemStats() runtime.MemStats {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return m
}

// FrameBanner renders the original AVR serial debug banner
// ("+FRAME C:... F:... LENGTH:... VECT:... PRIORITY ADR:...") for f, a
// feature present in original_source/ but dropped by the distillation.
func (d *Decoder) FrameBanner(f *Frame) string {
	return fmt.Sprintf(
		"+FRAME C:%d F:%d LENGTH:%d BI-LEN:%d VECT:%d PRIORITY ADR:%d Signal:%d Noise:%d",
		f.FIW.Cycle, f.FIW.Frame, f.BIW.Carryon+1, f.BIW.EndOfBlockInfo,
		f.BIW.VectorStart, f.BIW.Priority, f.Signal.AvgBlock, f.Signal.AvgNoise,
	)
}

// ProcessFrame is the entrypoint for frame processing (§4.9). It is
// idempotent under re-entry: if another ProcessFrame call is already in
// flight, the new frame is dropped and a warning logged, matching the
// original's volatile procmutex guard.
func (d *Decoder) ProcessFrame(f *Frame) {
	d.mu.Lock()
	if d.processing {
		d.mu.Unlock()
		logging.Log(logging.CategoryError,
			"ProcessFrame called while another frame was being processed; frame dropped",
			"frame", f.FIW.Frame)
		return
	}
	d.processing = true
	d.mu.Unlock()

	defer func() {
		d.mu.Lock()
		d.processing = false
		d.mu.Unlock()
	}()

	// Step 1 -- primary BIW.
	switch d.validator.ValidateWord(f, 0, Repair2|ValidateFlexChecksum) {
	case ValidateFail:
		logging.Log(logging.CategoryError,
			"unable to validate/repair BIW, frame discarded", "frame", f.FIW.Frame)
		return
	default:
		f.BIW = decodeBIW(*f.Word(0))
	}

	// Step 2 -- cross-frame mapping eviction.
	if d.previousFrame == noPreviousFrame {
		d.previousFrame = f.FIW.Frame
	}
	for k := (d.previousFrame + 1) % 128; k != f.FIW.Frame; k = (k + 1) % 128 {
		d.mappings.clearMappings(k)
	}
	d.previousFrame = f.FIW.Frame

	d.sink.FrameStart(f.FIW)
	defer d.sink.FrameEnd()

	// Step 3 -- auxiliary BIWs.
	for i := uint8(1); i <= f.BIW.EndOfBlockInfo; i++ {
		if d.validator.ValidateWord(f, int(i), Repair2|ValidateFlexChecksum) != ValidateFail {
			decodeAuxiliaryBIW(*f.Word(int(i)), &d.sys)
		}
	}

	// Step 4 -- vector-field length.
	avcount := int(f.BIW.VectorStart) - int(f.BIW.EndOfBlockInfo) - 1
	if avcount < 0 {
		avcount = 0
	}

	// Step 5 -- vector validation.
	for k := range avcount {
		idx := int(f.BIW.VectorStart) + k
		if d.validator.ValidateWord(f, idx, Repair2|ValidateFlexChecksum) == ValidateFail {
			f.zero(idx)
		}
	}

	// Step 6 -- alpha pass.
	for k := range avcount {
		vectorIdx := int(f.BIW.VectorStart) + k
		addressIdx := int(f.BIW.AddressStart) + k

		d.validator.ValidateWord(f, addressIdx, Repair2)
		vect := decodeVector(*f.Word(vectorIdx), *f.Word(addressIdx))
		if vect.Kind != VectorAlpha {
			continue
		}

		f.zero(vectorIdx) // consumed; step 7 will skip it

		header := decodeAlphaHeader(*f.Word(int(vect.Start)), *f.Word(int(vect.Start)+1))

		var msg *Message
		if header.FragmentNumber != 3 {
			msg = d.parked.find(vect.Address, header.MessageNumber)
		}

		if msg != nil {
			d.parked.unpark(msg)
		} else {
			msg = newMessage(d.longMsgTTL)
			msg.PrimaryAddress = vect.Address
			msg.addRecipient(vect.Address, f.FIW.Frame, d.mappings)

			for k2 := k + 1; k2 < avcount; k2++ {
				vectorIdx2 := int(f.BIW.VectorStart) + k2
				addressIdx2 := int(f.BIW.AddressStart) + k2
				vect2 := decodeVector(*f.Word(vectorIdx2), *f.Word(addressIdx2))
				if vect2.Kind == VectorNull || vect2.Start != vect.Start {
					continue
				}
				f.zero(vectorIdx2)
				msg.addRecipient(vect2.Address, f.FIW.Frame, d.mappings)
			}
		}

		d.validator.ValidateWord(f, int(vect.Start), Repair2)
		appendAlpha(f, vect.Start, vect.Length, msg, d.alloc)

		if msg.Complete {
			d.sink.EmitMessage(msg, false)
		} else {
			d.parked.park(msg)
		}
	}

	// Step 7 -- mapping refresh.
	d.mappings.clearMappings(f.FIW.Frame)
	for k := range avcount {
		vectorIdx := int(f.BIW.VectorStart) + k
		addressIdx := int(f.BIW.AddressStart) + k
		vect := decodeVector(*f.Word(vectorIdx), *f.Word(addressIdx))
		if vect.Kind == VectorInstruction {
			d.mappings.addMapping(vect.TempFrame, vect.TempAddr, vect.Address)
		}
	}

	// Step 8 -- TTL decay.
	d.parked.tickAndExpire(d.sink)

	// Step 9 -- frame cleanup happens implicitly: Frame has no
	// persistent state beyond this call, and the processing flag is
	// cleared by the deferred unlock above.
}
