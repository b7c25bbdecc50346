package flex

/*------------------------------------------------------------------
 *
 * Purpose:	The two selectable output formats (spec.md §6): a
 *		human-readable form for a terminal, and a machine-
 *		parseable form wrapped in [[...]] tags a downstream tool
 *		can scan for. Both are Sink implementations writing to an
 *		io.Writer; the concrete transport (serial port, TCP, stdout)
 *		is wired up by the caller (see internal/sink for a serial
 *		port-backed one).
 *
 *------------------------------------------------------------------*/

import (
	"fmt"
	"io"
)

// Sink is where completed (or TTL-truncated) messages go. FrameStart/
// FrameEnd bracket one Decoder.ProcessFrame call; only the machine-parseable
// format uses them for anything.
type Sink interface {
	FrameStart(fiw FIW)
	EmitMessage(msg *Message, truncated bool)
	FrameEnd()
}

// HumanReadableSink writes the "|  ADDR:..." / "|   <payload>" form.
type HumanReadableSink struct {
	W io.Writer
}

func (s HumanReadableSink) FrameStart(FIW) {}
func (s HumanReadableSink) FrameEnd()       {}

func (s HumanReadableSink) EmitMessage(msg *Message, truncated bool) {
	for _, addr := range msg.Recipients {
		fmt.Fprintf(s.W, "|  ADDR:%d\n", ShortAddressRIC(addr))
	}
	fmt.Fprintf(s.W, "|   %s\n", messageText(msg))
	if truncated {
		fmt.Fprintln(s.W, "[MSG TRUNCATED]")
	}
}

// MachineParseableSink writes the [[msg]]/[[addr]]/[[data]] form, with
// [[frame]]/[[/frame]] banners bracketing each ProcessFrame call.
type MachineParseableSink struct {
	W io.Writer
}

func (s MachineParseableSink) FrameStart(fiw FIW) {
	fmt.Fprintf(s.W, "[[frame]]%d|%d\n", fiw.Cycle, fiw.Frame)
}

func (s MachineParseableSink) FrameEnd() {
	fmt.Fprintln(s.W, "[[/frame]]")
}

func (s MachineParseableSink) EmitMessage(msg *Message, truncated bool) {
	fmt.Fprintln(s.W, "[[msg]]")
	for _, addr := range msg.Recipients {
		fmt.Fprintf(s.W, "[[addr]]%d\n", ShortAddressRIC(addr))
	}
	fmt.Fprintf(s.W, "[[data]]%s[[/data]]\n", messageText(msg))
	if truncated {
		fmt.Fprintln(s.W, "[MSG TRUNCATED]")
	}
	fmt.Fprintln(s.W, "[[/msg]]")
}

// messageText renders msg.Payload as a string up to (but not including) its
// null terminator, if any.
func messageText(msg *Message) string {
	b := msg.Payload
	if i := indexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}

func indexByte(b []byte, c byte) int {
	for i, v := range b {
		if v == c {
			return i
		}
	}
	return -1
}
