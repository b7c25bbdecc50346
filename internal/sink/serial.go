// Package sink adapts flex.Sink onto a serial port, wrapping
// github.com/pkg/term the same way serial_port.go wrapped it for KISS TNC
// I/O.
package sink

import (
	"bytes"

	"github.com/pkg/term"

	"github.com/flexpager/flexproc/flex"
	"github.com/flexpager/flexproc/internal/logging"
)

// Format selects which of flex's two output formats a Serial sink writes.
type Format int

const (
	FormatHumanReadable Format = iota
	FormatMachineParseable
)

// Serial writes completed messages to a serial port opened in raw mode,
// buffering each message's (and each frame end's) formatted output and
// writing it with a single write call, the way
// serial_port_write took a whole Slice of bytes rather than many small
// writes.
type Serial struct {
	port *term.Term
	buf  bytes.Buffer
	inner flex.Sink
}

// Open opens devicename at baud (0 leaves the port's current speed alone,
// matching serial_port_open's behaviour) and returns a Serial sink writing
// in the given format.
func Open(devicename string, baud int, format Format) (*Serial, error) {
	port, err := term.Open(devicename, term.RawMode)
	if err != nil {
		logging.Log(logging.CategoryError, "could not open serial port", "device", devicename, "err", err)
		return nil, err
	}

	if baud != 0 {
		if err := port.SetSpeed(baud); err != nil {
			logging.Log(logging.CategoryError, "could not set serial speed", "device", devicename, "baud", baud, "err", err)
		}
	}

	s := &Serial{port: port}
	switch format {
	case FormatMachineParseable:
		s.inner = flex.MachineParseableSink{W: &s.buf}
	default:
		s.inner = flex.HumanReadableSink{W: &s.buf}
	}
	return s, nil
}

// FrameStart implements flex.Sink.
func (s *Serial) FrameStart(fiw flex.FIW) { s.inner.FrameStart(fiw) }

// EmitMessage implements flex.Sink, buffering the formatted message and
// flushing it to the serial port immediately (FEC re-sends duplicates over
// the air, not over this wire, so there is nothing to batch for).
func (s *Serial) EmitMessage(msg *flex.Message, truncated bool) {
	s.inner.EmitMessage(msg, truncated)
	s.flush()
}

// FrameEnd implements flex.Sink.
func (s *Serial) FrameEnd() {
	s.inner.FrameEnd()
	s.flush()
}

func (s *Serial) flush() {
	if s.buf.Len() == 0 {
		return
	}
	data := s.buf.Bytes()
	written, err := s.port.Write(data)
	if written != len(data) || err != nil {
		logging.Log(logging.CategoryError, "serial sink write failed", "wanted", len(data), "wrote", written, "err", err)
	}
	s.buf.Reset()
}

// Close closes the underlying serial port.
func (s *Serial) Close() error {
	if s.port == nil {
		return nil
	}
	return s.port.Close()
}
