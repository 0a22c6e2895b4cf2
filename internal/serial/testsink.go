// Package serial implements the serial-port test-output hook test ROMs
// (e.g. Blargg's cpu_instrs) use to report pass/fail text, grounded on
// the teacher's jeebie/serial/logsink.go.
package serial

import (
	"log/slog"

	"github.com/coreboy/gbz80/internal/addr"
	"github.com/coreboy/gbz80/internal/bit"
)

// TestSink is a serial device that captures bytes written through the
// SB/SC test-output channel instead of transmitting them anywhere. Per
// spec, a write of 0x81 to SC triggers the host-visible capture of the
// current SB byte.
type TestSink struct {
	sb, sc byte

	irqHandler func()
	logger     *slog.Logger

	buf  []byte
	line []byte
}

// New creates a TestSink. irq is called whenever a transfer completes; it
// should be wired to request the Serial interrupt on the owning bus.
func New(irq func()) *TestSink {
	s := &TestSink{
		irqHandler: irq,
		logger:     slog.Default(),
	}
	s.Reset()
	return s
}

// Reset clears captured state, as happens on machine reset.
func (s *TestSink) Reset() {
	s.sb = 0x00
	s.sc = 0x00
	s.buf = s.buf[:0]
	s.line = s.line[:0]
}

// Read implements the bus's serial port contract for addr.SB / addr.SC.
func (s *TestSink) Read(address uint16) byte {
	switch address {
	case addr.SB:
		return s.sb
	case addr.SC:
		return s.sc
	default:
		panic("serial.TestSink: invalid read address")
	}
}

// Write implements the bus's serial port contract for addr.SB / addr.SC.
func (s *TestSink) Write(address uint16, value byte) {
	switch address {
	case addr.SB:
		s.sb = value
	case addr.SC:
		s.sc = value
		if value == 0x81 {
			s.capture()
		}
	default:
		panic("serial.TestSink: invalid write address")
	}
}

// capture appends the current SB byte to the output stream and flushes a
// line whenever a newline is observed, then completes the transfer as real
// hardware would (clearing the start bit and requesting the interrupt).
func (s *TestSink) capture() {
	b := s.sb
	s.buf = append(s.buf, b)

	if b == '\n' {
		s.logger.Info("serial", "line", string(s.line))
		s.line = s.line[:0]
	} else {
		s.line = append(s.line, b)
	}

	s.sc = bit.Reset(7, s.sc)
	if s.irqHandler != nil {
		s.irqHandler()
	}
}

// Output returns every byte captured via the test-output hook so far.
func (s *TestSink) Output() []byte {
	out := make([]byte, len(s.buf))
	copy(out, s.buf)
	return out
}

// Lines returns completed (newline-terminated) lines captured so far, plus
// any partial trailing line.
func (s *TestSink) Lines() []string {
	lines := make([]string, 0)
	start := 0
	for i, b := range s.buf {
		if b == '\n' {
			lines = append(lines, string(s.buf[start:i]))
			start = i + 1
		}
	}
	if start < len(s.buf) {
		lines = append(lines, string(s.buf[start:]))
	}
	return lines
}
