package serial

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTestSink_capturesOnControlByte(t *testing.T) {
	var fired bool
	s := New(func() { fired = true })

	s.Write(0xFF01, 'H')
	s.Write(0xFF02, 0x81)

	assert.Equal(t, []byte("H"), s.Output())
	assert.True(t, fired, "writing 0x81 to SC must raise the serial interrupt")
}

func TestTestSink_ignoresOtherControlValues(t *testing.T) {
	s := New(nil)
	s.Write(0xFF01, 'X')
	s.Write(0xFF02, 0x01) // transfer-start bit not set with internal clock

	assert.Empty(t, s.Output())
}

func TestTestSink_linesSplitOnNewline(t *testing.T) {
	s := New(nil)
	for _, b := range []byte("ok\nfail\n") {
		s.Write(0xFF01, b)
		s.Write(0xFF02, 0x81)
	}

	assert.Equal(t, []string{"ok", "fail"}, s.Lines())
}

func TestTestSink_clearsTransferBitAfterCapture(t *testing.T) {
	s := New(nil)
	s.Write(0xFF01, 'a')
	s.Write(0xFF02, 0x81)

	assert.Equal(t, uint8(0x01), s.Read(0xFF02), "bit 7 must clear once the byte is captured")
}

func TestTestSink_reset(t *testing.T) {
	s := New(nil)
	s.Write(0xFF01, 'a')
	s.Write(0xFF02, 0x81)
	s.Reset()

	assert.Empty(t, s.Output())
	assert.Equal(t, uint8(0x00), s.Read(0xFF01))
	assert.Equal(t, uint8(0x00), s.Read(0xFF02))
}
