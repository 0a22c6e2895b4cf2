package video

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDefaultsLCDCToPostBootValue(t *testing.T) {
	v := New()
	assert.Equal(t, uint8(0x91), v.Read(0xFF40))
}

func TestVRAMRoundTrip(t *testing.T) {
	v := New()
	v.Write(0x8123, 0x77)
	assert.Equal(t, uint8(0x77), v.Read(0x8123))
}

func TestOAMRoundTrip(t *testing.T) {
	v := New()
	v.Write(0xFE10, 0x22)
	assert.Equal(t, uint8(0x22), v.Read(0xFE10))
}

func TestUnmappedAddressReadsZero(t *testing.T) {
	v := New()
	assert.Equal(t, uint8(0x00), v.Read(0x1234))
}
