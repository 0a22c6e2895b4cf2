package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterPairAliasing(t *testing.T) {
	var r Registers
	r.SetBC(0x1234)
	assert.Equal(t, uint8(0x12), r.B)
	assert.Equal(t, uint8(0x34), r.C)
	assert.Equal(t, uint16(0x1234), r.BC())
}

func TestAFMasksLowNibbleOfF(t *testing.T) {
	var r Registers
	r.SetAF(0x1234)
	assert.Equal(t, uint8(0x30), r.F, "low nibble of F is always zero")
	assert.Equal(t, uint16(0x1230), r.AF())
}

func TestFlagHelpers(t *testing.T) {
	var r Registers
	r.SetFlag(FlagZ)
	assert.True(t, r.HasFlag(FlagZ))
	r.ResetFlag(FlagZ)
	assert.False(t, r.HasFlag(FlagZ))

	r.SetFlagTo(FlagC, true)
	assert.True(t, r.HasFlag(FlagC))
	r.SetFlagTo(FlagC, false)
	assert.False(t, r.HasFlag(FlagC))
}

func TestResetPostBootState(t *testing.T) {
	var r Registers
	r.reset()

	assert.Equal(t, uint16(0x01B0), r.AF())
	assert.Equal(t, uint16(0x0013), r.BC())
	assert.Equal(t, uint16(0x00D8), r.DE())
	assert.Equal(t, uint16(0x014D), r.HL())
	assert.Equal(t, uint16(0xFFFE), r.SP)
	assert.Equal(t, uint16(0x0100), r.PC)
}
