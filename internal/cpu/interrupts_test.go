package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEI_TakesEffectAfterNextInstruction(t *testing.T) {
	c, mem := newTestCPU()
	mem.loadAt(0x0100, 0xFB, 0x00, 0x00) // EI; NOP; NOP

	c.Step() // EI
	assert.Equal(t, imeEnablePending, c.ime)

	c.Step() // NOP completes -> IME takes effect
	assert.Equal(t, imeEnabled, c.ime)
}

func TestDI_TakesEffectAfterNextInstruction(t *testing.T) {
	c, mem := newTestCPU()
	c.ime = imeEnabled
	mem.loadAt(0x0100, 0xF3, 0x00) // DI; NOP

	c.Step() // DI
	assert.Equal(t, imeDisablePending, c.ime)

	c.Step() // NOP completes -> IME takes effect
	assert.Equal(t, imeDisabled, c.ime)
}

func TestRETI_EnablesImmediately(t *testing.T) {
	c, mem := newTestCPU()
	c.Registers.SP = 0xFFFC
	mem.Write(0xFFFC, 0x00)
	mem.Write(0xFFFD, 0x01)
	mem.loadAt(0x0100, 0xD9) // RETI

	c.Step()

	assert.Equal(t, imeEnabled, c.ime, "RETI enables IME immediately, not deferred")
	assert.Equal(t, uint16(0x0100), c.Registers.PC)
}

func TestInterruptDispatch_pushesPCAndJumpsToVector(t *testing.T) {
	c, mem := newTestCPU()
	c.ime = imeEnabled
	c.Registers.PC = 0x0200
	c.Registers.SP = 0xFFFE
	mem.Write(0xFFFF, 0x01) // IE: VBlank
	mem.Write(0xFF0F, 0x01) // IF: VBlank pending

	cycles := c.Step()

	assert.Equal(t, 20, cycles)
	assert.Equal(t, uint16(0x0040), c.Registers.PC)
	assert.Equal(t, imeDisabled, c.ime)
	assert.Zero(t, mem.Read(0xFF0F), "servicing clears the interrupt's IF bit")
	assert.Equal(t, byte(0x00), mem.Read(0xFFFC))
	assert.Equal(t, byte(0x02), mem.Read(0xFFFD))
}

func TestInterruptPriority_lowestBitWins(t *testing.T) {
	c, mem := newTestCPU()
	c.ime = imeEnabled
	mem.Write(0xFFFF, 0x1F)
	mem.Write(0xFF0F, 0x1A) // LCDSTAT, Serial, Joypad pending; not VBlank

	c.Step()

	assert.Equal(t, uint16(0x0048), c.Registers.PC, "LCDSTAT is the lowest pending bit")
}

func TestInterruptNotServicedWhileIMEDisabled(t *testing.T) {
	c, mem := newTestCPU()
	c.ime = imeDisabled
	mem.Write(0xFFFF, 0x01)
	mem.Write(0xFF0F, 0x01)
	mem.loadAt(0x0100, 0x00) // NOP

	cycles := c.Step()

	assert.Equal(t, 4, cycles)
	assert.Equal(t, uint16(0x0101), c.Registers.PC)
}
