package machine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildROM(size int) []byte {
	data := make([]byte, size)
	data[0x147] = 0x00
	data[0x148] = 0x00
	x := 0
	for i := 0x134; i <= 0x14C; i++ {
		x = x - int(data[i]) - 1
	}
	data[0x14D] = byte(x & 0xFF)
	return data
}

func TestNewMachineResetsToPostBootState(t *testing.T) {
	m := New()

	assert.Equal(t, uint16(0x01B0), m.CPU.Registers.AF())
	assert.Equal(t, uint16(0x0100), m.CPU.Registers.PC)
	assert.Equal(t, uint16(0xFFFE), m.CPU.Registers.SP)
	assert.Equal(t, byte(0x91), m.Bus.Read(0xFF40))
}

func TestLoadROMThenStep(t *testing.T) {
	m := New()
	rom := buildROM(0x8000)
	rom[0x100] = 0x00 // NOP at entry point
	require.NoError(t, m.LoadROM(rom))

	cycles := m.Step()

	assert.Equal(t, 4, cycles)
	assert.Equal(t, uint16(0x0101), m.CPU.Registers.PC)
}

func TestRunAccumulatesAtLeastRequestedCycles(t *testing.T) {
	m := New()
	rom := buildROM(0x8000)
	for i := 0; i < 10; i++ {
		rom[0x100+i] = 0x00 // NOP x10
	}
	require.NoError(t, m.LoadROM(rom))

	total := m.Run(10)

	assert.GreaterOrEqual(t, total, 10)
}

func TestSerialOutputVisibleThroughMachine(t *testing.T) {
	m := New()
	m.Bus.Write(0xFF01, 'Q')
	m.Bus.Write(0xFF02, 0x81)

	assert.Equal(t, []byte("Q"), m.SerialOutput())
}
