// Package machine wires a CPU and a Bus into the single owning structure
// spec.md §9 calls for: a systems language without convenient mutual
// references models the source's cyclic CPU<->bus ownership as one outer
// struct that owns both and resets them in order (bus, then CPU) on
// construction and on every ROM load.
package machine

import (
	"fmt"

	"github.com/coreboy/gbz80/internal/bus"
	"github.com/coreboy/gbz80/internal/cartridge"
	"github.com/coreboy/gbz80/internal/cpu"
)

// Machine owns the CPU and the bus it executes against.
type Machine struct {
	CPU *cpu.CPU
	Bus *bus.Bus
}

// New constructs a Machine with no cartridge loaded. Reset runs last, after
// the bus is fully wired, per spec.md §9's open-question resolution.
func New() *Machine {
	b := bus.New()
	c := cpu.New(b)
	m := &Machine{CPU: c, Bus: b}
	m.Reset()
	return m
}

// LoadROM parses and attaches a cartridge image, then resets the machine to
// the documented post-boot state so execution starts at 0x0100.
func (m *Machine) LoadROM(data []byte) error {
	cart, err := cartridge.Load(data)
	if err != nil {
		return fmt.Errorf("machine: %w", err)
	}
	m.Bus.AttachCartridge(cart)
	m.Reset()
	return nil
}

// Reset reinitializes the bus's MMIO storage, then the CPU's registers,
// matching spec.md §9: bus MMIO writes during reset must land on an
// already-wired video/cartridge, and register reset never depends on bus
// state, so this ordering is always safe regardless of which runs second;
// the bus goes first since its defaults (e.g. LCDC) must be in place before
// the CPU's first fetch.
func (m *Machine) Reset() {
	m.Bus.Reset()
	m.CPU.Reset()
}

// Step runs exactly one CPU step (fetch-execute or interrupt dispatch) and
// returns the T-states it consumed.
func (m *Machine) Step() int {
	return m.CPU.Step()
}

// Run steps the machine until it has consumed at least minCycles T-states,
// returning the total consumed. Intended for host loops that pace
// real-time emulation by cycle budget rather than by instruction count.
func (m *Machine) Run(minCycles int) int {
	total := 0
	for total < minCycles {
		total += m.Step()
	}
	return total
}

// SerialOutput exposes bytes captured through the serial test-output hook,
// the channel Blargg-style cpu_instrs test ROMs use to report results.
func (m *Machine) SerialOutput() []byte {
	return m.Bus.TestOutput()
}
