// Package cpu implements the Sharp LR35902 instruction set: registers and
// flags, the operand abstraction, ALU/control-flow/rotate-shift-bit
// primitives, the instruction decoder, and the fetch-execute loop with
// interrupt dispatch. Grounded on the teacher's jeebie/cpu package (cpu.go,
// instructions.go, opcodes.go, opcodes_cb.go, mapping.go), reworked into an
// internally consistent design since the teacher's own cpu package mixes
// two incompatible generations of its field layout.
package cpu

import (
	"fmt"
	"log/slog"

	"github.com/coreboy/gbz80/internal/addr"
)

// Bus is everything the CPU needs from its memory system: a single
// byte-addressed read/write surface. The concrete bus.Bus satisfies this
// structurally; the CPU package never imports the bus package, so bus can
// freely import cpu's sibling packages without a cycle.
type Bus interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

// imeState is the interrupt-master-enable deferral state machine from
// spec.md §4.5.6: EI/DI take effect only after the instruction following
// them completes; RETI takes effect immediately.
type imeState uint8

const (
	imeDisabled imeState = iota
	imeEnablePending
	imeEnabled
	imeDisablePending
)

// CPU is the Sharp LR35902 core: register file, halt/stop/IME state, and a
// bus to fetch instructions and operands from.
type CPU struct {
	Registers Registers

	bus Bus

	ime    imeState
	halted bool
	stopped bool

	// haltBug reproduces the well-known hardware quirk where HALT executed
	// with IME disabled and a pending interrupt fails to increment PC when
	// the byte after HALT is next fetched, causing that byte to be read
	// twice.
	haltBug bool

	logger *slog.Logger
}

// New creates a CPU driven by the given bus. Call Reset once the whole
// machine (bus, cartridge, video) is wired, per spec.md §9's requirement
// that reset be the last step of construction.
func New(bus Bus) *CPU {
	return &CPU{
		bus:    bus,
		logger: slog.Default(),
	}
}

// Reset reinitializes the register file to the documented post-boot state.
func (c *CPU) Reset() {
	c.Registers.reset()
	c.ime = imeDisabled
	c.halted = false
	c.stopped = false
	c.haltBug = false
}

// Halted reports whether the CPU is suspended in HALT (or STOP).
func (c *CPU) Halted() bool { return c.halted || c.stopped }

// Stopped reports whether the CPU is suspended in STOP, awaiting a button
// press the host is responsible for delivering.
func (c *CPU) Stopped() bool { return c.stopped }

func (c *CPU) fetchByte() uint8 {
	b := c.bus.Read(c.Registers.PC)
	c.Registers.PC++
	return b
}

func (c *CPU) fetchWord() uint16 {
	low := c.fetchByte()
	high := c.fetchByte()
	return uint16(high)<<8 | uint16(low)
}

// pendingInterrupt returns the lowest-priority-numbered interrupt that is
// both requested (IF) and enabled (IE); the second result is false if none
// is pending.
func (c *CPU) pendingInterrupt() (addr.Interrupt, bool) {
	pending := c.bus.Read(addr.IF) & c.bus.Read(addr.IE) & 0x1F
	if pending == 0 {
		return 0, false
	}
	for _, irq := range []addr.Interrupt{addr.VBlank, addr.LCDSTAT, addr.Timer, addr.Serial, addr.Joypad} {
		if pending&uint8(irq) != 0 {
			return irq, true
		}
	}
	return 0, false
}

// serviceInterrupt pushes PC, jumps to the interrupt's vector, clears its
// IF bit, and disables IME. Costs 5 machine cycles (20 T-states).
func (c *CPU) serviceInterrupt(irq addr.Interrupt) int {
	c.ime = imeDisabled
	flags := c.bus.Read(addr.IF)
	c.bus.Write(addr.IF, flags&^uint8(irq))
	c.pushPC()
	c.Registers.PC = irq.Vector()
	return 20
}

func (c *CPU) pushPC() {
	c.push(c.Registers.PC)
}

// Step runs exactly one unit of CPU work: either interrupt dispatch, a
// halted no-op tick, or one fetch-decode-execute cycle. Returns the number
// of T-states consumed.
func (c *CPU) Step() int {
	irq, pending := c.pendingInterrupt()

	if (c.halted || c.stopped) && pending {
		// A pending interrupt always wakes the CPU, whether or not IME is
		// enabled to actually service it.
		c.halted = false
		c.stopped = false
	}

	if pending && c.ime == imeEnabled {
		return c.serviceInterrupt(irq)
	}

	if c.halted || c.stopped {
		return 4
	}

	// EI/DI only schedule the change; it completes after the instruction
	// that follows them, so an instruction that just set a pending state
	// does not advance it.
	before := c.ime
	cycles := c.step()
	if c.ime == before {
		c.advanceIME()
	}
	return cycles
}

func (c *CPU) advanceIME() {
	switch c.ime {
	case imeEnablePending:
		c.ime = imeEnabled
	case imeDisablePending:
		c.ime = imeDisabled
	}
}

func (c *CPU) step() int {
	pc := c.Registers.PC
	opcode := c.fetchByte()

	if c.haltBug {
		c.Registers.PC--
		c.haltBug = false
	}

	var key uint16 = uint16(opcode)
	if opcode == 0xCB {
		sub := c.fetchByte()
		key = 0xCB00 | uint16(sub)
	} else if opcode == 0x10 {
		// STOP is the two-byte encoding 0x10 0x00: the second byte is
		// consumed whatever its value, and 0x1000 is used as the lookup key.
		_ = c.fetchByte()
		key = 0x1000
	}

	inst, ok := instructionTable[key]
	if !ok {
		c.logger.Error("decode error: unknown opcode",
			"opcode", fmt.Sprintf("0x%04X", key), "pc", fmt.Sprintf("0x%04X", c.Registers.PC))
		panic(fmt.Sprintf("cpu: decode error at PC=0x%04X: unknown opcode 0x%04X", c.Registers.PC-1, key))
	}

	cycles := inst.Exec(c)

	c.logger.Debug("cpu: decoded instruction",
		"pc", fmt.Sprintf("0x%04X", pc), "opcode", fmt.Sprintf("0x%04X", key),
		"mnemonic", inst.Mnemonic, "cycles", cycles)

	return cycles
}

// ei schedules IME to become true after the next instruction completes.
func (c *CPU) ei() {
	if c.ime != imeEnabled {
		c.ime = imeEnablePending
	}
}

// di schedules IME to become false after the next instruction completes.
func (c *CPU) di() {
	if c.ime != imeDisabled {
		c.ime = imeDisablePending
	}
}

// reti returns then enables IME immediately, unlike EI's deferral.
func (c *CPU) reti() {
	c.ret()
	c.ime = imeEnabled
}

func (c *CPU) halt() {
	// HALT always suspends the CPU (spec.md §4.5.6: "set halted = true;
	// CPU suspends until an interrupt is pending"). If IME is disabled and
	// an interrupt is already pending at the moment HALT executes, real
	// hardware additionally fails to advance PC past the following opcode
	// on wake, causing it to be fetched twice; haltBug records that so
	// step() can reproduce it without ever skipping the suspend itself.
	_, pending := c.pendingInterrupt()
	if c.ime != imeEnabled && pending {
		c.haltBug = true
	}
	c.halted = true
}

func (c *CPU) stop() {
	c.stopped = true
}
