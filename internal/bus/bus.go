// Package bus is the central address decoder: it routes every CPU memory
// access to cartridge/MBC, video, work RAM, high RAM, or one of the MMIO
// registers it stores itself. Grounded on the teacher's jeebie/memory/mem.go
// region-map dispatch, trimmed to this core's scope (no APU/timer behavior,
// no joypad).
package bus

import (
	"fmt"
	"log/slog"

	"github.com/coreboy/gbz80/internal/addr"
	"github.com/coreboy/gbz80/internal/cartridge"
	"github.com/coreboy/gbz80/internal/serial"
	"github.com/coreboy/gbz80/internal/video"
)

// Bus owns all memory the CPU does not hold in registers: work RAM, high
// RAM, MMIO register storage, and non-owning references to the attached
// cartridge, video block, and serial test sink.
type Bus struct {
	wram [0x2000]byte // 0xC000-0xDFFF, also backs the 0xE000-0xFDFF echo
	hram [0x7F]byte   // 0xFF80-0xFFFE
	io   [0x80]byte   // 0xFF00-0xFF7F, general MMIO backing store
	ie   byte         // 0xFFFF

	cart   *cartridge.Cartridge
	video  video.Video
	serial *serial.TestSink
}

// New creates a Bus with no cartridge attached and a default RAM-backed
// video stub, matching "turning on a Game Boy without a cartridge in."
func New() *Bus {
	b := &Bus{
		video: video.New(),
	}
	b.serial = serial.New(func() { b.RequestInterrupt(addr.Serial) })
	return b
}

// AttachCartridge plugs a cartridge into the bus, replacing any previous one.
func (b *Bus) AttachCartridge(cart *cartridge.Cartridge) {
	b.cart = cart
}

// AttachVideo plugs a video block into the bus, replacing the default stub.
func (b *Bus) AttachVideo(v video.Video) {
	b.video = v
}

// TestOutput exposes the bytes captured through the serial test-output hook.
func (b *Bus) TestOutput() []byte {
	return b.serial.Output()
}

// Reset reinitializes MMIO storage to the documented post-boot state. Per
// spec, this must run after the bus is fully wired (cartridge/video
// attached), since writes here may be forwarded to those components.
func (b *Bus) Reset() {
	for i := range b.io {
		b.io[i] = 0
	}
	b.ie = 0
	b.serial.Reset()

	b.Write(addr.TIMA, 0x00)
	b.Write(addr.TMA, 0x00)
	b.Write(addr.TAC, 0x00)
	b.Write(addr.SCY, 0x00)
	b.Write(addr.SCX, 0x00)
	b.Write(addr.LYC, 0x00)
	b.Write(addr.BGP, 0xFC)
	b.Write(addr.OBP0, 0xFF)
	b.Write(addr.OBP1, 0xFF)
	b.Write(addr.WY, 0x00)
	b.Write(addr.WX, 0x00)
	b.Write(addr.BOOT, 0x00)
	b.Write(addr.LCDC, 0x91)
}

// RequestInterrupt sets the matching bit in the IF register.
func (b *Bus) RequestInterrupt(interrupt addr.Interrupt) {
	flags := b.Read(addr.IF)
	b.Write(addr.IF, flags|uint8(interrupt))
}

// Read dispatches a CPU-visible read to the owning component. Unmapped
// reads always yield 0x00, never an error (spec.md §7).
func (b *Bus) Read(address uint16) uint8 {
	switch {
	case address <= 0x7FFF, address >= 0xA000 && address <= 0xBFFF:
		if b.cart == nil {
			slog.Warn("bus: read from cartridge space with no cartridge attached",
				"addr", fmt.Sprintf("0x%04X", address))
			return 0x00
		}
		return b.cart.MBC.Read(address)
	case address >= 0x8000 && address <= 0x9FFF:
		return b.video.Read(address)
	case address >= 0xC000 && address <= 0xDFFF:
		return b.wram[address-0xC000]
	case address >= 0xE000 && address <= 0xFDFF:
		return b.wram[address-0xE000]
	case address >= 0xFE00 && address <= 0xFE9F:
		return b.video.Read(address)
	case address >= 0xFEA0 && address <= 0xFEFF:
		return 0x00
	case address == addr.LCDC:
		return b.video.Read(address)
	case address == addr.SB || address == addr.SC:
		return b.serial.Read(address)
	case address >= 0xFF00 && address <= 0xFF7F:
		return b.io[address-0xFF00]
	case address >= 0xFF80 && address <= 0xFFFE:
		return b.hram[address-0xFF80]
	case address == 0xFFFF:
		return b.ie
	default:
		return 0x00
	}
}

// Write dispatches a CPU-visible write to the owning component. Writes to
// ROM address space never mutate ROM; they are interpreted as MBC control
// (or silently discarded with no cartridge attached).
func (b *Bus) Write(address uint16, value uint8) {
	switch {
	case address <= 0x7FFF, address >= 0xA000 && address <= 0xBFFF:
		if b.cart == nil {
			slog.Warn("bus: write to cartridge space with no cartridge attached",
				"addr", fmt.Sprintf("0x%04X", address), "value", fmt.Sprintf("0x%02X", value))
			return
		}
		b.cart.MBC.Write(address, value)
	case address >= 0x8000 && address <= 0x9FFF:
		b.video.Write(address, value)
	case address >= 0xC000 && address <= 0xDFFF:
		b.wram[address-0xC000] = value
	case address >= 0xE000 && address <= 0xFDFF:
		b.wram[address-0xE000] = value
	case address >= 0xFE00 && address <= 0xFE9F:
		b.video.Write(address, value)
	case address >= 0xFEA0 && address <= 0xFEFF:
		// unused, writes discarded
	case address == addr.LCDC:
		b.video.Write(address, value)
	case address == addr.SB || address == addr.SC:
		b.serial.Write(address, value)
	case address >= 0xFF00 && address <= 0xFF7F:
		b.io[address-0xFF00] = value
	case address >= 0xFF80 && address <= 0xFFFE:
		b.hram[address-0xFF80] = value
	case address == 0xFFFF:
		b.ie = value
	}
}
