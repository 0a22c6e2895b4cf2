// Package mbc implements the cartridge-resident memory bank controllers
// this core supports: no banking, and MBC1. Grounded on the teacher's
// jeebie/memory/mbc.go, trimmed to the two controller types spec.md scopes
// in (MBC2/MBC3/MBC5 are explicit Non-goals here).
package mbc

const (
	romBankSize = 0x4000
	ramBankSize = 0x2000
)

// MBC is the contract the bus uses to route ROM/RAM address space writes
// and reads through cartridge-resident banking hardware. Writes to ROM
// address space never mutate ROM; they are always bank-control writes.
type MBC interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

// None maps a flat 32 KiB ROM directly into 0x0000-0x7FFF, with an optional
// flat RAM region at 0xA000-0xBFFF (unbanked, up to 8 KiB).
type None struct {
	rom []uint8
	ram []uint8
}

// NewNone creates an unbanked MBC over rom, with ramSize bytes of external
// RAM (0 if the cartridge has none).
func NewNone(rom []uint8, ramSize int) *None {
	return &None{
		rom: rom,
		ram: make([]uint8, ramSize),
	}
}

func (m *None) Read(address uint16) uint8 {
	switch {
	case address <= 0x7FFF:
		if int(address) < len(m.rom) {
			return m.rom[address]
		}
		return 0xFF
	case address >= 0xA000 && address <= 0xBFFF:
		offset := address - 0xA000
		if int(offset) < len(m.ram) {
			return m.ram[offset]
		}
		return 0xFF
	default:
		return 0xFF
	}
}

func (m *None) Write(address uint16, value uint8) {
	if address >= 0xA000 && address <= 0xBFFF {
		offset := address - 0xA000
		if int(offset) < len(m.ram) {
			m.ram[offset] = value
		}
	}
	// Writes to ROM space are discarded: None has no bank-control registers.
}

// bankingMode selects what the 0x4000-0x5FFF register controls on MBC1.
type bankingMode uint8

const (
	romBanking bankingMode = 0
	ramBanking bankingMode = 1
)

// MBC1 is the first and most common banking chip: up to 2 MiB ROM in 16 KiB
// banks, up to 32 KiB RAM in 8 KiB banks, selected by four write-only
// control regions in ROM address space.
type MBC1 struct {
	rom []uint8
	ram []uint8

	ramEnabled bool
	mode       bankingMode
	romBankLow uint8 // lower 5 bits of the selected ROM bank
	upperBits  uint8 // one shared 2-bit register: always bits 5-6 of the 0x4000-0x7FFF ROM bank; also the RAM bank in mode 1 (no separate ROM-bank and RAM-bank registers)
}

// New creates an MBC1 controller over rom, with ramSize bytes of external
// RAM (0 if the cartridge declares none).
func New(rom []uint8, ramSize int) *MBC1 {
	return &MBC1{
		rom:        rom,
		ram:        make([]uint8, ramSize),
		romBankLow: 1,
	}
}

// selectedRomBank composes the 7-bit effective ROM bank number. Write
// already forces a zero low-5-bit selector to 1, which is what makes banks
// 0x20/0x40/0x60 unreachable via the composed selector (spec.md §3
// invariant; the low 5 bits are never zero here, so the documented
// low-5-zero-increments-by-1 quirk from spec.md §4.3.2 never has an input
// to act on and is a no-op given that write-time forcing).
func (m *MBC1) selectedRomBank() uint8 {
	return (m.upperBits << 5) | m.romBankLow
}

func (m *MBC1) selectedRamBank() uint8 {
	if m.mode == ramBanking {
		return m.upperBits
	}
	return 0
}

func (m *MBC1) Read(address uint16) uint8 {
	switch {
	case address <= 0x3FFF:
		return m.romAt(0, address)
	case address >= 0x4000 && address <= 0x7FFF:
		return m.romAt(m.selectedRomBank(), address-0x4000)
	case address >= 0xA000 && address <= 0xBFFF:
		if !m.ramEnabled {
			return 0xFF
		}
		return m.ramAt(m.selectedRamBank(), address-0xA000)
	default:
		return 0xFF
	}
}

func (m *MBC1) romAt(bank uint8, offset uint16) uint8 {
	idx := int(bank)*romBankSize + int(offset)
	if idx < 0 || idx >= len(m.rom) {
		return 0xFF
	}
	return m.rom[idx]
}

func (m *MBC1) ramAt(bank uint8, offset uint16) uint8 {
	idx := int(bank)*ramBankSize + int(offset)
	if idx < 0 || idx >= len(m.ram) {
		return 0xFF
	}
	return m.ram[idx]
}

func (m *MBC1) Write(address uint16, value uint8) {
	switch {
	case address <= 0x1FFF:
		m.ramEnabled = value&0x0F == 0x0A
	case address >= 0x2000 && address <= 0x3FFF:
		bank := value & 0x1F
		if bank == 0 {
			bank = 1
		}
		m.romBankLow = bank
	case address >= 0x4000 && address <= 0x5FFF:
		m.upperBits = value & 0x03
	case address >= 0x6000 && address <= 0x7FFF:
		if value&0x01 == 0 {
			m.mode = romBanking
		} else {
			m.mode = ramBanking
		}
	case address >= 0xA000 && address <= 0xBFFF:
		if !m.ramEnabled {
			return
		}
		idx := int(m.selectedRamBank())*ramBankSize + int(address-0xA000)
		if idx >= 0 && idx < len(m.ram) {
			m.ram[idx] = value
		}
	}
}
