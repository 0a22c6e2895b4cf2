// Package video is the external collaborator the bus delegates VRAM, OAM,
// and the LCDC register to. The pixel rendering pipeline itself is out of
// scope for this core (see spec Non-goals); this package exists only so the
// bus's address decoding has somewhere real to route those ranges, and so a
// host that does implement rendering has a seam to plug into.
package video

// Video is the contract the bus expects from an attached video block.
// Addresses passed in are always within 0x8000-0x9FFF (VRAM), 0xFE00-0xFE9F
// (OAM), or the single LCDC register (0xFF40).
type Video interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

// RAM is a minimal Video implementation that just stores bytes, with no
// rendering behavior. It is the default video block a bus attaches when
// none is supplied, so reads/writes into VRAM/OAM/LCDC always round-trip
// even in headless (no display) use, e.g. running CPU compliance test ROMs.
type RAM struct {
	vram [0x2000]uint8
	oam  [0xA0]uint8
	lcdc uint8
}

// New returns a RAM-backed video stub with LCDC initialized to its documented
// post-boot value.
func New() *RAM {
	return &RAM{lcdc: 0x91}
}

func (v *RAM) Read(address uint16) uint8 {
	switch {
	case address >= 0x8000 && address <= 0x9FFF:
		return v.vram[address-0x8000]
	case address >= 0xFE00 && address <= 0xFE9F:
		return v.oam[address-0xFE00]
	case address == 0xFF40:
		return v.lcdc
	default:
		return 0x00
	}
}

func (v *RAM) Write(address uint16, value uint8) {
	switch {
	case address >= 0x8000 && address <= 0x9FFF:
		v.vram[address-0x8000] = value
	case address >= 0xFE00 && address <= 0xFE9F:
		v.oam[address-0xFE00] = value
	case address == 0xFF40:
		v.lcdc = value
	}
}
