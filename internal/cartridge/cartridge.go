// Package cartridge parses Game Boy ROM headers and constructs the matching
// memory bank controller, grounded on original_source/src/cartridge.cpp and
// the teacher's jeebie/memory/cartridge.go + cart_utils.go.
package cartridge

import (
	"fmt"
	"log/slog"
	"strings"
	"unicode"

	"github.com/coreboy/gbz80/internal/mbc"
)

const (
	titleAddress          = 0x134
	titleLength           = 16
	cartridgeTypeAddress  = 0x147
	romSizeAddress        = 0x148
	ramSizeAddress        = 0x149
	headerChecksumAddress = 0x14D
	headerChecksumStart   = 0x134
	headerChecksumEnd     = 0x14C
	headerMinLength       = 0x150
)

// Type identifies the recognized cartridge-type bytes this core supports
// choosing an MBC for (spec.md §4.6 step 4).
type Type uint8

const (
	TypeROMOnly      Type = 0x00
	TypeMBC1         Type = 0x01
	TypeMBC1RAM      Type = 0x02
	TypeMBC1RAMBatt  Type = 0x03
	TypeROMRAM       Type = 0x08
	TypeROMRAMBatt   Type = 0x09
)

// Header is the parsed cartridge header at 0x0100-0x014F.
type Header struct {
	Title          string
	Type           Type
	ROMBanks       int
	RAMSize        int
	Checksum       uint8
	ChecksumOK     bool
}

// Cartridge owns the parsed header and the MBC chosen for it.
type Cartridge struct {
	Header Header
	MBC    mbc.MBC
}

// ramSizeBytes maps the ram-size header code to a byte count, per spec.md §3.
func ramSizeBytes(code uint8) int {
	switch code {
	case 0x00:
		return 0
	case 0x01:
		return 2 * 1024
	case 0x02:
		return 8 * 1024
	case 0x03:
		return 32 * 1024
	case 0x04:
		return 128 * 1024
	case 0x05:
		return 64 * 1024
	default:
		return 0
	}
}

// computeChecksum implements spec.md §3's header checksum algorithm:
// x = 0; for each byte b in 0x134..0x14C: x = x - b - 1; checksum = x & 0xFF.
func computeChecksum(data []byte) uint8 {
	x := 0
	for i := headerChecksumStart; i <= headerChecksumEnd; i++ {
		x = x - int(data[i]) - 1
	}
	return uint8(x & 0xFF)
}

func cleanTitle(raw []byte) string {
	runes := make([]rune, 0, len(raw))
	for _, b := range raw {
		switch {
		case b == 0:
			continue
		case unicode.IsPrint(rune(b)) && b < 0x80:
			runes = append(runes, rune(b))
		default:
			runes = append(runes, '?')
		}
	}
	title := strings.TrimSpace(string(runes))
	if title == "" {
		return "(untitled)"
	}
	return title
}

// Load parses a raw ROM image and constructs the Cartridge with its MBC
// wired up. A header checksum mismatch is logged and recovered from (spec.md
// §7); an unsupported cartridge-type byte is a fatal construction error.
func Load(data []byte) (*Cartridge, error) {
	if len(data) < headerMinLength {
		return nil, fmt.Errorf("cartridge: ROM image too small (%d bytes)", len(data))
	}

	romTypeByte := data[cartridgeTypeAddress]
	romSizeCode := data[romSizeAddress]
	ramSizeCode := data[ramSizeAddress]

	header := Header{
		Title:    cleanTitle(data[titleAddress : titleAddress+titleLength]),
		Type:     Type(romTypeByte),
		ROMBanks: 1 << (uint(romSizeCode) + 1),
		RAMSize:  ramSizeBytes(ramSizeCode),
		Checksum: data[headerChecksumAddress],
	}
	header.ChecksumOK = header.Checksum == computeChecksum(data)

	if !header.ChecksumOK {
		slog.Warn("cartridge header checksum mismatch",
			"title", header.Title, "expected", fmt.Sprintf("0x%02X", header.Checksum),
			"computed", fmt.Sprintf("0x%02X", computeChecksum(data)))
	}

	slog.Info("cartridge", "title", header.Title, "type", fmt.Sprintf("0x%02X", romTypeByte),
		"romBanks", header.ROMBanks, "ramBytes", header.RAMSize)

	rom := make([]byte, len(data))
	copy(rom, data)

	var controller mbc.MBC
	switch header.Type {
	case TypeROMOnly, TypeROMRAM, TypeROMRAMBatt:
		controller = mbc.NewNone(rom, header.RAMSize)
	case TypeMBC1, TypeMBC1RAM, TypeMBC1RAMBatt:
		controller = mbc.New(rom, header.RAMSize)
	default:
		return nil, fmt.Errorf("cartridge: unsupported MBC type byte 0x%02X", romTypeByte)
	}

	return &Cartridge{Header: header, MBC: controller}, nil
}
