package cpu

import "github.com/coreboy/gbz80/internal/bit"

// Flag bits within F. The low nibble of F is always zero.
type Flag uint8

const (
	FlagZ Flag = 0x80 // zero
	FlagN Flag = 0x40 // subtract
	FlagH Flag = 0x20 // half-carry
	FlagC Flag = 0x10 // carry
)

// Registers is the LR35902 register file: eight 8-bit registers aliased in
// pairs into four 16-bit views, plus the 16-bit special registers.
type Registers struct {
	A, F   uint8
	B, C   uint8
	D, E   uint8
	H, L   uint8
	SP, PC uint16
}

func (r *Registers) AF() uint16 { return bit.Combine(r.A, r.F&0xF0) }
func (r *Registers) BC() uint16 { return bit.Combine(r.B, r.C) }
func (r *Registers) DE() uint16 { return bit.Combine(r.D, r.E) }
func (r *Registers) HL() uint16 { return bit.Combine(r.H, r.L) }

func (r *Registers) SetAF(v uint16) {
	r.A = bit.High(v)
	r.F = bit.Low(v) & 0xF0
}
func (r *Registers) SetBC(v uint16) { r.B, r.C = bit.High(v), bit.Low(v) }
func (r *Registers) SetDE(v uint16) { r.D, r.E = bit.High(v), bit.Low(v) }
func (r *Registers) SetHL(v uint16) { r.H, r.L = bit.High(v), bit.Low(v) }

func (r *Registers) HasFlag(f Flag) bool { return r.F&uint8(f) != 0 }

func (r *Registers) SetFlag(f Flag) { r.F |= uint8(f) }

func (r *Registers) ResetFlag(f Flag) { r.F &^= uint8(f) }

func (r *Registers) SetFlagTo(f Flag, set bool) {
	if set {
		r.SetFlag(f)
	} else {
		r.ResetFlag(f)
	}
}

// reset reinitializes the register file to the documented post-boot state
// (spec.md §3).
func (r *Registers) reset() {
	r.SetAF(0x01B0)
	r.SetBC(0x0013)
	r.SetDE(0x00D8)
	r.SetHL(0x014D)
	r.SP = 0xFFFE
	r.PC = 0x0100
}
