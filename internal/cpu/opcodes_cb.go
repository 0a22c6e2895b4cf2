package cpu

import "fmt"

// The entire CB-prefixed table is regular: bits 5-3 select the operation
// (for BIT/RES/SET, the bit number; for the rotate/shift block, which of
// the 8 operations), bits 2-0 select the 8-bit operand via reg8. Per
// spec.md §9, this regularity is exploited with a generator loop rather
// than 256 hand-written entries.
var regNames8 = [8]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}

func cbCycles(regIndex uint8, hlCycles, otherCycles int) int {
	if regIndex == 6 {
		return hlCycles
	}
	return otherCycles
}

func buildCBTable() map[uint16]instruction {
	table := make(map[uint16]instruction, 256)

	rotateOps := []struct {
		name string
		fn   func(c *CPU, o operand)
	}{
		{"RLC", func(c *CPU, o operand) { c.rlc(o, false) }},
		{"RRC", func(c *CPU, o operand) { c.rrc(o, false) }},
		{"RL", func(c *CPU, o operand) { c.rl(o, false) }},
		{"RR", func(c *CPU, o operand) { c.rr(o, false) }},
		{"SLA", func(c *CPU, o operand) { c.sla(o) }},
		{"SRA", func(c *CPU, o operand) { c.sra(o) }},
		{"SWAP", func(c *CPU, o operand) { c.swap(o) }},
		{"SRL", func(c *CPU, o operand) { c.srl(o) }},
	}

	for op := 0; op < 8; op++ {
		entry := rotateOps[op]
		for reg := uint8(0); reg < 8; reg++ {
			opcode := uint16(op<<3) | uint16(reg)
			reg, entry := reg, entry
			table[0xCB00|opcode] = instruction{
				Mnemonic: fmt.Sprintf("%s %s", entry.name, regNames8[reg]),
				Cycles:   cbCycles(reg, 16, 8),
				Exec: func(c *CPU) int {
					entry.fn(c, c.reg8(reg))
					return cbCycles(reg, 16, 8)
				},
			}
		}
	}

	for bit := uint8(0); bit < 8; bit++ {
		for reg := uint8(0); reg < 8; reg++ {
			opcode := 0x40 | uint16(bit<<3) | uint16(reg)
			bit, reg := bit, reg
			table[0xCB00|opcode] = instruction{
				Mnemonic: fmt.Sprintf("BIT %d,%s", bit, regNames8[reg]),
				Cycles:   cbCycles(reg, 12, 8),
				Exec: func(c *CPU) int {
					c.bit(bit, c.reg8(reg))
					return cbCycles(reg, 12, 8)
				},
			}
		}
	}

	for bit := uint8(0); bit < 8; bit++ {
		for reg := uint8(0); reg < 8; reg++ {
			opcode := 0x80 | uint16(bit<<3) | uint16(reg)
			bit, reg := bit, reg
			table[0xCB00|opcode] = instruction{
				Mnemonic: fmt.Sprintf("RES %d,%s", bit, regNames8[reg]),
				Cycles:   cbCycles(reg, 16, 8),
				Exec: func(c *CPU) int {
					c.res(bit, c.reg8(reg))
					return cbCycles(reg, 16, 8)
				},
			}
		}
	}

	for bit := uint8(0); bit < 8; bit++ {
		for reg := uint8(0); reg < 8; reg++ {
			opcode := 0xC0 | uint16(bit<<3) | uint16(reg)
			bit, reg := bit, reg
			table[0xCB00|opcode] = instruction{
				Mnemonic: fmt.Sprintf("SET %d,%s", bit, regNames8[reg]),
				Cycles:   cbCycles(reg, 16, 8),
				Exec: func(c *CPU) int {
					c.set(bit, c.reg8(reg))
					return cbCycles(reg, 16, 8)
				},
			}
		}
	}

	return table
}
