package cpu

import "fmt"

// buildMainTable constructs the 256-entry 0x00xx table. The LR35902 opcode
// map has three large regular blocks (spec.md §4.4/§9): LD r,r' at
// 0x40-0x7F, ALU A,r at 0x80-0xBF, and the ALU-immediate row scattered every
// 8th opcode from 0xC6 to 0xFE. Those are generated by loop; the remaining
// 108 opcodes (loads of every other shape, 16-bit arithmetic, all control
// flow, and the handful of single-purpose instructions) are registered
// explicitly below them.
func buildMainTable() map[uint16]instruction {
	table := make(map[uint16]instruction, 256)

	// LD r,r' block. 0x76 is HALT, not LD (HL),(HL); registered separately.
	for opcode := 0x40; opcode <= 0x7F; opcode++ {
		if opcode == 0x76 {
			continue
		}
		dst := uint8(opcode>>3) & 7
		src := uint8(opcode) & 7
		cycles := 4
		if dst == 6 || src == 6 {
			cycles = 8
		}
		table[uint16(opcode)] = instruction{
			Mnemonic: fmt.Sprintf("LD %s,%s", regNames8[dst], regNames8[src]),
			Cycles:   cycles,
			Exec: func(c *CPU) int {
				c.ld(c.reg8(dst), c.reg8(src))
				return cycles
			},
		}
	}

	aluOps := []struct {
		name string
		fn   func(c *CPU, src operand)
	}{
		{"ADD", func(c *CPU, src operand) { c.add(src) }},
		{"ADC", func(c *CPU, src operand) { c.adc(src) }},
		{"SUB", func(c *CPU, src operand) { c.sub(src) }},
		{"SBC", func(c *CPU, src operand) { c.sbc(src) }},
		{"AND", func(c *CPU, src operand) { c.and(src) }},
		{"XOR", func(c *CPU, src operand) { c.xor(src) }},
		{"OR", func(c *CPU, src operand) { c.or(src) }},
		{"CP", func(c *CPU, src operand) { c.cp(src) }},
	}

	for opcode := 0x80; opcode <= 0xBF; opcode++ {
		op := aluOps[(opcode>>3)&7]
		reg := uint8(opcode) & 7
		cycles := 4
		if reg == 6 {
			cycles = 8
		}
		mnemonic := op.name + " A," + regNames8[reg]
		table[uint16(opcode)] = instruction{
			Mnemonic: mnemonic,
			Cycles:   cycles,
			Exec: func(c *CPU) int {
				op.fn(c, c.reg8(reg))
				return cycles
			},
		}
	}

	immOpcodes := []uint16{0xC6, 0xCE, 0xD6, 0xDE, 0xE6, 0xEE, 0xF6, 0xFE}
	for i, opcode := range immOpcodes {
		op := aluOps[i]
		opcode := opcode
		table[opcode] = instruction{
			Mnemonic: op.name + " A,n",
			Cycles:   8,
			Exec: func(c *CPU) int {
				n := c.fetchByte()
				op.fn(c, immByte(n))
				return 8
			},
		}
	}

	registerIrregular(table)
	return table
}

var pairNames16 = [4]string{"BC", "DE", "HL", "SP"}

func (c *CPU) pair16(index uint8) operand {
	switch index {
	case 0:
		return c.pairBC()
	case 1:
		return c.pairDE()
	case 2:
		return c.pairHL()
	default:
		return c.pairSP()
	}
}

// pushPopPair mirrors pair16 but index 3 means AF instead of SP, matching
// how PUSH/POP's 2-bit register field is decoded on real hardware.
var pushPopNames = [4]string{"BC", "DE", "HL", "AF"}

func (c *CPU) pushPopPair(index uint8) operand {
	if index == 3 {
		return c.pairAF()
	}
	return c.pair16(index)
}

func registerIrregular(table map[uint16]instruction) {
	reg := func(opcode uint16, mnemonic string, cycles int, fn func(c *CPU) int) {
		table[opcode] = instruction{Mnemonic: mnemonic, Cycles: cycles, Exec: fn}
	}

	reg(0x00, "NOP", 4, func(c *CPU) int { return 4 })

	for i := uint8(0); i < 4; i++ {
		i := i
		opcode := uint16(0x01) | uint16(i)<<4
		reg(opcode, "LD "+pairNames16[i]+",nn", 12, func(c *CPU) int {
			c.pair16(i).set(c.fetchWord())
			return 12
		})
		opcode = uint16(0x03) | uint16(i)<<4
		reg(opcode, "INC "+pairNames16[i], 8, func(c *CPU) int {
			c.inc16(c.pair16(i))
			return 8
		})
		opcode = uint16(0x09) | uint16(i)<<4
		reg(opcode, "ADD HL,"+pairNames16[i], 8, func(c *CPU) int {
			c.addHL(c.pair16(i))
			return 8
		})
		opcode = uint16(0x0B) | uint16(i)<<4
		reg(opcode, "DEC "+pairNames16[i], 8, func(c *CPU) int {
			c.dec16(c.pair16(i))
			return 8
		})
	}

	reg(0x02, "LD (BC),A", 8, func(c *CPU) int {
		c.mem(c.Registers.BC()).set(uint16(c.Registers.A))
		return 8
	})
	reg(0x12, "LD (DE),A", 8, func(c *CPU) int {
		c.mem(c.Registers.DE()).set(uint16(c.Registers.A))
		return 8
	})
	reg(0x0A, "LD A,(BC)", 8, func(c *CPU) int {
		c.Registers.A = uint8(c.mem(c.Registers.BC()).get())
		return 8
	})
	reg(0x1A, "LD A,(DE)", 8, func(c *CPU) int {
		c.Registers.A = uint8(c.mem(c.Registers.DE()).get())
		return 8
	})

	reg(0x22, "LD (HL+),A", 8, func(c *CPU) int {
		hl := c.Registers.HL()
		c.bus.Write(hl, c.Registers.A)
		c.Registers.SetHL(hl + 1)
		return 8
	})
	reg(0x32, "LD (HL-),A", 8, func(c *CPU) int {
		hl := c.Registers.HL()
		c.bus.Write(hl, c.Registers.A)
		c.Registers.SetHL(hl - 1)
		return 8
	})
	reg(0x2A, "LD A,(HL+)", 8, func(c *CPU) int {
		hl := c.Registers.HL()
		c.Registers.A = c.bus.Read(hl)
		c.Registers.SetHL(hl + 1)
		return 8
	})
	reg(0x3A, "LD A,(HL-)", 8, func(c *CPU) int {
		hl := c.Registers.HL()
		c.Registers.A = c.bus.Read(hl)
		c.Registers.SetHL(hl - 1)
		return 8
	})

	for i, name := range []string{"B", "D", "H"} {
		i := uint8(i)
		opcode := uint16(0x04) | uint16(i)<<4
		reg(opcode, "INC "+name, 4, func(c *CPU) int { c.inc8(c.highRegByPairIndex(i)); return 4 })
		opcode = uint16(0x05) | uint16(i)<<4
		reg(opcode, "DEC "+name, 4, func(c *CPU) int { c.dec8(c.highRegByPairIndex(i)); return 4 })
		opcode = uint16(0x06) | uint16(i)<<4
		reg(opcode, "LD "+name+",n", 8, func(c *CPU) int {
			n := c.fetchByte()
			c.highRegByPairIndex(i).set(uint16(n))
			return 8
		})
	}
	for i, name := range []string{"C", "E", "L"} {
		i := uint8(i)
		opcode := uint16(0x0C) | uint16(i)<<4
		reg(opcode, "INC "+name, 4, func(c *CPU) int { c.inc8(c.lowRegByPairIndex(i)); return 4 })
		opcode = uint16(0x0D) | uint16(i)<<4
		reg(opcode, "DEC "+name, 4, func(c *CPU) int { c.dec8(c.lowRegByPairIndex(i)); return 4 })
		opcode = uint16(0x0E) | uint16(i)<<4
		reg(opcode, "LD "+name+",n", 8, func(c *CPU) int {
			n := c.fetchByte()
			c.lowRegByPairIndex(i).set(uint16(n))
			return 8
		})
	}

	reg(0x34, "INC (HL)", 12, func(c *CPU) int { c.inc8(c.memHL()); return 12 })
	reg(0x35, "DEC (HL)", 12, func(c *CPU) int { c.dec8(c.memHL()); return 12 })
	reg(0x36, "LD (HL),n", 12, func(c *CPU) int {
		n := c.fetchByte()
		c.memHL().set(uint16(n))
		return 12
	})

	reg(0x3C, "INC A", 4, func(c *CPU) int { c.inc8(c.regA()); return 4 })
	reg(0x3D, "DEC A", 4, func(c *CPU) int { c.dec8(c.regA()); return 4 })
	reg(0x3E, "LD A,n", 8, func(c *CPU) int { c.Registers.A = c.fetchByte(); return 8 })

	reg(0x07, "RLCA", 4, func(c *CPU) int { c.rlc(c.regA(), true); return 4 })
	reg(0x0F, "RRCA", 4, func(c *CPU) int { c.rrc(c.regA(), true); return 4 })
	reg(0x17, "RLA", 4, func(c *CPU) int { c.rl(c.regA(), true); return 4 })
	reg(0x1F, "RRA", 4, func(c *CPU) int { c.rr(c.regA(), true); return 4 })

	reg(0x08, "LD (nn),SP", 20, func(c *CPU) int {
		addr := c.fetchWord()
		sp := c.Registers.SP
		c.bus.Write(addr, uint8(sp&0xFF))
		c.bus.Write(addr+1, uint8(sp>>8))
		return 20
	})

	reg(0x27, "DAA", 4, func(c *CPU) int { c.daa(); return 4 })
	reg(0x2F, "CPL", 4, func(c *CPU) int { c.cpl(); return 4 })
	reg(0x37, "SCF", 4, func(c *CPU) int { c.scf(); return 4 })
	reg(0x3F, "CCF", 4, func(c *CPU) int { c.ccf(); return 4 })

	reg(0x18, "JR e", 12, func(c *CPU) int {
		e := int8(c.fetchByte())
		c.jr(e)
		return 12
	})
	condJR := []struct {
		opcode uint16
		name   string
		cond   condition
	}{
		{0x20, "NZ", condNZ},
		{0x28, "Z", condZ},
		{0x30, "NC", condNC},
		{0x38, "C", condC},
	}
	for _, jr := range condJR {
		jr := jr
		reg(jr.opcode, "JR "+jr.name+",e", 8, func(c *CPU) int {
			e := int8(c.fetchByte())
			if jr.cond(&c.Registers) {
				c.jr(e)
				return 12
			}
			return 8
		})
	}

	reg(0x76, "HALT", 4, func(c *CPU) int { c.halt(); return 4 })

	reg(0xC3, "JP nn", 16, func(c *CPU) int {
		addr := c.fetchWord()
		c.jp(addr)
		return 16
	})
	condJP := []struct {
		opcode uint16
		name   string
		cond   condition
	}{
		{0xC2, "NZ", condNZ},
		{0xCA, "Z", condZ},
		{0xD2, "NC", condNC},
		{0xDA, "C", condC},
	}
	for _, jp := range condJP {
		jp := jp
		reg(jp.opcode, "JP "+jp.name+",nn", 12, func(c *CPU) int {
			addr := c.fetchWord()
			if jp.cond(&c.Registers) {
				c.jp(addr)
				return 16
			}
			return 12
		})
	}
	reg(0xE9, "JP (HL)", 4, func(c *CPU) int { c.jp(c.Registers.HL()); return 4 })

	reg(0xCD, "CALL nn", 24, func(c *CPU) int {
		addr := c.fetchWord()
		c.call(addr)
		return 24
	})
	condCall := []struct {
		opcode uint16
		name   string
		cond   condition
	}{
		{0xC4, "NZ", condNZ},
		{0xCC, "Z", condZ},
		{0xD4, "NC", condNC},
		{0xDC, "C", condC},
	}
	for _, cl := range condCall {
		cl := cl
		reg(cl.opcode, "CALL "+cl.name+",nn", 12, func(c *CPU) int {
			addr := c.fetchWord()
			if cl.cond(&c.Registers) {
				c.call(addr)
				return 24
			}
			return 12
		})
	}

	reg(0xC9, "RET", 16, func(c *CPU) int { c.ret(); return 16 })
	reg(0xD9, "RETI", 16, func(c *CPU) int { c.reti(); return 16 })
	condRet := []struct {
		opcode uint16
		name   string
		cond   condition
	}{
		{0xC0, "NZ", condNZ},
		{0xC8, "Z", condZ},
		{0xD0, "NC", condNC},
		{0xD8, "C", condC},
	}
	for _, rt := range condRet {
		rt := rt
		reg(rt.opcode, "RET "+rt.name, 8, func(c *CPU) int {
			if rt.cond(&c.Registers) {
				c.ret()
				return 20
			}
			return 8
		})
	}

	for i, vector := range []uint16{0x00, 0x08, 0x10, 0x18, 0x20, 0x28, 0x30, 0x38} {
		opcode := uint16(0xC7) | uint16(i)<<3
		vector := vector
		reg(opcode, fmt.Sprintf("RST %02XH", vector), 16, func(c *CPU) int {
			c.rst(vector)
			return 16
		})
	}

	for i := uint8(0); i < 4; i++ {
		i := i
		opcode := uint16(0xC1) | uint16(i)<<4
		reg(opcode, "POP "+pushPopNames[i], 12, func(c *CPU) int {
			if i == 3 {
				c.popAF()
			} else {
				c.pushPopPair(i).set(c.pop())
			}
			return 12
		})
		opcode = uint16(0xC5) | uint16(i)<<4
		reg(opcode, "PUSH "+pushPopNames[i], 16, func(c *CPU) int {
			c.push(c.pushPopPair(i).get())
			return 16
		})
	}

	reg(0xE0, "LDH (n),A", 12, func(c *CPU) int {
		n := c.fetchByte()
		c.bus.Write(0xFF00+uint16(n), c.Registers.A)
		return 12
	})
	reg(0xF0, "LDH A,(n)", 12, func(c *CPU) int {
		n := c.fetchByte()
		c.Registers.A = c.bus.Read(0xFF00 + uint16(n))
		return 12
	})
	reg(0xE2, "LD (C),A", 8, func(c *CPU) int {
		c.bus.Write(0xFF00+uint16(c.Registers.C), c.Registers.A)
		return 8
	})
	reg(0xF2, "LD A,(C)", 8, func(c *CPU) int {
		c.Registers.A = c.bus.Read(0xFF00 + uint16(c.Registers.C))
		return 8
	})
	reg(0xEA, "LD (nn),A", 16, func(c *CPU) int {
		addr := c.fetchWord()
		c.bus.Write(addr, c.Registers.A)
		return 16
	})
	reg(0xFA, "LD A,(nn)", 16, func(c *CPU) int {
		addr := c.fetchWord()
		c.Registers.A = c.bus.Read(addr)
		return 16
	})

	reg(0xE8, "ADD SP,e8", 16, func(c *CPU) int {
		e := int8(c.fetchByte())
		c.Registers.SP = c.addSPSigned(e)
		return 16
	})
	reg(0xF8, "LD HL,SP+e8", 12, func(c *CPU) int {
		e := int8(c.fetchByte())
		c.Registers.SetHL(c.addSPSigned(e))
		return 12
	})
	reg(0xF9, "LD SP,HL", 8, func(c *CPU) int {
		c.Registers.SP = c.Registers.HL()
		return 8
	})

	reg(0xF3, "DI", 4, func(c *CPU) int { c.di(); return 4 })
	reg(0xFB, "EI", 4, func(c *CPU) int { c.ei(); return 4 })

	// 0xD3, 0xDB, 0xDD, 0xE3, 0xE4, 0xEB, 0xEC, 0xED, 0xF4, 0xFC, 0xFD are
	// officially unused and intentionally absent from the table; the
	// decode step treats any missing key as a decode error.
}
