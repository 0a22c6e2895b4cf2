package cpu

// operand is the uniform read/write handle instruction handlers use instead
// of knowing whether they're touching a register, a register pair, an
// immediate, or a memory cell. Grounded on original_source/operand.hpp's
// operand/operand_value/operand_reference/operand_address hierarchy, but
// expressed as a tagged set of small Go values rather than virtual dispatch
// (spec.md §9: "the polymorphism is compile-time").
//
// Handles are built fresh per instruction from the CPU they close over and
// never outlive the handler that built them.
type operand interface {
	get() uint16
	set(v uint16)
}

// immediate is a read-only byte or word value baked in at decode/fetch
// time. Writes are silently discarded.
type immediate struct {
	value uint16
}

func (o immediate) get() uint16  { return o.value }
func (o immediate) set(uint16)   {}

// regOperand reads/writes one 8-bit register.
type regOperand struct {
	ptr *uint8
}

func (o regOperand) get() uint16 { return uint16(*o.ptr) }
func (o regOperand) set(v uint16) { *o.ptr = uint8(v) }

// pairOperand reads/writes a 16-bit register pair (or SP), via the owning
// CPU's accessor methods so AF's low-nibble masking stays in one place.
type pairOperand struct {
	getFn func() uint16
	setFn func(uint16)
}

func (o pairOperand) get() uint16  { return o.getFn() }
func (o pairOperand) set(v uint16) { o.setFn(v) }

// memOperand reads/writes one byte through the bus at a fixed address.
type memOperand struct {
	bus     Bus
	address uint16
}

func (o memOperand) get() uint16  { return uint16(o.bus.Read(o.address)) }
func (o memOperand) set(v uint16) { o.bus.Write(o.address, uint8(v)) }

// --- constructors, all methods on *CPU so they can close over its state ---

func (c *CPU) regA() operand { return regOperand{&c.Registers.A} }
func (c *CPU) regB() operand { return regOperand{&c.Registers.B} }
func (c *CPU) regC() operand { return regOperand{&c.Registers.C} }
func (c *CPU) regD() operand { return regOperand{&c.Registers.D} }
func (c *CPU) regE() operand { return regOperand{&c.Registers.E} }
func (c *CPU) regH() operand { return regOperand{&c.Registers.H} }
func (c *CPU) regL() operand { return regOperand{&c.Registers.L} }
func (c *CPU) regF() operand { return regOperand{&c.Registers.F} }

func (c *CPU) pairBC() operand { return pairOperand{c.Registers.BC, c.Registers.SetBC} }
func (c *CPU) pairDE() operand { return pairOperand{c.Registers.DE, c.Registers.SetDE} }
func (c *CPU) pairHL() operand { return pairOperand{c.Registers.HL, c.Registers.SetHL} }
func (c *CPU) pairAF() operand { return pairOperand{c.Registers.AF, c.Registers.SetAF} }
func (c *CPU) pairSP() operand {
	return pairOperand{
		getFn: func() uint16 { return c.Registers.SP },
		setFn: func(v uint16) { c.Registers.SP = v },
	}
}

func (c *CPU) mem(address uint16) operand { return memOperand{c.bus, address} }
func (c *CPU) memHL() operand             { return c.mem(c.Registers.HL()) }

func immByte(v uint8) operand  { return immediate{uint16(v)} }
func immWord(v uint16) operand { return immediate{v} }

// highRegByPairIndex/lowRegByPairIndex select B/C, D/E, or H/L by the same
// 0=BC,1=DE,2=HL index used for the 16-bit-pair regular blocks, so the
// irregular per-register INC/DEC/LD-immediate opcodes can share one loop.
func (c *CPU) highRegByPairIndex(i uint8) operand {
	switch i {
	case 0:
		return c.regB()
	case 1:
		return c.regD()
	default:
		return c.regH()
	}
}

func (c *CPU) lowRegByPairIndex(i uint8) operand {
	switch i {
	case 0:
		return c.regC()
	case 1:
		return c.regE()
	default:
		return c.regL()
	}
}

// reg8 is the index space used by the regular blocks of the main opcode
// table (0x40-0xBF) and the entirety of the CB table: 0=B,1=C,2=D,3=E,4=H,
// 5=L,6=(HL),7=A.
func (c *CPU) reg8(index uint8) operand {
	switch index & 0x07 {
	case 0:
		return c.regB()
	case 1:
		return c.regC()
	case 2:
		return c.regD()
	case 3:
		return c.regE()
	case 4:
		return c.regH()
	case 5:
		return c.regL()
	case 6:
		return c.memHL()
	default:
		return c.regA()
	}
}
