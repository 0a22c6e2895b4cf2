package cpu

// instruction is the decoded record the fetch step hands to execute: a
// display mnemonic, a handler, and the base T-state cost (spec.md §3). For
// conditional branches, Cycles is the not-taken cost; handlers that take
// the branch return the taken cost directly, fixing the source bug noted
// in spec.md §9 where only one cycle count was ever recorded.
type instruction struct {
	Mnemonic string
	Exec     func(c *CPU) int
	Cycles   int
}

// instructionTable is the combined 0x00xx/0xCBxx/0x1000 opcode map. Built
// once at package init from the regular-block generators plus the
// hand-registered irregular opcodes (spec.md §4.4, §9).
var instructionTable map[uint16]instruction

func init() {
	instructionTable = make(map[uint16]instruction, 512)
	for k, v := range buildMainTable() {
		instructionTable[k] = v
	}
	for k, v := range buildCBTable() {
		instructionTable[k] = v
	}
	instructionTable[0x1000] = instruction{
		Mnemonic: "STOP",
		Cycles:   4,
		Exec:     func(c *CPU) int { c.stop(); return 4 },
	}
}
