// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

// Mode identifies one of the 6502's addressing modes.
type Mode byte

// All addressing modes this core supports.
const (
	IMP Mode = iota // Implied
	ACC             // Accumulator
	IMM             // Immediate
	ZPG             // Zero Page
	ZPX             // Zero Page,X
	ZPY             // Zero Page,Y
	REL             // Relative
	ABS             // Absolute
	ABX             // Absolute,X
	ABY             // Absolute,Y
	IND             // (Indirect)
	IDX             // (Indirect,X)
	IDY             // (Indirect),Y
)

// OperandBytes returns the number of operand bytes that follow the opcode
// for the given mode.
func (m Mode) OperandBytes() byte {
	switch m {
	case IMP, ACC:
		return 0
	case IMM, ZPG, ZPX, ZPY, REL, IDX, IDY:
		return 1
	case ABS, ABX, ABY, IND:
		return 2
	default:
		panic("cpu: invalid addressing mode")
	}
}

// Category groups mnemonics by the shape of side effect they produce, per
// the dispatch rules in Step.
type Category byte

const (
	// Command instructions take no addressed operand: flag twiddling,
	// register transfers, stack pushes/pops of registers, BRK/RTI/RTS.
	Command Category = iota
	// Branch instructions read a signed displacement and conditionally
	// adjust PC.
	Branch
	// Argument instructions read a value (immediate or from memory) and
	// combine it with a register, without writing memory back.
	Argument
	// MemoryWrite instructions compute an effective address and either
	// jump to it, read-modify-write the byte there (INC/DEC), or store a
	// register's value there.
	MemoryWrite
	// AccumulatorWrite instructions read a byte from A or memory,
	// transform it, and write the result back to the same place.
	AccumulatorWrite
)

// opcodeEntry is one row of the 256-entry decode table.
type opcodeEntry struct {
	mnemonic string
	mode     Mode
	cycles   byte
}

// categories maps every legal mnemonic to its semantic category.
var categories = map[string]Category{
	"CLC": Command, "CLD": Command, "CLI": Command, "CLV": Command,
	"SEC": Command, "SED": Command, "SEI": Command,
	"DEX": Command, "DEY": Command, "INX": Command, "INY": Command,
	"TAX": Command, "TAY": Command, "TXA": Command, "TYA": Command,
	"TSX": Command, "TXS": Command, "NOP": Command,
	"PHA": Command, "PHP": Command, "PLA": Command, "PLP": Command,
	"BRK": Command, "RTI": Command, "RTS": Command,

	"BCC": Branch, "BCS": Branch, "BEQ": Branch, "BNE": Branch,
	"BPL": Branch, "BMI": Branch, "BVC": Branch, "BVS": Branch,

	"ADC": Argument, "SBC": Argument,
	"AND": Argument, "EOR": Argument, "ORA": Argument,
	"BIT": Argument,
	"CMP": Argument, "CPX": Argument, "CPY": Argument,
	"LDA": Argument, "LDX": Argument, "LDY": Argument,

	"JMP": MemoryWrite, "JSR": MemoryWrite,
	"INC": MemoryWrite, "DEC": MemoryWrite,
	"STA": MemoryWrite, "STX": MemoryWrite, "STY": MemoryWrite,

	"ASL": AccumulatorWrite, "LSR": AccumulatorWrite,
	"ROL": AccumulatorWrite, "ROR": AccumulatorWrite,
}

// categoryOf looks up the category for a mnemonic. Every entry in
// opcodeTable must have a corresponding category; a miss indicates a
// decode-table inconsistency.
func categoryOf(mnemonic string) Category {
	c, ok := categories[mnemonic]
	if !ok {
		panic("cpu: mnemonic " + mnemonic + " has no assigned category")
	}
	return c
}

// opcodeTable is the sparse-by-convention 256-entry table: entries with an
// empty mnemonic denote unofficial/illegal opcodes. Cycle counts and
// addressing modes match the documented NMOS 6502.
var opcodeTable = buildOpcodeTable()

func buildOpcodeTable() [256]opcodeEntry {
	var t [256]opcodeEntry

	add := func(opcode byte, mnemonic string, mode Mode, cycles byte) {
		if t[opcode].mnemonic != "" {
			panic("cpu: duplicate opcode assignment")
		}
		t[opcode] = opcodeEntry{mnemonic: mnemonic, mode: mode, cycles: cycles}
	}

	add(0xa9, "LDA", IMM, 2)
	add(0xa5, "LDA", ZPG, 3)
	add(0xb5, "LDA", ZPX, 4)
	add(0xad, "LDA", ABS, 4)
	add(0xbd, "LDA", ABX, 4)
	add(0xb9, "LDA", ABY, 4)
	add(0xa1, "LDA", IDX, 6)
	add(0xb1, "LDA", IDY, 5)

	add(0xa2, "LDX", IMM, 2)
	add(0xa6, "LDX", ZPG, 3)
	add(0xb6, "LDX", ZPY, 4)
	add(0xae, "LDX", ABS, 4)
	add(0xbe, "LDX", ABY, 4)

	add(0xa0, "LDY", IMM, 2)
	add(0xa4, "LDY", ZPG, 3)
	add(0xb4, "LDY", ZPX, 4)
	add(0xac, "LDY", ABS, 4)
	add(0xbc, "LDY", ABX, 4)

	add(0x85, "STA", ZPG, 3)
	add(0x95, "STA", ZPX, 4)
	add(0x8d, "STA", ABS, 4)
	add(0x9d, "STA", ABX, 5)
	add(0x99, "STA", ABY, 5)
	add(0x81, "STA", IDX, 6)
	add(0x91, "STA", IDY, 6)

	add(0x86, "STX", ZPG, 3)
	add(0x96, "STX", ZPY, 4)
	add(0x8e, "STX", ABS, 4)

	add(0x84, "STY", ZPG, 3)
	add(0x94, "STY", ZPX, 4)
	add(0x8c, "STY", ABS, 4)

	add(0x69, "ADC", IMM, 2)
	add(0x65, "ADC", ZPG, 3)
	add(0x75, "ADC", ZPX, 4)
	add(0x6d, "ADC", ABS, 4)
	add(0x7d, "ADC", ABX, 4)
	add(0x79, "ADC", ABY, 4)
	add(0x61, "ADC", IDX, 6)
	add(0x71, "ADC", IDY, 5)

	add(0xe9, "SBC", IMM, 2)
	add(0xe5, "SBC", ZPG, 3)
	add(0xf5, "SBC", ZPX, 4)
	add(0xed, "SBC", ABS, 4)
	add(0xfd, "SBC", ABX, 4)
	add(0xf9, "SBC", ABY, 4)
	add(0xe1, "SBC", IDX, 6)
	add(0xf1, "SBC", IDY, 5)

	add(0xc9, "CMP", IMM, 2)
	add(0xc5, "CMP", ZPG, 3)
	add(0xd5, "CMP", ZPX, 4)
	add(0xcd, "CMP", ABS, 4)
	add(0xdd, "CMP", ABX, 4)
	add(0xd9, "CMP", ABY, 4)
	add(0xc1, "CMP", IDX, 6)
	add(0xd1, "CMP", IDY, 5)

	add(0xe0, "CPX", IMM, 2)
	add(0xe4, "CPX", ZPG, 3)
	add(0xec, "CPX", ABS, 4)

	add(0xc0, "CPY", IMM, 2)
	add(0xc4, "CPY", ZPG, 3)
	add(0xcc, "CPY", ABS, 4)

	add(0x24, "BIT", ZPG, 3)
	add(0x2c, "BIT", ABS, 4)

	add(0x18, "CLC", IMP, 2)
	add(0x38, "SEC", IMP, 2)
	add(0x58, "CLI", IMP, 2)
	add(0x78, "SEI", IMP, 2)
	add(0xd8, "CLD", IMP, 2)
	add(0xf8, "SED", IMP, 2)
	add(0xb8, "CLV", IMP, 2)

	add(0x90, "BCC", REL, 2)
	add(0xb0, "BCS", REL, 2)
	add(0xf0, "BEQ", REL, 2)
	add(0xd0, "BNE", REL, 2)
	add(0x30, "BMI", REL, 2)
	add(0x10, "BPL", REL, 2)
	add(0x50, "BVC", REL, 2)
	add(0x70, "BVS", REL, 2)

	add(0x00, "BRK", IMP, 7)

	add(0x29, "AND", IMM, 2)
	add(0x25, "AND", ZPG, 3)
	add(0x35, "AND", ZPX, 4)
	add(0x2d, "AND", ABS, 4)
	add(0x3d, "AND", ABX, 4)
	add(0x39, "AND", ABY, 4)
	add(0x21, "AND", IDX, 6)
	add(0x31, "AND", IDY, 5)

	add(0x09, "ORA", IMM, 2)
	add(0x05, "ORA", ZPG, 3)
	add(0x15, "ORA", ZPX, 4)
	add(0x0d, "ORA", ABS, 4)
	add(0x1d, "ORA", ABX, 4)
	add(0x19, "ORA", ABY, 4)
	add(0x01, "ORA", IDX, 6)
	add(0x11, "ORA", IDY, 5)

	add(0x49, "EOR", IMM, 2)
	add(0x45, "EOR", ZPG, 3)
	add(0x55, "EOR", ZPX, 4)
	add(0x4d, "EOR", ABS, 4)
	add(0x5d, "EOR", ABX, 4)
	add(0x59, "EOR", ABY, 4)
	add(0x41, "EOR", IDX, 6)
	add(0x51, "EOR", IDY, 5)

	add(0xe6, "INC", ZPG, 5)
	add(0xf6, "INC", ZPX, 6)
	add(0xee, "INC", ABS, 6)
	add(0xfe, "INC", ABX, 7)

	add(0xc6, "DEC", ZPG, 5)
	add(0xd6, "DEC", ZPX, 6)
	add(0xce, "DEC", ABS, 6)
	add(0xde, "DEC", ABX, 7)

	add(0xe8, "INX", IMP, 2)
	add(0xc8, "INY", IMP, 2)
	add(0xca, "DEX", IMP, 2)
	add(0x88, "DEY", IMP, 2)

	add(0x4c, "JMP", ABS, 3)
	add(0x6c, "JMP", IND, 5)

	add(0x20, "JSR", ABS, 6)
	add(0x60, "RTS", IMP, 6)
	add(0x40, "RTI", IMP, 6)

	add(0xea, "NOP", IMP, 2)

	add(0xaa, "TAX", IMP, 2)
	add(0x8a, "TXA", IMP, 2)
	add(0xa8, "TAY", IMP, 2)
	add(0x98, "TYA", IMP, 2)
	add(0x9a, "TXS", IMP, 2)
	add(0xba, "TSX", IMP, 2)

	add(0x48, "PHA", IMP, 3)
	add(0x68, "PLA", IMP, 4)
	add(0x08, "PHP", IMP, 3)
	add(0x28, "PLP", IMP, 4)

	add(0x0a, "ASL", ACC, 2)
	add(0x06, "ASL", ZPG, 5)
	add(0x16, "ASL", ZPX, 6)
	add(0x0e, "ASL", ABS, 6)
	add(0x1e, "ASL", ABX, 7)

	add(0x4a, "LSR", ACC, 2)
	add(0x46, "LSR", ZPG, 5)
	add(0x56, "LSR", ZPX, 6)
	add(0x4e, "LSR", ABS, 6)
	add(0x5e, "LSR", ABX, 7)

	add(0x2a, "ROL", ACC, 2)
	add(0x26, "ROL", ZPG, 5)
	add(0x36, "ROL", ZPX, 6)
	add(0x2e, "ROL", ABS, 6)
	add(0x3e, "ROL", ABX, 7)

	add(0x6a, "ROR", ACC, 2)
	add(0x66, "ROR", ZPG, 5)
	add(0x76, "ROR", ZPX, 6)
	add(0x6e, "ROR", ABS, 6)
	add(0x7e, "ROR", ABX, 7)

	for opcode, entry := range t {
		if entry.mnemonic != "" {
			categoryOf(entry.mnemonic) // panics on a missing category
			_ = opcode
		}
	}

	return t
}
