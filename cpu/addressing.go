// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

// operand is the result of resolving an addressing mode: nothing (mode
// IMP), an immediate value (mode IMM), the accumulator itself (mode ACC),
// a signed branch displacement (mode REL), or an effective 16-bit address
// (every other mode).
type operand struct {
	mode  Mode
	value byte   // meaningful for IMM and REL
	addr  uint16 // meaningful for every mode but IMP, IMM, ACC and REL
}

// operandWord turns a 1- or 2-byte little-endian operand slice into an
// address. A single byte is treated as a zero-page address.
func operandWord(b []byte) uint16 {
	switch len(b) {
	case 1:
		return uint16(b[0])
	case 2:
		return uint16(b[0]) | uint16(b[1])<<8
	default:
		return 0
	}
}

// offsetZeroPage adds offset to a zero-page address, wrapping within the
// zero page (8-bit wrap) rather than crossing into page 1.
func offsetZeroPage(addr uint16, offset byte) uint16 {
	return (addr + uint16(offset)) & 0xff
}

// offsetAddress adds offset to a full 16-bit address and reports whether
// the addition crossed a page boundary.
func offsetAddress(addr uint16, offset byte) (result uint16, pageCrossed bool) {
	result = addr + uint16(offset)
	pageCrossed = (result & 0xff00) != (addr & 0xff00)
	return result, pageCrossed
}

// resolveOperand reads the operand bytes for mode (already fetched into
// raw by the caller) and computes the effective operand per §4.1: an
// immediate value, the accumulator marker, a branch displacement, or an
// effective address (including the indirect page-wrap bug for IND, IDX
// and IDY).
func (cpu *CPU) resolveOperand(mode Mode, raw []byte) operand {
	switch mode {
	case IMP:
		return operand{mode: mode}
	case ACC:
		return operand{mode: mode}
	case IMM:
		return operand{mode: mode, value: raw[0]}
	case REL:
		return operand{mode: mode, value: raw[0]}
	case ZPG:
		return operand{mode: mode, addr: operandWord(raw)}
	case ZPX:
		return operand{mode: mode, addr: offsetZeroPage(operandWord(raw), cpu.Reg.X)}
	case ZPY:
		return operand{mode: mode, addr: offsetZeroPage(operandWord(raw), cpu.Reg.Y)}
	case ABS:
		return operand{mode: mode, addr: operandWord(raw)}
	case ABX:
		addr, crossed := offsetAddress(operandWord(raw), cpu.Reg.X)
		cpu.pageCrossed = crossed
		return operand{mode: mode, addr: addr}
	case ABY:
		addr, crossed := offsetAddress(operandWord(raw), cpu.Reg.Y)
		cpu.pageCrossed = crossed
		return operand{mode: mode, addr: addr}
	case IND:
		// JMP (indirect) only: the address itself is the final target,
		// including the NMOS page-wrap bug.
		return operand{mode: mode, addr: loadWordWrapped(cpu.Bus, operandWord(raw))}
	case IDX:
		zpaddr := offsetZeroPage(operandWord(raw), cpu.Reg.X)
		return operand{mode: mode, addr: loadWordWrapped(cpu.Bus, zpaddr)}
	case IDY:
		zpaddr := operandWord(raw)
		addr, crossed := offsetAddress(loadWordWrapped(cpu.Bus, zpaddr), cpu.Reg.Y)
		cpu.pageCrossed = crossed
		return operand{mode: mode, addr: addr}
	default:
		panic("cpu: invalid addressing mode")
	}
}

// loadValue reads the byte an Argument or AccumulatorWrite instruction
// operates on, per the resolved operand.
func (cpu *CPU) loadValue(op operand) byte {
	switch op.mode {
	case IMM:
		return op.value
	case ACC:
		return cpu.Reg.A
	default:
		return cpu.Bus.Read(op.addr)
	}
}

// storeValue writes the result of an AccumulatorWrite instruction back to
// its source: the accumulator or the resolved effective address.
func (cpu *CPU) storeValue(op operand, v byte) {
	if op.mode == ACC {
		cpu.Reg.A = v
		return
	}
	cpu.storeByte(op.addr, v)
}
