// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

// applyArgument executes an instruction that reads a value (immediate or
// from memory) and combines it with a register, without writing memory
// back. Decimal-mode arithmetic is out of scope; ADC/SBC always operate
// on binary values.
func (cpu *CPU) applyArgument(mnemonic string, m byte) {
	switch mnemonic {
	case "ADC":
		cpu.adc(m)
	case "SBC":
		cpu.sbc(m)
	case "AND":
		cpu.Reg.A &= m
		cpu.Reg.P.setNZ(cpu.Reg.A)
	case "EOR":
		cpu.Reg.A ^= m
		cpu.Reg.P.setNZ(cpu.Reg.A)
	case "ORA":
		cpu.Reg.A |= m
		cpu.Reg.P.setNZ(cpu.Reg.A)
	case "BIT":
		cpu.Reg.P.Set(FlagZero, cpu.Reg.A&m == 0)
		cpu.Reg.P.Set(FlagNegative, getBit(m, 7))
		cpu.Reg.P.Set(FlagOverflow, getBit(m, 6))
	case "CMP":
		cpu.compare(cpu.Reg.A, m)
	case "CPX":
		cpu.compare(cpu.Reg.X, m)
	case "CPY":
		cpu.compare(cpu.Reg.Y, m)
	case "LDA":
		cpu.Reg.A = m
		cpu.Reg.P.setNZ(cpu.Reg.A)
	case "LDX":
		cpu.Reg.X = m
		cpu.Reg.P.setNZ(cpu.Reg.X)
	case "LDY":
		cpu.Reg.Y = m
		cpu.Reg.P.setNZ(cpu.Reg.Y)
	default:
		panic("cpu: unhandled Argument mnemonic " + mnemonic)
	}
}

// adc adds m and the carry flag to A, setting C, V, N and Z.
func (cpu *CPU) adc(m byte) {
	a := uint16(cpu.Reg.A)
	add := uint16(m)
	carry := uint16(0)
	if cpu.Reg.P.Has(FlagCarry) {
		carry = 1
	}

	sum := a + add + carry
	cpu.Reg.P.Set(FlagCarry, sum > 0xff)
	cpu.Reg.P.Set(FlagOverflow, (a^sum)&(add^sum)&0x80 != 0)

	cpu.Reg.A = byte(sum)
	cpu.Reg.P.setNZ(cpu.Reg.A)
}

// sbc subtracts m and the borrow (1-C) from A, setting C, V, N and Z. C
// set means no borrow occurred, matching hardware.
func (cpu *CPU) sbc(m byte) {
	a := uint16(cpu.Reg.A)
	sub := uint16(m)
	borrow := uint16(1)
	if cpu.Reg.P.Has(FlagCarry) {
		borrow = 0
	}

	diff := a - sub - borrow
	cpu.Reg.P.Set(FlagCarry, diff <= 0xff)
	cpu.Reg.P.Set(FlagOverflow, (a^sub)&(a^diff)&0x80 != 0)

	cpu.Reg.A = byte(diff)
	cpu.Reg.P.setNZ(cpu.Reg.A)
}

// compare implements CMP/CPX/CPY: subtract m from reg without storing the
// result, setting C, N and Z from the (unsigned) comparison.
func (cpu *CPU) compare(reg, m byte) {
	cpu.Reg.P.Set(FlagCarry, reg >= m)
	cpu.Reg.P.setNZ(reg - m)
}
