// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

// applyCommand executes an implied-addressing instruction: flag
// twiddling, register transfers, stack pushes/pops of registers, and the
// three control-flow instructions that don't fit the other categories
// (BRK, RTI, RTS).
func (cpu *CPU) applyCommand(mnemonic string) {
	switch mnemonic {
	case "CLC":
		cpu.Reg.P.Set(FlagCarry, false)
	case "CLD":
		cpu.Reg.P.Set(FlagDecimal, false)
	case "CLI":
		cpu.Reg.P.Set(FlagInterrupt, false)
	case "CLV":
		cpu.Reg.P.Set(FlagOverflow, false)
	case "SEC":
		cpu.Reg.P.Set(FlagCarry, true)
	case "SED":
		cpu.Reg.P.Set(FlagDecimal, true)
	case "SEI":
		cpu.Reg.P.Set(FlagInterrupt, true)

	case "DEX":
		cpu.Reg.X--
		cpu.Reg.P.setNZ(cpu.Reg.X)
	case "DEY":
		cpu.Reg.Y--
		cpu.Reg.P.setNZ(cpu.Reg.Y)
	case "INX":
		cpu.Reg.X++
		cpu.Reg.P.setNZ(cpu.Reg.X)
	case "INY":
		cpu.Reg.Y++
		cpu.Reg.P.setNZ(cpu.Reg.Y)

	case "TAX":
		cpu.Reg.X = cpu.Reg.A
		cpu.Reg.P.setNZ(cpu.Reg.X)
	case "TAY":
		cpu.Reg.Y = cpu.Reg.A
		cpu.Reg.P.setNZ(cpu.Reg.Y)
	case "TXA":
		cpu.Reg.A = cpu.Reg.X
		cpu.Reg.P.setNZ(cpu.Reg.A)
	case "TYA":
		cpu.Reg.A = cpu.Reg.Y
		cpu.Reg.P.setNZ(cpu.Reg.A)
	case "TSX":
		cpu.Reg.X = cpu.Reg.S
		cpu.Reg.P.setNZ(cpu.Reg.X)
	case "TXS":
		cpu.Reg.S = cpu.Reg.X // flags unchanged

	case "NOP":
		// no effect

	case "PHA":
		cpu.push(cpu.Reg.A)
	case "PHP":
		cpu.push(cpu.Reg.P.Byte() | byte(FlagBreak))
	case "PLA":
		cpu.Reg.A = cpu.pop()
		cpu.Reg.P.setNZ(cpu.Reg.A)
	case "PLP":
		cpu.Reg.P = FlagsFromByte(cpu.pop())

	case "BRK":
		cpu.Reg.PC++
		cpu.signalInterrupt(true, VectorBRK)

	case "RTI":
		cpu.Reg.P = FlagsFromByte(cpu.pop())
		cpu.Reg.PC = cpu.popWord()

	case "RTS":
		cpu.Reg.PC = cpu.popWord() + 1

	default:
		panic("cpu: unhandled Command mnemonic " + mnemonic)
	}
}
