// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

// applyBranch evaluates a branch's condition and, if it holds, adjusts PC
// by the sign-extended displacement. PC at this point already points at
// the instruction following the branch, per the dispatch loop's normal
// fetch/advance sequence.
func (cpu *CPU) applyBranch(mnemonic string, displacement byte) {
	var taken bool
	switch mnemonic {
	case "BCC":
		taken = !cpu.Reg.P.Has(FlagCarry)
	case "BCS":
		taken = cpu.Reg.P.Has(FlagCarry)
	case "BNE":
		taken = !cpu.Reg.P.Has(FlagZero)
	case "BEQ":
		taken = cpu.Reg.P.Has(FlagZero)
	case "BPL":
		taken = !cpu.Reg.P.Has(FlagNegative)
	case "BMI":
		taken = cpu.Reg.P.Has(FlagNegative)
	case "BVC":
		taken = !cpu.Reg.P.Has(FlagOverflow)
	case "BVS":
		taken = cpu.Reg.P.Has(FlagOverflow)
	default:
		panic("cpu: unhandled Branch mnemonic " + mnemonic)
	}

	if !taken {
		return
	}

	if displacement < 0x80 {
		cpu.Reg.PC += uint16(displacement)
	} else {
		cpu.Reg.PC -= 0x100 - uint16(displacement)
	}
}
