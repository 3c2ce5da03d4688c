// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cpu implements the instruction-set interpreter for an NMOS
// 6502: fetch/decode/execute, the register and flag model, the
// addressing-mode resolvers, and the reset/interrupt entry points.
package cpu

// BrkHandler is implemented by types that want to intercept a BRK
// instruction before it runs, e.g. to drop into an interactive monitor
// instead of jumping through the BRK/IRQ vector.
type BrkHandler interface {
	OnBrk(cpu *CPU)
}

// CPU is a single-threaded, non-reentrant 6502 instruction-set
// interpreter. All state mutation happens inside Step or one of the
// signal entry points (Reset, IRQ, NMI); nothing here is safe to call
// concurrently from multiple goroutines.
type CPU struct {
	Reg    Registers // programmer-visible register file
	Bus    Bus       // memory/IO the CPU reads and writes through
	Cycles uint64    // running total of cycles Step has reported
	LastPC uint16    // PC of the most recently fetched instruction

	// OnIllegalOpcode, if set, is called whenever Step fetches an opcode
	// with no entry in the decode table. This is diagnostic only; Step
	// still charges a nominal 1 cycle and continues.
	OnIllegalOpcode func(opcode byte, pc uint16)

	pageCrossed bool
	debugger    *Debugger
	brkHandler  BrkHandler
}

// NewCPU creates a CPU bound to bus. The registers start in their RESET
// state (A/X/Y zero, S=$FF, P=$20) with PC zero; call Reset to load PC
// from the reset vector before running code.
func NewCPU(bus Bus) *CPU {
	cpu := &CPU{Bus: bus}
	cpu.Reg.Init()
	return cpu
}

// AttachBrkHandler installs a handler that intercepts BRK instructions
// instead of letting them push state and jump through the BRK vector.
func (cpu *CPU) AttachBrkHandler(h BrkHandler) {
	cpu.brkHandler = h
}

// AttachDebugger attaches a Debugger, which will be notified of every PC
// update and data store so it can implement breakpoints.
func (cpu *CPU) AttachDebugger(d *Debugger) {
	cpu.debugger = d
}

// DetachDebugger detaches the currently attached debugger, if any.
func (cpu *CPU) DetachDebugger() {
	cpu.debugger = nil
}

// GetInstruction returns the decode-table entry the byte at addr would
// dispatch to, without executing anything.
func (cpu *CPU) GetInstruction(addr uint16) (mnemonic string, mode Mode, cycles byte, ok bool) {
	e := opcodeTable[cpu.Bus.Read(addr)]
	if e.mnemonic == "" {
		return "", 0, 0, false
	}
	return e.mnemonic, e.mode, e.cycles, true
}

// NextAddr returns the address of the instruction following the one at
// addr.
func (cpu *CPU) NextAddr(addr uint16) uint16 {
	opcode := cpu.Bus.Read(addr)
	e := opcodeTable[opcode]
	if e.mnemonic == "" {
		return addr + 1
	}
	return addr + 1 + uint16(e.mode.OperandBytes())
}

// storeByte writes v to addr, notifying an attached debugger's data
// breakpoints first.
func (cpu *CPU) storeByte(addr uint16, v byte) {
	if cpu.debugger != nil {
		cpu.debugger.onDataStore(cpu, addr, v)
	}
	cpu.Bus.Write(addr, v)
}

// Step fetches, decodes and executes a single instruction, then returns
// its base cycle count (§4.3). PC always points at the next opcode when
// Step returns.
func (cpu *CPU) Step() byte {
	pc := cpu.Reg.PC
	opcode := cpu.Bus.Read(pc)
	cpu.Reg.PC++

	entry := opcodeTable[opcode]
	if entry.mnemonic == "" {
		if cpu.OnIllegalOpcode != nil {
			cpu.OnIllegalOpcode(opcode, pc)
		}
		cpu.Cycles++
		return 1
	}

	cpu.LastPC = pc

	// A BRK handler, if installed, replaces normal BRK execution
	// entirely (e.g. to drop into a monitor instead of servicing the
	// software interrupt).
	if opcode == 0x00 && cpu.brkHandler != nil {
		cpu.brkHandler.OnBrk(cpu)
		cpu.Cycles += uint64(entry.cycles)
		return entry.cycles
	}

	n := entry.mode.OperandBytes()
	var raw [2]byte
	for i := byte(0); i < n; i++ {
		raw[i] = cpu.Bus.Read(cpu.Reg.PC)
		cpu.Reg.PC++
	}

	cpu.pageCrossed = false
	op := cpu.resolveOperand(entry.mode, raw[:n])

	switch categoryOf(entry.mnemonic) {
	case Command:
		cpu.applyCommand(entry.mnemonic)
	case Branch:
		cpu.applyBranch(entry.mnemonic, op.value)
	case Argument:
		cpu.applyArgument(entry.mnemonic, cpu.loadValue(op))
	case MemoryWrite:
		cpu.applyMemoryWrite(entry.mnemonic, op.addr)
	case AccumulatorWrite:
		m := cpu.loadValue(op)
		result := cpu.applyAccumulatorWrite(entry.mnemonic, m)
		cpu.storeValue(op, result)
	}

	if cpu.debugger != nil {
		cpu.debugger.onUpdatePC(cpu, cpu.Reg.PC)
	}

	cpu.Cycles += uint64(entry.cycles)
	return entry.cycles
}

// signalInterrupt implements the shared push-state-and-jump sequence for
// BRK and the IRQ/NMI signal entry points.
func (cpu *CPU) signalInterrupt(brk bool, vector uint16) {
	cpu.pushWord(cpu.Reg.PC)
	if brk {
		cpu.push(cpu.Reg.P.Byte() | byte(FlagBreak))
	} else {
		cpu.push(cpu.Reg.P.Byte() &^ byte(FlagBreak))
	}
	cpu.Reg.P.Set(FlagInterrupt, true)
	cpu.Reg.PC = loadWord(cpu.Bus, vector)
}

// Reset performs a power-on/RESET signal: registers return to their
// initial state and PC is loaded from the reset vector.
func (cpu *CPU) Reset() {
	cpu.Reg.Init()
	cpu.Reg.PC = loadWord(cpu.Bus, VectorReset)
}

// IRQ raises a maskable interrupt request. It has no effect if the
// interrupt-disable flag is set.
func (cpu *CPU) IRQ() {
	if cpu.Reg.P.Has(FlagInterrupt) {
		return
	}
	cpu.signalInterrupt(false, VectorIRQ)
}

// NMI raises a non-maskable interrupt. Unlike IRQ, it always fires.
func (cpu *CPU) NMI() {
	cpu.signalInterrupt(false, VectorNMI)
}
