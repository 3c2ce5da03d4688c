// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

// Registers holds the programmer-visible state of a 6502.
type Registers struct {
	A  byte   // accumulator
	X  byte   // index register X
	Y  byte   // index register Y
	S  byte   // stack pointer (low byte of $01xx)
	PC uint16 // program counter
	P  Flags  // processor status
}

// Init resets the registers to their power-on/RESET values. PC is left
// untouched; the caller loads it from the reset vector separately, since
// that requires bus access the register set doesn't have.
func (r *Registers) Init() {
	r.A = 0
	r.X = 0
	r.Y = 0
	r.S = 0xff
	r.P = FlagsFromByte(0)
}
