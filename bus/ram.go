// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bus provides Bus implementations for the cpu package: a flat
// 64K RAM array, and a small memory-mapped IO bus that routes reads and
// writes through registered device windows.
package bus

// RAM is a flat 64K address space with no IO side effects, satisfying
// cpu.Bus. It's the simplest possible collaborator for the CPU: every
// address behaves like ordinary memory.
type RAM struct {
	mem [65536]byte
}

// NewRAM creates a zeroed 64K RAM.
func NewRAM() *RAM {
	return &RAM{}
}

// Read returns the byte at addr.
func (r *RAM) Read(addr uint16) byte {
	return r.mem[addr]
}

// Write stores v at addr.
func (r *RAM) Write(addr uint16, v byte) {
	r.mem[addr] = v
}

// Load copies data into RAM starting at addr, useful for installing a
// program or a reset/interrupt vector table before running the CPU.
func (r *RAM) Load(addr uint16, data []byte) {
	copy(r.mem[int(addr):], data)
}

// Dump copies n bytes starting at addr into a new slice.
func (r *RAM) Dump(addr uint16, n int) []byte {
	out := make([]byte, n)
	copy(out, r.mem[int(addr):])
	return out
}

// LoadVector writes a little-endian 16-bit vector at addr, the low byte
// first. It's a convenience for setting up the reset/IRQ/NMI vectors in
// tests without hand-splitting the address into two Load calls.
func (r *RAM) LoadVector(addr uint16, target uint16) {
	r.mem[addr] = byte(target)
	r.mem[addr+1] = byte(target >> 8)
}
