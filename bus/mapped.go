// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bus

// Device is a memory-mapped peripheral: a small address window that
// intercepts reads and writes instead of behaving like ordinary RAM.
type Device interface {
	// ReadReg returns the byte for offset within the device's window
	// (offset is addr - the window's base address).
	ReadReg(offset uint16) byte

	// WriteReg stores v at offset within the device's window.
	WriteReg(offset uint16, v byte)
}

type window struct {
	base   uint16
	length uint16
	dev    Device
}

// MappedBus is a Bus backed by flat RAM, with zero or more address
// windows routed to Device implementors instead. It stands in for the
// "memory-mapped IO" collaborator the CPU core is written against but
// doesn't itself implement — any conforming Bus, RAM-only or otherwise,
// plugs into cpu.NewCPU without the CPU knowing the difference.
type MappedBus struct {
	ram     RAM
	windows []window
}

// NewMappedBus creates a MappedBus whose unmapped addresses behave like
// plain RAM.
func NewMappedBus() *MappedBus {
	return &MappedBus{}
}

// Map routes the address range [base, base+length) to dev. Overlapping
// windows are not detected; the first matching window found by Read/Write
// wins.
func (m *MappedBus) Map(base, length uint16, dev Device) {
	m.windows = append(m.windows, window{base: base, length: length, dev: dev})
}

func (m *MappedBus) find(addr uint16) (window, bool) {
	for _, w := range m.windows {
		if addr >= w.base && uint32(addr) < uint32(w.base)+uint32(w.length) {
			return w, true
		}
	}
	return window{}, false
}

// Read returns the byte at addr, routing through a mapped device if one
// owns that address.
func (m *MappedBus) Read(addr uint16) byte {
	if w, ok := m.find(addr); ok {
		return w.dev.ReadReg(addr - w.base)
	}
	return m.ram.Read(addr)
}

// Write stores v at addr, routing through a mapped device if one owns
// that address.
func (m *MappedBus) Write(addr uint16, v byte) {
	if w, ok := m.find(addr); ok {
		w.dev.WriteReg(addr-w.base, v)
		return
	}
	m.ram.Write(addr, v)
}

// LoadVector writes a little-endian 16-bit vector into the unmapped RAM
// backing this bus.
func (m *MappedBus) LoadVector(addr uint16, target uint16) {
	m.ram.LoadVector(addr, target)
}

// Load copies data into the unmapped RAM backing this bus, starting at
// addr.
func (m *MappedBus) Load(addr uint16, data []byte) {
	m.ram.Load(addr, data)
}

// FreeRunningCounter is an example Device: an 8-bit register that
// increments on every read, the way a hardware frame or scanline counter
// might. Writing to it resets the count to the written value. It exists
// to give MappedBus something concrete to route to.
type FreeRunningCounter struct {
	value byte
}

// ReadReg returns the current count, then increments it.
func (c *FreeRunningCounter) ReadReg(offset uint16) byte {
	v := c.value
	c.value++
	return v
}

// WriteReg sets the counter to v, ignoring offset (the device occupies a
// single-byte window).
func (c *FreeRunningCounter) WriteReg(offset uint16, v byte) {
	c.value = v
}
