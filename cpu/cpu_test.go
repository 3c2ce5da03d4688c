// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

import "testing"

// testRAM is a minimal cpu.Bus for tests: a flat 64K array, kept local to
// this package so the tests have no dependency on the bus package.
type testRAM struct {
	mem [65536]byte
}

func (r *testRAM) Read(addr uint16) byte     { return r.mem[addr] }
func (r *testRAM) Write(addr uint16, v byte) { r.mem[addr] = v }

func newTestCPU() (*CPU, *testRAM) {
	ram := &testRAM{}
	return NewCPU(ram), ram
}

func TestResetVector(t *testing.T) {
	c, ram := newTestCPU()
	ram.mem[0xfffc] = 0xad
	ram.mem[0xfffd] = 0xde
	c.Reset()

	if c.Reg.PC != 0xdead {
		t.Fatalf("PC = %#04x, want 0xdead", c.Reg.PC)
	}
	if c.Reg.S != 0xff {
		t.Fatalf("S = %#02x, want 0xff", c.Reg.S)
	}
	if c.Reg.A != 0 || c.Reg.X != 0 || c.Reg.Y != 0 {
		t.Fatalf("A/X/Y = %d/%d/%d, want 0/0/0", c.Reg.A, c.Reg.X, c.Reg.Y)
	}
	if c.Reg.P.Byte() != 0x20 {
		t.Fatalf("P = %#02x, want 0x20", c.Reg.P.Byte())
	}
}

func TestLDAImmediateSetsZero(t *testing.T) {
	c, ram := newTestCPU()
	ram.mem[0x0000] = 0xa9 // LDA #$00
	ram.mem[0x0001] = 0x00
	c.Reg.PC = 0x0000

	cycles := c.Step()

	if c.Reg.A != 0x00 {
		t.Fatalf("A = %#02x, want 0x00", c.Reg.A)
	}
	if !c.Reg.P.Has(FlagZero) {
		t.Fatal("Z not set")
	}
	if c.Reg.P.Has(FlagNegative) {
		t.Fatal("N unexpectedly set")
	}
	if c.Reg.PC != 0x0002 {
		t.Fatalf("PC = %#04x, want 0x0002", c.Reg.PC)
	}
	if cycles != 2 {
		t.Fatalf("cycles = %d, want 2", cycles)
	}
}

func TestLDAAllValues(t *testing.T) {
	for b := 0; b < 256; b++ {
		c, ram := newTestCPU()
		ram.mem[0x0000] = 0xa9
		ram.mem[0x0001] = byte(b)
		c.Reg.PC = 0x0000
		c.Step()

		if c.Reg.A != byte(b) {
			t.Fatalf("b=%#02x: A = %#02x", b, c.Reg.A)
		}
		wantZero := b == 0
		wantNeg := b >= 0x80
		if c.Reg.P.Has(FlagZero) != wantZero {
			t.Fatalf("b=%#02x: Z = %v, want %v", b, c.Reg.P.Has(FlagZero), wantZero)
		}
		if c.Reg.P.Has(FlagNegative) != wantNeg {
			t.Fatalf("b=%#02x: N = %v, want %v", b, c.Reg.P.Has(FlagNegative), wantNeg)
		}
	}
}

func TestADCNoOverflow(t *testing.T) {
	for a := 0; a <= 255; a++ {
		for m := 0; m <= 255; m++ {
			if a+m > 255 {
				continue
			}
			c, ram := newTestCPU()
			ram.mem[0x0000] = 0x69 // ADC #imm
			ram.mem[0x0001] = byte(m)
			c.Reg.PC = 0x0000
			c.Reg.A = byte(a)
			c.Reg.P.Set(FlagCarry, false)
			c.Step()

			if int(c.Reg.A) != a+m {
				t.Fatalf("a=%d m=%d: A = %d, want %d", a, m, c.Reg.A, a+m)
			}
			if c.Reg.P.Has(FlagCarry) {
				t.Fatalf("a=%d m=%d: C unexpectedly set", a, m)
			}
		}
	}
}

func TestADCCarryOut(t *testing.T) {
	c, ram := newTestCPU()
	ram.mem[0x0000] = 0x69
	ram.mem[0x0001] = 0x01
	c.Reg.PC = 0x0000
	c.Reg.A = 0xff
	c.Reg.P.Set(FlagCarry, false)
	c.Step()

	if c.Reg.A != 0x00 {
		t.Fatalf("A = %#02x, want 0x00", c.Reg.A)
	}
	if !c.Reg.P.Has(FlagCarry) {
		t.Fatal("C not set")
	}
	if !c.Reg.P.Has(FlagZero) {
		t.Fatal("Z not set")
	}
}

func TestADCOverflow(t *testing.T) {
	c, ram := newTestCPU()
	c.Reg.A = 0x50
	c.Reg.P.Set(FlagCarry, false)
	ram.mem[0x0000] = 0x69
	ram.mem[0x0001] = 0x50
	c.Reg.PC = 0x0000
	c.Step()

	if c.Reg.A != 0xa0 {
		t.Fatalf("A = %#02x, want 0xa0", c.Reg.A)
	}
	if !c.Reg.P.Has(FlagNegative) {
		t.Fatal("N not set")
	}
	if !c.Reg.P.Has(FlagOverflow) {
		t.Fatal("V not set")
	}
	if c.Reg.P.Has(FlagCarry) {
		t.Fatal("C unexpectedly set")
	}
	if c.Reg.P.Has(FlagZero) {
		t.Fatal("Z unexpectedly set")
	}
}

func TestADCOverflowProperty(t *testing.T) {
	for a := 0; a <= 255; a++ {
		for m := 0; m <= 255; m++ {
			c, ram := newTestCPU()
			ram.mem[0x0000] = 0x69
			ram.mem[0x0001] = byte(m)
			c.Reg.PC = 0x0000
			c.Reg.A = byte(a)
			c.Reg.P.Set(FlagCarry, false)
			c.Step()

			sameSignOperands := (a^m)&0x80 == 0
			signChanged := (byte(a)^c.Reg.A)&0x80 != 0
			want := sameSignOperands && signChanged
			if c.Reg.P.Has(FlagOverflow) != want {
				t.Fatalf("a=%#02x m=%#02x: V = %v, want %v", a, m, c.Reg.P.Has(FlagOverflow), want)
			}
		}
	}
}

func TestSBCOverflowProperty(t *testing.T) {
	for a := 0; a <= 255; a++ {
		for m := 0; m <= 255; m++ {
			c, ram := newTestCPU()
			ram.mem[0x0000] = 0xe9 // SBC #imm
			ram.mem[0x0001] = byte(m)
			c.Reg.PC = 0x0000
			c.Reg.A = byte(a)
			c.Reg.P.Set(FlagCarry, true) // no incoming borrow
			c.Step()

			differentSign := (a^m)&0x80 != 0
			resultDifferentSign := (byte(a)^c.Reg.A)&0x80 != 0
			want := differentSign && resultDifferentSign
			if c.Reg.P.Has(FlagOverflow) != want {
				t.Fatalf("a=%#02x m=%#02x: V = %v, want %v", a, m, c.Reg.P.Has(FlagOverflow), want)
			}
		}
	}
}

func TestPHAPLARoundTrip(t *testing.T) {
	for b := 0; b < 256; b++ {
		c, ram := newTestCPU()
		ram.mem[0x0000] = 0x48 // PHA
		ram.mem[0x0001] = 0x68 // PLA
		c.Reg.PC = 0x0000
		c.Reg.A = byte(b)
		c.Step()
		c.Reg.A = 0 // clobber to prove PLA restores it
		c.Step()

		if c.Reg.A != byte(b) {
			t.Fatalf("b=%#02x: A = %#02x after PLA", b, c.Reg.A)
		}
		wantZero := b == 0
		if c.Reg.P.Has(FlagZero) != wantZero {
			t.Fatalf("b=%#02x: Z = %v", b, c.Reg.P.Has(FlagZero))
		}
	}
}

func TestJSRRTS(t *testing.T) {
	c, ram := newTestCPU()
	ram.mem[0x0000] = 0x20 // JSR $0005
	ram.mem[0x0001] = 0x05
	ram.mem[0x0002] = 0x00
	ram.mem[0x0005] = 0x60 // RTS
	c.Reg.PC = 0x0000
	c.Reg.S = 0xff

	c.Step() // JSR
	if c.Reg.PC != 0x0005 {
		t.Fatalf("PC after JSR = %#04x, want 0x0005", c.Reg.PC)
	}
	c.Step() // RTS
	if c.Reg.PC != 0x0003 {
		t.Fatalf("PC after RTS = %#04x, want 0x0003", c.Reg.PC)
	}
	if c.Reg.S != 0xff {
		t.Fatalf("S after RTS = %#02x, want 0xff", c.Reg.S)
	}
}

func TestBranchTakenAndNotTaken(t *testing.T) {
	c, ram := newTestCPU()
	ram.mem[0x0000] = 0xf0 // BEQ +5
	ram.mem[0x0001] = 0x05
	c.Reg.PC = 0x0000
	c.Reg.P.Set(FlagZero, true)
	c.Step()
	if c.Reg.PC != 0x0007 {
		t.Fatalf("PC after taken branch = %#04x, want 0x0007", c.Reg.PC)
	}

	c2, ram2 := newTestCPU()
	ram2.mem[0x0000] = 0xf0
	ram2.mem[0x0001] = 0x05
	c2.Reg.PC = 0x0000
	c2.Reg.P.Set(FlagZero, false)
	c2.Step()
	if c2.Reg.PC != 0x0002 {
		t.Fatalf("PC after not-taken branch = %#04x, want 0x0002", c2.Reg.PC)
	}
}

func TestBranchBackward(t *testing.T) {
	c, ram := newTestCPU()
	ram.mem[0x0010] = 0xd0 // BNE -5
	ram.mem[0x0011] = 0xfb // -5
	c.Reg.PC = 0x0010
	c.Reg.P.Set(FlagZero, false)
	c.Step()
	if c.Reg.PC != 0x000d {
		t.Fatalf("PC = %#04x, want 0x000d", c.Reg.PC)
	}
}

func TestStackWraps(t *testing.T) {
	c, _ := newTestCPU()
	c.Reg.S = 0x00
	c.push(0x42)
	if c.Reg.S != 0xff {
		t.Fatalf("S after push at 0 = %#02x, want 0xff", c.Reg.S)
	}
	v := c.pop()
	if v != 0x42 {
		t.Fatalf("popped %#02x, want 0x42", v)
	}
	if c.Reg.S != 0x00 {
		t.Fatalf("S after pop = %#02x, want 0x00", c.Reg.S)
	}
}

func TestIndirectJMPPageWrapBug(t *testing.T) {
	c, ram := newTestCPU()
	ram.mem[0x10ff] = 0x34
	ram.mem[0x1000] = 0x12 // deliberately NOT at $1100
	ram.mem[0x1100] = 0x56
	ram.mem[0x0000] = 0x6c // JMP ($10FF)
	ram.mem[0x0001] = 0xff
	ram.mem[0x0002] = 0x10
	c.Reg.PC = 0x0000

	c.Step()

	if c.Reg.PC != 0x1234 {
		t.Fatalf("PC = %#04x, want 0x1234", c.Reg.PC)
	}
}

func TestINXLoop(t *testing.T) {
	c, ram := newTestCPU()
	ram.mem[0x0000] = 0xe8 // INX
	ram.mem[0x0001] = 0x4c // JMP $0000
	ram.mem[0x0002] = 0x00
	ram.mem[0x0003] = 0x00
	ram.mem[0xfffc] = 0x00
	ram.mem[0xfffd] = 0x00
	c.Reset()

	for i := 0; i < 5; i++ {
		c.Step() // INX
		c.Step() // JMP
	}

	if c.Reg.X != 5 {
		t.Fatalf("X = %d, want 5", c.Reg.X)
	}
	if c.Reg.PC != 0x0000 {
		t.Fatalf("PC = %#04x, want 0x0000", c.Reg.PC)
	}
}

func TestBRKPushesAndSetsBreak(t *testing.T) {
	c, ram := newTestCPU()
	ram.mem[0xfffe] = 0x00
	ram.mem[0xffff] = 0x90 // BRK vector -> $9000
	ram.mem[0x0200] = 0x00 // BRK
	c.Reg.PC = 0x0200
	c.Reg.S = 0xff

	c.Step()

	if c.Reg.PC != 0x9000 {
		t.Fatalf("PC = %#04x, want 0x9000", c.Reg.PC)
	}
	if !c.Reg.P.Has(FlagInterrupt) {
		t.Fatal("I not set after BRK")
	}
	pushedP := ram.mem[0x01fd]
	if pushedP&byte(FlagBreak) == 0 {
		t.Fatal("B not set in pushed status byte")
	}
	pushedPCLo := ram.mem[0x01fe]
	pushedPCHi := ram.mem[0x01ff]
	pushedPC := uint16(pushedPCLo) | uint16(pushedPCHi)<<8
	if pushedPC != 0x0202 {
		t.Fatalf("pushed PC = %#04x, want 0x0202", pushedPC)
	}
}

func TestIRQRespectsInterruptDisable(t *testing.T) {
	c, ram := newTestCPU()
	ram.mem[0xfffe] = 0x00
	ram.mem[0xffff] = 0x80
	c.Reg.PC = 0x1234
	c.Reg.P.Set(FlagInterrupt, true)

	c.IRQ()

	if c.Reg.PC != 0x1234 {
		t.Fatalf("PC changed to %#04x despite I set", c.Reg.PC)
	}
}

func TestNMIAlwaysFires(t *testing.T) {
	c, ram := newTestCPU()
	ram.mem[0xfffa] = 0x00
	ram.mem[0xfffb] = 0x80
	c.Reg.PC = 0x1234
	c.Reg.P.Set(FlagInterrupt, true)

	c.NMI()

	if c.Reg.PC != 0x8000 {
		t.Fatalf("PC = %#04x, want 0x8000", c.Reg.PC)
	}
}

func TestUnofficialOpcodeIsNonFatal(t *testing.T) {
	c, ram := newTestCPU()
	ram.mem[0x0000] = 0x02 // no legal decode
	c.Reg.PC = 0x0000

	var gotOpcode byte
	var gotPC uint16
	c.OnIllegalOpcode = func(opcode byte, pc uint16) {
		gotOpcode = opcode
		gotPC = pc
	}

	cycles := c.Step()

	if cycles != 1 {
		t.Fatalf("cycles = %d, want 1", cycles)
	}
	if c.Reg.PC != 0x0001 {
		t.Fatalf("PC = %#04x, want 0x0001", c.Reg.PC)
	}
	if gotOpcode != 0x02 || gotPC != 0x0000 {
		t.Fatalf("callback got (%#02x, %#04x), want (0x02, 0x0000)", gotOpcode, gotPC)
	}
}

func TestASLCarryFromShiftedBit(t *testing.T) {
	c, ram := newTestCPU()
	ram.mem[0x0000] = 0x0a // ASL A
	c.Reg.PC = 0x0000
	c.Reg.A = 0x81
	c.Step()

	if c.Reg.A != 0x02 {
		t.Fatalf("A = %#02x, want 0x02", c.Reg.A)
	}
	if !c.Reg.P.Has(FlagCarry) {
		t.Fatal("C not set from shifted-out bit 7")
	}
}

func TestLSRNeverSetsNegative(t *testing.T) {
	c, ram := newTestCPU()
	ram.mem[0x0000] = 0x4a // LSR A
	c.Reg.PC = 0x0000
	c.Reg.A = 0xff
	c.Step()

	if c.Reg.A != 0x7f {
		t.Fatalf("A = %#02x, want 0x7f", c.Reg.A)
	}
	if c.Reg.P.Has(FlagNegative) {
		t.Fatal("N unexpectedly set after LSR")
	}
	if !c.Reg.P.Has(FlagCarry) {
		t.Fatal("C not set from shifted-out bit 0")
	}
}

func TestRORCarryIn(t *testing.T) {
	c, ram := newTestCPU()
	ram.mem[0x0000] = 0x6a // ROR A
	c.Reg.PC = 0x0000
	c.Reg.A = 0x00
	c.Reg.P.Set(FlagCarry, true)
	c.Step()

	if c.Reg.A != 0x80 {
		t.Fatalf("A = %#02x, want 0x80", c.Reg.A)
	}
	if !c.Reg.P.Has(FlagNegative) {
		t.Fatal("N not set")
	}
	if c.Reg.P.Has(FlagCarry) {
		t.Fatal("C unexpectedly set")
	}
}

func TestBITUsesMemoryBitsNotAndResult(t *testing.T) {
	c, ram := newTestCPU()
	ram.mem[0x0000] = 0x24 // BIT $10
	ram.mem[0x0001] = 0x10
	ram.mem[0x0010] = 0xc0 // bits 7 and 6 set
	c.Reg.PC = 0x0000
	c.Reg.A = 0x00 // A AND M == 0, but N/V must still come from M

	c.Step()

	if !c.Reg.P.Has(FlagNegative) {
		t.Fatal("N not set from M bit 7")
	}
	if !c.Reg.P.Has(FlagOverflow) {
		t.Fatal("V not set from M bit 6")
	}
	if !c.Reg.P.Has(FlagZero) {
		t.Fatal("Z not set for A&M==0")
	}
}

func TestZeroPageXWraps(t *testing.T) {
	c, ram := newTestCPU()
	ram.mem[0x0000] = 0xb5 // LDA $80,X
	ram.mem[0x0001] = 0x80
	ram.mem[0x007f] = 0x99
	c.Reg.PC = 0x0000
	c.Reg.X = 0xff // 0x80+0xff wraps to 0x7f within the zero page

	c.Step()

	if c.Reg.A != 0x99 {
		t.Fatalf("A = %#02x, want 0x99", c.Reg.A)
	}
}

func TestIndirectXAndY(t *testing.T) {
	c, ram := newTestCPU()
	// IDX: LDA ($20,X), X=4 -> pointer at $24/$25 -> address $3000
	ram.mem[0x0000] = 0xa1
	ram.mem[0x0001] = 0x20
	ram.mem[0x0024] = 0x00
	ram.mem[0x0025] = 0x30
	ram.mem[0x3000] = 0x77
	c.Reg.PC = 0x0000
	c.Reg.X = 0x04
	c.Step()
	if c.Reg.A != 0x77 {
		t.Fatalf("IDX: A = %#02x, want 0x77", c.Reg.A)
	}

	// IDY: LDA ($30),Y -> pointer at $30/$31 -> base $4000, +Y(0x05)
	c2, ram2 := newTestCPU()
	ram2.mem[0x0000] = 0xb1
	ram2.mem[0x0001] = 0x30
	ram2.mem[0x0030] = 0x00
	ram2.mem[0x0031] = 0x40
	ram2.mem[0x4005] = 0x66
	c2.Reg.PC = 0x0000
	c2.Reg.Y = 0x05
	c2.Step()
	if c2.Reg.A != 0x66 {
		t.Fatalf("IDY: A = %#02x, want 0x66", c2.Reg.A)
	}
}

func TestCMPFlags(t *testing.T) {
	c, ram := newTestCPU()
	ram.mem[0x0000] = 0xc9 // CMP #$10
	ram.mem[0x0001] = 0x10
	c.Reg.PC = 0x0000
	c.Reg.A = 0x10
	c.Step()

	if !c.Reg.P.Has(FlagCarry) {
		t.Fatal("C not set for A==M")
	}
	if !c.Reg.P.Has(FlagZero) {
		t.Fatal("Z not set for A==M")
	}
}

func TestTXSDoesNotAffectFlags(t *testing.T) {
	c, _ := newTestCPU()
	c.Reg.X = 0x00
	c.Reg.P.Set(FlagZero, false)
	c.Reg.P.Set(FlagNegative, true)
	c.applyCommand("TXS")

	if c.Reg.S != 0x00 {
		t.Fatalf("S = %#02x, want 0x00", c.Reg.S)
	}
	if c.Reg.P.Has(FlagZero) {
		t.Fatal("Z changed by TXS")
	}
	if !c.Reg.P.Has(FlagNegative) {
		t.Fatal("N changed by TXS")
	}
}

func TestDebuggerBreakpoint(t *testing.T) {
	c, ram := newTestCPU()
	ram.mem[0x0000] = 0xea // NOP
	ram.mem[0x0001] = 0xea // NOP
	c.Reg.PC = 0x0000

	var hit uint16
	h := &recordingHandler{onBP: func(addr uint16) { hit = addr }}
	d := NewDebugger(h)
	d.AddBreakpoint(0x0001)
	c.AttachDebugger(d)

	c.Step()

	if hit != 0x0001 {
		t.Fatalf("breakpoint fired at %#04x, want 0x0001", hit)
	}
}

type recordingHandler struct {
	onBP     func(addr uint16)
	onDataBP func(addr uint16, v byte)
}

func (h *recordingHandler) OnBreakpoint(cpu *CPU, b *Breakpoint) {
	if h.onBP != nil {
		h.onBP(b.Address)
	}
}

func (h *recordingHandler) OnDataBreakpoint(cpu *CPU, b *DataBreakpoint) {
	if h.onDataBP != nil {
		h.onDataBP(b.Address, 0)
	}
}
