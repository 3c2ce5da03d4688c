// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package monitor implements an interactive command-line debugger for the
// cpu package: register and memory inspection, single-stepping, breakpoints
// and data breakpoints, and free-running execution.
package monitor

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/beevik/cmd"

	"mos6502/bus"
	"mos6502/cpu"
)

type state int

const (
	stateProcessingCommands state = iota
	stateRunning
)

// Monitor wraps a CPU and its backing RAM with an interactive command loop.
type Monitor struct {
	input       *bufio.Scanner
	output      *bufio.Writer
	interactive bool

	ram      *bus.RAM
	cpu      *cpu.CPU
	debugger *cpu.Debugger

	lastCmd *cmd.Selection
	state   state

	nextDumpAddr uint16
	dumpBytes    uint16
}

// New creates a Monitor around a fresh 64K RAM and CPU.
func New() *Monitor {
	m := &Monitor{dumpBytes: 64}

	m.ram = bus.NewRAM()
	m.cpu = cpu.NewCPU(m.ram)
	m.debugger = cpu.NewDebugger(newDebugHandler(m))
	m.cpu.AttachDebugger(m.debugger)

	return m
}

// CPU returns the CPU the monitor is driving, e.g. so a caller can install
// an OnIllegalOpcode callback before starting the command loop.
func (m *Monitor) CPU() *cpu.CPU {
	return m.cpu
}

// RAM returns the backing memory, e.g. so a caller can preload a program
// before starting the command loop.
func (m *Monitor) RAM() *bus.RAM {
	return m.ram
}

// RunCommands reads commands from r and writes results to w until r is
// exhausted or a command asks to quit. If interactive is true, a prompt is
// displayed while waiting for the next command.
func (m *Monitor) RunCommands(r io.Reader, w io.Writer, interactive bool) {
	m.input = bufio.NewScanner(r)
	m.output = bufio.NewWriter(w)
	m.interactive = interactive

	if interactive {
		m.println()
		m.displayPC()
	}

	for {
		m.prompt()

		line, err := m.getLine()
		if err != nil {
			break
		}

		var c cmd.Selection
		if line != "" {
			c, err = cmds.Lookup(line)
			switch {
			case err == cmd.ErrNotFound:
				m.println("Command not found.")
				continue
			case err == cmd.ErrAmbiguous:
				m.println("Command is ambiguous.")
				continue
			case err != nil:
				m.printf("ERROR: %v.\n", err)
				continue
			}
		} else if m.lastCmd != nil {
			c = *m.lastCmd
		}

		if c.Command == nil {
			continue
		}
		m.lastCmd = &c

		handler := c.Command.Data.(func(*Monitor, cmd.Selection) error)
		if err := handler(m, c); err != nil {
			break
		}
	}
}

// Break interrupts a running CPU, called from a Ctrl-C signal handler.
func (m *Monitor) Break() {
	m.println()
	if m.state == stateRunning {
		m.displayPC()
	}
	m.state = stateProcessingCommands
	m.prompt()
}

func (m *Monitor) print(args ...interface{}) {
	fmt.Fprint(m.output, args...)
	m.flush()
}

func (m *Monitor) printf(format string, args ...interface{}) {
	fmt.Fprintf(m.output, format, args...)
	m.flush()
}

func (m *Monitor) println(args ...interface{}) {
	fmt.Fprintln(m.output, args...)
	m.flush()
}

func (m *Monitor) flush() {
	m.output.Flush()
}

func (m *Monitor) getLine() (string, error) {
	if m.input.Scan() {
		return m.input.Text(), nil
	}
	if m.input.Err() != nil {
		return "", m.input.Err()
	}
	return "", io.EOF
}

func (m *Monitor) prompt() {
	if m.interactive {
		m.print("* ")
	}
}

func (m *Monitor) displayPC() {
	if m.interactive {
		m.println(m.formatRegisters())
	}
}

func (m *Monitor) formatRegisters() string {
	r := m.cpu.Reg
	return fmt.Sprintf(
		"A=%02X X=%02X Y=%02X S=%02X PC=%04X P=%02X [%s]",
		r.A, r.X, r.Y, r.S, r.PC, r.P.Byte(), formatFlags(r.P),
	)
}

func formatFlags(p cpu.Flags) string {
	letters := []struct {
		mask cpu.Flags
		ch   byte
	}{
		{cpu.FlagNegative, 'N'}, {cpu.FlagOverflow, 'V'}, {cpu.FlagBreak, 'B'},
		{cpu.FlagDecimal, 'D'}, {cpu.FlagInterrupt, 'I'}, {cpu.FlagZero, 'Z'},
		{cpu.FlagCarry, 'C'},
	}
	out := make([]byte, len(letters))
	for i, l := range letters {
		if p.Has(l.mask) {
			out[i] = l.ch
		} else {
			out[i] = '-'
		}
	}
	return string(out)
}

var errQuit = errors.New("quit")
