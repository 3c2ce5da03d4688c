// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package monitor

import (
	"io"
	"os"

	"github.com/beevik/cmd"
)

var cmds *cmd.Tree

func init() {
	cmds = cmd.NewTree("mon", []cmd.Command{
		{
			Name:     "help",
			Shortcut: "?",
			Brief:    "Display help for a command",
			HelpText: "help [<command>]",
			Data:     (*Monitor).cmdHelp,
		},
		{
			Name:     "registers",
			Shortcut: "r",
			Brief:    "Display register contents",
			HelpText: "registers",
			Data:     (*Monitor).cmdRegisters,
		},
		{
			Name:     "step",
			Shortcut: "s",
			Brief:    "Step the CPU one or more instructions",
			Description: "Step the CPU by a single instruction, or by the" +
				" number of instructions given.",
			HelpText: "step [<count>]",
			Data:     (*Monitor).cmdStep,
		},
		{
			Name:     "run",
			Brief:    "Run the CPU",
			HelpText: "run [<address>]",
			Description: "Run the CPU from its current PC, or from the" +
				" given address, until a breakpoint is hit or the process is" +
				" interrupted.",
			Data: (*Monitor).cmdRun,
		},
		{
			Name:     "reset",
			Brief:    "Reset the CPU",
			HelpText: "reset",
			Description: "Perform a RESET signal: registers return to their" +
				" power-on state and PC is loaded from the reset vector at $FFFC.",
			Data: (*Monitor).cmdReset,
		},
		{
			Name:     "breakpoint",
			Shortcut: "b",
			Brief:    "Breakpoint commands",
			Subcommands: cmd.NewTree("Breakpoint", []cmd.Command{
				{
					Name:     "list",
					Brief:    "List breakpoints",
					HelpText: "breakpoint list",
					Data:     (*Monitor).cmdBreakpointList,
				},
				{
					Name:     "add",
					Brief:    "Add a breakpoint",
					HelpText: "breakpoint add <address>",
					Data:     (*Monitor).cmdBreakpointAdd,
				},
				{
					Name:     "remove",
					Brief:    "Remove a breakpoint",
					HelpText: "breakpoint remove <address>",
					Data:     (*Monitor).cmdBreakpointRemove,
				},
				{
					Name:     "enable",
					Brief:    "Enable a breakpoint",
					HelpText: "breakpoint enable <address>",
					Data:     (*Monitor).cmdBreakpointEnable,
				},
				{
					Name:     "disable",
					Brief:    "Disable a breakpoint",
					HelpText: "breakpoint disable <address>",
					Data:     (*Monitor).cmdBreakpointDisable,
				},
			}),
		},
		{
			Name:     "databreakpoint",
			Shortcut: "db",
			Brief:    "Data breakpoint commands",
			Subcommands: cmd.NewTree("Data breakpoint", []cmd.Command{
				{
					Name:     "list",
					Brief:    "List data breakpoints",
					HelpText: "databreakpoint list",
					Data:     (*Monitor).cmdDataBreakpointList,
				},
				{
					Name:  "add",
					Brief: "Add a data breakpoint",
					Description: "Add a data breakpoint at the given address," +
						" optionally firing only when the given value is stored.",
					HelpText: "databreakpoint add <address> [<value>]",
					Data:     (*Monitor).cmdDataBreakpointAdd,
				},
				{
					Name:     "remove",
					Brief:    "Remove a data breakpoint",
					HelpText: "databreakpoint remove <address>",
					Data:     (*Monitor).cmdDataBreakpointRemove,
				},
			}),
		},
		{
			Name:     "memory",
			Shortcut: "m",
			Brief:    "Memory commands",
			Subcommands: cmd.NewTree("Memory", []cmd.Command{
				{
					Name:  "dump",
					Brief: "Dump memory at an address",
					Description: "Dump memory starting from the given address," +
						" or continuing from the last dump if none is given.",
					HelpText: "memory dump [<address>] [<bytes>]",
					Data:     (*Monitor).cmdMemoryDump,
				},
				{
					Name:  "set",
					Brief: "Set memory at an address",
					Description: "Store one or more byte values starting at the" +
						" given address.",
					HelpText: "memory set <address> <byte> [<byte> ...]",
					Data:     (*Monitor).cmdMemorySet,
				},
			}),
		},
		{
			Name:  "load",
			Brief: "Load a binary file into memory",
			Description: "Load the raw contents of a file into memory starting" +
				" at the given address.",
			HelpText: "load <filename> <address>",
			Data:     (*Monitor).cmdLoad,
		},
		{
			Name:     "quit",
			Shortcut: "q",
			Brief:    "Quit the monitor",
			HelpText: "quit",
			Data:     (*Monitor).cmdQuit,
		},
	})
}

func (m *Monitor) cmdHelp(c cmd.Selection) error {
	if len(c.Args) == 0 {
		m.displayCommands(cmds)
		return nil
	}
	s, err := cmds.Lookup(joinArgs(c.Args))
	if err != nil || s.Command == nil {
		m.printf("Command not found.\n")
		return nil
	}
	m.displayHelpText(s.Command)
	return nil
}

func (m *Monitor) displayCommands(tree *cmd.Tree) {
	for _, c := range tree.Commands {
		if c.Brief != "" {
			m.printf("%-16s %s\n", c.Name, c.Brief)
		}
	}
}

func (m *Monitor) displayHelpText(c *cmd.Command) {
	m.printf("Usage: %s\n", c.HelpText)
	if c.Description != "" {
		m.printf("%s\n", c.Description)
	}
}

func (m *Monitor) cmdRegisters(c cmd.Selection) error {
	m.println(m.formatRegisters())
	return nil
}

func (m *Monitor) cmdStep(c cmd.Selection) error {
	count := 1
	if len(c.Args) > 0 {
		n, err := m.parseAddr(c.Args[0])
		if err != nil {
			m.printf("%v\n", err)
			return nil
		}
		count = int(n)
	}

	m.state = stateRunning
	for i := 0; i < count && m.state == stateRunning; i++ {
		m.cpu.Step()
		m.displayPC()
	}
	m.state = stateProcessingCommands
	return nil
}

func (m *Monitor) cmdRun(c cmd.Selection) error {
	if len(c.Args) > 0 {
		pc, err := m.parseAddr(c.Args[0])
		if err != nil {
			m.printf("%v\n", err)
			return nil
		}
		m.cpu.Reg.PC = pc
	}

	m.printf("Running from $%04X. Press ctrl-C to break.\n", m.cpu.Reg.PC)

	m.state = stateRunning
	for m.state == stateRunning {
		m.cpu.Step()
	}
	return nil
}

func (m *Monitor) cmdReset(c cmd.Selection) error {
	m.cpu.Reset()
	m.displayPC()
	return nil
}

func (m *Monitor) cmdBreakpointList(c cmd.Selection) error {
	m.println("Addr  Enabled")
	m.println("----- -------")
	for _, b := range m.debugger.GetBreakpoints() {
		m.printf("$%04X %v\n", b.Address, !b.Disabled)
	}
	return nil
}

func (m *Monitor) cmdBreakpointAdd(c cmd.Selection) error {
	if len(c.Args) < 1 {
		m.displayHelpText(c.Command)
		return nil
	}
	addr, err := m.parseAddr(c.Args[0])
	if err != nil {
		m.printf("%v\n", err)
		return nil
	}
	m.debugger.AddBreakpoint(addr)
	m.printf("Breakpoint added at $%04X.\n", addr)
	return nil
}

func (m *Monitor) cmdBreakpointRemove(c cmd.Selection) error {
	if len(c.Args) < 1 {
		m.displayHelpText(c.Command)
		return nil
	}
	addr, err := m.parseAddr(c.Args[0])
	if err != nil {
		m.printf("%v\n", err)
		return nil
	}
	if m.debugger.GetBreakpoint(addr) == nil {
		m.printf("No breakpoint was set on $%04X.\n", addr)
		return nil
	}
	m.debugger.RemoveBreakpoint(addr)
	m.printf("Breakpoint at $%04X removed.\n", addr)
	return nil
}

func (m *Monitor) cmdBreakpointEnable(c cmd.Selection) error {
	if len(c.Args) < 1 {
		m.displayHelpText(c.Command)
		return nil
	}
	addr, err := m.parseAddr(c.Args[0])
	if err != nil {
		m.printf("%v\n", err)
		return nil
	}
	b := m.debugger.GetBreakpoint(addr)
	if b == nil {
		m.printf("No breakpoint was set on $%04X.\n", addr)
		return nil
	}
	b.Disabled = false
	return nil
}

func (m *Monitor) cmdBreakpointDisable(c cmd.Selection) error {
	if len(c.Args) < 1 {
		m.displayHelpText(c.Command)
		return nil
	}
	addr, err := m.parseAddr(c.Args[0])
	if err != nil {
		m.printf("%v\n", err)
		return nil
	}
	b := m.debugger.GetBreakpoint(addr)
	if b == nil {
		m.printf("No breakpoint was set on $%04X.\n", addr)
		return nil
	}
	b.Disabled = true
	return nil
}

func (m *Monitor) cmdDataBreakpointList(c cmd.Selection) error {
	m.println("Addr  Enabled  Value")
	m.println("----- -------  -----")
	for _, b := range m.debugger.GetDataBreakpoints() {
		if b.Conditional {
			m.printf("$%04X %-5v    $%02X\n", b.Address, !b.Disabled, b.Value)
		} else {
			m.printf("$%04X %-5v    <none>\n", b.Address, !b.Disabled)
		}
	}
	return nil
}

func (m *Monitor) cmdDataBreakpointAdd(c cmd.Selection) error {
	if len(c.Args) < 1 {
		m.displayHelpText(c.Command)
		return nil
	}
	addr, err := m.parseAddr(c.Args[0])
	if err != nil {
		m.printf("%v\n", err)
		return nil
	}
	if len(c.Args) > 1 {
		value, err := m.parseAddr(c.Args[1])
		if err != nil {
			m.printf("%v\n", err)
			return nil
		}
		m.debugger.AddConditionalDataBreakpoint(addr, byte(value))
	} else {
		m.debugger.AddDataBreakpoint(addr)
	}
	m.printf("Data breakpoint added at $%04X.\n", addr)
	return nil
}

func (m *Monitor) cmdDataBreakpointRemove(c cmd.Selection) error {
	if len(c.Args) < 1 {
		m.displayHelpText(c.Command)
		return nil
	}
	addr, err := m.parseAddr(c.Args[0])
	if err != nil {
		m.printf("%v\n", err)
		return nil
	}
	if m.debugger.GetDataBreakpoint(addr) == nil {
		m.printf("No data breakpoint was set on $%04X.\n", addr)
		return nil
	}
	m.debugger.RemoveDataBreakpoint(addr)
	m.printf("Data breakpoint at $%04X removed.\n", addr)
	return nil
}

func (m *Monitor) cmdMemoryDump(c cmd.Selection) error {
	addr := m.nextDumpAddr
	if len(c.Args) > 0 {
		a, err := m.parseAddr(c.Args[0])
		if err != nil {
			m.printf("%v\n", err)
			return nil
		}
		addr = a
	}

	n := m.dumpBytes
	if len(c.Args) > 1 {
		b, err := m.parseAddr(c.Args[1])
		if err != nil {
			m.printf("%v\n", err)
			return nil
		}
		n = b
	}

	data := m.ram.Dump(addr, int(n))
	for i := 0; i < len(data); i += 16 {
		end := i + 16
		if end > len(data) {
			end = len(data)
		}
		m.printf("$%04X: % X\n", int(addr)+i, data[i:end])
	}

	m.nextDumpAddr = addr + n
	return nil
}

func (m *Monitor) cmdMemorySet(c cmd.Selection) error {
	if len(c.Args) < 2 {
		m.displayHelpText(c.Command)
		return nil
	}
	addr, err := m.parseAddr(c.Args[0])
	if err != nil {
		m.printf("%v\n", err)
		return nil
	}
	for i, a := range c.Args[1:] {
		v, err := m.parseAddr(a)
		if err != nil {
			m.printf("%v\n", err)
			return nil
		}
		m.ram.Write(addr+uint16(i), byte(v))
	}
	return nil
}

func (m *Monitor) cmdLoad(c cmd.Selection) error {
	if len(c.Args) < 2 {
		m.displayHelpText(c.Command)
		return nil
	}
	addr, err := m.parseAddr(c.Args[1])
	if err != nil {
		m.printf("%v\n", err)
		return nil
	}

	file, err := os.Open(c.Args[0])
	if err != nil {
		m.printf("Failed to open '%s': %v\n", c.Args[0], err)
		return nil
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		m.printf("Failed to read '%s': %v\n", c.Args[0], err)
		return nil
	}

	m.ram.Load(addr, data)
	m.cpu.Reg.PC = addr
	m.printf("Loaded '%s' to $%04X..$%04X\n", c.Args[0], addr, int(addr)+len(data)-1)
	return nil
}

func (m *Monitor) cmdQuit(c cmd.Selection) error {
	return errQuit
}

func joinArgs(args []string) string {
	s := ""
	for i, a := range args {
		if i > 0 {
			s += " "
		}
		s += a
	}
	return s
}
