// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package monitor

import "mos6502/cpu"

// debugHandler receives notifications from the CPU's attached Debugger and
// forwards them to the owning Monitor.
type debugHandler struct {
	mon *Monitor
}

func newDebugHandler(m *Monitor) *debugHandler {
	return &debugHandler{mon: m}
}

func (h *debugHandler) OnBreakpoint(c *cpu.CPU, b *cpu.Breakpoint) {
	h.mon.state = stateProcessingCommands
	h.mon.printf("Breakpoint hit at $%04X.\n", b.Address)
	h.mon.displayPC()
}

func (h *debugHandler) OnDataBreakpoint(c *cpu.CPU, b *cpu.DataBreakpoint) {
	h.mon.state = stateProcessingCommands
	h.mon.printf("Data breakpoint hit at $%04X.\n", b.Address)
	h.mon.displayPC()
}
