// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package monitor

import (
	"fmt"
	"strconv"
	"strings"
)

// parseAddr parses a 16-bit address or count from a command argument. It
// accepts "$1234" and "0x1234" hex forms, "." for the current PC, and plain
// decimal. Full expression evaluation (registers, operators) is out of
// scope for this monitor; use plain numbers.
func (m *Monitor) parseAddr(s string) (uint16, error) {
	if s == "." {
		return m.cpu.Reg.PC, nil
	}

	base := 10
	switch {
	case strings.HasPrefix(s, "$"):
		s, base = s[1:], 16
	case strings.HasPrefix(s, "0x"), strings.HasPrefix(s, "0X"):
		s, base = s[2:], 16
	}

	v, err := strconv.ParseUint(s, base, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid address %q", s)
	}
	return uint16(v), nil
}
