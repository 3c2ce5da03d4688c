// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command mon is an interactive monitor for the 6502 emulator core: it
// loads a binary image into memory and lets you inspect registers, set
// breakpoints, and single-step or free-run the CPU.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"

	"mos6502/monitor"
)

var (
	loadFile string
	loadAddr uint
)

func init() {
	flag.StringVar(&loadFile, "load", "", "binary file to load before starting")
	flag.UintVar(&loadAddr, "addr", 0x0600, "address to load the file at")
	flag.CommandLine.Usage = func() {
		fmt.Println("Usage: mon [script] ..\nOptions:")
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()

	m := monitor.New()

	if loadFile != "" {
		data, err := os.ReadFile(loadFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
			os.Exit(1)
		}
		m.RAM().Load(uint16(loadAddr), data)
		m.CPU().Reg.PC = uint16(loadAddr)
	}

	// Run commands contained in command-line script files.
	for _, filename := range flag.Args() {
		file, err := os.Open(filename)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
			os.Exit(1)
		}
		m.RunCommands(file, os.Stdout, false)
		file.Close()
	}

	// Break on Ctrl-C.
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	go func() {
		for range sig {
			m.Break()
		}
	}()

	m.RunCommands(os.Stdin, os.Stdout, true)
}
