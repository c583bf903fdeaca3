// Copyright 2018 Brett Vickers.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package host implements an interactive monitor for an emulated 68000
// system: a CPU, a flat block of RAM, and a debugger.
//
// Within the host it is possible to load machine code into memory, debug
// and step through it with a disassembly trace, measure the number of CPU
// cycles elapsed, set address and data breakpoints, raise interrupts and
// other exceptions, dump and modify the contents of memory, manipulate
// CPU registers, and evaluate arbitrary expressions.
package host

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/Stovent/m68000"
	"github.com/Stovent/m68000/disasm"
	"github.com/beevik/cmd"
)

// The amount of emulated RAM, covering the full 24-bit address bus of
// the MC68000.
const memSize = 1 << 24

type displayFlags uint8

const (
	displayRegisters displayFlags = 1 << iota
	displayCycles

	displayAll = displayRegisters | displayCycles
)

type state byte

const (
	stateProcessingCommands state = iota
	stateRunning
	stateBreakpoint
	stateStepOverBreakpoint
)

// A Host represents a fully emulated 68000 system with 16MB of memory and
// a built-in debugger.
type Host struct {
	input       *bufio.Scanner
	output      *bufio.Writer
	interactive bool
	mem         *m68000.RAM
	cpu         *m68000.CPU
	debugger    *m68000.Debugger
	lastCmd     *cmd.Selection
	state       state
	cycles      uint64
	exprParser  *exprParser
	settings    *settings
}

// New creates a new 68000 host environment emulating the given CPU model.
func New(model m68000.Model) *Host {
	h := &Host{
		state:      stateProcessingCommands,
		exprParser: newExprParser(),
		settings:   newSettings(),
	}

	// Create the emulated memory and CPU. The CPU starts with PC and SSP
	// zeroed; use the reset command to go through the reset vectors.
	h.mem = m68000.NewRAM(memSize)
	h.cpu = m68000.NewNoReset(model, h.mem)

	// Create a CPU debugger and attach it to the CPU.
	h.debugger = m68000.NewDebugger(newDebugHandler(h))
	h.cpu.AttachDebugger(h.debugger)

	return h
}

// RunCommands accepts host commands from a reader and outputs the results
// to a writer. If the commands are interactive, a prompt is displayed while
// the host waits for the next command to be entered.
func (h *Host) RunCommands(r io.Reader, w io.Writer, interactive bool) {
	h.input = bufio.NewScanner(r)
	h.output = bufio.NewWriter(w)
	h.interactive = interactive

	if interactive {
		h.println()
		h.displayPC()
	}

	h.runLoop()
}

func (h *Host) runLoop() error {
	for {
		h.prompt()

		line, err := h.getLine()
		if err != nil {
			return nil
		}

		var c cmd.Selection
		if line != "" {
			c, err = cmds.Lookup(line)
			switch {
			case err == cmd.ErrNotFound:
				h.println("Command not found.")
				continue
			case err == cmd.ErrAmbiguous:
				h.println("Command is ambiguous.")
				continue
			case err != nil:
				h.printf("ERROR: %v.\n", err)
				continue
			}
		} else if h.lastCmd != nil {
			c = *h.lastCmd
		}

		if c.Command == nil {
			continue
		}

		// A bare subtree name selects no command; list its contents.
		if c.Command.Data == nil {
			if c.Command.Subtree != nil {
				h.displayCommands(c.Command.Subtree)
			}
			continue
		}
		h.lastCmd = &c

		handler := c.Command.Data.(func(*Host, cmd.Selection) error)
		if err := handler(h, c); err != nil {
			return err
		}
	}
}

// Break interrupts a running CPU.
func (h *Host) Break() {
	h.println()

	if h.state == stateRunning {
		h.displayPC()
	}
	if h.state == stateProcessingCommands {
		h.prompt()
	}
	h.state = stateProcessingCommands
}

func (h *Host) print(args ...any) {
	fmt.Fprint(h.output, args...)
}

func (h *Host) printf(format string, args ...any) {
	fmt.Fprintf(h.output, format, args...)
	h.flush()
}

func (h *Host) println(args ...any) {
	fmt.Fprintln(h.output, args...)
	h.flush()
}

func (h *Host) flush() {
	h.output.Flush()
}

func (h *Host) getLine() (string, error) {
	if h.input.Scan() {
		return h.input.Text(), nil
	}
	if h.input.Err() != nil {
		return "", h.input.Err()
	}
	return "", io.EOF
}

func (h *Host) prompt() {
	if h.interactive {
		h.printf("* ")
		h.flush()
	}
}

func (h *Host) displayPC() {
	if h.interactive {
		d, _ := h.disassemble(h.cpu.Reg.PC, displayAll)
		h.println(d)
	}
}

func (h *Host) cmdBreakpointList(c cmd.Selection) error {
	h.println("Addr      Enabled")
	h.println("--------- -------")
	for _, b := range h.debugger.GetBreakpoints() {
		h.printf("$%08X %v\n", b.Address, !b.Disabled)
	}
	return nil
}

func (h *Host) cmdBreakpointAdd(c cmd.Selection) error {
	if len(c.Args) < 1 {
		h.displayUsage(c.Command)
		return nil
	}

	addr, err := h.parseExpr(c.Args[0])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	h.debugger.AddBreakpoint(addr)
	h.printf("Breakpoint added at $%08X.\n", addr)
	return nil
}

func (h *Host) cmdBreakpointRemove(c cmd.Selection) error {
	if len(c.Args) < 1 {
		h.displayUsage(c.Command)
		return nil
	}

	addr, err := h.parseExpr(c.Args[0])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	if h.debugger.GetBreakpoint(addr) == nil {
		h.printf("No breakpoint was set on $%08X.\n", addr)
		return nil
	}

	h.debugger.RemoveBreakpoint(addr)
	h.printf("Breakpoint at $%08X removed.\n", addr)
	return nil
}

func (h *Host) cmdBreakpointEnable(c cmd.Selection) error {
	if len(c.Args) < 1 {
		h.displayUsage(c.Command)
		return nil
	}

	addr, err := h.parseExpr(c.Args[0])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	b := h.debugger.GetBreakpoint(addr)
	if b == nil {
		h.printf("No breakpoint was set on $%08X.\n", addr)
		return nil
	}

	b.Disabled = false
	h.printf("Breakpoint at $%08X enabled.\n", addr)
	return nil
}

func (h *Host) cmdBreakpointDisable(c cmd.Selection) error {
	if len(c.Args) < 1 {
		h.displayUsage(c.Command)
		return nil
	}

	addr, err := h.parseExpr(c.Args[0])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	b := h.debugger.GetBreakpoint(addr)
	if b == nil {
		h.printf("No breakpoint was set on $%08X.\n", addr)
		return nil
	}

	b.Disabled = true
	h.printf("Breakpoint at $%08X disabled.\n", addr)
	return nil
}

func (h *Host) cmdDataBreakpointList(c cmd.Selection) error {
	h.println("Addr      Enabled  Value")
	h.println("--------- -------  -----")
	for _, b := range h.debugger.GetDataBreakpoints() {
		if b.Conditional {
			h.printf("$%08X %-5v    $%02X\n", b.Address, !b.Disabled, b.Value)
		} else {
			h.printf("$%08X %-5v    <none>\n", b.Address, !b.Disabled)
		}
	}
	return nil
}

func (h *Host) cmdDataBreakpointAdd(c cmd.Selection) error {
	if len(c.Args) < 1 {
		h.displayUsage(c.Command)
		return nil
	}

	addr, err := h.parseExpr(c.Args[0])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	if len(c.Args) > 1 {
		value, err := h.parseExpr(c.Args[1])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		h.debugger.AddConditionalDataBreakpoint(addr, uint8(value))
		h.printf("Conditional data breakpoint added at $%08X for value $%02X.\n", addr, uint8(value))
	} else {
		h.debugger.AddDataBreakpoint(addr)
		h.printf("Data breakpoint added at $%08X.\n", addr)
	}

	return nil
}

func (h *Host) cmdDataBreakpointRemove(c cmd.Selection) error {
	if len(c.Args) < 1 {
		h.displayUsage(c.Command)
		return nil
	}

	addr, err := h.parseExpr(c.Args[0])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	if h.debugger.GetDataBreakpoint(addr) == nil {
		h.printf("No data breakpoint was set on $%08X.\n", addr)
		return nil
	}

	h.debugger.RemoveDataBreakpoint(addr)
	h.printf("Data breakpoint at $%08X removed.\n", addr)
	return nil
}

func (h *Host) cmdDataBreakpointEnable(c cmd.Selection) error {
	if len(c.Args) < 1 {
		h.displayUsage(c.Command)
		return nil
	}

	addr, err := h.parseExpr(c.Args[0])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	b := h.debugger.GetDataBreakpoint(addr)
	if b == nil {
		h.printf("No data breakpoint was set on $%08X.\n", addr)
		return nil
	}

	b.Disabled = false
	h.printf("Data breakpoint at $%08X enabled.\n", addr)
	return nil
}

func (h *Host) cmdDataBreakpointDisable(c cmd.Selection) error {
	if len(c.Args) < 1 {
		h.displayUsage(c.Command)
		return nil
	}

	addr, err := h.parseExpr(c.Args[0])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	b := h.debugger.GetDataBreakpoint(addr)
	if b == nil {
		h.printf("No data breakpoint was set on $%08X.\n", addr)
		return nil
	}

	b.Disabled = true
	h.printf("Data breakpoint at $%08X disabled.\n", addr)
	return nil
}

func (h *Host) cmdCPU(c cmd.Selection) error {
	if len(c.Args) == 0 {
		h.printf("CPU model: %s\n", h.cpu.Model())
		h.printf("Elapsed cycles: %d\n", h.cycles)
		return nil
	}

	var model m68000.Model
	switch strings.ToLower(c.Args[0]) {
	case "mc68000", "68000":
		model = m68000.MC68000
	case "scc68070", "68070":
		model = m68000.SCC68070
	default:
		h.printf("Unknown CPU model '%s'.\n", c.Args[0])
		return nil
	}

	if model == h.cpu.Model() {
		h.printf("CPU model is already %s.\n", model)
		return nil
	}

	// Swap in a new core of the requested model, keeping the register
	// file and memory intact.
	cpu := m68000.NewNoReset(model, h.mem)
	cpu.Reg = h.cpu.Reg
	cpu.AttachDebugger(h.debugger)
	h.cpu = cpu

	h.printf("CPU model set to %s.\n", model)
	return nil
}

func (h *Host) cmdDisassemble(c cmd.Selection) error {
	if len(c.Args) == 0 {
		c.Args = []string{"$"}
	}

	var addr uint32
	switch c.Args[0] {
	case "$":
		addr = h.settings.NextDisasmAddr
		if addr == 0 {
			addr = h.cpu.Reg.PC
		}

	case ".":
		addr = h.cpu.Reg.PC

	default:
		a, err := h.parseExpr(c.Args[0])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		addr = a
	}

	lines := h.settings.DisasmLines
	if len(c.Args) > 1 {
		l, err := h.parseExpr(c.Args[1])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		lines = int(l)
	}

	for i := 0; i < lines; i++ {
		d, next := h.disassemble(addr, 0)
		h.println(d)
		addr = next
	}

	h.settings.NextDisasmAddr = addr
	h.lastCmd.Args = []string{"$", fmt.Sprintf("%d", lines)}
	return nil
}

func (h *Host) cmdEvaluate(c cmd.Selection) error {
	if len(c.Args) < 1 {
		h.displayUsage(c.Command)
		return nil
	}

	expr := strings.Join(c.Args, " ")
	v, err := h.parseExpr(expr)
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	h.printf("$%08X\n", v)
	return nil
}

func (h *Host) cmdExecute(c cmd.Selection) error {
	if len(c.Args) < 1 {
		h.displayUsage(c.Command)
		return nil
	}

	filename := c.Args[0]
	file, err := os.Open(filename)
	if err != nil {
		h.printf("Failed to open '%s': %v\n", filepath.Base(filename), err)
		return nil
	}
	defer file.Close()

	input, interactive := h.input, h.interactive
	h.input = bufio.NewScanner(file)
	h.interactive = false

	err = h.runLoop()

	h.input, h.interactive = input, interactive
	return err
}

func (h *Host) cmdException(c cmd.Selection) error {
	if len(c.Args) < 1 {
		h.displayUsage(c.Command)
		return nil
	}

	v, err := h.parseExpr(c.Args[0])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}
	if v > 255 {
		h.println("Exception vector must be between 0 and 255.")
		return nil
	}

	h.cpu.Exception(m68000.ExceptionFromVector(uint8(v)))
	h.printf("Exception with vector %d requested.\n", v)
	return nil
}

func (h *Host) cmdInterrupt(c cmd.Selection) error {
	if len(c.Args) < 1 {
		h.displayUsage(c.Command)
		return nil
	}

	level, err := h.parseExpr(c.Args[0])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}
	if level < 1 || level > 7 {
		h.println("Interrupt level must be between 1 and 7.")
		return nil
	}

	h.cpu.Exception(m68000.ExceptionFromVector(m68000.VectorLevel1Interrupt + uint8(level-1)))
	h.printf("Level %d interrupt raised.\n", level)
	return nil
}

func (h *Host) cmdHelp(c cmd.Selection) error {
	switch {
	case len(c.Args) == 0:
		h.displayCommands(cmds)
	default:
		s, err := cmds.Lookup(strings.Join(c.Args, " "))
		if err != nil {
			h.printf("%v\n", err)
		} else if s.Command.Subtree != nil {
			h.displayCommands(s.Command.Subtree)
		} else {
			if s.Command.Usage != "" {
				h.printf("Syntax: %s\n\n", s.Command.Usage)
			}
			switch {
			case s.Command.Description != "":
				h.printf("Description:\n   %s\n\n", s.Command.Description)
			case s.Command.Brief != "":
				h.printf("Description:\n   %s.\n\n", s.Command.Brief)
			}
		}
	}
	return nil
}

func (h *Host) cmdLoad(c cmd.Selection) error {
	if len(c.Args) < 2 {
		h.displayUsage(c.Command)
		return nil
	}

	addr, err := h.parseExpr(c.Args[1])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	h.load(c.Args[0], addr)
	return nil
}

func (h *Host) cmdMemoryDump(c cmd.Selection) error {
	if len(c.Args) == 0 {
		c.Args = []string{"$"}
	}

	var addr uint32
	switch c.Args[0] {
	case "$":
		addr = h.settings.NextMemDumpAddr
		if addr == 0 {
			addr = h.cpu.Reg.PC
		}

	case ".":
		addr = h.cpu.Reg.PC

	default:
		a, err := h.parseExpr(c.Args[0])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		addr = a
	}

	bytes := uint32(h.settings.MemDumpBytes)
	if len(c.Args) >= 2 {
		b, err := h.parseExpr(c.Args[1])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		bytes = b
	}

	h.dumpMemory(addr, bytes)

	h.settings.NextMemDumpAddr = addr + bytes
	h.lastCmd.Args = []string{"$", fmt.Sprintf("%d", bytes)}
	return nil
}

func (h *Host) cmdMemorySet(c cmd.Selection) error {
	if len(c.Args) < 2 {
		h.displayUsage(c.Command)
		return nil
	}

	addr, err := h.parseExpr(c.Args[0])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	for i, arg := range c.Args[1:] {
		v, err := h.parseExpr(arg)
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		if !h.mem.SetByte(addr+uint32(i), uint8(v)) {
			h.printf("Address $%08X is out of range.\n", addr+uint32(i))
			return nil
		}
	}

	h.printf("Set %d byte(s) starting at $%08X.\n", len(c.Args)-1, addr)
	return nil
}

func (h *Host) cmdMemoryCopy(c cmd.Selection) error {
	if len(c.Args) < 3 {
		h.displayUsage(c.Command)
		return nil
	}

	var args [3]uint32
	for i := range args {
		a, err := h.parseExpr(c.Args[i])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		args[i] = a
	}

	dst, begin, end := args[0], args[1], args[2]
	if end < begin {
		h.println("Source address range is invalid.")
		return nil
	}

	for i := uint32(0); i <= end-begin; i++ {
		v, ok := h.mem.GetByte(begin + i)
		if !ok || !h.mem.SetByte(dst+i, v) {
			h.println("Address is out of range.")
			return nil
		}
	}

	h.printf("%d byte(s) copied from $%08X to $%08X.\n", end-begin+1, begin, dst)
	return nil
}

func (h *Host) cmdQuit(c cmd.Selection) error {
	return errors.New("Exiting program")
}

func (h *Host) cmdRegister(c cmd.Selection) error {
	if len(c.Args) == 0 {
		h.println(disasm.GetFullRegisterString(&h.cpu.Reg))
		d, _ := h.disassemble(h.cpu.Reg.PC, displayCycles)
		h.println(d)
		return nil
	}

	if len(c.Args) < 2 {
		h.displayUsage(c.Command)
		return nil
	}

	key := strings.ToLower(c.Args[0])
	v, err := h.parseExpr(strings.Join(c.Args[1:], " "))
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	reg := &h.cpu.Reg
	switch {
	case len(key) == 2 && key[0] == 'd' && key[1] >= '0' && key[1] <= '7':
		reg.D[key[1]-'0'] = v
	case len(key) == 2 && key[0] == 'a' && key[1] >= '0' && key[1] <= '7':
		reg.SetAddrReg(key[1]-'0', v)
	case key == "usp":
		reg.USP = v
	case key == "ssp":
		reg.SSP = v
	case key == "sp":
		reg.SetSP(v)
	case key == "." || key == "pc":
		key = "pc"
		reg.PC = v
	case key == "sr":
		reg.SR = m68000.StatusRegisterFromWord(uint16(v))
		h.printf("Register SR set to $%04X.\n", reg.SR.Word())
		return nil
	case key == "ccr":
		reg.SR.SetCCR(uint16(v))
		h.printf("Register CCR set to $%02X.\n", reg.SR.Word()&0x1F)
		return nil
	case key == "i":
		reg.SR.InterruptMask = uint8(v) & 7
		h.printf("Interrupt mask set to %d.\n", reg.SR.InterruptMask)
		return nil
	case key == "t", key == "s", key == "x", key == "n", key == "z", key == "v", key == "c":
		b := intToBool(int(v))
		switch key {
		case "t":
			reg.SR.T = b
		case "s":
			reg.SR.S = b
		case "x":
			reg.SR.X = b
		case "n":
			reg.SR.N = b
		case "z":
			reg.SR.Z = b
		case "v":
			reg.SR.V = b
		case "c":
			reg.SR.C = b
		}
		h.printf("Flag %s set to %v.\n", strings.ToUpper(key), b)
		return nil
	default:
		h.printf("Unknown register '%s'.\n", key)
		return nil
	}

	h.printf("Register %s set to $%08X.\n", strings.ToUpper(key), v)
	return nil
}

func (h *Host) cmdReset(c cmd.Selection) error {
	h.cpu.Exception(m68000.ExceptionFromVector(m68000.VectorResetSspPc))
	h.println("Reset requested. SSP and PC will be reloaded from the reset" +
		" vectors before the next instruction.")
	return nil
}

func (h *Host) cmdRun(c cmd.Selection) error {
	var maxCycles uint64
	if len(c.Args) > 0 {
		n, err := h.parseExpr(c.Args[0])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		maxCycles = uint64(n)
	}

	h.printf("Running from $%08X. Press ctrl-C to break.\n", h.cpu.Reg.PC)

	start := h.cycles
	h.state = stateRunning
	for h.state == stateRunning {
		h.step()
		if h.stopReason() != "" {
			h.println(h.stopReason())
			break
		}
		if maxCycles > 0 && h.cycles-start >= maxCycles {
			break
		}
	}
	h.state = stateProcessingCommands

	h.printf("Executed %d cycle(s).\n", h.cycles-start)
	h.settings.NextDisasmAddr = h.cpu.Reg.PC
	return nil
}

func (h *Host) cmdSet(c cmd.Selection) error {
	switch len(c.Args) {
	case 0:
		h.println("Variables:")
		h.settings.Display(h.output)
		h.flush()

	case 1:
		h.displayUsage(c.Command)

	default:
		key, value := strings.ToLower(c.Args[0]), strings.Join(c.Args[1:], " ")
		v, errV := h.exprParser.Parse(value, h)

		var err error
		switch h.settings.Kind(key) {
		case reflect.Invalid:
			err = fmt.Errorf("Setting '%s' not found", key)
		case reflect.String:
			err = h.settings.Set(key, value)
		case reflect.Bool:
			var b bool
			b, err = stringToBool(value)
			if err == nil {
				err = h.settings.Set(key, b)
			}
		default:
			err = errV
			if err == nil {
				err = h.settings.Set(key, v)
			}
		}

		if err == nil {
			h.println("Setting updated.")
		} else {
			h.printf("%v\n", err)
		}

		h.onSettingsUpdate()
	}

	return nil
}

func (h *Host) cmdStepIn(c cmd.Selection) error {
	// Parse the number of steps.
	count := 1
	if len(c.Args) > 0 {
		n, err := h.parseExpr(c.Args[0])
		if err == nil {
			count = int(n)
		}
	}

	// Step the CPU count times.
	h.state = stateRunning
	for i := count - 1; i >= 0 && h.state == stateRunning; i-- {
		h.step()
		switch {
		case i == h.settings.MaxStepLines:
			h.println("...")
		case i < h.settings.MaxStepLines:
			h.displayPC()
		}
		if r := h.stopReason(); r != "" {
			h.println(r)
			break
		}
	}
	h.state = stateProcessingCommands

	h.settings.NextDisasmAddr = h.cpu.Reg.PC
	return nil
}

func (h *Host) cmdStepOver(c cmd.Selection) error {
	// Parse the number of steps.
	count := 1
	if len(c.Args) > 0 {
		n, err := h.parseExpr(c.Args[0])
		if err == nil {
			count = int(n)
		}
	}

	// Step over the next instruction count times.
	h.state = stateRunning
	for i := count - 1; i >= 0 && h.state == stateRunning; i-- {
		h.stepOver()
		switch {
		case i == h.settings.MaxStepLines:
			h.println("...")
		case i < h.settings.MaxStepLines:
			h.displayPC()
		}
		if r := h.stopReason(); r != "" {
			h.println(r)
			break
		}
	}
	h.state = stateProcessingCommands

	h.settings.NextDisasmAddr = h.cpu.Reg.PC
	return nil
}

func (h *Host) cmdStepOut(c cmd.Selection) error {
	h.state = stateRunning
	for h.state == stateRunning {
		returned := h.nextIsaIs(m68000.IsaRts, m68000.IsaRte, m68000.IsaRtr)
		h.step()
		if returned || h.stopReason() != "" {
			break
		}
	}
	h.state = stateProcessingCommands

	h.displayPC()
	h.settings.NextDisasmAddr = h.cpu.Reg.PC
	return nil
}

func (h *Host) load(filename string, addr uint32) {
	data, err := os.ReadFile(filename)
	if err != nil {
		h.printf("Failed to open '%s': %v\n", filepath.Base(filename), err)
		return
	}

	if int64(addr)+int64(len(data)) > int64(len(h.mem.Bytes())) {
		h.printf("File '%s' does not fit at $%08X.\n", filepath.Base(filename), addr)
		return
	}

	h.mem.Load(addr, data)
	h.printf("Loaded '%s' to $%08X..$%08X.\n", filepath.Base(filename),
		addr, addr+uint32(len(data))-1)

	h.cpu.Reg.PC = addr
	h.settings.NextDisasmAddr = addr
}

// step executes a single instruction, accounting its cycles and
// requesting any exception it raised on the CPU for processing before
// the next one.
func (h *Host) step() {
	cycles, f := h.cpu.InterpreterException()
	h.cycles += uint64(cycles)
	if f != m68000.FaultNone {
		h.cpu.Exception(m68000.ExceptionFromVector(uint8(f)))
	}
}

func (h *Host) stepOver() {
	// Subroutine calls need to be handled specially.
	if !h.nextIsaIs(m68000.IsaJsr, m68000.IsaBsr) {
		h.step()
		return
	}

	// Place a step-over breakpoint on the instruction following the call.
	// Either modify an already existing breakpoint on that instruction, or
	// create a temporary one.
	_, next := disasm.Disassemble(h.cpu.Mem, h.cpu.Reg.PC)
	tmpBreakpointCreated := false
	b := h.debugger.GetBreakpoint(next)
	if b == nil {
		b = h.debugger.AddBreakpoint(next)
		tmpBreakpointCreated = true
	}
	b.StepOver = true

	// Run until interrupted.
	for h.state == stateRunning {
		h.step()
		if h.stopReason() != "" {
			break
		}
	}
	b.StepOver = false

	// If we were interrupted by the temporary step-over breakpoint,
	// then continue as normal.
	if h.state == stateStepOverBreakpoint {
		h.state = stateRunning
	}

	// Remove the temporarily created breakpoint.
	if tmpBreakpointCreated {
		h.debugger.RemoveBreakpoint(next)
	}
}

// nextIsaIs reports whether the instruction at PC belongs to one of the
// given instruction classes.
func (h *Host) nextIsaIs(isas ...m68000.Isa) bool {
	opcode, ok := h.cpu.Mem.GetWord(h.cpu.Reg.PC)
	if !ok {
		return false
	}
	isa := m68000.IsaFromOpcode(opcode)
	for _, i := range isas {
		if isa == i {
			return true
		}
	}
	return false
}

// stopReason returns a message when the CPU can make no further progress
// on its own, or an empty string.
func (h *Host) stopReason() string {
	switch {
	case h.cpu.Halted():
		return "CPU halted by a double bus fault. Reset to restart."
	case h.cpu.Stopped():
		return "CPU stopped. Waiting for an interrupt."
	default:
		return ""
	}
}

func (h *Host) onSettingsUpdate() {
	h.exprParser.hexMode = h.settings.HexMode
}

func (h *Host) parseExpr(expr string) (uint32, error) {
	v, err := h.exprParser.Parse(expr, h)
	if err != nil {
		return 0, err
	}

	if v < 0 {
		v += 1 << 32
	}
	return uint32(v), nil
}

func (h *Host) disassemble(addr uint32, flags displayFlags) (str string, next uint32) {
	var line string
	line, next = disasm.Disassemble(h.cpu.Mem, addr)

	b := make([]byte, 0, next-addr)
	for a := addr; a < next; a++ {
		v, _ := h.cpu.Mem.GetByte(a)
		b = append(b, v)
	}

	str = fmt.Sprintf("%08X-   %-24s    %-32s", addr, codeString(b), line)

	if (flags & displayRegisters) != 0 {
		str += " " + disasm.GetRegisterString(&h.cpu.Reg)
	}

	if (flags & displayCycles) != 0 {
		str += fmt.Sprintf(" C=%-12d", h.cycles)
	}

	return str, next
}

func (h *Host) dumpMemory(addr0, bytes uint32) {
	if bytes == 0 {
		return
	}
	addr1 := addr0 + bytes - 1

	buf := []byte("        -" + strings.Repeat(" ", 35))

	// Align addr0 and addr1 to 8-byte boundaries.
	start := addr0 & ^uint32(7)
	a := start
	for r := start; r <= addr1 && r >= start; r += 8 {
		addrToBuf(a, buf[0:8])
		for c1, c2 := 11, 36; c1 < 34; c1, c2, a = c1+3, c2+1, a+1 {
			if a >= addr0 && a <= addr1 {
				m, _ := h.cpu.Mem.GetByte(a)
				byteToBuf(m, buf[c1:c1+2])
				buf[c2] = toPrintableChar(m)
			} else {
				buf[c1] = ' '
				buf[c1+1] = ' '
				buf[c2] = ' '
			}
		}
		h.println(string(buf))
	}
}

func (h *Host) displayUsage(c *cmd.Command) {
	if c.Usage != "" {
		h.printf("Syntax: %s\n", c.Usage)
	} else {
		h.println("<no help text>")
	}
}

func (h *Host) displayCommands(commands *cmd.Tree) {
	h.printf("%s commands:\n", commands.Title)
	for _, c := range commands.Commands {
		if c.Brief != "" {
			h.printf("    %-15s  %s\n", c.Name, c.Brief)
		}
	}
}

func (h *Host) resolveIdentifier(s string) (int64, error) {
	s = strings.ToLower(s)

	reg := &h.cpu.Reg
	switch {
	case len(s) == 2 && s[0] == 'd' && s[1] >= '0' && s[1] <= '7':
		return int64(reg.D[s[1]-'0']), nil
	case len(s) == 2 && s[0] == 'a' && s[1] >= '0' && s[1] <= '7':
		return int64(reg.AddrReg(s[1] - '0')), nil
	case s == "usp":
		return int64(reg.USP), nil
	case s == "ssp":
		return int64(reg.SSP), nil
	case s == "sp":
		return int64(reg.SP()), nil
	case s == "sr":
		return int64(reg.SR.Word()), nil
	case s == "." || s == "pc":
		return int64(reg.PC), nil
	}

	return 0, fmt.Errorf("identifier '%s' not found", s)
}

func (h *Host) onBreakpoint(cpu *m68000.CPU, b *m68000.Breakpoint) {
	if b.StepOver {
		h.state = stateStepOverBreakpoint
	} else {
		h.state = stateBreakpoint
		h.printf("Breakpoint hit at $%08X.\n", b.Address)
		h.displayPC()
	}
}

func (h *Host) onDataBreakpoint(cpu *m68000.CPU, b *m68000.DataBreakpoint) {
	h.printf("Data breakpoint hit on address $%08X.\n", b.Address)

	h.state = stateBreakpoint

	h.displayPC()
}
