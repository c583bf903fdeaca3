// Copyright 2014 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package disasm implements a 68000 instruction set disassembler.
package disasm

import (
	"fmt"

	"github.com/Stovent/m68000"
)

// Disassemble the machine code in memory 'm' at address 'addr'. Return a
// 'line' string representing the disassembled instruction and a 'next'
// address that starts the following line of machine code.
func Disassemble(m m68000.Memory, addr uint32) (line string, next uint32) {
	it := &m68000.MemoryIter{Mem: m, NextAddr: addr}
	inst, f := m68000.DecodeInstruction(it)
	if f != m68000.FaultNone {
		// The opcode or an extension word is unreadable. Skip one
		// word so the caller can make progress.
		return "?", addr + 2
	}
	return inst.String(), it.NextAddr
}

// GetRegisterString returns a single-line summary of the status register
// and the active stack pointer, suitable for appending to a disassembly
// line.
func GetRegisterString(r *m68000.Registers) string {
	return fmt.Sprintf("SR=%04X %s SP=%08X", r.SR.Word(), flagString(r.SR), r.SP())
}

// GetFullRegisterString returns a multi-line dump of the complete
// register file.
func GetFullRegisterString(r *m68000.Registers) string {
	s := ""
	for i := 0; i < 8; i += 4 {
		s += fmt.Sprintf("D%d=%08X D%d=%08X D%d=%08X D%d=%08X\n",
			i, r.D[i], i+1, r.D[i+1], i+2, r.D[i+2], i+3, r.D[i+3])
	}
	for i := uint8(0); i < 8; i += 4 {
		s += fmt.Sprintf("A%d=%08X A%d=%08X A%d=%08X A%d=%08X\n",
			i, r.AddrReg(i), i+1, r.AddrReg(i+1), i+2, r.AddrReg(i+2), i+3, r.AddrReg(i+3))
	}
	s += fmt.Sprintf("PC=%08X USP=%08X SSP=%08X %s",
		r.PC, r.USP, r.SSP, GetRegisterString(r))
	return s
}

func flagString(sr m68000.StatusRegister) string {
	b := []byte("tsxnzvc")
	if sr.T {
		b[0] = 'T'
	}
	if sr.S {
		b[1] = 'S'
	}
	if sr.X {
		b[2] = 'X'
	}
	if sr.N {
		b[3] = 'N'
	}
	if sr.Z {
		b[4] = 'Z'
	}
	if sr.V {
		b[5] = 'V'
	}
	if sr.C {
		b[6] = 'C'
	}
	return fmt.Sprintf("[%s I=%d]", b, sr.InterruptMask)
}
