package disasm_test

import (
	"testing"

	"github.com/Stovent/m68000"
	"github.com/Stovent/m68000/disasm"
)

const addr = 0x1000

func loadMem(words ...uint16) *m68000.RAM {
	mem := m68000.NewRAM(0x2000)
	a := uint32(addr)
	for _, w := range words {
		mem.SetWord(a, w)
		a += 2
	}
	return mem
}

func TestDisassemble(t *testing.T) {
	cases := []struct {
		words []uint16
		line  string
		next  uint32
	}{
		{[]uint16{0x7001}, "MOVEQ.L #1, D0", addr + 2},
		{[]uint16{0x4E71}, "NOP", addr + 2},
		{[]uint16{0x4E75}, "RTS", addr + 2},
		{[]uint16{0x6004}, "BRA 4 <0x1006>", addr + 2},
		{[]uint16{0x67FE}, "BEQ -2 <0x1000>", addr + 2},
		{[]uint16{0x51C9, 0xFFFE}, "DBF D1, -2 <0x1000>", addr + 4},
		{[]uint16{0xD352}, "ADD.W D1, (A2)", addr + 2},
		{[]uint16{0x3010}, "MOVE.W (A0), D0", addr + 2},
		{[]uint16{0x0600, 0x001C}, "ADDI.B #28, D0", addr + 4},
		{[]uint16{0x247C, 0x1234, 0x5678}, "MOVEA.L #0x12345678, A2", addr + 6},
		{[]uint16{0x4E40}, "TRAP #0", addr + 2},
		{[]uint16{0x4E72, 0x2300}, "STOP #0x2300", addr + 4},
		{[]uint16{0xFFFF}, "Unknown instruction FFFF at 0x1000", addr + 2},
	}

	for _, tc := range cases {
		mem := loadMem(tc.words...)
		line, next := disasm.Disassemble(mem, addr)
		if line != tc.line {
			t.Errorf("line incorrect. exp: %q, got: %q", tc.line, line)
		}
		if next != tc.next {
			t.Errorf("%s: next incorrect. exp: $%X, got: $%X", tc.line, tc.next, next)
		}
	}
}

func TestDisassembleUnreadable(t *testing.T) {
	mem := m68000.NewRAM(0x10)

	// An odd address cannot hold an opcode; the caller still makes
	// progress.
	line, next := disasm.Disassemble(mem, 0x1001)
	if line != "?" {
		t.Errorf("line incorrect. exp: %q, got: %q", "?", line)
	}
	if next != 0x1003 {
		t.Errorf("next incorrect. exp: $1003, got: $%X", next)
	}
}

func TestGetRegisterString(t *testing.T) {
	var r m68000.Registers
	r.Init()
	r.SSP = 0x8000

	want := "SR=2700 [tSxnzvc I=7] SP=00008000"
	if got := disasm.GetRegisterString(&r); got != want {
		t.Errorf("register string incorrect.\nexp: %s\ngot: %s", want, got)
	}

	r.SR = m68000.StatusRegisterFromWord(0xA71F)
	want = "SR=A71F [TSXNZVC I=7] SP=00008000"
	if got := disasm.GetRegisterString(&r); got != want {
		t.Errorf("register string incorrect.\nexp: %s\ngot: %s", want, got)
	}
}
