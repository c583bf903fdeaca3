package m68000_test

import (
	"testing"

	"github.com/Stovent/m68000"
)

const (
	codeAddr = 0x1000
	stackTop = 0x8000
)

// loadCPU creates a CPU with the given machine code words loaded at
// codeAddr, PC pointing at them and the supervisor stack at stackTop.
func loadCPU(model m68000.Model, words ...uint16) *m68000.CPU {
	mem := m68000.NewRAM(0x10000)
	code := make([]byte, 0, len(words)*2)
	for _, w := range words {
		code = append(code, byte(w>>8), byte(w))
	}
	mem.Load(codeAddr, code)

	c := m68000.NewNoReset(model, mem)
	c.Reg.PC = codeAddr
	c.Reg.SSP = stackTop
	return c
}

func storeWords(c *m68000.CPU, addr uint32, words ...uint16) {
	for _, w := range words {
		c.Mem.SetWord(addr, w)
		addr += 2
	}
}

func stepCPU(c *m68000.CPU, steps int) int {
	cycles := 0
	for i := 0; i < steps; i++ {
		cycles += c.Interpreter()
	}
	return cycles
}

func expectPC(t *testing.T, c *m68000.CPU, pc uint32) {
	t.Helper()
	if c.Reg.PC != pc {
		t.Errorf("PC incorrect. exp: $%08X, got: $%08X", pc, c.Reg.PC)
	}
}

func expectD(t *testing.T, c *m68000.CPU, reg uint8, v uint32) {
	t.Helper()
	if c.Reg.D[reg] != v {
		t.Errorf("D%d incorrect. exp: $%08X, got: $%08X", reg, v, c.Reg.D[reg])
	}
}

func expectSP(t *testing.T, c *m68000.CPU, sp uint32) {
	t.Helper()
	if c.Reg.SP() != sp {
		t.Errorf("SP incorrect. exp: $%08X, got: $%08X", sp, c.Reg.SP())
	}
}

func expectCycles(t *testing.T, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("cycles incorrect. exp: %d, got: %d", want, got)
	}
}

func expectFlags(t *testing.T, c *m68000.CPU, n, z, v, carry bool) {
	t.Helper()
	sr := c.Reg.SR
	if sr.N != n || sr.Z != z || sr.V != v || sr.C != carry {
		t.Errorf("flags incorrect. exp: N=%t Z=%t V=%t C=%t, got: N=%t Z=%t V=%t C=%t",
			n, z, v, carry, sr.N, sr.Z, sr.V, sr.C)
	}
}

func expectMemWord(t *testing.T, c *m68000.CPU, addr uint32, v uint16) {
	t.Helper()
	got, ok := c.Mem.GetWord(addr)
	if !ok || got != v {
		t.Errorf("word at $%08X incorrect. exp: $%04X, got: $%04X", addr, v, got)
	}
}

func expectMemLong(t *testing.T, c *m68000.CPU, addr uint32, v uint32) {
	t.Helper()
	got, ok := c.Mem.GetLong(addr)
	if !ok || got != v {
		t.Errorf("long at $%08X incorrect. exp: $%08X, got: $%08X", addr, v, got)
	}
}

func TestMoveq(t *testing.T) {
	c := loadCPU(m68000.MC68000,
		0x7001, // MOVEQ #1, D0
		0x72FF, // MOVEQ #-1, D1
		0x7400, // MOVEQ #0, D2
	)

	cycles := stepCPU(c, 2)
	expectD(t, c, 0, 1)
	expectD(t, c, 1, 0xFFFFFFFF)
	expectFlags(t, c, true, false, false, false)

	cycles += stepCPU(c, 1)
	expectD(t, c, 2, 0)
	expectFlags(t, c, false, true, false, false)
	expectPC(t, c, 0x1006)
	expectCycles(t, cycles, 12)
}

func TestByteArithmeticFlags(t *testing.T) {
	c := loadCPU(m68000.MC68000,
		0x7064,         // MOVEQ #100, D0
		0x0600, 0x001C, // ADDI.B #28, D0
		0x5300, // SUBQ.B #1, D0
	)

	cycles := stepCPU(c, 2)
	// 100 + 28 overflows a signed byte.
	expectD(t, c, 0, 0x80)
	expectFlags(t, c, true, false, true, false)

	cycles += stepCPU(c, 1)
	// 0x80 - 1 overflows back.
	expectD(t, c, 0, 0x7F)
	expectFlags(t, c, false, false, true, false)
	expectCycles(t, cycles, 16)
}

func TestBranches(t *testing.T) {
	c := loadCPU(m68000.MC68000,
		0x6004, // 1000: BRA +4
		0x4E71, // 1002: NOP (skipped)
		0x4E71, // 1004: NOP (skipped)
		0x7000, // 1006: MOVEQ #0, D0
		0x6702, // 1008: BEQ +2 (taken)
		0x4E71, // 100A: NOP (skipped)
		0x6602, // 100C: BNE +2 (not taken)
		0x4E71, // 100E: NOP
	)

	cycles := stepCPU(c, 1)
	expectPC(t, c, 0x1006)
	expectCycles(t, cycles, 10)

	cycles = stepCPU(c, 2)
	expectPC(t, c, 0x100C)
	expectCycles(t, cycles, 4+10)

	cycles = stepCPU(c, 1)
	expectPC(t, c, 0x100E)
	expectCycles(t, cycles, 8)
}

func TestDbraLoop(t *testing.T) {
	c := loadCPU(m68000.MC68000,
		0x7203,         // 1000: MOVEQ #3, D1
		0x51C9, 0xFFFE, // 1002: DBF D1, -2
	)

	// Three iterations branch back, the fourth falls through with
	// the counter rolled over to -1.
	cycles := stepCPU(c, 5)
	expectD(t, c, 1, 0x0000FFFF)
	expectPC(t, c, 0x1006)
	expectCycles(t, cycles, 4+3*10+14)
}

func TestJsrRts(t *testing.T) {
	c := loadCPU(m68000.MC68000,
		0x4EB8, 0x2000, // 1000: JSR (0x2000).W
		0x4E71, // 1004: NOP
	)
	storeWords(c, 0x2000,
		0x702A, // 2000: MOVEQ #42, D0
		0x4E75, // 2002: RTS
	)

	cycles := stepCPU(c, 1)
	expectPC(t, c, 0x2000)
	expectSP(t, c, stackTop-4)
	expectMemLong(t, c, stackTop-4, 0x1004)
	expectCycles(t, cycles, 18)

	cycles = stepCPU(c, 2)
	expectD(t, c, 0, 42)
	expectPC(t, c, 0x1004)
	expectSP(t, c, stackTop)
	expectCycles(t, cycles, 4+16)
}

func TestLinkUnlk(t *testing.T) {
	c := loadCPU(m68000.MC68000,
		0x4E56, 0xFFF8, // LINK.W A6, #-8
		0x4E5E, // UNLK A6
	)

	cycles := stepCPU(c, 1)
	if c.Reg.A[6] != stackTop-4 {
		t.Errorf("A6 incorrect. exp: $%08X, got: $%08X", uint32(stackTop-4), c.Reg.A[6])
	}
	expectSP(t, c, stackTop-4-8)
	expectCycles(t, cycles, 16)

	cycles = stepCPU(c, 1)
	if c.Reg.A[6] != 0 {
		t.Errorf("A6 not restored. got: $%08X", c.Reg.A[6])
	}
	expectSP(t, c, stackTop)
	expectCycles(t, cycles, 12)
}

func TestMoveToMemory(t *testing.T) {
	c := loadCPU(m68000.MC68000,
		0x31C0, 0x4000, // MOVE.W D0, (0x4000).W
	)
	c.Reg.D[0] = 0x8234

	cycles := stepCPU(c, 1)
	expectMemWord(t, c, 0x4000, 0x8234)
	expectFlags(t, c, true, false, false, false)
	expectCycles(t, cycles, 12)
}

func TestReset(t *testing.T) {
	mem := m68000.NewRAM(0x10000)
	mem.SetLong(0, stackTop)  // initial SSP
	mem.SetLong(4, codeAddr)  // initial PC
	mem.SetWord(codeAddr, 0x4E71) // NOP

	c := m68000.New(m68000.MC68000, mem)
	cycles := c.Interpreter()

	expectCycles(t, cycles, 40+4)
	expectPC(t, c, codeAddr+2)
	if c.Reg.SSP != stackTop {
		t.Errorf("SSP incorrect. exp: $%08X, got: $%08X", uint32(stackTop), c.Reg.SSP)
	}
	if !c.Reg.SR.S || c.Reg.SR.InterruptMask != 7 {
		t.Errorf("SR incorrect after reset: %04X", c.Reg.SR.Word())
	}
}

func TestTrap(t *testing.T) {
	c := loadCPU(m68000.MC68000,
		0x4E40, // TRAP #0
	)
	c.Mem.SetLong(uint32(m68000.VectorTrap0Instruction)*4, 0x3000)
	storeWords(c, 0x3000, 0x4E71) // NOP

	// The trap itself consumes no cycles; the exception is requested
	// on the CPU and processed before the next instruction.
	cycles := stepCPU(c, 1)
	expectCycles(t, cycles, 0)
	expectPC(t, c, 0x1002)

	cycles = stepCPU(c, 1)
	expectCycles(t, cycles, 34+4)
	expectPC(t, c, 0x3002)
	expectSP(t, c, stackTop-6)
	expectMemLong(t, c, stackTop-4, 0x1002) // return address
	expectMemWord(t, c, stackTop-6, 0x2700) // saved SR
}

func TestPrivilegeViolation(t *testing.T) {
	c := loadCPU(m68000.MC68000,
		0x46FC, 0x2700, // MOVE #0x2700, SR
	)
	c.Reg.SR.S = false
	c.Reg.USP = 0x7000

	cycles, f := c.InterpreterException()
	if f != m68000.Fault(m68000.VectorPrivilegeViolation) {
		t.Errorf("fault incorrect. exp: %d, got: %d", m68000.VectorPrivilegeViolation, f)
	}
	expectCycles(t, cycles, 0)
	expectPC(t, c, 0x1004)
}

func TestAccessFaults(t *testing.T) {
	// Word access at an odd address raises an Address Error.
	c := loadCPU(m68000.MC68000,
		0x3010, // MOVE.W (A0), D0
	)
	c.Reg.A[0] = 0x2001

	cycles, f := c.InterpreterException()
	if f != m68000.FaultAddressError {
		t.Errorf("fault incorrect. exp: %d, got: %d", m68000.FaultAddressError, f)
	}
	expectCycles(t, cycles, 0)
	expectPC(t, c, 0x1002)

	// An access outside the memory map raises an Access Error.
	c = loadCPU(m68000.MC68000,
		0x3010, // MOVE.W (A0), D0
	)
	c.Reg.A[0] = 0x20000

	_, f = c.InterpreterException()
	if f != m68000.FaultAccessError {
		t.Errorf("fault incorrect. exp: %d, got: %d", m68000.FaultAccessError, f)
	}
}

func TestInterruptMasking(t *testing.T) {
	c := loadCPU(m68000.MC68000,
		0x4E71, // NOP
		0x4E71, // NOP
	)
	c.Mem.SetLong(uint32(m68000.VectorLevel2Interrupt)*4, 0x3000)
	storeWords(c, 0x3000, 0x4E71) // NOP

	// Mask is 7 after Init; the level 2 request stays pending.
	c.Exception(m68000.ExceptionFromVector(m68000.VectorLevel2Interrupt))
	cycles := stepCPU(c, 1)
	expectCycles(t, cycles, 4)
	expectPC(t, c, 0x1002)

	// Lowering the mask lets it through.
	c.Reg.SR.InterruptMask = 1
	cycles = stepCPU(c, 1)
	expectCycles(t, cycles, 44+4)
	expectPC(t, c, 0x3002)
	if c.Reg.SR.InterruptMask != 2 {
		t.Errorf("interrupt mask incorrect. exp: 2, got: %d", c.Reg.SR.InterruptMask)
	}
	expectMemLong(t, c, stackTop-4, 0x1002)
}

func TestLevel7InterruptNonMaskable(t *testing.T) {
	c := loadCPU(m68000.MC68000,
		0x4E71, // NOP
	)
	c.Mem.SetLong(uint32(m68000.VectorLevel7Interrupt)*4, 0x3000)
	storeWords(c, 0x3000, 0x4E71) // NOP

	c.Exception(m68000.ExceptionFromVector(m68000.VectorLevel7Interrupt))
	cycles := stepCPU(c, 1)
	expectCycles(t, cycles, 44+4)
	expectPC(t, c, 0x3002)
	if c.Reg.SR.InterruptMask != 7 {
		t.Errorf("interrupt mask incorrect. exp: 7, got: %d", c.Reg.SR.InterruptMask)
	}
}

func TestStopAndWake(t *testing.T) {
	c := loadCPU(m68000.MC68000,
		0x4E72, 0x2300, // STOP #0x2300
	)
	c.Mem.SetLong(uint32(m68000.VectorLevel5Interrupt)*4, 0x3000)
	storeWords(c, 0x3000, 0x4E71) // NOP

	cycles := stepCPU(c, 1)
	expectCycles(t, cycles, 4)
	if !c.Stopped() {
		t.Error("CPU not stopped after STOP")
	}
	if c.Reg.SR.InterruptMask != 3 {
		t.Errorf("interrupt mask incorrect. exp: 3, got: %d", c.Reg.SR.InterruptMask)
	}

	// A stopped CPU executes nothing.
	expectCycles(t, stepCPU(c, 1), 0)

	// A level 5 interrupt wakes it.
	c.Exception(m68000.ExceptionFromVector(m68000.VectorLevel5Interrupt))
	if c.Stopped() {
		t.Error("CPU still stopped after interrupt request")
	}
	cycles = stepCPU(c, 1)
	expectCycles(t, cycles, 44+4)
	expectPC(t, c, 0x3002)
	expectMemLong(t, c, stackTop-4, 0x1004)
}

func TestRte(t *testing.T) {
	c := loadCPU(m68000.MC68000,
		0x4E73, // RTE
	)
	// Hand-built exception frame returning to user mode at 0x4000.
	c.Reg.SSP = stackTop - 6
	c.Mem.SetWord(stackTop-6, 0x0000)
	c.Mem.SetLong(stackTop-4, 0x4000)

	cycles := stepCPU(c, 1)
	expectCycles(t, cycles, 20)
	expectPC(t, c, 0x4000)
	if c.Reg.SR.S {
		t.Error("supervisor bit still set after RTE")
	}
	if c.Reg.SSP != stackTop {
		t.Errorf("SSP incorrect. exp: $%08X, got: $%08X", uint32(stackTop), c.Reg.SSP)
	}
}

func TestRteStackFormats(t *testing.T) {
	// Short format frame: SR, PC and the format word.
	c := loadCPU(m68000.SCC68070,
		0x4E73, // RTE
	)
	c.Reg.SSP = stackTop - 8
	c.Mem.SetWord(stackTop-8, 0x2700)
	c.Mem.SetLong(stackTop-6, 0x4000)
	c.Mem.SetWord(stackTop-2, 0x0080) // vector offset, format 0

	cycles := stepCPU(c, 1)
	expectCycles(t, cycles, 39)
	expectPC(t, c, 0x4000)
	expectSP(t, c, stackTop)

	// Long format frame: 26 additional bytes of internal state are
	// discarded.
	c = loadCPU(m68000.SCC68070,
		0x4E73, // RTE
	)
	c.Reg.SSP = stackTop - 34
	c.Mem.SetWord(stackTop-34, 0x2700)
	c.Mem.SetLong(stackTop-32, 0x4000)
	c.Mem.SetWord(stackTop-28, 0xF008)

	cycles = stepCPU(c, 1)
	expectCycles(t, cycles, 39+101)
	expectPC(t, c, 0x4000)
	expectSP(t, c, stackTop)
}

func TestCycle(t *testing.T) {
	c := loadCPU(m68000.MC68000,
		0x4E71, 0x4E71, 0x4E71, 0x4E71, // NOP x4
	)

	// The instruction crossing the budget runs in full.
	if got := c.Cycle(10); got != 12 {
		t.Errorf("Cycle(10) incorrect. exp: 12, got: %d", got)
	}
	expectPC(t, c, 0x1006)
}

func TestCycleUntilException(t *testing.T) {
	c := loadCPU(m68000.MC68000,
		0x4E71, // NOP
		0x4E71, // NOP
		0x4E41, // TRAP #1
	)

	cycles, f := c.CycleUntilException(100)
	expectCycles(t, cycles, 8)
	if f != m68000.Fault(m68000.VectorTrap0Instruction+1) {
		t.Errorf("fault incorrect. exp: %d, got: %d", m68000.VectorTrap0Instruction+1, f)
	}
}

func TestLoopUntilExceptionStop(t *testing.T) {
	c := loadCPU(m68000.MC68000,
		0x4E71,         // NOP
		0x4E72, 0x2700, // STOP #0x2700
	)

	cycles, f := c.LoopUntilExceptionStop()
	expectCycles(t, cycles, 8)
	if f != m68000.FaultNone {
		t.Errorf("fault incorrect. exp: none, got: %d", f)
	}
	if !c.Stopped() {
		t.Error("CPU not stopped")
	}
}

func TestHaltedDoubleFault(t *testing.T) {
	c := loadCPU(m68000.MC68000)
	c.Reg.PC = 0x20000  // code outside the memory map
	c.Reg.SSP = 0x30000 // the exception frame push faults too

	// The opcode fetch raises an Access Error, and pushing the Access
	// Error frame raises another one. The double fault halts the CPU.
	expectCycles(t, stepCPU(c, 2), 0)
	if !c.Halted() {
		t.Fatal("CPU not halted after a double Access Error")
	}

	// The run entry points return instead of spinning on a halted CPU.
	if got := c.Cycle(4); got != 0 {
		t.Errorf("Cycle incorrect. exp: 0, got: %d", got)
	}
	cycles, f := c.CycleUntilException(4)
	if cycles != 0 || f != m68000.FaultNone {
		t.Errorf("CycleUntilException incorrect. exp: 0, none, got: %d, %d", cycles, f)
	}
	cycles, f = c.LoopUntilExceptionStop()
	if cycles != 0 || f != m68000.FaultNone {
		t.Errorf("LoopUntilExceptionStop incorrect. exp: 0, none, got: %d, %d", cycles, f)
	}

	// Only an external reset restarts a halted CPU.
	c.Mem.SetLong(0, stackTop)
	c.Mem.SetLong(4, codeAddr)
	c.Mem.SetWord(codeAddr, 0x4E71) // NOP
	c.Exception(m68000.ExceptionFromVector(m68000.VectorResetSspPc))
	expectCycles(t, stepCPU(c, 1), 40+4)
	if c.Halted() {
		t.Error("CPU still halted after reset")
	}
	expectPC(t, c, codeAddr+2)
}

func TestInstructionTimings(t *testing.T) {
	cases := []struct {
		name  string
		words []uint16
		mc    int
		scc   int
	}{
		{"NOP", []uint16{0x4E71}, 4, 7},
		{"MOVEQ", []uint16{0x7001}, 4, 7},
		{"SWAP", []uint16{0x4841}, 4, 7},
		{"ADD.W D1, D2", []uint16{0xD441}, 4, 7},
		{"EXT.W D3", []uint16{0x4883}, 4, 7},
		{"TST.W D4", []uint16{0x4A44}, 4, 7},
	}

	for _, tc := range cases {
		c := loadCPU(m68000.MC68000, tc.words...)
		if got := c.Interpreter(); got != tc.mc {
			t.Errorf("%s on MC68000: exp %d cycles, got %d", tc.name, tc.mc, got)
		}
		c = loadCPU(m68000.SCC68070, tc.words...)
		if got := c.Interpreter(); got != tc.scc {
			t.Errorf("%s on SCC68070: exp %d cycles, got %d", tc.name, tc.scc, got)
		}
	}
}

func TestDisassemblerInterpreter(t *testing.T) {
	c := loadCPU(m68000.MC68000,
		0x7001, // MOVEQ #1, D0
	)

	dis, cycles := c.DisassemblerInterpreter()
	if dis != "MOVEQ.L #1, D0" {
		t.Errorf("disassembly incorrect. exp: %q, got: %q", "MOVEQ.L #1, D0", dis)
	}
	expectCycles(t, cycles, 4)
	expectD(t, c, 0, 1)
}
