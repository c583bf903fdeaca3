package m68000_test

import (
	"testing"

	"github.com/Stovent/m68000"
)

// captureHandler records the breakpoint notifications it receives.
type captureHandler struct {
	breakpoints []uint32
	stores      []uint32
}

func (h *captureHandler) OnBreakpoint(cpu *m68000.CPU, b *m68000.Breakpoint) {
	h.breakpoints = append(h.breakpoints, b.Address)
}

func (h *captureHandler) OnDataBreakpoint(cpu *m68000.CPU, b *m68000.DataBreakpoint) {
	h.stores = append(h.stores, b.Address)
}

func TestBreakpoint(t *testing.T) {
	c := loadCPU(m68000.MC68000,
		0x4E71, // 1000: NOP
		0x4E71, // 1002: NOP
		0x4E71, // 1004: NOP
	)
	h := &captureHandler{}
	d := m68000.NewDebugger(h)
	c.AttachDebugger(d)

	d.AddBreakpoint(0x1002)
	b := d.AddBreakpoint(0x1004)
	b.Disabled = true

	stepCPU(c, 3)

	// The instruction at the breakpoint still executes; the handler
	// is notified before the fetch. The disabled breakpoint stays
	// silent.
	expectPC(t, c, 0x1006)
	if len(h.breakpoints) != 1 || h.breakpoints[0] != 0x1002 {
		t.Errorf("breakpoint hits incorrect. exp: [1002], got: %X", h.breakpoints)
	}
}

func TestBreakpointBookkeeping(t *testing.T) {
	d := m68000.NewDebugger(nil)

	b1 := d.AddBreakpoint(0x2000)
	b2 := d.AddBreakpoint(0x2000)
	if b1 != b2 {
		t.Error("adding the same address twice created two breakpoints")
	}

	d.AddBreakpoint(0x1000)
	bps := d.GetBreakpoints()
	if len(bps) != 2 || bps[0].Address != 0x1000 || bps[1].Address != 0x2000 {
		t.Errorf("GetBreakpoints not sorted by address: %v", bps)
	}

	d.RemoveBreakpoint(0x2000)
	if d.GetBreakpoint(0x2000) != nil {
		t.Error("breakpoint still present after removal")
	}
}

func TestDataBreakpoint(t *testing.T) {
	c := loadCPU(m68000.MC68000,
		0x1280, // MOVE.B D0, (A1)
	)
	h := &captureHandler{}
	d := m68000.NewDebugger(h)
	c.AttachDebugger(d)

	c.Reg.D[0] = 0x5A
	c.Reg.A[1] = 0x4000
	d.AddDataBreakpoint(0x4000)

	stepCPU(c, 1)
	if len(h.stores) != 1 || h.stores[0] != 0x4000 {
		t.Errorf("data breakpoint hits incorrect. exp: [4000], got: %X", h.stores)
	}
	got, _ := c.Mem.GetByte(0x4000)
	if got != 0x5A {
		t.Errorf("store not forwarded to memory. got: $%02X", got)
	}
}

func TestConditionalDataBreakpoint(t *testing.T) {
	c := loadCPU(m68000.MC68000,
		0x3280, // MOVE.W D0, (A1)
	)
	h := &captureHandler{}
	d := m68000.NewDebugger(h)
	c.AttachDebugger(d)

	c.Reg.D[0] = 0x1234
	c.Reg.A[1] = 0x4000

	// A word store reports each written byte. Only the matching
	// conditional breakpoint fires.
	d.AddConditionalDataBreakpoint(0x4000, 0xFF)
	d.AddConditionalDataBreakpoint(0x4001, 0x34)

	stepCPU(c, 1)
	if len(h.stores) != 1 || h.stores[0] != 0x4001 {
		t.Errorf("data breakpoint hits incorrect. exp: [4001], got: %X", h.stores)
	}
}
