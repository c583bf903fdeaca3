package m68000

// 68000 registers. A7 is not stored directly; the active stack pointer
// is selected through the supervisor bit of the status register.
type Registers struct {
	D   [8]uint32 // data registers
	A   [7]uint32 // address registers A0-A6
	USP uint32    // user stack pointer
	SSP uint32    // supervisor stack pointer
	PC  uint32    // program counter
	SR  StatusRegister
}

// Initialize all registers. D and A = 0. USP, SSP, PC = 0.
// SR = supervisor mode with all interrupts masked.
func (r *Registers) Init() {
	*r = Registers{}
	r.SR = StatusRegisterFromWord(0x2700)
}

// AddrReg returns address register n, resolving A7 to the active stack
// pointer.
func (r *Registers) AddrReg(n uint8) uint32 {
	if n >= 7 {
		return r.SP()
	}
	return r.A[n]
}

// SetAddrReg writes address register n, resolving A7 to the active
// stack pointer.
func (r *Registers) SetAddrReg(n uint8, v uint32) {
	if n >= 7 {
		r.SetSP(v)
	} else {
		r.A[n] = v
	}
}

// SP returns the active stack pointer: SSP in supervisor mode, USP
// otherwise.
func (r *Registers) SP() uint32 {
	if r.SR.S {
		return r.SSP
	}
	return r.USP
}

// SetSP writes the active stack pointer.
func (r *Registers) SetSP(v uint32) {
	if r.SR.S {
		r.SSP = v
	} else {
		r.USP = v
	}
}

// SetDByte writes the low byte of data register n, preserving the upper
// 24 bits.
func (r *Registers) SetDByte(n uint8, v uint8) {
	r.D[n] = r.D[n]&0xFFFFFF00 | uint32(v)
}

// SetDWord writes the low word of data register n, preserving the upper
// 16 bits.
func (r *Registers) SetDWord(n uint8, v uint16) {
	r.D[n] = r.D[n]&0xFFFF0000 | uint32(v)
}
