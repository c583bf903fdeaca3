package m68000

const (
	signBit8  uint32 = 0x80
	signBit16 uint32 = 0x8000
	signBit32 uint32 = 0x8000_0000
)

func sizeMask(size Size) uint32 {
	switch size {
	case SizeByte:
		return 0xFF
	case SizeWord:
		return 0xFFFF
	default:
		return 0xFFFF_FFFF
	}
}

func sizeSign(size Size) uint32 {
	switch size {
	case SizeByte:
		return signBit8
	case SizeWord:
		return signBit16
	default:
		return signBit32
	}
}

// checkSupervisor raises a privilege violation when the CPU is in user
// mode.
func (c *CPU) checkSupervisor() Fault {
	if c.Reg.SR.S {
		return FaultNone
	}
	return Fault(VectorPrivilegeViolation)
}

// addFlags computes dst + src at the given size and sets the flags.
// With extend set, the X flag is added in and the Z flag is only
// cleared, never set, so multi-precision sequences accumulate it.
func (c *CPU) addFlags(dst, src uint32, size Size, extend bool) uint32 {
	mask := sizeMask(size)
	sign := sizeSign(size)
	dst &= mask
	src &= mask

	var carryIn uint64
	if extend && c.Reg.SR.X {
		carryIn = 1
	}
	sum := uint64(dst) + uint64(src) + carryIn
	res := uint32(sum) & mask
	carry := sum > uint64(mask)

	c.Reg.SR.X = carry
	c.Reg.SR.N = res&sign != 0
	if extend {
		if res != 0 {
			c.Reg.SR.Z = false
		}
	} else {
		c.Reg.SR.Z = res == 0
	}
	c.Reg.SR.V = ^(dst^src)&(dst^res)&sign != 0
	c.Reg.SR.C = carry

	return res
}

// subFlags computes dst - src at the given size and sets the flags.
// With extend set, the X flag is borrowed in and Z is only cleared.
// With cmp set, the X flag is left untouched.
func (c *CPU) subFlags(dst, src uint32, size Size, extend, cmp bool) uint32 {
	mask := sizeMask(size)
	sign := sizeSign(size)
	dst &= mask
	src &= mask

	var borrowIn uint64
	if extend && c.Reg.SR.X {
		borrowIn = 1
	}
	res := uint32(uint64(dst)-uint64(src)-borrowIn) & mask
	borrow := uint64(src)+borrowIn > uint64(dst)

	if !cmp {
		c.Reg.SR.X = borrow
	}
	c.Reg.SR.N = res&sign != 0
	if extend {
		if res != 0 {
			c.Reg.SR.Z = false
		}
	} else {
		c.Reg.SR.Z = res == 0
	}
	c.Reg.SR.V = (dst^src)&(dst^res)&sign != 0
	c.Reg.SR.C = borrow

	return res
}

// logicFlags sets N and Z from a logic result and clears V and C.
func (c *CPU) logicFlags(res uint32, size Size) {
	c.Reg.SR.N = res&sizeSign(size) != 0
	c.Reg.SR.Z = res&sizeMask(size) == 0
	c.Reg.SR.V = false
	c.Reg.SR.C = false
}

// getSized reads the operand at its size, returning it zero-extended.
func (c *CPU) getSized(ea *effectiveAddress, execTime *int, size Size) (uint32, Fault) {
	switch size {
	case SizeByte:
		v, f := c.getByte(ea, execTime)
		return uint32(v), f
	case SizeWord:
		v, f := c.getWord(ea, execTime)
		return uint32(v), f
	default:
		return c.getLong(ea, execTime)
	}
}

func (c *CPU) setSized(ea *effectiveAddress, execTime *int, size Size, v uint32) Fault {
	switch size {
	case SizeByte:
		return c.setByte(ea, execTime, uint8(v))
	case SizeWord:
		return c.setWord(ea, execTime, uint16(v))
	default:
		return c.setLong(ea, execTime, v)
	}
}

func singleOperandsTime(isLong, inRegister bool, regBW, regL, memBW, memL int) int {
	if inRegister {
		if isLong {
			return regL
		}
		return regBW
	}
	if isLong {
		return memL
	}
	return memBW
}

func (c *CPU) executeUnknownInstruction() (int, Fault) {
	return 0, Fault(VectorIllegalInstruction)
}

func (c *CPU) executeAbcd(rx uint8, mode Direction, ry uint8) (int, Fault) {
	var src, dst uint16
	var dstAddr uint32
	if mode == DirMemoryToMemory {
		srcAddr := c.ariwpr(ry, SizeByte)
		dstAddr = c.ariwpr(rx, SizeByte)
		s, ok := c.Mem.GetByte(srcAddr)
		if !ok {
			return 0, FaultAccessError
		}
		d, ok := c.Mem.GetByte(dstAddr)
		if !ok {
			return 0, FaultAccessError
		}
		src, dst = uint16(s), uint16(d)
	} else {
		src, dst = uint16(uint8(c.Reg.D[ry])), uint16(uint8(c.Reg.D[rx]))
	}
	if c.Reg.SR.X {
		src++
	}
	binRes := src + dst

	res := src&0x0F + dst&0x0F
	if res >= 0x0A {
		res += 0x06
	}
	res += src&0xF0 + dst&0xF0
	if res >= 0xA0 {
		res += 0x60
	}

	c.Reg.SR.N = res&0x80 != 0
	if res&0xFF != 0 {
		c.Reg.SR.Z = false
	}
	c.Reg.SR.V = src > 0x79-dst && binRes < 0x80
	c.Reg.SR.C = res >= 0x100
	c.Reg.SR.X = c.Reg.SR.C

	if mode == DirMemoryToMemory {
		if !c.Mem.SetByte(dstAddr, uint8(res)) {
			return 0, FaultAccessError
		}
		return c.timing.AbcdMem, FaultNone
	}
	c.Reg.SetDByte(rx, uint8(res))
	return c.timing.AbcdReg, FaultNone
}

func (c *CPU) executeAdd(reg uint8, dir Direction, size Size, am AddressingMode) (int, Fault) {
	var execTime int
	ea := newEA(am, size)

	if dir == DirDstEa {
		if size.isLong() {
			execTime = c.timing.AddMemL
		} else {
			execTime = c.timing.AddMemBW
		}
	} else {
		if size.isLong() {
			if am.isDard() || am.isImmediate() {
				execTime = c.timing.AddRegLRdimm
			} else {
				execTime = c.timing.AddRegL
			}
		} else {
			execTime = c.timing.AddRegBW
		}
	}

	var src, dst uint32
	var f Fault
	if dir == DirDstEa {
		src = c.Reg.D[reg]
		dst, f = c.getSized(&ea, &execTime, size)
	} else {
		src, f = c.getSized(&ea, &execTime, size)
		dst = c.Reg.D[reg]
	}
	if f != FaultNone {
		return 0, f
	}

	res := c.addFlags(dst, src, size, false)

	if dir == DirDstEa {
		if f := c.setSized(&ea, &execTime, size, res); f != FaultNone {
			return 0, f
		}
	} else {
		c.storeDataReg(reg, res, size)
	}

	return execTime, FaultNone
}

// storeDataReg writes a sized result into a data register, preserving
// the untouched upper bits.
func (c *CPU) storeDataReg(reg uint8, v uint32, size Size) {
	switch size {
	case SizeByte:
		c.Reg.SetDByte(reg, uint8(v))
	case SizeWord:
		c.Reg.SetDWord(reg, uint16(v))
	default:
		c.Reg.D[reg] = v
	}
}

func (c *CPU) executeAdda(reg uint8, size Size, am AddressingMode) (int, Fault) {
	var execTime int
	ea := newEA(am, size)

	var src uint32
	if size == SizeWord {
		execTime = c.timing.AddaWord
		w, f := c.getWord(&ea, &execTime)
		if f != FaultNone {
			return 0, f
		}
		src = uint32(int32(int16(w)))
	} else {
		if am.isDard() || am.isImmediate() {
			execTime = c.timing.AddaLongRdimm
		} else {
			execTime = c.timing.AddaLong
		}
		l, f := c.getLong(&ea, &execTime)
		if f != FaultNone {
			return 0, f
		}
		src = l
	}

	c.Reg.SetAddrReg(reg, c.Reg.AddrReg(reg)+src)
	return execTime, FaultNone
}

func (c *CPU) executeAddi(size Size, am AddressingMode, imm uint32) (int, Fault) {
	var execTime int
	if size.isLong() {
		execTime = singleOperandsTime(true, am.isDrd(), c.timing.AddiRegBW, c.timing.AddiRegL, c.timing.AddiMemBW, c.timing.AddiMemL)
	} else {
		execTime = singleOperandsTime(false, am.isDrd(), c.timing.AddiRegBW, c.timing.AddiRegL, c.timing.AddiMemBW, c.timing.AddiMemL)
	}

	ea := newEA(am, size)
	data, f := c.getSized(&ea, &execTime, size)
	if f != FaultNone {
		return 0, f
	}
	res := c.addFlags(data, imm, size, false)
	if f := c.setSized(&ea, &execTime, size, res); f != FaultNone {
		return 0, f
	}
	return execTime, FaultNone
}

func (c *CPU) executeAddq(imm uint8, size Size, am AddressingMode) (int, Fault) {
	if imm == 0 {
		imm = 8
	}

	// Adds to an address register do not affect the flags and
	// always operate on the full register.
	if am.isArd() {
		c.Reg.SetAddrReg(am.Reg, c.Reg.AddrReg(am.Reg)+uint32(imm))
		if size.isLong() {
			return c.timing.AddqRegL, FaultNone
		}
		return c.timing.AddqRegBW, FaultNone
	}

	execTime := singleOperandsTime(size.isLong(), am.isDrd(), c.timing.AddqRegBW, c.timing.AddqRegL, c.timing.AddqMemBW, c.timing.AddqMemL)

	ea := newEA(am, size)
	data, f := c.getSized(&ea, &execTime, size)
	if f != FaultNone {
		return 0, f
	}
	res := c.addFlags(data, uint32(imm), size, false)
	if f := c.setSized(&ea, &execTime, size, res); f != FaultNone {
		return 0, f
	}
	return execTime, FaultNone
}

func (c *CPU) executeAddx(rx uint8, size Size, mode Direction, ry uint8) (int, Fault) {
	var src, dst uint32
	var dstAddr uint32
	if mode == DirMemoryToMemory {
		srcAddr := c.ariwpr(ry, size)
		dstAddr = c.ariwpr(rx, size)
		if size != SizeByte {
			if f := even(srcAddr); f != FaultNone {
				return 0, f
			}
			if f := even(dstAddr); f != FaultNone {
				return 0, f
			}
		}
		var ok bool
		src, ok = c.readMem(srcAddr, size)
		if !ok {
			return 0, FaultAccessError
		}
		dst, ok = c.readMem(dstAddr, size)
		if !ok {
			return 0, FaultAccessError
		}
	} else {
		src, dst = c.Reg.D[ry], c.Reg.D[rx]
	}

	res := c.addFlags(dst, src, size, true)

	if mode == DirMemoryToMemory {
		if !c.writeMem(dstAddr, size, res) {
			return 0, FaultAccessError
		}
		if size.isLong() {
			return c.timing.AddxMemL, FaultNone
		}
		return c.timing.AddxMemBW, FaultNone
	}
	c.storeDataReg(rx, res, size)
	if size.isLong() {
		return c.timing.AddxRegL, FaultNone
	}
	return c.timing.AddxRegBW, FaultNone
}

// readMem and writeMem access memory at a raw address with the given
// size, used by the mem-to-mem forms that bypass the effective address
// machinery.
func (c *CPU) readMem(addr uint32, size Size) (uint32, bool) {
	switch size {
	case SizeByte:
		v, ok := c.Mem.GetByte(addr)
		return uint32(v), ok
	case SizeWord:
		v, ok := c.Mem.GetWord(addr)
		return uint32(v), ok
	default:
		return c.Mem.GetLong(addr)
	}
}

func (c *CPU) writeMem(addr uint32, size Size, v uint32) bool {
	switch size {
	case SizeByte:
		return c.Mem.SetByte(addr, uint8(v))
	case SizeWord:
		return c.Mem.SetWord(addr, uint16(v))
	default:
		return c.Mem.SetLong(addr, v)
	}
}

func (c *CPU) executeAnd(reg uint8, dir Direction, size Size, am AddressingMode) (int, Fault) {
	var execTime int
	if dir == DirDstEa {
		if size.isLong() {
			execTime = c.timing.AndMemL
		} else {
			execTime = c.timing.AndMemBW
		}
	} else {
		if size.isLong() {
			if am.isDard() || am.isImmediate() {
				execTime = c.timing.AndRegLRdimm
			} else {
				execTime = c.timing.AndRegL
			}
		} else {
			execTime = c.timing.AndRegBW
		}
	}

	ea := newEA(am, size)
	src := c.Reg.D[reg] & sizeMask(size)
	dst, f := c.getSized(&ea, &execTime, size)
	if f != FaultNone {
		return 0, f
	}

	res := dst & src
	c.logicFlags(res, size)

	if dir == DirDstEa {
		if f := c.setSized(&ea, &execTime, size, res); f != FaultNone {
			return 0, f
		}
	} else {
		c.storeDataReg(reg, res, size)
	}
	return execTime, FaultNone
}

func (c *CPU) executeAndi(size Size, am AddressingMode, imm uint32) (int, Fault) {
	execTime := singleOperandsTime(size.isLong(), am.isDrd(), c.timing.AndiRegBW, c.timing.AndiRegL, c.timing.AndiMemBW, c.timing.AndiMemL)

	ea := newEA(am, size)
	data, f := c.getSized(&ea, &execTime, size)
	if f != FaultNone {
		return 0, f
	}
	res := data & imm
	c.logicFlags(res, size)
	if f := c.setSized(&ea, &execTime, size, res); f != FaultNone {
		return 0, f
	}
	return execTime, FaultNone
}

func (c *CPU) executeAndiccr(imm uint16) (int, Fault) {
	c.Reg.SR.And(SRUpperMask | imm)
	return c.timing.Andiccr, FaultNone
}

func (c *CPU) executeAndisr(imm uint16) (int, Fault) {
	if f := c.checkSupervisor(); f != FaultNone {
		return 0, f
	}
	c.Reg.SR.And(imm)
	return c.timing.Andisr, FaultNone
}

func (c *CPU) executeAsm(dir Direction, am AddressingMode) (int, Fault) {
	execTime := c.timing.Asm

	ea := newEA(am, SizeWord)
	w, f := c.getWord(&ea, &execTime)
	if f != FaultNone {
		return 0, f
	}
	data := int16(w)
	sign := uint16(data) & uint16(signBit16)

	if dir == DirLeft {
		data <<= 1
		c.Reg.SR.X = sign != 0
		c.Reg.SR.V = sign^(uint16(data)&uint16(signBit16)) != 0
		c.Reg.SR.C = sign != 0
	} else {
		bit := data & 1
		data >>= 1
		c.Reg.SR.X = bit != 0
		c.Reg.SR.V = false
		c.Reg.SR.C = bit != 0
	}

	c.Reg.SR.N = data < 0
	c.Reg.SR.Z = data == 0

	if f := c.setWord(&ea, &execTime, uint16(data)); f != FaultNone {
		return 0, f
	}
	return execTime, FaultNone
}

// shiftCount resolves the shift count of a register shift: the value of
// a data register modulo 64, or the embedded count with 0 meaning 8.
func (c *CPU) shiftCount(rot uint8, fromReg bool) uint8 {
	if fromReg {
		return uint8(c.Reg.D[rot] % 64)
	}
	if rot == 0 {
		return 8
	}
	return rot
}

func (c *CPU) executeAsr(rot uint8, dir Direction, size Size, ir bool, reg uint8) (int, Fault) {
	c.Reg.SR.V = false
	c.Reg.SR.C = false

	count := c.shiftCount(rot, ir)
	mask := sizeSign(size)
	data := c.Reg.D[reg] & sizeMask(size)

	if dir == DirLeft {
		for i := uint8(0); i < count; i++ {
			sign := data & mask
			data <<= 1
			c.Reg.SR.X = sign != 0
			c.Reg.SR.C = sign != 0
			if sign^(data&mask) != 0 {
				c.Reg.SR.V = true
			}
		}
	} else {
		sign := data & mask
		for i := uint8(0); i < count; i++ {
			bit := data & 1
			data >>= 1
			data |= sign
			c.Reg.SR.X = bit != 0
			c.Reg.SR.C = bit != 0
		}
	}

	c.Reg.SR.N = data&mask != 0
	c.Reg.SR.Z = data&sizeMask(size) == 0
	c.storeDataReg(reg, data, size)

	if size.isLong() {
		return c.timing.AsrL + c.timing.AsrCount*int(count), FaultNone
	}
	return c.timing.AsrBW + c.timing.AsrCount*int(count), FaultNone
}

func (c *CPU) executeBcc(pc uint32, condition uint8, disp int16) (int, Fault) {
	if c.Reg.SR.Condition(condition) {
		c.Reg.PC = pc + uint32(int32(disp))
		return c.timing.BccBranch, FaultNone
	}
	if uint8(c.currentOpcode) == 0 {
		return c.timing.BccNoBranchWord, FaultNone
	}
	return c.timing.BccNoBranchByte, FaultNone
}

// bitOp is the shared body of BCHG, BCLR, BSET and BTST. op transforms
// the tested data; a nil op leaves memory and registers untouched.
func (c *CPU) bitOp(am AddressingMode, count uint8, dynReg, dynMem, staReg, staMem int, op func(data, bit uint32) uint32) (int, Fault) {
	var execTime int
	if bits(c.currentOpcode, 8, 8) != 0 {
		count = uint8(c.Reg.D[count])
		if am.isDrd() {
			execTime = dynReg
		} else {
			execTime = dynMem
		}
	} else {
		if am.isDrd() {
			execTime = staReg
		} else {
			execTime = staMem
		}
	}

	if am.isDrd() {
		bit := uint32(1) << (count % 32)
		c.Reg.SR.Z = c.Reg.D[am.Reg]&bit == 0
		if op != nil {
			c.Reg.D[am.Reg] = op(c.Reg.D[am.Reg], bit)
		}
		return execTime, FaultNone
	}

	ea := newEA(am, SizeByte)
	bit := uint32(1) << (count % 8)
	data, f := c.getByte(&ea, &execTime)
	if f != FaultNone {
		return 0, f
	}
	c.Reg.SR.Z = uint32(data)&bit == 0
	if op != nil {
		if f := c.setByte(&ea, &execTime, uint8(op(uint32(data), bit))); f != FaultNone {
			return 0, f
		}
	}
	return execTime, FaultNone
}

func (c *CPU) executeBchg(am AddressingMode, count uint8) (int, Fault) {
	return c.bitOp(am, count, c.timing.BchgDynReg, c.timing.BchgDynMem, c.timing.BchgStaReg, c.timing.BchgStaMem,
		func(data, bit uint32) uint32 { return data ^ bit })
}

func (c *CPU) executeBclr(am AddressingMode, count uint8) (int, Fault) {
	return c.bitOp(am, count, c.timing.BclrDynReg, c.timing.BclrDynMem, c.timing.BclrStaReg, c.timing.BclrStaMem,
		func(data, bit uint32) uint32 { return data &^ bit })
}

func (c *CPU) executeBra(pc uint32, disp int16) (int, Fault) {
	c.Reg.PC = pc + uint32(int32(disp))
	if uint8(c.currentOpcode) == 0 {
		return c.timing.BraWord, FaultNone
	}
	return c.timing.BraByte, FaultNone
}

func (c *CPU) executeBset(am AddressingMode, count uint8) (int, Fault) {
	return c.bitOp(am, count, c.timing.BsetDynReg, c.timing.BsetDynMem, c.timing.BsetStaReg, c.timing.BsetStaMem,
		func(data, bit uint32) uint32 { return data | bit })
}

func (c *CPU) executeBsr(pc uint32, disp int16) (int, Fault) {
	if f := c.pushLong(c.Reg.PC); f != FaultNone {
		return 0, f
	}
	c.Reg.PC = pc + uint32(int32(disp))
	if uint8(c.currentOpcode) == 0 {
		return c.timing.BsrWord, FaultNone
	}
	return c.timing.BsrByte, FaultNone
}

func (c *CPU) executeBtst(am AddressingMode, count uint8) (int, Fault) {
	return c.bitOp(am, count, c.timing.BtstDynReg, c.timing.BtstDynMem, c.timing.BtstStaReg, c.timing.BtstStaMem, nil)
}

func (c *CPU) executeChk(reg uint8, am AddressingMode) (int, Fault) {
	execTime := 0

	ea := newEA(am, SizeWord)
	w, f := c.getWord(&ea, &execTime)
	if f != FaultNone {
		return 0, f
	}
	src := int16(w)
	data := int16(c.Reg.D[reg])

	if data < 0 || data > src {
		return 0, Fault(VectorChkInstruction)
	}
	return c.timing.ChkNoTrap + execTime, FaultNone
}

func (c *CPU) executeClr(size Size, am AddressingMode) (int, Fault) {
	execTime := singleOperandsTime(size.isLong(), am.isDrd(), c.timing.ClrRegBW, c.timing.ClrRegL, c.timing.ClrMemBW, c.timing.ClrMemL)

	ea := newEA(am, size)
	if f := c.setSized(&ea, &execTime, size, 0); f != FaultNone {
		return 0, f
	}

	c.Reg.SR.N = false
	c.Reg.SR.Z = true
	c.Reg.SR.V = false
	c.Reg.SR.C = false
	return execTime, FaultNone
}

func (c *CPU) executeCmp(reg uint8, size Size, am AddressingMode) (int, Fault) {
	var execTime int
	if size.isLong() {
		execTime = c.timing.CmpL
	} else {
		execTime = c.timing.CmpBW
	}

	ea := newEA(am, size)
	src, f := c.getSized(&ea, &execTime, size)
	if f != FaultNone {
		return 0, f
	}
	c.subFlags(c.Reg.D[reg], src, size, false, true)
	return execTime, FaultNone
}

func (c *CPU) executeCmpa(reg uint8, size Size, am AddressingMode) (int, Fault) {
	execTime := c.timing.Cmpa

	ea := newEA(am, size)
	var src uint32
	if size == SizeWord {
		w, f := c.getWord(&ea, &execTime)
		if f != FaultNone {
			return 0, f
		}
		src = uint32(int32(int16(w)))
	} else {
		l, f := c.getLong(&ea, &execTime)
		if f != FaultNone {
			return 0, f
		}
		src = l
	}

	c.subFlags(c.Reg.AddrReg(reg), src, SizeLong, false, true)
	return execTime, FaultNone
}

func (c *CPU) executeCmpi(size Size, am AddressingMode, imm uint32) (int, Fault) {
	execTime := singleOperandsTime(size.isLong(), am.isDrd(), c.timing.CmpiRegBW, c.timing.CmpiRegL, c.timing.CmpiMemBW, c.timing.CmpiMemL)

	ea := newEA(am, size)
	data, f := c.getSized(&ea, &execTime, size)
	if f != FaultNone {
		return 0, f
	}
	c.subFlags(data, imm, size, false, true)
	return execTime, FaultNone
}

func (c *CPU) executeCmpm(ax uint8, size Size, ay uint8) (int, Fault) {
	addrY := c.ariwpo(ay, size)
	addrX := c.ariwpo(ax, size)

	if size != SizeByte {
		if f := even(addrY); f != FaultNone {
			return 0, f
		}
		if f := even(addrX); f != FaultNone {
			return 0, f
		}
	}
	src, ok := c.readMem(addrY, size)
	if !ok {
		return 0, FaultAccessError
	}
	dst, ok := c.readMem(addrX, size)
	if !ok {
		return 0, FaultAccessError
	}

	c.subFlags(dst, src, size, false, true)
	if size.isLong() {
		return c.timing.CmpmL, FaultNone
	}
	return c.timing.CmpmBW, FaultNone
}

func (c *CPU) executeDbcc(pc uint32, cc uint8, reg uint8, disp int16) (int, Fault) {
	if c.Reg.SR.Condition(cc) {
		return c.timing.DbccTrue, FaultNone
	}

	counter := int16(c.Reg.D[reg]) - 1
	c.Reg.SetDWord(reg, uint16(counter))

	if counter != -1 {
		c.Reg.PC = pc + uint32(int32(disp))
		return c.timing.DbccFalseBranch, FaultNone
	}
	return c.timing.DbccFalseNoBranch, FaultNone
}

func (c *CPU) executeDivs(reg uint8, am AddressingMode) (int, Fault) {
	execTime := c.timing.Divs

	ea := newEA(am, SizeWord)
	w, f := c.getWord(&ea, &execTime)
	if f != FaultNone {
		return 0, f
	}
	src := int32(int16(w))
	dst := int32(c.Reg.D[reg])

	if src == 0 {
		return 0, Fault(VectorZeroDivide)
	}

	quot := dst / src
	rem := dst % src
	c.Reg.D[reg] = uint32(uint16(rem))<<16 | uint32(uint16(quot))

	c.Reg.SR.N = quot < 0
	c.Reg.SR.Z = quot == 0
	c.Reg.SR.V = quot < -32768 || quot > 32767
	c.Reg.SR.C = false
	return execTime, FaultNone
}

func (c *CPU) executeDivu(reg uint8, am AddressingMode) (int, Fault) {
	execTime := c.timing.Divu

	ea := newEA(am, SizeWord)
	w, f := c.getWord(&ea, &execTime)
	if f != FaultNone {
		return 0, f
	}
	src := uint32(w)
	dst := c.Reg.D[reg]

	if src == 0 {
		return 0, Fault(VectorZeroDivide)
	}

	quot := dst / src
	rem := dst % src
	c.Reg.D[reg] = uint32(uint16(rem))<<16 | uint32(uint16(quot))

	c.Reg.SR.N = quot&0x8000 != 0
	c.Reg.SR.Z = quot == 0
	c.Reg.SR.V = quot > 0xFFFF
	c.Reg.SR.C = false
	return execTime, FaultNone
}

func (c *CPU) executeEor(reg uint8, size Size, am AddressingMode) (int, Fault) {
	execTime := singleOperandsTime(size.isLong(), am.isDrd(), c.timing.EorRegBW, c.timing.EorRegL, c.timing.EorMemBW, c.timing.EorMemL)

	ea := newEA(am, size)
	src := c.Reg.D[reg] & sizeMask(size)
	dst, f := c.getSized(&ea, &execTime, size)
	if f != FaultNone {
		return 0, f
	}

	res := dst ^ src
	c.logicFlags(res, size)

	if f := c.setSized(&ea, &execTime, size, res); f != FaultNone {
		return 0, f
	}
	return execTime, FaultNone
}

func (c *CPU) executeEori(size Size, am AddressingMode, imm uint32) (int, Fault) {
	execTime := singleOperandsTime(size.isLong(), am.isDrd(), c.timing.EoriRegBW, c.timing.EoriRegL, c.timing.EoriMemBW, c.timing.EoriMemL)

	ea := newEA(am, size)
	data, f := c.getSized(&ea, &execTime, size)
	if f != FaultNone {
		return 0, f
	}
	res := data ^ imm
	c.logicFlags(res, size)
	if f := c.setSized(&ea, &execTime, size, res); f != FaultNone {
		return 0, f
	}
	return execTime, FaultNone
}

func (c *CPU) executeEoriccr(imm uint16) (int, Fault) {
	c.Reg.SR.Xor(imm & CCRMask)
	return c.timing.Eoriccr, FaultNone
}

func (c *CPU) executeEorisr(imm uint16) (int, Fault) {
	if f := c.checkSupervisor(); f != FaultNone {
		return 0, f
	}
	c.Reg.SR.Xor(imm)
	return c.timing.Eorisr, FaultNone
}

func (c *CPU) executeExg(rx uint8, mode Direction, ry uint8) (int, Fault) {
	switch mode {
	case DirExchangeData:
		c.Reg.D[rx], c.Reg.D[ry] = c.Reg.D[ry], c.Reg.D[rx]
	case DirExchangeAddress:
		x, y := c.Reg.AddrReg(rx), c.Reg.AddrReg(ry)
		c.Reg.SetAddrReg(rx, y)
		c.Reg.SetAddrReg(ry, x)
	default:
		y := c.Reg.AddrReg(ry)
		c.Reg.SetAddrReg(ry, c.Reg.D[rx])
		c.Reg.D[rx] = y
	}
	return c.timing.Exg, FaultNone
}

func (c *CPU) executeExt(mode uint8, reg uint8) (int, Fault) {
	if mode == 0b010 {
		c.Reg.SetDWord(reg, uint16(int16(int8(c.Reg.D[reg]))))
	} else {
		c.Reg.D[reg] = uint32(int32(int16(c.Reg.D[reg])))
	}

	c.Reg.SR.N = c.Reg.D[reg]&signBit32 != 0
	c.Reg.SR.Z = c.Reg.D[reg] == 0
	c.Reg.SR.V = false
	c.Reg.SR.C = false
	return c.timing.Ext, FaultNone
}

func (c *CPU) executeIllegal() (int, Fault) {
	return 0, Fault(VectorIllegalInstruction)
}

// controlFlowTime returns the per-addressing-mode cost of the control
// flow instructions.
func controlFlowTime(kind AddressingKind, ari, ariwd, ariwi8, absShort, absLong, pciwd, pciwi8 int) int {
	switch kind {
	case ModeAriwd:
		return ariwd
	case ModeAriwi8:
		return ariwi8
	case ModeAbsShort:
		return absShort
	case ModeAbsLong:
		return absLong
	case ModePciwd:
		return pciwd
	case ModePciwi8:
		return pciwi8
	default:
		return ari
	}
}

func (c *CPU) executeJmp(am AddressingMode) (int, Fault) {
	ea := newEA(am, 0)
	execTime := 0
	c.Reg.PC = c.effectiveAddress(&ea, &execTime)

	return controlFlowTime(am.Kind, c.timing.JmpAri, c.timing.JmpAriwd, c.timing.JmpAriwi8,
		c.timing.JmpAbsShort, c.timing.JmpAbsLong, c.timing.JmpPciwd, c.timing.JmpPciwi8), FaultNone
}

func (c *CPU) executeJsr(am AddressingMode) (int, Fault) {
	ea := newEA(am, 0)
	execTime := 0
	if f := c.pushLong(c.Reg.PC); f != FaultNone {
		return 0, f
	}
	c.Reg.PC = c.effectiveAddress(&ea, &execTime)

	return controlFlowTime(am.Kind, c.timing.JsrAri, c.timing.JsrAriwd, c.timing.JsrAriwi8,
		c.timing.JsrAbsShort, c.timing.JsrAbsLong, c.timing.JsrPciwd, c.timing.JsrPciwi8), FaultNone
}

func (c *CPU) executeLea(reg uint8, am AddressingMode) (int, Fault) {
	ea := newEA(am, 0)
	execTime := 0
	c.Reg.SetAddrReg(reg, c.effectiveAddress(&ea, &execTime))

	return controlFlowTime(am.Kind, c.timing.LeaAri, c.timing.LeaAriwd, c.timing.LeaAriwi8,
		c.timing.LeaAbsShort, c.timing.LeaAbsLong, c.timing.LeaPciwd, c.timing.LeaPciwi8), FaultNone
}

func (c *CPU) executeLink(reg uint8, disp int16) (int, Fault) {
	if f := c.pushLong(c.Reg.AddrReg(reg)); f != FaultNone {
		return 0, f
	}
	c.Reg.SetAddrReg(reg, c.Reg.SP())
	c.Reg.SetSP(c.Reg.SP() + uint32(int32(disp)))
	return c.timing.Link, FaultNone
}

func (c *CPU) executeLsm(dir Direction, am AddressingMode) (int, Fault) {
	execTime := c.timing.Lsm

	ea := newEA(am, SizeWord)
	data, f := c.getWord(&ea, &execTime)
	if f != FaultNone {
		return 0, f
	}

	if dir == DirLeft {
		sign := data & uint16(signBit16)
		data <<= 1
		c.Reg.SR.X = sign != 0
		c.Reg.SR.C = sign != 0
	} else {
		bit := data & 1
		data >>= 1
		c.Reg.SR.X = bit != 0
		c.Reg.SR.C = bit != 0
	}

	c.Reg.SR.N = data&uint16(signBit16) != 0
	c.Reg.SR.Z = data == 0
	c.Reg.SR.V = false

	if f := c.setWord(&ea, &execTime, data); f != FaultNone {
		return 0, f
	}
	return execTime, FaultNone
}

func (c *CPU) executeLsr(rot uint8, dir Direction, size Size, ir bool, reg uint8) (int, Fault) {
	c.Reg.SR.V = false
	c.Reg.SR.C = false

	count := c.shiftCount(rot, ir)
	mask := sizeSign(size)
	data := c.Reg.D[reg] & sizeMask(size)

	if dir == DirLeft {
		for i := uint8(0); i < count; i++ {
			sign := data & mask
			data <<= 1
			c.Reg.SR.X = sign != 0
			c.Reg.SR.C = sign != 0
		}
	} else {
		for i := uint8(0); i < count; i++ {
			bit := data & 1
			data >>= 1
			c.Reg.SR.X = bit != 0
			c.Reg.SR.C = bit != 0
		}
	}

	c.Reg.SR.N = data&mask != 0
	c.Reg.SR.Z = data&sizeMask(size) == 0
	c.storeDataReg(reg, data, size)

	if size.isLong() {
		return c.timing.LsrL + c.timing.LsrCount*int(count), FaultNone
	}
	return c.timing.LsrBW + c.timing.LsrCount*int(count), FaultNone
}

func (c *CPU) executeMove(size Size, amDst, amSrc AddressingMode) (int, Fault) {
	var execTime int
	if amDst.isAriwpr() {
		execTime = c.timing.MoveDstAriwpr
	} else {
		execTime = c.timing.MoveOther
	}

	src := newEA(amSrc, size)
	dst := newEA(amDst, size)

	d, f := c.getSized(&src, &execTime, size)
	if f != FaultNone {
		return 0, f
	}
	if f := c.setSized(&dst, &execTime, size, d); f != FaultNone {
		return 0, f
	}

	c.Reg.SR.N = d&sizeSign(size) != 0
	c.Reg.SR.Z = d&sizeMask(size) == 0
	c.Reg.SR.V = false
	c.Reg.SR.C = false
	return execTime, FaultNone
}

func (c *CPU) executeMovea(size Size, reg uint8, am AddressingMode) (int, Fault) {
	execTime := c.timing.Movea

	ea := newEA(am, size)
	if size == SizeWord {
		w, f := c.getWord(&ea, &execTime)
		if f != FaultNone {
			return 0, f
		}
		c.Reg.SetAddrReg(reg, uint32(int32(int16(w))))
	} else {
		l, f := c.getLong(&ea, &execTime)
		if f != FaultNone {
			return 0, f
		}
		c.Reg.SetAddrReg(reg, l)
	}
	return execTime, FaultNone
}

func (c *CPU) executeMoveccr(am AddressingMode) (int, Fault) {
	execTime := c.timing.Moveccr

	ea := newEA(am, SizeWord)
	ccr, f := c.getWord(&ea, &execTime)
	if f != FaultNone {
		return 0, f
	}
	c.Reg.SR.SetCCR(ccr)
	return execTime, FaultNone
}

func (c *CPU) executeMovefsr(am AddressingMode) (int, Fault) {
	var execTime int
	if am.isDrd() {
		execTime = c.timing.MovefsrReg
	} else {
		execTime = c.timing.MovefsrMem
	}

	ea := newEA(am, SizeWord)
	if f := c.setWord(&ea, &execTime, c.Reg.SR.Word()); f != FaultNone {
		return 0, f
	}
	return execTime, FaultNone
}

func (c *CPU) executeMovesr(am AddressingMode) (int, Fault) {
	if f := c.checkSupervisor(); f != FaultNone {
		return 0, f
	}

	ea := newEA(am, SizeWord)
	execTime := c.timing.Movesr

	sr, f := c.getWord(&ea, &execTime)
	if f != FaultNone {
		return 0, f
	}
	c.Reg.SR = StatusRegisterFromWord(sr)
	return execTime, FaultNone
}

func (c *CPU) executeMoveusp(dir Direction, reg uint8) (int, Fault) {
	if f := c.checkSupervisor(); f != FaultNone {
		return 0, f
	}

	if dir == DirUspToRegister {
		c.Reg.SetAddrReg(reg, c.Reg.USP)
	} else {
		c.Reg.USP = c.Reg.AddrReg(reg)
	}
	return c.timing.Moveusp, FaultNone
}

func (c *CPU) executeMovem(dir Direction, size Size, am AddressingMode, list uint16) (int, Fault) {
	count := 0
	for l := list; l != 0; l >>= 1 {
		count += int(l & 1)
	}

	execTime := 0
	ea := newEA(am, size)
	gap := uint32(size)
	eaReg := am.Reg

	if am.isAriwpr() {
		// Predecrement stores walk the registers from A7 down to
		// D0, with the mask bits reversed accordingly.
		addr := c.Reg.AddrReg(eaReg)
		l := list

		for reg := 7; reg >= 0; reg-- {
			if l&1 != 0 {
				addr -= gap
				if f := even(addr); f != FaultNone {
					return 0, f
				}
				if !c.writeMem(addr, size, c.Reg.AddrReg(uint8(reg))) {
					return 0, FaultAccessError
				}
			}
			l >>= 1
		}
		for reg := 7; reg >= 0; reg-- {
			if l&1 != 0 {
				addr -= gap
				if f := even(addr); f != FaultNone {
					return 0, f
				}
				if !c.writeMem(addr, size, c.Reg.D[reg]) {
					return 0, FaultAccessError
				}
			}
			l >>= 1
		}

		c.Reg.SetAddrReg(eaReg, addr)
	} else {
		var addr uint32
		if am.isAriwpo() {
			addr = c.Reg.AddrReg(eaReg)
		} else {
			addr = c.effectiveAddress(&ea, &execTime)
		}
		l := list

		for reg := 0; reg < 8; reg++ {
			if l&1 != 0 {
				if f := even(addr); f != FaultNone {
					return 0, f
				}
				if dir == DirMemoryToRegister {
					v, ok := c.readMem(addr, size)
					if !ok {
						return 0, FaultAccessError
					}
					if size == SizeWord {
						v = uint32(int32(int16(v)))
					}
					c.Reg.D[reg] = v
				} else {
					if !c.writeMem(addr, size, c.Reg.D[reg]) {
						return 0, FaultAccessError
					}
				}
				addr += gap
			}
			l >>= 1
		}
		for reg := 0; reg < 8; reg++ {
			if l&1 != 0 {
				if f := even(addr); f != FaultNone {
					return 0, f
				}
				if dir == DirMemoryToRegister {
					v, ok := c.readMem(addr, size)
					if !ok {
						return 0, FaultAccessError
					}
					if size == SizeWord {
						v = uint32(int32(int16(v)))
					}
					c.Reg.SetAddrReg(uint8(reg), v)
				} else {
					if !c.writeMem(addr, size, c.Reg.AddrReg(uint8(reg))) {
						return 0, FaultAccessError
					}
				}
				addr += gap
			}
			l >>= 1
		}

		if am.isAriwpo() {
			c.Reg.SetAddrReg(eaReg, addr)
		}
	}

	switch am.Kind {
	case ModeAri:
		execTime = c.timing.MovemAri
	case ModeAriwpo:
		execTime = c.timing.MovemAriwpo
	case ModeAriwpr:
		execTime = c.timing.MovemAriwpr
	case ModeAriwd:
		execTime = c.timing.MovemAriwd
	case ModeAriwi8:
		execTime = c.timing.MovemAriwi8
	case ModeAbsShort:
		execTime = c.timing.MovemAbsShort
	case ModeAbsLong:
		execTime = c.timing.MovemAbsLong
	case ModePciwd:
		execTime = c.timing.MovemPciwd
	case ModePciwi8:
		execTime = c.timing.MovemPciwi8
	}
	if dir == DirMemoryToRegister {
		execTime += c.timing.MovemMtr
	}
	perReg := c.timing.MovemWord
	if size.isLong() {
		perReg = c.timing.MovemLong
	}
	return execTime + count*perReg, FaultNone
}

func (c *CPU) executeMovep(data uint8, dir Direction, size Size, areg uint8, disp int16) (int, Fault) {
	shift := 8
	if size.isLong() {
		shift = 24
	}
	addr := c.Reg.AddrReg(areg) + uint32(int32(disp))

	if dir == DirRegisterToMemory {
		for ; shift >= 0; shift -= 8 {
			if !c.Mem.SetByte(addr, uint8(c.Reg.D[data]>>shift)) {
				return 0, FaultAccessError
			}
			addr += 2
		}
		if size.isLong() {
			return c.timing.MovepRtmLong, FaultNone
		}
		return c.timing.MovepRtmWord, FaultNone
	}

	if size == SizeWord {
		c.Reg.D[data] &= 0xFFFF_0000
	} else {
		c.Reg.D[data] = 0
	}
	for ; shift >= 0; shift -= 8 {
		d, ok := c.Mem.GetByte(addr)
		if !ok {
			return 0, FaultAccessError
		}
		c.Reg.D[data] |= uint32(d) << shift
		addr += 2
	}
	if size.isLong() {
		return c.timing.MovepMtrLong, FaultNone
	}
	return c.timing.MovepMtrWord, FaultNone
}

func (c *CPU) executeMoveq(reg uint8, data int8) (int, Fault) {
	c.Reg.D[reg] = uint32(int32(data))

	c.Reg.SR.N = data < 0
	c.Reg.SR.Z = data == 0
	c.Reg.SR.V = false
	c.Reg.SR.C = false
	return c.timing.Moveq, FaultNone
}

func (c *CPU) executeMuls(reg uint8, am AddressingMode) (int, Fault) {
	execTime := c.timing.Muls

	ea := newEA(am, SizeWord)
	w, f := c.getWord(&ea, &execTime)
	if f != FaultNone {
		return 0, f
	}
	src := int32(int16(w))
	dst := int32(int16(c.Reg.D[reg]))

	res := src * dst
	c.Reg.D[reg] = uint32(res)

	c.Reg.SR.N = res < 0
	c.Reg.SR.Z = res == 0
	c.Reg.SR.V = false
	c.Reg.SR.C = false
	return execTime, FaultNone
}

func (c *CPU) executeMulu(reg uint8, am AddressingMode) (int, Fault) {
	execTime := c.timing.Mulu

	ea := newEA(am, SizeWord)
	w, f := c.getWord(&ea, &execTime)
	if f != FaultNone {
		return 0, f
	}
	src := uint32(w)
	dst := uint32(uint16(c.Reg.D[reg]))

	res := src * dst
	c.Reg.D[reg] = res

	c.Reg.SR.N = res&signBit32 != 0
	c.Reg.SR.Z = res == 0
	c.Reg.SR.V = false
	c.Reg.SR.C = false
	return execTime, FaultNone
}

func (c *CPU) executeNbcd(am AddressingMode) (int, Fault) {
	var execTime int
	if am.isDrd() {
		execTime = c.timing.NbcdReg
	} else {
		execTime = c.timing.NbcdMem
	}

	ea := newEA(am, SizeByte)
	data, f := c.getByte(&ea, &execTime)
	if f != FaultNone {
		return 0, f
	}

	var x uint8
	if c.Reg.SR.X {
		x = 1
	}
	res := 0 - data - x
	if res != 0 {
		res -= 0x60
	}
	if res&0x0F != 0 {
		res -= 0x06
	}

	c.Reg.SR.N = res&0x80 != 0
	if res != 0 {
		c.Reg.SR.Z = false
	}
	c.Reg.SR.V = res != 0 && res&0x80 == 0 && data <= 0x80
	c.Reg.SR.C = res != 0
	c.Reg.SR.X = c.Reg.SR.C

	if f := c.setByte(&ea, &execTime, res); f != FaultNone {
		return 0, f
	}
	return execTime, FaultNone
}

func (c *CPU) executeNeg(size Size, am AddressingMode) (int, Fault) {
	execTime := singleOperandsTime(size.isLong(), am.isDrd(), c.timing.NegRegBW, c.timing.NegRegL, c.timing.NegMemBW, c.timing.NegMemL)

	ea := newEA(am, size)
	data, f := c.getSized(&ea, &execTime, size)
	if f != FaultNone {
		return 0, f
	}
	res := c.subFlags(0, data, size, false, false)
	if f := c.setSized(&ea, &execTime, size, res); f != FaultNone {
		return 0, f
	}
	return execTime, FaultNone
}

func (c *CPU) executeNegx(size Size, am AddressingMode) (int, Fault) {
	execTime := singleOperandsTime(size.isLong(), am.isDrd(), c.timing.NegxRegBW, c.timing.NegxRegL, c.timing.NegxMemBW, c.timing.NegxMemL)

	ea := newEA(am, size)
	data, f := c.getSized(&ea, &execTime, size)
	if f != FaultNone {
		return 0, f
	}
	res := c.subFlags(0, data, size, true, false)
	if f := c.setSized(&ea, &execTime, size, res); f != FaultNone {
		return 0, f
	}
	return execTime, FaultNone
}

func (c *CPU) executeNop() (int, Fault) {
	return c.timing.Nop, FaultNone
}

func (c *CPU) executeNot(size Size, am AddressingMode) (int, Fault) {
	execTime := singleOperandsTime(size.isLong(), am.isDrd(), c.timing.NotRegBW, c.timing.NotRegL, c.timing.NotMemBW, c.timing.NotMemL)

	ea := newEA(am, size)
	data, f := c.getSized(&ea, &execTime, size)
	if f != FaultNone {
		return 0, f
	}
	res := ^data
	c.logicFlags(res, size)
	if f := c.setSized(&ea, &execTime, size, res); f != FaultNone {
		return 0, f
	}
	return execTime, FaultNone
}

func (c *CPU) executeOr(reg uint8, dir Direction, size Size, am AddressingMode) (int, Fault) {
	var execTime int
	if dir == DirDstEa {
		if size.isLong() {
			execTime = c.timing.OrMemL
		} else {
			execTime = c.timing.OrMemBW
		}
	} else {
		if size.isLong() {
			if am.isDard() || am.isImmediate() {
				execTime = c.timing.OrRegLRdimm
			} else {
				execTime = c.timing.OrRegL
			}
		} else {
			execTime = c.timing.OrRegBW
		}
	}

	ea := newEA(am, size)
	src := c.Reg.D[reg] & sizeMask(size)
	dst, f := c.getSized(&ea, &execTime, size)
	if f != FaultNone {
		return 0, f
	}

	res := dst | src
	c.logicFlags(res, size)

	if dir == DirDstEa {
		if f := c.setSized(&ea, &execTime, size, res); f != FaultNone {
			return 0, f
		}
	} else {
		c.storeDataReg(reg, res, size)
	}
	return execTime, FaultNone
}

func (c *CPU) executeOri(size Size, am AddressingMode, imm uint32) (int, Fault) {
	execTime := singleOperandsTime(size.isLong(), am.isDrd(), c.timing.OriRegBW, c.timing.OriRegL, c.timing.OriMemBW, c.timing.OriMemL)

	ea := newEA(am, size)
	data, f := c.getSized(&ea, &execTime, size)
	if f != FaultNone {
		return 0, f
	}
	res := data | imm
	c.logicFlags(res, size)
	if f := c.setSized(&ea, &execTime, size, res); f != FaultNone {
		return 0, f
	}
	return execTime, FaultNone
}

func (c *CPU) executeOriccr(imm uint16) (int, Fault) {
	c.Reg.SR.Or(imm & CCRMask)
	return c.timing.Oriccr, FaultNone
}

func (c *CPU) executeOrisr(imm uint16) (int, Fault) {
	if f := c.checkSupervisor(); f != FaultNone {
		return 0, f
	}
	c.Reg.SR.Or(imm)
	return c.timing.Orisr, FaultNone
}

func (c *CPU) executePea(am AddressingMode) (int, Fault) {
	ea := newEA(am, 0)
	execTime := 0
	addr := c.effectiveAddress(&ea, &execTime)
	if f := c.pushLong(addr); f != FaultNone {
		return 0, f
	}

	return controlFlowTime(am.Kind, c.timing.PeaAri, c.timing.PeaAriwd, c.timing.PeaAriwi8,
		c.timing.PeaAbsShort, c.timing.PeaAbsLong, c.timing.PeaPciwd, c.timing.PeaPciwi8), FaultNone
}

func (c *CPU) executeReset() (int, Fault) {
	if f := c.checkSupervisor(); f != FaultNone {
		return 0, f
	}
	c.Mem.ResetInstruction()
	return c.timing.Reset, FaultNone
}

func (c *CPU) executeRom(dir Direction, am AddressingMode) (int, Fault) {
	execTime := c.timing.Rom

	ea := newEA(am, SizeWord)
	data, f := c.getWord(&ea, &execTime)
	if f != FaultNone {
		return 0, f
	}
	sign := data & uint16(signBit16)

	if dir == DirLeft {
		data <<= 1
		if sign != 0 {
			data |= 1
		}
		c.Reg.SR.C = sign != 0
	} else {
		bit := data & 1
		data >>= 1
		if bit != 0 {
			data |= uint16(signBit16)
		}
		c.Reg.SR.C = bit != 0
	}

	c.Reg.SR.N = data&uint16(signBit16) != 0
	c.Reg.SR.Z = data == 0
	c.Reg.SR.V = false

	if f := c.setWord(&ea, &execTime, data); f != FaultNone {
		return 0, f
	}
	return execTime, FaultNone
}

func (c *CPU) executeRor(rot uint8, dir Direction, size Size, ir bool, reg uint8) (int, Fault) {
	c.Reg.SR.V = false
	c.Reg.SR.C = false

	count := c.shiftCount(rot, ir)
	mask := sizeSign(size)
	data := c.Reg.D[reg] & sizeMask(size)

	if dir == DirLeft {
		for i := uint8(0); i < count; i++ {
			sign := data & mask
			data <<= 1
			if sign != 0 {
				data |= 1
			}
			c.Reg.SR.C = sign != 0
		}
	} else {
		for i := uint8(0); i < count; i++ {
			bit := data & 1
			data >>= 1
			if bit != 0 {
				data |= mask
			}
			c.Reg.SR.C = bit != 0
		}
	}

	c.Reg.SR.N = data&mask != 0
	c.Reg.SR.Z = data&sizeMask(size) == 0
	c.storeDataReg(reg, data, size)

	if size.isLong() {
		return c.timing.RorL + c.timing.RorCount*int(count), FaultNone
	}
	return c.timing.RorBW + c.timing.RorCount*int(count), FaultNone
}

func (c *CPU) executeRoxm(dir Direction, am AddressingMode) (int, Fault) {
	execTime := c.timing.Roxm

	ea := newEA(am, SizeWord)
	data, f := c.getWord(&ea, &execTime)
	if f != FaultNone {
		return 0, f
	}
	sign := data & uint16(signBit16)

	if dir == DirLeft {
		data <<= 1
		if c.Reg.SR.X {
			data |= 1
		}
		c.Reg.SR.X = sign != 0
		c.Reg.SR.C = sign != 0
	} else {
		bit := data & 1
		data >>= 1
		if c.Reg.SR.X {
			data |= uint16(signBit16)
		}
		c.Reg.SR.X = bit != 0
		c.Reg.SR.C = bit != 0
	}

	c.Reg.SR.N = data&uint16(signBit16) != 0
	c.Reg.SR.Z = data == 0
	c.Reg.SR.V = false

	if f := c.setWord(&ea, &execTime, data); f != FaultNone {
		return 0, f
	}
	return execTime, FaultNone
}

func (c *CPU) executeRoxr(rot uint8, dir Direction, size Size, ir bool, reg uint8) (int, Fault) {
	c.Reg.SR.V = false
	c.Reg.SR.C = c.Reg.SR.X

	count := c.shiftCount(rot, ir)
	mask := sizeSign(size)
	data := c.Reg.D[reg] & sizeMask(size)

	if dir == DirLeft {
		for i := uint8(0); i < count; i++ {
			sign := data & mask
			data <<= 1
			if c.Reg.SR.X {
				data |= 1
			}
			c.Reg.SR.X = sign != 0
			c.Reg.SR.C = sign != 0
		}
	} else {
		for i := uint8(0); i < count; i++ {
			bit := data & 1
			data >>= 1
			if c.Reg.SR.X {
				data |= mask
			}
			c.Reg.SR.X = bit != 0
			c.Reg.SR.C = bit != 0
		}
	}

	c.Reg.SR.N = data&mask != 0
	c.Reg.SR.Z = data&sizeMask(size) == 0
	c.storeDataReg(reg, data, size)

	if size.isLong() {
		return c.timing.RoxrL + c.timing.RoxrCount*int(count), FaultNone
	}
	return c.timing.RoxrBW + c.timing.RoxrCount*int(count), FaultNone
}

func (c *CPU) executeRte() (int, Fault) {
	if f := c.checkSupervisor(); f != FaultNone {
		return 0, f
	}

	sr, f := c.popWord()
	if f != FaultNone {
		return 0, f
	}
	pc, f := c.popLong()
	if f != FaultNone {
		return 0, f
	}
	c.Reg.PC = pc
	execTime := c.timing.Rte

	if c.timing.stackFormat == SCC68070 {
		format, f := c.popWord()
		if f != FaultNone {
			return 0, f
		}
		if format&0xF000 == 0xF000 {
			// Long format frame: discard the saved internal
			// state.
			c.Reg.SetSP(c.Reg.SP() + 26)
			execTime += 101
		} else if format&0xF000 != 0 {
			return 0, Fault(VectorFormatError)
		}
	}

	c.Reg.SR = StatusRegisterFromWord(sr)
	return execTime, FaultNone
}

func (c *CPU) executeRtr() (int, Fault) {
	ccr, f := c.popWord()
	if f != FaultNone {
		return 0, f
	}
	c.Reg.SR = StatusRegisterFromWord(c.Reg.SR.Word()&SRUpperMask | ccr&CCRMask)
	pc, f := c.popLong()
	if f != FaultNone {
		return 0, f
	}
	c.Reg.PC = pc
	return c.timing.Rtr, FaultNone
}

func (c *CPU) executeRts() (int, Fault) {
	pc, f := c.popLong()
	if f != FaultNone {
		return 0, f
	}
	c.Reg.PC = pc
	return c.timing.Rts, FaultNone
}

func (c *CPU) executeSbcd(ry uint8, mode Direction, rx uint8) (int, Fault) {
	var src, dst uint8
	var dstAddr uint32
	if mode == DirMemoryToMemory {
		srcAddr := c.ariwpr(rx, SizeByte)
		dstAddr = c.ariwpr(ry, SizeByte)
		s, ok := c.Mem.GetByte(srcAddr)
		if !ok {
			return 0, FaultAccessError
		}
		d, ok := c.Mem.GetByte(dstAddr)
		if !ok {
			return 0, FaultAccessError
		}
		src, dst = s, d
	} else {
		src, dst = uint8(c.Reg.D[rx]), uint8(c.Reg.D[ry])
	}
	if c.Reg.SR.X {
		src++
	}

	binRes := uint16(dst) - uint16(src)

	res := dst&0x0F - src&0x0F
	if res >= 0x0A {
		res -= 0x06
	}
	res += dst&0xF0 - src&0xF0
	if res >= 0xA0 || binRes > 0x99 {
		res -= 0x60
	}

	c.Reg.SR.N = res&0x80 != 0
	if res != 0 {
		c.Reg.SR.Z = false
	}
	c.Reg.SR.V = res < 0x80 && binRes > 0x99
	c.Reg.SR.C = src > dst
	c.Reg.SR.X = c.Reg.SR.C

	if mode == DirMemoryToMemory {
		if !c.Mem.SetByte(dstAddr, res) {
			return 0, FaultAccessError
		}
		return c.timing.SbcdMem, FaultNone
	}
	c.Reg.SetDByte(ry, res)
	return c.timing.SbcdReg, FaultNone
}

func (c *CPU) executeScc(cc uint8, am AddressingMode) (int, Fault) {
	condition := c.Reg.SR.Condition(cc)
	execTime := singleOperandsTime(condition, am.isDrd(), c.timing.SccRegFalse, c.timing.SccRegTrue, c.timing.SccMemFalse, c.timing.SccMemTrue)

	ea := newEA(am, SizeByte)
	var v uint8
	if condition {
		v = 0xFF
	}
	if f := c.setByte(&ea, &execTime, v); f != FaultNone {
		return 0, f
	}
	return execTime, FaultNone
}

func (c *CPU) executeStop(imm uint16) (int, Fault) {
	if f := c.checkSupervisor(); f != FaultNone {
		return 0, f
	}
	c.Reg.SR = StatusRegisterFromWord(imm)
	c.stop = true
	return c.timing.Stop, FaultNone
}

func (c *CPU) executeSub(reg uint8, dir Direction, size Size, am AddressingMode) (int, Fault) {
	var execTime int
	if dir == DirDstEa {
		if size.isLong() {
			execTime = c.timing.SubMemL
		} else {
			execTime = c.timing.SubMemBW
		}
	} else {
		if size.isLong() {
			if am.isDard() || am.isImmediate() {
				execTime = c.timing.SubRegLRdimm
			} else {
				execTime = c.timing.SubRegL
			}
		} else {
			execTime = c.timing.SubRegBW
		}
	}

	ea := newEA(am, size)
	var src, dst uint32
	var f Fault
	if dir == DirDstEa {
		src = c.Reg.D[reg]
		dst, f = c.getSized(&ea, &execTime, size)
	} else {
		src, f = c.getSized(&ea, &execTime, size)
		dst = c.Reg.D[reg]
	}
	if f != FaultNone {
		return 0, f
	}

	res := c.subFlags(dst, src, size, false, false)

	if dir == DirDstEa {
		if f := c.setSized(&ea, &execTime, size, res); f != FaultNone {
			return 0, f
		}
	} else {
		c.storeDataReg(reg, res, size)
	}
	return execTime, FaultNone
}

func (c *CPU) executeSuba(reg uint8, size Size, am AddressingMode) (int, Fault) {
	var execTime int
	ea := newEA(am, size)

	var src uint32
	if size == SizeWord {
		execTime = c.timing.SubaWord
		w, f := c.getWord(&ea, &execTime)
		if f != FaultNone {
			return 0, f
		}
		src = uint32(int32(int16(w)))
	} else {
		if am.isDard() || am.isImmediate() {
			execTime = c.timing.SubaLongRdimm
		} else {
			execTime = c.timing.SubaLong
		}
		l, f := c.getLong(&ea, &execTime)
		if f != FaultNone {
			return 0, f
		}
		src = l
	}

	c.Reg.SetAddrReg(reg, c.Reg.AddrReg(reg)-src)
	return execTime, FaultNone
}

func (c *CPU) executeSubi(size Size, am AddressingMode, imm uint32) (int, Fault) {
	execTime := singleOperandsTime(size.isLong(), am.isDrd(), c.timing.SubiRegBW, c.timing.SubiRegL, c.timing.SubiMemBW, c.timing.SubiMemL)

	ea := newEA(am, size)
	data, f := c.getSized(&ea, &execTime, size)
	if f != FaultNone {
		return 0, f
	}
	res := c.subFlags(data, imm, size, false, false)
	if f := c.setSized(&ea, &execTime, size, res); f != FaultNone {
		return 0, f
	}
	return execTime, FaultNone
}

func (c *CPU) executeSubq(imm uint8, size Size, am AddressingMode) (int, Fault) {
	if imm == 0 {
		imm = 8
	}

	if am.isArd() {
		c.Reg.SetAddrReg(am.Reg, c.Reg.AddrReg(am.Reg)-uint32(imm))
		if size.isLong() {
			return c.timing.SubqRegL, FaultNone
		}
		return c.timing.SubqARegBW, FaultNone
	}

	execTime := singleOperandsTime(size.isLong(), am.isDrd(), c.timing.SubqDRegBW, c.timing.SubqRegL, c.timing.SubqMemBW, c.timing.SubqMemL)

	ea := newEA(am, size)
	data, f := c.getSized(&ea, &execTime, size)
	if f != FaultNone {
		return 0, f
	}
	res := c.subFlags(data, uint32(imm), size, false, false)
	if f := c.setSized(&ea, &execTime, size, res); f != FaultNone {
		return 0, f
	}
	return execTime, FaultNone
}

func (c *CPU) executeSubx(ry uint8, size Size, mode Direction, rx uint8) (int, Fault) {
	var src, dst uint32
	var dstAddr uint32
	if mode == DirMemoryToMemory {
		srcAddr := c.ariwpr(rx, size)
		dstAddr = c.ariwpr(ry, size)
		if size != SizeByte {
			if f := even(srcAddr); f != FaultNone {
				return 0, f
			}
			if f := even(dstAddr); f != FaultNone {
				return 0, f
			}
		}
		var ok bool
		src, ok = c.readMem(srcAddr, size)
		if !ok {
			return 0, FaultAccessError
		}
		dst, ok = c.readMem(dstAddr, size)
		if !ok {
			return 0, FaultAccessError
		}
	} else {
		src, dst = c.Reg.D[rx], c.Reg.D[ry]
	}

	res := c.subFlags(dst, src, size, true, false)

	if mode == DirMemoryToMemory {
		if !c.writeMem(dstAddr, size, res) {
			return 0, FaultAccessError
		}
		if size.isLong() {
			return c.timing.SubxMemL, FaultNone
		}
		return c.timing.SubxMemBW, FaultNone
	}
	c.storeDataReg(ry, res, size)
	if size.isLong() {
		return c.timing.SubxRegL, FaultNone
	}
	return c.timing.SubxRegBW, FaultNone
}

func (c *CPU) executeSwap(reg uint8) (int, Fault) {
	c.Reg.D[reg] = c.Reg.D[reg]<<16 | c.Reg.D[reg]>>16

	c.Reg.SR.N = c.Reg.D[reg]&signBit32 != 0
	c.Reg.SR.Z = c.Reg.D[reg] == 0
	c.Reg.SR.V = false
	c.Reg.SR.C = false
	return c.timing.Swap, FaultNone
}

func (c *CPU) executeTas(am AddressingMode) (int, Fault) {
	var execTime int
	if am.isDrd() {
		execTime = c.timing.TasReg
	} else {
		execTime = c.timing.TasMem
	}

	ea := newEA(am, SizeByte)
	data, f := c.getByte(&ea, &execTime)
	if f != FaultNone {
		return 0, f
	}

	c.Reg.SR.N = data&uint8(signBit8) != 0
	c.Reg.SR.Z = data == 0
	c.Reg.SR.V = false
	c.Reg.SR.C = false

	data |= uint8(signBit8)
	if f := c.setByte(&ea, &execTime, data); f != FaultNone {
		return 0, f
	}
	return execTime, FaultNone
}

func (c *CPU) executeTrap(vector uint8) (int, Fault) {
	return 0, Fault(VectorTrap0Instruction + vector)
}

func (c *CPU) executeTrapv() (int, Fault) {
	if c.Reg.SR.V {
		return 0, Fault(VectorTrapvInstruction)
	}
	return c.timing.TrapvNoTrap, FaultNone
}

func (c *CPU) executeTst(size Size, am AddressingMode) (int, Fault) {
	execTime := singleOperandsTime(size.isLong(), am.isDrd(), c.timing.TstRegBW, c.timing.TstRegL, c.timing.TstMemBW, c.timing.TstMemL)

	ea := newEA(am, size)
	data, f := c.getSized(&ea, &execTime, size)
	if f != FaultNone {
		return 0, f
	}

	c.Reg.SR.N = data&sizeSign(size) != 0
	c.Reg.SR.Z = data&sizeMask(size) == 0
	c.Reg.SR.V = false
	c.Reg.SR.C = false
	return execTime, FaultNone
}

func (c *CPU) executeUnlk(reg uint8) (int, Fault) {
	c.Reg.SetSP(c.Reg.AddrReg(reg))
	v, f := c.popLong()
	if f != FaultNone {
		return 0, f
	}
	c.Reg.SetAddrReg(reg, v)
	return c.timing.Unlk, FaultNone
}
