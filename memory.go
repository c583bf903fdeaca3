package m68000

// Memory is the interface the host system exposes to the CPU. All
// multi-byte values are big-endian.
//
// Get methods return false when the address is outside the memory map
// of the system, which raises an Access (Bus) Error. For word and long
// accesses the address is guaranteed to be even, as odd addresses are
// detected by the core and raise an Address Error before the host is
// called.
type Memory interface {
	GetByte(addr uint32) (uint8, bool)
	GetWord(addr uint32) (uint16, bool)
	GetLong(addr uint32) (uint32, bool)

	SetByte(addr uint32, v uint8) bool
	SetWord(addr uint32, v uint16) bool
	SetLong(addr uint32, v uint32) bool

	// ResetInstruction is called when the CPU executes a RESET
	// instruction, so the host can reset its peripherals.
	ResetInstruction()
}

// MemoryIter reads consecutive words from memory. It is handed to the
// operand decoders so they can consume extension words without touching
// the CPU program counter.
type MemoryIter struct {
	Mem Memory
	// NextAddr is the address of the next word to be returned.
	NextAddr uint32
}

// Next returns the word at NextAddr and advances it by 2.
func (it *MemoryIter) Next() (uint16, Fault) {
	if it.NextAddr&1 != 0 {
		return 0, FaultAddressError
	}
	v, ok := it.Mem.GetWord(it.NextAddr)
	it.NextAddr += 2
	if !ok {
		return 0, FaultAccessError
	}
	return v, FaultNone
}

// NextLong returns the long at NextAddr and advances it by 4.
func (it *MemoryIter) NextLong() (uint32, Fault) {
	high, f := it.Next()
	if f != FaultNone {
		return 0, f
	}
	low, f := it.Next()
	if f != FaultNone {
		return 0, f
	}
	return uint32(high)<<16 | uint32(low), FaultNone
}

func even(addr uint32) Fault {
	if addr&1 != 0 {
		return FaultAddressError
	}
	return FaultNone
}

// Operand accessors. Register and immediate operands resolve without
// touching the bus; everything else goes through the effective address.

func (c *CPU) getByte(ea *effectiveAddress, execTime *int) (uint8, Fault) {
	switch ea.mode.Kind {
	case ModeDrd:
		return uint8(c.Reg.D[ea.mode.Reg]), FaultNone
	case ModeImmediate:
		*execTime += c.timing.EaImmediate
		return uint8(ea.mode.Imm), FaultNone
	default:
		v, ok := c.Mem.GetByte(c.effectiveAddress(ea, execTime))
		if !ok {
			return 0, FaultAccessError
		}
		return v, FaultNone
	}
}

func (c *CPU) getWord(ea *effectiveAddress, execTime *int) (uint16, Fault) {
	switch ea.mode.Kind {
	case ModeDrd:
		return uint16(c.Reg.D[ea.mode.Reg]), FaultNone
	case ModeArd:
		return uint16(c.Reg.AddrReg(ea.mode.Reg)), FaultNone
	case ModeImmediate:
		*execTime += c.timing.EaImmediate
		return uint16(ea.mode.Imm), FaultNone
	default:
		addr := c.effectiveAddress(ea, execTime)
		if f := even(addr); f != FaultNone {
			return 0, f
		}
		v, ok := c.Mem.GetWord(addr)
		if !ok {
			return 0, FaultAccessError
		}
		return v, FaultNone
	}
}

func (c *CPU) getLong(ea *effectiveAddress, execTime *int) (uint32, Fault) {
	switch ea.mode.Kind {
	case ModeDrd:
		return c.Reg.D[ea.mode.Reg], FaultNone
	case ModeArd:
		return c.Reg.AddrReg(ea.mode.Reg), FaultNone
	case ModeImmediate:
		*execTime += c.timing.EaImmediate + 4
		return ea.mode.Imm, FaultNone
	default:
		addr := c.effectiveAddress(ea, execTime)
		if f := even(addr); f != FaultNone {
			return 0, f
		}
		v, ok := c.Mem.GetLong(addr)
		*execTime += 4
		if !ok {
			return 0, FaultAccessError
		}
		return v, FaultNone
	}
}

func (c *CPU) setByte(ea *effectiveAddress, execTime *int, v uint8) Fault {
	switch ea.mode.Kind {
	case ModeDrd:
		c.Reg.SetDByte(ea.mode.Reg, v)
		return FaultNone
	default:
		if !c.Mem.SetByte(c.effectiveAddress(ea, execTime), v) {
			return FaultAccessError
		}
		return FaultNone
	}
}

func (c *CPU) setWord(ea *effectiveAddress, execTime *int, v uint16) Fault {
	switch ea.mode.Kind {
	case ModeDrd:
		c.Reg.SetDWord(ea.mode.Reg, v)
		return FaultNone
	case ModeArd:
		c.Reg.SetAddrReg(ea.mode.Reg, uint32(int32(int16(v))))
		return FaultNone
	default:
		addr := c.effectiveAddress(ea, execTime)
		if f := even(addr); f != FaultNone {
			return f
		}
		if !c.Mem.SetWord(addr, v) {
			return FaultAccessError
		}
		return FaultNone
	}
}

func (c *CPU) setLong(ea *effectiveAddress, execTime *int, v uint32) Fault {
	switch ea.mode.Kind {
	case ModeDrd:
		c.Reg.D[ea.mode.Reg] = v
		return FaultNone
	case ModeArd:
		c.Reg.SetAddrReg(ea.mode.Reg, v)
		return FaultNone
	default:
		addr := c.effectiveAddress(ea, execTime)
		if f := even(addr); f != FaultNone {
			return f
		}
		ok := c.Mem.SetLong(addr, v)
		*execTime += 4
		if !ok {
			return FaultAccessError
		}
		return FaultNone
	}
}

// GetNextWord returns the word at PC then advances PC by 2.
//
// This method advances the program counter, so be careful when using
// it. It is exported because it can be useful in contexts such as OS-9
// environments, where the trap ID is the word following the TRAP
// instruction.
func (c *CPU) GetNextWord() (uint16, Fault) {
	if f := even(c.Reg.PC); f != FaultNone {
		return 0, f
	}
	v, ok := c.Mem.GetWord(c.Reg.PC)
	c.Reg.PC += 2
	if !ok {
		return 0, FaultAccessError
	}
	return v, FaultNone
}

// GetNextLong returns the long at PC then advances PC by 4.
func (c *CPU) GetNextLong() (uint32, Fault) {
	if f := even(c.Reg.PC); f != FaultNone {
		return 0, f
	}
	v, ok := c.Mem.GetLong(c.Reg.PC)
	c.Reg.PC += 4
	if !ok {
		return 0, FaultAccessError
	}
	return v, FaultNone
}

// PeekNextWord returns the word at PC without advancing it.
func (c *CPU) PeekNextWord() (uint16, Fault) {
	if f := even(c.Reg.PC); f != FaultNone {
		return 0, f
	}
	v, ok := c.Mem.GetWord(c.Reg.PC)
	if !ok {
		return 0, FaultAccessError
	}
	return v, FaultNone
}

func (c *CPU) popWord() (uint16, Fault) {
	addr := c.ariwpo(7, SizeWord)
	if f := even(addr); f != FaultNone {
		return 0, f
	}
	v, ok := c.Mem.GetWord(addr)
	if !ok {
		return 0, FaultAccessError
	}
	return v, FaultNone
}

func (c *CPU) popLong() (uint32, Fault) {
	addr := c.ariwpo(7, SizeLong)
	if f := even(addr); f != FaultNone {
		return 0, f
	}
	v, ok := c.Mem.GetLong(addr)
	if !ok {
		return 0, FaultAccessError
	}
	return v, FaultNone
}

func (c *CPU) pushWord(v uint16) Fault {
	addr := c.ariwpr(7, SizeWord)
	if f := even(addr); f != FaultNone {
		return f
	}
	if !c.Mem.SetWord(addr, v) {
		return FaultAccessError
	}
	return FaultNone
}

func (c *CPU) pushLong(v uint32) Fault {
	addr := c.ariwpr(7, SizeLong)
	if f := even(addr); f != FaultNone {
		return f
	}
	if !c.Mem.SetLong(addr, v) {
		return FaultAccessError
	}
	return FaultNone
}

// iterFromPC returns a memory iterator starting at the current PC.
func (c *CPU) iterFromPC() *MemoryIter {
	return &MemoryIter{Mem: c.Mem, NextAddr: c.Reg.PC}
}

// RAM is a flat big-endian memory block covering addresses 0 to
// len(buf)-1. Accesses beyond the end of the buffer fail.
type RAM struct {
	buf []byte
}

// NewRAM creates a RAM of the given size in bytes.
func NewRAM(size int) *RAM {
	return &RAM{buf: make([]byte, size)}
}

// Bytes returns the underlying buffer.
func (m *RAM) Bytes() []byte {
	return m.buf
}

// Load copies data into memory starting at addr.
func (m *RAM) Load(addr uint32, data []byte) {
	copy(m.buf[addr:], data)
}

func (m *RAM) GetByte(addr uint32) (uint8, bool) {
	if int64(addr) >= int64(len(m.buf)) {
		return 0, false
	}
	return m.buf[addr], true
}

func (m *RAM) GetWord(addr uint32) (uint16, bool) {
	if int64(addr)+1 >= int64(len(m.buf)) {
		return 0, false
	}
	return uint16(m.buf[addr])<<8 | uint16(m.buf[addr+1]), true
}

func (m *RAM) GetLong(addr uint32) (uint32, bool) {
	high, ok := m.GetWord(addr)
	if !ok {
		return 0, false
	}
	low, ok := m.GetWord(addr + 2)
	if !ok {
		return 0, false
	}
	return uint32(high)<<16 | uint32(low), true
}

func (m *RAM) SetByte(addr uint32, v uint8) bool {
	if int64(addr) >= int64(len(m.buf)) {
		return false
	}
	m.buf[addr] = v
	return true
}

func (m *RAM) SetWord(addr uint32, v uint16) bool {
	if int64(addr)+1 >= int64(len(m.buf)) {
		return false
	}
	m.buf[addr] = uint8(v >> 8)
	m.buf[addr+1] = uint8(v)
	return true
}

func (m *RAM) SetLong(addr uint32, v uint32) bool {
	return m.SetWord(addr, uint16(v>>16)) && m.SetWord(addr+2, uint16(v))
}

func (m *RAM) ResetInstruction() {}
