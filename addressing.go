package m68000

import "fmt"

// AddressingKind identifies one of the twelve 68000 addressing modes.
type AddressingKind uint8

const (
	ModeDrd      AddressingKind = iota // data register direct
	ModeArd                            // address register direct
	ModeAri                            // address register indirect
	ModeAriwpo                         // ARI with postincrement
	ModeAriwpr                         // ARI with predecrement
	ModeAriwd                          // ARI with displacement
	ModeAriwi8                         // ARI with index and 8-bit displacement
	ModeAbsShort                       // absolute short
	ModeAbsLong                        // absolute long
	ModePciwd                          // PC indirect with displacement
	ModePciwi8                         // PC indirect with index and 8-bit displacement
	ModeImmediate                      // immediate data
)

// AddressingMode is a decoded effective address field. Kind selects the
// variant; the other fields are meaningful only for the kinds that
// carry them.
type AddressingMode struct {
	Kind AddressingKind
	Reg  uint8             // Drd, Ard, Ari, Ariwpo, Ariwpr, Ariwd, Ariwi8
	Disp int16             // Ariwd, Pciwd
	Bew  BriefExtensionWord // Ariwi8, Pciwi8
	PC   uint32            // Pciwd, Pciwi8: address of the extension word
	Addr uint32            // AbsShort (raw u16), AbsLong
	Imm  uint32            // Immediate
}

// addressingMode decodes the mode/register fields of an opcode,
// consuming extension words from the iterator. size matters only for
// immediate operands.
func addressingMode(mode uint16, reg uint8, size Size, it *MemoryIter) (AddressingMode, Fault) {
	switch mode {
	case 0:
		return AddressingMode{Kind: ModeDrd, Reg: reg}, FaultNone
	case 1:
		return AddressingMode{Kind: ModeArd, Reg: reg}, FaultNone
	case 2:
		return AddressingMode{Kind: ModeAri, Reg: reg}, FaultNone
	case 3:
		return AddressingMode{Kind: ModeAriwpo, Reg: reg}, FaultNone
	case 4:
		return AddressingMode{Kind: ModeAriwpr, Reg: reg}, FaultNone
	case 5:
		d, f := it.Next()
		return AddressingMode{Kind: ModeAriwd, Reg: reg, Disp: int16(d)}, f
	case 6:
		w, f := it.Next()
		return AddressingMode{Kind: ModeAriwi8, Reg: reg, Bew: BriefExtensionWord(w)}, f
	default: // 7
		switch reg {
		case 0:
			a, f := it.Next()
			return AddressingMode{Kind: ModeAbsShort, Addr: uint32(a)}, f
		case 1:
			a, f := it.NextLong()
			return AddressingMode{Kind: ModeAbsLong, Addr: a}, f
		case 2:
			pc := it.NextAddr
			d, f := it.Next()
			return AddressingMode{Kind: ModePciwd, PC: pc, Disp: int16(d)}, f
		case 3:
			pc := it.NextAddr
			w, f := it.Next()
			return AddressingMode{Kind: ModePciwi8, PC: pc, Bew: BriefExtensionWord(w)}, f
		default: // 4
			if size == SizeLong {
				imm, f := it.NextLong()
				return AddressingMode{Kind: ModeImmediate, Imm: imm}, f
			}
			imm, f := it.Next()
			return AddressingMode{Kind: ModeImmediate, Imm: uint32(imm)}, f
		}
	}
}

func (am AddressingMode) isDrd() bool       { return am.Kind == ModeDrd }
func (am AddressingMode) isArd() bool       { return am.Kind == ModeArd }
func (am AddressingMode) isDard() bool      { return am.Kind == ModeDrd || am.Kind == ModeArd }
func (am AddressingMode) isAriwpo() bool    { return am.Kind == ModeAriwpo }
func (am AddressingMode) isAriwpr() bool    { return am.Kind == ModeAriwpr }
func (am AddressingMode) isImmediate() bool { return am.Kind == ModeImmediate }

// String disassembles the addressing mode.
func (am AddressingMode) String() string {
	switch am.Kind {
	case ModeDrd:
		return fmt.Sprintf("D%d", am.Reg)
	case ModeArd:
		return fmt.Sprintf("A%d", am.Reg)
	case ModeAri:
		return fmt.Sprintf("(A%d)", am.Reg)
	case ModeAriwpo:
		return fmt.Sprintf("(A%d)+", am.Reg)
	case ModeAriwpr:
		return fmt.Sprintf("-(A%d)", am.Reg)
	case ModeAriwd:
		return fmt.Sprintf("(%d, A%d)", am.Disp, am.Reg)
	case ModeAriwi8:
		return fmt.Sprintf("(%d, A%d, %s)", am.Bew.Disp(), am.Reg, am.Bew)
	case ModeAbsShort:
		return fmt.Sprintf("(0x%X).W", am.Addr)
	case ModeAbsLong:
		return fmt.Sprintf("(0x%X).L", am.Addr)
	case ModePciwd:
		return fmt.Sprintf("(%d, PC)", am.Disp)
	case ModePciwi8:
		return fmt.Sprintf("(%d, PC, %s)", am.Bew.Disp(), am.Bew)
	default:
		return fmt.Sprintf("#%d", am.Imm)
	}
}

// hexString is String with the immediate value in hexadecimal.
func (am AddressingMode) hexString() string {
	if am.Kind == ModeImmediate {
		return fmt.Sprintf("#0x%X", am.Imm)
	}
	return am.String()
}

// BriefExtensionWord is the raw extension word of the indexed
// addressing modes: bit 15 selects A or D index register, bits 14-12
// the register, bit 11 word or long index size, and the low byte is the
// displacement.
type BriefExtensionWord uint16

// Disp returns the embedded 8-bit displacement.
func (b BriefExtensionWord) Disp() int8 {
	return int8(b)
}

func (b BriefExtensionWord) isAddressReg() bool { return b&0x8000 != 0 }
func (b BriefExtensionWord) reg() uint8         { return uint8(b >> 12 & 7) }
func (b BriefExtensionWord) isLong() bool       { return b&0x0800 != 0 }

// String disassembles the index register field.
func (b BriefExtensionWord) String() string {
	x := "D"
	if b.isAddressReg() {
		x = "A"
	}
	size := "W"
	if b.isLong() {
		size = "L"
	}
	return fmt.Sprintf("%s%d.%s", x, b.reg(), size)
}

// effectiveAddress memoizes the address an addressing mode resolves to,
// so an instruction computes it once even when it reads then writes the
// operand.
type effectiveAddress struct {
	mode    AddressingMode
	addr    uint32
	hasAddr bool
	size    Size
}

func newEA(am AddressingMode, size Size) effectiveAddress {
	return effectiveAddress{mode: am, size: size}
}

// effectiveAddress computes the address the operand lives at, adding
// the addressing mode cost to execTime on the first call. Register
// direct and immediate modes have no address; callers never ask for
// one.
func (c *CPU) effectiveAddress(ea *effectiveAddress, execTime *int) uint32 {
	if ea.hasAddr {
		return ea.addr
	}
	switch ea.mode.Kind {
	case ModeAri:
		*execTime += c.timing.EaAri
		ea.addr = c.Reg.AddrReg(ea.mode.Reg)
	case ModeAriwpo:
		*execTime += c.timing.EaAriwpo
		ea.addr = c.ariwpo(ea.mode.Reg, ea.size)
	case ModeAriwpr:
		*execTime += c.timing.EaAriwpr
		ea.addr = c.ariwpr(ea.mode.Reg, ea.size)
	case ModeAriwd:
		*execTime += c.timing.EaAriwd
		ea.addr = c.Reg.AddrReg(ea.mode.Reg) + uint32(int32(ea.mode.Disp))
	case ModeAriwi8:
		*execTime += c.timing.EaAriwi8
		ea.addr = c.Reg.AddrReg(ea.mode.Reg) + uint32(int32(ea.mode.Bew.Disp())) + c.indexRegister(ea.mode.Bew)
	case ModeAbsShort:
		*execTime += c.timing.EaAbsShort
		ea.addr = uint32(int32(int16(ea.mode.Addr)))
	case ModeAbsLong:
		*execTime += c.timing.EaAbsLong
		ea.addr = ea.mode.Addr
	case ModePciwd:
		*execTime += c.timing.EaPciwd
		ea.addr = ea.mode.PC + uint32(int32(ea.mode.Disp))
	case ModePciwi8:
		*execTime += c.timing.EaPciwi8
		ea.addr = ea.mode.PC + uint32(int32(ea.mode.Bew.Disp())) + c.indexRegister(ea.mode.Bew)
	}
	ea.hasAddr = true
	return ea.addr
}

// indexRegister returns the index contribution of a brief extension
// word: the full register for long size, the sign-extended low word
// otherwise.
func (c *CPU) indexRegister(bew BriefExtensionWord) uint32 {
	var v uint32
	if bew.isAddressReg() {
		v = c.Reg.AddrReg(bew.reg())
	} else {
		v = c.Reg.D[bew.reg()]
	}
	if !bew.isLong() {
		v = uint32(int32(int16(v)))
	}
	return v
}

// ariwpo returns the address register value then advances it by the
// operand size. A7 moves by at least 2 to stay word-aligned.
func (c *CPU) ariwpo(reg uint8, size Size) uint32 {
	sz := size
	if reg == 7 {
		sz = size.asWordLong()
	}
	addr := c.Reg.AddrReg(reg)
	c.Reg.SetAddrReg(reg, addr+uint32(sz))
	return addr
}

// ariwpr decrements the address register by the operand size then
// returns it. A7 moves by at least 2 to stay word-aligned.
func (c *CPU) ariwpr(reg uint8, size Size) uint32 {
	sz := size
	if reg == 7 {
		sz = size.asWordLong()
	}
	addr := c.Reg.AddrReg(reg) - uint32(sz)
	c.Reg.SetAddrReg(reg, addr)
	return addr
}
