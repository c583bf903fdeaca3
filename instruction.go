package m68000

// Size of an operation. The numeric value is the size in bytes.
type Size uint8

const (
	SizeByte Size = 1
	SizeWord Size = 2
	SizeLong Size = 4
)

// sizeFrom decodes the standard two-bit size field.
func sizeFrom(d uint16) Size {
	switch d & 3 {
	case 0:
		return SizeByte
	case 1:
		return SizeWord
	default:
		return SizeLong
	}
}

// sizeFromBit decodes the single-bit size field of MOVEM, ADDA, CMPA
// and SUBA: 0 is word, 1 is long.
func sizeFromBit(d uint16) Size {
	if d != 0 {
		return SizeLong
	}
	return SizeWord
}

// sizeFromMove decodes the size field of MOVE and MOVEA, which uses its
// own encoding.
func sizeFromMove(d uint16) Size {
	switch d & 3 {
	case 1:
		return SizeByte
	case 3:
		return SizeWord
	default:
		return SizeLong
	}
}

// asWordLong returns Word when s is Byte, s otherwise. Used by the
// post/pre increment addressing modes, where a byte access through A7
// still moves the stack pointer by 2.
func (s Size) asWordLong() Size {
	if s == SizeByte {
		return SizeWord
	}
	return s
}

func (s Size) isByte() bool { return s == SizeByte }
func (s Size) isLong() bool { return s == SizeLong }

// String returns the mnemonic size suffix.
func (s Size) String() string {
	switch s {
	case SizeByte:
		return "B"
	case SizeWord:
		return "W"
	default:
		return "L"
	}
}

// Direction of an operation, for the instructions that encode one.
type Direction uint8

const (
	DirRegisterToMemory   Direction = iota // MOVEM, MOVEP
	DirMemoryToRegister                    // MOVEM, MOVEP
	DirDstReg                              // ADD, AND, OR, SUB
	DirDstEa                               // ADD, AND, OR, SUB
	DirLeft                                // shifts and rotates
	DirRight                               // shifts and rotates
	DirRegisterToUsp                       // MOVE USP
	DirUspToRegister                       // MOVE USP
	DirRegisterToRegister                  // ABCD, ADDX, SBCD, SUBX
	DirMemoryToMemory                      // ABCD, ADDX, SBCD, SUBX
	DirExchangeData                        // EXG
	DirExchangeAddress                     // EXG
	DirExchangeDataAddress                 // EXG
)

// String disassembles the Left and Right directions; the others have no
// assembly spelling.
func (d Direction) String() string {
	switch d {
	case DirLeft:
		return "L"
	case DirRight:
		return "R"
	default:
		return ""
	}
}

// Operands holds the decoded operand fields of an instruction. Which
// fields are meaningful depends on the instruction class; the decoders
// below document the layout per class.
type Operands struct {
	Size   Size
	Dir    Direction
	AM     AddressingMode // effective address (destination for MOVE)
	Src    AddressingMode // MOVE source
	Imm    uint32         // immediate data
	Rx     uint8          // register encoded in bits 9-11
	Ry     uint8          // register encoded in bits 0-2
	Count  uint8          // bit number, shift count or quick data
	Cond   uint8          // condition code field
	Disp   int16          // displacement
	List   uint16         // MOVEM register mask
	Data   int8           // MOVEQ data
	Vector uint8          // TRAP vector
	IR     bool           // shift count is in a data register
}

// Instruction is a fully decoded instruction.
type Instruction struct {
	// The raw opcode word.
	Opcode uint16
	// The address of the instruction.
	PC uint32
	// The instruction class.
	Isa Isa
	// The decoded operands.
	Op Operands
}

// DecodeInstruction decodes the instruction at the iterator's current
// address, consuming the opcode and its extension words.
func DecodeInstruction(it *MemoryIter) (Instruction, Fault) {
	pc := it.NextAddr
	opcode, f := it.Next()
	if f != FaultNone {
		return Instruction{}, f
	}
	return decodeOpcode(opcode, pc, it)
}

// decodeOpcode decodes the operands of an already fetched opcode,
// consuming extension words from the iterator.
func decodeOpcode(opcode uint16, pc uint32, it *MemoryIter) (Instruction, Fault) {
	isa := IsaFromOpcode(opcode)
	op, f := decodeOperands(isa, opcode, it)
	return Instruction{Opcode: opcode, PC: pc, Isa: isa, Op: op}, f
}

func bits(w uint16, lo, hi uint8) uint16 {
	return w >> lo & (1<<(hi-lo+1) - 1)
}

func decodeOperands(isa Isa, opcode uint16, it *MemoryIter) (Operands, Fault) {
	switch isa {
	case IsaIllegal, IsaNop, IsaReset, IsaRte, IsaRtr, IsaRts, IsaTrapv, IsaUnknown:
		return Operands{}, FaultNone
	case IsaAndiccr, IsaAndisr, IsaEoriccr, IsaEorisr, IsaOriccr, IsaOrisr, IsaStop:
		return opImmediate(it)
	case IsaAddi, IsaAndi, IsaCmpi, IsaEori, IsaOri, IsaSubi:
		return opSizeEffectiveAddressImmediate(opcode, it)
	case IsaBchg, IsaBclr, IsaBset, IsaBtst:
		return opEffectiveAddressCount(opcode, it)
	case IsaJmp, IsaJsr, IsaMoveccr, IsaMovefsr, IsaMovesr, IsaNbcd, IsaPea, IsaTas:
		return opEffectiveAddress(isa, opcode, it)
	case IsaClr, IsaNeg, IsaNegx, IsaNot, IsaTst:
		return opSizeEffectiveAddress(opcode, it)
	case IsaChk, IsaDivs, IsaDivu, IsaLea, IsaMuls, IsaMulu:
		return opRegisterEffectiveAddress(isa, opcode, it)
	case IsaMovep:
		return opMovep(opcode, it)
	case IsaMovea:
		return opMovea(opcode, it)
	case IsaMove:
		return opMove(opcode, it)
	case IsaExg:
		return opExg(opcode), FaultNone
	case IsaExt:
		return opExt(opcode), FaultNone
	case IsaTrap:
		return Operands{Vector: uint8(bits(opcode, 0, 3))}, FaultNone
	case IsaLink:
		return opLink(opcode, it)
	case IsaSwap, IsaUnlk:
		return Operands{Ry: uint8(bits(opcode, 0, 2))}, FaultNone
	case IsaMoveusp:
		return opMoveusp(opcode), FaultNone
	case IsaMovem:
		return opMovem(opcode, it)
	case IsaAddq, IsaSubq:
		return opDataSizeEffectiveAddress(opcode, it)
	case IsaScc:
		return opConditionEffectiveAddress(opcode, it)
	case IsaDbcc:
		return opConditionRegisterDisplacement(opcode, it)
	case IsaBra, IsaBsr:
		return opDisplacement(opcode, it)
	case IsaBcc:
		return opConditionDisplacement(opcode, it)
	case IsaMoveq:
		return Operands{Rx: uint8(bits(opcode, 9, 11)), Data: int8(opcode)}, FaultNone
	case IsaAdd, IsaAnd, IsaCmp, IsaEor, IsaOr, IsaSub:
		return opRegisterDirectionSizeEffectiveAddress(opcode, it)
	case IsaAdda, IsaCmpa, IsaSuba:
		return opRegisterSizeEffectiveAddress(opcode, it)
	case IsaAbcd, IsaAddx, IsaSbcd, IsaSubx:
		return opRegisterSizeModeRegister(opcode), FaultNone
	case IsaCmpm:
		return opRegisterSizeRegister(opcode), FaultNone
	case IsaAsm, IsaLsm, IsaRom, IsaRoxm:
		return opDirectionEffectiveAddress(opcode, it)
	default: // IsaAsr, IsaLsr, IsaRor, IsaRoxr
		return opRotationDirectionSizeModeRegister(opcode), FaultNone
	}
}

// ANDI/EORI/ORI to CCR/SR, STOP
func opImmediate(it *MemoryIter) (Operands, Fault) {
	imm, f := it.Next()
	return Operands{Imm: uint32(imm)}, f
}

// ADDI, ANDI, CMPI, EORI, ORI, SUBI. The immediate data comes before
// the effective address extension words.
func opSizeEffectiveAddressImmediate(opcode uint16, it *MemoryIter) (Operands, Fault) {
	size := sizeFrom(bits(opcode, 6, 7))

	var imm uint32
	var f Fault
	if size.isLong() {
		imm, f = it.NextLong()
	} else {
		var w uint16
		w, f = it.Next()
		imm = uint32(w)
	}
	if f != FaultNone {
		return Operands{}, f
	}

	am, f := addressingMode(bits(opcode, 3, 5), uint8(bits(opcode, 0, 2)), size, it)
	return Operands{Size: size, AM: am, Imm: imm}, f
}

// BCHG, BCLR, BSET, BTST. With a dynamic bit number, Count holds the
// data register number; with a static one it holds the bit number from
// the extension word.
func opEffectiveAddressCount(opcode uint16, it *MemoryIter) (Operands, Fault) {
	var count uint8
	if bits(opcode, 8, 8) != 0 {
		count = uint8(bits(opcode, 9, 11))
	} else {
		w, f := it.Next()
		if f != FaultNone {
			return Operands{}, f
		}
		count = uint8(w)
	}

	eamode := bits(opcode, 3, 5)
	size := SizeByte
	if eamode == 0 {
		size = SizeLong
	}
	am, f := addressingMode(eamode, uint8(bits(opcode, 0, 2)), size, it)
	return Operands{AM: am, Count: count, Size: size}, f
}

// JMP, JSR, MOVE to/from SR/CCR, NBCD, PEA, TAS
func opEffectiveAddress(isa Isa, opcode uint16, it *MemoryIter) (Operands, Fault) {
	var size Size
	switch isa {
	case IsaNbcd, IsaTas:
		size = SizeByte
	case IsaMoveccr, IsaMovefsr, IsaMovesr:
		size = SizeWord
	case IsaPea:
		size = SizeLong
	}
	am, f := addressingMode(bits(opcode, 3, 5), uint8(bits(opcode, 0, 2)), size, it)
	return Operands{AM: am}, f
}

// CLR, NEG, NEGX, NOT, TST
func opSizeEffectiveAddress(opcode uint16, it *MemoryIter) (Operands, Fault) {
	size := sizeFrom(bits(opcode, 6, 7))
	am, f := addressingMode(bits(opcode, 3, 5), uint8(bits(opcode, 0, 2)), size, it)
	return Operands{Size: size, AM: am}, f
}

// CHK, DIVS, DIVU, LEA, MULS, MULU
func opRegisterEffectiveAddress(isa Isa, opcode uint16, it *MemoryIter) (Operands, Fault) {
	size := SizeWord
	if isa == IsaLea {
		size = SizeLong
	}
	am, f := addressingMode(bits(opcode, 3, 5), uint8(bits(opcode, 0, 2)), size, it)
	return Operands{Rx: uint8(bits(opcode, 9, 11)), AM: am}, f
}

// MOVEP: Rx is the data register, Ry the address register.
func opMovep(opcode uint16, it *MemoryIter) (Operands, Fault) {
	dir := DirMemoryToRegister
	if bits(opcode, 7, 7) != 0 {
		dir = DirRegisterToMemory
	}
	size := SizeWord
	if bits(opcode, 6, 6) != 0 {
		size = SizeLong
	}
	disp, f := it.Next()
	return Operands{
		Rx:   uint8(bits(opcode, 9, 11)),
		Dir:  dir,
		Size: size,
		Ry:   uint8(bits(opcode, 0, 2)),
		Disp: int16(disp),
	}, f
}

// MOVEA: Rx is the destination address register.
func opMovea(opcode uint16, it *MemoryIter) (Operands, Fault) {
	size := sizeFromMove(bits(opcode, 12, 13))
	am, f := addressingMode(bits(opcode, 3, 5), uint8(bits(opcode, 0, 2)), size, it)
	return Operands{Size: size, Rx: uint8(bits(opcode, 9, 11)), AM: am}, f
}

// MOVE. The source extension words come before the destination ones.
func opMove(opcode uint16, it *MemoryIter) (Operands, Fault) {
	size := sizeFromMove(bits(opcode, 12, 13))

	src, f := addressingMode(bits(opcode, 3, 5), uint8(bits(opcode, 0, 2)), size, it)
	if f != FaultNone {
		return Operands{}, f
	}
	dst, f := addressingMode(bits(opcode, 6, 8), uint8(bits(opcode, 9, 11)), size, it)
	return Operands{Size: size, AM: dst, Src: src}, f
}

// EXG
func opExg(opcode uint16) Operands {
	var dir Direction
	switch bits(opcode, 3, 7) {
	case 0b01000:
		dir = DirExchangeData
	case 0b01001:
		dir = DirExchangeAddress
	default:
		dir = DirExchangeDataAddress
	}
	return Operands{Rx: uint8(bits(opcode, 9, 11)), Dir: dir, Ry: uint8(bits(opcode, 0, 2))}
}

// EXT: Count holds the opmode field.
func opExt(opcode uint16) Operands {
	return Operands{Count: uint8(bits(opcode, 6, 8)), Ry: uint8(bits(opcode, 0, 2))}
}

// LINK
func opLink(opcode uint16, it *MemoryIter) (Operands, Fault) {
	disp, f := it.Next()
	return Operands{Ry: uint8(bits(opcode, 0, 2)), Disp: int16(disp)}, f
}

// MOVE USP
func opMoveusp(opcode uint16) Operands {
	dir := DirRegisterToUsp
	if bits(opcode, 3, 3) != 0 {
		dir = DirUspToRegister
	}
	return Operands{Dir: dir, Ry: uint8(bits(opcode, 0, 2))}
}

// MOVEM. The register list comes before the effective address
// extension words.
func opMovem(opcode uint16, it *MemoryIter) (Operands, Fault) {
	list, f := it.Next()
	if f != FaultNone {
		return Operands{}, f
	}
	dir := DirRegisterToMemory
	if bits(opcode, 10, 10) != 0 {
		dir = DirMemoryToRegister
	}
	size := sizeFromBit(bits(opcode, 6, 6))
	am, f := addressingMode(bits(opcode, 3, 5), uint8(bits(opcode, 0, 2)), size, it)
	return Operands{Dir: dir, Size: size, AM: am, List: list}, f
}

// ADDQ, SUBQ: Count holds the raw data field, 0 meaning 8.
func opDataSizeEffectiveAddress(opcode uint16, it *MemoryIter) (Operands, Fault) {
	size := sizeFrom(bits(opcode, 6, 7))
	am, f := addressingMode(bits(opcode, 3, 5), uint8(bits(opcode, 0, 2)), size, it)
	return Operands{Count: uint8(bits(opcode, 9, 11)), Size: size, AM: am}, f
}

// Scc
func opConditionEffectiveAddress(opcode uint16, it *MemoryIter) (Operands, Fault) {
	am, f := addressingMode(bits(opcode, 3, 5), uint8(bits(opcode, 0, 2)), SizeByte, it)
	return Operands{Cond: uint8(bits(opcode, 8, 11)), AM: am}, f
}

// DBcc
func opConditionRegisterDisplacement(opcode uint16, it *MemoryIter) (Operands, Fault) {
	disp, f := it.Next()
	return Operands{
		Cond: uint8(bits(opcode, 8, 11)),
		Ry:   uint8(bits(opcode, 0, 2)),
		Disp: int16(disp),
	}, f
}

// BRA, BSR. An embedded displacement of 0 selects a word displacement
// in the extension word.
func opDisplacement(opcode uint16, it *MemoryIter) (Operands, Fault) {
	disp := int16(int8(opcode))
	if disp == 0 {
		w, f := it.Next()
		if f != FaultNone {
			return Operands{}, f
		}
		disp = int16(w)
	}
	return Operands{Disp: disp}, FaultNone
}

// Bcc
func opConditionDisplacement(opcode uint16, it *MemoryIter) (Operands, Fault) {
	op, f := opDisplacement(opcode, it)
	op.Cond = uint8(bits(opcode, 8, 11))
	return op, f
}

// ADD, AND, CMP, EOR, OR, SUB. CMP and EOR ignore the direction.
func opRegisterDirectionSizeEffectiveAddress(opcode uint16, it *MemoryIter) (Operands, Fault) {
	dir := DirDstReg
	if bits(opcode, 8, 8) != 0 {
		dir = DirDstEa
	}
	size := sizeFrom(bits(opcode, 6, 7))
	am, f := addressingMode(bits(opcode, 3, 5), uint8(bits(opcode, 0, 2)), size, it)
	return Operands{Rx: uint8(bits(opcode, 9, 11)), Dir: dir, Size: size, AM: am}, f
}

// ADDA, CMPA, SUBA
func opRegisterSizeEffectiveAddress(opcode uint16, it *MemoryIter) (Operands, Fault) {
	size := sizeFromBit(bits(opcode, 8, 8))
	am, f := addressingMode(bits(opcode, 3, 5), uint8(bits(opcode, 0, 2)), size, it)
	return Operands{Rx: uint8(bits(opcode, 9, 11)), Size: size, AM: am}, f
}

// ABCD, ADDX, SBCD, SUBX
func opRegisterSizeModeRegister(opcode uint16) Operands {
	dir := DirRegisterToRegister
	if bits(opcode, 3, 3) != 0 {
		dir = DirMemoryToMemory
	}
	return Operands{
		Rx:   uint8(bits(opcode, 9, 11)),
		Size: sizeFrom(bits(opcode, 6, 7)),
		Dir:  dir,
		Ry:   uint8(bits(opcode, 0, 2)),
	}
}

// CMPM
func opRegisterSizeRegister(opcode uint16) Operands {
	return Operands{
		Rx:   uint8(bits(opcode, 9, 11)),
		Size: sizeFrom(bits(opcode, 6, 7)),
		Ry:   uint8(bits(opcode, 0, 2)),
	}
}

// Memory shifts and rotates
func opDirectionEffectiveAddress(opcode uint16, it *MemoryIter) (Operands, Fault) {
	dir := DirRight
	if bits(opcode, 8, 8) != 0 {
		dir = DirLeft
	}
	am, f := addressingMode(bits(opcode, 3, 5), uint8(bits(opcode, 0, 2)), SizeByte, it)
	return Operands{Dir: dir, AM: am}, f
}

// Register shifts and rotates. With IR set, Count holds the data
// register whose value is the shift count; otherwise Count is the
// count itself, 0 meaning 8.
func opRotationDirectionSizeModeRegister(opcode uint16) Operands {
	dir := DirRight
	if bits(opcode, 8, 8) != 0 {
		dir = DirLeft
	}
	return Operands{
		Count: uint8(bits(opcode, 9, 11)),
		Dir:   dir,
		Size:  sizeFrom(bits(opcode, 6, 7)),
		IR:    bits(opcode, 5, 5) != 0,
		Ry:    uint8(bits(opcode, 0, 2)),
	}
}
