package m68000

import "fmt"

// String disassembles the instruction.
func (i *Instruction) String() string {
	switch i.Isa {
	case IsaAbcd:
		if i.Op.Dir == DirMemoryToMemory {
			return fmt.Sprintf("ABCD -(A%d), -(A%d)", i.Op.Ry, i.Op.Rx)
		}
		return fmt.Sprintf("ABCD D%d, D%d", i.Op.Ry, i.Op.Rx)
	case IsaAdd:
		return i.dualOperands("ADD")
	case IsaAdda:
		return fmt.Sprintf("ADDA.%s %s, A%d", i.Op.Size, i.Op.AM, i.Op.Rx)
	case IsaAddi:
		return i.immediateOperands("ADDI")
	case IsaAddq:
		return i.quickOperands("ADDQ")
	case IsaAddx:
		if i.Op.Dir == DirMemoryToMemory {
			return fmt.Sprintf("ADDX.%s -(A%d), -(A%d)", i.Op.Size, i.Op.Ry, i.Op.Rx)
		}
		return fmt.Sprintf("ADDX.%s D%d, D%d", i.Op.Size, i.Op.Ry, i.Op.Rx)
	case IsaAnd:
		return i.dualOperands("AND")
	case IsaAndi:
		return i.immediateOperands("ANDI")
	case IsaAndiccr:
		return fmt.Sprintf("ANDI 0x%X, CCR", i.Op.Imm)
	case IsaAndisr:
		return fmt.Sprintf("ANDI 0x%X, SR", i.Op.Imm)
	case IsaAsm:
		return fmt.Sprintf("AS%s %s", i.Op.Dir, i.Op.AM)
	case IsaAsr:
		return i.shiftOperands("AS")
	case IsaBcc:
		return fmt.Sprintf("B%s %d <0x%X>", ConditionName(i.Op.Cond), i.Op.Disp, i.branchTarget())
	case IsaBchg:
		return i.bitOperands("BCHG")
	case IsaBclr:
		return i.bitOperands("BCLR")
	case IsaBra:
		return fmt.Sprintf("BRA %d <0x%X>", i.Op.Disp, i.branchTarget())
	case IsaBset:
		return i.bitOperands("BSET")
	case IsaBsr:
		return fmt.Sprintf("BSR %d <0x%X>", i.Op.Disp, i.branchTarget())
	case IsaBtst:
		return i.bitOperands("BTST")
	case IsaChk:
		return fmt.Sprintf("CHK.W %s, D%d", i.Op.AM, i.Op.Rx)
	case IsaClr:
		return fmt.Sprintf("CLR.%s %s", i.Op.Size, i.Op.AM)
	case IsaCmp:
		return fmt.Sprintf("CMP.%s %s, D%d", i.Op.Size, i.Op.AM, i.Op.Rx)
	case IsaCmpa:
		return fmt.Sprintf("CMPA.%s %s, A%d", i.Op.Size, i.Op.AM, i.Op.Rx)
	case IsaCmpi:
		return i.immediateOperands("CMPI")
	case IsaCmpm:
		return fmt.Sprintf("CMPM.%s (A%d)+, (A%d)+", i.Op.Size, i.Op.Ry, i.Op.Rx)
	case IsaDbcc:
		return fmt.Sprintf("DB%s D%d, %d <0x%X>", ConditionName(i.Op.Cond), i.Op.Ry, i.Op.Disp, i.branchTarget())
	case IsaDivs:
		return fmt.Sprintf("DIVS.W %s, D%d", i.Op.AM, i.Op.Rx)
	case IsaDivu:
		return fmt.Sprintf("DIVU.W %s, D%d", i.Op.AM, i.Op.Rx)
	case IsaEor:
		return fmt.Sprintf("EOR.%s D%d, %s", i.Op.Size, i.Op.Rx, i.Op.AM)
	case IsaEori:
		return i.immediateOperands("EORI")
	case IsaEoriccr:
		return fmt.Sprintf("EORI 0x%X, CCR", i.Op.Imm)
	case IsaEorisr:
		return fmt.Sprintf("EORI 0x%X, SR", i.Op.Imm)
	case IsaExg:
		switch i.Op.Dir {
		case DirExchangeData:
			return fmt.Sprintf("EXG D%d, D%d", i.Op.Rx, i.Op.Ry)
		case DirExchangeAddress:
			return fmt.Sprintf("EXG A%d, A%d", i.Op.Rx, i.Op.Ry)
		default:
			return fmt.Sprintf("EXG D%d, A%d", i.Op.Rx, i.Op.Ry)
		}
	case IsaExt:
		if i.Op.Count == 0b010 {
			return fmt.Sprintf("EXT.W D%d", i.Op.Ry)
		}
		return fmt.Sprintf("EXT.L D%d", i.Op.Ry)
	case IsaIllegal:
		return "ILLEGAL"
	case IsaJmp:
		return fmt.Sprintf("JMP %s", i.Op.AM)
	case IsaJsr:
		return fmt.Sprintf("JSR %s", i.Op.AM)
	case IsaLea:
		return fmt.Sprintf("LEA %s, A%d", i.Op.AM, i.Op.Rx)
	case IsaLink:
		return fmt.Sprintf("LINK.W A%d, #%d", i.Op.Ry, i.Op.Disp)
	case IsaLsm:
		return fmt.Sprintf("LS%s %s", i.Op.Dir, i.Op.AM)
	case IsaLsr:
		return i.shiftOperands("LS")
	case IsaMove:
		return fmt.Sprintf("MOVE.%s %s, %s", i.Op.Size, i.Op.Src, i.Op.AM)
	case IsaMovea:
		return fmt.Sprintf("MOVEA.%s %s, A%d", i.Op.Size, i.Op.AM.hexString(), i.Op.Rx)
	case IsaMoveccr:
		return fmt.Sprintf("MOVE %s, CCR", i.Op.AM.hexString())
	case IsaMovefsr:
		return fmt.Sprintf("MOVE SR, %s", i.Op.AM.hexString())
	case IsaMovesr:
		return fmt.Sprintf("MOVE %s, SR", i.Op.AM.hexString())
	case IsaMoveusp:
		if i.Op.Dir == DirUspToRegister {
			return fmt.Sprintf("MOVE USP, A%d", i.Op.Ry)
		}
		return fmt.Sprintf("MOVE A%d, USP", i.Op.Ry)
	case IsaMovem:
		if i.Op.Dir == DirMemoryToRegister {
			return fmt.Sprintf("MOVEM.%s %s, 0x%X", i.Op.Size, i.Op.AM, i.Op.List)
		}
		return fmt.Sprintf("MOVEM.%s 0x%X, %s", i.Op.Size, i.Op.List, i.Op.AM)
	case IsaMovep:
		if i.Op.Dir == DirRegisterToMemory {
			return fmt.Sprintf("MOVEP.%s D%d, (%d, A%d)", i.Op.Size, i.Op.Rx, i.Op.Disp, i.Op.Ry)
		}
		return fmt.Sprintf("MOVEP.%s (%d, A%d), D%d", i.Op.Size, i.Op.Disp, i.Op.Ry, i.Op.Rx)
	case IsaMoveq:
		return fmt.Sprintf("MOVEQ.L #%d, D%d", i.Op.Data, i.Op.Rx)
	case IsaMuls:
		return fmt.Sprintf("MULS.W %s, D%d", i.Op.AM, i.Op.Rx)
	case IsaMulu:
		return fmt.Sprintf("MULU.W %s, D%d", i.Op.AM, i.Op.Rx)
	case IsaNbcd:
		return fmt.Sprintf("NBCD %s", i.Op.AM)
	case IsaNeg:
		return fmt.Sprintf("NEG.%s %s", i.Op.Size, i.Op.AM)
	case IsaNegx:
		return fmt.Sprintf("NEGX.%s %s", i.Op.Size, i.Op.AM)
	case IsaNop:
		return "NOP"
	case IsaNot:
		return fmt.Sprintf("NOT.%s %s", i.Op.Size, i.Op.AM)
	case IsaOr:
		return i.dualOperands("OR")
	case IsaOri:
		return i.immediateOperands("ORI")
	case IsaOriccr:
		return fmt.Sprintf("ORI 0x%X, CCR", i.Op.Imm)
	case IsaOrisr:
		return fmt.Sprintf("ORI 0x%X, SR", i.Op.Imm)
	case IsaPea:
		return fmt.Sprintf("PEA %s", i.Op.AM)
	case IsaReset:
		return "RESET"
	case IsaRom:
		return fmt.Sprintf("RO%s %s", i.Op.Dir, i.Op.AM)
	case IsaRor:
		return i.shiftOperands("RO")
	case IsaRoxm:
		return fmt.Sprintf("ROX%s %s", i.Op.Dir, i.Op.AM)
	case IsaRoxr:
		return i.shiftOperands("ROX")
	case IsaRte:
		return "RTE"
	case IsaRtr:
		return "RTR"
	case IsaRts:
		return "RTS"
	case IsaSbcd:
		if i.Op.Dir == DirMemoryToMemory {
			return fmt.Sprintf("SBCD -(A%d), -(A%d)", i.Op.Ry, i.Op.Rx)
		}
		return fmt.Sprintf("SBCD D%d, D%d", i.Op.Ry, i.Op.Rx)
	case IsaScc:
		return fmt.Sprintf("S%s %s", ConditionName(i.Op.Cond), i.Op.AM)
	case IsaStop:
		return fmt.Sprintf("STOP #0x%X", i.Op.Imm)
	case IsaSub:
		return i.dualOperands("SUB")
	case IsaSuba:
		return fmt.Sprintf("SUBA.%s %s, A%d", i.Op.Size, i.Op.AM, i.Op.Rx)
	case IsaSubi:
		return i.immediateOperands("SUBI")
	case IsaSubq:
		return i.quickOperands("SUBQ")
	case IsaSubx:
		if i.Op.Dir == DirMemoryToMemory {
			return fmt.Sprintf("SUBX.%s -(A%d), -(A%d)", i.Op.Size, i.Op.Ry, i.Op.Rx)
		}
		return fmt.Sprintf("SUBX.%s D%d, D%d", i.Op.Size, i.Op.Ry, i.Op.Rx)
	case IsaSwap:
		return fmt.Sprintf("SWAP D%d", i.Op.Ry)
	case IsaTas:
		return fmt.Sprintf("TAS %s", i.Op.AM)
	case IsaTrap:
		return fmt.Sprintf("TRAP #%d", i.Op.Vector)
	case IsaTrapv:
		return "TRAPV"
	case IsaTst:
		return fmt.Sprintf("TST.%s %s", i.Op.Size, i.Op.AM)
	case IsaUnlk:
		return fmt.Sprintf("UNLK A%d", i.Op.Ry)
	default:
		return fmt.Sprintf("Unknown instruction %04X at 0x%X", i.Opcode, i.PC)
	}
}

func (i *Instruction) branchTarget() uint32 {
	return i.PC + 2 + uint32(int32(i.Op.Disp))
}

// dualOperands formats ADD, AND, OR and SUB, whose direction bit
// selects which operand is the data register.
func (i *Instruction) dualOperands(mnemonic string) string {
	if i.Op.Dir == DirDstEa {
		return fmt.Sprintf("%s.%s D%d, %s", mnemonic, i.Op.Size, i.Op.Rx, i.Op.AM)
	}
	return fmt.Sprintf("%s.%s %s, D%d", mnemonic, i.Op.Size, i.Op.AM, i.Op.Rx)
}

func (i *Instruction) immediateOperands(mnemonic string) string {
	return fmt.Sprintf("%s.%s #%d, %s", mnemonic, i.Op.Size, i.Op.Imm, i.Op.AM)
}

func (i *Instruction) quickOperands(mnemonic string) string {
	data := i.Op.Count
	if data == 0 {
		data = 8
	}
	return fmt.Sprintf("%s.%s #%d, %s", mnemonic, i.Op.Size, data, i.Op.AM)
}

func (i *Instruction) bitOperands(mnemonic string) string {
	if bits(i.Opcode, 8, 8) != 0 {
		return fmt.Sprintf("%s D%d, %s", mnemonic, i.Op.Count, i.Op.AM)
	}
	return fmt.Sprintf("%s #%d, %s", mnemonic, i.Op.Count, i.Op.AM)
}

func (i *Instruction) shiftOperands(mnemonic string) string {
	if i.Op.IR {
		return fmt.Sprintf("%s%s.%s D%d, D%d", mnemonic, i.Op.Dir, i.Op.Size, i.Op.Count, i.Op.Ry)
	}
	count := i.Op.Count
	if count == 0 {
		count = 8
	}
	return fmt.Sprintf("%s%s.%s #%d, D%d", mnemonic, i.Op.Dir, i.Op.Size, count, i.Op.Ry)
}
