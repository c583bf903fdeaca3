package m68000

// Model selects the CPU implementation being emulated. The instruction
// set is the same, but instruction execution times and exception stack
// frames differ between implementations.
type Model uint8

const (
	// MC68000 is the original Motorola MC68000, with timings as
	// described in the M68000 8-/16-/32-Bit Microprocessors User's
	// Manual, Ninth Edition.
	MC68000 Model = iota
	// SCC68070 is the Philips SCC68070 microcontroller, found in
	// CD-i players.
	SCC68070
)

func (m Model) String() string {
	if m == SCC68070 {
		return "SCC68070"
	}
	return "MC68000"
}

// timing holds the instruction execution times of a CPU model, in clock
// cycles. The EA fields are the effective address calculation times for
// byte and word accesses; long accesses add 4 on top.
type timing struct {
	stackFormat Model

	VectorReset int

	EaAri       int
	EaAriwpo    int
	EaAriwpr    int
	EaAriwd     int
	EaAriwi8    int
	EaAbsShort  int
	EaAbsLong   int
	EaPciwd     int
	EaPciwi8    int
	EaImmediate int

	AbcdReg int
	AbcdMem int

	AddRegBW     int
	AddRegL      int
	AddRegLRdimm int
	AddMemBW     int
	AddMemL      int

	AddaWord      int
	AddaLong      int
	AddaLongRdimm int

	AddiRegBW int
	AddiRegL  int
	AddiMemBW int
	AddiMemL  int

	AddqRegBW int
	AddqRegL  int
	AddqMemBW int
	AddqMemL  int

	AddxRegBW int
	AddxRegL  int
	AddxMemBW int
	AddxMemL  int

	AndRegBW     int
	AndRegL      int
	AndRegLRdimm int
	AndMemBW     int
	AndMemL      int

	AndiRegBW int
	AndiRegL  int
	AndiMemBW int
	AndiMemL  int

	Andiccr int
	Andisr  int

	Asm      int
	AsrCount int
	AsrBW    int
	AsrL     int

	BccBranch       int
	BccNoBranchByte int
	BccNoBranchWord int

	BchgDynReg int
	BchgDynMem int
	BchgStaReg int
	BchgStaMem int

	BclrDynReg int
	BclrDynMem int
	BclrStaReg int
	BclrStaMem int

	BraByte int
	BraWord int

	BsetDynReg int
	BsetDynMem int
	BsetStaReg int
	BsetStaMem int

	BsrByte int
	BsrWord int

	BtstDynReg int
	BtstDynMem int
	BtstStaReg int
	BtstStaMem int

	ChkNoTrap int

	ClrRegBW int
	ClrRegL  int
	ClrMemBW int
	ClrMemL  int

	CmpBW int
	CmpL  int

	Cmpa int

	CmpiRegBW int
	CmpiRegL  int
	CmpiMemBW int
	CmpiMemL  int

	CmpmBW int
	CmpmL  int

	DbccTrue          int
	DbccFalseBranch   int
	DbccFalseNoBranch int

	Divs int
	Divu int

	EorRegBW int
	EorRegL  int
	EorMemBW int
	EorMemL  int

	EoriRegBW int
	EoriRegL  int
	EoriMemBW int
	EoriMemL  int

	Eoriccr int
	Eorisr  int

	Exg int
	Ext int

	JmpAri      int
	JmpAriwd    int
	JmpAriwi8   int
	JmpAbsShort int
	JmpAbsLong  int
	JmpPciwd    int
	JmpPciwi8   int

	JsrAri      int
	JsrAriwd    int
	JsrAriwi8   int
	JsrAbsShort int
	JsrAbsLong  int
	JsrPciwd    int
	JsrPciwi8   int

	LeaAri      int
	LeaAriwd    int
	LeaAriwi8   int
	LeaAbsShort int
	LeaAbsLong  int
	LeaPciwd    int
	LeaPciwi8   int

	Link int

	Lsm      int
	LsrCount int
	LsrBW    int
	LsrL     int

	MoveDstAriwpr int
	MoveOther     int

	Movea   int
	Moveccr int

	MovefsrReg int
	MovefsrMem int

	Movesr  int
	Moveusp int

	MovemWord     int
	MovemLong     int
	MovemMtr      int // extra per MOVEM when transferring memory to registers
	MovemAri      int
	MovemAriwpo   int
	MovemAriwpr   int
	MovemAriwd    int
	MovemAriwi8   int
	MovemAbsShort int
	MovemAbsLong  int
	MovemPciwd    int
	MovemPciwi8   int

	MovepRtmWord int
	MovepRtmLong int
	MovepMtrWord int
	MovepMtrLong int

	Moveq int

	Muls int
	Mulu int

	NbcdReg int
	NbcdMem int

	NegRegBW int
	NegRegL  int
	NegMemBW int
	NegMemL  int

	NegxRegBW int
	NegxRegL  int
	NegxMemBW int
	NegxMemL  int

	Nop int

	NotRegBW int
	NotRegL  int
	NotMemBW int
	NotMemL  int

	OrRegBW     int
	OrRegL      int
	OrRegLRdimm int
	OrMemBW     int
	OrMemL      int

	OriRegBW int
	OriRegL  int
	OriMemBW int
	OriMemL  int

	Oriccr int
	Orisr  int

	PeaAri      int
	PeaAriwd    int
	PeaAriwi8   int
	PeaAbsShort int
	PeaAbsLong  int
	PeaPciwd    int
	PeaPciwi8   int

	Reset int

	Rom      int
	RorCount int
	RorBW    int
	RorL     int

	Roxm      int
	RoxrCount int
	RoxrBW    int
	RoxrL     int

	Rte int
	Rtr int
	Rts int

	SbcdReg int
	SbcdMem int

	SccRegFalse int
	SccRegTrue  int
	SccMemFalse int
	SccMemTrue  int

	Stop int

	SubRegBW     int
	SubRegL      int
	SubRegLRdimm int
	SubMemBW     int
	SubMemL      int

	SubaWord      int
	SubaLong      int
	SubaLongRdimm int

	SubiRegBW int
	SubiRegL  int
	SubiMemBW int
	SubiMemL  int

	SubqDRegBW int
	SubqARegBW int
	SubqRegL   int
	SubqMemBW  int
	SubqMemL   int

	SubxRegBW int
	SubxRegL  int
	SubxMemBW int
	SubxMemL  int

	Swap int

	TasReg int
	TasMem int

	TrapvNoTrap int

	TstRegBW int
	TstRegL  int
	TstMemBW int
	TstMemL  int

	Unlk int
}

// vectorTime returns the processing time of the given exception vector.
func (t *timing) vectorTime(vector uint8) int {
	switch {
	case vector == VectorAccessError || vector == VectorAddressError:
		if t.stackFormat == SCC68070 {
			return 158
		}
		return 50
	case vector == VectorIllegalInstruction:
		if t.stackFormat == SCC68070 {
			return 55
		}
		return 34
	case vector == VectorZeroDivide:
		if t.stackFormat == SCC68070 {
			return 64
		}
		return 38
	case vector == VectorChkInstruction:
		if t.stackFormat == SCC68070 {
			return 64
		}
		return 40
	case vector == VectorTrapvInstruction, vector == VectorPrivilegeViolation, vector == VectorTrace:
		if t.stackFormat == SCC68070 {
			return 55
		}
		return 34
	case vector >= VectorLevel1Interrupt && vector <= VectorLevel7Interrupt:
		if t.stackFormat == SCC68070 {
			return 65
		}
		return 44
	case vector >= VectorTrap0Instruction && vector <= VectorTrap15Instruction:
		if t.stackFormat == SCC68070 {
			return 52
		}
		return 34
	default:
		return t.VectorReset
	}
}

var mc68000Timing = timing{
	stackFormat: MC68000,

	VectorReset: 40,

	EaAri:       4,
	EaAriwpo:    4,
	EaAriwpr:    6,
	EaAriwd:     8,
	EaAriwi8:    10,
	EaAbsShort:  8,
	EaAbsLong:   12,
	EaPciwd:     8,
	EaPciwi8:    10,
	EaImmediate: 4,

	AbcdReg: 6,
	AbcdMem: 18,

	AddRegBW:     4,
	AddRegL:      6,
	AddRegLRdimm: 8,
	AddMemBW:     8,
	AddMemL:      12,

	AddaWord:      8,
	AddaLong:      6,
	AddaLongRdimm: 8,

	AddiRegBW: 8,
	AddiRegL:  16,
	AddiMemBW: 12,
	AddiMemL:  20,

	AddqRegBW: 4,
	AddqRegL:  8,
	AddqMemBW: 8,
	AddqMemL:  12,

	AddxRegBW: 4,
	AddxRegL:  8,
	AddxMemBW: 18,
	AddxMemL:  30,

	AndRegBW:     4,
	AndRegL:      6,
	AndRegLRdimm: 8,
	AndMemBW:     8,
	AndMemL:      12,

	AndiRegBW: 8,
	AndiRegL:  14,
	AndiMemBW: 12,
	AndiMemL:  20,

	Andiccr: 20,
	Andisr:  20,

	Asm:      8,
	AsrCount: 2,
	AsrBW:    6,
	AsrL:     8,

	BccBranch:       10,
	BccNoBranchByte: 8,
	BccNoBranchWord: 12,

	BchgDynReg: 8,
	BchgDynMem: 8,
	BchgStaReg: 12,
	BchgStaMem: 12,

	BclrDynReg: 10,
	BclrDynMem: 8,
	BclrStaReg: 14,
	BclrStaMem: 12,

	BraByte: 10,
	BraWord: 10,

	BsetDynReg: 8,
	BsetDynMem: 8,
	BsetStaReg: 12,
	BsetStaMem: 12,

	BsrByte: 18,
	BsrWord: 18,

	BtstDynReg: 6,
	BtstDynMem: 4,
	BtstStaReg: 10,
	BtstStaMem: 8,

	ChkNoTrap: 10,

	ClrRegBW: 4,
	ClrRegL:  6,
	ClrMemBW: 8,
	ClrMemL:  12,

	CmpBW: 4,
	CmpL:  6,

	Cmpa: 6,

	CmpiRegBW: 8,
	CmpiRegL:  14,
	CmpiMemBW: 8,
	CmpiMemL:  12,

	CmpmBW: 12,
	CmpmL:  20,

	DbccTrue:          12,
	DbccFalseBranch:   10,
	DbccFalseNoBranch: 14,

	Divs: 158,
	Divu: 140,

	EorRegBW: 4,
	EorRegL:  8,
	EorMemBW: 8,
	EorMemL:  12,

	EoriRegBW: 8,
	EoriRegL:  16,
	EoriMemBW: 12,
	EoriMemL:  20,

	Eoriccr: 20,
	Eorisr:  20,

	Exg: 6,
	Ext: 4,

	JmpAri:      8,
	JmpAriwd:    10,
	JmpAriwi8:   14,
	JmpAbsShort: 10,
	JmpAbsLong:  12,
	JmpPciwd:    10,
	JmpPciwi8:   14,

	JsrAri:      16,
	JsrAriwd:    18,
	JsrAriwi8:   22,
	JsrAbsShort: 18,
	JsrAbsLong:  20,
	JsrPciwd:    18,
	JsrPciwi8:   22,

	LeaAri:      4,
	LeaAriwd:    8,
	LeaAriwi8:   12,
	LeaAbsShort: 8,
	LeaAbsLong:  12,
	LeaPciwd:    8,
	LeaPciwi8:   12,

	Link: 16,

	Lsm:      8,
	LsrCount: 2,
	LsrBW:    6,
	LsrL:     8,

	MoveDstAriwpr: 2,
	MoveOther:     4,

	Movea:   4,
	Moveccr: 12,

	MovefsrReg: 6,
	MovefsrMem: 8,

	Movesr:  12,
	Moveusp: 4,

	MovemWord:     4,
	MovemLong:     8,
	MovemMtr:      4,
	MovemAri:      8,
	MovemAriwpo:   8,
	MovemAriwpr:   8,
	MovemAriwd:    12,
	MovemAriwi8:   14,
	MovemAbsShort: 12,
	MovemAbsLong:  16,
	MovemPciwd:    12,
	MovemPciwi8:   14,

	MovepRtmWord: 16,
	MovepRtmLong: 24,
	MovepMtrWord: 16,
	MovepMtrLong: 24,

	Moveq: 4,

	Muls: 70,
	Mulu: 70,

	NbcdReg: 6,
	NbcdMem: 8,

	NegRegBW: 4,
	NegRegL:  6,
	NegMemBW: 8,
	NegMemL:  12,

	NegxRegBW: 4,
	NegxRegL:  6,
	NegxMemBW: 8,
	NegxMemL:  12,

	Nop: 4,

	NotRegBW: 4,
	NotRegL:  6,
	NotMemBW: 8,
	NotMemL:  12,

	OrRegBW:     4,
	OrRegL:      6,
	OrRegLRdimm: 8,
	OrMemBW:     8,
	OrMemL:      12,

	OriRegBW: 8,
	OriRegL:  16,
	OriMemBW: 12,
	OriMemL:  20,

	Oriccr: 20,
	Orisr:  20,

	PeaAri:      12,
	PeaAriwd:    16,
	PeaAriwi8:   20,
	PeaAbsShort: 16,
	PeaAbsLong:  20,
	PeaPciwd:    16,
	PeaPciwi8:   20,

	Reset: 132,

	Rom:      8,
	RorCount: 2,
	RorBW:    6,
	RorL:     8,

	Roxm:      8,
	RoxrCount: 2,
	RoxrBW:    6,
	RoxrL:     8,

	Rte: 20,
	Rtr: 20,
	Rts: 16,

	SbcdReg: 6,
	SbcdMem: 18,

	SccRegFalse: 4,
	SccRegTrue:  6,
	SccMemFalse: 8,
	SccMemTrue:  8,

	Stop: 4,

	SubRegBW:     4,
	SubRegL:      6,
	SubRegLRdimm: 8,
	SubMemBW:     8,
	SubMemL:      12,

	SubaWord:      8,
	SubaLong:      6,
	SubaLongRdimm: 8,

	SubiRegBW: 8,
	SubiRegL:  16,
	SubiMemBW: 12,
	SubiMemL:  20,

	SubqDRegBW: 4,
	SubqARegBW: 8,
	SubqRegL:   8,
	SubqMemBW:  8,
	SubqMemL:   12,

	SubxRegBW: 4,
	SubxRegL:  8,
	SubxMemBW: 18,
	SubxMemL:  30,

	Swap: 4,

	TasReg: 4,
	TasMem: 14,

	TrapvNoTrap: 4,

	TstRegBW: 4,
	TstRegL:  4,
	TstMemBW: 4,
	TstMemL:  4,

	Unlk: 12,
}

var scc68070Timing = timing{
	stackFormat: SCC68070,

	VectorReset: 43,

	EaAri:       4,
	EaAriwpo:    4,
	EaAriwpr:    7,
	EaAriwd:     11,
	EaAriwi8:    14,
	EaAbsShort:  8,
	EaAbsLong:   12,
	EaPciwd:     11,
	EaPciwi8:    14,
	EaImmediate: 4,

	AbcdReg: 10,
	AbcdMem: 31,

	AddRegBW:     7,
	AddRegL:      7,
	AddRegLRdimm: 7,
	AddMemBW:     11,
	AddMemL:      15,

	AddaWord:      7,
	AddaLong:      7,
	AddaLongRdimm: 7,

	AddiRegBW: 14,
	AddiRegL:  18,
	AddiMemBW: 18,
	AddiMemL:  26,

	AddqRegBW: 7,
	AddqRegL:  7,
	AddqMemBW: 11,
	AddqMemL:  15,

	AddxRegBW: 7,
	AddxRegL:  7,
	AddxMemBW: 28,
	AddxMemL:  40,

	AndRegBW:     7,
	AndRegL:      7,
	AndRegLRdimm: 7,
	AndMemBW:     11,
	AndMemL:      15,

	AndiRegBW: 14,
	AndiRegL:  18,
	AndiMemBW: 18,
	AndiMemL:  26,

	Andiccr: 14,
	Andisr:  14,

	Asm:      14,
	AsrCount: 3,
	AsrBW:    13,
	AsrL:     13,

	BccBranch:       13,
	BccNoBranchByte: 14,
	BccNoBranchWord: 14,

	BchgDynReg: 10,
	BchgDynMem: 14,
	BchgStaReg: 17,
	BchgStaMem: 21,

	BclrDynReg: 10,
	BclrDynMem: 14,
	BclrStaReg: 17,
	BclrStaMem: 21,

	BraByte: 13,
	BraWord: 14,

	BsetDynReg: 10,
	BsetDynMem: 14,
	BsetStaReg: 17,
	BsetStaMem: 21,

	BsrByte: 17,
	BsrWord: 22,

	BtstDynReg: 7,
	BtstDynMem: 7,
	BtstStaReg: 14,
	BtstStaMem: 14,

	ChkNoTrap: 19,

	ClrRegBW: 7,
	ClrRegL:  7,
	ClrMemBW: 7,
	ClrMemL:  7,

	CmpBW: 7,
	CmpL:  7,

	Cmpa: 7,

	CmpiRegBW: 14,
	CmpiRegL:  18,
	CmpiMemBW: 14,
	CmpiMemL:  18,

	CmpmBW: 18,
	CmpmL:  26,

	DbccTrue:          14,
	DbccFalseBranch:   17,
	DbccFalseNoBranch: 17,

	Divs: 169,
	Divu: 130,

	EorRegBW: 7,
	EorRegL:  7,
	EorMemBW: 11,
	EorMemL:  15,

	EoriRegBW: 14,
	EoriRegL:  18,
	EoriMemBW: 18,
	EoriMemL:  26,

	Eoriccr: 14,
	Eorisr:  14,

	Exg: 13,
	Ext: 7,

	JmpAri:      7,
	JmpAriwd:    14,
	JmpAriwi8:   17,
	JmpAbsShort: 14,
	JmpAbsLong:  18,
	JmpPciwd:    14,
	JmpPciwi8:   17,

	JsrAri:      18,
	JsrAriwd:    25,
	JsrAriwi8:   28,
	JsrAbsShort: 25,
	JsrAbsLong:  29,
	JsrPciwd:    25,
	JsrPciwi8:   28,

	LeaAri:      7,
	LeaAriwd:    14,
	LeaAriwi8:   17,
	LeaAbsShort: 14,
	LeaAbsLong:  18,
	LeaPciwd:    14,
	LeaPciwi8:   17,

	Link: 25,

	Lsm:      14,
	LsrCount: 3,
	LsrBW:    13,
	LsrL:     13,

	MoveDstAriwpr: 7,
	MoveOther:     7,

	Movea:   7,
	Moveccr: 10,

	MovefsrReg: 7,
	MovefsrMem: 11,

	Movesr:  10,
	Moveusp: 7,

	MovemWord:     7,
	MovemLong:     11,
	MovemMtr:      3,
	MovemAri:      23,
	MovemAriwpo:   23,
	MovemAriwpr:   23,
	MovemAriwd:    27,
	MovemAriwi8:   30,
	MovemAbsShort: 27,
	MovemAbsLong:  31,
	MovemPciwd:    27,
	MovemPciwi8:   30,

	MovepRtmWord: 25,
	MovepRtmLong: 39,
	MovepMtrWord: 22,
	MovepMtrLong: 36,

	Moveq: 7,

	Muls: 76,
	Mulu: 76,

	NbcdReg: 10,
	NbcdMem: 14,

	NegRegBW: 7,
	NegRegL:  7,
	NegMemBW: 11,
	NegMemL:  15,

	NegxRegBW: 7,
	NegxRegL:  7,
	NegxMemBW: 11,
	NegxMemL:  15,

	Nop: 7,

	NotRegBW: 7,
	NotRegL:  7,
	NotMemBW: 11,
	NotMemL:  15,

	OrRegBW:     7,
	OrRegL:      7,
	OrRegLRdimm: 7,
	OrMemBW:     11,
	OrMemL:      15,

	OriRegBW: 14,
	OriRegL:  18,
	OriMemBW: 18,
	OriMemL:  26,

	Oriccr: 14,
	Orisr:  14,

	PeaAri:      18,
	PeaAriwd:    25,
	PeaAriwi8:   28,
	PeaAbsShort: 25,
	PeaAbsLong:  29,
	PeaPciwd:    25,
	PeaPciwi8:   28,

	Reset: 154,

	Rom:      14,
	RorCount: 3,
	RorBW:    13,
	RorL:     13,

	Roxm:      14,
	RoxrCount: 3,
	RoxrBW:    13,
	RoxrL:     13,

	Rte: 39,
	Rtr: 22,
	Rts: 15,

	SbcdReg: 10,
	SbcdMem: 31,

	SccRegFalse: 13,
	SccRegTrue:  13,
	SccMemFalse: 17,
	SccMemTrue:  14,

	Stop: 13,

	SubRegBW:     7,
	SubRegL:      7,
	SubRegLRdimm: 7,
	SubMemBW:     11,
	SubMemL:      15,

	SubaWord:      7,
	SubaLong:      7,
	SubaLongRdimm: 7,

	SubiRegBW: 14,
	SubiRegL:  18,
	SubiMemBW: 18,
	SubiMemL:  26,

	SubqDRegBW: 7,
	SubqARegBW: 7,
	SubqRegL:   7,
	SubqMemBW:  11,
	SubqMemL:   15,

	SubxRegBW: 7,
	SubxRegL:  7,
	SubxMemBW: 28,
	SubxMemL:  40,

	Swap: 7,

	TasReg: 10,
	TasMem: 11,

	TrapvNoTrap: 10,

	TstRegBW: 7,
	TstRegL:  7,
	TstMemBW: 7,
	TstMemL:  7,

	Unlk: 15,
}
