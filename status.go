package m68000

// Masks applied when moving words into the status register.
const (
	SRUpperMask uint16 = 0xA700 // system byte bits: T, S, interrupt mask
	CCRMask     uint16 = 0x001F // user byte bits: X, N, Z, V, C
)

// Condition test field values used by Bcc, DBcc and Scc.
const (
	ConditionT uint8 = iota
	ConditionF
	ConditionHI
	ConditionLS
	ConditionCC
	ConditionCS
	ConditionNE
	ConditionEQ
	ConditionVC
	ConditionVS
	ConditionPL
	ConditionMI
	ConditionGE
	ConditionLT
	ConditionGT
	ConditionLE
)

// StatusRegister holds the decoded bits of the 68000 status register.
type StatusRegister struct {
	T             bool  // trace
	S             bool  // supervisor
	InterruptMask uint8 // interrupt priority mask, bits 8-10
	X             bool  // extend
	N             bool  // negative
	Z             bool  // zero
	V             bool  // overflow
	C             bool  // carry
}

// StatusRegisterFromWord decodes a raw SR word.
func StatusRegisterFromWord(sr uint16) StatusRegister {
	return StatusRegister{
		T:             sr&0x8000 != 0,
		S:             sr&0x2000 != 0,
		InterruptMask: uint8(sr >> 8 & 7),
		X:             sr&0x0010 != 0,
		N:             sr&0x0008 != 0,
		Z:             sr&0x0004 != 0,
		V:             sr&0x0002 != 0,
		C:             sr&0x0001 != 0,
	}
}

// Word returns the raw SR word.
func (sr StatusRegister) Word() uint16 {
	var w uint16
	if sr.T {
		w |= 0x8000
	}
	if sr.S {
		w |= 0x2000
	}
	w |= uint16(sr.InterruptMask&7) << 8
	if sr.X {
		w |= 0x0010
	}
	if sr.N {
		w |= 0x0008
	}
	if sr.Z {
		w |= 0x0004
	}
	if sr.V {
		w |= 0x0002
	}
	if sr.C {
		w |= 0x0001
	}
	return w
}

// SetCCR writes the user byte only, leaving the system byte untouched.
func (sr *StatusRegister) SetCCR(w uint16) {
	sr.X = w&0x0010 != 0
	sr.N = w&0x0008 != 0
	sr.Z = w&0x0004 != 0
	sr.V = w&0x0002 != 0
	sr.C = w&0x0001 != 0
}

// And clears every bit not set in w. Used by ANDI to CCR/SR.
func (sr *StatusRegister) And(w uint16) {
	*sr = StatusRegisterFromWord(sr.Word() & w)
}

// Or sets every bit set in w. Used by ORI to CCR/SR.
func (sr *StatusRegister) Or(w uint16) {
	*sr = StatusRegisterFromWord(sr.Word() | w)
}

// Xor toggles every bit set in w. Used by EORI to CCR/SR.
func (sr *StatusRegister) Xor(w uint16) {
	*sr = StatusRegisterFromWord(sr.Word() ^ w)
}

// Condition evaluates conditional test cc against the flags.
func (sr *StatusRegister) Condition(cc uint8) bool {
	switch cc & 0xF {
	case ConditionT:
		return true
	case ConditionF:
		return false
	case ConditionHI:
		return !sr.C && !sr.Z
	case ConditionLS:
		return sr.C || sr.Z
	case ConditionCC:
		return !sr.C
	case ConditionCS:
		return sr.C
	case ConditionNE:
		return !sr.Z
	case ConditionEQ:
		return sr.Z
	case ConditionVC:
		return !sr.V
	case ConditionVS:
		return sr.V
	case ConditionPL:
		return !sr.N
	case ConditionMI:
		return sr.N
	case ConditionGE:
		return sr.N && sr.V || !sr.N && !sr.V
	case ConditionLT:
		return sr.N && !sr.V || !sr.N && sr.V
	case ConditionGT:
		return sr.N && sr.V && !sr.Z || !sr.N && !sr.V && !sr.Z
	default: // LE
		return sr.Z || sr.N && !sr.V || !sr.N && sr.V
	}
}

var conditionNames = [16]string{
	"T", "F", "HI", "LS", "CC", "CS", "NE", "EQ",
	"VC", "VS", "PL", "MI", "GE", "LT", "GT", "LE",
}

// ConditionName returns the mnemonic suffix of conditional test cc.
func ConditionName(cc uint8) string {
	return conditionNames[cc&0xF]
}
